package models

import "time"

// SwapQuote is the ephemeral result of a quote call. It is valid only at
// computation time and must be recomputed before executing a swap.
type SwapQuote struct {
	AmountOut      string `json:"amountOut"`
	AmountOutMin   string `json:"amountOutMin"`
	PriceImpact    string `json:"priceImpact"`
	ExecutionPrice string `json:"executionPrice"`
	Fee            uint32 `json:"fee"`
}

// SwapDirection distinguishes the two legs of a post-migration swap.
type SwapDirection string

const (
	SwapDirectionBuy  SwapDirection = "buy"
	SwapDirectionSell SwapDirection = "sell"
)

// SwapRecord represents a historical DEX swap submitted through the SDK.
type SwapRecord struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	UserID            *string           `gorm:"index;type:varchar(255)" json:"user_id,omitempty"`
	UserAddress       string            `gorm:"not null" json:"user_address"`
	TokenAddress      string            `gorm:"index;not null" json:"token_address"`
	Direction         SwapDirection     `gorm:"not null" json:"direction"`
	FromToken         string            `gorm:"not null" json:"from_token"`
	ToToken           string            `gorm:"not null" json:"to_token"`
	FromAmount        string            `gorm:"not null" json:"from_amount"`
	ToAmount          string            `json:"to_amount"`
	SlippageTolerance string            `gorm:"not null" json:"slippage_tolerance"`
	TransactionHash   string            `json:"transaction_hash"`
	Status            TransactionStatus `gorm:"default:pending" json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
