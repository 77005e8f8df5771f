package models

import "time"

// TokenStatus is the on-chain lifecycle phase of a bonding-curve token.
// A token starts Uninitialized, moves to Bonding when the factory calls
// initialize, and transitions to Dex exactly once when migrateToDex succeeds.
type TokenStatus uint8

const (
	TokenStatusUninitialized TokenStatus = 0
	TokenStatusBonding       TokenStatus = 1
	TokenStatusDex           TokenStatus = 2
)

func (s TokenStatus) String() string {
	switch s {
	case TokenStatusUninitialized:
		return "uninitialized"
	case TokenStatusBonding:
		return "bonding"
	case TokenStatusDex:
		return "dex"
	default:
		return "unknown"
	}
}

// BondkitTokenConfig holds the deployment parameters for a new bonding-curve
// token. It is created client-side and submitted once to the factory; the
// deployed contract is the source of truth thereafter.
type BondkitTokenConfig struct {
	Name                         string `json:"name" validate:"required"`
	Symbol                       string `json:"symbol" validate:"required"`
	FeeRecipient                 string `json:"feeRecipient" validate:"required,eth_addr"`
	FinalTokenSupply             string `json:"finalTokenSupply" validate:"required"`
	AggressivenessFactor         uint8  `json:"aggressivenessFactor" validate:"min=1,max=100"`
	LpSplitRatioFeeRecipientBps  uint16 `json:"lpSplitRatioFeeRecipientBps" validate:"max=10000"`
	TargetAmount                 string `json:"targetAmount" validate:"required"`
	TradingToken                 string `json:"tradingToken" validate:"required,eth_addr"`
	MigrationAdminAddress        string `json:"migrationAdminAddress" validate:"required,eth_addr"`
	V4Hook                       string `json:"v4Hook" validate:"omitempty,eth_addr"`
	V4PoolFee                    uint32 `json:"v4PoolFee"`
	V4TickSpacing                int32  `json:"v4TickSpacing"`
}

// BondingHolder is one row of the paginated holder list a bonding token
// exposes during its bonding phase.
type BondingHolder struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// TokenDeployment records a bonding-curve token deployed through the factory.
type TokenDeployment struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	UserID          *string           `gorm:"index;type:varchar(255)" json:"user_id,omitempty"`
	ChainID         int64             `gorm:"not null" json:"chain_id"`
	TokenAddress    string            `gorm:"index" json:"token_address"`
	Name            string            `gorm:"not null" json:"name"`
	Symbol          string            `gorm:"not null" json:"symbol"`
	Config          JSON              `gorm:"type:text" json:"config"`
	DeployerAddress string            `json:"deployer_address"`
	TransactionHash string            `json:"transaction_hash"`
	Status          TransactionStatus `gorm:"default:pending" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
