package models

import "time"

// CheckoutSessionStatus is the backend-owned session state.
type CheckoutSessionStatus string

const (
	CheckoutSessionStatusOpen       CheckoutSessionStatus = "open"
	CheckoutSessionStatusProcessing CheckoutSessionStatus = "processing"
	CheckoutSessionStatusComplete   CheckoutSessionStatus = "complete"
	CheckoutSessionStatusExpired    CheckoutSessionStatus = "expired"
)

// CheckoutSession is the wire shape returned by the checkout backend.
// Identity is immutable; the status fields are owned and advanced by the
// backend.
type CheckoutSession struct {
	ID          string                `json:"id"`
	Status      CheckoutSessionStatus `json:"status"`
	CheckoutURL string                `json:"checkout_url"`
	OrderID     string                `json:"order_id"`
	OrderStatus OrderStatus           `json:"order_status"`
	Settlement  *Settlement           `json:"settlement,omitempty"`
	ExpiresAt   time.Time             `json:"expires_at"`
}

// CreateCheckoutSessionRequest is the request body for opening a session.
type CreateCheckoutSessionRequest struct {
	OrderType   OrderType `json:"order_type" validate:"required"`
	SrcChainID  int64     `json:"src_chain_id" validate:"required"`
	DstChainID  int64     `json:"dst_chain_id" validate:"required"`
	SrcToken    string    `json:"src_token" validate:"required"`
	DstToken    string    `json:"dst_token" validate:"required"`
	SrcAmount   string    `json:"src_amount" validate:"required"`
	Recipient   string    `json:"recipient" validate:"required"`
	PartnerID   string    `json:"partner_id" validate:"required"`
	SuccessURL  string    `json:"success_url,omitempty"`
	RedirectURL string    `json:"redirect_url,omitempty"`
}

// CheckoutSessionRecord is the local snapshot of a backend-owned session,
// refreshed on each poll. The backend remains the source of truth; rows here
// only exist so the demo apps can list and re-open sessions.
type CheckoutSessionRecord struct {
	ID          string                `gorm:"primaryKey" json:"id"`
	UserID      *string               `gorm:"index;type:varchar(255)" json:"user_id,omitempty"`
	Status      CheckoutSessionStatus `gorm:"default:open" json:"status"`
	CheckoutURL string                `json:"checkout_url"`
	OrderID     string                `gorm:"index" json:"order_id"`
	OrderStatus OrderStatus           `json:"order_status"`
	OrderType   OrderType             `json:"order_type"`
	SrcChainID  int64                 `json:"src_chain_id"`
	DstChainID  int64                 `json:"dst_chain_id"`
	Payload     JSON                  `gorm:"type:text" json:"payload,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	ExpiresAt   time.Time             `json:"expires_at"`
}
