package models

// OrderStatus is the backend-reported lifecycle state of a cross-chain
// payment order. The orchestrator advances status; this codebase only
// classifies and displays it.
type OrderStatus string

const (
	OrderStatusScanningDepositTransaction OrderStatus = "scanning_deposit_transaction"
	OrderStatusWaitingStripePayment       OrderStatus = "waiting_stripe_payment"
	OrderStatusExpired                    OrderStatus = "expired"
	OrderStatusSendingTokenFromVault      OrderStatus = "sending_token_from_vault"
	OrderStatusRelay                      OrderStatus = "relay"
	OrderStatusExecuting                  OrderStatus = "executing"
	OrderStatusExecuted                   OrderStatus = "executed"
	OrderStatusRefunding                  OrderStatus = "refunding"
	OrderStatusRefunded                   OrderStatus = "refunded"
	OrderStatusFailure                    OrderStatus = "failure"
	OrderStatusQuotingAfterDeposit        OrderStatus = "quoting_after_deposit"
)

// OrderType determines which success message an executed order maps to.
type OrderType string

const (
	OrderTypeSwap           OrderType = "swap"
	OrderTypeMintNFT        OrderType = "mint_nft"
	OrderTypeJoinTournament OrderType = "join_tournament"
	OrderTypeFundTournament OrderType = "fund_tournament"
	OrderTypeCustom         OrderType = "custom"
	OrderTypeCustomExactIn  OrderType = "custom_exact_in"
	OrderTypeDepositFirst   OrderType = "deposit_first"
)

// Settlement is the terminal accounting record attached to an order once the
// destination leg lands.
type Settlement struct {
	ActualDstAmount string `json:"actualDstAmount,omitempty"`
}

// OrderMetadata carries the token pair the order moves between.
type OrderMetadata struct {
	SrcToken *Token `json:"srcToken,omitempty"`
	DstToken *Token `json:"dstToken,omitempty"`
}

// OrderPayload holds type-specific request data. For custom order types the
// requested amount lives here rather than in the settlement record.
type OrderPayload struct {
	Amount string `json:"amount,omitempty"`
}

// Order is an externally owned payment/settlement record. Read-only from this
// codebase's perspective.
type Order struct {
	ID         string        `json:"id"`
	Status     OrderStatus   `json:"status"`
	Type       OrderType     `json:"type"`
	SrcAmount  string        `json:"srcAmount,omitempty"`
	Settlement *Settlement   `json:"settlement,omitempty"`
	Metadata   OrderMetadata `json:"metadata"`
	Payload    *OrderPayload `json:"payload,omitempty"`

	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
}

// ErrorDetails is the small error vocabulary the orchestrator reports on
// failed orders.
type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
