package checkout

import (
	"fmt"
	"log"

	"github.com/b3dotfun/sdk-go/internal/models"
	"github.com/b3dotfun/sdk-go/internal/utils"
)

// DisplayStatus is the three-way classification the UI renders.
type DisplayStatus string

const (
	DisplayStatusProcessing DisplayStatus = "processing"
	DisplayStatusSuccess    DisplayStatus = "success"
	DisplayStatusFailure    DisplayStatus = "failure"
)

// StatusDisplay is the human-facing rendering of an order's state.
type StatusDisplay struct {
	Text        string        `json:"text"`
	Status      DisplayStatus `json:"status"`
	Description string        `json:"description,omitempty"`
}

// GetStatusDisplay maps an order's backend-reported status plus metadata into
// a display classification. It is total over the status enum: unrecognized
// statuses echo the raw string as processing rather than failing, so new
// backend states degrade gracefully.
func GetStatusDisplay(order models.Order) StatusDisplay {
	switch order.Status {
	case models.OrderStatusScanningDepositTransaction:
		return StatusDisplay{
			Text:        "Scanning for Deposit",
			Status:      DisplayStatusProcessing,
			Description: "Waiting for your deposit transaction to be detected on-chain.",
		}
	case models.OrderStatusWaitingStripePayment:
		return StatusDisplay{
			Text:        "Waiting for Payment",
			Status:      DisplayStatusProcessing,
			Description: "Complete the payment to continue.",
		}
	case models.OrderStatusQuotingAfterDeposit:
		return StatusDisplay{
			Text:        "Getting Quote",
			Status:      DisplayStatusProcessing,
			Description: "Deposit received, fetching the final quote.",
		}
	case models.OrderStatusSendingTokenFromVault:
		return StatusDisplay{
			Text:   "Sending Tokens",
			Status: DisplayStatusProcessing,
		}
	case models.OrderStatusRelay:
		return StatusDisplay{
			Text:   "Relaying",
			Status: DisplayStatusProcessing,
		}
	case models.OrderStatusExecuting:
		return StatusDisplay{
			Text:   "Executing Order",
			Status: DisplayStatusProcessing,
		}
	case models.OrderStatusRefunding:
		return StatusDisplay{
			Text:        "Refunding",
			Status:      DisplayStatusProcessing,
			Description: "The order could not complete, your funds are being returned.",
		}
	case models.OrderStatusExecuted:
		return executedDisplay(order)
	case models.OrderStatusExpired:
		return StatusDisplay{
			Text:        "Order Expired",
			Status:      DisplayStatusFailure,
			Description: "No deposit was received before the order expired.",
		}
	case models.OrderStatusRefunded:
		return StatusDisplay{
			Text:        "Order Refunded",
			Status:      DisplayStatusFailure,
			Description: "The order could not complete and your funds were returned.",
		}
	case models.OrderStatusFailure:
		return StatusDisplay{
			Text:        "Order Failed",
			Status:      DisplayStatusFailure,
			Description: "Something went wrong while processing the order.",
		}
	default:
		return StatusDisplay{
			Text:   string(order.Status),
			Status: DisplayStatusProcessing,
		}
	}
}

// executedDisplay sub-classifies a terminal executed order by its type to
// produce a type-specific success message.
func executedDisplay(order models.Order) StatusDisplay {
	switch order.Type {
	case models.OrderTypeSwap:
		if amount, ok := settledAmount(order); ok {
			return StatusDisplay{
				Text:   fmt.Sprintf("Received %s", amount),
				Status: DisplayStatusSuccess,
			}
		}
		return StatusDisplay{Text: "Swap Complete", Status: DisplayStatusSuccess}
	case models.OrderTypeMintNFT:
		return StatusDisplay{Text: "NFT Minted", Status: DisplayStatusSuccess}
	case models.OrderTypeJoinTournament:
		return StatusDisplay{Text: "Tournament Joined", Status: DisplayStatusSuccess}
	case models.OrderTypeFundTournament:
		return StatusDisplay{Text: "Tournament Funded", Status: DisplayStatusSuccess}
	case models.OrderTypeCustom, models.OrderTypeCustomExactIn, models.OrderTypeDepositFirst:
		if amount, ok := settledAmount(order); ok {
			return StatusDisplay{
				Text:   fmt.Sprintf("Order Complete: %s", amount),
				Status: DisplayStatusSuccess,
			}
		}
		return StatusDisplay{Text: "Order Complete", Status: DisplayStatusSuccess}
	default:
		return StatusDisplay{Text: "Order Complete", Status: DisplayStatusSuccess}
	}
}

// settledAmount formats the destination amount with the destination token's
// decimals and symbol. Orders that complete outside the standard settlement
// path (custom, custom_exact_in, deposit_first) may carry the amount in the
// payload instead; that fallback is deliberate tolerance, not a bug.
func settledAmount(order models.Order) (string, bool) {
	raw := ""
	if order.Settlement != nil && order.Settlement.ActualDstAmount != "" {
		raw = order.Settlement.ActualDstAmount
	} else if isCustomType(order.Type) && order.Payload != nil && order.Payload.Amount != "" {
		raw = order.Payload.Amount
	}
	if raw == "" || order.Metadata.DstToken == nil {
		return "", false
	}

	formatted, err := utils.FormatUnits(raw, order.Metadata.DstToken.Decimals)
	if err != nil {
		log.Printf("Warning: failed to format settlement amount %q: %v", raw, err)
		return "", false
	}
	return fmt.Sprintf("%s %s", formatted, order.Metadata.DstToken.Symbol), true
}

func isCustomType(t models.OrderType) bool {
	return t == models.OrderTypeCustom ||
		t == models.OrderTypeCustomExactIn ||
		t == models.OrderTypeDepositFirst
}

// GetErrorDisplay maps the orchestrator's error-code vocabulary to a
// user-facing message. Unknown codes get a generic retry message.
func GetErrorDisplay(details *models.ErrorDetails) string {
	if details == nil {
		return "Something went wrong. Please try again."
	}
	switch details.Code {
	case "SLIPPAGE":
		return "Price moved beyond your slippage tolerance. Try again with a higher tolerance."
	default:
		return "Something went wrong. Please try again."
	}
}
