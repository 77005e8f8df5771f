package bondkit

import "errors"

var (
	// ErrNotConnected is returned by write methods before a signing key or
	// provider has been attached.
	ErrNotConnected = errors.New("bondkit: client is not connected for writes")

	// ErrTimeout is returned when a transaction receipt does not appear
	// within the polling budget.
	ErrTimeout = errors.New("bondkit: timed out waiting for transaction receipt")

	// ErrEventNotFound is returned when a factory deployment confirmed
	// on-chain but the creation event is absent from the receipt logs. This
	// indicates protocol drift between the SDK and the deployed factory and
	// is never swallowed: the caller has no other way to learn the token
	// address.
	ErrEventNotFound = errors.New("bondkit: BondkitTokenCreated event not found in receipt logs")

	// ErrInvalidAddress is returned at construction time for a malformed
	// contract address.
	ErrInvalidAddress = errors.New("bondkit: invalid contract address")
)
