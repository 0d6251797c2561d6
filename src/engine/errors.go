package engine

import "errors"

// These failures are local, synchronous and non-retryable: they mark an
// illegal requested transition and must block the database write entirely.
// Handlers map them to 422 responses.
var (
	ErrCategoryTypeMismatch        = errors.New("category type does not match transaction type")
	ErrNoCategoryAvailable         = errors.New("no category available for transaction type")
	ErrInvalidPair                 = errors.New("source and destination bank accounts must differ")
	ErrUnbalancedRefund            = errors.New("refund children must sum to the parent amount")
	ErrNotConvertible              = errors.New("transaction cannot be converted")
	ErrInsufficientAccounts        = errors.New("a second distinct bank account is required")
	ErrUnsupportedDirectTransition = errors.New("type is only reachable through a conversion")
	ErrTypeSelectionRequired       = errors.New("an explicit follow-up type selection is required")
)

// ErrCascadeRequired is kept out of the 422 taxonomy above: deleting a
// refund parent with children is a legal operation that needs an explicit
// confirmation, so handlers map it to 409 instead.
var ErrCascadeRequired = errors.New("deleting a refund group requires the cascade flag")
