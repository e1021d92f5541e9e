package contracts

import "errors"

// ErrNotFound marks a disruption, route, shipment or ticket id that does not
// resolve. ErrInvalidInput marks malformed operator input, e.g. a cost
// percentage outside 0-100. The core surfaces both immediately; retries are
// meaningless for deterministic synchronous operations.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
