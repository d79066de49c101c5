package ledger

import "errors"

// Domain failures wrap one of these sentinels so callers can branch with
// errors.Is. Persistence failures carry no sentinel and are fatal to the
// triggering call.
var (
	ErrBlockOverlap      = errors.New("block overlap")
	ErrExhausted         = errors.New("no identifier available")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrPastDate          = errors.New("scheduled date must be in the future")
)
