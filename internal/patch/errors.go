package patch

import "errors"

// Errors returned by patch application.
var (
	// ErrIndexOutOfRange indicates an operation referenced a position beyond
	// the current sequence bounds. For patches exchanged between
	// participants this signals protocol desynchronization, not a local bug.
	ErrIndexOutOfRange = errors.New("patch index out of range")

	// ErrNegativeCount indicates a Delete with a negative count.
	ErrNegativeCount = errors.New("patch delete count is negative")
)
