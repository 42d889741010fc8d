package session

import "errors"

// Errors returned by session operations.
var (
	// ErrDesynced indicates an inbound patch referenced positions beyond the
	// shadow copy. The shadow copy is left untouched and a resync request is
	// emitted; the session recovers when a full snapshot arrives.
	ErrDesynced = errors.New("session desynchronized from peers")

	// ErrClosed indicates the session has been closed.
	ErrClosed = errors.New("session closed")
)
