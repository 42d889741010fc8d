package transport

import "errors"

// Errors returned by codec and hub operations.
var (
	// ErrUnknownKind indicates an envelope with an unrecognized kind field.
	ErrUnknownKind = errors.New("unknown event kind")

	// ErrUnknownOp indicates a change with an op other than insert/delete.
	ErrUnknownOp = errors.New("unknown change op")

	// ErrMissingDocument indicates a payload without a documentId.
	ErrMissingDocument = errors.New("event has no documentId")

	// ErrHubClosed indicates a publish or subscribe on a closed hub.
	ErrHubClosed = errors.New("hub closed")
)
