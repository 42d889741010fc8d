package config

import "errors"

// Errors returned by config loading and validation.
var (
	// ErrInvalidDebounce indicates a non-positive debounce window.
	ErrInvalidDebounce = errors.New("debounce_ms must be positive")

	// ErrInvalidLimits indicates diff thresholds that are out of order or
	// not positive.
	ErrInvalidLimits = errors.New("max_exact_total must be at least max_exact_input, both positive")

	// ErrInvalidFiller indicates a negative filler line count.
	ErrInvalidFiller = errors.New("filler_lines must not be negative")

	// ErrInvalidLogLevel indicates an unrecognized log level name.
	ErrInvalidLogLevel = errors.New("log_level must be debug, info, warn, or error")
)
