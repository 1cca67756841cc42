package store

import "errors"

var (
	// ErrUnsupportedValue indicates a YAML node that cannot be flattened into a
	// single string value (for example a sequence).
	ErrUnsupportedValue = errors.New("unsupported configuration value")
	// ErrInvalidBaseURL indicates an HTTP store address without scheme or host.
	ErrInvalidBaseURL = errors.New("invalid store base URL")
)
