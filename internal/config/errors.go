package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidBackend indicates an unrecognized backend override.
	ErrInvalidBackend = errors.New("invalid backend override")

	// ErrInvalidLogLevel indicates an unrecognized log level.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidTimeout indicates an unparseable or non-positive
	// helper timeout.
	ErrInvalidTimeout = errors.New("invalid helper timeout")

	// ErrUnknownProbe indicates a disabled-probe name that matches no
	// detection probe.
	ErrUnknownProbe = errors.New("unknown probe name")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
