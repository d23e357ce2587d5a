package app

import (
	"errors"
	"fmt"
)

// Errors returned by application lifecycle operations.
var (
	// ErrAlreadyRunning indicates Bootstrap was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotBootstrapped indicates Run was called before Bootstrap.
	ErrNotBootstrapped = errors.New("application not bootstrapped")
)

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
