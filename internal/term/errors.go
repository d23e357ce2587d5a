package term

import "errors"

// Sentinel errors for the term package.
var (
	// ErrBackendUnsupported means no backend variant can satisfy the
	// minimum capability set in this environment (typically: stdin
	// is not a terminal).
	ErrBackendUnsupported = errors.New("no usable terminal backend")

	// ErrBackendClosed is returned for operations on a backend that
	// has been shut down.
	ErrBackendClosed = errors.New("backend is closed")

	// ErrReadTimeout is returned by ReadEvent when the timeout
	// elapses with no input.
	ErrReadTimeout = errors.New("read timed out")

	// ErrModeRestore means restoring the original terminal mode
	// failed. Best effort: recorded for diagnostics, never escalated.
	ErrModeRestore = errors.New("terminal mode restore failed")
)
