package detect

import "errors"

// Sentinel errors for the detect package.
var (
	// ErrProbeInapplicable means the probe does not apply on this
	// platform or in this environment. Not a failure.
	ErrProbeInapplicable = errors.New("probe not applicable")

	// ErrProbeNoAnswer means the probe ran and found nothing.
	ErrProbeNoAnswer = errors.New("probe found no terminal")

	// ErrProbeTimeout means a helper command exceeded the probe
	// timeout. Treated as inapplicable by the engine.
	ErrProbeTimeout = errors.New("probe helper timed out")

	// ErrUnknownSyntax is returned when parsing an unrecognized
	// syntax string.
	ErrUnknownSyntax = errors.New("unknown launch syntax")

	// ErrNoCache is returned when no cached detection result exists.
	ErrNoCache = errors.New("no cached detection result")
)
