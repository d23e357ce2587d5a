package launch

import "errors"

// Sentinel errors for the launch package.
var (
	// ErrUnsupportedSyntax means the identity has no spawnable
	// launch-syntax mapping (the in-process native console).
	ErrUnsupportedSyntax = errors.New("identity has no launch syntax")

	// ErrSpawnFailed means process creation failed. The cause is
	// wrapped; there is no automatic retry because an identical
	// re-attempt is expected to fail identically.
	ErrSpawnFailed = errors.New("terminal spawn failed")

	// ErrNoTerminalFound means the detection chain was exhausted
	// without finding a terminal emulator to relaunch into.
	ErrNoTerminalFound = errors.New("no terminal emulator found")

	// ErrEmptyTarget means a plan was requested for an empty target
	// command.
	ErrEmptyTarget = errors.New("empty target command")
)
