package term

import "time"

// Capabilities is the operation set a backend variant advertises.
// Capabilities are static per variant and queried once at selection.
type Capabilities struct {
	// RawInput: the backend can deliver unprocessed keystrokes.
	RawInput bool

	// CursorAddressing: the backend can position the cursor.
	CursorAddressing bool

	// ResizeEvents: the backend delivers resize notifications.
	ResizeEvents bool

	// Colors is the supported color count (16, 256, or 1<<24).
	Colors int
}

// Meets reports whether the capability set covers the required
// minimum contract.
func (c Capabilities) Meets(min Capabilities) bool {
	if min.RawInput && !c.RawInput {
		return false
	}
	if min.CursorAddressing && !c.CursorAddressing {
		return false
	}
	if min.ResizeEvents && !c.ResizeEvents {
		return false
	}
	return c.Colors >= min.Colors
}

// MinCapabilities is the contract every selected backend must satisfy.
var MinCapabilities = Capabilities{RawInput: true, ResizeEvents: true}

// Backend is the terminal I/O capability contract. Exactly one
// backend is active per process; the caller owns it exclusively and
// serializes access per direction (single reader, single writer).
//
// Mode operations are idempotent and safe to call from a termination
// handler: Shutdown and ExitRaw always leave the terminal in its
// original mode, on every exit path.
type Backend interface {
	// Init prepares the backend. Must be called first.
	Init() error

	// Shutdown restores the original terminal mode and releases
	// resources. Safe to call more than once.
	Shutdown()

	// EnterRaw switches input to raw (unbuffered, unechoed) mode.
	EnterRaw() error

	// ExitRaw restores the mode saved by EnterRaw. A restore failure
	// wraps ErrModeRestore; callers log it and move on.
	ExitRaw() error

	// ReadEvent returns the next input event. A zero timeout blocks
	// indefinitely; otherwise ErrReadTimeout is returned when the
	// timeout elapses with no event.
	ReadEvent(timeout time.Duration) (Event, error)

	// Write emits styled text at the current cursor position. Styles
	// beyond the variant's color depth degrade to the nearest
	// supported rendering.
	Write(text string, style Style) error

	// MoveCursor positions the cursor (0-indexed column, row).
	MoveCursor(x, y int)

	// ShowCursor makes the cursor visible.
	ShowCursor()

	// HideCursor hides the cursor.
	HideCursor()

	// Clear erases the screen with the default style.
	Clear()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// OnResize registers a callback invoked on terminal resize, in
	// addition to the EventResize delivered through ReadEvent.
	OnResize(func(width, height int))

	// Capabilities returns the variant's static capability set.
	Capabilities() Capabilities

	// Beep rings the terminal bell.
	Beep()
}
