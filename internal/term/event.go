package term

import "fmt"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Key represents a keyboard key. Printable input and control-letter
// chords are KeyRune (the rune plus modifier mask); everything else
// has its own constant.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// keyNames maps special keys to display names.
var keyNames = map[Key]string{
	KeyNone: "None", KeyRune: "Rune", KeyEscape: "Escape", KeyEnter: "Enter",
	KeyTab: "Tab", KeyBackspace: "Backspace", KeyDelete: "Delete",
	KeyInsert: "Insert", KeyHome: "Home", KeyEnd: "End",
	KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyUp: "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10",
	KeyF11: "F11", KeyF12: "F12",
}

// String returns the display name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Event represents a terminal input event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// KeyEvent builds a special-key event.
func KeyEvent(k Key, mod ModMask) Event {
	return Event{Type: EventKey, Key: k, Mod: mod}
}

// RuneEvent builds a printable-character event.
func RuneEvent(r rune, mod ModMask) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: mod}
}

// ResizeEvent builds a resize event.
func ResizeEvent(w, h int) Event {
	return Event{Type: EventResize, Width: w, Height: h}
}

// String returns a human-readable event description.
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		var mods string
		if e.Mod.Has(ModCtrl) {
			mods += "C-"
		}
		if e.Mod.Has(ModAlt) {
			mods += "A-"
		}
		if e.Mod.Has(ModShift) {
			mods += "S-"
		}
		if e.Key == KeyRune {
			return fmt.Sprintf("key %s%c", mods, e.Rune)
		}
		return fmt.Sprintf("key %s%s", mods, e.Key)
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	default:
		return "none"
	}
}
