package term

import (
	"sync"
	"time"
)

// WriteRecord is one styled write captured by the NullBackend.
type WriteRecord struct {
	Text  string
	Style Style
}

// NullBackend is an in-memory backend for testing. It satisfies the
// full capability contract, records writes and mode transitions, and
// lets tests post synthetic events and resizes.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	raw           bool
	rawEnters     int
	rawExits      int
	inited        bool
	closed        bool
	cursorX       int
	cursorY       int
	cursorVisible bool
	beeps         int
	cleared       int
	writes        []WriteRecord
	resizeCb      func(width, height int)
	colors        int

	events chan Event
	done   chan struct{}
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:         width,
		height:        height,
		cursorVisible: true,
		colors:        1 << 24,
		events:        make(chan Event, 100),
		done:          make(chan struct{}),
	}
}

// SetColors overrides the advertised color depth for degradation
// tests.
func (b *NullBackend) SetColors(colors int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.colors = colors
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBackendClosed
	}
	b.inited = true
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	// Shutdown restores the original mode on every path.
	if b.raw {
		b.raw = false
		b.rawExits++
	}
	close(b.done)
}

func (b *NullBackend) EnterRaw() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBackendClosed
	}
	if !b.raw {
		b.raw = true
		b.rawEnters++
	}
	return nil
}

func (b *NullBackend) ExitRaw() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.raw {
		b.raw = false
		b.rawExits++
	}
	return nil
}

func (b *NullBackend) ReadEvent(timeout time.Duration) (Event, error) {
	if timeout <= 0 {
		select {
		case ev := <-b.events:
			return ev, nil
		case <-b.done:
			return Event{}, ErrBackendClosed
		}
	}
	select {
	case ev := <-b.events:
		return ev, nil
	case <-b.done:
		return Event{}, ErrBackendClosed
	case <-time.After(timeout):
		return Event{}, ErrReadTimeout
	}
}

func (b *NullBackend) Write(text string, style Style) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBackendClosed
	}
	b.writes = append(b.writes, WriteRecord{Text: text, Style: style.Quantize(b.colors)})
	return nil
}

func (b *NullBackend) MoveCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY = x, y
}

func (b *NullBackend) ShowCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cleared++
	b.writes = nil
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) OnResize(cb func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resizeCb = cb
}

func (b *NullBackend) Capabilities() Capabilities {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Capabilities{
		RawInput:         true,
		CursorAddressing: true,
		ResizeEvents:     true,
		Colors:           b.colors,
	}
}

func (b *NullBackend) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beeps++
}

// PostEvent queues a synthetic event. Non-blocking: events are dropped
// when the queue is full.
func (b *NullBackend) PostEvent(ev Event) {
	select {
	case b.events <- ev:
	default:
	}
}

// Resize simulates a terminal resize.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	cb := b.resizeCb
	b.mu.Unlock()
	if cb != nil {
		cb(width, height)
	}
	b.PostEvent(ResizeEvent(width, height))
}

// IsRaw reports the current mode for assertions.
func (b *NullBackend) IsRaw() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.raw
}

// ModeTransitions returns the raw enter/exit counts.
func (b *NullBackend) ModeTransitions() (enters, exits int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rawEnters, b.rawExits
}

// Writes returns the captured styled writes since the last Clear.
func (b *NullBackend) Writes() []WriteRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]WriteRecord, len(b.writes))
	copy(out, b.writes)
	return out
}

// CursorPosition returns the cursor state for assertions.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}
