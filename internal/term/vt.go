//go:build !windows

package term

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2/terminfo"
	"github.com/gdamore/tcell/v2/terminfo/dynamic"
	"golang.org/x/term"

	// Compiled-in terminfo entries for the common terminals; dynamic
	// lookup via infocmp covers the rest.
	_ "github.com/gdamore/tcell/v2/terminfo/base"
)

// escDelay is how long a lone ESC may sit in the input buffer before
// it is delivered as the Escape key rather than the start of a
// sequence.
const escDelay = 25 * time.Millisecond

// vtSeqs are the control sequences the VT backend emits. Filled from
// the terminfo entry for $TERM, with hardcoded ANSI fallbacks when the
// database has no answer.
type vtSeqs struct {
	clear      string
	showCursor string
	hideCursor string
	bell       string
	setCursor  func(x, y int) string
}

func defaultSeqs() vtSeqs {
	return vtSeqs{
		clear:      "\x1b[H\x1b[2J",
		showCursor: "\x1b[?25h",
		hideCursor: "\x1b[?25l",
		bell:       "\a",
		setCursor: func(x, y int) string {
			return fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)
		},
	}
}

// lookupTerm resolves sequences and color depth for a terminal name.
func lookupTerm(name, colorterm string) (vtSeqs, int) {
	seqs := defaultSeqs()
	colors := 16

	ti, err := terminfo.LookupTerminfo(name)
	if err != nil {
		ti, _, err = dynamic.LoadTerminfo(name)
	}
	if err == nil {
		if ti.Clear != "" {
			seqs.clear = ti.Clear
		}
		if ti.ShowCursor != "" {
			seqs.showCursor = ti.ShowCursor
		}
		if ti.HideCursor != "" {
			seqs.hideCursor = ti.HideCursor
		}
		if ti.Bell != "" {
			seqs.bell = ti.Bell
		}
		if ti.SetCursor != "" {
			seqs.setCursor = ti.TGoto
		}
		if ti.Colors > colors {
			colors = ti.Colors
		}
	}
	if colorterm == "truecolor" || colorterm == "24bit" || strings.Contains(name, "truecolor") {
		colors = 1 << 24
	}
	return seqs, colors
}

// VT is the escape-sequence backend: raw-mode input decoded from the
// tty byte stream, styled output emitted as inline control sequences.
type VT struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	saved    *term.State
	raw      bool
	inited   bool
	closed   bool
	caps     Capabilities
	seqs     vtSeqs
	resizeCb func(width, height int)

	events chan Event
	rawCh  chan []byte
	done   chan struct{}

	stopResize func()
}

// NewVT creates a VT backend over stdin/stdout.
func NewVT() *VT {
	return NewVTFiles(os.Stdin, os.Stdout)
}

// NewVTFiles creates a VT backend over explicit files. Used by tests
// to drive the backend through a pty pair.
func NewVTFiles(in, out *os.File) *VT {
	seqs, colors := lookupTerm(os.Getenv("TERM"), os.Getenv("COLORTERM"))
	v := &VT{
		in:     in,
		out:    out,
		seqs:   seqs,
		events: make(chan Event, 64),
		rawCh:  make(chan []byte, 8),
		done:   make(chan struct{}),
	}
	v.caps = Capabilities{
		RawInput:         term.IsTerminal(int(in.Fd())),
		CursorAddressing: true,
		ResizeEvents:     true,
		Colors:           colors,
	}
	return v
}

// Capabilities returns the variant's static capability set.
func (v *VT) Capabilities() Capabilities {
	return v.caps
}

// Init starts the input pipeline and resize notifications.
func (v *VT) Init() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrBackendClosed
	}
	if v.inited {
		return nil
	}
	v.inited = true

	go v.readLoop()
	go v.assembleLoop()
	v.stopResize = v.notifyResize()
	return nil
}

// Shutdown restores the original terminal mode and stops the input
// pipeline. Idempotent and safe from a termination handler.
func (v *VT) Shutdown() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	stop := v.stopResize
	v.restoreLocked()
	_, _ = v.out.WriteString(v.seqs.showCursor)
	v.mu.Unlock()

	close(v.done)
	if stop != nil {
		stop()
	}
}

// EnterRaw switches the tty to raw mode, saving the prior state.
// Idempotent: entering twice saves once.
func (v *VT) EnterRaw() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrBackendClosed
	}
	if v.raw {
		return nil
	}
	state, err := term.MakeRaw(int(v.in.Fd()))
	if err != nil {
		return err
	}
	v.saved = state
	v.raw = true
	return nil
}

// ExitRaw restores the mode saved by EnterRaw. Idempotent; a failure
// wraps ErrModeRestore and is safe to ignore beyond logging.
func (v *VT) ExitRaw() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.restoreLocked()
}

func (v *VT) restoreLocked() error {
	if !v.raw || v.saved == nil {
		return nil
	}
	v.raw = false
	if err := term.Restore(int(v.in.Fd()), v.saved); err != nil {
		return fmt.Errorf("%w: %v", ErrModeRestore, err)
	}
	return nil
}

// IsRaw reports whether the tty is currently in raw mode.
func (v *VT) IsRaw() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.raw
}

// readLoop pulls raw bytes off the tty for the assembler.
func (v *VT) readLoop() {
	for {
		buf := make([]byte, 256)
		n, err := v.in.Read(buf)
		if n > 0 {
			select {
			case v.rawCh <- buf[:n]:
			case <-v.done:
				return
			}
		}
		if err != nil {
			close(v.rawCh)
			return
		}
	}
}

// assembleLoop decodes raw bytes into events. A pending partial
// sequence is force-flushed after escDelay so a lone Escape press is
// not held hostage by sequence ambiguity.
func (v *VT) assembleLoop() {
	var dec decoder
	drain := func(force bool) {
		for {
			ev, ok := dec.next(force)
			if !ok {
				return
			}
			select {
			case v.events <- ev:
			case <-v.done:
			}
		}
	}

	for {
		var flush <-chan time.Time
		if dec.pending() {
			flush = time.After(escDelay)
		}
		select {
		case p, ok := <-v.rawCh:
			if !ok {
				drain(true)
				return
			}
			dec.feed(p)
			drain(false)
		case <-flush:
			drain(true)
		case <-v.done:
			return
		}
	}
}

// postResize queues a resize event and fires the callback.
func (v *VT) postResize() {
	w, h := v.Size()
	v.mu.Lock()
	cb := v.resizeCb
	v.mu.Unlock()
	if cb != nil {
		cb(w, h)
	}
	select {
	case v.events <- ResizeEvent(w, h):
	case <-v.done:
	default:
		// Collapsing queued resizes is fine; the latest size wins.
	}
}

// ReadEvent returns the next input event. Zero timeout blocks.
func (v *VT) ReadEvent(timeout time.Duration) (Event, error) {
	if timeout <= 0 {
		select {
		case ev := <-v.events:
			return ev, nil
		case <-v.done:
			return Event{}, ErrBackendClosed
		}
	}
	select {
	case ev := <-v.events:
		return ev, nil
	case <-v.done:
		return Event{}, ErrBackendClosed
	case <-time.After(timeout):
		return Event{}, ErrReadTimeout
	}
}

// Write emits styled text at the cursor. Colors beyond the terminal's
// depth degrade to the nearest supported rendering.
func (v *VT) Write(text string, style Style) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrBackendClosed
	}
	seq := sgr(style, v.caps.Colors)
	if seq == "" {
		_, err := v.out.WriteString(text)
		return err
	}
	_, err := v.out.WriteString(seq + text + sgrReset)
	return err
}

// MoveCursor positions the cursor (0-indexed).
func (v *VT) MoveCursor(x, y int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = v.out.WriteString(v.seqs.setCursor(x, y))
}

// ShowCursor makes the cursor visible.
func (v *VT) ShowCursor() {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = v.out.WriteString(v.seqs.showCursor)
}

// HideCursor hides the cursor.
func (v *VT) HideCursor() {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = v.out.WriteString(v.seqs.hideCursor)
}

// Clear erases the screen.
func (v *VT) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = v.out.WriteString(v.seqs.clear)
}

// Size returns the terminal dimensions, falling back to 80x24 when
// the tty cannot be queried.
func (v *VT) Size() (int, int) {
	w, h, err := term.GetSize(int(v.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// OnResize registers a resize callback.
func (v *VT) OnResize(cb func(width, height int)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resizeCb = cb
}

// Beep rings the terminal bell.
func (v *VT) Beep() {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = v.out.WriteString(v.seqs.bell)
}
