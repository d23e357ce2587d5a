package term

import (
	"errors"
	"testing"
	"time"
)

func TestNullBackendContract(t *testing.T) {
	b := NewNullBackend(80, 24)
	if !b.Capabilities().Meets(MinCapabilities) {
		t.Fatal("null backend must satisfy the minimum contract")
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("Size = %dx%d, want 80x24", w, h)
	}
	b.Shutdown()
}

func TestNullBackendRawLifecycle(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.EnterRaw(); err != nil {
		t.Fatalf("EnterRaw: %v", err)
	}
	if !b.IsRaw() {
		t.Error("not raw after EnterRaw")
	}
	if err := b.EnterRaw(); err != nil {
		t.Fatalf("second EnterRaw: %v", err)
	}
	if err := b.ExitRaw(); err != nil {
		t.Fatalf("ExitRaw: %v", err)
	}
	if b.IsRaw() {
		t.Error("still raw after ExitRaw")
	}
	enters, exits := b.ModeTransitions()
	if enters != 1 || exits != 1 {
		t.Errorf("transitions = %d/%d, want 1/1", enters, exits)
	}
}

func TestNullBackendShutdownRestoresMode(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.EnterRaw(); err != nil {
		t.Fatalf("EnterRaw: %v", err)
	}
	b.Shutdown()
	if b.IsRaw() {
		t.Error("raw mode survived Shutdown")
	}
	b.Shutdown() // idempotent
	if err := b.EnterRaw(); !errors.Is(err, ErrBackendClosed) {
		t.Errorf("EnterRaw after Shutdown = %v, want ErrBackendClosed", err)
	}
}

func TestNullBackendWritesQuantized(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.SetColors(16)
	red := DefaultStyle().WithForeground(RGB(255, 0, 0))
	if err := b.Write("hello", red); err != nil {
		t.Fatalf("Write: %v", err)
	}
	writes := b.Writes()
	if len(writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(writes))
	}
	fg := writes[0].Style.Foreground
	if !fg.Indexed || fg.R != 9 {
		t.Errorf("recorded foreground = %v, want idx(9)", fg)
	}

	b.Clear()
	if len(b.Writes()) != 0 {
		t.Error("Clear should drop recorded writes")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.PostEvent(RuneEvent('q', ModNone))
	ev, err := b.ReadEvent(time.Second)
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	if ev.Rune != 'q' {
		t.Errorf("event = %v, want rune q", ev)
	}

	if _, err := b.ReadEvent(10 * time.Millisecond); !errors.Is(err, ErrReadTimeout) {
		t.Errorf("empty queue = %v, want ErrReadTimeout", err)
	}

	b.Shutdown()
	if _, err := b.ReadEvent(time.Second); !errors.Is(err, ErrBackendClosed) {
		t.Errorf("after Shutdown = %v, want ErrBackendClosed", err)
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	var cbW, cbH int
	b.OnResize(func(w, h int) { cbW, cbH = w, h })

	b.Resize(120, 40)
	if cbW != 120 || cbH != 40 {
		t.Errorf("callback got %dx%d, want 120x40", cbW, cbH)
	}
	w, h := b.Size()
	if w != 120 || h != 40 {
		t.Errorf("Size = %dx%d, want 120x40", w, h)
	}
	ev, err := b.ReadEvent(time.Second)
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	if ev.Type != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Errorf("resize event = %v, want 120x40", ev)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.MoveCursor(5, 7)
	b.HideCursor()
	x, y, visible := b.CursorPosition()
	if x != 5 || y != 7 || visible {
		t.Errorf("cursor = (%d,%d) visible=%v, want (5,7) hidden", x, y, visible)
	}
	b.ShowCursor()
	if _, _, visible := b.CursorPosition(); !visible {
		t.Error("cursor should be visible after ShowCursor")
	}
}
