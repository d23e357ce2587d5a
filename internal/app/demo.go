package app

import (
	"fmt"
	"time"

	"github.com/dshills/termforge/internal/term"
)

// demoSwatches are the styles painted across the top of the demo
// screen, exercising true color through the degradation path.
var demoSwatches = []struct {
	label string
	style term.Style
}{
	{"red", term.DefaultStyle().WithForeground(term.RGB(0xE0, 0x40, 0x40)).Bold()},
	{"green", term.DefaultStyle().WithForeground(term.RGB(0x40, 0xC0, 0x40))},
	{"blue", term.DefaultStyle().WithForeground(term.RGB(0x40, 0x80, 0xE0)).Underline()},
	{"reverse", term.DefaultStyle().Reverse()},
}

// RunDemo drives the interactive demo: raw mode, styled output, and
// an echo loop that exits on q, Escape, or Ctrl+C.
func (a *Application) RunDemo() error {
	a.mu.Lock()
	backend := a.backend
	a.mu.Unlock()
	if backend == nil {
		return ErrNotBootstrapped
	}

	if err := backend.EnterRaw(); err != nil {
		return err
	}
	defer func() {
		if err := backend.ExitRaw(); err != nil {
			a.logger.WithComponent("demo").Warn("mode restore: %v", err)
		}
	}()

	backend.OnResize(func(w, h int) {
		a.logger.WithComponent("demo").Debug("resize %dx%d", w, h)
	})

	a.drawDemoScreen(backend)
	return a.demoLoop(backend)
}

func (a *Application) drawDemoScreen(backend term.Backend) {
	backend.Clear()
	w, h := backend.Size()
	caps := backend.Capabilities()

	title := "termforge demo"
	backend.MoveCursor((w-term.DisplayWidth(title))/2, 0)
	_ = backend.Write(title, term.DefaultStyle().Bold())

	backend.MoveCursor(0, 2)
	_ = backend.Write(fmt.Sprintf("%dx%d, %d colors", w, h, caps.Colors), term.DefaultStyle())

	backend.MoveCursor(0, 4)
	for _, sw := range demoSwatches {
		_ = backend.Write(sw.label+" ", sw.style)
	}

	backend.MoveCursor(0, 6)
	_ = backend.Write("press keys to echo, q to quit", term.DefaultStyle())
	backend.MoveCursor(0, 8)
}

// demoLoop echoes events until a quit key arrives.
func (a *Application) demoLoop(backend term.Backend) error {
	for {
		ev, err := backend.ReadEvent(time.Second)
		if err != nil {
			switch err {
			case term.ErrReadTimeout:
				continue
			case term.ErrBackendClosed:
				return nil
			default:
				return err
			}
		}

		switch ev.Type {
		case term.EventResize:
			a.drawDemoScreen(backend)
		case term.EventKey:
			if isQuitKey(ev) {
				return nil
			}
			backend.MoveCursor(0, 8)
			line := ev.String()
			// Pad over the previous echo instead of assuming an
			// erase-line sequence exists on this variant.
			if pad := 40 - term.DisplayWidth(line); pad > 0 {
				line += fmt.Sprintf("%*s", pad, "")
			}
			_ = backend.Write(line, term.DefaultStyle().WithForeground(term.ColorCyan))
		}
	}
}

// isQuitKey reports whether the event ends the demo.
func isQuitKey(ev term.Event) bool {
	if ev.Key == term.KeyEscape {
		return true
	}
	if ev.Key == term.KeyRune {
		if ev.Rune == 'q' && ev.Mod == term.ModNone {
			return true
		}
		if ev.Rune == 'c' && ev.Mod.Has(term.ModCtrl) {
			return true
		}
	}
	return false
}
