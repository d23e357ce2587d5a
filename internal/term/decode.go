package term

import "unicode/utf8"

// decoder turns a raw tty byte stream into key events. It implements
// the input half of the escape-sequence variant: CSI and SS3
// sequences, alt-prefixed keys, control chords, and UTF-8 runes.
type decoder struct {
	buf []byte
}

// feed appends raw bytes to the pending buffer.
func (d *decoder) feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// pending reports whether undecoded bytes remain.
func (d *decoder) pending() bool { return len(d.buf) > 0 }

// next decodes one event from the buffer. force resolves the escape
// ambiguity: when set, a lone ESC (or truncated sequence) decodes as
// the Escape key instead of waiting for more bytes. Unknown complete
// sequences are dropped. ok is false when more bytes are needed.
func (d *decoder) next(force bool) (Event, bool) {
	for len(d.buf) > 0 {
		ev, n, needMore := decodeNext(d.buf, force)
		if needMore {
			return Event{}, false
		}
		d.buf = d.buf[n:]
		if ev.Type != EventNone {
			return ev, true
		}
		// Dropped sequence; keep decoding.
	}
	return Event{}, false
}

// decodeNext decodes the first event in buf, returning the event, the
// bytes consumed, and whether the buffer ends mid-sequence.
func decodeNext(buf []byte, force bool) (ev Event, n int, needMore bool) {
	if len(buf) == 0 {
		return Event{}, 0, true
	}

	b := buf[0]
	switch {
	case b == 0x1B:
		return decodeEscape(buf, force)
	case b == 0x0D, b == 0x0A:
		return KeyEvent(KeyEnter, ModNone), 1, false
	case b == 0x09:
		return KeyEvent(KeyTab, ModNone), 1, false
	case b == 0x08, b == 0x7F:
		return KeyEvent(KeyBackspace, ModNone), 1, false
	case b == 0x00:
		return RuneEvent(' ', ModCtrl), 1, false
	case b < 0x20:
		// Control chord: 0x01-0x1A are Ctrl+A..Ctrl+Z.
		return RuneEvent(rune('a'+b-1), ModCtrl), 1, false
	default:
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(buf) && !force {
				return Event{}, 0, true
			}
			// Invalid byte; drop it.
			return Event{}, 1, false
		}
		return RuneEvent(r, ModNone), size, false
	}
}

// decodeEscape handles everything starting with ESC: CSI and SS3
// sequences and alt-prefixed keys.
func decodeEscape(buf []byte, force bool) (Event, int, bool) {
	if len(buf) == 1 {
		if force {
			return KeyEvent(KeyEscape, ModNone), 1, false
		}
		return Event{}, 0, true
	}

	switch buf[1] {
	case '[':
		return decodeCSI(buf, force)
	case 'O':
		return decodeSS3(buf, force)
	case 0x1B:
		// ESC ESC: a real Escape press followed by more input.
		return KeyEvent(KeyEscape, ModNone), 1, false
	default:
		// Alt-prefixed key.
		ev, n, needMore := decodeNext(buf[1:], force)
		if needMore {
			if force {
				return KeyEvent(KeyEscape, ModNone), 1, false
			}
			return Event{}, 0, true
		}
		if ev.Type == EventKey {
			ev.Mod |= ModAlt
		}
		return ev, n + 1, false
	}
}

// decodeCSI parses ESC [ params final.
func decodeCSI(buf []byte, force bool) (Event, int, bool) {
	// Find the final byte (0x40-0x7E).
	end := -1
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7E {
			end = i
			break
		}
	}
	if end < 0 {
		if force {
			return KeyEvent(KeyEscape, ModNone), 1, false
		}
		return Event{}, 0, true
	}

	params := parseCSIParams(buf[2:end])
	final := buf[end]
	n := end + 1
	mod := ModNone
	if len(params) >= 2 {
		mod = modFromParam(params[1])
	}

	switch final {
	case 'A':
		return KeyEvent(KeyUp, mod), n, false
	case 'B':
		return KeyEvent(KeyDown, mod), n, false
	case 'C':
		return KeyEvent(KeyRight, mod), n, false
	case 'D':
		return KeyEvent(KeyLeft, mod), n, false
	case 'H':
		return KeyEvent(KeyHome, mod), n, false
	case 'F':
		return KeyEvent(KeyEnd, mod), n, false
	case 'Z':
		return KeyEvent(KeyTab, ModShift), n, false
	case '~':
		if len(params) == 0 {
			return Event{}, n, false
		}
		if key, ok := tildeKeys[params[0]]; ok {
			return KeyEvent(key, mod), n, false
		}
		return Event{}, n, false
	case 'P', 'Q', 'R', 'S':
		// xterm-style CSI 1;mod P..S function keys.
		return KeyEvent(KeyF1+Key(final-'P'), mod), n, false
	default:
		// Unknown sequence: consume and drop.
		return Event{}, n, false
	}
}

// tildeKeys maps CSI ~ first parameters to keys.
var tildeKeys = map[int]Key{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown, 7: KeyHome, 8: KeyEnd,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5,
	17: KeyF6, 18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10,
	23: KeyF11, 24: KeyF12,
}

// decodeSS3 parses ESC O final (application-mode keys).
func decodeSS3(buf []byte, force bool) (Event, int, bool) {
	if len(buf) < 3 {
		if force {
			return KeyEvent(KeyEscape, ModNone), 1, false
		}
		return Event{}, 0, true
	}
	switch buf[2] {
	case 'P', 'Q', 'R', 'S':
		return KeyEvent(KeyF1+Key(buf[2]-'P'), ModNone), 3, false
	case 'A':
		return KeyEvent(KeyUp, ModNone), 3, false
	case 'B':
		return KeyEvent(KeyDown, ModNone), 3, false
	case 'C':
		return KeyEvent(KeyRight, ModNone), 3, false
	case 'D':
		return KeyEvent(KeyLeft, ModNone), 3, false
	case 'H':
		return KeyEvent(KeyHome, ModNone), 3, false
	case 'F':
		return KeyEvent(KeyEnd, ModNone), 3, false
	default:
		return Event{}, 3, false
	}
}

// parseCSIParams splits the semicolon-separated numeric parameters.
func parseCSIParams(raw []byte) []int {
	if len(raw) == 0 {
		return nil
	}
	params := make([]int, 0, 4)
	val, has := 0, false
	for _, b := range raw {
		switch {
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			has = true
		case b == ';':
			params = append(params, val)
			val, has = 0, false
		default:
			// Private markers and intermediates are ignored.
		}
	}
	if has {
		params = append(params, val)
	}
	return params
}

// modFromParam decodes the xterm modifier parameter: value-1 is a
// bitfield of shift(1), alt(2), ctrl(4).
func modFromParam(p int) ModMask {
	if p < 2 {
		return ModNone
	}
	bits := p - 1
	var mod ModMask
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}
