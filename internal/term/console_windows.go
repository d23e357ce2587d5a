//go:build windows

package term

import (
	"fmt"
	"os"
	"sync"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                     = windows.NewLazySystemDLL("kernel32.dll")
	procAllocConsole             = kernel32.NewProc("AllocConsole")
	procGetConsoleWindow         = kernel32.NewProc("GetConsoleWindow")
	procReadConsoleInputW        = kernel32.NewProc("ReadConsoleInputW")
	procSetConsoleTextAttribute  = kernel32.NewProc("SetConsoleTextAttribute")
	procSetConsoleCursorPosition = kernel32.NewProc("SetConsoleCursorPosition")
	procSetConsoleCursorInfo     = kernel32.NewProc("SetConsoleCursorInfo")
	procGetConsoleCursorInfo     = kernel32.NewProc("GetConsoleCursorInfo")
	procFillConsoleOutputChar    = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttr    = kernel32.NewProc("FillConsoleOutputAttribute")
)

// Input record event types and modifier state bits, per wincon.h.
const (
	keyEventType          = 0x0001
	windowBufferSizeEvent = 0x0004

	shiftPressed     = 0x0010
	leftCtrlPressed  = 0x0008
	rightCtrlPressed = 0x0004
	leftAltPressed   = 0x0002
	rightAltPressed  = 0x0001
)

type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

type coord struct {
	x, y int16
}

type consoleCursorInfo struct {
	size    uint32
	visible int32
}

// vkKeys maps virtual key codes to keys. Character keys arrive with a
// nonzero unicodeChar and are handled separately.
var vkKeys = map[uint16]Key{
	0x08: KeyBackspace, 0x09: KeyTab, 0x0D: KeyEnter, 0x1B: KeyEscape,
	0x21: KeyPageUp, 0x22: KeyPageDown, 0x23: KeyEnd, 0x24: KeyHome,
	0x25: KeyLeft, 0x26: KeyUp, 0x27: KeyRight, 0x28: KeyDown,
	0x2D: KeyInsert, 0x2E: KeyDelete,
	0x70: KeyF1, 0x71: KeyF2, 0x72: KeyF3, 0x73: KeyF4,
	0x74: KeyF5, 0x75: KeyF6, 0x76: KeyF7, 0x77: KeyF8,
	0x78: KeyF9, 0x79: KeyF10, 0x7A: KeyF11, 0x7B: KeyF12,
}

// Console is the native-API backend: input read as structured key
// records, output written through console calls. With the VT-output
// override, output switches to escape sequences while input stays on
// the console API.
type Console struct {
	in  windows.Handle
	out windows.Handle

	mu          sync.Mutex
	savedIn     uint32
	savedOut    uint32
	raw         bool
	inited      bool
	closed      bool
	vtOut       bool
	defaultAttr uint16
	resizeCb    func(width, height int)

	events chan Event
	done   chan struct{}
}

// NewConsole creates a console backend over the process's console,
// allocating one when the process has none. vtOutput switches the
// output path to escape sequences.
func NewConsole(vtOutput bool) (*Console, error) {
	if err := ensureConsole(); err != nil {
		return nil, err
	}
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, err
	}
	out, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return nil, err
	}

	c := &Console{
		in:          in,
		out:         out,
		vtOut:       vtOutput,
		defaultAttr: 0x07,
		events:      make(chan Event, 64),
		done:        make(chan struct{}),
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(out, &info); err == nil {
		c.defaultAttr = info.Attributes
	}
	return c, nil
}

// ensureConsole attaches the process to a console, allocating a new
// one when launched from a GUI context.
func ensureConsole() error {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd != 0 {
		return nil
	}
	if r, _, err := procAllocConsole.Call(); r == 0 {
		return fmt.Errorf("console allocation: %w", err)
	}
	// Rebind the standard streams to the fresh console.
	for _, s := range []struct {
		name string
		fd   uint32
		file **os.File
	}{
		{"CONIN$", windows.STD_INPUT_HANDLE, &os.Stdin},
		{"CONOUT$", windows.STD_OUTPUT_HANDLE, &os.Stdout},
		{"CONOUT$", windows.STD_ERROR_HANDLE, &os.Stderr},
	} {
		f, err := os.OpenFile(s.name, os.O_RDWR, 0)
		if err != nil {
			return err
		}
		if err := windows.SetStdHandle(s.fd, windows.Handle(f.Fd())); err != nil {
			return err
		}
		*s.file = f
	}
	return nil
}

// Capabilities returns the variant's static capability set. The
// console API renders 16 colors; the VT-output override unlocks true
// color.
func (c *Console) Capabilities() Capabilities {
	colors := 16
	if c.vtOut {
		colors = 1 << 24
	}
	return Capabilities{
		RawInput:         true,
		CursorAddressing: true,
		ResizeEvents:     true,
		Colors:           colors,
	}
}

// Init enables window-resize records and starts the input reader.
func (c *Console) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrBackendClosed
	}
	if c.inited {
		return nil
	}
	if c.vtOut {
		var mode uint32
		if err := windows.GetConsoleMode(c.out, &mode); err != nil {
			return err
		}
		c.savedOut = mode
		if err := windows.SetConsoleMode(c.out, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			return err
		}
	}
	c.inited = true
	go c.readLoop()
	return nil
}

// Shutdown restores the saved console modes. Idempotent.
func (c *Console) Shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.restoreLocked()
	if c.vtOut && c.savedOut != 0 {
		_ = windows.SetConsoleMode(c.out, c.savedOut)
	}
	c.mu.Unlock()
	close(c.done)
}

// EnterRaw disables line buffering, echo, and input processing, and
// enables window-size records.
func (c *Console) EnterRaw() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrBackendClosed
	}
	if c.raw {
		return nil
	}
	var mode uint32
	if err := windows.GetConsoleMode(c.in, &mode); err != nil {
		return err
	}
	c.savedIn = mode
	raw := mode &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	raw |= windows.ENABLE_WINDOW_INPUT
	if err := windows.SetConsoleMode(c.in, raw); err != nil {
		return err
	}
	c.raw = true
	return nil
}

// ExitRaw restores the mode saved by EnterRaw.
func (c *Console) ExitRaw() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restoreLocked()
}

func (c *Console) restoreLocked() error {
	if !c.raw {
		return nil
	}
	c.raw = false
	if err := windows.SetConsoleMode(c.in, c.savedIn); err != nil {
		return fmt.Errorf("%w: %v", ErrModeRestore, err)
	}
	return nil
}

// readLoop converts console input records into events.
func (c *Console) readLoop() {
	var rec inputRecord
	for {
		select {
		case <-c.done:
			return
		default:
		}
		var n uint32
		r, _, _ := procReadConsoleInputW.Call(
			uintptr(c.in),
			uintptr(unsafe.Pointer(&rec)),
			1,
			uintptr(unsafe.Pointer(&n)),
		)
		if r == 0 || n == 0 {
			continue
		}
		switch rec.eventType {
		case keyEventType:
			ke := (*keyEventRecord)(unsafe.Pointer(&rec.event[0]))
			if ev, ok := decodeKeyRecord(ke); ok {
				c.post(ev)
			}
		case windowBufferSizeEvent:
			sz := (*coord)(unsafe.Pointer(&rec.event[0]))
			w, h := int(sz.x), int(sz.y)
			c.mu.Lock()
			cb := c.resizeCb
			c.mu.Unlock()
			if cb != nil {
				cb(w, h)
			}
			c.post(ResizeEvent(w, h))
		}
	}
}

func (c *Console) post(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// decodeKeyRecord maps a key-down record to an event. Key-up records
// and bare modifier presses are dropped.
func decodeKeyRecord(ke *keyEventRecord) (Event, bool) {
	if ke.keyDown == 0 {
		return Event{}, false
	}
	var mod ModMask
	if ke.controlKeyState&shiftPressed != 0 {
		mod |= ModShift
	}
	if ke.controlKeyState&(leftCtrlPressed|rightCtrlPressed) != 0 {
		mod |= ModCtrl
	}
	if ke.controlKeyState&(leftAltPressed|rightAltPressed) != 0 {
		mod |= ModAlt
	}

	if key, ok := vkKeys[ke.virtualKeyCode]; ok {
		return KeyEvent(key, mod), true
	}
	if ke.unicodeChar == 0 {
		return Event{}, false
	}
	r := rune(ke.unicodeChar)
	if r < 0x20 {
		// Control chord delivered as a control code.
		return RuneEvent(rune('a'+r-1), mod|ModCtrl), true
	}
	return RuneEvent(r, mod&^ModShift), true
}

// ReadEvent returns the next input event. Zero timeout blocks.
func (c *Console) ReadEvent(timeout time.Duration) (Event, error) {
	if timeout <= 0 {
		select {
		case ev := <-c.events:
			return ev, nil
		case <-c.done:
			return Event{}, ErrBackendClosed
		}
	}
	select {
	case ev := <-c.events:
		return ev, nil
	case <-c.done:
		return Event{}, ErrBackendClosed
	case <-time.After(timeout):
		return Event{}, ErrReadTimeout
	}
}

// Write emits styled text at the cursor. The console-API path maps the
// style to a 16-color text attribute; the VT-output path emits escape
// sequences at full depth.
func (c *Console) Write(text string, style Style) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrBackendClosed
	}
	if c.vtOut {
		seq := sgr(style, 1<<24)
		if seq == "" {
			return c.writeConsole(text)
		}
		return c.writeConsole(seq + text + sgrReset)
	}

	attr := consoleAttr(style, c.defaultAttr)
	procSetConsoleTextAttribute.Call(uintptr(c.out), uintptr(attr))
	err := c.writeConsole(text)
	procSetConsoleTextAttribute.Call(uintptr(c.out), uintptr(c.defaultAttr))
	return err
}

func (c *Console) writeConsole(text string) error {
	u := utf16.Encode([]rune(text))
	if len(u) == 0 {
		return nil
	}
	var written uint32
	return windows.WriteConsole(c.out, &u[0], uint32(len(u)), &written, nil)
}

// consoleAttr maps a style to a console text attribute word. Console
// color bits are blue/green/red low-to-high, the reverse of the ANSI
// palette index, so the quantized index has its outer bits swapped.
func consoleAttr(style Style, def uint16) uint16 {
	style = style.Quantize(16)
	attr := def

	if !style.Foreground.Default {
		attr = (attr &^ 0x0F) | attrBits(style.Foreground.R)
	}
	if !style.Background.Default {
		attr = (attr &^ 0xF0) | attrBits(style.Background.R)<<4
	}
	if style.Attributes.Has(AttrBold) {
		attr |= 0x08
	}
	if style.Attributes.Has(AttrReverse) {
		attr = (attr&0x0F)<<4 | (attr&0xF0)>>4
	}
	return attr
}

func attrBits(idx uint8) uint16 {
	bits := uint16(idx&0x02) | uint16(idx&0x01)<<2 | uint16(idx&0x04)>>2
	if idx >= 8 {
		bits |= 0x08
	}
	return bits
}

// MoveCursor positions the cursor (0-indexed).
func (c *Console) MoveCursor(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos := coord{x: int16(x), y: int16(y)}
	procSetConsoleCursorPosition.Call(uintptr(c.out), uintptr(*(*uint32)(unsafe.Pointer(&pos))))
}

func (c *Console) setCursorVisible(visible bool) {
	var info consoleCursorInfo
	procGetConsoleCursorInfo.Call(uintptr(c.out), uintptr(unsafe.Pointer(&info)))
	if visible {
		info.visible = 1
	} else {
		info.visible = 0
	}
	if info.size == 0 {
		info.size = 25
	}
	procSetConsoleCursorInfo.Call(uintptr(c.out), uintptr(unsafe.Pointer(&info)))
}

// ShowCursor makes the cursor visible.
func (c *Console) ShowCursor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCursorVisible(true)
}

// HideCursor hides the cursor.
func (c *Console) HideCursor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCursorVisible(false)
}

// Clear fills the screen buffer with spaces in the default attribute
// and homes the cursor.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err != nil {
		return
	}
	cells := uint32(info.Size.X) * uint32(info.Size.Y)
	home := coord{}
	var n uint32
	procFillConsoleOutputChar.Call(
		uintptr(c.out), uintptr(' '), uintptr(cells),
		uintptr(*(*uint32)(unsafe.Pointer(&home))), uintptr(unsafe.Pointer(&n)))
	procFillConsoleOutputAttr.Call(
		uintptr(c.out), uintptr(c.defaultAttr), uintptr(cells),
		uintptr(*(*uint32)(unsafe.Pointer(&home))), uintptr(unsafe.Pointer(&n)))
	procSetConsoleCursorPosition.Call(uintptr(c.out), uintptr(*(*uint32)(unsafe.Pointer(&home))))
}

// Size returns the visible window dimensions.
func (c *Console) Size() (int, int) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err != nil {
		return 80, 24
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	return w, h
}

// OnResize registers a resize callback.
func (c *Console) OnResize(cb func(width, height int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resizeCb = cb
}

// Beep plays the console bell.
func (c *Console) Beep() {
	windows.MessageBeep(0xFFFFFFFF)
}
