package term

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Attribute represents text attributes (bold, underline, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrBlink               // Blinking text (rarely supported)
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color represents a color value: true color (RGB), a terminal
// palette index, or the terminal's default.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0}
	ColorGreen   = Color{R: 0, G: 255, B: 0}
	ColorBlue    = Color{R: 0, G: 0, B: 255}
	ColorYellow  = Color{R: 255, G: 255, B: 0}
	ColorCyan    = Color{R: 0, G: 255, B: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255}
)

// RGB creates a true color from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Indexed creates a palette color.
func Indexed(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// IsDefault returns true if this is the terminal's default color.
func (c Color) IsDefault() bool { return c.Default }

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Quantize degrades the color to the nearest one a terminal with the
// given color depth can show. True-color terminals get the color
// unchanged; 256- and 16-color terminals get the perceptually nearest
// palette entry (CIE-Lab distance); anything below 16 colors drops to
// default. Degradation is graceful by contract, never an error.
func (c Color) Quantize(colors int) Color {
	if c.Default {
		return c
	}
	if c.Indexed {
		if colors >= 256 || int(c.R) < colors {
			return c
		}
		// Palette index beyond depth: degrade via its RGB value.
		c = paletteRGB(c.R)
	}
	switch {
	case colors >= 1<<24:
		return c
	case colors >= 256:
		return Indexed(nearestPalette(c, 256))
	case colors >= 16:
		return Indexed(nearestPalette(c, 16))
	default:
		return ColorDefault
	}
}

// nearestPalette returns the index of the perceptually closest entry
// within the first n palette colors.
func nearestPalette(c Color, n int) uint8 {
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best := 0
	bestDist := -1.0
	for i := 0; i < n; i++ {
		p := paletteRGB(uint8(i))
		entry := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
		d := target.DistanceLab(entry)
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return uint8(best)
}

// Style represents the visual style of written text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with the bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Underline returns a new style with the underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Reverse returns a new style with reverse video added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() && s.Background.IsDefault() && s.Attributes == AttrNone
}

// Quantize degrades both colors to the given depth.
func (s Style) Quantize(colors int) Style {
	s.Foreground = s.Foreground.Quantize(colors)
	s.Background = s.Background.Quantize(colors)
	return s
}
