package term

import (
	"strconv"
	"strings"
)

// sgrReset restores the terminal's default rendition.
const sgrReset = "\x1b[0m"

// sgr builds the SGR escape sequence selecting the given style at the
// given color depth. Colors are quantized to the depth first; the
// default style yields an empty string so unstyled writes stay clean.
func sgr(style Style, colors int) string {
	style = style.Quantize(colors)
	if style.IsDefault() {
		return ""
	}

	var b strings.Builder
	b.WriteString("\x1b[0")

	if style.Attributes.Has(AttrBold) {
		b.WriteString(";1")
	}
	if style.Attributes.Has(AttrDim) {
		b.WriteString(";2")
	}
	if style.Attributes.Has(AttrItalic) {
		b.WriteString(";3")
	}
	if style.Attributes.Has(AttrUnderline) {
		b.WriteString(";4")
	}
	if style.Attributes.Has(AttrBlink) {
		b.WriteString(";5")
	}
	if style.Attributes.Has(AttrReverse) {
		b.WriteString(";7")
	}

	writeSGRColor(&b, style.Foreground, false)
	writeSGRColor(&b, style.Background, true)

	b.WriteByte('m')
	return b.String()
}

// writeSGRColor appends the color selection parameters for one
// direction. Indexed colors below 16 use the classic 30-37/90-97
// range for maximum compatibility; higher indexes use 38;5 and true
// color uses 38;2.
func writeSGRColor(b *strings.Builder, c Color, background bool) {
	if c.Default {
		return
	}
	if c.Indexed {
		idx := int(c.R)
		if idx < 16 {
			base := 30
			if idx >= 8 {
				base = 90 - 8
			}
			if background {
				base += 10
			}
			b.WriteByte(';')
			b.WriteString(strconv.Itoa(base + idx))
			return
		}
		if background {
			b.WriteString(";48;5;")
		} else {
			b.WriteString(";38;5;")
		}
		b.WriteString(strconv.Itoa(idx))
		return
	}
	if background {
		b.WriteString(";48;2;")
	} else {
		b.WriteString(";38;2;")
	}
	b.WriteString(strconv.Itoa(int(c.R)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.G)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.B)))
}
