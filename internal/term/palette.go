package term

// basic16 is the conventional xterm rendering of the 16 base palette
// entries. Exact values vary by emulator; these are the de facto
// defaults used for nearest-color matching.
var basic16 = [16]Color{
	{R: 0x00, G: 0x00, B: 0x00},
	{R: 0x80, G: 0x00, B: 0x00},
	{R: 0x00, G: 0x80, B: 0x00},
	{R: 0x80, G: 0x80, B: 0x00},
	{R: 0x00, G: 0x00, B: 0x80},
	{R: 0x80, G: 0x00, B: 0x80},
	{R: 0x00, G: 0x80, B: 0x80},
	{R: 0xC0, G: 0xC0, B: 0xC0},
	{R: 0x80, G: 0x80, B: 0x80},
	{R: 0xFF, G: 0x00, B: 0x00},
	{R: 0x00, G: 0xFF, B: 0x00},
	{R: 0xFF, G: 0xFF, B: 0x00},
	{R: 0x00, G: 0x00, B: 0xFF},
	{R: 0xFF, G: 0x00, B: 0xFF},
	{R: 0x00, G: 0xFF, B: 0xFF},
	{R: 0xFF, G: 0xFF, B: 0xFF},
}

// cubeLevels are the channel values of the xterm 6x6x6 color cube.
var cubeLevels = [6]uint8{0x00, 0x5F, 0x87, 0xAF, 0xD7, 0xFF}

// paletteRGB returns the RGB rendering of an xterm-256 palette index:
// 0-15 basic colors, 16-231 the 6x6x6 cube, 232-255 the gray ramp.
func paletteRGB(index uint8) Color {
	switch {
	case index < 16:
		return basic16[index]
	case index < 232:
		i := int(index) - 16
		return Color{
			R: cubeLevels[i/36],
			G: cubeLevels[(i/6)%6],
			B: cubeLevels[i%6],
		}
	default:
		v := uint8(8 + 10*(int(index)-232))
		return Color{R: v, G: v, B: v}
	}
}
