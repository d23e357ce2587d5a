package term

import "testing"

func TestSGR(t *testing.T) {
	tests := []struct {
		name   string
		style  Style
		colors int
		want   string
	}{
		{"default style", DefaultStyle(), 1 << 24, ""},
		{
			"basic foreground",
			DefaultStyle().WithForeground(Indexed(1)),
			16,
			"\x1b[0;31m",
		},
		{
			"bright foreground",
			DefaultStyle().WithForeground(Indexed(9)),
			16,
			"\x1b[0;91m",
		},
		{
			"basic background",
			DefaultStyle().WithBackground(Indexed(4)),
			16,
			"\x1b[0;44m",
		},
		{
			"extended palette",
			DefaultStyle().WithForeground(Indexed(200)),
			256,
			"\x1b[0;38;5;200m",
		},
		{
			"true color",
			DefaultStyle().WithForeground(RGB(18, 52, 86)),
			1 << 24,
			"\x1b[0;38;2;18;52;86m",
		},
		{
			"true color background",
			DefaultStyle().WithBackground(RGB(1, 2, 3)),
			1 << 24,
			"\x1b[0;48;2;1;2;3m",
		},
		{
			"attributes with color",
			DefaultStyle().WithForeground(RGB(255, 0, 0)).Bold().Underline(),
			1 << 24,
			"\x1b[0;1;4;38;2;255;0;0m",
		},
		{
			"reverse only",
			DefaultStyle().Reverse(),
			16,
			"\x1b[0;7m",
		},
		{
			"true color degraded to 16",
			DefaultStyle().WithForeground(RGB(255, 0, 0)),
			16,
			"\x1b[0;91m",
		},
		{
			"color dropped below 16",
			DefaultStyle().WithForeground(RGB(255, 0, 0)),
			8,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sgr(tt.style, tt.colors); got != tt.want {
				t.Errorf("sgr() = %q, want %q", got, tt.want)
			}
		})
	}
}
