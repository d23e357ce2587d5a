package term

import "github.com/rivo/uniseg"

// DisplayWidth returns the number of terminal cells the string
// occupies: wide CJK runes count as two, combining marks as zero.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}
