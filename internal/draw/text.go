package draw

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width columns, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Wrap breaks s into lines no wider than width columns, splitting on spaces.
// Words wider than width are truncated.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var (
		lines []string
		line  strings.Builder
		lw    int
	)
	for _, word := range strings.Fields(s) {
		ww := Width(word)
		if ww > width {
			word, ww = Truncate(word, width), width
		}
		switch {
		case lw == 0:
			line.WriteString(word)
			lw = ww
		case lw+1+ww <= width:
			line.WriteByte(' ')
			line.WriteString(word)
			lw += 1 + ww
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lw = ww
		}
	}
	if lw > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// PadRight pads s with spaces to exactly width columns, truncating if
// needed. Fixed-width fields keep shrinking values from leaving residue.
func PadRight(s string, width int) string {
	if Width(s) > width {
		s = Truncate(s, width)
	}
	return runewidth.FillRight(s, width)
}
