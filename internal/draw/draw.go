// Package draw renders to ANSI terminals: a half-block color canvas with
// diffed output, chunked writers for SSH links, and text measurement.
package draw

// Point is a position on the canvas in pixel units.
type Point struct {
	X, Y float64
}

// Glyphs the canvas and gauges are built from.
const (
	BlockEmpty     = ' '
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ColorReset clears every SGR attribute.
const ColorReset = "\033[0m"

var shadeRamp = [...]rune{BlockEmpty, BlockLight, BlockMedium, BlockDark, BlockFull}

// ShadeLevel maps a fill fraction in [0, 1] to a shade glyph. Values outside
// the range clamp to empty or full.
func ShadeLevel(intensity float64) rune {
	switch {
	case intensity <= 0:
		return BlockEmpty
	case intensity >= 1:
		return BlockFull
	}
	return shadeRamp[int(intensity*float64(len(shadeRamp)-1))]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
