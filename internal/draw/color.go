package draw

import (
	"math"
	"strconv"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an xterm-256 palette index. The zero value means "no pixel".
type Color uint8

// Palette entries used across the game.
const (
	None     Color = 0
	White    Color = 231
	Cyan     Color = 51
	Blue     Color = 39
	Red      Color = 197
	Green    Color = 48
	Yellow   Color = 220
	Orange   Color = 208
	Magenta  Color = 201
	Gray     Color = 245
	DarkGray Color = 238
)

// FogLevels is the number of distinct depth-fog steps.
const FogLevels = 8

// fogTarget is the color distant geometry fades into.
var fogTarget = colorful.Color{R: 0.02, G: 0.02, B: 0.06}

type lab struct{ l, a, b float64 }

var (
	palette    [256]colorful.Color
	paletteLab [256]lab

	fogOnce  sync.Once
	fogTable [256][FogLevels]Color

	hexCache sync.Map // string -> Color
)

func init() {
	system := [16][3]uint8{
		{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
		{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
		{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, c := range system {
		palette[i] = rgb8(c[0], c[1], c[2])
	}
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				palette[16+36*r+6*g+b] = rgb8(levels[r], levels[g], levels[b])
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		palette[232+i] = rgb8(v, v, v)
	}
	for i, c := range palette {
		l, a, b := c.Lab()
		paletteLab[i] = lab{l, a, b}
	}
}

func rgb8(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Nearest maps an arbitrary color onto the closest entry of the 240-color
// extended palette. The 16 system colors are skipped because terminals
// theme them.
func Nearest(c colorful.Color) Color {
	l, a, b := c.Lab()
	best, bestD := 16, math.MaxFloat64
	for i := 16; i < 256; i++ {
		p := paletteLab[i]
		dl, da, db := l-p.l, a-p.a, b-p.b
		if d := dl*dl + da*da + db*db; d < bestD {
			best, bestD = i, d
		}
	}
	return Color(best)
}

// Hex maps a "#rrggbb" string onto the palette. Malformed input yields White.
func Hex(s string) Color {
	if v, ok := hexCache.Load(s); ok {
		return v.(Color)
	}
	c, err := colorful.Hex(s)
	col := White
	if err == nil {
		col = Nearest(c)
	}
	hexCache.Store(s, col)
	return col
}

// RGB returns the color's palette value.
func (c Color) RGB() colorful.Color {
	return palette[c]
}

// Hex returns the color's palette value as "#rrggbb".
func (c Color) Hex() string {
	return palette[c].Hex()
}

// Fog fades c toward the background. t runs from 0 (no fog) to 1 (fully
// faded); it is quantized to FogLevels steps.
func (c Color) Fog(t float64) Color {
	if c == None || t <= 0 {
		return c
	}
	fogOnce.Do(buildFog)
	level := int(t * FogLevels)
	if level >= FogLevels {
		level = FogLevels - 1
	}
	return fogTable[c][level]
}

func buildFog() {
	for i := 1; i < 256; i++ {
		for lvl := 0; lvl < FogLevels; lvl++ {
			t := float64(lvl) / FogLevels
			fogTable[i][lvl] = Nearest(palette[i].BlendLab(fogTarget, t))
		}
	}
}

// fgSeq and bgSeq cache SGR sequences per palette index.
var fgSeq, bgSeq [256]string

func init() {
	for i := range fgSeq {
		n := strconv.Itoa(i)
		fgSeq[i] = "\033[38;5;" + n + "m"
		bgSeq[i] = "\033[48;5;" + n + "m"
	}
}

// Foreground returns the SGR sequence selecting c as text color.
func (c Color) Foreground() string { return fgSeq[c] }

// Background returns the SGR sequence selecting c as background color.
func (c Color) Background() string { return bgSeq[c] }
