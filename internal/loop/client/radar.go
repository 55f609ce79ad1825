package client

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/loop/world"
	"github.com/tomz197/career-run/internal/object"
)

const radarSubRows = config.RadarHeight * 2

// Radar cell contents. Drones overwrite asteroids.
const (
	radarEmpty byte = iota
	radarAsteroid
	radarDrone
	radarShip
)

// radarGrid is the top-down radar picture: columns span the lateral field,
// sub-rows span the course from RadarRange ahead (top) to RadarBehind
// behind the ship (bottom).
type radarGrid [radarSubRows][config.RadarWidth]byte

// plot fills g with the ship and every blip within radar range.
func (g *radarGrid) plot(blips []world.Blip, halfWidth float64) {
	*g = radarGrid{}
	span := float64(config.RadarRange + config.RadarBehind)

	toCell := func(x, ahead float64) (col, row int, ok bool) {
		if ahead > config.RadarRange || ahead < -config.RadarBehind {
			return 0, 0, false
		}
		col = int((x + halfWidth) / (2 * halfWidth) * config.RadarWidth)
		row = int((config.RadarRange - ahead) / span * radarSubRows)
		col = min(max(col, 0), config.RadarWidth-1)
		row = min(max(row, 0), radarSubRows-1)
		return col, row, true
	}

	for _, b := range blips {
		// The ship flies toward -Z, so "ahead" is the negated offset.
		col, row, ok := toCell(b.Offset.X, -b.Offset.Z)
		if !ok {
			continue
		}
		kind := radarAsteroid
		if b.Kind == object.Drone {
			kind = radarDrone
		}
		if g[row][col] < kind {
			g[row][col] = kind
		}
	}
	if col, row, ok := toCell(0, 0); ok {
		g[row][col] = radarShip
	}
}

// drawRadar draws the radar panel with half-block blips, two sub-rows per
// terminal row.
func (c *Client) drawRadar(col, row int, snap *world.Snapshot) int {
	// Offsets are relative to the ship, which itself roams ±MaxX.
	t := c.world.Tuning()
	c.radar.plot(snap.Blips, t.MaxX*t.FieldSpread/2+t.MaxX)

	st := c.styles
	border := st.accent
	c.writeText(col, row, border.Render("╭"+rule("─ RADAR: ACTIVE ", config.RadarWidth)+"╮"))

	var sb strings.Builder
	for r := range config.RadarHeight {
		sb.Reset()
		sb.WriteString(border.Render("│"))
		for x := range config.RadarWidth {
			top := c.radar[r*2][x]
			bot := c.radar[r*2+1][x]
			var ch rune
			switch {
			case top != radarEmpty && bot != radarEmpty:
				ch = draw.BlockFull
			case top != radarEmpty:
				ch = draw.BlockUpperHalf
			case bot != radarEmpty:
				ch = draw.BlockLowerHalf
			default:
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(c.blipStyle(max(top, bot)).Render(string(ch)))
		}
		sb.WriteString(border.Render("│"))
		c.writeText(col, row+1+r, sb.String())
	}

	status := rule("─ SYS: ONLINE ", config.RadarWidth)
	c.writeText(col, row+1+config.RadarHeight, border.Render("╰"+status+"╯"))
	return config.RadarHeight + 2
}

func (c *Client) blipStyle(kind byte) lipgloss.Style {
	switch kind {
	case radarDrone:
		return c.styles.blipDrone
	case radarShip:
		return c.styles.value
	default:
		return c.styles.blipAsteroid
	}
}
