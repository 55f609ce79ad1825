package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/loop/world"
)

const (
	sidePanelWidth = 28 // shield/distance column on the right
	controlsHint   = "ARROWS fly · SPACE fire · P pause · M mute · R restart · I info · E card · [ ] \\ archive · Q quit"
)

// writeText writes a styled string at (col, row) and marks the cells it
// covers so the canvas repaints them next frame. Text that would start off
// screen is skipped.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// writeBlock writes a multi-line block with its top-left corner at (col,
// row) and returns its height.
func (c *Client) writeBlock(col, row int, block string) int {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		c.writeText(col, row+i, line)
	}
	return len(lines)
}

// writeCentered writes s horizontally centered on a row.
func (c *Client) writeCentered(row, width int, s string) {
	c.writeText(max((width-lipgloss.Width(s))/2+1, 1), row, s)
}

// rule pads title with box-drawing dashes to width columns.
func rule(title string, width int) string {
	title = draw.Truncate(title, width)
	return title + strings.Repeat("─", width-draw.Width(title))
}

// bar renders a gauge width cells wide, frac of it filled.
func bar(frac float64, width int, fill, empty lipgloss.Style) string {
	frac = min(max(frac, 0), 1)
	n := int(frac*float64(width) + 0.5)
	return fill.Render(strings.Repeat(string(draw.BlockFull), n)) +
		empty.Render(strings.Repeat(string(draw.BlockLight), width-n))
}

// scoreText is the zero-padded score counter.
func scoreText(score int) string {
	return fmt.Sprintf("%06d", score)
}

// drawPlayingHUD draws the in-game HUD. Text fields use fixed widths so
// shrinking values don't leave residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap *world.Snapshot) {
	st := c.styles
	state := snap.State

	// Score and pause banner, top center.
	c.writeCentered(1, termWidth, st.title.Render(scoreText(state.Score)))
	c.writeCentered(2, termWidth, st.label.Render("POINTS"))
	if state.Paused {
		c.writeCentered(4, termWidth, st.banner.Render("SYSTEM PAUSED"))
	}

	// Shield, distance, speed and audio, top right.
	gauge := sidePanelWidth - 2
	col := termWidth - sidePanelWidth
	if col >= 1 {
		shieldStyle := st.barFill
		if state.Shield < config.LowShield {
			shieldStyle = st.barLow
		}
		progress := 0.0
		if total := c.world.Tuning().TotalDistance; total > 0 {
			progress = state.Distance / total
		}
		c.writeText(col, 1, st.label.Render(draw.PadRight(fmt.Sprintf("SHIELD INTEGRITY %3.0f%%", state.Shield), gauge)))
		c.writeText(col, 2, bar(state.Shield/config.MaxShield, gauge, shieldStyle, st.barEmpty))
		c.writeText(col, 3, st.title.Render(draw.PadRight(fmt.Sprintf("DISTANCE TO BASE %3.0f%%", min(progress, 1)*100), gauge)))
		c.writeText(col, 4, bar(progress, gauge, st.barProgress, st.barEmpty))
		c.writeText(col, 5, st.dim.Render(draw.PadRight(fmt.Sprintf("SPEED %4.2f", snap.Speed), gauge)))
		audio := "AUDIO ON"
		if snap.Muted {
			audio = "AUDIO MUTED"
		}
		c.writeText(col, 6, st.dim.Render(draw.PadRight(audio, gauge)))
		next := "APPROACHING BASE"
		if i := c.world.Milestones().Next(state.Distance); i >= 0 {
			next = "NEXT WAYPOINT " + c.world.Milestones()[i].Year
		}
		c.writeText(col, 7, st.label.Render(draw.PadRight(next, gauge)))
	}

	// Radar and timeline down the left side.
	row := 1
	if termWidth >= config.RadarMinCols {
		row += c.drawRadar(2, row, snap)
		c.drawTimeline(4, row+1, termHeight, state.Milestone)
	}

	// Milestone card under the gauges.
	if idx := c.state.cardIndex(state.Milestone); idx >= 0 {
		c.drawCard(termWidth, 8, termHeight, idx)
	}

	c.drawControls(termWidth, termHeight)
}

// drawControls writes the key reference on the bottom row.
func (c *Client) drawControls(termWidth, termHeight int) {
	c.writeCentered(termHeight, termWidth, c.styles.dim.Render(draw.Truncate(controlsHint, termWidth-2)))
}

// drawTimeline draws the vertical milestone ladder: completed milestones
// filled, the active one highlighted, pending ones hollow.
func (c *Client) drawTimeline(col, row, termHeight, active int) {
	st := c.styles
	milestones := c.world.Milestones()
	for i, m := range milestones {
		r := row + i*2
		if r+1 > termHeight-1 {
			return
		}
		var dot, year string
		switch {
		case i == active:
			dot, year = st.title.Render("◉"), st.title.Render(m.Year)
		case i < active:
			dot, year = st.accent.Render("●"), st.accent.Render(m.Year)
		default:
			dot, year = st.dim.Render("○"), st.dim.Render(m.Year)
		}
		if i == c.state.Browse {
			year = st.title.Render("▸ " + m.Year)
		}
		c.writeText(col, r, dot+" "+year+"  ")
		if i < len(milestones)-1 {
			link := st.barEmpty.Render("│")
			if i < active {
				link = st.accent.Render("│")
			}
			c.writeText(col, r+1, link)
		}
	}
}
