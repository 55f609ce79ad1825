package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/career-run/internal/draw"
)

// titleArt is "CAREER RUN" in figlet's small font.
var titleArt = []string{
	`  ___    _    ___  ___  ___  ___    ___  _   _  _  _ `,
	` / __|  /_\  | _ \| __|| __|| _ \  | _ \| | | || \| |`,
	"| (__  / _ \\ |   /| _| | _| |   /  |   /| |_| || .` |",
	` \___|/_/ \_\|_|_\|___||___||_|_\  |_|_\ \___/ |_|\_|`,
}

// blinkOn toggles every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// hyperlink wraps label in an OSC 8 link to url.
func hyperlink(url, label string) string {
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, label)
}

// drawStartScreen draws the title, the pilot profile panel and the launch
// prompt over the idling ship.
func (c *Client) drawStartScreen(termWidth, termHeight int) {
	st := c.styles
	p := c.profile

	panelWidth := min(termWidth-4, 64)
	body := []string{
		st.label.Render("PILOT PROFILE: " + strings.ToUpper(p.Name)),
		"",
		st.value.Render("MISSION: ") + "Navigate the career timeline. Collect data from milestones.",
		st.value.Render("HOSTILES: ") + "Bugs, Deadlines, & Legacy Code (Drones).",
		st.value.Render("CONTROLS: ") + "Arrows to fly. SPACE to fire.",
	}
	panel := st.panel.Width(panelWidth).Padding(0, 1).Render(strings.Join(body, "\n"))

	artHeight := len(titleArt)
	if termWidth < lipgloss.Width(titleArt[0])+2 {
		artHeight = 1
	}
	panelHeight := lipgloss.Height(panel)
	top := max((termHeight-artHeight-panelHeight-6)/2, 1)

	if artHeight == 1 {
		c.writeCentered(top, termWidth, st.title.Render("THE CAREER RUN"))
	} else {
		artCol := max((termWidth-lipgloss.Width(titleArt[0]))/2+1, 1)
		for i, line := range titleArt {
			c.writeText(artCol, top+i, st.title.Render(line))
		}
	}
	row := top + artHeight + 1

	panelCol := max((termWidth-lipgloss.Width(panel))/2+1, 1)
	row += c.writeBlock(panelCol, row, panel) + 1

	if blinkOn() {
		c.writeCentered(row, termWidth, st.title.Render(">>  PRESS ENTER TO INITIATE LAUNCH SEQUENCE  <<"))
	} else {
		c.writeCentered(row, termWidth, strings.Repeat(" ", 47))
	}
	row += 2
	c.writeCentered(row, termWidth, st.dim.Render("I dossier · M mute · Q quit"))
	if c.opts.Link != "" {
		row++
		label := strings.TrimPrefix(c.opts.Link, "https://")
		c.writeCentered(row, termWidth, hyperlink(c.opts.Link, st.dim.Render(label)))
	}
	if c.opts.Hub != nil {
		c.drawLobby(termWidth, termHeight, row+2)
	}
}

// drawLobby lists the pilots online and the best completed runs.
func (c *Client) drawLobby(termWidth, termHeight, row int) {
	st := c.styles
	c.writeCentered(row, termWidth, st.label.Render(fmt.Sprintf("PILOTS ONLINE: %-3d", c.opts.Hub.Online())))
	top := c.opts.Hub.TopScores()
	if len(top) == 0 {
		return
	}
	row += 2
	c.writeCentered(row, termWidth, st.title.Render("TOP PILOTS"))
	for i, e := range top {
		r := row + 1 + i
		if r >= termHeight {
			return
		}
		line := fmt.Sprintf("%d. %s %s", i+1, draw.PadRight(e.Username, 16), scoreText(e.Score))
		c.writeCentered(r, termWidth, st.value.Render(line))
	}
}

// drawShutdownScreen draws the host shutdown notice.
func (c *Client) drawShutdownScreen(termWidth, termHeight int) {
	st := c.styles
	centerY := termHeight / 2
	c.writeCentered(centerY-3, termWidth, st.warn.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerY-1, termWidth, st.value.Render("The server is restarting for maintenance."))
	c.writeCentered(centerY, termWidth, st.value.Render("Please reconnect in a moment."))
	remaining := int(c.state.shutdownLeft.Seconds()) + 1
	c.writeCentered(centerY+2, termWidth, st.dim.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)))
	c.writeCentered(centerY+4, termWidth, st.dim.Render("Press Q to disconnect now"))
}

// drawCard draws the milestone card for milestones[idx], right-aligned at
// row. Browsed milestones show as archive data in yellow.
func (c *Client) drawCard(termWidth, row, termHeight, idx int) {
	milestones := c.world.Milestones()
	if idx < 0 || idx >= len(milestones) {
		return
	}
	m := milestones[idx]
	st := c.styles

	expanded := c.state.cardExpanded()
	width := 34
	if expanded {
		width = 44
	}
	width = min(width, termWidth/2)
	if width < 16 {
		return
	}

	style, header := st.card, "DATA LOG"
	headerStyle := st.label
	if c.state.Browse >= 0 {
		style, header = st.cardArchive, "ARCHIVE DATA"
		headerStyle = st.title
	}
	toggle := "+"
	if expanded {
		toggle = "−"
	}

	inner := width - 3
	lines := []string{
		headerStyle.Render(draw.PadRight(header+": "+m.Year, inner-2)) + " " + st.accent.Render(toggle),
		st.value.Bold(true).Render(draw.Truncate(m.Title, inner)),
	}
	if expanded {
		lines = append(lines, st.accent.Render(strings.Repeat("─", inner)))
		for _, d := range m.Description {
			for i, l := range draw.Wrap(d, inner-2) {
				prefix := "  "
				if i == 0 {
					prefix = st.accent.Render("»") + " "
				}
				lines = append(lines, prefix+st.dim.Render(l))
			}
		}
	}

	// Keep the card on screen, dropping the tail of long descriptions.
	if room := termHeight - row - 1; len(lines) > room {
		lines = lines[:max(room, 0)]
	}
	if len(lines) == 0 {
		return
	}
	card := style.Width(width).Render(strings.Join(lines, "\n"))
	c.writeBlock(termWidth-lipgloss.Width(card)-1, row, card)
}

// drawDossier draws the pilot dossier modal centered on screen.
func (c *Client) drawDossier(termWidth, termHeight int) {
	st := c.styles
	p := c.profile

	width := min(termWidth-6, 84)
	inner := width - 4
	if inner < 20 {
		return
	}

	section := func(title string) []string {
		return []string{"", st.title.Render(title), st.accent.Render(strings.Repeat("─", inner))}
	}
	field := func(label, value string) string {
		return st.label.Render(draw.PadRight(label, 12)) + st.value.Render(draw.Truncate(value, inner-12))
	}
	wrap := func(style lipgloss.Style, s string, indent string) []string {
		var out []string
		for _, l := range draw.Wrap(s, inner-draw.Width(indent)) {
			out = append(out, indent+style.Render(l))
		}
		return out
	}

	lines := []string{st.title.Render("PILOT DOSSIER") + st.dim.Render(draw.PadRight("", max(inner-26, 1))+"[I/ESC] close")}
	lines = append(lines, section("IDENTITY")...)
	lines = append(lines,
		field("NAME", p.Name),
		field("CLASS", p.Class),
		field("RANK", p.Rank),
		field("BASE", p.Base),
		field("EDUCATION", p.Education),
		field("EXPERIENCE", p.Experience),
	)
	lines = append(lines, section("CONTACT CHANNELS")...)
	for _, ct := range p.Contacts {
		lines = append(lines, field(ct.Label, ct.Value))
	}
	lines = append(lines, section("MISSION BRIEF")...)
	for _, b := range p.Brief {
		lines = append(lines, wrap(st.dim, b, "")...)
	}
	lines = append(lines, section("KEY ACHIEVEMENTS")...)
	for _, a := range p.Achievements {
		for i, l := range wrap(st.dim, a, "  ") {
			if i == 0 {
				l = st.accent.Render("»") + l[1:]
			}
			lines = append(lines, l)
		}
	}
	lines = append(lines, section("SKILL TIERS")...)
	lines = append(lines, wrap(st.value, "CORE: "+strings.Join(p.Core, ", "), "")...)
	lines = append(lines, wrap(st.accent, "PROFESSIONAL: "+strings.Join(p.Professional, ", "), "")...)
	lines = append(lines, wrap(st.dim, "ADDITIONAL: "+strings.Join(p.Additional, ", "), "")...)

	// Leave room for the border; short terminals lose the tail.
	if room := termHeight - 4; len(lines) > room {
		lines = append(lines[:max(room-1, 0)], st.dim.Render("…"))
	}

	modal := st.modal.Width(width).Render(strings.Join(lines, "\n"))
	col := max((termWidth-lipgloss.Width(modal))/2+1, 1)
	row := max((termHeight-lipgloss.Height(modal))/2+1, 1)
	c.writeBlock(col, row, modal)
}

// drawIdleScreen warns an inactive session before it is disconnected.
func (c *Client) drawIdleScreen(termWidth, termHeight int, remaining time.Duration) {
	st := c.styles
	centerY := termHeight / 2
	c.writeCentered(centerY-2, termWidth, st.warn.Render("INACTIVITY WARNING"))
	msg := fmt.Sprintf("No input for a while. Disconnecting in %2d seconds.", int(remaining.Seconds()+0.5))
	c.writeCentered(centerY, termWidth, st.value.Render(msg))
	c.writeCentered(centerY+2, termWidth, st.dim.Render("Press any key to continue"))
}
