package client

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/loop/config"
)

// Crawl is the ending credits scroll position, in percent of the text.
type Crawl struct {
	Pos float64
}

// Advance moves the crawl forward by frames reference frames unless held.
func (c *Crawl) Advance(frames float64, held bool) {
	if held || frames <= 0 {
		return
	}
	c.Pos = min(c.Pos+config.CrawlStep*frames, config.CrawlMax)
}

// Scroll moves the crawl by delta percent, either way.
func (c *Crawl) Scroll(delta float64) {
	c.Pos = min(max(c.Pos+delta, 0), config.CrawlMax)
}

// Reset rewinds the crawl.
func (c *Crawl) Reset() {
	c.Pos = 0
}

// Top returns the 1-based row of the first crawl line on a screen height
// rows tall showing lines lines. At 0 the text sits just below the screen;
// at CrawlMax its last line rests mid-screen.
func (c Crawl) Top(lines, height int) int {
	travel := float64(lines + height/2)
	return height + 1 - int(c.Pos/config.CrawlMax*travel)
}

// updateCrawl runs the crawl timer while the ending is on screen. Up and
// Down scroll it by hand and hold the timer for that frame.
func (c *Client) updateCrawl(up, down, paused bool) {
	held := up || down || paused || c.state.Dossier
	step := config.CrawlKeyRate * c.state.delta.Seconds()
	if up {
		c.state.Crawl.Scroll(-step)
	}
	if down {
		c.state.Crawl.Scroll(step)
	}
	c.state.Crawl.Advance(c.world.Tuning().Frames(min(c.state.delta, time.Second)), held)
}

// crawlLine is one row of the credits with its style.
type crawlLine struct {
	text  string
	style lipgloss.Style
}

// buildCrawl lays the credits out for a screen width columns wide.
func (c *Client) buildCrawl(width int) []crawlLine {
	p := c.profile
	st := c.styles
	textWidth := max(min(width-8, 72), 20)

	var out []crawlLine
	add := func(style lipgloss.Style, lines ...string) {
		for _, l := range lines {
			out = append(out, crawlLine{text: l, style: style})
		}
	}
	blank := func(n int) {
		for range n {
			add(st.crawl, "")
		}
	}
	tags := func(items []string) []string {
		tagged := make([]string, len(items))
		for i, s := range items {
			tagged[i] = "[" + s + "]"
		}
		return draw.Wrap(strings.Join(tagged, "  "), textWidth)
	}

	add(st.crawlTitle, "M I S S I O N   A C C O M P L I S H E D")
	blank(2)
	add(st.crawlTitle, strings.ToUpper(p.Name))
	blank(2)
	add(st.crawl, draw.Wrap(p.Summary, textWidth)...)
	blank(3)
	add(st.crawlTitle, "CORE COMPETENCIES")
	blank(1)
	add(st.crawl, tags(p.Core)...)
	blank(3)
	add(st.crawlTitle, "PROFESSIONAL ARSENAL")
	blank(1)
	add(st.crawlAccent, tags(p.Professional)...)
	blank(4)
	add(st.crawlTitle, "CONTACT CHANNEL")
	blank(1)
	for _, ct := range p.Contacts {
		add(st.crawlContact, ct.Label+": "+ct.Value)
	}
	blank(3)
	add(st.dim, p.Signoff)
	return out
}

// drawCrawl overlays the visible part of the credits and the timeline gauge.
func (c *Client) drawCrawl(termWidth, termHeight int) {
	if len(c.crawl) == 0 || c.crawlWidth != termWidth {
		c.crawl = c.buildCrawl(termWidth)
		c.crawlWidth = termWidth
	}

	top := c.state.Crawl.Top(len(c.crawl), termHeight)
	for i, line := range c.crawl {
		row := top + i
		if row < 1 || row > termHeight || line.text == "" {
			continue
		}
		c.writeCentered(row, termWidth, line.style.Render(line.text))
	}

	// Scroll gauge on the right edge.
	gaugeTop := termHeight / 4
	gaugeHeight := max(termHeight/2, 3)
	if termWidth < 4 {
		return
	}
	filled := c.state.Crawl.Pos / config.CrawlMax * float64(gaugeHeight)
	col := termWidth - 2
	for i := range gaugeHeight {
		r := draw.ShadeLevel(filled - float64(i))
		if r == draw.BlockEmpty {
			r = draw.BlockLight
		}
		c.writeText(col, gaugeTop+i, c.styles.accent.Render(string(r)))
	}
}
