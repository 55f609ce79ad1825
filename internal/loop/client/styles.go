package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles are the lipgloss styles of every overlay, bound to one renderer so
// each session picks its own color profile.
type styles struct {
	title        lipgloss.Style
	label        lipgloss.Style
	accent       lipgloss.Style
	value        lipgloss.Style
	dim          lipgloss.Style
	warn         lipgloss.Style
	banner       lipgloss.Style
	barFill      lipgloss.Style
	barLow       lipgloss.Style
	barProgress  lipgloss.Style
	barEmpty     lipgloss.Style
	blipAsteroid lipgloss.Style
	blipDrone    lipgloss.Style
	panel        lipgloss.Style
	card         lipgloss.Style
	cardArchive  lipgloss.Style
	modal        lipgloss.Style

	crawl        lipgloss.Style
	crawlTitle   lipgloss.Style
	crawlAccent  lipgloss.Style
	crawlContact lipgloss.Style
}

// newStyles builds the overlay styles. Output is fixed to 256 colors since
// the scene itself is drawn from the xterm-256 palette; mono drops colors.
func newStyles(w io.Writer, mono bool) *styles {
	profile := termenv.ANSI256
	if mono {
		profile = termenv.Ascii
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	cyan := lipgloss.Color("51")
	yellow := lipgloss.Color("220")
	red := lipgloss.Color("197")
	gray := lipgloss.Color("245")
	dark := lipgloss.Color("238")

	return &styles{
		title:        r.NewStyle().Foreground(yellow).Bold(true),
		label:        r.NewStyle().Foreground(cyan),
		accent:       r.NewStyle().Foreground(cyan),
		value:        r.NewStyle().Foreground(lipgloss.Color("231")),
		dim:          r.NewStyle().Foreground(gray),
		warn:         r.NewStyle().Foreground(red).Bold(true),
		banner:       r.NewStyle().Foreground(red).Bold(true).Blink(true),
		barFill:      r.NewStyle().Foreground(cyan),
		barLow:       r.NewStyle().Foreground(red),
		barProgress:  r.NewStyle().Foreground(yellow),
		barEmpty:     r.NewStyle().Foreground(dark),
		blipAsteroid: r.NewStyle().Foreground(lipgloss.Color("208")),
		blipDrone:    r.NewStyle().Foreground(red),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cyan),
		card: r.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(cyan).
			Padding(0, 1),
		cardArchive: r.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(yellow).
			Padding(0, 1),
		modal: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(cyan).
			Padding(0, 2),

		crawl:        r.NewStyle().Foreground(yellow),
		crawlTitle:   r.NewStyle().Foreground(yellow).Bold(true),
		crawlAccent:  r.NewStyle().Foreground(lipgloss.Color("123")),
		crawlContact: r.NewStyle().Foreground(lipgloss.Color("231")),
	}
}
