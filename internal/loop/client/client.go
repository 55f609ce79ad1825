// Package client drives one terminal: it reads keys, steps the world,
// renders the scene and overlays the HUD.
package client

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/career-run/internal/course"
	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/input"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/loop/server"
	"github.com/tomz197/career-run/internal/loop/world"
	"github.com/tomz197/career-run/internal/scene"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	world        *world.World
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	renderer     *scene.Renderer
	writer       io.Writer
	stream       *input.Stream
	styles       *styles
	profile      course.Profile
	opts         Options
	logger       *log.Logger
	termSizeFunc draw.TermSizeFunc

	radar      radarGrid
	crawl      []crawlLine
	crawlWidth int
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Mono         bool            // render without colors
	Profile      *course.Profile // defaults to course.Pilot
	Link         string          // project URL shown on the start screen
	IdleTimeout  time.Duration   // disconnect after this long without input; 0 disables
	Logger       *log.Logger

	// Hub and Session connect the client to a multi-session host; both
	// are optional.
	Hub     *server.Hub
	Session *server.Handle
}

// NewClient creates a client that plays w, reading keys from stream and
// drawing to out.
func NewClient(w *world.World, stream *input.Stream, out io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	profile := course.Pilot
	if opts.Profile != nil {
		profile = *opts.Profile
	}

	state := NewClientState()
	state.lastInput = time.Now()

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = config.MinTermWidth, config.MinTermHeight
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.Fit(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	canvas.SetMono(opts.Mono)

	return &Client{
		world:        w,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(out, offsetCol, offsetRow),
		renderer:     scene.NewRenderer(),
		writer:       out,
		stream:       stream,
		styles:       newStyles(out, opts.Mono),
		profile:      profile,
		opts:         opts,
		logger:       logger,
		termSizeFunc: termSizeFunc,
	}
}

// State returns the client's overlay state.
func (c *Client) State() *ClientState {
	return c.state
}

// Run starts the client loop. It blocks until the player quits, the input
// source closes or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	draw.EnterAltScreen(c.writer)
	draw.HideCursor(c.writer)
	defer draw.ExitAltScreen(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.state.Running {
		frameStart := time.Now()
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			return err
		}

		if err := c.tick(frameStart); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// tick runs one frame: input, controller commands, simulation step,
// overlay timers and drawing.
func (c *Client) tick(now time.Time) error {
	if !c.state.last.IsZero() {
		c.state.delta = now.Sub(c.state.last)
	}
	c.state.last = now

	frame := c.stream.Read(now)
	c.processInput(frame, now)
	c.processServerEvents()
	if c.state.shutdown {
		c.state.shutdownLeft -= c.state.delta
		if c.state.shutdownLeft <= 0 {
			c.state.Running = false
		}
	}
	if !c.state.Running {
		return nil
	}

	c.updateScreen()

	in := frame.State
	if c.state.Dossier || c.world.State().Phase == world.PhaseEnding {
		in = input.State{}
	}
	c.world.Step(now, in)

	snap := c.world.Snapshot()
	c.updateOverlays(snap, frame.State)
	return c.drawFrame(snap)
}

// processInput handles disconnects, inactivity and one-shot commands.
func (c *Client) processInput(frame input.Frame, now time.Time) {
	if frame.Closed {
		c.state.Running = false
		return
	}

	if frame.Pressed > 0 {
		c.state.lastInput = now
		c.state.idle = false
	} else if c.opts.IdleTimeout > 0 {
		idle := now.Sub(c.state.lastInput)
		switch {
		case idle > c.opts.IdleTimeout:
			c.logger.Info("disconnecting idle session", "idle", idle.Round(time.Second))
			c.state.Running = false
			return
		case idle > c.opts.IdleTimeout-config.IdleWarn:
			c.state.idle = true
		}
	}

	for _, k := range frame.Commands {
		c.command(k)
		if !c.state.Running {
			return
		}
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	if c.opts.Session == nil {
		return
	}
	for {
		select {
		case ev, ok := <-c.opts.Session.Events:
			if !ok {
				// Hub dropped the session
				c.state.Running = false
				return
			}
			if ev.Type == server.EventShutdown && !c.state.shutdown {
				c.state.shutdown = true
				c.state.shutdownLeft = config.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// command applies a single one-shot key.
func (c *Client) command(k input.Key) {
	c.logger.Debug("command", "key", k)
	active := c.world.State().Milestone
	count := len(c.world.Milestones())

	switch k {
	case input.KeyQuit:
		c.state.Running = false
	case input.KeyBegin:
		if err := c.world.Begin(); err != nil {
			c.logger.Debug("begin ignored", "err", err)
			return
		}
		c.state.Dossier = false
		c.stream.Reset()
	case input.KeyPause:
		c.world.TogglePause()
	case input.KeyMute:
		c.world.ToggleMute()
	case input.KeyRestart:
		c.world.Restart()
		c.state.resetOverlays()
		c.stream.Reset()
	case input.KeyInfo:
		c.toggleDossier()
	case input.KeyBack:
		if c.state.Dossier {
			c.state.Dossier = false
		} else {
			c.state.Browse = -1
		}
	case input.KeyCard:
		c.state.CardExpanded = !c.state.CardExpanded
	case input.KeyPrev:
		c.state.browse(-1, active, count)
	case input.KeyNext:
		c.state.browse(1, active, count)
	case input.KeyLive:
		c.state.Browse = -1
	}
}

// toggleDossier opens or closes the info modal. Opening it mid-run pauses
// the game; closing it leaves the pause to the player.
func (c *Client) toggleDossier() {
	c.state.Dossier = !c.state.Dossier
	if c.state.Dossier {
		c.world.Pause()
	}
}

// updateOverlays advances HUD state that depends on the simulation.
func (c *Client) updateOverlays(snap *world.Snapshot, held input.State) {
	if m := snap.State.Milestone; m != c.state.lastMilestone {
		c.state.lastMilestone = m
		if m >= 0 {
			c.state.CardExpanded = true
		}
	}
	if snap.State.Phase == world.PhaseEnding {
		c.updateCrawl(held.Up, held.Down, snap.State.Paused)
		if !c.state.reported && c.opts.Hub != nil && c.opts.Session != nil {
			c.opts.Hub.ReportRun(c.opts.Session.ID, snap.State.Score, snap.State.Distance)
			c.state.reported = true
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.Fit(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// drawFrame renders the scene and the overlays for snap.
func (c *Client) drawFrame(snap *world.Snapshot) error {
	// On phase, modal or inactivity transitions, do a full terminal clear
	// so panels from the previous layout don't persist on screen.
	v := view{phase: snap.State.Phase, dossier: c.state.Dossier, idle: c.state.idle, shutdown: c.state.shutdown}
	if v != c.state.prev || c.state.forceClear {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prev = v
		c.state.forceClear = false
	}

	c.canvas.Clear()
	labels := c.renderer.Render(c.canvas, c.world.Scene(), c.world.Camera())

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawLabels(labels)
	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawLabels writes the marker labels projected by the renderer.
func (c *Client) drawLabels(labels []scene.Label) {
	termWidth := c.canvas.TerminalWidth()
	for _, l := range labels {
		text := draw.Truncate(l.Text, termWidth-l.Col+1)
		if text == "" {
			continue
		}
		if !c.canvas.Mono() {
			text = l.Color.Foreground() + text + draw.ColorReset
		}
		c.writeText(l.Col, l.Row, text)
	}
}

// drawUI draws the overlay for the current phase.
func (c *Client) drawUI(snap *world.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	if c.state.shutdown {
		c.drawShutdownScreen(termWidth, termHeight)
		return
	}
	if c.state.idle {
		c.drawIdleScreen(termWidth, termHeight, c.opts.IdleTimeout-time.Since(c.state.lastInput))
		return
	}

	switch snap.State.Phase {
	case world.PhaseStart:
		c.drawStartScreen(termWidth, termHeight)
	case world.PhasePlaying:
		c.drawPlayingHUD(termWidth, termHeight, snap)
	case world.PhaseEnding:
		c.drawCrawl(termWidth, termHeight)
		c.drawControls(termWidth, termHeight)
	}

	if c.state.Dossier {
		c.drawDossier(termWidth, termHeight)
	}
}
