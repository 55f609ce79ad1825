// Package loop provides the main game loop for a single terminal session.
package loop

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/career-run/internal/audio"
	"github.com/tomz197/career-run/internal/input"
	"github.com/tomz197/career-run/internal/loop/client"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/loop/world"
)

// Options configures a session.
type Options struct {
	Tuning *config.Tuning // defaults to config.DefaultTuning
	Sounds audio.Player   // defaults to audio.Nop
	Logger *log.Logger
	Client client.Options
}

// Run plays one session reading raw terminal bytes from r and drawing to w.
// It blocks until the player quits, r is exhausted or ctx is done.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	return RunStream(ctx, input.StartStream(r), w, opts)
}

// RunStream is Run for an already decoded key stream.
func RunStream(ctx context.Context, stream *input.Stream, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	wld, err := world.New(world.Options{
		Tuning: opts.Tuning,
		Sounds: opts.Sounds,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}

	co := opts.Client
	if co.Logger == nil {
		co.Logger = logger
	}
	return client.NewClient(wld, stream, w, co).Run(ctx)
}
