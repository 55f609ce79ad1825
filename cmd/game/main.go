package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/career-run/internal/audio"
	"github.com/tomz197/career-run/internal/config"
	"github.com/tomz197/career-run/internal/input"
	"github.com/tomz197/career-run/internal/logging"
	"github.com/tomz197/career-run/internal/loop"
	"github.com/tomz197/career-run/internal/loop/client"
	loopconfig "github.com/tomz197/career-run/internal/loop/config"
)

func main() {
	logger, logCloser, err := logging.Setup(
		config.GetEnv("CAREER_RUN_LOG", ""),
		config.GetEnv("CAREER_RUN_LOG_LEVEL", "info"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	tuning := loopconfig.TuningFromEnv()
	sounds := newSounds(logger)
	if c, ok := sounds.(interface{ Close() error }); ok {
		defer c.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Tuning: &tuning,
		Sounds: sounds,
		Logger: logger,
		Client: client.Options{
			Mono: config.GetEnvBool("CAREER_RUN_MONO", false),
			Link: "https://github.com/tomz197/career-run",
		},
	}

	err = runTcell(ctx, opts)
	if errors.Is(err, errTcell) {
		logger.Warn("tcell unavailable, falling back to raw mode", "err", err)
		err = runRaw(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newSounds builds the audio player. Audio can be turned off with
// CAREER_RUN_AUDIO=false; a missing or broken track falls back to the
// synthesized drone.
func newSounds(logger *log.Logger) audio.Player {
	if !config.GetEnvBool("CAREER_RUN_AUDIO", true) {
		return &audio.Nop{}
	}
	track, err := audio.OpenTrack(config.GetEnv("CAREER_RUN_MUSIC", ""))
	if err != nil && !errors.Is(err, audio.ErrNoTrack) {
		logger.Warn("background track unavailable", "err", err)
	}
	return audio.NewSoundManager(audio.Speaker{}, track, logger)
}

// errTcell marks failures to take over the terminal with tcell.
var errTcell = errors.New("tcell")

// runTcell lets tcell own the terminal (raw mode, key decoding, resize)
// while the canvas writes its own escape sequences to stdout.
func runTcell(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: %v", errTcell, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %v", errTcell, err)
	}
	defer screen.Fini()

	if screen.Colors() < 8 {
		opts.Client.Mono = true
	}
	opts.Client.TermSizeFunc = func() (int, int, error) {
		w, h := screen.Size()
		return w, h, nil
	}

	stream := input.StartTcellStream(screen, nil)
	return loop.RunStream(ctx, stream, os.Stdout, opts)
}

// runRaw is the fallback: x/term raw mode and byte-stream key decoding.
func runRaw(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(ctx, reader, os.Stdout, opts)
}
