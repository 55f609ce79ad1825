package client

import (
	"bytes"
	"io"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/career-run/internal/course"
	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/input"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/loop/server"
	"github.com/tomz197/career-run/internal/loop/world"
	"github.com/tomz197/career-run/internal/object"
	"github.com/tomz197/career-run/internal/physics"
)

const frame = time.Second / 60

var testTable = course.Table{
	{ID: "a", Year: "2019", Title: "First", Description: []string{"one", "two"}, ZDistance: 600, Kind: course.KindEducation, Color: "#00ffff"},
	{ID: "b", Year: "2021", Title: "Second", Description: []string{"three"}, ZDistance: 1200, Kind: course.KindWork, Color: "#ff00ff"},
	{ID: "c", Year: "2023", Title: "Third", ZDistance: 1800, Kind: course.KindProject, Color: "#ffff00"},
}

type testClient struct {
	*Client
	out  *bytes.Buffer
	pipe *io.PipeWriter
	now  time.Time
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	tun := config.DefaultTuning()
	tun.TotalDistance = 2000
	tun.EnemySpawnChance = 0
	w, err := world.New(world.Options{
		Tuning:     &tun,
		Milestones: testTable,
		Rand:       rand.New(rand.NewPCG(3, 5)),
		Logger:     log.New(io.Discard),
		Stars:      -1,
	})
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	out := &bytes.Buffer{}
	c := NewClient(w, input.StartStream(pr), out, Options{
		TermSizeFunc: draw.FixedTermSize(120, 40),
		Mono:         true,
		Logger:       log.New(io.Discard),
	})
	return &testClient{Client: c, out: out, pipe: pw, now: time.Unix(1000, 0)}
}

// step feeds keys and runs one frame.
func (tc *testClient) step(t *testing.T, keys ...input.Key) {
	t.Helper()
	tc.stream.Feed(keys...)
	tc.now = tc.now.Add(frame)
	tc.out.Reset()
	if err := tc.tick(tc.now); err != nil {
		t.Fatalf("tick: %v", err)
	}
}

// runToEnding advances the world directly until the run completes.
func (tc *testClient) runToEnding(t *testing.T) {
	t.Helper()
	for i := 0; i < 20000 && tc.world.State().Phase != world.PhaseEnding; i++ {
		tc.world.Advance(frame, input.State{})
	}
	if tc.world.State().Phase != world.PhaseEnding {
		t.Fatal("run never reached the ending")
	}
}

func TestCommands(t *testing.T) {
	t.Run("enter begins", func(t *testing.T) {
		tc := newTestClient(t)
		tc.step(t, input.KeyBegin)
		if got := tc.world.State().Phase; got != world.PhasePlaying {
			t.Errorf("phase = %v, want playing", got)
		}
	})

	t.Run("quit stops", func(t *testing.T) {
		tc := newTestClient(t)
		tc.step(t, input.KeyQuit)
		if tc.state.Running {
			t.Error("client still running after quit")
		}
	})

	t.Run("pause toggles", func(t *testing.T) {
		tc := newTestClient(t)
		tc.step(t, input.KeyBegin)
		tc.step(t, input.KeyPause)
		if !tc.world.State().Paused {
			t.Fatal("not paused")
		}
		tc.step(t, input.KeyPause)
		if tc.world.State().Paused {
			t.Error("still paused")
		}
	})

	t.Run("mute shows in snapshot", func(t *testing.T) {
		tc := newTestClient(t)
		tc.step(t, input.KeyMute)
		if !tc.world.Snapshot().Muted {
			t.Error("snapshot not muted")
		}
	})

	t.Run("dossier pauses a run", func(t *testing.T) {
		tc := newTestClient(t)
		tc.step(t, input.KeyBegin)
		tc.step(t, input.KeyInfo)
		if !tc.state.Dossier || !tc.world.State().Paused {
			t.Fatalf("dossier, paused = %v, %v; want true, true", tc.state.Dossier, tc.world.State().Paused)
		}
		tc.step(t, input.KeyBack)
		if tc.state.Dossier {
			t.Error("escape did not close the dossier")
		}
		if !tc.world.State().Paused {
			t.Error("closing the dossier resumed the game")
		}
	})

	t.Run("dossier at start does not block begin", func(t *testing.T) {
		tc := newTestClient(t)
		tc.step(t, input.KeyInfo)
		if tc.world.State().Paused {
			t.Error("start phase paused")
		}
		tc.step(t, input.KeyBegin)
		if tc.state.Dossier {
			t.Error("begin left the dossier open")
		}
	})
}

func TestClosedInputStops(t *testing.T) {
	tc := newTestClient(t)
	tc.pipe.Close()
	deadline := time.Now().Add(2 * time.Second)
	for tc.state.Running && time.Now().Before(deadline) {
		tc.step(t)
		time.Sleep(time.Millisecond)
	}
	if tc.state.Running {
		t.Error("client kept running after its input closed")
	}
}

func TestIdleTimeout(t *testing.T) {
	tc := newTestClient(t)
	tc.opts.IdleTimeout = time.Minute
	tc.state.lastInput = tc.now

	tc.now = tc.now.Add(45 * time.Second)
	tc.step(t)
	if !tc.state.idle || !tc.state.Running {
		t.Fatalf("idle, running = %v, %v; want warning", tc.state.idle, tc.state.Running)
	}
	if !strings.Contains(tc.out.String(), "INACTIVITY WARNING") {
		t.Error("warning not drawn")
	}

	tc.step(t, input.KeyCard)
	if tc.state.idle {
		t.Error("key press did not clear the warning")
	}

	tc.now = tc.now.Add(2 * time.Minute)
	tc.step(t)
	if tc.state.Running {
		t.Error("idle session not disconnected")
	}
}

func TestBrowse(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		step   int
		active int
		want   int
	}{
		{"next before any milestone", -1, 1, -1, 0},
		{"prev before any milestone", -1, -1, -1, 0},
		{"next from active", -1, 1, 1, 2},
		{"prev from active", -1, -1, 1, 0},
		{"clamps at end", 2, 1, 0, 2},
		{"clamps at start", 0, -1, 2, 0},
		{"steps while browsing", 1, 1, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewClientState()
			s.Browse = tt.start
			s.browse(tt.step, tt.active, 3)
			if s.Browse != tt.want {
				t.Errorf("Browse = %d, want %d", s.Browse, tt.want)
			}
		})
	}
}

func TestCardFollowsMilestones(t *testing.T) {
	tc := newTestClient(t)
	snap := &world.Snapshot{State: world.DefaultState()}

	tc.updateOverlays(snap, input.State{})
	if tc.state.CardExpanded {
		t.Fatal("card expanded before any milestone")
	}

	snap.State.Milestone = 0
	tc.updateOverlays(snap, input.State{})
	if !tc.state.CardExpanded {
		t.Fatal("new milestone did not expand the card")
	}

	tc.command(input.KeyCard)
	tc.updateOverlays(snap, input.State{})
	if tc.state.CardExpanded {
		t.Error("card re-expanded without a milestone change")
	}

	snap.State.Milestone = 1
	tc.updateOverlays(snap, input.State{})
	if !tc.state.CardExpanded {
		t.Error("next milestone did not expand the card")
	}

	tc.state.browse(1, 1, len(testTable))
	if got := tc.state.cardIndex(1); got != 2 {
		t.Errorf("browsed card = %d, want 2", got)
	}
	tc.command(input.KeyLive)
	if got := tc.state.cardIndex(1); got != 1 {
		t.Errorf("live card = %d, want 1", got)
	}
}

func TestCrawl(t *testing.T) {
	t.Run("advance", func(t *testing.T) {
		var c Crawl
		c.Advance(1, false)
		if math.Abs(c.Pos-config.CrawlStep) > 1e-9 {
			t.Errorf("Pos = %v, want %v", c.Pos, config.CrawlStep)
		}
		c.Advance(10, true)
		if math.Abs(c.Pos-config.CrawlStep) > 1e-9 {
			t.Error("held crawl moved")
		}
		c.Advance(1e6, false)
		if c.Pos != config.CrawlMax {
			t.Errorf("Pos = %v, want clamp at %v", c.Pos, config.CrawlMax)
		}
	})

	t.Run("scroll clamps", func(t *testing.T) {
		c := Crawl{Pos: 5}
		c.Scroll(-10)
		if c.Pos != 0 {
			t.Errorf("Pos = %v, want 0", c.Pos)
		}
		c.Scroll(500)
		if c.Pos != config.CrawlMax {
			t.Errorf("Pos = %v, want %v", c.Pos, config.CrawlMax)
		}
	})

	t.Run("top", func(t *testing.T) {
		if got := (Crawl{}).Top(50, 40); got != 41 {
			t.Errorf("Top at 0 = %d, want 41", got)
		}
		if got := (Crawl{Pos: config.CrawlMax}).Top(50, 40); got != 41-70 {
			t.Errorf("Top at max = %d, want %d", got, 41-70)
		}
	})
}

func TestEndingCrawl(t *testing.T) {
	tc := newTestClient(t)
	tc.step(t, input.KeyBegin)
	tc.runToEnding(t)

	for range 60 {
		tc.step(t)
	}
	pos := tc.state.Crawl.Pos
	// About one second at the reference rate.
	if pos < 40*config.CrawlStep || pos > 80*config.CrawlStep {
		t.Fatalf("crawl at %v after a second", pos)
	}

	tc.step(t, input.KeyInfo)
	tc.step(t)
	if tc.state.Crawl.Pos != pos {
		t.Error("crawl moved behind the dossier")
	}
	tc.step(t, input.KeyInfo)

	tc.step(t, input.KeyRestart)
	if tc.state.Crawl.Pos != 0 {
		t.Errorf("restart left crawl at %v", tc.state.Crawl.Pos)
	}
	if got := tc.world.State().Phase; got != world.PhaseStart {
		t.Errorf("phase after restart = %v, want start", got)
	}
}

func TestCrawlManualScroll(t *testing.T) {
	tc := newTestClient(t)
	tc.step(t, input.KeyBegin)
	tc.runToEnding(t)
	tc.step(t)
	tc.state.Crawl.Pos = 50

	tc.step(t, input.KeyDown)
	if tc.state.Crawl.Pos <= 50 {
		t.Errorf("down did not scroll forward: %v", tc.state.Crawl.Pos)
	}
	tc.state.Crawl.Pos = 50
	tc.now = tc.now.Add(200 * time.Millisecond) // let Down expire
	tc.step(t, input.KeyUp)
	if tc.state.Crawl.Pos >= 50 {
		t.Errorf("up did not scroll back: %v", tc.state.Crawl.Pos)
	}
}

func TestRadarPlot(t *testing.T) {
	var g radarGrid
	blips := []world.Blip{
		{Offset: physics.Vec3{X: 0, Z: -config.RadarRange + 1}, Kind: object.Asteroid},
		{Offset: physics.Vec3{X: -40, Z: -100}, Kind: object.Asteroid},
		{Offset: physics.Vec3{X: -40, Z: -100}, Kind: object.Drone},
		{Offset: physics.Vec3{X: 0, Z: -config.RadarRange - 50}, Kind: object.Drone},
		{Offset: physics.Vec3{X: 0, Z: config.RadarBehind + 50}, Kind: object.Drone},
	}
	g.plot(blips, 50)

	counts := map[byte]int{}
	for _, row := range g {
		for _, cell := range row {
			counts[cell]++
		}
	}
	if counts[radarShip] != 1 {
		t.Errorf("ship cells = %d, want 1", counts[radarShip])
	}
	if counts[radarDrone] != 1 {
		t.Errorf("drone cells = %d, want 1 (out-of-range drones plotted?)", counts[radarDrone])
	}
	if counts[radarAsteroid] != 1 {
		t.Errorf("asteroid cells = %d, want 1 (drone should cover the shared cell)", counts[radarAsteroid])
	}
	if g[0][config.RadarWidth/2] != radarAsteroid {
		t.Error("far asteroid not on the top row")
	}
}

func TestBar(t *testing.T) {
	plain := newStyles(io.Discard, true)
	tests := []struct {
		frac       float64
		full, empty int
	}{
		{0, 0, 10},
		{0.5, 5, 5},
		{1, 10, 0},
		{1.7, 10, 0},
		{-1, 0, 10},
	}
	for _, tt := range tests {
		got := bar(tt.frac, 10, plain.barFill, plain.barEmpty)
		if n := strings.Count(got, string(draw.BlockFull)); n != tt.full {
			t.Errorf("bar(%v) full = %d, want %d", tt.frac, n, tt.full)
		}
		if n := strings.Count(got, string(draw.BlockLight)); n != tt.empty {
			t.Errorf("bar(%v) empty = %d, want %d", tt.frac, n, tt.empty)
		}
	}
}

func TestScoreText(t *testing.T) {
	for score, want := range map[int]string{0: "000000", 500: "000500", 1234567: "1234567"} {
		if got := scoreText(score); got != want {
			t.Errorf("scoreText(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestDrawScreens(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want []string
	}{
		{"start", nil, []string{"PILOT PROFILE", "HOSTILES"}},
		{"hud", []input.Key{input.KeyBegin}, []string{"000000", "POINTS", "SHIELD INTEGRITY", "DISTANCE TO BASE", "RADAR"}},
		{"paused", []input.Key{input.KeyBegin, input.KeyPause}, []string{"SYSTEM PAUSED"}},
		{"dossier", []input.Key{input.KeyInfo}, []string{"PILOT DOSSIER", "CONTACT CHANNELS", "MISSION BRIEF"}},
		{"archive card", []input.Key{input.KeyBegin, input.KeyNext}, []string{"ARCHIVE DATA: 2019", "First"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestClient(t)
			for _, k := range tt.keys {
				tc.step(t, k)
			}
			tc.step(t)
			out := tc.out.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("frame missing %q", w)
				}
			}
		})
	}
}

func TestDrawEnding(t *testing.T) {
	tc := newTestClient(t)
	tc.step(t, input.KeyBegin)
	tc.runToEnding(t)
	tc.step(t)
	tc.state.Crawl.Pos = 20
	tc.step(t, input.KeyInfo)
	tc.step(t, input.KeyInfo)
	if !strings.Contains(tc.out.String(), "M I S S I O N") {
		t.Error("crawl title not on screen early in the crawl")
	}
}

func withHub(t *testing.T, tc *testClient) *server.Hub {
	t.Helper()
	hub := server.NewHub(0, config.TopScoreCount)
	session, err := hub.Register("pilot")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	tc.opts.Hub = hub
	tc.opts.Session = session
	return hub
}

func TestHubShutdown(t *testing.T) {
	tc := newTestClient(t)
	hub := withHub(t, tc)

	go hub.Shutdown(0)
	deadline := time.Now().Add(2 * time.Second)
	for !tc.state.shutdown && time.Now().Before(deadline) {
		tc.step(t)
		time.Sleep(time.Millisecond)
	}
	if !tc.state.shutdown {
		t.Fatal("shutdown event not received")
	}
	if !strings.Contains(tc.out.String(), "SERVER SHUTTING DOWN") {
		t.Error("shutdown notice not drawn")
	}

	tc.now = tc.now.Add(config.ShutdownDisplay)
	tc.step(t)
	if tc.state.Running {
		t.Error("client still running after the shutdown notice")
	}
}

func TestHubReportsCompletedRun(t *testing.T) {
	tc := newTestClient(t)
	hub := withHub(t, tc)

	tc.step(t, input.KeyBegin)
	tc.step(t)
	if len(hub.TopScores()) != 0 {
		t.Fatal("run reported before completion")
	}
	tc.runToEnding(t)
	tc.step(t)
	tc.step(t)

	top := hub.TopScores()
	if len(top) != 1 || top[0].Username != "pilot" {
		t.Fatalf("leaderboard = %+v, want one entry for pilot", top)
	}

	tc.step(t, input.KeyRestart)
	tc.step(t)
	if !strings.Contains(tc.out.String(), "TOP PILOTS") {
		t.Error("leaderboard missing from the start screen")
	}
}
