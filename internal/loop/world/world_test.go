package world

import (
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/career-run/internal/course"
	"github.com/tomz197/career-run/internal/input"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/object"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

const frame = 16 * time.Millisecond

// recorder is an audio.Player that counts calls.
type recorder struct {
	inits, lasers, explosions, chimes, resets int
	muted                                     bool
}

func (r *recorder) Init()               { r.inits++ }
func (r *recorder) PlayLaser()          { r.lasers++ }
func (r *recorder) PlayExplosion()      { r.explosions++ }
func (r *recorder) PlayMilestoneChime() { r.chimes++ }
func (r *recorder) Reset()              { r.resets++ }

func (r *recorder) ToggleMute() bool {
	r.muted = !r.muted
	return r.muted
}

var testTable = course.Table{
	{ID: "a", Year: "2019", Title: "First", ZDistance: 600, Kind: course.KindEducation, Color: "#00ffff"},
	{ID: "b", Year: "2021", Title: "Second", ZDistance: 1200, Kind: course.KindWork, Color: "#ff00ff"},
}

func newTestWorld(t *testing.T, tune func(*config.Tuning)) (*World, *recorder) {
	t.Helper()
	tun := config.DefaultTuning()
	tun.TotalDistance = 2000
	tun.EnemySpawnChance = 0
	if tune != nil {
		tune(&tun)
	}
	rec := &recorder{}
	w, err := New(Options{
		Tuning:     &tun,
		Milestones: testTable,
		Sounds:     rec,
		Rand:       rand.New(rand.NewPCG(7, 11)),
		Logger:     log.New(io.Discard),
		Stars:      -1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, rec
}

func begin(t *testing.T, w *World) {
	t.Helper()
	if err := w.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
}

func addEnemy(w *World, kind object.EnemyKind, pos physics.Vec3) *object.Enemy {
	e := object.NewEnemy(kind, pos, 2, w.scene)
	w.enemies = append(w.enemies, e)
	return e
}

func addProjectile(w *World, pos physics.Vec3) *object.Projectile {
	p := object.NewProjectile(pos, physics.Vec3{Z: -w.tuning.LaserSpeed}, physics.Vec3{}, w.scene)
	w.projectiles = append(w.projectiles, p)
	return p
}

func TestNewRejectsBadMilestones(t *testing.T) {
	tun := config.DefaultTuning()
	bad := course.Table{{ID: "x", ZDistance: 500}, {ID: "y", ZDistance: 400}}
	_, err := New(Options{Tuning: &tun, Milestones: bad, Stars: -1, Logger: log.New(io.Discard)})
	if !errors.Is(err, course.ErrUnsorted) {
		t.Errorf("New error = %v, want ErrUnsorted", err)
	}
}

func TestBeginFirstStep(t *testing.T) {
	w, rec := newTestWorld(t, nil)
	begin(t, w)
	if rec.inits != 1 {
		t.Errorf("audio Init called %d times, want 1", rec.inits)
	}

	w.Advance(frame, input.State{})

	s := w.State()
	if s.Phase != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase)
	}
	if s.Shield != 100 || s.Score != 0 {
		t.Errorf("shield, score = %v, %v; want 100, 0", s.Shield, s.Score)
	}
	if d := w.ship.Distance(); d <= 0 || d > 5 {
		t.Errorf("ship travelled %v in one frame, want small positive", d)
	}
}

func TestBeginOutsideStart(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)
	w.Advance(frame, input.State{})
	before := w.State()

	if err := w.Begin(); !errors.Is(err, ErrNotAtStart) {
		t.Fatalf("second Begin error = %v, want ErrNotAtStart", err)
	}
	if w.State() != before {
		t.Error("rejected Begin changed state")
	}
}

func TestStartPhaseIsIdle(t *testing.T) {
	w, _ := newTestWorld(t, func(tun *config.Tuning) { tun.EnemySpawnChance = 1 })
	for i := 0; i < 60; i++ {
		w.Advance(frame, input.State{Fire: true, Up: true})
	}
	if w.ship.Position != (physics.Vec3{}) {
		t.Errorf("ship moved at start: %v", w.ship.Position)
	}
	if len(w.enemies) != 0 || len(w.projectiles) != 0 {
		t.Errorf("start phase spawned %d enemies, %d projectiles", len(w.enemies), len(w.projectiles))
	}
	if w.ship.Rotation == (physics.Vec3{}) {
		t.Error("ship should sway at start")
	}
}

func TestEnemyHitsShip(t *testing.T) {
	w, rec := newTestWorld(t, nil)
	begin(t, w)
	addEnemy(w, object.Asteroid, w.ship.Position.Add(physics.Vec3{Z: -5.9}))

	w.Advance(frame, input.State{})

	if len(w.enemies) != 0 {
		t.Errorf("enemies = %d, want 0", len(w.enemies))
	}
	if got := w.State().Shield; got != 95 {
		t.Errorf("shield = %v, want 95", got)
	}
	if rec.explosions != 1 {
		t.Errorf("explosions = %d, want 1", rec.explosions)
	}
	if w.scene.Count(scene.KindAsteroid) != 0 {
		t.Error("destroyed enemy left its node behind")
	}
}

func TestShieldClamp(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)

	prev := w.State().Shield
	for i := 0; i < 30; i++ {
		addEnemy(w, object.Asteroid, w.ship.Position.Add(physics.Vec3{Z: -3}))
		w.Advance(frame, input.State{})
		s := w.State().Shield
		if s < 0 || s > config.MaxShield {
			t.Fatalf("hit %d: shield %v out of range", i, s)
		}
		if s > prev {
			t.Fatalf("hit %d: shield rose from %v to %v", i, prev, s)
		}
		prev = s
	}
	if prev != 0 {
		t.Errorf("shield = %v after 30 hits, want 0", prev)
	}
	if w.State().Phase != PhasePlaying {
		t.Error("an empty shield must not end the run")
	}
}

func TestProjectileKillsEnemy(t *testing.T) {
	tests := []struct {
		kind object.EnemyKind
		want int
	}{
		{object.Asteroid, 100},
		{object.Drone, 500},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			w, rec := newTestWorld(t, nil)
			begin(t, w)
			addProjectile(w, physics.Vec3{Z: -20})
			addEnemy(w, tt.kind, physics.Vec3{Z: -25})

			w.Advance(frame, input.State{})

			if len(w.projectiles) != 0 || len(w.enemies) != 0 {
				t.Errorf("projectiles, enemies = %d, %d; want 0, 0", len(w.projectiles), len(w.enemies))
			}
			if got := w.State().Score; got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
			if rec.explosions != 1 {
				t.Errorf("explosions = %d, want 1", rec.explosions)
			}
			if w.scene.Count(scene.KindLaser) != 0 {
				t.Error("spent projectile left its node behind")
			}
		})
	}
}

func TestProjectileKillsOnlyFirstEnemy(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)
	addProjectile(w, physics.Vec3{Z: -20})
	first := addEnemy(w, object.Asteroid, physics.Vec3{Z: -25})
	second := addEnemy(w, object.Drone, physics.Vec3{Z: -27})

	w.Advance(frame, input.State{})

	if len(w.enemies) != 1 || w.enemies[0] != second {
		t.Fatalf("survivors = %v, want only the second enemy", w.enemies)
	}
	if !first.IsDestroyed() {
		t.Error("first enemy in pool order should be the one destroyed")
	}
	if got := w.State().Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestDeadEnemyNotMatchedTwice(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)
	addProjectile(w, physics.Vec3{X: -1, Z: -20})
	addProjectile(w, physics.Vec3{X: 1, Z: -20})
	addEnemy(w, object.Drone, physics.Vec3{Z: -28})

	w.Advance(frame, input.State{})

	if got := w.State().Score; got != 500 {
		t.Errorf("score = %d, want a single drone kill", got)
	}
	if len(w.projectiles) != 1 {
		t.Errorf("projectiles = %d, want the second bolt to fly on", len(w.projectiles))
	}
}

func TestFireCooldown(t *testing.T) {
	w, rec := newTestWorld(t, nil)
	begin(t, w)

	var shots []time.Duration
	for i := 0; i < 63; i++ {
		n := rec.lasers
		w.Advance(frame, input.State{Fire: true})
		if rec.lasers > n {
			shots = append(shots, w.clock)
		}
	}
	if len(shots) < 7 {
		t.Fatalf("fired %d volleys in a second, want at least 7", len(shots))
	}
	for i := 1; i < len(shots); i++ {
		if gap := shots[i] - shots[i-1]; gap <= w.tuning.LaserCooldown {
			t.Errorf("volleys %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestFireSpawnsPair(t *testing.T) {
	w, rec := newTestWorld(t, nil)
	begin(t, w)
	w.Advance(frame, input.State{Fire: true})
	if rec.lasers != 1 {
		t.Fatalf("lasers = %d, want 1", rec.lasers)
	}
	if len(w.projectiles) != 2 {
		t.Fatalf("projectiles = %d, want 2", len(w.projectiles))
	}
	a, b := w.projectiles[0].Position, w.projectiles[1].Position
	if math.Abs(a.X+b.X-2*w.ship.Position.X) > 1e-6 {
		t.Errorf("muzzles %v and %v are not symmetric about the ship", a, b)
	}
}

func TestRunToEnding(t *testing.T) {
	w, rec := newTestWorld(t, nil)
	begin(t, w)

	prevDist, prevIdx := 0.0, -1
	endings := 0
	for i := 0; i < 20000 && endings == 0; i++ {
		was := w.State().Phase
		w.Advance(frame, input.State{})
		s := w.State()

		if s.Distance < prevDist {
			t.Fatalf("step %d: distance fell from %v to %v", i, prevDist, s.Distance)
		}
		if s.Milestone < prevIdx {
			t.Fatalf("step %d: milestone fell from %d to %d", i, prevIdx, s.Milestone)
		}
		if s.Milestone != prevIdx {
			gap := math.Abs(w.ship.Distance() - testTable[s.Milestone].ZDistance)
			if gap >= w.tuning.MilestoneWindow {
				t.Errorf("milestone %d activated %v away", s.Milestone, gap)
			}
		}
		if was == PhasePlaying && s.Phase == PhaseEnding {
			endings++
		}
		prevDist, prevIdx = s.Distance, s.Milestone
	}
	if endings != 1 {
		t.Fatalf("reached ending %d times, want 1", endings)
	}
	if rec.chimes != len(testTable) {
		t.Errorf("chimes = %d, want %d", rec.chimes, len(testTable))
	}
	if prevIdx != len(testTable)-1 {
		t.Errorf("final milestone = %d, want %d", prevIdx, len(testTable)-1)
	}

	for i := 0; i < 100; i++ {
		w.Advance(frame, input.State{})
		if w.State().Phase != PhaseEnding {
			t.Fatal("ending is terminal")
		}
		if w.State().Distance < prevDist {
			t.Fatal("distance fell during ending")
		}
		prevDist = w.State().Distance
	}
	if rec.chimes != len(testTable) {
		t.Error("ending fired extra chimes")
	}
}

func TestSlowZone(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)
	w.ship.Position.Z = -500
	for i := 0; i < 200; i++ {
		w.Advance(frame, input.State{})
	}
	want := w.tuning.ShipSpeed * w.tuning.SlowZoneFactor
	if math.Abs(w.ship.Speed-want) > 0.05 {
		t.Errorf("speed near milestone = %v, want about %v", w.ship.Speed, want)
	}
}

func TestEndingPhase(t *testing.T) {
	w, rec := newTestWorld(t, func(tun *config.Tuning) { tun.EnemySpawnChance = 1 })
	begin(t, w)
	w.ship.Position = physics.Vec3{X: 20, Y: -10, Z: -1999}

	w.Advance(frame, input.State{Fire: true})
	if w.State().Phase != PhaseEnding {
		t.Fatalf("phase = %v, want ending", w.State().Phase)
	}
	for i := 0; i < 300; i++ {
		w.Advance(frame, input.State{Fire: true, Left: true})
	}
	if len(w.enemies) != 0 || len(w.projectiles) != 0 || rec.lasers != 0 {
		t.Errorf("ending spawned enemies=%d projectiles=%d lasers=%d", len(w.enemies), len(w.projectiles), rec.lasers)
	}
	if math.Abs(w.ship.Position.X) > 0.5 || math.Abs(w.ship.Position.Y) > 0.5 {
		t.Errorf("ship did not recenter: %v", w.ship.Position)
	}
	// 300 frames of 16ms at 80 units/s.
	if d := w.ship.Distance(); d < 2000+300*0.016*80-5 {
		t.Errorf("ending distance = %v, want steady cruise", d)
	}
}

func TestRestartDeterminism(t *testing.T) {
	setups := []struct {
		name  string
		setup func(*testing.T, *World)
	}{
		{"start", func(t *testing.T, w *World) {}},
		{"mid game", func(t *testing.T, w *World) {
			begin(t, w)
			addEnemy(w, object.Drone, physics.Vec3{Z: -300})
			for i := 0; i < 30; i++ {
				w.Advance(frame, input.State{Fire: true, Right: true})
			}
		}},
		{"paused", func(t *testing.T, w *World) {
			begin(t, w)
			w.Advance(frame, input.State{Fire: true})
			w.TogglePause()
		}},
		{"ending", func(t *testing.T, w *World) {
			begin(t, w)
			w.ship.Position.Z = -1999
			w.Advance(frame, input.State{})
		}},
	}
	for _, tt := range setups {
		t.Run(tt.name, func(t *testing.T) {
			w, rec := newTestWorld(t, nil)
			tt.setup(t, w)

			w.Restart()

			if got := w.State(); got != DefaultState() {
				t.Errorf("state = %+v, want %+v", got, DefaultState())
			}
			if got := w.Snapshot().State; got != DefaultState() {
				t.Errorf("snapshot state = %+v", got)
			}
			if len(w.projectiles)+len(w.enemies)+len(w.particles) != 0 {
				t.Errorf("pools not empty: %d projectiles, %d enemies, %d particles",
					len(w.projectiles), len(w.enemies), len(w.particles))
			}
			// Ship plus a body and halo per marker.
			if got, want := w.scene.Len(), 1+2*len(testTable); got != want {
				t.Errorf("scene nodes = %d, want %d", got, want)
			}
			if w.ship.Position != (physics.Vec3{}) {
				t.Errorf("ship at %v after restart", w.ship.Position)
			}
			if rec.resets != 1 {
				t.Errorf("audio resets = %d, want 1", rec.resets)
			}
		})
	}
}

func TestPauseFreeze(t *testing.T) {
	w, _ := newTestWorld(t, func(tun *config.Tuning) { tun.EnemySpawnChance = 1 })
	begin(t, w)
	addEnemy(w, object.Drone, physics.Vec3{Z: -200})
	w.Advance(frame, input.State{Fire: true})

	if !w.TogglePause() {
		t.Fatal("TogglePause should pause")
	}
	ship := *w.ship
	state := w.State()
	enemies := len(w.enemies)
	drone := w.enemies[0].Position
	projectiles := len(w.projectiles)

	all := input.State{Up: true, Down: true, Left: true, Right: true, Fire: true}
	w.Advance(frame, all)
	w.Advance(frame, all)
	w.Step(time.Now(), all)

	if *w.ship != ship {
		t.Error("ship changed while paused")
	}
	if w.State() != state {
		t.Errorf("state changed while paused: %+v -> %+v", state, w.State())
	}
	if len(w.enemies) != enemies || len(w.projectiles) != projectiles {
		t.Error("pools changed while paused")
	}
	if w.enemies[0].Position != drone {
		t.Error("drone moved while paused")
	}

	if w.TogglePause() {
		t.Error("second TogglePause should resume")
	}
}

func TestPauseOnlyWhilePlaying(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	if w.TogglePause() {
		t.Error("start phase cannot be paused")
	}
	w.Pause()
	if w.State().Paused {
		t.Error("Pause at start should do nothing")
	}
	begin(t, w)
	w.Pause()
	w.Pause()
	if !w.State().Paused {
		t.Error("Pause while playing should pause")
	}
}

func TestZeroDeltaIsNoOp(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)
	w.Advance(frame, input.State{})
	ship, state := *w.ship, w.State()

	w.Advance(0, input.State{Fire: true, Left: true})

	if *w.ship != ship || w.State() != state || len(w.projectiles) != 0 {
		t.Error("dt=0 changed the world")
	}
}

func TestLargeDeltaIsClamped(t *testing.T) {
	a, _ := newTestWorld(t, nil)
	b, _ := newTestWorld(t, nil)
	begin(t, a)
	begin(t, b)

	a.Advance(5*time.Second, input.State{})
	b.Advance(a.tuning.MaxFrameDelta, input.State{})

	if a.ship.Position != b.ship.Position {
		t.Errorf("5s step moved ship to %v, want clamp to %v", a.ship.Position, b.ship.Position)
	}
}

func TestStepHoldsClockAcrossPause(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)
	t0 := time.Unix(1000, 0)

	w.Step(t0, input.State{})
	if d := w.ship.Distance(); d != 0 {
		t.Fatalf("first step moved ship %v, want anchor only", d)
	}
	w.Step(t0.Add(frame), input.State{})
	before := w.ship.Distance()
	if before <= 0 {
		t.Fatal("second step did not move")
	}

	w.TogglePause()
	w.Step(t0.Add(10*time.Second), input.State{})
	w.TogglePause()
	w.Step(t0.Add(10*time.Second+frame), input.State{})

	if jump := w.ship.Distance() - before; jump <= 0 || jump > 3 {
		t.Errorf("resume moved ship %v, want one frame's travel", jump)
	}
}

func TestFrameRateIndependence(t *testing.T) {
	tick := time.Second / 60

	a, _ := newTestWorld(t, nil)
	b, _ := newTestWorld(t, nil)
	begin(t, a)
	begin(t, b)

	a.Advance(tick, input.State{})
	a.Advance(tick, input.State{})
	b.Advance(2*tick, input.State{})
	if math.Abs(a.ship.Position.Z-b.ship.Position.Z) > 1e-6 {
		t.Errorf("two half steps z=%v, one full step z=%v", a.ship.Position.Z, b.ship.Position.Z)
	}

	// One reference frame matches the per-frame formulas.
	c, _ := newTestWorld(t, nil)
	begin(t, c)
	c.Advance(tick, input.State{Right: true})
	if math.Abs(c.ship.Position.Z+2) > 1e-6 {
		t.Errorf("z after one frame = %v, want -2", c.ship.Position.Z)
	}
	if want := 0.25 * 0.94; math.Abs(c.ship.Position.X-want) > 1e-6 {
		t.Errorf("x after one frame = %v, want %v", c.ship.Position.X, want)
	}
}

func TestSpawnerAddsBoundEnemy(t *testing.T) {
	w, _ := newTestWorld(t, func(tun *config.Tuning) { tun.EnemySpawnChance = 1 })
	begin(t, w)
	w.Advance(frame, input.State{})

	if len(w.enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(w.enemies))
	}
	e := w.enemies[0]
	if e.NodeID() == 0 || w.scene.Node(e.NodeID()) == nil {
		t.Error("spawned enemy has no scene node")
	}
	if want := w.ship.Position.Z - w.tuning.SpawnAhead; math.Abs(e.Position.Z-want) > 1 {
		t.Errorf("spawned at z=%v, want about %v", e.Position.Z, want)
	}
}

func TestSnapshotBlipsAndMute(t *testing.T) {
	w, rec := newTestWorld(t, nil)
	begin(t, w)
	addEnemy(w, object.Drone, physics.Vec3{X: 5, Z: -100})
	w.Advance(frame, input.State{})

	snap := w.Snapshot()
	if len(snap.Blips) != 1 {
		t.Fatalf("blips = %d, want 1", len(snap.Blips))
	}
	if b := snap.Blips[0]; b.Kind != object.Drone || math.Abs(b.Offset.X-5) > 1e-9 {
		t.Errorf("blip = %+v", b)
	}
	if snap.State != w.State() {
		t.Error("snapshot state is stale")
	}

	if !w.ToggleMute() || !w.Snapshot().Muted || !rec.muted {
		t.Error("mute not published")
	}
}

func TestDebrisIsCleanedUp(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	begin(t, w)
	addEnemy(w, object.Asteroid, physics.Vec3{Z: -4})
	w.Advance(frame, input.State{})
	if len(w.particles) == 0 {
		t.Fatal("hit spawned no debris")
	}
	for i := 0; i < 120; i++ {
		w.Advance(frame, input.State{})
	}
	if len(w.particles) != 0 || w.scene.Count(scene.KindParticle) != 0 {
		t.Errorf("debris left: %d particles, %d nodes", len(w.particles), w.scene.Count(scene.KindParticle))
	}
}
