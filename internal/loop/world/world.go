// Package world runs the simulation: ship kinematics, the chase camera,
// projectiles, enemies, spawning, collisions, milestone detection and phase
// transitions. A World is driven by one goroutine; observers read the
// published Snapshot.
package world

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/career-run/internal/audio"
	"github.com/tomz197/career-run/internal/course"
	"github.com/tomz197/career-run/internal/input"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/object"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// ErrNotAtStart is returned by Begin outside the start phase.
var ErrNotAtStart = errors.New("world: begin is only valid at start")

// Marker spin rates, radians per second.
const (
	markerSpinIdle   = 0.01
	markerSpinFlying = 0.1
)

// Debris bursts.
const (
	killDebris     = 12
	hitDebris      = 16
	debrisSpeed    = 20.0
	debrisLifetime = 0.6
)

// Options configures a World. Zero fields take defaults.
type Options struct {
	Tuning     *config.Tuning
	Milestones course.Table
	Sounds     audio.Player
	Rand       *rand.Rand
	Logger     *log.Logger
	Stars      int // starfield size; 0 uses config.StarCount, <0 disables
}

// World owns the ship, the entity pools and the game state.
type World struct {
	tuning     *config.Tuning
	milestones course.Table
	sounds     audio.Player
	rng        *rand.Rand
	logger     *log.Logger
	stars      int

	scene       *scene.Scene
	ship        *object.Ship
	camera      *object.CameraRig
	spawner     *object.EnemySpawner
	projectiles []*object.Projectile
	enemies     []*object.Enemy
	particles   []*object.Particle
	markers     []*object.Marker
	toSpawn     []object.Object
	grid        *physics.SpatialGrid

	state GameState
	muted bool
	clock time.Duration // sum of unpaused step time
	last  time.Time
	timed bool // last is valid

	snapshot   atomic.Pointer[Snapshot]
	blipBufs   [2][]Blip
	blipBufIdx int
}

// New builds a world at the start phase. It fails when the milestone table
// does not fit the course.
func New(opts Options) (*World, error) {
	t := opts.Tuning
	if t == nil {
		def := config.DefaultTuning()
		t = &def
	}
	milestones := opts.Milestones
	if milestones == nil {
		milestones = course.Default
	}
	if err := milestones.Validate(t.TotalDistance); err != nil {
		return nil, fmt.Errorf("milestones: %w", err)
	}

	w := &World{
		tuning:     t,
		milestones: milestones,
		sounds:     opts.Sounds,
		rng:        opts.Rand,
		logger:     opts.Logger,
		stars:      opts.Stars,
	}
	if w.sounds == nil {
		w.sounds = &audio.Nop{}
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	if w.stars == 0 {
		w.stars = config.StarCount
	}

	// The grid window spans the lateral field and the stretch of course
	// where enemies and projectiles can meet.
	cell := 2 * t.HitRadius
	w.grid = physics.NewSpatialGrid(
		t.MaxX*t.FieldSpread+2*cell,
		t.SpawnAhead+t.ProjectileRange+t.CullBehind,
		cell,
	)

	w.build()
	w.publish()
	return w, nil
}

// build creates a fresh scene, ship, camera, markers and empty pools.
func (w *World) build() {
	var stars *scene.Starfield
	if w.stars > 0 {
		stars = scene.NewStarfield(w.rng, w.stars, config.StarSpread)
	}
	w.scene = scene.New(stars)
	w.ship = object.NewShip(w.tuning, w.scene)
	w.camera = object.NewCameraRig()
	w.spawner = object.NewEnemySpawner()

	w.markers = w.markers[:0]
	for i, m := range w.milestones {
		w.markers = append(w.markers, object.NewMarker(i, m, w.scene))
	}
	w.state = DefaultState()
	w.clock = 0
	w.timed = false
	w.sync()
}

// teardown releases every pooled entity and empties the pools.
func (w *World) teardown() {
	for _, p := range w.particles {
		object.Discard(p, w.scene)
	}
	for _, obj := range w.toSpawn {
		object.ReleaseObject(obj)
	}
	clear(w.projectiles)
	clear(w.enemies)
	clear(w.particles)
	clear(w.toSpawn)
	w.projectiles = w.projectiles[:0]
	w.enemies = w.enemies[:0]
	w.particles = w.particles[:0]
	w.toSpawn = w.toSpawn[:0]
	w.scene.Clear()
}

// Spawn queues an object to be added after the current pass.
// Implements object.Spawner.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// flushSpawned binds queued objects to the scene and files them into their
// pools.
func (w *World) flushSpawned() {
	for _, obj := range w.toSpawn {
		if b, ok := obj.(object.Binder); ok && obj.NodeID() == 0 {
			b.Bind(w.scene)
		}
		switch o := obj.(type) {
		case *object.Enemy:
			w.enemies = append(w.enemies, o)
		case *object.Projectile:
			w.projectiles = append(w.projectiles, o)
		case *object.Particle:
			w.particles = append(w.particles, o)
		default:
			w.logger.Warn("dropping unknown spawn", "type", fmt.Sprintf("%T", obj))
			object.Discard(obj, w.scene)
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Snapshot returns the latest published view.
func (w *World) Snapshot() *Snapshot {
	return w.snapshot.Load()
}

// State returns the current game state.
func (w *World) State() GameState {
	return w.state
}

// Scene returns the render scene. Only the goroutine driving the world may
// read it.
func (w *World) Scene() *scene.Scene {
	return w.scene
}

// Camera returns the render camera.
func (w *World) Camera() scene.Camera {
	return w.camera.Camera()
}

// Milestones returns the milestone table.
func (w *World) Milestones() course.Table {
	return w.milestones
}

// Tuning returns the world's constants.
func (w *World) Tuning() *config.Tuning {
	return w.tuning
}

// Step advances the world to wall-clock time now. The first call after
// construction, a restart or a pause only anchors the clock.
func (w *World) Step(now time.Time, in input.State) {
	if w.state.Paused || !w.timed {
		w.last = now
		w.timed = true
		w.publish()
		return
	}
	dt := now.Sub(w.last)
	w.last = now
	w.Advance(dt, in)
}

// Advance runs one simulation step of dt. A paused world, or dt <= 0,
// changes nothing. dt is clamped to MaxFrameDelta.
func (w *World) Advance(dt time.Duration, in input.State) {
	if w.state.Paused || dt <= 0 {
		w.publish()
		return
	}
	dt = min(dt, w.tuning.MaxFrameDelta)
	w.clock += dt
	frames := w.tuning.Frames(dt)

	ctx := object.UpdateContext{
		Delta:   dt,
		Frames:  frames,
		Tuning:  w.tuning,
		Rand:    w.rng,
		Spawner: w,
	}

	spin := markerSpinFlying
	switch w.state.Phase {
	case PhaseStart:
		spin = markerSpinIdle
		w.ship.Idle(w.clock)
		w.camera.Idle(w.ship.Position, w.clock)
	case PhasePlaying:
		w.stepPlaying(ctx, in)
	case PhaseEnding:
		w.stepEnding(ctx)
	}

	for _, mk := range w.markers {
		mk.Turn(spin, dt.Seconds())
	}
	ctx.Ship = w.ship.Position
	w.updateParticles(ctx)
	w.flushSpawned()

	if w.scene.Stars != nil {
		w.scene.Stars.Follow(w.ship.Position.Z)
	}
	w.sync()
	w.publish()
}

// stepPlaying runs the full simulation for one playing step.
func (w *World) stepPlaying(ctx object.UpdateContext, in input.State) {
	t := w.tuning

	target := t.ShipSpeed
	if w.milestones.InSlowZone(w.ship.Distance(), t.SlowZoneRadius) {
		target *= t.SlowZoneFactor
	}
	w.ship.Fly(in, target, ctx.Frames, t)
	w.camera.Follow(w.ship.Position, ctx.Frames, t)

	w.track()
	if w.state.Phase != PhasePlaying {
		return
	}

	ctx.Ship = w.ship.Position
	if in.Fire && w.ship.CanFire(w.clock, t.LaserCooldown) {
		w.fire()
	}

	w.updateProjectiles(ctx, true)
	if _, err := w.spawner.Update(ctx); err != nil {
		w.logger.Error("spawner", "err", err)
	}
	w.flushSpawned()
	w.updateEnemies(ctx, true)
}

// stepEnding flies the ship home. Leftover entities keep moving and are
// culled, but nothing spawns, fires or collides.
func (w *World) stepEnding(ctx object.UpdateContext) {
	w.ship.Cruise(ctx.Delta, ctx.Frames, w.tuning)
	w.camera.Trail(w.ship.Position, ctx.Frames, w.tuning)
	w.track()

	ctx.Ship = w.ship.Position
	w.updateProjectiles(ctx, false)
	w.updateEnemies(ctx, false)
}

// track updates distance, the active milestone and the completion check.
func (w *World) track() {
	d := w.ship.Distance()
	w.state.Distance = max(w.state.Distance, float64(int64(d)))

	if w.state.Phase != PhasePlaying {
		return
	}

	if i := w.milestones.IndexNear(d, w.tuning.MilestoneWindow); i > w.state.Milestone {
		w.state.Milestone = i
		w.sounds.PlayMilestoneChime()
		w.logger.Debug("milestone reached", "index", i, "title", w.milestones[i].Title)
	}

	if d >= w.tuning.TotalDistance {
		w.state.Phase = PhaseEnding
		w.logger.Info("course complete", "score", w.state.Score, "shield", w.state.Shield)
	}
}

// fire spawns a volley of two projectiles.
func (w *World) fire() {
	from, vel := w.ship.Fire(w.clock, w.tuning.LaserSpeed)
	rot := w.ship.Rotation
	for _, p := range from {
		w.projectiles = append(w.projectiles, object.NewProjectile(p, vel, rot, w.scene))
	}
	w.sounds.PlayLaser()
}

func (w *World) updateParticles(ctx object.UpdateContext) {
	for _, p := range w.particles {
		if remove, _ := p.Update(ctx); remove {
			p.MarkDestroyed()
		}
	}
	w.particles = object.Sweep(w.particles, w.scene)
}

func (w *World) sync() {
	w.ship.Sync(w.scene)
	for _, p := range w.projectiles {
		p.Sync(w.scene)
	}
	for _, e := range w.enemies {
		e.Sync(w.scene)
	}
	for _, p := range w.particles {
		p.Sync(w.scene)
	}
	for _, mk := range w.markers {
		mk.Sync(w.scene)
	}
}

// publish stores a fresh snapshot. Blip slices are double-buffered so
// steady-state publishing does not allocate.
func (w *World) publish() {
	idx := w.blipBufIdx
	w.blipBufIdx = 1 - w.blipBufIdx

	blips := w.blipBufs[idx][:0]
	for _, e := range w.enemies {
		if e.IsDestroyed() {
			continue
		}
		blips = append(blips, Blip{Offset: e.Position.Sub(w.ship.Position), Kind: e.Kind})
	}
	w.blipBufs[idx] = blips

	w.snapshot.Store(&Snapshot{
		State: w.state,
		Muted: w.muted,
		Ship:  w.ship.Position,
		Speed: w.ship.Speed,
		Clock: w.clock,
		Blips: blips,
	})
}
