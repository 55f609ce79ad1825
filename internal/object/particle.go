package object

import (
	"math"
	"sync"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived piece of explosion debris.
type Particle struct {
	Position    physics.Vec3
	Velocity    physics.Vec3 // units per second
	Lifetime    float64      // seconds remaining
	MaxLifetime float64      // initial lifetime (for fade calculation)
	Drag        float64      // velocity kept per reference frame
	Color       draw.Color
	node        scene.NodeID
}

// NewParticle creates a single particle from the pool. Its node is attached
// when it is spawned into a world.
func NewParticle(pos, vel physics.Vec3, lifetime float64, col draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		Position:    pos,
		Velocity:    vel,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
		Color:       col,
	}
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Bind attaches the particle's node to s.
func (p *Particle) Bind(s *scene.Scene) {
	p.node = s.Attach(scene.Node{Kind: scene.KindParticle, Position: p.Position, Color: p.Color})
}

// NodeID returns the particle's scene node.
func (p *Particle) NodeID() scene.NodeID { return p.node }

// MarkDestroyed expires the particle.
func (p *Particle) MarkDestroyed() { p.Lifetime = 0 }

// IsDestroyed reports whether the particle has expired.
func (p *Particle) IsDestroyed() bool { return p.Lifetime <= 0 }

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	drag := physics.Decay(p.Drag, ctx.Frames)
	p.Velocity = p.Velocity.Scale(drag)
	p.Position = p.Position.AddScaled(p.Velocity, dt)
	return false, nil
}

// Sync places the particle and fades it with age.
func (p *Particle) Sync(s *scene.Scene) {
	n := s.Node(p.node)
	if n == nil {
		return
	}
	n.Position = p.Position
	if p.MaxLifetime > 0 {
		n.Color = p.Color.Fog(1 - p.Lifetime/p.MaxLifetime)
	}
}

var debrisColors = []draw.Color{draw.Orange, draw.Yellow, draw.Red, draw.White}

// SpawnExplosion bursts count particles from pos in random directions.
func SpawnExplosion(pos physics.Vec3, count int, speed, lifetime float64, ctx UpdateContext) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	for i := 0; i < count; i++ {
		// Uniform direction on the sphere.
		z := ctx.Rand.Float64()*2 - 1
		a := ctx.Rand.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		dir := physics.Vec3{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}

		spd := speed * (0.5 + ctx.Rand.Float64())
		life := lifetime * (0.5 + ctx.Rand.Float64()*0.5)
		col := debrisColors[ctx.Rand.IntN(len(debrisColors))]

		ctx.Spawner.Spawn(NewParticle(pos, dir.Scale(spd), life, col))
	}
}
