package object

import (
	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// Projectile is a laser bolt fired by the ship.
type Projectile struct {
	Position  physics.Vec3
	Velocity  physics.Vec3 // units per second
	Rotation  physics.Vec3 // orientation inherited from the ship
	node      scene.NodeID
	destroyed bool
}

// NewProjectile creates a bolt and attaches its node to s.
func NewProjectile(pos, vel, rot physics.Vec3, s *scene.Scene) *Projectile {
	p := &Projectile{Position: pos, Velocity: vel, Rotation: rot}
	if s != nil {
		p.node = s.Attach(scene.Node{Kind: scene.KindLaser, Position: pos, Rotation: rot, Color: draw.Green})
	}
	return p
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// NodeID returns the projectile's scene node.
func (p *Projectile) NodeID() scene.NodeID { return p.node }

// Update moves the projectile and expires it once it is out of range of
// the ship.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	if p.destroyed {
		return true, nil
	}
	p.Position = p.Position.AddScaled(p.Velocity, ctx.Delta.Seconds())
	r := ctx.Tuning.ProjectileRange
	if physics.DistanceSquared(p.Position, ctx.Ship) > r*r {
		p.destroyed = true
		return true, nil
	}
	return false, nil
}

// Sync places the projectile's node.
func (p *Projectile) Sync(s *scene.Scene) {
	s.Place(p.node, p.Position, p.Rotation)
}
