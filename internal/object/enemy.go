package object

import (
	"fmt"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// EnemyKind tags an enemy variant.
type EnemyKind int

const (
	Asteroid EnemyKind = iota
	Drone
)

func (k EnemyKind) String() string {
	switch k {
	case Asteroid:
		return "asteroid"
	case Drone:
		return "drone"
	default:
		return fmt.Sprintf("EnemyKind(%d)", int(k))
	}
}

// Behavior is the per-variant rule set.
type Behavior struct {
	Points   int        // score for a kill
	Advances bool       // moves toward the ship at DroneSpeed
	Node     scene.Kind // wireframe
	Color    draw.Color
}

// Behaviors is indexed by EnemyKind.
var Behaviors = [...]Behavior{
	Asteroid: {Points: config.ScoreAsteroid, Node: scene.KindAsteroid, Color: draw.Gray},
	Drone:    {Points: config.ScoreDrone, Advances: true, Node: scene.KindDrone, Color: draw.Blue},
}

// Behavior returns the rule set for k.
func (k EnemyKind) Behavior() Behavior {
	return Behaviors[k]
}

// Enemy is an obstacle ahead of the ship.
type Enemy struct {
	Kind      EnemyKind
	Position  physics.Vec3
	Rotation  physics.Vec3
	Size      float64 // cosmetic radius
	node      scene.NodeID
	destroyed bool
}

// NewEnemy creates an enemy. When s is nil the node is attached later by
// Bind.
func NewEnemy(kind EnemyKind, pos physics.Vec3, size float64, s *scene.Scene) *Enemy {
	e := &Enemy{Kind: kind, Position: pos, Size: size}
	if s != nil {
		e.Bind(s)
	}
	return e
}

// Bind attaches the enemy's node to s.
func (e *Enemy) Bind(s *scene.Scene) {
	b := e.Kind.Behavior()
	e.node = s.Attach(scene.Node{Kind: b.Node, Position: e.Position, Scale: e.Size, Color: b.Color})
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// NodeID returns the enemy's scene node.
func (e *Enemy) NodeID() scene.NodeID { return e.node }

// Update advances drones, tumbles every enemy and culls those that have
// fallen behind the ship.
func (e *Enemy) Update(ctx UpdateContext) (bool, error) {
	if e.destroyed {
		return true, nil
	}
	dt := ctx.Delta.Seconds()
	if e.Kind.Behavior().Advances {
		e.Position.Z += ctx.Tuning.DroneSpeed * dt
	}
	e.Rotation.X += dt
	e.Rotation.Y += dt

	if e.Position.Z > ctx.Ship.Z+ctx.Tuning.CullBehind {
		e.destroyed = true
		return true, nil
	}
	return false, nil
}

// Sync places the enemy's node.
func (e *Enemy) Sync(s *scene.Scene) {
	s.Place(e.node, e.Position, e.Rotation)
}
