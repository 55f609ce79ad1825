package object

import (
	"math"
	"time"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/input"
	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// Laser muzzles in ship-local space.
var muzzles = [2]physics.Vec3{
	{X: -1.5, Z: -2},
	{X: 1.5, Z: -2},
}

// Ship is the player's craft. Forward travel decreases Position.Z; lateral
// movement is bounded to ±MaxX, ±MaxY.
type Ship struct {
	Position physics.Vec3
	VX, VY   float64      // lateral velocity, units per reference frame
	Rotation physics.Vec3 // cosmetic bank (Z) and pitch (X)
	Speed    float64      // forward units per reference frame

	node     scene.NodeID
	lastShot time.Duration
	fired    bool
}

// NewShip creates a ship at the origin cruising at nominal speed and
// attaches its node to s.
func NewShip(t *config.Tuning, s *scene.Scene) *Ship {
	sh := &Ship{Speed: t.ShipSpeed}
	if s != nil {
		sh.node = s.Attach(scene.Node{Kind: scene.KindShip, Color: draw.Cyan})
	}
	return sh
}

// NodeID returns the ship's scene node.
func (sh *Ship) NodeID() scene.NodeID { return sh.node }

// Sync places the ship's node.
func (sh *Ship) Sync(s *scene.Scene) {
	s.Place(sh.node, sh.Position, sh.Rotation)
}

// Distance is how far along the course the ship has travelled.
func (sh *Ship) Distance() float64 {
	return math.Abs(sh.Position.Z)
}

// Fly advances the ship one playing frame: forward speed eases toward
// target, held directions push lateral velocity, drag and the strafe limit
// apply, then position integrates and the bank follows velocity.
func (sh *Ship) Fly(in input.State, target, frames float64, t *config.Tuning) {
	sh.Speed = physics.Lerp(sh.Speed, target, physics.EaseFactor(t.SpeedSmoothing, frames))

	force := t.ManeuverForce * frames
	if in.Left {
		sh.VX -= force
	}
	if in.Right {
		sh.VX += force
	}
	if in.Up {
		sh.VY += force
	}
	if in.Down {
		sh.VY -= force
	}

	drag := physics.Decay(t.StrafeDamping, frames)
	sh.VX = physics.Clamp(sh.VX*drag, -t.MaxStrafeSpeed, t.MaxStrafeSpeed)
	sh.VY = physics.Clamp(sh.VY*drag, -t.MaxStrafeSpeed, t.MaxStrafeSpeed)

	sh.Position.X = physics.Clamp(sh.Position.X+sh.VX*frames, -t.MaxX, t.MaxX)
	sh.Position.Y = physics.Clamp(sh.Position.Y+sh.VY*frames, -t.MaxY, t.MaxY)
	sh.Position.Z -= sh.Speed * frames

	bank := physics.EaseFactor(t.RotationSpeed, frames)
	sh.Rotation.Z = physics.Lerp(sh.Rotation.Z, -sh.VX*0.3, bank)
	sh.Rotation.X = physics.Lerp(sh.Rotation.X, sh.VY*0.15, bank)
}

// Cruise moves the ship during the ending: a fixed forward rate and a drift
// back to the course centerline.
func (sh *Ship) Cruise(dt time.Duration, frames float64, t *config.Tuning) {
	sh.Position.Z -= t.EndingSpeed * dt.Seconds()
	k := physics.EaseFactor(t.EndingRecenter, frames)
	sh.Position.X = physics.Lerp(sh.Position.X, 0, k)
	sh.Position.Y = physics.Lerp(sh.Position.Y, 0, k)
}

// Idle sways the ship on the start screen. now is the session clock.
func (sh *Ship) Idle(now time.Duration) {
	ms := float64(now) / float64(time.Millisecond)
	sh.Rotation.Z = math.Sin(ms*0.001) * 0.1
	sh.Rotation.X = math.Cos(ms*0.001) * 0.05
}

// CanFire reports whether the cooldown has elapsed at now.
func (sh *Ship) CanFire(now, cooldown time.Duration) bool {
	return !sh.fired || now-sh.lastShot > cooldown
}

// Fire records a volley at now and returns the two muzzle positions and
// the shared projectile velocity, oriented with the ship.
func (sh *Ship) Fire(now time.Duration, speed float64) (from [2]physics.Vec3, vel physics.Vec3) {
	sh.fired = true
	sh.lastShot = now
	rot := physics.Vec3{X: sh.Rotation.X, Z: sh.Rotation.Z}
	for i, m := range muzzles {
		from[i] = physics.RotateEuler(m, rot).Add(sh.Position)
	}
	return from, physics.RotateEuler(physics.Vec3{Z: -speed}, rot)
}
