package object

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// Chase offsets relative to the ship.
const (
	chaseFollowX = 0.6
	chaseFollowY = 0.5
	chaseHeight  = 6
	chaseBack    = 16
	chaseAhead   = 30
	endingBack   = 15
)

// CameraRig is the chase camera. Its position eases toward a point behind
// the ship; it always looks ahead along the course.
type CameraRig struct {
	Position physics.Vec3
	LookAt   physics.Vec3
}

// NewCameraRig places the camera in its start-screen pose.
func NewCameraRig() *CameraRig {
	return &CameraRig{
		Position: physics.Vec3{Y: chaseHeight, Z: 12},
	}
}

// Camera returns the render camera.
func (c *CameraRig) Camera() scene.Camera {
	return scene.Camera{Position: c.Position, Target: c.LookAt, FOV: scene.DefaultFOV}
}

// Follow eases toward the chase point for ship and looks ahead of it.
func (c *CameraRig) Follow(ship physics.Vec3, frames float64, t *config.Tuning) {
	target := physics.Vec3{
		X: ship.X * chaseFollowX,
		Y: ship.Y*chaseFollowY + chaseHeight,
		Z: ship.Z + chaseBack,
	}
	c.Position = c.Position.Lerp(target, physics.EaseFactor(t.CameraLag, frames))
	c.LookAt = physics.Vec3{X: ship.X, Y: ship.Y, Z: ship.Z - chaseAhead}
}

// Trail keeps the camera a fixed distance behind the ship during the
// ending while it recenters.
func (c *CameraRig) Trail(ship physics.Vec3, frames float64, t *config.Tuning) {
	k := physics.EaseFactor(t.EndingRecenter, frames)
	c.Position.X = physics.Lerp(c.Position.X, 0, k)
	c.Position.Y = physics.Lerp(c.Position.Y, chaseHeight, k)
	c.Position.Z = ship.Z + endingBack
	c.LookAt = ship
}

// Idle sways the camera on the start screen.
func (c *CameraRig) Idle(ship physics.Vec3, now time.Duration) {
	ms := float64(now) / float64(time.Millisecond)
	c.Position = physics.Vec3{X: math.Sin(ms*0.0005) * 2, Y: chaseHeight, Z: 12}
	c.LookAt = ship
}

// Kick jolts the camera by up to ±1 on each lateral axis.
func (c *CameraRig) Kick(rng *rand.Rand) {
	c.Position.X += (rng.Float64() - 0.5) * 2
	c.Position.Y += (rng.Float64() - 0.5) * 2
}
