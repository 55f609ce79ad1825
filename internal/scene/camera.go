package scene

import (
	"math"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/physics"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position physics.Vec3
	Target   physics.Vec3
	FOV      float64 // vertical field of view, degrees
}

// DefaultFOV matches a wide arcade view.
const DefaultFOV = 75

// near is the near clipping plane distance.
const near = 0.5

var worldUp = physics.Vec3{Y: 1}

// view is a camera basis prepared for a viewport.
type view struct {
	pos            physics.Vec3
	right, up, fwd physics.Vec3
	scale          float64 // focal length in logical units
	cx, cy         float64
	width, height  float64
}

func (c Camera) view(width, height float64) view {
	fwd := c.Target.Sub(c.Position).Normalize()
	if fwd == (physics.Vec3{}) {
		fwd = physics.Vec3{Z: -1}
	}
	right := fwd.Cross(worldUp).Normalize()
	if right == (physics.Vec3{}) {
		right = physics.Vec3{X: 1}
	}
	up := right.Cross(fwd)

	fov := c.FOV
	if fov <= 0 {
		fov = DefaultFOV
	}
	focal := 1 / math.Tan(fov*math.Pi/360)

	return view{
		pos:    c.Position,
		right:  right,
		up:     up,
		fwd:    fwd,
		scale:  focal * height / 2,
		cx:     width / 2,
		cy:     height / 2,
		width:  width,
		height: height,
	}
}

// toCamera converts a world point to camera space (Z is depth).
func (v view) toCamera(p physics.Vec3) physics.Vec3 {
	d := p.Sub(v.pos)
	return physics.Vec3{X: d.Dot(v.right), Y: d.Dot(v.up), Z: d.Dot(v.fwd)}
}

// screen projects a camera-space point in front of the near plane.
func (v view) screen(c physics.Vec3) draw.Point {
	return draw.Point{
		X: v.cx + c.X/c.Z*v.scale,
		Y: v.cy - c.Y/c.Z*v.scale,
	}
}

// Project maps a world point to logical canvas coordinates for a viewport of
// the given size. ok is false for points behind the near plane.
func Project(cam Camera, p physics.Vec3, width, height float64) (pt draw.Point, depth float64, ok bool) {
	v := cam.view(width, height)
	c := v.toCamera(p)
	if c.Z < near {
		return draw.Point{}, c.Z, false
	}
	return v.screen(c), c.Z, true
}

// clipSegment clips a camera-space segment against the near plane.
func clipSegment(a, b physics.Vec3) (physics.Vec3, physics.Vec3, bool) {
	if a.Z < near && b.Z < near {
		return a, b, false
	}
	if a.Z < near {
		a = a.Lerp(b, (near-a.Z)/(b.Z-a.Z))
	} else if b.Z < near {
		b = b.Lerp(a, (near-b.Z)/(a.Z-b.Z))
	}
	return a, b, true
}
