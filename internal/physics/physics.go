// Package physics provides vector math, distance-threshold hit tests and
// the easing helpers the simulation uses.
package physics

import "math"

// Vec3 is a point or direction in world space. The course axis is Z;
// forward travel decreases Z.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v*s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// AddScaled returns v + o*s.
func (v Vec3) AddScaled(o Vec3, s float64) Vec3 {
	return Vec3{v.X + o.X*s, v.Y + o.Y*s, v.Z + o.Z*s}
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the vector magnitude.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp moves v toward target by factor t (0 = stay, 1 = arrive).
func (v Vec3) Lerp(target Vec3, t float64) Vec3 {
	return Vec3{
		Lerp(v.X, target.X, t),
		Lerp(v.Y, target.Y, t),
		Lerp(v.Z, target.Z, t),
	}
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec3) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// WithinRadius reports whether p lies strictly inside the sphere of the
// given radius around c.
func WithinRadius(p, c Vec3, radius float64) bool {
	return DistanceSquared(p, c) < radius*radius
}

// Lerp interpolates linearly from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EaseFactor converts a per-frame lerp factor tuned for a fixed cadence into
// the equivalent factor for the given number of reference frames. One frame
// returns k unchanged.
func EaseFactor(k, frames float64) float64 {
	if frames <= 0 {
		return 0
	}
	return 1 - math.Pow(1-k, frames)
}

// Decay converts a per-frame multiplicative damping factor into the factor
// for the given number of reference frames.
func Decay(k, frames float64) float64 {
	if frames <= 0 {
		return 1
	}
	return math.Pow(k, frames)
}

// Chance converts a per-frame probability into the probability of at least
// one success across the given number of reference frames.
func Chance(p, frames float64) float64 {
	if frames <= 0 {
		return 0
	}
	return 1 - math.Pow(1-p, frames)
}

// RotateEuler applies an XYZ-ordered Euler rotation (radians) to v:
// the Z rotation is applied first, then Y, then X.
func RotateEuler(v, rot Vec3) Vec3 {
	// Z
	sz, cz := math.Sincos(rot.Z)
	v = Vec3{v.X*cz - v.Y*sz, v.X*sz + v.Y*cz, v.Z}
	// Y
	sy, cy := math.Sincos(rot.Y)
	v = Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}
	// X
	sx, cx := math.Sincos(rot.X)
	return Vec3{v.X, v.Y*cx - v.Z*sx, v.Y*sx + v.Z*cx}
}
