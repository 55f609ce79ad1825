package scene

import (
	"math/rand/v2"

	"github.com/tomz197/career-run/internal/physics"
)

// Starfield is a box of static points that wraps around the ship as it
// flies, so the backdrop never runs out.
type Starfield struct {
	points []physics.Vec3
	spread float64
}

// NewStarfield scatters count stars in a cube of side 2*spread around the
// origin.
func NewStarfield(rng *rand.Rand, count int, spread float64) *Starfield {
	st := &Starfield{points: make([]physics.Vec3, count), spread: spread}
	for i := range st.points {
		st.points[i] = physics.Vec3{
			X: (rng.Float64()*2 - 1) * spread,
			Y: (rng.Float64()*2 - 1) * spread,
			Z: (rng.Float64()*2 - 1) * spread,
		}
	}
	return st
}

// Follow wraps stars along the course axis so they stay within spread of z.
func (st *Starfield) Follow(z float64) {
	span := 2 * st.spread
	if span <= 0 {
		return
	}
	for i := range st.points {
		p := &st.points[i]
		for p.Z > z+st.spread {
			p.Z -= span
		}
		for p.Z < z-st.spread {
			p.Z += span
		}
	}
}

// Len returns the number of stars.
func (st *Starfield) Len() int {
	return len(st.points)
}
