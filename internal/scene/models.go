package scene

import (
	"math"

	"github.com/tomz197/career-run/internal/physics"
)

// model is a wireframe in local space.
type model struct {
	verts []physics.Vec3
	edges [][2]int
	fill  [][]int // optional filled faces
}

var models = map[Kind]*model{
	KindShip:      shipModel(),
	KindLaser:     {verts: []physics.Vec3{{}, {Z: -4}}, edges: [][2]int{{0, 1}}},
	KindAsteroid:  asteroidModel(),
	KindDrone:     droneModel(),
	KindEducation: sphereModel(10),
	KindProject:   ringModel(),
	KindWork:      boxModel(7.5, 2.5, 15),
	KindHalo:      circle(16, func(c, s float64) physics.Vec3 { return physics.Vec3{X: c, Z: s} }),
	KindParticle:  {verts: []physics.Vec3{{}}},
}

func shipModel() *model {
	return &model{
		verts: []physics.Vec3{
			{Z: -3},           // 0 nose
			{X: -2.5, Z: 1.5}, // 1 left wingtip
			{X: 2.5, Z: 1.5},  // 2 right wingtip
			{Y: 0.8, Z: 1},    // 3 fin
			{Z: 1},            // 4 tail
			{X: -0.6, Z: 1.2}, // 5 left engine
			{X: 0.6, Z: 1.2},  // 6 right engine
		},
		edges: [][2]int{{0, 1}, {0, 2}, {1, 4}, {2, 4}, {0, 3}, {3, 4}, {5, 6}},
		fill:  [][]int{{0, 1, 4}, {0, 2, 4}},
	}
}

func asteroidModel() *model {
	// Octahedron with a few pushed vertices for a lumpy silhouette.
	return &model{
		verts: []physics.Vec3{
			{X: 1}, {X: -0.8}, {Y: 1.1}, {Y: -0.9}, {Z: 1}, {Z: -1.2},
		},
		edges: [][2]int{
			{0, 2}, {0, 3}, {0, 4}, {0, 5},
			{1, 2}, {1, 3}, {1, 4}, {1, 5},
			{2, 4}, {4, 3}, {3, 5}, {5, 2},
		},
	}
}

func droneModel() *model {
	m := boxModel(1, 1, 1)
	base := len(m.verts)
	// Antenna cross.
	m.verts = append(m.verts, physics.Vec3{X: -1.8}, physics.Vec3{X: 1.8}, physics.Vec3{Y: -1.8}, physics.Vec3{Y: 1.8})
	m.edges = append(m.edges, [2]int{base, base + 1}, [2]int{base + 2, base + 3})
	return m
}

func boxModel(hx, hy, hz float64) *model {
	m := &model{}
	for _, x := range []float64{-hx, hx} {
		for _, y := range []float64{-hy, hy} {
			for _, z := range []float64{-hz, hz} {
				m.verts = append(m.verts, physics.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	// Vertex i has bits (x, y, z); edges join vertices one bit apart.
	for i := range m.verts {
		for _, bit := range []int{1, 2, 4} {
			if j := i ^ bit; j > i {
				m.edges = append(m.edges, [2]int{i, j})
			}
		}
	}
	return m
}

func sphereModel(segments int) *model {
	m := circle(segments, func(c, s float64) physics.Vec3 { return physics.Vec3{X: c, Y: s} })
	m.merge(circle(segments, func(c, s float64) physics.Vec3 { return physics.Vec3{Y: c, Z: s} }))
	m.merge(circle(segments, func(c, s float64) physics.Vec3 { return physics.Vec3{X: c, Z: s} }))
	return m
}

func ringModel() *model {
	m := circle(16, func(c, s float64) physics.Vec3 { return physics.Vec3{X: c, Y: s} })
	m.merge(circle(16, func(c, s float64) physics.Vec3 { return physics.Vec3{X: c * 0.6, Y: s * 0.6} }))
	return m
}

func circle(segments int, at func(c, s float64) physics.Vec3) *model {
	m := &model{}
	for i := 0; i < segments; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		m.verts = append(m.verts, at(c, s))
		m.edges = append(m.edges, [2]int{i, (i + 1) % segments})
	}
	return m
}

func (m *model) merge(o *model) {
	base := len(m.verts)
	m.verts = append(m.verts, o.verts...)
	for _, e := range o.edges {
		m.edges = append(m.edges, [2]int{e[0] + base, e[1] + base})
	}
}
