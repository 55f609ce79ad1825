package object

import (
	"github.com/tomz197/career-run/internal/course"
	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/physics"
	"github.com/tomz197/career-run/internal/scene"
)

// Marker sizes.
const (
	markerLabelLift = 18
	haloRadius      = 20
)

// markerShapes maps a milestone kind to its marker wireframe and scale.
var markerShapes = map[course.Kind]struct {
	kind  scene.Kind
	scale float64
}{
	course.KindEducation: {scene.KindEducation, 10},
	course.KindProject:   {scene.KindProject, 8},
	course.KindWork:      {scene.KindWork, 1},
}

// Marker is the spinning landmark placed at a milestone's course position.
type Marker struct {
	Index    int // milestone index
	Position physics.Vec3
	Spin     float64 // yaw, radians

	body scene.NodeID
	halo scene.NodeID
}

// NewMarker builds the marker for milestone m and attaches its nodes.
func NewMarker(index int, m course.Milestone, s *scene.Scene) *Marker {
	mk := &Marker{Index: index, Position: physics.Vec3{Z: -m.ZDistance}}
	shape, ok := markerShapes[m.Kind]
	if !ok {
		shape = markerShapes[course.KindWork]
	}
	mk.body = s.Attach(scene.Node{
		Kind:      shape.kind,
		Position:  mk.Position,
		Scale:     shape.scale,
		Color:     draw.Hex(m.Color),
		Label:     m.Year,
		LabelLift: markerLabelLift,
	})
	mk.halo = s.Attach(scene.Node{
		Kind:     scene.KindHalo,
		Position: mk.Position,
		Scale:    haloRadius,
		Color:    draw.White,
	})
	return mk
}

// Turn spins the marker by rate radians per second over dt seconds.
func (mk *Marker) Turn(rate, dt float64) {
	mk.Spin += rate * dt
}

// NodeID returns the marker body's node.
func (mk *Marker) NodeID() scene.NodeID { return mk.body }

// Sync places both marker nodes.
func (mk *Marker) Sync(s *scene.Scene) {
	rot := physics.Vec3{Y: mk.Spin}
	s.Place(mk.body, mk.Position, rot)
	s.Place(mk.halo, mk.Position, rot)
}

// Detach releases both marker nodes.
func (mk *Marker) Detach(s *scene.Scene) {
	s.Detach(mk.body)
	s.Detach(mk.halo)
}
