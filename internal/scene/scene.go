// Package scene holds the renderable nodes bound to simulation entities and
// draws them onto a draw.Canvas through a perspective camera.
package scene

import (
	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/physics"
)

// Kind selects a node's wireframe model.
type Kind int

const (
	KindShip Kind = iota
	KindLaser
	KindAsteroid
	KindDrone
	KindEducation // milestone marker, sphere-like
	KindProject   // milestone marker, ring
	KindWork      // milestone marker, box
	KindHalo      // horizontal ring around a marker
	KindParticle
)

// NodeID is a handle to a node. The zero value is never issued.
type NodeID int32

// Node is one renderable object. Only the simulation moves nodes; the
// renderer reads them.
type Node struct {
	Kind      Kind
	Position  physics.Vec3
	Rotation  physics.Vec3 // Euler XYZ, radians
	Scale     float64
	Color     draw.Color
	Label     string  // drawn above the node when non-empty
	LabelLift float64 // label height above Position
	Hidden    bool

	live bool
}

// Scene owns every node plus the starfield backdrop.
type Scene struct {
	nodes []Node // nodes[id-1]
	free  []NodeID
	live  int

	Stars *Starfield
}

// New creates an empty scene with a starfield.
func New(stars *Starfield) *Scene {
	return &Scene{Stars: stars}
}

// Attach adds a node and returns its handle. Freed slots are reused.
func (s *Scene) Attach(n Node) NodeID {
	n.live = true
	if n.Scale == 0 {
		n.Scale = 1
	}
	s.live++
	if k := len(s.free); k > 0 {
		id := s.free[k-1]
		s.free = s.free[:k-1]
		s.nodes[id-1] = n
		return id
	}
	s.nodes = append(s.nodes, n)
	return NodeID(len(s.nodes))
}

// Detach releases a node. Detaching an unknown or already released handle
// is a no-op.
func (s *Scene) Detach(id NodeID) {
	n := s.Node(id)
	if n == nil {
		return
	}
	*n = Node{}
	s.free = append(s.free, id)
	s.live--
}

// Node returns the live node for id, or nil.
func (s *Scene) Node(id NodeID) *Node {
	if id <= 0 || int(id) > len(s.nodes) {
		return nil
	}
	n := &s.nodes[id-1]
	if !n.live {
		return nil
	}
	return n
}

// Place moves a node.
func (s *Scene) Place(id NodeID, pos, rot physics.Vec3) {
	if n := s.Node(id); n != nil {
		n.Position = pos
		n.Rotation = rot
	}
}

// Len returns the number of live nodes.
func (s *Scene) Len() int {
	return s.live
}

// Count returns the number of live nodes of kind k.
func (s *Scene) Count(k Kind) int {
	c := 0
	for i := range s.nodes {
		if s.nodes[i].live && s.nodes[i].Kind == k {
			c++
		}
	}
	return c
}

// Clear releases every node.
func (s *Scene) Clear() {
	s.nodes = s.nodes[:0]
	s.free = s.free[:0]
	s.live = 0
}

// each calls fn for every live, visible node.
func (s *Scene) each(fn func(*Node)) {
	for i := range s.nodes {
		if n := &s.nodes[i]; n.live && !n.Hidden {
			fn(n)
		}
	}
}
