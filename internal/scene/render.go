package scene

import (
	"math"
	"sort"

	"github.com/tomz197/career-run/internal/draw"
	"github.com/tomz197/career-run/internal/physics"
)

// Fog and culling distances, in world units from the camera.
const (
	FogStart   = 80
	FarPlane   = 1000
	LabelRange = 450

	// Nodes this far behind the camera can still poke into view.
	behindMargin = 40
)

// Label is text the caller should overlay at a 1-based terminal cell.
type Label struct {
	Col, Row int
	Text     string
	Color    draw.Color
}

// Renderer draws a Scene. It keeps scratch buffers between frames and must
// not be shared between goroutines.
type Renderer struct {
	order  []item
	labels []Label
	verts  []physics.Vec3
}

type item struct {
	n     *Node
	depth float64
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws the starfield and every visible node far-to-near onto c and
// returns the labels to overlay. The returned slice is reused by the next call.
func (r *Renderer) Render(c *draw.Canvas, s *Scene, cam Camera) []Label {
	v := cam.view(c.LogicalWidth(), c.LogicalHeight())

	if s.Stars != nil {
		r.drawStars(c, v, s.Stars)
	}

	r.order = r.order[:0]
	s.each(func(n *Node) {
		d := v.toCamera(n.Position).Z
		if d < -behindMargin || d > FarPlane {
			return
		}
		r.order = append(r.order, item{n, d})
	})
	sort.Slice(r.order, func(i, j int) bool {
		return r.order[i].depth > r.order[j].depth
	})

	r.labels = r.labels[:0]
	for _, it := range r.order {
		r.drawNode(c, v, it.n, it.depth)
	}
	return r.labels
}

func fogFor(depth float64) float64 {
	if depth <= FogStart {
		return 0
	}
	return math.Min((depth-FogStart)/(FarPlane-FogStart), 1)
}

func (r *Renderer) drawNode(c *draw.Canvas, v view, n *Node, depth float64) {
	m := models[n.Kind]
	if m == nil {
		return
	}
	c.SetPen(n.Color.Fog(fogFor(depth)))

	r.verts = r.verts[:0]
	for _, p := range m.verts {
		w := physics.RotateEuler(p.Scale(n.Scale), n.Rotation).Add(n.Position)
		r.verts = append(r.verts, v.toCamera(w))
	}

	if len(m.edges) == 0 {
		for _, p := range r.verts {
			if p.Z >= near {
				pt := v.screen(p)
				c.SetFloat(pt.X, pt.Y)
			}
		}
	}

	for _, face := range m.fill {
		pts := c.BorrowPoints(len(face))
		visible := true
		for i, idx := range face {
			p := r.verts[idx]
			if p.Z < near {
				visible = false
				break
			}
			pts[i] = v.screen(p)
		}
		if visible {
			c.DrawPolygon(pts, true)
		}
	}

	for _, e := range m.edges {
		a, b, ok := clipSegment(r.verts[e[0]], r.verts[e[1]])
		if !ok {
			continue
		}
		c.DrawLine(v.screen(a), v.screen(b))
	}

	if n.Label != "" && depth > near && depth < LabelRange {
		top := n.Position.Add(physics.Vec3{Y: n.LabelLift})
		if p := v.toCamera(top); p.Z >= near {
			pt := v.screen(p)
			col, row := c.LogicalToTerminal(pt.X, pt.Y)
			col -= draw.Width(n.Label) / 2
			if row >= 1 && row <= c.TerminalHeight() && col >= 1 && col+draw.Width(n.Label) <= c.TerminalWidth() {
				r.labels = append(r.labels, Label{Col: col, Row: row, Text: n.Label, Color: n.Color})
			}
		}
	}
}

func (r *Renderer) drawStars(c *draw.Canvas, v view, st *Starfield) {
	for _, p := range st.points {
		cp := v.toCamera(p)
		if cp.Z < near || cp.Z > FarPlane {
			continue
		}
		c.SetPen(draw.Gray.Fog(fogFor(cp.Z)))
		pt := v.screen(cp)
		c.SetFloat(pt.X, pt.Y)
	}
}
