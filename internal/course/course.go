// Package course holds the milestone table the ship flies past and the
// proximity queries the simulation runs against it.
package course

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Validate.
var (
	ErrEmpty      = errors.New("course: milestone table is empty")
	ErrUnsorted   = errors.New("course: milestones are not in increasing course order")
	ErrOutOfRange = errors.New("course: milestone lies outside the course")
)

// Kind classifies a milestone. It picks the marker shape.
type Kind int

const (
	KindProject Kind = iota
	KindEducation
	KindWork
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindEducation:
		return "education"
	case KindWork:
		return "work"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Milestone is a single career checkpoint placed along the course axis.
type Milestone struct {
	ID          string
	Year        string
	Title       string
	Description []string
	ZDistance   float64 // course distance at which the marker sits
	Kind        Kind
	Color       string // hex, "#rrggbb"
}

// Table is an ordered, read-only sequence of milestones.
type Table []Milestone

// Validate checks that the table is non-empty, strictly increasing along the
// course and entirely within (0, total).
func (t Table) Validate(total float64) error {
	if len(t) == 0 {
		return ErrEmpty
	}
	prev := 0.0
	for i, m := range t {
		if m.ZDistance <= 0 || m.ZDistance >= total {
			return fmt.Errorf("milestone %d (%s) at %.0f of %.0f: %w", i, m.ID, m.ZDistance, total, ErrOutOfRange)
		}
		if i > 0 && m.ZDistance <= prev {
			return fmt.Errorf("milestone %d (%s) at %.0f after %.0f: %w", i, m.ID, m.ZDistance, prev, ErrUnsorted)
		}
		prev = m.ZDistance
	}
	return nil
}

// MustTable returns t or panics if it does not validate. Use it for tables
// built into the binary.
func MustTable(t Table, total float64) Table {
	if err := t.Validate(total); err != nil {
		panic(err)
	}
	return t
}

// IndexNear returns the first milestone whose position lies strictly within
// window of distance, or -1.
func (t Table) IndexNear(distance, window float64) int {
	for i := range t {
		if math.Abs(t[i].ZDistance-distance) < window {
			return i
		}
	}
	return -1
}

// InSlowZone reports whether distance is within radius of any milestone.
func (t Table) InSlowZone(distance, radius float64) bool {
	return t.IndexNear(distance, radius) >= 0
}

// Next returns the index of the first milestone ahead of distance, or -1
// once all have been passed.
func (t Table) Next(distance float64) int {
	for i := range t {
		if t[i].ZDistance > distance {
			return i
		}
	}
	return -1
}
