package world

import (
	"fmt"
	"time"

	"github.com/tomz197/career-run/internal/loop/config"
	"github.com/tomz197/career-run/internal/object"
	"github.com/tomz197/career-run/internal/physics"
)

// Phase is the top-level session state.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhaseEnding
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseEnding:
		return "ending"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// GameState is the observable outcome of the simulation.
type GameState struct {
	Score     int
	Shield    float64 // [0, MaxShield]
	Distance  float64 // whole units travelled along the course
	Milestone int     // active milestone index, -1 before the first
	Phase     Phase
	Paused    bool
}

// DefaultState is the state of a fresh session.
func DefaultState() GameState {
	return GameState{
		Shield:    config.InitialShield,
		Milestone: -1,
		Phase:     PhaseStart,
	}
}

// Blip is an enemy as seen from the ship.
type Blip struct {
	Offset physics.Vec3 // enemy position minus ship position
	Kind   object.EnemyKind
}

// Snapshot is an immutable view of the world published after every step.
type Snapshot struct {
	State GameState
	Muted bool
	Ship  physics.Vec3
	Speed float64       // forward units per reference frame
	Clock time.Duration // unpaused session time
	Blips []Blip
}
