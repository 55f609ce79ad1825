// Package audio plays the game's sound effects and background track.
// Every call is fire-and-forget: failures degrade to silence and are logged,
// never returned to the caller.
package audio

import (
	"errors"
	"time"

	"github.com/gopxl/beep"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferTime = 100 * time.Millisecond

	masterVolume = 0.4
	musicVolume  = 0.5
)

// ErrNoTrack is returned when no background track path is configured.
var ErrNoTrack = errors.New("audio: no background track")

// Player is the audio boundary seen by the simulation.
type Player interface {
	// Init starts the output and the background track. Safe to call more
	// than once.
	Init()
	PlayLaser()
	PlayExplosion()
	PlayMilestoneChime()
	// ToggleMute flips the mute state and returns the new value.
	ToggleMute() bool
	// Reset restarts the background track from the beginning.
	Reset()
}

// Nop is a silent Player. It still tracks the mute flag so the HUD can show
// it.
type Nop struct {
	muted bool
}

func (n *Nop) Init()               {}
func (n *Nop) PlayLaser()          {}
func (n *Nop) PlayExplosion()      {}
func (n *Nop) PlayMilestoneChime() {}
func (n *Nop) Reset()              {}

func (n *Nop) ToggleMute() bool {
	n.muted = !n.muted
	return n.muted
}

var (
	_ Player = (*Nop)(nil)
	_ Player = (*SoundManager)(nil)
)
