package audio

import (
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Backend is the audio output device.
type Backend interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Speaker is the system output through beep/speaker.
type Speaker struct{}

func (Speaker) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (Speaker) Play(s beep.Streamer) { speaker.Play(s) }
func (Speaker) Lock()                { speaker.Lock() }
func (Speaker) Unlock()              { speaker.Unlock() }

// SoundManager mixes effects and the background track into one output.
type SoundManager struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
	rng     *rand.Rand

	track  *Track
	mixer  *beep.Mixer
	master *beep.Ctrl
	music  *beep.Ctrl

	initialized bool
	failed      bool
	muted       bool
}

// NewSoundManager creates a manager that plays through backend. track may
// be nil, in which case a synthesized drone stands in for the music.
func NewSoundManager(backend Backend, track *Track, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	sm := &SoundManager{
		backend: backend,
		logger:  logger,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		track:   track,
		mixer:   &beep.Mixer{},
	}
	sm.master = &beep.Ctrl{Streamer: volume(sm.mixer, masterVolume)}
	return sm
}

// Init opens the output once and starts the background track. Output
// failure is logged and leaves the manager silent.
func (sm *SoundManager) Init() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.failed {
		return
	}
	if !sm.initialized {
		if err := sm.backend.Init(sampleRate, sampleRate.N(bufferTime)); err != nil {
			sm.logger.Warn("audio unavailable", "err", err)
			sm.failed = true
			return
		}
		sm.backend.Play(sm.master)
		sm.initialized = true
	}
	if sm.music == nil {
		sm.startMusic()
	}
}

// startMusic attaches a fresh background streamer. Caller holds sm.mu.
func (sm *SoundManager) startMusic() {
	s, err := sm.musicStreamer()
	if err != nil {
		sm.logger.Warn("background track failed", "err", err)
		return
	}
	sm.music = &beep.Ctrl{Streamer: volume(s, musicVolume), Paused: sm.muted}

	sm.backend.Lock()
	sm.mixer.Add(sm.music)
	sm.backend.Unlock()
}

func (sm *SoundManager) musicStreamer() (beep.Streamer, error) {
	if sm.track != nil {
		s, err := sm.track.Streamer(sampleRate)
		if err == nil {
			return s, nil
		}
		sm.logger.Warn("track unusable, using synth", "err", err)
	}
	return Drone(sampleRate)
}

// PlayLaser plays the shot zap.
func (sm *SoundManager) PlayLaser() {
	sm.play(Laser(sampleRate))
}

// PlayExplosion plays a burst of filtered noise.
func (sm *SoundManager) PlayExplosion() {
	sm.mu.Lock()
	s := Explosion(sampleRate, sm.rng)
	sm.mu.Unlock()
	sm.play(s)
}

// PlayMilestoneChime plays the milestone arpeggio.
func (sm *SoundManager) PlayMilestoneChime() {
	sm.play(Chime(sampleRate))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	sm.backend.Lock()
	sm.mixer.Add(s)
	sm.backend.Unlock()
}

// ToggleMute pauses or resumes all output and returns the new state.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.initialized {
		sm.backend.Lock()
		sm.master.Paused = sm.muted
		if sm.music != nil {
			sm.music.Paused = sm.muted
		}
		sm.backend.Unlock()
	}
	return sm.muted
}

// Muted reports the mute state.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Reset drops every playing sound and restarts the background track from
// the beginning.
func (sm *SoundManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.backend.Lock()
	sm.mixer.Clear()
	sm.backend.Unlock()
	sm.music = nil
	sm.startMusic()
}

// Close silences the output and releases the track.
func (sm *SoundManager) Close() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		sm.backend.Lock()
		sm.mixer.Clear()
		sm.master.Paused = true
		sm.backend.Unlock()
	}
	sm.music = nil
	if sm.track != nil {
		return sm.track.Close()
	}
	return nil
}
