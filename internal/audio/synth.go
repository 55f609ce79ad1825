package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Effect durations.
const (
	laserDuration     = 150 * time.Millisecond
	explosionDuration = 500 * time.Millisecond
	chimeDuration     = 600 * time.Millisecond
)

// sweep is a square wave whose pitch glides exponentially from one
// frequency to another with an exponential gain ramp.
type sweep struct {
	rate       beep.SampleRate
	from, to   float64
	gain, tail float64
	total      int
	pos        int
	phase      float64
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, t)
		amp := s.gain * math.Pow(s.tail/s.gain, t)

		v := amp
		if s.phase >= 0.5 {
			v = -amp
		}
		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// rumble is white noise through a one-pole lowpass with an exponential
// decay.
type rumble struct {
	rng        *rand.Rand
	alpha      float64
	gain, tail float64
	total      int
	pos        int
	last       float64
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if r.pos >= r.total {
			return i, i > 0
		}
		t := float64(r.pos) / float64(r.total)
		amp := r.gain * math.Pow(r.tail/r.gain, t)

		r.last += r.alpha * (r.rng.Float64()*2 - 1 - r.last)
		v := amp * r.last
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// arpeggio is a sine that steps through notes with a linear attack and an
// exponential release.
type arpeggio struct {
	rate   beep.SampleRate
	notes  []float64
	step   int // samples per note
	attack int
	peak   float64
	tail   float64
	total  int
	pos    int
	phase  float64
}

func (a *arpeggio) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if a.pos >= a.total {
			return i, i > 0
		}
		note := min(a.pos/a.step, len(a.notes)-1)

		var amp float64
		if a.pos < a.attack {
			amp = a.peak * float64(a.pos) / float64(a.attack)
		} else {
			t := float64(a.pos-a.attack) / float64(a.total-a.attack)
			amp = a.peak * math.Pow(a.tail/a.peak, t)
		}

		v := amp * math.Sin(2*math.Pi*a.phase)
		samples[i][0] = v
		samples[i][1] = v

		a.phase += a.notes[note] / float64(a.rate)
		a.phase -= math.Floor(a.phase)
		a.pos++
	}
	return len(samples), true
}

func (a *arpeggio) Err() error { return nil }

// Laser is a square-wave zap falling from 800 Hz to 100 Hz.
func Laser(rate beep.SampleRate) beep.Streamer {
	return &sweep{
		rate:  rate,
		from:  800,
		to:    100,
		gain:  0.1,
		tail:  0.01,
		total: rate.N(laserDuration),
	}
}

// Explosion is half a second of filtered noise.
func Explosion(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	// One-pole coefficient for a 1 kHz cutoff.
	rc := 1 / (2 * math.Pi * 1000)
	dt := 1 / float64(rate)
	return &rumble{
		rng:   rng,
		alpha: dt / (rc + dt),
		gain:  0.3,
		tail:  0.01,
		total: rate.N(explosionDuration),
	}
}

// Chime is a rising A major arpeggio.
func Chime(rate beep.SampleRate) beep.Streamer {
	return &arpeggio{
		rate:   rate,
		notes:  []float64{440, 554.37, 659.25},
		step:   rate.N(100 * time.Millisecond),
		attack: rate.N(100 * time.Millisecond),
		peak:   0.2,
		tail:   0.01,
		total:  rate.N(chimeDuration),
	}
}

// Drone is the fallback background track: an endless low fifth.
func Drone(rate beep.SampleRate) (beep.Streamer, error) {
	root, err := generators.SineTone(rate, 110)
	if err != nil {
		return nil, err
	}
	fifth, err := generators.SineTone(rate, 164.81)
	if err != nil {
		return nil, err
	}
	return volume(beep.Mix(volume(root, 0.6), volume(fifth, 0.4)), 0.15), nil
}

// volume scales s linearly. Zero or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
