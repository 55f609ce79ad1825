package world

// Begin starts the run from the start phase, resetting score, shield and
// distance, and starts audio.
func (w *World) Begin() error {
	if w.state.Phase != PhaseStart {
		return ErrNotAtStart
	}
	def := DefaultState()
	w.state.Score = def.Score
	w.state.Shield = def.Shield
	w.state.Distance = def.Distance
	w.state.Phase = PhasePlaying
	w.sounds.Init()
	w.logger.Info("run started")
	w.publish()
	return nil
}

// Restart discards the whole world and rebuilds it at the start phase.
// Audio restarts from the beginning; the mute setting is kept.
func (w *World) Restart() {
	w.teardown()
	w.build()
	w.sounds.Reset()
	w.logger.Info("run restarted")
	w.publish()
}

// TogglePause flips the pause flag while playing and returns the new
// value. It has no effect in other phases.
func (w *World) TogglePause() bool {
	if w.state.Phase == PhasePlaying {
		w.state.Paused = !w.state.Paused
		w.publish()
	}
	return w.state.Paused
}

// Pause pauses a playing world.
func (w *World) Pause() {
	if w.state.Phase == PhasePlaying && !w.state.Paused {
		w.TogglePause()
	}
}

// ToggleMute flips audio mute and returns the new value.
func (w *World) ToggleMute() bool {
	w.muted = w.sounds.ToggleMute()
	w.publish()
	return w.muted
}
