package client

import (
	"time"

	"github.com/tomz197/career-run/internal/loop/world"
)

// view is the part of the overlay layout that, when it changes, needs a
// full terminal clear so panels of the previous layout don't persist.
type view struct {
	phase    world.Phase
	dossier  bool
	idle     bool
	shutdown bool
}

// ClientState holds per-terminal overlay state. The simulation state lives
// in the world; this is only what the HUD adds on top of it.
type ClientState struct {
	Running      bool
	Dossier      bool // info modal open
	CardExpanded bool // milestone card shows its description
	Browse       int  // archive milestone shown on the card, -1 for live
	Crawl        Crawl

	lastMilestone int
	prev          view
	forceClear    bool
	last          time.Time     // previous tick
	delta         time.Duration // time since previous tick
	lastInput     time.Time
	idle          bool // inactivity warning shown
	shutdown      bool // host is shutting down
	shutdownLeft  time.Duration
	reported      bool // completed run sent to the hub
}

// NewClientState creates the state of a freshly connected terminal.
func NewClientState() *ClientState {
	return &ClientState{
		Running:       true,
		Browse:        -1,
		lastMilestone: -1,
		forceClear:    true,
	}
}

// resetOverlays returns every overlay to its start-of-run state.
func (s *ClientState) resetOverlays() {
	s.Dossier = false
	s.CardExpanded = false
	s.Browse = -1
	s.Crawl.Reset()
	s.lastMilestone = -1
	s.reported = false
}

// cardIndex is the milestone shown on the card, or -1.
func (s *ClientState) cardIndex(active int) int {
	if s.Browse >= 0 {
		return s.Browse
	}
	return active
}

// cardExpanded reports whether the card shows its bullet list. Browsed
// milestones are always expanded.
func (s *ClientState) cardExpanded() bool {
	return s.Browse >= 0 || s.CardExpanded
}

// browse moves the archive selection by step, starting from the active
// milestone (or the first one) when not browsing yet.
func (s *ClientState) browse(step, active, count int) {
	if count == 0 {
		return
	}
	cur := s.Browse
	if cur < 0 {
		cur = max(active, 0)
		if active >= 0 {
			cur += step
		}
	} else {
		cur += step
	}
	s.Browse = min(max(cur, 0), count-1)
}
