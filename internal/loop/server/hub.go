// Package server tracks the sessions of a multi-session host: who is
// connected, the best completed runs, and the shutdown broadcast.
package server

import (
	"errors"
	"slices"
	"sync"
	"time"
)

// Errors returned by Register.
var (
	ErrFull    = errors.New("server: session limit reached")
	ErrClosing = errors.New("server: shutting down")
)

// EventType identifies the type of session event.
type EventType int

const (
	EventShutdown EventType = iota
)

// Event is sent from the hub to a session.
type Event struct {
	Type EventType
}

// Handle represents one connected session.
type Handle struct {
	ID       int
	Username string     // Display name for this session
	Events   chan Event // Closed when the session is unregistered
}

// ScoreEntry is a single entry on the leaderboard.
type ScoreEntry struct {
	Username string
	Score    int
	Distance float64
	id       int // Used for deterministic tie-break when scores are equal
}

// Hub is the registry shared by every session. It is safe for concurrent use.
type Hub struct {
	mu          sync.RWMutex
	sessions    map[int]*Handle
	nextID      int
	maxSessions int
	topN        int
	scores      []ScoreEntry // sorted best first, at most topN
	closing     bool
}

// NewHub creates a hub admitting at most maxSessions concurrent sessions
// (0 means unlimited) and keeping the topN best runs.
func NewHub(maxSessions, topN int) *Hub {
	return &Hub{
		sessions:    make(map[int]*Handle),
		nextID:      1,
		maxSessions: maxSessions,
		topN:        topN,
	}
}

// Register admits a new session.
func (h *Hub) Register(username string) (*Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closing {
		return nil, ErrClosing
	}
	if h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		return nil, ErrFull
	}

	handle := &Handle{
		ID:       h.nextID,
		Username: username,
		Events:   make(chan Event, 4),
	}
	h.nextID++
	h.sessions[handle.ID] = handle
	return handle, nil
}

// Unregister removes a session and closes its event channel. Unknown ids
// are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if handle, ok := h.sessions[id]; ok {
		close(handle.Events)
		delete(h.sessions, id)
	}
}

// Online returns the number of connected sessions.
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ReportRun records a completed run. A session keeps only its best entry.
func (h *Hub) ReportRun(id, score int, distance float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle, ok := h.sessions[id]
	if !ok || h.topN <= 0 {
		return
	}

	if i := slices.IndexFunc(h.scores, func(e ScoreEntry) bool { return e.id == id }); i >= 0 {
		if h.scores[i].Score >= score {
			return
		}
		h.scores = slices.Delete(h.scores, i, i+1)
	}
	h.scores = append(h.scores, ScoreEntry{Username: handle.Username, Score: score, Distance: distance, id: id})
	slices.SortFunc(h.scores, func(a, b ScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.id - b.id
	})
	if len(h.scores) > h.topN {
		h.scores = h.scores[:h.topN]
	}
}

// TopScores returns a copy of the leaderboard, best first.
func (h *Hub) TopScores() []ScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.scores)
}

// Shutdown notifies all connected sessions and waits for them to
// disconnect, up to timeout. New sessions are refused from then on.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.Lock()
	h.closing = true
	for _, handle := range h.sessions {
		select {
		case handle.Events <- Event{Type: EventShutdown}:
		default:
		}
	}
	h.mu.Unlock()

	// Wait for all sessions to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Online() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
