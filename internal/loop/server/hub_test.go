package server

import (
	"errors"
	"testing"
	"time"
)

func TestRegister(t *testing.T) {
	h := NewHub(2, 3)
	a, err := h.Register("a")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	b, err := h.Register("b")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("duplicate session ids")
	}
	if _, err := h.Register("c"); !errors.Is(err, ErrFull) {
		t.Errorf("third Register error = %v, want ErrFull", err)
	}
	if got := h.Online(); got != 2 {
		t.Errorf("Online = %d, want 2", got)
	}

	h.Unregister(a.ID)
	if _, ok := <-a.Events; ok {
		t.Error("events channel open after Unregister")
	}
	h.Unregister(a.ID) // unknown ids are ignored
	if _, err := h.Register("c"); err != nil {
		t.Errorf("Register after a slot freed: %v", err)
	}
}

func TestReportRun(t *testing.T) {
	h := NewHub(0, 2)
	a, _ := h.Register("a")
	b, _ := h.Register("b")
	c, _ := h.Register("c")

	h.ReportRun(a.ID, 300, 12000)
	h.ReportRun(b.ID, 300, 12000)
	h.ReportRun(c.ID, 100, 12000)
	h.ReportRun(a.ID, 200, 12000) // worse than a's best
	h.ReportRun(99, 1000, 12000)  // unknown session

	top := h.TopScores()
	if len(top) != 2 {
		t.Fatalf("leaderboard has %d entries, want 2", len(top))
	}
	if top[0].Username != "a" || top[1].Username != "b" {
		t.Errorf("order = %s, %s; want a, b (ties by arrival)", top[0].Username, top[1].Username)
	}
	if top[0].Score != 300 {
		t.Errorf("a's score = %d, want best 300", top[0].Score)
	}

	h.ReportRun(c.ID, 500, 12000)
	top = h.TopScores()
	if top[0].Username != "c" || top[1].Username != "a" {
		t.Errorf("order after improvement = %s, %s; want c, a", top[0].Username, top[1].Username)
	}

	top[0].Score = 0
	if h.TopScores()[0].Score != 500 {
		t.Error("TopScores returned the internal slice")
	}
}

func TestShutdown(t *testing.T) {
	h := NewHub(0, 0)
	a, _ := h.Register("a")

	left := make(chan struct{})
	go func() {
		defer close(left)
		ev := <-a.Events
		if ev.Type != EventShutdown {
			t.Errorf("event = %v, want shutdown", ev.Type)
		}
		h.Unregister(a.ID)
	}()

	start := time.Now()
	h.Shutdown(5 * time.Second)
	<-left
	if time.Since(start) > 2*time.Second {
		t.Error("Shutdown waited past the last session leaving")
	}
	if _, err := h.Register("late"); !errors.Is(err, ErrClosing) {
		t.Errorf("Register during shutdown error = %v, want ErrClosing", err)
	}
}

func TestShutdownTimeout(t *testing.T) {
	h := NewHub(0, 0)
	if _, err := h.Register("stuck"); err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	h.Shutdown(100 * time.Millisecond)
	if time.Since(start) < 100*time.Millisecond {
		t.Error("Shutdown returned before the timeout with a session still online")
	}
}
