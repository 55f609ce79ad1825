package input

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"arrows csi", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyUp, KeyDown, KeyRight, KeyLeft}},
		{"arrows ss3", "\x1bOA", []Key{KeyUp}},
		{"wasd fire", "wasd ", []Key{KeyUp, KeyLeft, KeyDown, KeyRight, KeyFire}},
		{"commands", "\rpmriqe[]\\", []Key{KeyBegin, KeyPause, KeyMute, KeyRestart, KeyInfo, KeyQuit, KeyCard, KeyPrev, KeyNext, KeyLive}},
		{"ctrl-c", "\x03", []Key{KeyQuit}},
		{"lone escape", "\x1b", []Key{KeyBack}},
		{"unknown csi skipped", "\x1b[15~p", []Key{KeyPause}},
		{"ignored bytes", "xyz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.in), nil)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStreamHoldWindow(t *testing.T) {
	s := newStream()
	start := time.Unix(1000, 0)

	s.Feed(KeyLeft, KeyFire, KeyPause)
	f := s.Read(start)
	if !f.Left || !f.Fire || f.Right {
		t.Errorf("state after press = %+v", f.State)
	}
	if !f.Has(KeyPause) || len(f.Commands) != 1 {
		t.Errorf("commands = %v, want [pause]", f.Commands)
	}
	if f.Pressed != 3 {
		t.Errorf("Pressed = %d, want 3", f.Pressed)
	}

	f = s.Read(start.Add(HoldWindow / 2))
	if !f.Left {
		t.Error("key released inside hold window")
	}
	if len(f.Commands) != 0 {
		t.Error("command repeated on a later frame")
	}

	f = s.Read(start.Add(HoldWindow))
	if f.Left || f.Fire {
		t.Errorf("key still held after hold window: %+v", f.State)
	}
}

func TestStreamReset(t *testing.T) {
	s := newStream()
	now := time.Unix(1000, 0)
	s.Feed(KeyUp)
	s.Read(now)
	s.Reset()
	if f := s.Read(now); f.Up {
		t.Error("Reset did not clear held keys")
	}
}

func TestStartStreamClosesOnEOF(t *testing.T) {
	s := StartStream(strings.NewReader("\x1b[Ap"))
	<-s.done

	f := s.Read(time.Now())
	if !f.Up || !f.Has(KeyPause) {
		t.Errorf("frame = %+v, want up held and pause", f)
	}
	if !f.Closed {
		t.Error("stream not closed after EOF")
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want Key
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyUp},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyBegin},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), KeyQuit},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), KeyFire},
		{tcell.NewEventKey(tcell.KeyRune, 'M', tcell.ModNone), KeyMute},
		{tcell.NewEventKey(tcell.KeyRune, 'ç', tcell.ModNone), KeyNone},
	}
	for _, tt := range tests {
		if got := FromTcell(tt.ev); got != tt.want {
			t.Errorf("FromTcell(%v) = %v, want %v", tt.ev.Name(), got, tt.want)
		}
	}
}
