// Package input turns terminal key presses into held movement flags and
// one-shot commands. Terminals report no key-up events, so a key counts as
// held for HoldWindow after its last press or auto-repeat.
package input

import (
	"io"
	"time"
)

// HoldWindow is how long a key is considered "held" after its last press.
const HoldWindow = 90 * time.Millisecond

// Key is a decoded key press.
type Key int

const (
	KeyNone Key = iota
	// Held keys.
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	// One-shot commands.
	KeyBegin
	KeyPause
	KeyMute
	KeyRestart
	KeyInfo
	KeyQuit
	KeyCard
	KeyPrev
	KeyNext
	KeyLive
	KeyBack
)

var keyNames = [...]string{
	KeyNone: "none", KeyUp: "up", KeyDown: "down", KeyLeft: "left", KeyRight: "right",
	KeyFire: "fire", KeyBegin: "begin", KeyPause: "pause", KeyMute: "mute",
	KeyRestart: "restart", KeyInfo: "info", KeyQuit: "quit", KeyCard: "card",
	KeyPrev: "prev", KeyNext: "next", KeyLive: "live", KeyBack: "back",
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Held reports whether k is a level-triggered key.
func (k Key) Held() bool {
	return k >= KeyUp && k <= KeyFire
}

// State is the level-triggered input read by the simulation each frame.
type State struct {
	Up, Down, Left, Right, Fire bool
}

// Frame is everything collected since the previous Read.
type Frame struct {
	State
	Commands []Key // one-shot keys in arrival order
	Pressed  int   // number of keys seen, held ones included
	Closed   bool  // the source has gone away
}

// Has reports whether command k arrived this frame.
func (f Frame) Has(k Key) bool {
	for _, c := range f.Commands {
		if c == k {
			return true
		}
	}
	return false
}

// Stream delivers decoded keys via a channel and tracks hold timestamps.
type Stream struct {
	ch     chan Key
	done   chan struct{}
	last   [KeyFire + 1]time.Time
	closed bool
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan Key, 128),
		done: make(chan struct{}),
	}
}

// StartStream spawns a goroutine that reads raw terminal bytes from r.
func StartStream(r io.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.done)
		buf := make([]byte, 256)
		var keys []Key
		for {
			n, err := r.Read(buf)
			if n > 0 {
				keys = Decode(buf[:n], keys[:0])
				for _, k := range keys {
					s.ch <- k
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return s
}

// Feed pushes already-decoded keys into the stream. It never blocks; keys
// beyond the buffer are dropped.
func (s *Stream) Feed(keys ...Key) {
	for _, k := range keys {
		select {
		case s.ch <- k:
		default:
		}
	}
}

// Close marks the stream as ended for sources that have no reader goroutine.
func (s *Stream) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Read drains all pending keys (non-blocking) and builds the frame's input.
func (s *Stream) Read(now time.Time) Frame {
	var f Frame
drain:
	for {
		select {
		case k := <-s.ch:
			f.Pressed++
			if k.Held() {
				s.last[k] = now
			} else if k != KeyNone {
				f.Commands = append(f.Commands, k)
			}
		default:
			break drain
		}
	}

	if !s.closed {
		select {
		case <-s.done:
			// Keys queued before the source closed are still delivered.
			if len(s.ch) == 0 {
				s.closed = true
			}
		default:
		}
	}
	f.Closed = s.closed

	held := func(k Key) bool {
		t := s.last[k]
		return !t.IsZero() && now.Sub(t) < HoldWindow
	}
	f.State = State{
		Up:    held(KeyUp),
		Down:  held(KeyDown),
		Left:  held(KeyLeft),
		Right: held(KeyRight),
		Fire:  held(KeyFire),
	}
	return f
}

// Reset forgets held keys, e.g. after a phase change.
func (s *Stream) Reset() {
	s.last = [KeyFire + 1]time.Time{}
}

// Decode parses raw terminal bytes into keys, appending to dst.
// Handles CSI and SS3 arrow sequences.
func Decode(buf []byte, dst []Key) []Key {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				var k Key
				switch buf[i+2] {
				case 'A':
					k = KeyUp
				case 'B':
					k = KeyDown
				case 'C':
					k = KeyRight
				case 'D':
					k = KeyLeft
				}
				if k != KeyNone {
					dst = append(dst, k)
					i += 2
					continue
				}
				// Unknown sequence: skip to its final byte.
				j := i + 2
				for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
					j++
				}
				i = j
				continue
			}
			dst = append(dst, KeyBack)
			continue
		}

		if k := byteKey(b); k != KeyNone {
			dst = append(dst, k)
		}
	}
	return dst
}

func byteKey(b byte) Key {
	switch b {
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case ' ':
		return KeyFire
	case '\r', '\n':
		return KeyBegin
	case 'p', 'P':
		return KeyPause
	case 'm', 'M':
		return KeyMute
	case 'r', 'R':
		return KeyRestart
	case 'i', 'I':
		return KeyInfo
	case 'q', 'Q', 0x03:
		return KeyQuit
	case 'e', 'E':
		return KeyCard
	case '[':
		return KeyPrev
	case ']':
		return KeyNext
	case '\\':
		return KeyLive
	}
	return KeyNone
}
