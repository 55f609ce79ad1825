package input

import "github.com/gdamore/tcell/v2"

// FromTcell maps a tcell key event onto a Key.
func FromTcell(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyEnter:
		return KeyBegin
	case tcell.KeyEscape:
		return KeyBack
	case tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0x7f {
			return KeyNone
		}
		return byteKey(byte(r))
	}
	return KeyNone
}

// StartTcellStream spawns a goroutine polling screen for events. Key events
// feed the stream; resize events invoke onResize when it is non-nil.
// The stream closes when the screen is finalized.
func StartTcellStream(screen tcell.Screen, onResize func()) *Stream {
	s := newStream()
	go func() {
		defer close(s.done)
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if k := FromTcell(ev); k != KeyNone {
					s.ch <- k
				}
			case *tcell.EventResize:
				if onResize != nil {
					onResize()
				}
			}
		}
	}()
	return s
}
