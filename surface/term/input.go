package term

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/avatars/arena"
)

var arrowKeys = map[tcell.Key]string{
	tcell.KeyUp:    "ArrowUp",
	tcell.KeyDown:  "ArrowDown",
	tcell.KeyLeft:  "ArrowLeft",
	tcell.KeyRight: "ArrowRight",
}

// keyName returns the browser-style name of a key event.
func keyName(ev *tcell.EventKey) string {
	if name, ok := arrowKeys[ev.Key()]; ok {
		return name
	}
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return ""
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Pump reads terminal events until ctx is done or a quit key is pressed, in
// which case it calls quit. Steering keys go to steer and terminal resizes
// to resize as the canvas size that fills the new terminal.
func Pump(ctx context.Context, s *Surface, quit func(), steer chan<- arena.Direction, resize chan<- arena.Canvas) {
	events := make(chan tcell.Event, 16)
	go s.screen.ChannelEvents(events, ctx.Done())

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					quit()
					return
				}
				if d, ok := arena.LookupKey(keyName(ev)); ok {
					send(ctx, steer, d)
				}
			case *tcell.EventResize:
				s.screen.Sync()
				send(ctx, resize, s.CanvasSize())
			}
		}
	}
}

func send[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}
