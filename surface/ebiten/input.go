package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/avatars/arena"
)

// Key repeat in ticks, close to a desktop keyboard's repeat at 60 TPS.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

var steeringKeys = []ebiten.Key{
	ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
}

// PressedDirections returns one direction per steering key that went down
// this tick or is auto-repeating.
func PressedDirections() []arena.Direction {
	var dirs []arena.Direction
	for _, k := range steeringKeys {
		if !repeating(inpututil.KeyPressDuration(k), repeatDelay, repeatInterval) {
			continue
		}
		if d, ok := arena.LookupKey(k.String()); ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// repeating reports whether a key held for ticks ticks fires this tick: on
// the first tick, then every interval ticks once delay has passed.
func repeating(ticks, delay, interval int) bool {
	switch {
	case ticks == 1:
		return true
	case ticks < delay || interval <= 0:
		return false
	}
	return (ticks-delay)%interval == 0
}
