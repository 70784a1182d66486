package arena

import (
	"math/rand/v2"
	"strings"
)

// Direction is one of the four movement inputs. The numeric values double as
// sprite-sheet rows.
type Direction uint8

const (
	Down Direction = iota
	Right
	Left
	Up
)

// Directions lists every direction in sprite-row order.
var Directions = [...]Direction{Down, Right, Left, Up}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	}
	return "unknown"
}

// Delta returns the unit offset for d in canvas coordinates (y grows down).
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case Down:
		return 0, 1
	case Right:
		return 1, 0
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	return 0, 0
}

// Row is the sprite-sheet row for an avatar facing d.
func (d Direction) Row() int {
	return int(d)
}

func randomDirection(rng *rand.Rand) Direction {
	return Directions[rng.IntN(len(Directions))]
}

var keyBindings = map[string]Direction{
	"ArrowUp":    Up,
	"ArrowDown":  Down,
	"ArrowLeft":  Left,
	"ArrowRight": Right,
	"w":          Up,
	"s":          Down,
	"a":          Left,
	"d":          Right,
}

// LookupKey maps a key name (ArrowUp, ArrowDown, ArrowLeft, ArrowRight, w,
// a, s, d) to a direction. Letter keys match in either case.
func LookupKey(name string) (Direction, bool) {
	if d, ok := keyBindings[name]; ok {
		return d, true
	}
	d, ok := keyBindings[strings.ToLower(name)]
	if ok && len(name) == 1 {
		return d, true
	}
	return 0, false
}
