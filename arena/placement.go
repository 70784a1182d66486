package arena

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/plus3/avatars/ecs"
)

// ErrNoValidPosition is returned when spawn placement runs out of attempts.
var ErrNoValidPosition = errors.New("could not find valid position")

// PositionSource is the avatar collection as seen by placement and
// separation checks.
type PositionSource interface {
	Positions() iter.Seq2[ecs.EntityId, Position]
}

// PositionList is a fixed PositionSource. Entry i is reported with ID i+1.
type PositionList []Position

func (l PositionList) Positions() iter.Seq2[ecs.EntityId, Position] {
	return func(yield func(ecs.EntityId, Position) bool) {
		for i, p := range l {
			if !yield(ecs.EntityId(i+1), p) {
				return
			}
		}
	}
}

// Bounds is an axis-aligned rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Clamp moves p to the nearest point inside b.
func (b Bounds) Clamp(p Position) Position {
	return Position{
		X: min(max(p.X, b.MinX), b.MaxX),
		Y: min(max(p.Y, b.MinY), b.MaxY),
	}
}

// Empty reports whether b has no points, i.e. a minimum exceeds its maximum.
func (b Bounds) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Intersect returns the overlap of b and o, which may be Empty.
func (b Bounds) Intersect(o Bounds) Bounds {
	return Bounds{
		MinX: max(b.MinX, o.MinX),
		MinY: max(b.MinY, o.MinY),
		MaxX: min(b.MaxX, o.MaxX),
		MaxY: min(b.MaxY, o.MaxY),
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Placement describes where a new avatar may go.
type Placement struct {
	Area         Bounds
	SafeDistance float64
	MaxAttempts  int
}

// Place draws up to MaxAttempts uniform points from Area and returns the
// first that is at least SafeDistance from every position in others. An
// Empty area fails without drawing.
func Place(rng *rand.Rand, pl Placement, others PositionSource) (Position, error) {
	if pl.Area.Empty() {
		return Position{}, fmt.Errorf("%w: placement area %v is empty", ErrNoValidPosition, pl.Area)
	}
	for attempt := 0; attempt < pl.MaxAttempts; attempt++ {
		candidate := Position{
			X: pl.Area.MinX + rng.Float64()*(pl.Area.MaxX-pl.Area.MinX),
			Y: pl.Area.MinY + rng.Float64()*(pl.Area.MaxY-pl.Area.MinY),
		}
		if Clear(candidate, 0, pl.SafeDistance, others) {
			return candidate, nil
		}
	}
	return Position{}, fmt.Errorf("%w after %d attempts", ErrNoValidPosition, pl.MaxAttempts)
}

// Clear reports whether p is at least safe away from every position in
// others, ignoring the entity self.
func Clear(p Position, self ecs.EntityId, safe float64, others PositionSource) bool {
	for id, q := range others.Positions() {
		if id == self && self != 0 {
			continue
		}
		if p.Dist(q) < safe {
			return false
		}
	}
	return true
}
