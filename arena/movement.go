package arena

import (
	"math"

	"github.com/plus3/avatars/config"
	"github.com/plus3/avatars/ecs"
)

// ApplyFriction damps v by factor and snaps components below threshold to
// zero. With factor in [0, 1) the result never changes sign.
func ApplyFriction(v Velocity, factor, threshold float64) Velocity {
	v.X *= factor
	v.Y *= factor
	if math.Abs(v.X) < threshold {
		v.X = 0
	}
	if math.Abs(v.Y) < threshold {
		v.Y = 0
	}
	return v
}

// Integrate advances p by v and clamps the result into b.
func Integrate(p Position, v Velocity, b Bounds) Position {
	return b.Clamp(Position{X: p.X + v.X, Y: p.Y + v.Y})
}

// Push adds speed to v along d.
func Push(v Velocity, d Direction, speed float64) Velocity {
	dx, dy := d.Delta()
	v.X += dx * speed
	v.Y += dy * speed
	return v
}

// Step returns p moved by speed along d and clamped into b, and whether that
// spot keeps safe distance from every other avatar. self is skipped.
func Step(p Position, d Direction, speed float64, b Bounds, self ecs.EntityId, safe float64, others PositionSource) (Position, bool) {
	dx, dy := d.Delta()
	candidate := b.Clamp(Position{X: p.X + dx*speed, Y: p.Y + dy*speed})
	return candidate, Clear(candidate, self, safe, others)
}

// SafeBounds is the rectangle an avatar's centre must stay in.
func SafeBounds(c Canvas, cfg config.Config, radius float64) Bounds {
	return c.Inset(radius + cfg.EdgePadding)
}

// avatar is the mutable view of one avatar that steering needs.
type avatar struct {
	ecs.EntityId
	*Position
	*Body
	*Mover
	Velocity *Velocity `ecs:"optional"`
}

// steer applies one directional input under cfg.Model and reports whether
// the avatar's motion state changed. A blocked step returns false.
func steer(cfg config.Config, c Canvas, a avatar, d Direction, others PositionSource) bool {
	a.Mover.Facing = d
	switch cfg.Model {
	case config.ModelStep:
		next, ok := Step(*a.Position, d, a.Mover.Speed, SafeBounds(c, cfg, a.Body.Radius), a.EntityId, cfg.SafeDistance, others)
		if !ok {
			return false
		}
		*a.Position = next
		return true
	default:
		if a.Velocity == nil {
			return false
		}
		*a.Velocity = Push(*a.Velocity, d, a.Mover.Speed)
		return true
	}
}
