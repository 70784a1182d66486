package arena_test

import (
	"testing"

	"github.com/plus3/avatars/arena"
	"github.com/plus3/avatars/config"
	"github.com/stretchr/testify/assert"
)

var defaultBounds = arena.SafeBounds(arena.Canvas{Width: 800, Height: 600, PixelRatio: 1}, config.Default(), 20)

func TestSafeBounds(t *testing.T) {
	assert.Equal(t, arena.Bounds{MinX: 30, MinY: 30, MaxX: 770, MaxY: 570}, defaultBounds)
}

func TestFrictionTick(t *testing.T) {
	v := arena.ApplyFriction(arena.Velocity{X: 10}, 0.9, 0.01)
	assert.InDelta(t, 9, v.X, 1e-9)
	assert.Zero(t, v.Y)

	p := arena.Integrate(arena.Position{X: 100, Y: 100}, v, defaultBounds)
	assert.InDelta(t, 109, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
}

func TestFrictionSnapsAndNeverReverses(t *testing.T) {
	v := arena.ApplyFriction(arena.Velocity{X: 0.005, Y: -0.011}, 0.9, 0.01)
	assert.Equal(t, arena.Velocity{}, v)

	for _, start := range []arena.Velocity{{X: 10, Y: -3}, {X: -0.5, Y: 0.2}, {X: -7, Y: 7}} {
		v := start
		for range 200 {
			next := arena.ApplyFriction(v, 0.9, 0.01)
			assert.GreaterOrEqual(t, next.X*start.X, 0.0)
			assert.GreaterOrEqual(t, next.Y*start.Y, 0.0)
			assert.LessOrEqual(t, abs(next.X), abs(v.X))
			v = next
		}
		assert.Equal(t, arena.Velocity{}, v, "velocity from %v never came to rest", start)
	}
}

func TestIntegrateClampsToBounds(t *testing.T) {
	p := arena.Integrate(arena.Position{X: 765, Y: 35}, arena.Velocity{X: 20, Y: -20}, defaultBounds)
	assert.Equal(t, arena.Position{X: 770, Y: 30}, p)
}

func TestPush(t *testing.T) {
	v := arena.Push(arena.Velocity{X: 1}, arena.Up, 2)
	assert.Equal(t, arena.Velocity{X: 1, Y: -2}, v)
	v = arena.Push(v, arena.Left, 2)
	assert.Equal(t, arena.Velocity{X: -1, Y: -2}, v)
}

func TestStep(t *testing.T) {
	p, ok := arena.Step(arena.Position{X: 50, Y: 50}, arena.Left, 5, defaultBounds, 0, 60, arena.PositionList{})
	assert.True(t, ok)
	assert.Equal(t, arena.Position{X: 45, Y: 50}, p)

	p, ok = arena.Step(arena.Position{X: 32, Y: 50}, arena.Left, 5, defaultBounds, 0, 60, arena.PositionList{})
	assert.True(t, ok)
	assert.Equal(t, arena.Position{X: 30, Y: 50}, p)
}

func TestStepBlockedByNeighbour(t *testing.T) {
	others := arena.PositionList{{X: 50, Y: 50}, {X: 40, Y: 100}}

	_, ok := arena.Step(arena.Position{X: 50, Y: 50}, arena.Left, 5, defaultBounds, 1, 60, others)
	assert.False(t, ok)

	p, ok := arena.Step(arena.Position{X: 50, Y: 50}, arena.Up, 15, defaultBounds, 1, 60, others)
	assert.True(t, ok)
	assert.Equal(t, arena.Position{X: 50, Y: 35}, p)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
