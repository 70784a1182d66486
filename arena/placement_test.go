package arena_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/plus3/avatars/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPlaceKeepsBoundsAndSeparation(t *testing.T) {
	rng := newRand()
	pl := arena.Placement{
		Area:         arena.Bounds{MinX: 40, MinY: 40, MaxX: 760, MaxY: 560},
		SafeDistance: 60,
		MaxAttempts:  50,
	}

	var placed arena.PositionList
	for range 10 {
		p, err := arena.Place(rng, pl, placed)
		require.NoError(t, err)
		assert.True(t, pl.Area.Contains(p), "position %v outside area", p)
		placed = append(placed, p)
	}

	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			assert.GreaterOrEqual(t, placed[i].Dist(placed[j]), 60.0)
		}
	}
}

func TestPlaceFailsWhenCrowded(t *testing.T) {
	pl := arena.Placement{
		Area:         arena.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		SafeDistance: 60,
		MaxAttempts:  50,
	}

	_, err := arena.Place(newRand(), pl, arena.PositionList{{X: 5, Y: 5}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, arena.ErrNoValidPosition))
	assert.Contains(t, err.Error(), "after 50 attempts")
}

func TestPlaceEmptyArena(t *testing.T) {
	pl := arena.Placement{
		Area:         arena.Bounds{MinX: 40, MinY: 40, MaxX: 60, MaxY: 60},
		SafeDistance: 60,
		MaxAttempts:  1,
	}

	p, err := arena.Place(newRand(), pl, arena.PositionList{})
	require.NoError(t, err)
	assert.True(t, pl.Area.Contains(p))
}

func TestPlaceRejectsEmptyArea(t *testing.T) {
	pl := arena.Placement{
		Area:         arena.Bounds{MinX: 40, MinY: 40, MaxX: 26, MaxY: 26},
		SafeDistance: 60,
		MaxAttempts:  50,
	}
	require.True(t, pl.Area.Empty())

	_, err := arena.Place(newRand(), pl, arena.PositionList{})
	assert.ErrorIs(t, err, arena.ErrNoValidPosition)
	assert.Contains(t, err.Error(), "empty")
}

func TestBoundsIntersect(t *testing.T) {
	padded := arena.Bounds{MinX: 5, MinY: 5, MaxX: 61, MaxY: 61}
	safe := arena.Bounds{MinX: 30, MinY: 30, MaxX: 36, MaxY: 36}
	assert.Equal(t, safe, padded.Intersect(safe))
	assert.False(t, padded.Intersect(safe).Empty())

	apart := arena.Bounds{MinX: 40, MinY: 0, MaxX: 50, MaxY: 10}
	assert.True(t, safe.Intersect(apart).Empty())
}

func TestClearSkipsSelf(t *testing.T) {
	others := arena.PositionList{{X: 0, Y: 0}, {X: 100, Y: 0}}

	assert.True(t, arena.Clear(arena.Position{}, 1, 60, others))
	assert.False(t, arena.Clear(arena.Position{}, 0, 60, others))
	assert.False(t, arena.Clear(arena.Position{}, 2, 60, others))
	assert.True(t, arena.Clear(arena.Position{X: 50, Y: 200}, 0, 60, others))
}

func TestBoundsClamp(t *testing.T) {
	b := arena.Bounds{MinX: 30, MinY: 30, MaxX: 770, MaxY: 570}

	tests := []struct {
		name string
		in   arena.Position
		want arena.Position
	}{
		{"inside", arena.Position{X: 100, Y: 200}, arena.Position{X: 100, Y: 200}},
		{"left", arena.Position{X: -5, Y: 200}, arena.Position{X: 30, Y: 200}},
		{"bottom right", arena.Position{X: 900, Y: 900}, arena.Position{X: 770, Y: 570}},
		{"top", arena.Position{X: 400, Y: 29.5}, arena.Position{X: 400, Y: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Clamp(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, b.Contains(got))
		})
	}
}
