package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceSpriteCyclesWhileMoving(t *testing.T) {
	sp := &Sprite{FrameCount: 4, FrameDelay: 5}

	pos := Position{X: 100, Y: 100}
	for i := 1; i <= 10; i++ {
		pos.X++
		advanceSprite(sp, pos)
	}
	assert.Equal(t, 2, sp.Frame)

	for range 5 {
		advanceSprite(sp, pos)
	}
	assert.Equal(t, 3, sp.Frame, "animation keeps running for one frame delay after stopping")

	advanceSprite(sp, pos)
	assert.Equal(t, 0, sp.Frame)
	assert.Equal(t, 0, sp.FrameTimer)
}

func TestAdvanceSpriteWraps(t *testing.T) {
	sp := &Sprite{FrameCount: 4, FrameDelay: 1}
	for i := range 4 {
		advanceSprite(sp, Position{X: float64(i + 1)})
	}
	assert.Equal(t, 0, sp.Frame)
}
