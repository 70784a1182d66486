package ecs_test

import (
	"testing"

	"github.com/plus3/avatars/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCommandsFlush(t *testing.T) {
	cmds := ecs.NewCommands()
	assert.True(t, cmds.Empty())

	var order []string
	cmds.Defer(func() { order = append(order, "first") })
	cmds.Defer(func() {
		order = append(order, "second")
		cmds.Defer(func() { order = append(order, "nested") })
	})
	assert.False(t, cmds.Empty())

	cmds.Flush()

	assert.True(t, cmds.Empty())
	assert.Equal(t, []string{"first", "second", "nested"}, order)

	cmds.Flush()
	assert.Len(t, order, 3)
}
