package ecs_test

import (
	"testing"

	"github.com/plus3/avatars/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRequiredComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Label{Text: "b"})
	storage.Spawn(Position{X: 3})

	q := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)
	q.Execute()

	assert.Equal(t, 2, q.Len())
	var sum float64
	for item := range q.Iter() {
		sum += item.Position.X
		item.Position.X += item.Velocity.DX
	}
	assert.Equal(t, 3.0, sum)

	q.Execute()
	var moved []float64
	for item := range q.Iter() {
		moved = append(moved, item.Position.X)
	}
	assert.ElementsMatch(t, []float64{2, 4}, moved)
}

func TestQueryOptionalAndEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	plain := storage.Spawn(Position{X: 1})
	labelled := storage.Spawn(Position{X: 2}, Label{Text: "bro"})

	q := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
		Label *Label `ecs:"optional"`
	}](storage)
	q.Execute()

	seen := map[ecs.EntityId]string{}
	for id, item := range q.All() {
		assert.Equal(t, id, item.EntityId)
		if item.Label != nil {
			seen[id] = item.Label.Text
		} else {
			seen[id] = ""
		}
	}
	assert.Equal(t, map[ecs.EntityId]string{plain: "", labelled: "bro"}, seen)
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	q := ecs.NewQuery[struct{ *Position }](storage)

	q.Execute()
	assert.Zero(t, q.Len())

	storage.Spawn(Position{})
	storage.Spawn(Position{}, Marker{})
	q.Execute()
	assert.Equal(t, 2, q.Len())
}

func TestQueryGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	withVel := storage.Spawn(Position{X: 4}, Velocity{DX: 1})
	withoutVel := storage.Spawn(Position{X: 5})

	q := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	item, ok := q.Get(withVel)
	require.True(t, ok)
	assert.Equal(t, 4.0, item.Position.X)

	_, ok = q.Get(withoutVel)
	assert.False(t, ok)

	storage.Delete(withVel)
	_, ok = q.Get(withVel)
	assert.False(t, ok)
}

func TestQueryPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		q := ecs.NewQuery[struct{ *Position }](storage)
		for range q.Iter() {
		}
	}, "Iter before Execute")

	assert.Panics(t, func() { ecs.NewQuery[struct{ Position }](storage) })
	assert.Panics(t, func() { ecs.NewQuery[int](storage) })
	assert.Panics(t, func() {
		ecs.NewQuery[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}
