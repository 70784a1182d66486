package debugui

import (
	"testing"
	"time"

	"github.com/plus3/avatars/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X, Y float64
}

type Tag struct{}

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Tag](registry)
	return ecs.NewStorage(registry)
}

func TestCollectEntities(t *testing.T) {
	storage := newStorage()
	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2}, Tag{})

	entities := collectEntities(storage)
	require.Len(t, entities, 2)

	sortEntities(entities, 0, true)
	byID := map[ecs.EntityId]EntityInfo{}
	for _, e := range entities {
		byID[e.ID] = e
	}
	assert.Equal(t, []string{"debugui.Position"}, byID[a].ComponentTypes)
	assert.Len(t, byID[b].ComponentTypes, 2)
	assert.Equal(t, b.ArchetypeId(), byID[b].ArchetypeID)
}

func TestSortEntities(t *testing.T) {
	entities := []EntityInfo{
		{ID: 3, ArchetypeID: 1, ComponentTypes: []string{"b"}},
		{ID: 1, ArchetypeID: 2, ComponentTypes: []string{"a"}},
		{ID: 2, ArchetypeID: 1, ComponentTypes: []string{"c"}},
	}

	sortEntities(entities, 0, true)
	assert.Equal(t, ecs.EntityId(1), entities[0].ID)

	sortEntities(entities, 1, true)
	assert.Equal(t, []ecs.EntityId{2, 3, 1}, ids(entities))

	sortEntities(entities, 2, false)
	assert.Equal(t, []ecs.EntityId{2, 3, 1}, ids(entities))
}

func TestFilterEntities(t *testing.T) {
	entities := []EntityInfo{
		{ID: 10, ArchetypeID: 0xAB, ComponentTypes: []string{"arena.Position"}},
		{ID: 20, ArchetypeID: 0xCD, ComponentTypes: []string{"arena.Wanderer"}},
	}

	assert.Len(t, filterEntities(entities, ""), 2)
	assert.Equal(t, []ecs.EntityId{20}, ids(filterEntities(entities, "WANDER")))
	assert.Equal(t, []ecs.EntityId{10}, ids(filterEntities(entities, "0xab")))
	assert.Empty(t, filterEntities(entities, "sprite"))
}

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Zero(t, h.Average())

	h.Add(10 * time.Millisecond)
	h.Add(20 * time.Millisecond)
	assert.InDelta(t, 15, h.Average(), 1e-3)

	h.Add(30 * time.Millisecond)
	h.Add(40 * time.Millisecond)
	assert.InDelta(t, 30, h.Average(), 1e-3)
}

func ids(entities []EntityInfo) []ecs.EntityId {
	out := make([]ecs.EntityId, len(entities))
	for i, e := range entities {
		out[i] = e.ID
	}
	return out
}
