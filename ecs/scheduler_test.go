package ecs_test

import (
	"testing"

	"github.com/plus3/avatars/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * frame.DeltaTime
		item.Position.Y += item.Velocity.DY * frame.DeltaTime
	}
}

type TickSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *TickSystem) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Ticks++
}

type SpawnerSystem struct {
	Labels ecs.Query[struct{ *Label }]
	Seen   []int
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Labels.Len())
	frame.Commands.Defer(func() {
		frame.Storage.Spawn(Label{Text: "queued"})
	})
}

func TestSchedulerOnce(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Clock](storage)
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	tick := &TickSystem{}
	scheduler.Register(movement)
	scheduler.Register(tick)

	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: 1})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, 2, movement.ExecuteCount)
	assert.Equal(t, 2, tick.Clock.Get().Ticks)
	assert.Equal(t, Position{X: 2, Y: 1}, *ecs.ReadComponent[Position](storage, id))
}

func TestSchedulerFlushesCommandsAfterFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	spawner := &SpawnerSystem{}
	scheduler.Register(spawner)

	scheduler.Once(0)
	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, []int{0, 1, 2}, spawner.Seen)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&SpawnerSystem{})

	for i := 0; i < 3; i++ {
		scheduler.Once(0)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "SpawnerSystem", stats.Systems[1].Name)
	for _, st := range stats.Systems {
		assert.Equal(t, int64(3), st.ExecutionCount)
		assert.LessOrEqual(t, st.MinDuration, st.MaxDuration)
		assert.Equal(t, st.TotalDuration/3, st.AvgDuration)
	}
}
