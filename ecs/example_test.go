package ecs_test

import (
	"fmt"
	"sort"

	"github.com/plus3/avatars/ecs"
)

// ExampleQuery shows a query with an optional component. Entities without a
// Velocity still match, with the field left nil.
func ExampleQuery() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	storage.Spawn(Position{X: 10, Y: 10})
	storage.Spawn(Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})

	query := ecs.NewQuery[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)
	query.Execute()

	var lines []string
	for item := range query.Iter() {
		if item.Velocity == nil {
			lines = append(lines, fmt.Sprintf("(%.0f, %.0f) still", item.Position.X, item.Position.Y))
			continue
		}
		lines = append(lines, fmt.Sprintf("(%.0f, %.0f) -> (%.0f, %.0f)",
			item.Position.X, item.Position.Y,
			item.Position.X+item.Velocity.DX, item.Position.Y+item.Velocity.DY))
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Println(l)
	}

	// Output:
	// (0, 0) -> (1, 0)
	// (10, 10) still
	// (20, 20) -> (19, 19)
}

// ExampleScheduler registers a system whose Singleton field is bound by the
// scheduler, then runs it a few frames.
func ExampleScheduler() {
	storage := ecs.NewStorage(newTestRegistry())
	clock := ecs.NewSingleton[Clock](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&TickSystem{})
	for range 3 {
		scheduler.Once(1.0 / 60)
	}

	stats := scheduler.GetStats()
	fmt.Println(clock.Get().Ticks, stats.Systems[0].Name, stats.Systems[0].ExecutionCount)

	// Output:
	// 3 TickSystem 3
}
