// Command avatars-stress runs the playfield headless with many wandering
// avatars and prints timing and memory figures.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/avatars/arena"
	"github.com/plus3/avatars/config"
)

func main() {
	cfg := config.Default()
	cfg.Width, cfg.Height = 4000, 3000
	cfg.Wanderers = 500
	cfg.RegisterFlags(flag.CommandLine)
	duration := flag.Duration("duration", 10*time.Second, "how long to run the simulation")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "include GC pause totals in the report")
	verbose := flag.Bool("v", false, "log every spawn")
	flag.Parse()

	logger := log.New(os.Stderr, "avatars-stress: ", log.LstdFlags)
	opts := []arena.Option{}
	if *verbose {
		opts = append(opts, arena.WithLogger(logger))
	}

	m, err := arena.NewManager(cfg, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	report := &Report{
		Duration:  *duration,
		Requested: cfg.Wanderers,
		Model:     cfg.Model,
		Canvas:    fmt.Sprintf("%.0fx%.0f", cfg.Width, cfg.Height),

		GCPauseMetrics: *gcPauseMetrics,
	}

	logger.Printf("placing %d wanderers on a %s canvas", cfg.Wanderers, report.Canvas)
	for range cfg.Wanderers {
		_, err := m.Spawn(arena.SpawnOptions{Wander: true})
		switch {
		case errors.Is(err, arena.ErrNoValidPosition):
			report.PlacementFailures++
		case err != nil:
			logger.Fatal(err)
		}
	}
	report.Placed = m.Len()
	logger.Printf("placed %d, %d placement failures", report.Placed, report.PlacementFailures)

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Printf("running simulation for %s", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	surface := arena.NullSurface{}
	start := time.Now()
	last := start

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			now := time.Now()
			dt := now.Sub(last)
			last = now

			m.Update(dt.Seconds())
			m.Draw(surface)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(now))
			report.TotalFrames++
		}
	}

	report.TotalTime = time.Since(start)
	report.FrameTime.Finalize()
	report.UpdateSystems = m.UpdateStats().Systems
	report.DrawSystems = m.DrawStats().Systems
	report.Storage = m.Storage().CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Avatar Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatalf("failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
