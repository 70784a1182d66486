package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/avatars/config"
	"github.com/plus3/avatars/ecs"
)

type Report struct {
	Duration  time.Duration
	Requested int
	Model     config.Model
	Canvas    string

	Placed            int
	PlacementFailures int
	TotalFrames       int64
	TotalTime         time.Duration
	FrameTime         Stats
	UpdateSystems     []ecs.SystemStats
	DrawSystems       []ecs.SystemStats
	Storage           ecs.StorageStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

const reportTemplate = `
# Avatar Stress Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Canvas:** {{.Canvas}}
- **Movement Model:** {{.Model}}
- **Requested Avatars:** {{.Requested}}
- **Placed Avatars:** {{.Placed}} ({{.PlacementFailures}} placement failures)

## Frame Results
- **Total Frames:** {{.TotalFrames}}
- **Total Time:** {{.TotalTime}}
- **Frame Time (update + draw):**
  - **Avg:** {{.FrameTime.Avg}}
  - **P99:** {{.FrameTime.P99}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Systems
| System | Runs | Avg | Max |
|--------|------|-----|-----|
{{- range .UpdateSystems}}
| {{.Name}} | {{.ExecutionCount}} | {{avg .}} | {{.MaxDuration}} |
{{- end}}
{{- range .DrawSystems}}
| {{.Name}} | {{.ExecutionCount}} | {{avg .}} | {{.MaxDuration}} |
{{- end}}

## Storage
- Entities: {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes, {{.Storage.SingletonCount}} singletons

## Memory Usage (MiB)
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Sys Memory:  {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns .MemStatsEnd.PauseTotalNs}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
	"avg": func(s ecs.SystemStats) time.Duration {
		if s.ExecutionCount == 0 {
			return 0
		}
		return s.TotalDuration / time.Duration(s.ExecutionCount)
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
