package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/loop"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	Step           time.Duration
	Seed           uint64
	GCPauseMetrics bool

	// Results
	TotalTime     time.Duration
	SimulatedTime time.Duration
	FrameTime     Stats
	Scheduler     *loop.SchedulerStats
	Games         GameSummary
	Pieces        int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// GameSummary aggregates the finished games.
type GameSummary struct {
	Count     int
	BestScore int
	AvgScore  int
	BestLevel int
	Lines     int
}

func summarize(results []autoplay.Result) GameSummary {
	var g GameSummary
	g.Count = len(results)
	total := 0
	for _, r := range results {
		total += r.Score
		g.Lines += r.Lines
		g.BestScore = max(g.BestScore, r.Score)
		g.BestLevel = max(g.BestLevel, r.Level)
	}
	if g.Count > 0 {
		g.AvgScore = total / g.Count
	}
	return g
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Autoplay Benchmark Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Frame Step:** {{.Step}}
- **Seed:** {{.Seed}}

## Performance Results
- **Frames:** {{.Scheduler.Frames}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Games
- **Finished:** {{.Games.Count}}
- **Pieces Placed:** {{.Pieces}}
- **Lines Cleared:** {{.Games.Lines}}
- **Best Score:** {{.Games.BestScore}}
- **Average Score:** {{.Games.AvgScore}}
- **Best Level:** {{.Games.BestLevel}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
