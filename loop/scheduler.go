// Package loop drives a game at a fixed cadence: a Scheduler runs an ordered
// list of systems once per frame and keeps timing statistics for each.
package loop

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// timing accumulates the cost of one system across frames.
type timing struct {
	name  string
	runs  int64
	total time.Duration
	last  time.Duration
	least time.Duration
	most  time.Duration
}

func (t *timing) record(d time.Duration) {
	if t.runs == 0 || d < t.least {
		t.least = d
	}
	t.most = max(t.most, d)
	t.last = d
	t.total += d
	t.runs++
}

func (t *timing) stats() SystemStats {
	st := SystemStats{
		Name:           t.name,
		ExecutionCount: t.runs,
		MinDuration:    t.least,
		MaxDuration:    t.most,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.runs > 0 {
		st.AvgDuration = t.total / time.Duration(t.runs)
	}
	return st
}

// Scheduler runs registered systems in order.
type Scheduler struct {
	systems  []System
	timings  []timing
	commands Commands

	frames  int64
	last    time.Duration
	started bool
}

// NewScheduler creates a scheduler with the given systems already registered.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{
		systems: make([]System, 0, len(systems)),
	}
	for _, system := range systems {
		s.Register(system)
	}
	return s
}

// Register appends a system. It panics on a nil system.
func (s *Scheduler) Register(system System) {
	if system == nil {
		panic("loop: nil system")
	}
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, timing{name: systemName(system)})
}

func systemName(system System) string {
	if n, ok := system.(interface{ Name() string }); ok {
		return n.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// Once executes every system for the frame at host time now, then flushes the
// frame's deferred commands.
func (s *Scheduler) Once(now time.Duration) {
	var delta time.Duration
	if s.started && now > s.last {
		delta = now - s.last
	}
	s.started = true
	s.last = max(s.last, now)
	s.frames++

	frame := &Frame{
		Index:    s.frames,
		Now:      now,
		Delta:    delta,
		Commands: &s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].record(time.Since(start))
	}

	s.commands.Flush()
}

// Now returns the host time of the most recent frame.
func (s *Scheduler) Now() time.Duration {
	return s.last
}

// Run executes all systems at the given interval until the context is cancelled.
// Host time continues from the last frame, so Run may be called again after it
// returns.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	base := s.last
	start := time.Now()
	s.Once(base)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(base + now.Sub(start))
		}
	}
}

// GetStats returns a snapshot of the frame count and every system's timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.timings)),
	}
	for i := range s.timings {
		stats.Systems[i] = s.timings[i].stats()
		stats.TotalExecutions += s.timings[i].runs
	}
	return stats
}
