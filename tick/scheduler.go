// Package tick runs game systems in a fixed order once per frame and keeps timing
// statistics for each of them.
package tick

import (
	"context"
	"reflect"
	"sync"
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

// timing accumulates the run durations of one system.
type timing struct {
	name        string
	runs        int64
	min, max    time.Duration
	last, total time.Duration
}

func (t *timing) add(d time.Duration) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.last = d
	t.total += d
	t.runs++
}

func (t *timing) stats() SystemStats {
	st := SystemStats{
		Name:           t.name,
		ExecutionCount: t.runs,
		MinDuration:    t.min,
		MaxDuration:    t.max,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.runs > 0 {
		st.AvgDuration = t.total / time.Duration(t.runs)
	}
	return st
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	mu       sync.Mutex
	systems  []System
	timings  []*timing
	commands *Commands
	frames   int64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// Register appends a system. Its stats are named after its type, or after the name given to
// Func.
func (s *Scheduler) Register(system System) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &timing{name: systemName(system)})
}

func systemName(system System) string {
	if named, ok := system.(*namedSystem); ok {
		return named.name
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

// Once executes all registered systems once with the given delta time, then flushes the
// commands they deferred.
func (s *Scheduler) Once(dt float64) {
	s.mu.Lock()
	systems := s.systems
	frame := newFrame(s.frames, dt, s.commands)
	s.frames++
	s.mu.Unlock()

	for i, system := range systems {
		start := time.Now()
		system.Execute(frame)
		elapsed := time.Since(start)

		s.mu.Lock()
		s.timings[i].add(elapsed)
		s.mu.Unlock()
	}

	frame.Commands.Flush()
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.timings)),
	}

	for i, t := range s.timings {
		stats.Systems[i] = t.stats()
		stats.TotalExecutions += t.runs
	}
	return stats
}
