package ecs

import (
	"context"
	"slices"
	"time"

	"github.com/plus3/chopper/ecs/event"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	EntityCount    int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// timing accumulates the run durations of one system.
type timing struct {
	runs  int64
	last  time.Duration
	min   time.Duration
	max   time.Duration
	total time.Duration
}

func (t *timing) record(d time.Duration) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.last = d
	t.total += d
	t.runs++
}

func (t *timing) snapshot(name string, entities int) SystemStats {
	st := SystemStats{
		Name:           name,
		EntityCount:    entities,
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

// Scheduler runs a fixed sequence of systems against one registry. The
// order of execution is the order of registration.
type Scheduler struct {
	registry *Registry
	bus      *event.Bus
	systems  []System
	names    []string
	timings  []timing
	elapsed  time.Duration
}

// NewScheduler creates a scheduler for the given registry and event bus.
func NewScheduler(registry *Registry, bus *event.Bus) *Scheduler {
	return &Scheduler{
		registry: registry,
		bus:      bus,
		systems:  make([]System, 0),
	}
}

// Register adds the system to the registry, if it is not there already, and
// appends it to the execution order.
func (s *Scheduler) Register(system System) {
	system = AddSystem(s.registry, system)
	if slices.Contains(s.systems, system) {
		return
	}
	s.systems = append(s.systems, system)
	s.names = append(s.names, systemName(system))
	s.timings = append(s.timings, timing{})
}

// Resubscribe clears the event bus and lets every registered system that
// implements EventSubscriber subscribe again.
func (s *Scheduler) Resubscribe() {
	s.bus.Reset()
	for _, system := range s.systems {
		if sub, ok := system.(EventSubscriber); ok {
			sub.SubscribeToEvents(s.bus)
		}
	}
}

// Once executes all registered systems once with the given delta time, in
// seconds. It does not flush the registry; call Registry.Update first.
func (s *Scheduler) Once(dt float64) {
	s.elapsed += time.Duration(dt * float64(time.Second))
	frame := newUpdateFrame(dt, s.elapsed, s.registry, s.bus)

	for i, system := range s.systems {
		start := time.Now()
		system.Update(frame)
		s.timings[i].record(time.Since(start))
	}
}

// Step runs a complete frame: subscriptions are rebuilt, the registry is
// flushed and every system is executed.
func (s *Scheduler) Step(dt float64) {
	s.Resubscribe()
	s.registry.Update()
	s.Once(dt)
}

// Run executes frames at the given interval until the context is cancelled.
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
			s.Step(dt)
		}
	}
}

// Elapsed returns the simulated time accumulated by Once.
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, system := range s.systems {
		stats.Systems[i] = s.timings[i].snapshot(s.names[i], system.base().Len())
		stats.TotalExecutions += s.timings[i].runs
	}
	return stats
}
