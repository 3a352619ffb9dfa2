// Package timer contains the domain logic for the breathing widget: the phase
// durations, the pure phase derivation functions and the Clock state machine.
//
// Maintenance notes:
//   - Clock mutations are expected to come from a single goroutine (the
//     control loop), which also processes ticks, so ticks and commands never
//     interleave. The RWMutex only exists so the UI can take snapshots.
//   - Durations are read at the moment of each tick. Shortening the cycle
//     while running can leave elapsed outside [0, Total) until the next tick
//     folds it back with the modulo. This is intentional and matches the
//     observed behavior of the widget.
package timer

import (
	"sync"
)

// Clock owns the phase durations, the running flag and the elapsed counter.
type Clock struct {
	mu        sync.RWMutex
	durations Durations
	elapsed   int
	running   bool
}

// NewClock creates a stopped clock at the start of a cycle.
func NewClock(d Durations) *Clock {
	return &Clock{durations: d}
}

// Start marks the clock as running. Calling it on a running clock is a no-op.
// Elapsed time is kept, so a stopped cycle resumes where it was frozen.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
}

// Stop freezes the clock.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// Reset moves the clock back to the start of the cycle without changing the
// running flag.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed = 0
}

// Tick advances one second. A stopped clock ignores ticks.
func (c *Clock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	total := c.durations.Total()
	if total <= 0 {
		c.elapsed = 0
		return
	}
	c.elapsed = (c.elapsed + 1) % total
}

// SetDurations replaces the phase durations. The new cycle length applies on
// the next tick.
func (c *Clock) SetDurations(d Durations) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durations = d
}

// Running reports whether the clock is running.
func (c *Clock) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// Elapsed returns the seconds since the cycle started.
func (c *Clock) Elapsed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elapsed
}

// Durations returns the current phase durations.
func (c *Clock) Durations() Durations {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.durations
}

// Snapshot is a consistent view of the clock for the renderer.
type Snapshot struct {
	Durations Durations
	Elapsed   int
	Running   bool
	Phase     Phase
	Remaining int
	Target    AnimationTarget
	// TransitionSeconds is how long the renderer eases towards Target.
	TransitionSeconds int
}

// Snapshot derives phase, remaining time and animation target under the lock.
func (c *Clock) Snapshot() Snapshot {
	c.mu.RLock()
	d, elapsed, running := c.durations, c.elapsed, c.running
	c.mu.RUnlock()
	return NewSnapshot(d, elapsed, running)
}

// NewSnapshot derives a Snapshot from raw clock state.
func NewSnapshot(d Durations, elapsed int, running bool) Snapshot {
	phase := DerivePhase(elapsed, d)
	return Snapshot{
		Durations:         d,
		Elapsed:           elapsed,
		Running:           running,
		Phase:             phase,
		Remaining:         RemainingSeconds(elapsed, phase, d),
		Target:            AnimationTargetFor(phase),
		TransitionSeconds: PhaseLength(phase, d),
	}
}
