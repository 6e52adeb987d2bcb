// Package monitor prints per-update wall time and peak memory to the console.
package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/benwilkes9/ealog/internal/population"
	"github.com/benwilkes9/ealog/internal/stats"
)

// Header is the first line printed by a Runtime monitor.
const Header = "update instantaneous_seconds mean_seconds peak_memory_mb"

// Options overrides the clock and memory probe. Zero fields use the
// wall clock and PeakMemory.
type Options struct {
	Now        func() time.Time
	PeakMemory func() (float64, error)
}

// Runtime prints one line per update: the update, seconds since the previous
// update, the mean of those durations over the run, and peak memory in MB.
type Runtime struct {
	w     io.Writer
	clock population.Clock
	now   func() time.Time
	peak  func() (float64, error)

	last    time.Time
	elapsed stats.Accumulator
	maxMem  float64
}

// New prints the header to w and starts the first update's timer.
func New(w io.Writer, clock population.Clock, opts Options) *Runtime {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PeakMemory == nil {
		opts.PeakMemory = PeakMemory
	}
	m := &Runtime{w: w, clock: clock, now: opts.Now, peak: opts.PeakMemory}
	fmt.Fprintln(w, Header) //nolint:errcheck // display-only
	m.last = m.now()
	return m
}

// Handle prints the line for the current update and restarts the timer.
func (m *Runtime) Handle(_ context.Context) error {
	t := m.now().Sub(m.last).Seconds()
	m.elapsed.Observe(t)
	mean, _ := m.elapsed.Mean() //nolint:errcheck // observed above

	mem, err := m.peak()
	if err != nil {
		return fmt.Errorf("runtime monitor: %w", err)
	}
	m.maxMem = max(m.maxMem, mem)

	fmt.Fprintf(m.w, "%d %.4f %.4f %.4f\n", m.clock.CurrentUpdate(), t, mean, mem) //nolint:errcheck // display-only

	m.last = m.now()
	return nil
}

// Stats summarizes the updates seen so far.
type Stats struct {
	Updates      int
	MeanSeconds  float64
	PeakMemoryMB float64
}

// Stats returns the cumulative timing and memory figures.
func (m *Runtime) Stats() Stats {
	s := m.elapsed.Summary()
	if s.Empty() {
		return Stats{}
	}
	return Stats{Updates: s.Count, MeanSeconds: s.Mean, PeakMemoryMB: m.maxMem}
}
