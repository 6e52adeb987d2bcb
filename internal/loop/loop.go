package loop

import (
	"context"
	"time"

	"github.com/benwilkes9/ealog/internal/population"
)

// Engine is the simulation the loop drives. Step runs selection and
// variation for the current update; Advance moves the update counter.
type Engine interface {
	population.Clock
	Step(ctx context.Context) error
	Advance()
}

// BestFitnessReporter is implemented by engines that can report the best
// fitness in the population. It enables stagnation detection.
type BestFitnessReporter interface {
	BestFitness() float64
}

// Status describes how a run ended.
type Status string

// Run statuses.
const (
	StatusMaxUpdates Status = "max_updates"
	StatusStagnated  Status = "stagnated"
	StatusCancelled  Status = "cancelled"
	StatusFailed     Status = "failed"
)

// Options configures a loop run.
type Options struct {
	// MaxUpdates stops the run after this many updates; 0 runs until
	// stagnation or cancellation.
	MaxUpdates int
	// MaxStale stops the run after this many consecutive updates without a
	// best-fitness improvement; 0 disables the check.
	MaxStale int
	RunDir   string
	Topology string
}

// Result summarizes a finished run.
type Result struct {
	Updates     int
	Status      Status
	BestFitness float64
	WallTime    time.Duration
}
