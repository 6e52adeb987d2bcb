package loop

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/benwilkes9/ealog/internal/hook"
)

// Run drives eng one update at a time. Each update runs Step, fires the
// record-statistics handlers, fires the end-of-update handlers and then
// advances the counter. Handler errors end the run.
func Run(ctx context.Context, opts *Options, w io.Writer, eng Engine, hooks *hook.Registry) (*Result, error) {
	start := time.Now()
	res := &Result{Status: StatusFailed, BestFitness: math.NaN()}
	defer func() { res.WallTime = time.Since(start) }()

	RenderHeader(w, opts)

	best, _ := eng.(BestFitnessReporter)
	var stale *StaleDetector
	if opts.MaxStale > 0 && best != nil {
		stale = NewStaleDetector(opts.MaxStale)
	}

	for {
		if err := ctx.Err(); err != nil {
			res.Status = StatusCancelled
			return res, err
		}
		if opts.MaxUpdates > 0 && res.Updates >= opts.MaxUpdates {
			RenderMaxUpdates(w, opts.MaxUpdates)
			res.Status = StatusMaxUpdates
			return res, nil
		}

		update := eng.CurrentUpdate()
		if err := eng.Step(ctx); err != nil {
			if ctx.Err() != nil {
				res.Status = StatusCancelled
			}
			return res, fmt.Errorf("update %d: %w", update, err)
		}
		if err := hooks.Fire(ctx, hook.PhaseRecordStatistics); err != nil {
			return res, fmt.Errorf("update %d: %w", update, err)
		}
		if err := hooks.Fire(ctx, hook.PhaseEndOfUpdate); err != nil {
			return res, fmt.Errorf("update %d: %w", update, err)
		}
		res.Updates++

		if best != nil {
			res.BestFitness = best.BestFitness()
		}
		eng.Advance()

		if stale != nil {
			abort, count := stale.Check(res.BestFitness)
			if abort {
				RenderStaleAbort(w, stale.MaxStale())
				res.Status = StatusStagnated
				return res, nil
			}
			if count > 0 && count == stale.MaxStale()-1 {
				RenderStaleWarning(w, count, stale.MaxStale())
			}
		}
	}
}
