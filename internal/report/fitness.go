package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/benwilkes9/ealog/internal/datafile"
	"github.com/benwilkes9/ealog/internal/population"
	"github.com/benwilkes9/ealog/internal/stats"
)

// Fitness writes mean generation and min, mean and max fitness of a flat
// population, one row per update.
type Fitness struct {
	src    population.Source
	df     *datafile.File
	logger *slog.Logger
}

// NewFitness creates dir/fitness.dat and declares its columns.
func NewFitness(dir string, src population.Source, opts Options) (*Fitness, error) {
	df, err := create(dir, FitnessFile, opts,
		"update", "mean_generation", "min_fitness", "mean_fitness", "max_fitness")
	if err != nil {
		return nil, fmt.Errorf("fitness report: %w", err)
	}
	return &Fitness{src: src, df: df, logger: opts.logger()}, nil
}

// Path returns the data file path.
func (r *Fitness) Path() string {
	return r.df.Path()
}

// Handle records one row for the current update. An empty population yields
// a row of NaN statistics.
func (r *Fitness) Handle(_ context.Context) error {
	var gen, fit stats.Accumulator
	pop := r.src.Population()
	for ind := range pop.All() {
		gen.Observe(float64(ind.Generation()))
		fit.Observe(pop.Fitness(ind))
	}

	update := r.src.CurrentUpdate()
	if fit.Count() == 0 {
		r.logger.Warn("empty population, writing NaN statistics", "update", update, "file", FitnessFile)
	}

	g, f := gen.Summary(), fit.Summary()
	if err := r.df.WriteRow(update, g.Mean, f.Min, f.Mean, f.Max); err != nil {
		return fmt.Errorf("fitness report: %w", err)
	}
	return nil
}

// Close closes the data file.
func (r *Fitness) Close() error {
	return r.df.Close()
}
