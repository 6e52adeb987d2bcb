package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/benwilkes9/ealog/internal/datafile"
	"github.com/benwilkes9/ealog/internal/population"
	"github.com/benwilkes9/ealog/internal/stats"
)

// Metapopulation writes per-sub-population and pooled fitness statistics.
//
// The sub-population file has 1+4n columns, where n is the number of
// sub-populations when the report is created. n is frozen for the life of
// the report; Handle fails with ErrFrozenSchema if it changes.
type Metapopulation struct {
	src    population.MetaSource
	n      int
	sp     *datafile.File
	mp     *datafile.File
	logger *slog.Logger

	local []subpopStats
}

type subpopStats struct {
	gen stats.Summary
	fit stats.Summary
}

// NewMetapopulation creates the sub-population and metapopulation data files
// in dir.
func NewMetapopulation(dir string, src population.MetaSource, opts Options) (*Metapopulation, error) {
	n := src.Metapopulation().Len()

	columns := make([]string, 0, 1+4*n)
	columns = append(columns, "update")
	for i := range n {
		sfx := "_sp" + strconv.Itoa(i)
		columns = append(columns,
			"mean_generation"+sfx, "min_fitness"+sfx, "mean_fitness"+sfx, "max_fitness"+sfx)
	}

	sp, err := create(dir, SubpopulationFitnessFile, opts, columns...)
	if err != nil {
		return nil, fmt.Errorf("metapopulation report: %w", err)
	}
	mp, err := create(dir, MetapopulationFitnessFile, opts,
		"update", "mean_size", "mean_generation", "min_fitness", "mean_fitness", "max_fitness")
	if err != nil {
		sp.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("metapopulation report: %w", err)
	}

	return &Metapopulation{
		src:    src,
		n:      n,
		sp:     sp,
		mp:     mp,
		logger: opts.logger(),
		local:  make([]subpopStats, n),
	}, nil
}

// Subpopulations returns the frozen sub-population count.
func (r *Metapopulation) Subpopulations() int {
	return r.n
}

// Paths returns the sub-population and metapopulation data file paths.
func (r *Metapopulation) Paths() (subpopulation, metapopulation string) {
	return r.sp.Path(), r.mp.Path()
}

// Handle records one row in each file for the current update. Both rows are
// computed before either is written.
func (r *Metapopulation) Handle(_ context.Context) error {
	update := r.src.CurrentUpdate()
	meta := r.src.Metapopulation()
	if got := meta.Len(); got != r.n {
		return fmt.Errorf("%w: declared %d, update %d has %d", ErrFrozenSchema, r.n, update, got)
	}

	var size, poolGen, poolFit, gen, fit stats.Accumulator
	i := 0
	for sub := range meta.Subpopulations() {
		if i == r.n {
			return fmt.Errorf("%w: declared %d, update %d yielded more", ErrFrozenSchema, r.n, update)
		}
		gen.Reset()
		fit.Reset()
		for ind := range sub.All() {
			g := float64(ind.Generation())
			f := sub.Fitness(ind)
			gen.Observe(g)
			fit.Observe(f)
			poolGen.Observe(g)
			poolFit.Observe(f)
		}
		size.Observe(float64(sub.Len()))
		if fit.Count() == 0 {
			r.logger.Warn("empty sub-population, writing NaN statistics", "update", update, "subpopulation", i)
		}
		r.local[i] = subpopStats{gen: gen.Summary(), fit: fit.Summary()}
		i++
	}
	if i != r.n {
		return fmt.Errorf("%w: declared %d, update %d yielded %d", ErrFrozenSchema, r.n, update, i)
	}

	row := r.sp.BeginRow(update)
	for _, s := range r.local {
		row.Floats(s.gen.Mean, s.fit.Min, s.fit.Mean, s.fit.Max)
	}
	spErr := row.End()

	g, f, sz := poolGen.Summary(), poolFit.Summary(), size.Summary()
	mpErr := r.mp.WriteRow(update, sz.Mean, g.Mean, f.Min, f.Mean, f.Max)

	if err := errors.Join(spErr, mpErr); err != nil {
		return fmt.Errorf("metapopulation report: %w", err)
	}
	return nil
}

// Close closes both data files.
func (r *Metapopulation) Close() error {
	return errors.Join(r.sp.Close(), r.mp.Close())
}
