// Package report computes per-update fitness statistics over a population or
// metapopulation and appends them to data files.
package report

import (
	"errors"
	"io"
	"log/slog"

	"github.com/benwilkes9/ealog/internal/datafile"
)

// Data file names, relative to the run directory.
const (
	FitnessFile               = "fitness.dat"
	SubpopulationFitnessFile  = "subpopulation_fitness.dat"
	MetapopulationFitnessFile = "metapopulation_fitness.dat"
)

// ErrFrozenSchema is returned when a metapopulation's sub-population count
// differs from the count its data file was declared with.
var ErrFrozenSchema = errors.New("sub-population count changed after schema was fixed")

// Options configures a report.
type Options struct {
	Datafile datafile.Options
	Logger   *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func create(dir, name string, opts Options, columns ...string) (*datafile.File, error) {
	f, err := datafile.Create(dir, name, opts.Datafile)
	if err != nil {
		return nil, err
	}
	if err := f.DeclareColumns(columns...); err != nil {
		f.Close() //nolint:errcheck // already failing
		return nil, err
	}
	return f, nil
}
