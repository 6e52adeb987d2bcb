// Package sim is a small OneMax evolutionary algorithm used to drive the
// statistics reports from the command line. It supports a single population
// or an island model with a fixed number of sub-populations.
package sim

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/benwilkes9/ealog/internal/population"
)

// Params configures an Engine.
type Params struct {
	PopulationSize int
	// Islands is the number of sub-populations; 0 runs a single population.
	Islands        int
	GenomeLength   int
	MutationRate   float64
	TournamentSize int
	Seed           uint64
}

func (p Params) validate() error {
	switch {
	case p.PopulationSize <= 0:
		return errors.New("population size must be positive")
	case p.Islands < 0:
		return errors.New("island count must be non-negative")
	case p.GenomeLength <= 0:
		return errors.New("genome length must be positive")
	case p.MutationRate < 0 || p.MutationRate > 1:
		return errors.New("mutation rate must be in [0, 1]")
	case p.TournamentSize <= 0:
		return errors.New("tournament size must be positive")
	}
	return nil
}

// Individual is a bit-string genome and the number of generations in its lineage.
type Individual struct {
	Genome []bool
	Gen    int
}

// Generation implements population.Individual.
func (ind *Individual) Generation() int {
	return ind.Gen
}

// Ones counts the set bits of the genome.
func (ind *Individual) Ones() int {
	n := 0
	for _, b := range ind.Genome {
		if b {
			n++
		}
	}
	return n
}

// Island is one sub-population with its own random source.
type Island struct {
	members []*Individual
	rng     *rand.Rand
}

// Len implements population.Population.
func (is *Island) Len() int {
	return len(is.members)
}

// All implements population.Population.
func (is *Island) All() iter.Seq[population.Individual] {
	return func(yield func(population.Individual) bool) {
		for _, m := range is.members {
			if !yield(m) {
				return
			}
		}
	}
}

// Fitness is the fraction of set bits. Individuals from another engine
// evaluate to NaN.
func (is *Island) Fitness(ind population.Individual) float64 {
	x, ok := ind.(*Individual)
	if !ok || len(x.Genome) == 0 {
		return math.NaN()
	}
	return float64(x.Ones()) / float64(len(x.Genome))
}

func (is *Island) best() float64 {
	best := math.Inf(-1)
	for _, m := range is.members {
		best = max(best, is.Fitness(m))
	}
	return best
}

func (is *Island) tournament(k int) *Individual {
	winner := is.members[is.rng.IntN(len(is.members))]
	for range k - 1 {
		c := is.members[is.rng.IntN(len(is.members))]
		if is.Fitness(c) > is.Fitness(winner) {
			winner = c
		}
	}
	return winner
}

// step replaces the island with offspring of tournament winners. The fittest
// member survives unchanged.
func (is *Island) step(p Params) {
	next := make([]*Individual, 0, len(is.members))

	elite := is.members[0]
	for _, m := range is.members[1:] {
		if is.Fitness(m) > is.Fitness(elite) {
			elite = m
		}
	}
	next = append(next, elite)

	for len(next) < len(is.members) {
		parent := is.tournament(p.TournamentSize)
		child := &Individual{Genome: make([]bool, len(parent.Genome)), Gen: parent.Gen + 1}
		for i, b := range parent.Genome {
			if is.rng.Float64() < p.MutationRate {
				b = !b
			}
			child.Genome[i] = b
		}
		next = append(next, child)
	}
	is.members = next
}

// Engine runs the islands one update at a time. Step runs islands
// concurrently; every other method must be called from the loop goroutine.
type Engine struct {
	params  Params
	islands []*Island
	update  int
}

// New seeds a random initial population.
func New(p Params) (*Engine, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation params: %w", err)
	}

	n := max(p.Islands, 1)
	e := &Engine{params: p, islands: make([]*Island, n)}
	for i := range n {
		rng := rand.New(rand.NewPCG(p.Seed, uint64(i))) //nolint:gosec // simulation, not crypto
		is := &Island{rng: rng, members: make([]*Individual, p.PopulationSize)}
		for j := range is.members {
			g := make([]bool, p.GenomeLength)
			for k := range g {
				g[k] = rng.IntN(2) == 1
			}
			is.members[j] = &Individual{Genome: g}
		}
		e.islands[i] = is
	}
	return e, nil
}

// CurrentUpdate implements population.Clock.
func (e *Engine) CurrentUpdate() int {
	return e.update
}

// Advance moves to the next update.
func (e *Engine) Advance() {
	e.update++
}

// Step produces the next generation on every island.
func (e *Engine) Step(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, is := range e.islands {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			is.step(e.params)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("stepping islands: %w", err)
	}
	return nil
}

// Population returns the first island. With Islands == 0 it is the only one.
func (e *Engine) Population() population.Population {
	return e.islands[0]
}

// Metapopulation returns every island.
func (e *Engine) Metapopulation() population.Metapopulation {
	meta := make(population.Islands, len(e.islands))
	for i, is := range e.islands {
		meta[i] = is
	}
	return meta
}

// BestFitness is the highest fitness across all islands.
func (e *Engine) BestFitness() float64 {
	best := math.Inf(-1)
	for _, is := range e.islands {
		best = max(best, is.best())
	}
	return best
}
