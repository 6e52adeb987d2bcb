package population

import (
	"iter"
	"slices"
)

// FitnessFunc evaluates an individual.
type FitnessFunc func(ind Individual) float64

// Group is an in-memory Population backed by a slice.
type Group struct {
	Members []Individual
	Eval    FitnessFunc
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.Members)
}

// All yields the members in slice order.
func (g *Group) All() iter.Seq[Individual] {
	return slices.Values(g.Members)
}

// Fitness evaluates ind with the group's fitness function.
func (g *Group) Fitness(ind Individual) float64 {
	return g.Eval(ind)
}

// Islands is an in-memory Metapopulation backed by a slice.
type Islands []Population

// Len returns the number of sub-populations.
func (is Islands) Len() int {
	return len(is)
}

// Subpopulations yields the sub-populations in slice order.
func (is Islands) Subpopulations() iter.Seq[Population] {
	return slices.Values(is)
}
