// Package population declares the capabilities the statistics reports need
// from a simulation engine. Engines implement these interfaces over their own
// storage; nothing here depends on how individuals are represented.
package population

import "iter"

// Individual is an entity carrying a generation counter.
type Individual interface {
	Generation() int
}

// Population is a collection of individuals evaluated in a shared context.
type Population interface {
	Len() int
	All() iter.Seq[Individual]
	// Fitness evaluates ind in this population's context.
	Fitness(ind Individual) float64
}

// Metapopulation is a collection of sub-populations.
type Metapopulation interface {
	Len() int
	Subpopulations() iter.Seq[Population]
}

// Clock reports the current update of the simulation loop.
type Clock interface {
	CurrentUpdate() int
}

// Source exposes a flat population and the update counter.
type Source interface {
	Clock
	Population() Population
}

// MetaSource exposes a metapopulation and the update counter.
type MetaSource interface {
	Clock
	Metapopulation() Metapopulation
}
