package framework

import (
	"math/rand/v2"
)

// Problem describes a TSP instance: a start and the locations to visit.
type Problem interface {
	Name() string

	Start() Location
	Locations() []Location

	// KnownOptimum is optional due to the difficulty of finding the optimal tour
	// for most instances. When it isn't known, return 0.
	KnownOptimum() float64
}

// Algorithm describes the contract that a tour search algorithm needs to implement.
type Algorithm interface {
	Name() string
}

// SelectionStrategy picks two parents from a ranked population snapshot.
// Implementations are called concurrently from several goroutines, each with
// its own rng, and must not retain or modify snap.
type SelectionStrategy interface {
	SelectParents(rng *rand.Rand, snap *Snapshot) (Tour, Tour, error)
}

// PopulationRequirement is implemented by selection strategies that cannot
// work below a minimum population size.
type PopulationRequirement interface {
	MinPopulationSize() int
}

// CrossoverStrategy combines two parents into one or more children. Every child
// is a permutation of the same locations as its parents.
type CrossoverStrategy interface {
	Crossover(rng *rand.Rand, first, second Tour) ([]Tour, error)
}

// MutationStrategy perturbs a tour. rate is a percentage in [0,100].
type MutationStrategy interface {
	Mutate(rng *rand.Rand, tour Tour, rate float64) Tour
}

// ProgressObserver receives the fittest tour after every completed generation,
// generation 0 being the initial random population.
type ProgressObserver interface {
	OnGeneration(generation int, fittest Tour)
}

// SelectionFunc adapts a function to SelectionStrategy.
type SelectionFunc func(rng *rand.Rand, snap *Snapshot) (Tour, Tour, error)

func (f SelectionFunc) SelectParents(rng *rand.Rand, snap *Snapshot) (Tour, Tour, error) {
	return f(rng, snap)
}

// CrossoverFunc adapts a function to CrossoverStrategy.
type CrossoverFunc func(rng *rand.Rand, first, second Tour) ([]Tour, error)

func (f CrossoverFunc) Crossover(rng *rand.Rand, first, second Tour) ([]Tour, error) {
	return f(rng, first, second)
}

// MutationFunc adapts a function to MutationStrategy.
type MutationFunc func(rng *rand.Rand, tour Tour, rate float64) Tour

func (f MutationFunc) Mutate(rng *rand.Rand, tour Tour, rate float64) Tour {
	return f(rng, tour, rate)
}

// ObserverFunc adapts a function to ProgressObserver.
type ObserverFunc func(generation int, fittest Tour)

func (f ObserverFunc) OnGeneration(generation int, fittest Tour) {
	f(generation, fittest)
}
