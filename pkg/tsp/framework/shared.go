package framework

import (
	"math/rand/v2"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Population is the fixed-size set of tours alive in one generation.
type Population struct {
	tours []Tour
}

// NewPopulation wraps exactly the given tours. No size validation is performed.
func NewPopulation(tours []Tour) *Population {
	return &Population{
		tours: slices.Clone(tours),
	}
}

// NewRandomPopulation creates size tours, each an independent Fisher–Yates
// shuffle of locations, all anchored at start. Tours need not be distinct.
func NewRandomPopulation(rng *rand.Rand, size int, start Location, locations []Location) *Population {
	stops := slices.Clone(locations)
	tours := make([]Tour, 0, size)
	for range size {
		Shuffle(rng, len(stops), func(i, j int) {
			stops[i], stops[j] = stops[j], stops[i]
		})
		tours = append(tours, NewTour(start, stops))
	}
	return &Population{tours: tours}
}

// ReplaceWith sets the population to exactly the given tours.
func (p *Population) ReplaceWith(tours []Tour) {
	p.tours = slices.Clone(tours)
}

func (p *Population) Len() int {
	return len(p.tours)
}

// Tours returns the members in their current order.
func (p *Population) Tours() []Tour {
	return slices.Clone(p.tours)
}

// Fittest returns the tour with the smallest total distance. Ties keep the
// earliest member.
func (p *Population) Fittest() (Tour, error) {
	if len(p.tours) == 0 {
		return Tour{}, ErrEmptyPopulation
	}
	best := p.tours[0]
	for _, t := range p.tours[1:] {
		if t.Less(best) {
			best = t
		}
	}
	return best, nil
}

// TotalDistanceOverAllTours sums the distance of every member.
func (p *Population) TotalDistanceOverAllTours() float64 {
	distances := make([]float64, len(p.tours))
	for i, t := range p.tours {
		distances[i] = t.TotalDistance()
	}
	return floats.Sum(distances)
}

// FitnessRanking sorts the members by decreasing fitness and returns, for each
// position, fitness/meanFitness. The values are selection weights, not
// probabilities: consumers normalize them. If the mean fitness is 0 every
// weight is 0.
func (p *Population) FitnessRanking() []float64 {
	sort.SliceStable(p.tours, func(i, j int) bool {
		return p.tours[i].Fitness() > p.tours[j].Fitness()
	})

	fitness := make([]float64, len(p.tours))
	for i, t := range p.tours {
		fitness[i] = t.Fitness()
	}
	weights := make([]float64, len(p.tours))
	if len(fitness) == 0 {
		return weights
	}
	mean := stat.Mean(fitness, nil)
	if mean == 0 {
		return weights
	}
	for i, f := range fitness {
		weights[i] = f / mean
	}
	return weights
}

// Snapshot ranks the population and freezes the view that selection strategies
// read during one generation. It reorders p.
func (p *Population) Snapshot() *Snapshot {
	weights := p.FitnessRanking()
	return &Snapshot{
		Tours:         slices.Clone(p.tours),
		TotalDistance: p.TotalDistanceOverAllTours(),
		Weights:       weights,
	}
}

// Snapshot is a read-only view of a ranked population. It is shared by every
// child slot of a generation, so strategies must not modify it.
type Snapshot struct {
	// Tours in decreasing order of fitness.
	Tours []Tour
	// TotalDistance is the sum of all tour distances, the normalizer for
	// Tour.RelativeFitness.
	TotalDistance float64
	// Weights holds fitness/meanFitness for the tour at the same index.
	Weights []float64
}
