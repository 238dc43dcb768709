package algorithms

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

// ThresholdSelection draws each parent with a running-threshold scan over the
// ranked tours, accumulating Tour.RelativeFitness against the population's
// total distance. The scan keeps the last tour visited while the running sum
// was still at or below a uniform draw in [0,1).
//
// The relative fitness values are not normalized (they sum to n-1), so the
// scan almost always stops within the first few, fittest, tours. The two
// parents of a pair may be the same tour.
type ThresholdSelection struct{}

var _ framework.SelectionStrategy = ThresholdSelection{}

func (ThresholdSelection) Name() string {
	return ThresholdSelectionName
}

func (s ThresholdSelection) SelectParents(rng *rand.Rand, snap *framework.Snapshot) (framework.Tour, framework.Tour, error) {
	if len(snap.Tours) == 0 {
		return framework.Tour{}, framework.Tour{}, framework.ErrEmptyPopulation
	}
	return s.selectOne(rng, snap), s.selectOne(rng, snap), nil
}

func (ThresholdSelection) selectOne(rng *rand.Rand, snap *framework.Snapshot) framework.Tour {
	threshold := rng.Float64()

	var (
		running float64
		result  framework.Tour
	)
	for _, tour := range snap.Tours {
		if running > threshold {
			break
		}
		running += tour.RelativeFitness(snap.TotalDistance)
		result = tour
	}
	return result
}

// RouletteSelection is cumulative-weight roulette wheel selection over the
// snapshot's ranking weights. The first parent's weight is zeroed before the
// second draw, so the two parents of a pair are always different tours.
type RouletteSelection struct{}

var (
	_ framework.SelectionStrategy     = RouletteSelection{}
	_ framework.PopulationRequirement = RouletteSelection{}
)

func (RouletteSelection) Name() string {
	return RouletteSelectionName
}

func (RouletteSelection) MinPopulationSize() int {
	return 2
}

func (RouletteSelection) SelectParents(rng *rand.Rand, snap *framework.Snapshot) (framework.Tour, framework.Tour, error) {
	if len(snap.Tours) < 2 || len(snap.Weights) != len(snap.Tours) {
		return framework.Tour{}, framework.Tour{}, framework.ErrInsufficientPopulation
	}

	weights := slices.Clone(snap.Weights)
	first := spin(rng, weights, -1)

	// Make it impossible to select the same index again
	weights[first] = 0
	second := spin(rng, weights, first)

	return snap.Tours[first], snap.Tours[second], nil
}

// spin returns the first index whose cumulative weight exceeds a uniform draw
// in [0, sum(weights)). When no weight is positive every index but exclude is
// equally likely.
func spin(rng *rand.Rand, weights []float64, exclude int) int {
	sum := floats.Sum(weights)
	if sum <= 0 {
		if exclude < 0 {
			return rng.IntN(len(weights))
		}
		i := rng.IntN(len(weights) - 1)
		if i >= exclude {
			i++
		}
		return i
	}

	target := sum * rng.Float64()
	running := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		running += w
		last = i
		if target < running {
			return i
		}
	}
	// Rounding left the target at the very end of the wheel
	return last
}

// TournamentSelection draws Size tours uniformly at random for each parent and
// keeps the shortest. Size 0 means a binary tournament.
type TournamentSelection struct {
	Size int
}

var _ framework.SelectionStrategy = TournamentSelection{}

func (TournamentSelection) Name() string {
	return TournamentSelectionName
}

func (s TournamentSelection) SelectParents(rng *rand.Rand, snap *framework.Snapshot) (framework.Tour, framework.Tour, error) {
	if len(snap.Tours) == 0 {
		return framework.Tour{}, framework.Tour{}, framework.ErrEmptyPopulation
	}
	return s.tournament(rng, snap.Tours), s.tournament(rng, snap.Tours), nil
}

func (s TournamentSelection) tournament(rng *rand.Rand, tours []framework.Tour) framework.Tour {
	k := s.Size
	if k <= 0 {
		k = 2
	}
	best := tours[rng.IntN(len(tours))]
	for i := 1; i < k; i++ {
		contestant := tours[rng.IntN(len(tours))]
		if contestant.Less(best) {
			best = contestant
		}
	}
	return best
}
