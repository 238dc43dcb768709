package algorithms

import (
	"math/rand/v2"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

// SwapMutation swaps two random stops with probability rate percent.
// Both indices are drawn independently and may coincide.
type SwapMutation struct{}

var _ framework.MutationStrategy = SwapMutation{}

func (SwapMutation) Name() string {
	return SwapMutationName
}

func (SwapMutation) Mutate(rng *rand.Rand, tour framework.Tour, rate float64) framework.Tour {
	n := tour.Len()
	if n == 0 {
		return tour
	}

	// Percentage in [0,100)
	if 100*rng.Float64() >= rate {
		return tour
	}
	i, j := rng.IntN(n), rng.IntN(n)
	return tour.WithSwap(i, j)
}
