package algorithms

import (
	"fmt"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

const (
	ThresholdSelectionName  = "threshold"
	RouletteSelectionName   = "roulette"
	TournamentSelectionName = "tournament"

	SpliceCrossoverName   = "splice"
	TwoPointCrossoverName = "two-point"

	SwapMutationName = "swap"
)

var (
	SelectionNames = []string{ThresholdSelectionName, RouletteSelectionName, TournamentSelectionName}
	CrossoverNames = []string{SpliceCrossoverName, TwoPointCrossoverName}
	MutationNames  = []string{SwapMutationName}
)

// SelectionByName returns the built-in selection strategy registered as name.
func SelectionByName(name string) (framework.SelectionStrategy, error) {
	switch name {
	case ThresholdSelectionName:
		return ThresholdSelection{}, nil
	case RouletteSelectionName:
		return RouletteSelection{}, nil
	case TournamentSelectionName:
		return TournamentSelection{}, nil
	}
	return nil, fmt.Errorf("unknown selection strategy %q, want one of %v", name, SelectionNames)
}

// CrossoverByName returns the built-in crossover strategy registered as name.
func CrossoverByName(name string) (framework.CrossoverStrategy, error) {
	switch name {
	case SpliceCrossoverName:
		return SpliceCrossover{}, nil
	case TwoPointCrossoverName:
		return TwoPointCrossover{}, nil
	}
	return nil, fmt.Errorf("unknown crossover strategy %q, want one of %v", name, CrossoverNames)
}

// MutationByName returns the built-in mutation strategy registered as name.
func MutationByName(name string) (framework.MutationStrategy, error) {
	if name == SwapMutationName {
		return SwapMutation{}, nil
	}
	return nil, fmt.Errorf("unknown mutation strategy %q, want one of %v", name, MutationNames)
}
