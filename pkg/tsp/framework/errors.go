package framework

import (
	"errors"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	// ErrEmptyPopulation is returned when the fittest tour of a population
	// without tours is requested.
	ErrEmptyPopulation = errors.New("tsp: population has no tours")

	// ErrInsufficientLocations is returned when there is nothing to visit
	// besides the start.
	ErrInsufficientLocations = errors.New("tsp: no locations to visit besides the start")

	// ErrInsufficientPopulation is returned when the population is too small
	// for the selection strategy to draw two distinct parents.
	ErrInsufficientPopulation = errors.New("tsp: population too small for selection")

	// ErrInvalidParameter matches every *InvalidParameterError via errors.Is.
	ErrInvalidParameter = errors.New("tsp: invalid parameter")

	// ErrParentMismatch is returned when crossover parents are not
	// permutations of the same locations around the same start.
	ErrParentMismatch = errors.New("tsp: crossover parents do not match")
)

// InvalidParameterError carries every invalid field found while validating
// simulation parameters.
type InvalidParameterError struct {
	Errs field.ErrorList
}

func (e *InvalidParameterError) Error() string {
	if agg := e.Errs.ToAggregate(); agg != nil {
		return ErrInvalidParameter.Error() + ": " + agg.Error()
	}
	return ErrInvalidParameter.Error()
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}
