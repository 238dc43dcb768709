package algorithms

import (
	"fmt"
	"math/rand/v2"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

// SpliceCrossover produces a single child: the first parent's stops before a
// random split index, followed by the second parent's stops from that index
// onwards (wrapping around), skipping any location already in the child.
type SpliceCrossover struct{}

var _ framework.CrossoverStrategy = SpliceCrossover{}

func (SpliceCrossover) Name() string {
	return SpliceCrossoverName
}

func (SpliceCrossover) Crossover(rng *rand.Rand, first, second framework.Tour) ([]framework.Tour, error) {
	if err := checkParents(first, second); err != nil {
		return nil, err
	}
	n := first.Len()
	if n == 0 {
		return []framework.Tour{first}, nil
	}

	split := rng.IntN(n)
	p1, p2 := first.Stops(), second.Stops()

	child := make([]framework.Location, 0, n)
	seen := make(map[framework.Location]struct{}, n)
	for _, loc := range p1[:split] {
		child = append(child, loc)
		seen[loc] = struct{}{}
	}

	// A full lap over the second parent is enough when both parents hold the
	// same locations
	for step := 0; step < n && len(child) < n; step++ {
		loc := p2[(split+step)%n]
		if _, ok := seen[loc]; ok {
			continue
		}
		child = append(child, loc)
		seen[loc] = struct{}{}
	}
	if len(child) != n {
		return nil, fmt.Errorf("%w: parents visit different locations", framework.ErrParentMismatch)
	}

	return []framework.Tour{framework.NewTour(first.Start(), child)}, nil
}

// TwoPointCrossover produces two children. Each child keeps its own parent's
// stops in a random segment [start,end), is completed in round-robin order
// from end with the other parent's stops it does not hold yet, and is finally
// rotated so the kept segment sits at its original positions.
type TwoPointCrossover struct{}

var _ framework.CrossoverStrategy = TwoPointCrossover{}

func (TwoPointCrossover) Name() string {
	return TwoPointCrossoverName
}

func (TwoPointCrossover) Crossover(rng *rand.Rand, first, second framework.Tour) ([]framework.Tour, error) {
	if err := checkParents(first, second); err != nil {
		return nil, err
	}
	n := first.Len()
	if n == 0 {
		return []framework.Tour{first, second}, nil
	}

	start, end := rng.IntN(n), rng.IntN(n)
	if start > end {
		start, end = end, start
	}
	p1, p2 := first.Stops(), second.Stops()

	child1 := newSegmentChild(p1[start:end], n)
	child2 := newSegmentChild(p2[start:end], n)
	for step := 0; step < n; step++ {
		pos := (end + step) % n
		child1.add(p2[pos])
		child2.add(p1[pos])
	}
	if len(child1.stops) != n || len(child2.stops) != n {
		return nil, fmt.Errorf("%w: parents visit different locations", framework.ErrParentMismatch)
	}

	return []framework.Tour{
		framework.NewTour(first.Start(), rotateRight(child1.stops, start)),
		framework.NewTour(second.Start(), rotateRight(child2.stops, start)),
	}, nil
}

type segmentChild struct {
	stops []framework.Location
	seen  map[framework.Location]struct{}
}

func newSegmentChild(segment []framework.Location, n int) *segmentChild {
	c := &segmentChild{
		stops: make([]framework.Location, 0, n),
		seen:  make(map[framework.Location]struct{}, n),
	}
	for _, loc := range segment {
		c.add(loc)
	}
	return c
}

func (c *segmentChild) add(loc framework.Location) {
	if _, ok := c.seen[loc]; ok {
		return
	}
	c.stops = append(c.stops, loc)
	c.seen[loc] = struct{}{}
}

// rotateRight returns a copy of s cyclically shifted right by k positions.
func rotateRight(s []framework.Location, k int) []framework.Location {
	n := len(s)
	out := make([]framework.Location, n)
	for i, loc := range s {
		out[(i+k)%n] = loc
	}
	return out
}

func checkParents(first, second framework.Tour) error {
	if first.Len() != second.Len() {
		return fmt.Errorf("%w: %d and %d stops", framework.ErrParentMismatch, first.Len(), second.Len())
	}
	if first.Start() != second.Start() {
		return fmt.Errorf("%w: starts %q and %q", framework.ErrParentMismatch, first.Start().Name, second.Start().Name)
	}

	counts := make(map[framework.Location]int, first.Len())
	for i := 0; i < first.Len(); i++ {
		counts[first.At(i)]++
	}
	for i := 0; i < second.Len(); i++ {
		loc := second.At(i)
		if counts[loc] == 0 {
			return fmt.Errorf("%w: %q is not visited by both parents", framework.ErrParentMismatch, loc.Name)
		}
		counts[loc]--
	}
	return nil
}
