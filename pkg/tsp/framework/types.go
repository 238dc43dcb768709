package framework

import (
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Location is a named point on the plane. Latitude/longitude pairs are treated
// as planar coordinates; no geodesic correction is applied.
type Location struct {
	Name string
	X    float64
	Y    float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Location) float64 {
	return r2.Norm(r2.Sub(r2.Vec{X: a.X, Y: a.Y}, r2.Vec{X: b.X, Y: b.Y}))
}

// Tour is one candidate route: a fixed start followed by every other location
// exactly once, closing back at the start.
// A Tour is immutable; every operation that changes the order returns a new value.
type Tour struct {
	start Location
	stops []Location

	// distance is computed once at construction since the stops never change.
	distance float64
}

// NewTour creates a Tour visiting stops in order. The slice is copied.
func NewTour(start Location, stops []Location) Tour {
	t := Tour{
		start: start,
		stops: slices.Clone(stops),
	}
	t.distance = closedDistance(t.start, t.stops)
	return t
}

func closedDistance(start Location, stops []Location) float64 {
	if len(stops) == 0 {
		return 0
	}

	// Account for the leg out of the start and the return trip
	distance := Distance(start, stops[0])
	for i := 0; i < len(stops)-1; i++ {
		distance += Distance(stops[i], stops[i+1])
	}
	return distance + Distance(stops[len(stops)-1], start)
}

func (t Tour) Start() Location {
	return t.start
}

// Stops returns a copy of the visiting order, excluding the start.
func (t Tour) Stops() []Location {
	return slices.Clone(t.stops)
}

// Len is the number of stops, excluding the start.
func (t Tour) Len() int {
	return len(t.stops)
}

// At returns the i-th stop.
func (t Tour) At(i int) Location {
	return t.stops[i]
}

// Route returns the full closed loop: start, every stop, start.
func (t Tour) Route() []Location {
	route := make([]Location, 0, len(t.stops)+2)
	route = append(route, t.start)
	route = append(route, t.stops...)
	return append(route, t.start)
}

// TotalDistance is the length of the closed loop anchored at the start.
// A tour without stops has zero distance.
func (t Tour) TotalDistance() float64 {
	return t.distance
}

// Fitness grows as the total distance shrinks. A zero-length tour has fitness 0.
func (t Tour) Fitness() float64 {
	if t.distance == 0 {
		return 0
	}
	return 1 / t.distance
}

// RelativeFitness scores the tour against the summed distance of its population:
// 1 - distance/populationTotalDistance. A population with zero total distance
// yields 0 instead of dividing by zero.
func (t Tour) RelativeFitness(populationTotalDistance float64) float64 {
	if populationTotalDistance == 0 {
		return 0
	}
	return 1 - t.distance/populationTotalDistance
}

// Less reports whether t is a strictly shorter tour than other.
func (t Tour) Less(other Tour) bool {
	return t.distance < other.distance
}

// WithSwap returns a copy of t with the stops at i and j exchanged.
func (t Tour) WithSwap(i, j int) Tour {
	stops := slices.Clone(t.stops)
	stops[i], stops[j] = stops[j], stops[i]
	return Tour{
		start:    t.start,
		stops:    stops,
		distance: closedDistance(t.start, stops),
	}
}

// Names lists the location names along Route.
func (t Tour) Names() []string {
	route := t.Route()
	names := make([]string, len(route))
	for i, loc := range route {
		names[i] = loc.Name
	}
	return names
}

func (t Tour) String() string {
	return strings.Join(t.Names(), " -> ")
}
