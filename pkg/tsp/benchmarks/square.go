package benchmarks

import (
	"github.com/worldtour/tspga/pkg/tsp/framework"
)

const (
	SquareName = "Square"
)

// Square is the unit square anchored at the origin. Its optimal tour follows
// the perimeter and has length 4; every other tour crosses a diagonal.
type Square struct{}

var _ framework.Problem = Square{}

func NewSquare() Square {
	return Square{}
}

func (Square) Name() string {
	return SquareName
}

func (Square) Start() framework.Location {
	return framework.Location{Name: "A", X: 0, Y: 0}
}

func (Square) Locations() []framework.Location {
	return []framework.Location{
		{Name: "B", X: 1, Y: 0},
		{Name: "C", X: 1, Y: 1},
		{Name: "D", X: 0, Y: 1},
	}
}

func (Square) KnownOptimum() float64 {
	return 4
}
