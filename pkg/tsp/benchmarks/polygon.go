package benchmarks

import (
	"fmt"
	"math"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

const (
	PolygonName = "RegularPolygon"
)

// RegularPolygon places its vertices on a circle. Walking the vertices in
// order is optimal, so the optimum is the perimeter n * 2r * sin(pi/n).
// Vertex 0 is the start.
type RegularPolygon struct {
	vertices int
	radius   float64
}

var _ framework.Problem = &RegularPolygon{}

// NewRegularPolygon returns a polygon with n vertices, n >= 3, on a circle of
// radius r > 0.
func NewRegularPolygon(n int, r float64) (*RegularPolygon, error) {
	if n < 3 {
		return nil, fmt.Errorf("a polygon needs at least 3 vertices, got %d", n)
	}
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("radius must be a positive number, got %v", r)
	}
	return &RegularPolygon{vertices: n, radius: r}, nil
}

func (p *RegularPolygon) Name() string {
	return fmt.Sprintf("%s%d", PolygonName, p.vertices)
}

func (p *RegularPolygon) Start() framework.Location {
	return p.vertex(0)
}

// Locations lists vertices 1..n-1. They are interleaved rather than in walking
// order, so a population seeded from them is not accidentally sorted.
func (p *RegularPolygon) Locations() []framework.Location {
	locs := make([]framework.Location, 0, p.vertices-1)
	for i := 1; i < p.vertices; i += 2 {
		locs = append(locs, p.vertex(i))
	}
	for i := 2; i < p.vertices; i += 2 {
		locs = append(locs, p.vertex(i))
	}
	return locs
}

func (p *RegularPolygon) KnownOptimum() float64 {
	n := float64(p.vertices)
	return n * 2 * p.radius * math.Sin(math.Pi/n)
}

func (p *RegularPolygon) vertex(i int) framework.Location {
	theta := 2 * math.Pi * float64(i) / float64(p.vertices)
	return framework.Location{
		Name: fmt.Sprintf("v%d", i),
		X:    p.radius * math.Cos(theta),
		Y:    p.radius * math.Sin(theta),
	}
}
