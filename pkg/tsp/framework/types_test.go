package framework

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	a = Location{Name: "A", X: 0, Y: 0}
	b = Location{Name: "B", X: 1, Y: 0}
	c = Location{Name: "C", X: 1, Y: 1}
	d = Location{Name: "D", X: 0, Y: 1}
)

func TestDistance(t *testing.T) {
	points := []Location{a, b, c, d, {Name: "E", X: -3.5, Y: 12.25}}
	for _, p := range points {
		assert.Zero(t, Distance(p, p), "distance of %s to itself", p.Name)
		for _, q := range points {
			assert.Equal(t, Distance(p, q), Distance(q, p), "asymmetric %s/%s", p.Name, q.Name)
			assert.GreaterOrEqual(t, Distance(p, q), 0.0)
		}
	}
	assert.InDelta(t, math.Sqrt2, Distance(a, c), 1e-12)
	assert.InDelta(t, 5.0, Distance(Location{X: 0, Y: 0}, Location{X: 3, Y: 4}), 1e-12)
}

func TestTourTotalDistance(t *testing.T) {
	tests := []struct {
		name  string
		stops []Location
		want  float64
	}{
		{name: "no stops", stops: nil, want: 0},
		{name: "single stop", stops: []Location{b}, want: 2},
		{name: "perimeter", stops: []Location{b, c, d}, want: 4},
		{name: "crossing", stops: []Location{b, d, c}, want: 2 + 2*math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := NewTour(a, tt.stops)
			assert.InDelta(t, tt.want, tour.TotalDistance(), 1e-12)
		})
	}
}

func TestTourFitness(t *testing.T) {
	short := NewTour(a, []Location{b, c, d})
	long := NewTour(a, []Location{b, d, c})

	assert.InDelta(t, 0.25, short.Fitness(), 1e-12)
	assert.Greater(t, short.Fitness(), long.Fitness())
	assert.True(t, short.Less(long))
	assert.False(t, long.Less(short))
	assert.False(t, short.Less(short))

	assert.Zero(t, NewTour(a, nil).Fitness())
	assert.Zero(t, NewTour(a, []Location{a}).Fitness())
}

func TestTourRelativeFitness(t *testing.T) {
	tour := NewTour(a, []Location{b, c, d})
	assert.InDelta(t, 0.75, tour.RelativeFitness(16), 1e-12)
	assert.Zero(t, tour.RelativeFitness(0))
}

func TestNewTourCopiesStops(t *testing.T) {
	stops := []Location{b, c, d}
	tour := NewTour(a, stops)
	stops[0] = d

	assert.Equal(t, b, tour.At(0))

	got := tour.Stops()
	got[1] = a
	assert.Equal(t, c, tour.At(1))
}

func TestTourWithSwap(t *testing.T) {
	tour := NewTour(a, []Location{b, c, d})
	swapped := tour.WithSwap(1, 2)

	assert.Equal(t, []Location{b, c, d}, tour.Stops())
	assert.Equal(t, []Location{b, d, c}, swapped.Stops())
	assert.InDelta(t, 4.0, tour.TotalDistance(), 1e-12)
	assert.InDelta(t, 2+2*math.Sqrt2, swapped.TotalDistance(), 1e-12)

	same := tour.WithSwap(0, 0)
	assert.Equal(t, tour.Stops(), same.Stops())
}

func TestTourRoute(t *testing.T) {
	tour := NewTour(a, []Location{b, c})
	assert.Equal(t, []Location{a, b, c, a}, tour.Route())
	assert.Equal(t, []string{"A", "B", "C", "A"}, tour.Names())
	assert.Equal(t, "A -> B -> C -> A", tour.String())
	assert.Equal(t, "A -> A", NewTour(a, nil).String())
}
