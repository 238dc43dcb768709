package benchmarks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2/ktesting"

	"github.com/worldtour/tspga/pkg/tsp/algorithms"
	"github.com/worldtour/tspga/pkg/tsp/framework"
)

func TestSquareOptimum(t *testing.T) {
	sq := NewSquare()
	perimeter := framework.NewTour(sq.Start(), sq.Locations())
	assert.InDelta(t, sq.KnownOptimum(), perimeter.TotalDistance(), 1e-12)
	assert.Equal(t, SquareName, sq.Name())
}

func TestRegularPolygon(t *testing.T) {
	for _, n := range []int{3, 4, 6, 9} {
		p, err := NewRegularPolygon(n, 2)
		require.NoError(t, err)

		locs := p.Locations()
		require.Len(t, locs, n-1)

		// walking the vertices in index order is the optimal tour
		ordered := make([]framework.Location, n-1)
		for i := range ordered {
			ordered[i] = p.vertex(i + 1)
		}
		tour := framework.NewTour(p.Start(), ordered)
		assert.InDelta(t, p.KnownOptimum(), tour.TotalDistance(), 1e-9)
		assert.LessOrEqual(t, p.KnownOptimum(), framework.NewTour(p.Start(), locs).TotalDistance()+1e-9)
	}

	sq, err := NewRegularPolygon(4, math.Sqrt2/2)
	require.NoError(t, err)
	assert.InDelta(t, 4, sq.KnownOptimum(), 1e-9)
	assert.Equal(t, "RegularPolygon4", sq.Name())
}

func TestNewRegularPolygonInvalid(t *testing.T) {
	_, err := NewRegularPolygon(2, 1)
	assert.Error(t, err)
	_, err = NewRegularPolygon(5, 0)
	assert.Error(t, err)
	_, err = NewRegularPolygon(5, math.Inf(1))
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	p, err := ByName("square")
	require.NoError(t, err)
	assert.Equal(t, SquareName, p.Name())

	p, err = ByName("polygon:7")
	require.NoError(t, err)
	assert.Len(t, p.Locations(), 6)

	for _, name := range []string{"polygon:x", "polygon:2", "zdt1"} {
		_, err = ByName(name)
		assert.Error(t, err, name)
	}
}

func TestGeneticAlgorithmOnHexagon(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	hexagon, err := NewRegularPolygon(6, 1)
	require.NoError(t, err)

	params := algorithms.DefaultParameters()
	params.NumberOfGenerations = 300
	params.MutationRate = 20

	optimal := 0
	for seed := range uint64(10) {
		ga, err := algorithms.NewGeneticAlgorithm(params, hexagon.Start(), hexagon.Locations(), algorithms.WithSeed(seed))
		require.NoError(t, err)
		fittest, err := ga.Simulate(ctx)
		require.NoError(t, err)

		ratio := fittest.TotalDistance() / hexagon.KnownOptimum()
		assert.LessOrEqual(t, ratio, 1.25, "seed %d", seed)
		if ratio <= 1+1e-9 {
			optimal++
		}
	}
	assert.GreaterOrEqual(t, optimal, 5)
}
