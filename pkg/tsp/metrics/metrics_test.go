package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

func TestObserver(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	o, err := NewObserver(reg)
	require.NoError(t, err)

	start := framework.Location{Name: "A"}
	long := framework.NewTour(start, []framework.Location{{Name: "B", X: 3}})
	short := framework.NewTour(start, []framework.Location{{Name: "B", X: 1}})

	o.OnGeneration(0, long)
	o.OnGeneration(1, short)
	o.OnGeneration(2, long)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.generation))
	assert.Equal(t, 6.0, testutil.ToFloat64(o.fittestDistance))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.bestDistance))

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP tspga_generations_total Number of generations reported, including the initial population.
# TYPE tspga_generations_total counter
tspga_generations_total 3
`), "tspga_generations_total")
	assert.NoError(t, err)
}

func TestNewObserverDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewObserver(reg)
	require.NoError(t, err)

	_, err = NewObserver(reg)
	assert.Error(t, err)
}
