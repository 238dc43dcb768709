package tsp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2/ktesting"
	testingclock "k8s.io/utils/clock/testing"
	"k8s.io/utils/ptr"

	"github.com/worldtour/tspga/apis/config/v1alpha1"
	"github.com/worldtour/tspga/pkg/tsp/framework"
)

func squareSimulation() *v1alpha1.TourSimulation {
	return &v1alpha1.TourSimulation{
		ObjectMeta: metav1.ObjectMeta{Name: "square"},
		Spec: v1alpha1.TourSimulationSpec{
			NumberOfGenerations: ptr.To(100),
			Seed:                ptr.To[uint64](3),
			Locations: []v1alpha1.Location{
				{Name: "A"},
				{Name: "B", X: 1},
				{Name: "C", X: 1, Y: 1},
				{Name: "D", Y: 1},
			},
		},
	}
}

func TestNewRejectsOtherObjects(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	_, err := New(ctx, &v1alpha1.TourSimulationList{})
	assert.ErrorContains(t, err, "TourSimulation")
}

func TestNewValidation(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)

	obj := squareSimulation()
	obj.Spec.MutationRate = ptr.To(150.0)
	_, err := New(ctx, obj)
	assert.ErrorIs(t, err, framework.ErrInvalidParameter)

	only := squareSimulation()
	only.Spec.Locations = only.Spec.Locations[:1]
	_, err = New(ctx, only)
	assert.ErrorIs(t, err, framework.ErrInsufficientLocations)
	assert.ErrorIs(t, err, framework.ErrInvalidParameter)
}

func TestNewLeavesInputAlone(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	obj := squareSimulation()
	sim, err := New(ctx, obj)
	require.NoError(t, err)

	assert.Nil(t, obj.Spec.Start)
	assert.Len(t, obj.Spec.Locations, 4)
	assert.Equal(t, Name, sim.Name())

	got := sim.Object()
	assert.Equal(t, "A", got.Spec.Start.Name)
	assert.Equal(t, v1alpha1.TourSimulationPhasePending, got.Status.Phase)
	assert.Equal(t, sim.Engine().RunID(), got.Status.RunID)
	assert.Equal(t, uint64(3), *got.Status.Seed)
}

func TestRun(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	fake := testingclock.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	sim, err := New(ctx, squareSimulation(), WithClock(fake))
	require.NoError(t, err)

	obj, err := sim.Run(ctx)
	require.NoError(t, err)

	status := obj.Status
	assert.Equal(t, v1alpha1.TourSimulationPhaseSucceeded, status.Phase)
	assert.Equal(t, 100, status.GenerationsCompleted)
	assert.InDelta(t, 4, status.BestDistance, 1e-9)
	require.Len(t, status.Route, 5)
	assert.Equal(t, "A", status.Route[0])
	assert.Equal(t, "A", status.Route[4])
	require.NotNil(t, status.StartTime)
	require.NotNil(t, status.CompletionTime)
	assert.True(t, status.StartTime.Time.Equal(fake.Now()))

	// generation 0 plus every evolved generation
	assert.Equal(t, 101, sim.History().Len())
	best, ok := sim.History().Best()
	require.True(t, ok)
	assert.InDelta(t, status.BestDistance, best.TotalDistance(), 1e-9)

	// running again continues from where the first run stopped
	obj, err = sim.RunGenerations(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 105, obj.Status.GenerationsCompleted)
	assert.Equal(t, 106, sim.History().Len())
}

func TestRunCancelled(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	sim, err := New(ctx, squareSimulation())
	require.NoError(t, err)

	obj, err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, v1alpha1.TourSimulationPhaseCancelled, obj.Status.Phase)
	assert.Equal(t, 0, obj.Status.GenerationsCompleted)
	assert.NotEmpty(t, obj.Status.Message)
	assert.Len(t, obj.Status.Route, 5)
}

func TestRunWithObserver(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	var generations []int
	observer := framework.ObserverFunc(func(generation int, _ framework.Tour) {
		generations = append(generations, generation)
	})

	obj := squareSimulation()
	obj.Spec.NumberOfGenerations = ptr.To(3)
	sim, err := New(ctx, obj, WithObserver(observer))
	require.NoError(t, err)

	_, err = sim.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, generations)
}
