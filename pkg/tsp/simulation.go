package tsp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/worldtour/tspga/apis/config/v1alpha1"
	"github.com/worldtour/tspga/pkg/tsp/algorithms"
	"github.com/worldtour/tspga/pkg/tsp/framework"
	"github.com/worldtour/tspga/pkg/tsp/util"
)

const (
	Name = "TourSimulation"
)

// Simulation runs the genetic algorithm described by a TourSimulation object
// and keeps the object's status in step with the engine.
type Simulation struct {
	engine  *algorithms.GeneticAlgorithm
	history *util.History
	clock   clock.PassiveClock

	mu  sync.Mutex
	obj *v1alpha1.TourSimulation
}

var _ framework.Algorithm = &Simulation{}

type options struct {
	clock     clock.PassiveClock
	observers []framework.ProgressObserver
}

// Option configures a Simulation.
type Option func(*options)

// WithObserver registers an additional progress observer on the engine.
func WithObserver(o framework.ProgressObserver) Option {
	return func(opts *options) {
		opts.observers = append(opts.observers, o)
	}
}

// WithClock sets the clock used for generation timing and status timestamps.
func WithClock(c clock.PassiveClock) Option {
	return func(opts *options) {
		opts.clock = c
	}
}

// New defaults and validates obj, which must be a *v1alpha1.TourSimulation, and
// builds the engine with its initial population. obj is not modified.
func New(ctx context.Context, obj runtime.Object, opts ...Option) (*Simulation, error) {
	logger := klog.FromContext(ctx)
	logger.V(5).Info("Creating simulation")

	in, ok := obj.(*v1alpha1.TourSimulation)
	if !ok {
		return nil, fmt.Errorf("want object to be of type TourSimulation, got %T", obj)
	}
	sim := in.DeepCopy()
	v1alpha1.SetDefaults_TourSimulation(sim)

	if errs := v1alpha1.ValidateTourSimulation(sim); len(errs) > 0 {
		err := &framework.InvalidParameterError{Errs: errs}
		if v1alpha1.IsMissingLocations(errs) {
			return nil, fmt.Errorf("%w: %w", framework.ErrInsufficientLocations, err)
		}
		return nil, err
	}

	o := options{clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	params, err := parametersFor(&sim.Spec)
	if err != nil {
		return nil, err
	}

	history := util.NewHistory()
	engineOpts := []algorithms.Option{
		algorithms.WithClock(o.clock),
		algorithms.WithObserver(history),
	}
	for _, observer := range o.observers {
		engineOpts = append(engineOpts, algorithms.WithObserver(observer))
	}
	if sim.Spec.Seed != nil {
		engineOpts = append(engineOpts, algorithms.WithSeed(*sim.Spec.Seed))
	}

	engine, err := algorithms.NewGeneticAlgorithm(params, toLocation(*sim.Spec.Start), toLocations(sim.Spec.Locations), engineOpts...)
	if err != nil {
		return nil, err
	}

	seed := engine.Seed()
	sim.Status.RunID = engine.RunID()
	sim.Status.Seed = &seed
	logger.V(5).Info("Simulation created", "name", sim.Name, "run", engine.RunID(), "locations", len(sim.Spec.Locations))

	return &Simulation{
		engine:  engine,
		history: history,
		clock:   o.clock,
		obj:     sim,
	}, nil
}

func parametersFor(spec *v1alpha1.TourSimulationSpec) (algorithms.Parameters, error) {
	selection, err := algorithms.SelectionByName(spec.Selection)
	if err != nil {
		return algorithms.Parameters{}, err
	}
	crossover, err := algorithms.CrossoverByName(spec.Crossover)
	if err != nil {
		return algorithms.Parameters{}, err
	}
	mutation, err := algorithms.MutationByName(spec.Mutation)
	if err != nil {
		return algorithms.Parameters{}, err
	}
	return algorithms.Parameters{
		PopulationSize:      spec.PopulationSize,
		NumberOfGenerations: *spec.NumberOfGenerations,
		MutationRate:        *spec.MutationRate,
		Selection:           selection,
		Crossover:           crossover,
		Mutation:            mutation,
		Workers:             spec.Workers,
	}, nil
}

func toLocation(l v1alpha1.Location) framework.Location {
	return framework.Location{Name: l.Name, X: l.X, Y: l.Y}
}

func toLocations(locs []v1alpha1.Location) []framework.Location {
	out := make([]framework.Location, len(locs))
	for i, l := range locs {
		out[i] = toLocation(l)
	}
	return out
}

func (s *Simulation) Name() string {
	return Name
}

// Engine exposes the underlying genetic algorithm.
func (s *Simulation) Engine() *algorithms.GeneticAlgorithm {
	return s.engine
}

// History holds the fittest tour of every generation reported so far.
func (s *Simulation) History() *util.History {
	return s.history
}

// Object returns a copy of the TourSimulation with its current status.
func (s *Simulation) Object() *v1alpha1.TourSimulation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obj.DeepCopy()
}

// Run evolves spec.numberOfGenerations generations.
func (s *Simulation) Run(ctx context.Context) (*v1alpha1.TourSimulation, error) {
	return s.RunGenerations(ctx, s.engine.Parameters().NumberOfGenerations)
}

// RunGenerations evolves n more generations and returns the object with its
// status updated. A cancelled context ends the run in the Cancelled phase and
// returns the context's error; any other error ends it as Failed.
func (s *Simulation) RunGenerations(ctx context.Context, n int) (*v1alpha1.TourSimulation, error) {
	logger := klog.FromContext(ctx).WithValues("simulation", klog.KObj(s.obj))
	ctx = klog.NewContext(ctx, logger)

	s.mu.Lock()
	s.obj.Status.Phase = v1alpha1.TourSimulationPhaseRunning
	s.obj.Status.Message = ""
	s.obj.Status.CompletionTime = nil
	if s.obj.Status.StartTime == nil {
		now := metav1.NewTime(s.clock.Now())
		s.obj.Status.StartTime = &now
	}
	s.mu.Unlock()

	_, err := s.engine.SimulateNGenerations(ctx, n)

	s.mu.Lock()
	defer s.mu.Unlock()
	status := &s.obj.Status
	now := metav1.NewTime(s.clock.Now())
	status.CompletionTime = &now
	status.GenerationsCompleted = s.engine.Generation()
	if fittest, ferr := s.engine.Fittest(); ferr == nil {
		status.BestDistance = fittest.TotalDistance()
		status.Route = fittest.Names()
	}

	switch {
	case err == nil:
		status.Phase = v1alpha1.TourSimulationPhaseSucceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status.Phase = v1alpha1.TourSimulationPhaseCancelled
		status.Message = err.Error()
	default:
		status.Phase = v1alpha1.TourSimulationPhaseFailed
		status.Message = err.Error()
		logger.Error(err, "Simulation failed", "generation", status.GenerationsCompleted)
	}
	return s.obj.DeepCopy(), err
}
