package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

const (
	Name = "GeneticAlgorithm"

	// slowGeneration is the duration above which a generation is logged at a
	// lower verbosity.
	slowGeneration = time.Second
)

// Parameters configures a GeneticAlgorithm.
type Parameters struct {
	PopulationSize      int
	NumberOfGenerations int
	// MutationRate is a percentage: 1.5 means a 1.5% chance per child.
	MutationRate float64

	Selection framework.SelectionStrategy
	Crossover framework.CrossoverStrategy
	Mutation  framework.MutationStrategy

	// Workers bounds the goroutines building children in one generation.
	// 0 means runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultParameters returns a configuration that works for a few dozen locations.
func DefaultParameters() Parameters {
	return Parameters{
		PopulationSize:      50,
		NumberOfGenerations: 200,
		MutationRate:        1.5,
		Selection:           ThresholdSelection{},
		Crossover:           SpliceCrossover{},
		Mutation:            SwapMutation{},
	}
}

// Validate reports every invalid field at once as an *InvalidParameterError,
// or ErrInsufficientPopulation when the selection strategy needs more tours.
func (p Parameters) Validate() error {
	var errs field.ErrorList
	if p.PopulationSize <= 0 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), p.PopulationSize, "must be greater than zero"))
	}
	if p.NumberOfGenerations < 0 {
		errs = append(errs, field.Invalid(field.NewPath("numberOfGenerations"), p.NumberOfGenerations, "must not be negative"))
	}
	if math.IsNaN(p.MutationRate) || p.MutationRate < 0 || p.MutationRate > 100 {
		errs = append(errs, field.Invalid(field.NewPath("mutationRate"), p.MutationRate, "must be a percentage in [0,100]"))
	}
	if p.Selection == nil {
		errs = append(errs, field.Required(field.NewPath("selection"), "a selection strategy is required"))
	}
	if p.Crossover == nil {
		errs = append(errs, field.Required(field.NewPath("crossover"), "a crossover strategy is required"))
	}
	if p.Mutation == nil {
		errs = append(errs, field.Required(field.NewPath("mutation"), "a mutation strategy is required"))
	}
	if p.Workers < 0 {
		errs = append(errs, field.Invalid(field.NewPath("workers"), p.Workers, "must not be negative"))
	}
	if len(errs) > 0 {
		return &framework.InvalidParameterError{Errs: errs}
	}

	if req, ok := p.Selection.(framework.PopulationRequirement); ok && p.PopulationSize < req.MinPopulationSize() {
		return fmt.Errorf("%w: %d tours, selection needs at least %d", framework.ErrInsufficientPopulation, p.PopulationSize, req.MinPopulationSize())
	}
	return nil
}

// Result is the outcome of an asynchronous run.
type Result struct {
	Fittest     framework.Tour
	Generations int
	Err         error
}

// GeneticAlgorithm evolves a population of tours, replacing it wholesale every
// generation.
type GeneticAlgorithm struct {
	params Parameters
	start  framework.Location
	stops  []framework.Location

	runID     string
	seed      uint64
	rng       *rand.Rand
	clock     clock.PassiveClock
	logger    *klog.Logger
	observers []framework.ProgressObserver

	// runMu serializes runs; rng is only touched while it is held.
	runMu           sync.Mutex
	reportedInitial bool

	// mu guards the current population, swapped once per generation.
	mu         sync.RWMutex
	population *framework.Population
	generation int
}

var _ framework.Algorithm = &GeneticAlgorithm{}

// Option configures a GeneticAlgorithm.
type Option func(*GeneticAlgorithm)

// WithSeed makes the run reproducible: identical parameters, locations and
// seed report identical generations regardless of Workers.
func WithSeed(seed uint64) Option {
	return func(ga *GeneticAlgorithm) {
		ga.seed = seed
	}
}

// WithObserver registers an observer notified after every generation.
func WithObserver(o framework.ProgressObserver) Option {
	return func(ga *GeneticAlgorithm) {
		ga.observers = append(ga.observers, o)
	}
}

// WithLogger overrides the logger taken from the run context.
func WithLogger(logger klog.Logger) Option {
	return func(ga *GeneticAlgorithm) {
		ga.logger = &logger
	}
}

// WithClock sets the clock used to time generations.
func WithClock(c clock.PassiveClock) Option {
	return func(ga *GeneticAlgorithm) {
		ga.clock = c
	}
}

// NewGeneticAlgorithm validates params and creates the random initial
// population (generation 0). Fewer than two locations is not an error: the
// tours are trivial and the run stays stable.
func NewGeneticAlgorithm(params Parameters, start framework.Location, locations []framework.Location, opts ...Option) (*GeneticAlgorithm, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Workers == 0 {
		params.Workers = runtime.GOMAXPROCS(0)
	}

	ga := &GeneticAlgorithm{
		params: params,
		start:  start,
		stops:  append([]framework.Location(nil), locations...),
		runID:  uuid.NewString(),
		seed:   rand.Uint64(),
		clock:  clock.RealClock{},
	}
	for _, opt := range opts {
		opt(ga)
	}

	ga.rng = framework.NewRand(ga.seed, 0)
	ga.population = framework.NewRandomPopulation(ga.rng, params.PopulationSize, start, ga.stops)
	return ga, nil
}

func (ga *GeneticAlgorithm) Name() string {
	return Name
}

// RunID identifies this instance in logs.
func (ga *GeneticAlgorithm) RunID() string {
	return ga.runID
}

// Seed returns the seed the instance was created with.
func (ga *GeneticAlgorithm) Seed() uint64 {
	return ga.seed
}

func (ga *GeneticAlgorithm) Parameters() Parameters {
	return ga.params
}

// Generation is the number of generations evolved so far.
func (ga *GeneticAlgorithm) Generation() int {
	ga.mu.RLock()
	defer ga.mu.RUnlock()
	return ga.generation
}

// Population returns a copy of the current population.
func (ga *GeneticAlgorithm) Population() *framework.Population {
	ga.mu.RLock()
	defer ga.mu.RUnlock()
	return framework.NewPopulation(ga.population.Tours())
}

// Fittest returns the shortest tour of the current population.
func (ga *GeneticAlgorithm) Fittest() (framework.Tour, error) {
	ga.mu.RLock()
	defer ga.mu.RUnlock()
	return ga.population.Fittest()
}

// DistanceForBestTour is the total distance of the current fittest tour.
func (ga *GeneticAlgorithm) DistanceForBestTour() (float64, error) {
	fittest, err := ga.Fittest()
	if err != nil {
		return 0, err
	}
	return fittest.TotalDistance(), nil
}

// Simulate evolves Parameters.NumberOfGenerations generations.
func (ga *GeneticAlgorithm) Simulate(ctx context.Context) (framework.Tour, error) {
	return ga.SimulateNGenerations(ctx, ga.params.NumberOfGenerations)
}

// SimulateAsync runs Simulate on its own goroutine. The channel receives one
// Result and is then closed.
func (ga *GeneticAlgorithm) SimulateAsync(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		fittest, err := ga.Simulate(ctx)
		ch <- Result{Fittest: fittest, Generations: ga.Generation(), Err: err}
	}()
	return ch
}

// Step evolves a single generation.
func (ga *GeneticAlgorithm) Step(ctx context.Context) error {
	_, err := ga.SimulateNGenerations(ctx, 1)
	return err
}

// SimulateNGenerations evolves n more generations and returns the fittest tour
// of the final population. The context is checked before every generation; once
// it is done the fittest tour of the current population is returned along with
// the context's error. Observers have received every report by the time this
// returns.
func (ga *GeneticAlgorithm) SimulateNGenerations(ctx context.Context, n int) (framework.Tour, error) {
	if n < 0 {
		return framework.Tour{}, &framework.InvalidParameterError{Errs: field.ErrorList{
			field.Invalid(field.NewPath("generations"), n, "must not be negative"),
		}}
	}

	ga.runMu.Lock()
	defer ga.runMu.Unlock()

	logger := ga.loggerFor(ctx)
	ctx = klog.NewContext(ctx, logger)
	logger.V(2).Info("Starting simulation", "generations", n, "populationSize", ga.params.PopulationSize,
		"locations", len(ga.stops), "mutationRate", ga.params.MutationRate, "seed", ga.seed)

	notify := newNotifier(ctx, ga.observers)
	defer notify.close()

	if !ga.reportedInitial {
		ga.report(notify, logger)
		ga.reportedInitial = true
	}

	started := ga.clock.Now()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			logger.V(1).Info("Simulation cancelled", "generation", ga.Generation(), "err", err)
			fittest, ferr := ga.Fittest()
			return fittest, errors.Join(err, ferr)
		}
		if err := ga.evolve(logger); err != nil {
			return framework.Tour{}, err
		}
		ga.report(notify, logger)
	}

	fittest, err := ga.Fittest()
	if err != nil {
		return framework.Tour{}, err
	}
	logger.V(1).Info("Simulation finished", "generation", ga.Generation(), "totalDistance", fittest.TotalDistance(),
		"elapsed", ga.clock.Since(started))
	return fittest, nil
}

func (ga *GeneticAlgorithm) loggerFor(ctx context.Context) klog.Logger {
	logger := klog.FromContext(ctx)
	if ga.logger != nil {
		logger = *ga.logger
	}
	return logger.WithValues("run", ga.runID)
}

func (ga *GeneticAlgorithm) report(notify *notifier, logger klog.Logger) {
	ga.mu.RLock()
	generation := ga.generation
	fittest, err := ga.population.Fittest()
	ga.mu.RUnlock()
	if err != nil {
		logger.Error(err, "Cannot report generation", "generation", generation)
		return
	}
	notify.publish(generation, fittest)
}

// evolve replaces the population with a generation of children. Every child
// slot owns a generator derived from the generation seed and its index, so the
// outcome does not depend on how slots are scheduled onto workers.
func (ga *GeneticAlgorithm) evolve(logger klog.Logger) error {
	started := ga.clock.Now()

	// Ranking reorders the population, so take the snapshot under the write lock.
	ga.mu.Lock()
	snap := ga.population.Snapshot()
	generation := ga.generation + 1
	ga.mu.Unlock()

	seed := ga.rng.Uint64()
	children := make([]framework.Tour, ga.params.PopulationSize)

	var g errgroup.Group
	g.SetLimit(ga.params.Workers)
	for slot := range children {
		g.Go(func() error {
			child, err := ga.breed(framework.NewRand(seed, uint64(slot)), snap)
			if err != nil {
				return fmt.Errorf("generation %d, child %d: %w", generation, slot, err)
			}
			children[slot] = child
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	next := framework.NewPopulation(children)
	ga.mu.Lock()
	ga.population = next
	ga.generation = generation
	ga.mu.Unlock()

	elapsed := ga.clock.Since(started)
	if elapsed > slowGeneration {
		logger.V(2).Info("Slow generation", "generation", generation, "elapsed", elapsed)
	}
	logger.V(4).Info("Generation evolved", "generation", generation, "elapsed", elapsed)
	return nil
}

// breed selects two parents, crosses them into a child and mutates it.
func (ga *GeneticAlgorithm) breed(rng *rand.Rand, snap *framework.Snapshot) (framework.Tour, error) {
	first, second, err := ga.params.Selection.SelectParents(rng, snap)
	if err != nil {
		return framework.Tour{}, fmt.Errorf("selection: %w", err)
	}

	children, err := ga.params.Crossover.Crossover(rng, first, second)
	if err != nil {
		return framework.Tour{}, fmt.Errorf("crossover: %w", err)
	}
	if len(children) == 0 {
		return framework.Tour{}, errors.New("crossover produced no children")
	}

	// Only one child per slot is kept
	return ga.params.Mutation.Mutate(rng, children[0], ga.params.MutationRate), nil
}
