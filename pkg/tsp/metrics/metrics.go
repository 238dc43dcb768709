package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

const namespace = "tspga"

// Observer exports simulation progress as Prometheus metrics.
type Observer struct {
	generation      prometheus.Gauge
	fittestDistance prometheus.Gauge
	bestDistance    prometheus.Gauge
	generations     prometheus.Counter

	mu      sync.Mutex
	best    float64
	hasBest bool
}

var _ framework.ProgressObserver = &Observer{}

// NewObserver creates the metrics and registers them with reg.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation",
			Help:      "Last generation reported by the running simulation.",
		}),
		fittestDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fittest_distance",
			Help:      "Total distance of the fittest tour of the last generation.",
		}),
		bestDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_distance",
			Help:      "Shortest total distance reported in any generation.",
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Number of generations reported, including the initial population.",
		}),
	}
	for _, c := range []prometheus.Collector{o.generation, o.fittestDistance, o.bestDistance, o.generations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) OnGeneration(generation int, fittest framework.Tour) {
	d := fittest.TotalDistance()
	o.generation.Set(float64(generation))
	o.fittestDistance.Set(d)
	o.generations.Inc()

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.hasBest || d < o.best {
		o.best, o.hasBest = d, true
		o.bestDistance.Set(d)
	}
}
