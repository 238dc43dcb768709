package algorithms

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

type progress struct {
	generation int
	fittest    framework.Tour
}

// notifier delivers progress reports to observers on its own goroutine.
// publish never blocks: reports queue up without bound and are delivered in
// order, so a slow observer delays only itself.
type notifier struct {
	ctx       context.Context
	observers []framework.ProgressObserver

	mu     sync.Mutex
	queue  []progress
	closed bool

	wake chan struct{}
	done chan struct{}
}

func newNotifier(ctx context.Context, observers []framework.ProgressObserver) *notifier {
	n := &notifier{
		ctx:       ctx,
		observers: observers,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *notifier) publish(generation int, fittest framework.Tour) {
	if len(n.observers) == 0 {
		return
	}
	n.mu.Lock()
	n.queue = append(n.queue, progress{generation: generation, fittest: fittest})
	n.mu.Unlock()
	n.signal()
}

// close waits until every published report has been delivered.
func (n *notifier) close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.signal()
	<-n.done
}

func (n *notifier) signal() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

func (n *notifier) run() {
	defer close(n.done)
	for {
		n.mu.Lock()
		batch, closed := n.queue, n.closed
		n.queue = nil
		n.mu.Unlock()

		for _, p := range batch {
			for _, o := range n.observers {
				n.deliver(o, p)
			}
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-n.wake
	}
}

func (n *notifier) deliver(o framework.ProgressObserver, p progress) {
	defer func() {
		if r := recover(); r != nil {
			utilruntime.HandleErrorWithContext(n.ctx, fmt.Errorf("%v", r), "Progress observer panicked", "generation", p.generation)
		}
	}()
	o.OnGeneration(p.generation, p.fittest)
}

// LoggingObserver logs the distance of every generation's fittest tour.
func LoggingObserver(logger logr.Logger) framework.ProgressObserver {
	return framework.ObserverFunc(func(generation int, fittest framework.Tour) {
		logger.Info("Generation complete", "generation", generation, "totalDistance", fittest.TotalDistance())
	})
}
