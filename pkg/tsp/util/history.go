package util

import (
	"sync"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

// Entry is the fittest tour of one generation.
type Entry struct {
	Generation int
	Distance   float64
	Route      []string
}

// History is a ProgressObserver that keeps every generation's fittest tour, in
// the order reported.
type History struct {
	mu      sync.Mutex
	entries []Entry
	best    framework.Tour
	hasBest bool
}

var _ framework.ProgressObserver = &History{}

func NewHistory() *History {
	return &History{}
}

func (h *History) OnGeneration(generation int, fittest framework.Tour) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{
		Generation: generation,
		Distance:   fittest.TotalDistance(),
		Route:      fittest.Names(),
	})
	if !h.hasBest || fittest.Less(h.best) {
		h.best, h.hasBest = fittest, true
	}
}

// Entries returns a copy of everything recorded so far.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Best returns the shortest tour seen in any generation. The boolean is false
// until something has been recorded.
func (h *History) Best() (framework.Tour, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.best, h.hasBest
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
