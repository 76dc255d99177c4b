// Package kernel selects the loop shape used by the large accumulator's
// AddSlice (its AddSqnorm and AddDot always add one value at a time): a
// priority-sorted, CPU-feature-gated registry of
// strategies, scoped to a single axis: how many chunk-array slots the inner
// add loop touches per iteration.
//
// Every registered Strategy is plain Go. None of it claims an assembly
// implementation it doesn't have — the choice affects only how many inputs
// the large accumulator's combined negativity test amortizes over, not the
// arithmetic itself.
package kernel

import (
	"sync"

	"github.com/cwbudde/xsum/internal/cpu"
)

// Strategy is a named loop-shape variant, gated on CPU features, even
// though nothing here is architecture-specific machine code.
type Strategy struct {
	// Name identifies the strategy for diagnostics.
	Name string
	// SIMDLevel is the feature level required to select this strategy.
	SIMDLevel cpu.SIMDLevel
	// Priority breaks ties when multiple strategies are compatible; higher
	// wins.
	Priority int
	// Unroll is the number of large-accumulator chunk slots processed per
	// inner-loop iteration (1 or 2).
	Unroll int
}

type registry struct {
	mu      sync.RWMutex
	entries []Strategy
	sorted  bool
}

// Global is the default strategy registry, populated by this package's
// init functions.
var Global = &registry{}

// Register adds a strategy. Called from init() in generic.go/unrolled.go.
func (r *registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, s)
	r.sorted = false
}

// Select returns the highest-priority strategy compatible with features.
// Always returns a usable strategy: the generic variant registers at
// SIMDNone, which cpu.Supports reports compatible with everything.
func (r *registry) Select(features cpu.Features) Strategy {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.entries {
		if cpu.Supports(features, s.SIMDLevel) {
			return s
		}
	}
	return Strategy{Name: "generic", Unroll: 1}
}

func (r *registry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a priority-sorted copy, for tests.
func (r *registry) ListEntries() []Strategy {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Strategy, len(r.entries))
	copy(out, r.entries)
	return out
}

// Reset clears the registry. Test-only.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.sorted = false
}
