package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/libpatch/internal/core/domain"
	"github.com/custodia-labs/libpatch/internal/core/ports/driven"
	"github.com/custodia-labs/libpatch/internal/patchers/exportrewrite"
	"github.com/custodia-labs/libpatch/internal/patchers/invocation"
)

// Ensure PatcherRegistry implements the interface.
var _ driven.PatcherRegistry = (*PatcherRegistry)(nil)

// PatcherRegistry maps strategies to patchers.
type PatcherRegistry struct {
	mu       sync.RWMutex
	patchers map[domain.Strategy]driven.Patcher
}

// NewPatcherRegistry creates an empty patcher registry.
func NewPatcherRegistry() *PatcherRegistry {
	return &PatcherRegistry{
		patchers: make(map[domain.Strategy]driven.Patcher),
	}
}

// NewDefaultPatcherRegistry creates a registry with the built-in patchers.
func NewDefaultPatcherRegistry() *PatcherRegistry {
	r := NewPatcherRegistry()
	r.Register(exportrewrite.New())
	r.Register(invocation.New())
	return r
}

// Register adds a patcher, replacing any patcher for the same strategy.
func (r *PatcherRegistry) Register(patcher driven.Patcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patchers[patcher.Strategy()] = patcher
}

// Get returns the patcher for a strategy.
func (r *PatcherRegistry) Get(strategy domain.Strategy) (driven.Patcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patchers[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: no patcher for strategy %q", domain.ErrUnsupportedType, strategy)
	}
	return p, nil
}

// Strategies returns the registered strategies, sorted.
func (r *PatcherRegistry) Strategies() []domain.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategies := make([]domain.Strategy, 0, len(r.patchers))
	for s := range r.patchers {
		strategies = append(strategies, s)
	}
	sort.Slice(strategies, func(i, j int) bool { return strategies[i] < strategies[j] })
	return strategies
}
