package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
)

// Ensure AdapterRegistry implements the interface.
var _ driven.AdapterRegistry = (*AdapterRegistry)(nil)

// AdapterRegistry maps county keys to adapter factories. The orchestration
// and refinement layers know nothing county-specific: adding a county is a
// single Register call in the wiring code.
type AdapterRegistry struct {
	mu        sync.RWMutex
	factories map[string]driven.AdapterFactory
	order     []string
}

// NewAdapterRegistry creates an empty registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{
		factories: make(map[string]driven.AdapterFactory),
	}
}

// Register adds a county adapter factory under its key. Keys are
// normalised to lower case. Re-registering a key replaces the factory but
// keeps its original position in the resolution order.
func (r *AdapterRegistry) Register(key string, factory driven.AdapterFactory) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || factory == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[key]; !exists {
		r.order = append(r.order, key)
	}
	r.factories[key] = factory
}

// Resolve returns adapter instances for the selection. An empty county
// selects all registered adapters in registration order, which keeps the
// "now searching X" progress sequence deterministic.
func (r *AdapterRegistry) Resolve(county string) ([]driven.CountyAdapter, error) {
	county = strings.ToLower(strings.TrimSpace(county))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if county != "" {
		factory, ok := r.factories[county]
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)",
				domain.ErrUnsupportedCounty, county, strings.Join(r.order, ", "))
		}
		return []driven.CountyAdapter{factory()}, nil
	}

	adapters := make([]driven.CountyAdapter, 0, len(r.order))
	for _, key := range r.order {
		adapters = append(adapters, r.factories[key]())
	}
	return adapters, nil
}

// Counties returns the registered county keys in registration order.
func (r *AdapterRegistry) Counties() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}
