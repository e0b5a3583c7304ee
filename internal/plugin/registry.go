package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a plugin instance with the provided configuration.
type Factory func(Config) (Instance, error)

// Registry maintains plugin factories keyed by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register installs a plugin factory. Returns an error if the ID already exists.
func (r *Registry) Register(id string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if factory == nil {
		return fmt.Errorf("plugin: factory is required for %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("plugin: %s already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// Has reports whether a factory is registered under id. A nil registry has
// no factories.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

// Resolve constructs a plugin by ID.
func (r *Registry) Resolve(id string, cfg Config) (Instance, error) {
	if r == nil {
		return nil, fmt.Errorf("plugin: unknown id %s", id)
	}
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("plugin: unknown id %s", id)
	}
	instance, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("plugin: factory for %s returned nil", id)
	}
	if err := instance.Info().Validate(); err != nil {
		return nil, err
	}
	return instance, nil
}

// IDs returns a sorted list of registered plugin identifiers.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
