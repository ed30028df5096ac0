package models

import (
	"fmt"
	"sort"
	"sync"
)

// Model is a named structured type that can populate itself from the
// mapping produced by JSON parsing
type Model interface {
	Hydrate(attrs map[string]any) error
}

// Factory returns a fresh zero-valued instance of a model
type Factory func() Model

// Registry maps model names to factories. It is filled once at startup and
// only read while responses are deserialized.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("%w: empty model name", ErrInvalidRegistration)
	}
	if factory == nil {
		return fmt.Errorf("%w: nil factory for %s", ErrInvalidRegistration, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateModel, name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New returns a default instance of the named model
func (r *Registry) New(name string) (Model, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownModelError{Name: name}
	}
	return factory(), nil
}

// Build creates the named model and hydrates it from attrs
func (r *Registry) Build(name string, attrs map[string]any) (Model, error) {
	m, err := r.New(name)
	if err != nil {
		return nil, err
	}
	if err := m.Hydrate(attrs); err != nil {
		return nil, &HydrationError{Name: name, Err: err}
	}
	return m, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

// Names returns the registered model names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
