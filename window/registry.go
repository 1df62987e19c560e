// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates a new Window with the given options.
type Factory func(opts Options) (Window, error)

// backend is a registered window backend.
type backend struct {
	name     string
	priority int // higher is preferred; interactive 50, off-screen 10
	factory  Factory
	ready    func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered window backends.
//
// Example registration:
//
//	func init() {
//	    window.Register("terminal", 50, newTerminal, isTerminal)
//	}
type Registry struct {
	mu       sync.RWMutex
	backends map[string]*backend
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]*backend),
	}
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// New creates a window using the best available backend.
func New(opts Options) (Window, error) {
	return globalRegistry.New(opts)
}

// NewByName creates a window using a specific named backend.
func NewByName(name string, opts Options) (Window, error) {
	return globalRegistry.NewByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backends == nil {
		r.backends = make(map[string]*backend)
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.backends[name] = &backend{
		name:     name,
		priority: priority,
		factory:  factory,
		ready:    available,
	}
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// New creates a window using the best available backend, trying each in
// priority order until one succeeds.
func (r *Registry) New(opts Options) (Window, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		w, err := r.NewByName(name, opts)
		if err == nil {
			return w, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewByName creates a window using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (Window, error) {
	r.mu.RLock()
	b, ok := r.backends[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !b.ready() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return b.factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	list := make([]*backend, 0, len(r.backends))
	for _, b := range r.backends {
		if onlyAvailable && !b.ready() {
			continue
		}
		list = append(list, b)
	}
	if len(list) == 0 {
		return nil
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority > list[j].priority
		}
		return list[i].name < list[j].name
	})

	names := make([]string, len(list))
	for i, b := range list {
		names[i] = b.name
	}
	return names
}

// ErrNoBackendAvailable is returned when no window backends are registered
// or available on the current system.
var ErrNoBackendAvailable = errors.New("window: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "window: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "window: backend unavailable: " + e.Name
}

// init registers the built-in off-screen backend.
func init() {
	Register("memory", 10, func(opts Options) (Window, error) {
		return NewMemory(opts.Width, opts.Height)
	}, nil)
}
