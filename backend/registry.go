package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/painter"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for Default (first available wins).
	backendPriority = []string{BackendNative, BackendMemory}
)

// Register registers a backend factory with the given name.
// This is typically called from init() in backend packages:
//
//	func init() {
//	    backend.Register(backend.BackendMemory, func(h painter.PerformanceHints) (painter.Backend, error) {
//	        return New(h), nil
//	    })
//	}
//
// Register panics if factory is nil or a backend with the same name is
// already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("backend: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open creates the backend registered under name.
// The error includes a hint about forgotten imports.
func Open(name string, hints painter.PerformanceHints) (painter.Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (forgotten import?)", ErrBackendNotAvailable, name)
	}
	b, err := factory(hints)
	if err != nil {
		return nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	return b, nil
}

// Default opens the first backend in priority order that opens without
// error, then any other registered backend.
func Default(hints painter.PerformanceHints) (painter.Backend, error) {
	registryMu.RLock()
	order := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			order = append(order, name)
		}
	}
	for name := range backends {
		if !contains(backendPriority, name) {
			order = append(order, name)
		}
	}
	registryMu.RUnlock()

	for _, name := range order {
		b, err := Open(name, hints)
		if err == nil {
			return b, nil
		}
		painter.Logger().Warn("backend: open failed, trying next", "backend", name, "err", err)
	}
	return nil, ErrBackendNotAvailable
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
