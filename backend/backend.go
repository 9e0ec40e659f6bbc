package backend

import (
	"errors"

	"github.com/gogpu/painter"
)

// Backend name constants.
const (
	// BackendMemory is the name of the in-memory backend.
	BackendMemory = "memory"
	// BackendNative is the name of the wgpu HAL upload backend.
	BackendNative = "native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Factory creates a backend whose commands follow hints. A backend may
// lower the capacities it reports from its own limits.
type Factory func(hints painter.PerformanceHints) (painter.Backend, error)
