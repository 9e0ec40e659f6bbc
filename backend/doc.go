// Package backend is the registry of painter backends.
//
// Backend packages register themselves on import, following the
// database/sql driver pattern:
//
//	import _ "github.com/gogpu/painter/backend/memory"
//
//	b, err := backend.Open(backend.BackendMemory, painter.DefaultHints())
//
// # Available Backends
//
//   - "memory": keeps submitted frames in memory and runs draw breaks
//   - "native": uploads commands to a wgpu HAL device; the registered
//     factory uses the headless noop device, applications with a real
//     device call native.New
package backend
