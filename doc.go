// Package painter packs drawing requests into GPU-ready command buffers.
//
// # Overview
//
// A draw is an item shader, a bundle of state values, attributes, indices
// and a z value. The Packer writes the state values into the word store of
// the open DrawCommand, records their locations in a Header, and appends
// the attributes and indices. Commands come from a Backend, which receives
// them in order on End and Flush.
//
// # Quick Start
//
//	pool := painter.NewPackedValuePool()
//	be := memory.New(painter.DefaultHints())
//	p, err := painter.NewPacker(pool, be)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	reg := painter.NewShaderRegistry()
//	fill := painter.NewItemShader("fill", "")
//	reg.RegisterItemShader(fill)
//
//	brush := painter.Pooled(pool.CreateBrush(painter.SolidBrush(painter.Hex("#3366cc"))))
//
//	p.Begin(surface, true)
//	p.DrawGeneric(fill, &painter.PackerData{Brush: brush},
//		[][]painter.Attribute{quad}, [][]painter.Index{{0, 1, 2, 0, 2, 3}}, nil, 0)
//	if err := p.End(); err != nil {
//		log.Fatal(err)
//	}
//
// # State Values
//
// A state value is a ShaderDataBlock: StrokeParams, DashedStrokeParams,
// Brush, ClipEquations, ItemMatrix or a custom block. Inline values are
// copied when wrapped and packed on every draw. Pooled values are packed
// once and written at most once per command, so draws that share a handle
// share its words.
//
// # Errors
//
// Misuse of the packer, such as drawing outside Begin and End or a draw
// that cannot fit an empty command, panics. Backend failures are returned
// from End and Flush.
//
// # Backends
//
//   - backend/memory: keeps submitted frames in memory
//   - backend/native: uploads commands to a wgpu HAL device
package painter

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
