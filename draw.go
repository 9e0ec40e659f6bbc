package painter

import "fmt"

// Action is a non-drawing state change executed by a backend between the
// draws of a command, such as a stencil or scissor toggle.
type Action interface {
	Execute()
}

// ActionFunc adapts a function to Action.
type ActionFunc func()

// Execute calls f.
func (f ActionFunc) Execute() { f() }

// DrawBreak is a point in a command's index stream. A backend issues the
// indices before IndexOffset, then runs Action and applies the blend
// change, then continues.
type DrawBreak struct {
	// IndexOffset is the number of indices written before the break.
	IndexOffset int

	// StoreOffset is the number of store words written before the break.
	StoreOffset int

	// Action is run at the break. It may be nil for pure blend changes.
	Action Action

	// BlendChange reports whether draws after the break use Blend.
	BlendChange bool
	Blend       BlendMode
}

// DrawCommand is one batch of GPU-bound data: a word store holding state
// values and headers, an attribute store with a parallel header index per
// attribute, an index store, and the ordered breaks between draws.
//
// Capacities are fixed at creation. Allocations past capacity and writes
// after Close panic.
type DrawCommand struct {
	store         []GenericData
	attributes    []Attribute
	headerIndices []uint32
	indices       []Index

	storeWritten  int
	attribWritten int
	indexWritten  int

	breaks []DrawBreak

	// Blend is the blend mode in effect at the start of the command.
	Blend BlendMode

	closed bool
}

// NewDrawCommand creates a command with the given capacities.
func NewDrawCommand(storeWords, attributes, indices int) *DrawCommand {
	return &DrawCommand{
		store:         make([]GenericData, storeWords),
		attributes:    make([]Attribute, attributes),
		headerIndices: make([]uint32, attributes),
		indices:       make([]Index, indices),
	}
}

// StoreCapacity returns the capacity of the word store.
func (d *DrawCommand) StoreCapacity() int { return len(d.store) }

// AttributeCapacity returns the capacity of the attribute store.
func (d *DrawCommand) AttributeCapacity() int { return len(d.attributes) }

// IndexCapacity returns the capacity of the index store.
func (d *DrawCommand) IndexCapacity() int { return len(d.indices) }

// RemainingStore returns the number of unused store words.
func (d *DrawCommand) RemainingStore() int { return len(d.store) - d.storeWritten }

// RemainingAttributes returns the number of unused attributes.
func (d *DrawCommand) RemainingAttributes() int { return len(d.attributes) - d.attribWritten }

// RemainingIndices returns the number of unused indices.
func (d *DrawCommand) RemainingIndices() int { return len(d.indices) - d.indexWritten }

// WrittenStore returns the number of store words written.
func (d *DrawCommand) WrittenStore() int { return d.storeWritten }

// WrittenAttributes returns the number of attributes written.
func (d *DrawCommand) WrittenAttributes() int { return d.attribWritten }

// WrittenIndices returns the number of indices written.
func (d *DrawCommand) WrittenIndices() int { return d.indexWritten }

// Store returns the written part of the word store.
func (d *DrawCommand) Store() []GenericData { return d.store[:d.storeWritten] }

// Attributes returns the written attributes.
func (d *DrawCommand) Attributes() []Attribute { return d.attributes[:d.attribWritten] }

// HeaderIndices returns the header offset of each written attribute.
func (d *DrawCommand) HeaderIndices() []uint32 { return d.headerIndices[:d.attribWritten] }

// Indices returns the written indices.
func (d *DrawCommand) Indices() []Index { return d.indices[:d.indexWritten] }

// Breaks returns the breaks in the order they were recorded.
func (d *DrawCommand) Breaks() []DrawBreak { return d.breaks }

// Empty reports whether nothing was written or recorded.
func (d *DrawCommand) Empty() bool {
	return d.storeWritten == 0 && d.attribWritten == 0 && d.indexWritten == 0 && len(d.breaks) == 0
}

func (d *DrawCommand) checkOpen(op string) {
	if d.closed {
		panic("painter: DrawCommand." + op + " after Close")
	}
}

// AllocateStore reserves n words of the store and returns their offset and
// the words themselves.
func (d *DrawCommand) AllocateStore(n int) (int, []GenericData) {
	d.checkOpen("AllocateStore")
	if n > d.RemainingStore() {
		panic(fmt.Sprintf("painter: store allocation of %d words exceeds remaining %d", n, d.RemainingStore()))
	}
	off := d.storeWritten
	d.storeWritten += n
	return off, d.store[off:d.storeWritten:d.storeWritten]
}

// AllocateAttributes reserves n attributes and returns their offset, the
// attributes and their header indices.
func (d *DrawCommand) AllocateAttributes(n int) (int, []Attribute, []uint32) {
	d.checkOpen("AllocateAttributes")
	if n > d.RemainingAttributes() {
		panic(fmt.Sprintf("painter: attribute allocation of %d exceeds remaining %d", n, d.RemainingAttributes()))
	}
	off := d.attribWritten
	d.attribWritten += n
	return off, d.attributes[off:d.attribWritten:d.attribWritten], d.headerIndices[off:d.attribWritten:d.attribWritten]
}

// AllocateIndices reserves n indices and returns their offset and the
// indices.
func (d *DrawCommand) AllocateIndices(n int) (int, []Index) {
	d.checkOpen("AllocateIndices")
	if n > d.RemainingIndices() {
		panic(fmt.Sprintf("painter: index allocation of %d exceeds remaining %d", n, d.RemainingIndices()))
	}
	off := d.indexWritten
	d.indexWritten += n
	return off, d.indices[off:d.indexWritten:d.indexWritten]
}

// unallocate returns the tail of the most recent attribute and index
// allocations that a writer did not fill.
func (d *DrawCommand) unallocate(attribs, indices int) {
	d.attribWritten -= attribs
	d.indexWritten -= indices
}

// AddBreak records a break at the current index and store positions.
func (d *DrawCommand) AddBreak(action Action, blendChange bool, blend BlendMode) {
	d.checkOpen("AddBreak")
	d.breaks = append(d.breaks, DrawBreak{
		IndexOffset: d.indexWritten,
		StoreOffset: d.storeWritten,
		Action:      action,
		BlendChange: blendChange,
		Blend:       blend,
	})
}

// Close marks the command complete. Ownership passes to the backend.
func (d *DrawCommand) Close() { d.closed = true }

// Closed reports whether Close was called.
func (d *DrawCommand) Closed() bool { return d.closed }

// Reset clears the command for reuse, keeping its capacities.
func (d *DrawCommand) Reset() {
	clear(d.store[:d.storeWritten])
	d.storeWritten = 0
	d.attribWritten = 0
	d.indexWritten = 0
	clear(d.breaks)
	d.breaks = d.breaks[:0]
	d.Blend = BlendSrcOver
	d.closed = false
}
