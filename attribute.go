package painter

// Attribute is one vertex of an item: three 4-word vectors whose meaning
// is defined by the item shader.
type Attribute struct {
	Attrib0 [4]GenericData
	Attrib1 [4]GenericData
	Attrib2 [4]GenericData
}

// AttributeSize is the size of an Attribute in bytes.
const AttributeSize = 48

// Index is one entry of an index buffer. Indices of a draw are relative to
// the start of the command's attribute store.
type Index = uint32

// AttributeWriter produces attributes and indices incrementally, one
// logical unit at a time, for producers that do not materialize their
// geometry up front.
//
// The packer calls Begin once per draw, then Write until it reports no
// more data. When the current command fills up, the packer opens a new
// command and calls NewStore before the next Write. A unit is never split
// across two commands.
type AttributeWriter interface {
	// MinAttributes returns the attribute count of the largest unit.
	MinAttributes() int

	// MinIndices returns the index count of the largest unit.
	MinIndices() int

	// Begin rewinds the writer. It returns false if there is nothing to
	// write.
	Begin() bool

	// NewStore is called when writing continues in a new command.
	NewStore()

	// Write fills dstAttribs and dstIndices with as many complete units as
	// fit. attribBase is the position of dstAttribs[0] in the command's
	// attribute store; written indices must include it. Write returns the
	// counts written and whether units remain.
	Write(dstAttribs []Attribute, dstIndices []Index, attribBase int) (attribs, indices int, more bool)
}
