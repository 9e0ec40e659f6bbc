package painter

import "fmt"

// ShaderDataBlock is the custom parameter payload of a shader: stroke
// parameters, brush values, transformation and clipping data.
//
// Implementations must be deterministic: Pack writes exactly
// DataSize(alignment) words, padding included, and two calls to DataSize
// with the same alignment return the same value.
type ShaderDataBlock interface {
	// Copy returns a deep copy of the block. Values captured into a draw
	// are copies, so changing the original later does not affect draws
	// that were already issued.
	Copy() ShaderDataBlock

	// DataSize returns the number of words Pack writes, a multiple of
	// alignment.
	DataSize(alignment int) int

	// Pack writes the block into dst[:DataSize(alignment)].
	Pack(alignment int, dst []GenericData)
}

// DataValue is one slot of a PackerData: either an inline block copied at
// construction, or a handle obtained from a PackedValuePool.
// The zero value is an absent slot.
type DataValue struct {
	inline ShaderDataBlock
	packed *PackedValue
}

// Inline captures a copy of b. A nil block gives an absent value.
func Inline(b ShaderDataBlock) DataValue {
	if b == nil {
		return DataValue{}
	}
	return DataValue{inline: b.Copy()}
}

// Pooled wraps a pooled handle. A nil handle gives an absent value.
func Pooled(v *PackedValue) DataValue {
	return DataValue{packed: v}
}

// IsZero reports whether the slot is absent.
func (v DataValue) IsZero() bool {
	return v.inline == nil && v.packed == nil
}

// Packed returns the pooled handle, or nil for inline and absent values.
func (v DataValue) Packed() *PackedValue {
	return v.packed
}

// Block returns the block held by the value, or nil if absent.
func (v DataValue) Block() ShaderDataBlock {
	if v.packed != nil {
		return v.packed.block
	}
	return v.inline
}

// BlockAs returns the block held by v as a T. It panics if v is absent or
// holds a different block type.
func BlockAs[T ShaderDataBlock](v DataValue) T {
	b := v.Block()
	t, ok := b.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("painter: shader data is %T, not %T", b, want))
	}
	return t
}

// dataSize returns the room in words the value needs in a fresh command.
func (v DataValue) dataSize(alignment int) int {
	if v.packed != nil {
		return len(v.packed.words(alignment))
	}
	if v.inline != nil {
		return v.inline.DataSize(alignment)
	}
	return 0
}

// PackerData bundles the state of a draw. Absent Clip, Matrix and Brush
// slots fall back to the packer defaults; absent shader data slots are
// written as InvalidLocation in the header.
type PackerData struct {
	Clip                DataValue
	Matrix              DataValue
	Brush               DataValue
	ItemShaderData      DataValue
	CompositeShaderData DataValue
	BlendShaderData     DataValue
}

// stateSlot indexes the six PackerData slots in upload order.
type stateSlot int

const (
	slotClip stateSlot = iota
	slotMatrix
	slotBrush
	slotItemShaderData
	slotCompositeShaderData
	slotBlendShaderData
	numStateSlots
)

func (d *PackerData) slots() [numStateSlots]DataValue {
	return [numStateSlots]DataValue{
		slotClip:                d.Clip,
		slotMatrix:              d.Matrix,
		slotBrush:               d.Brush,
		slotItemShaderData:      d.ItemShaderData,
		slotCompositeShaderData: d.CompositeShaderData,
		slotBlendShaderData:     d.BlendShaderData,
	}
}
