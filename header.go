package painter

// Word offsets of a packed Header.
const (
	HeaderClipLocation = iota
	HeaderMatrixLocation
	HeaderBrushLocation
	HeaderItemShaderDataLocation
	HeaderCompositeShaderDataLocation
	HeaderBlendShaderDataLocation
	HeaderItemShader
	HeaderBrushShader
	HeaderCompositeShader
	HeaderBlendShader
	HeaderItemGroup
	HeaderZ

	// HeaderSize is the number of words of a header before alignment.
	HeaderSize
)

// Header is the per-draw record in a command's store. Every attribute of
// the draw carries the store offset of its header.
//
// Locations are store offsets in the same command; an absent value is
// InvalidLocation. Shader ids of 0 mean no shader.
type Header struct {
	ClipLocation                uint32
	MatrixLocation              uint32
	BrushLocation               uint32
	ItemShaderDataLocation      uint32
	CompositeShaderDataLocation uint32
	BlendShaderDataLocation     uint32

	ItemShader      uint32
	BrushShader     uint32
	CompositeShader uint32
	BlendShader     uint32
	ItemGroup       uint32
	Z               int32
}

// Pack writes the header into dst[:HeaderSize].
func (h *Header) Pack(dst []GenericData) {
	dst = dst[:HeaderSize]
	dst[HeaderClipLocation] = Uint(h.ClipLocation)
	dst[HeaderMatrixLocation] = Uint(h.MatrixLocation)
	dst[HeaderBrushLocation] = Uint(h.BrushLocation)
	dst[HeaderItemShaderDataLocation] = Uint(h.ItemShaderDataLocation)
	dst[HeaderCompositeShaderDataLocation] = Uint(h.CompositeShaderDataLocation)
	dst[HeaderBlendShaderDataLocation] = Uint(h.BlendShaderDataLocation)
	dst[HeaderItemShader] = Uint(h.ItemShader)
	dst[HeaderBrushShader] = Uint(h.BrushShader)
	dst[HeaderCompositeShader] = Uint(h.CompositeShader)
	dst[HeaderBlendShader] = Uint(h.BlendShader)
	dst[HeaderItemGroup] = Uint(h.ItemGroup)
	dst[HeaderZ] = Int(h.Z)
}

// UnpackHeader reads a header from src[:HeaderSize].
func UnpackHeader(src []GenericData) Header {
	src = src[:HeaderSize]
	return Header{
		ClipLocation:                src[HeaderClipLocation].U(),
		MatrixLocation:              src[HeaderMatrixLocation].U(),
		BrushLocation:               src[HeaderBrushLocation].U(),
		ItemShaderDataLocation:      src[HeaderItemShaderDataLocation].U(),
		CompositeShaderDataLocation: src[HeaderCompositeShaderDataLocation].U(),
		BlendShaderDataLocation:     src[HeaderBlendShaderDataLocation].U(),
		ItemShader:                  src[HeaderItemShader].U(),
		BrushShader:                 src[HeaderBrushShader].U(),
		CompositeShader:             src[HeaderCompositeShader].U(),
		BlendShader:                 src[HeaderBlendShader].U(),
		ItemGroup:                   src[HeaderItemGroup].U(),
		Z:                           src[HeaderZ].I(),
	}
}

// location returns the header slot holding the location of a state slot.
func (h *Header) location(s stateSlot) *uint32 {
	switch s {
	case slotClip:
		return &h.ClipLocation
	case slotMatrix:
		return &h.MatrixLocation
	case slotBrush:
		return &h.BrushLocation
	case slotItemShaderData:
		return &h.ItemShaderDataLocation
	case slotCompositeShaderData:
		return &h.CompositeShaderDataLocation
	default:
		return &h.BlendShaderDataLocation
	}
}
