package painter

// Word offsets of the stroke shader data.
const (
	StrokeMiterLimitOffset = iota
	StrokeWidthOffset

	// StrokeDataSize is the number of words before alignment.
	StrokeDataSize
)

// Word offsets of the static part of the dashed stroke shader data. The
// cumulative dash table follows at AlignUp(DashedStrokeStaticDataSize,
// alignment).
const (
	DashedStrokeMiterLimitOffset = iota
	DashedStrokeWidthOffset
	DashedStrokeDashOffsetOffset
	DashedStrokeTotalLengthOffset

	// DashedStrokeStaticDataSize is the number of static words before
	// alignment.
	DashedStrokeStaticDataSize
)

// StrokeParams is the item shader data of a solid stroke.
type StrokeParams struct {
	// MiterLimit is the limit for miter joins before they become bevels.
	// Default: 15.
	MiterLimit float32

	// Width is the stroke width. Default: 2.
	Width float32
}

// DefaultStrokeParams returns StrokeParams with default settings.
func DefaultStrokeParams() StrokeParams {
	return StrokeParams{
		MiterLimit: 15,
		Width:      2,
	}
}

// WithWidth returns a copy of p with the given width.
func (p StrokeParams) WithWidth(w float32) StrokeParams {
	p.Width = w
	return p
}

// WithMiterLimit returns a copy of p with the given miter limit.
func (p StrokeParams) WithMiterLimit(limit float32) StrokeParams {
	p.MiterLimit = limit
	return p
}

// Copy implements ShaderDataBlock.
func (p StrokeParams) Copy() ShaderDataBlock {
	return p
}

// DataSize implements ShaderDataBlock.
func (p StrokeParams) DataSize(alignment int) int {
	return AlignUp(StrokeDataSize, alignment)
}

// Pack implements ShaderDataBlock.
func (p StrokeParams) Pack(alignment int, dst []GenericData) {
	dst = dst[:p.DataSize(alignment)]
	clear(dst)
	dst[StrokeMiterLimitOffset] = Float(p.MiterLimit)
	dst[StrokeWidthOffset] = Float(p.Width)
}

// DashedStrokeParams is the item shader data of a dashed stroke.
//
// The dash pattern is normalized when set and stored in a slice owned by
// the value; every With method returns a value that shares nothing
// mutable with its receiver.
type DashedStrokeParams struct {
	// MiterLimit is the limit for miter joins before they become bevels.
	// Default: 15.
	MiterLimit float32

	// Width is the stroke width. Default: 2.
	Width float32

	// DashOffset is the starting offset into the pattern.
	DashOffset float32

	pattern []DashPatternElement
}

// DefaultDashedStrokeParams returns DashedStrokeParams with default
// settings and no dash pattern.
func DefaultDashedStrokeParams() DashedStrokeParams {
	return DashedStrokeParams{
		MiterLimit: 15,
		Width:      2,
	}
}

// WithWidth returns a copy of p with the given width.
func (p DashedStrokeParams) WithWidth(w float32) DashedStrokeParams {
	p.Width = w
	return p
}

// WithMiterLimit returns a copy of p with the given miter limit.
func (p DashedStrokeParams) WithMiterLimit(limit float32) DashedStrokeParams {
	p.MiterLimit = limit
	return p
}

// WithDashOffset returns a copy of p with the given dash offset.
func (p DashedStrokeParams) WithDashOffset(offset float32) DashedStrokeParams {
	p.DashOffset = offset
	return p
}

// WithDashPattern returns a copy of p with the dash pattern set to the
// normalized form of elems. See NormalizeDashPattern.
func (p DashedStrokeParams) WithDashPattern(elems ...DashPatternElement) DashedStrokeParams {
	p.pattern = NormalizeDashPattern(elems)
	return p
}

// DashPattern returns a copy of the normalized dash pattern.
func (p DashedStrokeParams) DashPattern() []DashPatternElement {
	if len(p.pattern) == 0 {
		return nil
	}
	out := make([]DashPatternElement, len(p.pattern))
	copy(out, p.pattern)
	return out
}

// IsDashed reports whether the pattern has at least one element.
func (p DashedStrokeParams) IsDashed() bool {
	return len(p.pattern) > 0
}

// TotalLength returns the length of one pattern cycle, or -1 if the
// pattern is empty.
func (p DashedStrokeParams) TotalLength() float32 {
	if len(p.pattern) == 0 {
		return -1
	}
	var total float32
	for _, e := range p.pattern {
		total += e.Draw + e.Space
	}
	return total
}

// Copy implements ShaderDataBlock.
func (p DashedStrokeParams) Copy() ShaderDataBlock {
	p.pattern = p.DashPattern()
	return p
}

// DataSize implements ShaderDataBlock.
func (p DashedStrokeParams) DataSize(alignment int) int {
	return AlignUp(DashedStrokeStaticDataSize, alignment) + AlignUp(2*len(p.pattern), alignment)
}

// Pack implements ShaderDataBlock. The cumulative dash table holds the end
// of each draw and space interval; its padding is set to a value larger
// than any cumulative length so a shader can detect the end of the
// pattern with a single comparison.
func (p DashedStrokeParams) Pack(alignment int, dst []GenericData) {
	dst = dst[:p.DataSize(alignment)]
	clear(dst)
	dst[DashedStrokeMiterLimitOffset] = Float(p.MiterLimit)
	dst[DashedStrokeWidthOffset] = Float(p.Width)
	dst[DashedStrokeDashOffsetOffset] = Float(p.DashOffset)

	if len(p.pattern) == 0 {
		dst[DashedStrokeTotalLengthOffset] = Float(-1)
		return
	}

	table := dst[AlignUp(DashedStrokeStaticDataSize, alignment):]
	var total float32
	j := 0
	for _, e := range p.pattern {
		total += e.Draw
		table[j] = Float(total)
		total += e.Space
		table[j+1] = Float(total)
		j += 2
	}
	for ; j < len(table); j++ {
		table[j] = Float((total + 1) * 2)
	}
	dst[DashedStrokeTotalLengthOffset] = Float(total)
}
