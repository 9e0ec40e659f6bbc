package painter

import "golang.org/x/image/math/f32"

// BrushFeature is a bit of a brush shader id.
type BrushFeature uint32

// Brush features. A brush with none of them is a solid color.
const (
	BrushGradientLinear BrushFeature = 1 << iota
	BrushGradientRadial
	BrushTransformation
)

// Packed section sizes in words, before alignment.
const (
	BrushColorDataSize          = 4
	BrushLinearGradientDataSize = 4
	BrushRadialGradientDataSize = 6
	BrushTransformationDataSize = 6
)

// Brush is the paint of an item: a color, optionally modulated by a
// gradient, with an optional transformation from item coordinates to brush
// coordinates.
//
// Brush is a value type; the With methods return modified copies.
//
// Packed layout, each section aligned independently:
//
//	color         premultiplied r, g, b, a
//	gradient      linear: start.x, start.y, end.x, end.y
//	              radial: start.x, start.y, end.x, end.y, start radius, end radius
//	transform     a, b, c, d, e, f
type Brush struct {
	// Color is the non-premultiplied brush color.
	Color RGBA

	features BrushFeature

	start, end             f32.Vec2
	startRadius, endRadius float32
	transform              Affine
}

// SolidBrush returns a brush painting a single color.
func SolidBrush(c RGBA) Brush {
	return Brush{Color: c}
}

// DefaultBrush returns the opaque white brush.
func DefaultBrush() Brush {
	return SolidBrush(White)
}

// WithColor returns a copy of b with the given color.
func (b Brush) WithColor(c RGBA) Brush {
	b.Color = c
	return b
}

// WithLinearGradient returns a copy of b with a linear gradient from start
// to end.
func (b Brush) WithLinearGradient(start, end f32.Vec2) Brush {
	b.features &^= BrushGradientRadial
	b.features |= BrushGradientLinear
	b.start, b.end = start, end
	b.startRadius, b.endRadius = 0, 0
	return b
}

// WithRadialGradient returns a copy of b with a radial gradient between
// two circles.
func (b Brush) WithRadialGradient(start f32.Vec2, startRadius float32, end f32.Vec2, endRadius float32) Brush {
	b.features &^= BrushGradientLinear
	b.features |= BrushGradientRadial
	b.start, b.end = start, end
	b.startRadius, b.endRadius = startRadius, endRadius
	return b
}

// WithoutGradient returns a copy of b with no gradient.
func (b Brush) WithoutGradient() Brush {
	b.features &^= BrushGradientLinear | BrushGradientRadial
	b.start, b.end = f32.Vec2{}, f32.Vec2{}
	b.startRadius, b.endRadius = 0, 0
	return b
}

// WithTransformation returns a copy of b transformed by m.
func (b Brush) WithTransformation(m Affine) Brush {
	b.features |= BrushTransformation
	b.transform = m
	return b
}

// WithoutTransformation returns a copy of b without a transformation.
func (b Brush) WithoutTransformation() Brush {
	b.features &^= BrushTransformation
	b.transform = Affine{}
	return b
}

// Transformation returns the brush transformation and whether one is set.
func (b Brush) Transformation() (Affine, bool) {
	if b.features&BrushTransformation == 0 {
		return Identity(), false
	}
	return b.transform, true
}

// ShaderID returns the feature bits of the brush. Brushes with the same id
// are drawn by the same brush shader.
func (b Brush) ShaderID() uint32 {
	return uint32(b.features)
}

func (b Brush) gradientSize() int {
	switch {
	case b.features&BrushGradientLinear != 0:
		return BrushLinearGradientDataSize
	case b.features&BrushGradientRadial != 0:
		return BrushRadialGradientDataSize
	}
	return 0
}

// Copy implements ShaderDataBlock.
func (b Brush) Copy() ShaderDataBlock { return b }

// DataSize implements ShaderDataBlock.
func (b Brush) DataSize(alignment int) int {
	n := AlignUp(BrushColorDataSize, alignment)
	n += AlignUp(b.gradientSize(), alignment)
	if b.features&BrushTransformation != 0 {
		n += AlignUp(BrushTransformationDataSize, alignment)
	}
	return n
}

// Pack implements ShaderDataBlock.
func (b Brush) Pack(alignment int, dst []GenericData) {
	dst = dst[:b.DataSize(alignment)]

	c := b.Color.Premultiply()
	n := AlignUp(BrushColorDataSize, alignment)
	packFloats(dst[:n], c.R, c.G, c.B, c.A)
	dst = dst[n:]

	if g := b.gradientSize(); g > 0 {
		n = AlignUp(g, alignment)
		if g == BrushRadialGradientDataSize {
			packFloats(dst[:n], b.start[0], b.start[1], b.end[0], b.end[1], b.startRadius, b.endRadius)
		} else {
			packFloats(dst[:n], b.start[0], b.start[1], b.end[0], b.end[1])
		}
		dst = dst[n:]
	}

	if b.features&BrushTransformation != 0 {
		packFloats(dst, b.transform[:]...)
	}
}
