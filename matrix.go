package painter

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// ClipEquationsDataSize is the number of words of ClipEquations before
// alignment.
const ClipEquationsDataSize = 9

// ClipEquations holds three clip planes in clip coordinates. A point p is
// inside when dot(Planes[i], (p.x, p.y, 1)) >= 0 for every plane.
type ClipEquations struct {
	Planes [3]f32.Vec3
}

// DefaultClipEquations returns planes that pass every point.
func DefaultClipEquations() ClipEquations {
	return ClipEquations{
		Planes: [3]f32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
	}
}

// Copy implements ShaderDataBlock.
func (c ClipEquations) Copy() ShaderDataBlock { return c }

// DataSize implements ShaderDataBlock.
func (c ClipEquations) DataSize(alignment int) int {
	return AlignUp(ClipEquationsDataSize, alignment)
}

// Pack implements ShaderDataBlock.
func (c ClipEquations) Pack(alignment int, dst []GenericData) {
	p := c.Planes
	packFloats(dst[:c.DataSize(alignment)],
		p[0][0], p[0][1], p[0][2],
		p[1][0], p[1][1], p[1][2],
		p[2][0], p[2][1], p[2][2])
}

// ItemMatrixDataSize is the number of words of ItemMatrix before
// alignment.
const ItemMatrixDataSize = 9

// ItemMatrix is the 3x3 transformation from item coordinates to clip
// coordinates, stored row-major.
type ItemMatrix struct {
	M f32.Mat3
}

// IdentityItemMatrix returns the identity transformation.
func IdentityItemMatrix() ItemMatrix {
	return ItemMatrix{M: f32.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// ItemMatrixFromAffine returns the projective form of a.
func ItemMatrixFromAffine(a Affine) ItemMatrix {
	return ItemMatrix{M: f32.Mat3{
		a[0], a[1], a[2],
		a[3], a[4], a[5],
		0, 0, 1,
	}}
}

// Copy implements ShaderDataBlock.
func (m ItemMatrix) Copy() ShaderDataBlock { return m }

// DataSize implements ShaderDataBlock.
func (m ItemMatrix) DataSize(alignment int) int {
	return AlignUp(ItemMatrixDataSize, alignment)
}

// Pack implements ShaderDataBlock.
func (m ItemMatrix) Pack(alignment int, dst []GenericData) {
	packFloats(dst[:m.DataSize(alignment)], m.M[:]...)
}

// Affine is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// which maps (x, y) to (a*x + b*y + c, d*x + e*y + f).
type Affine f32.Aff3

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{1, 0, 0, 0, 1, 0}
}

// Translate creates a translation.
func Translate(x, y float32) Affine {
	return Affine{1, 0, x, 0, 1, y}
}

// Scale creates a scaling.
func Scale(x, y float32) Affine {
	return Affine{x, 0, 0, 0, y, 0}
}

// Rotate creates a rotation by angle radians.
func Rotate(angle float32) Affine {
	sin, cos := math32.Sincos(angle)
	return Affine{cos, -sin, 0, sin, cos, 0}
}

// Multiply returns m * o, which applies o first.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[1]*o[3],
		m[0]*o[1] + m[1]*o[4],
		m[0]*o[2] + m[1]*o[5] + m[2],
		m[3]*o[0] + m[4]*o[3],
		m[3]*o[1] + m[4]*o[4],
		m[3]*o[2] + m[4]*o[5] + m[5],
	}
}

// TransformPoint applies the transformation to a point.
func (m Affine) TransformPoint(p f32.Vec2) f32.Vec2 {
	return f32.Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

// Invert returns the inverse transformation, or the identity if m is
// singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[4] - m[1]*m[3]
	if math32.Abs(det) < 1e-10 {
		return Identity()
	}
	inv := 1 / det
	return Affine{
		m[4] * inv,
		-m[1] * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		-m[3] * inv,
		m[0] * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
	}
}

// IsIdentity reports whether m is the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}
