package painter

import (
	"math"

	"golang.org/x/exp/constraints"
)

// GenericData is a single 4-byte word of a draw command's store.
// The same word is read by shaders as a float, a signed or an unsigned
// integer depending on the field it holds.
type GenericData uint32

// Float returns the word holding the bits of f.
func Float(f float32) GenericData {
	return GenericData(math.Float32bits(f))
}

// Int returns the word holding the two's complement bits of i.
func Int(i int32) GenericData {
	return GenericData(uint32(i)) //nolint:gosec // bit reinterpretation
}

// Uint returns the word holding u.
func Uint(u uint32) GenericData {
	return GenericData(u)
}

// F returns the word interpreted as a float32.
func (d GenericData) F() float32 {
	return math.Float32frombits(uint32(d))
}

// I returns the word interpreted as an int32.
func (d GenericData) I() int32 {
	return int32(d) //nolint:gosec // bit reinterpretation
}

// U returns the word interpreted as a uint32.
func (d GenericData) U() uint32 {
	return uint32(d)
}

// InvalidLocation is written into a header slot whose value is absent.
const InvalidLocation = ^uint32(0)

// AlignUp rounds v up to the next multiple of alignment.
// Alignments of 0 or 1 return v unchanged.
func AlignUp[T constraints.Integer](v, alignment T) T {
	if alignment <= 1 {
		return v
	}
	if r := v % alignment; r != 0 {
		return v + alignment - r
	}
	return v
}

// packFloats writes vals into dst and zeroes the remainder of dst.
func packFloats(dst []GenericData, vals ...float32) {
	for i, v := range vals {
		dst[i] = Float(v)
	}
	clear(dst[len(vals):])
}
