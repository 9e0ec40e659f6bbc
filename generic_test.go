package painter

import "testing"

func TestGenericData(t *testing.T) {
	if got := Float(1.5).F(); got != 1.5 {
		t.Errorf("Float(1.5).F() = %v", got)
	}
	if got := Int(-3).I(); got != -3 {
		t.Errorf("Int(-3).I() = %v", got)
	}
	if got := Int(-1).U(); got != ^uint32(0) {
		t.Errorf("Int(-1).U() = %#x, want %#x", got, ^uint32(0))
	}
	if got := Uint(InvalidLocation).U(); got != InvalidLocation {
		t.Errorf("Uint(InvalidLocation).U() = %#x", got)
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		v, a, want int
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{9, 4, 12},
		{9, 1, 9},
		{9, 0, 9},
		{4, 3, 6},
		{12, 3, 12},
	}
	for _, tt := range tests {
		if got := AlignUp(tt.v, tt.a); got != tt.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", tt.v, tt.a, got, tt.want)
		}
	}
	if got := AlignUp(uint32(5), 8); got != 8 {
		t.Errorf("AlignUp[uint32](5, 8) = %d, want 8", got)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		ClipLocation:                0,
		MatrixLocation:              12,
		BrushLocation:               24,
		ItemShaderDataLocation:      28,
		CompositeShaderDataLocation: InvalidLocation,
		BlendShaderDataLocation:     InvalidLocation,
		ItemShader:                  3,
		BrushShader:                 uint32(BrushGradientLinear),
		CompositeShader:             7,
		BlendShader:                 0,
		ItemGroup:                   2,
		Z:                           -42,
	}
	dst := make([]GenericData, HeaderSize)
	h.Pack(dst)
	if got := UnpackHeader(dst); got != h {
		t.Errorf("UnpackHeader(Pack(h)) = %+v, want %+v", got, h)
	}
	if got := dst[HeaderZ].I(); got != -42 {
		t.Errorf("packed Z = %d, want -42", got)
	}
}
