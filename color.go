package painter

// RGBA is a non-premultiplied color. Each component is in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Common colors.
var (
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Black       = RGBA{A: 1}
	Transparent = RGBA{}
)

// RGB creates an opaque color.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Hex creates a color from a hex string.
// Supports "RGB", "RGBA", "RRGGBB" and "RRGGBBAA", with an optional
// leading '#'. Malformed input gives opaque black.
func Hex(hex string) RGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3:
		r, g, b = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17
	case 4:
		r, g, b = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17
		a = parseHex(hex[3:4]) * 17
	case 6:
		r, g, b = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6])
	case 8:
		r, g, b = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6])
		a = parseHex(hex[6:8])
	default:
		return Black
	}

	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// parseHex stops at the first non-hex character.
func parseHex(s string) uint32 {
	var v uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
			v = v*16 + uint32(c-'0')
		case 'a' <= c && c <= 'f':
			v = v*16 + uint32(c-'a'+10)
		case 'A' <= c && c <= 'F':
			v = v*16 + uint32(c-'A'+10)
		default:
			return v
		}
	}
	return v
}

// Premultiply returns the color with its RGB scaled by alpha.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}
