package painter

import "github.com/chewxy/math32"

// DashPatternElement is one interval of a dash pattern: a drawn length
// followed by a skipped length.
type DashPatternElement struct {
	Draw  float32
	Space float32
}

// NormalizeDashPattern returns the normalized form of elems in a newly
// allocated slice:
//
//   - leading elements with both lengths <= 0 are dropped;
//   - negative lengths are clamped to 0;
//   - an element following one with no space is merged into it by adding
//     its draw length and taking its space;
//   - an element with no draw length is merged into the previous one by
//     adding its space.
//
// Only the first element can have a zero draw length and only the last
// can have a zero space. An input of only zero lengths gives an empty
// pattern. Normalizing a normalized pattern returns it unchanged.
func NormalizeDashPattern(elems []DashPatternElement) []DashPatternElement {
	for len(elems) > 0 && elems[0].Draw <= 0 && elems[0].Space <= 0 {
		elems = elems[1:]
	}
	if len(elems) == 0 {
		return nil
	}

	out := make([]DashPatternElement, 0, len(elems))
	out = append(out, DashPatternElement{
		Draw:  math32.Max(0, elems[0].Draw),
		Space: math32.Max(0, elems[0].Space),
	})
	for _, e := range elems[1:] {
		cur := &out[len(out)-1]
		switch {
		case cur.Space <= 0:
			cur.Draw += math32.Max(0, e.Draw)
			cur.Space = math32.Max(0, e.Space)
		case e.Draw <= 0:
			cur.Space += math32.Max(0, e.Space)
		default:
			out = append(out, DashPatternElement{
				Draw:  math32.Max(0, e.Draw),
				Space: math32.Max(0, e.Space),
			})
		}
	}
	return out[:len(out):len(out)]
}
