// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import "github.com/gogpu/painter"

// Attributes and indices of the quad a SegmentWriter emits per segment.
const (
	QuadAttributes = 4
	QuadIndices    = 6
)

var quadIndices = [QuadIndices]painter.Index{0, 1, 2, 0, 2, 3}

// SegmentWriter is a painter.AttributeWriter emitting one quad per
// segment. Every corner carries the whole segment:
//
//	Attrib0  P.x, P.y, Data.x, Data.y
//	Attrib1  Radius, Length, DistanceFromEdgeStart, DistanceFromContourStart
//	Attrib2  EdgeLength, OpenContourLength, ClosedContourLength, Type<<2 | corner
//
// with floats in the first eleven words and the last word an unsigned
// integer.
type SegmentWriter struct {
	segments []Segment
	next     int
}

// NewSegmentWriter creates a writer over segments. The slice is not
// copied.
func NewSegmentWriter(segments []Segment) *SegmentWriter {
	return &SegmentWriter{segments: segments}
}

// MinAttributes implements painter.AttributeWriter.
func (w *SegmentWriter) MinAttributes() int { return QuadAttributes }

// MinIndices implements painter.AttributeWriter.
func (w *SegmentWriter) MinIndices() int { return QuadIndices }

// Begin implements painter.AttributeWriter.
func (w *SegmentWriter) Begin() bool {
	w.next = 0
	return len(w.segments) > 0
}

// NewStore implements painter.AttributeWriter. Indices are absolute, so
// nothing carries over between commands.
func (w *SegmentWriter) NewStore() {}

// Write implements painter.AttributeWriter.
func (w *SegmentWriter) Write(dstAttribs []painter.Attribute, dstIndices []painter.Index, attribBase int) (int, int, bool) {
	n := min(len(dstAttribs)/QuadAttributes, len(dstIndices)/QuadIndices, len(w.segments)-w.next)
	for i := range n {
		s := &w.segments[w.next+i]
		attrs := dstAttribs[i*QuadAttributes : (i+1)*QuadAttributes]
		for corner := range attrs {
			attrs[corner] = packSegment(s, corner)
		}
		base := painter.Index(attribBase + i*QuadAttributes) //nolint:gosec // bounded by attribute capacity
		for j, q := range quadIndices {
			dstIndices[i*QuadIndices+j] = base + q
		}
	}
	w.next += n
	return n * QuadAttributes, n * QuadIndices, w.next < len(w.segments)
}

func packSegment(s *Segment, corner int) painter.Attribute {
	return painter.Attribute{
		Attrib0: [4]painter.GenericData{
			painter.Float(s.P[0]), painter.Float(s.P[1]),
			painter.Float(s.Data[0]), painter.Float(s.Data[1]),
		},
		Attrib1: [4]painter.GenericData{
			painter.Float(s.Radius), painter.Float(s.Length),
			painter.Float(s.DistanceFromEdgeStart), painter.Float(s.DistanceFromContourStart),
		},
		Attrib2: [4]painter.GenericData{
			painter.Float(s.EdgeLength), painter.Float(s.OpenContourLength),
			painter.Float(s.ClosedContourLength),
			painter.Uint(uint32(s.Type)<<2 | uint32(corner)), //nolint:gosec // corner < 4
		},
	}
}
