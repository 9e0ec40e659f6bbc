// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// SegmentType is the kind of a Segment.
type SegmentType uint8

const (
	// SegmentLine is a straight segment from P to Data.
	SegmentLine SegmentType = iota
	// SegmentArc is a circular arc around P from angle Data[0] to Data[1].
	SegmentArc
)

// String returns the segment type name.
func (t SegmentType) String() string {
	switch t {
	case SegmentLine:
		return "line"
	case SegmentArc:
		return "arc"
	}
	return fmt.Sprintf("SegmentType(%d)", t)
}

// Segment is one piece of a tessellated path with its length metadata.
type Segment struct {
	Type SegmentType

	// P is the start point of a line or the center of an arc.
	P f32.Vec2
	// Data is the end point of a line or the start and end angles of an
	// arc in radians.
	Data f32.Vec2
	// Radius is the radius of an arc; 0 for lines.
	Radius float32

	Length                   float32
	DistanceFromEdgeStart    float32
	DistanceFromContourStart float32
	EdgeLength               float32
	OpenContourLength        float32
	ClosedContourLength      float32
}

// Start returns the first point of the segment.
func (s *Segment) Start() f32.Vec2 {
	if s.Type == SegmentArc {
		return arcPoint(s.P, s.Radius, s.Data[0])
	}
	return s.P
}

// End returns the last point of the segment.
func (s *Segment) End() f32.Vec2 {
	if s.Type == SegmentArc {
		return arcPoint(s.P, s.Radius, s.Data[1])
	}
	return s.Data
}

func arcPoint(c f32.Vec2, r, angle float32) f32.Vec2 {
	sin, cos := math32.Sincos(angle)
	return f32.Vec2{c[0] + r*cos, c[1] + r*sin}
}

// Range is the half-open range [Begin, End) of segment positions.
type Range struct {
	Begin, End int
}

// Len returns the number of positions in r.
func (r Range) Len() int { return r.End - r.Begin }

type contourInfo struct {
	all      Range
	unclosed Range
	edges    []Range
}

// Path is a tessellated path: line and arc segments grouped by contour and
// edge. Every contour ends with its closing edge; the unclosed range of a
// contour leaves that edge out.
type Path struct {
	params             Params
	segments           []Segment
	contours           []contourInfo
	effectiveThreshold float32
	maxSegments        int
	bbMin, bbMax       f32.Vec2
}

// Params returns the parameters the path was built with.
func (p *Path) Params() Params { return p.params }

// EffectiveThreshold returns the largest distance between a curved edge
// and its flattening. It exceeds Params.Threshold when MaxSegments capped
// an edge.
func (p *Path) EffectiveThreshold() float32 { return p.effectiveThreshold }

// MaxSegments returns the largest number of segments of a single edge.
func (p *Path) MaxSegments() int { return p.maxSegments }

// Segments returns every segment of the path. The slice must not be
// modified.
func (p *Path) Segments() []Segment { return p.segments }

// NumContours returns the number of contours.
func (p *Path) NumContours() int { return len(p.contours) }

func (p *Path) contour(c int) *contourInfo {
	if c < 0 || c >= len(p.contours) {
		panic(fmt.Sprintf("tessellate: contour %d out of range [0, %d)", c, len(p.contours)))
	}
	return &p.contours[c]
}

// ContourRange returns the segment range of contour c, closing edge
// included. It panics if c is out of range.
func (p *Path) ContourRange(c int) Range { return p.contour(c).all }

// UnclosedContourRange returns the segment range of contour c without its
// closing edge. It panics if c is out of range.
func (p *Path) UnclosedContourRange(c int) Range { return p.contour(c).unclosed }

// ContourSegments returns the segments of contour c.
func (p *Path) ContourSegments(c int) []Segment {
	r := p.ContourRange(c)
	return p.segments[r.Begin:r.End]
}

// UnclosedContourSegments returns the segments of contour c without its
// closing edge.
func (p *Path) UnclosedContourSegments(c int) []Segment {
	r := p.UnclosedContourRange(c)
	return p.segments[r.Begin:r.End]
}

// NumEdges returns the number of edges of contour c, closing edge
// included. It panics if c is out of range.
func (p *Path) NumEdges(c int) int { return len(p.contour(c).edges) }

// EdgeRange returns the segment range of edge e of contour c. It panics if
// c or e is out of range.
func (p *Path) EdgeRange(c, e int) Range {
	ci := p.contour(c)
	if e < 0 || e >= len(ci.edges) {
		panic(fmt.Sprintf("tessellate: edge %d of contour %d out of range [0, %d)", e, c, len(ci.edges)))
	}
	return ci.edges[e]
}

// EdgeSegments returns the segments of edge e of contour c.
func (p *Path) EdgeSegments(c, e int) []Segment {
	r := p.EdgeRange(c, e)
	return p.segments[r.Begin:r.End]
}

// BoundingBoxMin returns the minimum corner of the bounding box.
func (p *Path) BoundingBoxMin() f32.Vec2 { return p.bbMin }

// BoundingBoxMax returns the maximum corner of the bounding box.
func (p *Path) BoundingBoxMax() f32.Vec2 { return p.bbMax }

// BoundingBoxSize returns the size of the bounding box.
func (p *Path) BoundingBoxSize() f32.Vec2 {
	return f32.Vec2{p.bbMax[0] - p.bbMin[0], p.bbMax[1] - p.bbMin[1]}
}
