// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Params controls the flattening of curved edges.
type Params struct {
	// Threshold is the largest allowed distance between a curve and its
	// flattening. Default: 1.
	Threshold float32 `yaml:"threshold"`

	// MaxSegments caps the segments of a single edge. Default: 32.
	MaxSegments int `yaml:"max_segments"`
}

// DefaultParams returns the default tessellation parameters.
func DefaultParams() Params {
	return Params{
		Threshold:   1,
		MaxSegments: 32,
	}
}

type edgeKind uint8

const (
	edgeLine edgeKind = iota
	edgeQuad
	edgeArc
)

type edge struct {
	kind  edgeKind
	ctrl  f32.Vec2
	to    f32.Vec2
	angle float32
}

type contour struct {
	start f32.Vec2
	edges []edge
}

// Builder records contours of line, quadratic and arc edges.
//
// Example:
//
//	var b tessellate.Builder
//	b.MoveTo(f32.Vec2{0, 0})
//	b.LineTo(f32.Vec2{100, 0})
//	b.ArcTo(math32.Pi/2, f32.Vec2{100, 100})
//	b.Close()
//	path := b.Build(tessellate.DefaultParams())
type Builder struct {
	contours []contour
	open     bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MoveTo starts a new contour at p.
func (b *Builder) MoveTo(p f32.Vec2) {
	b.contours = append(b.contours, contour{start: p})
	b.open = true
}

func (b *Builder) add(e edge) {
	if !b.open {
		panic("tessellate: edge added without MoveTo")
	}
	c := &b.contours[len(b.contours)-1]
	c.edges = append(c.edges, e)
}

// LineTo adds a line edge to p.
func (b *Builder) LineTo(p f32.Vec2) {
	b.add(edge{kind: edgeLine, to: p})
}

// QuadTo adds a quadratic Bezier edge through control point ctrl to p.
func (b *Builder) QuadTo(ctrl, p f32.Vec2) {
	b.add(edge{kind: edgeQuad, ctrl: ctrl, to: p})
}

// ArcTo adds a circular arc edge to p sweeping angle radians,
// counter-clockwise for positive angles.
func (b *Builder) ArcTo(angle float32, p f32.Vec2) {
	b.add(edge{kind: edgeArc, to: p, angle: angle})
}

// Close ends the current contour. Edges added afterwards need a MoveTo.
func (b *Builder) Close() {
	b.open = false
}

// Build tessellates the recorded contours. Every contour gets a closing
// line edge back to its start unless it already ends there.
func (b *Builder) Build(params Params) *Path {
	if params.Threshold <= 0 {
		params.Threshold = DefaultParams().Threshold
	}
	if params.MaxSegments < 1 {
		params.MaxSegments = DefaultParams().MaxSegments
	}

	p := &Path{
		params: params,
		bbMin:  f32.Vec2{math32.Inf(1), math32.Inf(1)},
		bbMax:  f32.Vec2{math32.Inf(-1), math32.Inf(-1)},
	}
	for i := range b.contours {
		p.addContour(&b.contours[i])
	}
	if len(p.segments) == 0 {
		p.bbMin, p.bbMax = f32.Vec2{}, f32.Vec2{}
	}
	return p
}

func (p *Path) addContour(c *contour) {
	edges := c.edges
	last := c.start
	if len(edges) > 0 {
		last = edges[len(edges)-1].to
	}
	closing := last != c.start
	if closing {
		edges = append(edges[:len(edges):len(edges)], edge{kind: edgeLine, to: c.start})
	}

	info := contourInfo{
		all:   Range{Begin: len(p.segments)},
		edges: make([]Range, 0, len(edges)),
	}
	from := c.start
	var contourLen float32
	for i := range edges {
		e := &edges[i]
		begin := len(p.segments)
		p.flatten(from, e)
		var edgeLen float32
		for j := begin; j < len(p.segments); j++ {
			s := &p.segments[j]
			s.DistanceFromEdgeStart = edgeLen
			s.DistanceFromContourStart = contourLen
			edgeLen += s.Length
			contourLen += s.Length
		}
		for j := begin; j < len(p.segments); j++ {
			p.segments[j].EdgeLength = edgeLen
		}
		info.edges = append(info.edges, Range{Begin: begin, End: len(p.segments)})
		from = e.to
	}
	info.all.End = len(p.segments)
	info.unclosed = info.all
	if closing {
		info.unclosed.End = info.edges[len(info.edges)-1].Begin
	}

	var openLen float32
	for j := info.unclosed.Begin; j < info.unclosed.End; j++ {
		openLen += p.segments[j].Length
	}
	for j := info.all.Begin; j < info.all.End; j++ {
		p.segments[j].OpenContourLength = openLen
		p.segments[j].ClosedContourLength = contourLen
	}
	p.contours = append(p.contours, info)
}

// flatten appends the segments of e starting at from.
func (p *Path) flatten(from f32.Vec2, e *edge) {
	var n int
	switch e.kind {
	case edgeLine:
		p.addLine(from, e.to)
		n = 1
	case edgeQuad:
		n = p.addQuad(from, e.ctrl, e.to)
	case edgeArc:
		p.addArc(from, e.to, e.angle)
		n = 1
	}
	p.maxSegments = max(p.maxSegments, n)
}

func (p *Path) addLine(a, b f32.Vec2) {
	p.segments = append(p.segments, Segment{
		Type:   SegmentLine,
		P:      a,
		Data:   b,
		Length: dist(a, b),
	})
	p.grow(a)
	p.grow(b)
}

// addQuad flattens a quadratic Bezier with Wang's formula and returns the
// number of segments.
func (p *Path) addQuad(p0, p1, p2 f32.Vec2) int {
	dd := math32.Hypot(p0[0]-2*p1[0]+p2[0], p0[1]-2*p1[1]+p2[1])
	n := int(math32.Ceil(math32.Sqrt(dd / (4 * p.params.Threshold))))
	n = min(max(n, 1), p.params.MaxSegments)
	if e := dd / (4 * float32(n*n)); e > p.effectiveThreshold {
		p.effectiveThreshold = e
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		mt := 1 - t
		q := f32.Vec2{
			mt*mt*p0[0] + 2*mt*t*p1[0] + t*t*p2[0],
			mt*mt*p0[1] + 2*mt*t*p1[1] + t*t*p2[1],
		}
		p.addLine(prev, q)
		prev = q
	}
	return n
}

// addArc adds the arc from a to b sweeping angle. Nearly straight arcs
// become lines.
func (p *Path) addArc(a, b f32.Vec2, angle float32) {
	chord := dist(a, b)
	half := angle / 2
	if chord == 0 || math32.Abs(math32.Sin(half)) < 1e-6 {
		p.addLine(a, b)
		return
	}

	dir := f32.Vec2{(b[0] - a[0]) / chord, (b[1] - a[1]) / chord}
	normal := f32.Vec2{-dir[1], dir[0]}
	h := chord / (2 * math32.Tan(half))
	center := f32.Vec2{
		(a[0]+b[0])/2 + normal[0]*h,
		(a[1]+b[1])/2 + normal[1]*h,
	}
	radius := chord / (2 * math32.Abs(math32.Sin(half)))
	start := math32.Atan2(a[1]-center[1], a[0]-center[0])

	p.segments = append(p.segments, Segment{
		Type:   SegmentArc,
		P:      center,
		Data:   f32.Vec2{start, start + angle},
		Radius: radius,
		Length: radius * math32.Abs(angle),
	})
	p.grow(a)
	p.grow(b)

	// axis extremes reached inside the sweep
	lo, hi := start, start+angle
	if lo > hi {
		lo, hi = hi, lo
	}
	for k := math32.Ceil(lo / (math32.Pi / 2)); k*(math32.Pi/2) <= hi; k++ {
		p.grow(arcPoint(center, radius, k*(math32.Pi/2)))
	}
}

func (p *Path) grow(q f32.Vec2) {
	p.bbMin[0] = math32.Min(p.bbMin[0], q[0])
	p.bbMin[1] = math32.Min(p.bbMin[1], q[1])
	p.bbMax[0] = math32.Max(p.bbMax[0], q[0])
	p.bbMax[1] = math32.Max(p.bbMax[1], q[1])
}

func dist(a, b f32.Vec2) float32 {
	return math32.Hypot(b[0]-a[0], b[1]-a[1])
}
