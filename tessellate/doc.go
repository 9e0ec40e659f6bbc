// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tessellate turns paths of line, quadratic and arc edges into
// line and arc segments carrying the length metadata stroking and dashing
// shaders need: distance from the start of the edge and of the contour,
// and the lengths of the edge and of the open and closed contour.
//
// A SegmentWriter feeds the segments of a path to painter.Packer.DrawWriter
// as one quad per segment.
package tessellate
