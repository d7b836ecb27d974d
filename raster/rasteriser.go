// seehuhn.de/go/pucker - pucker and bloat deformation of raster shapes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster converts filled vector paths into anti-aliased pixel
// coverage.
//
// The rasteriser accumulates, for every pixel, the signed area of the path
// inside the pixel.  Coverage values are delivered one scanline at a time,
// either to a callback or into an [image.Alpha] mask.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// FillRule selects how the interior of a path is determined.
type FillRule int

const (
	// NonZero treats a point as inside if the winding number is not zero.
	NonZero FillRule = iota

	// EvenOdd treats a point as inside if a ray from the point crosses the
	// path an odd number of times.  This is the rule used for shapes with
	// holes.
	EvenOdd
)

func (rule FillRule) String() string {
	switch rule {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// EmitFunc receives the coverage of one scanline.  The slice holds coverage
// values in [0, 1] for the pixels xMin, xMin+1, ... of row y and is only
// valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yRange() (float64, float64) {
	return min(e.y0, e.y1), max(e.y0, e.y1)
}

// xAt returns the x-coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasteriser converts paths to coverage values.  A Rasteriser keeps its
// internal buffers between calls, so that a single instance can be reused
// for all paths of a frame without further allocations.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps path coordinates to device coordinates.
	// It must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this device-space rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments used to approximate it.  Must be positive.
	Flatness float64

	// smallArea is the largest bounding box area, in pixels, which is
	// rasterised using full 2D accumulation buffers.  Larger paths use an
	// active edge list and per-scanline buffers.
	smallArea int

	cover    []float32 // per-pixel change of the winding contribution; reused as output
	area     []float32 // per-pixel area contribution
	edges    []edge
	active   []int  // indices into edges
	rowDirty []bool // rows touched by at least one edge (small paths only)

	bbox    [4]float64 // device-space bounding box of the collected edges
	hasBBox bool
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with the
// identity transformation and default flatness.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:       matrix.Identity,
		Clip:      clip,
		Flatness:  defaultFlatness,
		smallArea: defaultSmallArea,
	}
}

// Reset restores the default transformation and flatness and sets a new
// clip rectangle.  Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.rowDirty = r.rowDirty[:0]
}

// FillNonZero fills the path using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd fills the path using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.Fill(p, EvenOdd, emit)
}

// Fill rasterises the path with the given fill rule.  Open subpaths are
// closed implicitly.  Rows without coverage are not reported.
func (r *Rasteriser) Fill(p *path.Data, rule FillRule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(p)
	if !ok {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallArea {
		r.fillSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// collectEdges flattens the path into device-space edges and returns the
// integer bounding box of the edges, clamped to the clip rectangle.
func (r *Rasteriser) collectEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.hasBBox = false

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			// an open subpath is closed implicitly
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addEdge)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	if current != start {
		r.addEdge(current, start)
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bbox[0])), int(r.Clip.LLx))
	yMin = max(int(math.Floor(r.bbox[1])), int(r.Clip.LLy))
	xMax = min(int(math.Floor(r.bbox[2]))+1, int(r.Clip.URx))
	yMax = min(int(math.Floor(r.bbox[3]))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge transforms a segment to device space and stores it.
// Horizontal segments do not contribute to coverage and are dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	lo := [4]float64{min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1)}
	if !r.hasBBox {
		r.bbox = lo
		r.hasBBox = true
		return
	}
	r.bbox[0] = min(r.bbox[0], lo[0])
	r.bbox[1] = min(r.bbox[1], lo[1])
	r.bbox[2] = max(r.bbox[2], lo[2])
	r.bbox[3] = max(r.bbox[3], lo[3])
}

// deviceLength returns the device-space length of the user-space vector v,
// ignoring the translation part of the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments.
// The number of segments is chosen using Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if dev > 0 {
		if nf := math.Sqrt(3 * dev / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// Accumulation model.
//
// Each pixel carries two values: cover, the signed vertical extent of all
// edge pieces inside the pixel column, and area, the same extent weighted
// by the horizontal distance of the piece from the right pixel boundary.
// Integrating a scanline from left to right,
//
//	coverage[i] = sum(cover[0:i]) + area[i],
//
// gives the signed area of the path inside pixel i.

// accumulate adds the contribution of edge e to scanline y.  The buffers
// cover and area are indexed by x-xLo for x in [xLo, xHi).  Pieces left of
// the buffer are folded into the first pixel, pieces right of the buffer
// are dropped.
func (r *Rasteriser) accumulate(e *edge, y int, cover, area []float32, xLo, xHi int) {
	eyMin, eyMax := e.yRange()
	top := max(float64(y), eyMin)
	bot := min(float64(y+1), eyMax)
	if bot <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(top), e.xAt(bot)
	if xa > xb {
		xa, xb = xb, xa
	}
	colA := int(math.Floor(xa))
	colB := int(math.Floor(xb))

	switch {
	case colB < xLo:
		c := sign * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	case colA >= xHi:
		return
	case colA == colB:
		addPiece(e, top, bot, sign, colA, cover, area, xLo, xHi)
		return
	}

	// The edge crosses several pixel columns within this scanline.
	dydx := 1 / e.dxdy
	for col := colA; col <= colB; col++ {
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		addPiece(e, lo, hi, sign, col, cover, area, xLo, xHi)
	}
}

// addPiece records the part of e between heights top and bot, which lies
// inside pixel column col.
func addPiece(e *edge, top, bot float64, sign float32, col int, cover, area []float32, xLo, xHi int) {
	c := sign * float32(bot-top)
	switch {
	case col < xLo:
		cover[0] += c
		area[0] += c
	case col < xHi:
		frac := e.xAt((top+bot)/2) - float64(col)
		cover[col-xLo] += c
		area[col-xLo] += c * float32(1-frac)
	}
}

// integrate turns the accumulated cover and area values of one scanline
// into coverage, in place.
func integrate(cover, area []float32, rule FillRule) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}

		if rule == EvenOdd {
			raw -= 2 * float32(int(raw/2))
			if raw > 1 {
				raw = 2 - raw
			}
		} else if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

// trimZeros strips zero coverage from both ends of a scanline.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// fillSmall accumulates all edges into full 2D buffers covering the
// bounding box, then integrates every touched row.
func (r *Rasteriser) fillSmall(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin

	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowDirty = slices.Grow(r.rowDirty[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowDirty)

	for i := range r.edges {
		e := &r.edges[i]
		eyMin, eyMax := e.yRange()
		first := max(int(math.Floor(eyMin)), yMin)
		last := min(int(math.Floor(eyMax))+1, yMax)
		for y := first; y < last; y++ {
			row := y - yMin
			r.accumulate(e, y, r.cover[row*w:(row+1)*w], r.area[row*w:(row+1)*w], xMin, xMax)
			r.rowDirty[row] = true
		}
	}

	for row := range h {
		if !r.rowDirty[row] {
			continue
		}
		line := r.cover[row*w : (row+1)*w]
		integrate(line, r.area[row*w:(row+1)*w], rule)
		if trimmed, offs := trimZeros(line); trimmed != nil {
			emit(yMin+row, xMin+offs, trimmed)
		}
	}
}

// fillLarge processes one scanline at a time, keeping a list of the edges
// which intersect the current scanline.
func (r *Rasteriser) fillLarge(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		aMin, _ := a.yRange()
		bMin, _ := b.yRange()
		return cmp.Compare(aMin, bMin)
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bot := float64(y + 1)

		for next < len(r.edges) {
			if eyMin, _ := r.edges[next].yRange(); eyMin >= bot {
				break
			}
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if _, eyMax := e.yRange(); eyMax <= top {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			r.accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if trimmed, offs := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offs, trimmed)
		}
	}
}

const (
	// defaultFlatness is the default curve approximation tolerance in
	// device pixels.
	defaultFlatness = 0.25

	// defaultSmallArea is the bounding box area below which paths are
	// rasterised with full 2D buffers.
	defaultSmallArea = 65536

	// horizontalEdgeThreshold is the smallest vertical extent for which an
	// edge is kept.
	horizontalEdgeThreshold = 1e-10
)
