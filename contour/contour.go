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

// Package contour turns traced paths into point sequences and simplifies
// them.
//
// The functions in this package operate on closed polygons given as slices
// of points.  A polygon may carry an explicit closing point, equal to its
// first point; functions document whether they expect or produce one.
package contour

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Subpath is one contour loop of a traced shape.
type Subpath struct {
	Points []vec.Vec2
	Closed bool
}

// Extract splits a path into its subpaths.  A move command starts a new
// subpath, emitting the previous one if it has points.  Line commands append
// a point.  A close command marks the current subpath closed and emits it.
// Curve commands contribute their end point.  Commands which occur before
// the first move are ignored.
func Extract(p *path.Data) []Subpath {
	var res []Subpath
	var cur *Subpath

	k := 0
	for _, cmd := range p.Cmds {
		var pt vec.Vec2
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			pt = p.Coords[k]
			k++
		case path.CmdQuadTo:
			pt = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			pt = p.Coords[k+2]
			k += 3
		}

		switch cmd {
		case path.CmdMoveTo:
			if cur != nil && len(cur.Points) > 0 {
				res = append(res, *cur)
			}
			cur = &Subpath{Points: []vec.Vec2{pt}}
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			if cur != nil {
				cur.Points = append(cur.Points, pt)
			}
		case path.CmdClose:
			if cur != nil {
				cur.Closed = true
				res = append(res, *cur)
				cur = nil
			}
		}
	}
	if cur != nil && len(cur.Points) > 0 {
		res = append(res, *cur)
	}
	return res
}

// Ring returns a copy of the subpath's points, without a final point which
// repeats the first one.
func (s Subpath) Ring() []vec.Vec2 {
	pts := s.Points
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return append([]vec.Vec2(nil), pts...)
}

// Bounds returns the smallest axis-parallel rectangle containing all points
// of the given subpaths, as (min, max).  If there are no points, both
// corners are zero.
func Bounds(subs []Subpath) (lo, hi vec.Vec2) {
	first := true
	for _, s := range subs {
		for _, p := range s.Points {
			if first {
				lo, hi = p, p
				first = false
				continue
			}
			lo.X = min(lo.X, p.X)
			lo.Y = min(lo.Y, p.Y)
			hi.X = max(hi.X, p.X)
			hi.Y = max(hi.Y, p.Y)
		}
	}
	return lo, hi
}

// ShiftPoints rotates a closed polygon so that it starts at the point
// farthest from center, and appends a copy of that point to close the loop.
// The input must not contain a closing point.  If several points have the
// maximal distance, the first one wins.
//
// The result does not depend on where the tracer happened to start the
// loop, which keeps simplification and deformation free of seam artefacts.
func ShiftPoints(points []vec.Vec2, center vec.Vec2) []vec.Vec2 {
	n := len(points)
	if n == 0 {
		return nil
	}

	best, bestD := 0, -1.0
	for i, p := range points {
		d := p.Sub(center)
		if dd := d.X*d.X + d.Y*d.Y; dd > bestD {
			best, bestD = i, dd
		}
	}

	res := make([]vec.Vec2, 0, n+1)
	res = append(res, points[best:]...)
	res = append(res, points[:best]...)
	return append(res, points[best])
}
