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

// Package deform implements the radial pucker and bloat deformation of
// simplified outlines.
//
// Every edge of a closed polygon becomes one cubic Bézier segment.  The two
// control points of an edge sit at a fixed fraction (the tension) of the edge
// vector away from its end points.  The anchors and the control points are
// then scaled radially about the shape centre, with opposite signs:
//
//	anchor  = Morph(p, center, -strength, offset)
//	control = Morph(c, center, +strength, offset)
//
// Negative strength (pucker) pushes the vertices outwards into spikes and
// pulls the middle of each edge inwards.  Positive strength (bloat) does the
// opposite and gives rounded petals.
package deform

import (
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"
)

// Morph scales p radially about center by the factor 1+s and then shifts
// the result by offset.
func Morph(p, center vec.Vec2, s float64, offset vec.Vec2) vec.Vec2 {
	return center.Add(p.Sub(center).Mul(1 + s)).Add(offset)
}

// ControlPoints returns the two interior control points of the edge from p1
// to p2, placed at the fraction tension of the edge vector from each end.
func ControlPoints(p1, p2 vec.Vec2, tension float64) (c1, c2 vec.Vec2) {
	d := p2.Sub(p1)
	return p1.Add(d.Mul(tension)), p2.Sub(d.Mul(tension))
}

// Edge returns the deformed cubic segment for the edge from p1 to p2.
func Edge(p1, p2, center vec.Vec2, tension, strength float64, offset vec.Vec2) curve.CubicBez {
	c1, c2 := ControlPoints(p1, p2, tension)
	return curve.CubicBez{
		P0: Point(Morph(p1, center, -strength, offset)),
		P1: Point(Morph(c1, center, strength, offset)),
		P2: Point(Morph(c2, center, strength, offset)),
		P3: Point(Morph(p2, center, -strength, offset)),
	}
}

// Outline deforms the closed polygon ring.  The result has one segment per
// edge, including the edge from the last vertex back to the first one.
// Rings with fewer than two vertices give no segments.
func Outline(ring []vec.Vec2, center vec.Vec2, tension, strength float64, offset vec.Vec2) []curve.CubicBez {
	n := len(ring)
	if n < 2 {
		return nil
	}
	res := make([]curve.CubicBez, n)
	for i, p1 := range ring {
		p2 := ring[(i+1)%n]
		res[i] = Edge(p1, p2, center, tension, strength, offset)
	}
	return res
}

// Point converts a vector into a curve point.
func Point(v vec.Vec2) curve.Point {
	return curve.Pt(v.X, v.Y)
}

// Vec converts a curve point into a vector.
func Vec(p curve.Point) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}
