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

package deform

import (
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"
)

// DefaultSubdivisions is the number of pieces each edge is cut into for
// mesh warping.
const DefaultSubdivisions = 10

// Sample evaluates seg at n+1 equally spaced parameter values 0, 1/n, ..., 1.
// The end points are returned exactly.
func Sample(seg curve.CubicBez, n int) []vec.Vec2 {
	if n < 1 {
		n = 1
	}
	res := make([]vec.Vec2, n+1)
	res[0] = Vec(seg.P0)
	for i := 1; i < n; i++ {
		res[i] = Vec(seg.Eval(float64(i) / float64(n)))
	}
	res[n] = Vec(seg.P3)
	return res
}

// Lerp returns the point at fraction t along the straight line from p1 to p2.
func Lerp(p1, p2 vec.Vec2, t float64) vec.Vec2 {
	return p1.Add(p2.Sub(p1).Mul(t))
}

// Fan is a triangle fan approximating the deformed polygon.  Triangle k has
// the corners Vertices[3k], Vertices[3k+1], Vertices[3k+2]; the corresponding
// texture coordinates are stored at the same indices of TexCoords.
type Fan struct {
	Vertices  []vec.Vec2
	TexCoords []vec.Vec2
}

// AppendFan adds the triangles for one closed polygon to f.
//
// Every edge of ring is deformed with the scale s and cut into n pieces.
// Each piece forms a triangle with the deformed centre center+offset.  The
// texture coordinates refer to the undeformed polygon: the apex maps to
// center and the piece end points map to the matching fractions of the
// straight edge.
func (f *Fan) AppendFan(ring []vec.Vec2, center vec.Vec2, tension, s float64, offset vec.Vec2, n int) {
	if n < 1 {
		n = 1
	}
	apex := center.Add(offset)
	segs := Outline(ring, center, tension, s, offset)
	for i, seg := range segs {
		p1 := ring[i]
		p2 := ring[(i+1)%len(ring)]
		pts := Sample(seg, n)
		for j := range n {
			t1 := float64(j) / float64(n)
			t2 := float64(j+1) / float64(n)
			f.Vertices = append(f.Vertices, apex, pts[j], pts[j+1])
			f.TexCoords = append(f.TexCoords, center, Lerp(p1, p2, t1), Lerp(p1, p2, t2))
		}
	}
}

// Len returns the number of triangles in f.
func (f *Fan) Len() int {
	return len(f.Vertices) / 3
}
