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

package raster

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"
)

// FillTriangle sets every pixel of dst whose centre lies inside the triangle
// abc to 0xff, and returns the rectangle of pixels which were set.
// Degenerate triangles set no pixels.
//
// A pixel centre on an edge shared by two triangles is assigned to exactly
// one of them, so that the triangles of a mesh cover each pixel once.
func FillTriangle(dst *image.Alpha, a, b, c vec.Vec2) image.Rectangle {
	area := cross(a, b, c)
	if area == 0 || math.IsNaN(area) {
		return image.Rectangle{}
	}
	if area < 0 {
		b, c = c, b
	}

	bbox := image.Rect(
		int(math.Floor(min(a.X, b.X, c.X))), int(math.Floor(min(a.Y, b.Y, c.Y))),
		int(math.Ceil(max(a.X, b.X, c.X))), int(math.Ceil(max(a.Y, b.Y, c.Y))),
	).Intersect(dst.Rect)

	var touched image.Rectangle
	for y := bbox.Min.Y; y < bbox.Max.Y; y++ {
		row := dst.Pix[(y-dst.Rect.Min.Y)*dst.Stride:]
		x0, x1 := -1, -1
		for x := bbox.Min.X; x < bbox.Max.X; x++ {
			p := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if !inside(a, b, p) || !inside(b, c, p) || !inside(c, a, p) {
				continue
			}
			row[x-dst.Rect.Min.X] = 0xff
			if x0 < 0 {
				x0 = x
			}
			x1 = x + 1
		}
		if x0 >= 0 {
			touched = touched.Union(image.Rect(x0, y, x1, y+1))
		}
	}
	return touched
}

// inside reports whether p lies on the interior side of the edge from v0 to
// v1, for a triangle with positive orientation.  Points exactly on the edge
// are inside for one of the two directions of the edge only.
func inside(v0, v1, p vec.Vec2) bool {
	// Evaluate the edge in a canonical direction, so that the two
	// triangles sharing an edge get exactly opposite values.
	var e float64
	if v1.X < v0.X || v1.X == v0.X && v1.Y < v0.Y {
		e = -cross(v1, v0, p)
	} else {
		e = cross(v0, v1, p)
	}
	if e != 0 {
		return e > 0
	}
	d := v1.Sub(v0)
	return d.Y > 0 || d.Y == 0 && d.X < 0
}

// cross returns twice the signed area of the triangle abc.
func cross(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
