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

package pucker

import (
	"errors"
	"image"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pucker/contour"
)

// ErrDegenerateShape is returned when a traced shape has a bounding box of
// zero width or height.
var ErrDegenerateShape = errors.New("degenerate shape")

// Shape is one traced region of the input, together with its holes.
type Shape struct {
	Subpaths []contour.Subpath

	// Bounds is the bounding box of all subpaths.
	Bounds rect.Rect

	// Center is the fixed point of the deformation.
	Center vec.Vec2
}

// Radius returns half the larger side of the bounding box.
func (s *Shape) Radius() float64 {
	return max(s.Bounds.URx-s.Bounds.LLx, s.Bounds.URy-s.Bounds.LLy) / 2
}

// buildShapes splits the traced paths into subpaths and chooses the centre
// of each shape.  Paths without any points are ignored.
func buildShapes(paths []*path.Data, globalCenter bool, width, height int) ([]Shape, error) {
	var shapes []Shape
	for _, p := range paths {
		subs := contour.Extract(p)
		if len(subs) == 0 {
			continue
		}
		lo, hi := contour.Bounds(subs)
		if hi.X <= lo.X || hi.Y <= lo.Y {
			return nil, ErrDegenerateShape
		}

		s := Shape{
			Subpaths: subs,
			Bounds:   rect.Rect{LLx: lo.X, LLy: lo.Y, URx: hi.X, URy: hi.Y},
		}
		if globalCenter {
			s.Center = vec.Vec2{X: float64(width) / 2, Y: float64(height) / 2}
		} else {
			s.Center = vec.Vec2{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// Padding returns the margin added on each side of an image of the given
// size, so that the deformed shapes fit onto the canvas.
func Padding(width, height int, strength float64) image.Point {
	s := math.Abs(strength)
	return image.Point{
		X: int(float64(width) * s),
		Y: int(float64(height) * s),
	}
}
