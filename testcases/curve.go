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


package testcases

import (
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/pucker/raster"
)

// curveCases have outlines made of Bézier curves.  After tracing these
// give long runs of short, nearly collinear edges, which exercise the
// simplification stage.
var curveCases = []TestCase{
	{
		Name:   "quadratic",
		Path:   quadraticCurve(20, 100, 64, 20, 108, 100),
		Width:  128,
		Height: 128,
		Rule:   raster.NonZero,
		Color:  blue,
	},
	{
		Name:   "quadratic_below",
		Path:   quadraticCurve(20, 30, 64, 110, 108, 30),
		Width:  128,
		Height: 128,
		Rule:   raster.NonZero,
		Color:  red,
	},
	{
		Name:   "cubic",
		Path:   cubicCurve(20, 100, 40, 20, 88, 20, 108, 100),
		Width:  128,
		Height: 128,
		Rule:   raster.NonZero,
		Color:  green,
	},
	{
		Name:   "cubic_deep",
		Path:   cubicCurve(20, 100, 30, 10, 98, 10, 108, 100),
		Width:  128,
		Height: 128,
		Rule:   raster.NonZero,
		Shaded: true,
	},
	{
		Name:   "s_shape",
		Path:   sCurve(20, 64, 108, 64),
		Width:  128,
		Height: 128,
		Rule:   raster.NonZero,
		Color:  blue,
	},
}

// quadraticCurve builds a closed shape bounded by a quadratic Bézier
// curve and its chord.
func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(cx, cy), pt(x2, y2)).
		Close()
}

// cubicCurve builds a closed shape bounded by a cubic Bézier curve and
// its chord.
func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2)).
		Close()
}

// sCurve builds a closed S-shaped region from two quadratic Bézier
// curves, one above and one below the line between the endpoints.
func sCurve(x1, y1, x2, y2 float64) *path.Data {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2
	qx := (x2 - x1) / 4
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(x1+qx, y1-50), pt(midX, midY)).
		QuadTo(pt(x2-qx, y2+50), pt(x2, y2)).
		QuadTo(pt(x2-qx, y2+10), pt(midX, midY+4)).
		QuadTo(pt(x1+qx, y1-10), pt(x1, y1)).
		Close()
}
