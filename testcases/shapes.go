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
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/pucker/raster"
)

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

var (
	red   = color.RGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
	blue  = color.RGBA{R: 0x20, G: 0x40, B: 0xc0, A: 0xff}
	green = color.RGBA{R: 0x20, G: 0xa0, B: 0x40, A: 0xff}
)

var circleCases = []TestCase{
	{
		Name:   "r50",
		Path:   circle(100, 100, 50),
		Width:  200,
		Height: 200,
		Rule:   raster.NonZero,
		Color:  red,
	},
	{
		Name:   "r50_shaded",
		Path:   circle(100, 100, 50),
		Width:  200,
		Height: 200,
		Rule:   raster.NonZero,
		Shaded: true,
	},
	{
		Name:   "off_center",
		Path:   circle(60, 70, 30),
		Width:  160,
		Height: 120,
		Rule:   raster.NonZero,
		Color:  blue,
	},
	{
		Name:   "ellipse",
		Path:   ellipse(80, 50, 60, 25),
		Width:  160,
		Height: 100,
		Rule:   raster.NonZero,
		Color:  green,
	},
}

var polygonCases = []TestCase{
	{
		Name:   "square",
		Path:   rectangle(30, 30, 90, 90),
		Width:  120,
		Height: 120,
		Rule:   raster.NonZero,
		Color:  blue,
	},
	{
		Name:   "star",
		Path:   fivePointStar(64, 66, 50),
		Width:  128,
		Height: 128,
		Rule:   raster.NonZero,
		Color:  red,
	},
	{
		Name:   "triangle",
		Path:   triangle(20, 100, 64, 20, 108, 100),
		Width:  128,
		Height: 120,
		Rule:   raster.NonZero,
		Shaded: true,
	},
}

var holeCases = []TestCase{
	{
		Name:   "circle_ring",
		Path:   circleRing(100, 100, 60, 30),
		Width:  200,
		Height: 200,
		Rule:   raster.EvenOdd,
		Color:  green,
	},
	{
		Name:   "square_ring",
		Path:   squareRing(64, 64, 45, 20),
		Width:  128,
		Height: 128,
		Rule:   raster.EvenOdd,
		Shaded: true,
	},
}

var multiCases = []TestCase{
	{
		Name:   "two_blobs",
		Path:   join(circle(50, 60, 30), circle(150, 60, 30)),
		Width:  200,
		Height: 120,
		Rule:   raster.NonZero,
		Color:  blue,
	},
	{
		Name:   "blob_and_ring",
		Path:   join(circle(50, 60, 30), circleRing(150, 60, 40, 15)),
		Width:  200,
		Height: 120,
		Rule:   raster.EvenOdd,
		Shaded: true,
	},
}

var emptyCases = []TestCase{
	{
		Name:   "transparent",
		Width:  100,
		Height: 80,
	},
}

// circle builds an approximate circle using four cubic Bezier curves.
func circle(cx, cy, r float64) *path.Data {
	k := r * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).                                 // start at right
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)). // top-right quadrant
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)). // top-left quadrant
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)). // bottom-left quadrant
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)). // bottom-right quadrant
		Close()
}

// ellipse builds an approximate ellipse using four cubic Bezier curves.
func ellipse(cx, cy, rx, ry float64) *path.Data {
	kx := rx * kappa
	ky := ry * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+rx, cy)).
		CubeTo(pt(cx+rx, cy-ky), pt(cx+kx, cy-ry), pt(cx, cy-ry)).
		CubeTo(pt(cx-kx, cy-ry), pt(cx-rx, cy-ky), pt(cx-rx, cy)).
		CubeTo(pt(cx-rx, cy+ky), pt(cx-kx, cy+ry), pt(cx, cy+ry)).
		CubeTo(pt(cx+kx, cy+ry), pt(cx+rx, cy+ky), pt(cx+rx, cy)).
		Close()
}

// circleRing builds a disc with a concentric hole, for the even-odd rule.
func circleRing(cx, cy, outer, inner float64) *path.Data {
	return join(circle(cx, cy, outer), circle(cx, cy, inner))
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// squareRing builds a square with a square hole, for the even-odd rule.
func squareRing(cx, cy, outerSize, innerSize float64) *path.Data {
	return join(
		rectangle(cx-outerSize, cy-outerSize, cx+outerSize, cy+outerSize),
		rectangle(cx-innerSize, cy-innerSize, cx+innerSize, cy+innerSize))
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds the outline of a five-pointed star, without
// self-intersections.
func fivePointStar(cx, cy, r float64) *path.Data {
	const innerRatio = 0.382
	p := &path.Data{}
	for i := range 10 {
		radius := r
		if i%2 == 1 {
			radius = r * innerRatio
		}
		angle := float64(i)*math.Pi/5 - math.Pi/2
		q := pt(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
		if i == 0 {
			p.MoveTo(q)
		} else {
			p.LineTo(q)
		}
	}
	return p.Close()
}

// join concatenates paths.
func join(paths ...*path.Data) *path.Data {
	res := &path.Data{}
	for _, p := range paths {
		res.Cmds = append(res.Cmds, p.Cmds...)
		res.Coords = append(res.Coords, p.Coords...)
	}
	return res
}
