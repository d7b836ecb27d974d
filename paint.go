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
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pucker/raster"
)

// painter draws layers onto a canvas.  The coverage mask and the
// rasteriser are kept between frames; the mask is all zero between calls.
type painter struct {
	rast *raster.Rasteriser
	mask *image.Alpha
}

// prepare readies the painter for a canvas of the given size.
func (pt *painter) prepare(size image.Point) {
	clip := rect.Rect{URx: float64(size.X), URy: float64(size.Y)}
	if pt.rast == nil {
		pt.rast = raster.NewRasteriser(clip)
	} else {
		pt.rast.Reset(clip)
	}
	if pt.mask == nil || pt.mask.Rect.Size() != size {
		pt.mask = image.NewAlpha(image.Rectangle{Max: size})
	}
}

// paint draws all layers onto canvas, in order.  The canvas must have its
// origin at (0, 0); src is the input image, with its origin at (0, 0).
func (pt *painter) paint(canvas, src *image.RGBA, layers []Layer, pad image.Point, p Params) {
	pt.prepare(canvas.Rect.Size())

	for i := range layers {
		l := &layers[i]
		switch {
		case l.Mesh != nil:
			pt.warp(canvas, src, l)
		case p.SolidColor:
			fill := image.NewUniform(centerColor(src, l.Center))
			pt.fill(canvas, l.Outline, fill, image.Point{})
		default:
			tex := clampedImage{img: src}
			pt.fill(canvas, l.Outline, tex, pad)
		}
	}
}

// fill composites src over canvas, inside the outline.  Canvas pixel (x, y)
// takes its colour from src pixel (x, y) - srcOffset.
func (pt *painter) fill(canvas *image.RGBA, outline *path.Data, src image.Image, srcOffset image.Point) {
	r := pt.rast.FillAlpha(outline, raster.EvenOdd, pt.mask)
	if r.Empty() {
		return
	}
	draw.DrawMask(canvas, r, src, r.Min.Sub(srcOffset), pt.mask, r.Min, draw.Over)
	raster.ClearAlpha(pt.mask, r)
}

// warp maps every triangle of the layer's mesh from the input image onto
// the canvas.  Each triangle is restricted to the pixels whose centres it
// contains, so that neighbouring triangles neither overlap nor leave gaps.
func (pt *painter) warp(canvas, src *image.RGBA, l *Layer) {
	tex := clampedImage{img: src}
	m := l.Mesh
	for k := range m.Len() {
		v := m.Vertices[3*k : 3*k+3]
		uv := m.TexCoords[3*k : 3*k+3]

		aff, ok := triangleMap(uv, v)
		if !ok {
			continue
		}

		r := raster.FillTriangle(pt.mask, v[0], v[1], v[2])
		if r.Empty() {
			continue
		}

		sr := texRect(uv)
		draw.ApproxBiLinear.Transform(canvas, aff, tex, sr, draw.Over, &draw.Options{
			DstMask:  pt.mask,
			DstMaskP: image.Point{},
		})
		raster.ClearAlpha(pt.mask, r)
	}
}

// triangleMap returns the affine map which takes the triangle from onto the
// triangle to.  The second return value is false if either triangle is
// degenerate.
func triangleMap(from, to []vec.Vec2) (f64.Aff3, bool) {
	du1 := from[1].Sub(from[0])
	du2 := from[2].Sub(from[0])
	dv1 := to[1].Sub(to[0])
	dv2 := to[2].Sub(to[0])

	det := du1.X*du2.Y - du2.X*du1.Y
	if math.Abs(det) < degenerateArea || math.Abs(dv1.X*dv2.Y-dv2.X*dv1.Y) < degenerateArea {
		return f64.Aff3{}, false
	}

	a00 := (dv1.X*du2.Y - dv2.X*du1.Y) / det
	a01 := (dv2.X*du1.X - dv1.X*du2.X) / det
	a10 := (dv1.Y*du2.Y - dv2.Y*du1.Y) / det
	a11 := (dv2.Y*du1.X - dv1.Y*du2.X) / det
	a02 := to[0].X - a00*from[0].X - a01*from[0].Y
	a12 := to[0].Y - a10*from[0].X - a11*from[0].Y
	return f64.Aff3{a00, a01, a02, a10, a11, a12}, true
}

// degenerateArea is the smallest doubled triangle area, in square pixels,
// which is drawn.
const degenerateArea = 1e-9

// texRect returns the integer rectangle around the texture triangle, with a
// margin for the bilinear filter and for mask pixels whose centre lies just
// outside the triangle.
func texRect(uv []vec.Vec2) image.Rectangle {
	x0, y0 := uv[0].X, uv[0].Y
	x1, y1 := x0, y0
	for _, p := range uv[1:] {
		x0, x1 = min(x0, p.X), max(x1, p.X)
		y0, y1 = min(y0, p.Y), max(y1, p.Y)
	}
	const margin = 4
	return image.Rect(
		int(math.Floor(x0))-margin, int(math.Floor(y0))-margin,
		int(math.Ceil(x1))+margin, int(math.Ceil(y1))+margin)
}

// centerColor returns the colour of the input pixel nearest to center, or
// opaque white if that pixel is fully transparent.
func centerColor(src *image.RGBA, center vec.Vec2) color.RGBA {
	b := src.Rect
	x := int(clamp(center.X, 0, float64(b.Dx()-1)))
	y := int(clamp(center.Y, 0, float64(b.Dy()-1)))
	c := src.RGBAAt(b.Min.X+x, b.Min.Y+y)
	if c.A == 0 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// clampedImage extends img to the whole plane by repeating its edge
// pixels.
type clampedImage struct {
	img *image.RGBA
}

// infinite is a rectangle larger than any canvas.
var infinite = image.Rect(-1<<24, -1<<24, 1<<24, 1<<24)

func (c clampedImage) ColorModel() color.Model { return color.RGBAModel }

func (c clampedImage) Bounds() image.Rectangle { return infinite }

func (c clampedImage) At(x, y int) color.Color { return c.RGBAAt(x, y) }

// RGBAAt returns the colour of the image pixel nearest to (x, y).
func (c clampedImage) RGBAAt(x, y int) color.RGBA {
	b := c.img.Rect
	if b.Empty() {
		return color.RGBA{}
	}
	x = min(max(x, b.Min.X), b.Max.X-1)
	y = min(max(y, b.Min.Y), b.Max.Y-1)
	return c.img.RGBAAt(x, y)
}
