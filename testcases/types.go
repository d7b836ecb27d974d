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
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pucker/raster"
)

// TestCase defines one input image for the effect.
type TestCase struct {
	Name   string          // lowercase a-z and _ only
	Width  int             // image width in pixels
	Height int             // image height in pixels
	Path   *path.Data      // opaque region, nil for a fully transparent image
	Rule   raster.FillRule // fill rule for Path
	Color  color.RGBA      // colour of the opaque region
	Shaded bool            // use a colour gradient instead of Color
}

// Image renders the test case.  Pixels inside the path get full alpha,
// edge pixels are anti-aliased.
func (tc TestCase) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tc.Width, tc.Height))
	if tc.Path == nil {
		return img
	}

	mask := image.NewAlpha(img.Rect)
	clip := rect.Rect{URx: float64(tc.Width), URy: float64(tc.Height)}
	r := raster.NewRasteriser(clip)
	r.FillAlpha(tc.Path, tc.Rule, mask)

	var src image.Image = image.NewUniform(tc.Color)
	if tc.Shaded {
		src = gradient(tc.Width, tc.Height)
	}
	draw.DrawMask(img, img.Rect, src, image.Point{}, mask, image.Point{}, draw.Src)
	return img
}

// gradient returns an opaque image whose red and green channels increase
// from left to right and from top to bottom.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / max(w-1, 1)),
				G: uint8(255 * y / max(h-1, 1)),
				B: 0x80,
				A: 0xff,
			})
		}
	}
	return img
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
