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

	"seehuhn.de/go/geom/path"
)

// FillAlpha rasterises p into dst and returns the rectangle of pixels which
// received non-zero coverage.  Existing mask values are overwritten only
// where the new coverage is larger, so that several paths can be
// accumulated into one mask.  Device coordinates are dst coordinates;
// output outside dst.Rect is discarded.
func (r *Rasteriser) FillAlpha(p *path.Data, rule FillRule, dst *image.Alpha) image.Rectangle {
	var touched image.Rectangle
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		row := dst.Pix[(y-dst.Rect.Min.Y)*dst.Stride:]
		x0, x1 := -1, -1
		for i, c := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			a := uint8(min(255, int(c*255+0.5)))
			if a == 0 {
				continue
			}
			k := x - dst.Rect.Min.X
			if a > row[k] {
				row[k] = a
			}
			if x0 < 0 {
				x0 = x
			}
			x1 = x + 1
		}
		if x0 >= 0 {
			touched = touched.Union(image.Rect(x0, y, x1, y+1))
		}
	})
	return touched
}

// ClearAlpha zeroes the pixels of dst inside rect.
func ClearAlpha(dst *image.Alpha, rect image.Rectangle) {
	rect = rect.Intersect(dst.Rect)
	if rect.Empty() {
		return
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		i := dst.PixOffset(rect.Min.X, y)
		clear(dst.Pix[i : i+rect.Dx()])
	}
}
