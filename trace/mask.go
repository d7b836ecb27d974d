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

// Package trace converts the alpha channel of an image into polygonal
// outlines.
//
// The input is first thresholded into a binary [Mask].  A [Tracer] then
// turns the mask into paths, one path per connected shape.  Each path holds
// the outer boundary of the shape followed by the boundaries of its holes,
// so that filling it with the even-odd rule reproduces the mask.
package trace

import (
	"image"

	"seehuhn.de/go/geom/path"
)

// Tracer finds the outlines of the foreground regions of a mask.
type Tracer interface {
	Trace(m *Mask) ([]*path.Data, error)
}

// Mask is a binary image.  Pixel (x, y) is stored at Pix[y*Width+x].
type Mask struct {
	Width, Height int
	Pix           []bool
}

// NewMask marks every pixel of img whose alpha value is strictly greater than
// threshold.  Mask coordinates are relative to img.Rect.Min.
func NewMask(img *image.RGBA, threshold uint8) *Mask {
	b := img.Rect
	m := &Mask{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]bool, b.Dx()*b.Dy()),
	}
	for y := 0; y < m.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < m.Width; x++ {
			m.Pix[y*m.Width+x] = row[4*x+3] > threshold
		}
	}
	return m
}

// At reports whether pixel (x, y) is set.  Pixels outside the mask are
// unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}
