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

package trace

import (
	"image"
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestNewMask(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(0, 0, color.RGBA{A: 10})
	img.SetRGBA(1, 0, color.RGBA{A: 11})
	img.SetRGBA(3, 2, color.RGBA{R: 255, A: 255})

	m := NewMask(img, 10)
	if m.Width != 4 || m.Height != 3 {
		t.Fatalf("size %dx%d", m.Width, m.Height)
	}
	if m.At(0, 0) {
		t.Error("alpha equal to the threshold is foreground")
	}
	if !m.At(1, 0) || !m.At(3, 2) {
		t.Error("missing foreground pixels")
	}
	if m.Count() != 2 {
		t.Errorf("count = %d", m.Count())
	}
	if m.At(-1, 0) || m.At(4, 0) || m.At(0, 3) {
		t.Error("pixels outside the mask are set")
	}
}

func TestNewMaskSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.SetRGBA(5, 6, color.RGBA{A: 255})
	sub := img.SubImage(image.Rect(4, 4, 8, 8)).(*image.RGBA)

	m := NewMask(sub, 0)
	if m.Width != 4 || m.Height != 4 {
		t.Fatalf("size %dx%d", m.Width, m.Height)
	}
	if !m.At(1, 2) || m.Count() != 1 {
		t.Error("sub-image offset not honoured")
	}
}

func fillMask(w, h int, inside func(x, y float64) bool) *Mask {
	m := &Mask{Width: w, Height: h, Pix: make([]bool, w*h)}
	for y := range h {
		for x := range w {
			m.Pix[y*w+x] = inside(float64(x)+0.5, float64(y)+0.5)
		}
	}
	return m
}

// polygons splits p into its subpaths.
func polygons(p *path.Data) [][]vec.Vec2 {
	var res [][]vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			res = append(res, []vec.Vec2{p.Coords[k]})
			k++
		case path.CmdLineTo:
			res[len(res)-1] = append(res[len(res)-1], p.Coords[k])
			k++
		case path.CmdQuadTo:
			k += 2
		case path.CmdCubeTo:
			k += 3
		}
	}
	return res
}

func area(poly []vec.Vec2) float64 {
	a := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(a) / 2
}

func TestPotraceShapes(t *testing.T) {
	type testCase struct {
		name     string
		mask     *Mask
		shapes   int
		subpaths []int
		area     float64
	}
	cases := []testCase{
		{
			name:     "square",
			mask:     fillMask(40, 40, func(x, y float64) bool { return x > 10 && x < 30 && y > 10 && y < 30 }),
			shapes:   1,
			subpaths: []int{1},
			area:     400,
		},
		{
			name: "ring",
			mask: fillMask(60, 60, func(x, y float64) bool {
				r := math.Hypot(x-30, y-30)
				return r < 25 && r > 12
			}),
			shapes:   1,
			subpaths: []int{2},
			area:     math.Pi * (25*25 - 12*12),
		},
		{
			name: "two blobs",
			mask: fillMask(80, 40, func(x, y float64) bool {
				return math.Hypot(x-20, y-20) < 12 || math.Hypot(x-60, y-20) < 12
			}),
			shapes:   2,
			subpaths: []int{1, 1},
			area:     2 * math.Pi * 12 * 12,
		},
	}

	tr := DefaultPotrace()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			paths, err := tr.Trace(c.mask)
			if err != nil {
				t.Fatal(err)
			}
			if len(paths) != c.shapes {
				t.Fatalf("got %d shapes, want %d", len(paths), c.shapes)
			}
			total := 0.0
			for i, p := range paths {
				polys := polygons(p)
				if len(polys) != c.subpaths[i] {
					t.Errorf("shape %d: got %d subpaths, want %d", i, len(polys), c.subpaths[i])
				}
				for j, poly := range polys {
					a := area(poly)
					if j > 0 {
						a = -a
					}
					total += a
				}
			}
			if math.Abs(total-c.area) > 0.05*c.area {
				t.Errorf("area %g, want about %g", total, c.area)
			}
		})
	}
}

func TestPotraceBounds(t *testing.T) {
	m := fillMask(40, 40, func(x, y float64) bool { return x > 10 && x < 30 && y > 10 && y < 30 })
	paths, err := DefaultPotrace().Trace(m)
	if err != nil {
		t.Fatal(err)
	}
	for _, poly := range polygons(paths[0]) {
		for _, p := range poly {
			if p.X < 9.5 || p.X > 30.5 || p.Y < 9.5 || p.Y > 30.5 {
				t.Errorf("vertex %v outside the square", p)
			}
		}
	}
}

func TestPotraceEmpty(t *testing.T) {
	tr := DefaultPotrace()

	paths, err := tr.Trace(&Mask{Width: 10, Height: 10, Pix: make([]bool, 100)})
	if err != nil || paths != nil {
		t.Errorf("empty mask: %v, %v", paths, err)
	}

	paths, err = tr.Trace(&Mask{})
	if err != nil || paths != nil {
		t.Errorf("zero mask: %v, %v", paths, err)
	}

	speck := fillMask(10, 10, func(x, y float64) bool { return x > 4 && x < 5 && y > 4 && y < 5 })
	paths, err = tr.Trace(speck)
	if err != nil || len(paths) != 0 {
		t.Errorf("single pixel: %d paths, %v", len(paths), err)
	}
}
