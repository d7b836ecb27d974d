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
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, threshold := range []int{1 << 30, 0} {
		r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1})
		r.smallArea = threshold

		coverage := make([]float32, 10)
		r.FillNonZero(triangle, func(y, xMin int, cov []float32) {
			if y == 0 {
				copy(coverage[xMin:], cov)
			}
		})

		for x := range 10 {
			want := float32(2*x+1) / 20.0
			if math.Abs(float64(coverage[x]-want)) > 1e-6 {
				t.Errorf("threshold %d, pixel %d: expected coverage %.4f, got %.4f",
					threshold, x, want, coverage[x])
			}
		}
	}
}

// TestStrategies checks that the 2D buffer and active edge list strategies
// produce the same coverage.
func TestStrategies(t *testing.T) {
	cases := []struct {
		name string
		p    *path.Data
		rule FillRule
	}{
		{"ring_evenodd", ring(32, 32, 25, 12), EvenOdd},
		{"ring_nonzero", ring(32, 32, 25, 12), NonZero},
		{"star_evenodd", star(32, 32, 28), EvenOdd},
		{"star_nonzero", star(32, 32, 28), NonZero},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := render(tc.p, tc.rule, 64, 64, 1<<30)
			b := render(tc.p, tc.rule, 64, 64, 0)
			for i := range a {
				if math.Abs(float64(a[i]-b[i])) > 1e-5 {
					t.Fatalf("pixel (%d,%d): %g != %g", i%64, i/64, a[i], b[i])
				}
			}
		})
	}
}

func TestEvenOddHole(t *testing.T) {
	cov := render(ring(32, 32, 25, 12), EvenOdd, 64, 64, defaultSmallArea)

	at := func(x, y int) float32 { return cov[y*64+x] }
	if c := at(32, 32); c != 0 {
		t.Errorf("hole centre: coverage %g, want 0", c)
	}
	if c := at(32+18, 32); c < 0.99 {
		t.Errorf("ring band: coverage %g, want 1", c)
	}
	if c := at(1, 1); c != 0 {
		t.Errorf("outside: coverage %g, want 0", c)
	}
}

func TestStarRules(t *testing.T) {
	// the centre of a five-pointed star is covered twice
	nz := render(star(32, 32, 28), NonZero, 64, 64, defaultSmallArea)
	eo := render(star(32, 32, 28), EvenOdd, 64, 64, defaultSmallArea)
	if c := nz[32*64+32]; c < 0.99 {
		t.Errorf("nonzero centre: %g, want 1", c)
	}
	if c := eo[32*64+32]; c > 0.01 {
		t.Errorf("evenodd centre: %g, want 0", c)
	}
}

func TestOpenSubpathIsClosed(t *testing.T) {
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 8}).
		LineTo(vec.Vec2{X: 2, Y: 8})
	cov := render(open, NonZero, 10, 10, defaultSmallArea)
	var sum float64
	for _, c := range cov {
		sum += float64(c)
	}
	if math.Abs(sum-36) > 1e-4 {
		t.Errorf("area %g, want 36", sum)
	}
}

func TestFillAlphaOffsetMask(t *testing.T) {
	sq := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 14, Y: 10}).
		LineTo(vec.Vec2{X: 14, Y: 14}).
		LineTo(vec.Vec2{X: 10, Y: 14}).
		Close()

	mask := image.NewAlpha(image.Rect(8, 8, 12, 12))
	r := NewRasteriser(rect.Rect{URx: 32, URy: 32})
	got := r.FillAlpha(sq, NonZero, mask)
	if want := image.Rect(10, 10, 12, 12); got != want {
		t.Errorf("touched %v, want %v", got, want)
	}
	if v := mask.AlphaAt(11, 11).A; v != 0xff {
		t.Errorf("inside = %d", v)
	}
	if v := mask.AlphaAt(9, 9).A; v != 0 {
		t.Errorf("outside = %d", v)
	}
}

// TestAgainstVector compares the total coverage of an "O" shape with the
// result of golang.org/x/image/vector.
func TestAgainstVector(t *testing.T) {
	const size = 100
	ours := render(makeOPath(50, 50, 45, 30), NonZero, size, size, defaultSmallArea)

	vr := vector.NewRasterizer(size, size)
	addCircleToVector(vr, 50, 50, 45, false)
	addCircleToVector(vr, 50, 50, 30, true)
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	vr.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

	var sumOurs, sumRef float64
	for i := range ours {
		sumOurs += float64(ours[i])
		sumRef += float64(dst.Pix[i]) / 255
	}
	if math.Abs(sumOurs-sumRef) > 0.01*sumRef {
		t.Errorf("area %.1f, x/image/vector has %.1f", sumOurs, sumRef)
	}
	want := math.Pi * (45*45 - 30*30)
	if math.Abs(sumOurs-want) > 0.01*want {
		t.Errorf("area %.1f, want about %.1f", sumOurs, want)
	}
}

func render(p *path.Data, rule FillRule, w, h, threshold int) []float32 {
	r := NewRasteriser(rect.Rect{URx: float64(w), URy: float64(h)})
	r.smallArea = threshold
	out := make([]float32, w*h)
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		copy(out[y*w+xMin:], coverage)
	})
	return out
}

func ring(cx, cy, outer, inner float64) *path.Data {
	p := &path.Data{}
	addCircle(p, cx, cy, outer, false)
	addCircle(p, cx, cy, inner, false)
	return p
}

func star(cx, cy, r float64) *path.Data {
	p := &path.Data{}
	for k, i := range []int{0, 2, 4, 1, 3} {
		phi := float64(i)*2*math.Pi/5 - math.Pi/2
		pt := vec.Vec2{X: cx + r*math.Cos(phi), Y: cy + r*math.Sin(phi)}
		if k == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p.Close()
}

func TestFillTriangleSharedEdge(t *testing.T) {
	// two triangles sharing the diagonal of a square
	a, b := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 16, Y: 0}
	c, d := vec.Vec2{X: 16, Y: 16}, vec.Vec2{X: 0, Y: 16}

	m1 := image.NewAlpha(image.Rect(0, 0, 16, 16))
	m2 := image.NewAlpha(image.Rect(0, 0, 16, 16))
	r1 := FillTriangle(m1, a, b, c)
	r2 := FillTriangle(m2, a, c, d)
	if got := r1.Union(r2); got != m1.Rect {
		t.Errorf("touched %v, want %v", got, m1.Rect)
	}
	for i := range m1.Pix {
		if n := int(m1.Pix[i]/0xff) + int(m2.Pix[i]/0xff); n != 1 {
			t.Fatalf("pixel (%d,%d) covered %d times", i%16, i/16, n)
		}
	}

	ClearAlpha(m1, image.Rect(0, 0, 16, 16))
	for _, v := range m1.Pix {
		if v != 0 {
			t.Fatal("mask not cleared")
		}
	}
}

// TestFillTriangleFan checks that a triangle fan whose apex sits on a pixel
// centre covers every pixel at most once, and the apex pixel exactly once.
func TestFillTriangleFan(t *testing.T) {
	const n = 12
	apex := vec.Vec2{X: 10.5, Y: 10.5}
	var rim [n]vec.Vec2
	for k := range rim {
		phi := 2 * math.Pi * float64(k) / n
		rim[k] = apex.Add(vec.Vec2{X: 8 * math.Cos(phi), Y: 8 * math.Sin(phi)})
	}

	count := make([]int, 21*21)
	for k := range n {
		p0, p1 := rim[k], rim[(k+1)%n]

		m := image.NewAlpha(image.Rect(0, 0, 21, 21))
		if k%2 == 0 {
			FillTriangle(m, apex, p0, p1)
		} else {
			FillTriangle(m, p1, p0, apex)
		}
		for i, v := range m.Pix {
			if v != 0 {
				count[i]++
			}
		}
	}
	for i, c := range count {
		if c > 1 {
			t.Errorf("pixel (%d,%d) covered %d times", i%21, i/21, c)
		}
	}
	if c := count[10*21+10]; c != 1 {
		t.Errorf("apex pixel covered %d times", c)
	}
	if c := count[10*21+15]; c != 1 {
		t.Errorf("interior pixel covered %d times", c)
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	m := image.NewAlpha(image.Rect(0, 0, 8, 8))
	r := FillTriangle(m, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 4, Y: 4}, vec.Vec2{X: 7, Y: 7})
	if !r.Empty() {
		t.Errorf("touched %v", r)
	}
	for _, v := range m.Pix {
		if v != 0 {
			t.Fatal("degenerate triangle set pixels")
		}
	}
}
