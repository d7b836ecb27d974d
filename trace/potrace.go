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
	"fmt"

	"github.com/dennwc/gotrace"
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// curvePieces is the number of straight pieces used for each curved segment
// returned by potrace.
const curvePieces = 8

// Potrace traces masks using the potrace algorithm.
//
// Corner smoothing and curve optimisation are switched off, so that every
// outline is a polygon through the pixel corners of the mask.
type Potrace struct {
	// TurdSize is the area (in pixels) below which regions are dropped.
	TurdSize int

	// TurnPolicy decides how ambiguous pixel configurations are resolved.
	TurnPolicy gotrace.TurnPolicy
}

// DefaultPotrace returns the tracer configuration used by default.
func DefaultPotrace() *Potrace {
	return &Potrace{
		TurdSize:   gotrace.Defaults.TurdSize,
		TurnPolicy: gotrace.Defaults.TurnPolicy,
	}
}

// Trace implements the [Tracer] interface.
func (t *Potrace) Trace(m *Mask) ([]*path.Data, error) {
	if m.Width <= 0 || m.Height <= 0 || m.Count() == 0 {
		return nil, nil
	}

	bm := gotrace.NewBitmap(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[y*m.Width+x] {
				bm.Set(x, y, true)
			}
		}
	}

	params := &gotrace.Params{
		TurdSize:     t.TurdSize,
		TurnPolicy:   t.TurnPolicy,
		AlphaMax:     0,
		OptiCurve:    false,
		OptTolerance: 0,
	}
	paths, err := gotrace.Trace(bm, params)
	if err != nil {
		return nil, fmt.Errorf("potrace: %w", err)
	}

	// A positive path starts a new shape, the negative paths which follow
	// are its holes.
	var res []*path.Data
	var cur *path.Data
	for _, p := range preorder(paths, nil, make(map[*gotrace.Segment]bool)) {
		if p.Sign > 0 || cur == nil {
			cur = &path.Data{}
			res = append(res, cur)
		}
		appendCurve(cur, p.Curve)
	}
	return res, nil
}

// preorder lists every path of the tree exactly once, each path before its
// children.  Paths which already appear in the top-level list are not
// repeated when they are reached again through Childs.
func preorder(paths []gotrace.Path, res []gotrace.Path, seen map[*gotrace.Segment]bool) []gotrace.Path {
	for _, p := range paths {
		if len(p.Curve) > 0 && !seen[&p.Curve[0]] {
			seen[&p.Curve[0]] = true
			res = append(res, p)
		}
		res = preorder(p.Childs, res, seen)
	}
	return res
}

// appendCurve adds one closed potrace curve to dst as a polygon.
func appendCurve(dst *path.Data, segs []gotrace.Segment) {
	start := segs[len(segs)-1].Pnt[2]
	dst.MoveTo(toVec(start))
	last := start
	for i, s := range segs {
		switch s.Type {
		case gotrace.TypeCorner:
			dst.LineTo(toVec(s.Pnt[1]))
		case gotrace.TypeBezier:
			c := curve.CubicBez{
				P0: curve.Pt(last.X, last.Y),
				P1: curve.Pt(s.Pnt[0].X, s.Pnt[0].Y),
				P2: curve.Pt(s.Pnt[1].X, s.Pnt[1].Y),
				P3: curve.Pt(s.Pnt[2].X, s.Pnt[2].Y),
			}
			for k := 1; k < curvePieces; k++ {
				q := c.Eval(float64(k) / curvePieces)
				dst.LineTo(vec.Vec2{X: q.X, Y: q.Y})
			}
		}
		if i < len(segs)-1 {
			dst.LineTo(toVec(s.Pnt[2]))
		}
		last = s.Pnt[2]
	}
	dst.Close()
}

func toVec(p gotrace.Point) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}
