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
	"fmt"
	"image"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pucker/contour"
	"seehuhn.de/go/pucker/deform"
	"seehuhn.de/go/pucker/trace"
)

// Layer is the deformed geometry of one shape, in canvas coordinates.
// Exactly one of Outline and Mesh is set.
type Layer struct {
	// Center is the undeformed centre of the shape, in input coordinates.
	Center vec.Vec2

	// Outline is the deformed outline, to be filled with the even-odd
	// rule.  Segments holds the same curves.
	Outline  *path.Data
	Segments []curve.CubicBez

	// Mesh holds the triangles for texture warping.  The texture
	// coordinates refer to the input image.
	Mesh *deform.Fan
}

// Bounds returns the bounding box of the layer geometry.
func (l *Layer) Bounds() rect.Rect {
	var bb curve.Rect
	first := true
	add := func(r curve.Rect) {
		if first {
			bb = r
			first = false
		} else {
			bb = bb.Union(r)
		}
	}
	for _, seg := range l.Segments {
		add(seg.BoundingBox())
	}
	if l.Mesh != nil {
		for _, v := range l.Mesh.Vertices {
			p := deform.Point(v)
			add(curve.Rect{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y})
		}
	}
	if first {
		return rect.Rect{}
	}
	return rect.Rect{LLx: bb.MinX(), LLy: bb.MinY(), URx: bb.MaxX(), URy: bb.MaxY()}
}

// BuildLayers traces src and returns the deformed geometry of every shape,
// in tracing order, together with the padding of the canvas.  The canvas
// has size src.Rect.Size().Add(pad.Mul(2)).
//
// If a traced shape is degenerate, the error wraps [ErrDegenerateShape].
func BuildLayers(src *image.RGBA, tr trace.Tracer, p Params) ([]Layer, image.Point, error) {
	if err := p.Validate(); err != nil {
		return nil, image.Point{}, err
	}
	return buildLayers(src, tr, p.Clamp())
}

// buildLayers implements BuildLayers for parameters which have already
// been validated and clamped.
func buildLayers(src *image.RGBA, tr trace.Tracer, p Params) ([]Layer, image.Point, error) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	pad := Padding(w, h, p.Strength)

	mask := trace.NewMask(src, uint8(p.AlphaThreshold))
	paths, err := tr.Trace(mask)
	if err != nil {
		Logger().Warn("tracing failed", "error", err)
		return nil, pad, fmt.Errorf("trace: %w", err)
	}

	shapes, err := buildShapes(paths, p.GlobalCenter, w, h)
	if err != nil {
		return nil, pad, err
	}

	offset := vec.Vec2{X: float64(pad.X), Y: float64(pad.Y)}
	var layers []Layer
	for i := range shapes {
		l, ok := buildLayer(&shapes[i], p, offset)
		if ok {
			layers = append(layers, l)
		}
	}

	Logger().Debug("geometry",
		"width", w, "height", h,
		"pad", pad,
		"paths", len(paths),
		"shapes", len(shapes),
		"layers", len(layers))
	return layers, pad, nil
}

// buildLayer simplifies and deforms all subpaths of s.  The second return
// value is false if no subpath survived simplification.
func buildLayer(s *Shape, p Params, offset vec.Vec2) (Layer, bool) {
	l := Layer{Center: s.Center}
	radius := s.Radius()

	mesh := p.meshMode()
	if mesh {
		l.Mesh = &deform.Fan{}
	} else {
		l.Outline = &path.Data{}
	}

	n := 0
	for _, sub := range s.Subpaths {
		ring := sub.Ring()
		if len(ring) < 3 {
			continue
		}
		poly := contour.Simplify(ring, s.Center, p.Simplification, radius, p.CornerThreshold)
		if poly == nil {
			continue
		}
		n++

		if mesh {
			l.Mesh.AppendFan(poly, s.Center, p.Tension, p.TextureDistortion, offset, deform.DefaultSubdivisions)
			continue
		}

		segs := deform.Outline(poly, s.Center, p.Tension, p.Strength, offset)
		l.Outline.MoveTo(deform.Vec(segs[0].P0))
		for _, seg := range segs {
			l.Outline.CubeTo(deform.Vec(seg.P1), deform.Vec(seg.P2), deform.Vec(seg.P3))
		}
		if sub.Closed {
			l.Outline.Close()
		}
		l.Segments = append(l.Segments, segs...)
	}
	return l, n > 0
}
