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

package contour

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// MinEpsilon is the smallest distance tolerance used by [Simplify].
const MinEpsilon = 0.1

// RDP simplifies a polyline using the Ramer-Douglas-Peucker algorithm.
//
// The point farthest from the chord between the first and last point is
// found; if its distance exceeds epsilon, both halves are simplified
// separately and joined at that point, otherwise only the two end points are
// kept.  Ties are broken in favour of the first point found.  If the chord
// has length zero, as is the case for a closed loop, the distance to the
// first point is used instead.  Negative values of epsilon are treated as
// zero.
//
// The first and last point are always kept.  The result never has more
// points than the input.
func RDP(points []vec.Vec2, epsilon float64) []vec.Vec2 {
	n := len(points)
	if n < 3 {
		return append([]vec.Vec2(nil), points...)
	}
	epsilon = max(epsilon, 0)

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true

	// Each index range is handled independently, so an explicit stack gives
	// the same result as recursion, without the recursion depth.
	stack := [][2]int{{0, n - 1}}
	for len(stack) > 0 {
		first, last := stack[len(stack)-1][0], stack[len(stack)-1][1]
		stack = stack[:len(stack)-1]

		idx, dMax := -1, 0.0
		for i := first + 1; i < last; i++ {
			if d := chordDistance(points[i], points[first], points[last]); d > dMax {
				idx, dMax = i, d
			}
		}
		if idx < 0 || dMax <= epsilon {
			continue
		}
		keep[idx] = true
		stack = append(stack, [2]int{idx, last}, [2]int{first, idx})
	}

	var res []vec.Vec2
	for i, k := range keep {
		if k {
			res = append(res, points[i])
		}
	}
	return res
}

// chordDistance returns the distance of p from the line through a and b,
// or the distance from a if a and b coincide.
func chordDistance(p, a, b vec.Vec2) float64 {
	base := b.Sub(a).Length()
	if base == 0 {
		return p.Sub(a).Length()
	}
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	return math.Abs(cross) / base
}

// PruneCorners removes vertices from a closed polygon which carries an
// explicit closing point.
//
// A vertex is removed if the polygon turns by less than cornerDeg degrees
// there, or if one of its two edges is shorter than max(3, radius/20).
// Passes over the polygon are repeated until nothing changes or only three
// points are left.  The closing point itself is never visited, and when
// looking up neighbours across the seam it is skipped, so that a vertex is
// never compared with a copy of itself.
func PruneCorners(points []vec.Vec2, radius, cornerDeg float64) []vec.Vec2 {
	res := append([]vec.Vec2(nil), points...)
	if len(res) <= 3 {
		return res
	}

	minLen := max(3, radius*0.05)
	dotLimit := math.Cos(cornerDeg * math.Pi / 180)

	changed := true
	for changed && len(res) > 3 {
		changed = false
		for i := 0; i < len(res)-1 && len(res) > 3; i++ {
			n := len(res)
			prev := (i - 1 + n) % n
			if prev == n-1 && res[prev] == res[0] {
				prev--
			}
			next := (i + 1) % n
			if next == 0 && res[next] == res[n-1] {
				next = 1
			}

			in := res[i].Sub(res[prev])
			out := res[next].Sub(res[i])
			if unit(in).Dot(unit(out)) > dotLimit ||
				in.Length() < minLen || out.Length() < minLen {
				res = append(res[:i], res[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return res
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return vec.Vec2{}
	}
	return v.Mul(1 / l)
}

// Simplify reduces a closed polygon, given without closing point, to the
// vertices which shape its outline.  The polygon is rotated to start at the
// point farthest from center, simplified with [RDP] using a tolerance of at
// least [MinEpsilon], and pruned with [PruneCorners].  The result has no
// closing point.  If fewer than three vertices survive, nil is returned.
func Simplify(ring []vec.Vec2, center vec.Vec2, epsilon, radius, cornerDeg float64) []vec.Vec2 {
	if len(ring) < 3 {
		return nil
	}
	pts := ShiftPoints(ring, center)
	pts = RDP(pts, max(MinEpsilon, epsilon))
	pts = PruneCorners(pts, radius, cornerDeg)
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return nil
	}
	return pts
}
