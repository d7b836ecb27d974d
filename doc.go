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

// Package pucker implements a pucker and bloat effect for raster images.
//
// The opaque regions of the input image are traced into polygons, the
// polygons are simplified, and every edge is replaced by a cubic Bézier
// segment whose anchors and control points are scaled radially about the
// centre of the shape.  The deformed shapes are then drawn onto a padded
// transparent canvas, either filled with a single colour, filled with the
// undistorted input image, or as a triangle mesh which drags the input
// image along with the outline.
//
// A [Processor] runs the effect once per frame.  [BuildLayers] exposes the
// geometry pass on its own.
package pucker

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpdf
