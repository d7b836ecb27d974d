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


// Command genpdf generates reference images for the deformed outlines.
// For every test case and every preset it writes the deformed geometry
// to a PDF file and renders the PDF to PNG using Ghostscript.
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/pucker"
	"seehuhn.de/go/pucker/testcases"
	"seehuhn.de/go/pucker/trace"
)

const refDir = "testdata/reference"

type preset struct {
	name     string
	strength float64
}

var presets = []preset{
	{"pucker", -0.3},
	{"bloat", 0.3},
}

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	tr := trace.DefaultPotrace()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			for _, ps := range presets {
				name := category + "_" + tc.Name + "_" + ps.name
				pdfPath := filepath.Join(refDir, name+".pdf")
				pngPath := filepath.Join(refDir, name+".png")

				params := pucker.DefaultParams()
				params.Strength = ps.strength
				layers, pad, err := pucker.BuildLayers(tc.Image(), tr, params)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: skipped: %v\n", name, err)
					continue
				}

				width := tc.Width + 2*pad.X
				height := tc.Height + 2*pad.Y
				if err := generatePDF(layers, width, height, pdfPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
				if err := renderPNG(pdfPath, pngPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generatePDF(layers []pucker.Layer, width, height int, pdfPath string) error {
	paper := &pdf.Rectangle{
		URx: float64(width),
		URy: float64(height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// black background, so that gray values can be read as coverage
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(width), float64(height))
	page.Fill()

	// PDF origin is bottom-left; the layers use top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(height)})

	page.SetFillColor(color.DeviceGray(1))
	for i := range layers {
		outline := layers[i].Outline
		if outline == nil || len(outline.Cmds) == 0 {
			continue
		}
		k := 0
		for _, cmd := range outline.Cmds {
			pts := outline.Coords[k:]
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
				k++
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
				k++
			case path.CmdQuadTo:
				// not produced by the deformation
				k += 2
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
				k += 3
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.FillEvenOdd()
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
