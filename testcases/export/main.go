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


// Command export runs the effect on all test cases and writes the results
// to testdata/output.  Besides one PNG per test case and preset, a JSON
// summary of the deformed geometry is written for inspection.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"

	"seehuhn.de/go/pucker"
	"seehuhn.de/go/pucker/testcases"
	"seehuhn.de/go/pucker/trace"
)

const outDir = "testdata/output"

type preset struct {
	name   string
	params func() pucker.Params
}

var presets = []preset{
	{"pucker", func() pucker.Params {
		p := pucker.DefaultParams()
		p.Strength = -0.3
		return p
	}},
	{"bloat", func() pucker.Params {
		p := pucker.DefaultParams()
		p.Strength = 0.3
		return p
	}},
	{"texture", func() pucker.Params {
		p := pucker.DefaultParams()
		p.Strength = 0.3
		p.SolidColor = false
		return p
	}},
	{"mesh", func() pucker.Params {
		p := pucker.DefaultParams()
		p.SolidColor = false
		p.DistortTexture = true
		return p
	}},
}

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	var out struct {
		Results []jsonResult `json:"results"`
	}

	tr := trace.DefaultPotrace()
	proc := pucker.New(tr)
	defer proc.Close()

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			img := tc.Image()
			for _, ps := range presets {
				name := category + "_" + tc.Name + "_" + ps.name
				params := ps.params()

				proc.SetInput(img)
				if err := proc.Update(params); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
				res := clone.AsRGBA(proc.Output())
				err := imgio.Save(filepath.Join(outDir, name+".png"), res, imgio.PNGEncoder())
				if err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}

				out.Results = append(out.Results, summarize(name, img, tr, params, proc))
			}
		}
	}

	f, err := os.Create(filepath.Join(outDir, "geometry.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonResult struct {
	Name      string      `json:"name"`
	Processed bool        `json:"processed"`
	Offset    [2]int      `json:"offset"`
	Padding   [2]int      `json:"padding"`
	Layers    []jsonLayer `json:"layers,omitempty"`
}

type jsonLayer struct {
	Center    [2]float64 `json:"center"`
	Bounds    [4]float64 `json:"bounds"`
	Segments  int        `json:"segments,omitempty"`
	Triangles int        `json:"triangles,omitempty"`
}

func summarize(name string, img *image.RGBA, tr trace.Tracer, params pucker.Params, proc *pucker.Processor) jsonResult {
	off := proc.Offset()
	res := jsonResult{
		Name:      name,
		Processed: proc.Ready(),
		Offset:    [2]int{off.X, off.Y},
	}

	layers, pad, err := pucker.BuildLayers(img, tr, params)
	if err != nil {
		return res
	}
	res.Padding = [2]int{pad.X, pad.Y}
	for i := range layers {
		l := &layers[i]
		bb := l.Bounds()
		jl := jsonLayer{
			Center:   [2]float64{l.Center.X, l.Center.Y},
			Bounds:   [4]float64{bb.LLx, bb.LLy, bb.URx, bb.URy},
			Segments: len(l.Segments),
		}
		if l.Mesh != nil {
			jl.Triangles = l.Mesh.Len()
		}
		res.Layers = append(res.Layers, jl)
	}
	return res
}
