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


// Command pucker applies the pucker and bloat effect to a PNG image.
//
// Settings are read from an optional TOML file and can be overridden on
// the command line.  Tension and texture distortion are given in percent
// on the command line, as fractions in the TOML file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"seehuhn.de/go/pucker"
	"seehuhn.de/go/pucker/trace"
)

var (
	inFile     = flag.String("in", "", "input image (PNG or JPEG)")
	outFile    = flag.String("out", "out.png", "output PNG file")
	configFile = flag.String("config", "", "TOML file with effect settings")
	dumpConfig = flag.Bool("dump-config", false, "print the effective settings as TOML and exit")
	verbose    = flag.Bool("v", false, "log progress to stderr")
	scale      = flag.Float64("scale", 1, "resize the input by this factor before processing")
	turdSize   = flag.Int("turd", trace.DefaultPotrace().TurdSize, "drop traced regions smaller than this many pixels")

	strength  = flag.Float64("strength", 0, "effect strength, -1 (pucker) to 1 (bloat)")
	tension   = flag.Float64("tension", 0, "petal tension in percent, 0 to 200")
	texDist   = flag.Float64("texdist", 0, "texture distortion in percent, -200 to 200")
	alpha     = flag.Int("alpha", 0, "alpha threshold, 1 to 255")
	simplify  = flag.Float64("simplify", 0, "outline simplification in pixels, 0 to 0.5")
	corner    = flag.Float64("corner", 0, "corner threshold in degrees, 0 to 90")
	solid     = flag.Bool("solid", false, "fill shapes with the colour at their centre")
	distort   = flag.Bool("distort", false, "warp the texture along with the outline")
	globalCtr = flag.Bool("global", false, "deform about the image centre")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pucker:", err)
		os.Exit(1)
	}
}

func run() error {
	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		pucker.SetLogger(slog.New(h))
	}

	params := pucker.DefaultParams()
	if *configFile != "" {
		var err error
		params, err = pucker.LoadParamsFile(*configFile)
		if err != nil {
			return err
		}
	}
	applyFlags(&params)

	if *dumpConfig {
		return params.WriteTOML(os.Stdout)
	}

	if *inFile == "" {
		return errors.New("no input file given (use -in)")
	}
	if err := params.Validate(); err != nil {
		return err
	}

	img, err := imgio.Open(*inFile)
	if err != nil {
		return err
	}
	src := clone.AsRGBA(img)
	if *scale != 1 {
		if !(*scale > 0) || math.IsInf(*scale, 0) {
			return fmt.Errorf("invalid scale factor %g", *scale)
		}
		b := src.Bounds()
		w := max(int(math.Round(float64(b.Dx())**scale)), 1)
		h := max(int(math.Round(float64(b.Dy())**scale)), 1)
		src = transform.Resize(src, w, h, transform.Linear)
	}

	tr := trace.DefaultPotrace()
	tr.TurdSize = *turdSize

	proc := pucker.New(tr)
	defer proc.Close()
	proc.SetInput(src)
	if err := proc.Update(params); err != nil {
		return err
	}
	if !proc.Ready() {
		pucker.Logger().Info("no shapes found, writing input unchanged")
	}

	res := clone.AsRGBA(proc.Output())
	if err := imgio.Save(*outFile, res, imgio.PNGEncoder()); err != nil {
		return err
	}
	off := proc.Offset()
	pucker.Logger().Info("wrote output",
		slog.String("file", *outFile),
		slog.Int("width", res.Bounds().Dx()),
		slog.Int("height", res.Bounds().Dy()),
		slog.Int("offset_x", off.X),
		slog.Int("offset_y", off.Y))
	return nil
}

// applyFlags copies the explicitly given command line flags into p.
func applyFlags(p *pucker.Params) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strength":
			p.Strength = *strength
		case "tension":
			p.Tension = *tension / 100
		case "texdist":
			p.TextureDistortion = *texDist / 100
		case "alpha":
			p.AlphaThreshold = *alpha
		case "simplify":
			p.Simplification = *simplify
		case "corner":
			p.CornerThreshold = *corner
		case "solid":
			p.SolidColor = *solid
		case "distort":
			p.DistortTexture = *distort
		case "global":
			p.GlobalCenter = *globalCtr
		}
	})
}
