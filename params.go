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
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidParams is returned for parameter sets which cannot be used,
// even after clamping.
var ErrInvalidParams = errors.New("invalid parameters")

// Params holds the settings for one frame.
type Params struct {
	// Strength selects the effect: negative values pucker, positive
	// values bloat.  Range [-1, 1].
	Strength float64 `toml:"strength"`

	// Tension places the Bézier control points at this fraction of each
	// edge.  Larger values give rounder petals.  Range [0, 2].
	Tension float64 `toml:"tension"`

	// TextureDistortion is the deformation strength used for the texture
	// mesh when DistortTexture is set.  Range [-2, 2].
	TextureDistortion float64 `toml:"texture_distortion"`

	// AlphaThreshold is the alpha value a pixel must exceed to belong to
	// a shape.  Range [1, 255].
	AlphaThreshold int `toml:"alpha_threshold"`

	// Simplification is the tolerance, in pixels, of the polygon
	// simplification.  Range [0, 0.5].
	Simplification float64 `toml:"simplification"`

	// CornerThreshold is the turning angle, in degrees, below which a
	// vertex is considered part of a straight line.  Range [0, 90].
	CornerThreshold float64 `toml:"corner_threshold"`

	// SolidColor fills each shape with the colour at its centre.
	SolidColor bool `toml:"solid_color"`

	// DistortTexture warps the image along with the outline.  Only used
	// if SolidColor is not set.
	DistortTexture bool `toml:"distort_texture"`

	// GlobalCenter deforms all shapes about the centre of the image,
	// instead of about the centre of each shape.
	GlobalCenter bool `toml:"global_center"`
}

// DefaultParams returns the default settings.
func DefaultParams() Params {
	return Params{
		Strength:          0.5,
		Tension:           0.33,
		TextureDistortion: 0.5,
		AlphaThreshold:    10,
		Simplification:    0.05,
		CornerThreshold:   30,
		SolidColor:        true,
	}
}

// Validate checks that all numeric fields are finite.
func (p Params) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"strength", p.Strength},
		{"tension", p.Tension},
		{"texture_distortion", p.TextureDistortion},
		{"simplification", p.Simplification},
		{"corner_threshold", p.CornerThreshold},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%w: %s is %g", ErrInvalidParams, f.name, f.val)
		}
	}
	return nil
}

// Clamp returns a copy of p with every field moved into its range.
func (p Params) Clamp() Params {
	p.Strength = clamp(p.Strength, -1, 1)
	p.Tension = clamp(p.Tension, 0, 2)
	p.TextureDistortion = clamp(p.TextureDistortion, -2, 2)
	p.AlphaThreshold = min(max(p.AlphaThreshold, 1), 255)
	p.Simplification = clamp(p.Simplification, 0, 0.5)
	p.CornerThreshold = clamp(p.CornerThreshold, 0, 90)
	return p
}

// meshMode reports whether shapes are drawn as texture meshes.
func (p Params) meshMode() bool {
	return !p.SolidColor && p.DistortTexture
}

func clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}

// LoadParams reads settings in TOML format.  Fields missing from the input
// keep their default values.  Unknown keys are an error.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParamsFile reads settings from the named TOML file.
func LoadParamsFile(name string) (Params, error) {
	fd, err := os.Open(name)
	if err != nil {
		return Params{}, err
	}
	defer fd.Close()

	p, err := LoadParams(fd)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// WriteTOML writes the settings in TOML format.
func (p Params) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}
