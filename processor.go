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
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pucker/trace"
)

// LocalBounder is implemented by inputs whose drawable area differs from
// their image bounds.  If LocalBounds returns an error, the frame is passed
// through unchanged.
type LocalBounder interface {
	LocalBounds() (rect.Rect, error)
}

// Processor applies the effect to a sequence of frames.
//
// Update must not be called concurrently with SetInput, ClearInput, Close
// or another Update.  Output and Offset may be called at any time; they
// see either the previous frame or the completed new one.
type Processor struct {
	tracer trace.Tracer

	mu     sync.Mutex
	input  image.Image
	result *frame

	// readback holds the input pixels of the current frame.  It is
	// reused while the frame size stays the same.
	readback *image.RGBA
	painter  painter
}

// frame is a finished output image together with its placement.
type frame struct {
	img    *image.RGBA
	offset image.Point
}

// New returns a Processor which uses tr to find the shapes.  If tr is nil,
// [trace.DefaultPotrace] is used.
func New(tr trace.Tracer) *Processor {
	if tr == nil {
		tr = trace.DefaultPotrace()
	}
	return &Processor{tracer: tr}
}

// SetInput sets the image for the next call to Update.
func (p *Processor) SetInput(img image.Image) {
	p.mu.Lock()
	p.input = img
	p.mu.Unlock()
}

// ClearInput removes the input image.  Until a new input is set and
// Update has run, Output returns nil.
func (p *Processor) ClearInput() {
	p.mu.Lock()
	p.input = nil
	p.result = nil
	p.mu.Unlock()
}

// Ready reports whether Output currently returns a processed frame.
func (p *Processor) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result != nil
}

// Output returns the most recent processed frame.  The bounds of the image
// place it relative to the input: Output().Bounds().Min equals Offset().
// If no processed frame is available, the input image is returned.
func (p *Processor) Output() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result != nil {
		return p.result.img
	}
	return p.input
}

// Offset returns the position of the top-left output pixel in input
// coordinates.
func (p *Processor) Offset() image.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.result != nil:
		return p.result.offset
	case p.input != nil:
		return p.input.Bounds().Min
	default:
		return image.Point{}
	}
}

// Update processes the current input with the given settings.
//
// Frames which cannot be processed are passed through: afterwards Output
// returns the input image and the error is nil.  This happens if no input
// is set, if the input bounds are unavailable or empty, or if a traced shape
// is degenerate.  Errors are returned for invalid parameters and for tracer
// failures.
func (p *Processor) Update(params Params) error {
	p.mu.Lock()
	input := p.input
	p.mu.Unlock()

	if input == nil {
		p.passThrough("no input")
		return nil
	}
	if err := params.Validate(); err != nil {
		p.passThrough("invalid parameters")
		return err
	}
	params = params.Clamp()

	bounds, err := inputBounds(input)
	if err != nil {
		p.passThrough("bounds unavailable", "error", err)
		return nil
	}
	if bounds.Empty() {
		p.passThrough("empty bounds", "bounds", bounds)
		return nil
	}

	src := p.readInput(input, bounds)
	layers, pad, err := buildLayers(src, p.tracer, params)
	if errors.Is(err, ErrDegenerateShape) {
		p.passThrough("degenerate shape")
		return nil
	} else if err != nil {
		p.passThrough("geometry failed")
		return err
	}

	size := bounds.Size().Add(pad.Mul(2))
	canvas := image.NewRGBA(image.Rectangle{Max: size})
	p.painter.paint(canvas, src, layers, pad, params)

	offset := bounds.Min.Sub(pad)
	canvas.Rect = canvas.Rect.Add(offset)

	p.mu.Lock()
	p.result = &frame{img: canvas, offset: offset}
	p.mu.Unlock()

	Logger().Debug("frame done", "bounds", bounds, "size", size, "offset", offset)
	return nil
}

// Close releases all cached images.  The processor can still be used
// afterwards.
func (p *Processor) Close() error {
	p.mu.Lock()
	p.input = nil
	p.result = nil
	p.mu.Unlock()

	p.readback = nil
	p.painter = painter{}
	return nil
}

func (p *Processor) passThrough(reason string, args ...any) {
	p.mu.Lock()
	p.result = nil
	p.mu.Unlock()
	Logger().Debug("pass-through", append([]any{"reason", reason}, args...)...)
}

// readInput copies the input pixels inside bounds into the readback
// image.  The readback image has its origin at (0, 0).
func (p *Processor) readInput(input image.Image, bounds image.Rectangle) *image.RGBA {
	size := bounds.Size()
	if p.readback == nil || p.readback.Rect.Size() != size {
		p.readback = image.NewRGBA(image.Rectangle{Max: size})
		Logger().Debug("readback allocated", "size", size)
	}
	if !bounds.In(input.Bounds()) {
		clear(p.readback.Pix)
	}
	draw.Draw(p.readback, p.readback.Rect, input, bounds.Min, draw.Src)
	return p.readback
}

// inputBounds returns the pixel area of the input.  Fractional bounds
// reported by a [LocalBounder] are rounded outwards.
func inputBounds(img image.Image) (image.Rectangle, error) {
	lb, ok := img.(LocalBounder)
	if !ok {
		return img.Bounds(), nil
	}
	r, err := lb.LocalBounds()
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rectangle{
		Min: image.Pt(int(math.Floor(r.LLx)), int(math.Floor(r.LLy))),
		Max: image.Pt(int(math.Ceil(r.URx)), int(math.Ceil(r.URy))),
	}, nil
}
