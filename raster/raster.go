// Package raster renders paths into alpha masks.
//
// A [Rasterizer] streams the elements of a path into a
// golang.org/x/image/vector rasterizer, which computes anti-aliased
// coverage. Successive fills accumulate into the same mask.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"honnef.co/go/vpath"
)

var (
	ErrInvalidSize = errors.New("invalid mask size")
	ErrNotFinite   = errors.New("path has non-finite coordinates")
)

// Renderer is implemented by consumers that fill paths.
type Renderer interface {
	Fill(p *vpath.Path, rule vpath.FillRule) error
}

// DefaultTolerance is used for converting conics when Options.Tolerance
// isn't positive. It is expressed in pixels.
const DefaultTolerance = 0.1

// Options configure a [Rasterizer].
type Options struct {
	// Width and Height are the size of the mask in pixels.
	Width, Height int
	// Rule is the fill rule used by [Rasterizer.FillRoundedRect] and
	// [Rasterizer.FillDefault].
	Rule vpath.FillRule
	// Transform maps path coordinates to pixels. The zero value is
	// treated as the identity.
	Transform vpath.Affine
	// Tolerance is the maximum distance in pixels between a conic and the
	// cubics it is drawn with. Zero means DefaultTolerance.
	Tolerance float64
}

// Rasterizer fills paths into an [*image.Alpha].
type Rasterizer struct {
	opts Options
	ras  *vector.Rasterizer
	mask *image.Alpha
}

var _ Renderer = (*Rasterizer)(nil)

// New returns a rasterizer with an empty mask.
func New(opts Options) (*Rasterizer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: %w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.Transform == (vpath.Affine{}) {
		opts.Transform = vpath.Identity
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	r := &Rasterizer{
		opts: opts,
		ras:  vector.NewRasterizer(opts.Width, opts.Height),
		mask: image.NewAlpha(image.Rect(0, 0, opts.Width, opts.Height)),
	}
	return r, nil
}

// Mask returns the accumulated coverage. The image is owned by the
// rasterizer and changes with further fills.
func (r *Rasterizer) Mask() *image.Alpha { return r.mask }

// Bounds returns the bounds of the mask.
func (r *Rasterizer) Bounds() image.Rectangle { return r.mask.Bounds() }

// Reset clears the mask.
func (r *Rasterizer) Reset() {
	clear(r.mask.Pix)
}

// Fill adds the coverage of p to the mask.
//
// The vector rasterizer only implements the nonzero rule. Even-odd fills
// are first simplified into paths whose nonzero fill covers the same
// area.
func (r *Rasterizer) Fill(p *vpath.Path, rule vpath.FillRule) error {
	switch rule {
	case vpath.Winding:
	case vpath.EvenOdd:
		p = vpath.Simplify(p, vpath.EvenOdd)
	default:
		return fmt.Errorf("raster: unsupported fill rule %s", rule)
	}
	if p.IsEmpty() {
		return nil
	}
	p = p.Transform(r.opts.Transform)
	if bounds, ok := p.ControlBounds(); ok && !finite(bounds) {
		return fmt.Errorf("raster: %w", ErrNotFinite)
	}

	vpath.Logger().Debug("raster: fill", "contours", p.NumContours(), "rule", rule)

	r.ras.Reset(r.opts.Width, r.opts.Height)
	r.ras.DrawOp = draw.Over
	started := false
	for el := range p.Foreach(vpath.AllowQuad|vpath.AllowCubic, r.opts.Tolerance) {
		switch el.Kind {
		case vpath.MoveToKind:
			// x/image/vector leaks coverage from open subpaths.
			if started {
				r.ras.ClosePath()
			}
			started = true
			r.ras.MoveTo(f32(el.P0))
		case vpath.LineToKind:
			r.ras.LineTo(f32(el.P0))
		case vpath.QuadToKind:
			x1, y1 := f32(el.P0)
			x2, y2 := f32(el.P1)
			r.ras.QuadTo(x1, y1, x2, y2)
		case vpath.CubicToKind:
			x1, y1 := f32(el.P0)
			x2, y2 := f32(el.P1)
			x3, y3 := f32(el.P2)
			r.ras.CubeTo(x1, y1, x2, y2, x3, y3)
		case vpath.ClosePathKind:
			r.ras.ClosePath()
		}
	}
	if started {
		r.ras.ClosePath()
	}
	r.ras.Draw(r.mask, r.mask.Bounds(), image.Opaque, image.Point{})
	return nil
}

// FillDefault fills p with the rule from the options.
func (r *Rasterizer) FillDefault(p *vpath.Path) error {
	return r.Fill(p, r.opts.Rule)
}

// FillRoundedRect fills the outline of rr.
func (r *Rasterizer) FillRoundedRect(rr vpath.RoundedRect) error {
	var b vpath.Builder
	b.AddRoundedRect(rr)
	p, err := b.Build()
	if err != nil {
		return fmt.Errorf("raster: building rounded rectangle: %w", err)
	}
	return r.Fill(p, r.opts.Rule)
}

// EncodePNG writes the mask as a PNG with an alpha channel.
func (r *Rasterizer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.mask); err != nil {
		return fmt.Errorf("raster: encoding PNG: %w", err)
	}
	return nil
}

func finite(r vpath.Rect) bool {
	for _, v := range [...]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func f32(pt vpath.Point) (float32, float32) {
	return float32(pt.X), float32(pt.Y)
}
