// Package fontpath imports glyph outlines into paths.
//
// Outlines are loaded either from a golang.org/x/image/font/sfnt font,
// one glyph at a time, or from text shaped with go-text/typesetting. All
// coordinates are in pixels, with y growing downwards, and every glyph
// contour is closed.
package fontpath

import (
	"errors"
	"fmt"
	"iter"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/vpath"
)

// AddGlyph appends the outline of the glyph idx of f, scaled to ppem
// pixels per em, with the glyph's origin placed at origin. It returns the
// glyph's advance in pixels.
//
// Glyphs without an outline, such as spaces, add nothing.
func AddGlyph(b *vpath.Builder, f *sfnt.Font, idx sfnt.GlyphIndex, ppem float64, origin vpath.Point) (float64, error) {
	var buf sfnt.Buffer
	return addGlyph(b, f, &buf, idx, ppem, origin)
}

func addGlyph(b *vpath.Builder, f *sfnt.Font, buf *sfnt.Buffer, idx sfnt.GlyphIndex, ppem float64, origin vpath.Point) (float64, error) {
	size := toFixed(ppem)
	segs, err := f.LoadGlyph(buf, idx, size, nil)
	if err != nil {
		return 0, fmt.Errorf("fontpath: loading glyph %d: %w", idx, err)
	}
	// segs is owned by buf, so it has to be consumed before the next call.
	b.AddElements(sfntElements(segs, origin))

	adv, err := f.GlyphAdvance(buf, idx, size, font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("fontpath: glyph %d advance: %w", idx, err)
	}
	return fromFixed(adv), nil
}

// AddString lays out s on a single line using the font's character map,
// advances and kerning, and appends the outlines of its glyphs. It
// returns the total advance. Runes the font lacks use glyph 0.
//
// AddString doesn't shape text. Use [AddText] for ligatures and complex
// scripts.
func AddString(b *vpath.Builder, f *sfnt.Font, s string, ppem float64, origin vpath.Point) (float64, error) {
	var (
		buf  sfnt.Buffer
		x    float64
		prev sfnt.GlyphIndex
	)
	for i, r := range []rune(s) {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return x, fmt.Errorf("fontpath: looking up %q: %w", r, err)
		}
		if i > 0 {
			kern, err := f.Kern(&buf, prev, idx, toFixed(ppem), font.HintingNone)
			switch {
			case err == nil:
				x += fromFixed(kern)
			case errors.Is(err, sfnt.ErrNotFound):
			default:
				return x, fmt.Errorf("fontpath: kerning %q: %w", r, err)
			}
		}
		adv, err := addGlyph(b, f, &buf, idx, ppem, origin.Translate(vpath.Vec(x, 0)))
		if err != nil {
			return x, err
		}
		x += adv
		prev = idx
	}
	return x, nil
}

// sfntElements converts sfnt segments into path elements. sfnt outlines
// are already y-down, and contours are implicitly closed.
func sfntElements(segs []sfnt.Segment, origin vpath.Point) iter.Seq[vpath.PathElement] {
	pt := func(p fixed.Point26_6) vpath.Point {
		return vpath.Pt(origin.X+fromFixed(p.X), origin.Y+fromFixed(p.Y))
	}
	return func(yield func(vpath.PathElement) bool) {
		open := false
		for _, seg := range segs {
			var el vpath.PathElement
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open && !yield(vpath.ClosePath()) {
					return
				}
				open = true
				el = vpath.MoveTo(pt(seg.Args[0]))
			case sfnt.SegmentOpLineTo:
				el = vpath.LineTo(pt(seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				el = vpath.QuadTo(pt(seg.Args[0]), pt(seg.Args[1]))
			case sfnt.SegmentOpCubeTo:
				el = vpath.CubicTo(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
			default:
				continue
			}
			if !yield(el) {
				return
			}
		}
		if open {
			yield(vpath.ClosePath())
		}
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
