package fontpath

import (
	"bytes"
	"fmt"
	"iter"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/vpath"
)

// ParseFace parses TrueType or OpenType font data for use with [AddText].
func ParseFace(data []byte) (*font.Face, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontpath: parsing font: %w", err)
	}
	return face, nil
}

// AddText shapes text as a single left-to-right run at size pixels per
// em and appends the outlines of the resulting glyphs, with the start of
// the baseline at origin. It returns the total advance.
//
// Shaping applies the font's kerning, ligatures and mark positioning.
// The script is detected from the first letter of text. font.Face isn't
// safe for concurrent use, and neither is AddText with a shared face.
func AddText(b *vpath.Builder, face *font.Face, text string, size float64, origin vpath.Point) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(in)

	scale := size / float64(face.Upem())
	var x float64
	for _, g := range out.Glyphs {
		// Glyph offsets are y-up.
		at := origin.Translate(vpath.Vec(x+fromFixed(g.XOffset), -fromFixed(g.YOffset)))
		if outline, ok := face.GlyphData(g.GlyphID).(font.GlyphOutline); ok {
			b.AddElements(outlineElements(outline.Segments, scale, at))
		}
		x += fromFixed(g.XAdvance)
	}
	vpath.Logger().Debug("fontpath: shaped text", "runes", len(runes), "glyphs", len(out.Glyphs), "advance", x)
	return x
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// outlineElements converts go-text outline segments, which are y-up and
// in font units, into path elements.
func outlineElements(segs []opentype.Segment, scale float64, origin vpath.Point) iter.Seq[vpath.PathElement] {
	pt := func(p opentype.SegmentPoint) vpath.Point {
		return vpath.Pt(origin.X+float64(p.X)*scale, origin.Y-float64(p.Y)*scale)
	}
	return func(yield func(vpath.PathElement) bool) {
		open := false
		for _, seg := range segs {
			var el vpath.PathElement
			switch seg.Op {
			case opentype.SegmentOpMoveTo:
				if open && !yield(vpath.ClosePath()) {
					return
				}
				open = true
				el = vpath.MoveTo(pt(seg.Args[0]))
			case opentype.SegmentOpLineTo:
				el = vpath.LineTo(pt(seg.Args[0]))
			case opentype.SegmentOpQuadTo:
				el = vpath.QuadTo(pt(seg.Args[0]), pt(seg.Args[1]))
			case opentype.SegmentOpCubeTo:
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
