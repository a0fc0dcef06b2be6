package fontpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"honnef.co/go/vpath"
)

func goRegular(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	return f
}

func glyphIndex(t *testing.T, f *sfnt.Font, r rune) sfnt.GlyphIndex {
	t.Helper()
	var buf sfnt.Buffer
	idx, err := f.GlyphIndex(&buf, r)
	require.NoError(t, err)
	require.NotZero(t, idx)
	return idx
}

func build(t *testing.T, b *vpath.Builder) *vpath.Path {
	t.Helper()
	p, err := b.Build()
	require.NoError(t, err)
	return p
}

func TestAddGlyph(t *testing.T) {
	f := goRegular(t)
	origin := vpath.Pt(10, 50)

	tests := []struct {
		r        rune
		contours int
	}{
		{'O', 2},
		{'l', 1},
		{'B', 3},
		{'i', 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			var b vpath.Builder
			adv, err := AddGlyph(&b, f, glyphIndex(t, f, tt.r), 32, origin)
			require.NoError(t, err)
			p := build(t, &b)

			assert.Equal(t, tt.contours, p.NumContours())
			assert.True(t, p.IsClosed())
			assert.Greater(t, adv, 0.0)
			assert.Less(t, adv, 32.0)

			// Glyphs sit on the baseline, extending upwards.
			bounds, ok := p.Bounds()
			require.True(t, ok)
			assert.GreaterOrEqual(t, bounds.X0, origin.X-1)
			assert.LessOrEqual(t, bounds.X1, origin.X+adv+1)
			assert.InDelta(t, origin.Y, bounds.Y1, 1)
			assert.Less(t, bounds.Y0, origin.Y-15)
		})
	}
}

func TestAddGlyphFill(t *testing.T) {
	f := goRegular(t)
	var b vpath.Builder
	_, err := AddGlyph(&b, f, glyphIndex(t, f, 'O'), 100, vpath.Pt(0, 100))
	require.NoError(t, err)
	p := build(t, &b)

	bounds, _ := p.Bounds()
	center := bounds.Center()
	// The counter of the O is a hole under both fill rules.
	assert.False(t, p.InFill(center, vpath.Winding))
	assert.False(t, p.InFill(center, vpath.EvenOdd))
	ring := vpath.Pt(bounds.X0+2, center.Y)
	assert.True(t, p.InFill(ring, vpath.Winding))
	assert.True(t, p.InFill(ring, vpath.EvenOdd))
}

func TestAddGlyphSpace(t *testing.T) {
	f := goRegular(t)
	var b vpath.Builder
	b.MoveTo(vpath.Pt(1, 1))
	adv, err := AddGlyph(&b, f, glyphIndex(t, f, ' '), 20, vpath.Pt(0, 0))
	require.NoError(t, err)
	assert.Greater(t, adv, 0.0)

	// The current point survives the import.
	cur, ok := b.CurrentPoint()
	assert.True(t, ok)
	assert.Equal(t, vpath.Pt(1, 1), cur)
	assert.Equal(t, "M 1 1", build(t, &b).String())
}

func TestAddGlyphInvalid(t *testing.T) {
	f := goRegular(t)
	var b vpath.Builder
	_, err := AddGlyph(&b, f, sfnt.GlyphIndex(f.NumGlyphs()+10), 20, vpath.Pt(0, 0))
	assert.Error(t, err)
}

func TestAddString(t *testing.T) {
	f := goRegular(t)
	var want float64
	for _, r := range "Hi" {
		var b vpath.Builder
		adv, err := AddGlyph(&b, f, glyphIndex(t, f, r), 24, vpath.Pt(0, 0))
		require.NoError(t, err)
		want += adv
	}

	var b vpath.Builder
	adv, err := AddString(&b, f, "Hi", 24, vpath.Pt(5, 30))
	require.NoError(t, err)
	assert.InDelta(t, want, adv, 0.5)

	p := build(t, &b)
	// H has one contour, i has two.
	assert.Equal(t, 3, p.NumContours())
	bounds, _ := p.Bounds()
	assert.Less(t, bounds.X0, 5+24.0/4)
	assert.Less(t, bounds.X1, 5+adv+1)

	var empty vpath.Builder
	adv, err = AddString(&empty, f, "", 24, vpath.Pt(0, 0))
	require.NoError(t, err)
	assert.Zero(t, adv)
	assert.True(t, build(t, &empty).IsEmpty())
}

func TestAddText(t *testing.T) {
	face, err := ParseFace(goregular.TTF)
	require.NoError(t, err)
	f := goRegular(t)

	var shaped, plain vpath.Builder
	adv := AddText(&shaped, face, "Hi O", 24, vpath.Pt(5, 30))
	plainAdv, err := AddString(&plain, f, "Hi O", 24, vpath.Pt(5, 30))
	require.NoError(t, err)

	// Without ligatures or kerning in play, shaping agrees with the
	// simple layout.
	assert.InDelta(t, plainAdv, adv, 0.5)
	sp, pp := build(t, &shaped), build(t, &plain)
	assert.Equal(t, pp.NumContours(), sp.NumContours())
	assert.True(t, sp.IsClosed())

	sb, ok := sp.Bounds()
	require.True(t, ok)
	pb, _ := pp.Bounds()
	assert.InDelta(t, pb.X0, sb.X0, 0.5)
	assert.InDelta(t, pb.Y0, sb.Y0, 0.5)
	assert.InDelta(t, pb.X1, sb.X1, 0.5)
	assert.InDelta(t, pb.Y1, sb.Y1, 0.5)

	var empty vpath.Builder
	assert.Zero(t, AddText(&empty, face, "", 24, vpath.Pt(0, 0)))
}

func TestParseFaceInvalid(t *testing.T) {
	_, err := ParseFace([]byte("not a font"))
	assert.Error(t, err)
}
