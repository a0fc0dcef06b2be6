package vpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

const halfSqrt2 = "0.7071067811865476"

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		add  func(b *Builder)
		want string
	}{
		{"rect", func(b *Builder) { b.AddRect(NewRectXYWH(0, 0, 10, 20)) },
			"M 0 0 L 10 0 L 10 20 L 0 20 Z"},
		{"negative rect", func(b *Builder) { b.AddRect(NewRectXYWH(10, 10, -10, -10)) },
			"M 0 0 L 10 0 L 10 10 L 0 10 Z"},
		{"flat rect", func(b *Builder) { b.AddRect(NewRectXYWH(0, 0, 10, 0)) },
			"M 0 0 L 10 0 L 0 0 Z"},
		{"empty rect", func(b *Builder) { b.AddRect(NewRectXYWH(5, 5, 0, 0)) },
			"M 5 5 Z"},
		{"circle", func(b *Builder) { b.AddCircle(Pt(0, 0), 10) },
			"M 10 0 O 10 10, 0 10, " + halfSqrt2 + " O -10 10, -10 0, " + halfSqrt2 +
				" O -10 -10, 0 -10, " + halfSqrt2 + " O 10 -10, 10 0, " + halfSqrt2 + " Z"},
		{"point circle", func(b *Builder) { b.AddCircle(Pt(3, 4), 0) },
			"M 3 4 Z"},
		{"rounded rect", func(b *Builder) {
			b.AddRoundedRect(NewUniformRoundedRect(NewRectXYWH(0, 0, 100, 50), 10))
		}, "M 10 0 L 90 0 O 100 0, 100 10, " + halfSqrt2 + " L 100 40 O 100 50, 90 50, " + halfSqrt2 +
			" L 10 50 O 0 50, 0 40, " + halfSqrt2 + " L 0 10 O 0 0, 10 0, " + halfSqrt2 + " Z"},
		{"rounded rect with mixed corners", func(b *Builder) {
			b.AddRoundedRect(NewRoundedRect(NewRectXYWH(0, 0, 100, 50),
				Sz(10, 20), Size{}, Sz(5, 5), Size{}))
		}, "M 10 0 L 100 0 L 100 45 O 100 50, 95 50, " + halfSqrt2 +
			" L 0 50 L 0 20 O 0 0, 10 0, " + halfSqrt2 + " Z"},
		{"square rounded rect", func(b *Builder) {
			b.AddRoundedRect(RoundedRectFromRect(NewRectXYWH(0, 0, 100, 50)))
		}, "M 0 0 L 100 0 L 100 50 L 0 50 L 0 0 Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Builder
			tt.add(&b)
			p, err := b.Build()
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.want, p.String())
			diff(t, true, p.IsClosed())
		})
	}
}

func TestShapeBounds(t *testing.T) {
	var b Builder
	b.AddCircle(Pt(10, 10), 5)
	p, _ := b.Build()
	got, ok := p.Bounds()
	if !ok {
		t.Fatal("no bounds")
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	diff(t, NewRectXYWH(5, 5, 10, 10), got, approx)

	b.AddRoundedRect(NewUniformRoundedRect(NewRectXYWH(0, 0, 100, 50), 10))
	p, _ = b.Build()
	got, _ = p.Bounds()
	diff(t, NewRectXYWH(0, 0, 100, 50), got, approx)
}

func TestAddSegment(t *testing.T) {
	square := MustParse("M 0 0 L 10 0 L 10 10 L 0 10 Z")
	lines := MustParse("M 0 0 L 10 0 M 20 0 L 30 0 M 40 0 L 50 0")
	tests := []struct {
		name       string
		path       *Path
		start, end PathPoint
		want       string
	}{
		{"within a segment", square, PathPoint{0, 1, 0.25}, PathPoint{0, 1, 0.75},
			"M 10 2.5 L 10 7.5"},
		{"across segments", square, PathPoint{0, 0, 0.5}, PathPoint{0, 2, 0.5},
			"M 5 0 L 10 0 L 10 10 L 5 10"},
		{"whole segments", square, PathPoint{0, 1, 0}, PathPoint{0, 2, 1},
			"M 10 0 L 10 10 L 0 10"},
		{"wrapping", square, PathPoint{0, 2, 0.5}, PathPoint{0, 0, 0.5},
			"M 5 10 L 0 10 L 0 0 L 5 0"},
		{"full circle", square, PathPoint{0, 0, 0.5}, PathPoint{0, 0, 0.5},
			"M 5 0 L 10 0 L 10 10 L 0 10 L 0 0 L 5 0"},
		{"across contours", lines, PathPoint{0, 0, 0.5}, PathPoint{2, 0, 0.5},
			"M 5 0 L 10 0 M 20 0 L 30 0 M 40 0 L 45 0"},
		{"wrapping contours", lines, PathPoint{2, 0, 0.5}, PathPoint{0, 0, 0.5},
			"M 45 0 L 50 0 M 0 0 L 5 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Builder
			b.AddSegment(tt.path, tt.start, tt.end)
			p, err := b.Build()
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.want, p.String())
		})
	}
}

func TestAddSegmentConic(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)
	p := circle(Pt(0, 0), 100)
	start, end := PathPoint{0, 0, 0.25}, PathPoint{0, 0, 0.75}
	var b Builder
	b.AddSegment(p, start, end)
	got, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	c := got.Contour(0)
	diff(t, start.Position(p), c.Start(), approx)
	diff(t, end.Position(p), c.End(), approx)
	for i := 0; i <= 8; i++ {
		pt := c.Segment(0).Eval(float64(i) / 8)
		if d := pt.Distance(Pt(0, 0)); math.Abs(d-100) > 1e-9 {
			t.Errorf("%s is %g away from the center", pt, d)
		}
	}
}

func TestAddSegmentInvalidPoint(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var b Builder
	p := MustParse("M 0 0 L 10 0")
	b.AddSegment(p, PathPoint{}, PathPoint{Contour: 0, Segment: 1})
}

func TestAddCircleNegativeRadius(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var b Builder
	b.AddCircle(Pt(0, 0), -1)
}
