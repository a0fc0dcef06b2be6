package vpath

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestQuadSpline(t *testing.T) {
	p1 := Pt(1, 1)
	p2 := Pt(2, 2)
	p3 := Pt(3, 3)
	p5 := Pt(5, 5)
	p8 := Pt(8, 8)
	tests := []struct {
		in  QuadBSpline
		out []QuadBez
	}{
		{make(QuadBSpline, 0), nil},
		{make(QuadBSpline, 1), nil},
		{make(QuadBSpline, 2), nil},
		{QuadBSpline{p1, p2, p3}, []QuadBez{{p1, p2, p3}}},
		{QuadBSpline{p1, p3, p5, p8}, []QuadBez{
			{p1, p3, p3.Midpoint(p5)},
			{p3.Midpoint(p5), p5, p8},
		}},
	}

	for _, tt := range tests {
		got := slices.Collect(tt.in.Quads())
		diff(t, tt.out, got, cmpopts.EquateEmpty())
	}
}

func TestBuilderQuadSplineTo(t *testing.T) {
	var b Builder
	b.MoveTo(Pt(0, 0))
	b.QuadSplineTo(Pt(40, 0), Pt(10, 10), Pt(30, 10))
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "M 0 0 Q 10 10, 20 10 Q 30 10, 40 0", p.String())
}
