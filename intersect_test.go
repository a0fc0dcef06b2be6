package vpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestIntersect(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)
	t1 := (1 - math.Sqrt(0.5)) / 2
	t2 := (1 + math.Sqrt(0.5)) / 2
	arch := QuadSeg(Pt(0, 0), Pt(10, 20), Pt(20, 0))
	tests := []struct {
		name string
		a, b Segment
		want []Crossing
	}{
		{
			"crossing lines",
			LineSeg(Pt(0, 0), Pt(10, 10)),
			LineSeg(Pt(0, 10), Pt(10, 0)),
			[]Crossing{{0.5, 0.5, Pt(5, 5)}},
		},
		{
			"lines meeting at their ends",
			LineSeg(Pt(0, 0), Pt(10, 0)),
			LineSeg(Pt(10, 0), Pt(10, 10)),
			[]Crossing{{1, 0, Pt(10, 0)}},
		},
		{
			"parallel lines",
			LineSeg(Pt(0, 0), Pt(10, 0)),
			LineSeg(Pt(0, 1), Pt(10, 1)),
			nil,
		},
		{
			"disjoint boxes",
			LineSeg(Pt(0, 0), Pt(10, 10)),
			QuadSeg(Pt(20, 20), Pt(30, 40), Pt(40, 20)),
			nil,
		},
		{
			"identical",
			arch,
			arch,
			[]Crossing{{0, 0, Pt(0, 0)}, {1, 1, Pt(20, 0)}},
		},
		{
			"reversed",
			arch,
			arch.Reverse(),
			[]Crossing{{0, 1, Pt(0, 0)}, {1, 0, Pt(20, 0)}},
		},
		{
			"line and quad",
			LineSeg(Pt(0, 5), Pt(40, 5)),
			arch,
			[]Crossing{{t1 / 2, t1, Pt(20*t1, 5)}, {t2 / 2, t2, Pt(20*t2, 5)}},
		},
		{
			"quad and line",
			arch,
			LineSeg(Pt(0, 5), Pt(40, 5)),
			[]Crossing{{t1, t1 / 2, Pt(20*t1, 5)}, {t2, t2 / 2, Pt(20*t2, 5)}},
		},
		{
			"degenerate",
			LineSeg(Pt(5, 5), Pt(5, 5)),
			arch,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, Intersect(tt.a, tt.b), approx)
		})
	}
}

func TestIntersectCurves(t *testing.T) {
	// An S-shaped cubic crosses a shallow arch twice.
	s := CubicSeg(Pt(0, 0), Pt(30, 100), Pt(70, -100), Pt(100, 0))
	arch := QuadSeg(Pt(0, -20), Pt(50, 40), Pt(100, -20))
	conic := ConicSeg(Pt(0, -20), Pt(50, 40), Pt(100, -20), 2)

	for _, other := range []Segment{arch, conic} {
		got := Intersect(s, other)
		if len(got) != 2 {
			t.Fatalf("%s: got %d crossings, want 2: %v", other, len(got), got)
		}
		for _, c := range got {
			p1 := s.Eval(c.T1)
			p2 := other.Eval(c.T2)
			if d := p1.Distance(p2); d > 0.01 {
				t.Errorf("%s: crossing %v: points are %g apart", other, c, d)
			}
			if d := p1.Distance(c.P); d > 0.01 {
				t.Errorf("%s: crossing %v: P is %g off", other, c, d)
			}
		}
		if got[0].T1 >= got[1].T1 {
			t.Errorf("%s: crossings aren't sorted: %v", other, got)
		}
	}
}

func TestIntersectSharedEndpoint(t *testing.T) {
	// Curves that share an end point report it exactly.
	a := CubicSeg(Pt(0, 0), Pt(10, 20), Pt(20, 20), Pt(30, 0))
	b := QuadSeg(Pt(30, 0), Pt(40, 30), Pt(60, 0))
	got := Intersect(a, b)
	if len(got) == 0 {
		t.Fatal("no crossings")
	}
	last := got[len(got)-1]
	diff(t, Crossing{T1: 1, T2: 0, P: Pt(30, 0)}, last)
}
