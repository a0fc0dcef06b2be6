package vpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEmptyPathQueries(t *testing.T) {
	for _, p := range []*Path{nil, MustParse(""), MustParse("M 1 1 M 2 2")} {
		if _, ok := p.StartPoint(); ok {
			t.Errorf("%q: got a start point", p)
		}
		if _, ok := p.EndPoint(); ok {
			t.Errorf("%q: got an end point", p)
		}
		if _, _, ok := p.ClosestPoint(Pt(1, 1), math.Inf(1)); ok {
			t.Errorf("%q: got a closest point", p)
		}
		if _, ok := p.Bounds(); ok {
			t.Errorf("%q: got bounds", p)
		}
		if p.InFill(Pt(1, 1), Winding) {
			t.Errorf("%q: point is in fill", p)
		}
		if p.IsClosed() {
			t.Errorf("%q: path is closed", p)
		}
	}
}

func TestStartEndPoint(t *testing.T) {
	p := MustParse("M 0 0 M 1 1 L 2 2 Q 3 3, 4 2 M 5 5")
	start, ok := p.StartPoint()
	if !ok {
		t.Fatal("no start point")
	}
	end, ok := p.EndPoint()
	if !ok {
		t.Fatal("no end point")
	}
	diff(t, PathPoint{Contour: 1}, start)
	diff(t, PathPoint{Contour: 1, Segment: 1, T: 1}, end)
	diff(t, Pt(1, 1), start.Position(p))
	diff(t, Pt(4, 2), end.Position(p))
}

func TestClosestPoint(t *testing.T) {
	p := MustParse("M 0 0 L 10 0 L 10 10 L 0 10 Z")
	tests := []struct {
		target  Point
		maxDist float64
		want    PathPoint
		dist    float64
		ok      bool
	}{
		{Pt(5, -3), math.Inf(1), PathPoint{0, 0, 0.5}, 3, true},
		{Pt(13, 5), math.Inf(1), PathPoint{0, 1, 0.5}, 3, true},
		{Pt(-1, 5), 1, PathPoint{0, 3, 0.5}, 1, true},
		{Pt(-1, 5), 0.5, PathPoint{}, 0, false},
		// Equally close to all four sides; the first one wins.
		{Pt(5, 5), math.Inf(1), PathPoint{0, 0, 0.5}, 5, true},
		{Pt(10, 0), 0, PathPoint{0, 0, 1}, 0, true},
	}
	for _, tt := range tests {
		got, dist, ok := p.ClosestPoint(tt.target, tt.maxDist)
		if ok != tt.ok {
			t.Errorf("%s: got ok = %t, want %t", tt.target, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		diff(t, tt.want, got)
		diff(t, tt.dist, dist)
	}
}

func TestClosestPointCurve(t *testing.T) {
	var b Builder
	b.AddCircle(Pt(0, 0), 10)
	p, _ := b.Build()

	for _, target := range []Point{Pt(20, 0), Pt(3, 4), Pt(-7, 7), Pt(0, -30)} {
		pt, dist, ok := p.ClosestPoint(target, math.Inf(1))
		if !ok {
			t.Fatalf("%s: no closest point", target)
		}
		want := math.Abs(target.Distance(Pt(0, 0)) - 10)
		if math.Abs(dist-want) > 1e-6 {
			t.Errorf("%s: got distance %g, want %g", target, dist, want)
		}
		if got := pt.Position(p).Distance(Pt(0, 0)); math.Abs(got-10) > 1e-6 {
			t.Errorf("%s: closest point %s isn't on the circle", target, pt.Position(p))
		}
	}
}

func TestTangent(t *testing.T) {
	p := MustParse("M 0 0 L 10 0 L 10 10 L 0 10 Z")
	approx := cmpopts.EquateApprox(0, 1e-12)
	tests := []struct {
		pt   PathPoint
		dir  Direction
		want Vec2
	}{
		{PathPoint{0, 0, 0}, FromStart, Vec(0, -1)},
		{PathPoint{0, 0, 0}, ToStart, Vec(0, 1)},
		{PathPoint{0, 0, 0}, ToEnd, Vec(1, 0)},
		{PathPoint{0, 0, 0}, FromEnd, Vec(-1, 0)},
		{PathPoint{0, 0, 1}, FromStart, Vec(1, 0)},
		{PathPoint{0, 0, 1}, ToEnd, Vec(0, 1)},
		{PathPoint{0, 1, 0.5}, FromStart, Vec(0, 1)},
		{PathPoint{0, 1, 0.5}, ToEnd, Vec(0, 1)},
		{PathPoint{0, 3, 1}, ToEnd, Vec(1, 0)},
	}
	for _, tt := range tests {
		diff(t, tt.want, tt.pt.Tangent(p, tt.dir), approx)
	}
}

func TestTangentSkipsZeroLengthSegments(t *testing.T) {
	// The close segment has zero length, so queries on it look at the
	// neighbouring segments, wrapping around the closed contour.
	p := MustParse("M 0 0 L 10 0 L 10 10 L 0 0 Z")
	closeSeg := PathPoint{Contour: 0, Segment: 3, T: 0}
	s := math.Sqrt2 / 2
	approx := cmpopts.EquateApprox(0, 1e-12)
	diff(t, Vec(1, 0), closeSeg.Tangent(p, ToEnd), approx)
	diff(t, Vec(-s, -s), closeSeg.Tangent(p, FromStart), approx)

	// Open contours don't wrap.
	q := MustParse("M 0 0 L 10 0 L 10 10")
	diff(t, Vec(1, 0), PathPoint{0, 0, 0}.Tangent(q, FromStart), approx)
	diff(t, Vec(0, 1), PathPoint{0, 1, 1}.Tangent(q, ToEnd), approx)
}

func TestDegenerateContour(t *testing.T) {
	p := MustParse("M 5 5 Z")
	pt := PathPoint{}
	diff(t, Vec2{}, pt.Tangent(p, ToEnd))
	k, center := pt.Curvature(p, ToEnd)
	diff(t, math.Inf(1), k)
	diff(t, Pt(5, 5), center)
}

func TestCurvature(t *testing.T) {
	var b Builder
	b.AddCircle(Pt(0, 0), 10)
	p, _ := b.Build()
	approx := cmpopts.EquateApprox(0, 1e-9)

	for _, pt := range []PathPoint{{0, 0, 0}, {0, 1, 0.3}, {0, 2, 0.5}, {0, 3, 1}} {
		k, center := pt.Curvature(p, ToEnd)
		diff(t, 0.1, k, approx)
		diff(t, Pt(0, 0), center, approx)
	}

	// The reversed circle turns the other way.
	b.AddReversePath(p)
	r, _ := b.Build()
	k, center := PathPoint{0, 1, 0.5}.Curvature(r, ToEnd)
	diff(t, -0.1, k, approx)
	diff(t, Pt(0, 0), center, approx)

	// Lines don't curve.
	line := MustParse("M 0 0 L 10 10")
	k, center = PathPoint{0, 0, 0.5}.Curvature(line, ToEnd)
	diff(t, 0.0, k)
	diff(t, Point{}, center)
}

func TestInFill(t *testing.T) {
	nested := MustParse("M 0 0 L 10 0 L 10 10 L 0 10 Z M 2 2 L 8 2 L 8 8 L 2 8 Z")
	hole := MustParse("M 0 0 L 10 0 L 10 10 L 0 10 Z M 2 2 L 2 8 L 8 8 L 8 2 Z")
	triangle := MustParse("M 0 0 L 10 0 L 10 10")
	var b Builder
	b.AddCircle(Pt(50, 50), 10)
	circle, _ := b.Build()

	tests := []struct {
		name string
		path *Path
		pt   Point
		rule FillRule
		want bool
	}{
		{"nested center winding", nested, Pt(5, 5), Winding, true},
		{"nested center even-odd", nested, Pt(5, 5), EvenOdd, false},
		{"nested ring", nested, Pt(1, 5), EvenOdd, true},
		{"hole center winding", hole, Pt(5, 5), Winding, false},
		{"hole ring", hole, Pt(9, 9), Winding, true},
		{"outside", nested, Pt(20, 5), Winding, false},
		{"open contour", triangle, Pt(7, 3), Winding, true},
		{"open contour outside", triangle, Pt(3, 7), Winding, false},
		{"circle center", circle, Pt(50, 50), Winding, true},
		{"circle edge", circle, Pt(57, 57), EvenOdd, true},
		{"circle corner", circle, Pt(58, 58), EvenOdd, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, tt.path.InFill(tt.pt, tt.rule))
		})
	}
}

func TestPathPointCompare(t *testing.T) {
	pts := []PathPoint{{0, 0, 0}, {0, 0, 0.5}, {0, 1, 0}, {1, 0, 0}}
	for i, a := range pts {
		for j, b := range pts {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := a.Compare(b); got != want {
				t.Errorf("%s.Compare(%s) = %d, want %d", a, b, got, want)
			}
		}
	}
	diff(t, "PathPoint(0, 1, 0.5)", PathPoint{0, 1, 0.5}.String())
}
