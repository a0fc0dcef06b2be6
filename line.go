package vpath

import (
	"math"
)

// Line is a straight segment from P0 to P1.
type Line struct {
	P0 Point
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Deriv returns the derivative, which is constant along the line.
func (l Line) Deriv() Vec2 {
	return l.P1.Sub(l.P0)
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Subsegment(t0, t1 float64) Line {
	return Line{l.Eval(t0), l.Eval(t1)}
}

func (l Line) Split(t float64) (Line, Line) {
	pm := l.Eval(t)
	return Line{l.P0, pm}, Line{pm, l.P1}
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// Nearest returns the parameter of the point on the line closest to pt,
// and the distance to it. A line of zero length reports t = 0.
func (l Line) Nearest(pt Point) (dist, t float64) {
	d := l.P1.Sub(l.P0)
	dSquared := d.Dot(d)
	if dSquared == 0 {
		return pt.Distance(l.P0), 0
	}
	dotp := d.Dot(pt.Sub(l.P0))
	switch {
	case dotp <= 0:
		return pt.Distance(l.P0), 0
	case dotp >= dSquared:
		return pt.Distance(l.P1), 1
	default:
		t := dotp / dSquared
		return pt.Distance(l.Eval(t)), t
	}
}

// CrossingPoint computes the point where two lines, if extended to
// infinity, would cross.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

// crossing returns the winding contribution of the line for a ray cast
// from pt towards positive x. Edges are half-open in y, so an edge
// touching the ray only at its upper end point does not count.
func (l Line) crossing(pt Point) int {
	start, end := l.P0, l.P1
	var sign int
	switch {
	case start.Y <= pt.Y && pt.Y < end.Y:
		sign = 1
	case end.Y <= pt.Y && pt.Y < start.Y:
		sign = -1
	default:
		return 0
	}
	if pt.X >= max(start.X, end.X) {
		return 0
	}
	if pt.X < min(start.X, end.X) {
		return sign
	}
	x := start.X + (pt.Y-start.Y)*(end.X-start.X)/(end.Y-start.Y)
	if x > pt.X {
		return sign
	}
	return 0
}

// IntersectLine intersects two lines. Collinear, overlapping lines
// produce the end points of the overlap; lines that merely touch in a
// single point produce that point.
func (l Line) IntersectLine(o Line) ([2]Crossing, int) {
	const epsilon = 1e-9
	d1 := l.P1.Sub(l.P0)
	d2 := o.P1.Sub(o.P0)
	det := d1.Cross(d2)
	if math.Abs(det) < epsilon*max(d1.Hypot()*d2.Hypot(), 1e-300) {
		return l.intersectCollinear(o)
	}
	w := o.P0.Sub(l.P0)
	t1 := w.Cross(d2) / det
	t2 := w.Cross(d1) / det
	if t1 < -epsilon || t1 > 1+epsilon || t2 < -epsilon || t2 > 1+epsilon {
		return [2]Crossing{}, 0
	}
	t1 = clamp01(t1)
	t2 = clamp01(t2)
	return [2]Crossing{{T1: t1, T2: t2, P: l.Eval(t1)}}, 1
}

func (l Line) intersectCollinear(o Line) ([2]Crossing, int) {
	const epsilon = 1e-9
	d1 := l.P1.Sub(l.P0)
	len2 := d1.Hypot2()
	if len2 == 0 {
		return [2]Crossing{}, 0
	}
	// Reject parallel lines that aren't on the same infinite line.
	if math.Abs(d1.Cross(o.P0.Sub(l.P0)))/math.Sqrt(len2) > 1e-6 {
		return [2]Crossing{}, 0
	}
	param := func(p Point) float64 { return p.Sub(l.P0).Dot(d1) / len2 }
	oLen2 := o.P1.Sub(o.P0).Hypot2()
	oParam := func(p Point) float64 {
		if oLen2 == 0 {
			return 0
		}
		return p.Sub(o.P0).Dot(o.P1.Sub(o.P0)) / oLen2
	}
	s0, s1 := param(o.P0), param(o.P1)
	lo, hi := max(min(s0, s1), 0), min(max(s0, s1), 1)
	if lo > hi+epsilon {
		return [2]Crossing{}, 0
	}
	var out [2]Crossing
	p := l.Eval(lo)
	out[0] = Crossing{T1: lo, T2: clamp01(oParam(p)), P: p}
	if hi-lo <= epsilon {
		return out, 1
	}
	p = l.Eval(hi)
	out[1] = Crossing{T1: hi, T2: clamp01(oParam(p)), P: p}
	return out, 2
}

func clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}
