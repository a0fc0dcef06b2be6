package vpath

import (
	"math"
	"slices"
)

// Crossing describes a point shared by two segments. T1 is the
// parameter on the first segment, T2 the parameter on the second.
type Crossing struct {
	T1 float64
	T2 float64
	P  Point
}

const (
	// maxIntersections is the most intersections Intersect reports.
	maxIntersections = 9
	// intersectionMergeDistance is the parameter distance below which two
	// intersections are considered the same.
	intersectionMergeDistance = 0.005
	// subdivisionTolerance is the bounding box size below which curve
	// pieces are treated as straight.
	subdivisionTolerance = 1e-3
	// subdivisionBudget limits the work done for nearly coincident curves,
	// where every pair of pieces overlaps.
	subdivisionBudget = 1 << 14
)

// Intersect computes the intersections of two segments, sorted by T1.
//
// Line/line intersections are computed exactly and collinear, overlapping
// lines report the end points of their overlap. Intersections between a
// line and a quadratic, cubic or conic are computed by solving the
// polynomial that results from substituting the curve into the line's
// implicit equation. All other pairs are intersected by recursively
// subdividing both curves until their pieces are small enough to be
// treated as lines.
//
// Identical segments, and segments that are the reverse of each other,
// report only their end points.
func Intersect(a, b Segment) []Crossing {
	if a.IsDegenerate() || b.IsDegenerate() {
		return nil
	}
	if !a.ControlBox().Overlaps(b.ControlBox()) {
		return nil
	}

	if a.Kind == b.Kind {
		if a == b {
			return []Crossing{
				{T1: 0, T2: 0, P: a.Start()},
				{T1: 1, T2: 1, P: a.End()},
			}
		}
		if a == b.Reverse() {
			return []Crossing{
				{T1: 0, T2: 1, P: a.Start()},
				{T1: 1, T2: 0, P: a.End()},
			}
		}
	}

	var out []Crossing
	switch {
	case a.Kind == LineKind && b.Kind == LineKind:
		res, n := a.Line().IntersectLine(b.Line())
		out = append(out, res[:n]...)
	case a.Kind == LineKind:
		out = intersectLineCurve(a.Line(), b, out, false)
	case b.Kind == LineKind:
		out = intersectLineCurve(b.Line(), a, out, true)
	default:
		out = intersectEndpoints(a, b, out)
		budget := subdivisionBudget
		out = intersectCurves(a, b, 0, 1, 0, 1, 0, &budget, out)
	}
	return mergeIntersections(out)
}

// intersectLineCurve intersects a line with a curve. If swap is true, T1
// of the results refers to the curve.
func intersectLineCurve(l Line, curve Segment, out []Crossing, swap bool) []Crossing {
	var res [3]Crossing
	var n int
	switch curve.Kind {
	case QuadKind:
		res, n = curve.Quad().IntersectLine(l)
	case CubicKind:
		res, n = curve.Cubic().IntersectLine(l)
	case ConicKind:
		res, n = curve.Conic().IntersectLine(l)
	default:
		panic(curve.invalid())
	}
	for _, isect := range res[:n] {
		if swap {
			isect.T1, isect.T2 = isect.T2, isect.T1
		}
		out = append(out, isect)
	}
	return out
}

// IntersectLine intersects the conic with a line. T1 of each result is
// the parameter on line, T2 the parameter on the conic.
func (c Conic) IntersectLine(line Line) ([3]Crossing, int) {
	const epsilon = 1e-9
	d := line.P1.Sub(line.P0)
	len2 := d.Hypot2()
	var ret [3]Crossing
	if len2 == 0 {
		return ret, 0
	}
	// The implicit line equation is affine, so it commutes with the
	// weighted average forming the conic. Substituting the conic gives a
	// quadratic in Bernstein form.
	implicit := func(p Point) float64 { return d.Cross(p.Sub(line.P0)) }
	l0 := implicit(c.P0)
	l1 := c.W * implicit(c.P1)
	l2 := implicit(c.P2)
	ts, n := SolveQuadratic(l0, 2*(l1-l0), l0-2*l1+l2)
	var retN int
	for _, t := range ts[:n] {
		if t < -epsilon || t > 1+epsilon {
			continue
		}
		t = clamp01(t)
		p := c.Eval(t)
		u := p.Sub(line.P0).Dot(d) / len2
		if u >= -epsilon && u <= 1+epsilon {
			ret[retN] = Crossing{T1: clamp01(u), T2: t, P: p}
			retN++
		}
	}
	return ret, retN
}

// intersectEndpoints reports end points that the two segments share
// exactly. Subdivision only finds those approximately.
func intersectEndpoints(a, b Segment, out []Crossing) []Crossing {
	ends := [2]float64{0, 1}
	for _, t1 := range ends {
		p := a.Eval(t1)
		for _, t2 := range ends {
			if b.Eval(t2) == p {
				out = append(out, Crossing{T1: t1, T2: t2, P: p})
			}
		}
	}
	return out
}

func intersectCurves(a, b Segment, a0, a1, b0, b1 float64, depth int, budget *int, out []Crossing) []Crossing {
	const maxDepth = 32
	if *budget <= 0 {
		return out
	}
	*budget--

	sa := a.Subsegment(a0, a1)
	sb := b.Subsegment(b0, b1)
	boxA := sa.ControlBox()
	boxB := sb.ControlBox()
	if !boxA.Overlaps(boxB) {
		return out
	}

	if depth >= maxDepth ||
		(boxA.MaxSide() < subdivisionTolerance && boxB.MaxSide() < subdivisionTolerance) {
		la := Line{sa.Start(), sa.End()}
		lb := Line{sb.Start(), sb.End()}
		res, n := la.IntersectLine(lb)
		if n == 0 {
			// The pieces are too small to tell apart; this is a tangency.
			res[0] = Crossing{T1: 0.5, T2: 0.5}
			n = 1
		}
		for _, isect := range res[:n] {
			t1 := a0 + (a1-a0)*isect.T1
			t2 := b0 + (b1-b0)*isect.T2
			out = append(out, Crossing{T1: t1, T2: t2, P: a.Eval(t1)})
		}
		return out
	}

	am := (a0 + a1) / 2
	bm := (b0 + b1) / 2
	if boxA.MaxSide() < subdivisionTolerance {
		out = intersectCurves(a, b, a0, a1, b0, bm, depth+1, budget, out)
		return intersectCurves(a, b, a0, a1, bm, b1, depth+1, budget, out)
	}
	if boxB.MaxSide() < subdivisionTolerance {
		out = intersectCurves(a, b, a0, am, b0, b1, depth+1, budget, out)
		return intersectCurves(a, b, am, a1, b0, b1, depth+1, budget, out)
	}
	out = intersectCurves(a, b, a0, am, b0, bm, depth+1, budget, out)
	out = intersectCurves(a, b, a0, am, bm, b1, depth+1, budget, out)
	out = intersectCurves(a, b, am, a1, b0, bm, depth+1, budget, out)
	return intersectCurves(a, b, am, a1, bm, b1, depth+1, budget, out)
}

// mergeIntersections drops intersections that are within
// intersectionMergeDistance of an earlier one, limits the result to
// maxIntersections and sorts it by T1.
func mergeIntersections(in []Crossing) []Crossing {
	if len(in) == 0 {
		return nil
	}
	out := in[:0:0]
outer:
	for _, isect := range in {
		for _, kept := range out {
			if math.Abs(kept.T1-isect.T1) < intersectionMergeDistance &&
				math.Abs(kept.T2-isect.T2) < intersectionMergeDistance {
				continue outer
			}
		}
		out = append(out, isect)
	}
	slices.SortStableFunc(out, func(x, y Crossing) int {
		switch {
		case x.T1 < y.T1:
			return -1
		case x.T1 > y.T1:
			return 1
		default:
			return 0
		}
	})
	if len(out) > maxIntersections {
		out = out[:maxIntersections]
	}
	return out
}
