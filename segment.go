package vpath

import (
	"fmt"
	"math"
)

type SegmentKind uint8

const (
	// A line segment.
	LineKind SegmentKind = iota + 1
	// A quadratic Bézier segment.
	QuadKind
	// A cubic Bézier segment.
	CubicKind
	// A conic segment, a quadratic with a weighted control point.
	ConicKind
)

func (k SegmentKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case QuadKind:
		return "quad"
	case CubicKind:
		return "cubic"
	case ConicKind:
		return "conic"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is a single line or curve of a contour. It acts as a tagged
// union over [Line], [QuadBez], [CubicBez] and [Conic].
//
// Lines use P0 and P1, quads and conics P0 through P2, and cubics all four
// points. Weight is only meaningful for conics.
type Segment struct {
	Kind   SegmentKind
	P0     Point
	P1     Point
	P2     Point
	P3     Point
	Weight float64
}

func LineSeg(p0, p1 Point) Segment {
	return Segment{Kind: LineKind, P0: p0, P1: p1}
}

func QuadSeg(p0, p1, p2 Point) Segment {
	return Segment{Kind: QuadKind, P0: p0, P1: p1, P2: p2}
}

func CubicSeg(p0, p1, p2, p3 Point) Segment {
	return Segment{Kind: CubicKind, P0: p0, P1: p1, P2: p2, P3: p3}
}

func ConicSeg(p0, p1, p2 Point, w float64) Segment {
	return Segment{Kind: ConicKind, P0: p0, P1: p1, P2: p2, Weight: w}
}

func (seg Segment) Line() Line      { return Line{seg.P0, seg.P1} }
func (seg Segment) Quad() QuadBez   { return QuadBez{seg.P0, seg.P1, seg.P2} }
func (seg Segment) Cubic() CubicBez { return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3} }
func (seg Segment) Conic() Conic    { return Conic{seg.P0, seg.P1, seg.P2, seg.Weight} }

func (seg Segment) invalid() string {
	return fmt.Sprintf("invalid segment kind %v", seg.Kind)
}

func (seg Segment) String() string {
	switch seg.Kind {
	case LineKind:
		return fmt.Sprintf("Line(%s, %s)", seg.P0, seg.P1)
	case QuadKind:
		return fmt.Sprintf("Quad(%s, %s, %s)", seg.P0, seg.P1, seg.P2)
	case CubicKind:
		return fmt.Sprintf("Cubic(%s, %s, %s, %s)", seg.P0, seg.P1, seg.P2, seg.P3)
	case ConicKind:
		return fmt.Sprintf("Conic(%s, %s, %s, %g)", seg.P0, seg.P1, seg.P2, seg.Weight)
	default:
		return seg.invalid()
	}
}

func (seg Segment) Start() Point {
	return seg.P0
}

func (seg Segment) End() Point {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case QuadKind, ConicKind:
		return seg.P2
	case CubicKind:
		return seg.P3
	default:
		panic(seg.invalid())
	}
}

// points returns the control polygon.
func (seg Segment) points() []Point {
	switch seg.Kind {
	case LineKind:
		return []Point{seg.P0, seg.P1}
	case QuadKind, ConicKind:
		return []Point{seg.P0, seg.P1, seg.P2}
	case CubicKind:
		return []Point{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		panic(seg.invalid())
	}
}

func (seg Segment) Eval(t float64) Point {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Eval(t)
	case QuadKind:
		return seg.Quad().Eval(t)
	case CubicKind:
		return seg.Cubic().Eval(t)
	case ConicKind:
		return seg.Conic().Eval(t)
	default:
		panic(seg.invalid())
	}
}

// Deriv returns the first derivative at t.
func (seg Segment) Deriv(t float64) Vec2 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Deriv()
	case QuadKind:
		return seg.Quad().Deriv(t)
	case CubicKind:
		return seg.Cubic().Deriv(t)
	case ConicKind:
		return seg.Conic().Deriv(t)
	default:
		panic(seg.invalid())
	}
}

// Deriv2 returns the second derivative at t.
func (seg Segment) Deriv2(t float64) Vec2 {
	switch seg.Kind {
	case LineKind:
		return Vec2{}
	case QuadKind:
		return seg.Quad().Deriv2()
	case CubicKind:
		return seg.Cubic().Deriv2(t)
	case ConicKind:
		return seg.Conic().Deriv2(t)
	default:
		panic(seg.invalid())
	}
}

// Tangent returns the unit tangent at t. Where the derivative vanishes,
// as at an end point whose control point coincides with it, the tangent
// points along the control polygon instead. Degenerate segments, which
// collapse to a single point, have a zero tangent.
func (seg Segment) Tangent(t float64) Vec2 {
	const epsilon = 1e-12
	if d := seg.Deriv(t); d.Hypot2() > epsilon {
		return d.Normalize()
	}
	pts := seg.points()
	if t < 0.5 {
		for _, p := range pts[1:] {
			if d := p.Sub(pts[0]); d.Hypot2() > epsilon {
				return d.Normalize()
			}
		}
	} else {
		last := pts[len(pts)-1]
		for i := len(pts) - 2; i >= 0; i-- {
			if d := last.Sub(pts[i]); d.Hypot2() > epsilon {
				return d.Normalize()
			}
		}
	}
	return Vec2{}
}

// Curvature returns the signed curvature at t. Lines, and points where
// the curve has no well-defined direction, have zero curvature.
func (seg Segment) Curvature(t float64) float64 {
	switch seg.Kind {
	case LineKind:
		return 0
	case ConicKind:
		return seg.Conic().Curvature(t)
	case QuadKind, CubicKind:
		d1 := seg.Deriv(t)
		h := d1.Hypot()
		if h < 1e-12 {
			return 0
		}
		return d1.Cross(seg.Deriv2(t)) / (h * h * h)
	default:
		panic(seg.invalid())
	}
}

// Split splits the segment at t.
func (seg Segment) Split(t float64) (Segment, Segment) {
	switch seg.Kind {
	case LineKind:
		a, b := seg.Line().Split(t)
		return a.Seg(), b.Seg()
	case QuadKind:
		a, b := seg.Quad().Split(t)
		return a.Seg(), b.Seg()
	case CubicKind:
		a, b := seg.Cubic().Split(t)
		return a.Seg(), b.Seg()
	case ConicKind:
		a, b := seg.Conic().Split(t)
		return a.Seg(), b.Seg()
	default:
		panic(seg.invalid())
	}
}

// Subsegment returns the part of the segment between t0 and t1. If t0 is
// larger than t1, the result runs backwards.
func (seg Segment) Subsegment(t0, t1 float64) Segment {
	if t0 > t1 {
		return seg.Subsegment(t1, t0).Reverse()
	}
	switch seg.Kind {
	case LineKind:
		return seg.Line().Subsegment(t0, t1).Seg()
	case QuadKind:
		return seg.Quad().Subsegment(t0, t1).Seg()
	case CubicKind:
		return seg.Cubic().Subsegment(t0, t1).Seg()
	case ConicKind:
		return seg.Conic().Subsegment(t0, t1).Seg()
	default:
		panic(seg.invalid())
	}
}

// Reverse returns the segment traversed in the opposite direction.
func (seg Segment) Reverse() Segment {
	switch seg.Kind {
	case LineKind:
		return LineSeg(seg.P1, seg.P0)
	case QuadKind:
		return QuadSeg(seg.P2, seg.P1, seg.P0)
	case CubicKind:
		return CubicSeg(seg.P3, seg.P2, seg.P1, seg.P0)
	case ConicKind:
		return ConicSeg(seg.P2, seg.P1, seg.P0, seg.Weight)
	default:
		panic(seg.invalid())
	}
}

func (seg Segment) Transform(aff Affine) Segment {
	out := seg
	out.P0 = seg.P0.Transform(aff)
	out.P1 = seg.P1.Transform(aff)
	out.P2 = seg.P2.Transform(aff)
	out.P3 = seg.P3.Transform(aff)
	return out
}

// Extrema returns the parameters in (0, 1) at which the curve reaches an
// extreme x or y value.
func (seg Segment) Extrema() ([4]float64, int) {
	switch seg.Kind {
	case LineKind:
		return [4]float64{}, 0
	case QuadKind:
		return seg.Quad().Extrema()
	case CubicKind:
		return seg.Cubic().Extrema()
	case ConicKind:
		return seg.Conic().Extrema()
	default:
		panic(seg.invalid())
	}
}

// BoundingBox returns the smallest rectangle enclosing the segment.
func (seg Segment) BoundingBox() Rect {
	bbox := NewRectFromPoints(seg.Start(), seg.End())
	ex, n := seg.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(seg.Eval(t))
	}
	return bbox
}

// ControlBox returns the bounding box of the control polygon, which
// encloses the segment.
func (seg Segment) ControlBox() Rect {
	bbox := emptyBounds
	for _, p := range seg.points() {
		bbox = bbox.UnionPoint(p)
	}
	return bbox
}

// IsDegenerate reports whether all of the segment's points coincide.
func (seg Segment) IsDegenerate() bool {
	pts := seg.points()
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}

// Arclen returns the length of the segment.
func (seg Segment) Arclen(accuracy float64) float64 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Length()
	case QuadKind:
		return seg.Quad().Arclen(accuracy)
	case CubicKind:
		return seg.Cubic().Arclen(accuracy)
	case ConicKind:
		return seg.Conic().Arclen(accuracy)
	default:
		panic(seg.invalid())
	}
}

// SolveForArclen solves for the parameter that has the given arc length from
// the start of the segment.
//
// This uses the [ITP method], as provided by [SolveITP], and computes arc
// lengths of increasingly small pieces of the segment rather than
// repeatedly measuring from t=0.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
func (seg Segment) SolveForArclen(arclen float64, accuracy float64) float64 {
	if arclen <= 0.0 {
		return 0.0
	}
	if seg.Kind == LineKind {
		l := seg.Line().Length()
		if arclen >= l {
			return 1
		}
		return arclen / l
	}
	totalArclen := seg.Arclen(accuracy)
	if arclen >= totalArclen {
		return 1.0
	}
	tLast := 0.0
	arclenLast := 0.0
	epsilon := accuracy / totalArclen
	n := 1.0 - min(math.Ceil(math.Log2(epsilon)), 0.0)
	innerAccuracy := accuracy / n
	f := func(t float64) float64 {
		var rangeStart, rangeEnd, dir float64
		if t > tLast {
			rangeStart = tLast
			rangeEnd = t
			dir = 1.0
		} else {
			rangeStart = t
			rangeEnd = tLast
			dir = -1.0
		}
		arc := seg.Subsegment(rangeStart, rangeEnd).Arclen(innerAccuracy)
		arclenLast += arc * dir
		tLast = t
		return arclenLast - arclen
	}
	return SolveITP(f, 0.0, 1.0, epsilon, 1, 0.2, -arclen, totalArclen-arclen)
}

// crossing computes the winding contribution of a ray cast from pt
// towards positive x.
func (seg Segment) crossing(pt Point) int {
	switch seg.Kind {
	case LineKind:
		return seg.Line().crossing(pt)
	case QuadKind:
		return seg.Quad().crossing(pt)
	case CubicKind:
		return seg.Cubic().crossing(pt)
	case ConicKind:
		return seg.Conic().crossing(pt)
	default:
		panic(seg.invalid())
	}
}

func (l Line) Seg() Segment     { return LineSeg(l.P0, l.P1) }
func (q QuadBez) Seg() Segment  { return QuadSeg(q.P0, q.P1, q.P2) }
func (c CubicBez) Seg() Segment { return CubicSeg(c.P0, c.P1, c.P2, c.P3) }
func (c Conic) Seg() Segment    { return ConicSeg(c.P0, c.P1, c.P2, c.W) }
