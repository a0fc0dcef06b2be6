package vpath

import (
	"fmt"
	"iter"
	"math"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// contour.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
	// Draw a conic using the current location, the two points and the weight.
	ConicToKind
	// Close off the contour.
	ClosePathKind
)

// PathElement is one step of the visitor protocol through which paths are
// traversed and imported. Points are end points and control points; the
// start of each drawing element is the end of the previous one.
//
// A valid sequence has a MoveTo at the beginning of each contour.
type PathElement struct {
	Kind   PathElementKind
	P0     Point
	P1     Point
	P2     Point
	Weight float64
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind:
		return fmt.Sprintf("MoveTo(%s)", el.P0)
	case LineToKind:
		return fmt.Sprintf("LineTo(%s)", el.P0)
	case QuadToKind:
		return fmt.Sprintf("QuadTo(%s, %s)", el.P0, el.P1)
	case CubicToKind:
		return fmt.Sprintf("CubicTo(%s, %s, %s)", el.P0, el.P1, el.P2)
	case ConicToKind:
		return fmt.Sprintf("ConicTo(%s, %s, %g)", el.P0, el.P1, el.Weight)
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidPathElement"
	}
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case QuadToKind:
		return QuadTo(el.P0.Transform(aff), el.P1.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ConicToKind:
		return ConicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.Weight)
	case ClosePathKind:
		return ClosePath()
	default:
		return PathElement{}
	}
}

// EndPoint returns the point the element ends at, if it has one.
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind, ConicToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p1, p2 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p1, P1: p2}
}

func CubicTo(p1, p2, p3 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p1, P1: p2, P2: p3}
}

func ConicTo(p1, p2 Point, weight float64) PathElement {
	return PathElement{Kind: ConicToKind, P0: p1, P1: p2, Weight: weight}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// ForeachFlags selects the curve kinds a consumer of [Path.Foreach] is
// willing to receive. Lines, moves and closes are always emitted.
type ForeachFlags uint8

const (
	AllowQuad ForeachFlags = 1 << iota
	AllowCubic
	AllowConic

	AllowAll = AllowQuad | AllowCubic | AllowConic
)

// Foreach returns the path's elements, converting curves the flags don't
// allow.
//
// Quadratics are raised to cubics exactly. Cubics are approximated by
// quadratics and conics by cubics or quadratics, within tolerance. If
// neither quadratics nor cubics are allowed, curves are flattened to
// lines.
//
// The close segment of a closed contour is reported as a ClosePath
// element, even when it has zero length.
func (p *Path) Foreach(flags ForeachFlags, tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if p == nil {
			return
		}
		for _, c := range p.contours {
			if !yield(MoveTo(c.start)) {
				return
			}
			for i, seg := range c.segments {
				if c.closed && i == len(c.segments)-1 {
					if !yield(ClosePath()) {
						return
					}
					break
				}
				if !segmentElements(seg, flags, tolerance, yield) {
					return
				}
			}
		}
	}
}

// Elements returns the path's elements without any conversion.
func (p *Path) Elements() iter.Seq[PathElement] {
	return p.Foreach(AllowAll, 0)
}

func segmentElements(seg Segment, flags ForeachFlags, tolerance float64, yield func(PathElement) bool) bool {
	switch seg.Kind {
	case LineKind:
		return yield(LineTo(seg.P1))
	case QuadKind:
		switch {
		case flags&AllowQuad != 0:
			return yield(QuadTo(seg.P1, seg.P2))
		case flags&AllowCubic != 0:
			c := seg.Quad().Raise()
			return yield(CubicTo(c.P1, c.P2, c.P3))
		default:
			return flattenQuad(seg.Quad(), tolerance, yield)
		}
	case CubicKind:
		switch {
		case flags&AllowCubic != 0:
			return yield(CubicTo(seg.P1, seg.P2, seg.P3))
		case flags&AllowQuad != 0:
			for quad := range seg.Cubic().Quadratics(max(tolerance, minTolerance)) {
				if !yield(QuadTo(quad.Segment.P1, quad.Segment.P2)) {
					return false
				}
			}
			return true
		default:
			return flattenCubic(seg.Cubic(), tolerance, yield)
		}
	case ConicKind:
		switch {
		case flags&AllowConic != 0:
			return yield(ConicTo(seg.P1, seg.P2, seg.Weight))
		case flags&AllowCubic != 0:
			for c := range seg.Conic().Cubics(tolerance) {
				if !yield(CubicTo(c.P1, c.P2, c.P3)) {
					return false
				}
			}
			return true
		case flags&AllowQuad != 0:
			for q := range seg.Conic().Quadratics(tolerance) {
				if !yield(QuadTo(q.P1, q.P2)) {
					return false
				}
			}
			return true
		default:
			for c := range seg.Conic().Cubics(tolerance / 2) {
				if !flattenCubic(c, tolerance/2, yield) {
					return false
				}
			}
			return true
		}
	default:
		panic(seg.invalid())
	}
}

// minTolerance keeps conversions finite when callers pass a zero
// tolerance.
const minTolerance = 1e-6

// Cubics approximates the conic with cubic Béziers, subdividing it until
// each piece is within tolerance of its approximation.
func (c Conic) Cubics(tolerance float64) iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		c.cubics(max(tolerance, minTolerance), 0, yield)
	}
}

func (c Conic) cubics(tolerance float64, depth int, yield func(CubicBez) bool) bool {
	const maxDepth = 10
	approx := c.Cubic()
	if depth >= maxDepth || c.cubicError(approx) <= tolerance {
		return yield(approx)
	}
	a, b := c.Split(0.5)
	return a.cubics(tolerance, depth+1, yield) && b.cubics(tolerance, depth+1, yield)
}

// cubicError estimates the distance between the conic and a cubic
// approximating it by sampling both.
func (c Conic) cubicError(approx CubicBez) float64 {
	var err float64
	for _, t := range [...]float64{0.25, 0.5, 0.75} {
		err = max(err, c.Eval(t).Distance(approx.Eval(t)))
	}
	return err
}

// Quadratics approximates the conic with quadratic Béziers. The error of
// using a conic's own control polygon as a quadratic is bounded by
// |w-1|/(4(1+w)) times the length of p0 - 2p1 + p2, which determines how
// often the conic is split.
func (c Conic) Quadratics(tolerance float64) iter.Seq[QuadBez] {
	return func(yield func(QuadBez) bool) {
		c.quadratics(max(tolerance, minTolerance), 0, yield)
	}
}

func (c Conic) quadratics(tolerance float64, depth int, yield func(QuadBez) bool) bool {
	const maxDepth = 10
	a := c.W - 1
	k := math.Abs(a) / (4 * (2 + a))
	e := c.P0.vec().Sub(c.P1.vec().Mul(2)).Add(c.P2.vec()).Hypot()
	if depth >= maxDepth || k*e <= tolerance {
		return yield(c.Quad())
	}
	l, r := c.Split(0.5)
	return l.quadratics(tolerance, depth+1, yield) && r.quadratics(tolerance, depth+1, yield)
}

func flattenQuad(q QuadBez, tolerance float64, yield func(PathElement) bool) bool {
	sqrtTol := math.Sqrt(max(tolerance, minTolerance))
	params := q.estimateSubdiv(sqrtTol)
	n := max(int(math.Ceil(0.5*params.val/sqrtTol)), 1)
	step := 1.0 / float64(n)
	for i := 1; i < n; i++ {
		u := float64(i) * step
		t := q.determineSubdivT(&params, u)
		if !yield(LineTo(q.Eval(t))) {
			return false
		}
	}
	return yield(LineTo(q.P2))
}

// flattenCubic subdivides the cubic into quadratics and distributes the
// subdivision points of those quadratics evenly over the whole curve.
func flattenCubic(c CubicBez, tolerance float64, yield func(PathElement) bool) bool {
	// Proportion of tolerance budget that goes to cubic to quadratic conversion.
	const toQuadTol = 0.1

	tolerance = max(tolerance, minTolerance)
	sqrtRemainTol := math.Sqrt(tolerance) * math.Sqrt(1.0-toQuadTol)
	type quadParams struct {
		q      QuadBez
		params flattenParams
	}
	var quads []quadParams
	sum := 0.0
	for quad := range c.Quadratics(tolerance * toQuadTol) {
		params := quad.Segment.estimateSubdiv(sqrtRemainTol)
		sum += params.val
		quads = append(quads, quadParams{quad.Segment, params})
	}
	n := max(int(math.Ceil(0.5*sum/sqrtRemainTol)), 1)

	step := sum / float64(n)
	i := 1
	valSum := 0.0
	for _, qp := range quads {
		target := float64(i) * step
		recipVal := 1.0 / qp.params.val
		for target < valSum+qp.params.val && i < n {
			u := (target - valSum) * recipVal
			t := qp.q.determineSubdivT(&qp.params, u)
			if !yield(LineTo(qp.q.Eval(t))) {
				return false
			}
			i++
			target = float64(i) * step
		}
		valSum += qp.params.val
	}
	return yield(LineTo(c.P3))
}
