package vpath

import (
	"iter"
	"math"
	"sort"
)

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

// Arclen returns the arclength of a cubic Bézier segment.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// The following values don't have the factor of 3 for first deriv
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		est += wi * (ddNorm2 / dNorm2)
	}
	if math.IsNaN(est) {
		// dNorm2 will be 0 as c approaches a singularity
		est = 0
	}

	estGauss8Error := min(math.Pow(est, 3)*2.5e-6, 3e-2) * lplc
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(est, 6)*1.5e-11, 9e-3) * lplc
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(est, 9)*3.5e-16, 3.5e-3) * lplc
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm Vec2, dm1 Vec2, dm2 Vec2) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += 1.5 * wi * (dpx + dmx)
	}
	return sum
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := c.P0.vec().Mul(mt * mt * mt)
	b := c.P1.vec().Mul(mt * mt * 3.0)
	cc := c.P2.vec().Mul(mt * 3.0)
	d := c.P3.vec()
	return a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t)).pt()
}

// Deriv returns the first derivative at t.
func (c CubicBez) Deriv(t float64) Vec2 {
	return c.Differentiate().Eval(t).vec()
}

// Deriv2 returns the second derivative at t.
func (c CubicBez) Deriv2(t float64) Vec2 {
	a := c.P2.vec().Sub(c.P1.vec().Mul(2)).Add(c.P0.vec())
	b := c.P3.vec().Sub(c.P2.vec().Mul(2)).Add(c.P1.vec())
	return a.Lerp(b, t).Mul(6)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.Split(0.5)
}

// Split splits the cubic at t, using de Casteljau.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	cc := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bc := b.Lerp(cc, t)
	pm := ab.Lerp(bc, t)
	return CubicBez{c.P0, a, ab, pm}, CubicBez{pm, bc, cc, c.P3}
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

type CubicToQuadraticSegment struct {
	Start, End float64
	Segment    QuadBez
}

// Quadratics converts the cubic Bézier to quadratic Béziers.
//
// The iterator returns the start and end parameter in the cubic of each quadratic
// segment, along with the quadratic.
//
// Note that the resulting quadratic Béziers are not in general G1 continuous;
// they are optimized for minimizing distance error.
//
// This iterator will always produce at least one value.
func (c CubicBez) Quadratics(accuracy float64) iter.Seq[CubicToQuadraticSegment] {
	// The maximum error is proportional to the third derivative, which is
	// constant across the segment, so the error scales down as the third
	// power of the number of subdivisions. We subdivide t evenly.
	return func(yield func(CubicToQuadraticSegment) bool) {
		// This magic number is the square of 36 / sqrt(3).
		// See: https://web.archive.org/web/20210108052742/http://caffeineowl.com/graphics/2d/vectorial/cubic2quad01.html
		maxHypot2 := 432.0 * accuracy * accuracy
		p1x2 := c.P1.vec().Mul(3).Sub(c.P0.vec())
		p2x2 := c.P2.vec().Mul(3).Sub(c.P3.vec())
		err := p2x2.Sub(p1x2).Hypot2()
		n := max(int(math.Ceil(math.Sqrt(math.Cbrt(err/maxHypot2)))), 1)

		for i := range n {
			t0 := float64(i) / float64(n)
			t1 := float64(i+1) / float64(n)
			seg := c.Subsegment(t0, t1)
			p1x2 := seg.P1.vec().Mul(3).Sub(seg.P0.vec())
			p2x2 := seg.P2.vec().Mul(3).Sub(seg.P3.vec())
			result := QuadBez{seg.P0, p1x2.Add(p2x2).Mul(1.0 / 4.0).pt(), seg.P3}
			if !yield(CubicToQuadraticSegment{t0, t1, result}) {
				return
			}
		}
	}
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(d.Eval(t0).vec().Mul(scale))
	p2 := p3.Translate(d.Eval(t1).vec().Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		c.P1.Sub(c.P0).Mul(3).pt(),
		c.P2.Sub(c.P1).Mul(3).pt(),
		c.P3.Sub(c.P2).Mul(3).pt(),
	}
}

// Extrema returns the parameters in (0, 1) at which x or y reach an
// extreme value, in increasing order.
func (c CubicBez) Extrema() ([4]float64, int) {
	var out [4]float64
	var outN int
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	outN = cubicCoordExtrema(d0.X, d1.X, d2.X, out[:0])
	outN += cubicCoordExtrema(d0.Y, d1.Y, d2.Y, out[outN:outN])
	sort.Float64s(out[:outN])
	return out, outN
}

// yExtrema returns the parameters in (0, 1) at which y is extreme.
func (c CubicBez) yExtrema() ([2]float64, int) {
	var out [2]float64
	n := cubicCoordExtrema(c.P1.Y-c.P0.Y, c.P2.Y-c.P1.Y, c.P3.Y-c.P2.Y, out[:0])
	if n == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out, n
}

func cubicCoordExtrema(d0, d1, d2 float64, out []float64) int {
	a := d0 - 2*d1 + d2
	b := 2 * (d1 - d0)
	roots, n := SolveQuadratic(d0, b, a)
	var outN int
	for _, t := range roots[:n] {
		if t > 0.0 && t < 1.0 {
			out = append(out, t)
			outN++
		}
	}
	return outN
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// crossing computes the winding contribution of a ray from pt towards
// positive x, splitting the curve into pieces monotonic in y.
func (c CubicBez) crossing(pt Point) int {
	ts, n := c.yExtrema()
	if n == 0 {
		return c.monotonicCrossing(pt)
	}
	var w int
	t0 := 0.0
	for _, t := range ts[:n] {
		w += c.Subsegment(t0, t).monotonicCrossing(pt)
		t0 = t
	}
	return w + c.Subsegment(t0, 1).monotonicCrossing(pt)
}

func (c CubicBez) monotonicCrossing(pt Point) int {
	start, end := c.P0, c.P3
	var sign int
	switch {
	case start.Y <= pt.Y && pt.Y < end.Y:
		sign = 1
	case end.Y <= pt.Y && pt.Y < start.Y:
		sign = -1
	default:
		return 0
	}
	p1 := c.P1
	p2 := c.P2
	if pt.X >= max(start.X, end.X, p1.X, p2.X) {
		return 0
	}
	if pt.X < min(start.X, end.X, p1.X, p2.X) {
		return sign
	}
	a := end.Y - 3.0*p2.Y + 3.0*p1.Y - start.Y
	b := 3.0 * (p2.Y - 2.0*p1.Y + start.Y)
	cc := 3.0 * (p1.Y - start.Y)
	d := start.Y - pt.Y
	solution, n := SolveCubic(d, cc, b, a)
	for _, t := range solution[:n] {
		if t >= 0.0 && t <= 1.0 {
			if c.Eval(t).X > pt.X {
				return sign
			}
			return 0
		}
	}
	return 0
}

// IntersectLine intersects the curve with a line. T1 of each result is
// the parameter on line, T2 the parameter on the curve.
func (c CubicBez) IntersectLine(line Line) ([3]Crossing, int) {
	const epsilon = 1e-9
	p0 := line.P0
	p1 := line.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	// Express x and y as cubic polynomials in t, plug them into the
	// implicit equation of the probe line and solve for t.
	px0, px1, px2, px3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	py0, py1, py2, py3 := cubicBezCoefficients(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	c0 := dy*(px0-p0.X) - dx*(py0-p0.Y)
	c1 := dy*px1 - dx*py1
	c2 := dy*px2 - dx*py2
	c3 := dy*px3 - dx*py3
	invlen2 := 1.0 / (dx*dx + dy*dy)
	ts, n := SolveCubic(c0, c1, c2, c3)
	var ret [3]Crossing
	var retN int
	for _, t := range ts[:n] {
		if t >= -epsilon && t <= 1+epsilon {
			t = clamp01(t)
			x := px0 + t*px1 + t*t*px2 + t*t*t*px3
			y := py0 + t*py1 + t*t*py2 + t*t*t*py3
			u := ((x-p0.X)*dx + (y-p0.Y)*dy) * invlen2
			if u >= -epsilon && u <= 1+epsilon {
				ret[retN] = Crossing{T1: clamp01(u), T2: t, P: Pt(x, y)}
				retN++
			}
		}
	}
	return ret, retN
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}
