package vpath

import (
	"math"
)

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Raise raises the order by 1.
//
// Returns a cubic Bézier segment that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

// Arclen returns the arclength of the quadratic Bézier segment.
//
// This computation is based on an analytical formula. Since that formula suffers
// from numerical instability when the curve is very close to a straight line, we
// detect that case and fall back to Legendre-Gauss quadrature.
func (q QuadBez) Arclen(accuracy float64) float64 {
	d2 := q.P0.vec().Sub(q.P1.vec().Mul(2)).Add(q.P2.vec())
	a := d2.Hypot2()
	d1 := q.P1.Sub(q.P0)
	c := d1.Hypot2()
	if a < 5e-4*c {
		// Nearly straight. Legendre-Gauss quadrature with the formula from
		// Behdad in https://github.com/Pomax/BezierInfo-2/issues/77
		v0 := q.P0.vec().Mul(-0.492943519233745).
			Add(q.P1.vec().Mul(0.430331482911935)).
			Add(q.P2.vec().Mul(0.0626120363218102)).
			Hypot()
		v1 := q.P2.Sub(q.P0).Mul(0.4444444444444444).Hypot()
		v2 := q.P0.vec().Mul(-0.0626120363218102).
			Sub(q.P1.vec().Mul(0.430331482911935)).
			Add(q.P2.vec().Mul(0.492943519233745)).
			Hypot()
		return v0 + v1 + v2
	}
	b := 2.0 * d2.Dot(d1)

	sabc := math.Sqrt(a + b + c)
	a2 := math.Pow(a, -0.5)
	a32 := a2 * a2 * a2
	c2 := 2.0 * math.Sqrt(c)
	baC2 := b*a2 + c2

	v0 := 0.25*a2*a2*b*(2.0*sabc-c2) + sabc
	if baC2 < 1e-13 {
		// Sharp kink.
		return v0
	}
	return v0 + 0.25*a32*(4.0*c*a-b*b)*math.Log(((2.0*a+b)*a2+2.0*sabc)/baC2)
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := q.P0.vec().Mul(mt * mt)
	b := q.P1.vec().Mul(mt * 2.0)
	c := q.P2.vec().Mul(t)
	return a.Add(b.Add(c).Mul(t)).pt()
}

// Deriv returns the first derivative at t.
func (q QuadBez) Deriv(t float64) Vec2 {
	return q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t).Mul(2)
}

// Deriv2 returns the second derivative, which is constant.
func (q QuadBez) Deriv2() Vec2 {
	return q.P0.vec().Sub(q.P1.vec().Mul(2)).Add(q.P2.vec()).Mul(2)
}

func (q QuadBez) Split(t float64) (QuadBez, QuadBez) {
	a := q.P0.Lerp(q.P1, t)
	b := q.P1.Lerp(q.P2, t)
	pm := a.Lerp(b, t)
	return QuadBez{q.P0, a, pm}, QuadBez{pm, b, q.P2}
}

func (q QuadBez) Subsegment(t0 float64, t1 float64) QuadBez {
	p0 := q.Eval(t0)
	p2 := q.Eval(t1)
	p1 := p0.Translate(q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t0).Mul(t1 - t0))
	return QuadBez{p0, p1, p2}
}

func (q QuadBez) Start() Point {
	return q.P0
}

func (q QuadBez) End() Point {
	return q.P2
}

// Extrema returns the parameters in (0, 1) at which x or y reach an
// extreme value, in increasing order.
func (q QuadBez) Extrema() ([4]float64, int) {
	var out [4]float64
	var outN int
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	if dd.X != 0.0 {
		t := -d0.X / dd.X
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
		}
	}
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
			if outN == 2 && out[0] > t {
				out[0], out[1] = out[1], out[0]
			}
		}
	}
	return out, outN
}

// yExtremum returns the parameter in (0, 1) at which y is extreme.
func (q QuadBez) yExtremum() (float64, bool) {
	d0 := q.P1.Y - q.P0.Y
	dd := q.P2.Y - 2*q.P1.Y + q.P0.Y
	if dd == 0 {
		return 0, false
	}
	t := -d0 / dd
	return t, t > 0 && t < 1
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

// crossing computes the winding contribution of a ray from pt towards
// positive x. The curve is split at its vertical extremum so that every
// piece is monotonic in y.
func (q QuadBez) crossing(pt Point) int {
	if t, ok := q.yExtremum(); ok {
		a, b := q.Split(t)
		return a.monotonicCrossing(pt) + b.monotonicCrossing(pt)
	}
	return q.monotonicCrossing(pt)
}

func (q QuadBez) monotonicCrossing(pt Point) int {
	start, end := q.P0, q.P2
	var sign int
	switch {
	case start.Y <= pt.Y && pt.Y < end.Y:
		sign = 1
	case end.Y <= pt.Y && pt.Y < start.Y:
		sign = -1
	default:
		return 0
	}
	p1 := q.P1
	if pt.X >= max(start.X, end.X, p1.X) {
		return 0
	}
	if pt.X < min(start.X, end.X, p1.X) {
		return sign
	}
	a := end.Y - 2.0*p1.Y + start.Y
	b := 2.0 * (p1.Y - start.Y)
	c := start.Y - pt.Y
	solution, n := SolveQuadratic(c, b, a)
	for _, t := range solution[:n] {
		if t >= 0.0 && t <= 1.0 {
			if q.Eval(t).X > pt.X {
				return sign
			}
			return 0
		}
	}
	return 0
}

// IntersectLine intersects the curve with a line. T1 of each result is
// the parameter on line, T2 the parameter on the curve.
func (q QuadBez) IntersectLine(line Line) ([3]Crossing, int) {
	const epsilon = 1e-9
	p0 := line.P0
	p1 := line.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	// Express x and y as quadratic polynomials in t, plug them into the
	// implicit equation of the probe line and solve for t.
	px0, px1, px2 := quadBezCoefficients(q.P0.X, q.P1.X, q.P2.X)
	py0, py1, py2 := quadBezCoefficients(q.P0.Y, q.P1.Y, q.P2.Y)
	c0 := dy*(px0-p0.X) - dx*(py0-p0.Y)
	c1 := dy*px1 - dx*py1
	c2 := dy*px2 - dx*py2
	invlen2 := 1.0 / (dx*dx + dy*dy)
	ts, n := SolveQuadratic(c0, c1, c2)
	var ret [3]Crossing
	var retN int
	for _, t := range ts[:n] {
		if t >= -epsilon && t <= 1+epsilon {
			t = clamp01(t)
			x := px0 + t*px1 + t*t*px2
			y := py0 + t*py1 + t*t*py2
			u := ((x-p0.X)*dx + (y-p0.Y)*dy) * invlen2
			if u >= -epsilon && u <= 1+epsilon {
				ret[retN] = Crossing{T1: clamp01(u), T2: t, P: Pt(x, y)}
				retN++
			}
		}
	}
	return ret, retN
}

// Return polynomial coefficients given quadratic bezier coordinates.
func quadBezCoefficients(x0, x1, x2 float64) (_, _, _ float64) {
	p0 := x0
	p1 := 2.0*x1 - 2.0*x0
	p2 := x2 - 2.0*x1 + x0
	return p0, p1, p2
}

// An approximation to $\int (1 + 4x^2) ^ -0.25 dx$
//
// This is used for flattening curves.
func approxParabolaIntegral(x float64) float64 {
	const d = 0.67
	return x / (1.0 - d + math.Sqrt(math.Sqrt(math.Pow(d, 4)+0.25*x*x)))
}

// An approximation to the inverse parabola integral.
func approxParabolaInvIntegral(x float64) float64 {
	const b = 0.39
	return x * (1.0 - b + math.Sqrt(b*b+0.25*x*x))
}

// Maps a value from 0..1 to 0..1.
func (q QuadBez) determineSubdivT(params *flattenParams, x float64) float64 {
	a := params.a0 + (params.a2-params.a0)*x
	u := approxParabolaInvIntegral(a)
	return (u - params.u0) * params.uscale
}

// estimateSubdiv estimates the number of subdivisions for flattening.
func (q QuadBez) estimateSubdiv(sqrtTol float64) flattenParams {
	// Determine transformation to $y = x^2$ parabola.
	d01 := q.P1.Sub(q.P0)
	d12 := q.P2.Sub(q.P1)
	dd := d01.Sub(d12)
	cross := q.P2.Sub(q.P0).Cross(dd)
	x0 := d01.Dot(dd) * (1.0 / cross)
	x2 := d12.Dot(dd) * (1.0 / cross)
	scale := math.Abs(cross / (dd.Hypot() * (x2 - x0)))

	a0 := approxParabolaIntegral(x0)
	a2 := approxParabolaIntegral(x2)
	var val float64
	if !math.IsInf(scale, 0) && !math.IsNaN(scale) {
		da := math.Abs(a2 - a0)
		sqrtScale := math.Sqrt(scale)
		if math.Signbit(x0) == math.Signbit(x2) {
			val = da * sqrtScale
		} else {
			// Cusp case (segment contains curvature maximum).
			xmin := sqrtTol / sqrtScale
			val = sqrtTol * da / approxParabolaIntegral(xmin)
		}
	}
	u0 := approxParabolaInvIntegral(a0)
	u2 := approxParabolaInvIntegral(a2)
	uscale := 1.0 / (u2 - u0)
	return flattenParams{a0, a2, u0, uscale, val}
}

type flattenParams struct {
	a0     float64
	a2     float64
	u0     float64
	uscale float64
	// The number of subdivisions * 2 * sqrtTol.
	val float64
}
