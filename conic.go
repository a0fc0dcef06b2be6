package vpath

import (
	"math"
)

// Conic is a rational quadratic Bézier segment: a quadratic whose control
// point carries the weight W. Weights below 1 give elliptic arcs, a
// weight of 1 is an ordinary quadratic and weights above 1 give
// hyperbolic arcs. A quarter circle has weight √½.
type Conic struct {
	P0 Point
	P1 Point
	P2 Point
	W  float64
}

// conicPolys returns the polynomial coefficients of the numerator and the
// denominator of a conic translated so that P0 is the origin.
func (c Conic) conicPolys() (n1, n2 Vec2, d1, d2 float64) {
	b := c.P1.Sub(c.P0)
	e := c.P2.Sub(c.P0)
	n1 = b.Mul(2 * c.W)
	n2 = e.Sub(b.Mul(2 * c.W))
	d1 = 2 * (c.W - 1)
	d2 = 2 - 2*c.W
	return n1, n2, d1, d2
}

func (c Conic) denom(t float64) float64 {
	mt := 1 - t
	return mt*mt + 2*c.W*t*mt + t*t
}

func (c Conic) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * c.W * t * mt
	d := t * t
	den := a + b + d
	return Point{
		X: (a*c.P0.X + b*c.P1.X + d*c.P2.X) / den,
		Y: (a*c.P0.Y + b*c.P1.Y + d*c.P2.Y) / den,
	}
}

// numDeriv returns the expression M(t) = N′D − ND′ for the translated
// numerator N and the denominator D, together with D. The derivative of
// the conic is M/D².
func (c Conic) numDeriv(t float64) (m Vec2, den float64) {
	n1, n2, d1, d2 := c.conicPolys()
	// The cubic terms cancel, leaving a quadratic in t.
	c0 := n1
	c1 := n2.Mul(2)
	c2 := n2.Mul(d1).Sub(n1.Mul(d2))
	return c0.Add(c1.Add(c2.Mul(t)).Mul(t)), c.denom(t)
}

// Deriv returns the first derivative at t.
func (c Conic) Deriv(t float64) Vec2 {
	m, den := c.numDeriv(t)
	return m.Div(den * den)
}

// Deriv2 returns the second derivative at t.
func (c Conic) Deriv2(t float64) Vec2 {
	n1, n2, d1, d2 := c.conicPolys()
	m, den := c.numDeriv(t)
	mp := n2.Mul(2).Add(n2.Mul(d1).Sub(n1.Mul(d2)).Mul(2 * t))
	dp := d1 + 2*d2*t
	return mp.Mul(den).Sub(m.Mul(2 * dp)).Div(den * den * den)
}

// Curvature returns the signed curvature at t.
func (c Conic) Curvature(t float64) float64 {
	n1, n2, d1, d2 := c.conicPolys()
	m, den := c.numDeriv(t)
	mp := n2.Mul(2).Add(n2.Mul(d1).Sub(n1.Mul(d2)).Mul(2 * t))
	h := m.Hypot()
	if h == 0 {
		return 0
	}
	return den * den * m.Cross(mp) / (h * h * h)
}

func (c Conic) Start() Point { return c.P0 }
func (c Conic) End() Point   { return c.P2 }

// Split splits the conic at t. Both halves are returned in standard form,
// with unit weights at the end points.
func (c Conic) Split(t float64) (Conic, Conic) {
	// De Casteljau in homogeneous coordinates.
	w := c.W
	ax := lerp(c.P0.X, w*c.P1.X, t)
	ay := lerp(c.P0.Y, w*c.P1.Y, t)
	aw := lerp(1, w, t)
	bx := lerp(w*c.P1.X, c.P2.X, t)
	by := lerp(w*c.P1.Y, c.P2.Y, t)
	bw := lerp(w, 1, t)
	mx := lerp(ax, bx, t)
	my := lerp(ay, by, t)
	mw := lerp(aw, bw, t)

	pm := Pt(mx/mw, my/mw)
	sm := math.Sqrt(mw)
	left := Conic{P0: c.P0, P1: Pt(ax/aw, ay/aw), P2: pm, W: aw / sm}
	right := Conic{P0: pm, P1: Pt(bx/bw, by/bw), P2: c.P2, W: bw / sm}
	return left, right
}

// homogeneous evaluates the numerator and the denominator of the conic
// at t.
func (c Conic) homogeneous(t float64) (Vec2, float64) {
	mt := 1 - t
	a := mt * mt
	b := 2 * c.W * t * mt
	d := t * t
	return Vec2{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y,
	}, a + b + d
}

// Subsegment returns the part of the conic between t0 and t1, in standard
// form.
func (c Conic) Subsegment(t0, t1 float64) Conic {
	switch {
	case t0 <= 0 && t1 >= 1:
		return c
	case t0 <= 0:
		left, _ := c.Split(t1)
		return left
	case t1 >= 1:
		_, right := c.Split(t0)
		return right
	}

	// The numerator and the denominator are quadratics. Restricted to
	// [t0, t1] their control values follow from the values at the ends
	// and in the middle.
	n0, d0 := c.homogeneous(t0)
	nm, dm := c.homogeneous((t0 + t1) / 2)
	n1, d1 := c.homogeneous(t1)
	cn := nm.Mul(2).Sub(n0.Add(n1).Mul(0.5))
	cd := 2*dm - (d0+d1)/2
	return Conic{
		P0: Pt(n0.X/d0, n0.Y/d0),
		P1: Pt(cn.X/cd, cn.Y/cd),
		P2: Pt(n1.X/d1, n1.Y/d1),
		W:  cd / math.Sqrt(d0*d1),
	}
}

func (c Conic) Transform(aff Affine) Conic {
	return Conic{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		W:  c.W,
	}
}

// coordExtrema finds the parameters in (0, 1) where the derivative of one
// coordinate vanishes. b and e are the control and end coordinates
// relative to the start.
func (c Conic) coordExtrema(b, e float64, out []float64) []float64 {
	n1 := 2 * c.W * b
	n2 := e - 2*c.W*b
	d1 := 2 * (c.W - 1)
	d2 := 2 - 2*c.W
	roots, n := SolveQuadratic(n1, 2*n2, n2*d1-n1*d2)
	for _, t := range roots[:n] {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// Extrema returns the parameters in (0, 1) at which x or y reach an
// extreme value, in increasing order.
func (c Conic) Extrema() ([4]float64, int) {
	var out [4]float64
	s := out[:0]
	s = c.coordExtrema(c.P1.X-c.P0.X, c.P2.X-c.P0.X, s)
	s = c.coordExtrema(c.P1.Y-c.P0.Y, c.P2.Y-c.P0.Y, s)
	sortSmall(s)
	return out, len(s)
}

func (c Conic) crossing(pt Point) int {
	var buf [2]float64
	ts := c.coordExtrema(c.P1.Y-c.P0.Y, c.P2.Y-c.P0.Y, buf[:0])
	sortSmall(ts)
	var w int
	t0 := 0.0
	for _, t := range ts {
		w += c.Subsegment(t0, t).monotonicCrossing(pt)
		t0 = t
	}
	return w + c.Subsegment(t0, 1).monotonicCrossing(pt)
}

func (c Conic) monotonicCrossing(pt Point) int {
	start, end := c.P0, c.P2
	var sign int
	switch {
	case start.Y <= pt.Y && pt.Y < end.Y:
		sign = 1
	case end.Y <= pt.Y && pt.Y < start.Y:
		sign = -1
	default:
		return 0
	}
	if pt.X >= max(start.X, end.X, c.P1.X) {
		return 0
	}
	if pt.X < min(start.X, end.X, c.P1.X) {
		return sign
	}
	// Solve y(t) = pt.Y, that is N_y(t) − pt.Y·D(t) = 0.
	y0 := start.Y - pt.Y
	y1 := c.P1.Y - pt.Y
	y2 := end.Y - pt.Y
	a := y0 - 2*c.W*y1 + y2
	b := 2 * (c.W*y1 - y0)
	roots, n := SolveQuadratic(y0, b, a)
	for _, t := range roots[:n] {
		if t >= 0 && t <= 1 {
			if c.Eval(t).X > pt.X {
				return sign
			}
			return 0
		}
	}
	return 0
}

// Arclen returns the arclength, integrating the speed numerically.
func (c Conic) Arclen(accuracy float64) float64 {
	return integrate(func(t float64) float64 { return c.Deriv(t).Hypot() }, 0, 1, accuracy)
}

// Cubic approximates the conic with a single cubic Bézier that shares its
// end points and end tangents.
func (c Conic) Cubic() CubicBez {
	k := 4 * c.W / (3 * (1 + c.W))
	return CubicBez{
		P0: c.P0,
		P1: c.P0.Lerp(c.P1, k),
		P2: c.P2.Lerp(c.P1, k),
		P3: c.P2,
	}
}

// Quad returns the quadratic with the same control points, which is exact
// when the weight is 1.
func (c Conic) Quad() QuadBez {
	return QuadBez{c.P0, c.P1, c.P2}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func sortSmall(s []float64) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
