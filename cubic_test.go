package vpath

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCubicBezDeriv(t *testing.T) {
	// y = x^2
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}
	deriv := c.Differentiate()

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := c.Eval(ts)
		p1 := c.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := Vec2(deriv.Eval(ts))
		if l := d.Sub(dApprox).Hypot(); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
		if l := d.Sub(c.Deriv(ts)).Hypot(); l > 1e-12 {
			t.Errorf("Deriv and Differentiate disagree by %g", l)
		}
	}
}

func TestCubicBezToQuadratics(t *testing.T) {
	// y = x^3
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 0.0),
		Pt(1.0, 1.0),
	}
	for i := range 10 {
		accuracy := math.Pow(0.1, float64(i))
		for seq := range c.Quadratics(accuracy) {
			t0, t1, q := seq.Start, seq.End, seq.Segment
			const epsilon = 1e-12
			if delta := q.Start().Sub(c.Eval(t0)).Hypot(); delta > epsilon {
				t.Fatalf("%g > %g", delta, epsilon)
			}
			if delta := q.End().Sub(c.Eval(t1)).Hypot(); delta > epsilon {
				t.Fatalf("%g > %g", delta, epsilon)
			}
			const n = 4
			for j := range n + 1 {
				ts := float64(j) / float64(n)
				p := q.Eval(ts)
				if err := math.Abs(p.Y - math.Pow(p.X, 3)); err > accuracy {
					t.Fatalf("got error %g for desired accuracy of %g", err, accuracy)
				}
			}
		}
	}
}

func TestCubicBezToQuadraticsDegenerate(t *testing.T) {
	// collinear points
	c := CubicBez{
		Pt(0.0, 9.0),
		Pt(6.0, 6.0),
		Pt(12.0, 3.0),
		Pt(18.0, 0.0),
	}
	var n int
	for range c.Quadratics(1e-6) {
		n++
	}
	if n != 1 {
		t.Errorf("got %d quadratics, expected 1", n)
	}
}

func BenchmarkCubicBezToQuadratics(b *testing.B) {
	shape := CubicBez{
		P0: Pt(20, 40),
		P1: Pt(40, 80),
		P2: Pt(-40, 40),
		P3: Pt(42, 62),
	}
	for i := range 11 {
		acc := 1.0 / math.Pow(10, float64(2*i))
		b.Run(fmt.Sprintf("1e-%d", 2*i), func(b *testing.B) {
			for range b.N {
				for range shape.Quadratics(acc) {
				}
			}
		})
	}
}

func TestIntersectCubicLine(t *testing.T) {
	c := CubicBez{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -20.0), Pt(30.0, 10.0)}
	vLine := Line{Pt(10.0, -10.0), Pt(10.0, 10.0)}
	xs, n := c.IntersectLine(vLine)
	want := []Crossing{{T1: 16.0 / 27.0, T2: 1.0 / 3.0}}
	diff(t, want, xs[:n], cmpopts.EquateApprox(0, 1e-8), cmpopts.IgnoreFields(Crossing{}, "P"))

	hLine := Line{Pt(0.0, 0.0), Pt(100.0, 0.0)}
	if _, n := c.IntersectLine(hLine); n != 3 {
		t.Errorf("got %d intersections, want 3", n)
	}
}

func TestCubicBezExtrema(t *testing.T) {
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	extrema, n := q.Extrema()
	if n != 1 {
		t.Fatalf("got %d extrema, expected 1", n)
	}
	if want := 0.5; math.Abs(extrema[0]-want) > 1e-6 {
		t.Errorf("got extrema %v, want %v", extrema[0], want)
	}

	q = CubicBez{Pt(0.4, 0.5), Pt(0.0, 1.0), Pt(1.0, 0.0), Pt(0.5, 0.4)}
	extrema, n = q.Extrema()
	if n != 4 {
		t.Fatalf("got %d extrema, expected 4", n)
	}
}

func TestCubicNearest(t *testing.T) {
	verify := func(c CubicBez, pt Point, want float64) {
		t.Helper()
		_, got, ok := c.Seg().Nearest(pt, math.Inf(1))
		if !ok {
			t.Fatalf("no closest point for %v", pt)
		}
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	// y = x^3
	c := CubicBez{Pt(0.0, 0.0), Pt(1.0/3.0, 0.0), Pt(2.0/3.0, 0.0), Pt(1.0, 1.0)}
	verify(c, Pt(0.1, 0.001), 0.1)
	verify(c, Pt(0.2, 0.008), 0.2)
	verify(c, Pt(0.3, 0.027), 0.3)
	verify(c, Pt(0.4, 0.064), 0.4)
	verify(c, Pt(0.5, 0.125), 0.5)
	verify(c, Pt(0.6, 0.216), 0.6)
	verify(c, Pt(0.7, 0.343), 0.7)
	verify(c, Pt(0.8, 0.512), 0.8)
	verify(c, Pt(0.9, 0.729), 0.9)
	verify(c, Pt(1.0, 1.0), 1.0)
	verify(c, Pt(1.1, 1.1), 1.0)
	verify(c, Pt(-0.1, 0.0), 0.0)
	a := Rotate(0.5)
	verify(c.Transform(a), Pt(0.1, 0.001).Transform(a), 0.1)
}

func TestCubicBezArclen(t *testing.T) {
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}
	trueArclen := 0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0))
	for i := range 12 {
		accuracy := math.Pow(0.1, float64(i))
		diff(t, trueArclen, c.Arclen(accuracy), cmpopts.EquateApprox(0, accuracy))
	}
}

func TestCubicBezInvArclen(t *testing.T) {
	// y = x^2 / 100
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(100.0/3.0, 0.0),
		Pt(200.0/3.0, 100.0/3.0),
		Pt(100.0, 100.0),
	}
	seg := c.Seg()
	trueArclen := 100.0 * (0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0)))
	for i := range 10 {
		accuracy := math.Pow(0.1, float64(i))
		n := 10
		for j := range n + 1 {
			arc := float64(j) * (1.0 / float64(n) * trueArclen)
			tt := seg.SolveForArclen(arc, accuracy*0.5)
			actualArc := c.Subsegment(0.0, tt).Arclen(accuracy * 0.5)
			diff(t, arc, actualArc, cmpopts.EquateApprox(0, accuracy))
		}
	}
}
