package vpath

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(Scale(2, 1).ThenTranslate(Vec(1, 1))), Pt(7, 5), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
	}
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	aInv := a.Invert()

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(aInv).Transform(a), p, epsilon)
		assertNear(t, p.Transform(a).Transform(aInv), p, epsilon)
	}
}

func TestAffineDihedral(t *testing.T) {
	tests := []struct {
		aff  Affine
		want Dihedral
		ok   bool
	}{
		{Identity, Normal, true},
		{Scale(2, 3), Normal, true},
		{Scale(-1, 1), Flipped, true},
		{Scale(1, -2), Flipped180, true},
		{Scale(-1, -1), Rotate180, true},
		{Rotate(math.Pi / 4), Normal, false},
		{DihedralAffine(Rotate90).ThenTranslate(Vec(3, 4)), Rotate90, true},
		{DihedralAffine(Flipped270), Flipped270, true},
	}
	for _, tt := range tests {
		got, ok := tt.aff.Dihedral()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%v.Dihedral() = %v, %t; want %v, %t", tt.aff, got, ok, tt.want, tt.ok)
		}
	}
}
