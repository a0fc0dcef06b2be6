package vpath

import (
	"math"
	"testing"
)

func TestRectAreaSign(t *testing.T) {
	r := Rect{0.0, 0.0, 10.0, 10.0}
	if a := r.Area(); a != 100 {
		t.Errorf("got area %v, want %v", a, 100.0)
	}

	var b Builder
	b.AddRect(r)
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !p.InFill(r.Center(), Winding) {
		t.Errorf("center of %v not in fill", r)
	}

	rFlip := Rect{0.0, 10.0, 10.0, 0.0}
	if a := rFlip.Area(); a != -100 {
		t.Errorf("got area %v, want %v", a, -100.0)
	}
	diff(t, r, rFlip.Abs())
}

func TestRectContains(t *testing.T) {
	r := NewRectXYWH(10, 10, 20, 10)
	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(15, 15), true},
		{Pt(10, 10), true},
		{Pt(30, 20), true},
		{Pt(30.001, 20), false},
		{Pt(9, 15), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.pt); got != tt.want {
			t.Errorf("%v.Contains(%v) = %t, want %t", r, tt.pt, got, tt.want)
		}
	}
	if !r.ContainsRect(r) {
		t.Errorf("%v should contain itself", r)
	}
	if r.ContainsRect(r.Inflate(1, 0)) {
		t.Errorf("%v shouldn't contain a larger rect", r)
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	tests := []struct {
		b    Rect
		want Rect
		ok   bool
	}{
		{Rect{5, 5, 15, 15}, Rect{5, 5, 10, 10}, true},
		{Rect{2, 2, 4, 4}, Rect{2, 2, 4, 4}, true},
		// Touching rectangles share no area.
		{Rect{10, 0, 20, 10}, Rect{}, false},
		{Rect{20, 20, 30, 30}, Rect{}, false},
	}
	for _, tt := range tests {
		got, ok := a.Intersect(tt.b)
		if ok != tt.ok {
			t.Errorf("%v ∩ %v: got ok = %t, want %t", a, tt.b, ok, tt.ok)
		}
		diff(t, tt.want, got)
	}

	if !a.Overlaps(Rect{10, 0, 20, 10}) {
		t.Error("touching rectangles should overlap")
	}
	diff(t, Rect{0, 0, 30, 30}, a.Union(Rect{20, 20, 30, 30}))
}

func TestRectUnionPoint(t *testing.T) {
	r := emptyBounds
	for _, pt := range []Point{Pt(3, 4), Pt(-1, 2), Pt(5, -6)} {
		r = r.UnionPoint(pt)
	}
	diff(t, Rect{-1, -6, 5, 4}, r)
	if r.IsNaN() || math.IsInf(r.Area(), 0) {
		t.Errorf("unexpected bounds %v", r)
	}
}
