package vpath

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestBuilderReductions(t *testing.T) {
	tests := []struct {
		name string
		draw func(b *Builder)
		want string
	}{
		{"line to current point", func(b *Builder) {
			b.LineTo(Pt(0, 0))
			b.LineTo(Pt(10, 0))
			b.LineTo(Pt(10, 0))
		}, "M 0 0 L 10 0"},
		{"collinear quad", func(b *Builder) {
			b.QuadTo(Pt(5, 0), Pt(10, 0))
		}, "M 0 0 L 10 0"},
		{"quad with control at start", func(b *Builder) {
			b.QuadTo(Pt(0, 0), Pt(10, 10))
		}, "M 0 0 L 10 10"},
		{"point cubic", func(b *Builder) {
			b.CubicTo(Pt(0, 0), Pt(0, 0), Pt(0, 0))
		}, "M 0 0"},
		{"cubic with controls at end points", func(b *Builder) {
			b.CubicTo(Pt(0, 0), Pt(10, 5), Pt(10, 5))
		}, "M 0 0 L 10 5"},
		{"collinear cubic", func(b *Builder) {
			b.CubicTo(Pt(2, 2), Pt(6, 6), Pt(10, 10))
		}, "M 0 0 L 10 10"},
		{"raised quad", func(b *Builder) {
			b.CubicTo(Pt(20, 20), Pt(40, 20), Pt(60, 0))
		}, "M 0 0 Q 30 30, 60 0"},
		{"proper cubic", func(b *Builder) {
			b.CubicTo(Pt(0, 10), Pt(10, 10), Pt(10, 0))
		}, "M 0 0 C 0 10, 10 10, 10 0"},
		{"conic of weight one", func(b *Builder) {
			b.ConicTo(Pt(10, 0), Pt(10, 10), 1)
		}, "M 0 0 Q 10 0, 10 10"},
		{"collinear conic", func(b *Builder) {
			b.ConicTo(Pt(5, 5), Pt(10, 10), 2)
		}, "M 0 0 L 10 10"},
		{"arc", func(b *Builder) {
			b.ArcTo(Pt(10, 0), Pt(10, 10))
		}, "M 0 0 O 10 0, 10 10, 0.7071067811865476"},
		{"zero radius svg arc", func(b *Builder) {
			b.SVGArcTo(0, 5, 0, false, false, Pt(10, 10))
		}, "M 0 0 L 10 10"},
		{"relative", func(b *Builder) {
			b.RelLineTo(Vec(10, 0))
			b.RelQuadTo(Vec(10, 0), Vec(10, 10))
			b.RelCubicTo(Vec(0, 10), Vec(-10, 10), Vec(-10, 0))
			b.RelConicTo(Vec(0, -5), Vec(-5, -5), 0.5)
			b.RelMoveTo(Vec(1, 1))
		}, "M 0 0 L 10 0 Q 20 0, 20 10 C 20 20, 10 20, 10 10 O 10 5, 5 5, 0.5 M 6 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Builder
			b.MoveTo(Pt(0, 0))
			tt.draw(&b)
			p, err := b.Build()
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.want, p.String())
		})
	}
}

func TestBuilderOvershootingQuad(t *testing.T) {
	// The quad reaches x = 40/3 before turning back to its end point, so
	// it becomes two lines.
	var b Builder
	b.MoveTo(Pt(0, 0))
	b.QuadTo(Pt(20, 0), Pt(10, 0))
	p, _ := b.Build()

	c := p.Contour(0)
	if c.NumSegments() != 2 {
		t.Fatalf("got %s, want two lines", p)
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	for i, want := range []Point{Pt(40.0/3, 0), Pt(10, 0)} {
		seg := c.Segment(i)
		diff(t, LineKind, seg.Kind)
		diff(t, want, seg.End(), approx)
	}
}

func TestBuilderNoCurrentPoint(t *testing.T) {
	var b Builder
	b.LineTo(Pt(10, 10))
	b.QuadTo(Pt(1, 1), Pt(2, 0))
	if !errors.Is(b.Err(), ErrNoCurrentPoint) {
		t.Fatalf("got %v, want ErrNoCurrentPoint", b.Err())
	}
	b.MoveTo(Pt(0, 0))
	b.LineTo(Pt(5, 5))
	p, err := b.Build()
	if !errors.Is(err, ErrNoCurrentPoint) {
		t.Errorf("Build returned %v, want ErrNoCurrentPoint", err)
	}
	diff(t, "M 0 0 L 5 5", p.String())

	// Build resets the builder, errors included.
	if b.Err() != nil {
		t.Errorf("error survived Build: %v", b.Err())
	}
	if _, ok := b.CurrentPoint(); ok {
		t.Error("current point survived Build")
	}
}

func TestBuilderNoCurrentPointRelative(t *testing.T) {
	for name, fn := range map[string]func(b *Builder){
		"RelMoveTo":     func(b *Builder) { b.RelMoveTo(Vec(1, 1)) },
		"CubicTo":       func(b *Builder) { b.CubicTo(Pt(1, 1), Pt(2, 2), Pt(3, 0)) },
		"ConicTo":       func(b *Builder) { b.ConicTo(Pt(1, 1), Pt(2, 0), 0.5) },
		"SVGArcTo":      func(b *Builder) { b.SVGArcTo(1, 1, 0, false, false, Pt(2, 0)) },
		"HTMLArcTo":     func(b *Builder) { b.HTMLArcTo(Pt(1, 1), Pt(2, 0), 1) },
		"RelSVGArcTo":   func(b *Builder) { b.RelSVGArcTo(1, 1, 0, false, false, Vec(2, 0)) },
		"RelHTMLArcTo":  func(b *Builder) { b.RelHTMLArcTo(Vec(1, 1), Vec(2, 0), 1) },
		"QuadSplineTo":  func(b *Builder) { b.QuadSplineTo(Pt(2, 0), Pt(1, 1)) },
		"AddElements":   func(b *Builder) { b.AddElements(MustParse("M 0 0 L 1 1").Elements()) },
		"RelArcTo":      func(b *Builder) { b.RelArcTo(Vec(1, 1), Vec(2, 0)) },
		"RelConicTo":    func(b *Builder) { b.RelConicTo(Vec(1, 1), Vec(2, 0), 2) },
		"RelCubicTo":    func(b *Builder) { b.RelCubicTo(Vec(1, 1), Vec(2, 2), Vec(3, 0)) },
		"RelQuadTo":     func(b *Builder) { b.RelQuadTo(Vec(1, 1), Vec(2, 0)) },
		"RelLineTo":     func(b *Builder) { b.RelLineTo(Vec(1, 1)) },
		"LineTo":        func(b *Builder) { b.LineTo(Pt(1, 1)) },
		"ArcTo":         func(b *Builder) { b.ArcTo(Pt(1, 1), Pt(2, 0)) },
		"QuadTo":        func(b *Builder) { b.QuadTo(Pt(1, 1), Pt(2, 0)) },
		"Close":         func(b *Builder) { b.Close(); b.LineTo(Pt(1, 1)) },
	} {
		var b Builder
		fn(&b)
		p, err := b.Build()
		if name == "AddElements" {
			// AddElements starts with a move, so it has a current point.
			if err != nil {
				t.Errorf("%s: unexpected error %v", name, err)
			}
			continue
		}
		if !errors.Is(err, ErrNoCurrentPoint) {
			t.Errorf("%s: got %v, want ErrNoCurrentPoint", name, err)
		}
		if !p.IsEmpty() {
			t.Errorf("%s: got path %s, want empty path", name, p)
		}
	}
}

func TestBuilderClose(t *testing.T) {
	var b Builder
	b.MoveTo(Pt(0, 0))
	b.LineTo(Pt(10, 0))
	b.LineTo(Pt(10, 10))
	b.Close()
	cur, ok := b.CurrentPoint()
	if !ok {
		t.Fatal("no current point after Close")
	}
	diff(t, Pt(0, 0), cur)

	// Closing without an open contour does nothing.
	b.Close()
	b.LineTo(Pt(0, 10))
	p, _ := b.Build()
	diff(t, "M 0 0 L 10 0 L 10 10 Z M 0 0 L 0 10", p.String())

	c := p.Contour(0)
	diff(t, 3, c.NumSegments())
	diff(t, LineSeg(Pt(10, 10), Pt(0, 0)), c.Segment(2))
	diff(t, true, c.IsClosed())
	diff(t, false, p.Contour(1).IsClosed())
}

func TestBuilderCompositesRestoreCurrentPoint(t *testing.T) {
	var b Builder
	b.MoveTo(Pt(0, 0))
	b.LineTo(Pt(10, 0))
	b.AddRect(NewRectXYWH(0, 0, 5, 5))
	cur, _ := b.CurrentPoint()
	diff(t, Pt(10, 0), cur)
	b.LineTo(Pt(20, 0))
	p, _ := b.Build()
	diff(t, "M 0 0 L 10 0 M 0 0 L 5 0 L 5 5 L 0 5 Z M 10 0 L 20 0", p.String())

	// Without a current point before, there is none after.
	b.AddCircle(Pt(0, 0), 1)
	if _, ok := b.CurrentPoint(); ok {
		t.Error("AddCircle left a current point behind")
	}
	b.LineTo(Pt(1, 1))
	if _, err := b.Build(); !errors.Is(err, ErrNoCurrentPoint) {
		t.Errorf("got %v, want ErrNoCurrentPoint", err)
	}
}

func TestBuilderHTMLArcTo(t *testing.T) {
	var b Builder
	b.MoveTo(Pt(0, 0))
	b.HTMLArcTo(Pt(10, 0), Pt(10, 10), 5)
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	c := p.Contour(0)
	if c.NumSegments() < 2 {
		t.Fatalf("got %s, want a line and an arc", p)
	}
	diff(t, LineKind, c.Segment(0).Kind)
	diff(t, Pt(5, 0), c.Segment(0).End(), approx)
	diff(t, Pt(10, 5), c.End(), approx)

	// The arc is a quarter circle around (5, 5).
	for _, seg := range c.Segments() {
		if seg.Kind == LineKind {
			continue
		}
		for _, tt := range []float64{0.25, 0.5, 0.75} {
			d := seg.Eval(tt).Distance(Pt(5, 5))
			if math.Abs(d-5) > 0.01 {
				t.Errorf("point at %g is %g away from the center", tt, d)
			}
		}
	}

	// A second line that almost doubles back degrades to a line.
	b.MoveTo(Pt(0, 0))
	b.HTMLArcTo(Pt(10, 0), Pt(0, 0.1), 5)
	p, _ = b.Build()
	diff(t, "M 0 0 L 0 0.1", p.String())
}

func TestBuilderSVGArcTo(t *testing.T) {
	var b Builder
	b.MoveTo(Pt(0, 0))
	b.SVGArcTo(10, 10, 0, false, true, Pt(20, 0))
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	for _, seg := range p.Contour(0).Segments() {
		for _, tt := range []float64{0, 0.5, 1} {
			d := seg.Eval(tt).Distance(Pt(10, 0))
			if math.Abs(d-10) > 0.01 {
				t.Errorf("point at %g is %g away from the center", tt, d)
			}
		}
	}
	diff(t, Pt(20, 0), p.Contour(0).End())

	// With sweep set, the arc goes in the direction of positive angles,
	// which in y-down coordinates is clockwise, passing above the center.
	box, _ := p.Bounds()
	diff(t, NewRectXYWH(0, -10, 20, 10), box, cmpopts.EquateApprox(0, 1e-6))
}

func TestBuilderAddReversePath(t *testing.T) {
	p := MustParse("M 0 0 L 10 0 L 10 10 Z M 20 0 L 30 0 Q 40 0, 40 10")
	var b Builder
	b.AddReversePath(p)
	got, _ := b.Build()
	diff(t, "M 40 10 Q 40 0, 30 0 L 20 0 M 0 0 L 10 10 L 10 0 L 0 0 Z", got.String())

	// Reversing twice restores the contour order and directions.
	b.AddReversePath(got)
	twice, _ := b.Build()
	diff(t, "M 0 0 L 10 0 L 10 10 L 0 0 Z M 20 0 L 30 0 Q 40 0, 40 10", twice.String())
}

func TestBuilderAddPath(t *testing.T) {
	p := MustParse("M 0 0 L 10 0 Z")
	var b Builder
	b.MoveTo(Pt(5, 5))
	b.LineTo(Pt(6, 6))
	b.AddPath(p)
	b.AddPath(nil)
	b.LineTo(Pt(7, 7))
	got, _ := b.Build()
	diff(t, "M 5 5 L 6 6 M 0 0 L 10 0 Z M 6 6 L 7 7", got.String())
}

func TestBuilderAddElements(t *testing.T) {
	p := MustParse("M 0 0 L 10 0 Q 20 0, 20 10 C 20 20, 10 30, 0 20 O -10 20, -10 10, 0.5 Z M 3 3")
	var b Builder
	b.AddElements(p.Elements())
	got, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(got) {
		t.Errorf("got %s, want %s", got, p)
	}
}

func TestBuilderNaNPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var b Builder
	b.MoveTo(Pt(0, 0))
	b.LineTo(Pt(math.NaN(), 0))
}
