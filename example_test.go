package vpath_test

import (
	"fmt"

	"honnef.co/go/vpath"
)

func ExampleParse() {
	p, err := vpath.Parse("M10 20 h 30 v 10 z")
	if err != nil {
		panic(err)
	}
	fmt.Println(p)
	// Output:
	// M 10 20 L 40 20 L 40 30 Z
}

func ExampleBuilder() {
	var b vpath.Builder
	b.MoveTo(vpath.Pt(0, 0))
	b.LineTo(vpath.Pt(100, 0))
	b.QuadTo(vpath.Pt(150, 0), vpath.Pt(150, 50))
	b.Close()
	b.AddRect(vpath.NewRectXYWH(200, 0, 10, 10))
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	fmt.Println(p)
	// Output:
	// M 0 0 L 100 0 Q 150 0, 150 50 Z M 200 0 L 210 0 L 210 10 L 200 10 Z
}

func ExampleUnion() {
	a := vpath.MustParse("M 100 100 L 100 200 L 200 200 Z")
	b := vpath.MustParse("M 150 150 L 150 250 L 250 250 Z")
	fmt.Println(vpath.Union(a, b, vpath.Winding))
	// Output:
	// M 100 100 L 100 200 L 150 200 L 150 250 L 250 250 L 200 200 L 150 150 L 100 100 Z
}

func ExamplePath_InFill() {
	p := vpath.MustParse("M 0 0 L 100 0 L 100 100 L 0 100 Z M 25 25 L 75 25 L 75 75 L 25 75 Z")
	center := vpath.Pt(50, 50)
	fmt.Println(p.InFill(center, vpath.Winding))
	fmt.Println(p.InFill(center, vpath.EvenOdd))
	// Output:
	// true
	// false
}

func ExampleMeasure() {
	p := vpath.MustParse("M 0 0 L 100 0 L 100 50")
	m := vpath.NewMeasure(p)
	fmt.Println(m.Length())
	pt, _ := m.PointAt(120)
	fmt.Println(pt.Position(p))
	// Output:
	// 150
	// (100, 20)
}

func ExampleRoundedRect_IntersectRect() {
	rr := vpath.NewUniformRoundedRect(vpath.NewRectXYWH(0, 0, 100, 100), 10)
	for _, r := range []vpath.Rect{
		vpath.NewRectXYWH(0, 0, 80, 80),
		vpath.NewRectXYWH(110, 0, 10, 10),
		vpath.NewRectXYWH(5, -5, 10, 20),
	} {
		res, kind := rr.IntersectRect(r)
		fmt.Println(kind, res.Corners)
	}
	// Output:
	// non-empty [10×10 0×0 0×0 0×0]
	// empty [0×0 0×0 0×0 0×0]
	// not representable [0×0 0×0 0×0 0×0]
}
