package vpath

import "iter"

// QuadBSpline is a quadratic B-spline. It is encoded as [P₁, C₁, C₂, C₃, C₄, ..., Pₙ],
// where Pᵢ are on-curve points and Cᵢ are off-curve control points. Only the first and
// last on-curve points are explicit. All other on-curve points are implicit and defined
// as Pᵢ = (Cᵢ₋₁ + Cᵢ) / 2. This is the format of TrueType glyf outlines.
type QuadBSpline []Point

// Quads returns an iterator over the implied sequence of quadratic Bézier segments. The
// returned segments are G1 continuous.
func (q QuadBSpline) Quads() iter.Seq[QuadBez] {
	return func(yield func(QuadBez) bool) {
		for i := 0; len(q[i:]) >= 3; i++ {
			p0, p1, p2 := q[i], q[i+1], q[i+2]
			if i != 0 {
				p0 = p0.Midpoint(p1)
			}
			if i+2 < len(q)-1 {
				p2 = p1.Midpoint(p2)
			}
			if !yield(QuadBez{p0, p1, p2}) {
				return
			}
		}
	}
}

// QuadSplineTo continues the current contour with the quadratic B-spline
// that starts at the current point, has the off-curve control points
// ctrl, and ends at end. Without control points, it draws a line.
func (b *Builder) QuadSplineTo(end Point, ctrl ...Point) {
	cur, ok := b.start()
	if !ok {
		return
	}
	if len(ctrl) == 0 {
		b.LineTo(end)
		return
	}
	spline := make(QuadBSpline, 0, len(ctrl)+2)
	spline = append(spline, cur)
	spline = append(spline, ctrl...)
	spline = append(spline, end)
	for q := range spline.Quads() {
		b.QuadTo(q.P1, q.P2)
	}
}
