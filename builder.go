package vpath

import (
	"math"
)

// collinearTolerance is the distance from a line within which a point
// counts as lying on it.
const collinearTolerance = 0.001

// Builder constructs paths. The zero value is an empty builder that is
// ready to use.
//
// Drawing calls other than MoveTo need a current point. Without one, they
// are ignored and the builder records [ErrNoCurrentPoint], which is
// returned by Build. Only the first error is kept.
//
// The builder simplifies what it is given: lines to the current point are
// dropped, and curves whose control points make them degenerate are
// replaced by lines or by curves of lower degree.
//
// A Builder must not be used concurrently.
type Builder struct {
	contours []Contour
	cur      Contour
	open     bool
	current  option[Point]
	err      error
}

// CurrentPoint returns the current point, which is the end of the last
// drawing call or the start of the last closed contour.
func (b *Builder) CurrentPoint() (Point, bool) {
	return b.current.value, b.current.isSet
}

// Err returns the first error encountered by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the path built so far along with the first error that
// occurred, and resets the builder.
func (b *Builder) Build() (*Path, error) {
	b.endCurrent()
	p := &Path{contours: b.contours}
	err := b.err
	*b = Builder{}
	return p, err
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// start returns the current point, recording an error if there is none.
func (b *Builder) start() (Point, bool) {
	if !b.current.isSet {
		b.setErr(ErrNoCurrentPoint)
		return Point{}, false
	}
	return b.current.value, true
}

// endCurrent finishes the open contour, if any.
func (b *Builder) endCurrent() {
	if !b.open {
		return
	}
	b.contours = append(b.contours, b.cur)
	b.cur = Contour{}
	b.open = false
}

func (b *Builder) ensureOpen() {
	if b.open {
		return
	}
	b.cur = Contour{start: b.current.unwrap()}
	b.open = true
}

func (b *Builder) push(seg Segment) {
	for _, p := range seg.points() {
		if p.IsNaN() {
			panic("vpath: NaN coordinate")
		}
	}
	b.ensureOpen()
	b.cur.segments = append(b.cur.segments, seg)
	b.current.set(seg.End())
}

// MoveTo ends the current contour and starts a new one at pt.
func (b *Builder) MoveTo(pt Point) {
	if pt.IsNaN() {
		panic("vpath: NaN coordinate")
	}
	b.endCurrent()
	b.current.set(pt)
	b.ensureOpen()
}

// RelMoveTo is like MoveTo, with pt relative to the current point.
func (b *Builder) RelMoveTo(v Vec2) {
	if p0, ok := b.start(); ok {
		b.MoveTo(p0.Translate(v))
	}
}

// LineTo draws a line from the current point to pt.
func (b *Builder) LineTo(pt Point) {
	if _, ok := b.start(); ok {
		b.lineTo(pt)
	}
}

// RelLineTo is like LineTo, with pt relative to the current point.
func (b *Builder) RelLineTo(v Vec2) {
	if p0, ok := b.start(); ok {
		b.lineTo(p0.Translate(v))
	}
}

func (b *Builder) lineTo(pt Point) {
	p0 := b.current.unwrap()
	if p0 == pt {
		return
	}
	b.push(LineSeg(p0, pt))
}

// QuadTo draws a quadratic Bézier from the current point to p2, with p1
// as the control point.
func (b *Builder) QuadTo(p1, p2 Point) {
	if _, ok := b.start(); ok {
		b.quadTo(p1, p2)
	}
}

// RelQuadTo is like QuadTo, with the points relative to the current
// point.
func (b *Builder) RelQuadTo(v1, v2 Vec2) {
	if p0, ok := b.start(); ok {
		b.quadTo(p0.Translate(v1), p0.Translate(v2))
	}
}

func (b *Builder) quadTo(p1, p2 Point) {
	p0 := b.current.unwrap()
	if collinear(p0, p1, p2) {
		b.degenerateCurveTo(QuadSeg(p0, p1, p2))
		return
	}
	b.push(QuadSeg(p0, p1, p2))
}

// degenerateCurveTo replaces a quadratic or conic whose points lie on a
// line with one line, or with two if the curve overshoots its end points.
func (b *Builder) degenerateCurveTo(seg Segment) {
	p0, p1, p2 := seg.P0, seg.P1, seg.P2
	if !NewRectFromPoints(p0, p2).Contains(p1) {
		bb := seg.BoundingBox()
		for c := TopLeft; c <= BottomLeft; c++ {
			q := bb.Corner(c)
			if q == p0 || q == p2 {
				b.lineTo(bb.Corner((c + 2) % 4))
				break
			}
		}
	}
	b.lineTo(p2)
}

// CubicTo draws a cubic Bézier from the current point to p3, with p1 and
// p2 as the control points.
func (b *Builder) CubicTo(p1, p2, p3 Point) {
	if _, ok := b.start(); ok {
		b.cubicTo(p1, p2, p3)
	}
}

// RelCubicTo is like CubicTo, with the points relative to the current
// point.
func (b *Builder) RelCubicTo(v1, v2, v3 Vec2) {
	if p0, ok := b.start(); ok {
		b.cubicTo(p0.Translate(v1), p0.Translate(v2), p0.Translate(v3))
	}
}

func (b *Builder) cubicTo(p1, p2, p3 Point) {
	p0 := b.current.unwrap()
	p01 := p0 == p1
	p12 := p1 == p2
	p23 := p2 == p3

	if p01 && p12 && p23 {
		return
	}
	if (p01 && p23) || (p12 && (p01 || p23)) {
		b.lineTo(p3)
		return
	}

	if collinear(p0, p1, p2) && collinear(p1, p2, p3) && (!p12 || collinear(p0, p1, p3)) {
		bb := NewRectFromPoints(p0, p3)
		p1in := bb.Contains(p1)
		p2in := bb.Contains(p2)
		if !p1in || !p2in {
			tight := CubicSeg(p0, p1, p2, p3).BoundingBox()
			if !p1in {
				if p, ok := cornerBetween(tight, p0, p1); ok {
					b.lineTo(p)
				}
			}
			if !p2in {
				if p, ok := cornerBetween(tight, p3, p2); ok {
					b.lineTo(p)
				}
			}
		}
		b.lineTo(p3)
		return
	}

	// Cubics that are raised quadratics have the same quadratic control
	// point when extrapolated from either end.
	p := p0.Lerp(p1, 1.5)
	q := p3.Lerp(p2, 1.5)
	if p.Near(q, collinearTolerance) {
		b.quadTo(p, p3)
		return
	}

	b.push(CubicSeg(p0, p1, p2, p3))
}

// ConicTo draws a conic from the current point to p2, with p1 as the
// control point. A weight of 1 yields a quadratic Bézier, smaller weights
// elliptic arcs and larger weights hyperbolic ones. The weight must be
// positive.
func (b *Builder) ConicTo(p1, p2 Point, weight float64) {
	if !(weight > 0) {
		panic("vpath: conic weight must be positive")
	}
	if _, ok := b.start(); ok {
		b.conicTo(p1, p2, weight)
	}
}

// RelConicTo is like ConicTo, with the points relative to the current
// point.
func (b *Builder) RelConicTo(v1, v2 Vec2, weight float64) {
	if !(weight > 0) {
		panic("vpath: conic weight must be positive")
	}
	if p0, ok := b.start(); ok {
		b.conicTo(p0.Translate(v1), p0.Translate(v2), weight)
	}
}

func (b *Builder) conicTo(p1, p2 Point, weight float64) {
	if weight == 1 {
		b.quadTo(p1, p2)
		return
	}
	p0 := b.current.unwrap()
	if collinear(p0, p1, p2) {
		b.degenerateCurveTo(ConicSeg(p0, p1, p2, weight))
		return
	}
	b.push(ConicSeg(p0, p1, p2, weight))
}

// ArcTo draws an elliptical arc from the current point to p2, tangent to
// the lines towards and away from p1. Two points and their tangents do
// not determine a unique ellipse; ArcTo uses a conic with weight √½.
func (b *Builder) ArcTo(p1, p2 Point) {
	b.ConicTo(p1, p2, math.Sqrt2/2)
}

// RelArcTo is like ArcTo, with the points relative to the current point.
func (b *Builder) RelArcTo(v1, v2 Vec2) {
	b.RelConicTo(v1, v2, math.Sqrt2/2)
}

// Close closes the current contour with a line back to its start and
// makes the start the current point. A subsequent drawing call starts a
// new contour there. Close does nothing if there is no open contour.
func (b *Builder) Close() {
	if !b.open {
		return
	}
	start := b.cur.start
	end := b.current.unwrap()
	b.cur.segments = append(b.cur.segments, LineSeg(end, start))
	b.cur.closed = true
	b.endCurrent()
	b.current.set(start)
}

// collinear reports whether p lies on the line through a and b.
func collinear(p, a, b Point) bool {
	if a == b {
		return true
	}
	n := b.Sub(a)
	t := p.Sub(a).Dot(n) / n.Dot(n)
	return p.Near(a.Lerp(b, t), collinearTolerance)
}

// pointIsBetween reports whether q lies on the line segment from p0 to p1.
func pointIsBetween(q, p0, p1 Point) bool {
	return collinear(p0, p1, q) &&
		math.Abs(p0.Distance(q)+p1.Distance(q)-p0.Distance(p1)) < collinearTolerance
}

// cornerBetween returns the corner of bb that lies between p0 and p1.
func cornerBetween(bb Rect, p0, p1 Point) (Point, bool) {
	for c := TopLeft; c <= BottomLeft; c++ {
		if q := bb.Corner(c); pointIsBetween(q, p0, p1) {
			return q, true
		}
	}
	return Point{}, false
}

// SVGArcTo draws an elliptical arc from the current point to pt, as the
// SVG path A command does. The ellipse has radii rx and ry and is rotated
// by xAxisRotation degrees. Of the up to four arcs that fit, largeArc and
// sweep pick one: the one spanning more than 180° and the one going in the
// direction of positive angles, respectively.
//
// Radii that are too small to reach pt are scaled up. If either radius is
// zero, a line is drawn instead. The arc is approximated with cubic Bézier
// segments.
func (b *Builder) SVGArcTo(rx, ry, xAxisRotation float64, largeArc, sweep bool, pt Point) {
	if _, ok := b.start(); ok {
		b.svgArcTo(rx, ry, xAxisRotation, largeArc, sweep, pt)
	}
}

// RelSVGArcTo is like SVGArcTo, with v relative to the current point.
func (b *Builder) RelSVGArcTo(rx, ry, xAxisRotation float64, largeArc, sweep bool, v Vec2) {
	if p0, ok := b.start(); ok {
		b.svgArcTo(rx, ry, xAxisRotation, largeArc, sweep, p0.Translate(v))
	}
}

func (b *Builder) svgArcTo(rx, ry, xAxisRotation float64, largeArc, sweep bool, pt Point) {
	p0 := b.current.unwrap()
	if rx == 0 || ry == 0 {
		b.lineTo(pt)
		return
	}

	sinPhi, cosPhi := math.Sincos(xAxisRotation * math.Pi / 180)
	rx = math.Abs(rx)
	ry = math.Abs(ry)

	mid := p0.Sub(pt).Mul(0.5)
	x1 := cosPhi*mid.X + sinPhi*mid.Y
	y1 := -sinPhi*mid.X + cosPhi*mid.Y

	if lambda := (x1/rx)*(x1/rx) + (y1/ry)*(y1/ry); lambda > 1 {
		lambda = math.Sqrt(lambda)
		rx *= lambda
		ry *= lambda
	}

	d := (rx*y1)*(rx*y1) + (ry*x1)*(ry*x1)
	if d == 0 {
		return
	}
	k := math.Sqrt(math.Abs((rx*ry)*(rx*ry)/d - 1))
	if sweep == largeArc {
		k = -k
	}

	cx1 := k * rx * y1 / ry
	cy1 := -k * ry * x1 / rx
	center := Pt(
		cosPhi*cx1-sinPhi*cy1+(p0.X+pt.X)/2,
		sinPhi*cx1+cosPhi*cy1+(p0.Y+pt.Y)/2,
	)

	u := Vec((x1-cx1)/rx, (y1-cy1)/ry)
	v := Vec((-x1-cx1)/rx, (-y1-cy1)/ry)
	ulen := u.Hypot()
	vlen := v.Hypot()
	if ulen == 0 || vlen == 0 {
		return
	}

	theta := math.Acos(clamp(u.X/ulen, -1, 1))
	if u.Y < 0 {
		theta = -theta
	}
	delta := math.Acos(clamp(u.Dot(v)/(ulen*vlen), -1, 1))
	if u.Cross(v) < 0 {
		delta = -delta
	}
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta / (math.Pi/2 + 0.001))))
	dTheta := delta / float64(n)
	half := dTheta / 2
	t := (8.0 / 3.0) * math.Sin(half/2) * math.Sin(half/2) / math.Sin(half)

	sin1, cos1 := math.Sincos(theta)
	toPath := func(x, y float64) Point {
		return Pt(center.X+cosPhi*x-sinPhi*y, center.Y+sinPhi*x+cosPhi*y)
	}
	for i := range n {
		sin0, cos0 := sin1, cos1
		if i == n-1 {
			// Land exactly on the requested end point.
			sin1, cos1 = math.Sincos(theta + delta)
		} else {
			sin1, cos1 = math.Sincos(theta + float64(i+1)*dTheta)
		}
		c1 := toPath(rx*(cos0-t*sin0), ry*(sin0+t*cos0))
		c2 := toPath(rx*(cos1+t*sin1), ry*(sin1-t*cos1))
		end := toPath(rx*cos1, ry*sin1)
		if i == n-1 {
			end = pt
		}
		b.cubicTo(c1, c2, end)
	}
}

// HTMLArcTo draws an arc the way the HTML canvas arcTo method does: a
// line from the current point towards p1, followed by a circular arc of
// the given radius that is tangent to the lines from the current point to
// p1 and from p1 to p2. The new current point is where the arc touches
// the second line. When the three points are almost collinear, a line to
// p2 is drawn instead.
//
// The radius must be positive.
func (b *Builder) HTMLArcTo(p1, p2 Point, radius float64) {
	if !(radius > 0) {
		panic("vpath: radius must be positive")
	}
	if _, ok := b.start(); ok {
		b.htmlArcTo(p1, p2, radius)
	}
}

// RelHTMLArcTo is like HTMLArcTo, with the points relative to the current
// point.
func (b *Builder) RelHTMLArcTo(v1, v2 Vec2, radius float64) {
	if !(radius > 0) {
		panic("vpath: radius must be positive")
	}
	if p0, ok := b.start(); ok {
		b.htmlArcTo(p0.Translate(v1), p0.Translate(v2), radius)
	}
}

func (b *Builder) htmlArcTo(p1, p2 Point, radius float64) {
	p0 := b.current.unwrap()
	angle := angleBetween(p0.Sub(p1), p2.Sub(p1)) * 180 / math.Pi
	if math.Abs(angle) < 3 {
		b.lineTo(p2)
		return
	}

	d := radius / math.Tan(math.Abs(angle/2)*math.Pi/180)
	p := p1.Translate(p0.Sub(p1).Normalize().Mul(d))
	q := p1.Translate(p2.Sub(p1).Normalize().Mul(d))

	b.lineTo(p)
	b.svgArcTo(radius, radius, 0, false, angle < 0, q)
}

// angleBetween returns the signed angle from t1 to t2, in (-π, π].
func angleBetween(t1, t2 Vec2) float64 {
	angle := t2.Angle() - t1.Angle()
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
