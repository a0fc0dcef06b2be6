package vpath

import (
	"fmt"
	"math"
)

// Corner names one of the four corners of a rectangle.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top left"
	case TopRight:
		return "top right"
	case BottomRight:
		return "bottom right"
	case BottomLeft:
		return "bottom left"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

// RoundedRect is a rectangle with elliptically rounded corners. Each
// corner has a horizontal and a vertical radius, stored as the width and
// height of a Size. A corner with a zero radius is square.
//
// Bounds should be normalized. Callers must make sure that the radii of
// adjacent corners fit the sides they share; see [RoundedRect.Normalize].
type RoundedRect struct {
	Bounds  Rect
	Corners [4]Size
}

// NewRoundedRect returns a rounded rectangle with the given corner radii.
// It panics if any radius is negative.
func NewRoundedRect(r Rect, topLeft, topRight, bottomRight, bottomLeft Size) RoundedRect {
	rr := RoundedRect{
		Bounds:  r.Abs(),
		Corners: [4]Size{topLeft, topRight, bottomRight, bottomLeft},
	}
	for _, c := range rr.Corners {
		if c.Width < 0 || c.Height < 0 || c.IsNaN() {
			panic("vpath: invalid corner radius")
		}
	}
	return rr
}

// NewUniformRoundedRect returns a rounded rectangle whose corners are all
// circular with the given radius.
func NewUniformRoundedRect(r Rect, radius float64) RoundedRect {
	s := Sz(radius, radius)
	return NewRoundedRect(r, s, s, s, s)
}

// RoundedRectFromRect returns r with square corners.
func RoundedRectFromRect(r Rect) RoundedRect {
	return RoundedRect{Bounds: r.Abs()}
}

func (rr RoundedRect) String() string {
	return fmt.Sprintf("RoundedRect(%s, %s, %s, %s, %s)",
		rr.Bounds, rr.Corners[0], rr.Corners[1], rr.Corners[2], rr.Corners[3])
}

// IsRectilinear reports whether all corners are square.
func (rr RoundedRect) IsRectilinear() bool {
	for _, c := range rr.Corners {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Offset moves the rounded rectangle by v.
func (rr RoundedRect) Offset(v Vec2) RoundedRect {
	rr.Bounds = rr.Bounds.Translate(v)
	return rr
}

// Normalize scales down all corners by the same factor so that no two
// adjacent corners overlap.
func (rr RoundedRect) Normalize() RoundedRect {
	rr.Bounds = rr.Bounds.Abs()
	w, h := rr.Bounds.Width(), rr.Bounds.Height()
	c := &rr.Corners
	factor := 1.0
	fit := func(sum, side float64) {
		if sum > side {
			factor = min(factor, side/sum)
		}
	}
	fit(c[TopLeft].Width+c[TopRight].Width, w)
	fit(c[TopRight].Height+c[BottomRight].Height, h)
	fit(c[BottomRight].Width+c[BottomLeft].Width, w)
	fit(c[BottomLeft].Height+c[TopLeft].Height, h)
	for i := range c {
		c[i] = c[i].Scale(factor)
	}
	return rr
}

// Shrink moves the edges of the rounded rectangle inwards by the given
// distances, reducing the corner radii alike. Negative distances grow
// it. Sides never shrink below zero; a square corner stays square.
func (rr RoundedRect) Shrink(top, right, bottom, left float64) RoundedRect {
	b := &rr.Bounds
	if w := b.Width() - left - right; w < 0 {
		x := b.X0 + left*b.Width()/(left+right)
		b.X0, b.X1 = x, x
	} else {
		b.X0 += left
		b.X1 = b.X0 + w
	}
	if h := b.Height() - top - bottom; h < 0 {
		y := b.Y0 + top*b.Height()/(top+bottom)
		b.Y0, b.Y1 = y, y
	} else {
		b.Y0 += top
		b.Y1 = b.Y0 + h
	}

	shrink := func(c *Size, dw, dh float64) {
		if c.Width > 0 || c.Height > 0 {
			c.Width = max(c.Width-dw, 0)
			c.Height = max(c.Height-dh, 0)
		}
	}
	shrink(&rr.Corners[TopLeft], left, top)
	shrink(&rr.Corners[TopRight], right, top)
	shrink(&rr.Corners[BottomRight], right, bottom)
	shrink(&rr.Corners[BottomLeft], left, bottom)
	return rr
}

// location classifies a point relative to a rounded rectangle.
type location int

const (
	inside location = iota
	outsideBounds
	outsideTopLeft
	outsideTopRight
	outsideBottomRight
	outsideBottomLeft
)

// ellipseContains reports whether the offset (dx, dy) from the center of
// an ellipse with radii sz lies inside it.
func ellipseContains(dx, dy float64, sz Size) bool {
	if sz.IsZero() {
		return false
	}
	x := dx / sz.Width
	y := dy / sz.Height
	return x*x+y*y <= 1
}

func (rr RoundedRect) locate(pt Point) location {
	b := rr.Bounds
	if pt.X < b.X0 || pt.Y < b.Y0 || pt.X > b.X1 || pt.Y > b.Y1 {
		return outsideBounds
	}

	c := rr.Corners[TopLeft]
	if dx, dy := b.X0+c.Width-pt.X, b.Y0+c.Height-pt.Y; dx > 0 && dy > 0 && !ellipseContains(dx, dy, c) {
		return outsideTopLeft
	}
	c = rr.Corners[TopRight]
	if dx, dy := pt.X-(b.X1-c.Width), b.Y0+c.Height-pt.Y; dx > 0 && dy > 0 && !ellipseContains(dx, dy, c) {
		return outsideTopRight
	}
	c = rr.Corners[BottomRight]
	if dx, dy := pt.X-(b.X1-c.Width), pt.Y-(b.Y1-c.Height); dx > 0 && dy > 0 && !ellipseContains(dx, dy, c) {
		return outsideBottomRight
	}
	c = rr.Corners[BottomLeft]
	if dx, dy := b.X0+c.Width-pt.X, pt.Y-(b.Y1-c.Height); dx > 0 && dy > 0 && !ellipseContains(dx, dy, c) {
		return outsideBottomLeft
	}
	return inside
}

// ContainsPoint reports whether pt lies inside rr or on its boundary.
func (rr RoundedRect) ContainsPoint(pt Point) bool {
	return rr.locate(pt) == inside
}

// ContainsRect reports whether r lies entirely inside rr.
func (rr RoundedRect) ContainsRect(r Rect) bool {
	if !rr.Bounds.ContainsRect(r) {
		return false
	}
	for c := TopLeft; c <= BottomLeft; c++ {
		if rr.locate(r.Corner(c)) != inside {
			return false
		}
	}
	return true
}

// IntersectsRect reports whether rr and r overlap in an area.
func (rr RoundedRect) IntersectsRect(r Rect) bool {
	if _, ok := rr.Bounds.Intersect(r); !ok {
		return false
	}
	// With overlapping bounds, the shapes can only be disjoint if r lies
	// entirely within a corner's cut-off, which shows in r's corner closest
	// to the rounded one.
	if rr.locate(r.Corner(TopLeft)) == outsideBottomRight ||
		rr.locate(r.Corner(TopRight)) == outsideBottomLeft ||
		rr.locate(r.Corner(BottomLeft)) == outsideTopRight ||
		rr.locate(r.Corner(BottomRight)) == outsideTopLeft {
		return false
	}
	return true
}

// RectIntersection classifies the result of intersecting rounded
// rectangles.
type RectIntersection int

const (
	// The shapes don't overlap.
	Empty RectIntersection = iota
	// The intersection is the returned rounded rectangle.
	NonEmpty
	// The shapes overlap, but their intersection isn't a rounded
	// rectangle.
	NotRepresentable
)

func (ri RectIntersection) String() string {
	switch ri {
	case Empty:
		return "empty"
	case NonEmpty:
		return "non-empty"
	case NotRepresentable:
		return "not representable"
	default:
		return fmt.Sprintf("RectIntersection(%d)", int(ri))
	}
}

// IntersectRect intersects rr with r. The result keeps the corners of rr
// that r does not cut off; other corners are square, which is only
// possible if they lie within rr. Whenever r cuts through a rounded
// corner, the result is NotRepresentable.
func (rr RoundedRect) IntersectRect(r Rect) (RoundedRect, RectIntersection) {
	return rr.Intersection(RoundedRectFromRect(r))
}

// Intersection intersects two rounded rectangles.
//
// Every corner of the intersection's bounds must either be a rounded
// corner of one of the inputs, lying within the other input, or a square
// corner contained in both. If both inputs are rounded at the same corner,
// the one with the larger radii in both directions wins. The result is
// NotRepresentable in all other cases, even those where a more precise
// analysis could find a rounded rectangle.
func (rr RoundedRect) Intersection(o RoundedRect) (RoundedRect, RectIntersection) {
	bounds, ok := rr.Bounds.Intersect(o.Bounds)
	if !ok {
		return RoundedRect{}, Empty
	}
	res := RoundedRect{Bounds: bounds}
	for c := TopLeft; c <= BottomLeft; c++ {
		sz, ok := intersectCorner(rr, o, bounds, c)
		if !ok {
			return RoundedRect{}, NotRepresentable
		}
		res.Corners[c] = sz
	}
	// Kept corners must still fit the clipped sides.
	if res.Normalize() != res {
		return RoundedRect{}, NotRepresentable
	}
	return res, NonEmpty
}

func intersectCorner(a, b RoundedRect, bounds Rect, c Corner) (Size, bool) {
	pt := bounds.Corner(c)
	aKeeps := pt == a.Bounds.Corner(c) && !a.Corners[c].IsZero()
	bKeeps := pt == b.Bounds.Corner(c) && !b.Corners[c].IsZero()
	switch {
	case aKeeps && bKeeps:
		ca, cb := a.Corners[c], b.Corners[c]
		switch {
		case ca.Dominates(cb):
			return ca, true
		case cb.Dominates(ca):
			return cb, true
		default:
			return Size{}, false
		}
	case aKeeps:
		return a.Corners[c], b.ContainsRect(cornerBox(pt, a.Corners[c], c))
	case bKeeps:
		return b.Corners[c], a.ContainsRect(cornerBox(pt, b.Corners[c], c))
	default:
		return Size{}, a.ContainsPoint(pt) && b.ContainsPoint(pt)
	}
}

// cornerBox returns the box spanned by a corner of size sz at pt.
func cornerBox(pt Point, sz Size, c Corner) Rect {
	v := sz.AsVec2()
	switch c {
	case TopRight:
		v.X = -v.X
	case BottomRight:
		v = v.Negate()
	case BottomLeft:
		v.Y = -v.Y
	}
	return NewRectFromPoints(pt, pt.Translate(v))
}

// dihedralCorners maps, for every symmetry, each corner slot of the
// result to the corner of the input that ends up there.
var dihedralCorners = [8][4]Corner{
	Normal:     {TopLeft, TopRight, BottomRight, BottomLeft},
	Rotate90:   {BottomLeft, TopLeft, TopRight, BottomRight},
	Rotate180:  {BottomRight, BottomLeft, TopLeft, TopRight},
	Rotate270:  {TopRight, BottomRight, BottomLeft, TopLeft},
	Flipped:    {TopRight, TopLeft, BottomLeft, BottomRight},
	Flipped90:  {BottomRight, TopRight, TopLeft, BottomLeft},
	Flipped180: {BottomLeft, BottomRight, TopRight, TopLeft},
	Flipped270: {TopLeft, BottomLeft, BottomRight, TopRight},
}

// Dihedral transforms rr by the symmetry. The result is exact.
func (rr RoundedRect) Dihedral(d Dihedral) RoundedRect {
	d &= 7
	out := RoundedRect{Bounds: RectDihedral(rr.Bounds, d)}
	for i, from := range dihedralCorners[d] {
		sz := rr.Corners[from]
		if d.SwapsXY() {
			sz = sz.Swap()
		}
		out.Corners[i] = sz
	}
	return out
}

// Transform maps rr with an affine transformation that only scales and
// translates. It panics for other transformations.
func (rr RoundedRect) Transform(aff Affine) RoundedRect {
	if aff.N1 != 0 || aff.N2 != 0 {
		panic("vpath: rounded rectangles can only be scaled and translated")
	}
	sx, sy := aff.N0, aff.N3
	out := RoundedRect{Bounds: NewRectFromPoints(Pt(rr.Bounds.X0, rr.Bounds.Y0).Transform(aff), Pt(rr.Bounds.X1, rr.Bounds.Y1).Transform(aff))}
	// Negative scales mirror the corners.
	from := [4]Corner{TopLeft, TopRight, BottomRight, BottomLeft}
	if sx < 0 {
		from = [4]Corner{from[1], from[0], from[3], from[2]}
	}
	if sy < 0 {
		from = [4]Corner{from[3], from[2], from[1], from[0]}
	}
	for i, c := range from {
		sz := rr.Corners[c]
		out.Corners[i] = Sz(sz.Width*math.Abs(sx), sz.Height*math.Abs(sy))
	}
	return out
}
