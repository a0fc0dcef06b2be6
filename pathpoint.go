package vpath

import (
	"cmp"
	"fmt"
	"math"
)

// PathPoint identifies a point on a path: the contour, the segment within
// the contour and the parameter within the segment. Indices are 0-based.
//
// A PathPoint is only meaningful together with the path it was obtained
// from.
type PathPoint struct {
	Contour int
	Segment int
	T       float64
}

func (pt PathPoint) String() string {
	return fmt.Sprintf("PathPoint(%d, %d, %g)", pt.Contour, pt.Segment, pt.T)
}

// Compare orders path points by contour, then segment, then parameter. It
// returns -1, 0 or +1.
func (pt PathPoint) Compare(o PathPoint) int {
	if c := cmp.Compare(pt.Contour, o.Contour); c != 0 {
		return c
	}
	if c := cmp.Compare(pt.Segment, o.Segment); c != 0 {
		return c
	}
	return cmp.Compare(pt.T, o.T)
}

func (pt PathPoint) valid(p *Path) bool {
	if pt.Contour < 0 || pt.Contour >= p.NumContours() {
		return false
	}
	c := p.contours[pt.Contour]
	return pt.Segment >= 0 && pt.Segment < len(c.segments) && pt.T >= 0 && pt.T <= 1
}

func (pt PathPoint) segment(p *Path) (Contour, Segment) {
	if !pt.valid(p) {
		panic(fmt.Sprintf("vpath: %s is not on the path", pt))
	}
	c := p.contours[pt.Contour]
	return c, c.segments[pt.Segment]
}

// Direction selects which side of a path point a query looks at, and
// which way it faces.
type Direction int

const (
	// The tangent of the path as it arrives at the point.
	FromStart Direction = iota
	// FromStart, reversed.
	ToStart
	// The tangent of the path as it leaves the point, reversed.
	FromEnd
	// The tangent of the path as it leaves the point.
	ToEnd
)

func (d Direction) String() string {
	switch d {
	case FromStart:
		return "from start"
	case ToStart:
		return "to start"
	case FromEnd:
		return "from end"
	case ToEnd:
		return "to end"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) backwards() bool { return d == FromStart || d == ToStart }

// FillRule decides which points are inside a path, based on their
// winding number.
type FillRule int

const (
	// Winding fills points with a nonzero winding number.
	Winding FillRule = iota
	// EvenOdd fills points with an odd winding number.
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case Winding:
		return "winding"
	case EvenOdd:
		return "even-odd"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

func (r FillRule) inside(winding int) bool {
	if r == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// StartPoint returns the point at the start of the first contour that has
// segments.
func (p *Path) StartPoint() (PathPoint, bool) {
	for i := range p.NumContours() {
		if len(p.contours[i].segments) > 0 {
			return PathPoint{Contour: i}, true
		}
	}
	return PathPoint{}, false
}

// EndPoint returns the point at the end of the last contour that has
// segments.
func (p *Path) EndPoint() (PathPoint, bool) {
	for i := p.NumContours() - 1; i >= 0; i-- {
		if c := p.contours[i]; len(c.segments) > 0 {
			return c.lastPoint(i), true
		}
	}
	return PathPoint{}, false
}

// ClosestPoint returns the point on p closest to target, along with its
// distance, as long as it is no farther away than maxDist. Of several
// equally close points, the first one along the path is returned.
func (p *Path) ClosestPoint(target Point, maxDist float64) (PathPoint, float64, bool) {
	var (
		best     PathPoint
		bestDist = maxDist
		found    bool
	)
	for ci := range p.NumContours() {
		for si, seg := range p.contours[ci].segments {
			d, t, ok := seg.Nearest(target, bestDist)
			if !ok || (found && d >= bestDist) {
				continue
			}
			best = PathPoint{Contour: ci, Segment: si, T: t}
			bestDist = d
			found = true
		}
	}
	if !found {
		return PathPoint{}, 0, false
	}
	return best, bestDist, true
}

// InFill reports whether pt is inside p under the fill rule. Open
// contours are treated as if they were closed with a line.
func (p *Path) InFill(pt Point, rule FillRule) bool {
	var winding int
	for i := range p.NumContours() {
		winding += p.contours[i].Winding(pt)
	}
	return rule.inside(winding)
}

// Position returns the location of pt on p.
func (pt PathPoint) Position(p *Path) Point {
	_, seg := pt.segment(p)
	return seg.Eval(pt.T)
}

// Tangent returns the unit tangent of p at pt. At the start or end of a
// segment, the direction decides whether the segment before or the one
// after the point is used. Segments of zero length are skipped; on closed
// contours the search wraps around.
//
// The tangent is zero if the contour has collapsed to a single point.
func (pt PathPoint) Tangent(p *Path, dir Direction) Vec2 {
	c, _ := pt.segment(p)
	if c.isPoint() {
		return Vec2{}
	}
	seg, t := c.neighbor(pt.Segment, pt.T, dir)
	tan := seg.Tangent(t)
	if dir == ToStart || dir == FromEnd {
		tan = tan.Negate()
	}
	return tan
}

// Curvature returns the signed curvature of p at pt and the center of
// the osculating circle. A positive curvature bends towards the left of
// the path's direction, in a y-down coordinate system the clockwise
// direction. The direction picks the segment at segment boundaries, as
// for [PathPoint.Tangent].
//
// Lines have zero curvature and a zero center. A contour that has
// collapsed to a single point has infinite curvature, centered on that
// point.
func (pt PathPoint) Curvature(p *Path, dir Direction) (float64, Point) {
	c, _ := pt.segment(p)
	if c.isPoint() {
		return math.Inf(1), c.start
	}
	seg, t := c.neighbor(pt.Segment, pt.T, dir)
	k := seg.Curvature(t)
	if k == 0 {
		return 0, Point{}
	}
	tan := seg.Tangent(t)
	return k, seg.Eval(t).Translate(Vec(-tan.Y, tan.X).Mul(1 / k))
}

// neighbor returns the segment and parameter that direction queries at
// segment idx and parameter t look at.
func (c Contour) neighbor(idx int, t float64, dir Direction) (Segment, float64) {
	seg := c.segments[idx]
	zero := seg.IsDegenerate()
	n := len(c.segments)
	switch {
	case dir.backwards() && (t == 0 || zero):
		for k := 1; k < n; k++ {
			j := idx - k
			if j < 0 {
				if !c.closed {
					break
				}
				j += n
			}
			if s := c.segments[j]; !s.IsDegenerate() {
				return s, 1
			}
		}
	case !dir.backwards() && (t == 1 || zero):
		for k := 1; k < n; k++ {
			j := idx + k
			if j >= n {
				if !c.closed {
					break
				}
				j -= n
			}
			if s := c.segments[j]; !s.IsDegenerate() {
				return s, 0
			}
		}
	}
	return seg, t
}
