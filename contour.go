package vpath

import "iter"

// Contour is a connected sequence of segments. Each segment starts where
// the previous one ends, and the first one starts at the contour's start
// point.
//
// The last segment of a closed contour is its close segment, a line back
// to the start point. It has zero length if the contour already returned
// to its start. A contour without segments is a lone move; it is part of
// the path's text form but contributes no geometry.
type Contour struct {
	start    Point
	segments []Segment
	closed   bool
}

// Start returns the contour's start point.
func (c Contour) Start() Point { return c.start }

// End returns the point the contour ends at. For closed contours, this
// is the start point.
func (c Contour) End() Point {
	if len(c.segments) == 0 {
		return c.start
	}
	return c.segments[len(c.segments)-1].End()
}

func (c Contour) IsClosed() bool { return c.closed }

// IsLoneMove reports whether the contour consists of only a move.
func (c Contour) IsLoneMove() bool { return len(c.segments) == 0 }

func (c Contour) NumSegments() int { return len(c.segments) }

// Segment returns the i-th segment. It panics if i is out of range.
func (c Contour) Segment(i int) Segment { return c.segments[i] }

// Segments returns the contour's segments along with their indices.
func (c Contour) Segments() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i, seg := range c.segments {
			if !yield(i, seg) {
				return
			}
		}
	}
}

// Bounds returns the tight bounding box of the contour. Lone moves have
// no bounds.
func (c Contour) Bounds() (Rect, bool) {
	if len(c.segments) == 0 {
		return Rect{}, false
	}
	bbox := emptyBounds
	for _, seg := range c.segments {
		bbox = bbox.Union(seg.BoundingBox())
	}
	return bbox, true
}

// ControlBounds returns the bounding box of all points of the contour,
// control points included.
func (c Contour) ControlBounds() (Rect, bool) {
	if len(c.segments) == 0 {
		return Rect{}, false
	}
	bbox := emptyBounds
	for _, seg := range c.segments {
		bbox = bbox.Union(seg.ControlBox())
	}
	return bbox, true
}

// Winding returns the winding number of pt with respect to the contour.
// Open contours are treated as if they had a line from their end back to
// their start.
func (c Contour) Winding(pt Point) int {
	if len(c.segments) == 0 {
		return 0
	}
	box, _ := c.Bounds()
	if !box.UnionPoint(c.start).Contains(pt) {
		return 0
	}
	var winding int
	for _, seg := range c.segments {
		winding += seg.crossing(pt)
	}
	if !c.closed {
		winding += Line{c.End(), c.start}.crossing(pt)
	}
	return winding
}

// isPoint reports whether every segment of the contour has collapsed to
// its start point.
func (c Contour) isPoint() bool {
	for _, seg := range c.segments {
		if !seg.IsDegenerate() || seg.P0 != c.start {
			return false
		}
	}
	return true
}

func (c Contour) transform(aff Affine) Contour {
	out := Contour{
		start:    c.start.Transform(aff),
		segments: make([]Segment, len(c.segments)),
		closed:   c.closed,
	}
	for i, seg := range c.segments {
		out.segments[i] = seg.Transform(aff)
	}
	return out
}

func (c Contour) equal(o Contour) bool {
	if c.start != o.start || c.closed != o.closed || len(c.segments) != len(o.segments) {
		return false
	}
	for i := range c.segments {
		if c.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}
