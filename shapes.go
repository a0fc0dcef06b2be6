package vpath

import (
	"iter"
	"math"
)

// The composite calls below end the open contour and leave the current
// point as it was before the call. Drawing calls that follow them start a
// new contour.

// save ends the open contour and returns a function restoring the current
// point.
func (b *Builder) save() func() {
	current := b.current
	b.endCurrent()
	return func() {
		b.endCurrent()
		b.current = current
	}
}

// AddRect adds r as a closed contour, going clockwise from its top left
// corner. Rectangles with zero width or height degrade to lines, and to a
// single closed point if both are zero.
func (b *Builder) AddRect(r Rect) {
	defer b.save()()
	r = r.Abs()
	b.MoveTo(Pt(r.X0, r.Y0))
	b.lineTo(Pt(r.X1, r.Y0))
	b.lineTo(Pt(r.X1, r.Y1))
	b.lineTo(Pt(r.X0, r.Y1))
	b.Close()
}

// AddRoundedRect adds rr as a closed contour, going clockwise from the end
// of its top left corner. Corners are drawn as conics with weight √½.
func (b *Builder) AddRoundedRect(rr RoundedRect) {
	defer b.save()()
	r := rr.Bounds
	tl := rr.Corners[TopLeft]
	tr := rr.Corners[TopRight]
	br := rr.Corners[BottomRight]
	bl := rr.Corners[BottomLeft]
	const w = math.Sqrt2 / 2

	b.MoveTo(Pt(r.X0+tl.Width, r.Y0))
	b.lineTo(Pt(r.X1-tr.Width, r.Y0))
	b.conicTo(Pt(r.X1, r.Y0), Pt(r.X1, r.Y0+tr.Height), w)
	b.lineTo(Pt(r.X1, r.Y1-br.Height))
	b.conicTo(Pt(r.X1, r.Y1), Pt(r.X1-br.Width, r.Y1), w)
	b.lineTo(Pt(r.X0+bl.Width, r.Y1))
	b.conicTo(Pt(r.X0, r.Y1), Pt(r.X0, r.Y1-bl.Height), w)
	b.lineTo(Pt(r.X0, r.Y0+tl.Height))
	b.conicTo(Pt(r.X0, r.Y0), Pt(r.X0+tl.Width, r.Y0), w)
	b.Close()
}

// AddCircle adds a circle as a closed contour of four conics, going
// clockwise from its rightmost point. A zero radius yields a closed
// point. The radius must not be negative.
func (b *Builder) AddCircle(center Point, radius float64) {
	if radius < 0 {
		panic("vpath: negative radius")
	}
	defer b.save()()
	const w = math.Sqrt2 / 2
	x, y, r := center.X, center.Y, radius

	b.MoveTo(Pt(x+r, y))
	b.conicTo(Pt(x+r, y+r), Pt(x, y+r), w)
	b.conicTo(Pt(x-r, y+r), Pt(x-r, y), w)
	b.conicTo(Pt(x-r, y-r), Pt(x, y-r), w)
	b.conicTo(Pt(x+r, y-r), Pt(x+r, y), w)
	b.Close()
}

// AddPath appends all contours of p.
func (b *Builder) AddPath(p *Path) {
	if p.IsEmpty() {
		return
	}
	defer b.save()()
	// Contours are never mutated once built, so sharing them is fine.
	b.contours = append(b.contours, p.contours...)
}

// AddReversePath appends the contours of p in reverse order, each of them
// reversed. A reversed closed contour keeps its start point.
func (b *Builder) AddReversePath(p *Path) {
	if p.IsEmpty() {
		return
	}
	defer b.save()()
	for i := len(p.contours) - 1; i >= 0; i-- {
		b.addReverseContour(p.contours[i])
	}
}

func (b *Builder) addReverseContour(c Contour) {
	b.MoveTo(c.End())
	for i := len(c.segments) - 1; i >= 0; i-- {
		b.segmentTo(c.segments[i].Reverse())
	}
	if c.closed {
		b.Close()
	}
	b.endCurrent()
}

// segmentTo draws seg from the current point, which must be seg's start.
func (b *Builder) segmentTo(seg Segment) {
	switch seg.Kind {
	case LineKind:
		b.lineTo(seg.P1)
	case QuadKind:
		b.quadTo(seg.P1, seg.P2)
	case CubicKind:
		b.cubicTo(seg.P1, seg.P2, seg.P3)
	case ConicKind:
		b.conicTo(seg.P1, seg.P2, seg.Weight)
	default:
		panic(seg.invalid())
	}
}

// AddSegment adds the part of p between the points start and end.
//
// If start is at or after end, the part from start to the end of p is
// added, followed by the part from the beginning of p to end. For a path
// with a single contour, the two parts are joined into one contour. The
// added contours are never closed; use [Builder.AddPath] for that.
//
// AddSegment panics if start or end is not a valid point on p.
func (b *Builder) AddSegment(p *Path, start, end PathPoint) {
	if !start.valid(p) || !end.valid(p) {
		panic("vpath: invalid path point")
	}
	defer b.save()()

	c := p.contours[start.Contour]
	if start.Contour == end.Contour {
		if start.Compare(end) < 0 {
			b.addContourRange(c, true, start, end)
			return
		}
		if len(p.contours) == 1 {
			b.addContourRange(c, true, start, c.lastPoint(start.Contour))
			b.addContourRange(c, false, PathPoint{Contour: start.Contour}, end)
			return
		}
	}

	b.addContourRange(c, true, start, c.lastPoint(start.Contour))
	n := len(p.contours)
	for i := (start.Contour + 1) % n; i != end.Contour; i = (i + 1) % n {
		b.endCurrent()
		b.contours = append(b.contours, p.contours[i])
	}
	b.endCurrent()
	b.addContourRange(p.contours[end.Contour], true, PathPoint{Contour: end.Contour}, end)
}

// lastPoint returns the end of c's last segment, with i as the contour
// index.
func (c Contour) lastPoint(i int) PathPoint {
	return PathPoint{Contour: i, Segment: len(c.segments) - 1, T: 1}
}

// addContourRange draws the part of c between start and end, which must
// be in order. With move set, it starts a new contour first.
func (b *Builder) addContourRange(c Contour, move bool, start, end PathPoint) {
	emit := func(seg Segment) {
		if move {
			b.MoveTo(seg.Start())
			move = false
		}
		b.segmentTo(seg)
	}

	if start.Segment == end.Segment {
		emit(c.segments[start.Segment].Subsegment(start.T, end.T))
		return
	}

	first := c.segments[start.Segment]
	if start.T == 0 {
		emit(first)
	} else if start.T < 1 {
		_, tail := first.Split(start.T)
		emit(tail)
	}
	for i := start.Segment + 1; i < end.Segment; i++ {
		emit(c.segments[i])
	}
	last := c.segments[end.Segment]
	if end.T == 1 {
		emit(last)
	} else if end.T > 0 {
		head, _ := last.Split(end.T)
		emit(head)
	}
}

// AddElements draws a sequence of path elements, for example one produced
// by [Path.Foreach] or by a font outline. Elements other than a move need
// a current point, as the corresponding drawing calls do.
func (b *Builder) AddElements(seq iter.Seq[PathElement]) {
	defer b.save()()
	for el := range seq {
		switch el.Kind {
		case MoveToKind:
			b.MoveTo(el.P0)
		case LineToKind:
			b.LineTo(el.P0)
		case QuadToKind:
			b.QuadTo(el.P0, el.P1)
		case CubicToKind:
			b.CubicTo(el.P0, el.P1, el.P2)
		case ConicToKind:
			b.ConicTo(el.P0, el.P1, el.Weight)
		case ClosePathKind:
			b.Close()
		default:
			panic("vpath: invalid path element")
		}
	}
}
