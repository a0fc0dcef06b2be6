package vpath

import (
	"cmp"
	"math"
	"slices"
)

// DefaultMeasureTolerance is the arc length accuracy used by [NewMeasure].
const DefaultMeasureTolerance = 0.5

// MeasureOptions configures a [Measure].
type MeasureOptions struct {
	// Tolerance is the accepted error in arc lengths. Zero selects
	// DefaultMeasureTolerance.
	Tolerance float64
}

// Measure maps between distances along a path and points on it. Contours
// without segments have no length and are skipped.
//
// Building a Measure computes the length of every segment once. The
// Measure keeps a reference to the path, which must not be changed;
// since paths are immutable, it is safe for concurrent use.
type Measure struct {
	path      *Path
	tolerance float64
	contours  []contourMeasure
	length    float64
}

type contourMeasure struct {
	index int
	// offset is the distance from the start of the path to the start of
	// the contour.
	offset float64
	// ends holds the cumulative length at the end of each segment.
	ends []float64
}

func (cm *contourMeasure) length() float64 {
	return cm.ends[len(cm.ends)-1]
}

// NewMeasure returns a measure of p with the default tolerance.
func NewMeasure(p *Path) *Measure {
	return NewMeasureWithOptions(p, MeasureOptions{})
}

// NewMeasureWithTolerance returns a measure of p whose lengths are
// accurate to within tolerance.
func NewMeasureWithTolerance(p *Path, tolerance float64) *Measure {
	return NewMeasureWithOptions(p, MeasureOptions{Tolerance: tolerance})
}

// NewMeasureWithOptions returns a measure of p configured by opts. A
// tolerance that isn't positive is replaced by DefaultMeasureTolerance.
func NewMeasureWithOptions(p *Path, opts MeasureOptions) *Measure {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultMeasureTolerance
	}
	m := &Measure{path: p, tolerance: tol}
	for i := range p.NumContours() {
		c := p.contours[i]
		if len(c.segments) == 0 {
			continue
		}
		// Individual segments share the error budget of the contour.
		segTol := tol / float64(len(c.segments))
		cm := contourMeasure{index: i, offset: m.length, ends: make([]float64, len(c.segments))}
		var l float64
		for j, seg := range c.segments {
			l += seg.Arclen(segTol)
			cm.ends[j] = l
		}
		m.contours = append(m.contours, cm)
		m.length += l
	}
	return m
}

// Path returns the measured path.
func (m *Measure) Path() *Path { return m.path }

// Tolerance returns the accuracy the measure was built with.
func (m *Measure) Tolerance() float64 { return m.tolerance }

// Length returns the length of the path.
func (m *Measure) Length() float64 { return m.length }

// PointAt returns the point at the given distance from the start of the
// path. Distances outside of [0, Length] are clamped. The result is false
// only for paths without segments.
func (m *Measure) PointAt(distance float64) (PathPoint, bool) {
	if len(m.contours) == 0 {
		return PathPoint{}, false
	}
	if math.IsNaN(distance) {
		distance = 0
	}
	distance = max(0, min(distance, m.length))

	ci, _ := slices.BinarySearchFunc(m.contours, distance, func(cm contourMeasure, d float64) int {
		if cm.offset+cm.length() < d {
			return -1
		}
		return 1
	})
	ci = min(ci, len(m.contours)-1)
	cm := &m.contours[ci]
	return m.contourPoint(cm, distance-cm.offset), true
}

// Distance returns the distance from the start of the path to pt. It is
// the inverse of [Measure.PointAt].
func (m *Measure) Distance(pt PathPoint) float64 {
	_, seg := pt.segment(m.path)
	i, ok := slices.BinarySearchFunc(m.contours, pt.Contour, func(cm contourMeasure, idx int) int {
		return cmp.Compare(cm.index, idx)
	})
	if !ok {
		// Unreachable for valid points, which only exist on contours with
		// segments.
		return 0
	}
	cm := &m.contours[i]
	d := cm.offset
	if pt.Segment > 0 {
		d += cm.ends[pt.Segment-1]
	}
	switch pt.T {
	case 0:
	case 1:
		d = cm.offset + cm.ends[pt.Segment]
	default:
		d += seg.Subsegment(0, pt.T).Arclen(m.tolerance / float64(len(cm.ends)))
	}
	return d
}

// Segment returns the part of the path between the two distances. Like
// [Builder.AddSegment], it wraps around to the start of the path if start
// is greater than end.
func (m *Measure) Segment(start, end float64) *Path {
	a, ok := m.PointAt(start)
	if !ok {
		return &Path{}
	}
	e, _ := m.PointAt(end)
	var b Builder
	b.AddSegment(m.path, a, e)
	p, _ := b.Build()
	return p
}

// SplitN cuts the path into n pieces of equal length. Pieces never span
// more than one contour, so a path with several contours yields more than
// n pieces.
func (m *Measure) SplitN(n int) []*Path {
	if n < 1 || len(m.contours) == 0 {
		return nil
	}
	step := m.length / float64(n)
	var out []*Path
	for i := range m.contours {
		cm := &m.contours[i]
		// Cuts are multiples of step from the start of the path, so that
		// rounding errors can't accumulate into an extra piece.
		cuts := []float64{0}
		for j := 1; j < n; j++ {
			if d := float64(j)*step - cm.offset; d > 0 && d < cm.length() {
				cuts = append(cuts, d)
			}
		}
		cuts = append(cuts, cm.length())
		for k := 1; k < len(cuts); k++ {
			var b Builder
			b.AddSegment(m.path, m.contourPoint(cm, cuts[k-1]), m.contourPoint(cm, cuts[k]))
			p, _ := b.Build()
			out = append(out, p)
		}
	}
	return out
}

// contourPoint is like PointAt, restricted to one contour.
func (m *Measure) contourPoint(cm *contourMeasure, d float64) PathPoint {
	si, _ := slices.BinarySearch(cm.ends, d)
	si = min(si, len(cm.ends)-1)
	var segStart float64
	if si > 0 {
		segStart = cm.ends[si-1]
	}
	var t float64
	if cm.ends[si]-segStart > 0 {
		seg := m.path.contours[cm.index].segments[si]
		t = seg.SolveForArclen(d-segStart, m.tolerance/float64(len(cm.ends)))
	}
	return PathPoint{Contour: cm.index, Segment: si, T: t}
}
