package vpath

import "math"

// closestPointSubdivision is the parameter range below which the
// subdivision in Nearest stops and evaluates the curve.
const closestPointSubdivision = 0.001

// Nearest finds the point on the segment closest to pt, as long as it is
// no farther away than threshold. It returns the distance and the
// parameter of the closest point. Of several equally close points, the
// one with the smallest parameter is returned.
//
// Lines are handled in closed form. Curves are searched by subdividing
// them and discarding pieces whose bounding circle lies farther away than
// the best candidate found so far, followed by a few Newton iterations
// on the best candidate.
func (seg Segment) Nearest(pt Point, threshold float64) (dist, t float64, ok bool) {
	if seg.Kind == LineKind {
		dist, t = seg.Line().Nearest(pt)
		return dist, t, dist <= threshold
	}

	s := nearestSearch{seg: seg, pt: pt, best: math.Inf(1), threshold: threshold}
	s.consider(0)
	s.consider(1)
	s.subdivide(0, 1)
	if math.IsInf(s.best, 1) || s.best > threshold {
		return 0, 0, false
	}
	s.polish()
	return s.best, s.bestT, true
}

type nearestSearch struct {
	seg       Segment
	pt        Point
	threshold float64
	best      float64
	bestT     float64
}

func (s *nearestSearch) consider(t float64) {
	d := s.seg.Eval(t).Distance(s.pt)
	if d < s.best {
		s.best = d
		s.bestT = t
	}
}

// limit is the distance a piece must beat to be worth looking at.
func (s *nearestSearch) limit() float64 {
	return min(s.best, s.threshold)
}

func (s *nearestSearch) subdivide(t1, t2 float64) {
	box := s.seg.Subsegment(t1, t2).ControlBox()
	center := box.Center()
	radius := center.Distance(Pt(box.X0, box.Y0))
	if center.Distance(s.pt)-radius > s.limit() {
		return
	}
	tm := (t1 + t2) / 2
	if t2-t1 < closestPointSubdivision {
		s.consider(tm)
		return
	}
	s.subdivide(t1, tm)
	s.subdivide(tm, t2)
}

// polish refines the best candidate by minimizing the squared distance
// with Newton's method.
func (s *nearestSearch) polish() {
	t := s.bestT
	for range 8 {
		d := s.seg.Eval(t).Sub(s.pt)
		d1 := s.seg.Deriv(t)
		d2 := s.seg.Deriv2(t)
		f := d.Dot(d1)
		fp := d1.Hypot2() + d.Dot(d2)
		if fp == 0 {
			return
		}
		next := clamp01(t - f/fp)
		if next == t {
			return
		}
		dist := s.seg.Eval(next).Distance(s.pt)
		if dist >= s.best {
			return
		}
		s.best = dist
		s.bestT = next
		t = next
	}
}
