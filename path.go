package vpath

import "iter"

// Path is an immutable sequence of contours. Paths are created with a
// [Builder] or by [Parse] and are safe for concurrent use.
//
// A nil *Path is a valid, empty path.
type Path struct {
	contours []Contour
}

// IsEmpty reports whether the path has no contours.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.contours) == 0
}

// IsClosed reports whether the path has contours and all of them are
// closed.
func (p *Path) IsClosed() bool {
	if p.IsEmpty() {
		return false
	}
	for _, c := range p.contours {
		if !c.closed {
			return false
		}
	}
	return true
}

func (p *Path) NumContours() int {
	if p == nil {
		return 0
	}
	return len(p.contours)
}

// Contour returns the i-th contour. It panics if i is out of range.
func (p *Path) Contour(i int) Contour {
	return p.contours[i]
}

func (p *Path) Contours() iter.Seq2[int, Contour] {
	return func(yield func(int, Contour) bool) {
		if p == nil {
			return
		}
		for i, c := range p.contours {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Segments returns every segment of the path, in order.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if p == nil {
			return
		}
		for _, c := range p.contours {
			for _, seg := range c.segments {
				if !yield(seg) {
					return
				}
			}
		}
	}
}

// Bounds returns the tight bounding box of the path. It returns false
// and the zero rectangle if the path has no geometry.
func (p *Path) Bounds() (Rect, bool) {
	return p.bounds(Contour.Bounds)
}

// ControlBounds returns the bounding box of all points of the path,
// control points included. It contains the tight bounds.
func (p *Path) ControlBounds() (Rect, bool) {
	return p.bounds(Contour.ControlBounds)
}

func (p *Path) bounds(fn func(Contour) (Rect, bool)) (Rect, bool) {
	if p == nil {
		return Rect{}, false
	}
	bbox := emptyBounds
	var ok bool
	for _, c := range p.contours {
		if b, cok := fn(c); cok {
			bbox = bbox.Union(b)
			ok = true
		}
	}
	if !ok {
		return Rect{}, false
	}
	return bbox, true
}

// Transform returns the path transformed by aff.
func (p *Path) Transform(aff Affine) *Path {
	if p.IsEmpty() {
		return &Path{}
	}
	out := &Path{contours: make([]Contour, len(p.contours))}
	for i, c := range p.contours {
		out.contours[i] = c.transform(aff)
	}
	return out
}

// Equal reports whether the two paths consist of the same contours and
// segments.
func (p *Path) Equal(o *Path) bool {
	if p.NumContours() != o.NumContours() {
		return false
	}
	for i := range p.NumContours() {
		if !p.contours[i].equal(o.contours[i]) {
			return false
		}
	}
	return true
}

// withoutOpenContours returns the path's closed contours.
func (p *Path) withoutOpenContours() *Path {
	if p.IsClosed() || p.IsEmpty() {
		return p
	}
	out := &Path{}
	for _, c := range p.contours {
		if c.closed {
			out.contours = append(out.contours, c)
		}
	}
	return out
}
