package vpath

import (
	"io"
	"strconv"
	"strings"
)

// FormatOptions specifies optional settings for [Path.AppendFormat].
type FormatOptions struct {
	// The maximum number of digits after the decimal point. A value of 0
	// chooses the shortest representation that parses back to the same
	// number.
	MaxPrecision int
}

// String returns the path in the text form accepted by [Parse], using only
// absolute commands:
//
//	M 0 0 L 10 0 Q 20 0, 20 10 C 20 20, 10 20, 0 20 O -10 20, -10 10, 0.5 Z
//
// Closed contours end in Z; their closing line is implied by it.
func (p *Path) String() string {
	return string(p.AppendFormat(nil, FormatOptions{}))
}

// AppendText implements [encoding.TextAppender].
func (p *Path) AppendText(b []byte) ([]byte, error) {
	return p.AppendFormat(b, FormatOptions{}), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (p *Path) MarshalText() ([]byte, error) {
	return p.AppendText(nil)
}

// UnmarshalText implements [encoding.TextUnmarshaler] by parsing text with
// [Parse].
func (p *Path) UnmarshalText(text []byte) error {
	q, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *q
	return nil
}

// WriteTo writes the path's text form to w.
func (p *Path) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.AppendFormat(nil, FormatOptions{}))
	return int64(n), err
}

// AppendFormat appends the path's text form to dst.
func (p *Path) AppendFormat(dst []byte, opts FormatOptions) []byte {
	num := func(v float64) {
		dst = append(dst, ' ')
		if opts.MaxPrecision <= 0 {
			dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
			return
		}
		s := strconv.FormatFloat(v, 'f', opts.MaxPrecision, 64)
		if strings.ContainsRune(s, '.') {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		if s == "-0" {
			s = "0"
		}
		dst = append(dst, s...)
	}
	pt := func(q Point) {
		num(q.X)
		num(q.Y)
	}
	start := len(dst)
	cmd := func(c byte) {
		if len(dst) > start {
			dst = append(dst, ' ')
		}
		dst = append(dst, c)
	}

	for i := range p.NumContours() {
		c := p.contours[i]
		cmd('M')
		pt(c.start)
		for j, seg := range c.segments {
			if c.closed && j == len(c.segments)-1 {
				break
			}
			switch seg.Kind {
			case LineKind:
				cmd('L')
				pt(seg.P1)
			case QuadKind:
				cmd('Q')
				pt(seg.P1)
				dst = append(dst, ',')
				pt(seg.P2)
			case CubicKind:
				cmd('C')
				pt(seg.P1)
				dst = append(dst, ',')
				pt(seg.P2)
				dst = append(dst, ',')
				pt(seg.P3)
			case ConicKind:
				cmd('O')
				pt(seg.P1)
				dst = append(dst, ',')
				pt(seg.P2)
				dst = append(dst, ',')
				num(seg.Weight)
			default:
				panic(seg.invalid())
			}
		}
		if c.closed {
			cmd('Z')
		}
	}
	return dst
}
