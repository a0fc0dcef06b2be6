package vpath

import (
	"errors"
	stdstrconv "strconv"

	"github.com/tdewolff/parse/v2/strconv"
)

// argCounts holds the number of arguments each command takes.
var argCounts = [256]int8{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'O': 5, 'A': 7, 'Z': 0,
}

// Parse parses the text form of a path. This is the SVG path syntax,
// extended with a conic command:
//
//	O x1 y1 x2 y2 w
//
// which draws a conic with control point (x1, y1), end point (x2, y2) and
// weight w. Like all other commands it has a relative variant, o.
//
// Parsing is all or nothing: on error, no path is returned and the error
// is a [*ParseError].
func Parse(s string) (*Path, error) {
	p := parser{s: s}
	if err := p.parse(); err != nil {
		return nil, err
	}
	path, _ := p.b.Build()
	return path, nil
}

// MustParse is like Parse but panics on error. It simplifies
// initialization of variables holding constant paths.
func MustParse(s string) *Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	s    string
	i    int
	b    Builder
	args [7]float64

	// Control points of the previous segment, for the smooth curve
	// commands.
	prevCmd   byte
	prevCubic Point
	prevQuad  Point
}

func (p *parser) errorf(msg string) error {
	return &ParseError{Offset: p.i, Msg: msg}
}

func (p *parser) skipSpace() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r', '\f':
			p.i++
		default:
			return
		}
	}
}

// skipSeparator skips whitespace and at most one comma.
func (p *parser) skipSeparator() bool {
	p.skipSpace()
	if p.i < len(p.s) && p.s[p.i] == ',' {
		p.i++
		p.skipSpace()
		return true
	}
	return false
}

func (p *parser) atNumber() bool {
	if p.i >= len(p.s) {
		return false
	}
	c := p.s[p.i]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (p *parser) number() (float64, error) {
	_, n := strconv.ParseFloat([]byte(p.s[p.i:]))
	if n == 0 {
		return 0, p.errorf("expected number")
	}
	// The scanner finds the extent of the number; the conversion itself
	// is done by strconv, which rounds correctly.
	v, err := stdstrconv.ParseFloat(p.s[p.i:p.i+n], 64)
	if errors.Is(err, stdstrconv.ErrRange) {
		return 0, p.errorf("number out of range")
	} else if err != nil {
		return 0, p.errorf("invalid number")
	}
	p.i += n
	return v, nil
}

func (p *parser) flag() (float64, error) {
	if p.i < len(p.s) {
		switch p.s[p.i] {
		case '0':
			p.i++
			return 0, nil
		case '1':
			p.i++
			return 1, nil
		}
	}
	return 0, p.errorf("expected flag")
}

// arguments parses one set of arguments for cmd.
func (p *parser) arguments(cmd byte) error {
	n := int(argCounts[cmd])
	for j := range n {
		if j > 0 {
			p.skipSeparator()
		}
		var err error
		if cmd == 'A' && (j == 3 || j == 4) {
			p.args[j], err = p.flag()
		} else {
			p.args[j], err = p.number()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parse() error {
	first := true
	for {
		p.skipSpace()
		if p.i >= len(p.s) {
			return nil
		}
		c := p.s[p.i]
		cmd := c &^ 0x20
		if cmd < 'A' || cmd > 'Z' || (argCounts[cmd] == 0 && cmd != 'Z') {
			return p.errorf("expected command")
		}
		if first && cmd != 'M' {
			return p.errorf("path must start with a move")
		}
		first = false
		rel := c != cmd
		p.i++

		if cmd == 'Z' {
			p.b.Close()
			p.prevCmd = 'Z'
			continue
		}

		p.skipSpace()
		for {
			if err := p.arguments(cmd); err != nil {
				return err
			}
			if err := p.draw(cmd, rel); err != nil {
				return err
			}
			// A move followed by more coordinates continues with lines.
			if cmd == 'M' {
				cmd = 'L'
			}
			if p.skipSeparator() {
				// A comma must be followed by another set of arguments.
				continue
			}
			if !p.atNumber() {
				break
			}
		}
	}
}

func (p *parser) draw(cmd byte, rel bool) error {
	cur, _ := p.b.CurrentPoint()
	pt := func(k int) Point {
		q := Pt(p.args[k], p.args[k+1])
		if rel {
			q = q.Translate(cur.vec())
		}
		return q
	}

	switch cmd {
	case 'M':
		p.b.MoveTo(pt(0))
	case 'L':
		p.b.LineTo(pt(0))
	case 'H':
		x := p.args[0]
		if rel {
			x += cur.X
		}
		p.b.LineTo(Pt(x, cur.Y))
	case 'V':
		y := p.args[0]
		if rel {
			y += cur.Y
		}
		p.b.LineTo(Pt(cur.X, y))
	case 'C':
		p1, p2, p3 := pt(0), pt(2), pt(4)
		p.b.CubicTo(p1, p2, p3)
		p.prevCubic = p2
	case 'S':
		p1 := cur
		if p.prevCmd == 'C' || p.prevCmd == 'S' {
			p1 = cur.Translate(cur.Sub(p.prevCubic))
		}
		p2, p3 := pt(0), pt(2)
		p.b.CubicTo(p1, p2, p3)
		p.prevCubic = p2
	case 'Q':
		p1, p2 := pt(0), pt(2)
		p.b.QuadTo(p1, p2)
		p.prevQuad = p1
	case 'T':
		p1 := cur
		if p.prevCmd == 'Q' || p.prevCmd == 'T' {
			p1 = cur.Translate(cur.Sub(p.prevQuad))
		}
		p.b.QuadTo(p1, pt(0))
		p.prevQuad = p1
	case 'O':
		w := p.args[4]
		if !(w > 0) {
			return p.errorf("conic weight must be positive")
		}
		p.b.ConicTo(pt(0), pt(2), w)
	case 'A':
		p.b.SVGArcTo(p.args[0], p.args[1], p.args[2], p.args[3] != 0, p.args[4] != 0, pt(5))
	}
	p.prevCmd = cmd
	return nil
}
