package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"honnef.co/go/vpath"
	"honnef.co/go/vpath/fontpath"
	"honnef.co/go/vpath/raster"
)

// task is a single invocation of a command, either from the command line
// or from a job file.
type task struct {
	Name    string `toml:"name" yaml:"name"`
	Command string `toml:"command" yaml:"command"`
	// Paths holds path text in the form accepted by vpath.Parse.
	Paths     []string `toml:"paths" yaml:"paths"`
	Rule      string   `toml:"rule" yaml:"rule"`
	Output    string   `toml:"output" yaml:"output"`
	Precision int      `toml:"precision" yaml:"precision"`

	// render
	Width  int     `toml:"width" yaml:"width"`
	Height int     `toml:"height" yaml:"height"`
	Scale  float64 `toml:"scale" yaml:"scale"`

	// text
	Text string  `toml:"text" yaml:"text"`
	Font string  `toml:"font" yaml:"font"`
	Size float64 `toml:"size" yaml:"size"`

	// bounds
	Control bool `toml:"control" yaml:"control"`
}

var errUsage = errors.New("usage")

// errFlags reports flags that the flag set rejected and already printed.
var errFlags = fmt.Errorf("%w: invalid flags", errUsage)

var ops = map[string]vpath.Op{
	"simplify":     vpath.OpSimplify,
	"union":        vpath.OpUnion,
	"intersection": vpath.OpIntersection,
	"difference":   vpath.OpDifference,
	"xor":          vpath.OpSymmetricDifference,
}

func parseRule(s string) (vpath.FillRule, error) {
	switch strings.ToLower(s) {
	case "", "winding", "nonzero":
		return vpath.Winding, nil
	case "evenodd", "even-odd":
		return vpath.EvenOdd, nil
	default:
		return 0, fmt.Errorf("unknown fill rule %q", s)
	}
}

func (t *task) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Command
}

func (t *task) paths() ([]*vpath.Path, error) {
	out := make([]*vpath.Path, len(t.Paths))
	for i, s := range t.Paths {
		p, err := vpath.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i+1, err)
		}
		out[i] = p
	}
	return out, nil
}

// exec runs the task. Output goes to w unless the task names an output
// file, which is resolved relative to dir.
func (t *task) exec(w io.Writer, dir string) error {
	vpath.Logger().Debug("running task", "task", t.String(), "paths", len(t.Paths))

	var buf bytes.Buffer
	if err := t.run(&buf); err != nil {
		return err
	}
	if t.Output == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}
	name := t.Output
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	if err := os.WriteFile(name, buf.Bytes(), 0o666); err != nil {
		return err
	}
	vpath.Logger().Info("wrote output", "task", t.String(), "file", name, "bytes", buf.Len())
	return nil
}

func (t *task) run(w *bytes.Buffer) error {
	switch t.Command {
	case "parse":
		return t.parse(w)
	case "bounds":
		return t.bounds(w)
	case "length":
		return t.length(w)
	case "render":
		return t.render(w)
	case "text":
		return t.text(w)
	}
	if op, ok := ops[t.Command]; ok {
		return t.op(w, op)
	}
	return fmt.Errorf("unknown command %q", t.Command)
}

func (t *task) writePath(w *bytes.Buffer, p *vpath.Path) {
	w.Write(p.AppendFormat(nil, vpath.FormatOptions{MaxPrecision: t.Precision}))
	w.WriteByte('\n')
}

func (t *task) parse(w *bytes.Buffer) error {
	ps, err := t.paths()
	if err != nil {
		return err
	}
	for _, p := range ps {
		t.writePath(w, p)
	}
	return nil
}

func (t *task) op(w *bytes.Buffer, op vpath.Op) error {
	rule, err := parseRule(t.Rule)
	if err != nil {
		return err
	}
	ps, err := t.paths()
	if err != nil {
		return err
	}
	switch {
	case op == vpath.OpSimplify && len(ps) != 1:
		return fmt.Errorf("%w: simplify takes one path, got %d", errUsage, len(ps))
	case op != vpath.OpSimplify && len(ps) < 2:
		return fmt.Errorf("%w: %s takes at least two paths, got %d", errUsage, op, len(ps))
	}
	if op == vpath.OpSimplify {
		t.writePath(w, vpath.Simplify(ps[0], rule))
		return nil
	}
	// Further paths are folded into the result one at a time. The result
	// is always filled with the winding rule.
	result := op.Apply(ps[0], ps[1], rule)
	for _, p := range ps[2:] {
		result = op.Apply(result, p, vpath.Winding)
	}
	t.writePath(w, result)
	return nil
}

func (t *task) bounds(w *bytes.Buffer) error {
	ps, err := t.paths()
	if err != nil {
		return err
	}
	for _, p := range ps {
		var (
			r  vpath.Rect
			ok bool
		)
		if t.Control {
			r, ok = p.ControlBounds()
		} else {
			r, ok = p.Bounds()
		}
		if !ok {
			w.WriteString("empty\n")
			continue
		}
		fmt.Fprintf(w, "%s %s %s %s\n", num(r.X0, t.Precision), num(r.Y0, t.Precision), num(r.X1, t.Precision), num(r.Y1, t.Precision))
	}
	return nil
}

func (t *task) length(w *bytes.Buffer) error {
	ps, err := t.paths()
	if err != nil {
		return err
	}
	for _, p := range ps {
		fmt.Fprintln(w, num(vpath.NewMeasure(p).Length(), t.Precision))
	}
	return nil
}

// render fills all paths into one mask. Without an explicit size, the
// mask is fitted to the scaled bounds of the paths.
func (t *task) render(w *bytes.Buffer) error {
	rule, err := parseRule(t.Rule)
	if err != nil {
		return err
	}
	ps, err := t.paths()
	if err != nil {
		return err
	}
	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}
	aff := vpath.Scale(scale, scale)
	width, height := t.Width, t.Height
	if width <= 0 || height <= 0 {
		var union vpath.Rect
		found := false
		for _, p := range ps {
			r, ok := p.Bounds()
			if !ok {
				continue
			}
			if !found {
				union = r
			} else {
				union = union.Union(r)
			}
			found = true
		}
		if !found {
			return fmt.Errorf("%w: nothing to render", errUsage)
		}
		const margin = 1
		union = aff.TransformRectBoundingBox(union)
		aff = aff.ThenTranslate(vpath.Vec(margin-union.X0, margin-union.Y0))
		width = int(math.Ceil(union.Width())) + 2*margin
		height = int(math.Ceil(union.Height())) + 2*margin
	}

	r, err := raster.New(raster.Options{Width: width, Height: height, Rule: rule, Transform: aff})
	if err != nil {
		return err
	}
	for _, p := range ps {
		if err := r.FillDefault(p); err != nil {
			return err
		}
	}
	return r.EncodePNG(w)
}

// text converts text to a path, with the baseline at y = size.
func (t *task) text(w *bytes.Buffer) error {
	data := goregular.TTF
	if t.Font != "" {
		var err error
		data, err = os.ReadFile(t.Font)
		if err != nil {
			return err
		}
	}
	face, err := fontpath.ParseFace(data)
	if err != nil {
		return err
	}
	size := t.Size
	if size <= 0 {
		size = 16
	}
	var b vpath.Builder
	fontpath.AddText(&b, face, t.Text, size, vpath.Pt(0, size))
	p, err := b.Build()
	if err != nil {
		return err
	}
	t.writePath(w, p)
	return nil
}

func num(v float64, prec int) string {
	if prec <= 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
