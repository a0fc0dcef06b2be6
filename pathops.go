package vpath

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"
)

// Op is a boolean operation on the areas filled by paths.
type Op int

const (
	// OpSimplify keeps the area of the first path, removing overlaps and
	// self-intersections. The second path is ignored.
	OpSimplify Op = iota
	// OpUnion keeps the area covered by either path.
	OpUnion
	// OpIntersection keeps the area covered by both paths.
	OpIntersection
	// OpDifference keeps the area covered by the first path but not the
	// second.
	OpDifference
	// OpSymmetricDifference keeps the area covered by exactly one path.
	OpSymmetricDifference
)

func (op Op) String() string {
	switch op {
	case OpSimplify:
		return "simplify"
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpDifference:
		return "difference"
	case OpSymmetricDifference:
		return "xor"
	default:
		return "Op(invalid)"
	}
}

// Union returns a path covering the area filled by a or b.
func Union(a, b *Path, rule FillRule) *Path { return OpUnion.Apply(a, b, rule) }

// Intersection returns a path covering the area filled by both a and b.
func Intersection(a, b *Path, rule FillRule) *Path { return OpIntersection.Apply(a, b, rule) }

// Difference returns a path covering the area filled by a but not by b.
func Difference(a, b *Path, rule FillRule) *Path { return OpDifference.Apply(a, b, rule) }

// SymmetricDifference returns a path covering the area filled by exactly
// one of a and b.
func SymmetricDifference(a, b *Path, rule FillRule) *Path {
	return OpSymmetricDifference.Apply(a, b, rule)
}

// Simplify returns a path covering the area filled by p that has no
// overlapping or self-intersecting contours.
func Simplify(p *Path, rule FillRule) *Path { return OpSimplify.Apply(p, nil, rule) }

// Apply computes the operation on the areas of a and b, each filled with
// rule. The result is filled with the winding rule; it only has closed
// contours, and the area inside each contour is on its left side in
// the direction of travel. Open contours of the inputs don't contribute
// edges to the result. A nil path is treated as empty.
//
// The result is computed on an approximation of the inputs' intersections
// and is not guaranteed to be exact where edges nearly coincide.
func (op Op) Apply(a, b *Path, rule FillRule) *Path {
	if a == nil {
		a = &Path{}
	}
	g := &opGraph{op: op, rule: rule, first: a, log: Logger()}
	if op != OpSimplify {
		if b == nil {
			b = &Path{}
		}
		g.second = b
	}

	g.collect(a)
	if g.second != nil {
		g.collect(g.second)
	}
	g.trace("collected")

	g.splitEdges()
	g.trace("split")

	g.classifyEdges()
	g.trace("classified")

	if g.hasInconsistencies() {
		g.trace("applying fixups")
		g.applyFixups()
	}

	var bld Builder
	g.reassemble(&bld)
	p, _ := bld.Build()
	p = p.withoutOpenContours()
	g.log.Debug("vpath: boolean operation done", "op", op, "contours", p.NumContours())
	return p
}

// area classifies what lies to one side of an edge.
type area uint8

const (
	areaUnknown area = iota
	areaIn
	areaOut
)

func areaOf(inside bool) area {
	if inside {
		return areaIn
	}
	return areaOut
}

type node struct {
	p     Point
	edges []*edge
	// inconsistent is 1 if an odd number of boundary edges meet at the
	// node, and 2 if neighboring edges disagree about the area between
	// them.
	inconsistent int
	boundaries   int
}

type edge struct {
	seg        Segment
	start, end *node
	next       *edge

	// Areas to the left and the right with respect to the first and the
	// second input, and with respect to the result.
	left1, right1 area
	left2, right2 area
	left, right   area

	interior  bool // left == right
	coincides bool // part of both inputs
	collected bool
	remove    bool

	startAngle float64
	endAngle   float64

	pathNum  int
	curveNum int
	// intersectNext is the curve number of the first edge still to be
	// intersected with this one. Pieces created by splitting skip edges
	// whose intersections were already applied.
	intersectNext int
}

func (e *edge) reverse() {
	e.seg = e.seg.Reverse()
	e.start, e.end = e.end, e.start
	e.left1, e.right1 = e.right1, e.left1
	e.left2, e.right2 = e.right2, e.left2
	e.left, e.right = e.right, e.left
	e.startAngle, e.endAngle = e.endAngle, e.startAngle
}

func (e *edge) resetClassification() {
	e.left, e.right = areaUnknown, areaUnknown
	e.left1, e.right1 = areaUnknown, areaUnknown
	e.left2, e.right2 = areaUnknown, areaUnknown
}

func (e *edge) copyClassification(from *edge) {
	e.left1, e.right1 = from.left1, from.right1
	e.left2, e.right2 = from.left2, from.right2
	e.left, e.right = from.left, from.right
	e.interior = from.interior
}

func (e *edge) computeAngles() {
	t := e.seg.Tangent(0)
	e.startAngle = math.Atan2(-t.Y, t.X)
	t = e.seg.Tangent(1).Negate()
	e.endAngle = math.Atan2(-t.Y, t.X)
}

// angleAt returns the angle at which e leaves n.
func (e *edge) angleAt(n *node) float64 {
	if e.start == n {
		return e.startAngle
	}
	return e.endAngle
}

// turningDirection distinguishes edges that leave n at the same angle by
// the direction they turn to.
func (e *edge) turningDirection(n *node) float64 {
	t := 0.5
	if e.seg.Kind == CubicKind {
		if e.start == n {
			t = 0.333
		} else {
			t = 0.666
		}
	}
	p := e.seg.Eval(t)
	return math.Atan2(-(p.Y - n.p.Y), p.X-n.p.X)
}

func isTiny(seg Segment) bool {
	bb := seg.BoundingBox()
	return bb.Width() < 0.01 && bb.Height() < 0.01
}

// coincide reports whether two segments sharing their end points are the
// same curve.
func coincide(a, b Segment) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == LineKind {
		return true
	}
	return a.Eval(0.5).Near(b.Eval(0.5), 0.01)
}

func removeEdge(s []*edge, e *edge) []*edge {
	if i := slices.Index(s, e); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

func removeNode(s []*node, n *node) []*node {
	if i := slices.Index(s, n); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

type opGraph struct {
	op     Op
	rule   FillRule
	first  *Path
	second *Path
	log    *slog.Logger

	edges *edge
	tail  *edge
	nodes []*node

	curveNum int
	pathNum  int
}

func (g *opGraph) trace(phase string) {
	if !g.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	n := 0
	for e := g.edges; e != nil; e = e.next {
		n++
	}
	g.log.Debug("vpath: "+phase, "op", g.op, "edges", n, "nodes", len(g.nodes))
}

func (g *opGraph) appendEdge(e *edge) {
	if g.tail == nil {
		g.edges = e
	} else {
		g.tail.next = e
	}
	g.tail = e
}

func (g *opGraph) insertEdgeAfter(before, e *edge) {
	e.next = before.next
	before.next = e
	if g.tail == before {
		g.tail = e
	}
}

// collect adds an edge for every segment of p's closed contours. Close
// segments shorter than 0.01 are dropped, and the contour's last node is
// merged with its first.
func (g *opGraph) collect(p *Path) {
	for _, c := range p.withoutOpenContours().contours {
		var first *edge
		n := len(c.segments)
		for _, seg := range c.segments[:n-1] {
			g.addEdge(&first, seg)
		}
		if cl := c.segments[n-1]; !cl.P0.Near(cl.P1, 0.01) {
			g.addEdge(&first, cl)
		}
		if first != nil {
			g.mergeNodes(first.start, g.tail.end)
		}
	}
	g.pathNum++
}

func (g *opGraph) addEdge(first **edge, seg Segment) {
	e := &edge{seg: seg, pathNum: g.pathNum, curveNum: g.curveNum}
	g.curveNum++
	if *first != nil {
		e.start = g.tail.end
	} else {
		*first = e
		e.start = &node{p: seg.Start()}
		g.nodes = append(g.nodes, e.start)
	}
	e.end = &node{p: seg.End()}
	g.nodes = append(g.nodes, e.end)
	e.start.edges = append(e.start.edges, e)
	e.end.edges = append(e.end.edges, e)
	g.appendEdge(e)
}

// mergeNodes moves all edges of c2 to c1 and drops c2. Edges that end up
// starting and ending at c1 are marked for removal.
func (g *opGraph) mergeNodes(c1, c2 *node) {
	if c1 == c2 {
		return
	}
	for _, e := range c2.edges {
		if e.start == c2 {
			e.start = c1
		}
		if e.end == c2 {
			e.end = c1
		}
		c1.edges = append(c1.edges, e)
	}
	g.nodes = removeNode(g.nodes, c2)
	for _, e := range c1.edges {
		if e.start == e.end {
			e.remove = true
		}
	}
}

type splitPoint struct {
	t1, t2 float64
	p      Point
	node   *node
}

func nearParam(a, b float64) bool { return math.Abs(b-a) < 0.005 }

// remainder maps t from the whole segment to the part after prev.
func remainder(t, prev float64) float64 {
	if prev >= 1 {
		return 1
	}
	return (t - prev) / (1 - prev)
}

// split cuts e into head and tail at the node n, inserting a new edge for
// tail after after in the edge list. It returns the new edge.
func (g *opGraph) split(e, after *edge, head, tail Segment, n *node, intersectNext int) *edge {
	e.seg = head
	e.intersectNext = intersectNext

	rest := &edge{
		seg:           tail,
		left1:         e.left1,
		right1:        e.right1,
		left2:         e.left2,
		right2:        e.right2,
		pathNum:       e.pathNum,
		curveNum:      e.curveNum,
		intersectNext: intersectNext,
		end:           e.end,
	}
	e.end.edges = removeEdge(e.end.edges, e)
	rest.end.edges = append(rest.end.edges, rest)

	e.end = n
	rest.start = n
	n.edges = append(n.edges, e, rest)

	g.insertEdgeAfter(after, rest)
	return rest
}

// splitEdges intersects all pairs of edges and splits them at their
// intersections, so that edges only meet at nodes.
func (g *opGraph) splitEdges() {
	for l := g.edges; l != nil; l = l.next {
		for l != nil && isTiny(l.seg) {
			l = l.next
		}
		if l == nil {
			break
		}

		for ll := l; ll != nil; ll = ll.next {
			cd1 := l
			for ll != nil && (isTiny(ll.seg) || ll.curveNum <= cd1.intersectNext) {
				ll = ll.next
			}
			if ll == nil {
				break
			}
			cd2 := ll
			if cd1 == cd2 {
				continue
			}
			if cd1.seg.Kind == LineKind && cd1.curveNum == cd2.curveNum {
				// Pieces of the same line don't intersect.
				continue
			}
			curveNum1, curveNum2 := cd1.curveNum, cd2.curveNum

			xs := Intersect(cd1.seg, cd2.seg)
			if len(xs) == 0 {
				continue
			}
			if len(xs) == 1 && (cd1.start == cd2.start || cd1.start == cd2.end ||
				cd1.end == cd2.start || cd1.end == cd2.end) {
				// Already a shared node.
				continue
			}
			g.log.Debug("vpath: intersecting edges", "curve1", curveNum1, "curve2", curveNum2, "n", len(xs))

			sp := make([]splitPoint, len(xs))
			for i, x := range xs {
				sp[i] = splitPoint{t1: x.T1, t2: x.T2, p: x.P}
			}

			// Split parameters stay relative to the unsplit segments. The
			// pieces are cut from those, since the parameter of a split
			// conic is not a linear function of the original one.
			slices.SortFunc(sp, func(a, b splitPoint) int { return cmp.Compare(a.t1, b.t1) })
			before := l
			seg, prev := cd1.seg, 0.0
			for i := range sp {
				switch t := remainder(sp[i].t1, prev); {
				case nearParam(t, 0):
					sp[i].node = cd1.start
				case nearParam(t, 1):
					sp[i].node = cd1.end
				default:
					n := &node{p: sp[i].p}
					g.nodes = slices.Insert(g.nodes, 0, n)
					sp[i].node = n
					cd1 = g.split(cd1, before, seg.Subsegment(prev, sp[i].t1), seg.Subsegment(sp[i].t1, 1), n, curveNum2)
					before = cd1
					prev = sp[i].t1
				}
			}

			slices.SortFunc(sp, func(a, b splitPoint) int { return cmp.Compare(a.t2, b.t2) })
			seg, prev = cd2.seg, 0.0
			for i := range sp {
				switch t := remainder(sp[i].t2, prev); {
				case nearParam(t, 0):
					old := cd2.start
					for k := range sp {
						if sp[k].node == old {
							sp[k].node = sp[i].node
						}
					}
					g.mergeNodes(sp[i].node, old)
				case nearParam(t, 1):
					old := cd2.end
					for k := range sp {
						if sp[k].node == old {
							sp[k].node = sp[i].node
						}
					}
					g.mergeNodes(sp[i].node, old)
				default:
					cd2 = g.split(cd2, ll, seg.Subsegment(prev, sp[i].t2), seg.Subsegment(sp[i].t2, 1), sp[i].node, curveNum1)
					ll = cd2
					prev = sp[i].t2
				}
			}
		}
	}
}

// checkMinimalConsistency checks that an even number of boundary edges
// meet at c.
func (c *node) checkMinimalConsistency() {
	c.inconsistent = 0
	c.boundaries = 0
	for _, e := range c.edges {
		if !e.interior {
			c.boundaries++
		}
	}
	if c.boundaries%2 != 0 {
		c.inconsistent = 1
	}
}

// checkConsistency additionally checks that neighboring edges agree about
// the area between them.
func (c *node) checkConsistency() {
	c.checkMinimalConsistency()
	if c.inconsistent != 0 {
		return
	}
	for i, e := range c.edges {
		e2 := c.edges[(i+1)%len(c.edges)]

		a1, a2, a := e.left1, e.left2, e.left
		if e.end == c {
			a1, a2, a = e.right1, e.right2, e.right
		}
		if e2.end == c {
			if a1 != e2.left1 || a2 != e2.left2 || a != e2.left {
				c.inconsistent = 2
			}
		} else {
			if a1 != e2.right1 || a2 != e2.right2 || a != e2.right {
				c.inconsistent = 2
			}
		}

		if !e.coincides {
			if (e.pathNum == 0 && e.left2 != e.right2) ||
				(e.pathNum == 1 && e.left1 != e.right1) {
				c.inconsistent = 2
			}
		}
		if c.inconsistent != 0 {
			return
		}
	}
}

// computeCoincidence merges e with an edge of the other input that
// connects the same nodes along the same curve.
func (e *edge) computeCoincidence() {
	if e.coincides || e.remove {
		return
	}
	for _, o := range e.start.edges {
		if o.remove {
			continue
		}
		if o != e &&
			o.seg.Kind == e.seg.Kind &&
			o.pathNum != e.pathNum &&
			slices.Contains(e.end.edges, o) &&
			coincide(e.seg, o.seg) {
			e.coincides = true
			o.remove = true
			break
		}
	}
}

func (op Op) combine(a1, a2 area) area {
	switch op {
	case OpSimplify:
		return a1
	case OpUnion:
		return areaOf(a1 == areaIn || a2 == areaIn)
	case OpIntersection:
		return areaOf(a1 == areaIn && a2 == areaIn)
	case OpDifference:
		return areaOf(a1 == areaIn && a2 == areaOut)
	case OpSymmetricDifference:
		return areaOf(a1 != a2)
	default:
		panic("vpath: invalid boolean operation")
	}
}

// classifyBoundary determines the areas on both sides of e by testing
// points half a unit to its left and right.
func (g *opGraph) classifyBoundary(e *edge) {
	if e.left != areaUnknown && e.right != areaUnknown {
		return
	}
	pos := e.seg.Eval(0.5)
	t := e.seg.Tangent(0.5)
	pos1 := Pt(pos.X+0.5*t.Y, pos.Y-0.5*t.X)
	pos2 := Pt(pos.X-0.5*t.Y, pos.Y+0.5*t.X)

	if e.pathNum == 1 && !e.coincides {
		// The edge was intersected with the other input, so testing the
		// point on the edge itself is safe.
		e.left1 = areaOf(g.first.InFill(pos, g.rule))
		e.right1 = e.left1
	} else {
		if e.left1 == areaUnknown {
			e.left1 = areaOf(g.first.InFill(pos1, g.rule))
		}
		if e.right1 == areaUnknown {
			e.right1 = areaOf(g.first.InFill(pos2, g.rule))
		}
	}

	if g.second != nil {
		if e.pathNum == 0 && !e.coincides {
			e.left2 = areaOf(g.second.InFill(pos, g.rule))
			e.right2 = e.left2
		} else {
			if e.left2 == areaUnknown {
				e.left2 = areaOf(g.second.InFill(pos1, g.rule))
			}
			if e.right2 == areaUnknown {
				e.right2 = areaOf(g.second.InFill(pos2, g.rule))
			}
		}
	} else {
		e.left2, e.right2 = areaOut, areaOut
	}

	e.left = g.op.combine(e.left1, e.left2)
	e.right = g.op.combine(e.right1, e.right2)
	e.interior = e.left == e.right
}

// otherEdge returns the other edge at a node of degree 2, or nil.
func (c *node) otherEdge(e *edge) *edge {
	if len(c.edges) != 2 {
		return nil
	}
	if c.edges[0] == e {
		return c.edges[1]
	}
	return c.edges[0]
}

func (e *edge) propagateClassification(forward bool) {
	c := e.start
	if forward {
		c = e.end
	}
	o := c.otherEdge(e)
	if o == nil {
		return
	}
	if o.left == areaUnknown || o.right == areaUnknown {
		o.copyClassification(e)
		o.propagateClassification(forward)
	}
}

func (e *edge) propagateChangedClassification(forward bool) {
	c := e.start
	if forward {
		c = e.end
	}
	o := c.otherEdge(e)
	if o == nil {
		c.checkMinimalConsistency()
		return
	}
	if o.left != e.left || o.right != e.right || o.interior != e.interior {
		o.copyClassification(e)
		o.propagateChangedClassification(forward)
	}
}

func (c *node) propagateChanges() {
	for _, e := range c.edges {
		e.propagateChangedClassification(e.start == c)
	}
}

// sortEdges sorts the edges at c counterclockwise by the angle they leave
// c at. Edges leaving at the same angle are ordered by the direction they
// turn to.
func (c *node) sortEdges() {
	slices.SortStableFunc(c.edges, func(e1, e2 *edge) int {
		f1, f2 := e1.angleAt(c), e2.angleAt(c)
		if math.Abs(math.Mod(f1-f2, 2*math.Pi)) < 0.01 {
			f1, f2 = e1.turningDirection(c), e2.turningDirection(c)
		}
		return cmp.Compare(f1, f2)
	})
}

func (g *opGraph) classifyEdges() {
	for e := g.edges; e != nil; e = e.next {
		if e.remove {
			continue
		}
		e.computeCoincidence()
		e.computeAngles()
	}

	var prev *edge
	for e := g.edges; e != nil; e = e.next {
		if !e.remove {
			prev = e
			continue
		}
		e.start.edges = removeEdge(e.start.edges, e)
		e.end.edges = removeEdge(e.end.edges, e)
		if prev == nil {
			g.edges = e.next
		} else {
			prev.next = e.next
		}
		if g.tail == e {
			g.tail = prev
		}
	}

	for _, c := range g.nodes {
		c.sortEdges()
	}

	// Classification happens after sorting so propagation sees the final
	// node order.
	for e := g.edges; e != nil; e = e.next {
		g.classifyBoundary(e)
		e.propagateClassification(false)
		e.propagateClassification(true)
	}

	for _, c := range g.nodes {
		c.checkConsistency()
	}
}

func (g *opGraph) hasInconsistencies() bool {
	return slices.ContainsFunc(g.nodes, func(c *node) bool { return c.inconsistent != 0 })
}

// otherEnd follows the chain of degree 2 nodes starting with e and
// returns the node it arrives at. It returns nil if the chain loops back
// to n.
func otherEnd(n *node, e *edge) *node {
	forward := e.start == n
	for {
		n2 := e.start
		if forward {
			n2 = e.end
		}
		e = n2.otherEdge(e)
		if e == nil {
			return n2
		}
		if n2 == n {
			return nil
		}
	}
}

// pathIsConsistent reports whether all edges along the chain from n via
// e agree on their classification when it is computed for each edge
// from scratch.
func (g *opGraph) pathIsConsistent(n *node, e *edge) bool {
	left, right, interior := e.left, e.right, e.interior
	forward := e.start == n
	for {
		n2 := e.start
		if forward {
			n2 = e.end
		}
		e = n2.otherEdge(e)
		if e == nil || n2 == n {
			return true
		}
		e.resetClassification()
		g.classifyBoundary(e)
		if e.left != left || e.right != right || e.interior != interior {
			return false
		}
	}
}

// applyFixups patches up inconsistent nodes.
//
// Toggling a chain of edges between two nodes with an odd boundary count
// between interior and boundary makes both counts even. Chains whose
// edges disagree on their classification are the preferred candidates.
// Failing that, the edges around a bad node are classified again from
// scratch, since some of their areas were only propagated.
func (g *opGraph) applyFixups() {
	var bad []*node
	for _, c := range g.nodes {
		if c.inconsistent != 0 {
			bad = append(bad, c)
		}
	}
	slices.Reverse(bad)
	g.log.Debug("vpath: inconsistent nodes", "n", len(bad))

	for len(bad) > 0 {
		n1 := bad[0]
		bad = bad[1:]

		n1.checkConsistency()
		if n1.inconsistent == 0 {
			continue
		}

		if n1.inconsistent == 1 {
			var n2 *node
			var toggle *edge
			for range len(bad) {
				var fallback *edge
				n2 = nil
				for _, e := range n1.edges {
					other := otherEnd(n1, e)
					if other == n1 {
						// Loops don't change parity.
						continue
					}
					if other == nil || other.inconsistent != 1 {
						continue
					}
					if (e.start == n1 && e.end == other) || (e.start == other && e.end == n1) {
						fallback = e
						continue
					}
					if g.pathIsConsistent(n1, e) {
						continue
					}
					bad = removeNode(bad, other)
					n2 = other
					toggle = e
					break
				}
				if n2 == nil && fallback != nil {
					toggle = fallback
					n2 = fallback.start
					if n2 == n1 {
						n2 = fallback.end
					}
					bad = removeNode(bad, n2)
				}
				if n2 != nil {
					break
				}
			}

			if n2 != nil && n1.inconsistent == 1 {
				g.log.Debug("vpath: toggling edge between odd nodes", "curve", toggle.curveNum, "interior", !toggle.interior)
				toggle.interior = !toggle.interior
				toggle.propagateChangedClassification(toggle.start == n1)
				n1.checkMinimalConsistency()
			}
		}

		if n1.inconsistent == 1 {
			for _, e := range n1.edges {
				e.resetClassification()
				g.classifyBoundary(e)
			}
			n1.propagateChanges()
			n1.checkMinimalConsistency()
		}
	}
}

// findNext picks the edge to continue a contour with after e. Edges at a
// node are sorted counterclockwise, so the next eligible edge to the
// left or the right is chosen, depending on which side is inside.
func findNext(e *edge) *edge {
	c := e.end
	idx := slices.Index(c.edges, e)
	n := len(c.edges)
	dir := 1
	if e.left == areaIn {
		dir = n - 1
	}

	var next, fallback *edge
	for d := range n {
		o := c.edges[(idx+dir*(d+1))%n]
		if o.collected || o.interior {
			continue
		}
		angle := o.startAngle
		if o.end == c {
			angle = o.endAngle
		}
		if math.Abs(angle-e.endAngle) < 0.0001 {
			fallback = o
			continue
		}
		next = o
		break
	}
	if next == nil {
		next = fallback
	}
	if next != nil && next.end == c {
		next.reverse()
	}
	return next
}

// reassemble walks the boundary edges, turning towards the inside at
// each node, and emits a contour for every cycle it finds.
func (g *opGraph) reassemble(b *Builder) {
	for e := g.edges; e != nil; e = e.next {
		if e.collected || e.interior {
			continue
		}
		if e.left == areaOut {
			e.reverse()
		}
		start := e.start
		b.MoveTo(start.p)
		b.segmentTo(e.seg)
		e.collected = true

		for next := findNext(e); next != nil; next = findNext(next) {
			if next.collected {
				g.log.Warn("vpath: boolean operation found a collected edge, contour left open")
				break
			}
			b.segmentTo(next.seg)
			next.collected = true
			if next.end == start {
				b.Close()
				break
			}
		}
	}
}
