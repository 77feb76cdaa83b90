package pathbool

import (
	"sort"
)

// Op is a boolean path operation.
type Op int

const (
	OpUnion Op = iota
	OpIntersect
	OpSubtract
	OpRemoveCrossings
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "Union"
	case OpIntersect:
		return "Intersect"
	case OpSubtract:
		return "Subtract"
	case OpRemoveCrossings:
		return "RemoveCrossings"
	}
	return "Unknown"
}

// Union returns the region covered by p or q.
func (p *Path) Union(q *Path) *Path {
	return BooleanOperation(p, q, OpUnion, nil)
}

// Intersect returns the region covered by both p and q.
func (p *Path) Intersect(q *Path) *Path {
	return BooleanOperation(p, q, OpIntersect, nil)
}

// Subtract returns the region covered by p but not by q.
func (p *Path) Subtract(q *Path) *Path {
	return BooleanOperation(p, q, OpSubtract, nil)
}

// RemoveCrossings returns the path with self-crossings resolved into
// non-crossing components under the nonzero-winding rule.
func (p *Path) RemoveCrossings() *Path {
	return BooleanOperation(p, nil, OpRemoveCrossings, nil)
}

// BooleanOperation computes the boolean combination of paths a and b. Open
// components are implicitly closed. For OpRemoveCrossings b is ignored and a
// is resolved against itself. Pass tol as nil to use DefaultTolerances.
func BooleanOperation(a, b *Path, op Op, tol *Tolerances) *Path {
	tol = tol.orDefault()
	if op == OpRemoveCrossings {
		if a.Empty() {
			return &Path{}
		}
		g := newBooleanGraph([]*Path{a.implicitlyClosed()}, op, tol)
		g.addIntersections(selfPathIntersections(g.paths[0], tol))
		return g.result()
	}

	if a.Empty() && b.Empty() {
		return &Path{}
	} else if a.Empty() {
		if op == OpIntersect || op == OpSubtract {
			return &Path{}
		}
		return b.implicitlyClosed().Copy()
	} else if b.Empty() {
		return a.implicitlyClosed().Copy()
	}

	g := newBooleanGraph([]*Path{a.implicitlyClosed(), b.implicitlyClosed()}, op, tol)
	g.addIntersections(crossPathIntersections(g.paths[0], g.paths[1], tol))
	return g.result()
}

////////////////////////////////////////////////////////////////

// pathIntersection is one intersection between two path locations; A and B
// live on different operand paths, or on the same path when resolving
// self-crossings.
type pathIntersection struct {
	A, B IndexedPathLocation
}

// crossPathIntersections intersects every element of path a with every
// element of path b.
func crossPathIntersections(a, b *Path, tol *Tolerances) []pathIntersection {
	var zs []pathIntersection
	for compA, ca := range a.comps {
		for elemA, curveA := range ca.curves {
			for compB, cb := range b.comps {
				for elemB, curveB := range cb.curves {
					for _, z := range IntersectCurves(curveA, curveB, tol) {
						zs = append(zs, pathIntersection{
							IndexedPathLocation{compA, elemA, z.T1},
							IndexedPathLocation{compB, elemB, z.T2},
						})
					}
				}
			}
		}
	}
	return zs
}

// selfPathIntersections finds the crossings of a path with itself: the
// self-intersections of each cubic element, and the pairwise intersections
// of distinct elements. Shared endpoints of consecutive elements are not
// crossings and are skipped.
func selfPathIntersections(p *Path, tol *Tolerances) []pathIntersection {
	var zs []pathIntersection
	for comp, c := range p.comps {
		for elem, curve := range c.curves {
			for _, z := range SelfIntersections(curve, tol) {
				zs = append(zs, pathIntersection{
					IndexedPathLocation{comp, elem, z.T1},
					IndexedPathLocation{comp, elem, z.T2},
				})
			}
		}
	}

	locs := elementLocations(p)
	for i := 0; i < len(locs); i++ {
		for j := i + 1; j < len(locs); j++ {
			li, lj := locs[i], locs[j]
			for _, z := range IntersectCurves(li.curve, lj.curve, tol) {
				if sharedEndpoint(p, li, lj, z, tol) {
					continue
				}
				zs = append(zs, pathIntersection{
					IndexedPathLocation{li.comp, li.elem, z.T1},
					IndexedPathLocation{lj.comp, lj.elem, z.T2},
				})
			}
		}
	}
	return zs
}

type elementRef struct {
	comp, elem int
	curve      Curve
}

func elementLocations(p *Path) []elementRef {
	var locs []elementRef
	for comp, c := range p.comps {
		for elem, curve := range c.curves {
			locs = append(locs, elementRef{comp, elem, curve})
		}
	}
	return locs
}

// sharedEndpoint returns true if the intersection is only the joint between
// two consecutive elements of the same component. Subdivision resolves the
// joint parameters no finer than the convergence tolerance, so the
// comparison uses the same parameter tolerance as node merging.
func sharedEndpoint(p *Path, a, b elementRef, z CurveIntersection, tol *Tolerances) bool {
	if a.comp != b.comp {
		return false
	}
	n := len(p.comps[a.comp].curves)
	if b.elem == a.elem+1 && equalParam(z.T1, 1.0, tol) && equalParam(z.T2, 0.0, tol) {
		return true
	}
	if p.comps[a.comp].closed && a.elem == 0 && b.elem == n-1 && equalParam(z.T1, 0.0, tol) && equalParam(z.T2, 1.0, tol) {
		return true
	}
	return false
}

////////////////////////////////////////////////////////////////

// windingSense is the traversal direction an edge must be walked to keep the
// boolean result's interior on a fixed side.
type windingSense int

const (
	windingNone windingSense = iota
	windingCW
	windingCCW
)

func (w windingSense) opposite() windingSense {
	switch w {
	case windingCW:
		return windingCCW
	case windingCCW:
		return windingCW
	}
	return windingNone
}

// graphNode is a vertex of the boundary graph, addressed by index into the
// graph's node arena. Neighbors are same-location nodes on the other operand
// path (or elsewhere on the same path for self-crossings).
type graphNode struct {
	path      int
	loc       IndexedPathLocation
	pos       Point
	neighbors []int

	// edge indices within this node's own path chain
	forward, backward []int
}

// graphEdge is a directed arc between two nodes of the same path, holding
// the trimmed curves of that parameter span.
type graphEdge struct {
	path     int
	curves   []Curve
	from, to int
	winding  windingSense
	visited  bool
}

// booleanGraph is the boundary graph of a boolean operation, with nodes and
// edges stored in flat arenas addressed by integer indices.
type booleanGraph struct {
	paths []*Path
	op    Op
	tol   *Tolerances

	nodes []graphNode
	edges []graphEdge

	// per path, per component: node indices ordered by location
	compNodes [][][]int
}

func newBooleanGraph(paths []*Path, op Op, tol *Tolerances) *booleanGraph {
	g := &booleanGraph{paths: paths, op: op, tol: tol}
	g.compNodes = make([][][]int, len(paths))
	for i, p := range paths {
		g.compNodes[i] = make([][]int, len(p.comps))
		for comp := range p.comps {
			// every component keeps a node at its start so that components
			// without intersections still form a single full-loop edge
			g.nodeAt(i, IndexedPathLocation{comp, 0, 0.0})
		}
	}
	return g
}

// nodeAt returns the node at the given location, creating it if no existing
// node on that path is close enough.
func (g *booleanGraph) nodeAt(path int, loc IndexedPathLocation) int {
	loc = g.paths[path].normalizeLocation(loc)
	pos := g.paths[path].PosAt(loc)
	for _, ni := range g.compNodes[path][loc.Comp] {
		n := &g.nodes[ni]
		if n.loc.Elem == loc.Elem && equalParam(n.loc.T, loc.T, g.tol) {
			return ni
		}
	}
	g.nodes = append(g.nodes, graphNode{path: path, loc: loc, pos: pos})
	ni := len(g.nodes) - 1
	g.compNodes[path][loc.Comp] = append(g.compNodes[path][loc.Comp], ni)
	return ni
}

func equalParam(a, b float64, tol *Tolerances) bool {
	d := a - b
	if d < 0.0 {
		d = -d
	}
	return d <= 2.0*tol.Convergence
}

// addIntersections inserts the nodes for the intersection set, links
// neighbors, builds the edges, classifies them, suppresses coincident
// duplicates, and leaves the graph ready for tracing.
func (g *booleanGraph) addIntersections(zs []pathIntersection) {
	pathB := len(g.paths) - 1 // 0 for self-crossings
	for _, z := range zs {
		na := g.nodeAt(0, z.A)
		nb := g.nodeAt(pathB, z.B)
		if na != nb {
			g.link(na, nb)
		}
	}
	g.buildEdges()
	g.classifyEdges()
	g.suppressCoincident()
}

func (g *booleanGraph) link(na, nb int) {
	if !containsInt(g.nodes[na].neighbors, nb) {
		g.nodes[na].neighbors = append(g.nodes[na].neighbors, nb)
	}
	if !containsInt(g.nodes[nb].neighbors, na) {
		g.nodes[nb].neighbors = append(g.nodes[nb].neighbors, na)
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// buildEdges links the nodes of each component into a cycle of directed
// edges holding the trimmed arcs.
func (g *booleanGraph) buildEdges() {
	for path := range g.paths {
		for comp := range g.compNodes[path] {
			nis := g.compNodes[path][comp]
			sort.Slice(nis, func(i, j int) bool {
				return g.nodes[nis[i]].loc.Less(g.nodes[nis[j]].loc)
			})
			for i := range nis {
				from := nis[i]
				to := nis[(i+1)%len(nis)]
				curves := g.arc(path, comp, g.nodes[from].loc, g.nodes[to].loc)
				if len(curves) == 0 {
					continue
				}
				g.edges = append(g.edges, graphEdge{path: path, curves: curves, from: from, to: to})
				ei := len(g.edges) - 1
				g.nodes[from].forward = append(g.nodes[from].forward, ei)
				g.nodes[to].backward = append(g.nodes[to].backward, ei)
			}
		}
	}
}

// arc returns the curves of the component between two locations, walking
// forward and wrapping around the component end when to does not lie ahead
// of from.
func (g *booleanGraph) arc(path, comp int, from, to IndexedPathLocation) []Curve {
	curves := g.paths[path].comps[comp].curves
	n := len(curves)

	var arc []Curve
	appendSpan := func(elem int, t0, t1 float64) {
		if Equal(t0, t1) {
			return
		}
		arc = append(arc, curves[elem].Split(t0, t1))
	}

	if from.Elem == to.Elem && from.T < to.T {
		appendSpan(from.Elem, from.T, to.T)
		return arc
	}

	// wrap around the component end; a single-node component yields its
	// full loop
	appendSpan(from.Elem, from.T, 1.0)
	for e := (from.Elem + 1) % n; e != to.Elem; e = (e + 1) % n {
		arc = append(arc, curves[e])
	}
	appendSpan(to.Elem, 0.0, to.T)
	return arc
}

////////////////////////////////////////////////////////////////

// included tests whether a point lies inside the boolean result region.
func (g *booleanGraph) included(pt Point) bool {
	fillRule := EvenOdd
	if g.op == OpRemoveCrossings {
		fillRule = NonZero
	}
	inA := g.fills(0, pt, fillRule)
	switch g.op {
	case OpUnion:
		return inA || g.fills(1, pt, fillRule)
	case OpIntersect:
		return inA && g.fills(1, pt, fillRule)
	case OpSubtract:
		return inA && !g.fills(1, pt, fillRule)
	case OpRemoveCrossings:
		return inA
	}
	panic("bug: unknown boolean operation")
}

func (g *booleanGraph) fills(path int, pt Point, fillRule FillRule) bool {
	n, boundary := g.paths[path].windings(pt, g.tol)
	if boundary {
		return true
	}
	return fillRule.Fills(n)
}

// classifyEdges samples each edge's arc midpoint offset to both sides along
// the normal. Edges whose sides disagree on inclusion lie on the result
// boundary; the winding sense records which side is inside.
func (g *booleanGraph) classifyEdges() {
	for ei := range g.edges {
		e := &g.edges[ei]
		mid := e.curves[len(e.curves)/2]
		pos := mid.Pos(0.5)
		normal := mid.Normal(0.5)
		plus := g.included(pos.Add(normal.Mul(g.tol.Offset)))
		minus := g.included(pos.Sub(normal.Mul(g.tol.Offset)))
		if plus == minus {
			e.winding = windingNone
		} else if plus {
			e.winding = windingCW
		} else {
			e.winding = windingCCW
		}
	}
}

// suppressCoincident marks edges that run along the same boundary as an
// earlier edge as visited, so shared contours appear once in the output.
// Edges are coincident when their endpoint nodes are mutual neighbors, in
// either orientation, and their arc midpoints coincide.
func (g *booleanGraph) suppressCoincident() {
	for i := 0; i < len(g.edges); i++ {
		ea := &g.edges[i]
		if ea.winding == windingNone {
			continue
		}
		for j := i + 1; j < len(g.edges); j++ {
			eb := &g.edges[j]
			if eb.winding == windingNone || eb.visited || ea.path == eb.path && g.op != OpRemoveCrossings {
				continue
			}
			if g.coincident(ea, eb) {
				eb.visited = true
			}
		}
	}
}

func (g *booleanGraph) coincident(ea, eb *graphEdge) bool {
	sameDir := g.linked(ea.from, eb.from) && g.linked(ea.to, eb.to)
	oppDir := g.linked(ea.from, eb.to) && g.linked(ea.to, eb.from)
	if !sameDir && !oppDir {
		return false
	}
	ma := arcMidpoint(ea.curves)
	mb := arcMidpoint(eb.curves)
	return ma.Sub(mb).Length() <= g.tol.Coincidence
}

// linked returns true if the nodes are neighbors, or the same node.
func (g *booleanGraph) linked(na, nb int) bool {
	return na == nb || containsInt(g.nodes[na].neighbors, nb)
}

func arcMidpoint(curves []Curve) Point {
	return curves[len(curves)/2].Pos(0.5)
}

////////////////////////////////////////////////////////////////

type walkStep struct {
	edge    int
	forward bool
}

// result traces the classified graph into the output path. Every boundary
// edge is consumed exactly once; a walk that cannot close is dropped.
func (g *booleanGraph) result() *Path {
	p := &Path{}
	for ei := range g.edges {
		e := &g.edges[ei]
		if e.winding == windingNone || e.visited {
			continue
		}
		e.visited = true
		// seed the walk so the result interior stays on the left: edges
		// whose positive-offset side is inside are walked forward, the
		// others backward
		seed := walkStep{ei, e.winding == windingCW}
		startNode, nextNode := e.from, e.to
		if !seed.forward {
			startNode, nextNode = e.to, e.from
		}
		goal := map[int]bool{startNode: true}
		for _, ni := range g.nodes[startNode].neighbors {
			goal[ni] = true
		}
		preferred := e.winding
		if !seed.forward {
			preferred = e.winding.opposite()
		}
		steps := []walkStep{seed}
		if g.walk(nextNode, goal, preferred, &steps) {
			g.appendComponent(p, steps)
		}
		// the seed edge of a failed walk stays consumed
	}
	return p
}

// walk extends the current walk from node until it reaches a goal node,
// trying candidate edges in priority order and backtracking on dead ends.
func (g *booleanGraph) walk(node int, goal map[int]bool, preferred windingSense, steps *[]walkStep) bool {
	if goal[node] {
		return true
	}
	for _, cand := range g.candidates(node, preferred) {
		e := &g.edges[cand.edge]
		e.visited = true
		*steps = append(*steps, cand)
		next := e.to
		if !cand.forward {
			next = e.from
		}
		if g.walk(next, goal, preferred, steps) {
			return true
		}
		*steps = (*steps)[:len(*steps)-1]
		e.visited = false
	}
	return false
}

// candidates returns the unvisited boundary edges at the node and its
// neighbors, ordered by preference: forward edges whose winding matches the
// walk first, then backward edges of the opposite winding, then the
// remaining forward and backward edges.
func (g *booleanGraph) candidates(node int, preferred windingSense) []walkStep {
	at := append([]int{node}, g.nodes[node].neighbors...)
	type scored struct {
		step     walkStep
		priority int
	}
	var cands []scored
	add := func(ei int, forward bool) {
		e := &g.edges[ei]
		if e.visited || e.winding == windingNone {
			return
		}
		priority := 0
		if forward && e.winding == preferred {
			priority = 3
		} else if !forward && e.winding == preferred.opposite() {
			priority = 2
		} else if forward {
			priority = 1
		}
		cands = append(cands, scored{walkStep{ei, forward}, priority})
	}
	for _, ni := range at {
		for _, ei := range g.nodes[ni].forward {
			add(ei, true)
		}
		for _, ei := range g.nodes[ni].backward {
			add(ei, false)
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[j].priority < cands[i].priority
	})
	steps := make([]walkStep, len(cands))
	for i, c := range cands {
		steps[i] = c.step
	}
	return steps
}

// appendComponent converts a closed walk into one output component,
// concatenating the arcs of each step and welding the joints exactly.
func (g *booleanGraph) appendComponent(p *Path, steps []walkStep) {
	var curves []Curve
	for _, step := range steps {
		arc := g.edges[step.edge].curves
		if step.forward {
			curves = append(curves, arc...)
		} else {
			for i := len(arc) - 1; 0 <= i; i-- {
				curves = append(curves, arc[i].Reverse())
			}
		}
	}
	if len(curves) == 0 {
		return
	}

	// weld consecutive joints, then close the loop exactly
	for i := 1; i < len(curves); i++ {
		curves[i] = setCurveStart(curves[i], curves[i-1].End())
	}
	curves[len(curves)-1] = setCurveEnd(curves[len(curves)-1], curves[0].Start())
	p.comps = append(p.comps, component{curves: curves, closed: true})
}

func setCurveStart(c Curve, start Point) Curve {
	switch c := c.(type) {
	case Line:
		return Line{start, c.P1}
	case Quad:
		return Quad{start, c.P1, c.P2}
	case Cube:
		return Cube{start, c.P1, c.P2, c.P3}
	}
	panic("bug: unknown curve type")
}
