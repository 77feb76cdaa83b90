package pathbool

import (
	"math"
	"strings"
)

// FillRule is the algorithm to specify which area is to be filled and which
// not, in particular when multiple components overlap. The NonZero rule is
// the default and will fill any point that is being enclosed by an unequal
// number of paths winding clockwise and counter clockwise, otherwise it will
// not be filled. The EvenOdd rule will fill any point that is being enclosed
// by an uneven number of paths, whichever their direction.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (fillRule FillRule) Fills(windings int) bool {
	if fillRule == NonZero {
		return windings != 0
	}
	return windings%2 != 0
}

func (fillRule FillRule) String() string {
	if fillRule == NonZero {
		return "NonZero"
	}
	return "EvenOdd"
}

// component is a single contiguous run of curves. When closed, the last
// curve's end equals the first curve's start.
type component struct {
	curves []Curve
	closed bool
}

func (comp component) start() Point {
	return comp.curves[0].Start()
}

func (comp component) end() Point {
	return comp.curves[len(comp.curves)-1].End()
}

// Path is a collection of components, each of which is a sequence of
// connected Bézier curves. Subpaths of an SVG path string map to components.
type Path struct {
	comps []component

	// pen state for the builder methods
	pen     Point
	started bool
}

// Empty returns true if the path contains no curves.
func (p *Path) Empty() bool {
	return p == nil || len(p.comps) == 0
}

// Copy returns a deep copy of the path.
func (p *Path) Copy() *Path {
	q := &Path{comps: make([]component, len(p.comps)), pen: p.pen, started: p.started}
	for i, comp := range p.comps {
		q.comps[i] = component{curves: append([]Curve{}, comp.curves...), closed: comp.closed}
	}
	return q
}

// Pos returns the current pen position, the end of the last added curve.
func (p *Path) Pos() Point {
	return p.pen
}

// MoveTo starts a new component at (x,y).
func (p *Path) MoveTo(x, y float64) {
	p.pen = Point{x, y}
	p.started = false
}

// LineTo adds a line from the pen to (x,y).
func (p *Path) LineTo(x, y float64) {
	end := Point{x, y}
	if end.Equals(p.pen) {
		return
	}
	p.appendCurve(Line{p.pen, end})
	p.pen = end
}

// QuadTo adds a quadratic Bézier from the pen over (cpx,cpy) to (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	cp, end := Point{cpx, cpy}, Point{x, y}
	if end.Equals(p.pen) && cp.Equals(p.pen) {
		return
	}
	p.appendCurve(Quad{p.pen, cp, end})
	p.pen = end
}

// CubeTo adds a cubic Bézier from the pen over (cpx1,cpy1) and (cpx2,cpy2) to
// (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	cp1, cp2, end := Point{cpx1, cpy1}, Point{cpx2, cpy2}, Point{x, y}
	if end.Equals(p.pen) && cp1.Equals(p.pen) && cp2.Equals(p.pen) {
		return
	}
	p.appendCurve(Cube{p.pen, cp1, cp2, end})
	p.pen = end
}

// Close closes the current component with a line back to its start, unless
// the pen is already there.
func (p *Path) Close() {
	if !p.started {
		return
	}
	comp := &p.comps[len(p.comps)-1]
	start := comp.start()
	if !p.pen.Equals(start) {
		comp.curves = append(comp.curves, Line{p.pen, start})
	} else {
		// weld the endpoint exactly to avoid a gap below Epsilon
		last := comp.curves[len(comp.curves)-1]
		comp.curves[len(comp.curves)-1] = setCurveEnd(last, start)
	}
	comp.closed = true
	p.pen = start
	p.started = false
}

func (p *Path) appendCurve(c Curve) {
	if !p.started {
		p.comps = append(p.comps, component{})
		p.started = true
	}
	comp := &p.comps[len(p.comps)-1]
	comp.curves = append(comp.curves, c)
}

func setCurveEnd(c Curve, end Point) Curve {
	switch c := c.(type) {
	case Line:
		return Line{c.P0, end}
	case Quad:
		return Quad{c.P0, c.P1, end}
	case Cube:
		return Cube{c.P0, c.P1, c.P2, end}
	}
	panic("bug: unknown curve type")
}

// Append appends path q to p and returns the extended path, leaving the
// components of both intact.
func (p *Path) Append(q *Path) *Path {
	if q.Empty() {
		return p
	} else if p.Empty() {
		return q.Copy()
	}
	r := p.Copy()
	for _, comp := range q.comps {
		r.comps = append(r.comps, component{curves: append([]Curve{}, comp.curves...), closed: comp.closed})
	}
	r.pen = q.pen
	r.started = false
	return r
}

// Bounds returns the exact bounding rectangle of the path.
func (p *Path) Bounds() Rect {
	if p.Empty() {
		return Rect{}
	}
	r := p.comps[0].curves[0].Bounds()
	for _, comp := range p.comps {
		for _, c := range comp.curves {
			r = r.Add(c.Bounds())
		}
	}
	return r
}

// Reverse returns a copy of the path with all components in reverse
// direction.
func (p *Path) Reverse() *Path {
	q := &Path{comps: make([]component, len(p.comps))}
	for i, comp := range p.comps {
		curves := make([]Curve, len(comp.curves))
		for j, c := range comp.curves {
			curves[len(comp.curves)-1-j] = c.Reverse()
		}
		q.comps[i] = component{curves: curves, closed: comp.closed}
	}
	return q
}

// Closed returns true if all components of the path are closed.
func (p *Path) Closed() bool {
	if p.Empty() {
		return false
	}
	for _, comp := range p.comps {
		if !comp.closed {
			return false
		}
	}
	return true
}

////////////////////////////////////////////////////////////////

// IndexedPathLocation addresses a position on a path by component index,
// element (curve) index within the component, and parameter on that curve.
type IndexedPathLocation struct {
	Comp, Elem int
	T          float64
}

// Less orders locations along the path.
func (loc IndexedPathLocation) Less(o IndexedPathLocation) bool {
	if loc.Comp != o.Comp {
		return loc.Comp < o.Comp
	} else if loc.Elem != o.Elem {
		return loc.Elem < o.Elem
	}
	return loc.T < o.T
}

// normalizeLocation moves a t=1 location to t=0 of the next element, and
// wraps past the end of a closed component back to its first element.
func (p *Path) normalizeLocation(loc IndexedPathLocation) IndexedPathLocation {
	comp := p.comps[loc.Comp]
	if Equal(loc.T, 0.0) {
		loc.T = 0.0
	} else if Equal(loc.T, 1.0) {
		loc.Elem++
		loc.T = 0.0
	}
	if loc.Elem == len(comp.curves) {
		if comp.closed {
			loc.Elem = 0
		} else {
			loc.Elem--
			loc.T = 1.0
		}
	}
	return loc
}

// PosAt returns the position on the path at the given location.
func (p *Path) PosAt(loc IndexedPathLocation) Point {
	return p.comps[loc.Comp].curves[loc.Elem].Pos(loc.T)
}

// NormalAt returns the unit normal of the path at the given location, the
// tangent rotated 90 degrees CCW.
func (p *Path) NormalAt(loc IndexedPathLocation) Point {
	return p.comps[loc.Comp].curves[loc.Elem].Normal(loc.T)
}

////////////////////////////////////////////////////////////////

// windings returns the number of windings of the path around point pt,
// counting counter clockwise loops as positive, as well as whether pt lies on
// the path boundary. It casts a ray towards positive x and finds the
// crossings of every curve with the polynomial solver.
func (p *Path) windings(pt Point, tol *Tolerances) (int, bool) {
	n := 0
	for _, comp := range p.comps {
		for i, c := range comp.curves {
			pts := c.Points()
			poly := make(Polynomial, len(pts))
			for j, cp := range pts {
				poly[j] = cp.Y - pt.Y
			}
			if poly.IsZero() {
				// horizontal curve at the ray's height
				x0, x1 := c.Start().X, c.End().X
				if Interval(pt.X, x0, x1) {
					return n, true
				}
				continue
			}
			for _, t := range findRoots(poly, 0.0, 1.0, tol) {
				if Equal(t, 1.0) {
					// counted as t=0 of the next curve
					continue
				}
				pos := c.Pos(t)
				if Equal(pos.X, pt.X) {
					return n, true
				} else if pos.X < pt.X {
					continue
				}
				dy := c.Deriv(t).Y
				if Equal(t, 0.0) && Equal(dy, 0.0) {
					// grazing the ray at an endpoint, use the chord
					dy = c.End().Y - c.Start().Y
				}
				if Equal(dy, 0.0) {
					// tangential touch, no crossing
					continue
				}
				if Equal(t, 0.0) {
					// count endpoint crossings only when the adjacent curve
					// ends on the other side of the ray
					prev := comp.curves[(i+len(comp.curves)-1)%len(comp.curves)]
					dyPrev := pt.Y - prev.Start().Y
					if !comp.closed && i == 0 {
						dyPrev = 0.0
					}
					if dyPrev*dy <= 0.0 {
						// local extremum touching the ray, not a crossing
						continue
					}
				}
				if 0.0 < dy {
					n++
				} else {
					n--
				}
			}
		}
	}
	return n, false
}

// Contains returns true if point pt is inside the path, or exactly on its
// boundary, according to the given fill rule. Open components are treated as
// if implicitly closed.
func (p *Path) Contains(pt Point, fillRule FillRule) bool {
	if p.Empty() || !p.Bounds().Contains(pt) {
		return false
	}
	q := p.implicitlyClosed()
	n, boundary := q.windings(pt, DefaultTolerances)
	if boundary {
		return true
	}
	return fillRule.Fills(n)
}

func (p *Path) implicitlyClosed() *Path {
	allClosed := true
	for _, comp := range p.comps {
		if !comp.closed {
			allClosed = false
			break
		}
	}
	if allClosed {
		return p
	}
	q := p.Copy()
	for i := range q.comps {
		if !q.comps[i].closed {
			comp := &q.comps[i]
			if !comp.end().Equals(comp.start()) {
				comp.curves = append(comp.curves, Line{comp.end(), comp.start()})
			}
			comp.closed = true
		}
	}
	return q
}

////////////////////////////////////////////////////////////////

// Area returns the signed area of the path; counter clockwise components
// contribute positively and clockwise components negatively. Open components
// are treated as if implicitly closed.
func (p *Path) Area() float64 {
	A := 0.0
	for _, comp := range p.comps {
		A += componentArea(comp)
	}
	return A
}

func componentArea(comp component) float64 {
	A := 0.0
	for _, c := range comp.curves {
		A += curveAreaTerm(c)
	}
	if !comp.end().Equals(comp.start()) {
		A += curveAreaTerm(Line{comp.end(), comp.start()})
	}
	return A
}

// curveAreaTerm integrates -y(t)*x'(t) over the curve, one term of the Green
// theorem contour integral for the enclosed area.
func curveAreaTerm(c Curve) float64 {
	return gaussLegendre3(func(t float64) float64 {
		return -c.Pos(t).Y * c.Deriv(t).X
	}, 0.0, 1.0)
}

// CCW returns true if the path runs (predominantly) counter clockwise, ie.
// its signed area is not negative.
func (p *Path) CCW() bool {
	return 0.0 <= p.Area()
}

////////////////////////////////////////////////////////////////

// String returns the path as an SVG path data string.
func (p *Path) String() string {
	if p.Empty() {
		return ""
	}
	var sb strings.Builder
	for _, comp := range p.comps {
		start := comp.start()
		sb.WriteString("M")
		sb.WriteString(ftos(start.X))
		sb.WriteString(" ")
		sb.WriteString(ftos(start.Y))
		n := len(comp.curves)
		for i, c := range comp.curves {
			if comp.closed && i == n-1 {
				if l, ok := c.(Line); ok && l.P1.Equals(start) {
					break
				}
			}
			switch c := c.(type) {
			case Line:
				sb.WriteString("L")
				writePoint(&sb, c.P1)
			case Quad:
				sb.WriteString("Q")
				writePoint(&sb, c.P1)
				sb.WriteString(" ")
				writePoint(&sb, c.P2)
			case Cube:
				sb.WriteString("C")
				writePoint(&sb, c.P1)
				sb.WriteString(" ")
				writePoint(&sb, c.P2)
				sb.WriteString(" ")
				writePoint(&sb, c.P3)
			}
		}
		if comp.closed {
			sb.WriteString("z")
		}
	}
	return sb.String()
}

func writePoint(sb *strings.Builder, p Point) {
	sb.WriteString(ftos(p.X))
	sb.WriteString(" ")
	sb.WriteString(ftos(p.Y))
}

// Equals returns true if both paths have the same components with equal
// curves within tolerance Epsilon. Component order matters.
func (p *Path) Equals(q *Path) bool {
	if len(p.comps) != len(q.comps) {
		return false
	}
	for i := range p.comps {
		if p.comps[i].closed != q.comps[i].closed || len(p.comps[i].curves) != len(q.comps[i].curves) {
			return false
		}
		for j := range p.comps[i].curves {
			if !curveEquals(p.comps[i].curves[j], q.comps[i].curves[j]) {
				return false
			}
		}
	}
	return true
}

// Flatten approximates the path with line segments only, subdividing each
// curve uniformly so that the maximum deviation stays below tolerance. It is
// mainly useful for debugging and rasterization handoff.
func (p *Path) Flatten(tolerance float64) *Path {
	q := &Path{}
	for _, comp := range p.comps {
		for i, c := range comp.curves {
			if i == 0 {
				start := c.Start()
				q.MoveTo(start.X, start.Y)
			}
			if c.Order() == 1 {
				end := c.End()
				q.LineTo(end.X, end.Y)
				continue
			}
			n := flattenSteps(c, tolerance)
			for k := 1; k <= n; k++ {
				pos := c.Pos(float64(k) / float64(n))
				q.LineTo(pos.X, pos.Y)
			}
		}
		if comp.closed {
			q.Close()
		}
	}
	return q
}

// flattenSteps estimates the number of uniform subdivisions needed from the
// second-derivative bound on the deviation of a Bézier from its chords.
func flattenSteps(c Curve, tolerance float64) int {
	pts := c.Points()
	d2 := 0.0
	for i := 0; i+2 < len(pts); i++ {
		d := pts[i].Sub(pts[i+1].Mul(2.0)).Add(pts[i+2])
		if l := d.Length(); d2 < l {
			d2 = l
		}
	}
	deg := float64(c.Order())
	d2 *= deg * (deg - 1.0)
	if d2 <= 8.0*tolerance {
		return 1
	}
	n := int(math.Ceil(math.Sqrt(d2 / (8.0 * tolerance))))
	if n < 1 {
		n = 1
	}
	return n
}
