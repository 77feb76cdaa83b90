package pathbool

import (
	"math"
	"sort"
)

// For curve-curve intersections:
// see T.W. Sederberg and T. Nishita, "Curve intersection using Bézier clipping", 1990
// see T.W. Sederberg and S.R. Parry, "Comparison of three curve intersection algorithms", 1986

// CurveIntersection is a pair of parameters at which two curves meet, T1 on
// the first operand and T2 on the second.
type CurveIntersection struct {
	T1, T2 float64
}

// IntersectCurves returns the intersections between curves a and b, sorted by
// T1 and secondarily by T2. Lines use closed forms, line-curve pairs solve the
// curve in the line's frame with the polynomial solver, and curve-curve pairs
// use subdivision with bounding box culling. Parallel and collinear line
// pairs yield no intersections.
func IntersectCurves(a, b Curve, tol *Tolerances) []CurveIntersection {
	tol = tol.orDefault()
	var zs []CurveIntersection
	la, oka := a.(Line)
	lb, okb := b.(Line)
	if oka && okb {
		zs = intersectLineLine(la, lb)
	} else if oka {
		zs = intersectLineCurve(la, b, false, tol)
	} else if okb {
		zs = intersectLineCurve(lb, a, true, tol)
	} else {
		zs = intersectCurveCurve(a, b, tol)
	}
	sortIntersections(zs)
	return zs
}

func sortIntersections(zs []CurveIntersection) {
	sort.SliceStable(zs, func(i, j int) bool {
		if zs[i].T1 != zs[j].T1 {
			return zs[i].T1 < zs[j].T1
		}
		return zs[i].T2 < zs[j].T2
	})
}

// intersectLineLine solves two line segments directly. Parallel lines,
// including collinear overlapping ones with a vanishing determinant on all
// minors, report no intersections instead of NaN.
func intersectLineLine(a, b Line) []CurveIntersection {
	da := a.P1.Sub(a.P0)
	db := b.P1.Sub(b.P0)
	if da.IsZero() || db.IsZero() {
		return nil
	}

	div := da.PerpDot(db)
	if Equal(div, 0.0) {
		// parallel, possibly collinear
		return nil
	}

	ta := db.PerpDot(a.P0.Sub(b.P0)) / div
	tb := da.PerpDot(a.P0.Sub(b.P0)) / div
	if !Interval(ta, 0.0, 1.0) || !Interval(tb, 0.0, 1.0) {
		return nil
	}
	return []CurveIntersection{{clampParam(ta), clampParam(tb)}}
}

// intersectLineCurve transforms the curve's control points into the line's
// frame so the line becomes the x-axis; the transformed y-coordinates are the
// Bernstein coefficients of the signed distance to the line. Each root is
// projected back onto the line for the line parameter, and roots outside
// either segment are rejected.
func intersectLineCurve(l Line, c Curve, swapped bool, tol *Tolerances) []CurveIntersection {
	d := l.P1.Sub(l.P0)
	if d.IsZero() {
		return nil
	}
	angle := d.Angle()

	pts := c.Points()
	poly := make(Polynomial, len(pts))
	for i, pt := range pts {
		poly[i] = pt.Sub(l.P0).Rot(-angle, Point{}).Y
	}

	var zs []CurveIntersection
	for _, t := range findRoots(poly, 0.0, 1.0, tol) {
		pos := c.Pos(t)
		s := pos.Sub(l.P0).Dot(d) / d.Dot(d)
		if !Interval(s, 0.0, 1.0) {
			continue
		}
		if swapped {
			zs = append(zs, CurveIntersection{clampParam(t), clampParam(s)})
		} else {
			zs = append(zs, CurveIntersection{clampParam(s), clampParam(t)})
		}
	}
	return zs
}

func clampParam(t float64) float64 {
	if t < 0.0 {
		return 0.0
	} else if 1.0 < t {
		return 1.0
	} else if Equal(t, 0.0) {
		return 0.0
	} else if Equal(t, 1.0) {
		return 1.0
	}
	return t
}

////////////////////////////////////////////////////////////////

// Subcurve is a curve together with the parameter span it occupies in its
// parent, used to map subdivision results back into the parent's parameter
// space.
type Subcurve struct {
	Curve  Curve
	T0, T1 float64
}

func subcurveWhole(c Curve) Subcurve {
	return Subcurve{c, 0.0, 1.0}
}

// Param maps a local parameter to the parent curve's parameter space.
func (s Subcurve) Param(t float64) float64 {
	return s.T0 + t*(s.T1-s.T0)
}

// Mid returns the midpoint of the parameter span in the parent's space.
func (s Subcurve) Mid() float64 {
	return (s.T0 + s.T1) / 2.0
}

// Span returns the parameter width in the parent's space.
func (s Subcurve) Span() float64 {
	return s.T1 - s.T0
}

func (s Subcurve) splitHalf() (Subcurve, Subcurve) {
	mid := s.Mid()
	c0, c1 := s.Curve.SplitAt(0.5)
	return Subcurve{c0, s.T0, mid}, Subcurve{c1, mid, s.T1}
}

// intersectCurveCurve intersects two curves of order at least two. It reduces
// both curves into simple subcurves, culls pairs with disjoint bounding
// boxes, and converges the rest by subdivision.
func intersectCurveCurve(a, b Curve, tol *Tolerances) []CurveIntersection {
	if curveEquals(a, b) {
		// identical curves overlap everywhere; report the endpoints only
		return []CurveIntersection{{0.0, 0.0}, {1.0, 1.0}}
	} else if curveEquals(a, b.Reverse()) {
		return []CurveIntersection{{0.0, 1.0}, {1.0, 0.0}}
	}

	var zs []CurveIntersection
	for _, sa := range reduceCurve(a, tol) {
		for _, sb := range reduceCurve(b, tol) {
			if sa.Curve.Bounds().Overlaps(sb.Curve.Bounds()) {
				convergePair(sa, sb, tol, 0, &zs)
			}
		}
	}
	return dedupIntersections(zs, tol)
}

// maxConvergeDepth bounds the subdivision; with halving on both sides the
// parameter rectangle shrinks below any practical threshold well before this.
const maxConvergeDepth = 48

// convergePair shrinks the candidate parameter rectangle by subdividing both
// subcurves and culling halves whose bounding boxes do not overlap, until the
// rectangle is below the convergence threshold; the midpoint is then reported
// as the intersection, mapped through the subcurves' provenance.
func convergePair(a, b Subcurve, tol *Tolerances, depth int, zs *[]CurveIntersection) {
	if a.Span() < tol.Convergence && b.Span() < tol.Convergence || maxConvergeDepth < depth {
		*zs = append(*zs, CurveIntersection{clampParam(a.Mid()), clampParam(b.Mid())})
		return
	}

	a0, a1 := a.splitHalf()
	b0, b1 := b.splitHalf()
	pairs := [4][2]Subcurve{{a0, b0}, {a0, b1}, {a1, b0}, {a1, b1}}
	for _, pair := range pairs {
		if pair[0].Curve.Bounds().Overlaps(pair[1].Curve.Bounds()) {
			convergePair(pair[0], pair[1], tol, depth+1, zs)
		}
	}
}

// dedupIntersections merges intersections that converged to (nearly) the same
// parameter pair from adjacent subdivision cells.
func dedupIntersections(zs []CurveIntersection, tol *Tolerances) []CurveIntersection {
	if len(zs) < 2 {
		return zs
	}
	sortIntersections(zs)
	sep := 4.0 * tol.Convergence
	out := zs[:1]
	for _, z := range zs[1:] {
		last := out[len(out)-1]
		if math.Abs(z.T1-last.T1) <= sep && math.Abs(z.T2-last.T2) <= sep {
			continue
		}
		out = append(out, z)
	}
	return out
}

////////////////////////////////////////////////////////////////

// reduceCurve splits a curve into maximal simple subcurves. It first splits
// at the x/y extrema (and inflection points for cubics) and then bisects for
// the boundary between simple and non-simple spans, with a minimum parameter
// step.
func reduceCurve(c Curve, tol *Tolerances) []Subcurve {
	if c.Order() == 1 {
		return []Subcurve{subcurveWhole(c)}
	}

	ts := append([]float64{}, c.Extrema()...)
	if cube, ok := c.(Cube); ok {
		ts = append(ts, cube.Inflections()...)
	}
	ts = sortAndDedupParams(ts)
	bounds := make([]float64, 0, len(ts)+2)
	bounds = append(bounds, 0.0)
	bounds = append(bounds, ts...)
	bounds = append(bounds, 1.0)

	var subs []Subcurve
	for i := 0; i+1 < len(bounds); i++ {
		u0, u1 := bounds[i], bounds[i+1]
		if u1-u0 < Epsilon {
			continue
		}
		t0 := u0
		for t0 < u1-Epsilon {
			t1 := simpleBoundary(c, t0, u1, tol)
			subs = append(subs, Subcurve{c.Split(t0, t1), t0, t1})
			t0 = t1
		}
	}
	if len(subs) == 0 {
		subs = append(subs, subcurveWhole(c))
	}
	return subs
}

// simpleBoundary returns the largest t1 in (t0,end] such that the span
// [t0,t1] is simple, found by bisection down to the reduce step size.
func simpleBoundary(c Curve, t0, end float64, tol *Tolerances) float64 {
	if isSimple(c.Split(t0, end)) {
		return end
	}
	lo, hi := t0, end
	for tol.ReduceStep < hi-lo {
		mid := (lo + hi) / 2.0
		if isSimple(c.Split(t0, mid)) {
			lo = mid
		} else {
			hi = mid
		}
	}
	if lo <= t0+Epsilon {
		// force progress on spans that are never simple near t0 (cusps)
		return math.Min(end, t0+tol.ReduceStep)
	}
	return lo
}

// isSimple reports whether the curve is simple: its control points lie on one
// side of the chord, the angular spread between the end normals is at most 60
// degrees, and for cubics the control legs do not cross.
func isSimple(c Curve) bool {
	switch c := c.(type) {
	case Line:
		return true
	case Quad:
		n1, n2 := c.Normal(0.0), c.Normal(1.0)
		return normalSpreadOK(n1, n2)
	case Cube:
		chord := c.P3.Sub(c.P0)
		s1 := chord.PerpDot(c.P1.Sub(c.P0))
		s2 := chord.PerpDot(c.P2.Sub(c.P0))
		if s1*s2 < 0.0 {
			return false
		}
		if legsCross(c.P0, c.P1, c.P2, c.P3) {
			return false
		}
		return normalSpreadOK(c.Normal(0.0), c.Normal(1.0))
	}
	return false
}

func normalSpreadOK(n1, n2 Point) bool {
	dot := math.Max(-1.0, math.Min(1.0, n1.Dot(n2)))
	return math.Abs(math.Acos(dot)) < math.Pi/3.0
}

// legsCross reports whether the control legs p0-p1 and p2-p3 intersect.
func legsCross(p0, p1, p2, p3 Point) bool {
	return 0 < len(intersectLineLine(Line{p0, p1}, Line{p2, p3}))
}

////////////////////////////////////////////////////////////////

// SelfIntersections returns the parameter pairs at which a curve crosses
// itself. Only cubics can self-intersect; the curve is reduced into simple
// subcurves and non-adjacent pairs are converged pairwise. Adjacent subcurves
// share an endpoint and cannot otherwise cross.
func SelfIntersections(c Curve, tol *Tolerances) []CurveIntersection {
	tol = tol.orDefault()
	if c.Order() < 3 {
		return nil
	}

	subs := reduceCurve(c, tol)
	var zs []CurveIntersection
	for i := 0; i < len(subs); i++ {
		for j := i + 2; j < len(subs); j++ {
			if !subs[i].Curve.Bounds().Overlaps(subs[j].Curve.Bounds()) {
				continue
			}
			convergePair(subs[i], subs[j], tol, 0, &zs)
		}
	}
	zs = dedupIntersections(zs, tol)

	// drop spurious hits at the shared boundary of nearly-adjacent spans
	var out []CurveIntersection
	for _, z := range zs {
		if math.Abs(z.T1-z.T2) <= 4.0*tol.Convergence {
			continue
		}
		out = append(out, z)
	}
	return out
}
