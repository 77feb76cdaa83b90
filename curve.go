package pathbool

import (
	"math"
)

// Curve is a Bézier segment of order 1 (line), 2 (quadratic), or 3 (cubic).
// Implementations are immutable value types; all methods return new values.
type Curve interface {
	// Order is the number of control points minus one.
	Order() int

	// Points returns the control points, Order()+1 in total.
	Points() []Point

	Start() Point
	End() Point

	// Pos evaluates the curve position at parameter t in [0,1].
	Pos(t float64) Point

	// Deriv evaluates the curve derivative (tangent direction) at t.
	Deriv(t float64) Point

	// Normal returns the unit normal at t, the tangent rotated 90 degrees CCW.
	Normal(t float64) Point

	// SplitAt splits the curve at t into two curves.
	SplitAt(t float64) (Curve, Curve)

	// Split returns the subcurve over the parameter span [t0,t1].
	Split(t0, t1 float64) Curve

	// Bounds returns the exact bounding rectangle, using extrema.
	Bounds() Rect

	// Reverse returns the curve with opposite parameter direction.
	Reverse() Curve

	// Extrema returns the parameters in (0,1) at which x or y reach a
	// turning point, in increasing order.
	Extrema() []float64
}

////////////////////////////////////////////////////////////////

// Line is a line segment.
type Line struct {
	P0, P1 Point
}

func (c Line) Order() int {
	return 1
}

func (c Line) Points() []Point {
	return []Point{c.P0, c.P1}
}

func (c Line) Start() Point {
	return c.P0
}

func (c Line) End() Point {
	return c.P1
}

func (c Line) Pos(t float64) Point {
	return c.P0.Interpolate(c.P1, t)
}

func (c Line) Deriv(t float64) Point {
	return c.P1.Sub(c.P0)
}

func (c Line) Normal(t float64) Point {
	return c.P1.Sub(c.P0).Rot90CCW().Norm(1.0)
}

func (c Line) SplitAt(t float64) (Curve, Curve) {
	mid := c.Pos(t)
	return Line{c.P0, mid}, Line{mid, c.P1}
}

func (c Line) Split(t0, t1 float64) Curve {
	return Line{c.Pos(t0), c.Pos(t1)}
}

func (c Line) Bounds() Rect {
	return rectFromPoints(c.P0, c.P1)
}

func (c Line) Reverse() Curve {
	return Line{c.P1, c.P0}
}

func (c Line) Extrema() []float64 {
	return nil
}

////////////////////////////////////////////////////////////////

// Quad is a quadratic Bézier segment.
type Quad struct {
	P0, P1, P2 Point
}

func (c Quad) Order() int {
	return 2
}

func (c Quad) Points() []Point {
	return []Point{c.P0, c.P1, c.P2}
}

func (c Quad) Start() Point {
	return c.P0
}

func (c Quad) End() Point {
	return c.P2
}

func (c Quad) Pos(t float64) Point {
	p0 := c.P0.Mul((1 - t) * (1 - t))
	p1 := c.P1.Mul(2 * t * (1 - t))
	p2 := c.P2.Mul(t * t)
	return p0.Add(p1).Add(p2)
}

func (c Quad) Deriv(t float64) Point {
	p0 := c.P1.Sub(c.P0).Mul(2 * (1 - t))
	p1 := c.P2.Sub(c.P1).Mul(2 * t)
	return p0.Add(p1)
}

func (c Quad) Normal(t float64) Point {
	d := c.Deriv(t)
	if d.IsZero() {
		// degenerate endpoint, fall back to the chord
		d = c.P2.Sub(c.P0)
	}
	return d.Rot90CCW().Norm(1.0)
}

func (c Quad) SplitAt(t float64) (Curve, Curve) {
	q1 := c.P0.Interpolate(c.P1, t)
	r1 := c.P1.Interpolate(c.P2, t)
	mid := q1.Interpolate(r1, t)
	return Quad{c.P0, q1, mid}, Quad{mid, r1, c.P2}
}

func (c Quad) Split(t0, t1 float64) Curve {
	return splitRange(c, t0, t1)
}

func (c Quad) Bounds() Rect {
	r := rectFromPoints(c.P0, c.P2)
	for _, t := range c.Extrema() {
		r = r.AddPoint(c.Pos(t))
	}
	return r
}

func (c Quad) Reverse() Curve {
	return Quad{c.P2, c.P1, c.P0}
}

func (c Quad) Extrema() []float64 {
	var ts []float64
	// the derivative components are linear in t
	for _, a := range [2][3]float64{
		{c.P0.X, c.P1.X, c.P2.X},
		{c.P0.Y, c.P1.Y, c.P2.Y},
	} {
		denom := a[0] - 2.0*a[1] + a[2]
		if !Equal(denom, 0.0) {
			if t := (a[0] - a[1]) / denom; Epsilon < t && t < 1.0-Epsilon {
				ts = append(ts, t)
			}
		}
	}
	return sortAndDedupParams(ts)
}

////////////////////////////////////////////////////////////////

// Cube is a cubic Bézier segment.
type Cube struct {
	P0, P1, P2, P3 Point
}

func (c Cube) Order() int {
	return 3
}

func (c Cube) Points() []Point {
	return []Point{c.P0, c.P1, c.P2, c.P3}
}

func (c Cube) Start() Point {
	return c.P0
}

func (c Cube) End() Point {
	return c.P3
}

func (c Cube) Pos(t float64) Point {
	p0 := c.P0.Mul((1 - t) * (1 - t) * (1 - t))
	p1 := c.P1.Mul(3 * t * (1 - t) * (1 - t))
	p2 := c.P2.Mul(3 * t * t * (1 - t))
	p3 := c.P3.Mul(t * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func (c Cube) Deriv(t float64) Point {
	p0 := c.P1.Sub(c.P0).Mul(3 * (1 - t) * (1 - t))
	p1 := c.P2.Sub(c.P1).Mul(6 * t * (1 - t))
	p2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return p0.Add(p1).Add(p2)
}

func (c Cube) Normal(t float64) Point {
	d := c.Deriv(t)
	if d.IsZero() {
		// cusp or coincident control point at an endpoint
		if Equal(t, 0.0) {
			d = c.P2.Sub(c.P0)
		} else if Equal(t, 1.0) {
			d = c.P3.Sub(c.P1)
		}
		if d.IsZero() {
			d = c.P3.Sub(c.P0)
		}
	}
	return d.Rot90CCW().Norm(1.0)
}

func (c Cube) SplitAt(t float64) (Curve, Curve) {
	q0, q1, q2, q3, r0, r1, r2, r3 := splitCubicBezier(c.P0, c.P1, c.P2, c.P3, t)
	return Cube{q0, q1, q2, q3}, Cube{r0, r1, r2, r3}
}

func (c Cube) Split(t0, t1 float64) Curve {
	return splitRange(c, t0, t1)
}

func (c Cube) Bounds() Rect {
	r := rectFromPoints(c.P0, c.P3)
	for _, t := range c.Extrema() {
		r = r.AddPoint(c.Pos(t))
	}
	return r
}

func (c Cube) Reverse() Curve {
	return Cube{c.P3, c.P2, c.P1, c.P0}
}

func (c Cube) Extrema() []float64 {
	var ts []float64
	// the derivative components are quadratic in t
	for _, a := range [2][4]float64{
		{c.P0.X, c.P1.X, c.P2.X, c.P3.X},
		{c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y},
	} {
		d1 := a[1] - a[0]
		d2 := a[2] - a[1]
		d3 := a[3] - a[2]
		t0, t1 := solveQuadraticFormula(d1-2.0*d2+d3, 2.0*(d2-d1), d1)
		if !math.IsNaN(t0) && Epsilon < t0 && t0 < 1.0-Epsilon {
			ts = append(ts, t0)
		}
		if !math.IsNaN(t1) && Epsilon < t1 && t1 < 1.0-Epsilon {
			ts = append(ts, t1)
		}
	}
	return sortAndDedupParams(ts)
}

// Inflections returns the parameters in (0,1) at which the curvature changes
// sign, in increasing order.
func (c Cube) Inflections() []float64 {
	t0, t1 := findInflectionPointsCubicBezier(c.P0, c.P1, c.P2, c.P3)
	var ts []float64
	if !math.IsNaN(t0) && Epsilon < t0 && t0 < 1.0-Epsilon {
		ts = append(ts, t0)
	}
	if !math.IsNaN(t1) && Epsilon < t1 && t1 < 1.0-Epsilon {
		ts = append(ts, t1)
	}
	return ts
}

////////////////////////////////////////////////////////////////

func splitCubicBezier(p0, p1, p2, p3 Point, t float64) (Point, Point, Point, Point, Point, Point, Point, Point) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}

func findInflectionPointsCubicBezier(p0, p1, p2, p3 Point) (float64, float64) {
	ax := -p0.X + 3.0*p1.X - 3.0*p2.X + p3.X
	ay := -p0.Y + 3.0*p1.Y - 3.0*p2.Y + p3.Y
	bx := 3.0*p0.X - 6.0*p1.X + 3.0*p2.X
	by := 3.0*p0.Y - 6.0*p1.Y + 3.0*p2.Y
	cx := -3.0*p0.X + 3.0*p1.X
	cy := -3.0*p0.Y + 3.0*p1.Y

	tcusp := -0.5 * ((ay*cx - ax*cy) / (ay*bx - ax*by))
	if !(tcusp >= 0.0 && tcusp <= 1.0) { // handles NaN and Infs too
		return math.NaN(), math.NaN()
	}

	discriminant := tcusp*tcusp - ((by*cx-bx*cy)/(ay*bx-ax*by))/3.0
	if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	} else if discriminant == 0.0 {
		return tcusp, math.NaN()
	}
	q := math.Sqrt(discriminant)
	return tcusp - q, tcusp + q
}

// splitRange returns the subcurve over [t0,t1] by splitting twice.
func splitRange(c Curve, t0, t1 float64) Curve {
	if Equal(t0, 0.0) && Equal(t1, 1.0) {
		return c
	}
	if !Equal(t0, 0.0) {
		_, c = c.SplitAt(t0)
	}
	if !Equal(t1, 1.0) {
		t := (t1 - t0) / (1.0 - t0)
		c, _ = c.SplitAt(t)
	}
	return c
}

func sortAndDedupParams(ts []float64) []float64 {
	if len(ts) < 2 {
		return ts
	}
	for i := 1; i < len(ts); i++ {
		for j := i; 0 < j && ts[j] < ts[j-1]; j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
	n := 1
	for i := 1; i < len(ts); i++ {
		if !Equal(ts[i], ts[n-1]) {
			ts[n] = ts[i]
			n++
		}
	}
	return ts[:n]
}

func curveEquals(a, b Curve) bool {
	if a.Order() != b.Order() {
		return false
	}
	pa, pb := a.Points(), b.Points()
	for i := range pa {
		if !pa[i].Equals(pb[i]) {
			return false
		}
	}
	return true
}
