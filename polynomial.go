package pathbool

import (
	"math"
)

// Polynomial is a polynomial in the Bernstein basis. The coefficients are the
// control values b0..bn and the degree is len-1. A curve coordinate function
// is obtained by taking the x or y values of the control points.
type Polynomial []float64

// Degree returns the degree of the polynomial, one less than the number of
// coefficients.
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// Eval evaluates the polynomial at x using repeated linear interpolation
// between consecutive coefficients (de Casteljau). This is numerically stable
// for any x, also outside [0,1], at O(degree²) cost.
func (p Polynomial) Eval(x float64) float64 {
	if len(p) == 0 {
		return 0.0
	}
	tmp := make([]float64, len(p))
	copy(tmp, p)
	for n := len(tmp) - 1; 0 < n; n-- {
		for i := 0; i < n; i++ {
			tmp[i] += x * (tmp[i+1] - tmp[i])
		}
	}
	return tmp[0]
}

// Deriv returns the derivative polynomial of degree one less.
func (p Polynomial) Deriv() Polynomial {
	if len(p) < 2 {
		return Polynomial{0.0}
	}
	n := float64(len(p) - 1)
	q := make(Polynomial, len(p)-1)
	for i := 0; i < len(q); i++ {
		q[i] = n * (p[i+1] - p[i])
	}
	return q
}

// IsZero returns true if all coefficients vanish within tolerance Epsilon.
func (p Polynomial) IsZero() bool {
	for _, b := range p {
		if !Equal(b, 0.0) {
			return false
		}
	}
	return true
}

// FindRoots returns the real roots of p in [start,end], in increasing order
// and deduplicated. Degrees up to three use closed-form formulas, higher
// degrees recursively partition the interval at the derivative's roots and
// run Newton iteration per monotonic sub-interval.
func FindRoots(p Polynomial, start, end float64) []float64 {
	return findRoots(p, start, end, DefaultTolerances)
}

func findRoots(p Polynomial, start, end float64, tol *Tolerances) []float64 {
	tol = tol.orDefault()
	if end < start || p.IsZero() {
		// identically zero polynomials have no discrete roots
		return nil
	}
	if p.Degree() <= 3 {
		return filterRoots(closedFormRoots(p), start, end, tol)
	}
	return filterRoots(numericRoots(p, start, end, tol), start, end, tol)
}

// closedFormRoots converts the Bernstein coefficients to the power basis and
// applies the closed-form formulas. The quadratic and cubic solvers guard the
// degenerate cases where leading terms vanish, so collinear inputs yield no
// roots instead of NaN.
func closedFormRoots(p Polynomial) []float64 {
	var r0, r1, r2 float64
	r1, r2 = math.NaN(), math.NaN()
	switch p.Degree() {
	case 1:
		denom := p[0] - p[1]
		if Equal(denom, 0.0) {
			return nil
		}
		r0 = p[0] / denom
	case 2:
		r0, r1 = solveQuadraticFormula(p[0]-2.0*p[1]+p[2], 2.0*(p[1]-p[0]), p[0])
	case 3:
		a := -p[0] + 3.0*p[1] - 3.0*p[2] + p[3]
		b := 3.0*p[0] - 6.0*p[1] + 3.0*p[2]
		c := -3.0*p[0] + 3.0*p[1]
		r0, r1, r2 = solveCubicFormula(a, b, c, p[0])
	default:
		return nil
	}

	var roots []float64
	for _, r := range [3]float64{r0, r1, r2} {
		if !math.IsNaN(r) {
			roots = append(roots, r)
		}
	}
	return roots
}

// numericRoots finds the roots of the derivative to partition [start,end]
// into monotonic sub-intervals, then locates at most one root per
// sub-interval.
func numericRoots(p Polynomial, start, end float64, tol *Tolerances) []float64 {
	deriv := p.Deriv()
	criticals := findRoots(deriv, start, end, tol)

	bounds := make([]float64, 0, len(criticals)+2)
	bounds = append(bounds, start)
	bounds = append(bounds, criticals...)
	bounds = append(bounds, end)

	var roots []float64
	if Equal(p.Eval(start), 0.0) {
		roots = append(roots, start)
	}
	for i := 0; i+1 < len(bounds); i++ {
		a, b := bounds[i], bounds[i+1]
		if b-a < Epsilon {
			continue
		}
		fa, fb := p.Eval(a), p.Eval(b)
		var root float64
		if fa*fb < 0.0 {
			// the polynomial is monotonic here, a single crossing exists
			root = newtonIterate(p, deriv, (a+b)/2.0, tol)
			if root < a || b < root {
				// Newton overshot the sub-interval, fall back to bisection
				root = bisectRoot(p, a, b, tol)
			}
		} else {
			// no sign change, possibly a tangential (double) root; seed
			// Newton at the right end and accept only a nearby residual-free
			// result
			root = newtonIterate(p, deriv, b, tol)
			if tol.Root < math.Abs(root-b) || tol.Residual < math.Abs(p.Eval(root)) {
				continue
			}
		}
		if len(roots) == 0 || tol.Root < root-roots[len(roots)-1] {
			roots = append(roots, root)
		}
	}
	return roots
}

// newtonIterate runs at most 20 Newton steps from x, stopping early when the
// step size falls below the residual tolerance or the derivative vanishes.
func newtonIterate(p, deriv Polynomial, x float64, tol *Tolerances) float64 {
	for i := 0; i < 20; i++ {
		d := deriv.Eval(x)
		if d == 0.0 {
			break
		}
		step := p.Eval(x) / d
		x -= step
		if math.Abs(step) < tol.Residual {
			break
		}
	}
	return x
}

// bisectRoot assumes p changes sign over [a,b] and bisects for at most 20
// steps or until the interval is narrower than the root tolerance.
func bisectRoot(p Polynomial, a, b float64, tol *Tolerances) float64 {
	fa := p.Eval(a)
	x := (a + b) / 2.0
	for i := 0; i < 20 && tol.Root < b-a; i++ {
		fx := p.Eval(x)
		if fx == 0.0 {
			return x
		}
		if (fa < 0.0) == (fx < 0.0) {
			a, fa = x, fx
		} else {
			b = x
		}
		x = (a + b) / 2.0
	}
	return x
}

func filterRoots(roots []float64, start, end float64, tol *Tolerances) []float64 {
	roots = sortAndDedupParams(roots)
	var rs []float64
	for _, r := range roots {
		if r < start-Epsilon || end+Epsilon < r {
			continue
		}
		r = math.Max(start, math.Min(end, r))
		if len(rs) == 0 || tol.Root < r-rs[len(rs)-1] {
			rs = append(rs, r)
		}
	}
	return rs
}
