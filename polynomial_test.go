package pathbool

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

// bernsteinFromPower converts power basis coefficients a0 + a1*x + ... into
// Bernstein coefficients.
func bernsteinFromPower(a ...float64) Polynomial {
	n := len(a) - 1
	p := make(Polynomial, len(a))
	for i := 0; i <= n; i++ {
		for k := 0; k <= i; k++ {
			p[i] += float64(binom(i, k)) / float64(binom(n, k)) * a[k]
		}
	}
	return p
}

func binom(n, k int) int {
	c := 1
	for i := 0; i < k; i++ {
		c = c * (n - i) / (i + 1)
	}
	return c
}

func TestPolynomialEval(t *testing.T) {
	var tts = []struct {
		p Polynomial
		x float64
		y float64
	}{
		{Polynomial{0.0, 1.0}, 0.5, 0.5},
		{Polynomial{0.0, 1.0}, 2.0, 2.0},
		{Polynomial{0.0, 0.0, 1.0}, 0.5, 0.25},
		{Polynomial{1.0, 1.0, 1.0}, 0.3, 1.0},
		{bernsteinFromPower(-1.0, 0.0, 0.0, 0.0, 1.0), 0.5, -1.0 + 0.5*0.5*0.5*0.5},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.Float(t, tt.p.Eval(tt.x), tt.y)
		})
	}
}

func TestPolynomialDeriv(t *testing.T) {
	p := bernsteinFromPower(0.0, 0.0, 1.0) // x^2
	deriv := p.Deriv()                     // 2x
	test.Float(t, deriv.Eval(0.0), 0.0)
	test.Float(t, deriv.Eval(0.5), 1.0)
	test.Float(t, deriv.Eval(1.0), 2.0)
}

func TestPolynomialIsZero(t *testing.T) {
	test.That(t, Polynomial{0.0, 0.0, 0.0}.IsZero())
	test.That(t, !Polynomial{0.0, 1e-5, 0.0}.IsZero())
}

func TestFindRootsClosedForm(t *testing.T) {
	var tts = []struct {
		p     Polynomial
		roots []float64
	}{
		// linear
		{Polynomial{-1.0, 1.0}, []float64{0.5}},
		{Polynomial{1.0, 2.0}, nil},
		// quadratic
		{bernsteinFromPower(0.06, -0.5, 1.0), []float64{0.2, 0.3}}, // (x-0.2)(x-0.3)
		{bernsteinFromPower(0.25, -1.0, 1.0), []float64{0.5}},      // (x-0.5)^2
		{bernsteinFromPower(1.0, 0.0, 1.0), nil},                   // x^2+1
		// cubic
		{bernsteinFromPower(-0.09, 0.73, -1.6, 1.0), []float64{0.2, 0.5, 0.9}}, // (x-0.2)(x-0.5)(x-0.9)
		{bernsteinFromPower(-0.125, 0.75, -1.5, 1.0), []float64{0.5}},          // (x-0.5)^3
		// degenerate: leading terms vanish
		{Polynomial{0.0, 0.0, 0.0}, nil},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			roots := FindRoots(tt.p, 0.0, 1.0)
			test.T(t, len(roots), len(tt.roots))
			for j := range roots {
				test.That(t, math.Abs(roots[j]-tt.roots[j]) < 1e-5, "root", j, "=", roots[j], "want", tt.roots[j])
			}
		})
	}
}

func TestFindRootsInterval(t *testing.T) {
	p := bernsteinFromPower(-0.09, 0.73, -1.6, 1.0) // roots 0.2, 0.5, 0.9
	roots := FindRoots(p, 0.3, 1.0)
	test.T(t, len(roots), 2)
	test.That(t, math.Abs(roots[0]-0.5) < 1e-5)
	test.That(t, math.Abs(roots[1]-0.9) < 1e-5)
}

func TestFindRootsQuartic(t *testing.T) {
	// (x-0.2)(x-0.4)(x-0.6)(x-0.8), one root per monotonic sub-interval
	p := bernsteinFromPower(0.0384, -0.4, 1.4, -2.0, 1.0)
	roots := FindRoots(p, 0.0, 1.0)
	want := []float64{0.2, 0.4, 0.6, 0.8}
	test.T(t, len(roots), len(want))
	for i := range roots {
		test.That(t, math.Abs(roots[i]-want[i]) < 1e-5, "root", i, "=", roots[i], "want", want[i])
	}
}

func TestFindRootsQuarticTangential(t *testing.T) {
	// (x-0.5)^2 * (x^2+1) touches zero without a sign change
	p := bernsteinFromPower(0.25, -1.0, 1.25, -1.0, 1.0)
	roots := FindRoots(p, 0.0, 1.0)
	test.T(t, len(roots), 1)
	test.That(t, math.Abs(roots[0]-0.5) < 1e-5)
}

func TestFindRootsQuarticNone(t *testing.T) {
	p := bernsteinFromPower(1.0, 0.0, 0.0, 0.0, 1.0) // x^4+1
	test.T(t, len(FindRoots(p, 0.0, 1.0)), 0)
}

func TestFindRootsEndpoints(t *testing.T) {
	// x(x-1) has roots exactly at the interval ends
	p := bernsteinFromPower(0.0, -1.0, 1.0)
	roots := FindRoots(p, 0.0, 1.0)
	test.T(t, len(roots), 2)
	test.Float(t, roots[0], 0.0)
	test.Float(t, roots[1], 1.0)
}

func TestFindRootsBruteForce(t *testing.T) {
	// (x-0.1)(x-0.3)(x-0.5)(x-0.7)(x-0.9), compare against dense sampling
	p := bernsteinFromPower(-0.00945, 0.1689, -0.95, 2.3, -2.5, 1.0)
	roots := FindRoots(p, 0.0, 1.0)

	var sampled []float64
	prev := p.Eval(0.0)
	for x := 0.001; x <= 1.0; x += 0.001 {
		y := p.Eval(x)
		if prev*y < 0.0 {
			sampled = append(sampled, x)
		}
		prev = y
	}
	test.T(t, len(roots), len(sampled))
	for i := range roots {
		test.That(t, math.Abs(roots[i]-sampled[i]) < 0.001, "root", i, "=", roots[i], "near", sampled[i])
	}
}
