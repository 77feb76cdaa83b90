package pathbool

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestIntersectLineLine(t *testing.T) {
	var tts = []struct {
		a, b Line
		zs   []CurveIntersection
	}{
		// crossing segments
		{Line{Point{1.0, 2.0}, Point{7.0, 8.0}}, Line{Point{1.0, 4.0}, Point{5.0, 0.0}}, []CurveIntersection{{1.0 / 6.0, 1.0 / 4.0}}},
		// parallel
		{Line{Point{-2.0, -1.0}, Point{2.0, 1.0}}, Line{Point{-4.0, -1.0}, Point{4.0, 3.0}}, nil},
		// collinear overlapping, all determinants vanish
		{Line{Point{-5.0, -5.0}, Point{5.0, 5.0}}, Line{Point{-1.0, -1.0}, Point{1.0, 1.0}}, nil},
		// crossing at an endpoint
		{Line{Point{0.0, 0.0}, Point{2.0, 0.0}}, Line{Point{1.0, 0.0}, Point{1.0, 2.0}}, []CurveIntersection{{0.5, 0.0}}},
		// segments whose infinite lines cross outside the segments
		{Line{Point{0.0, 0.0}, Point{1.0, 0.0}}, Line{Point{2.0, -1.0}, Point{2.0, 1.0}}, nil},
		// zero-length segment
		{Line{Point{1.0, 1.0}, Point{1.0, 1.0}}, Line{Point{0.0, 0.0}, Point{2.0, 2.0}}, nil},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			zs := IntersectCurves(tt.a, tt.b, nil)
			test.T(t, len(zs), len(tt.zs))
			for j := range zs {
				test.That(t, math.Abs(zs[j].T1-tt.zs[j].T1) < 1e-9, "T1 =", zs[j].T1, "want", tt.zs[j].T1)
				test.That(t, math.Abs(zs[j].T2-tt.zs[j].T2) < 1e-9, "T2 =", zs[j].T2, "want", tt.zs[j].T2)
			}
		})
	}
}

func TestIntersectLineLineNoNaN(t *testing.T) {
	zs := IntersectCurves(Line{Point{-5.0, -5.0}, Point{5.0, 5.0}}, Line{Point{-1.0, -1.0}, Point{1.0, 1.0}}, nil)
	for _, z := range zs {
		test.That(t, !math.IsNaN(z.T1) && !math.IsNaN(z.T2))
	}
}

func TestIntersectLineQuad(t *testing.T) {
	q := Quad{Point{0.0, -1.0}, Point{1.0, 1.0}, Point{2.0, 3.0}}
	l := Line{Point{0.0, 0.0}, Point{2.0, 0.0}}

	zs := IntersectCurves(l, q, nil)
	test.T(t, len(zs), 1)
	test.That(t, math.Abs(zs[0].T1-0.25) < 1e-9)
	test.That(t, math.Abs(zs[0].T2-0.25) < 1e-9)

	// swapped operands swap the parameters
	zs = IntersectCurves(q, l, nil)
	test.T(t, len(zs), 1)
	test.That(t, math.Abs(zs[0].T1-0.25) < 1e-9)
	test.That(t, math.Abs(zs[0].T2-0.25) < 1e-9)
}

func TestIntersectLineCube(t *testing.T) {
	c := Cube{Point{0.0, -1.0}, Point{1.0 / 3.0, -1.0}, Point{2.0 / 3.0, 1.0}, Point{1.0, 1.0}}
	l := Line{Point{0.0, 0.0}, Point{1.0, 0.0}}

	zs := IntersectCurves(l, c, nil)
	test.T(t, len(zs), 1)
	test.That(t, math.Abs(zs[0].T1-0.5) < 1e-9)
	test.That(t, math.Abs(zs[0].T2-0.5) < 1e-9)
}

func TestIntersectLineCubeMiss(t *testing.T) {
	c := Cube{Point{0.0, 1.0}, Point{1.0 / 3.0, 2.0}, Point{2.0 / 3.0, 2.0}, Point{1.0, 1.0}}
	l := Line{Point{0.0, 0.0}, Point{1.0, 0.0}}
	test.T(t, len(IntersectCurves(l, c, nil)), 0)
}

func TestIntersectQuadQuad(t *testing.T) {
	// opposing arches crossing twice at t = 0.5 ± sqrt(3)/6
	qa := Quad{Point{0.0, 0.0}, Point{1.0, 4.0}, Point{2.0, 0.0}}
	qb := Quad{Point{0.0, 2.0}, Point{1.0, 0.0}, Point{2.0, 2.0}}

	zs := IntersectCurves(qa, qb, nil)
	test.T(t, len(zs), 2)
	t0 := 0.5 - math.Sqrt(3.0)/6.0
	t1 := 0.5 + math.Sqrt(3.0)/6.0
	test.That(t, math.Abs(zs[0].T1-t0) < 1e-3, "T1 =", zs[0].T1, "want", t0)
	test.That(t, math.Abs(zs[0].T2-t0) < 1e-3)
	test.That(t, math.Abs(zs[1].T1-t1) < 1e-3, "T1 =", zs[1].T1, "want", t1)
	test.That(t, math.Abs(zs[1].T2-t1) < 1e-3)

	// the reported parameter pairs land on (nearly) the same position
	for _, z := range zs {
		pa, pb := qa.Pos(z.T1), qb.Pos(z.T2)
		test.That(t, pa.Sub(pb).Length() < 1e-3)
	}
}

func TestIntersectCubeCube(t *testing.T) {
	ca := Cube{Point{0.0, -1.0}, Point{1.0 / 3.0, -1.0}, Point{2.0 / 3.0, 1.0}, Point{1.0, 1.0}}
	cb := Cube{Point{0.0, 1.0}, Point{1.0 / 3.0, 1.0}, Point{2.0 / 3.0, -1.0}, Point{1.0, -1.0}}

	zs := IntersectCurves(ca, cb, nil)
	test.T(t, len(zs), 1)
	test.That(t, math.Abs(zs[0].T1-0.5) < 1e-3)
	test.That(t, math.Abs(zs[0].T2-0.5) < 1e-3)
}

func TestIntersectIdenticalCurves(t *testing.T) {
	c := Cube{Point{0.0, 0.0}, Point{1.0, 2.0}, Point{2.0, 2.0}, Point{3.0, 0.0}}

	zs := IntersectCurves(c, c, nil)
	test.T(t, len(zs), 2)
	test.T(t, zs[0], CurveIntersection{0.0, 0.0})
	test.T(t, zs[1], CurveIntersection{1.0, 1.0})

	zs = IntersectCurves(c, c.Reverse(), nil)
	test.T(t, len(zs), 2)
	test.T(t, zs[0], CurveIntersection{0.0, 1.0})
	test.T(t, zs[1], CurveIntersection{1.0, 0.0})
}

func TestIntersectDisjointCurves(t *testing.T) {
	ca := Cube{Point{0.0, 0.0}, Point{1.0, 1.0}, Point{2.0, 1.0}, Point{3.0, 0.0}}
	cb := Cube{Point{0.0, 5.0}, Point{1.0, 6.0}, Point{2.0, 6.0}, Point{3.0, 5.0}}
	test.T(t, len(IntersectCurves(ca, cb, nil)), 0)
}

func TestSelfIntersections(t *testing.T) {
	// a cubic with a loop, symmetric about x=0.5
	c := Cube{Point{0.0, 0.0}, Point{2.0, 2.0}, Point{-1.0, 2.0}, Point{1.0, 0.0}}

	zs := SelfIntersections(c, nil)
	test.T(t, len(zs), 1)
	test.That(t, zs[0].T1 < zs[0].T2)
	test.That(t, math.Abs(zs[0].T1+zs[0].T2-1.0) < 1e-3, "T1+T2 =", zs[0].T1+zs[0].T2)
	test.That(t, c.Pos(zs[0].T1).Sub(c.Pos(zs[0].T2)).Length() < 1e-3)
}

func TestSelfIntersectionsNone(t *testing.T) {
	test.T(t, len(SelfIntersections(Quad{Point{0.0, 0.0}, Point{1.0, 2.0}, Point{2.0, 0.0}}, nil)), 0)
	test.T(t, len(SelfIntersections(Cube{Point{0.0, 0.0}, Point{1.0, 1.0}, Point{2.0, 1.0}, Point{3.0, 0.0}}, nil)), 0)
}

func TestReduceCurve(t *testing.T) {
	// every reduced subcurve is simple and the spans tile [0,1]
	c := Cube{Point{0.0, 0.0}, Point{2.0, 2.0}, Point{-1.0, 2.0}, Point{1.0, 0.0}}
	subs := reduceCurve(c, DefaultTolerances)
	test.That(t, 1 < len(subs))

	prev := 0.0
	for _, sub := range subs {
		test.Float(t, sub.T0, prev)
		test.That(t, sub.T0 < sub.T1)
		prev = sub.T1
	}
	test.Float(t, prev, 1.0)
}
