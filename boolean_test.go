package pathbool

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestUnionRectangles(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	b := Rectangle(5.0, 5.0, 10.0, 10.0)

	r := a.Union(b)
	test.That(t, r.Closed())
	test.T(t, len(r.comps), 1)
	test.That(t, math.Abs(r.Area()-175.0) < 1e-6, "area", r.Area())

	test.That(t, r.Contains(Point{1.0, 1.0}, NonZero))
	test.That(t, r.Contains(Point{12.0, 12.0}, NonZero))
	test.That(t, r.Contains(Point{7.0, 7.0}, NonZero))
	test.That(t, !r.Contains(Point{12.0, 2.0}, NonZero))
	test.That(t, !r.Contains(Point{2.0, 12.0}, NonZero))
}

func TestUnionDisjoint(t *testing.T) {
	a := Rectangle(0.0, 0.0, 4.0, 4.0)
	b := Rectangle(10.0, 0.0, 4.0, 4.0)

	r := a.Union(b)
	test.T(t, len(r.comps), 2)
	test.That(t, math.Abs(r.Area()-32.0) < 1e-6)
}

func TestUnionNested(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	b := Rectangle(2.0, 2.0, 2.0, 2.0)

	r := a.Union(b)
	test.T(t, len(r.comps), 1)
	test.That(t, math.Abs(r.Area()-100.0) < 1e-6)
}

func TestUnionSelf(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)

	r := a.Union(a.Copy())
	test.That(t, r.Closed())
	test.T(t, len(r.comps), 1)
	test.That(t, math.Abs(r.Area()-100.0) < 1e-6, "area", r.Area())
}

func TestUnionCommutative(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	b := Circle(10.0, 5.0, 4.0)

	ab := a.Union(b)
	ba := b.Union(a)
	test.That(t, math.Abs(ab.Area()-ba.Area()) < 1e-6)
	for _, pt := range []Point{{5.0, 5.0}, {13.0, 5.0}, {15.0, 5.0}, {-1.0, 5.0}} {
		test.T(t, ab.Contains(pt, NonZero), ba.Contains(pt, NonZero))
	}
}

func TestIntersectRectangles(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	b := Rectangle(5.0, 5.0, 10.0, 10.0)

	r := a.Intersect(b)
	test.T(t, len(r.comps), 1)
	test.That(t, math.Abs(r.Area()-25.0) < 1e-6, "area", r.Area())

	bounds := r.Bounds()
	test.That(t, math.Abs(bounds.X-5.0) < 1e-6)
	test.That(t, math.Abs(bounds.Y-5.0) < 1e-6)
	test.That(t, math.Abs(bounds.W-5.0) < 1e-6)
	test.That(t, math.Abs(bounds.H-5.0) < 1e-6)
}

func TestIntersectDisjoint(t *testing.T) {
	a := Rectangle(0.0, 0.0, 4.0, 4.0)
	b := Rectangle(10.0, 0.0, 4.0, 4.0)
	test.That(t, a.Intersect(b).Empty())
}

func TestIntersectAreaBound(t *testing.T) {
	var tts = []struct {
		a, b *Path
	}{
		{Rectangle(0.0, 0.0, 10.0, 10.0), Rectangle(5.0, 5.0, 10.0, 10.0)},
		{Rectangle(0.0, 0.0, 10.0, 10.0), Circle(10.0, 5.0, 4.0)},
		{Circle(0.0, 0.0, 5.0), Circle(4.0, 0.0, 5.0)},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			area := tt.a.Intersect(tt.b).Area()
			test.That(t, area <= math.Min(tt.a.Area(), tt.b.Area())+1e-6)
			test.That(t, 0.0 <= area+1e-6)
		})
	}
}

func TestSubtractRectangles(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	b := Rectangle(5.0, 5.0, 10.0, 10.0)

	r := a.Subtract(b)
	test.T(t, len(r.comps), 1)
	test.That(t, math.Abs(r.Area()-75.0) < 1e-6, "area", r.Area())
	test.That(t, r.Contains(Point{2.0, 2.0}, NonZero))
	test.That(t, !r.Contains(Point{7.0, 7.0}, NonZero))
}

func TestSubtractNested(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	b := Rectangle(2.0, 2.0, 2.0, 2.0)

	// the hole appears as a clockwise component
	r := a.Subtract(b)
	test.T(t, len(r.comps), 2)
	test.That(t, math.Abs(r.Area()-96.0) < 1e-6, "area", r.Area())
	test.That(t, !r.Contains(Point{3.0, 3.0}, NonZero))
	test.That(t, r.Contains(Point{8.0, 8.0}, NonZero))
}

func TestSubtractAll(t *testing.T) {
	a := Rectangle(2.0, 2.0, 2.0, 2.0)
	b := Rectangle(0.0, 0.0, 10.0, 10.0)
	test.That(t, math.Abs(a.Subtract(b).Area()) < 1e-6)
}

func TestBooleanCircles(t *testing.T) {
	a := Circle(0.0, 0.0, 1.0)
	b := Circle(1.0, 0.0, 1.0)

	// lens area of two unit circles at distance 1
	lens := 2.0*math.Acos(0.5) - 0.5*math.Sqrt(3.0)
	union := a.Union(b).Area()
	isect := a.Intersect(b).Area()

	test.That(t, math.Abs(union-(2.0*math.Pi-lens)) < 0.05, "union area", union)
	test.That(t, math.Abs(isect-lens) < 0.05, "intersection area", isect)
	test.That(t, math.Abs(union+isect-a.Area()-b.Area()) < 0.05)
}

func TestBooleanEmpty(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	empty := &Path{}

	test.That(t, math.Abs(a.Union(empty).Area()-100.0) < 1e-6)
	test.That(t, math.Abs(empty.Union(a).Area()-100.0) < 1e-6)
	test.That(t, a.Intersect(empty).Empty())
	test.That(t, math.Abs(a.Subtract(empty).Area()-100.0) < 1e-6)
	test.That(t, empty.Subtract(a).Empty())
	test.That(t, empty.RemoveCrossings().Empty())
}

func TestRemoveCrossings(t *testing.T) {
	// bowtie crossing itself at (1,1)
	p := MustParseSVGPath("M0 0L2 2L2 0L0 2z")

	r := p.RemoveCrossings()
	test.T(t, len(r.comps), 2)
	test.That(t, math.Abs(r.Area()-2.0) < 1e-6, "area", r.Area())
	test.That(t, r.Contains(Point{0.5, 1.0}, NonZero))
	test.That(t, r.Contains(Point{1.5, 1.0}, NonZero))
}

func TestRemoveCrossingsIdempotent(t *testing.T) {
	p := MustParseSVGPath("M0 0L2 2L2 0L0 2z")

	once := p.RemoveCrossings()
	twice := once.RemoveCrossings()
	test.T(t, len(twice.comps), len(once.comps))
	test.That(t, math.Abs(twice.Area()-once.Area()) < 1e-6)
}

func TestRemoveCrossingsCurved(t *testing.T) {
	// joints between consecutive cubics converge to parameters near 1 and 0
	// but are not crossings
	circle := Circle(0.0, 0.0, 10.0)
	test.T(t, len(selfPathIntersections(circle, DefaultTolerances)), 0)

	r := circle.RemoveCrossings()
	test.T(t, len(r.comps), 1)
	test.That(t, math.Abs(r.Area()-circle.Area()) < 1e-6, "area", r.Area())

	twice := r.RemoveCrossings()
	test.T(t, len(twice.comps), 1)
	test.That(t, math.Abs(twice.Area()-r.Area()) < 1e-6)
}

func TestRemoveCrossingsStar(t *testing.T) {
	// a pentagram resolves into its outer outline, dropping the chords
	// through the doubly wound core
	star := RegularStarPolygon(5, 2, 10.0, true)
	r := star.RemoveCrossings()
	test.T(t, len(r.comps), 1)
	test.That(t, r.Closed())
	test.That(t, 0.0 < r.Area())
	test.That(t, r.Area() < star.Area(), "area", r.Area(), "not below", star.Area())
	test.That(t, r.Contains(Point{0.0, 0.0}, NonZero))
	test.That(t, r.Contains(Point{0.0, 9.5}, NonZero))
}

func TestRemoveCrossingsPlain(t *testing.T) {
	// a path without crossings passes through unchanged in shape
	p := Rectangle(0.0, 0.0, 10.0, 10.0)
	r := p.RemoveCrossings()
	test.T(t, len(r.comps), 1)
	test.That(t, math.Abs(r.Area()-100.0) < 1e-6)
}

func TestBooleanTolerances(t *testing.T) {
	a := Rectangle(0.0, 0.0, 10.0, 10.0)
	b := Rectangle(5.0, 5.0, 10.0, 10.0)

	tol := *DefaultTolerances
	tol.Convergence = 1e-5
	r := BooleanOperation(a, b, OpUnion, &tol)
	test.That(t, math.Abs(r.Area()-175.0) < 1e-6)
}

func TestBooleanOpString(t *testing.T) {
	test.T(t, OpUnion.String(), "Union")
	test.T(t, OpIntersect.String(), "Intersect")
	test.T(t, OpSubtract.String(), "Subtract")
	test.T(t, OpRemoveCrossings.String(), "RemoveCrossings")
}
