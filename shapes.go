package pathbool

import (
	"math"
)

// kappa is the control point distance for approximating a quarter circle by a
// cubic Bézier.
const kappa = 0.5522847498307933

// Rectangle returns a rectangle of width w and height h with its lower-left
// corner at (x,y), in counter clockwise direction.
func Rectangle(x, y, w, h float64) *Path {
	if Equal(w, 0.0) || Equal(h, 0.0) {
		return &Path{}
	}
	p := &Path{}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

// Circle returns a circle of radius r centered at (x,y), in counter
// clockwise direction, approximated by four cubic Béziers.
func Circle(x, y, r float64) *Path {
	return Ellipse(x, y, r, r)
}

// Ellipse returns an ellipse with radii rx and ry centered at (x,y), in
// counter clockwise direction, approximated by four cubic Béziers.
func Ellipse(x, y, rx, ry float64) *Path {
	if Equal(rx, 0.0) || Equal(ry, 0.0) {
		return &Path{}
	}
	dx, dy := kappa*rx, kappa*ry
	p := &Path{}
	p.MoveTo(x+rx, y)
	p.CubeTo(x+rx, y+dy, x+dx, y+ry, x, y+ry)
	p.CubeTo(x-dx, y+ry, x-rx, y+dy, x-rx, y)
	p.CubeTo(x-rx, y-dy, x-dx, y-ry, x, y-ry)
	p.CubeTo(x+dx, y-ry, x+rx, y-dy, x+rx, y)
	p.Close()
	return p
}

// RegularPolygon returns a regular polygon with radius r and n vertices,
// centered at the origin, in counter clockwise direction. The up boolean
// defines whether the first vertex points north.
func RegularPolygon(n int, r float64, up bool) *Path {
	return RegularStarPolygon(n, 1, r, up)
}

// RegularStarPolygon returns a regular star polygon with radius r, n
// vertices of density d, centered at the origin. For 1 < d the path
// self-intersects and can be resolved with RemoveCrossings. n must be 3 or
// more and n and d coprime for a star.
func RegularStarPolygon(n, d int, r float64, up bool) *Path {
	if n < 3 || d < 1 || n == d*2 || Equal(r, 0.0) {
		return &Path{}
	}

	dtheta := 2.0 * math.Pi / float64(n)
	theta0 := 0.5 * math.Pi
	if !up {
		theta0 += dtheta / 2.0
	}

	p := &Path{}
	for i := 0; i == 0 || i%n != 0; i += d {
		theta := theta0 + float64(i)*dtheta
		sintheta, costheta := math.Sincos(theta)
		if i == 0 {
			p.MoveTo(r*costheta, r*sintheta)
		} else {
			p.LineTo(r*costheta, r*sintheta)
		}
	}
	p.Close()
	return p
}
