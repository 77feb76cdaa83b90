package pathbool

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	return f, i + n
}

// ParseSVGPath parses an SVG path data string. Elliptical arcs are converted
// to cubic Béziers.
func ParseSVGPath(sPath string) (*Path, error) {
	path := []byte(sPath)
	p := &Path{}

	var prevCmd byte
	cpx, cpy := 0.0, 0.0 // previous control point for S/s and T/t

	i := 0
	for i < len(path) {
		i += skipCommaWhitespace(path[i:])
		if i == len(path) {
			break
		}
		cmd := prevCmd
		if 'A' <= path[i] {
			cmd = path[i]
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("bad path: path must start with command")
		}
		x, y := p.Pos().X, p.Pos().Y
		switch cmd {
		case 'M', 'm':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: sets of 2 numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 'm' {
				a += x
				b += y
			}
			p.MoveTo(a, b)
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: sets of 2 numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 'l' {
				a += x
				b += y
			}
			p.LineTo(a, b)
		case 'H', 'h':
			a, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 'h' {
				a += x
			}
			p.LineTo(a, y)
		case 'V', 'v':
			b, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 'v' {
				b += y
			}
			p.LineTo(x, b)
		case 'C', 'c':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			e, n := parseNum(path[i:])
			i += n
			f, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: sets of 6 numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 'c' {
				a += x
				b += y
				c += x
				d += y
				e += x
				f += y
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'S', 's':
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			e, n := parseNum(path[i:])
			i += n
			f, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: sets of 4 numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 's' {
				c += x
				d += y
				e += x
				f += y
			}
			a, b := x, y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				a, b = 2.0*x-cpx, 2.0*y-cpy
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'Q', 'q':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: sets of 4 numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 'q' {
				a += x
				b += y
				c += x
				d += y
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'T', 't':
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: sets of 2 numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 't' {
				c += x
				d += y
			}
			a, b := x, y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				a, b = 2.0*x-cpx, 2.0*y-cpy
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'A', 'a':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			e, n := parseNum(path[i:])
			i += n
			f, n := parseNum(path[i:])
			i += n
			g, n := parseNum(path[i:])
			i += n
			if n == 0 {
				return nil, fmt.Errorf("bad path: sets of 7 numbers should follow command '%c' at position %d", cmd, i)
			}
			if cmd == 'a' {
				f += x
				g += y
			}
			large := math.Abs(d-1.0) < Epsilon
			sweep := math.Abs(e-1.0) < Epsilon
			p.ArcTo(a, b, c, large, sweep, f, g)
		default:
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, i)
		}
		prevCmd = cmd
	}
	return p, nil
}

// MustParseSVGPath parses an SVG path data string and panics on a bad path.
func MustParseSVGPath(sPath string) *Path {
	p, err := ParseSVGPath(sPath)
	if err != nil {
		panic(err)
	}
	return p
}

////////////////////////////////////////////////////////////////

// ArcTo adds an elliptical arc with radii rx and ry, with rot the counter
// clockwise rotation in degrees, large and sweep as the arc flags of the SVG
// arc specification, and (x,y) the end position of the pen. The arc is
// converted to cubic Béziers of at most 90 degrees each.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	start := p.Pos()
	end := Point{x, y}
	if start.Equals(end) {
		return
	}

	rx = math.Abs(rx)
	ry = math.Abs(ry)
	if Equal(rx, 0.0) || Equal(ry, 0.0) {
		p.LineTo(x, y)
		return
	}

	cx, cy, theta0, theta1 := arcToCenter(start.X, start.Y, rx, ry, rot, large, sweep, end.X, end.Y)
	phi := rot * math.Pi / 180.0

	// cut the sweep into spans of at most 90 degrees
	n := int(math.Ceil(math.Abs(theta1-theta0) / (0.5 * math.Pi)))
	if n == 0 {
		p.LineTo(x, y)
		return
	}
	dtheta := (theta1 - theta0) / float64(n)
	k := 4.0 / 3.0 * math.Tan(dtheta/4.0)
	for i := 1; i <= n; i++ {
		ta := theta0 + float64(i-1)*dtheta
		tb := theta0 + float64(i)*dtheta
		pa := ellipsePos(rx, ry, phi, cx, cy, ta)
		pb := ellipsePos(rx, ry, phi, cx, cy, tb)
		da := ellipseDeriv(rx, ry, phi, ta)
		db := ellipseDeriv(rx, ry, phi, tb)
		cp1 := pa.Add(da.Mul(k))
		cp2 := pb.Sub(db.Mul(k))
		if i == n {
			pb = end // avoid accumulating rounding error at the joint
		}
		p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, pb.X, pb.Y)
	}
}

// arcToCenter changes between the SVG arc format to the center and angles
// format, with the angles in radians.
// see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func arcToCenter(x1, y1, rx, ry, rot float64, large, sweep bool, x2, y2 float64) (float64, float64, float64, float64) {
	if x1 == x2 && y1 == y2 {
		return x1, y1, 0.0, 0.0
	}

	phi := rot * math.Pi / 180.0
	sinphi, cosphi := math.Sincos(phi)
	x1p := cosphi*(x1-x2)/2.0 + sinphi*(y1-y2)/2.0
	y1p := -sinphi*(x1-x2)/2.0 + cosphi*(y1-y2)/2.0

	// scale up the radii when they cannot span the chord
	radiiCheck := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if 1.0 < radiiCheck {
		rx *= math.Sqrt(radiiCheck)
		ry *= math.Sqrt(radiiCheck)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0.0 {
		sq = 0.0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cosphi*cxp - sinphi*cyp + (x1+x2)/2.0
	cy := sinphi*cxp + cosphi*cyp + (y1+y2)/2.0

	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := -(x1p + cxp) / rx
	vy := -(y1p + cyp) / ry

	theta := math.Acos(ux / math.Sqrt(ux*ux+uy*uy))
	if uy < 0.0 {
		theta = -theta
	}

	delta := math.Acos((ux*vx + uy*vy) / math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy)))
	if ux*vy-uy*vx < 0.0 {
		delta = -delta
	}
	if !sweep && 0.0 < delta {
		delta -= 2.0 * math.Pi
	} else if sweep && delta < 0.0 {
		delta += 2.0 * math.Pi
	}
	return cx, cy, theta, theta + delta
}

func ellipsePos(rx, ry, phi, cx, cy, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	x := cx + rx*costheta*cosphi - ry*sintheta*sinphi
	y := cy + rx*costheta*sinphi + ry*sintheta*cosphi
	return Point{x, y}
}

func ellipseDeriv(rx, ry, phi, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	dx := -rx*sintheta*cosphi - ry*costheta*sinphi
	dy := -rx*sintheta*sinphi + ry*costheta*cosphi
	return Point{dx, dy}
}
