package codec

import "math"

// Bezier utilities for outline conversion. TrueType outlines are quadratic,
// so cubic segments and arcs from SVG path data are reduced to quadratics
// by subdivision before quantization.

type point struct {
	x, y float64
}

func lerp(a, b point, t float64) point {
	return point{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t}
}

// cubic is one cubic bezier segment from p0 to p3.
type cubic struct {
	p0, p1, p2, p3 point
}

// split subdivides the cubic at t=0.5 using de Casteljau's algorithm.
func (c cubic) split() (cubic, cubic) {
	ab := lerp(c.p0, c.p1, 0.5)
	bc := lerp(c.p1, c.p2, 0.5)
	cd := lerp(c.p2, c.p3, 0.5)
	abc := lerp(ab, bc, 0.5)
	bcd := lerp(bc, cd, 0.5)
	mid := lerp(abc, bcd, 0.5)
	return cubic{c.p0, ab, abc, mid}, cubic{mid, bcd, cd, c.p3}
}

// quadControl returns the control point of the quadratic that best
// approximates the cubic: the average of the two control points raised to
// quadratic degree.
func (c cubic) quadControl() point {
	return point{
		x: (3*(c.p1.x+c.p2.x) - c.p0.x - c.p3.x) / 4,
		y: (3*(c.p1.y+c.p2.y) - c.p0.y - c.p3.y) / 4,
	}
}

// quadSeg is one quadratic segment: control point and end point. The start
// point is implicit in the preceding segment.
type quadSeg struct {
	ctrl, end point
}

// cubicToQuads approximates a cubic with four quadratics. Two levels of
// subdivision keep the approximation error far below one font unit at icon
// scale.
func cubicToQuads(c cubic) []quadSeg {
	l, r := c.split()
	ll, lr := l.split()
	rl, rr := r.split()
	quads := make([]quadSeg, 0, 4)
	for _, s := range []cubic{ll, lr, rl, rr} {
		quads = append(quads, quadSeg{ctrl: s.quadControl(), end: s.p3})
	}
	return quads
}

// arcToCubics converts an SVG elliptical arc to cubic segments, splitting
// the sweep into arcs of at most 90 degrees. Degenerate radii collapse to a
// straight line per the SVG specification.
func arcToCubics(from point, rx, ry, xRotDeg float64, largeArc, sweep bool, to point) []cubic {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 || (from.x == to.x && from.y == to.y) {
		return []cubic{lineAsCubic(from, to)}
	}

	phi := xRotDeg * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// Endpoint to center parameterization (SVG implementation notes F.6.5).
	dx := (from.x - to.x) / 2
	dy := (from.y - to.y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Scale radii up if the endpoints cannot be connected otherwise.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	var coef float64
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (from.x+to.x)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.y+to.y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	dTheta := theta2 - theta1
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	step := dTheta / float64(segments)

	pointAt := func(theta float64) point {
		x := rx * math.Cos(theta)
		y := ry * math.Sin(theta)
		return point{
			x: cosPhi*x - sinPhi*y + cx,
			y: sinPhi*x + cosPhi*y + cy,
		}
	}
	tangentAt := func(theta float64) point {
		x := -rx * math.Sin(theta)
		y := ry * math.Cos(theta)
		return point{
			x: cosPhi*x - sinPhi*y,
			y: sinPhi*x + cosPhi*y,
		}
	}

	cubics := make([]cubic, 0, segments)
	// Control distance for a cubic approximating a unit arc of the
	// segment's sweep.
	k := 4.0 / 3.0 * math.Tan(step/4)
	start := from
	for i := 0; i < segments; i++ {
		t0 := theta1 + float64(i)*step
		t1 := t0 + step
		end := to
		if i < segments-1 {
			end = pointAt(t1)
		}
		d0 := tangentAt(t0)
		d1 := tangentAt(t1)
		cubics = append(cubics, cubic{
			p0: start,
			p1: point{start.x + k*d0.x, start.y + k*d0.y},
			p2: point{end.x - k*d1.x, end.y - k*d1.y},
			p3: end,
		})
		start = end
	}
	return cubics
}

// lineAsCubic degrades a segment to a straight cubic, used when an arc is
// degenerate.
func lineAsCubic(from, to point) cubic {
	return cubic{
		p0: from,
		p1: lerp(from, to, 1.0/3.0),
		p2: lerp(from, to, 2.0/3.0),
		p3: to,
	}
}
