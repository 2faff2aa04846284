package raster

import "math"

// maxDepth bounds curve subdivision so NaN or huge coordinates terminate.
const maxDepth = 16

// Point is a 2D point in device or user space.
type Point struct {
	X, Y float64
}

// Lerp performs linear interpolation between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func (p Point) sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) length() float64 {
	return math.Hypot(p.X, p.Y)
}

// FlattenQuad appends the line segment end points approximating the
// quadratic Bezier p0-p1-p2 to dst. p0 itself is not appended.
func FlattenQuad(dst []Point, p0, p1, p2 Point, tolerance float64) []Point {
	return flattenQuadRec(dst, p0, p1, p2, tolerance, 0)
}

func flattenQuadRec(dst []Point, p0, p1, p2 Point, tolerance float64, depth int) []Point {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		return append(dst, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	dst = flattenQuadRec(dst, p0, q0, q2, tolerance, depth+1)
	return flattenQuadRec(dst, q2, q1, p2, tolerance, depth+1)
}

// FlattenCubic appends the line segment end points approximating the cubic
// Bezier p0-p1-p2-p3 to dst. p0 itself is not appended.
func FlattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	return flattenCubicRec(dst, p0, p1, p2, p3, tolerance, 0)
}

func flattenCubicRec(dst []Point, p0, p1, p2, p3 Point, tolerance float64, depth int) []Point {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || dist < tolerance {
		return append(dst, p3)
	}

	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	dst = flattenCubicRec(dst, p0, q0, r0, s, tolerance, depth+1)
	return flattenCubicRec(dst, s, r1, q2, p3, tolerance, depth+1)
}

// distanceToLine returns the distance from p to the segment a-b.
func distanceToLine(p, a, b Point) float64 {
	ab := b.sub(a)
	abLen := ab.length()
	if abLen < 1e-10 {
		return p.sub(a).length()
	}
	ap := p.sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / (abLen * abLen)
	switch {
	case t < 0:
		return p.sub(a).length()
	case t > 1:
		return p.sub(b).length()
	}
	return p.sub(a.Lerp(b, t)).length()
}
