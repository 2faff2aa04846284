package stroke

import (
	"math"

	"github.com/gogpu/canvas/internal/raster"
)

// Cap specifies the shape of open polyline endpoints.
type Cap uint8

const (
	// CapButt ends the stroke flush with the end point.
	CapButt Cap = iota
	// CapRound adds a half disc at each end point.
	CapRound
	// CapSquare extends the stroke by half its width.
	CapSquare
)

// Join specifies the shape at the vertices of a polyline.
type Join uint8

const (
	// JoinMiter extends the outer edges to meet at a point.
	JoinMiter Join = iota
	// JoinRound adds a disc at each vertex.
	JoinRound
	// JoinBevel connects the outer edges with a straight line.
	JoinBevel
)

// Style describes how a polyline is stroked.
type Style struct {
	Width      float64 // 0 means a one unit hairline
	Cap        Cap
	Join       Join
	MiterLimit float64
	Tolerance  float64 // maximum deviation for round caps and joins
}

// Polyline is a sequence of points, optionally closed.
type Polyline struct {
	Points []raster.Point
	Closed bool
}

// vec2 is a 2D direction.
type vec2 struct {
	X, Y float64
}

func (v vec2) scale(s float64) vec2 { return vec2{v.X * s, v.Y * s} }
func (v vec2) add(w vec2) vec2      { return vec2{v.X + w.X, v.Y + w.Y} }
func (v vec2) dot(w vec2) float64   { return v.X*w.X + v.Y*w.Y }
func (v vec2) cross(w vec2) float64 { return v.X*w.Y - v.Y*w.X }
func (v vec2) perp() vec2           { return vec2{-v.Y, v.X} }
func (v vec2) length() float64      { return math.Hypot(v.X, v.Y) }
func offset(p raster.Point, v vec2) raster.Point {
	return raster.Point{X: p.X + v.X, Y: p.Y + v.Y}
}

func direction(a, b raster.Point) vec2 {
	d := vec2{b.X - a.X, b.Y - a.Y}
	l := d.length()
	if l < 1e-12 {
		return vec2{}
	}
	return d.scale(1 / l)
}

// Expand returns polygons whose nonzero union covers the stroke of lines.
func Expand(lines []Polyline, style Style) []raster.Contour {
	e := expander{style: style, hw: style.Width / 2}
	if e.hw <= 0 {
		e.hw = 0.5
	}
	if e.style.MiterLimit < 1 {
		e.style.MiterLimit = 4
	}
	if e.style.Tolerance <= 0 {
		e.style.Tolerance = 0.25
	}
	for _, l := range lines {
		e.expand(l)
	}
	return e.out
}

type expander struct {
	style Style
	hw    float64
	out   []raster.Contour
}

func (e *expander) emit(c raster.Contour) {
	if len(c) < 3 {
		return
	}
	if signedArea(c) < 0 {
		for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
			c[i], c[j] = c[j], c[i]
		}
	}
	e.out = append(e.out, c)
}

func (e *expander) expand(l Polyline) {
	pts := dedupe(l.Points)
	if l.Closed && len(pts) > 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	switch {
	case len(pts) == 0:
		return
	case len(pts) == 1:
		e.dot(pts[0])
		return
	}

	n := len(pts)
	segments := n - 1
	if l.Closed {
		segments = n
	}
	for i := range segments {
		e.segment(pts[i], pts[(i+1)%n])
	}

	if l.Closed {
		for i := range n {
			e.join(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i < n-1; i++ {
		e.join(pts[i-1], pts[i], pts[i+1])
	}
	e.endCap(pts[0], direction(pts[1], pts[0]))
	e.endCap(pts[n-1], direction(pts[n-2], pts[n-1]))
}

// dot strokes a zero length polyline. Only round and square caps are visible.
func (e *expander) dot(p raster.Point) {
	switch e.style.Cap {
	case CapRound:
		e.emit(e.circle(p))
	case CapSquare:
		hw := e.hw
		e.emit(raster.Contour{
			{X: p.X - hw, Y: p.Y - hw}, {X: p.X + hw, Y: p.Y - hw},
			{X: p.X + hw, Y: p.Y + hw}, {X: p.X - hw, Y: p.Y + hw},
		})
	}
}

func (e *expander) segment(a, b raster.Point) {
	n := direction(a, b).perp().scale(e.hw)
	e.emit(raster.Contour{offset(a, n), offset(b, n), offset(b, n.scale(-1)), offset(a, n.scale(-1))})
}

func (e *expander) join(prev, p, next raster.Point) {
	d0 := direction(prev, p)
	d1 := direction(p, next)
	cross := d0.cross(d1)
	if math.Abs(cross) < 1e-9 && d0.dot(d1) > 0 {
		return
	}

	if e.style.Join == JoinRound {
		e.emit(e.circle(p))
		return
	}

	// The gap opens on the side away from the turn.
	side := -1.0
	if cross < 0 {
		side = 1
	}
	o0 := d0.perp().scale(e.hw * side)
	o1 := d1.perp().scale(e.hw * side)

	if e.style.Join == JoinMiter {
		cosHalf := math.Sqrt((1 + d0.dot(d1)) / 2)
		if cosHalf > 1e-9 && 1/cosHalf <= e.style.MiterLimit {
			bisector := o0.add(o1)
			if l := bisector.length(); l > 1e-12 {
				tip := offset(p, bisector.scale(e.hw/(cosHalf*l)))
				e.emit(raster.Contour{p, offset(p, o0), tip, offset(p, o1)})
				return
			}
		}
	}
	e.emit(raster.Contour{p, offset(p, o0), offset(p, o1)})
}

// endCap adds a cap at p, where d points outward from the polyline.
func (e *expander) endCap(p raster.Point, d vec2) {
	switch e.style.Cap {
	case CapRound:
		e.emit(e.circle(p))
	case CapSquare:
		n := d.perp().scale(e.hw)
		ext := d.scale(e.hw)
		e.emit(raster.Contour{
			offset(p, n), offset(offset(p, n), ext),
			offset(offset(p, n.scale(-1)), ext), offset(p, n.scale(-1)),
		})
	}
}

func (e *expander) circle(c raster.Point) raster.Contour {
	return Circle(c, e.hw, e.style.Tolerance)
}

// Circle approximates a circle by a polygon within tolerance.
func Circle(c raster.Point, r, tolerance float64) raster.Contour {
	n := 8
	if r > tolerance {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-tolerance/r))))
	}
	n = min(n, 256)
	out := make(raster.Contour, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = raster.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return out
}

func dedupe(pts []raster.Point) []raster.Point {
	out := make([]raster.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

func signedArea(c raster.Contour) float64 {
	var a float64
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}
