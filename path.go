package canvas

import (
	"math"

	"github.com/gogpu/canvas/internal/raster"
	"github.com/gogpu/canvas/internal/stroke"
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current contour.
type Close struct{}

func (Close) isPathElement() {}

// Direction is the winding direction of a closed shape added to a path.
type Direction uint8

const (
	// DirectionCW winds clockwise on a y-down surface.
	DirectionCW Direction = iota
	// DirectionCCW winds counter-clockwise.
	DirectionCCW
)

// FillType selects which points are inside a path.
type FillType uint8

const (
	// FillTypeWinding fills points with a non-zero winding number.
	FillTypeWinding FillType = iota
	// FillTypeEvenOdd fills points with an odd winding number.
	FillTypeEvenOdd
	// FillTypeInverseWinding fills points outside the winding area.
	FillTypeInverseWinding
	// FillTypeInverseEvenOdd fills points outside the even-odd area.
	FillTypeInverseEvenOdd
)

// IsInverse reports whether the fill covers the outside of the path.
func (f FillType) IsInverse() bool {
	return f >= FillTypeInverseWinding
}

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

// defaultFlatness is the curve tolerance used outside a canvas.
const defaultFlatness = 0.25

// Path is a compound path made of contours, with a fill type.
//
// A path also tracks whether it is simple: built only from rectangles
// added by AddRect with one direction. A simple path keeps a Region equal
// to the union of its rectangles. The first other geometry operation, or
// a rectangle with the opposite direction, clears the flag for good; only
// Reset and Rewind restore it.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current contour
	current  Point // Current point
	fill     FillType

	complex bool // not a simple path
	dirSet  bool // dir holds the direction of the first rectangle
	dir     Direction
	region  *Region // union of the rectangles while simple
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// invalidate permanently drops the simple path state.
func (p *Path) invalidate() {
	p.complex = true
	p.region = nil
}

// ensureMove starts a contour at the current point when a segment is
// added without a preceding MoveTo, or right after a Close.
func (p *Path) ensureMove() {
	if n := len(p.elements); n == 0 {
		p.elements = append(p.elements, MoveTo{Point: p.current})
		p.start = p.current
	} else if _, closed := p.elements[n-1].(Close); closed {
		p.elements = append(p.elements, MoveTo{Point: p.start})
	}
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Point{x, y}
	if n := len(p.elements); n > 0 {
		if _, ok := p.elements[n-1].(MoveTo); ok {
			p.elements[n-1] = MoveTo{Point: pt}
			p.start, p.current = pt, pt
			return
		}
	}
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// RMoveTo starts a new contour relative to the current point.
func (p *Path) RMoveTo(dx, dy float64) {
	p.MoveTo(p.current.X+dx, p.current.Y+dy)
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.invalidate()
	p.lineTo(x, y)
}

func (p *Path) lineTo(x, y float64) {
	p.ensureMove()
	pt := Point{x, y}
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// RLineTo draws a line relative to the current point.
func (p *Path) RLineTo(dx, dy float64) {
	p.LineTo(p.current.X+dx, p.current.Y+dy)
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.invalidate()
	p.ensureMove()
	pt := Point{x, y}
	p.elements = append(p.elements, QuadTo{Control: Point{cx, cy}, Point: pt})
	p.current = pt
}

// RQuadTo draws a quadratic curve with points relative to the current point.
func (p *Path) RQuadTo(dcx, dcy, dx, dy float64) {
	c := p.current
	p.QuadTo(c.X+dcx, c.Y+dcy, c.X+dx, c.Y+dy)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.invalidate()
	p.cubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (p *Path) cubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ensureMove()
	pt := Point{x, y}
	p.elements = append(p.elements, CubicTo{
		Control1: Point{c1x, c1y},
		Control2: Point{c2x, c2y},
		Point:    pt,
	})
	p.current = pt
}

// RCubicTo draws a cubic curve with points relative to the current point.
func (p *Path) RCubicTo(dc1x, dc1y, dc2x, dc2y, dx, dy float64) {
	c := p.current
	p.CubicTo(c.X+dc1x, c.Y+dc1y, c.X+dc2x, c.Y+dc2y, c.X+dx, c.Y+dy)
}

// Close closes the current contour by drawing a line to its start point.
func (p *Path) Close() {
	n := len(p.elements)
	if n == 0 {
		return
	}
	if _, ok := p.elements[n-1].(Close); ok {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// SetLastPoint moves the last point of the path.
func (p *Path) SetLastPoint(x, y float64) {
	p.invalidate()
	pt := Point{x, y}
	n := len(p.elements)
	if n == 0 {
		p.MoveTo(x, y)
		return
	}
	switch e := p.elements[n-1].(type) {
	case MoveTo:
		p.elements[n-1] = MoveTo{Point: pt}
		p.start = pt
	case LineTo:
		p.elements[n-1] = LineTo{Point: pt}
	case QuadTo:
		p.elements[n-1] = QuadTo{Control: e.Control, Point: pt}
	case CubicTo:
		p.elements[n-1] = CubicTo{Control1: e.Control1, Control2: e.Control2, Point: pt}
	case Close:
		p.lineTo(x, y)
		return
	}
	p.current = pt
}

// AddRect adds a closed rectangle contour. While the path is simple the
// rectangle is merged into its region.
func (p *Path) AddRect(r Rect, dir Direction) {
	r = r.Sort()
	p.addRectContour(r, dir)

	if p.complex {
		return
	}
	if !p.dirSet {
		p.dir, p.dirSet = dir, true
	} else if dir != p.dir {
		p.invalidate()
		return
	}
	if p.region == nil {
		p.region = NewRegion()
	}
	p.region.OpRect(r, RegionOpUnion)
}

func (p *Path) addRectContour(r Rect, dir Direction) {
	p.MoveTo(r.Left, r.Top)
	if dir == DirectionCW {
		p.lineTo(r.Right, r.Top)
		p.lineTo(r.Right, r.Bottom)
		p.lineTo(r.Left, r.Bottom)
	} else {
		p.lineTo(r.Left, r.Bottom)
		p.lineTo(r.Right, r.Bottom)
		p.lineTo(r.Right, r.Top)
	}
	p.Close()
}

// AddOval adds a closed ellipse inscribed in r.
func (p *Path) AddOval(r Rect, dir Direction) {
	r = r.Sort()
	rx, ry := r.Width()/2, r.Height()/2
	p.AddRoundRect(r, []float64{rx, ry, rx, ry, rx, ry, rx, ry}, dir)
}

// AddCircle adds a closed circle.
func (p *Path) AddCircle(cx, cy, radius float64, dir Direction) {
	if radius <= 0 {
		return
	}
	p.AddOval(Rect{cx - radius, cy - radius, cx + radius, cy + radius}, dir)
}

// AddRoundRect adds a closed rounded rectangle with eight radii, see
// NewRoundRect. Degenerate rectangles add nothing.
func (p *Path) AddRoundRect(r Rect, radii []float64, dir Direction) error {
	rr, err := NewRoundRect(r, radii)
	if err != nil {
		return err
	}
	p.invalidate()
	rr.appendTo(p, dir)
	return nil
}

// AddRoundRectXY adds a closed rounded rectangle with equal corners.
func (p *Path) AddRoundRectXY(r Rect, rx, ry float64, dir Direction) {
	p.invalidate()
	NewRoundRectXY(r, rx, ry).appendTo(p, dir)
}

// AddArc adds an open arc of the ellipse inscribed in oval as a new
// contour. Angles are in degrees, clockwise from the positive x axis.
func (p *Path) AddArc(oval Rect, startAngle, sweepAngle float64) {
	p.ArcTo(oval, startAngle, sweepAngle, true)
}

// ArcTo appends an arc of the ellipse inscribed in oval. The arc start is
// connected to the current point with a line unless forceMoveTo is set or
// the path is empty.
func (p *Path) ArcTo(oval Rect, startAngle, sweepAngle float64, forceMoveTo bool) {
	p.invalidate()
	oval = oval.Sort()
	if oval.IsEmpty() {
		return
	}
	sweepAngle = math.Max(-360, math.Min(360, sweepAngle))
	cx, cy := oval.CenterX(), oval.CenterY()
	rx, ry := oval.Width()/2, oval.Height()/2
	a1 := startAngle * math.Pi / 180
	sx, sy := cx+rx*math.Cos(a1), cy+ry*math.Sin(a1)

	if forceMoveTo || len(p.elements) == 0 {
		p.MoveTo(sx, sy)
	} else {
		p.lineTo(sx, sy)
	}
	if sweepAngle == 0 {
		return
	}

	sweep := sweepAngle * math.Pi / 180
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	for i := range n {
		p.arcSegment(cx, cy, rx, ry, a1+float64(i)*step, a1+float64(i+1)*step)
	}
}

// arcSegment adds a single elliptical arc segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, rx, ry, a1, a2 float64) {
	alpha := 4.0 / 3.0 * math.Tan((a2-a1)/4)

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+rx*cos1, cy+ry*sin1
	x2, y2 := cx+rx*cos2, cy+ry*sin2

	p.cubicTo(
		x1-alpha*rx*sin1, y1+alpha*ry*cos1,
		x2+alpha*rx*sin2, y2-alpha*ry*cos2,
		x2, y2)
}

// AddPath appends the contours of src, transformed by m when m is non-nil.
func (p *Path) AddPath(src *Path, m *Matrix) {
	p.invalidate()
	t := Identity()
	if m != nil {
		t = *m
	}
	for _, elem := range src.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := t.TransformPoint(e.Point)
			p.elements = append(p.elements, MoveTo{Point: pt})
			p.start, p.current = pt, pt
		case LineTo:
			pt := t.TransformPoint(e.Point)
			p.elements = append(p.elements, LineTo{Point: pt})
			p.current = pt
		case QuadTo:
			pt := t.TransformPoint(e.Point)
			p.elements = append(p.elements, QuadTo{Control: t.TransformPoint(e.Control), Point: pt})
			p.current = pt
		case CubicTo:
			pt := t.TransformPoint(e.Point)
			p.elements = append(p.elements, CubicTo{
				Control1: t.TransformPoint(e.Control1),
				Control2: t.TransformPoint(e.Control2),
				Point:    pt,
			})
			p.current = pt
		case Close:
			p.elements = append(p.elements, Close{})
			p.current = p.start
		}
	}
}

// Transform applies m to every point of the path.
func (p *Path) Transform(m Matrix) {
	p.invalidate()
	for i, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			p.elements[i] = MoveTo{Point: m.TransformPoint(e.Point)}
		case LineTo:
			p.elements[i] = LineTo{Point: m.TransformPoint(e.Point)}
		case QuadTo:
			p.elements[i] = QuadTo{Control: m.TransformPoint(e.Control), Point: m.TransformPoint(e.Point)}
		case CubicTo:
			p.elements[i] = CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			}
		}
	}
	p.start = m.TransformPoint(p.start)
	p.current = m.TransformPoint(p.current)
}

// Offset translates the path.
func (p *Path) Offset(dx, dy float64) {
	p.Transform(Translate(dx, dy))
}

// Reset empties the path, restores the simple state and the default fill type.
func (p *Path) Reset() {
	p.Rewind()
	p.fill = FillTypeWinding
}

// Rewind empties the path and restores the simple state, keeping the fill
// type and the allocated storage.
func (p *Path) Rewind() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.complex = false
	p.dirSet = false
	p.region = nil
}

// Set replaces the contents of p with a copy of src.
func (p *Path) Set(src *Path) {
	p.elements = append(p.elements[:0], src.elements...)
	p.start, p.current, p.fill = src.start, src.current, src.fill
	p.complex, p.dirSet, p.dir = src.complex, src.dirSet, src.dir
	p.region = nil
	if src.region != nil {
		p.region = src.region.Clone()
	}
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.Set(p)
	return result
}

// FillType returns the fill type.
func (p *Path) FillType() FillType { return p.fill }

// SetFillType sets the fill type.
func (p *Path) SetFillType(f FillType) { p.fill = f }

// IsInverseFillType reports whether the path fills its outside.
func (p *Path) IsInverseFillType() bool { return p.fill.IsInverse() }

// ToggleInverseFillType switches between the inverse and normal fill types.
func (p *Path) ToggleInverseFillType() { p.fill ^= 2 }

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// IsSimplePath reports whether the path is a union of rectangles added
// with a single direction.
func (p *Path) IsSimplePath() bool {
	return !p.complex
}

// SimpleRegion returns the union of the rectangles of a simple path, or
// nil when the path is not simple. The union is the filled area only
// under the winding rule. The result must not be modified.
func (p *Path) SimpleRegion() *Region {
	if p.complex {
		return nil
	}
	if p.region == nil {
		return NewRegion()
	}
	return p.region
}

// fastRegion returns the simple region when it equals the filled area of
// the path. Only the winding rule fills the union of the rectangles.
func (p *Path) fastRegion() *Region {
	if p.fill != FillTypeWinding {
		return nil
	}
	return p.SimpleRegion()
}

// Bounds returns the bounds of all points, control points included.
func (p *Path) Bounds() Rect {
	first := true
	var b Rect
	add := func(pt Point) {
		if first {
			b = Rect{pt.X, pt.Y, pt.X, pt.Y}
			first = false
			return
		}
		b.Left = math.Min(b.Left, pt.X)
		b.Top = math.Min(b.Top, pt.Y)
		b.Right = math.Max(b.Right, pt.X)
		b.Bottom = math.Max(b.Bottom, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return b
}

// IsRect reports whether the path is a single axis-aligned rectangle
// contour and returns it.
func (p *Path) IsRect() (Rect, bool) {
	var corners []Point
	closed := false
	for i, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if i != 0 {
				return Rect{}, false
			}
			corners = append(corners, e.Point)
		case LineTo:
			if closed {
				return Rect{}, false
			}
			corners = append(corners, e.Point)
		case Close:
			closed = true
		default:
			return Rect{}, false
		}
	}
	if len(corners) == 5 && corners[4] == corners[0] {
		corners = corners[:4]
	}
	if len(corners) != 4 {
		return Rect{}, false
	}

	// Edges must alternate between horizontal and vertical.
	horizontal := corners[0].Y == corners[1].Y
	for i := range 4 {
		a, b := corners[i], corners[(i+1)%4]
		if horizontal && (a.Y != b.Y || a.X == b.X) {
			return Rect{}, false
		}
		if !horizontal && (a.X != b.X || a.Y == b.Y) {
			return Rect{}, false
		}
		horizontal = !horizontal
	}
	r := Rect{corners[0].X, corners[0].Y, corners[2].X, corners[2].Y}.Sort()
	return r, true
}

// Contour is one flattened contour.
type Contour struct {
	Points []Point
	Closed bool
}

// Flatten converts the path to polylines, approximating curves within
// tolerance. Contours with a single point are kept so that stroking can
// draw caps for them.
func (p *Path) Flatten(tolerance float64) []Contour {
	if tolerance <= 0 {
		tolerance = defaultFlatness
	}
	var out []Contour
	var cur []raster.Point
	flush := func(closed bool) {
		if len(cur) > 0 {
			pts := make([]Point, len(cur))
			for i, q := range cur {
				pts[i] = Point(q)
			}
			out = append(out, Contour{Points: pts, Closed: closed})
		}
		cur = nil
	}
	var last, start raster.Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			last = raster.Point(e.Point)
			start = last
			cur = append(cur, last)
		case LineTo:
			last = raster.Point(e.Point)
			cur = append(cur, last)
		case QuadTo:
			end := raster.Point(e.Point)
			cur = raster.FlattenQuad(cur, last, raster.Point(e.Control), end, tolerance)
			last = end
		case CubicTo:
			end := raster.Point(e.Point)
			cur = raster.FlattenCubic(cur, last, raster.Point(e.Control1), raster.Point(e.Control2), end, tolerance)
			last = end
		case Close:
			flush(true)
			last = start
		}
	}
	flush(false)
	return out
}

func toRasterContours(contours []Contour) []raster.Contour {
	out := make([]raster.Contour, 0, len(contours))
	for _, c := range contours {
		if len(c.Points) < 2 {
			continue
		}
		rc := make(raster.Contour, len(c.Points))
		for i, q := range c.Points {
			rc[i] = raster.Point(q)
		}
		out = append(out, rc)
	}
	return out
}

func toPolylines(contours []Contour) []stroke.Polyline {
	out := make([]stroke.Polyline, len(contours))
	for i, c := range contours {
		pts := make([]raster.Point, len(c.Points))
		for j, q := range c.Points {
			pts[j] = raster.Point(q)
		}
		out[i] = stroke.Polyline{Points: pts, Closed: c.Closed}
	}
	return out
}

func rasterRule(f FillType) raster.FillRule {
	if f == FillTypeEvenOdd || f == FillTypeInverseEvenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}
