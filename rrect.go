package canvas

import (
	"fmt"
	"math"
)

// Corner indices into RoundRect radii pairs, clockwise from upper-left.
const (
	cornerUpperLeft = iota
	cornerUpperRight
	cornerLowerRight
	cornerLowerLeft
)

// RoundRect is a rectangle whose four corners are quarter ellipses with
// independent radii.
type RoundRect struct {
	rect  Rect
	radii [8]float64 // x, y per corner: upper-left, upper-right, lower-right, lower-left
}

// NewRoundRect builds a rounded rectangle from eight radii: an x, y pair
// for each corner clockwise from the upper-left. Negative radii count as
// zero. When the radii on one side add up to more than that side, all
// radii are scaled down by the same factor.
func NewRoundRect(r Rect, radii []float64) (RoundRect, error) {
	if len(radii) != 8 {
		return RoundRect{}, fmt.Errorf("%w: round rect needs 8 radii, got %d", ErrInvalidArgument, len(radii))
	}
	rr := RoundRect{rect: r.Sort()}
	for i, v := range radii {
		rr.radii[i] = math.Max(v, 0)
	}
	rr.scaleRadii()
	return rr, nil
}

// NewRoundRectXY builds a rounded rectangle with the same radii on every corner.
func NewRoundRectXY(r Rect, rx, ry float64) RoundRect {
	rr, _ := NewRoundRect(r, []float64{rx, ry, rx, ry, rx, ry, rx, ry})
	return rr
}

func (rr *RoundRect) scaleRadii() {
	if rr.rect.IsEmpty() {
		rr.radii = [8]float64{}
		return
	}
	w, h := rr.rect.Width(), rr.rect.Height()
	scale := 1.0
	limit := func(sum, side float64) {
		if sum > side {
			scale = math.Min(scale, side/sum)
		}
	}
	r := rr.radii
	limit(r[0]+r[2], w) // top
	limit(r[6]+r[4], w) // bottom
	limit(r[1]+r[7], h) // left
	limit(r[3]+r[5], h) // right
	if scale < 1 {
		for i := range rr.radii {
			rr.radii[i] *= scale
		}
	}
}

// Rect returns the bounding rectangle.
func (rr RoundRect) Rect() Rect { return rr.rect }

// Radii returns the eight radii after scaling.
func (rr RoundRect) Radii() [8]float64 { return rr.radii }

// IsEmpty reports whether the bounding rectangle is empty.
func (rr RoundRect) IsEmpty() bool { return rr.rect.IsEmpty() }

// corner returns the radii and ellipse center of corner i.
func (rr RoundRect) corner(i int) (rx, ry, cx, cy float64) {
	rx, ry = rr.radii[2*i], rr.radii[2*i+1]
	r := rr.rect
	switch i {
	case cornerUpperLeft:
		return rx, ry, r.Left + rx, r.Top + ry
	case cornerUpperRight:
		return rx, ry, r.Right - rx, r.Top + ry
	case cornerLowerRight:
		return rx, ry, r.Right - rx, r.Bottom - ry
	default:
		return rx, ry, r.Left + rx, r.Bottom - ry
	}
}

// cornerBox returns the rectangle a corner's ellipse quadrant occupies.
func (rr RoundRect) cornerBox(i int) Rect {
	_, _, cx, cy := rr.corner(i)
	r := rr.rect
	switch i {
	case cornerUpperLeft:
		return Rect{r.Left, r.Top, cx, cy}
	case cornerUpperRight:
		return Rect{cx, r.Top, r.Right, cy}
	case cornerLowerRight:
		return Rect{cx, cy, r.Right, r.Bottom}
	default:
		return Rect{r.Left, cy, cx, r.Bottom}
	}
}

// inEllipse reports whether the offset (x, y) from an ellipse center lies
// within the ellipse with radii w and h: x²h² + y²w² <= w²h².
func inEllipse(x, y, w, h float64) bool {
	return x*x*h*h+y*y*w*w <= w*w*h*h
}

// Contains reports whether (x, y) lies inside the rounded rectangle. The
// right and bottom edges are outside, as for Rect.
func (rr RoundRect) Contains(x, y float64) bool {
	if !rr.rect.Contains(x, y) {
		return false
	}
	for i := range 4 {
		if !rr.cornerBox(i).Contains(x, y) {
			continue
		}
		rx, ry, cx, cy := rr.corner(i)
		return inEllipse(x-cx, y-cy, rx, ry)
	}
	return true
}

// zone classifies a coordinate against one axis of a rounded rectangle.
type zone uint8

const (
	zoneCloseOutside zone = iota // before the near edge
	zoneCloseInside              // within the near corners
	zoneMiddle                   // between the corners
	zoneFarInside                // within the far corners
	zoneFarOutside               // past the far edge
)

func classify(v, lo, hi, loArc, hiArc float64) zone {
	switch {
	case v < lo:
		return zoneCloseOutside
	case v < lo+loArc:
		return zoneCloseInside
	case v < hi-hiArc:
		return zoneMiddle
	case v < hi:
		return zoneFarInside
	}
	return zoneFarOutside
}

// Intersects reports whether r overlaps the rounded rectangle with
// positive area.
func (rr RoundRect) Intersects(r Rect) bool {
	r = r.Sort()
	if rr.IsEmpty() || r.IsEmpty() || !rr.rect.Intersects(r) {
		return false
	}

	b := rr.rect
	left := math.Max(rr.radii[0], rr.radii[6])
	right := math.Max(rr.radii[2], rr.radii[4])
	top := math.Max(rr.radii[1], rr.radii[3])
	bottom := math.Max(rr.radii[5], rr.radii[7])

	// Accept through the full-height column or full-width row between the
	// corners.
	if b.Left+left < b.Right-right {
		x0 := classify(r.Left, b.Left, b.Right, left, right)
		x1 := classify(r.Right, b.Left, b.Right, left, right)
		if x0 == zoneMiddle || (x1 == zoneMiddle && r.Right > b.Left+left) ||
			(x0 < zoneMiddle && x1 > zoneMiddle) {
			return true
		}
	}
	if b.Top+top < b.Bottom-bottom {
		y0 := classify(r.Top, b.Top, b.Bottom, top, bottom)
		y1 := classify(r.Bottom, b.Top, b.Bottom, top, bottom)
		if y0 == zoneMiddle || (y1 == zoneMiddle && r.Bottom > b.Top+top) ||
			(y0 < zoneMiddle && y1 > zoneMiddle) {
			return true
		}
	}

	// Any overlap outside the corner boxes is inside the shape.
	rest := RegionFromRect(r)
	rest.OpRect(b, RegionOpIntersect)
	for i := range 4 {
		rest.OpRect(rr.cornerBox(i), RegionOpDifference)
	}
	if !rest.IsEmpty() {
		return true
	}

	// Otherwise test the point of each overlapped corner box nearest to
	// that corner's ellipse center.
	for i := range 4 {
		q, ok := r.Intersect(rr.cornerBox(i))
		if !ok {
			continue
		}
		rx, ry, cx, cy := rr.corner(i)
		nx := math.Max(q.Left, math.Min(cx, q.Right))
		ny := math.Max(q.Top, math.Min(cy, q.Bottom))
		dx, dy := nx-cx, ny-cy
		if dx*dx*ry*ry+dy*dy*rx*rx < rx*rx*ry*ry {
			return true
		}
	}
	return false
}

// Path returns the outline as a closed clockwise contour. Each corner is a
// single cubic arc; degenerate rectangles produce an empty path.
func (rr RoundRect) Path() *Path {
	p := NewPath()
	p.invalidate()
	rr.appendTo(p, DirectionCW)
	return p
}

// appendTo adds the outline to p without touching its simple state.
func (rr RoundRect) appendTo(p *Path, dir Direction) {
	if rr.IsEmpty() {
		return
	}
	r := rr.rect
	ulx, uly := rr.radii[0], rr.radii[1]
	urx, ury := rr.radii[2], rr.radii[3]
	lrx, lry := rr.radii[4], rr.radii[5]
	llx, lly := rr.radii[6], rr.radii[7]

	if dir == DirectionCW {
		p.MoveTo(r.Left+ulx, r.Top)
		p.lineTo(r.Right-urx, r.Top)
		p.cubicTo(r.Right-urx+kappa*urx, r.Top, r.Right, r.Top+ury-kappa*ury, r.Right, r.Top+ury)
		p.lineTo(r.Right, r.Bottom-lry)
		p.cubicTo(r.Right, r.Bottom-lry+kappa*lry, r.Right-lrx+kappa*lrx, r.Bottom, r.Right-lrx, r.Bottom)
		p.lineTo(r.Left+llx, r.Bottom)
		p.cubicTo(r.Left+llx-kappa*llx, r.Bottom, r.Left, r.Bottom-lly+kappa*lly, r.Left, r.Bottom-lly)
		p.lineTo(r.Left, r.Top+uly)
		p.cubicTo(r.Left, r.Top+uly-kappa*uly, r.Left+ulx-kappa*ulx, r.Top, r.Left+ulx, r.Top)
	} else {
		p.MoveTo(r.Left+ulx, r.Top)
		p.cubicTo(r.Left+ulx-kappa*ulx, r.Top, r.Left, r.Top+uly-kappa*uly, r.Left, r.Top+uly)
		p.lineTo(r.Left, r.Bottom-lly)
		p.cubicTo(r.Left, r.Bottom-lly+kappa*lly, r.Left+llx-kappa*llx, r.Bottom, r.Left+llx, r.Bottom)
		p.lineTo(r.Right-lrx, r.Bottom)
		p.cubicTo(r.Right-lrx+kappa*lrx, r.Bottom, r.Right, r.Bottom-lry+kappa*lry, r.Right, r.Bottom-lry)
		p.lineTo(r.Right, r.Top+ury)
		p.cubicTo(r.Right, r.Top+ury-kappa*ury, r.Right-urx+kappa*urx, r.Top, r.Right-urx, r.Top)
	}
	p.Close()
}
