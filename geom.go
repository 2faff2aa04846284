package canvas

import (
	"image"
	"math"
)

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. It is empty when Left >= Right or
// Top >= Bottom. Contains treats the right and bottom edges as outside.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectXYWH returns the rectangle with origin (x, y) and the given size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// rectFromImage converts an integer rectangle.
func rectFromImage(r image.Rectangle) Rect {
	return Rect{float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return r.Left < r.Right && r.Top < r.Bottom &&
		x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// ContainsRect reports whether o is non-empty and lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return !r.IsEmpty() && !o.IsEmpty() &&
		r.Left <= o.Left && r.Top <= o.Top && r.Right >= o.Right && r.Bottom >= o.Bottom
}

// Intersects reports whether r and o share a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Intersect returns the common area of r and o. ok is false when they do
// not intersect, in which case the zero Rect is returned.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// Union returns the smallest rectangle containing r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case o.IsEmpty():
		return r
	case r.IsEmpty():
		return o
	}
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

// Inset returns r shrunk by dx on the left and right and dy on the top and
// bottom. Negative values grow the rectangle.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right - dx, r.Bottom - dy}
}

// Sort returns r with Left <= Right and Top <= Bottom.
func (r Rect) Sort() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}
