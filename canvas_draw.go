package canvas

import (
	"fmt"
	"image"
)

// prepare checks that the canvas can draw and returns the paint to draw
// with, after the draw filter has adjusted a private copy.
func (c *Canvas) prepare(p *Paint) (*Paint, error) {
	switch {
	case c.disposed:
		return nil, ErrDisposed
	case c.bitmap == nil:
		return nil, ErrNotBound
	case p == nil:
		return nil, fmt.Errorf("%w: nil paint", ErrInvalidArgument)
	}
	q := p.Clone()
	if c.filter != nil {
		c.filter.Filter(q)
	}
	return q, nil
}

// prepareOptional is prepare for draws whose paint may be nil.
func (c *Canvas) prepareOptional(p *Paint) (*Paint, error) {
	if p == nil {
		p = NewPaint()
	}
	return c.prepare(p)
}

// DrawColor fills the clip with color using mode.
func (c *Canvas) DrawColor(color uint32, mode BlendMode) error {
	p := NewPaint()
	p.Color = color
	p.BlendMode = mode
	return c.DrawPaint(p)
}

// DrawARGB fills the clip with the given color using SrcOver.
func (c *Canvas) DrawARGB(a, r, g, b int) error {
	return c.DrawColor(ARGB(a, r, g, b), BlendSrcOver)
}

// DrawRGB fills the clip with an opaque color using SrcOver.
func (c *Canvas) DrawRGB(r, g, b int) error {
	return c.DrawColor(RGB(r, g, b), BlendSrcOver)
}

// DrawPaint fills the whole clip with p, ignoring its style.
func (c *Canvas) DrawPaint(p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	src, alpha, ok := paintSource(p, c.top().matrix)
	if !ok {
		return nil
	}
	cov := image.NewAlpha(c.drawBounds())
	for i := range cov.Pix {
		cov.Pix[i] = 0xff
	}
	return c.blit(cov, src, alpha, p.BlendMode, p.ColorFilter)
}

// DrawPoint draws a single point, see DrawPoints.
func (c *Canvas) DrawPoint(x, y float64, p *Paint) error {
	return c.DrawPoints([]float64{x, y}, 0, 2, p)
}

// DrawPoints draws count/2 points from pts[offset:], stored as x, y
// pairs. Each point is a square the size of the stroke width, or a circle
// with a round cap. A trailing odd value is ignored.
func (c *Canvas) DrawPoints(pts []float64, offset, count int, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	if err := checkRange("pts", offset, count, len(pts)); err != nil {
		return err
	}
	count &^= 1
	if count == 0 {
		return nil
	}
	size := p.StrokeWidth
	if size <= 0 {
		size = 1 / max(c.top().matrix.ScaleFactor(), 1e-6)
	}
	half := size / 2
	path := NewPath()
	for i := offset; i < offset+count; i += 2 {
		x, y := pts[i], pts[i+1]
		if p.StrokeCap == CapRound {
			path.AddCircle(x, y, half, DirectionCW)
		} else {
			path.AddRect(Rect{x - half, y - half, x + half, y + half}, DirectionCW)
		}
	}
	return c.drawPath(path, p, StyleFill)
}

// DrawLine strokes the segment from (x0, y0) to (x1, y1) regardless of
// the paint style.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, p *Paint) error {
	return c.DrawLines([]float64{x0, y0, x1, y1}, 0, 4, p)
}

// DrawLines strokes count/4 independent segments from pts[offset:],
// stored as x0, y0, x1, y1 quadruples. Values past the last full
// quadruple are ignored.
func (c *Canvas) DrawLines(pts []float64, offset, count int, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	if err := checkRange("pts", offset, count, len(pts)); err != nil {
		return err
	}
	count &^= 3
	if count == 0 {
		return nil
	}
	path := NewPath()
	for i := offset; i < offset+count; i += 4 {
		path.MoveTo(pts[i], pts[i+1])
		path.LineTo(pts[i+2], pts[i+3])
	}
	return c.drawPath(path, p, StyleStroke)
}

// DrawRect draws r with the paint style.
func (c *Canvas) DrawRect(r Rect, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	path := NewPath()
	path.AddRect(r, DirectionCW)
	return c.drawPath(path, p, p.Style)
}

// DrawOval draws the ellipse inscribed in r.
func (c *Canvas) DrawOval(r Rect, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	path := NewPath()
	path.AddOval(r, DirectionCW)
	return c.drawPath(path, p, p.Style)
}

// DrawCircle draws a circle. A non-positive radius draws nothing.
func (c *Canvas) DrawCircle(cx, cy, radius float64, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	if radius <= 0 {
		return nil
	}
	path := NewPath()
	path.AddCircle(cx, cy, radius, DirectionCW)
	return c.drawPath(path, p, p.Style)
}

// DrawArc draws an arc of the ellipse inscribed in oval. Angles are in
// degrees. With useCenter the arc is closed through the center, forming a
// wedge. Filled arcs are always closed.
func (c *Canvas) DrawArc(oval Rect, startAngle, sweepAngle float64, useCenter bool, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	oval = oval.Sort()
	if oval.IsEmpty() || sweepAngle == 0 {
		return nil
	}
	path := NewPath()
	if useCenter {
		path.MoveTo(oval.CenterX(), oval.CenterY())
		path.ArcTo(oval, startAngle, sweepAngle, false)
		path.Close()
	} else {
		path.AddArc(oval, startAngle, sweepAngle)
		if p.Style != StyleStroke {
			path.Close()
		}
	}
	return c.drawPath(path, p, p.Style)
}

// DrawRoundRect draws r with equal elliptical corners.
func (c *Canvas) DrawRoundRect(r Rect, rx, ry float64, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	return c.drawPath(NewRoundRectXY(r, rx, ry).Path(), p, p.Style)
}

// DrawRoundRectRadii draws r with eight corner radii, see NewRoundRect.
func (c *Canvas) DrawRoundRectRadii(r Rect, radii []float64, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	rr, err := NewRoundRect(r, radii)
	if err != nil {
		return err
	}
	return c.drawPath(rr.Path(), p, p.Style)
}

// DrawDoubleRoundRect draws the area between two rounded rectangles.
// Nothing is drawn unless inner lies inside outer.
func (c *Canvas) DrawDoubleRoundRect(outer Rect, outerRadii []float64, inner Rect, innerRadii []float64, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	o, err := NewRoundRect(outer, outerRadii)
	if err != nil {
		return err
	}
	in, err := NewRoundRect(inner, innerRadii)
	if err != nil {
		return err
	}
	if o.IsEmpty() || !o.Rect().ContainsRect(in.Rect()) {
		return nil
	}
	path := NewPath()
	path.SetFillType(FillTypeEvenOdd)
	o.appendTo(path, DirectionCW)
	if !in.IsEmpty() {
		in.appendTo(path, DirectionCCW)
	}
	path.invalidate()
	return c.drawPath(path, p, p.Style)
}

// DrawPath draws path with the paint style and the path's fill type.
func (c *Canvas) DrawPath(path *Path, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	if path == nil {
		return fmt.Errorf("%w: nil path", ErrInvalidArgument)
	}
	if path.IsEmpty() && !path.IsInverseFillType() {
		return nil
	}
	return c.drawPath(path, p, p.Style)
}

// DrawRegion draws the rectangles of rg, in local coordinates.
func (c *Canvas) DrawRegion(rg *Region, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	if rg.IsEmpty() {
		return nil
	}
	return c.drawPath(rg.BoundaryPath(), p, p.Style)
}
