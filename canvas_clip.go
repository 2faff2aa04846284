package canvas

import (
	"image"

	"github.com/gogpu/canvas/internal/raster"
)

// ClipRect combines the clip with r, given in local coordinates, and
// reports whether the resulting clip is non-empty.
func (c *Canvas) ClipRect(r Rect, op RegionOp) bool {
	c.mustLive()
	m := c.top().matrix
	shape := NewRegion()
	if m.RectStaysRect() {
		shape.Set(m.MapRect(r.Sort()))
	} else {
		p := NewPath()
		p.AddRect(r.Sort(), DirectionCW)
		p.Transform(m)
		shape.SetPath(p, nil)
	}
	return c.applyClip(shape, op)
}

// ClipPath combines the clip with the area of p under the current
// transform. Inverse fill types clip to everything outside p.
func (c *Canvas) ClipPath(p *Path, op RegionOp) bool {
	c.mustLive()
	if p == nil {
		return !c.top().clip.IsEmpty()
	}
	return c.applyClip(c.pathRegion(p, c.top().matrix), op)
}

// ClipRegion combines the clip with rg, which is in device coordinates
// and ignores the transform.
func (c *Canvas) ClipRegion(rg *Region, op RegionOp) bool {
	c.mustLive()
	return c.applyClip(rg.Clone(), op)
}

// Clip returns a copy of the clip in device coordinates.
func (c *Canvas) Clip() *Region {
	c.mustLive()
	return c.top().clip.Clone()
}

// ClipBounds returns the clip bounds mapped back to local coordinates.
// It reports false when the clip is empty or the transform is singular.
func (c *Canvas) ClipBounds() (Rect, bool) {
	c.mustLive()
	f := c.top()
	if f.clip.IsEmpty() {
		return Rect{}, false
	}
	inv, ok := f.matrix.Invert()
	if !ok {
		return Rect{}, false
	}
	return inv.MapRect(f.clip.Bounds()), true
}

// QuickReject reports whether r, in local coordinates, is certainly
// outside the clip. A false result does not mean r is visible.
func (c *Canvas) QuickReject(r Rect) bool {
	c.mustLive()
	f := c.top()
	return f.clip.QuickReject(f.matrix.MapRect(r.Sort()))
}

// QuickRejectPath is QuickReject for the bounds of p. Inverse paths are
// never rejected.
func (c *Canvas) QuickRejectPath(p *Path) bool {
	if p.IsInverseFillType() {
		return false
	}
	return c.QuickReject(p.Bounds())
}

// pathRegion returns the device area of p under m. Inverse paths are
// bounded by the draw target.
func (c *Canvas) pathRegion(p *Path, m Matrix) *Region {
	if sr := p.fastRegion(); sr != nil && m.RectStaysRect() {
		rg := sr.Clone()
		rg.Transform(m)
		return rg
	}
	dp := p.Clone()
	dp.Transform(m)
	rg := NewRegion()
	rg.SetPath(dp, RegionFromRect(rectFromImage(c.targetBounds())))
	return rg
}

// applyClip installs clip op shape in the top frame. Operators that can
// grow the clip are limited to the draw target.
func (c *Canvas) applyClip(shape *Region, op RegionOp) bool {
	f := c.top()
	clip := f.clip.Clone()
	clip.Op(shape, op)
	if op != RegionOpIntersect && op != RegionOpDifference {
		clip.OpRect(rectFromImage(c.targetBounds()), RegionOpIntersect)
	}
	f.clip = clip
	f.mask = nil
	return !clip.IsEmpty()
}

// clipMask returns the coverage of the top frame's clip, or nil when the
// clip is a single pixel-aligned rectangle and needs no mask.
func (c *Canvas) clipMask() *image.Alpha {
	f := c.top()
	if f.clip.IsRect() && pixelAligned(f.clip.Bounds()) {
		return nil
	}
	if f.mask == nil {
		rects := f.clip.Rects()
		contours := make([]raster.Contour, len(rects))
		for i, r := range rects {
			contours[i] = raster.Contour{{X: r.Left, Y: r.Top}, {X: r.Right, Y: r.Top}, {X: r.Right, Y: r.Bottom}, {X: r.Left, Y: r.Bottom}}
		}
		f.mask = raster.Coverage(contours, f.clip.Bounds().RoundOut(), raster.Options{Antialias: true})
	}
	return f.mask
}

func pixelAligned(r Rect) bool {
	return r.Left == float64(int(r.Left)) && r.Top == float64(int(r.Top)) &&
		r.Right == float64(int(r.Right)) && r.Bottom == float64(int(r.Bottom))
}
