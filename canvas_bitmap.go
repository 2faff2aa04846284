package canvas

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// checkBitmap validates a bitmap used as a draw source.
func (c *Canvas) checkBitmap(bm *Bitmap) error {
	switch {
	case bm == nil:
		return fmt.Errorf("%w: nil bitmap", ErrInvalidArgument)
	case bm.IsRecycled():
		return ErrRecycledBitmap
	case bm.Config() == ConfigHardware && !c.config.AllowHardwareBitmaps:
		return fmt.Errorf("%w: hardware bitmap on a software canvas", ErrUnsupportedConfiguration)
	case bm.ByteCount() > c.config.MaxBitmapBytes:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrBitmapTooLarge, bm.ByteCount(), c.config.MaxBitmapBytes)
	}
	return nil
}

// DrawBitmap draws bm with its top-left corner at (left, top). p may be
// nil; otherwise its alpha, blend mode, color filter and filter flag
// apply. Alpha8 bitmaps are drawn as masks in the paint color.
func (c *Canvas) DrawBitmap(bm *Bitmap, left, top float64, p *Paint) error {
	p, err := c.prepareOptional(p)
	if err != nil {
		return err
	}
	if err := c.checkBitmap(bm); err != nil {
		return err
	}
	return c.drawBitmap(bm, bm.Bounds(), Translate(left, top), p)
}

// DrawBitmapRect draws the src subset of bm scaled into dst. A nil src
// draws the whole bitmap.
func (c *Canvas) DrawBitmapRect(bm *Bitmap, src *image.Rectangle, dst Rect, p *Paint) error {
	p, err := c.prepareOptional(p)
	if err != nil {
		return err
	}
	if err := c.checkBitmap(bm); err != nil {
		return err
	}
	sr := bm.Bounds()
	if src != nil {
		sr = src.Intersect(sr)
	}
	dst = dst.Sort()
	if sr.Empty() || dst.IsEmpty() {
		return nil
	}
	m := Translate(dst.Left, dst.Top).
		Multiply(Scale(dst.Width()/float64(sr.Dx()), dst.Height()/float64(sr.Dy()))).
		Multiply(Translate(-float64(sr.Min.X), -float64(sr.Min.Y)))
	return c.drawBitmap(bm, sr, m, p)
}

// DrawBitmapMatrix draws bm transformed by m, then by the canvas
// transform.
func (c *Canvas) DrawBitmapMatrix(bm *Bitmap, m Matrix, p *Paint) error {
	p, err := c.prepareOptional(p)
	if err != nil {
		return err
	}
	if err := c.checkBitmap(bm); err != nil {
		return err
	}
	return c.drawBitmap(bm, bm.Bounds(), m, p)
}

// DrawBitmapColors draws a width by height block of ARGB colors read from
// colors[offset:] with the given row stride, placed at (x, y). Without
// hasAlpha the colors are treated as opaque.
func (c *Canvas) DrawBitmapColors(colors []uint32, offset, stride int, x, y float64, width, height int, hasAlpha bool, p *Paint) error {
	p, err := c.prepareOptional(p)
	if err != nil {
		return err
	}
	switch {
	case width < 0 || height < 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height)
	case abs(stride) < width:
		return fmt.Errorf("%w: stride %d shorter than width %d", ErrInvalidArgument, stride, width)
	case width == 0 || height == 0:
		return nil
	}
	last := offset + (height-1)*stride
	if offset < 0 || offset+width > len(colors) || last < 0 || last+width > len(colors) {
		return fmt.Errorf("%w: colors offset %d stride %d length %d",
			ErrIndexOutOfBounds, offset, stride, len(colors))
	}
	bm, err := NewBitmap(width, height, ConfigARGB8888)
	if err != nil {
		return err
	}
	for row := range height {
		line := colors[offset+row*stride : offset+row*stride+width]
		if !hasAlpha {
			opaque := make([]uint32, width)
			for i, col := range line {
				opaque[i] = col | 0xff000000
			}
			line = opaque
		}
		bm.WriteRow(row, line)
	}
	if err := c.checkBitmap(bm); err != nil {
		return err
	}
	return c.drawBitmap(bm, bm.Bounds(), Translate(x, y), p)
}

// drawBitmap draws the src subset of bm, mapped to local coordinates by
// m. The bitmap is resampled into device space with x/image/draw and
// masked by the coverage of its transformed outline.
func (c *Canvas) drawBitmap(bm *Bitmap, src image.Rectangle, m Matrix, p *Paint) error {
	total := c.top().matrix.Multiply(m)
	if _, ok := total.Invert(); !ok {
		return nil
	}
	outline := make([]Point, 0, 4)
	for _, q := range rectPolygon(rectFromImage(src)) {
		outline = append(outline, total.TransformPoint(q))
	}
	polys := [][]Point{outline}
	bounds := polygonBounds(polys).Intersect(c.drawBounds())
	if bounds.Empty() {
		return nil
	}
	cov := c.raster.Rasterize(polys, bounds, RasterOptions{AntiAlias: p.IsAntiAlias()})

	var interp xdraw.Interpolator = xdraw.NearestNeighbor
	if p.IsFilterBitmap() {
		interp = xdraw.BiLinear
	}
	resampled := image.NewNRGBA(bounds)
	interp.Transform(resampled, total.Aff3(), bm, src, xdraw.Src, nil)

	mask := bm.Config() == ConfigAlpha8
	tint := p.Color & 0x00ffffff
	return c.blit(cov, func(x, y int) uint32 {
		px := resampled.NRGBAAt(x, y)
		if mask {
			return uint32(px.A)<<24 | tint
		}
		return uint32(px.A)<<24 | uint32(px.R)<<16 | uint32(px.G)<<8 | uint32(px.B)
	}, p.Alpha(), p.BlendMode, p.ColorFilter)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
