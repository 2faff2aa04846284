package canvas

import (
	"image"

	"github.com/gogpu/canvas/internal/blend"
	"github.com/gogpu/canvas/internal/stroke"
)

// pixelSource returns the source color of the device pixel (x, y).
type pixelSource func(x, y int) uint32

// blit composites src into the draw target wherever cov is nonzero,
// attenuated by the clip. alpha scales the source opacity; mode and
// filter follow the paint. Native modes blend per pixel with Porter-Duff
// operators, the others go through a BlendComposite.
func (c *Canvas) blit(cov *image.Alpha, src pixelSource, alpha int, mode BlendMode, filter ColorFilter) error {
	dst, origin := c.drawTarget()
	if dst == nil || cov == nil {
		return nil
	}
	f := c.top()
	area := cov.Rect.Intersect(c.targetBounds()).Intersect(f.clip.Bounds().RoundOut())
	if area.Empty() {
		return nil
	}
	clip := c.clipMask()

	w, h := area.Dx(), area.Dy()
	weights := make([]uint8, w*h)
	srcBuf, err := NewBitmap(w, h, ConfigARGB8888)
	if err != nil {
		return err
	}
	native := mode.IsNative()
	visible := false
	for y := range h {
		for x := range w {
			dx, dy := area.Min.X+x, area.Min.Y+y
			wt := cov.AlphaAt(dx, dy).A
			if clip != nil && wt != 0 {
				wt = uint8((int(wt)*int(clip.AlphaAt(dx, dy).A) + 127) / 255)
			}
			if wt == 0 {
				continue
			}
			s := src(dx, dy)
			if native {
				s = mulAlpha(s, alpha)
			}
			weights[y*w+x] = wt
			srcBuf.pix[y*w+x] = s
			visible = true
		}
	}
	if !visible {
		return nil
	}
	if filter != nil {
		if err := filter.Filter(srcBuf); err != nil {
			return err
		}
	}

	result := srcBuf
	if !native {
		result, err = NewBitmap(w, h, ConfigARGB8888)
		if err != nil {
			return err
		}
		for y := range h {
			for x := range w {
				result.pix[y*w+x] = dst.Pixel(area.Min.X+x-origin.X, area.Min.Y+y-origin.Y)
			}
		}
		bc, err := NewBlendComposite(mode, float64(clampByte(alpha))/255)
		if err != nil {
			return err
		}
		if err := bc.Compose(srcBuf, result); err != nil {
			return err
		}
	}

	for y := range h {
		for x := range w {
			wt := weights[y*w+x]
			if wt == 0 {
				continue
			}
			px, py := area.Min.X+x-origin.X, area.Min.Y+y-origin.Y
			d := dst.Pixel(px, py)
			r := result.pix[y*w+x]
			if native {
				r = blend.PorterDuff(blend.Mode(mode), r, d)
			}
			dst.SetPixel(px, py, blend.LerpPremul(d, r, wt))
		}
	}
	return nil
}

// compositeLayer draws a popped layer into the current target.
func (c *Canvas) compositeLayer(l *layer) error {
	if l.bitmap == nil {
		return nil
	}
	r := l.bounds()
	cov := image.NewAlpha(r)
	for i := range cov.Pix {
		cov.Pix[i] = 0xff
	}
	Logger().Debug("canvas: layer composited", "bounds", r, "alpha", l.alpha, "mode", l.mode)
	return c.blit(cov, func(x, y int) uint32 {
		return l.bitmap.Pixel(x-l.origin.X, y-l.origin.Y)
	}, l.alpha, l.mode, l.filter)
}

// drawBounds returns the device area a draw may touch.
func (c *Canvas) drawBounds() image.Rectangle {
	return c.top().clip.Bounds().RoundOut().Intersect(c.targetBounds())
}

// fillCoverage rasterizes the interior of path under m.
func (c *Canvas) fillCoverage(path *Path, m Matrix, antiAlias bool) *image.Alpha {
	limit := c.drawBounds()
	if sr := path.fastRegion(); sr != nil && m.RectStaysRect() {
		rg := sr.Clone()
		rg.Transform(m)
		rects := rg.Rects()
		polys := make([][]Point, len(rects))
		for i, r := range rects {
			polys[i] = rectPolygon(r)
		}
		bounds := rg.Bounds().RoundOut().Intersect(limit)
		return c.raster.Rasterize(polys, bounds, RasterOptions{AntiAlias: antiAlias})
	}
	tol := c.config.Flatness / max(m.ScaleFactor(), 1e-6)
	polys := mapContours(path.Flatten(tol), m)
	bounds := limit
	if !path.IsInverseFillType() {
		bounds = polygonBounds(polys).Intersect(limit)
	}
	ft := path.FillType()
	return c.raster.Rasterize(polys, bounds, RasterOptions{
		EvenOdd:   ft == FillTypeEvenOdd || ft == FillTypeInverseEvenOdd,
		Inverse:   ft.IsInverse(),
		AntiAlias: antiAlias,
	})
}

// strokeCoverage rasterizes the outline of path stroked with p under m.
// A zero stroke width draws a one pixel hairline regardless of m.
func (c *Canvas) strokeCoverage(path *Path, p *Paint, m Matrix) *image.Alpha {
	scale := max(m.ScaleFactor(), 1e-6)
	var polys [][]Point
	if p.StrokeWidth <= 0 {
		contours := path.Flatten(c.config.Flatness / scale)
		for i := range contours {
			for j, q := range contours[i].Points {
				contours[i].Points[j] = m.TransformPoint(q)
			}
		}
		outline := stroke.Expand(toPolylines(contours), p.strokeStyle(1, c.config.Flatness))
		polys = mapRasterContours(outline, Identity())
	} else {
		tol := c.config.Flatness / scale
		outline := stroke.Expand(toPolylines(path.Flatten(tol)), p.strokeStyle(p.StrokeWidth, tol))
		polys = mapRasterContours(outline, m)
	}
	bounds := polygonBounds(polys).Intersect(c.drawBounds())
	return c.raster.Rasterize(polys, bounds, RasterOptions{AntiAlias: p.IsAntiAlias()})
}

// maxCoverage merges two masks by taking the larger weight per pixel.
func maxCoverage(a, b *image.Alpha) *image.Alpha {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	out := image.NewAlpha(a.Rect.Union(b.Rect))
	for y := out.Rect.Min.Y; y < out.Rect.Max.Y; y++ {
		for x := out.Rect.Min.X; x < out.Rect.Max.X; x++ {
			out.Pix[out.PixOffset(x, y)] = max(a.AlphaAt(x, y).A, b.AlphaAt(x, y).A)
		}
	}
	return out
}

// paintSource returns the source color function of p under m and the
// alpha the color is scaled by. ok is false when m cannot be inverted
// for a shader.
func paintSource(p *Paint, m Matrix) (src pixelSource, alpha int, ok bool) {
	if p.Shader == nil {
		col := p.Color | 0xff000000
		return func(int, int) uint32 { return col }, p.Alpha(), true
	}
	inv, ok := m.Invert()
	if !ok {
		return nil, 0, false
	}
	sh := p.Shader
	return func(x, y int) uint32 {
		q := inv.TransformPoint(Point{float64(x) + 0.5, float64(y) + 0.5})
		return sh.ColorAt(q.X, q.Y)
	}, p.Alpha(), true
}

// drawPath fills and/or strokes path with p according to style.
func (c *Canvas) drawPath(path *Path, p *Paint, style Style) error {
	m := c.top().matrix
	src, alpha, ok := paintSource(p, m)
	if !ok {
		return nil
	}
	var cov *image.Alpha
	if style != StyleStroke {
		cov = c.fillCoverage(path, m, p.IsAntiAlias())
	}
	if style != StyleFill {
		cov = maxCoverage(cov, c.strokeCoverage(path, p, m))
	}
	return c.blit(cov, src, alpha, p.BlendMode, p.ColorFilter)
}
