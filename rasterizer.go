package canvas

import (
	"image"
	"math"

	"github.com/gogpu/canvas/internal/raster"
)

// RasterOptions controls how a Rasterizer fills polygons.
type RasterOptions struct {
	// EvenOdd selects the even-odd rule instead of nonzero winding.
	EvenOdd bool
	// Inverse fills every pixel of the bounds outside the shape.
	Inverse bool
	// AntiAlias produces fractional edge coverage. Aliased fills sample
	// pixel centers only.
	AntiAlias bool
}

// Rasterizer converts device-space polygons into an 8-bit coverage mask.
// The returned mask's Rect must equal bounds. Each polygon is closed
// implicitly.
//
// Custom rasterizers are installed with WithRasterizer.
type Rasterizer interface {
	Rasterize(polygons [][]Point, bounds image.Rectangle, opts RasterOptions) *image.Alpha
}

// scanlineRasterizer is the built-in Rasterizer.
type scanlineRasterizer struct{}

// DefaultRasterizer returns the built-in rasterizer.
func DefaultRasterizer() Rasterizer { return scanlineRasterizer{} }

func (scanlineRasterizer) Rasterize(polygons [][]Point, bounds image.Rectangle, opts RasterOptions) *image.Alpha {
	contours := make([]raster.Contour, 0, len(polygons))
	for _, poly := range polygons {
		if len(poly) < 3 {
			continue
		}
		rc := make(raster.Contour, len(poly))
		for i, q := range poly {
			rc[i] = raster.Point(q)
		}
		contours = append(contours, rc)
	}
	rule := raster.NonZero
	if opts.EvenOdd {
		rule = raster.EvenOdd
	}
	return raster.Coverage(contours, bounds, raster.Options{
		Rule:      rule,
		Inverse:   opts.Inverse,
		Antialias: opts.AntiAlias,
	})
}

// polygonBounds returns the integer pixel rectangle touched by polygons.
func polygonBounds(polygons [][]Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polygons {
		for _, q := range poly {
			minX = math.Min(minX, q.X)
			minY = math.Min(minY, q.Y)
			maxX = math.Max(maxX, q.X)
			maxY = math.Max(maxY, q.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	return Rect{minX, minY, maxX, maxY}.RoundOut()
}

// rectPolygon returns r as a clockwise quad.
func rectPolygon(r Rect) []Point {
	return []Point{{r.Left, r.Top}, {r.Right, r.Top}, {r.Right, r.Bottom}, {r.Left, r.Bottom}}
}

// mapContours transforms flattened contours into device polygons.
func mapContours(contours []Contour, m Matrix) [][]Point {
	out := make([][]Point, 0, len(contours))
	for _, c := range contours {
		poly := make([]Point, len(c.Points))
		for i, q := range c.Points {
			poly[i] = m.TransformPoint(q)
		}
		out = append(out, poly)
	}
	return out
}

// mapRasterContours transforms stroker output into device polygons.
func mapRasterContours(contours []raster.Contour, m Matrix) [][]Point {
	out := make([][]Point, 0, len(contours))
	for _, c := range contours {
		poly := make([]Point, len(c))
		for i, q := range c {
			poly[i] = m.TransformPoint(Point(q))
		}
		out = append(out, poly)
	}
	return out
}
