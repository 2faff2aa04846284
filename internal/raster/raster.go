// Package raster turns flattened contours into 8-bit coverage masks.
//
// Antialiased nonzero fills go through golang.org/x/image/vector. Even-odd
// fills and aliased fills, which vector cannot express, use a scanline
// sampler with exact horizontal span coverage.
package raster

import (
	"image"
	"math"
	"slices"

	"golang.org/x/image/vector"
)

// Contour is a closed polygon. The closing edge is implicit.
type Contour []Point

// FillRule selects how winding numbers map to insideness.
type FillRule uint8

const (
	// NonZero fills points with a nonzero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points with an odd winding number.
	EvenOdd
)

// Options controls a single Coverage call.
type Options struct {
	Rule      FillRule
	Inverse   bool // fill everything outside the shape instead
	Antialias bool
}

// subsamples is the number of sample rows per pixel for the AA scanline path.
const subsamples = 16

// Bounds returns the integer pixel rectangle touched by the contours.
func Bounds(contours []Contour) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range contours {
		for _, p := range c {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// Coverage rasterizes contours into a mask whose Rect equals bounds.
// Pixel values are coverage in the range 0-255.
func Coverage(contours []Contour, bounds image.Rectangle, opts Options) *image.Alpha {
	if bounds.Empty() {
		return image.NewAlpha(image.Rectangle{})
	}

	var mask *image.Alpha
	if opts.Rule == NonZero && opts.Antialias {
		mask = vectorCoverage(contours, bounds)
	} else {
		mask = scanlineCoverage(contours, bounds, opts)
	}

	if opts.Inverse {
		for i, v := range mask.Pix {
			mask.Pix[i] = 255 - v
		}
	}
	return mask
}

func vectorCoverage(contours []Contour, bounds image.Rectangle) *image.Alpha {
	w, h := bounds.Dx(), bounds.Dy()
	z := vector.NewRasterizer(w, h)
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		z.MoveTo(float32(c[0].X-ox), float32(c[0].Y-oy))
		for _, p := range c[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	// Relabel the origin; the pixel layout is unchanged.
	mask.Rect = bounds
	return mask
}

// edge is a non-horizontal polygon edge with y0 < y1.
type edge struct {
	x0, y0 float64
	y1     float64
	dxdy   float64
	dir    int
}

type crossing struct {
	x   float64
	dir int
}

func buildEdges(contours []Contour, ox, oy float64) []edge {
	var edges []edge
	for _, c := range contours {
		n := len(c)
		if n < 2 {
			continue
		}
		for i := range n {
			p0, p1 := c[i], c[(i+1)%n]
			if p0.Y == p1.Y {
				continue
			}
			dir := 1
			if p0.Y > p1.Y {
				p0, p1 = p1, p0
				dir = -1
			}
			edges = append(edges, edge{
				x0:   p0.X - ox,
				y0:   p0.Y - oy,
				y1:   p1.Y - oy,
				dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
				dir:  dir,
			})
		}
	}
	return edges
}

func scanlineCoverage(contours []Contour, bounds image.Rectangle, opts Options) *image.Alpha {
	w, h := bounds.Dx(), bounds.Dy()
	mask := image.NewAlpha(bounds)
	edges := buildEdges(contours, float64(bounds.Min.X), float64(bounds.Min.Y))
	if len(edges) == 0 {
		return mask
	}

	samples := 1
	if opts.Antialias {
		samples = subsamples
	}
	weight := 1 / float64(samples)

	acc := make([]float64, w)
	var crossings []crossing
	for py := range h {
		clear(acc)
		touched := false
		for s := range samples {
			sy := float64(py) + (float64(s)+0.5)/float64(samples)
			crossings = crossings[:0]
			for i := range edges {
				e := &edges[i]
				if sy >= e.y0 && sy < e.y1 {
					crossings = append(crossings, crossing{x: e.x0 + (sy-e.y0)*e.dxdy, dir: e.dir})
				}
			}
			if len(crossings) < 2 {
				continue
			}
			slices.SortFunc(crossings, func(a, b crossing) int {
				switch {
				case a.x < b.x:
					return -1
				case a.x > b.x:
					return 1
				}
				return 0
			})
			winding := 0
			for i := 0; i < len(crossings)-1; i++ {
				winding += crossings[i].dir
				if inside(winding, opts.Rule) {
					if opts.Antialias {
						addSpan(acc, crossings[i].x, crossings[i+1].x, weight)
					} else {
						addCenters(acc, crossings[i].x, crossings[i+1].x)
					}
					touched = true
				}
			}
		}
		if !touched {
			continue
		}
		row := mask.Pix[py*mask.Stride : py*mask.Stride+w]
		for x, v := range acc {
			row[x] = toByte(v)
		}
	}
	return mask
}

func inside(winding int, rule FillRule) bool {
	if rule == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// addSpan adds exact horizontal coverage of [xa, xb) scaled by weight.
func addSpan(acc []float64, xa, xb, weight float64) {
	w := float64(len(acc))
	xa = math.Max(0, math.Min(w, xa))
	xb = math.Max(0, math.Min(w, xb))
	if xb <= xa {
		return
	}
	ia, ib := int(xa), int(xb)
	if ia == ib {
		acc[ia] += (xb - xa) * weight
		return
	}
	acc[ia] += (float64(ia+1) - xa) * weight
	for x := ia + 1; x < ib; x++ {
		acc[x] += weight
	}
	if ib < len(acc) {
		acc[ib] += (xb - float64(ib)) * weight
	}
}

// addCenters marks pixels whose centers fall inside [xa, xb).
func addCenters(acc []float64, xa, xb float64) {
	start := max(0, int(math.Ceil(xa-0.5)))
	end := min(len(acc), int(math.Ceil(xb-0.5)))
	for x := start; x < end; x++ {
		acc[x] = 1
	}
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
