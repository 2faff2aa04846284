package canvas

import (
	"fmt"
	"math"
	"slices"
)

// Shader computes source colors for a paint instead of its solid color.
// ColorAt receives a point in the local space of the draw call, before
// the canvas matrix, and returns a non-premultiplied ARGB color.
type Shader interface {
	ColorAt(x, y float64) uint32
}

// TileMode defines how a shader extends beyond its defined bounds.
type TileMode uint8

const (
	// TileClamp repeats the edge color.
	TileClamp TileMode = iota
	// TileRepeat repeats the pattern.
	TileRepeat
	// TileMirror repeats the pattern, mirroring every other copy.
	TileMirror
)

// tile maps t into [0, 1] according to mode.
func (mode TileMode) tile(t float64) float64 {
	switch mode {
	case TileRepeat:
		t -= math.Floor(t)
	case TileMirror:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// LinearGradient interpolates colors along the line from (X0, Y0) to (X1, Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Colors         []uint32
	Positions      []float64 // sorted offsets in [0, 1]; nil spaces colors evenly
	Tile           TileMode
	LocalMatrix    Matrix
	inverse        Matrix
}

// NewLinearGradient creates a gradient. positions may be nil; otherwise it
// must have one entry per color.
func NewLinearGradient(x0, y0, x1, y1 float64, colors []uint32, positions []float64, tile TileMode) (*LinearGradient, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("%w: gradient needs at least 2 colors", ErrInvalidArgument)
	}
	if positions != nil && len(positions) != len(colors) {
		return nil, fmt.Errorf("%w: %d positions for %d colors", ErrInvalidArgument, len(positions), len(colors))
	}
	if positions == nil {
		positions = make([]float64, len(colors))
		for i := range positions {
			positions[i] = float64(i) / float64(len(colors)-1)
		}
	} else {
		positions = slices.Clone(positions)
		slices.Sort(positions)
	}
	return &LinearGradient{
		X0: x0, Y0: y0, X1: x1, Y1: y1,
		Colors:      slices.Clone(colors),
		Positions:   positions,
		Tile:        tile,
		LocalMatrix: Identity(),
		inverse:     Identity(),
	}, nil
}

// SetLocalMatrix sets a transform applied to the gradient geometry.
func (g *LinearGradient) SetLocalMatrix(m Matrix) {
	g.LocalMatrix = m
	g.inverse, _ = m.Invert()
}

// ColorAt returns the color at the given point.
func (g *LinearGradient) ColorAt(x, y float64) uint32 {
	p := g.inverse.TransformPoint(Point{x, y})
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return g.Colors[0]
	}
	// Project the point onto the gradient line.
	t := ((p.X-g.X0)*dx + (p.Y-g.Y0)*dy) / lengthSq
	return g.colorAtOffset(g.Tile.tile(t))
}

func (g *LinearGradient) colorAtOffset(t float64) uint32 {
	idx, _ := slices.BinarySearch(g.Positions, t)
	if idx == 0 {
		return g.Colors[0]
	}
	if idx >= len(g.Positions) {
		return g.Colors[len(g.Colors)-1]
	}
	p0, p1 := g.Positions[idx-1], g.Positions[idx]
	if p1 == p0 {
		return g.Colors[idx-1]
	}
	return lerpColor(g.Colors[idx-1], g.Colors[idx], (t-p0)/(p1-p0))
}

// lerpColor interpolates each ARGB channel.
func lerpColor(a, b uint32, t float64) uint32 {
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		ca := float64((a >> shift) & 0xff)
		cb := float64((b >> shift) & 0xff)
		out |= uint32(math.Round(ca+(cb-ca)*t)) << shift
	}
	return out
}

// BitmapShader paints with a bitmap, tiled in each direction.
type BitmapShader struct {
	Bitmap       *Bitmap
	TileX, TileY TileMode
	Filter       bool // bilinear sampling
	LocalMatrix  Matrix
	inverse      Matrix
}

// NewBitmapShader creates a shader sampling bm.
func NewBitmapShader(bm *Bitmap, tileX, tileY TileMode) *BitmapShader {
	return &BitmapShader{
		Bitmap:      bm,
		TileX:       tileX,
		TileY:       tileY,
		LocalMatrix: Identity(),
		inverse:     Identity(),
	}
}

// SetLocalMatrix sets the transform from bitmap to local coordinates.
func (s *BitmapShader) SetLocalMatrix(m Matrix) {
	s.LocalMatrix = m
	s.inverse, _ = m.Invert()
}

// ColorAt returns the bitmap color at the given point.
func (s *BitmapShader) ColorAt(x, y float64) uint32 {
	p := s.inverse.TransformPoint(Point{x, y})
	if s.Filter {
		return sampleBilinear(s.Bitmap, p.X, p.Y, s.TileX, s.TileY)
	}
	w, h := s.Bitmap.Width(), s.Bitmap.Height()
	return s.Bitmap.Pixel(tileIndex(int(math.Floor(p.X)), w, s.TileX), tileIndex(int(math.Floor(p.Y)), h, s.TileY))
}

// tileIndex maps an integer coordinate into [0, n).
func tileIndex(i, n int, mode TileMode) int {
	switch mode {
	case TileRepeat:
		i %= n
		if i < 0 {
			i += n
		}
	case TileMirror:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
	default:
		i = max(0, min(n-1, i))
	}
	return i
}

// sampleBilinear interpolates the four pixels around (x, y), with pixel
// centers at half-integer coordinates.
func sampleBilinear(bm *Bitmap, x, y float64, tx, ty TileMode) uint32 {
	x -= 0.5
	y -= 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	w, h := bm.Width(), bm.Height()
	ix0, iy0 := tileIndex(int(x0), w, tx), tileIndex(int(y0), h, ty)
	ix1, iy1 := tileIndex(int(x0)+1, w, tx), tileIndex(int(y0)+1, h, ty)
	top := lerpColor(bm.Pixel(ix0, iy0), bm.Pixel(ix1, iy0), fx)
	bottom := lerpColor(bm.Pixel(ix0, iy1), bm.Pixel(ix1, iy1), fx)
	return lerpColor(top, bottom, fy)
}
