package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) Contour {
	return Contour{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func reversed(c Contour) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

func TestCoverageSquareAllModes(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"nonzero aa", Options{Rule: NonZero, Antialias: true}},
		{"nonzero aliased", Options{Rule: NonZero}},
		{"evenodd aa", Options{Rule: EvenOdd, Antialias: true}},
		{"evenodd aliased", Options{Rule: EvenOdd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounds := image.Rect(0, 0, 10, 10)
			mask := Coverage([]Contour{square(2, 2, 6, 6)}, bounds, tt.opts)
			require.Equal(t, bounds, mask.Rect)
			assert.Equal(t, uint8(255), mask.AlphaAt(3, 3).A)
			assert.Equal(t, uint8(255), mask.AlphaAt(5, 5).A)
			assert.Equal(t, uint8(0), mask.AlphaAt(6, 6).A)
			assert.Equal(t, uint8(0), mask.AlphaAt(1, 3).A)
		})
	}
}

func TestCoverageOffsetBounds(t *testing.T) {
	bounds := image.Rect(20, 30, 30, 40)
	mask := Coverage([]Contour{square(22, 32, 24, 34)}, bounds, Options{Antialias: true})
	assert.Equal(t, uint8(255), mask.AlphaAt(23, 33).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(25, 35).A)
}

func TestCoverageHalfPixel(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 4)
	mask := Coverage([]Contour{square(0, 0, 1.5, 4)}, bounds, Options{Rule: EvenOdd, Antialias: true})
	assert.InDelta(t, 128, int(mask.AlphaAt(1, 1).A), 2)
}

func TestEvenOddHole(t *testing.T) {
	contours := []Contour{square(0, 0, 10, 10), square(3, 3, 7, 7)}
	bounds := image.Rect(0, 0, 10, 10)

	evenOdd := Coverage(contours, bounds, Options{Rule: EvenOdd, Antialias: true})
	assert.Equal(t, uint8(0), evenOdd.AlphaAt(5, 5).A)
	assert.Equal(t, uint8(255), evenOdd.AlphaAt(1, 1).A)

	nonZero := Coverage(contours, bounds, Options{Rule: NonZero, Antialias: true})
	assert.Equal(t, uint8(255), nonZero.AlphaAt(5, 5).A)

	opposite := []Contour{square(0, 0, 10, 10), reversed(square(3, 3, 7, 7))}
	hole := Coverage(opposite, bounds, Options{Rule: NonZero})
	assert.Equal(t, uint8(0), hole.AlphaAt(5, 5).A)
}

func TestInverseCoverage(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	mask := Coverage([]Contour{square(2, 2, 6, 6)}, bounds, Options{Inverse: true})
	assert.Equal(t, uint8(0), mask.AlphaAt(3, 3).A)
	assert.Equal(t, uint8(255), mask.AlphaAt(8, 8).A)
}

func TestCoverageEmptyBounds(t *testing.T) {
	mask := Coverage([]Contour{square(0, 0, 1, 1)}, image.Rectangle{}, Options{})
	assert.True(t, mask.Rect.Empty())
}

func TestBounds(t *testing.T) {
	assert.Equal(t, image.Rect(1, 2, 5, 7), Bounds([]Contour{square(1.5, 2, 4.2, 6.1)}))
	assert.True(t, Bounds(nil).Empty())
}

func TestFlattenEndsOnCurveEnd(t *testing.T) {
	pts := FlattenQuad(nil, Point{0, 0}, Point{5, 10}, Point{10, 0}, 0.1)
	require.NotEmpty(t, pts)
	assert.Equal(t, Point{10, 0}, pts[len(pts)-1])
	assert.Greater(t, len(pts), 2)

	pts = FlattenCubic(nil, Point{0, 0}, Point{0, 10}, Point{10, 10}, Point{10, 0}, 0.1)
	assert.Equal(t, Point{10, 0}, pts[len(pts)-1])

	straight := FlattenCubic(nil, Point{0, 0}, Point{1, 0}, Point{2, 0}, Point{3, 0}, 0.1)
	assert.Len(t, straight, 1)
}
