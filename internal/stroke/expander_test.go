package stroke

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/canvas/internal/raster"
)

func fill(contours []raster.Contour, size int) *image.Alpha {
	return raster.Coverage(contours, image.Rect(0, 0, size, size), raster.Options{Rule: raster.NonZero})
}

func TestExpandHorizontalLine(t *testing.T) {
	line := Polyline{Points: []raster.Point{{X: 2, Y: 10}, {X: 18, Y: 10}}}
	out := Expand([]Polyline{line}, Style{Width: 4})
	require.NotEmpty(t, out)
	for _, c := range out {
		assert.GreaterOrEqual(t, signedArea(c), 0.0)
	}

	mask := fill(out, 20)
	assert.Equal(t, uint8(255), mask.AlphaAt(10, 9).A)
	assert.Equal(t, uint8(255), mask.AlphaAt(10, 11).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(10, 13).A)
	// butt caps do not extend past the end points
	assert.Equal(t, uint8(0), mask.AlphaAt(0, 10).A)
}

func TestExpandSquareCapExtends(t *testing.T) {
	line := Polyline{Points: []raster.Point{{X: 4, Y: 10}, {X: 16, Y: 10}}}
	mask := fill(Expand([]Polyline{line}, Style{Width: 4, Cap: CapSquare}), 20)
	assert.Equal(t, uint8(255), mask.AlphaAt(2, 10).A)
	assert.Equal(t, uint8(255), mask.AlphaAt(17, 10).A)
}

func TestExpandClosedRectangleKeepsHole(t *testing.T) {
	rect := Polyline{
		Points: []raster.Point{{X: 4, Y: 4}, {X: 16, Y: 4}, {X: 16, Y: 16}, {X: 4, Y: 16}},
		Closed: true,
	}
	mask := fill(Expand([]Polyline{rect}, Style{Width: 2, Join: JoinMiter}), 20)
	assert.Equal(t, uint8(255), mask.AlphaAt(4, 10).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(10, 10).A)
	// mitered corner covers the outer corner pixel
	assert.Equal(t, uint8(255), mask.AlphaAt(3, 3).A)
}

func TestExpandBevelCornerLeavesTip(t *testing.T) {
	rect := Polyline{
		Points: []raster.Point{{X: 4, Y: 4}, {X: 16, Y: 4}, {X: 16, Y: 16}, {X: 4, Y: 16}},
		Closed: true,
	}
	mask := fill(Expand([]Polyline{rect}, Style{Width: 4, Join: JoinBevel}), 20)
	assert.Equal(t, uint8(0), mask.AlphaAt(2, 2).A)
}

func TestExpandDot(t *testing.T) {
	dot := Polyline{Points: []raster.Point{{X: 10, Y: 10}}}
	assert.Empty(t, Expand([]Polyline{dot}, Style{Width: 4}))

	round := Expand([]Polyline{dot}, Style{Width: 4, Cap: CapRound})
	require.Len(t, round, 1)
	mask := fill(round, 20)
	assert.Equal(t, uint8(255), mask.AlphaAt(10, 10).A)
}

func TestCirclePolygon(t *testing.T) {
	c := Circle(raster.Point{X: 0, Y: 0}, 10, 0.25)
	assert.GreaterOrEqual(t, len(c), 8)
	for _, p := range c {
		assert.InDelta(t, 10, vec2(p).length(), 1e-9)
	}
}
