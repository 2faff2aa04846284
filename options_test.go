package canvas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/canvas/typeface"
)

type countingRasterizer struct {
	Rasterizer
	calls int
}

func (r *countingRasterizer) Rasterize(polygons [][]Point, bounds image.Rectangle, opts RasterOptions) *image.Alpha {
	r.calls++
	return r.Rasterizer.Rasterize(polygons, bounds, opts)
}

func TestWithRasterizer(t *testing.T) {
	rz := &countingRasterizer{Rasterizer: DefaultRasterizer()}
	bm, err := NewBitmap(8, 8, ConfigARGB8888)
	require.NoError(t, err)
	c, err := New(bm, WithRasterizer(rz))
	require.NoError(t, err)

	require.NoError(t, c.DrawCircle(4, 4, 3, fillPaint(Red)))
	assert.Equal(t, 1, rz.calls)
	assert.Equal(t, Red, bm.Pixel(4, 4))
}

func TestWithConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flatness = 0
	_, err := New(nil, WithConfig(cfg))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWithTypefaces(t *testing.T) {
	reg := typeface.NewRegistry(2)
	c, err := New(nil, WithTypefaces(reg))
	require.NoError(t, err)
	assert.Same(t, reg.Default(), c.typefaceFor(NewPaint()))

	other, err := New(nil)
	require.NoError(t, err)
	shared, err := New(nil)
	require.NoError(t, err)
	assert.Same(t, other.typefaces, shared.typefaces, "canvases share the default registry")
}
