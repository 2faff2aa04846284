package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPorterDuffColorFilterSrcIn(t *testing.T) {
	bm := filledBitmap(t, 2, 1, 0)
	bm.SetPixel(0, 0, ARGB(255, 10, 10, 10))
	f := PorterDuffColorFilter{Color: Blue, Mode: BlendSrcIn}
	require.NoError(t, f.Filter(bm))
	assert.Equal(t, Blue, bm.Pixel(0, 0), "opaque pixels are tinted")
	assert.Equal(t, Transparent, bm.Pixel(1, 0), "transparent pixels stay transparent")
}

func TestPorterDuffColorFilterCustomMode(t *testing.T) {
	bm := filledBitmap(t, 2, 1, 0)
	bm.SetPixel(0, 0, RGB(100, 100, 100))
	f := PorterDuffColorFilter{Color: RGB(100, 0, 255), Mode: BlendAdd}
	require.NoError(t, f.Filter(bm))
	assert.Equal(t, RGB(200, 100, 255), bm.Pixel(0, 0))
	assert.Equal(t, 0, Alpha(bm.Pixel(1, 0)), "transparent pixels stay transparent")
}

func TestLightingColorFilter(t *testing.T) {
	bm := filledBitmap(t, 1, 1, ARGB(128, 200, 100, 0))
	f := LightingColorFilter{Mul: RGB(255, 128, 0), Add: RGB(0, 0, 40)}
	require.NoError(t, f.Filter(bm))
	assert.Equal(t, ARGB(128, 200, 50, 40), bm.Pixel(0, 0))
}

func TestPaintFlagsDrawFilter(t *testing.T) {
	p := NewPaintWithFlags(FlagAntiAlias | FlagDither)
	PaintFlagsDrawFilter{Clear: FlagAntiAlias, Set: FlagFilterBitmap}.Filter(p)
	assert.False(t, p.IsAntiAlias())
	assert.True(t, p.IsFilterBitmap())
	assert.NotZero(t, p.Flags&FlagDither)
}
