package canvas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestCanvas returns a canvas over a transparent ARGB8888 bitmap.
func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	bm, err := NewBitmap(w, h, ConfigARGB8888)
	require.NoError(t, err)
	c, err := New(bm)
	require.NoError(t, err)
	return c
}

// fillPaint returns an aliased fill paint of the given color.
func fillPaint(color uint32) *Paint {
	p := NewPaint()
	p.Color = color
	return p
}

// paintedRect returns the bounds of the non-transparent pixels of bm.
func paintedRect(bm *Bitmap) (minX, minY, maxX, maxY int, any bool) {
	minX, minY = bm.Width(), bm.Height()
	for y := range bm.Height() {
		for x := range bm.Width() {
			if Alpha(bm.Pixel(x, y)) == 0 {
				continue
			}
			any = true
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x+1), max(maxY, y+1)
		}
	}
	return minX, minY, maxX, maxY, any
}
