package canvas

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRectZeroRadiiMatchesRect(t *testing.T) {
	r := Rect{2, 3, 12, 9}
	rr, err := NewRoundRect(r, make([]float64, 8))
	require.NoError(t, err)

	rnd := rand.New(rand.NewPCG(7, 11))
	for range 500 {
		x, y := rnd.Float64()*16, rnd.Float64()*14
		assert.Equal(t, r.Contains(x, y), rr.Contains(x, y), "point (%g, %g)", x, y)

		o := RectXYWH(rnd.Float64()*16-2, rnd.Float64()*14-2, rnd.Float64()*6, rnd.Float64()*6)
		assert.Equal(t, r.Intersects(o), rr.Intersects(o), "rect %v", o)
	}
	for _, p := range []Point{{2, 3}, {12, 3}, {2, 9}, {11.999, 8.999}} {
		assert.Equal(t, r.Contains(p.X, p.Y), rr.Contains(p.X, p.Y), "corner %v", p)
	}
}

func TestRoundRectFullyElliptical(t *testing.T) {
	r := Rect{0, 0, 20, 10}
	rr, err := NewRoundRect(r, []float64{20, 10, 20, 10, 20, 10, 20, 10})
	require.NoError(t, err)
	assert.Equal(t, [8]float64{10, 5, 10, 5, 10, 5, 10, 5}, rr.Radii())

	assert.True(t, rr.Contains(10, 5))
	for _, p := range []Point{{0, 0}, {20, 0}, {20, 10}, {0, 10}} {
		assert.False(t, rr.Contains(p.X, p.Y), "corner %v", p)
	}
	assert.True(t, rr.Contains(0.5, 5))
	assert.False(t, rr.Contains(1, 1))
}

func TestRoundRectRadiiScaling(t *testing.T) {
	rr, err := NewRoundRect(Rect{0, 0, 10, 100}, []float64{8, 8, 8, 8, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, [8]float64{5, 5, 5, 5, 0, 0, 0, 0}, rr.Radii())

	rr, err = NewRoundRect(Rect{0, 0, 10, 10}, []float64{-1, 2, 2, 2, 2, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rr.Radii()[0])

	_, err = NewRoundRect(Rect{0, 0, 10, 10}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRoundRectDegenerate(t *testing.T) {
	rr := NewRoundRectXY(Rect{5, 5, 5, 10}, 2, 2)
	assert.True(t, rr.IsEmpty())
	assert.Equal(t, [8]float64{}, rr.Radii())
	assert.False(t, rr.Contains(5, 7))
	assert.False(t, rr.Intersects(Rect{0, 0, 20, 20}))
	assert.True(t, rr.Path().IsEmpty())
}

func TestRoundRectIntersects(t *testing.T) {
	rr := NewRoundRectXY(Rect{0, 0, 20, 20}, 8, 8)
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"middle column", Rect{9, -5, 11, 25}, true},
		{"middle row", Rect{-5, 9, 25, 11}, true},
		{"outside", Rect{30, 30, 40, 40}, false},
		{"upper-left notch", Rect{0, 0, 1, 1}, false},
		{"upper-left arc", Rect{2, 2, 4, 4}, true},
		{"lower-right notch", Rect{19, 19, 20, 20}, false},
		{"contains all", Rect{-1, -1, 21, 21}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rr.Intersects(tt.r))
		})
	}
}

func TestRoundRectPathContainsCenter(t *testing.T) {
	rr := NewRoundRectXY(Rect{0, 0, 20, 20}, 5, 5)
	rg := NewRegion()
	require.True(t, rg.SetPath(rr.Path(), nil))
	assert.True(t, rg.Contains(10, 10))
	assert.False(t, rg.Contains(0.2, 0.2))
	assert.False(t, rr.Path().IsSimplePath())
}
