package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixPredicates(t *testing.T) {
	tests := []struct {
		name        string
		m           Matrix
		translation bool
		staysRect   bool
	}{
		{"identity", Identity(), true, true},
		{"translation", Translate(10, -3), true, true},
		{"scale", Scale(2, 0.5), false, true},
		{"quarter turn", Rotate(90), false, true},
		{"half turn", Rotate(180), false, true},
		{"rotation 30", Rotate(30), false, false},
		{"skew", Skew(0.5, 0), false, false},
		{"zero scale", Scale(0, 1), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.translation, tt.m.IsTranslation())
			assert.Equal(t, tt.staysRect, tt.m.RectStaysRect())
		})
	}
}

func TestMatrixConcatOrder(t *testing.T) {
	// PreConcat applies the argument first, as canvas transforms do.
	m := Translate(10, 0).PreConcat(Scale(2, 2))
	p := m.TransformPoint(Point{1, 1})
	assert.Equal(t, Point{12, 2}, p)

	m = Translate(10, 0).PostConcat(Scale(2, 2))
	p = m.TransformPoint(Point{1, 1})
	assert.Equal(t, Point{22, 2}, p)
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, 4).Multiply(Rotate(30)).Multiply(Scale(2, 5))
	inv, ok := m.Invert()
	assert.True(t, ok)
	p := inv.TransformPoint(m.TransformPoint(Point{7, -2}))
	assert.InDelta(t, 7, p.X, 1e-9)
	assert.InDelta(t, -2, p.Y, 1e-9)

	_, ok = Scale(0, 1).Invert()
	assert.False(t, ok)
}

func TestMatrixMapRect(t *testing.T) {
	r := Rotate(90).MapRect(Rect{0, 0, 10, 20})
	assert.InDelta(t, -20, r.Left, 1e-9)
	assert.InDelta(t, 0, r.Top, 1e-9)
	assert.InDelta(t, 0, r.Right, 1e-9)
	assert.InDelta(t, 10, r.Bottom, 1e-9)
}

func TestMatrixMapPoints(t *testing.T) {
	pts := []float64{1, 2, 3, 4}
	Translate(1, 1).MapPoints(pts)
	assert.Equal(t, []float64{2, 3, 4, 5}, pts)
}

func TestRectOps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, 5, 15, 15}

	in, ok := a.Intersect(b)
	assert.True(t, ok)
	assert.Equal(t, Rect{5, 5, 10, 10}, in)
	assert.Equal(t, Rect{0, 0, 15, 15}, a.Union(b))

	_, ok = a.Intersect(Rect{10, 0, 20, 10})
	assert.False(t, ok, "touching rectangles do not intersect")
	assert.False(t, a.Intersects(Rect{10, 0, 20, 10}))

	assert.True(t, a.Contains(0, 0))
	assert.False(t, a.Contains(10, 5), "right edge is outside")
	assert.Equal(t, Rect{0, 0, 10, 10}, Rect{10, 10, 0, 0}.Sort())
	assert.True(t, Rect{0, 0, 0, 5}.IsEmpty())
}
