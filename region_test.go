package canvas

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomRect(r *rand.Rand) Rect {
	x, y := float64(r.IntN(40)), float64(r.IntN(40))
	return RectXYWH(x, y, float64(1+r.IntN(30)), float64(1+r.IntN(30)))
}

func TestRegionAlgebra(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		a := RegionFromRect(randomRect(rnd))
		b := RegionFromRect(randomRect(rnd))

		union := Combine(a, b, RegionOpUnion)
		inter := Combine(a, b, RegionOpIntersect)
		xor := Combine(a, b, RegionOpXor)

		assert.GreaterOrEqual(t, union.Area(), max(a.Area(), b.Area()))
		assert.LessOrEqual(t, inter.Area(), min(a.Area(), b.Area()))
		assert.True(t, xor.Equals(Combine(union, inter, RegionOpDifference)),
			"xor of %v and %v", a.Bounds(), b.Bounds())
		assert.InDelta(t, a.Area()+b.Area(), union.Area()+inter.Area(), 1e-9)
	}
}

func TestRegionOps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, 0, 15, 10}
	tests := []struct {
		op   RegionOp
		area float64
	}{
		{RegionOpDifference, 50},
		{RegionOpIntersect, 50},
		{RegionOpUnion, 150},
		{RegionOpXor, 100},
		{RegionOpReverseDifference, 50},
		{RegionOpReplace, 100},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			rg := RegionFromRect(a)
			rg.OpRect(b, tt.op)
			assert.InDelta(t, tt.area, rg.Area(), 1e-9)
		})
	}
}

func TestRegionReverseDifference(t *testing.T) {
	rg := RegionFromRect(Rect{0, 0, 10, 10})
	rg.OpRect(Rect{5, 0, 15, 10}, RegionOpReverseDifference)
	assert.True(t, rg.Equals(RegionFromRect(Rect{10, 0, 15, 10})))
}

func TestRegionUnionMergesBands(t *testing.T) {
	rg := RegionFromRect(Rect{0, 0, 10, 5})
	rg.OpRect(Rect{0, 5, 10, 10}, RegionOpUnion)
	assert.True(t, rg.IsRect())
	assert.Equal(t, Rect{0, 0, 10, 10}, rg.Bounds())
}

func TestRegionContains(t *testing.T) {
	rg := RegionFromRect(Rect{0, 0, 10, 10})
	rg.OpRect(Rect{20, 0, 30, 10}, RegionOpUnion)
	assert.True(t, rg.IsComplex())
	assert.True(t, rg.Contains(5, 5))
	assert.True(t, rg.Contains(25, 5))
	assert.False(t, rg.Contains(15, 5))
	assert.False(t, rg.Contains(10, 5))
	assert.Len(t, rg.Rects(), 2)
}

func TestCombineAbsentExisting(t *testing.T) {
	other := RegionFromRect(Rect{0, 0, 4, 4})
	for _, op := range []RegionOp{RegionOpIntersect, RegionOpUnion, RegionOpXor, RegionOpReverseDifference, RegionOpReplace} {
		got := Combine(nil, other, op)
		assert.True(t, got.Equals(other), op.String())
	}
	assert.True(t, Combine(NewRegion(), other, RegionOpDifference).IsEmpty())

	got := Combine(other, other, RegionOpUnion)
	got.OpRect(Rect{10, 10, 20, 20}, RegionOpUnion)
	assert.InDelta(t, 16, other.Area(), 1e-9, "inputs are not modified")
}

func TestRegionTransform(t *testing.T) {
	rg := RegionFromRect(Rect{0, 0, 10, 10})
	rg.Transform(Translate(5, 5))
	assert.Equal(t, Rect{5, 5, 15, 15}, rg.Bounds())

	rg.Transform(Scale(2, 1))
	assert.Equal(t, Rect{10, 5, 30, 15}, rg.Bounds())

	rot := RegionFromRect(Rect{0, 0, 10, 10})
	rot.Transform(Translate(20, 20).Multiply(Rotate(45)))
	require.False(t, rot.IsEmpty())
	assert.True(t, rot.Contains(20.5, 25))
	assert.False(t, rot.Contains(25, 21))
}

func TestRegionSetPath(t *testing.T) {
	p := NewPath()
	p.AddCircle(10, 10, 5, DirectionCW)
	rg := NewRegion()
	require.True(t, rg.SetPath(p, nil))
	assert.True(t, rg.Contains(10, 10))
	assert.False(t, rg.Contains(5.2, 5.2))
	assert.InDelta(t, 78.5, rg.Area(), 8)

	p.ToggleInverseFillType()
	assert.False(t, NewRegion().SetPath(p, nil), "inverse fill needs a clip")

	inv := NewRegion()
	require.True(t, inv.SetPath(p, RegionFromRect(Rect{0, 0, 20, 20})))
	assert.True(t, inv.Contains(1, 1))
	assert.False(t, inv.Contains(10, 10))
}

// overlappingRects returns two same-direction rectangles overlapping in
// [5, 10) x [5, 10).
func overlappingRects(fill FillType) *Path {
	p := NewPath()
	p.AddRect(Rect{0, 0, 10, 10}, DirectionCW)
	p.AddRect(Rect{5, 5, 15, 15}, DirectionCW)
	p.SetFillType(fill)
	return p
}

func TestRegionSetPathHonorsEvenOdd(t *testing.T) {
	p := overlappingRects(FillTypeEvenOdd)
	require.True(t, p.IsSimplePath())

	rg := NewRegion()
	require.True(t, rg.SetPath(p, nil))
	assert.False(t, rg.Contains(7.5, 7.5), "overlap cancels under even-odd")
	assert.True(t, rg.Contains(2.5, 2.5))
	assert.True(t, rg.Contains(12.5, 12.5))
	assert.InDelta(t, 150, rg.Area(), 1e-9)

	union := RegionFromRect(Rect{0, 0, 20, 20})
	union.OpPath(overlappingRects(FillTypeWinding), RegionOpIntersect)
	assert.True(t, union.Contains(7.5, 7.5))
	assert.InDelta(t, 175, union.Area(), 1e-9)
}

func TestRegionBoundaryPathIsSimple(t *testing.T) {
	rg := RegionFromRect(Rect{0, 0, 10, 10})
	rg.OpRect(Rect{20, 0, 30, 10}, RegionOpUnion)
	p := rg.BoundaryPath()
	assert.True(t, p.IsSimplePath())
	assert.True(t, p.SimpleRegion().Equals(rg))
}
