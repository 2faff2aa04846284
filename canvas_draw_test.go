package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawRequiresPaint(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	assert.ErrorIs(t, c.DrawRect(Rect{0, 0, 1, 1}, nil), ErrInvalidArgument)
	assert.ErrorIs(t, c.DrawPath(nil, NewPaint()), ErrInvalidArgument)
}

func TestDrawColorModes(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	require.NoError(t, c.DrawRGB(10, 20, 30))
	assert.Equal(t, RGB(10, 20, 30), c.Bitmap().Pixel(3, 3))

	require.NoError(t, c.DrawColor(Transparent, BlendClear))
	assert.Equal(t, Transparent, c.Bitmap().Pixel(3, 3))

	require.NoError(t, c.DrawARGB(128, 255, 0, 0))
	assert.Equal(t, ARGB(128, 255, 0, 0), c.Bitmap().Pixel(0, 0))
}

func TestDrawPaintRespectsClip(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.ClipRect(Rect{2, 2, 4, 4}, RegionOpIntersect)
	require.NoError(t, c.DrawPaint(fillPaint(Green)))
	x0, y0, x1, y1, ok := paintedRect(c.Bitmap())
	require.True(t, ok)
	assert.Equal(t, [4]int{2, 2, 4, 4}, [4]int{x0, y0, x1, y1})
}

func TestDrawLinesValidation(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	p := fillPaint(Red)
	pts := []float64{0, 2.5, 10, 2.5, 5, 5}

	assert.ErrorIs(t, c.DrawLines(pts, 4, 4, p), ErrIndexOutOfBounds)
	assert.ErrorIs(t, c.DrawLines(pts, -1, 2, p), ErrIndexOutOfBounds)

	require.NoError(t, c.DrawLines(pts, 0, 6, p), "trailing values are ignored")
	bm := c.Bitmap()
	for x := range 10 {
		assert.Equal(t, Red, bm.Pixel(x, 2), "x=%d", x)
	}
	assert.Equal(t, Transparent, bm.Pixel(5, 3))
	assert.Equal(t, Transparent, bm.Pixel(5, 5))
}

func TestDrawPoints(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	p := fillPaint(Red)
	pts := []float64{2.5, 2.5, 7.5, 7.5, 1}

	assert.ErrorIs(t, c.DrawPoints(pts, 2, 4, p), ErrIndexOutOfBounds)
	require.NoError(t, c.DrawPoints(pts, 0, 5, p))
	bm := c.Bitmap()
	assert.Equal(t, Red, bm.Pixel(2, 2))
	assert.Equal(t, Red, bm.Pixel(7, 7))
	assert.Equal(t, Transparent, bm.Pixel(3, 2))

	round := fillPaint(Blue)
	round.StrokeWidth = 4
	round.StrokeCap = CapRound
	require.NoError(t, c.DrawPoint(5, 5, round))
	assert.Equal(t, Blue, bm.Pixel(5, 5))
	assert.Equal(t, Transparent, bm.Pixel(3, 3), "round points have no corners")
}

func TestDrawRectStyles(t *testing.T) {
	c := newTestCanvas(t, 12, 12)
	p := fillPaint(Red)
	p.Style = StyleStroke
	p.StrokeWidth = 2
	require.NoError(t, c.DrawRect(Rect{2, 2, 10, 10}, p))
	bm := c.Bitmap()
	assert.Equal(t, Red, bm.Pixel(1, 5))
	assert.Equal(t, Red, bm.Pixel(2, 5))
	assert.Equal(t, Transparent, bm.Pixel(5, 5))
	assert.Equal(t, Transparent, bm.Pixel(0, 5))

	p.Style = StyleFillAndStroke
	p.Color = Blue
	require.NoError(t, c.DrawRect(Rect{2, 2, 10, 10}, p))
	assert.Equal(t, Blue, bm.Pixel(5, 5))
	assert.Equal(t, Blue, bm.Pixel(1, 5))
}

func TestDrawCircleAntialiased(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	p := fillPaint(Black)
	p.SetAntiAlias(true)
	require.NoError(t, c.DrawCircle(10, 10, 6, p))
	bm := c.Bitmap()
	assert.Equal(t, Black, bm.Pixel(10, 10))
	assert.Equal(t, Transparent, bm.Pixel(1, 1))

	partial := 0
	for x := range 20 {
		if a := Alpha(bm.Pixel(x, 10)); a > 0 && a < 255 {
			partial++
		}
	}
	assert.Positive(t, partial, "edge pixels get fractional coverage")
	assert.NoError(t, c.DrawCircle(10, 10, 0, p))
}

func TestDrawOvalAndArc(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	require.NoError(t, c.DrawOval(Rect{0, 5, 20, 15}, fillPaint(Red)))
	bm := c.Bitmap()
	assert.Equal(t, Red, bm.Pixel(10, 10))
	assert.Equal(t, Transparent, bm.Pixel(10, 2))
	assert.Equal(t, Transparent, bm.Pixel(0, 5))

	c = newTestCanvas(t, 20, 20)
	require.NoError(t, c.DrawArc(Rect{0, 0, 20, 20}, 0, 90, true, fillPaint(Blue)))
	bm = c.Bitmap()
	assert.Equal(t, Blue, bm.Pixel(14, 14), "lower-right quadrant is the wedge")
	assert.Equal(t, Transparent, bm.Pixel(5, 5))
	assert.Equal(t, Transparent, bm.Pixel(14, 5))
}

func TestDrawRoundRects(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	require.NoError(t, c.DrawRoundRect(Rect{0, 0, 20, 20}, 8, 8, fillPaint(Red)))
	bm := c.Bitmap()
	assert.Equal(t, Red, bm.Pixel(10, 10))
	assert.Equal(t, Transparent, bm.Pixel(0, 0))

	err := c.DrawRoundRectRadii(Rect{0, 0, 5, 5}, []float64{1, 1}, fillPaint(Red))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDrawDoubleRoundRect(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	radii := make([]float64, 8)
	require.NoError(t, c.DrawDoubleRoundRect(Rect{0, 0, 20, 20}, radii, Rect{5, 5, 15, 15}, radii, fillPaint(Red)))
	bm := c.Bitmap()
	assert.Equal(t, Red, bm.Pixel(2, 2))
	assert.Equal(t, Transparent, bm.Pixel(10, 10))

	c = newTestCanvas(t, 20, 20)
	require.NoError(t, c.DrawDoubleRoundRect(Rect{0, 0, 10, 10}, radii, Rect{5, 5, 15, 15}, radii, fillPaint(Red)))
	_, _, _, _, ok := paintedRect(c.Bitmap())
	assert.False(t, ok, "inner outside outer draws nothing")
}

func TestDrawPathFillTypes(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	p := NewPath()
	p.AddRect(Rect{0, 0, 20, 20}, DirectionCW)
	p.MoveTo(5, 5)
	p.LineTo(15, 5)
	p.LineTo(15, 15)
	p.LineTo(5, 15)
	p.Close()
	p.SetFillType(FillTypeEvenOdd)
	require.NoError(t, c.DrawPath(p, fillPaint(Red)))
	assert.Equal(t, Transparent, c.Bitmap().Pixel(10, 10))
	assert.Equal(t, Red, c.Bitmap().Pixel(2, 2))

	c = newTestCanvas(t, 20, 20)
	p.SetFillType(FillTypeWinding)
	require.NoError(t, c.DrawPath(p, fillPaint(Red)))
	assert.Equal(t, Red, c.Bitmap().Pixel(10, 10))

	c = newTestCanvas(t, 20, 20)
	inv := NewPath()
	inv.AddRect(Rect{5, 5, 15, 15}, DirectionCW)
	inv.SetFillType(FillTypeInverseWinding)
	require.NoError(t, c.DrawPath(inv, fillPaint(Red)))
	assert.Equal(t, Transparent, c.Bitmap().Pixel(10, 10))
	assert.Equal(t, Red, c.Bitmap().Pixel(1, 1))
}

func TestDrawEvenOddRectangles(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	require.NoError(t, c.DrawPath(overlappingRects(FillTypeEvenOdd), fillPaint(Red)))
	bm := c.Bitmap()
	assert.Equal(t, Transparent, bm.Pixel(7, 7))
	assert.Equal(t, Red, bm.Pixel(2, 2))
	assert.Equal(t, Red, bm.Pixel(12, 12))

	c = newTestCanvas(t, 20, 20)
	require.NoError(t, c.DrawPath(overlappingRects(FillTypeWinding), fillPaint(Red)))
	assert.Equal(t, Red, c.Bitmap().Pixel(7, 7))
}

func TestClipEvenOddRectangles(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	require.True(t, c.ClipPath(overlappingRects(FillTypeEvenOdd), RegionOpIntersect))
	clip := c.Clip()
	assert.False(t, clip.Contains(7.5, 7.5))
	assert.True(t, clip.Contains(2.5, 2.5))

	require.NoError(t, c.DrawColor(Blue, BlendSrc))
	assert.Equal(t, Transparent, c.Bitmap().Pixel(7, 7))
	assert.Equal(t, Blue, c.Bitmap().Pixel(12, 12))
}

func TestDrawRegion(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	rg := RegionFromRect(Rect{0, 0, 2, 2})
	rg.OpRect(Rect{6, 6, 8, 8}, RegionOpUnion)
	require.NoError(t, c.DrawRegion(rg, fillPaint(Red)))
	bm := c.Bitmap()
	assert.Equal(t, Red, bm.Pixel(1, 1))
	assert.Equal(t, Red, bm.Pixel(7, 7))
	assert.Equal(t, Transparent, bm.Pixel(4, 4))
	assert.NoError(t, c.DrawRegion(NewRegion(), fillPaint(Red)))
}

func TestDrawPaintAlphaAndModes(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.Bitmap().Erase(White)
	p := fillPaint(Red)
	p.SetAlpha(128)
	require.NoError(t, c.DrawRect(Rect{0, 0, 4, 4}, p))
	got := c.Bitmap().Pixel(0, 0)
	assert.Equal(t, 255, RedOf(got))
	assert.InDelta(t, 127, GreenOf(got), 2)

	c.Bitmap().Erase(RGB(100, 100, 100))
	add := fillPaint(RGB(100, 0, 255))
	add.BlendMode = BlendAdd
	require.NoError(t, c.DrawRect(Rect{0, 0, 4, 4}, add))
	assert.Equal(t, RGB(200, 100, 255), c.Bitmap().Pixel(1, 1))

	c.Bitmap().Erase(White)
	mul := fillPaint(RGB(128, 0, 255))
	mul.BlendMode = BlendMultiply
	require.NoError(t, c.DrawRect(Rect{0, 0, 2, 4}, mul))
	got = c.Bitmap().Pixel(0, 0)
	assert.Equal(t, 127, RedOf(got))
	assert.Equal(t, 0, GreenOf(got))
	assert.Equal(t, White, c.Bitmap().Pixel(3, 0))
}

func TestDrawWithShader(t *testing.T) {
	c := newTestCanvas(t, 10, 2)
	g, err := NewLinearGradient(0, 0, 10, 0, []uint32{Black, White}, nil, TileClamp)
	require.NoError(t, err)
	p := NewPaint()
	p.Shader = g
	require.NoError(t, c.DrawPaint(p))
	bm := c.Bitmap()
	assert.Less(t, RedOf(bm.Pixel(0, 0)), 20)
	assert.Greater(t, RedOf(bm.Pixel(9, 0)), 235)

	c.Translate(5, 0)
	require.NoError(t, c.DrawPaint(p))
	assert.Less(t, RedOf(bm.Pixel(4, 0)), 5, "shaders follow the canvas transform")
}

func TestDrawWithColorFilter(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	p := fillPaint(Red)
	p.ColorFilter = PorterDuffColorFilter{Color: Blue, Mode: BlendSrcIn}
	require.NoError(t, c.DrawRect(Rect{0, 0, 4, 4}, p))
	assert.Equal(t, Blue, c.Bitmap().Pixel(2, 2))
}

type drawFilterFunc func(p *Paint)

func (f drawFilterFunc) Filter(p *Paint) { f(p) }

func TestDrawFilterAdjustsCopy(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.SetDrawFilter(drawFilterFunc(func(p *Paint) { p.Color = Green }))
	p := fillPaint(Red)
	require.NoError(t, c.DrawRect(Rect{0, 0, 4, 4}, p))
	assert.Equal(t, Green, c.Bitmap().Pixel(0, 0))
	assert.Equal(t, Red, p.Color, "the caller's paint is untouched")

	c.SetDrawFilter(PaintFlagsDrawFilter{Set: FlagAntiAlias})
	assert.NotNil(t, c.DrawFilter())
	c.SetDrawFilter(nil)
	assert.Nil(t, c.DrawFilter())
}

func TestHairlineIgnoresScale(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	c.Scale(4, 4)
	p := fillPaint(Red)
	require.NoError(t, c.DrawLine(0, 2.125, 5, 2.125, p))
	rows := 0
	for y := range 20 {
		if c.Bitmap().Pixel(10, y) == Red {
			rows++
		}
	}
	assert.Equal(t, 1, rows)
}
