package canvas

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulate(t *testing.T) {
	order := []int{0, 1, 2, 3, 4}
	assert.Equal(t, [][3]int{{0, 1, 2}}, triangulate(VertexModeTriangles, order))
	assert.Equal(t, [][3]int{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}}, triangulate(VertexModeTriangleStrip, order))
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}, triangulate(VertexModeTriangleFan, order))
	assert.Empty(t, triangulate(VertexModeTriangles, order[:2]))
	assert.Equal(t, "TriangleFan", VertexModeTriangleFan.String())
}

var squareVerts = []float64{0, 0, 10, 0, 10, 10, 0, 10}

func TestDrawVerticesFan(t *testing.T) {
	c := newTestCanvas(t, 12, 12)
	require.NoError(t, c.DrawVertices(Vertices{
		Mode:        VertexModeTriangleFan,
		VertexCount: len(squareVerts),
		Verts:       squareVerts,
	}, fillPaint(Red)))
	x0, y0, x1, y1, ok := paintedRect(c.Bitmap())
	require.True(t, ok)
	assert.Equal(t, [4]int{0, 0, 10, 10}, [4]int{x0, y0, x1, y1})
	assert.Equal(t, Red, c.Bitmap().Pixel(5, 5))
}

func TestDrawVerticesInterpolatesColors(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	require.NoError(t, c.DrawVertices(Vertices{
		Mode:        VertexModeTriangles,
		VertexCount: len(squareVerts),
		Verts:       squareVerts,
		Colors:      []uint32{Red, Blue, Blue, Red},
		Indices:     []uint16{0, 1, 2, 0, 2, 3},
		IndexCount:  6,
	}, fillPaint(Black)))
	left, right := c.Bitmap().Pixel(0, 5), c.Bitmap().Pixel(9, 5)
	assert.Greater(t, RedOf(left), BlueOf(left))
	assert.Greater(t, BlueOf(right), RedOf(right))
	assert.Equal(t, 255, Alpha(left))
	assert.Zero(t, GreenOf(left), "the paint color is replaced by vertex colors")
}

func TestDrawVerticesWithShaderTexture(t *testing.T) {
	bm := splitBitmap(t, 2, 2, Green, Blue)
	p := NewPaint()
	p.Shader = NewBitmapShader(bm, TileClamp, TileClamp)
	c := newTestCanvas(t, 10, 10)
	require.NoError(t, c.DrawVertices(Vertices{
		Mode:        VertexModeTriangleFan,
		VertexCount: len(squareVerts),
		Verts:       squareVerts,
		Texs:        []float64{0, 0, 2, 0, 2, 2, 0, 2},
	}, p))
	assert.Equal(t, Green, c.Bitmap().Pixel(2, 5))
	assert.Equal(t, Blue, c.Bitmap().Pixel(8, 5))
}

func TestDrawVerticesValidation(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	p := fillPaint(Red)

	err := c.DrawVertices(Vertices{VertexCount: 10, Verts: squareVerts}, p)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	err = c.DrawVertices(Vertices{VertexCount: 8, Verts: squareVerts, Colors: []uint32{Red}}, p)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	err = c.DrawVertices(Vertices{
		VertexCount: 8, Verts: squareVerts,
		Indices: []uint16{0, 1, 4}, IndexCount: 3,
	}, p)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	err = c.DrawVertices(Vertices{
		VertexCount: 8, Verts: squareVerts,
		Indices: []uint16{0, 1, 2}, IndexOffset: 1, IndexCount: 3,
	}, p)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	assert.ErrorIs(t, c.DrawVertices(Vertices{}, nil), ErrInvalidArgument)
	assert.NoError(t, c.DrawVertices(Vertices{}, p))
}

func TestDrawVerticesTexturesWithoutShaderWarn(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	c := newTestCanvas(t, 10, 10)
	require.NoError(t, c.DrawVertices(Vertices{
		Mode:        VertexModeTriangleFan,
		VertexCount: len(squareVerts),
		Verts:       squareVerts,
		Texs:        squareVerts,
	}, fillPaint(Red)))
	assert.True(t, strings.Contains(buf.String(), "texture coordinates ignored"))
	assert.Equal(t, Red, c.Bitmap().Pixel(5, 5))
}

func TestDrawVerticesSkipsDegenerateTriangles(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	line := []float64{0, 0, 5, 5, 9, 9}
	require.NoError(t, c.DrawVertices(Vertices{VertexCount: len(line), Verts: line}, fillPaint(Red)))
	_, _, _, _, ok := paintedRect(c.Bitmap())
	assert.False(t, ok)
}
