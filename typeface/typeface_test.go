package typeface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type recorder struct {
	moves, lines, quads, cubics, closes int
	minY, maxY                          float64
}

func (r *recorder) track(y float64) {
	if r.moves+r.lines+r.quads+r.cubics == 0 || y < r.minY {
		r.minY = y
	}
	if y > r.maxY {
		r.maxY = y
	}
}

func (r *recorder) MoveTo(_, y float64)              { r.track(y); r.moves++ }
func (r *recorder) LineTo(_, y float64)              { r.track(y); r.lines++ }
func (r *recorder) QuadTo(_, _, _, y float64)        { r.track(y); r.quads++ }
func (r *recorder) CubicTo(_, _, _, _, _, y float64) { r.track(y); r.cubics++ }
func (r *recorder) Close()                           { r.closes++ }

func TestParse(t *testing.T) {
	tf, err := Parse("", Normal, goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "Go", tf.Family())
	assert.Equal(t, Normal, tf.Style())

	_, err = Parse("x", Normal, []byte("not a font"))
	assert.ErrorIs(t, err, ErrInvalidFont)
}

func TestMetrics(t *testing.T) {
	tf, err := Parse("sans", Normal, goregular.TTF)
	require.NoError(t, err)
	m, err := tf.Metrics(20)
	require.NoError(t, err)
	assert.Greater(t, m.Ascent, 10.0)
	assert.Greater(t, m.Descent, 0.0)
	assert.GreaterOrEqual(t, m.Leading, 0.0)
}

func TestShapeAndOutline(t *testing.T) {
	tf, err := Parse("sans", Normal, goregular.TTF)
	require.NoError(t, err)

	run := tf.Shape("Hi", 20, DirectionLTR)
	require.Len(t, run.Glyphs, 2)
	assert.Greater(t, run.Advance, 0.0)
	assert.Equal(t, 0.0, run.Glyphs[0].X)
	assert.InDelta(t, run.Glyphs[0].Advance, run.Glyphs[1].X, 1e-9)
	assert.Equal(t, 0, run.Glyphs[0].Cluster)
	assert.Equal(t, 1, run.Glyphs[1].Cluster)

	var rec recorder
	require.NoError(t, tf.Outline(run.Glyphs[0].ID, 20, 0, 100, &rec))
	assert.Positive(t, rec.moves)
	assert.Equal(t, rec.moves, rec.closes)
	// outline sits above the baseline in y-down space
	assert.Less(t, rec.minY, 100.0)
	assert.LessOrEqual(t, rec.maxY, 100.5)
}

func TestShapeMeasureMonospace(t *testing.T) {
	tf, err := Parse("mono", Normal, gomono.TTF)
	require.NoError(t, err)
	one := tf.Measure("a", 16)
	assert.InDelta(t, 4*one, tf.Measure("abcd", 16), 1e-6)
	assert.Equal(t, 0.0, tf.Measure("", 16))
}

func TestShapeRightToLeft(t *testing.T) {
	tf, err := Parse("sans", Normal, goregular.TTF)
	require.NoError(t, err)
	run := tf.Shape("abc", 16, DirectionRTL)
	require.Len(t, run.Glyphs, 3)
	// visual order is reversed for a right-to-left run
	assert.Equal(t, 2, run.Glyphs[0].Cluster)
	assert.Equal(t, 0, run.Glyphs[2].Cluster)
}

func TestRegistryResolution(t *testing.T) {
	r := NewRegistry(4)
	assert.Equal(t, []string{Monospace, SansSerif}, r.Families())

	tf, err := r.Create("Monospace", Bold)
	require.NoError(t, err)
	assert.Equal(t, Monospace, tf.Family())
	assert.Equal(t, Bold, tf.Style())

	tf, err = r.Create("no-such-family", Style{Weight: 800, Italic: true})
	require.NoError(t, err)
	assert.Equal(t, SansSerif, tf.Family())
	assert.Equal(t, BoldItalic, tf.Style())

	tf, err = r.Create("serif", Style{Weight: 300})
	require.NoError(t, err)
	assert.Equal(t, Normal, tf.Style())

	assert.Same(t, r.Default(), r.Default())
}

func TestRegistryCacheIsBounded(t *testing.T) {
	r := NewRegistry(2)
	first, err := r.Create(SansSerif, Normal)
	require.NoError(t, err)
	_, err = r.Create(SansSerif, Bold)
	require.NoError(t, err)
	_, err = r.Create(Monospace, Normal)
	require.NoError(t, err)

	stats := r.CacheStats()
	assert.Equal(t, 2, stats.Len)
	assert.Equal(t, uint64(1), stats.Evictions)

	again, err := r.Create(SansSerif, Normal)
	require.NoError(t, err)
	assert.NotSame(t, first, again, "evicted face is parsed again")
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(4)
	require.NoError(t, r.Register("Custom", Normal, gomono.TTF))
	tf, err := r.Create("custom", Normal)
	require.NoError(t, err)
	assert.Equal(t, "custom", tf.Family())

	assert.Error(t, r.Register("broken", Normal, []byte{1, 2, 3}))
}
