package canvas

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/canvas/typeface"
)

// SaveFlags selects which parts of the state a save frame restores.
type SaveFlags uint8

const (
	// SaveMatrix restores the transform on Restore.
	SaveMatrix SaveFlags = 1 << iota
	// SaveClip restores the clip on Restore.
	SaveClip
	// SaveAll restores both the transform and the clip.
	SaveAll = SaveMatrix | SaveClip
)

// layer is the offscreen target created by SaveLayer.
type layer struct {
	bitmap *Bitmap // nil when the layer area is empty
	origin image.Point
	alpha  int
	mode   BlendMode
	filter ColorFilter
}

func (l *layer) bounds() image.Rectangle {
	if l.bitmap == nil {
		return image.Rectangle{}
	}
	return image.Rect(l.origin.X, l.origin.Y, l.origin.X+l.bitmap.Width(), l.origin.Y+l.bitmap.Height())
}

// snapshot is one frame of the state stack. Regions referenced by a frame
// are never mutated; clip changes install a fresh region.
type snapshot struct {
	matrix Matrix
	clip   *Region
	mask   *image.Alpha // lazily built coverage of clip
	flags  SaveFlags
	layer  *layer // set on the frame that created the layer
	target int    // index of the frame owning the draw target, -1 for the bitmap
}

// Canvas records drawing state and rasterizes draw calls into a bitmap.
//
// State is kept as a stack of frames. Save pushes a frame, Restore pops
// it and, for frames created by SaveLayer, composites the layer into the
// target below. A Canvas is not safe for concurrent use.
type Canvas struct {
	bitmap    *Bitmap
	stack     []snapshot
	filter    DrawFilter
	config    Config
	raster    Rasterizer
	typefaces *typeface.Registry
	disposed  bool
}

var (
	sharedOnce      sync.Once
	sharedTypefaces *typeface.Registry
)

func defaultTypefaces(size int) *typeface.Registry {
	sharedOnce.Do(func() {
		sharedTypefaces = typeface.NewRegistry(size)
	})
	return sharedTypefaces
}

// New creates a canvas drawing into bm. bm may be nil, in which case the
// canvas has an empty clip and draws fail with ErrNotBound until
// SetBitmap is called.
func New(bm *Bitmap, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	c := &Canvas{
		config:    o.config,
		raster:    o.rasterizer,
		typefaces: o.typefaces,
	}
	if c.raster == nil {
		c.raster = DefaultRasterizer()
	}
	if c.typefaces == nil {
		c.typefaces = defaultTypefaces(o.config.TypefaceCacheSize)
	}
	if err := c.SetBitmap(bm); err != nil {
		return nil, err
	}
	return c, nil
}

// SetBitmap binds the canvas to bm and resets the state stack to a single
// frame with the identity transform and a clip covering the bitmap.
func (c *Canvas) SetBitmap(bm *Bitmap) error {
	c.mustLive()
	if bm != nil {
		switch {
		case bm.IsRecycled():
			return ErrRecycledBitmap
		case !bm.IsMutable():
			return ErrImmutableBitmap
		case bm.Config() == ConfigHardware:
			return fmt.Errorf("%w: cannot draw into a hardware bitmap", ErrUnsupportedConfiguration)
		}
	}
	if len(c.stack) > 1 {
		Logger().Debug("canvas: rebinding discards saved state", "depth", len(c.stack))
	}
	c.bitmap = bm
	clip := NewRegion()
	if bm != nil {
		clip.Set(RectXYWH(0, 0, float64(bm.Width()), float64(bm.Height())))
	}
	c.stack = append(c.stack[:0], snapshot{
		matrix: Identity(),
		clip:   clip,
		flags:  SaveAll,
		target: -1,
	})
	return nil
}

// Bitmap returns the bound bitmap, or nil.
func (c *Canvas) Bitmap() *Bitmap { return c.bitmap }

// Width returns the width of the bound bitmap, or 0.
func (c *Canvas) Width() int {
	if c.bitmap == nil {
		return 0
	}
	return c.bitmap.Width()
}

// Height returns the height of the bound bitmap, or 0.
func (c *Canvas) Height() int {
	if c.bitmap == nil {
		return 0
	}
	return c.bitmap.Height()
}

// Dispose releases the state stack. Later state operations panic with
// ErrDisposed and draws return it.
func (c *Canvas) Dispose() {
	c.disposed = true
	c.stack = nil
	c.bitmap = nil
}

// IsDisposed reports whether Dispose has been called.
func (c *Canvas) IsDisposed() bool { return c.disposed }

// SetDrawFilter installs a filter applied to every paint before drawing.
// nil removes it.
func (c *Canvas) SetDrawFilter(f DrawFilter) { c.filter = f }

// DrawFilter returns the installed filter, or nil.
func (c *Canvas) DrawFilter() DrawFilter { return c.filter }

func (c *Canvas) mustLive() {
	if c.disposed {
		panic(ErrDisposed)
	}
}

func (c *Canvas) top() *snapshot {
	return &c.stack[len(c.stack)-1]
}

// Save pushes a frame that restores the parts of the state named by flags
// and returns the save count before the push, suitable for
// RestoreToCount.
func (c *Canvas) Save(flags SaveFlags) int {
	c.mustLive()
	n := len(c.stack)
	frame := *c.top()
	frame.flags = flags
	frame.layer = nil
	c.stack = append(c.stack, frame)
	return n
}

// SaveCount returns the number of frames on the stack. A fresh canvas
// has a count of 1.
func (c *Canvas) SaveCount() int {
	c.mustLive()
	return len(c.stack)
}

// Restore pops the top frame. Parts of the state the frame did not save
// carry over to the frame below. Restoring a layer frame composites the
// layer into the target below it. The frame is popped even when
// compositing fails; the layer is then discarded and the error returned.
func (c *Canvas) Restore() error {
	if c.disposed {
		return ErrDisposed
	}
	if len(c.stack) <= 1 {
		Logger().Error("canvas: restore without matching save")
		return ErrStackUnderflow
	}
	n := len(c.stack)
	frame := c.stack[n-1]
	c.stack = c.stack[:n-1]
	parent := c.top()
	if frame.flags&SaveMatrix == 0 {
		parent.matrix = frame.matrix
	}
	if frame.flags&SaveClip == 0 && frame.layer == nil {
		parent.clip = frame.clip
		parent.mask = frame.mask
	}
	if frame.layer != nil {
		if err := c.compositeLayer(frame.layer); err != nil {
			Logger().Warn("canvas: layer composite failed", "err", err)
			return err
		}
	}
	return nil
}

// RestoreToCount pops frames until SaveCount equals count. A count above
// the current depth does nothing.
func (c *Canvas) RestoreToCount(count int) error {
	if c.disposed {
		return ErrDisposed
	}
	if count < 1 {
		Logger().Error("canvas: restore to invalid count", "count", count)
		return fmt.Errorf("%w: count %d", ErrStackUnderflow, count)
	}
	for len(c.stack) > count {
		if err := c.Restore(); err != nil {
			return err
		}
	}
	return nil
}

// SaveLayer pushes a frame that redirects drawing into an offscreen
// bitmap. bounds, in local coordinates, limits the layer size; nil uses
// the current clip. On Restore the layer is composited with paint's
// alpha, blend mode and color filter; a nil paint composites with
// SrcOver at full opacity.
func (c *Canvas) SaveLayer(bounds *Rect, paint *Paint, flags SaveFlags) int {
	c.mustLive()
	n := len(c.stack)
	frame := *c.top()

	area := frame.clip.Bounds()
	if bounds != nil {
		mapped := frame.matrix.MapRect(bounds.Sort())
		area, _ = area.Intersect(mapped)
	}
	ir := area.RoundOut().Intersect(c.targetBounds())

	l := &layer{origin: ir.Min, alpha: 255, mode: BlendSrcOver}
	if paint != nil {
		l.alpha = paint.Alpha()
		l.mode = paint.BlendMode
		l.filter = paint.ColorFilter
	}
	if !ir.Empty() {
		l.bitmap, _ = NewBitmap(ir.Dx(), ir.Dy(), ConfigARGB8888)
	}

	clip := frame.clip.Clone()
	clip.OpRect(rectFromImage(ir), RegionOpIntersect)
	frame.clip = clip
	frame.mask = nil
	frame.flags = flags
	frame.layer = l
	frame.target = n
	c.stack = append(c.stack, frame)

	Logger().Debug("canvas: layer allocated",
		"bounds", ir, "alpha", l.alpha, "mode", l.mode, "depth", n)
	return n
}

// SaveLayerAlpha is SaveLayer with a paint carrying only alpha.
func (c *Canvas) SaveLayerAlpha(bounds *Rect, alpha int, flags SaveFlags) int {
	p := NewPaint()
	p.SetAlpha(alpha)
	return c.SaveLayer(bounds, p, flags)
}

// Translate preconcatenates a translation.
func (c *Canvas) Translate(dx, dy float64) { c.Concat(Translate(dx, dy)) }

// Scale preconcatenates a scale.
func (c *Canvas) Scale(sx, sy float64) { c.Concat(Scale(sx, sy)) }

// Rotate preconcatenates a rotation in degrees.
func (c *Canvas) Rotate(degrees float64) { c.Concat(Rotate(degrees)) }

// RotateAbout preconcatenates a rotation in degrees around (px, py).
func (c *Canvas) RotateAbout(degrees, px, py float64) {
	c.Concat(Translate(px, py).Multiply(Rotate(degrees)).Multiply(Translate(-px, -py)))
}

// Skew preconcatenates a skew.
func (c *Canvas) Skew(kx, ky float64) { c.Concat(Skew(kx, ky)) }

// Concat preconcatenates m with the current transform.
func (c *Canvas) Concat(m Matrix) {
	c.mustLive()
	f := c.top()
	f.matrix = f.matrix.PreConcat(m)
}

// SetMatrix replaces the current transform.
func (c *Canvas) SetMatrix(m Matrix) {
	c.mustLive()
	c.top().matrix = m
}

// Matrix returns the current transform.
func (c *Canvas) Matrix() Matrix {
	c.mustLive()
	return c.top().matrix
}

// drawTarget returns the bitmap the top frame draws into and its device
// origin.
func (c *Canvas) drawTarget() (*Bitmap, image.Point) {
	f := c.top()
	if f.target < 0 {
		return c.bitmap, image.Point{}
	}
	l := c.stack[f.target].layer
	return l.bitmap, l.origin
}

// targetBounds returns the device rectangle covered by the draw target.
func (c *Canvas) targetBounds() image.Rectangle {
	f := c.top()
	if f.target >= 0 {
		return c.stack[f.target].layer.bounds()
	}
	if c.bitmap == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, c.bitmap.Width(), c.bitmap.Height())
}
