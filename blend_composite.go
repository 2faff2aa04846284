package canvas

import (
	"fmt"
	"math"

	"github.com/gogpu/canvas/internal/blend"
)

// BlendMode selects how source pixels combine with the destination.
type BlendMode uint8

// Porter-Duff modes are handled by the fill pipeline. The separable modes
// from BlendDarken on go through BlendComposite.
const (
	BlendClear    = BlendMode(blend.Clear)
	BlendSrc      = BlendMode(blend.Src)
	BlendDst      = BlendMode(blend.Dst)
	BlendSrcOver  = BlendMode(blend.SrcOver)
	BlendDstOver  = BlendMode(blend.DstOver)
	BlendSrcIn    = BlendMode(blend.SrcIn)
	BlendDstIn    = BlendMode(blend.DstIn)
	BlendSrcOut   = BlendMode(blend.SrcOut)
	BlendDstOut   = BlendMode(blend.DstOut)
	BlendSrcAtop  = BlendMode(blend.SrcAtop)
	BlendDstAtop  = BlendMode(blend.DstAtop)
	BlendXor      = BlendMode(blend.Xor)
	BlendDarken   = BlendMode(blend.Darken)
	BlendLighten  = BlendMode(blend.Lighten)
	BlendMultiply = BlendMode(blend.Multiply)
	BlendScreen   = BlendMode(blend.Screen)
	BlendAdd      = BlendMode(blend.Add)
	BlendOverlay  = BlendMode(blend.Overlay)
)

var blendModeNames = [...]string{
	"Clear", "Src", "Dst", "SrcOver", "DstOver", "SrcIn", "DstIn", "SrcOut",
	"DstOut", "SrcAtop", "DstAtop", "Xor", "Darken", "Lighten", "Multiply",
	"Screen", "Add", "Overlay",
}

func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", m)
}

// IsNative reports whether the fill pipeline handles m without
// BlendComposite.
func (m BlendMode) IsNative() bool {
	return blend.Mode(m).IsPorterDuff()
}

// BlendComposite composites whole ARGB8888 buffers with one of the
// separable blend modes and a constant alpha.
type BlendComposite struct {
	mode  BlendMode
	alpha float64
	fn    blend.ChannelFunc
}

// NewBlendComposite creates a compositor. alpha is clamped to [0, 1].
// Porter-Duff modes are rejected with ErrInvalidArgument.
func NewBlendComposite(mode BlendMode, alpha float64) (*BlendComposite, error) {
	fn, ok := blend.Channel(blend.Mode(mode))
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a composite blend mode", ErrInvalidArgument, mode)
	}
	if math.IsNaN(alpha) {
		alpha = 1
	}
	return &BlendComposite{mode: mode, alpha: clamp01(alpha), fn: fn}, nil
}

// Mode returns the blend mode.
func (bc *BlendComposite) Mode() BlendMode { return bc.mode }

// Alpha returns the clamped compositing alpha.
func (bc *BlendComposite) Alpha() float64 { return bc.alpha }

// Compose blends src into dst in place over the area both buffers cover,
// starting at their origins. Pixels outside that area are untouched.
//
// Before blending, the source alpha is scaled by the destination alpha
// fraction, rounded to nearest: srcA' = (srcA*dstA + 127) / 255. Over a
// transparent destination the result alpha therefore stays 0, which is
// what color filters rely on; the color channels may still change for
// modes such as Add, Screen and Lighten. With alpha below 1 the blended
// result is interpolated with the original destination; alpha 0 leaves
// dst bitwise unchanged.
func (bc *BlendComposite) Compose(src, dst PixelBuffer) error {
	if src.Config() != ConfigARGB8888 || dst.Config() != ConfigARGB8888 {
		return fmt.Errorf("%w: composite needs ARGB8888, got %v and %v",
			ErrUnsupportedFormat, src.Config(), dst.Config())
	}
	if bc.alpha == 0 {
		return nil
	}
	w := min(src.Width(), dst.Width())
	h := min(src.Height(), dst.Height())
	if w <= 0 || h <= 0 {
		return nil
	}

	srcRow := make([]uint32, w)
	dstRow := make([]uint32, w)
	for y := range h {
		src.ReadRow(y, srcRow)
		dst.ReadRow(y, dstRow)
		for x := range w {
			dstRow[x] = bc.composePixel(srcRow[x], dstRow[x])
		}
		dst.WriteRow(y, dstRow)
	}
	return nil
}

func (bc *BlendComposite) composePixel(s, d uint32) uint32 {
	sc := blend.Decode(s)
	dc := blend.Decode(d)
	sc[3] = (sc[3]*dc[3] + 127) / 255
	out := bc.fn(sc, dc)
	if bc.alpha < 1 {
		for i := range out {
			out[i] = dc[i] + int(math.Round(float64(out[i]-dc[i])*bc.alpha))
		}
	}
	return blend.Encode(out)
}
