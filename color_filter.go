package canvas

import "github.com/gogpu/canvas/internal/blend"

// ColorFilter rewrites the source pixels of a draw before they are
// blended into the destination. Filter runs on an ARGB8888 buffer.
type ColorFilter interface {
	Filter(src PixelBuffer) error
}

// PorterDuffColorFilter blends a constant color into the source pixels:
// the filter color acts as source, the drawn pixel as destination.
type PorterDuffColorFilter struct {
	Color uint32
	Mode  BlendMode
}

// Filter implements ColorFilter.
func (f PorterDuffColorFilter) Filter(src PixelBuffer) error {
	if !f.Mode.IsNative() {
		bc, err := NewBlendComposite(f.Mode, 1)
		if err != nil {
			return err
		}
		solid, err := NewBitmap(src.Width(), src.Height(), ConfigARGB8888)
		if err != nil {
			return err
		}
		solid.Erase(f.Color)
		return bc.Compose(solid, src)
	}

	row := make([]uint32, src.Width())
	for y := range src.Height() {
		src.ReadRow(y, row)
		for x, c := range row {
			row[x] = blend.PorterDuff(blend.Mode(f.Mode), f.Color, c)
		}
		src.WriteRow(y, row)
	}
	return nil
}

// LightingColorFilter multiplies the RGB channels by Mul and then adds Add,
// leaving alpha unchanged.
type LightingColorFilter struct {
	Mul uint32
	Add uint32
}

// Filter implements ColorFilter.
func (f LightingColorFilter) Filter(src PixelBuffer) error {
	row := make([]uint32, src.Width())
	for y := range src.Height() {
		src.ReadRow(y, row)
		for x, c := range row {
			row[x] = f.apply(c)
		}
		src.WriteRow(y, row)
	}
	return nil
}

func (f LightingColorFilter) apply(c uint32) uint32 {
	out := c & 0xff000000
	for shift := uint(0); shift < 24; shift += 8 {
		v := int(c>>shift) & 0xff
		m := int(f.Mul>>shift) & 0xff
		a := int(f.Add>>shift) & 0xff
		out |= uint32(min(255, (v*m+127)/255+a)) << shift
	}
	return out
}
