package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// BitmapConfig is the pixel format of a bitmap.
type BitmapConfig uint8

const (
	// ConfigARGB8888 stores 8 bits per channel.
	ConfigARGB8888 BitmapConfig = iota
	// ConfigRGB565 stores opaque colors with 5, 6 and 5 bits.
	ConfigRGB565
	// ConfigAlpha8 stores only alpha.
	ConfigAlpha8
	// ConfigHardware marks a GPU-resident bitmap. The software canvas only
	// reads it when Config.AllowHardwareBitmaps is set.
	ConfigHardware
)

var configNames = [...]string{"ARGB8888", "RGB565", "Alpha8", "Hardware"}

func (c BitmapConfig) String() string {
	if int(c) < len(configNames) {
		return configNames[c]
	}
	return fmt.Sprintf("BitmapConfig(%d)", c)
}

// bytesPerPixel returns the storage size a pixel would need on device.
func (c BitmapConfig) bytesPerPixel() int {
	switch c {
	case ConfigRGB565:
		return 2
	case ConfigAlpha8:
		return 1
	}
	return 4
}

// PixelBuffer is a mutable raster of non-premultiplied ARGB pixels.
// Coordinates outside the buffer are ignored by setters and read as
// transparent.
type PixelBuffer interface {
	Width() int
	Height() int
	Config() BitmapConfig
	Pixel(x, y int) uint32
	SetPixel(x, y int, c uint32)
	// ReadRow copies up to len(dst) pixels of row y into dst.
	ReadRow(y int, dst []uint32)
	// WriteRow stores up to len(src) pixels into row y.
	WriteRow(y int, src []uint32)
}

// Bitmap is the PixelBuffer used by canvases and layers. Pixels are kept
// as ARGB values already quantized to the bitmap's config.
type Bitmap struct {
	width    int
	height   int
	config   BitmapConfig
	pix      []uint32
	mutable  bool
	recycled bool
}

// NewBitmap creates a mutable, transparent bitmap.
func NewBitmap(width, height int, config BitmapConfig) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: bitmap size %dx%d", ErrInvalidArgument, width, height)
	}
	if config > ConfigHardware {
		return nil, fmt.Errorf("%w: bitmap config %v", ErrInvalidArgument, config)
	}
	b := &Bitmap{
		width:   width,
		height:  height,
		config:  config,
		pix:     make([]uint32, width*height),
		mutable: true,
	}
	if config == ConfigRGB565 {
		b.Erase(Black)
	}
	return b, nil
}

// BitmapFromImage copies img into a new mutable ARGB8888 bitmap.
func BitmapFromImage(img image.Image) (*Bitmap, error) {
	r := img.Bounds()
	b, err := NewBitmap(r.Dx(), r.Dy(), ConfigARGB8888)
	if err != nil {
		return nil, err
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			b.pix[y*b.width+x] = uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		}
	}
	return b, nil
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Config returns the pixel format.
func (b *Bitmap) Config() BitmapConfig { return b.config }

// ByteCount returns the storage size of the pixels in the bitmap's format.
func (b *Bitmap) ByteCount() int {
	return b.width * b.height * b.config.bytesPerPixel()
}

// IsMutable reports whether the bitmap may be drawn into.
func (b *Bitmap) IsMutable() bool { return b.mutable }

// SetImmutable makes the bitmap read-only. It cannot be undone.
func (b *Bitmap) SetImmutable() { b.mutable = false }

// Recycle releases the pixels. A recycled bitmap cannot be drawn.
func (b *Bitmap) Recycle() {
	b.recycled = true
	b.pix = nil
}

// IsRecycled reports whether Recycle was called.
func (b *Bitmap) IsRecycled() bool { return b.recycled }

// HasAlpha reports whether the format stores transparency.
func (b *Bitmap) HasAlpha() bool { return b.config != ConfigRGB565 }

// Pixel returns the color at (x, y).
func (b *Bitmap) Pixel(x, y int) uint32 {
	if x < 0 || y < 0 || x >= b.width || y >= b.height || b.recycled {
		return Transparent
	}
	return b.pix[y*b.width+x]
}

// SetPixel stores c at (x, y), quantized to the bitmap's format.
func (b *Bitmap) SetPixel(x, y int, c uint32) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height || b.recycled {
		return
	}
	b.pix[y*b.width+x] = b.config.quantize(c)
}

// ReadRow copies up to len(dst) pixels of row y into dst.
func (b *Bitmap) ReadRow(y int, dst []uint32) {
	if y < 0 || y >= b.height || b.recycled {
		return
	}
	copy(dst, b.pix[y*b.width:(y+1)*b.width])
}

// WriteRow stores up to len(src) pixels into row y.
func (b *Bitmap) WriteRow(y int, src []uint32) {
	if y < 0 || y >= b.height || b.recycled {
		return
	}
	row := b.pix[y*b.width : (y+1)*b.width]
	n := min(len(src), len(row))
	for i := range n {
		row[i] = b.config.quantize(src[i])
	}
}

// Erase fills the bitmap with c.
func (b *Bitmap) Erase(c uint32) {
	q := b.config.quantize(c)
	for i := range b.pix {
		b.pix[i] = q
	}
}

// Copy returns a copy converted to config.
func (b *Bitmap) Copy(config BitmapConfig, mutable bool) (*Bitmap, error) {
	if b.recycled {
		return nil, ErrRecycledBitmap
	}
	out, err := NewBitmap(b.width, b.height, config)
	if err != nil {
		return nil, err
	}
	for i, c := range b.pix {
		out.pix[i] = config.quantize(c)
	}
	out.mutable = mutable
	return out, nil
}

// quantize drops the precision the format cannot store.
func (c BitmapConfig) quantize(p uint32) uint32 {
	switch c {
	case ConfigRGB565:
		r := (p >> 19) & 0x1f
		g := (p >> 10) & 0x3f
		bl := (p >> 3) & 0x1f
		return 0xff000000 | (r<<3|r>>2)<<16 | (g<<2|g>>4)<<8 | (bl<<3 | bl>>2)
	case ConfigAlpha8:
		return p & 0xff000000
	}
	return p
}

// Image returns a copy of the pixels as an image.
func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, c := range b.pix {
		img.Pix[4*i+0] = uint8(c >> 16)
		img.Pix[4*i+1] = uint8(c >> 8)
		img.Pix[4*i+2] = uint8(c)
		img.Pix[4*i+3] = uint8(c >> 24)
	}
	return img
}

// SavePNG writes the bitmap to a PNG file.
func (b *Bitmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, b.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	c := b.Pixel(x, y)
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	return color.NRGBAModel
}
