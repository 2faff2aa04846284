package canvas

// Colors are packed non-premultiplied ARGB values, 0xAARRGGBB.
const (
	Transparent uint32 = 0x00000000
	Black       uint32 = 0xff000000
	White       uint32 = 0xffffffff
	Gray        uint32 = 0xff888888
	Red         uint32 = 0xffff0000
	Green       uint32 = 0xff00ff00
	Blue        uint32 = 0xff0000ff
	Yellow      uint32 = 0xffffff00
	Cyan        uint32 = 0xff00ffff
	Magenta     uint32 = 0xffff00ff
)

// ARGB packs four components in the range 0-255. Values are clamped.
func ARGB(a, r, g, b int) uint32 {
	return uint32(clampByte(a))<<24 | uint32(clampByte(r))<<16 |
		uint32(clampByte(g))<<8 | uint32(clampByte(b))
}

// RGB returns an opaque color.
func RGB(r, g, b int) uint32 {
	return ARGB(255, r, g, b)
}

// Alpha returns the alpha component of c.
func Alpha(c uint32) int { return int(c >> 24) }

// RedOf returns the red component of c.
func RedOf(c uint32) int { return int(c>>16) & 0xff }

// GreenOf returns the green component of c.
func GreenOf(c uint32) int { return int(c>>8) & 0xff }

// BlueOf returns the blue component of c.
func BlueOf(c uint32) int { return int(c) & 0xff }

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c uint32, a int) uint32 {
	return c&0x00ffffff | uint32(clampByte(a))<<24
}

// mulAlpha scales the alpha of c by a/255.
func mulAlpha(c uint32, a int) uint32 {
	if a >= 255 {
		return c
	}
	ca := int(c >> 24)
	return c&0x00ffffff | uint32((ca*a+127)/255)<<24
}

func clampByte(v int) int {
	return min(max(v, 0), 255)
}
