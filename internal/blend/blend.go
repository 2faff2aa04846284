// Package blend implements the per-pixel compositing operators used by the
// canvas: the Porter-Duff modes the rasterizer pipeline handles natively and
// the separable channel functions that need the custom compositor.
//
// Pixels are packed non-premultiplied ARGB (0xAARRGGBB). Porter-Duff math is
// carried out on premultiplied bytes and converted back.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
package blend

// Mode identifies a compositing operator.
type Mode uint8

const (
	Clear   Mode = iota // Result: 0
	Src                 // Result: S
	Dst                 // Result: D
	SrcOver             // Result: S + D*(1-Sa)
	DstOver             // Result: S*(1-Da) + D
	SrcIn               // Result: S*Da
	DstIn               // Result: D*Sa
	SrcOut              // Result: S*(1-Da)
	DstOut              // Result: D*(1-Sa)
	SrcAtop             // Result: S*Da + D*(1-Sa)
	DstAtop             // Result: S*(1-Da) + D*Sa
	Xor                 // Result: S*(1-Da) + D*(1-Sa)

	Darken   // min(S, D)
	Lighten  // max(S, D)
	Multiply // S*D
	Screen   // 1 - (1-S)*(1-D)
	Add      // min(1, S+D)
	Overlay  // Multiply or Screen depending on D
)

// IsPorterDuff reports whether m is one of the twelve Porter-Duff operators.
func (m Mode) IsPorterDuff() bool {
	return m <= Xor
}

// porterDuffFunc operates on premultiplied channels in the range 0-255.
type porterDuffFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var porterDuffFuncs = [...]porterDuffFunc{
	Clear:   blendClear,
	Src:     blendSource,
	Dst:     blendDestination,
	SrcOver: blendSourceOver,
	DstOver: blendDestinationOver,
	SrcIn:   blendSourceIn,
	DstIn:   blendDestinationIn,
	SrcOut:  blendSourceOut,
	DstOut:  blendDestinationOut,
	SrcAtop: blendSourceAtop,
	DstAtop: blendDestinationAtop,
	Xor:     blendXor,
}

// PorterDuff composites the non-premultiplied ARGB pixel src onto dst.
// Modes that are not Porter-Duff operators fall back to SrcOver.
func PorterDuff(m Mode, src, dst uint32) uint32 {
	if !m.IsPorterDuff() {
		m = SrcOver
	}
	sr, sg, sb, sa := premultiply(src)
	dr, dg, db, da := premultiply(dst)
	r, g, b, a := porterDuffFuncs[m](sr, sg, sb, sa, dr, dg, db, da)
	return unpremultiply(r, g, b, a)
}

// premultiply unpacks an ARGB pixel into premultiplied channels.
func premultiply(c uint32) (r, g, b, a byte) {
	a = byte(c >> 24)
	r = mulDiv255(byte(c>>16), a)
	g = mulDiv255(byte(c>>8), a)
	b = mulDiv255(byte(c), a)
	return r, g, b, a
}

// unpremultiply packs premultiplied channels back into an ARGB pixel.
func unpremultiply(r, g, b, a byte) uint32 {
	if a == 0 {
		return 0
	}
	if a < 255 {
		r = divAlpha(r, a)
		g = divAlpha(g, a)
		b = divAlpha(b, a)
	}
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// divAlpha computes c*255/a rounded, clamped to 255.
func divAlpha(c, a byte) byte {
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

// blendClear clears the destination to transparent black.
func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

// blendSource replaces destination with source.
func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// blendDestination keeps destination unchanged.
func blendDestination(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// blendSourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// blendDestinationOver composites destination over source.
// Formula: S * (1 - Da) + D
func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addClamp(mulDiv255(sr, invDa), dr),
		addClamp(mulDiv255(sg, invDa), dg),
		addClamp(mulDiv255(sb, invDa), db),
		addClamp(mulDiv255(sa, invDa), da)
}

// Formula: S * Da
func blendSourceIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

// Formula: D * Sa
func blendDestinationIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// Formula: S * (1 - Da)
func blendSourceOut(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return mulDiv255(sr, invDa), mulDiv255(sg, invDa), mulDiv255(sb, invDa), mulDiv255(sa, invDa)
}

// Formula: D * (1 - Sa)
func blendDestinationOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// blendSourceAtop keeps the destination alpha.
// Formula: S * Da + D * (1 - Sa)
func blendSourceAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(mulDiv255(sr, da), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, da), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, da), mulDiv255(db, invSa)),
		da
}

// blendDestinationAtop keeps the source alpha.
// Formula: S * (1 - Da) + D * Sa
func blendDestinationAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addClamp(mulDiv255(sr, invDa), mulDiv255(dr, sa)),
		addClamp(mulDiv255(sg, invDa), mulDiv255(dg, sa)),
		addClamp(mulDiv255(sb, invDa), mulDiv255(db, sa)),
		sa
}

// Formula: S * (1 - Da) + D * (1 - Sa)
func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	invSa := 255 - sa
	return addClamp(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addClamp(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}
