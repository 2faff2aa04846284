package blend

// mulDiv255 multiplies two bytes and divides by 255 with rounding.
// Formula: (a * b + 127) / 255
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addClamp adds two bytes, saturating at 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// Lerp interpolates each channel of two ARGB pixels by t in [0, 255].
// t == 0 returns a unchanged, t == 255 returns b unchanged.
func Lerp(a, b uint32, t byte) uint32 {
	switch t {
	case 0:
		return a
	case 255:
		return b
	}
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		ca := int32(a>>shift) & 0xff
		cb := int32(b>>shift) & 0xff
		c := ca + ((cb-ca)*int32(t)+127)/255
		out |= uint32(c&0xff) << shift
	}
	return out
}

// LerpPremul interpolates two ARGB pixels in premultiplied space, so a
// transparent side does not darken the color of the other.
// t == 0 returns a unchanged, t == 255 returns b unchanged.
func LerpPremul(a, b uint32, t byte) uint32 {
	switch t {
	case 0:
		return a
	case 255:
		return b
	}
	ar, ag, ab, aa := premultiply(a)
	br, bg, bb, ba := premultiply(b)
	return unpremultiply(lerpByte(ar, br, t), lerpByte(ag, bg, t), lerpByte(ab, bb, t), lerpByte(aa, ba, t))
}

func lerpByte(a, b, t byte) byte {
	d := (int32(b) - int32(a)) * int32(t)
	if d >= 0 {
		return byte(int32(a) + (d+127)/255)
	}
	return byte(int32(a) - (-d+127)/255)
}
