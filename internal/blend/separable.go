package blend

// Channels holds one decoded pixel as R, G, B, A in the range 0-255.
type Channels [4]int

// ChannelFunc blends a source pixel into a destination pixel.
type ChannelFunc func(src, dst Channels) Channels

// Channel returns the channel function for the separable modes that the
// rasterizer pipeline does not support natively. ok is false for
// Porter-Duff modes.
func Channel(m Mode) (fn ChannelFunc, ok bool) {
	switch m {
	case Add:
		return add, true
	case Darken:
		return darken, true
	case Lighten:
		return lighten, true
	case Multiply:
		return multiply, true
	case Overlay:
		return overlay, true
	case Screen:
		return screen, true
	default:
		return nil, false
	}
}

// Decode splits an ARGB pixel into channels.
func Decode(c uint32) Channels {
	return Channels{int(c>>16) & 0xff, int(c>>8) & 0xff, int(c) & 0xff, int(c>>24) & 0xff}
}

// Encode packs channels into an ARGB pixel. Channels must be within 0-255.
func Encode(ch Channels) uint32 {
	return uint32(ch[3])<<24 | uint32(ch[0])<<16 | uint32(ch[1])<<8 | uint32(ch[2])
}

func add(src, dst Channels) Channels {
	var out Channels
	for i := range out {
		out[i] = min(255, src[i]+dst[i])
	}
	return out
}

func darken(src, dst Channels) Channels {
	return Channels{
		min(src[0], dst[0]),
		min(src[1], dst[1]),
		min(src[2], dst[2]),
		min(255, src[3]+dst[3]),
	}
}

func lighten(src, dst Channels) Channels {
	return Channels{
		max(src[0], dst[0]),
		max(src[1], dst[1]),
		max(src[2], dst[2]),
		min(255, src[3]+dst[3]),
	}
}

func multiply(src, dst Channels) Channels {
	return Channels{
		(src[0] * dst[0]) >> 8,
		(src[1] * dst[1]) >> 8,
		(src[2] * dst[2]) >> 8,
		min(255, src[3]+dst[3]-(src[3]*dst[3])/255),
	}
}

func overlay(src, dst Channels) Channels {
	var out Channels
	for i := 0; i < 3; i++ {
		if dst[i] < 128 {
			out[i] = (dst[i] * src[i]) >> 7
		} else {
			out[i] = 255 - (((255 - dst[i]) * (255 - src[i])) >> 7)
		}
	}
	out[3] = min(255, src[3]+dst[3])
	return out
}

func screen(src, dst Channels) Channels {
	var out Channels
	for i := 0; i < 3; i++ {
		out[i] = 255 - (((255 - src[i]) * (255 - dst[i])) >> 8)
	}
	out[3] = min(255, src[3]+dst[3])
	return out
}
