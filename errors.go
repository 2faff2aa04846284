package canvas

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed arguments such as
	// negative dimensions, a wrong radii count or a nil paint.
	ErrInvalidArgument = errors.New("canvas: invalid argument")

	// ErrIndexOutOfBounds is returned when an offset or count reaches past
	// the end of an array argument.
	ErrIndexOutOfBounds = errors.New("canvas: index out of bounds")

	// ErrUnsupportedConfiguration is returned when a hardware bitmap is used
	// on the software canvas without Config.AllowHardwareBitmaps.
	ErrUnsupportedConfiguration = errors.New("canvas: unsupported configuration")

	// ErrUnsupportedFormat is returned by BlendComposite for buffers that
	// are not ARGB8888.
	ErrUnsupportedFormat = errors.New("canvas: unsupported pixel format")

	// ErrStackUnderflow is returned when restoring past the base frame.
	ErrStackUnderflow = errors.New("canvas: stack underflow")

	// ErrDisposed is returned, or raised as a panic by state operations,
	// when a disposed canvas is used.
	ErrDisposed = errors.New("canvas: canvas is disposed")

	// ErrNotBound is returned when drawing on a canvas without a bitmap.
	ErrNotBound = errors.New("canvas: no bitmap bound")

	// ErrRecycledBitmap is returned when drawing a recycled bitmap.
	ErrRecycledBitmap = errors.New("canvas: bitmap is recycled")

	// ErrBitmapTooLarge is returned when a bitmap exceeds Config.MaxBitmapBytes.
	ErrBitmapTooLarge = errors.New("canvas: bitmap too large to draw")

	// ErrImmutableBitmap is returned when binding a canvas to an immutable bitmap.
	ErrImmutableBitmap = errors.New("canvas: bitmap is immutable")
)

// checkRange validates that [offset, offset+count) lies within length.
func checkRange(name string, offset, count, length int) error {
	if offset < 0 || count < 0 || offset > length || count > length-offset {
		return fmt.Errorf("%w: %s offset %d count %d length %d",
			ErrIndexOutOfBounds, name, offset, count, length)
	}
	return nil
}
