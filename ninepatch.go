package canvas

import (
	"fmt"
	"image"
	"slices"
)

// NinePatch is a bitmap split into stretchable and fixed segments. XDivs
// and YDivs hold pairs of source coordinates; the segment between the
// two values of a pair stretches, the others keep their size.
type NinePatch struct {
	bitmap *Bitmap
	xDivs  []int
	yDivs  []int
}

// NewNinePatch validates the divisions against bm. Each list must have an
// even length and be non-decreasing within the bitmap.
func NewNinePatch(bm *Bitmap, xDivs, yDivs []int) (*NinePatch, error) {
	if bm == nil {
		return nil, fmt.Errorf("%w: nil bitmap", ErrInvalidArgument)
	}
	if err := checkDivs("x", xDivs, bm.Width()); err != nil {
		return nil, err
	}
	if err := checkDivs("y", yDivs, bm.Height()); err != nil {
		return nil, err
	}
	return &NinePatch{bitmap: bm, xDivs: slices.Clone(xDivs), yDivs: slices.Clone(yDivs)}, nil
}

func checkDivs(axis string, divs []int, size int) error {
	if len(divs)%2 != 0 {
		return fmt.Errorf("%w: odd number of %s divisions", ErrInvalidArgument, axis)
	}
	prev := 0
	for _, d := range divs {
		if d < prev || d > size {
			return fmt.Errorf("%w: %s division %d outside [%d, %d]", ErrInvalidArgument, axis, d, prev, size)
		}
		prev = d
	}
	return nil
}

// Bitmap returns the source bitmap.
func (np *NinePatch) Bitmap() *Bitmap { return np.bitmap }

// patchSegment maps a source interval onto a destination interval.
type patchSegment struct {
	src0, src1 int
	dst0, dst1 float64
}

// layoutSegments distributes length over the segments of size cut at
// divs. Fixed segments keep their size when there is room and shrink
// proportionally otherwise; stretchable segments share the remainder.
func layoutSegments(divs []int, size int, start, length float64) []patchSegment {
	cuts := append(append([]int{0}, divs...), size)
	var fixed, stretch int
	for i := 1; i < len(cuts); i++ {
		if i%2 == 0 {
			stretch += cuts[i] - cuts[i-1]
		} else {
			fixed += cuts[i] - cuts[i-1]
		}
	}
	fixedScale, stretchScale := 1.0, 0.0
	switch {
	case stretch == 0 && fixed > 0:
		fixedScale = length / float64(fixed)
	case float64(fixed) > length:
		fixedScale = length / float64(fixed)
	default:
		stretchScale = (length - float64(fixed)) / float64(stretch)
	}

	segs := make([]patchSegment, 0, len(cuts)-1)
	pos := start
	for i := 1; i < len(cuts); i++ {
		n := float64(cuts[i] - cuts[i-1])
		scale := fixedScale
		if i%2 == 0 {
			scale = stretchScale
		}
		segs = append(segs, patchSegment{src0: cuts[i-1], src1: cuts[i], dst0: pos, dst1: pos + n*scale})
		pos += n * scale
	}
	return segs
}

// DrawPatch draws np stretched to fill dst. A dst with negative width or
// height is an error; an empty one draws nothing.
func (c *Canvas) DrawPatch(np *NinePatch, dst Rect, p *Paint) error {
	if _, err := c.prepareOptional(p); err != nil {
		return err
	}
	if np == nil {
		return fmt.Errorf("%w: nil nine-patch", ErrInvalidArgument)
	}
	if dst.Width() < 0 || dst.Height() < 0 {
		return fmt.Errorf("%w: patch destination %gx%g", ErrInvalidArgument, dst.Width(), dst.Height())
	}
	if err := c.checkBitmap(np.bitmap); err != nil {
		return err
	}
	if dst.Width() == 0 || dst.Height() == 0 {
		return nil
	}
	cols := layoutSegments(np.xDivs, np.bitmap.Width(), dst.Left, dst.Width())
	rows := layoutSegments(np.yDivs, np.bitmap.Height(), dst.Top, dst.Height())
	for _, row := range rows {
		for _, col := range cols {
			src := image.Rect(col.src0, row.src0, col.src1, row.src1)
			if src.Empty() || col.dst1 <= col.dst0 || row.dst1 <= row.dst0 {
				continue
			}
			cell := Rect{col.dst0, row.dst0, col.dst1, row.dst1}
			if err := c.DrawBitmapRect(np.bitmap, &src, cell, p); err != nil {
				return err
			}
		}
	}
	return nil
}
