package canvas

import (
	"encoding/binary"
	"fmt"

	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/gogpu/canvas/typeface"
)

// typefaceFor returns the paint's typeface or the registry default.
func (c *Canvas) typefaceFor(p *Paint) *typeface.Typeface {
	if p.Typeface != nil {
		return p.Typeface
	}
	return c.typefaces.Default()
}

// DrawText draws text with its baseline origin at (x, y). The paint's
// text size, typeface and alignment select the glyphs and their
// placement; the paint style fills or strokes the glyph outlines.
func (c *Canvas) DrawText(text string, x, y float64, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	if text == "" || p.TextSize <= 0 {
		return nil
	}
	tf := c.typefaceFor(p)
	return c.drawRun(tf, tf.Shape(text, p.TextSize, typeface.DirectionDefaultLTR), x, y, p)
}

// DrawTextRange draws the runes text[start:end].
func (c *Canvas) DrawTextRange(text string, start, end int, x, y float64, p *Paint) error {
	runes := []rune(text)
	if err := checkRange("text", start, end-start, len(runes)); err != nil {
		return err
	}
	return c.DrawText(string(runes[start:end]), x, y, p)
}

// DrawTextChars draws count UTF-16 code units of chars starting at index.
// Unpaired surrogates are drawn as U+FFFD.
func (c *Canvas) DrawTextChars(chars []uint16, index, count int, x, y float64, p *Paint) error {
	if err := checkRange("chars", index, count, len(chars)); err != nil {
		return err
	}
	buf := make([]byte, 2*count)
	for i, u := range chars[index : index+count] {
		binary.LittleEndian.PutUint16(buf[2*i:], u)
	}
	dec := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewDecoder()
	text, err := dec.Bytes(buf)
	if err != nil {
		return fmt.Errorf("%w: decode chars: %v", ErrInvalidArgument, err)
	}
	return c.DrawText(string(text), x, y, p)
}

// DrawTextRun draws the runes text[start:end] as a single directional
// run. The runes in [ctxStart, ctxEnd) surrounding the run are used as
// shaping context but not drawn.
func (c *Canvas) DrawTextRun(text string, start, end, ctxStart, ctxEnd int, x, y float64, isRTL bool, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	runes := []rune(text)
	if err := checkRange("text", ctxStart, ctxEnd-ctxStart, len(runes)); err != nil {
		return err
	}
	if start < ctxStart || end > ctxEnd || start > end {
		return fmt.Errorf("%w: run [%d, %d) outside context [%d, %d)",
			ErrIndexOutOfBounds, start, end, ctxStart, ctxEnd)
	}
	if start == end || p.TextSize <= 0 {
		return nil
	}
	tf := c.typefaceFor(p)
	ctx := runes[ctxStart:ctxEnd]
	run := tf.ShapeRun(ctx, start-ctxStart, end-ctxStart, p.TextSize, isRTL)
	return c.drawRun(tf, run, x, y, p)
}

// MeasureText returns the advance width of text drawn with p.
func (c *Canvas) MeasureText(text string, p *Paint) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: nil paint", ErrInvalidArgument)
	}
	if p.TextSize <= 0 {
		return 0, nil
	}
	return c.typefaceFor(p).Measure(text, p.TextSize), nil
}

// drawRun outlines the glyphs of run into a path and draws it.
func (c *Canvas) drawRun(tf *typeface.Typeface, run typeface.Run, x, y float64, p *Paint) error {
	switch p.TextAlign {
	case AlignCenter:
		x -= run.Advance / 2
	case AlignRight:
		x -= run.Advance
	}
	path := NewPath()
	for _, g := range run.Glyphs {
		if err := tf.Outline(g.ID, p.TextSize, x+g.X, y+g.Y, path); err != nil {
			Logger().Warn("canvas: glyph outline unavailable",
				"family", tf.Family(), "glyph", g.ID, "err", err)
		}
	}
	if path.IsEmpty() {
		return nil
	}
	return c.drawPath(path, p, p.Style)
}
