package typeface

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("typeface: invalid font data")

// Weight values follow the CSS scale.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// Style selects a face within a family.
type Style struct {
	Weight int
	Italic bool
}

// Common styles.
var (
	Normal     = Style{Weight: WeightNormal}
	Bold       = Style{Weight: WeightBold}
	Italic     = Style{Weight: WeightNormal, Italic: true}
	BoldItalic = Style{Weight: WeightBold, Italic: true}
)

// IsBold reports whether the weight is semibold or heavier.
func (s Style) IsBold() bool { return s.Weight >= 600 }

// Metrics are vertical font metrics in pixels at a given size.
// Ascent is positive upward, Descent positive downward.
type Metrics struct {
	Ascent  float64
	Descent float64
	Leading float64
}

// PathSink receives glyph outlines in pixels, y pointing down.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// Typeface is an immutable parsed font face. It is safe for concurrent use.
type Typeface struct {
	family string
	style  Style
	outl   *sfnt.Font
	shape  *font.Font
	bufs   sync.Pool
}

// Parse parses TrueType or OpenType data. An empty family is replaced by
// the family name stored in the font.
func Parse(family string, style Style, data []byte) (*Typeface, error) {
	outl, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	if family == "" {
		family, err = outl.Name(nil, sfnt.NameIDFamily)
		if err != nil {
			family = "unknown"
		}
	}
	t := &Typeface{family: family, style: style, outl: outl, shape: face.Font}
	t.bufs.New = func() any { return new(sfnt.Buffer) }
	return t, nil
}

// Family returns the family name.
func (t *Typeface) Family() string { return t.family }

// Style returns the weight and slant of the face.
func (t *Typeface) Style() Style { return t.style }

// Metrics returns the vertical metrics at size pixels per em.
func (t *Typeface) Metrics(size float64) (Metrics, error) {
	buf := t.bufs.Get().(*sfnt.Buffer)
	defer t.bufs.Put(buf)

	m, err := t.outl.Metrics(buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{}, err
	}
	ascent, descent := fromFixed(m.Ascent), fromFixed(m.Descent)
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		Leading: max(fromFixed(m.Height)-ascent-descent, 0),
	}, nil
}

// Outline appends the outline of glyph id at size, translated to (x, y),
// to sink. Glyphs without an outline, such as spaces, add nothing.
func (t *Typeface) Outline(id uint16, size, x, y float64, sink PathSink) error {
	buf := t.bufs.Get().(*sfnt.Buffer)
	defer t.bufs.Put(buf)

	segments, err := t.outl.LoadGlyph(buf, sfnt.GlyphIndex(id), toFixed(size), nil)
	if err != nil {
		return err
	}
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				sink.Close()
			}
			p := seg.Args[0]
			sink.MoveTo(x+fromFixed(p.X), y+fromFixed(p.Y))
			open = true
		case sfnt.SegmentOpLineTo:
			p := seg.Args[0]
			sink.LineTo(x+fromFixed(p.X), y+fromFixed(p.Y))
		case sfnt.SegmentOpQuadTo:
			c, p := seg.Args[0], seg.Args[1]
			sink.QuadTo(x+fromFixed(c.X), y+fromFixed(c.Y), x+fromFixed(p.X), y+fromFixed(p.Y))
		case sfnt.SegmentOpCubeTo:
			c1, c2, p := seg.Args[0], seg.Args[1], seg.Args[2]
			sink.CubicTo(
				x+fromFixed(c1.X), y+fromFixed(c1.Y),
				x+fromFixed(c2.X), y+fromFixed(c2.Y),
				x+fromFixed(p.X), y+fromFixed(p.Y))
		}
	}
	if open {
		sink.Close()
	}
	return nil
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
