package canvas

import (
	"github.com/gogpu/canvas/internal/stroke"
	"github.com/gogpu/canvas/typeface"
)

// Style selects whether shapes are filled, stroked or both.
type Style uint8

const (
	// StyleFill fills the interior of shapes.
	StyleFill Style = iota
	// StyleStroke draws the outline of shapes.
	StyleStroke
	// StyleFillAndStroke fills and strokes.
	StyleFillAndStroke
)

// Cap specifies the shape of line endpoints.
type Cap uint8

const (
	// CapButt specifies a flat line cap.
	CapButt Cap = iota
	// CapRound specifies a rounded line cap.
	CapRound
	// CapSquare specifies a square line cap.
	CapSquare
)

// Join specifies the shape of line joins.
type Join uint8

const (
	// JoinMiter specifies a sharp (mitered) join.
	JoinMiter Join = iota
	// JoinRound specifies a rounded join.
	JoinRound
	// JoinBevel specifies a beveled join.
	JoinBevel
)

// Align positions text horizontally relative to its origin.
type Align uint8

const (
	// AlignLeft starts the text at the origin.
	AlignLeft Align = iota
	// AlignCenter centers the text on the origin.
	AlignCenter
	// AlignRight ends the text at the origin.
	AlignRight
)

// PaintFlags toggle rendering behaviour.
type PaintFlags uint32

const (
	// FlagAntiAlias smooths shape edges.
	FlagAntiAlias PaintFlags = 1 << iota
	// FlagFilterBitmap samples bitmaps bilinearly.
	FlagFilterBitmap
	// FlagDither is accepted for compatibility and has no effect.
	FlagDither
)

// Paint represents the styling information for drawing.
type Paint struct {
	Flags PaintFlags
	Style Style

	// Color is the non-premultiplied ARGB source color. Its alpha also
	// modulates shaders and bitmaps.
	Color uint32

	// StrokeWidth is the width of strokes. Zero draws one-pixel hairlines
	// regardless of the canvas matrix.
	StrokeWidth float64
	StrokeCap   Cap
	StrokeJoin  Join
	StrokeMiter float64

	BlendMode   BlendMode
	Shader      Shader
	ColorFilter ColorFilter

	Typeface  *typeface.Typeface // nil uses the canvas registry default
	TextSize  float64
	TextAlign Align
}

// NewPaint creates a new Paint with default values: opaque black fill,
// source-over blending and 12 pixel text.
func NewPaint() *Paint {
	return &Paint{
		Color:       Black,
		StrokeMiter: 4,
		BlendMode:   BlendSrcOver,
		TextSize:    12,
	}
}

// NewPaintWithFlags creates a default paint with flags set.
func NewPaintWithFlags(flags PaintFlags) *Paint {
	p := NewPaint()
	p.Flags = flags
	return p
}

// Clone returns a shallow copy; shaders, filters and typefaces are shared.
func (p *Paint) Clone() *Paint {
	c := *p
	return &c
}

// Alpha returns the alpha of the paint color.
func (p *Paint) Alpha() int { return Alpha(p.Color) }

// SetAlpha replaces the alpha of the paint color.
func (p *Paint) SetAlpha(a int) { p.Color = WithAlpha(p.Color, a) }

// SetARGB sets the paint color from components.
func (p *Paint) SetARGB(a, r, g, b int) { p.Color = ARGB(a, r, g, b) }

// IsAntiAlias reports whether FlagAntiAlias is set.
func (p *Paint) IsAntiAlias() bool { return p.Flags&FlagAntiAlias != 0 }

// SetAntiAlias sets or clears FlagAntiAlias.
func (p *Paint) SetAntiAlias(on bool) {
	if on {
		p.Flags |= FlagAntiAlias
	} else {
		p.Flags &^= FlagAntiAlias
	}
}

// IsFilterBitmap reports whether FlagFilterBitmap is set.
func (p *Paint) IsFilterBitmap() bool { return p.Flags&FlagFilterBitmap != 0 }

func (p *Paint) strokeStyle(width, tolerance float64) stroke.Style {
	return stroke.Style{
		Width:      width,
		Cap:        stroke.Cap(p.StrokeCap),
		Join:       stroke.Join(p.StrokeJoin),
		MiterLimit: p.StrokeMiter,
		Tolerance:  tolerance,
	}
}
