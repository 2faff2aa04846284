package typeface

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the paragraph direction used for bidi resolution.
type Direction uint8

const (
	// DirectionLTR forces a left-to-right paragraph.
	DirectionLTR Direction = iota
	// DirectionRTL forces a right-to-left paragraph.
	DirectionRTL
	// DirectionDefaultLTR detects the direction, defaulting to left-to-right.
	DirectionDefaultLTR
	// DirectionDefaultRTL detects the direction, defaulting to right-to-left.
	DirectionDefaultRTL
)

// Glyph is a shaped glyph positioned relative to the run origin.
type Glyph struct {
	ID      uint16
	X, Y    float64
	Advance float64
	Cluster int // rune index of the source text
}

// Run is a horizontally laid out sequence of glyphs in visual order.
type Run struct {
	Glyphs  []Glyph
	Advance float64
}

var shaperPool = sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }}

// Shape lays out text at size pixels per em. The paragraph is split into
// directional runs which are placed left to right in visual order.
func (t *Typeface) Shape(text string, size float64, dir Direction) Run {
	if text == "" {
		return Run{}
	}
	if dir == DirectionLTR || dir == DirectionRTL {
		if !hasStrongRTL(text) {
			runes := []rune(text)
			return t.ShapeRun(runes, 0, len(runes), size, dir == DirectionRTL)
		}
	}

	var p bidi.Paragraph
	opt := bidi.DefaultDirection(bidi.LeftToRight)
	if dir == DirectionRTL || dir == DirectionDefaultRTL {
		opt = bidi.DefaultDirection(bidi.RightToLeft)
	}
	if _, err := p.SetString(text, opt); err != nil {
		return t.fallbackShape(text, size, dir)
	}
	order, err := p.Order()
	if err != nil || order.NumRuns() == 0 {
		return t.fallbackShape(text, size, dir)
	}

	var out Run
	base := 0
	for i := range order.NumRuns() {
		r := order.Run(i)
		runes := []rune(r.String())
		shaped := t.ShapeRun(runes, 0, len(runes), size, r.Direction() == bidi.RightToLeft)
		for _, g := range shaped.Glyphs {
			g.X += out.Advance
			g.Cluster += base
			out.Glyphs = append(out.Glyphs, g)
		}
		out.Advance += shaped.Advance
		base += len(runes)
	}
	return out
}

func (t *Typeface) fallbackShape(text string, size float64, dir Direction) Run {
	runes := []rune(text)
	return t.ShapeRun(runes, 0, len(runes), size, dir == DirectionRTL || dir == DirectionDefaultRTL)
}

// ShapeRun shapes text[start:end] as a single directional run. Runes
// outside the range are used as shaping context only.
func (t *Typeface) ShapeRun(text []rune, start, end int, size float64, rtl bool) Run {
	if start >= end {
		return Run{}
	}
	direction := di.DirectionLTR
	if rtl {
		direction = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      text,
		RunStart:  start,
		RunEnd:    end,
		Direction: direction,
		Face:      font.NewFace(t.shape),
		Size:      toFixed(size),
		Script:    detectScript(text[start:end]),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	out := Run{Glyphs: make([]Glyph, 0, len(output.Glyphs))}
	for _, g := range output.Glyphs {
		out.Glyphs = append(out.Glyphs, Glyph{
			ID:      uint16(g.GlyphID), //nolint:gosec // sfnt glyph ids are 16 bit
			X:       out.Advance + fromFixed(g.XOffset),
			Y:       -fromFixed(g.YOffset),
			Advance: fromFixed(g.Advance),
			Cluster: g.TextIndex(),
		})
		out.Advance += fromFixed(g.Advance)
	}
	if missing := countMissing(out.Glyphs); missing > 0 {
		logger().Warn("typeface: glyphs missing from font",
			"family", t.family, "count", missing)
	}
	return out
}

// Measure returns the advance width of text at size.
func (t *Typeface) Measure(text string, size float64) float64 {
	return t.Shape(text, size, DirectionDefaultLTR).Advance
}

func countMissing(glyphs []Glyph) int {
	n := 0
	for _, g := range glyphs {
		if g.ID == 0 {
			n++
		}
	}
	return n
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func hasStrongRTL(text string) bool {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}
