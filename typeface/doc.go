// Package typeface resolves font families to parsed faces and turns text
// into positioned glyph outlines.
//
// A Registry maps (family, style) requests to Typeface values through a
// bounded LRU cache. The Go fonts are registered under "sans-serif" and
// "monospace"; unknown families fall back to "sans-serif".
//
//	reg := typeface.NewRegistry(16)
//	tf, err := reg.Create("monospace", typeface.Bold)
//	run := tf.Shape("hello", 12, typeface.DirectionLTR)
//
// Shaping uses HarfBuzz through go-text/typesetting. Mixed-direction text
// is split into visual runs with golang.org/x/text/unicode/bidi.
package typeface
