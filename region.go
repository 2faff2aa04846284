package canvas

import (
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/canvas/internal/raster"
)

// RegionOp is a boolean operator combining two areas.
type RegionOp uint8

const (
	// RegionOpDifference keeps the existing area minus the other one.
	RegionOpDifference RegionOp = iota
	// RegionOpIntersect keeps the area common to both.
	RegionOpIntersect
	// RegionOpUnion keeps the area covered by either.
	RegionOpUnion
	// RegionOpXor keeps the area covered by exactly one.
	RegionOpXor
	// RegionOpReverseDifference keeps the other area minus the existing one.
	RegionOpReverseDifference
	// RegionOpReplace keeps only the other area.
	RegionOpReplace
)

var regionOpNames = [...]string{"Difference", "Intersect", "Union", "Xor", "ReverseDifference", "Replace"}

func (op RegionOp) String() string {
	if int(op) < len(regionOpNames) {
		return regionOpNames[op]
	}
	return fmt.Sprintf("RegionOp(%d)", op)
}

func (op RegionOp) keep(inA, inB bool) bool {
	switch op {
	case RegionOpDifference:
		return inA && !inB
	case RegionOpIntersect:
		return inA && inB
	case RegionOpUnion:
		return inA || inB
	case RegionOpXor:
		return inA != inB
	case RegionOpReverseDifference:
		return inB && !inA
	default:
		return inB
	}
}

// span is a half-open horizontal interval.
type span struct {
	left, right float64
}

// band is a horizontal strip [top, bottom) holding sorted, disjoint,
// non-touching spans. Span slices are never modified after creation, so
// bands may share them.
type band struct {
	top, bottom float64
	spans       []span
}

// Region is an area represented as y-x bands of disjoint rectangles.
// Every operation leaves it normalized: bands are sorted and disjoint,
// no band is empty, spans within a band do not touch, and vertically
// adjacent bands with identical spans are merged. The zero Region is empty.
type Region struct {
	bands []band
}

// NewRegion returns an empty region.
func NewRegion() *Region {
	return &Region{}
}

// RegionFromRect returns a region covering r.
func RegionFromRect(r Rect) *Region {
	rg := &Region{}
	rg.Set(r)
	return rg
}

// Set replaces the region with r.
func (rg *Region) Set(r Rect) bool {
	r = r.Sort()
	if r.IsEmpty() {
		rg.bands = nil
		return false
	}
	rg.bands = []band{{top: r.Top, bottom: r.Bottom, spans: []span{{r.Left, r.Right}}}}
	return true
}

// SetRegion replaces the region with a copy of o.
func (rg *Region) SetRegion(o *Region) bool {
	rg.bands = slices.Clone(o.bands)
	return !rg.IsEmpty()
}

// SetEmpty clears the region.
func (rg *Region) SetEmpty() {
	rg.bands = nil
}

// IsEmpty reports whether the region has no area.
func (rg *Region) IsEmpty() bool {
	return rg == nil || len(rg.bands) == 0
}

// IsRect reports whether the region is a single rectangle.
func (rg *Region) IsRect() bool {
	return rg != nil && len(rg.bands) == 1 && len(rg.bands[0].spans) == 1
}

// IsComplex reports whether the region needs more than one rectangle.
func (rg *Region) IsComplex() bool {
	return !rg.IsEmpty() && !rg.IsRect()
}

// Bounds returns the smallest rectangle containing the region.
func (rg *Region) Bounds() Rect {
	if rg.IsEmpty() {
		return Rect{}
	}
	out := Rect{
		Left: math.Inf(1), Top: rg.bands[0].top,
		Right: math.Inf(-1), Bottom: rg.bands[len(rg.bands)-1].bottom,
	}
	for _, b := range rg.bands {
		out.Left = math.Min(out.Left, b.spans[0].left)
		out.Right = math.Max(out.Right, b.spans[len(b.spans)-1].right)
	}
	return out
}

// Contains reports whether (x, y) lies inside the region.
func (rg *Region) Contains(x, y float64) bool {
	if rg.IsEmpty() {
		return false
	}
	i, found := slices.BinarySearchFunc(rg.bands, y, func(b band, y float64) int {
		switch {
		case b.bottom <= y:
			return -1
		case b.top > y:
			return 1
		}
		return 0
	})
	if !found {
		return false
	}
	for _, s := range rg.bands[i].spans {
		if x < s.left {
			return false
		}
		if x < s.right {
			return true
		}
	}
	return false
}

// QuickContains reports whether the region is a single rectangle that
// contains r. A false result does not mean r is outside.
func (rg *Region) QuickContains(r Rect) bool {
	return rg.IsRect() && rg.Bounds().ContainsRect(r)
}

// QuickReject reports whether the region's bounds miss r entirely.
func (rg *Region) QuickReject(r Rect) bool {
	return rg.IsEmpty() || !rg.Bounds().Intersects(r)
}

// Rects returns the disjoint rectangles making up the region, sorted top
// to bottom then left to right.
func (rg *Region) Rects() []Rect {
	if rg.IsEmpty() {
		return nil
	}
	var out []Rect
	for _, b := range rg.bands {
		for _, s := range b.spans {
			out = append(out, Rect{s.left, b.top, s.right, b.bottom})
		}
	}
	return out
}

// Area returns the covered area.
func (rg *Region) Area() float64 {
	var a float64
	if rg.IsEmpty() {
		return 0
	}
	for _, b := range rg.bands {
		for _, s := range b.spans {
			a += (s.right - s.left) * (b.bottom - b.top)
		}
	}
	return a
}

// Clone returns an independent copy.
func (rg *Region) Clone() *Region {
	if rg == nil {
		return NewRegion()
	}
	return &Region{bands: slices.Clone(rg.bands)}
}

// Equals reports whether both regions cover the same area.
func (rg *Region) Equals(o *Region) bool {
	if rg.IsEmpty() || o.IsEmpty() {
		return rg.IsEmpty() == o.IsEmpty()
	}
	return slices.EqualFunc(rg.bands, o.bands, func(a, b band) bool {
		return a.top == b.top && a.bottom == b.bottom && slices.Equal(a.spans, b.spans)
	})
}

// Translate moves the region by (dx, dy).
func (rg *Region) Translate(dx, dy float64) {
	if rg.IsEmpty() {
		return
	}
	out := make([]band, len(rg.bands))
	for i, b := range rg.bands {
		spans := make([]span, len(b.spans))
		for j, s := range b.spans {
			spans[j] = span{s.left + dx, s.right + dx}
		}
		out[i] = band{b.top + dy, b.bottom + dy, spans}
	}
	rg.bands = out
}

// Transform maps the region through m. Matrices that keep rectangles
// axis-aligned are exact; others rasterize the transformed outline at
// pixel centers.
func (rg *Region) Transform(m Matrix) {
	if rg.IsEmpty() || m.IsIdentity() {
		return
	}
	if m.IsTranslation() {
		rg.Translate(m.C, m.F)
		return
	}
	if m.RectStaysRect() {
		out := NewRegion()
		for _, r := range rg.Rects() {
			out.OpRect(m.MapRect(r), RegionOpUnion)
		}
		rg.bands = out.bands
		return
	}
	p := rg.BoundaryPath()
	p.Transform(m)
	rg.SetPath(p, nil)
}

// Op combines o into the region and reports whether the result is non-empty.
func (rg *Region) Op(o *Region, op RegionOp) bool {
	var other []band
	if o != nil {
		other = o.bands
	}
	rg.bands = combineBands(rg.bands, other, op)
	return !rg.IsEmpty()
}

// OpRect combines r into the region.
func (rg *Region) OpRect(r Rect, op RegionOp) bool {
	return rg.Op(RegionFromRect(r), op)
}

// OpPath combines the area of p into the region.
func (rg *Region) OpPath(p *Path, op RegionOp) bool {
	o := NewRegion()
	o.SetPath(p, nil)
	return rg.Op(o, op)
}

// SetPath replaces the region with the area of p, limited to clip when clip
// is non-nil. Inverse fill types need a clip to bound them and produce an
// empty region without one. Rectangle-only paths with the winding rule are
// converted exactly; other paths are sampled at pixel centers.
func (rg *Region) SetPath(p *Path, clip *Region) bool {
	rg.bands = nil
	if p == nil {
		return false
	}
	if sr := p.fastRegion(); sr != nil {
		rg.bands = slices.Clone(sr.bands)
		if clip != nil {
			rg.Op(clip, RegionOpIntersect)
		}
		return !rg.IsEmpty()
	}

	var bounds image.Rectangle
	switch {
	case p.IsInverseFillType() && clip == nil:
		return false
	case p.IsInverseFillType():
		bounds = clip.Bounds().RoundOut()
	default:
		bounds = p.Bounds().RoundOut()
		if clip != nil {
			bounds = bounds.Intersect(clip.Bounds().RoundOut())
		}
	}
	if bounds.Empty() {
		return false
	}

	contours := toRasterContours(p.Flatten(defaultFlatness))
	mask := raster.Coverage(contours, bounds, raster.Options{
		Rule:    rasterRule(p.FillType()),
		Inverse: p.IsInverseFillType(),
	})
	rg.bands = bandsFromMask(mask)
	if clip != nil {
		rg.Op(clip, RegionOpIntersect)
	}
	return !rg.IsEmpty()
}

// BoundaryPath returns a path made of the region's rectangles.
func (rg *Region) BoundaryPath() *Path {
	p := NewPath()
	for _, r := range rg.Rects() {
		p.AddRect(r, DirectionCW)
	}
	return p
}

// Combine returns a new region holding existing op other. A nil or empty
// existing region is treated as absent: Difference yields an empty region
// and every other operator yields a copy of other.
func Combine(existing, other *Region, op RegionOp) *Region {
	if existing.IsEmpty() {
		if op == RegionOpDifference {
			return NewRegion()
		}
		return other.Clone()
	}
	out := existing.Clone()
	out.Op(other, op)
	return out
}

// bandsFromMask converts a coverage mask into bands, one row per band
// before merging. Pixels at half coverage or more are inside.
func bandsFromMask(mask *image.Alpha) []band {
	r := mask.Rect
	var out []band
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := mask.Pix[(y-r.Min.Y)*mask.Stride:]
		var spans []span
		for x := 0; x < r.Dx(); {
			if row[x] < 128 {
				x++
				continue
			}
			start := x
			for x < r.Dx() && row[x] >= 128 {
				x++
			}
			spans = append(spans, span{float64(r.Min.X + start), float64(r.Min.X + x)})
		}
		out = appendBand(out, float64(y), float64(y+1), spans)
	}
	return out
}

// appendBand adds a band, merging it into the previous one when they touch
// and carry the same spans.
func appendBand(bands []band, top, bottom float64, spans []span) []band {
	if len(spans) == 0 {
		return bands
	}
	if n := len(bands); n > 0 && bands[n-1].bottom == top && slices.Equal(bands[n-1].spans, spans) {
		bands[n-1].bottom = bottom
		return bands
	}
	return append(bands, band{top, bottom, spans})
}

// combineBands applies op to two normalized band lists.
func combineBands(a, b []band, op RegionOp) []band {
	ys := make([]float64, 0, 2*(len(a)+len(b)))
	for _, bd := range a {
		ys = append(ys, bd.top, bd.bottom)
	}
	for _, bd := range b {
		ys = append(ys, bd.top, bd.bottom)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	var out []band
	ia, ib := 0, 0
	for k := 0; k+1 < len(ys); k++ {
		y0, y1 := ys[k], ys[k+1]
		sa := spansAt(a, &ia, y0)
		sb := spansAt(b, &ib, y0)
		if len(sa) == 0 && len(sb) == 0 {
			continue
		}
		out = appendBand(out, y0, y1, combineSpans(sa, sb, op))
	}
	return out
}

// spansAt returns the spans of the band covering y. Calls must use
// increasing y; *i is the search cursor.
func spansAt(bands []band, i *int, y float64) []span {
	for *i < len(bands) && bands[*i].bottom <= y {
		*i++
	}
	if *i < len(bands) && bands[*i].top <= y {
		return bands[*i].spans
	}
	return nil
}

// combineSpans applies op to two sorted span lists.
func combineSpans(a, b []span, op RegionOp) []span {
	xs := make([]float64, 0, 2*(len(a)+len(b)))
	for _, s := range a {
		xs = append(xs, s.left, s.right)
	}
	for _, s := range b {
		xs = append(xs, s.left, s.right)
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	var out []span
	ia, ib := 0, 0
	for k := 0; k+1 < len(xs); k++ {
		x0, x1 := xs[k], xs[k+1]
		for ia < len(a) && a[ia].right <= x0 {
			ia++
		}
		for ib < len(b) && b[ib].right <= x0 {
			ib++
		}
		inA := ia < len(a) && a[ia].left <= x0
		inB := ib < len(b) && b[ib].left <= x0
		if !op.keep(inA, inB) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].right == x0 {
			out[n-1].right = x1
		} else {
			out = append(out, span{x0, x1})
		}
	}
	return out
}
