package canvas

// DrawFilter adjusts every paint used by a canvas before drawing. Filter
// receives a private copy it may modify.
type DrawFilter interface {
	Filter(p *Paint)
}

// PaintFlagsDrawFilter clears then sets paint flags.
type PaintFlagsDrawFilter struct {
	Clear PaintFlags
	Set   PaintFlags
}

// Filter implements DrawFilter.
func (f PaintFlagsDrawFilter) Filter(p *Paint) {
	p.Flags = p.Flags&^f.Clear | f.Set
}
