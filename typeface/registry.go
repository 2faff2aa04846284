package typeface

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/canvas/internal/cache"
)

// Family names registered by NewRegistry.
const (
	SansSerif = "sans-serif"
	Monospace = "monospace"
)

var aliases = map[string]string{
	"":        SansSerif,
	"default": SansSerif,
	"sans":    SansSerif,
	"serif":   SansSerif,
	"mono":    Monospace,
}

type key struct {
	family string
	style  Style
}

// Registry resolves family requests to typefaces. Parsed faces are kept in
// a bounded LRU cache; evicted faces are parsed again on demand.
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]map[Style][]byte
	faces   *cache.Cache[key, *Typeface]
}

// NewRegistry returns a registry holding at most cacheSize parsed faces,
// with the Go fonts registered as sans-serif and monospace.
func NewRegistry(cacheSize int) *Registry {
	r := &Registry{
		sources: make(map[string]map[Style][]byte),
		faces:   cache.New[key, *Typeface](cacheSize),
	}
	r.sources[SansSerif] = map[Style][]byte{
		Normal:     goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	}
	r.sources[Monospace] = map[Style][]byte{
		Normal:     gomono.TTF,
		Bold:       gomonobold.TTF,
		Italic:     gomonoitalic.TTF,
		BoldItalic: gomonobolditalic.TTF,
	}
	return r
}

// Register adds or replaces the font data for family and style.
func (r *Registry) Register(family string, style Style, data []byte) error {
	if _, err := Parse(family, style, data); err != nil {
		return err
	}
	family = strings.ToLower(family)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sources[family] == nil {
		r.sources[family] = make(map[Style][]byte)
	}
	r.sources[family][style] = data
	r.faces.Delete(key{family, style})
	return nil
}

// Families returns the registered family names in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sources))
	for f := range r.sources {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Create returns the face closest to the requested family and style.
// Unknown families resolve to sans-serif.
func (r *Registry) Create(family string, style Style) (*Typeface, error) {
	k, data := r.resolve(family, style)
	if data == nil {
		return nil, fmt.Errorf("typeface: no faces registered for %q", k.family)
	}
	return r.faces.GetOrCreate(k, func() (*Typeface, error) {
		logger().Debug("typeface: parsing face", "family", k.family, "weight", k.style.Weight, "italic", k.style.Italic)
		return Parse(k.family, k.style, data)
	})
}

// Default returns the regular sans-serif face.
func (r *Registry) Default() *Typeface {
	tf, err := r.Create(SansSerif, Normal)
	if err != nil {
		panic(err) // the bundled Go fonts always parse
	}
	return tf
}

// CacheStats reports the face cache counters.
func (r *Registry) CacheStats() cache.Stats {
	return r.faces.Stats()
}

func (r *Registry) resolve(family string, style Style) (key, []byte) {
	name := strings.ToLower(strings.TrimSpace(family))
	if a, ok := aliases[name]; ok {
		name = a
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	styles, ok := r.sources[name]
	if !ok {
		logger().Debug("typeface: unknown family, using fallback", "family", family)
		name = SansSerif
		styles = r.sources[name]
	}
	if data, ok := styles[style]; ok {
		return key{name, style}, data
	}
	best, found := Style{}, false
	for s := range styles {
		if !found || closer(style, s, best) {
			best, found = s, true
		}
	}
	return key{name, best}, styles[best]
}

// closer reports whether a matches want better than b. Slant is matched
// first, then weight distance, then the lighter face.
func closer(want, a, b Style) bool {
	if (a.Italic == want.Italic) != (b.Italic == want.Italic) {
		return a.Italic == want.Italic
	}
	da, db := abs(a.Weight-want.Weight), abs(b.Weight-want.Weight)
	if da != db {
		return da < db
	}
	return a.Weight < b.Weight
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
