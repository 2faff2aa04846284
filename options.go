package canvas

import "github.com/gogpu/canvas/typeface"

// Option configures a Canvas during creation.
//
// Example:
//
//	cfg, _ := canvas.LoadConfig()
//	c, err := canvas.New(bm, canvas.WithConfig(cfg))
type Option func(*options)

type options struct {
	config     Config
	rasterizer Rasterizer
	typefaces  *typeface.Registry
}

func defaultOptions() options {
	return options{config: DefaultConfig()}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithRasterizer sets the coverage rasterizer. The default is the
// built-in scanline rasterizer.
func WithRasterizer(r Rasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}

// WithTypefaces sets the registry used to resolve a paint without a
// typeface. Canvases share one default registry otherwise.
func WithTypefaces(r *typeface.Registry) Option {
	return func(o *options) {
		o.typefaces = r
	}
}
