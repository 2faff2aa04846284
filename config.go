package canvas

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds process-wide rendering settings. LoadConfig reads them from
// CANVAS_* environment variables.
type Config struct {
	// AllowHardwareBitmaps lets the software canvas read hardware bitmaps
	// instead of failing with ErrUnsupportedConfiguration.
	AllowHardwareBitmaps bool `envconfig:"ALLOW_HARDWARE_BITMAPS" default:"false"`

	// MaxBitmapBytes is the largest bitmap, in bytes, that may be drawn.
	MaxBitmapBytes int `envconfig:"MAX_BITMAP_BYTES" default:"104857600"`

	// Flatness is the maximum distance in pixels between a curve and its
	// flattened polyline.
	Flatness float64 `envconfig:"FLATNESS" default:"0.25"`

	// TypefaceCacheSize bounds the number of parsed faces kept in memory.
	TypefaceCacheSize int `envconfig:"TYPEFACE_CACHE_SIZE" default:"16"`
}

// DefaultConfig returns the settings used when no configuration is given.
func DefaultConfig() Config {
	return Config{
		MaxBitmapBytes:    100 << 20,
		Flatness:          0.25,
		TypefaceCacheSize: 16,
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("canvas", &cfg); err != nil {
		return Config{}, fmt.Errorf("canvas: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings outside their valid ranges.
func (c Config) Validate() error {
	switch {
	case c.MaxBitmapBytes <= 0:
		return fmt.Errorf("%w: max bitmap bytes %d", ErrInvalidArgument, c.MaxBitmapBytes)
	case c.Flatness <= 0:
		return fmt.Errorf("%w: flatness %g", ErrInvalidArgument, c.Flatness)
	case c.TypefaceCacheSize <= 0:
		return fmt.Errorf("%w: typeface cache size %d", ErrInvalidArgument, c.TypefaceCacheSize)
	}
	return nil
}
