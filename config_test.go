package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CANVAS_ALLOW_HARDWARE_BITMAPS", "true")
	t.Setenv("CANVAS_MAX_BITMAP_BYTES", "4096")
	t.Setenv("CANVAS_FLATNESS", "0.5")
	t.Setenv("CANVAS_TYPEFACE_CACHE_SIZE", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.AllowHardwareBitmaps)
	assert.Equal(t, 4096, cfg.MaxBitmapBytes)
	assert.InDelta(t, 0.5, cfg.Flatness, 1e-12)
	assert.Equal(t, 2, cfg.TypefaceCacheSize)
}

func TestLoadConfigRejects(t *testing.T) {
	t.Setenv("CANVAS_FLATNESS", "-1")
	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	t.Setenv("CANVAS_FLATNESS", "flat")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max bitmap bytes", func(c *Config) { c.MaxBitmapBytes = 0 }},
		{"flatness", func(c *Config) { c.Flatness = 0 }},
		{"typeface cache", func(c *Config) { c.TypefaceCacheSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidArgument)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}
