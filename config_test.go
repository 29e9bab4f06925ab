package citylots

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "terasology", cfg.Seed)
	assert.Equal(t, 1024, cfg.SectorSize)
	assert.Equal(t, LotConfig{MinSize: 10, MaxSize: 18, MaxLots: 100, MaxTries: 100}, cfg.Lots)
	assert.Equal(t, 40.0, cfg.Roads.AvgSegmentLength)
	assert.Equal(t, WidthFixed, cfg.Roads.WidthPolicy)
	assert.Equal(t, 5.0, cfg.Roads.Width)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citylots.yaml")
	data := []byte(`
seed: "elsewhere"
lots:
  min_size: 8
  max_size: 12
  max_lots: 20
  max_tries: 50
roads:
  avg_segment_length: 25
  width_policy: radius
  width: 5
  max_length: 0
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "elsewhere", cfg.Seed)
	assert.Equal(t, 1024, cfg.SectorSize)
	assert.Equal(t, DefaultConfig().Sites, cfg.Sites)
	assert.Equal(t, LotConfig{MinSize: 8, MaxSize: 12, MaxLots: 20, MaxTries: 50}, cfg.Lots)
	assert.Equal(t, WidthRadius, cfg.Roads.WidthPolicy)
	assert.Equal(t, 25.0, cfg.Roads.AvgSegmentLength)
	assert.Equal(t, 0.0, cfg.Roads.MaxLength)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("lots:\n  min_size: 30\n  max_size: 18\n  max_lots: 1\n  max_tries: 1\n"), 0644))
	_, err := LoadConfig(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("seed: [unterminated"), 0644))
	_, err = LoadConfig(garbage)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"sector size":    func(c *Config) { c.SectorSize = 0 },
		"per sector":     func(c *Config) { c.Sites.PerSector = -1 },
		"min radius":     func(c *Config) { c.Sites.MinRadius = 0 },
		"radius order":   func(c *Config) { c.Sites.MinRadius = c.Sites.MaxRadius + 1 },
		"radius too big": func(c *Config) { c.Sites.MaxRadius = 600 },
		"min distance":   func(c *Config) { c.Sites.MinDistance = -1 },
		"attempts":       func(c *Config) { c.Sites.MaxAttempts = 0 },
		"lot min size":   func(c *Config) { c.Lots.MinSize = -2 },
		"lot tries":      func(c *Config) { c.Lots.MaxTries = 0 },
		"segment length": func(c *Config) { c.Roads.AvgSegmentLength = -1 },
		"width policy":   func(c *Config) { c.Roads.WidthPolicy = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestRadiusPolicyIgnoresWidth(t *testing.T) {
	cfg := DefaultRoadConfig()
	cfg.WidthPolicy = WidthRadius
	cfg.Width = 0
	assert.NoError(t, cfg.Validate())
}
