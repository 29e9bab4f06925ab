package citylots

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration error, so
// errors.Is(err, ErrInvalidConfig) holds for all of them.
var ErrInvalidConfig = errors.New("invalid config")

// WidthPolicy decides how wide a road is.
type WidthPolicy string

const (
	// WidthFixed gives every road RoadConfig.Width
	WidthFixed WidthPolicy = "fixed"

	// WidthRadius derives the width from the smaller site radius:
	// max(1, ln(r)) floored to the nearest 0.5
	WidthRadius WidthPolicy = "radius"
)

// Config holds everything needed to generate sectors.
type Config struct {
	// Seed is the global seed, opaque; equal seeds give equal worlds
	Seed string `yaml:"seed"`

	// SectorSize is the width & depth of one sector in world units.
	// Sector (x, z) covers [x*size, (x+1)*size) on both axes.
	SectorSize int `yaml:"sector_size"`

	Sites SiteConfig `yaml:"sites"`
	Lots  LotConfig  `yaml:"lots"`
	Roads RoadConfig `yaml:"roads"`
}

// SiteConfig controls how settlement sites are scattered over a sector.
type SiteConfig struct {
	PerSector   int     `yaml:"per_sector"`   // desired sites per sector (best effort)
	MinRadius   float64 `yaml:"min_radius"`   // radius of the smallest city
	MaxRadius   float64 `yaml:"max_radius"`   // radius of the largest city, also the border margin
	MinDistance float64 `yaml:"min_distance"` // min distance between any two sites
	MaxAttempts int     `yaml:"max_attempts"` // proposals made before giving up
}

// LotConfig controls the lot packer.
type LotConfig struct {
	MinSize  int `yaml:"min_size"`
	MaxSize  int `yaml:"max_size"`
	MaxLots  int `yaml:"max_lots"`  // per city
	MaxTries int `yaml:"max_tries"` // per city
}

// RoadConfig controls road building.
type RoadConfig struct {
	AvgSegmentLength float64     `yaml:"avg_segment_length"`
	WidthPolicy      WidthPolicy `yaml:"width_policy"`
	Width            float64     `yaml:"width"`      // used by WidthFixed
	MaxLength        float64     `yaml:"max_length"` // neighbouring sites further apart get no road, 0 or less is "no max"
}

// DefaultConfig returns a reasonable default Config.
func DefaultConfig() *Config {
	return &Config{
		Seed:       "terasology",
		SectorSize: 1024,
		Sites: SiteConfig{
			PerSector:   6,
			MinRadius:   40,
			MaxRadius:   120,
			MinDistance: 220,
			MaxAttempts: 200,
		},
		Lots:  DefaultLotConfig(),
		Roads: DefaultRoadConfig(),
	}
}

// DefaultLotConfig returns the default lot packer settings
func DefaultLotConfig() LotConfig {
	return LotConfig{MinSize: 10, MaxSize: 18, MaxLots: 100, MaxTries: 100}
}

// DefaultRoadConfig returns the default road settings
func DefaultRoadConfig() RoadConfig {
	return RoadConfig{
		AvgSegmentLength: 40,
		WidthPolicy:      WidthFixed,
		Width:            5,
		MaxLength:        700,
	}
}

// LoadConfig loads a Config from a YAML file on top of DefaultConfig().
// If the file doesn't exist, returns defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	return cfg, cfg.Validate()
}

// Validate checks all settings, returning the first problem found.
func (c *Config) Validate() error {
	if c.SectorSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "sector_size %d must be positive", c.SectorSize)
	}
	if err := c.Sites.Validate(); err != nil {
		return err
	}
	if 2*c.Sites.MaxRadius >= float64(c.SectorSize) {
		return errors.Wrapf(ErrInvalidConfig, "sites: max_radius %v does not fit in sector_size %d", c.Sites.MaxRadius, c.SectorSize)
	}
	if err := c.Lots.Validate(); err != nil {
		return err
	}
	return c.Roads.Validate()
}

// Validate checks site settings
func (c SiteConfig) Validate() error {
	switch {
	case c.PerSector < 0:
		return errors.Wrapf(ErrInvalidConfig, "sites: per_sector %d must not be negative", c.PerSector)
	case c.MinRadius <= 0:
		return errors.Wrapf(ErrInvalidConfig, "sites: min_radius %v must be positive", c.MinRadius)
	case c.MinRadius > c.MaxRadius:
		return errors.Wrapf(ErrInvalidConfig, "sites: min_radius %v exceeds max_radius %v", c.MinRadius, c.MaxRadius)
	case c.MinDistance < 0:
		return errors.Wrapf(ErrInvalidConfig, "sites: min_distance %v must not be negative", c.MinDistance)
	case c.MaxAttempts <= 0:
		return errors.Wrapf(ErrInvalidConfig, "sites: max_attempts %d must be positive", c.MaxAttempts)
	}
	return nil
}

// Validate checks lot packer settings
func (c LotConfig) Validate() error {
	switch {
	case c.MinSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "lots: min_size %d must be positive", c.MinSize)
	case c.MinSize > c.MaxSize:
		return errors.Wrapf(ErrInvalidConfig, "lots: min_size %d exceeds max_size %d", c.MinSize, c.MaxSize)
	case c.MaxLots <= 0:
		return errors.Wrapf(ErrInvalidConfig, "lots: max_lots %d must be positive", c.MaxLots)
	case c.MaxTries <= 0:
		return errors.Wrapf(ErrInvalidConfig, "lots: max_tries %d must be positive", c.MaxTries)
	}
	return nil
}

// Validate checks road settings
func (c RoadConfig) Validate() error {
	switch {
	case c.AvgSegmentLength <= 0:
		return errors.Wrapf(ErrInvalidConfig, "roads: avg_segment_length %v must be positive", c.AvgSegmentLength)
	}
	switch c.WidthPolicy {
	case WidthFixed:
		if c.Width <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "roads: width %v must be positive", c.Width)
		}
	case WidthRadius:
	default:
		return errors.Wrapf(ErrInvalidConfig, "roads: unknown width_policy %q", c.WidthPolicy)
	}
	return nil
}
