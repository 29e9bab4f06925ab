package citylots

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"
)

// smallConfig is quick to generate but still has a few cities per sector
func smallConfig() *Config {
	cfg := DefaultConfig()
	cfg.SectorSize = 512
	cfg.Sites = SiteConfig{PerSector: 4, MinRadius: 40, MaxRadius: 80, MinDistance: 160, MaxAttempts: 300}
	return cfg
}

func TestGenerateSector(t *testing.T) {
	cfg := smallConfig()

	s, err := Generate(cfg, 2, -1)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(1024, -512, 1536, 0), s.Bounds)
	assert.Equal(t, cfg.Seed, s.Seed)
	require.NotEmpty(t, s.Sites)
	assert.Len(t, s.Cities, len(s.Sites))
	assert.NoError(t, s.Validate(cfg.Lots))

	lots := 0
	names := map[string]bool{}
	for i, city := range s.Cities {
		assert.Equal(t, s.Sites[i], city.Site())
		assert.GreaterOrEqual(t, city.Site().Radius, cfg.Sites.MinRadius)
		assert.LessOrEqual(t, city.Site().Radius, cfg.Sites.MaxRadius)

		margin := int(cfg.Sites.MaxRadius)
		assert.True(t, city.Centre.In(s.Bounds.Inset(margin)), "city %s at %v", city.Name, city.Centre)

		assert.False(t, names[city.Name])
		names[city.Name] = true
		assert.Equal(t, len(city.Lots), s.Stats.LotsByCity[city.Name])
		lots += len(city.Lots)
	}

	assert.Equal(t, lots, s.Stats.Lots)
	assert.Equal(t, len(s.Cities), s.Stats.Cities)
	assert.Equal(t, len(s.Roads), s.Stats.Roads)
	assert.Equal(t, len(s.Junctions), s.Stats.Junctions)
	assert.Greater(t, s.Stats.BlockedAreas, lots-1)

	for _, road := range s.Roads {
		assert.LessOrEqual(t, road.Length(), cfg.Roads.MaxLength)
	}
}

func TestGenerateSectorDeterministic(t *testing.T) {
	cfg := smallConfig()

	a, err := Generate(cfg, 0, 0)
	require.NoError(t, err)
	b, err := Generate(cfg, 0, 0)
	require.NoError(t, err)

	ja, err := a.JSON()
	require.NoError(t, err)
	jb, err := b.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))

	c, err := Generate(cfg, 0, 1)
	require.NoError(t, err)
	jc, err := c.JSON()
	require.NoError(t, err)
	assert.NotEqual(t, string(ja), string(jc))
}

func TestGenerateSectorsMatchesSerial(t *testing.T) {
	cfg := smallConfig()
	coords := []image.Point{{0, 0}, {1, 0}, {0, 1}, {-1, -1}, {3, 2}}

	parallel, err := GenerateSectors(context.Background(), cfg, coords, 3)
	require.NoError(t, err)
	require.Len(t, parallel, len(coords))

	for i, c := range coords {
		serial, err := Generate(cfg, c.X, c.Y)
		require.NoError(t, err)
		assert.Equal(t, serial, parallel[i])
	}
}

func TestGenerateSectorsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GenerateSectors(ctx, smallConfig(), []image.Point{{0, 0}, {1, 1}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Lots.MaxTries = 0

	_, err := Generate(cfg, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = GenerateSectors(context.Background(), cfg, []image.Point{{0, 0}}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateEmptySector(t *testing.T) {
	cfg := smallConfig()
	cfg.Sites.PerSector = 0

	s, err := Generate(cfg, 5, 5)
	require.NoError(t, err)
	assert.Empty(t, s.Sites)
	assert.Empty(t, s.Cities)
	assert.Empty(t, s.Roads)
	assert.NoError(t, s.Validate(cfg.Lots))
}

func TestSaveJSON(t *testing.T) {
	s, err := Generate(smallConfig(), 0, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sector.json")
	require.NoError(t, s.SaveJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expect, err := s.JSON()
	require.NoError(t, err)
	assert.Equal(t, expect, data)
}

func TestValidateCatchesProblems(t *testing.T) {
	cfg := DefaultLotConfig()
	city := NewCity("Broken", Site{Position: image.Pt(0, 0), Radius: 100})
	s := &Sector{Cities: []*City{city}}

	city.Lots = []*Lot{{Area: image.Rect(30, 0, 42, 12)}}
	assert.NoError(t, s.Validate(cfg))

	city.Lots = append(city.Lots, &Lot{Area: image.Rect(35, 5, 47, 17)})
	assert.ErrorIs(t, s.Validate(cfg), ErrInvalidSector)

	city.Lots = []*Lot{{Area: image.Rect(30, 0, 60, 12)}}
	assert.ErrorIs(t, s.Validate(cfg), ErrInvalidSector, "too wide")

	city.Lots = []*Lot{{Area: image.Rect(-5, -5, 7, 7)}}
	assert.ErrorIs(t, s.Validate(cfg), ErrInvalidSector, "on the city centre")

	city.Lots = []*Lot{{Area: image.Rect(30, 0, 42, 12)}}
	s.Roads = []*Road{{
		Start: &Junction{ID: 0, Coords: image.Pt(0, 5)},
		End:   &Junction{ID: 1, Coords: image.Pt(100, 5)},
		Width: 5,
	}}
	assert.ErrorIs(t, s.Validate(cfg), ErrInvalidSector, "lot on road")

	s.Roads[0].Start.Coords = image.Pt(0, 50)
	s.Roads[0].End.Coords = image.Pt(100, 50)
	assert.NoError(t, s.Validate(cfg))

	s.Roads[0].Waypoints = []model2d.Coord{{X: 50, Y: 51}}
	assert.ErrorIs(t, s.Validate(cfg), ErrInvalidSector, "off the line")

	s.Roads[0].Waypoints = []model2d.Coord{{X: 60, Y: 50}, {X: 40, Y: 50}}
	assert.ErrorIs(t, s.Validate(cfg), ErrInvalidSector, "out of order")
}
