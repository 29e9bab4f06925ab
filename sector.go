package citylots

import (
	"context"
	"encoding/json"
	"image"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/voidshard/citylots/internal/random"
	"github.com/voidshard/citylots/internal/voronoi"
)

// ErrInvalidSector is wrapped by every error Sector.Validate returns
var ErrInvalidSector = errors.New("invalid sector")

// annulusTolerance is how far (in world units) a lot centre may drift from
// the annulus. Lot corners are truncated to ints, which moves the centre
// by less than one unit on each axis.
const annulusTolerance = math.Sqrt2

// Sector holds all settlement geometry generated for one square of the world.
type Sector struct {
	X    int
	Z    int
	Seed string

	// Bounds is the world area covered
	Bounds image.Rectangle

	Sites     []Site
	Cities    []*City
	Roads     []*Road     `json:",omitempty"`
	Junctions []*Junction `json:",omitempty"`

	Stats *SectorStats `json:",omitempty"`
}

// Generate builds sector (sx, sz).
//
// Order matters: sites are placed, cities & roads are built from them,
// roads are reserved in the sector's AreaIndex and finally lots are packed
// city by city against that same index.
func Generate(cfg *Config, sx, sz int) (*Sector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sector{
		X:         sx,
		Z:         sz,
		Seed:      cfg.Seed,
		Bounds:    SectorBounds(cfg.SectorSize, sx, sz),
		Sites:     []Site{},
		Cities:    []*City{},
		Roads:     []*Road{},
		Junctions: []*Junction{},
		Stats:     newSectorStats(),
	}

	rng := random.NewKeyed(cfg.Seed, random.SectorKey(sx, sz))

	graph := s.placeSites(cfg.Sites, rng)
	for i, name := range cityNames(rng, len(s.Sites)) {
		s.Cities = append(s.Cities, NewCity(name, s.Sites[i]))
	}

	areas := NewAreaIndex()
	if graph != nil {
		err := s.addRoads(cfg.Roads, graph, areas)
		if err != nil {
			return nil, err
		}
	}

	packer, err := NewLotPacker(cfg.Seed, cfg.Lots)
	if err != nil {
		return nil, err
	}
	for _, city := range s.Cities {
		added := packer.Generate(city, areas)
		s.Stats.LotsByCity[city.Name] = len(added)
		s.Stats.Lots += len(added)
	}

	s.Stats.Sites = len(s.Sites)
	s.Stats.Cities = len(s.Cities)
	s.Stats.Roads = len(s.Roads)
	s.Stats.Junctions = len(s.Junctions)
	s.Stats.BlockedAreas = areas.Len()

	slog.Info("sector generated",
		"x", sx, "z", sz,
		"cities", s.Stats.Cities,
		"roads", s.Stats.Roads,
		"lots", s.Stats.Lots,
	)
	return s, nil
}

// placeSites scatters sites over the sector & returns their voronoi diagram
// (nil if there are no sites).
func (s *Sector) placeSites(cfg SiteConfig, rng *random.Stream) *voronoi.Voronoi {
	vb := voronoi.NewBuilder(s.Bounds, rng)
	vb.SetCandidateFilters(vb.Inset(int(math.Ceil(cfg.MaxRadius))))
	vb.SetSiteFilters(vb.MinDistance(cfg.MinDistance))

	placed := vb.AddRandomSites(cfg.PerSector, cfg.MaxAttempts)
	if placed < cfg.PerSector {
		slog.Warn("placed fewer sites than desired",
			"x", s.X, "z", s.Z, "placed", placed, "desired", cfg.PerSector,
		)
	}

	for _, p := range vb.Sites() {
		radius := math.Floor(rng.Range(cfg.MinRadius, cfg.MaxRadius))
		s.Sites = append(s.Sites, Site{Position: p, Radius: radius})
	}

	if placed == 0 {
		return nil
	}
	return vb.Voronoi()
}

// addRoads builds one road for each pair of neighbouring sites that are
// close enough & reserves the road's ground.
func (s *Sector) addRoads(cfg RoadConfig, graph *voronoi.Voronoi, areas BlockedAreas) error {
	junctions := NewJunctionIndex()
	builder, err := NewRoadBuilder(junctions, cfg)
	if err != nil {
		return err
	}

	seen := map[SitePair]bool{}
	for _, ids := range graph.Adjacent() {
		pair := NewSitePair(s.Sites[ids[0]], s.Sites[ids[1]])
		if seen[pair] {
			continue
		}
		seen[pair] = true

		if cfg.MaxLength > 0 && pair.Distance() > cfg.MaxLength {
			continue
		}

		road := builder.Build(pair)
		ReserveRoad(road, areas)
		s.Roads = append(s.Roads, road)
	}

	s.Junctions = junctions.Junctions()
	return nil
}

// GenerateSectors builds all the given sectors using up to `workers`
// goroutines (GOMAXPROCS if workers < 1). Each sector gets its own
// AreaIndex. Results are in the order of `coords`.
func GenerateSectors(ctx context.Context, cfg *Config, coords []image.Point, workers int) ([]*Sector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Sector, len(coords))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range coords {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Generate(cfg, c.X, c.Y)
			if err != nil {
				return errors.Wrapf(err, "generating sector %d,%d", c.X, c.Y)
			}
			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// JSON returns the sector as json.
func (s *Sector) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// SaveJSON writes a json file to the given path.
func (s *Sector) SaveJSON(fpath string) error {
	data, err := s.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0644)
}

// Map renders the sector onto a SectorMap.
func (s *Sector) Map() SectorMap {
	return newSectorMap(s)
}

// Validate re-checks the sector's geometry, returning the first problem found:
//   - lots never overlap each other, or a road
//   - lot sizes are within cfg's bounds
//   - lot centres sit in their city's annulus
//   - road waypoints lie on the line between the junctions, in order
func (s *Sector) Validate(cfg LotConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	roads := NewAreaIndex()
	for _, road := range s.Roads {
		if err := validateRoad(road); err != nil {
			return err
		}
		ReserveRoad(road, roads)
	}

	packer := &LotPacker{cfg: cfg}
	lots := NewAreaIndex()
	for _, city := range s.Cities {
		minRadius, maxRadius := packer.annulus(city.Radius)

		for i, lot := range city.Lots {
			if lot.Width() < cfg.MinSize || lot.Width() > cfg.MaxSize || lot.Depth() < cfg.MinSize || lot.Depth() > cfg.MaxSize {
				return errors.Wrapf(ErrInvalidSector, "city %s lot %d: size %dx%d out of bounds", city.Name, i, lot.Width(), lot.Depth())
			}

			c := lot.bounds().Center()
			dist := math.Hypot(c.X-float64(city.Centre.X), c.Y-float64(city.Centre.Y))
			if dist < minRadius-annulusTolerance || dist > maxRadius+annulusTolerance {
				return errors.Wrapf(ErrInvalidSector, "city %s lot %d: centre %.2f from city centre, outside [%.2f, %.2f]", city.Name, i, dist, minRadius, maxRadius)
			}

			if hits := lots.Overlapping(lot.Area); len(hits) > 0 {
				return errors.Wrapf(ErrInvalidSector, "city %s lot %d: %v overlaps lot %v", city.Name, i, lot.Area, hits[0])
			}
			if roads.IsBlocked(lot.Area) {
				return errors.Wrapf(ErrInvalidSector, "city %s lot %d: %v overlaps a road", city.Name, i, lot.Area)
			}
			lots.AddBlockedArea(lot.Area)
		}
	}

	return nil
}

// collinearTolerance bounds the distance (world units) of a waypoint
// from its road's centre line
const collinearTolerance = 1e-6

// validateRoad checks waypoints are on the road line & strictly ordered
func validateRoad(road *Road) error {
	from := toCoord(road.Start.Coords)
	delta := toCoord(road.End.Coords).Sub(from)
	length := delta.Norm()

	last := 0.0
	for i, w := range road.Waypoints {
		rel := w.Sub(from)
		if length == 0 {
			return errors.Wrapf(ErrInvalidSector, "road %d-%d: zero length road has waypoints", road.Start.ID, road.End.ID)
		}
		off := math.Abs(delta.X*rel.Y-delta.Y*rel.X) / length
		if off > collinearTolerance {
			return errors.Wrapf(ErrInvalidSector, "road %d-%d: waypoint %d is %v off the line", road.Start.ID, road.End.ID, i, off)
		}
		t := rel.Dot(delta) / (length * length)
		if t <= last || t >= 1 {
			return errors.Wrapf(ErrInvalidSector, "road %d-%d: waypoint %d out of order", road.Start.ID, road.End.ID, i)
		}
		last = t
	}
	return nil
}
