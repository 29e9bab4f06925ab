package citylots

import (
	"image"
	"log/slog"
	"math"

	"github.com/golang/geo/r2"

	"github.com/voidshard/citylots/internal/random"
)

// LotPacker fills city footprints with non overlapping rectangular lots.
//
// Lots are placed at random inside the city's usable annulus; each candidate
// is shrunk to fit the free space between lots already in the city and then
// checked against the BlockedAreas, which catches everything else (roads,
// other cities' lots).
type LotPacker struct {
	seed string
	cfg  LotConfig
}

// NewLotPacker returns a LotPacker for the given global seed.
func NewLotPacker(seed string, cfg LotConfig) (*LotPacker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &LotPacker{seed: seed, cfg: cfg}, nil
}

// annulus returns the min & max distance from a city centre at which a
// lot centre may be placed. Lots can't sit on the very centre & must be
// clear of the footprint edge even when rotated.
func (p *LotPacker) annulus(radius int) (float64, float64) {
	maxLotDiagonal := float64(p.cfg.MaxSize) * math.Sqrt2
	minRadius := 5 + float64(p.cfg.MaxSize)/2
	maxRadius := (2*float64(radius) - maxLotDiagonal) / 2
	return minRadius, maxRadius
}

// Generate packs lots into `city`, appending them to city.Lots & adding each
// to `areas`. Returns the lots added by this call, in placement order.
//
// A city too small to hold a lot simply gets none.
func (p *LotPacker) Generate(city *City, areas BlockedAreas) []*Lot {
	added := []*Lot{}

	minRadius, maxRadius := p.annulus(city.Radius)
	if minRadius >= maxRadius {
		slog.Debug("city too small for lots", "city", city.Name, "radius", city.Radius)
		return added
	}

	rng := random.NewKeyed(p.seed, random.CityKey(city.Name, city.Centre.X, city.Centre.Y, city.Radius))
	centre := r2.Point{X: float64(city.Centre.X), Y: float64(city.Centre.Y)}

	for i := 0; i < p.cfg.MaxTries && len(added) < p.cfg.MaxLots; i++ {
		// draw order is fixed: angle, distance, width, depth
		angle := rng.Range(0, 2*math.Pi)
		dist := rng.Range(minRadius, maxRadius)
		desiredX := rng.Range(float64(p.cfg.MinSize), float64(p.cfg.MaxSize))
		desiredZ := rng.Range(float64(p.cfg.MinSize), float64(p.cfg.MaxSize))

		pos := centre.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(dist))

		space := maxSpace(pos, city.Lots)
		sizeX := int(math.Min(desiredX, space.X))
		sizeZ := int(math.Min(desiredZ, space.Y))
		if sizeX < p.cfg.MinSize || sizeZ < p.cfg.MinSize {
			continue
		}

		minX := int(pos.X - float64(sizeX)*0.5)
		minZ := int(pos.Y - float64(sizeZ)*0.5)
		rect := image.Rect(minX, minZ, minX+sizeX, minZ+sizeZ)

		if areas.IsBlocked(rect) {
			continue
		}
		areas.AddBlockedArea(rect)

		lot := &Lot{Area: rect}
		city.Lots = append(city.Lots, lot)
		added = append(added, lot)
	}

	slog.Debug("lots generated", "city", city.Name, "lots", len(added))
	return added
}

// maxSpace returns the largest width (X) & depth (Y) of a rectangle centred
// on `pos` that doesn't overlap any of `lots`.
// Unconstrained axes are +Inf.
func maxSpace(pos r2.Point, lots []*Lot) r2.Point {
	maxX := math.Inf(1)
	maxZ := math.Inf(1)

	for _, lot := range lots {
		b := lot.bounds()
		half := b.Size().Mul(0.5)
		centre := b.Center()

		dx := math.Abs(pos.X-centre.X) - half.X
		dz := math.Abs(pos.Y-centre.Y) - half.Y

		switch {
		case dx <= 0 && dz <= 0:
			// inside this lot
			return r2.Point{}
		case dx > 0 && dz > 0:
			// diagonal; restrict whichever axis is further away
			if dx > dz {
				maxX = math.Min(maxX, dx)
			} else {
				maxZ = math.Min(maxZ, dz)
			}
		case dx > 0:
			maxX = math.Min(maxX, dx)
		default:
			maxZ = math.Min(maxZ, dz)
		}
	}

	return r2.Point{X: 2 * maxX, Y: 2 * maxZ}
}
