package citylots

import (
	"image"
	"math"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citylots/internal/line"
)

// RoadBuilder turns pairs of sites into straight, segmented roads.
type RoadBuilder struct {
	resolver JunctionResolver
	cfg      RoadConfig
}

// NewRoadBuilder returns a RoadBuilder resolving junctions via `resolver`.
func NewRoadBuilder(resolver JunctionResolver, cfg RoadConfig) (*RoadBuilder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RoadBuilder{resolver: resolver, cfg: cfg}, nil
}

// Build returns the road from pair.A to pair.B.
//
// The road is cut into round(d / AvgSegmentLength) segments of equal length,
// the interior waypoints sit exactly on the line between the junctions.
func (b *RoadBuilder) Build(pair SitePair) *Road {
	start := b.resolver.Resolve(pair.A.Position)
	end := b.resolver.Resolve(pair.B.Position)

	from := toCoord(start.Coords)
	to := toCoord(end.Coords)
	delta := to.Sub(from)

	segments := int(from.Dist(to)/b.cfg.AvgSegmentLength + 0.5)

	waypoints := []model2d.Coord{}
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		waypoints = append(waypoints, from.Add(delta.Scale(t)))
	}

	return &Road{
		Start:     start,
		End:       end,
		Waypoints: waypoints,
		Width:     b.width(pair),
	}
}

// width of a road between the given sites, according to the configured policy
func (b *RoadBuilder) width(pair SitePair) float64 {
	if b.cfg.WidthPolicy != WidthRadius {
		return b.cfg.Width
	}
	r := math.Min(pair.A.Radius, pair.B.Radius)
	if r <= 0 {
		return 1
	}
	return math.Max(1, math.Floor(math.Log(r)*2)/2)
}

// JunctionIndex is a JunctionResolver that memoizes junctions by location.
// IDs are handed out in creation order, starting at 0.
type JunctionIndex struct {
	byCoord map[image.Point]*Junction
	order   []*Junction
}

// NewJunctionIndex returns an empty JunctionIndex
func NewJunctionIndex() *JunctionIndex {
	return &JunctionIndex{
		byCoord: map[image.Point]*Junction{},
		order:   []*Junction{},
	}
}

// Resolve returns the junction at `at`, creating it if needed
func (j *JunctionIndex) Resolve(at image.Point) *Junction {
	if found, ok := j.byCoord[at]; ok {
		return found
	}
	made := &Junction{ID: len(j.order), Coords: at}
	j.byCoord[at] = made
	j.order = append(j.order, made)
	return made
}

// Junctions returns all junctions in creation order
func (j *JunctionIndex) Junctions() []*Junction {
	out := make([]*Junction, len(j.order))
	copy(out, j.order)
	return out
}

// ReserveRoad marks the ground under `road` as blocked.
//
// The centreline is walked cell by cell; every ceil(width) cells become one
// rectangle, padded by ceil(width/2) on each side.
func ReserveRoad(road *Road, areas BlockedAreas) {
	pts := road.Points()
	corners := make([]image.Point, len(pts))
	for i, c := range pts {
		corners[i] = image.Pt(int(math.Round(c.X)), int(math.Round(c.Y)))
	}

	path := line.Path(corners)
	chunk := int(math.Ceil(road.Width))
	if chunk < 1 {
		chunk = 1
	}
	pad := int(math.Ceil(road.Width / 2))

	for i := 0; i < len(path); i += chunk {
		end := minint(i+chunk, len(path))
		areas.AddBlockedArea(line.Bounds(path[i:end]).Inset(-pad))
	}
}
