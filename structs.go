package citylots

import (
	"image"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
)

// SectorStats holds generic stats about a generated sector
type SectorStats struct {
	Sites     int
	Cities    int
	Roads     int
	Junctions int
	Lots      int

	// number of lots by city name
	LotsByCity map[string]int `json:",omitempty"`

	// blocked areas in the sector's index once generation finished
	BlockedAreas int
}

// newSectorStats returns blank SectorStats
func newSectorStats() *SectorStats {
	return &SectorStats{LotsByCity: map[string]int{}}
}

// Site is a settlement anchor; a position on the XZ plane & a radius.
type Site struct {
	Position image.Point
	Radius   float64
}

// City is a named settlement with a circular footprint.
// Lots are only ever appended.
type City struct {
	Name   string
	Centre image.Point
	Radius int

	Lots []*Lot `json:",omitempty"`
}

// NewCity returns a city with no lots, built around the given site
func NewCity(name string, s Site) *City {
	return &City{
		Name:   name,
		Centre: s.Position,
		Radius: int(s.Radius),
		Lots:   []*Lot{},
	}
}

// Site returns the site this city sits on
func (c *City) Site() Site {
	return Site{Position: c.Centre, Radius: float64(c.Radius)}
}

// Contains returns if (x, z) lies strictly inside the city circle
func (c *City) Contains(x, z float64) bool {
	dx := x - float64(c.Centre.X)
	dz := z - float64(c.Centre.Y)
	return dx*dx+dz*dz < float64(c.Radius*c.Radius)
}

// Lot is a rectangle of land in a city, ready for a building.
// Area.Min.X -> Area.Max.X is the X extent, Area.Min.Y -> Area.Max.Y the Z.
type Lot struct {
	Area image.Rectangle
}

// Width of the lot along X
func (l *Lot) Width() int {
	return l.Area.Dx()
}

// Depth of the lot along Z
func (l *Lot) Depth() int {
	return l.Area.Dy()
}

// bounds returns the lot as an r2.Rect
func (l *Lot) bounds() r2.Rect {
	return toR2(l.Area)
}

// Junction is a road end point. Roads meeting at the same point share
// the same Junction.
type Junction struct {
	ID     int
	Coords image.Point
}

// Road is a straight connection between two junctions.
// Waypoints exclude the end points & are ordered from Start to End.
type Road struct {
	Start     *Junction
	End       *Junction
	Waypoints []model2d.Coord `json:",omitempty"`
	Width     float64
}

// Points returns the start, waypoints & end of the road in order
func (r *Road) Points() []model2d.Coord {
	pts := make([]model2d.Coord, 0, len(r.Waypoints)+2)
	pts = append(pts, toCoord(r.Start.Coords))
	pts = append(pts, r.Waypoints...)
	return append(pts, toCoord(r.End.Coords))
}

// Length returns the straight line distance between the junctions
func (r *Road) Length() float64 {
	return toCoord(r.Start.Coords).Dist(toCoord(r.End.Coords))
}

// SitePair is an unordered pair of sites; NewSitePair(a, b) == NewSitePair(b, a).
// Usable as a map key.
type SitePair struct {
	A Site
	B Site
}

// NewSitePair returns the pair with A & B in canonical order
// (by X, then Z, then radius).
func NewSitePair(a, b Site) SitePair {
	if siteLess(b, a) {
		a, b = b, a
	}
	return SitePair{A: a, B: b}
}

// Distance between the two sites
func (p SitePair) Distance() float64 {
	return toCoord(p.A.Position).Dist(toCoord(p.B.Position))
}

// siteLess is a total order over sites
func siteLess(a, b Site) bool {
	if a.Position.X != b.Position.X {
		return a.Position.X < b.Position.X
	}
	if a.Position.Y != b.Position.Y {
		return a.Position.Y < b.Position.Y
	}
	return a.Radius < b.Radius
}

// toCoord converts a point to a model2d coord
func toCoord(p image.Point) model2d.Coord {
	return model2d.Coord{X: float64(p.X), Y: float64(p.Y)}
}

// toR2 converts a rectangle to an r2.Rect
func toR2(r image.Rectangle) r2.Rect {
	r = r.Canon()
	return r2.Rect{
		X: r1.Interval{Lo: float64(r.Min.X), Hi: float64(r.Max.X)},
		Y: r1.Interval{Lo: float64(r.Min.Y), Hi: float64(r.Max.Y)},
	}
}
