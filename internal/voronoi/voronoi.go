package voronoi

import (
	"image"

	"github.com/unixpickle/model3d/model2d"
)

// repairEpsilon is the distance under which cell vertices are merged
const repairEpsilon = 1e-8

// Voronoi is a repaired diagram over a set of placed sites.
type Voronoi struct {
	vg     VoronoiDiagram
	sites  []*Site
	bounds image.Rectangle
}

// newVoronoi builds a voronoi diagram using the given builder information
func newVoronoi(b *Builder) *Voronoi {
	me := &Voronoi{bounds: b.bounds}

	points := make([]model2d.Coord, len(b.sites))
	for i, s := range b.sites {
		points[i] = model2d.Coord{X: float64(s.X), Y: float64(s.Y)}
	}

	me.vg = VoronoiCells(
		model2d.Coord{X: float64(b.bounds.Min.X), Y: float64(b.bounds.Min.Y)},
		model2d.Coord{X: float64(b.bounds.Max.X), Y: float64(b.bounds.Max.Y)},
		points,
	)
	me.vg.Repair(repairEpsilon)

	me.sites = make([]*Site, len(me.vg))
	for i, cell := range me.vg {
		me.sites[i] = &Site{id: i, at: b.sites[i], cell: cell, parent: me}
	}

	return me
}

// Bounds returns the bounding rect for this diagram
func (v *Voronoi) Bounds() image.Rectangle {
	return v.bounds
}

// Sites returns all sites, ordered by ID
func (v *Voronoi) Sites() []*Site {
	return v.sites
}

// SiteByID returns the given Site by it's ID
func (v *Voronoi) SiteByID(i int) *Site {
	if i < 0 || i >= len(v.sites) {
		return nil
	}
	return v.sites[i]
}

// SiteFor returns the nearest Site ("centre" of a voronoi cell) for the given point.
// Ties go to the lowest ID.
func (v *Voronoi) SiteFor(x, y int) *Site {
	dist := -1.0
	var pick *Site
	for _, site := range v.sites {
		sdist := calculateDist(site.at.X, site.at.Y, x, y)
		if dist < 0 || sdist < dist {
			dist = sdist
			pick = site
		}
	}
	return pick
}

// Adjacent returns every pair of sites whose cells share an edge, as
// (lower ID, higher ID), ordered by the lower then the higher ID.
func (v *Voronoi) Adjacent() [][2]int {
	pairs := [][2]int{}
	for _, s := range v.sites {
		for _, n := range s.Neighbours() {
			if n.Site.id > s.id {
				pairs = append(pairs, [2]int{s.id, n.Site.id})
			}
		}
	}
	return pairs
}
