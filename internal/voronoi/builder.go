package voronoi

import (
	"image"
	"math"
)

// Rand is the source of randomness a Builder draws from.
type Rand interface {
	Intn(n int) int
}

// Builder struct makes managing the setup of a voronoi diagram easier.
// We're interested here in scattering settlement sites over a sector with
// some structure to how they're laid out (min spacing, border margin).
type Builder struct {
	bounds image.Rectangle
	sites  []image.Point
	rng    Rand
	sfilt  []SiteFilter
	cfilt  []CandidateFilter
}

// NewBuilder returns a new Voronoi diagram builder drawing from `rng`.
// Equal rng sequences with equal filters place equal sites.
func NewBuilder(bounds image.Rectangle, rng Rand) *Builder {
	return &Builder{
		bounds: bounds.Canon(),
		sites:  []image.Point{},
		rng:    rng,
	}
}

// SiteCount returns how many sites we've currently got placed
func (b *Builder) SiteCount() int {
	return len(b.sites)
}

// Sites returns the placed sites in placement order
func (b *Builder) Sites() []image.Point {
	out := make([]image.Point, len(b.sites))
	copy(out, b.sites)
	return out
}

// Voronoi returns the Voronoi diagram given our current sites.
// Nb. there must be at least one site set or this will panic.
func (b *Builder) Voronoi() *Voronoi {
	if len(b.sites) == 0 {
		panic("voronoi diagram requires at least one site")
	}
	return newVoronoi(b)
}

// SetCandidateFilters sets filters that accept / reject a proposed site without
// reference to other currently set site(s).
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// SetSiteFilters sets filters that compare proposed sites to all current sites.
func (b *Builder) SetSiteFilters(f ...SiteFilter) {
	b.sfilt = f
}

// AddRandomSite proposes one random site, keeping it if it obeys all
// currently set filters.
func (b *Builder) AddRandomSite() (image.Point, bool) {
	if b.bounds.Empty() {
		return image.Point{}, false
	}
	candidate := image.Pt(
		b.rng.Intn(b.bounds.Dx())+b.bounds.Min.X,
		b.rng.Intn(b.bounds.Dy())+b.bounds.Min.Y,
	)
	if !b.accepted(candidate.X, candidate.Y) {
		return image.Point{}, false
	}
	b.sites = append(b.sites, candidate)
	return candidate, true
}

// AddRandomSites proposes random sites until `n` are placed or `attempts`
// proposals have been made. Returns the number placed.
func (b *Builder) AddRandomSites(n, attempts int) int {
	placed := 0
	for i := 0; i < attempts && placed < n; i++ {
		if _, ok := b.AddRandomSite(); ok {
			placed++
		}
	}
	return placed
}

// AddSite places a site at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(x, y int) (int, bool) {
	if !b.accepted(x, y) {
		return 0, false
	}
	b.sites = append(b.sites, image.Pt(x, y))
	return len(b.sites) - 1, true
}

// accepted returns if the proposed site location (x, y) is acceptable to our filters.
// We run CandidateFilter(s) first so we can hopefully reject candidates early.
func (b *Builder) accepted(candidateX, candidateY int) bool {
	for _, fn := range b.cfilt {
		if !fn(candidateX, candidateY) {
			return false
		}
	}
	for _, s := range b.sites {
		for _, fn := range b.sfilt {
			if !fn(candidateX, candidateY, s.X, s.Y) {
				return false
			}
		}
	}
	return true
}

// calculateDist standard pythag.
func calculateDist(ax, ay, bx, by int) float64 {
	return math.Hypot(float64(ax-bx), float64(ay-by))
}
