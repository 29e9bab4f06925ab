package citylots

import (
	"sort"
)

// ElementKind tags each kind of geometry we can paint onto a SectorMap.
type ElementKind string

const (
	KindNothing   ElementKind = "nothing"   // open ground
	KindFootprint ElementKind = "footprint" // inside a city circle
	KindLot       ElementKind = "lot"       // a packed lot
	KindRoad      ElementKind = "road"      // road surface
	KindJunction  ElementKind = "junction"  // road end point
)

var (
	// all kinds, lowest draw priority first
	allElementKinds = []ElementKind{KindFootprint, KindLot, KindRoad, KindJunction}

	elementIndex = map[ElementKind]int{
		KindNothing:   0,
		KindFootprint: 1,
		KindLot:       2,
		KindRoad:      3,
		KindJunction:  4,
	}

	invElementIndex = map[int]ElementKind{}
)

func init() {
	for k, v := range elementIndex {
		invElementIndex[v] = k
	}
}

// ID returns the index of an element kind; 0 for unknown kinds
func (k ElementKind) ID() int {
	v, ok := elementIndex[k]
	if !ok {
		return 0
	}
	return v
}

// bit returns the bitmap bit for this kind
func (k ElementKind) bit() int {
	return k.ID() - 1
}

// elementForID is the inversion of ElementKind.ID()
func elementForID(i int) ElementKind {
	kind, ok := invElementIndex[i]
	if !ok {
		return KindNothing
	}
	return kind
}

// priority orders kinds for colouring; when several kinds cover one pixel
// the highest priority wins (Junction > Road > Lot > Footprint).
func (k ElementKind) priority() int {
	return k.ID()
}

// AllElementKinds returns all paintable ElementKinds, lowest priority first
func AllElementKinds() []ElementKind {
	out := make([]ElementKind, len(allElementKinds))
	copy(out, allElementKinds)
	return out
}

// sortKindsByPriority puts the highest priority kinds first
func sortKindsByPriority(in []ElementKind) {
	sort.SliceStable(in, func(a, b int) bool {
		return in[a].priority() > in[b].priority()
	})
}
