package citylots

import (
	"image"

	"github.com/voidshard/citylots/internal/areaindex"
)

// AreaIndex is the default BlockedAreas, backed by an R-Tree.
// Areas only block each other if their interiors overlap; sharing an
// edge is fine.
type AreaIndex struct {
	idx *areaindex.Index
}

// NewAreaIndex returns an empty AreaIndex
func NewAreaIndex() *AreaIndex {
	return &AreaIndex{idx: areaindex.New()}
}

// IsBlocked returns if `r` overlaps any added area
func (a *AreaIndex) IsBlocked(r image.Rectangle) bool {
	return a.idx.IsBlocked(r)
}

// AddBlockedArea marks `r` as taken. Empty rectangles are ignored.
func (a *AreaIndex) AddBlockedArea(r image.Rectangle) {
	a.idx.AddBlockedArea(r)
}

// Len returns how many areas have been added
func (a *AreaIndex) Len() int {
	return a.idx.Len()
}

// Areas returns all added areas in the order they were added
func (a *AreaIndex) Areas() []image.Rectangle {
	return a.idx.Areas()
}

// Overlapping returns the added areas whose interior overlaps `r`
func (a *AreaIndex) Overlapping(r image.Rectangle) []image.Rectangle {
	return a.idx.Overlapping(r)
}
