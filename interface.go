package citylots

import (
	"image"
)

// BlockedAreas tells the lot packer what ground is already taken.
// Roads (see ReserveRoad) and other generators add to it before lots are
// packed; the packer adds every lot it accepts.
//
// One generation pass (one sector) owns one BlockedAreas, implementations
// need not be safe for concurrent use.
type BlockedAreas interface {
	// true if `r` overlaps (by interior) any area added so far
	IsBlocked(r image.Rectangle) bool

	// mark `r` as taken
	AddBlockedArea(r image.Rectangle)
}

// JunctionResolver hands out road junctions by location.
// Resolving the same point twice must return the same *Junction.
type JunctionResolver interface {
	Resolve(at image.Point) *Junction
}
