// Package areaindex implements an R-Tree backed registry of occupied ground.
package areaindex

import (
	"image"

	"github.com/dhconnelly/rtreego"
)

const (
	dimensions  = 2
	minChildren = 4
	maxChildren = 16
)

// area wraps a rectangle for R-Tree indexing
type area struct {
	rect   image.Rectangle
	bounds rtreego.Rect
}

func (a *area) Bounds() rtreego.Rect {
	return a.bounds
}

// Index is an append-only set of blocked rectangles.
// Rectangles only block each other if their interiors overlap, rectangles
// that merely share an edge or corner do not.
//
// Index is not safe for concurrent use; one generation pass owns one Index.
type Index struct {
	tree  *rtreego.Rtree
	areas []image.Rectangle
}

// New returns an empty Index
func New() *Index {
	return &Index{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		areas: []image.Rectangle{},
	}
}

// IsBlocked returns if `r` overlaps any previously added area.
// Empty rectangles are never blocked.
func (i *Index) IsBlocked(r image.Rectangle) bool {
	bounds, ok := toRect(r)
	if !ok {
		return false
	}
	hits := i.tree.SearchIntersect(bounds, rtreego.LimitFilter(1))
	return len(hits) > 0
}

// AddBlockedArea marks `r` as occupied. Empty rectangles are ignored.
func (i *Index) AddBlockedArea(r image.Rectangle) {
	bounds, ok := toRect(r)
	if !ok {
		return
	}
	i.tree.Insert(&area{rect: r.Canon(), bounds: bounds})
	i.areas = append(i.areas, r.Canon())
}

// Len returns the number of blocked areas
func (i *Index) Len() int {
	return len(i.areas)
}

// Areas returns all blocked areas in the order they were added.
func (i *Index) Areas() []image.Rectangle {
	out := make([]image.Rectangle, len(i.areas))
	copy(out, i.areas)
	return out
}

// Overlapping returns all blocked areas whose interior overlaps `r`, in
// no particular order.
func (i *Index) Overlapping(r image.Rectangle) []image.Rectangle {
	bounds, ok := toRect(r)
	if !ok {
		return nil
	}
	hits := i.tree.SearchIntersect(bounds)
	out := make([]image.Rectangle, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*area).rect)
	}
	return out
}

// toRect converts an image.Rectangle into an rtreego.Rect.
// rtreego rejects zero lengths, so empty rectangles report !ok.
func toRect(r image.Rectangle) (rtreego.Rect, bool) {
	r = r.Canon()
	if r.Empty() {
		return rtreego.Rect{}, false
	}
	bounds, err := rtreego.NewRect(
		rtreego.Point{float64(r.Min.X), float64(r.Min.Y)},
		[]float64{float64(r.Dx()), float64(r.Dy())},
	)
	if err != nil {
		return rtreego.Rect{}, false
	}
	return bounds, true
}
