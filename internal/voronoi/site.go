package voronoi

import (
	"image"

	"github.com/unixpickle/model3d/model2d"
)

// Site is the centre of one voronoi cell
type Site struct {
	id     int
	at     image.Point
	parent *Voronoi
	cell   *VoronoiCell
}

// Neighbour is a Site & the edge(s) it shares with another cell.
// See Neighbours()
type Neighbour struct {
	Site  *Site
	Edges []model2d.Segment
}

// edgeKey is an edge with its ends in a fixed order, so the same edge
// walked in either direction has one key
type edgeKey [2]model2d.Coord

func toEdgeKey(s *model2d.Segment) edgeKey {
	a, b := s[0], s[1]
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Neighbours returns all Sites that share an edge with this site, ordered by ID.
func (s *Site) Neighbours() []*Neighbour {
	mine := map[edgeKey]bool{}
	for _, e := range s.cell.Edges {
		mine[toEdgeKey(e)] = true
	}

	ls := []*Neighbour{}
	for _, other := range s.parent.sites {
		if other.id == s.id {
			continue
		}
		n := &Neighbour{Site: other, Edges: []model2d.Segment{}}
		for _, e := range other.cell.Edges {
			if mine[toEdgeKey(e)] {
				n.Edges = append(n.Edges, *e)
			}
		}
		if len(n.Edges) > 0 {
			ls = append(ls, n)
		}
	}

	return ls
}

// ID of this site
func (s *Site) ID() int {
	return s.id
}

// Point returns the site centre
func (s *Site) Point() image.Point {
	return s.at
}
