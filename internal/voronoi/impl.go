package voronoi

import (
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// based on
// https://github.com/unixpickle/voronoi-glass/blob/main/voronoi.go
//
// + edge ordering & singular edge removal

type VoronoiCell struct {
	Center model2d.Coord
	Edges  []*model2d.Segment
}

type VoronoiDiagram []*VoronoiCell

// VoronoiCells computes the voronoi cells for a list of
// coordinates, assuming they are all contained within a
// bounding box.
//
// The resulting Voronoi cells may be slightly misaligned,
// i.e. adjacent edges' coordinates may differ due to
// rounding errors. See VoronoiDiagram.Repair().
func VoronoiCells(min, max model2d.Coord, coords []model2d.Coord) VoronoiDiagram {
	cells := make([]*VoronoiCell, len(coords))
	for i, c := range coords {
		constraints := model2d.NewConvexPolytopeRect(min, max)
		for _, c1 := range coords {
			if c == c1 {
				continue
			}
			mp := c.Mid(c1)
			normal := c1.Sub(c).Normalize()
			constraints = append(constraints, &model2d.LinearConstraint{
				Normal: normal,
				Max:    normal.Dot(mp),
			})
		}
		cells[i] = &VoronoiCell{
			Center: c,
			Edges:  constraints.Mesh().SegmentSlice(),
		}
	}
	return cells
}

// Repair merges nearly identical coordinates to make a
// well-connected graph, so that neighbouring cells share
// exactly equal edge coordinates.
func (v VoronoiDiagram) Repair(epsilon float64) {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, cell := range v {
		for _, s := range cell.Edges {
			for _, p := range s {
				if !coordSet[p] {
					coordSet[p] = true
					coordSlice = append(coordSlice, p)
				}
			}
		}
	}
	if len(coordSlice) == 0 {
		return
	}
	tree := model2d.NewCoordTree(coordSlice)

	// walk coords in discovery order so the surviving coordinate of a
	// merged group doesn't depend on map ordering
	mapping := map[model2d.Coord]model2d.Coord{}
	for _, c := range coordSlice {
		if !coordSet[c] {
			continue
		}
		for _, n := range neighborsInDistance(tree, c, epsilon) {
			if coordSet[n] {
				coordSet[n] = false
				mapping[n] = c
			}
		}
	}

	for _, cell := range v {
		for i := 0; i < len(cell.Edges); i++ {
			edge := cell.Edges[i]
			for j, c := range edge {
				edge[j] = mapping[c]
			}
			if edge[0] == edge[1] {
				// almost a singular edge
				essentials.UnorderedDelete(&cell.Edges, i)
				i--
			}
		}
		cell.Edges = orderEdges(cell.Edges)
	}
}

// orderEdges chains edges so each starts where the previous ends.
// If the edges don't form a chain they're returned as given.
func orderEdges(edges []*model2d.Segment) []*model2d.Segment {
	if len(edges) < 2 {
		return edges
	}

	starts := map[model2d.Coord]*model2d.Segment{}
	for _, e := range edges {
		starts[e[0]] = e
	}

	newOrder := make([]*model2d.Segment, len(edges))
	newOrder[0] = edges[0]
	for i := 0; i < len(edges)-1; i++ {
		next, ok := starts[newOrder[i][1]]
		if !ok {
			return edges
		}
		newOrder[i+1] = next
	}
	return newOrder
}

func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
	panic("unreachable")
}
