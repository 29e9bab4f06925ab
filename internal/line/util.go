package line

import (
	"image"
)

// PointsBetween returns all points on a line from a to b (inclusive),
// ordered starting at a.
func PointsBetween(a, b image.Point) []image.Point {
	pts := []image.Point{}
	bresenham(func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	}, a.X, a.Y, b.X, b.Y)
	return pts
}

// Path returns the points along a polyline through `pts`, with the shared
// vertex between consecutive legs only included once.
func Path(pts []image.Point) []image.Point {
	if len(pts) == 0 {
		return nil
	}
	if len(pts) == 1 {
		return []image.Point{pts[0]}
	}

	out := []image.Point{}
	for i := 1; i < len(pts); i++ {
		leg := PointsBetween(pts[i-1], pts[i])
		if i > 1 {
			leg = leg[1:]
		}
		out = append(out, leg...)
	}
	return out
}

// Bounds returns the smallest rectangle covering every given point, where
// each point is taken to be a 1x1 cell.
func Bounds(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Pt(1, 1))}
	for _, p := range pts[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}
