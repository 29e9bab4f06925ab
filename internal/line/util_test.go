package line

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsBetweenSinglePoint(t *testing.T) {
	assert.Equal(t, []image.Point{image.Pt(3, 4)}, PointsBetween(image.Pt(3, 4), image.Pt(3, 4)))
}

func TestPointsBetweenAxisAligned(t *testing.T) {
	assert.Equal(t,
		[]image.Point{image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0), image.Pt(3, 0)},
		PointsBetween(image.Pt(0, 0), image.Pt(3, 0)),
	)
	assert.Equal(t,
		[]image.Point{image.Pt(0, 2), image.Pt(0, 1), image.Pt(0, 0)},
		PointsBetween(image.Pt(0, 2), image.Pt(0, 0)),
	)
}

func TestPointsBetweenDiagonal(t *testing.T) {
	assert.Equal(t,
		[]image.Point{image.Pt(2, 2), image.Pt(1, 1), image.Pt(0, 0)},
		PointsBetween(image.Pt(2, 2), image.Pt(0, 0)),
	)
}

func TestPointsBetweenIsContinuous(t *testing.T) {
	cases := [][2]image.Point{
		{image.Pt(0, 0), image.Pt(17, 5)},
		{image.Pt(10, -3), image.Pt(-4, 20)},
		{image.Pt(-8, -8), image.Pt(30, -1)},
	}
	for _, c := range cases {
		pts := PointsBetween(c[0], c[1])
		assert.Equal(t, c[0], pts[0])
		assert.Equal(t, c[1], pts[len(pts)-1])
		for i := 1; i < len(pts); i++ {
			d := pts[i].Sub(pts[i-1])
			assert.LessOrEqual(t, abs(d.X), 1)
			assert.LessOrEqual(t, abs(d.Y), 1)
		}
	}
}

func TestPathSharesVertices(t *testing.T) {
	pts := Path([]image.Point{image.Pt(0, 0), image.Pt(2, 0), image.Pt(2, 2)})
	assert.Equal(t, []image.Point{
		image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0), image.Pt(2, 1), image.Pt(2, 2),
	}, pts)
	assert.Nil(t, Path(nil))
}

func TestBounds(t *testing.T) {
	assert.Equal(t, image.Rect(0, -1, 4, 3), Bounds([]image.Point{image.Pt(0, 2), image.Pt(3, -1)}))
	assert.True(t, Bounds(nil).Empty())
}
