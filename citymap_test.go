package citylots

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

// testSector is a tiny hand built sector; one city with one lot & one road
// running past it
func testSector() *Sector {
	city := NewCity("Mapton", Site{Position: image.Pt(150, 150), Radius: 20})
	city.Lots = append(city.Lots, &Lot{Area: image.Rect(160, 140, 170, 150)})

	west := &Junction{ID: 0, Coords: image.Pt(100, 120)}
	east := &Junction{ID: 1, Coords: image.Pt(199, 120)}

	return &Sector{
		Bounds:    image.Rect(100, 100, 200, 200),
		Cities:    []*City{city},
		Roads:     []*Road{{Start: west, End: east, Width: 4}},
		Junctions: []*Junction{west, east},
	}
}

func TestSectorMapKinds(t *testing.T) {
	m := testSector().Map()

	assert.Equal(t, KindFootprint, m.Kind(150, 150))
	assert.Equal(t, KindLot, m.Kind(165, 145))
	assert.Equal(t, KindRoad, m.Kind(150, 120))
	assert.Equal(t, KindJunction, m.Kind(101, 120))
	assert.Equal(t, KindNothing, m.Kind(190, 190))
	assert.Equal(t, KindNothing, m.Kind(0, 0))

	assert.True(t, m.Is(KindFootprint, 165, 145))
	assert.True(t, m.Is(KindLot, 165, 145))
	assert.False(t, m.Is(KindRoad, 165, 145))
	assert.False(t, m.Is(KindNothing, 190, 190))

	assert.Equal(t, []ElementKind{KindLot, KindFootprint}, m.Kinds(165, 145))
	assert.Equal(t, []ElementKind{KindJunction, KindRoad}, m.Kinds(101, 120))
	assert.Empty(t, m.Kinds(190, 190))
}

func TestSectorMapOwners(t *testing.T) {
	m := testSector().Map()

	city, err := m.City(165, 145)
	require.NoError(t, err)
	assert.Equal(t, 0, city)

	lot, err := m.Lot(165, 145)
	require.NoError(t, err)
	assert.Equal(t, 0, lot)

	city, err = m.City(190, 190)
	require.NoError(t, err)
	assert.Equal(t, -1, city)

	lot, err = m.Lot(150, 150)
	require.NoError(t, err)
	assert.Equal(t, -1, lot)

	_, err = m.City(0, 0)
	assert.Error(t, err)
	_, err = m.Lot(200, 200)
	assert.Error(t, err)
}

func TestSectorMapCustomImage(t *testing.T) {
	m := testSector().Map()
	scheme := DefaultScheme()

	im, err := m.CustomImage(scheme)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), im.Bounds())

	rgba := func(c color.Color) color.RGBA {
		return color.RGBAModel.Convert(c).(color.RGBA)
	}
	assert.Equal(t, rgba(colornames.Sienna), rgba(im.At(65, 45)))
	assert.Equal(t, rgba(colornames.Wheat), rgba(im.At(50, 50)))
	assert.Equal(t, rgba(colornames.Dimgray), rgba(im.At(50, 20)))
	assert.Equal(t, rgba(colornames.Darkolivegreen), rgba(im.At(90, 90)))

	_, err = m.CustomImage(nil)
	assert.Error(t, err)
}

func TestSectorMapSave(t *testing.T) {
	m := testSector().Map()
	dir := t.TempDir()

	for _, path := range []string{filepath.Join(dir, "raw.png"), filepath.Join(dir, "coloured.png")} {
		var err error
		if filepath.Base(path) == "raw.png" {
			err = m.Save(path)
		} else {
			err = m.SaveAdv(path, DefaultScheme())
		}
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestGeneratedSectorMap(t *testing.T) {
	s, err := Generate(smallConfig(), 0, 0)
	require.NoError(t, err)
	m := s.Map()

	for ci, city := range s.Cities {
		for li, lot := range city.Lots {
			x, z := lot.Area.Min.X, lot.Area.Min.Y
			assert.True(t, m.Is(KindLot, x, z))

			got, err := m.Lot(x, z)
			require.NoError(t, err)
			assert.Equal(t, li, got)

			owner, err := m.City(x, z)
			require.NoError(t, err)
			assert.Equal(t, ci, owner)
		}
	}
}
