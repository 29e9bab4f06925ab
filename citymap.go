package citylots

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/voidshard/citylots/internal/encoding"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

// SectorMap is a graphical representation of a Sector.
// All coordinates are world coordinates (X, Z).
type SectorMap interface {
	// Save as custom file in a format defined by the library
	Save(fpath string) error

	// SaveAdv saves as an image with the given color scheme
	SaveAdv(fpath string, scheme *ColourScheme) error

	// CustomImage returns an image with the given color scheme
	CustomImage(scheme *ColourScheme) (image.Image, error)

	// Is returns if the given kind of element covers x,z
	Is(kind ElementKind, x, z int) bool

	// Kind returns the highest priority kind at x,z
	Kind(x, z int) ElementKind

	// Kinds returns every kind at x,z, highest priority first
	Kinds(x, z int) []ElementKind

	// City returns the index (into Sector.Cities) of the city whose
	// footprint covers x,z or -1
	City(x, z int) (int, error)

	// Lot returns the index (into City.Lots) of the lot at x,z or -1
	Lot(x, z int) (int, error)
}

// painter paints one kind of element of `s` onto `m`
type painter func(m *imageMap, s *Sector)

// painters is the registry of how each element kind is drawn
var painters = map[ElementKind]painter{
	KindFootprint: paintFootprints,
	KindLot:       paintLots,
	KindRoad:      paintRoads,
	KindJunction:  paintJunctions,
}

// imageMap is a particular implementation of SectorMap using a RGBA64
type imageMap struct {
	// Map is an RGBA64 image where each pixel of 64 bits is split via
	//
	// R [16 bits]
	//   16-1: [16 bits] -> city index + 1 (0 is no city)
	// G [16 bits]
	// B [16 bits]
	//   32-1 [32 bits] -> lot index + 1 (0 is no lot), G holds the significant bits
	// A [16 bits]
	//   16-9 [8 bits] -> highest priority element kind id
	//    8-1 [8 bits] -> bitmap, one bit per element kind (see ElementKind.bit)
	//
	im *image.RGBA64

	// world coords of the image's (0, 0)
	origin image.Point
}

// ColourScheme defines how each element kind should be coloured.
type ColourScheme struct {
	Ground color.Color
	Kinds  map[ElementKind]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Ground: colornames.Darkolivegreen,
		Kinds: map[ElementKind]color.Color{
			KindFootprint: colornames.Wheat,
			KindLot:       colornames.Sienna,
			KindRoad:      colornames.Dimgray,
			KindJunction:  colornames.Black,
		},
	}
}

// newSectorMap paints every element kind of `s`, lowest priority first
func newSectorMap(s *Sector) *imageMap {
	m := &imageMap{
		im:     image.NewRGBA64(image.Rect(0, 0, s.Bounds.Dx(), s.Bounds.Dy())),
		origin: s.Bounds.Min,
	}
	for _, kind := range allElementKinds {
		painters[kind](m, s)
	}
	return m
}

// paintFootprints marks every pixel whose centre is inside a city circle
func paintFootprints(m *imageMap, s *Sector) {
	for i, city := range s.Cities {
		r := city.Radius
		for z := city.Centre.Y - r; z <= city.Centre.Y+r; z++ {
			for x := city.Centre.X - r; x <= city.Centre.X+r; x++ {
				if !city.Contains(float64(x)+0.5, float64(z)+0.5) {
					continue
				}
				lx, lz, ok := m.local(x, z)
				if !ok {
					continue
				}
				m.set(lx, lz, KindFootprint)
				m.setCity(lx, lz, i)
			}
		}
	}
}

// paintLots marks every lot's area
func paintLots(m *imageMap, s *Sector) {
	for i, city := range s.Cities {
		for j, lot := range city.Lots {
			for z := lot.Area.Min.Y; z < lot.Area.Max.Y; z++ {
				for x := lot.Area.Min.X; x < lot.Area.Max.X; x++ {
					lx, lz, ok := m.local(x, z)
					if !ok {
						continue
					}
					m.set(lx, lz, KindLot)
					m.setCity(lx, lz, i)
					m.setLot(lx, lz, j)
				}
			}
		}
	}
}

// paintRoads strokes each road on a scratch context, then transfers
// the result. It's much easier to lean on a graphics library for
// thick lines than to figure out all the geometry ourselves.
func paintRoads(m *imageMap, s *Sector) {
	ctx := m.scratch()
	ctx.SetColor(color.White)
	ctx.SetLineCapRound()
	for _, road := range s.Roads {
		pts := road.Points()
		ctx.SetLineWidth(road.Width)
		ctx.MoveTo(pts[0].X-float64(m.origin.X), pts[0].Y-float64(m.origin.Y))
		for _, p := range pts[1:] {
			ctx.LineTo(p.X-float64(m.origin.X), p.Y-float64(m.origin.Y))
		}
		ctx.Stroke()
	}
	m.transfer(ctx, KindRoad)
}

// paintJunctions draws a disc at each junction, twice as wide as the
// widest road meeting there
func paintJunctions(m *imageMap, s *Sector) {
	widths := map[int]float64{}
	for _, road := range s.Roads {
		widths[road.Start.ID] = math.Max(widths[road.Start.ID], road.Width)
		widths[road.End.ID] = math.Max(widths[road.End.ID], road.Width)
	}

	ctx := m.scratch()
	ctx.SetColor(color.White)
	for _, j := range s.Junctions {
		radius := math.Max(1, widths[j.ID])
		ctx.DrawCircle(float64(j.Coords.X-m.origin.X), float64(j.Coords.Y-m.origin.Y), radius)
		ctx.Fill()
	}
	m.transfer(ctx, KindJunction)
}

// scratch returns a blank drawing context the size of the map
func (c *imageMap) scratch() *gg.Context {
	bnds := c.im.Bounds()
	ctx := gg.NewContext(bnds.Dx(), bnds.Dy())
	ctx.SetRGBA(0, 0, 0, 0)
	ctx.Clear()
	return ctx
}

// transfer marks `kind` wherever the scratch context was painted
func (c *imageMap) transfer(ctx *gg.Context, kind ElementKind) {
	temp := ctx.Image()
	bnds := c.im.Bounds()
	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			_, _, _, a := temp.At(dx, dy).RGBA()
			if a>>8 >= 128 {
				c.set(dx, dy, kind)
			}
		}
	}
}

// Save the SectorMap as is to disk
func (c *imageMap) Save(fpath string) error {
	return savePNG(fpath, c.im)
}

// CustomImage returns the SectorMap coloured with the given Scheme
func (c *imageMap) CustomImage(scheme *ColourScheme) (image.Image, error) {
	if scheme == nil {
		return nil, fmt.Errorf("colour scheme required")
	}

	bnds := c.im.Bounds()
	im := image.NewRGBA(bnds)

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			kind := c.top(dx, dy)
			col, ok := scheme.Kinds[kind]
			if kind == KindNothing || !ok {
				col = scheme.Ground
			}
			if col != nil {
				im.Set(dx, dy, col)
			}
		}
	}

	return im, nil
}

// SaveAdv essentially saves the SectorMap using the given scheme to disk.
// Essentially sugar around "CustomImage()" followed by writing out a PNG.
func (c *imageMap) SaveAdv(fpath string, scheme *ColourScheme) error {
	im, err := c.CustomImage(scheme)
	if err != nil {
		return err
	}
	ctx := gg.NewContextForRGBA(im.(*image.RGBA))
	return ctx.SavePNG(fpath)
}

// Is returns if `kind` covers x,z
func (c *imageMap) Is(kind ElementKind, x, z int) bool {
	lx, lz, ok := c.local(x, z)
	if !ok || kind.ID() == 0 {
		return false
	}
	return c.getBM(lx, lz).Get(kind.bit())
}

// Kind returns the highest priority kind at x,z
func (c *imageMap) Kind(x, z int) ElementKind {
	lx, lz, ok := c.local(x, z)
	if !ok {
		return KindNothing
	}
	return c.top(lx, lz)
}

// Kinds returns every kind at x,z, highest priority first
func (c *imageMap) Kinds(x, z int) []ElementKind {
	found := []ElementKind{}
	for _, kind := range allElementKinds {
		if c.Is(kind, x, z) {
			found = append(found, kind)
		}
	}
	sortKindsByPriority(found)
	return found
}

// City returns the city index at x,z
func (c *imageMap) City(x, z int) (int, error) {
	lx, lz, ok := c.local(x, z)
	if !ok {
		return -1, fmt.Errorf("(%d,%d) is out of bounds", x, z)
	}
	return int(c.im.RGBA64At(lx, lz).R) - 1, nil
}

// Lot returns the lot index at x,z
func (c *imageMap) Lot(x, z int) (int, error) {
	lx, lz, ok := c.local(x, z)
	if !ok {
		return -1, fmt.Errorf("(%d,%d) is out of bounds", x, z)
	}
	v := c.im.RGBA64At(lx, lz)
	return int(encoding.Merge16(v.G, v.B)) - 1, nil
}

// local converts world x,z to image coords, reporting if they're in bounds
func (c *imageMap) local(x, z int) (int, int, bool) {
	lx, lz := x-c.origin.X, z-c.origin.Y
	return lx, lz, image.Pt(lx, lz).In(c.im.Bounds())
}

// top returns the kind stored as highest priority at local x,y
func (c *imageMap) top(x, y int) ElementKind {
	id, _ := encoding.Split16(c.im.RGBA64At(x, y).A)
	return elementForID(int(id))
}

// set marks local x,y as covered by `kind`
func (c *imageMap) set(x, y int, kind ElementKind) {
	bm := c.getBM(x, y)
	bm.Set(kind.bit(), true)

	top := c.top(x, y)
	if kind.priority() > top.priority() {
		top = kind
	}
	c.setBM(x, y, top, bm)
}

// setCity sets the city index at local x,y
func (c *imageMap) setCity(x, y, city int) {
	v := c.im.RGBA64At(x, y)
	v.R = uint16(city + 1)
	c.im.SetRGBA64(x, y, v)
}

// setLot sets the lot index at local x,y
func (c *imageMap) setLot(x, y, lot int) {
	v := c.im.RGBA64At(x, y)
	v.G, v.B = encoding.Split32(uint32(lot + 1))
	c.im.SetRGBA64(x, y, v)
}

// setBM sets the top kind & 8 bit bitmap at x,y
func (c *imageMap) setBM(x, y int, top ElementKind, bm bitmap.Bitmap) {
	num := encoding.FromBytes8(bm.Data(true))

	current := c.im.RGBA64At(x, y)
	current.A = encoding.Merge8(uint8(top.ID()), num)

	c.im.SetRGBA64(x, y, current)
}

// getBM gets the 8 bit bitmap at x,y
func (c *imageMap) getBM(x, y int) bitmap.Bitmap {
	current := c.im.RGBA64At(x, y)

	_, bmdata := encoding.Split16(current.A)
	data := encoding.ToBytes8(bmdata)
	return bitmap.Bitmap(data)
}
