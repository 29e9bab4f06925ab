package citylots

import (
	"bytes"
	"image"
	"image/png"
	"os"
)

// SectorBounds returns the world area covered by sector (x, z)
func SectorBounds(size, x, z int) image.Rectangle {
	return image.Rect(x*size, z*size, (x+1)*size, (z+1)*size)
}

// savePNG encodes `in` as a PNG at `fpath`
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, buff.Bytes(), 0644)
}

// minint returns the lowest of two ints
func minint(a, b int) int {
	if a < b {
		return a
	}
	return b
}
