package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Rotate turns img counter-clockwise by angle degrees around its center.
// The output is sized to the rotated bounding box and uncovered pixels are
// white. A zero angle returns an unrotated copy.
func Rotate(img image.Image, angle float64) *image.NRGBA {
	if angle == 0 {
		return imaging.Clone(img)
	}
	return imaging.Rotate(img, angle, color.White)
}

// RotateRaster rotates a binary raster the same way as Rotate. Bilinear
// samples are snapped back to two values at mid-gray.
func RotateRaster(r *Raster, angle float64) *Raster {
	if angle == 0 {
		return r.Clone()
	}
	return RasterFromImage(Rotate(r.Image(), angle))
}
