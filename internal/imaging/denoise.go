package imaging

import (
	"image"
	"sort"

	"github.com/anthonynsimon/bild/clone"
)

// EstimateNoise returns the mean variance of luma over every interior 3x3
// neighbourhood. Images smaller than 3x3 report 0.
func EstimateNoise(img image.Image) float64 {
	gray := GrayLuma(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	var total float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var s, sq float64
			for dy := -1; dy <= 1; dy++ {
				off := (y+dy)*gray.Stride + x
				for dx := -1; dx <= 1; dx++ {
					v := float64(gray.Pix[off+dx])
					s += v
					sq += v * v
				}
			}
			mean := s / 9
			total += sq/9 - mean*mean
		}
	}
	return total / float64((w-2)*(h-2))
}

// MedianFilter applies a 3x3 median to each RGB channel independently.
// Border pixels are copied unfiltered and alpha is preserved.
func MedianFilter(img image.Image) *image.RGBA {
	src := clone.AsRGBA(img)
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	copy(dst.Pix, src.Pix)

	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return dst
	}

	var window [9]int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			di := y*dst.Stride + x*4
			for ch := 0; ch < 3; ch++ {
				k := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						window[k] = int(src.Pix[(y+dy)*src.Stride+(x+dx)*4+ch])
						k++
					}
				}
				sort.Ints(window[:])
				dst.Pix[di+ch] = uint8(window[4])
			}
		}
	}
	return dst
}
