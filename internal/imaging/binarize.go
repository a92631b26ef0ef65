package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// DenoiseMode selects whether Binarize runs the median filter first.
type DenoiseMode string

const (
	// DenoiseOff never filters.
	DenoiseOff DenoiseMode = "off"
	// DenoiseAuto filters only when EstimateNoise exceeds the configured level.
	DenoiseAuto DenoiseMode = "auto"
	// DenoiseAlways runs a single pass unconditionally.
	DenoiseAlways DenoiseMode = "always"
)

// BinarizeOptions tunes Binarize.
type BinarizeOptions struct {
	Denoise DenoiseMode `toml:"denoise" json:"denoise"`

	// NoiseLevel is the mean 3x3 luma variance above which DenoiseAuto
	// applies one median pass. Above twice this level two passes are applied.
	NoiseLevel float64 `toml:"noise_level" json:"noise_level"`
}

// DefaultBinarizeOptions returns the stock settings.
func DefaultBinarizeOptions() BinarizeOptions {
	return BinarizeOptions{
		Denoise:    DenoiseOff,
		NoiseLevel: 900,
	}
}

// BinarizeResult holds the two-valued raster and the numbers behind it.
type BinarizeResult struct {
	Raster       *Raster `json:"-"`
	Threshold    int     `json:"threshold"`
	Noise        float64 `json:"noise"`
	MedianPasses int     `json:"median_passes"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	InkPixels    int     `json:"ink_pixels"`
}

// Binarize converts img to an ink/background raster using a global
// isodata threshold over integer luma. Ink is luma <= threshold.
//
// An image that is already two-valued comes back unchanged: its darker
// value is ink and its lighter value is background.
func Binarize(img image.Image, opts BinarizeOptions) *BinarizeResult {
	src := img
	res := &BinarizeResult{}

	if opts.Denoise != DenoiseOff && opts.Denoise != "" {
		passes := 1
		if opts.Denoise == DenoiseAuto {
			res.Noise = EstimateNoise(img)
			switch {
			case distinctLevels(lumaHistogram(img)) <= 2:
				passes = 0
			case res.Noise > 2*opts.NoiseLevel:
				passes = 2
			case res.Noise > opts.NoiseLevel:
				passes = 1
			default:
				passes = 0
			}
		}
		for i := 0; i < passes; i++ {
			src = MedianFilter(src)
		}
		res.MedianPasses = passes
	}

	gray := GrayLuma(src)
	hist := lumaHistogram(gray)
	t := IsodataThreshold(hist)

	r := NewRaster(gray.Rect.Dx(), gray.Rect.Dy())
	for y := 0; y < r.height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+r.width]
		for x, v := range row {
			if int(v) <= t {
				r.ink[y*r.width+x] = true
				res.InkPixels++
			}
		}
	}

	res.Raster = r
	res.Threshold = t
	res.Width = r.width
	res.Height = r.height
	return res
}

// GrayLuma renders img as an 8-bit gray image using Luma. The result always
// starts at the origin.
func GrayLuma(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			gray.Pix[y*gray.Stride+x] = Luma(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return gray
}

// IsodataThreshold runs the Ridler-Calvard iteration on a 256-bin histogram.
//
// The threshold starts at the mean intensity. Each round splits the pixels
// into <= t and > t, and moves t to the average of the two class means
// (integer arithmetic). The first fixed point is returned. A histogram with
// a single populated level yields a threshold that makes dark levels (< 128)
// ink and light levels background.
func IsodataThreshold(hist []int) int {
	var total, sum int64
	lo, hi := -1, -1
	for v, n := range hist {
		if n == 0 {
			continue
		}
		if lo < 0 {
			lo = v
		}
		hi = v
		total += int64(n)
		sum += int64(v) * int64(n)
	}
	if total == 0 {
		return 127
	}
	if lo == hi {
		if lo < 128 {
			return lo
		}
		return lo - 1
	}

	t := int(sum / total)
	for i := 0; i < len(hist); i++ {
		var s0, s1, n0, n1 int64
		for v, n := range hist {
			if n == 0 {
				continue
			}
			if v <= t {
				s0 += int64(v) * int64(n)
				n0 += int64(n)
			} else {
				s1 += int64(v) * int64(n)
				n1 += int64(n)
			}
		}
		m0, m1 := int64(t), int64(t)
		if n0 > 0 {
			m0 = s0 / n0
		}
		if n1 > 0 {
			m1 = s1 / n1
		}
		next := int((m0 + m1) / 2)
		if next == t {
			break
		}
		t = next
	}
	return t
}

// lumaHistogram counts luma levels. The gray image's channels are equal, so
// the red channel histogram is the luma histogram.
func lumaHistogram(img image.Image) []int {
	return histogram.NewRGBAHistogram(GrayLuma(img)).R.Bins
}

func distinctLevels(hist []int) int {
	n := 0
	for _, c := range hist {
		if c > 0 {
			n++
		}
	}
	return n
}
