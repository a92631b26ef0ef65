package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/anthonynsimon/bild/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTwoToneImage draws dark squares on a light background.
func createTwoToneImage(width, height int, dark, light color.Color) *image.RGBA {
	img := createInMemoryImage(width, height, light)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/5+y/5)%3 == 0 {
				img.Set(x, y, dark)
			}
		}
	}
	return img
}

func TestIsodataThreshold(t *testing.T) {
	tests := []struct {
		name   string
		levels map[int]int
		want   int
	}{
		{"black and white", map[int]int{0: 100, 255: 300}, 127},
		{"two grays", map[int]int{40: 50, 200: 50}, 120},
		{"uniform dark", map[int]int{30: 10}, 30},
		{"uniform light", map[int]int{250: 10}, 249},
		{"empty", map[int]int{}, 127},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hist := make([]int, 256)
			for v, n := range tt.levels {
				hist[v] = n
			}
			assert.Equal(t, tt.want, IsodataThreshold(hist))
		})
	}
}

func TestIsodataThreshold_Bimodal(t *testing.T) {
	hist := make([]int, 256)
	for v := 20; v <= 60; v++ {
		hist[v] = 10
	}
	for v := 180; v <= 240; v++ {
		hist[v] = 30
	}

	th := IsodataThreshold(hist)
	assert.Greater(t, th, 60)
	assert.Less(t, th, 180)
}

func TestBinarize_TwoValuedIsIdempotent(t *testing.T) {
	img := createTwoToneImage(60, 40, color.Black, color.White)

	first := Binarize(img, DefaultBinarizeOptions())
	require.NotNil(t, first.Raster)
	assert.Equal(t, 60, first.Width)
	assert.Equal(t, 40, first.Height)

	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			want := (x/5+y/5)%3 == 0
			require.Equal(t, want, first.Raster.Ink(x, y), "pixel (%d,%d)", x, y)
		}
	}

	second := Binarize(first.Raster.Image(), DefaultBinarizeOptions())
	assert.True(t, first.Raster.Equal(second.Raster))
	assert.Equal(t, first.InkPixels, second.InkPixels)
}

func TestBinarize_ColoredInk(t *testing.T) {
	img := createTwoToneImage(30, 30, color.RGBA{20, 20, 120, 255}, color.RGBA{240, 235, 220, 255})

	res := Binarize(img, DefaultBinarizeOptions())
	assert.True(t, res.Raster.Ink(0, 0))
	assert.False(t, res.Raster.Ink(5, 0))
	assert.Greater(t, res.Threshold, 30)
	assert.Less(t, res.Threshold, 230)
}

func TestBinarize_UniformImages(t *testing.T) {
	white := Binarize(createInMemoryImage(10, 10, color.White), DefaultBinarizeOptions())
	assert.Zero(t, white.InkPixels)

	black := Binarize(createInMemoryImage(10, 10, color.Black), DefaultBinarizeOptions())
	assert.Equal(t, 100, black.InkPixels)
}

func TestBinarize_OffsetBounds(t *testing.T) {
	img := createTwoToneImage(40, 40, color.Black, color.White)
	sub := img.SubImage(image.Rect(10, 10, 30, 30))

	res := Binarize(sub, DefaultBinarizeOptions())
	assert.Equal(t, 20, res.Width)
	assert.Equal(t, ((10/5+10/5)%3 == 0), res.Raster.Ink(0, 0))
}

func TestBinarize_AutoDenoiseSkipsCleanImages(t *testing.T) {
	img := createTwoToneImage(40, 40, color.Black, color.White)
	opts := BinarizeOptions{Denoise: DenoiseAuto, NoiseLevel: 1}

	res := Binarize(img, opts)
	assert.Zero(t, res.MedianPasses)
	assert.Greater(t, res.Noise, 1.0)
}

func TestBinarize_AutoDenoiseFiltersNoise(t *testing.T) {
	img := noise.Generate(40, 40, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})
	opts := BinarizeOptions{Denoise: DenoiseAuto, NoiseLevel: 100}

	res := Binarize(img, opts)
	assert.Equal(t, 2, res.MedianPasses)
}

func TestEstimateNoise(t *testing.T) {
	assert.Zero(t, EstimateNoise(createInMemoryImage(20, 20, color.Gray{Y: 90})))
	assert.Zero(t, EstimateNoise(createInMemoryImage(2, 2, color.White)))

	noisy := noise.Generate(50, 50, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})
	assert.Greater(t, EstimateNoise(noisy), 1000.0)
}

func TestMedianFilter_RemovesSpeckle(t *testing.T) {
	img := createInMemoryImage(9, 9, color.White)
	img.Set(4, 4, color.Black)
	img.Set(0, 0, color.Black)

	out := MedianFilter(img)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(4, 4))
	// border pixels are copied unfiltered
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(0, 0))
}

func TestMedianFilter_PerChannel(t *testing.T) {
	img := createInMemoryImage(3, 3, color.RGBA{10, 200, 30, 255})
	img.Set(1, 1, color.RGBA{250, 0, 30, 255})
	img.Set(0, 1, color.RGBA{250, 0, 90, 255})

	out := MedianFilter(img)
	assert.Equal(t, color.RGBA{10, 200, 30, 255}, out.RGBAAt(1, 1))
}
