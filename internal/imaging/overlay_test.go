package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDividerOverlay(t *testing.T) {
	img := createInMemoryImage(100, 100, color.Black)

	out := DividerOverlay(img, []int{20, 60}, []int{30}, "#FF0000", false)
	require.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(30, 50))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(50, 20))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(50, 60))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(50, 50))
}

func TestDividerOverlay_InvalidColorFallsBackToRed(t *testing.T) {
	img := createInMemoryImage(40, 40, color.White)

	out := DividerOverlay(img, nil, []int{10}, "not-a-color", false)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(10, 30))
}

func TestDividerOverlay_Labels(t *testing.T) {
	img := createInMemoryImage(80, 80, color.White)

	plain := DividerOverlay(img, []int{40}, []int{40}, "#00FF00", false)
	labelled := DividerOverlay(img, []int{40}, []int{40}, "#00FF00", true)

	// the label background darkens the corner next to the first column divider
	assert.NotEqual(t, plain.RGBAAt(43, 3), labelled.RGBAAt(43, 3))
}

func TestSolutionOverlay(t *testing.T) {
	img := createInMemoryImage(60, 60, color.White)
	strokes := []Stroke{
		{From: image.Pt(5, 5), To: image.Pt(55, 5)},
		{From: image.Pt(5, 10), To: image.Pt(55, 55)},
	}

	out := SolutionOverlay(img, strokes, 3)

	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(30, 5))
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(55, 55))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(50, 30))
	// different words get different colors
	assert.NotEqual(t, out.RGBAAt(30, 5), out.RGBAAt(5, 10))
}

func TestSolutionOverlay_NoStrokes(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	out := SolutionOverlay(img, nil, 2)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(5, 5))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"#0000FF80", color.RGBA{0, 0, 255, 128}, false},
		{"#abcdef", color.RGBA{171, 205, 239, 255}, false},
		{"", color.RGBA{}, true},
		{"#FFF", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
