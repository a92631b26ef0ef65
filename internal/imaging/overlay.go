package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Stroke is a straight segment drawn by SolutionOverlay, in pixel
// coordinates of the target image.
type Stroke struct {
	From image.Point
	To   image.Point
}

// DividerOverlay draws detected grid dividers over a copy of img: a vertical
// line at every column position and a horizontal line at every row position.
// With labels set, each divider is tagged with its index.
func DividerOverlay(img image.Image, rows, cols []int, colorHex string, labels bool) *image.RGBA {
	lineColor, err := parseHexColor(colorHex)
	if err != nil {
		lineColor = color.RGBA{255, 0, 0, 255}
	}

	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)
	width, height := result.Rect.Dx(), result.Rect.Dy()

	for _, x := range cols {
		for y := 0; y < height; y++ {
			blend(result, x, y, lineColor)
		}
	}
	for _, y := range rows {
		for x := 0; x < width; x++ {
			blend(result, x, y, lineColor)
		}
	}

	if labels {
		fg := color.RGBA{255, 255, 255, 255}
		bg := color.RGBA{0, 0, 0, 200}
		for i, x := range cols {
			drawLabel(result, x+2, 2, strconv.Itoa(i), fg, bg)
		}
		for i, y := range rows {
			drawLabel(result, 2, y+2, strconv.Itoa(i), fg, bg)
		}
	}

	return result
}

// SolutionOverlay draws one translucent stroke per found word over a copy
// of img. Colors come from a generated palette so neighbouring words stay
// distinguishable.
func SolutionOverlay(img image.Image, strokes []Stroke, thickness int) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)
	if len(strokes) == 0 {
		return result
	}
	if thickness < 1 {
		thickness = 1
	}

	palette := colorful.FastHappyPalette(len(strokes))
	for i, s := range strokes {
		r, g, b := palette[i%len(palette)].RGB255()
		drawThickLine(result, s.From, s.To, thickness, color.RGBA{r, g, b, 140})
	}
	return result
}

// drawThickLine stamps a square brush along the Bresenham path from a to b.
// Each pixel is blended once even where brush stamps overlap.
func drawThickLine(img *image.RGBA, a, b image.Point, thickness int, c color.RGBA) {
	painted := make(map[image.Point]bool)
	half := thickness / 2

	dx, dy := absInt(b.X-a.X), -absInt(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	errTerm := dx + dy
	x, y := a.X, a.Y
	for {
		for by := y - half; by < y-half+thickness; by++ {
			for bx := x - half; bx < x-half+thickness; bx++ {
				p := image.Point{X: bx, Y: by}
				if painted[p] {
					continue
				}
				painted[p] = true
				blend(img, bx, by, c)
			}
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * errTerm
		if e2 >= dy {
			errTerm += dy
			x += sx
		}
		if e2 <= dx {
			errTerm += dx
			y += sy
		}
	}
}

// blend composites c over the pixel at (x, y) using c's alpha.
func blend(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return
	}
	i := img.PixOffset(x, y)
	a := int(c.A)
	img.Pix[i+0] = uint8((int(c.R)*a + int(img.Pix[i+0])*(255-a)) / 255)
	img.Pix[i+1] = uint8((int(c.G)*a + int(img.Pix[i+1])*(255-a)) / 255)
	img.Pix[i+2] = uint8((int(c.B)*a + int(img.Pix[i+2])*(255-a)) / 255)
	img.Pix[i+3] = 255
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	alpha := uint8(255)
	switch len(hex) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// drawLabel renders digits with a 3x5 pixel font on a filled background.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	const charWidth, labelHeight = 4, 7
	labelWidth := len(text) * charWidth

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			blend(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		if glyph, ok := glyphs[ch]; ok {
			for row, line := range glyph {
				for col, pixel := range line {
					if pixel == '1' {
						blend(img, cx+col, y+row, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
