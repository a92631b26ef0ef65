package detection

import (
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

// puzzleLayout describes a synthetic puzzle page.
type puzzleLayout struct {
	width, height int
	gridX, gridY  int
	rows, cols    int
	cell          int
	thickness     int
	cellGlyphs    bool
	listX         int
	listLines     int
	lineY0        int
	linePitch     int
	glyphsPerWord int
}

func defaultLayout() puzzleLayout {
	return puzzleLayout{
		width: 380, height: 260,
		gridX: 20, gridY: 20,
		rows: 5, cols: 5,
		cell:          40,
		thickness:     2,
		cellGlyphs:    true,
		listX:         260,
		listLines:     5,
		lineY0:        30,
		linePitch:     30,
		glyphsPerWord: 4,
	}
}

// dividers returns the expected ruling midpoints along one axis.
func (l puzzleLayout) dividers(origin, count int) []int {
	out := make([]int, count+1)
	for i := range out {
		out[i] = origin + i*l.cell + (l.thickness-1)/2
	}
	return out
}

// render draws rulings, one block glyph per cell and a word list of block
// glyphs to the right of the grid.
func (l puzzleLayout) render() *imaging.Raster {
	r := imaging.NewRaster(l.width, l.height)
	drawGrid(r, l.gridX, l.gridY, l.rows, l.cols, l.cell, l.thickness)

	if l.cellGlyphs {
		for row := 0; row < l.rows; row++ {
			for col := 0; col < l.cols; col++ {
				x := l.gridX + col*l.cell + l.cell/2 - 5
				y := l.gridY + row*l.cell + l.cell/2 - 7
				r.Fill(imaging.Box{X0: x, Y0: y, X1: x + 10, Y1: y + 14}, true)
			}
		}
	}

	for i := 0; i < l.listLines; i++ {
		drawGlyphs(r, l.listX, l.lineY0+i*l.linePitch, l.glyphsPerWord, 8, 12, 3)
	}
	return r
}

// drawGrid draws rows+1 horizontal and cols+1 vertical rulings.
func drawGrid(r *imaging.Raster, x0, y0, rows, cols, cell, thickness int) {
	x1 := x0 + cols*cell + thickness
	y1 := y0 + rows*cell + thickness
	for i := 0; i <= rows; i++ {
		y := y0 + i*cell
		r.Fill(imaging.Box{X0: x0, Y0: y, X1: x1, Y1: y + thickness}, true)
	}
	for i := 0; i <= cols; i++ {
		x := x0 + i*cell
		r.Fill(imaging.Box{X0: x, Y0: y0, X1: x + thickness, Y1: y1}, true)
	}
}

// drawGlyphs draws n solid w x h blocks separated by gap columns and
// returns the x just past the last block.
func drawGlyphs(r *imaging.Raster, x, y, n, w, h, gap int) int {
	for i := 0; i < n; i++ {
		r.Fill(imaging.Box{X0: x, Y0: y, X1: x + w, Y1: y + h}, true)
		x += w + gap
	}
	return x - gap
}
