package detection

import (
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

// CellOptions tunes cell slicing.
type CellOptions struct {
	// Trim is the inset, in pixels, applied inside each pair of dividers so
	// that ruling ink stays out of the cell.
	Trim int `toml:"trim" json:"trim"`
}

// DefaultCellOptions returns the stock settings.
func DefaultCellOptions() CellOptions {
	return CellOptions{Trim: 3}
}

// Cell is one grid square cropped out of the binary raster.
type Cell struct {
	Row   int             `json:"row"`
	Col   int             `json:"col"`
	Box   imaging.Box     `json:"box"`
	Image *imaging.Raster `json:"-"`
}

// SliceCells crops one raster per (row, col) between consecutive dividers,
// inset by Trim, in row-major order. Every cell must have positive extent;
// a single degenerate cell rejects the whole geometry.
func SliceCells(r *imaging.Raster, g *GridGeometry, opts CellOptions) ([]Cell, error) {
	if len(g.Rows) < 2 || len(g.Cols) < 2 {
		return nil, NewInsufficientStructure(StageCells, "need at least 2 dividers per axis, have %d rows and %d cols",
			len(g.Rows), len(g.Cols))
	}

	boxes := make([]imaging.Box, 0, g.NumRows()*g.NumCols())
	for row := 0; row < g.NumRows(); row++ {
		for col := 0; col < g.NumCols(); col++ {
			b := imaging.Box{
				X0: g.Cols[col] + opts.Trim,
				Y0: g.Rows[row] + opts.Trim,
				X1: g.Cols[col+1] - opts.Trim,
				Y1: g.Rows[row+1] - opts.Trim,
			}
			if b.Empty() {
				return nil, NewDimensionError(StageCells, "cell (%d,%d) has non-positive extent %s", row, col, b)
			}
			boxes = append(boxes, b)
		}
	}

	cells := make([]Cell, len(boxes))
	for i, b := range boxes {
		cells[i] = Cell{
			Row:   i / g.NumCols(),
			Col:   i % g.NumCols(),
			Box:   b,
			Image: r.Crop(b),
		}
	}
	return cells, nil
}

// TrimToInk crops r to the bounding box of its ink grown by margin. A
// raster without ink becomes a 1x1 background raster.
func TrimToInk(r *imaging.Raster, margin int) *imaging.Raster {
	b, ok := r.InkBounds(r.Bounds())
	if !ok {
		return imaging.NewRaster(1, 1)
	}
	return r.Crop(b.Pad(margin))
}
