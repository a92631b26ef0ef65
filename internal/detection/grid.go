package detection

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// Strategy names reported by LocateGrid and SegmentLines.
const (
	StrategyStrict   = "strict"
	StrategyRelaxed  = "relaxed"
	StrategySmoothed = "smoothed"
)

// GridOptions tunes grid-line detection.
type GridOptions struct {
	// StrictFraction is the share of the orthogonal dimension a profile
	// value must reach to count as a ruling on the first attempt.
	StrictFraction float64 `toml:"strict_fraction" json:"strict_fraction"`
	// RelaxedFraction is used on the smoothed profile when the strict
	// attempt finds too few rulings.
	RelaxedFraction float64 `toml:"relaxed_fraction" json:"relaxed_fraction"`
	// MinStrictDividers is how many dividers per axis the strict attempt
	// must find to be trusted.
	MinStrictDividers int `toml:"min_strict_dividers" json:"min_strict_dividers"`
	// MinDividers is the hard floor per axis.
	MinDividers int `toml:"min_dividers" json:"min_dividers"`
	// GapTolerance bounds how far a divider gap may stray from the median
	// gap, as a fraction of it, before the regularity walk stops.
	GapTolerance float64 `toml:"gap_tolerance" json:"gap_tolerance"`
	// ValidateRows applies the regularity walk to rows as well as columns.
	ValidateRows bool `toml:"validate_rows" json:"validate_rows"`
	// MinExtent is the smallest accepted grid width and height in pixels.
	MinExtent int `toml:"min_extent" json:"min_extent"`
	// MaxRulingGap is the longest break a relaxed ruling may have.
	MaxRulingGap int `toml:"max_ruling_gap" json:"max_ruling_gap"`
}

// DefaultGridOptions returns the stock settings.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		StrictFraction:    0.5,
		RelaxedFraction:   0.25,
		MinStrictDividers: 3,
		MinDividers:       2,
		GapTolerance:      0.25,
		ValidateRows:      true,
		MinExtent:         50,
		MaxRulingGap:      3,
	}
}

// GridGeometry is the validated set of grid rulings.
type GridGeometry struct {
	Rows       []int       `json:"rows"`
	Cols       []int       `json:"cols"`
	Box        imaging.Box `json:"box"`
	CellWidth  float64     `json:"cell_width"`
	CellHeight float64     `json:"cell_height"`
	Strategy   string      `json:"strategy"`
}

// NumRows returns the number of cell rows.
func (g *GridGeometry) NumRows() int { return len(g.Rows) - 1 }

// NumCols returns the number of cell columns.
func (g *GridGeometry) NumCols() int { return len(g.Cols) - 1 }

// CellCenter returns the pixel center of cell (row, col).
func (g *GridGeometry) CellCenter(row, col int) (int, int) {
	return (g.Cols[col] + g.Cols[col+1]) / 2, (g.Rows[row] + g.Rows[row+1]) / 2
}

// LocateGrid finds the row and column rulings of a deskewed binary raster.
//
// # Algorithm
//
// Each axis runs its own ladder, so an axis that passes strict keeps its
// strict dividers even when the other axis needs the relaxed rung.
//
//  1. strict: threshold the raw profile at StrictFraction of the
//     orthogonal canvas dimension and collapse each band to its midpoint.
//  2. relaxed: if the axis has fewer than MinStrictDividers, smooth the
//     profile with a 3-point average and retry at RelaxedFraction. Bands
//     must also be continuous rulings: the ink along the band, allowing
//     gaps of up to MaxRulingGap pixels, must run for at least the relaxed
//     threshold. Stacked cell letters cross the relaxed threshold but never
//     form such a run.
//  3. Walk the dividers from the first one, accepting each gap within
//     GapTolerance of the median gap, and stop at the first irregular gap.
//     This trims word-list ink that happened to cross the threshold.
//  4. The grid box spans the first to last accepted divider; it must be at
//     least MinExtent pixels on both axes.
func LocateGrid(r *imaging.Raster, opts GridOptions) (*GridGeometry, error) {
	if r.Width() < opts.MinExtent || r.Height() < opts.MinExtent {
		return nil, NewDimensionError(StageGrid, "raster %dx%d is smaller than minimum grid extent %d",
			r.Width(), r.Height(), opts.MinExtent)
	}

	rows, rowStrategy, err := axisLadder(r, RowProfile(r, r.Bounds()), true, opts).Run()
	if err != nil {
		return nil, err
	}
	cols, colStrategy, err := axisLadder(r, ColumnProfile(r, r.Bounds()), false, opts).Run()
	if err != nil {
		return nil, err
	}

	g := &GridGeometry{Rows: rows, Cols: cols, Strategy: StrategyStrict}
	if rowStrategy != StrategyStrict || colStrategy != StrategyStrict {
		g.Strategy = StrategyRelaxed
	}

	g.Cols = regularRun(g.Cols, opts.GapTolerance)
	if opts.ValidateRows {
		g.Rows = regularRun(g.Rows, opts.GapTolerance)
	}
	if len(g.Rows) < 2 || len(g.Cols) < 2 {
		return nil, NewInsufficientStructure(StageGrid,
			"only %d row and %d column dividers survive the regularity check", len(g.Rows), len(g.Cols))
	}

	g.CellWidth = medianGap(g.Cols)
	g.CellHeight = medianGap(g.Rows)
	g.Box = imaging.Box{
		X0: g.Cols[0],
		Y0: g.Rows[0],
		X1: g.Cols[len(g.Cols)-1] + 1,
		Y1: g.Rows[len(g.Rows)-1] + 1,
	}
	if g.Box.Dx() < opts.MinExtent || g.Box.Dy() < opts.MinExtent {
		return nil, NewDimensionError(StageGrid, "grid box %s is below minimum extent %d", g.Box, opts.MinExtent)
	}

	logging.Debug("grid: rows %s, cols %s, %d rows x %d cols, box %s, cell %.1fx%.1f",
		rowStrategy, colStrategy, g.NumRows(), g.NumCols(), g.Box, g.CellWidth, g.CellHeight)
	return g, nil
}

// axisLadder builds the strict and relaxed rungs for one axis. horizontal
// selects the row rulings, whose length is measured along the width.
func axisLadder(r *imaging.Raster, p Profile, horizontal bool, opts GridOptions) Ladder[[]int] {
	return Ladder[[]int]{
		Stage: StageGrid,
		Strategies: []Strategy[[]int]{
			{Name: StrategyStrict, Run: func() ([]int, error) {
				return findDividers(p, r, horizontal, opts.StrictFraction, opts.MinStrictDividers, -1)
			}},
			{Name: StrategyRelaxed, Run: func() ([]int, error) {
				return findDividers(p.Smooth(), r, horizontal, opts.RelaxedFraction, opts.MinDividers, opts.MaxRulingGap)
			}},
		},
	}
}

// findDividers thresholds p and returns the band midpoints. A non-negative
// maxGap drops bands that are not continuous rulings.
func findDividers(p Profile, r *imaging.Raster, horizontal bool, fraction float64, min, maxGap int) ([]int, error) {
	length, axis := r.Height(), "column"
	if horizontal {
		length, axis = r.Width(), "row"
	}
	threshold := int(math.Ceil(fraction * float64(length)))
	if threshold < 1 {
		threshold = 1
	}

	bands := p.Bands(threshold)
	if maxGap >= 0 {
		kept := bands[:0]
		for _, b := range bands {
			if rulingRun(r, b, horizontal, maxGap) >= threshold {
				kept = append(kept, b)
			}
		}
		bands = kept
	}

	dividers := Midpoints(bands)
	if min < 2 {
		min = 2
	}
	if len(dividers) < min {
		return nil, NewInsufficientStructure(StageGrid,
			"found %d %s dividers at %.0f%%, need %d", len(dividers), axis, fraction*100, min)
	}
	return dividers, nil
}

// rulingRun returns the longest run of ink along band b, widened by one
// pixel on each side, bridging gaps of up to maxGap pixels.
func rulingRun(r *imaging.Raster, b Band, horizontal bool, maxGap int) int {
	length := r.Height()
	if horizontal {
		length = r.Width()
	}
	line := make(Profile, length)
	for i := range line {
		for j := b.Start - 1; j <= b.End+1; j++ {
			x, y := j, i
			if horizontal {
				x, y = i, j
			}
			if r.Ink(x, y) {
				line[i] = 1
				break
			}
		}
	}

	longest := 0
	for _, s := range line.Runs(0, len(line), 0, maxGap) {
		if s.Len() > longest {
			longest = s.Len()
		}
	}
	return longest
}

// regularRun keeps the leading dividers whose consecutive gaps stay within
// tolerance of the median gap.
func regularRun(dividers []int, tolerance float64) []int {
	if len(dividers) < 3 {
		return dividers
	}
	median := medianGap(dividers)
	limit := tolerance * median

	end := 1
	for end < len(dividers) {
		gap := float64(dividers[end] - dividers[end-1])
		if math.Abs(gap-median) > limit {
			break
		}
		end++
	}
	return dividers[:end]
}

// medianGap returns the median distance between consecutive positions.
func medianGap(positions []int) float64 {
	if len(positions) < 2 {
		return 0
	}
	gaps := make([]float64, len(positions)-1)
	for i := 1; i < len(positions); i++ {
		gaps[i-1] = float64(positions[i] - positions[i-1])
	}
	sort.Float64s(gaps)
	return stat.Quantile(0.5, stat.Empirical, gaps, nil)
}
