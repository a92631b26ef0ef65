package detection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

func TestLocateGrid_CleanGrid(t *testing.T) {
	l := defaultLayout()
	r := l.render()

	g, err := LocateGrid(r, DefaultGridOptions())
	require.NoError(t, err)

	assert.Equal(t, StrategyStrict, g.Strategy)
	assert.Equal(t, l.dividers(l.gridY, l.rows), g.Rows)
	assert.Equal(t, l.dividers(l.gridX, l.cols), g.Cols)
	assert.Equal(t, 5, g.NumRows())
	assert.Equal(t, 5, g.NumCols())
	assert.Equal(t, 40.0, g.CellWidth)
	assert.Equal(t, 40.0, g.CellHeight)
	assert.True(t, r.Bounds().Contains(g.Box), "grid box %s outside raster", g.Box)
	assert.Equal(t, imaging.Box{X0: 20, Y0: 20, X1: 221, Y1: 221}, g.Box)
}

func TestLocateGrid_AlwaysTwoDividersInsideRaster(t *testing.T) {
	for _, size := range []struct{ rows, cols int }{{1, 1}, {2, 3}, {4, 4}, {6, 2}} {
		l := defaultLayout()
		l.rows, l.cols = size.rows, size.cols
		l.cell = 60
		l.cellGlyphs = false
		l.listLines = 0
		l.width, l.height = l.cols*l.cell+60, l.rows*l.cell+60

		r := l.render()
		g, err := LocateGrid(r, DefaultGridOptions())
		require.NoError(t, err, "%dx%d grid", size.rows, size.cols)

		assert.GreaterOrEqual(t, len(g.Rows), 2)
		assert.GreaterOrEqual(t, len(g.Cols), 2)
		assert.True(t, r.Bounds().Contains(g.Box))
		assert.Equal(t, size.rows, g.NumRows())
		assert.Equal(t, size.cols, g.NumCols())
	}
}

func TestLocateGrid_RelaxedFallback(t *testing.T) {
	l := defaultLayout()
	l.width = 500
	l.cellGlyphs = false
	l.listLines = 0

	g, err := LocateGrid(l.render(), DefaultGridOptions())
	require.NoError(t, err)

	assert.Equal(t, StrategyRelaxed, g.Strategy)
	assert.Equal(t, 5, g.NumRows())
	assert.Equal(t, 5, g.NumCols())
}

func TestLocateGrid_RelaxedRowsKeepStrictColumns(t *testing.T) {
	// rulings are shorter than half the width, so only rows need the
	// relaxed rung; the stacked cell glyphs must not become columns
	l := defaultLayout()
	l.width = 500

	g, err := LocateGrid(l.render(), DefaultGridOptions())
	require.NoError(t, err)

	assert.Equal(t, StrategyRelaxed, g.Strategy)
	assert.Equal(t, l.dividers(l.gridY, l.rows), g.Rows)
	assert.Equal(t, l.dividers(l.gridX, l.cols), g.Cols)
	assert.Equal(t, 5, g.NumRows())
	assert.Equal(t, 5, g.NumCols())
}

func TestLocateGrid_RelaxedIgnoresCellLetters(t *testing.T) {
	l := defaultLayout()
	opts := DefaultGridOptions()
	opts.StrictFraction = 0.9

	g, err := LocateGrid(l.render(), opts)
	require.NoError(t, err)

	assert.Equal(t, StrategyRelaxed, g.Strategy)
	assert.Equal(t, 5, g.NumRows())
	assert.Equal(t, 5, g.NumCols())
	assert.Equal(t, l.dividers(l.gridX, l.cols), g.Cols)
}

func TestRulingRun(t *testing.T) {
	r := imaging.NewRaster(100, 40)
	// a ruling with a 2 px break, and a row of separate glyphs
	r.Fill(imaging.Box{X0: 10, Y0: 5, X1: 40, Y1: 7}, true)
	r.Fill(imaging.Box{X0: 42, Y0: 6, X1: 90, Y1: 8}, true)
	for x := 10; x < 90; x += 20 {
		r.Fill(imaging.Box{X0: x, Y0: 20, X1: x + 10, Y1: 30}, true)
	}

	assert.Equal(t, 80, rulingRun(r, Band{Start: 5, End: 6}, true, 3))
	assert.Equal(t, 48, rulingRun(r, Band{Start: 5, End: 6}, true, 1))
	assert.Equal(t, 10, rulingRun(r, Band{Start: 24, End: 25}, true, 3))
	assert.Equal(t, 10, rulingRun(r, Band{Start: 14, End: 14}, false, 3))
}

func TestLocateGrid_TrimsIrregularColumns(t *testing.T) {
	l := defaultLayout()
	r := l.render()
	// a tall bar of word-list ink to the right of the grid
	r.Fill(imaging.Box{X0: 340, Y0: 20, X1: 342, Y1: 222}, true)

	g, err := LocateGrid(r, DefaultGridOptions())
	require.NoError(t, err)

	assert.Equal(t, l.dividers(l.gridX, l.cols), g.Cols)
	assert.Equal(t, 221, g.Box.X1)
}

func TestLocateGrid_InsufficientStructure(t *testing.T) {
	r := imaging.NewRaster(200, 200)
	r.Fill(imaging.Box{X0: 10, Y0: 100, X1: 190, Y1: 102}, true)

	_, err := LocateGrid(r, DefaultGridOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStructure))
	assert.Equal(t, StageGrid, StageOf(err))
}

func TestLocateGrid_DimensionErrors(t *testing.T) {
	_, err := LocateGrid(imaging.NewRaster(30, 300), DefaultGridOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimension))

	// a perfectly regular but tiny grid
	r := imaging.NewRaster(120, 120)
	drawGrid(r, 10, 10, 2, 2, 10, 1)
	opts := DefaultGridOptions()
	opts.StrictFraction = 0.15
	_, err = LocateGrid(r, opts)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindDimension, kind)
}

func TestRegularRun(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"regular", []int{0, 10, 20, 30}, []int{0, 10, 20, 30}},
		{"trailing outlier", []int{0, 10, 20, 30, 75}, []int{0, 10, 20, 30}},
		{"within tolerance", []int{0, 10, 22, 31}, []int{0, 10, 22, 31}},
		{"irregular first gap", []int{0, 30, 40, 50, 60}, []int{0}},
		{"two dividers", []int{5, 50}, []int{5, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, regularRun(tt.in, 0.25))
		})
	}
}

func TestMedianGap(t *testing.T) {
	assert.Equal(t, 10.0, medianGap([]int{0, 10, 20, 45}))
	assert.Zero(t, medianGap([]int{7}))
}
