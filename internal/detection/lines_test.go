package detection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

func TestSegmentLines(t *testing.T) {
	l := defaultLayout()
	region := l.render().Crop(imaging.Box{X0: 231, Y0: 0, X1: 380, Y1: 260})

	res, err := SegmentLines(region, DefaultLineOptions())
	require.NoError(t, err)

	assert.Equal(t, StrategyStrict, res.Strategy)
	require.Len(t, res.Lines, 5)
	for i, line := range res.Lines {
		y := l.lineY0 + i*l.linePitch
		assert.Equal(t, i, line.Index)
		assert.Equal(t, Span{Start: y, End: y + 12}, line.Span)
		assert.Equal(t, imaging.Box{X0: 0, Y0: y, X1: region.Width(), Y1: y + 12}, line.Box)
	}
	assert.Zero(t, res.Dropped)
}

func TestSegmentLines_SplitsMergedLines(t *testing.T) {
	region := imaging.NewRaster(100, 60)
	region.Fill(imaging.Box{X0: 10, Y0: 10, X1: 50, Y1: 25}, true)
	// a descender touching the next line
	region.Fill(imaging.Box{X0: 20, Y0: 25, X1: 22, Y1: 27}, true)
	region.Fill(imaging.Box{X0: 10, Y0: 27, X1: 50, Y1: 42}, true)

	res, err := SegmentLines(region, DefaultLineOptions())
	require.NoError(t, err)

	require.Len(t, res.Lines, 2)
	assert.Equal(t, Span{Start: 10, End: 25}, res.Lines[0].Span)
	assert.Equal(t, Span{Start: 27, End: 42}, res.Lines[1].Span)
}

func TestSegmentLines_DropsNoise(t *testing.T) {
	region := imaging.NewRaster(80, 60)
	region.Fill(imaging.Box{X0: 5, Y0: 2, X1: 9, Y1: 5}, true)
	region.Fill(imaging.Box{X0: 10, Y0: 20, X1: 60, Y1: 32}, true)

	res, err := SegmentLines(region, DefaultLineOptions())
	require.NoError(t, err)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, Span{Start: 20, End: 32}, res.Lines[0].Span)
	assert.Equal(t, 1, res.Dropped)
}

func TestSegmentLines_BridgesGapsWhenSmoothed(t *testing.T) {
	region := imaging.NewRaster(60, 40)
	region.Fill(imaging.Box{X0: 10, Y0: 10, X1: 40, Y1: 15}, true)
	region.Fill(imaging.Box{X0: 10, Y0: 18, X1: 40, Y1: 23}, true)

	res, err := SegmentLines(region, DefaultLineOptions())
	require.NoError(t, err)

	assert.Equal(t, StrategySmoothed, res.Strategy)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, Span{Start: 9, End: 24}, res.Lines[0].Span)
}

func TestSegmentLines_Failures(t *testing.T) {
	_, err := SegmentLines(imaging.NewRaster(0, 10), DefaultLineOptions())
	assert.True(t, errors.Is(err, ErrDimension))

	_, err = SegmentLines(imaging.NewRaster(50, 50), DefaultLineOptions())
	assert.True(t, errors.Is(err, ErrInsufficientStructure))
	assert.Equal(t, StageLines, StageOf(err))

	// a solid block never splits into line-sized bands
	solid := imaging.NewRaster(50, 80)
	solid.Fill(imaging.Box{X0: 0, Y0: 10, X1: 50, Y1: 70}, true)
	_, err = SegmentLines(solid, DefaultLineOptions())
	assert.True(t, errors.Is(err, ErrInsufficientStructure))
}
