package detection

import (
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// LineOptions tunes text-line segmentation of the word list.
type LineOptions struct {
	// MinInk is the row ink count a row must exceed to belong to a line.
	MinInk int `toml:"min_ink" json:"min_ink"`
	// GapTolerance is how many quiet rows a line may contain before it is
	// closed. Broken or anti-aliased glyphs leave such gaps.
	GapTolerance int `toml:"gap_tolerance" json:"gap_tolerance"`
	// MinHeight and MaxHeight bound the height of a single text line.
	MinHeight int `toml:"min_height" json:"min_height"`
	MaxHeight int `toml:"max_height" json:"max_height"`
	// ThresholdStep raises the ink threshold, as a fraction of the band's
	// peak row count, each time an oversized band is re-split.
	ThresholdStep float64 `toml:"threshold_step" json:"threshold_step"`
	// ThresholdCeiling is the highest threshold, as a fraction of the band
	// peak, tried before an oversized band is dropped.
	ThresholdCeiling float64 `toml:"threshold_ceiling" json:"threshold_ceiling"`
}

// DefaultLineOptions returns the stock settings.
func DefaultLineOptions() LineOptions {
	return LineOptions{
		MinInk:           0,
		GapTolerance:     2,
		MinHeight:        8,
		MaxHeight:        30,
		ThresholdStep:    0.1,
		ThresholdCeiling: 0.6,
	}
}

// Line is one text line of the word region.
type Line struct {
	Index int         `json:"index"`
	Span  Span        `json:"span"`
	Box   imaging.Box `json:"box"`
}

// LinesResult lists the accepted lines top to bottom.
type LinesResult struct {
	Lines    []Line `json:"lines"`
	Strategy string `json:"strategy"`
	Dropped  int    `json:"dropped"`
}

// SegmentLines splits a word-region raster into text lines.
//
// Runs of rows with more than MinInk ink pixels form candidate bands.
// Bands between MinHeight and MaxHeight rows are lines. Taller bands hold
// several merged lines: their threshold is raised and they are split again,
// recursively, until the pieces fit or the ceiling is reached, at which
// point the remainder is dropped. Shorter bands are noise.
//
// The raw profile is tried first, then its 3-point smoothing.
func SegmentLines(region *imaging.Raster, opts LineOptions) (*LinesResult, error) {
	if region.Width() == 0 || region.Height() == 0 {
		return nil, NewDimensionError(StageLines, "word region %dx%d is empty", region.Width(), region.Height())
	}

	raw := RowProfile(region, region.Bounds())
	attempt := func(p Profile) func() (*LinesResult, error) {
		return func() (*LinesResult, error) {
			res := &LinesResult{}
			spans := splitLines(p, Span{Start: 0, End: len(p)}, opts.MinInk, opts.GapTolerance, opts, &res.Dropped)
			if len(spans) == 0 {
				return nil, NewInsufficientStructure(StageLines, "no text line between %d and %d px tall",
					opts.MinHeight, opts.MaxHeight)
			}
			for i, s := range spans {
				res.Lines = append(res.Lines, Line{
					Index: i,
					Span:  s,
					Box:   imaging.Box{X0: 0, Y0: s.Start, X1: region.Width(), Y1: s.End},
				})
			}
			return res, nil
		}
	}

	ladder := Ladder[*LinesResult]{
		Stage: StageLines,
		Strategies: []Strategy[*LinesResult]{
			{Name: StrategyStrict, Run: attempt(raw)},
			{Name: StrategySmoothed, Run: attempt(raw.Smooth())},
		},
	}

	res, name, err := ladder.Run()
	if err != nil {
		return nil, err
	}
	res.Strategy = name
	logging.Debug("lines: %d lines (%s), %d bands dropped", len(res.Lines), name, res.Dropped)
	return res, nil
}

// splitLines finds bands inside within and sorts them into lines, noise and
// oversized bands, re-splitting the latter at a higher threshold.
func splitLines(p Profile, within Span, threshold, gap int, opts LineOptions, dropped *int) []Span {
	var lines []Span
	for _, run := range p.Runs(within.Start, within.End, threshold, gap) {
		h := run.Len()
		switch {
		case h < opts.MinHeight:
			*dropped++
		case h <= opts.MaxHeight:
			lines = append(lines, run)
		default:
			peak := Profile(p[run.Start:run.End]).Max()
			step := int(opts.ThresholdStep * float64(peak))
			if step < 1 {
				step = 1
			}
			next := threshold + step
			if float64(next) > opts.ThresholdCeiling*float64(peak) {
				logging.Debug("lines: dropping %d-row band at %d, threshold ceiling reached", h, run.Start)
				*dropped++
				continue
			}
			// any dip splits a merged band, so no gap tolerance here
			lines = append(lines, splitLines(p, run, next, 0, opts, dropped)...)
		}
	}
	return lines
}
