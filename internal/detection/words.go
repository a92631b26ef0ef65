package detection

import (
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// WordOptions tunes word segmentation within a line.
type WordOptions struct {
	// MinGap is the inter-word gap: a run of empty columns longer than this
	// ends a word. Shorter gaps are spacing between letters.
	MinGap int `toml:"min_gap" json:"min_gap"`
	// MinWidth rejects runs at most this wide.
	MinWidth int `toml:"min_width" json:"min_width"`
	// MinDensity and MaxDensity bound the ink fraction of a word box.
	MinDensity float64 `toml:"min_density" json:"min_density"`
	MaxDensity float64 `toml:"max_density" json:"max_density"`
	// Padding is the white border added around every word image.
	Padding int `toml:"padding" json:"padding"`
}

// DefaultWordOptions returns the stock settings.
func DefaultWordOptions() WordOptions {
	return WordOptions{
		MinGap:     25,
		MinWidth:   5,
		MinDensity: 0.02,
		MaxDensity: 0.9,
		Padding:    5,
	}
}

// Word is one word image cut out of a text line.
type Word struct {
	Index int `json:"index"`
	Line  int `json:"line"`
	// Box is the unpadded word extent in word-region coordinates.
	Box imaging.Box `json:"box"`
	// Image is the padded crop.
	Image *imaging.Raster `json:"-"`
}

// SegmentWords splits one line of region into words. Index numbering starts
// at first so that word indexes stay unique across lines.
func SegmentWords(region *imaging.Raster, line Line, first int, opts WordOptions) []Word {
	profile := ColumnProfile(region, line.Box)

	var words []Word
	for _, run := range profile.Runs(0, len(profile), 0, opts.MinGap) {
		box := imaging.Box{
			X0: line.Box.X0 + run.Start,
			Y0: line.Box.Y0,
			X1: line.Box.X0 + run.End,
			Y1: line.Box.Y1,
		}
		if box.Dx() <= opts.MinWidth {
			logging.Debug("words: line %d: skipping %d px wide run at x=%d", line.Index, box.Dx(), box.X0)
			continue
		}
		density := float64(region.CountInk(box)) / float64(box.Area())
		if density < opts.MinDensity || density > opts.MaxDensity {
			logging.Debug("words: line %d: skipping run at x=%d with density %.2f", line.Index, box.X0, density)
			continue
		}

		words = append(words, Word{
			Index: first + len(words),
			Line:  line.Index,
			Box:   box,
			Image: region.Crop(box.Pad(opts.Padding)),
		})
	}
	return words
}
