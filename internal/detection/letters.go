package detection

import (
	"math"
	"sort"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// Split strategies for wide components.
const (
	SplitValley = "valley"
	SplitEqual  = "equal"
)

// LetterOptions tunes letter segmentation.
type LetterOptions struct {
	// Components narrower than MinWidth or shorter than MinHeight are noise.
	MinWidth  int `toml:"min_width" json:"min_width"`
	MinHeight int `toml:"min_height" json:"min_height"`
	// MaxWidth is the widest plausible single glyph. A component is also
	// treated as several glyphs when wider than WideFactor times the median
	// glyph width of the word, provided that median comes from at least
	// three glyphs.
	MaxWidth   int     `toml:"max_width" json:"max_width"`
	WideFactor float64 `toml:"wide_factor" json:"wide_factor"`
	// ValleyDepth: a column is a valley when its ink count is below this
	// fraction of the component height.
	ValleyDepth float64 `toml:"valley_depth" json:"valley_depth"`
	// MaxCuts bounds the valley cuts applied to one component.
	MaxCuts int `toml:"max_cuts" json:"max_cuts"`
	// MinPieceFraction is the narrowest valley-cut piece, as a fraction of
	// the median glyph width.
	MinPieceFraction float64 `toml:"min_piece_fraction" json:"min_piece_fraction"`
	// Margin is the background border kept around each letter crop.
	Margin int `toml:"margin" json:"margin"`
	// MaxPixels caps the word raster area handed to the labeler.
	MaxPixels int `toml:"max_pixels" json:"max_pixels"`
}

// DefaultLetterOptions returns the stock settings.
func DefaultLetterOptions() LetterOptions {
	return LetterOptions{
		MinWidth:         3,
		MinHeight:        5,
		MaxWidth:         25,
		WideFactor:       2.0,
		ValleyDepth:      0.25,
		MaxCuts:          4,
		MinPieceFraction: 0.6,
		Margin:           2,
		MaxPixels:        1 << 22,
	}
}

// Letter is one glyph image of a word.
type Letter struct {
	Word  int `json:"word"`
	Index int `json:"index"`
	// Box is the glyph extent in the word image.
	Box   imaging.Box     `json:"box"`
	Image *imaging.Raster `json:"-"`
	// Split names how the glyph was separated from a wider component, if
	// it was: "valley" or "equal". Equal splits are blind cuts and may
	// divide ambiguous glyph pairs in the wrong place.
	Split string `json:"split,omitempty"`
}

// EqualSplit reports whether the letter came from a blind equal-width cut.
func (l Letter) EqualSplit() bool { return l.Split == SplitEqual }

// SegmentLetters labels the ink components of a word image and turns them
// into letter images ordered left to right.
//
// Components smaller than MinWidth x MinHeight are discarded. Components
// wider than a plausible glyph are split: first at up to MaxCuts valleys of
// their column profile, otherwise into round(width / median glyph width)
// equal parts, at least two. Each letter is cropped with Margin pixels of
// background around it.
func SegmentLetters(word *imaging.Raster, wordIndex int, opts LetterOptions) ([]Letter, error) {
	boxes, err := LabelComponents(word, opts.MaxPixels)
	if err != nil {
		return nil, err
	}

	glyphs := boxes[:0]
	for _, b := range boxes {
		if b.Dx() < opts.MinWidth || b.Dy() < opts.MinHeight {
			continue
		}
		glyphs = append(glyphs, b)
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].X0 != glyphs[j].X0 {
			return glyphs[i].X0 < glyphs[j].X0
		}
		return glyphs[i].Y0 < glyphs[j].Y0
	})

	median, samples := medianGlyphWidth(glyphs, opts.MaxWidth)
	relative := median
	if samples < minMedianSamples {
		relative = 0
	}

	var letters []Letter
	add := func(b imaging.Box, split string) {
		letters = append(letters, Letter{
			Word:  wordIndex,
			Index: len(letters),
			Box:   b,
			Image: word.Crop(b.Pad(opts.Margin)),
			Split: split,
		})
	}

	for _, b := range glyphs {
		if !isWide(b, relative, opts) {
			add(b, "")
			continue
		}

		expected := median
		if expected <= 0 {
			expected = 0.75 * float64(b.Dy())
		}

		if cuts := valleyCuts(word, b, expected, opts); len(cuts) > 0 {
			logging.Debug("letters: word %d: valley split of %s at %v", wordIndex, b, cuts)
			for _, piece := range piecesAt(word, b, cuts) {
				add(piece, SplitValley)
			}
			continue
		}

		parts := int(math.Round(float64(b.Dx()) / expected))
		if parts < 2 {
			parts = 2
		}
		logging.Debug("letters: word %d: equal split of %s into %d", wordIndex, b, parts)
		cuts := make([]int, 0, parts-1)
		for i := 1; i < parts; i++ {
			cuts = append(cuts, i*b.Dx()/parts)
		}
		for _, piece := range piecesAt(word, b, cuts) {
			add(piece, SplitEqual)
		}
	}
	return letters, nil
}

func isWide(b imaging.Box, median float64, opts LetterOptions) bool {
	if opts.MaxWidth > 0 && b.Dx() > opts.MaxWidth {
		return true
	}
	return median > 0 && float64(b.Dx()) > opts.WideFactor*median
}

// minMedianSamples is the fewest glyphs whose median width may mark a
// component as merged.
const minMedianSamples = 3

// medianGlyphWidth is the median width of components no wider than
// maxWidth, or 0 when there are none, and the number of widths it used.
func medianGlyphWidth(glyphs []imaging.Box, maxWidth int) (float64, int) {
	var widths []int
	for _, b := range glyphs {
		if maxWidth <= 0 || b.Dx() <= maxWidth {
			widths = append(widths, b.Dx())
		}
	}
	if len(widths) == 0 {
		return 0, 0
	}
	sort.Ints(widths)
	n := len(widths)
	if n%2 == 1 {
		return float64(widths[n/2]), n
	}
	return float64(widths[n/2-1]+widths[n/2]) / 2, n
}

// valleyCuts returns cut columns, relative to b.X0, at the local minima of
// b's column profile that are shallower than ValleyDepth of its height.
// A flat minimum is cut at its middle. The deepest MaxCuts valleys are kept
// as long as every resulting piece stays wide enough.
func valleyCuts(word *imaging.Raster, b imaging.Box, expected float64, opts LetterOptions) []int {
	p := ColumnProfile(word, b)
	n := len(p)
	limit := opts.ValleyDepth * float64(b.Dy())

	type valley struct{ at, depth int }
	var valleys []valley
	for i := 1; i < n-1; {
		j := i
		for j+1 < n && p[j+1] == p[i] {
			j++
		}
		if j < n-1 && float64(p[i]) < limit && p[i-1] > p[i] && p[j+1] > p[i] {
			left := Profile(p[:i]).Max()
			right := Profile(p[j+1:]).Max()
			if float64(left) >= limit && float64(right) >= limit {
				valleys = append(valleys, valley{at: (i + j) / 2, depth: p[i]})
			}
		}
		i = j + 1
	}
	if len(valleys) == 0 {
		return nil
	}

	sort.SliceStable(valleys, func(a, c int) bool { return valleys[a].depth < valleys[c].depth })

	minPiece := opts.MinPieceFraction * expected
	if minPiece < float64(opts.MinWidth) {
		minPiece = float64(opts.MinWidth)
	}

	var cuts []int
	for _, v := range valleys {
		if opts.MaxCuts > 0 && len(cuts) >= opts.MaxCuts {
			break
		}
		candidate := append(append([]int(nil), cuts...), v.at)
		sort.Ints(candidate)
		if piecesWideEnough(candidate, n, minPiece) {
			cuts = candidate
		}
	}
	return cuts
}

func piecesWideEnough(cuts []int, width int, minPiece float64) bool {
	prev := 0
	for _, c := range append(cuts, width) {
		if float64(c-prev) < minPiece {
			return false
		}
		prev = c
	}
	return true
}

// piecesAt splits b at the given relative columns and tightens each piece
// vertically to the ink it contains.
func piecesAt(word *imaging.Raster, b imaging.Box, cuts []int) []imaging.Box {
	var pieces []imaging.Box
	prev := 0
	for _, c := range append(cuts, b.Dx()) {
		piece := imaging.Box{X0: b.X0 + prev, Y0: b.Y0, X1: b.X0 + c, Y1: b.Y1}
		prev = c
		if piece.Empty() {
			continue
		}
		if ink, ok := word.InkBounds(piece); ok {
			piece.Y0, piece.Y1 = ink.Y0, ink.Y1
		}
		pieces = append(pieces, piece)
	}
	return pieces
}
