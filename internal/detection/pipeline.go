package detection

import (
	"errors"
	"image"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// Options groups the settings of every stage.
type Options struct {
	Binarize   imaging.BinarizeOptions `toml:"binarize" json:"binarize"`
	Deskew     DeskewOptions           `toml:"deskew" json:"deskew"`
	Grid       GridOptions             `toml:"grid" json:"grid"`
	Cells      CellOptions             `toml:"cells" json:"cells"`
	WordRegion WordRegionOptions       `toml:"word_region" json:"word_region"`
	Lines      LineOptions             `toml:"lines" json:"lines"`
	Words      WordOptions             `toml:"words" json:"words"`
	Letters    LetterOptions           `toml:"letters" json:"letters"`
}

// DefaultOptions returns the stock settings of every stage.
func DefaultOptions() Options {
	return Options{
		Binarize:   imaging.DefaultBinarizeOptions(),
		Deskew:     DefaultDeskewOptions(),
		Grid:       DefaultGridOptions(),
		Cells:      DefaultCellOptions(),
		WordRegion: DefaultWordRegionOptions(),
		Lines:      DefaultLineOptions(),
		Words:      DefaultWordOptions(),
		Letters:    DefaultLetterOptions(),
	}
}

// Result is everything the extraction produced for one image.
type Result struct {
	Threshold  int           `json:"threshold"`
	Skew       SkewEstimate  `json:"skew"`
	Grid       *GridGeometry `json:"grid"`
	Cells      []Cell        `json:"cells"`
	WordRegion *WordRegion   `json:"word_region"`
	Lines      *LinesResult  `json:"lines"`
	Words      []Word        `json:"words"`
	Letters    [][]Letter    `json:"letters"`

	// Binary is the deskewed ink raster all geometry refers to.
	Binary *imaging.Raster `json:"-"`
}

// LetterCount returns the total number of letter images.
func (r *Result) LetterCount() int {
	n := 0
	for _, ls := range r.Letters {
		n += len(ls)
	}
	return n
}

// Extractor runs the stages in order on one image at a time. It holds no
// per-image state and may be shared.
type Extractor struct {
	Options Options
	Cache   *imaging.ImageCache
}

// NewExtractor creates an extractor with its own image cache.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{Options: opts, Cache: imaging.NewImageCache()}
}

// Load reads path through the cache. Failures are *StageError values of
// kind LoadError, or MemoryError when the image exceeds the cache limit.
func (e *Extractor) Load(path string) (image.Image, error) {
	img, err := e.Cache.Load(path)
	if err != nil {
		if errors.Is(err, imaging.ErrImageTooLarge) {
			return nil, &StageError{Stage: StageLoad, Kind: KindMemory, Message: "source image too large", Cause: err}
		}
		return nil, NewLoadError(path, err)
	}
	return img, nil
}

// ExtractFile loads path through the cache and extracts it.
func (e *Extractor) ExtractFile(path string) (*Result, error) {
	img, err := e.Load(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(img)
}

// Extract runs binarize, deskew, grid location, cell slicing, word-region
// location and line, word and letter segmentation. The first failing stage
// aborts the run; its *StageError says which stage failed and why.
func (e *Extractor) Extract(img image.Image) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, NewLoadError("image", errors.New("image has no pixels"))
	}
	opts := e.Options
	res := &Result{}

	logging.Section("binarize")
	bin := imaging.Binarize(img, opts.Binarize)
	res.Threshold = bin.Threshold
	logging.Debug("binarize: %dx%d threshold=%d noise=%.1f median passes=%d",
		bin.Width, bin.Height, bin.Threshold, bin.Noise, bin.MedianPasses)

	logging.Section("deskew")
	desk := Deskew(bin.Raster, opts.Deskew)
	res.Skew = desk.SkewEstimate
	res.Binary = desk.Raster

	logging.Section("grid")
	grid, err := LocateGrid(res.Binary, opts.Grid)
	if err != nil {
		return nil, err
	}
	res.Grid = grid

	cells, err := SliceCells(res.Binary, grid, opts.Cells)
	if err != nil {
		return nil, err
	}
	res.Cells = cells
	logging.Debug("cells: %d", len(cells))

	logging.Section("word list")
	region, err := LocateWordRegion(res.Binary, grid.Box, opts.WordRegion)
	if err != nil {
		return nil, err
	}
	res.WordRegion = region
	logging.Debug("word region: %s margin %s with %d ink pixels", region.Margin, region.Box, region.Ink)

	lines, err := SegmentLines(region.Image, opts.Lines)
	if err != nil {
		return nil, err
	}
	res.Lines = lines

	for _, line := range lines.Lines {
		res.Words = append(res.Words, SegmentWords(region.Image, line, len(res.Words), opts.Words)...)
	}
	if len(res.Words) == 0 {
		return nil, NewInsufficientStructure(StageWords, "no words found in %d lines", len(lines.Lines))
	}
	logging.Debug("words: %d", len(res.Words))

	res.Letters = make([][]Letter, len(res.Words))
	for i, w := range res.Words {
		letters, err := SegmentLetters(w.Image, w.Index, opts.Letters)
		if err != nil {
			return nil, err
		}
		if len(letters) == 0 {
			return nil, NewInsufficientStructure(StageLetters, "word %d has no glyphs", w.Index)
		}
		res.Letters[i] = letters
	}
	logging.Debug("letters: %d", res.LetterCount())

	return res, nil
}
