// Package puzzle turns an extraction result into text and solves it.
//
// Recognize classifies every grid cell and word-list letter, producing a
// GridModel and the word list. Solve searches each word in the grid and
// Strokes maps the matches back to pixel positions for an overlay.
package puzzle

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/wordsearch-mcp/internal/detection"
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
	"github.com/ironsheep/wordsearch-mcp/internal/ocr"
	"github.com/ironsheep/wordsearch-mcp/internal/solver"
)

// Options tunes recognition.
type Options struct {
	// TrimCells crops each cell and word-list letter to its ink before
	// classification.
	TrimCells  bool `toml:"trim_cells" json:"trim_cells"`
	TrimMargin int  `toml:"trim_margin" json:"trim_margin"`
}

// DefaultOptions returns the stock settings.
func DefaultOptions() Options {
	return Options{TrimCells: true, TrimMargin: 1}
}

// GridModel is the recognised letter grid, row-major.
type GridModel struct {
	Cells [][]ocr.Classification `json:"cells"`
	Rows  int                    `json:"rows"`
	Cols  int                    `json:"cols"`
}

// Text renders the grid with Cols characters per line.
func (g *GridModel) Text() string {
	var b strings.Builder
	for _, row := range g.Cells {
		for _, c := range row {
			b.WriteRune(c.Char)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Unknown counts cells that could not be recognised.
func (g *GridModel) Unknown() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if !c.Known() {
				n++
			}
		}
	}
	return n
}

// Solver returns the grid in searchable form.
func (g *GridModel) Solver() (*solver.Grid, error) {
	return solver.ParseGrid(strings.NewReader(g.Text()))
}

// WordModel is one recognised entry of the word list.
type WordModel struct {
	Index   int                  `json:"index"`
	Text    string               `json:"text"`
	Letters []ocr.Classification `json:"letters"`
	// EqualSplits counts letters that came from blind equal-width cuts.
	EqualSplits int `json:"equal_splits,omitempty"`
}

// Recognition is the text read from one extraction.
type Recognition struct {
	Grid  *GridModel  `json:"grid"`
	Words []WordModel `json:"words"`
}

// WordList returns the recognised words in list order.
func (r *Recognition) WordList() []string {
	out := make([]string, len(r.Words))
	for i, w := range r.Words {
		out[i] = w.Text
	}
	return out
}

// WordsText renders the word list one word per line.
func (r *Recognition) WordsText() string {
	var b strings.Builder
	for _, w := range r.Words {
		b.WriteString(w.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Recognize classifies the cells and letters of res with c.
func Recognize(res *detection.Result, c ocr.Classifier, opts Options) (*Recognition, error) {
	if res == nil || res.Grid == nil {
		return nil, fmt.Errorf("nothing to recognise: extraction has no grid")
	}

	g := &GridModel{Rows: res.Grid.NumRows(), Cols: res.Grid.NumCols()}
	g.Cells = make([][]ocr.Classification, g.Rows)
	for i := range g.Cells {
		g.Cells[i] = make([]ocr.Classification, g.Cols)
	}
	for _, cell := range res.Cells {
		cls, err := classify(c, opts.trim(cell.Image))
		if err != nil {
			return nil, fmt.Errorf("failed to classify cell (%d,%d): %w", cell.Row, cell.Col, err)
		}
		g.Cells[cell.Row][cell.Col] = cls
	}

	rec := &Recognition{Grid: g}
	for i, letters := range res.Letters {
		w := WordModel{Index: res.Words[i].Index}
		var text strings.Builder
		for _, l := range letters {
			cls, err := classify(c, opts.trim(l.Image))
			if err != nil {
				return nil, fmt.Errorf("failed to classify letter %d of word %d: %w", l.Index, w.Index, err)
			}
			if l.EqualSplit() {
				w.EqualSplits++
			}
			w.Letters = append(w.Letters, cls)
			text.WriteRune(cls.Char)
		}
		w.Text = text.String()
		rec.Words = append(rec.Words, w)
	}

	logging.Debug("recognize: %dx%d grid with %d unknown cells, %d words",
		g.Rows, g.Cols, g.Unknown(), len(rec.Words))
	return rec, nil
}

func (o Options) trim(r *imaging.Raster) *imaging.Raster {
	if !o.TrimCells {
		return r
	}
	return detection.TrimToInk(r, o.TrimMargin)
}

// classify skips blank glyphs: a stretched empty crop would agree with
// thin templates.
func classify(c ocr.Classifier, r *imaging.Raster) (ocr.Classification, error) {
	if r.CountInk(r.Bounds()) == 0 {
		return ocr.Classification{Char: ocr.Unknown}, nil
	}
	return c.Classify(r.Image())
}

// Report is the solver outcome for a word list.
type Report struct {
	Matches []solver.Match `json:"matches"`
	Found   int            `json:"found"`
	Missing int            `json:"missing"`
}

// Lines renders one "WORD: (x0,y0)(x1,y1)" or "WORD: Not Found" per match.
func (r *Report) Lines() []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = fmt.Sprintf("%s: %s", m.Word, m)
	}
	return out
}

// Solve searches every word of words in grid.
func Solve(grid *solver.Grid, words []string) *Report {
	rep := &Report{Matches: grid.FindAll(words)}
	for _, m := range rep.Matches {
		if m.Found {
			rep.Found++
		} else {
			rep.Missing++
		}
	}
	return rep
}

// Strokes maps found matches to lines between the pixel centers of their
// first and last cells.
func Strokes(g *detection.GridGeometry, matches []solver.Match) []imaging.Stroke {
	var strokes []imaging.Stroke
	for _, m := range matches {
		if !m.Found {
			continue
		}
		x0, y0 := g.CellCenter(m.Start.Y, m.Start.X)
		x1, y1 := g.CellCenter(m.End.Y, m.End.X)
		strokes = append(strokes, imaging.Stroke{From: image.Pt(x0, y0), To: image.Pt(x1, y1)})
	}
	return strokes
}
