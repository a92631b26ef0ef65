package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/wordsearch-mcp/internal/detection"
	"github.com/ironsheep/wordsearch-mcp/internal/ocr"
	"github.com/ironsheep/wordsearch-mcp/internal/puzzle"
	"github.com/ironsheep/wordsearch-mcp/internal/solver"
)

func extract(path string) (*detection.Result, error) {
	ex := detection.NewExtractor(cfg.Extraction)
	ex.Cache.MaxPixels = cfg.Limits.MaxPixels

	res, err := ex.ExtractFile(path)
	if err != nil {
		var se *detection.StageError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("extraction failed at %s (%s): %s", se.Stage, se.Kind, se.Message)
		}
		return nil, err
	}
	return res, nil
}

func recognize(res *detection.Result) (*puzzle.Recognition, error) {
	c, err := ocr.NewClassifier(cfg.OCROptions())
	if err != nil {
		return nil, err
	}
	if closer, ok := c.(io.Closer); ok {
		defer closer.Close()
	}
	return puzzle.Recognize(res, c, cfg.Recognition)
}

// readWords loads a word list file, one word per line.
func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()
	return solver.ParseWords(f)
}

func printExtraction(w io.Writer, res *detection.Result) {
	fmt.Fprintf(w, "grid: %dx%d (%s), skew %.1f deg, threshold %d\n",
		res.Grid.NumRows(), res.Grid.NumCols(), res.Grid.Strategy, res.Skew.Angle, res.Threshold)
	fmt.Fprintf(w, "word list: %s margin, %d lines, %d words, %d letters\n",
		res.WordRegion.Margin, len(res.Lines.Lines), len(res.Words), res.LetterCount())
}

func printRecognition(w io.Writer, rec *puzzle.Recognition) {
	fmt.Fprintln(w)
	fmt.Fprint(w, rec.Grid.Text())
	if n := rec.Grid.Unknown(); n > 0 {
		fmt.Fprintf(w, "(%d unreadable cells)\n", n)
	}
	fmt.Fprintln(w)
	for _, wm := range rec.Words {
		if wm.EqualSplits > 0 {
			fmt.Fprintf(w, "%s (%d letters split blind)\n", wm.Text, wm.EqualSplits)
			continue
		}
		fmt.Fprintln(w, wm.Text)
	}
}

func printReport(w io.Writer, rep *puzzle.Report) {
	for _, line := range rep.Lines() {
		fmt.Fprintln(w, line)
	}
}
