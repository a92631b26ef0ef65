// Package artifacts writes the intermediate images and text of a run to
// an output directory:
//
//	binary.bmp
//	cells/c_RR_CC.bmp
//	words/w_NN.bmp
//	word_letters/word_NN_letter_MM.bmp
//	grid.txt
//	words.txt
//	manifest.json
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/wordsearch-mcp/internal/detection"
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
	"github.com/ironsheep/wordsearch-mcp/internal/puzzle"
)

// File names inside the output directory.
const (
	BinaryFile   = "binary.bmp"
	CellsDir     = "cells"
	WordsDir     = "words"
	LettersDir   = "word_letters"
	GridFile     = "grid.txt"
	WordListFile = "words.txt"
	ManifestFile = "manifest.json"
)

// CellName returns the artifact path of cell (row, col), relative to the
// output directory.
func CellName(row, col int) string {
	return filepath.Join(CellsDir, fmt.Sprintf("c_%02d_%02d.bmp", row, col))
}

// WordName returns the relative artifact path of word i.
func WordName(i int) string {
	return filepath.Join(WordsDir, fmt.Sprintf("w_%02d.bmp", i))
}

// LetterName returns the relative artifact path of letter j of word i.
func LetterName(i, j int) string {
	return filepath.Join(LettersDir, fmt.Sprintf("word_%02d_letter_%02d.bmp", i, j))
}

// Manifest summarises one run.
type Manifest struct {
	RunID        string    `json:"run_id"`
	Source       string    `json:"source,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Threshold    int       `json:"threshold"`
	SkewAngle    float64   `json:"skew_angle"`
	Rows         int       `json:"rows"`
	Cols         int       `json:"cols"`
	GridStrategy string    `json:"grid_strategy"`
	WordMargin   string    `json:"word_margin"`
	Words        int       `json:"words"`
	Letters      int       `json:"letters"`
	Unknown      int       `json:"unknown_cells,omitempty"`
	Files        []string  `json:"files"`
}

// Writer writes artifacts below Dir.
type Writer struct {
	Dir string
}

// NewWriter returns a writer for dir. The directory is created on first
// write.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// WriteExtraction writes the binary image and every cell, word and letter
// image of res, then the manifest.
func (w *Writer) WriteExtraction(res *detection.Result, source string) (*Manifest, error) {
	m := &Manifest{
		RunID:        uuid.New().String(),
		Source:       source,
		CreatedAt:    time.Now().UTC(),
		Threshold:    res.Threshold,
		SkewAngle:    res.Skew.Angle,
		Rows:         res.Grid.NumRows(),
		Cols:         res.Grid.NumCols(),
		GridStrategy: res.Grid.Strategy,
		WordMargin:   res.WordRegion.Margin.String(),
		Words:        len(res.Words),
		Letters:      res.LetterCount(),
	}

	if err := w.saveRaster(m, BinaryFile, res.Binary); err != nil {
		return nil, err
	}
	for _, c := range res.Cells {
		if err := w.saveRaster(m, CellName(c.Row, c.Col), c.Image); err != nil {
			return nil, err
		}
	}
	for i, word := range res.Words {
		if err := w.saveRaster(m, WordName(word.Index), word.Image); err != nil {
			return nil, err
		}
		for _, l := range res.Letters[i] {
			if err := w.saveRaster(m, LetterName(word.Index, l.Index), l.Image); err != nil {
				return nil, err
			}
		}
	}

	if err := w.WriteManifest(m); err != nil {
		return nil, err
	}
	logging.Info("artifacts: run %s wrote %d files to %s", m.RunID, len(m.Files), w.Dir)
	return m, nil
}

// WriteRecognition writes grid.txt and words.txt and records them in m.
func (w *Writer) WriteRecognition(m *Manifest, rec *puzzle.Recognition) error {
	if err := w.saveText(m, GridFile, rec.Grid.Text()); err != nil {
		return err
	}
	if err := w.saveText(m, WordListFile, rec.WordsText()); err != nil {
		return err
	}
	m.Unknown = rec.Grid.Unknown()
	return w.WriteManifest(m)
}

// WriteManifest (re)writes manifest.json.
func (w *Writer) WriteManifest(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.Dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads manifest.json from dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

func (w *Writer) saveRaster(m *Manifest, name string, r *imaging.Raster) error {
	if err := imaging.SaveBMP(filepath.Join(w.Dir, name), r.Image()); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	m.Files = append(m.Files, filepath.ToSlash(name))
	return nil
}

func (w *Writer) saveText(m *Manifest, name, text string) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.Dir, name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	m.Files = append(m.Files, name)
	return nil
}
