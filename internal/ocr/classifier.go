package ocr

import (
	"fmt"
	"image"
)

// Unknown is returned for a glyph no engine could match with enough
// confidence.
const Unknown = '?'

// Alphabet is the set of characters puzzles are printed in.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Engine names accepted by NewClassifier.
const (
	EngineTemplate  = "template"
	EngineTesseract = "tesseract"
)

// Classification is the character recognised in one glyph image.
type Classification struct {
	Char       rune    `json:"char"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// Known reports whether a character was recognised.
func (c Classification) Known() bool { return c.Char != Unknown && c.Char != 0 }

func (c Classification) String() string {
	return fmt.Sprintf("%c (%.2f)", c.Char, c.Confidence)
}

// Classifier turns a single glyph image into a character.
type Classifier interface {
	Classify(img image.Image) (Classification, error)
}

// Options selects and configures a classifier.
type Options struct {
	Engine      string
	TemplateDir string
	Language    string
}

// NewClassifier builds the classifier named by opts.Engine. The template
// engine loads its templates from opts.TemplateDir immediately.
func NewClassifier(opts Options) (Classifier, error) {
	switch opts.Engine {
	case "", EngineTemplate:
		c := NewTemplateClassifier()
		if _, err := c.LoadTemplates(opts.TemplateDir); err != nil {
			return nil, err
		}
		return c, nil
	case EngineTesseract:
		return NewTesseractClassifier(opts.Language), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q (want %s or %s)", opts.Engine, EngineTemplate, EngineTesseract)
	}
}
