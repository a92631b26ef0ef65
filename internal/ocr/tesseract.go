package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// tesseractPadding is the white border added around a glyph; Tesseract
// segments poorly when ink touches the image edge.
const tesseractPadding = 8

// TesseractClassifier recognises glyphs with the Tesseract engine in
// single-character mode, restricted to the puzzle alphabet.
//
// Tesseract must be installed together with the language data:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The underlying client is not safe for concurrent use, so calls are
// serialised.
type TesseractClassifier struct {
	Language string

	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractClassifier creates a classifier for the given Tesseract
// language code; empty means "eng". The engine is started on first use.
func NewTesseractClassifier(language string) *TesseractClassifier {
	if language == "" {
		language = "eng"
	}
	return &TesseractClassifier{Language: language}
}

func (c *TesseractClassifier) init() error {
	if c.client != nil {
		return nil
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(c.Language); err != nil {
		client.Close()
		return fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetWhitelist(Alphabet); err != nil {
		client.Close()
		return fmt.Errorf("failed to set whitelist: %w", err)
	}
	c.client = client
	return nil
}

// Classify runs Tesseract on img. An empty or non-letter answer is Unknown.
func (c *TesseractClassifier) Classify(img image.Image) (Classification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.init(); err != nil {
		return Classification{Char: Unknown}, err
	}

	var buf bytes.Buffer
	b := img.Bounds()
	padded := imaging.New(b.Dx()+2*tesseractPadding, b.Dy()+2*tesseractPadding, color.White)
	padded = imaging.Paste(padded, img, image.Pt(tesseractPadding, tesseractPadding))
	if err := png.Encode(&buf, padded); err != nil {
		return Classification{Char: Unknown}, fmt.Errorf("failed to encode glyph: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Classification{Char: Unknown}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return Classification{Char: Unknown}, fmt.Errorf("OCR failed: %w", err)
	}
	ch := firstLetter(text)
	if ch == Unknown {
		return Classification{Char: Unknown}, nil
	}

	confidence := 0.0
	if boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_SYMBOL); err == nil && len(boxes) > 0 {
		confidence = boxes[0].Confidence / 100.0
	}
	return Classification{Char: ch, Confidence: confidence}, nil
}

// Close releases the Tesseract engine.
func (c *TesseractClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// firstLetter returns the first alphabet letter of text, upper-cased.
func firstLetter(text string) rune {
	for _, r := range strings.TrimSpace(text) {
		r = unicode.ToUpper(r)
		if strings.ContainsRune(Alphabet, r) {
			return r
		}
	}
	return Unknown
}
