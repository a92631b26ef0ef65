package ocr

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	wsimaging "github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

const (
	// TemplateSize is the side of the square every glyph is stretched to
	// before comparison.
	TemplateSize = 32
	// DefaultMinScore is the pixel agreement below which a glyph is Unknown.
	DefaultMinScore = 0.65
	// MaxVariants bounds the numbered variants loaded per letter.
	MaxVariants = 20
)

// ErrNoTemplates is returned when classifying without any loaded template.
var ErrNoTemplates = errors.New("no OCR templates loaded")

type template struct {
	char rune
	bits []bool
}

// TemplateClassifier matches glyphs against reference bitmaps. Both sides
// are stretched to TemplateSize x TemplateSize and thresholded; the score
// is the fraction of pixels on which they agree.
type TemplateClassifier struct {
	MinScore float64

	mu        sync.RWMutex
	templates []template
}

// NewTemplateClassifier returns a classifier with no templates.
func NewTemplateClassifier() *TemplateClassifier {
	return &TemplateClassifier{MinScore: DefaultMinScore}
}

// LoadTemplates reads <dir>/X.bmp and <dir>/X_1.bmp .. X_19.bmp for every
// letter X of the alphabet. Missing files are skipped. It returns the
// number of templates loaded and fails if there were none.
func (c *TemplateClassifier) LoadTemplates(dir string) (int, error) {
	if dir == "" {
		return 0, fmt.Errorf("%w: no template directory configured", ErrNoTemplates)
	}

	loaded := 0
	for _, ch := range Alphabet {
		for v := 0; v < MaxVariants; v++ {
			name := fmt.Sprintf("%c.bmp", ch)
			if v > 0 {
				name = fmt.Sprintf("%c_%d.bmp", ch, v)
			}
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			img, err := wsimaging.Decode(path)
			if err != nil {
				return loaded, fmt.Errorf("template %s: %w", name, err)
			}
			c.AddTemplate(ch, img)
			loaded++
		}
	}

	logging.Info("ocr: loaded %d templates from %s", loaded, dir)
	if loaded == 0 {
		return 0, fmt.Errorf("%w: none found in %s", ErrNoTemplates, dir)
	}
	return loaded, nil
}

// AddTemplate registers img as a reference rendering of ch.
func (c *TemplateClassifier) AddTemplate(ch rune, img image.Image) {
	t := template{char: ch, bits: normalize(img)}
	c.mu.Lock()
	c.templates = append(c.templates, t)
	c.mu.Unlock()
}

// Len returns the number of registered templates.
func (c *TemplateClassifier) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// Classify returns the character of the best scoring template. The first
// template wins ties. Scores below MinScore yield Unknown with the score
// as confidence.
func (c *TemplateClassifier) Classify(img image.Image) (Classification, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.templates) == 0 {
		return Classification{Char: Unknown}, ErrNoTemplates
	}
	if img == nil || img.Bounds().Empty() {
		return Classification{Char: Unknown}, nil
	}

	bits := normalize(img)
	best := Classification{Char: Unknown}
	for _, t := range c.templates {
		if s := agreement(bits, t.bits); s > best.Confidence {
			best = Classification{Char: t.char, Confidence: s}
		}
	}
	if best.Confidence < c.MinScore {
		best.Char = Unknown
	}
	return best, nil
}

// normalize stretches img to the template size and marks its ink pixels.
func normalize(img image.Image) []bool {
	scaled := imaging.Resize(img, TemplateSize, TemplateSize, imaging.NearestNeighbor)
	bits := make([]bool, TemplateSize*TemplateSize)
	for y := 0; y < TemplateSize; y++ {
		for x := 0; x < TemplateSize; x++ {
			bits[y*TemplateSize+x] = wsimaging.Luma(scaled.At(x, y)) < 128
		}
	}
	return bits
}

func agreement(a, b []bool) float64 {
	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
	}
	return float64(same) / float64(len(a))
}
