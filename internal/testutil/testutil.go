// Package testutil draws synthetic puzzle pages for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

// Page geometry of PuzzlePage.
const (
	PageWidth  = 380
	PageHeight = 260
	GridSize   = 5
	WordCount  = 5
	WordLength = 4
)

func white(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func fill(img *image.Gray, x0, y0, x1, y1 int) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

// PuzzlePage returns a 380x260 page with a ruled 5x5 grid of 40px cells at
// (20,20), one 10x14 block glyph centred in each cell and five words of four
// 8x12 block glyphs to the right of the grid.
func PuzzlePage() *image.Gray {
	img := white(PageWidth, PageHeight)
	for i := 0; i <= GridSize; i++ {
		fill(img, 20, 20+i*40, 222, 22+i*40)
		fill(img, 20+i*40, 20, 22+i*40, 222)
	}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			x, y := 35+col*40, 33+row*40
			fill(img, x, y, x+10, y+14)
		}
	}
	for line := 0; line < WordCount; line++ {
		y := 30 + line*30
		for g := 0; g < WordLength; g++ {
			x := 260 + g*11
			fill(img, x, y, x+8, y+12)
		}
	}
	return img
}

// WritePNG encodes img to path.
func WritePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

// PuzzleFile writes PuzzlePage to a temporary PNG and returns its path.
func PuzzleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzle.png")
	WritePNG(t, path, PuzzlePage())
	return path
}

// BlankFile writes a white PNG with no structure.
func BlankFile(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blank.png")
	WritePNG(t, path, white(width, height))
	return path
}

// BlockTemplateDir returns a template directory holding a single template,
// A.bmp: a solid block with a one pixel white border, the shape of a
// trimmed PuzzlePage cell.
func BlockTemplateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	img := white(12, 16)
	fill(img, 1, 1, 11, 15)
	if err := imaging.SaveBMP(filepath.Join(dir, "A.bmp"), img); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return dir
}
