package detection

import (
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

// LabelComponents finds the 8-connected ink components of r and returns
// their bounding boxes in raster scan order of their first pixel.
//
// The flood fill uses an explicit stack instead of recursion. Pixels are
// marked when pushed, so the stack never holds more than width*height
// entries. maxPixels, when positive, caps the raster area the labeler
// agrees to allocate for.
func LabelComponents(r *imaging.Raster, maxPixels int) ([]imaging.Box, error) {
	w, h := r.Width(), r.Height()
	if maxPixels > 0 && w*h > maxPixels {
		return nil, NewMemoryError(StageLetters, w*h, maxPixels)
	}

	visited := make([]bool, w*h)
	var stack []int
	var boxes []imaging.Box

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !r.Ink(x, y) {
				continue
			}

			box := imaging.Box{X0: x, Y0: y, X1: x + 1, Y1: y + 1}
			visited[y*w+x] = true
			stack = append(stack[:0], y*w+x)

			for len(stack) > 0 {
				idx := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				px, py := idx%w, idx/w

				box.X0 = min(box.X0, px)
				box.Y0 = min(box.Y0, py)
				box.X1 = max(box.X1, px+1)
				box.Y1 = max(box.Y1, py+1)

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := px+dx, py+dy
						if (dx == 0 && dy == 0) || !r.Ink(nx, ny) {
							continue
						}
						n := ny*w + nx
						if visited[n] {
							continue
						}
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}
			boxes = append(boxes, box)
		}
	}
	return boxes, nil
}
