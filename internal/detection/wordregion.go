package detection

import (
	"fmt"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// Margin names one of the four strips around the grid.
type Margin int

const (
	MarginLeft Margin = iota
	MarginRight
	MarginTop
	MarginBottom
)

var marginNames = [...]string{"left", "right", "top", "bottom"}

func (m Margin) String() string {
	if m >= 0 && int(m) < len(marginNames) {
		return marginNames[m]
	}
	return fmt.Sprintf("Margin(%d)", int(m))
}

// MarshalText lets margins appear by name in JSON.
func (m Margin) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// WordRegionOptions tunes word-list localisation.
type WordRegionOptions struct {
	// Padding keeps each candidate margin this many pixels away from the grid.
	Padding int `toml:"padding" json:"padding"`
}

// DefaultWordRegionOptions returns the stock settings.
func DefaultWordRegionOptions() WordRegionOptions {
	return WordRegionOptions{Padding: 10}
}

// WordRegion is the margin chosen as the word list.
type WordRegion struct {
	Margin Margin          `json:"margin"`
	Box    imaging.Box     `json:"box"`
	Ink    int             `json:"ink"`
	Counts [4]int          `json:"counts"`
	Image  *imaging.Raster `json:"-"`
}

// MarginBoxes returns the left, right, top and bottom strips of a width x
// height raster outside grid, each kept padding pixels clear of it. Side
// strips span the full height and top/bottom strips the full width. A strip
// with no room is empty.
func MarginBoxes(width, height int, grid imaging.Box, padding int) [4]imaging.Box {
	return [4]imaging.Box{
		MarginLeft:   {X0: 0, Y0: 0, X1: grid.X0 - padding, Y1: height},
		MarginRight:  {X0: grid.X1 + padding, Y0: 0, X1: width, Y1: height},
		MarginTop:    {X0: 0, Y0: 0, X1: width, Y1: grid.Y0 - padding},
		MarginBottom: {X0: 0, Y0: grid.Y1 + padding, X1: width, Y1: height},
	}
}

// SelectMargin picks the margin with the most ink. Margins whose usable flag
// is false never win. Ties go to the earlier margin in left, right, top,
// bottom order. The result is false when no usable margin has ink.
func SelectMargin(counts [4]int, usable [4]bool) (Margin, bool) {
	best, bestCount := MarginLeft, 0
	found := false
	for m := MarginLeft; m <= MarginBottom; m++ {
		if !usable[m] {
			continue
		}
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
			found = true
		}
	}
	return best, found
}

// LocateWordRegion sums ink in the four margins around the grid box and
// returns the densest as the word list, cropped out of r.
func LocateWordRegion(r *imaging.Raster, grid imaging.Box, opts WordRegionOptions) (*WordRegion, error) {
	boxes := MarginBoxes(r.Width(), r.Height(), grid, opts.Padding)

	var counts [4]int
	var usable [4]bool
	for m, b := range boxes {
		b = b.Intersect(r.Bounds())
		boxes[m] = b
		if b.Empty() {
			continue
		}
		usable[m] = true
		counts[m] = r.CountInk(b)
	}

	logging.Debug("word region: ink left=%d right=%d top=%d bottom=%d",
		counts[MarginLeft], counts[MarginRight], counts[MarginTop], counts[MarginBottom])

	m, ok := SelectMargin(counts, usable)
	if !ok {
		if usable == [4]bool{} {
			return nil, NewDimensionError(StageWordRegion, "grid %s leaves no margin inside %dx%d raster",
				grid, r.Width(), r.Height())
		}
		return nil, NewInsufficientStructure(StageWordRegion, "no margin around grid %s holds any ink", grid)
	}

	return &WordRegion{
		Margin: m,
		Box:    boxes[m],
		Ink:    counts[m],
		Counts: counts,
		Image:  r.Crop(boxes[m]),
	}, nil
}
