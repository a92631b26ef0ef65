package detection

import (
	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

// Profile is a projection profile: one ink count per row or per column.
type Profile []int

// Band is an inclusive index range [Start, End] of a profile.
type Band struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Mid returns the band's representative coordinate.
func (b Band) Mid() int { return (b.Start + b.End) / 2 }

// Len returns the number of positions covered.
func (b Band) Len() int { return b.End - b.Start + 1 }

// Span is a half-open interval [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns End-Start.
func (s Span) Len() int { return s.End - s.Start }

// RowProfile counts ink per row of r inside box. Index 0 is box.Y0.
func RowProfile(r *imaging.Raster, box imaging.Box) Profile {
	box = box.Intersect(r.Bounds())
	p := make(Profile, box.Dy())
	for y := box.Y0; y < box.Y1; y++ {
		n := 0
		for x := box.X0; x < box.X1; x++ {
			if r.Ink(x, y) {
				n++
			}
		}
		p[y-box.Y0] = n
	}
	return p
}

// ColumnProfile counts ink per column of r inside box. Index 0 is box.X0.
func ColumnProfile(r *imaging.Raster, box imaging.Box) Profile {
	box = box.Intersect(r.Bounds())
	p := make(Profile, box.Dx())
	for y := box.Y0; y < box.Y1; y++ {
		for x := box.X0; x < box.X1; x++ {
			if r.Ink(x, y) {
				p[x-box.X0]++
			}
		}
	}
	return p
}

// Smooth returns the 3-point moving average. End positions average their
// two available neighbours.
func (p Profile) Smooth() Profile {
	out := make(Profile, len(p))
	for i := range p {
		sum, n := p[i], 1
		if i > 0 {
			sum += p[i-1]
			n++
		}
		if i < len(p)-1 {
			sum += p[i+1]
			n++
		}
		out[i] = sum / n
	}
	return out
}

// Max returns the largest value, or 0 for an empty profile.
func (p Profile) Max() int {
	m := 0
	for _, v := range p {
		if v > m {
			m = v
		}
	}
	return m
}

// Bands returns the maximal runs whose values are >= threshold.
func (p Profile) Bands(threshold int) []Band {
	var bands []Band
	start := -1
	for i, v := range p {
		if v >= threshold {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			bands = append(bands, Band{Start: start, End: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		bands = append(bands, Band{Start: start, End: len(p) - 1})
	}
	return bands
}

// Runs returns the spans inside [from, to) whose values exceed threshold.
// A run stays open across up to gap consecutive positions at or below the
// threshold; a longer gap closes it at the last position above it.
func (p Profile) Runs(from, to, threshold, gap int) []Span {
	if from < 0 {
		from = 0
	}
	if to > len(p) {
		to = len(p)
	}

	var runs []Span
	start, last := -1, -1
	for i := from; i < to; i++ {
		if p[i] > threshold {
			if start < 0 {
				start = i
			}
			last = i
			continue
		}
		if start >= 0 && i-last > gap {
			runs = append(runs, Span{Start: start, End: last + 1})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Span{Start: start, End: last + 1})
	}
	return runs
}

// Midpoints collapses each band to its midpoint.
func Midpoints(bands []Band) []int {
	out := make([]int, len(bands))
	for i, b := range bands {
		out[i] = b.Mid()
	}
	return out
}
