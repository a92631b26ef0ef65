package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
)

func TestRowAndColumnProfile(t *testing.T) {
	r := imaging.NewRaster(6, 4)
	r.Fill(imaging.Box{X0: 1, Y0: 1, X1: 4, Y1: 3}, true)
	r.Set(5, 0, true)

	assert.Equal(t, Profile{1, 3, 3, 0}, RowProfile(r, r.Bounds()))
	assert.Equal(t, Profile{0, 2, 2, 2, 0, 1}, ColumnProfile(r, r.Bounds()))

	sub := imaging.Box{X0: 2, Y0: 1, X1: 6, Y1: 3}
	assert.Equal(t, Profile{2, 2}, RowProfile(r, sub))
	assert.Equal(t, Profile{2, 2, 0, 0}, ColumnProfile(r, sub))
}

func TestProfile_Bands(t *testing.T) {
	p := Profile{0, 5, 6, 0, 0, 9, 1, 7, 7}

	assert.Equal(t, []Band{{1, 2}, {5, 5}, {7, 8}}, p.Bands(5))
	assert.Nil(t, p.Bands(10))
	assert.Equal(t, []int{1, 5, 7}, Midpoints(p.Bands(5)))
}

func TestProfile_Smooth(t *testing.T) {
	p := Profile{0, 9, 0, 3, 3, 3}

	assert.Equal(t, Profile{4, 3, 4, 2, 3, 3}, p.Smooth())
	assert.Equal(t, Profile{}, Profile{}.Smooth())
}

func TestProfile_Runs(t *testing.T) {
	p := Profile{0, 2, 0, 2, 0, 0, 0, 4, 4, 0}

	tests := []struct {
		name      string
		threshold int
		gap       int
		want      []Span
	}{
		{"no gap tolerance", 0, 0, []Span{{1, 2}, {3, 4}, {7, 9}}},
		{"bridges single gap", 0, 1, []Span{{1, 4}, {7, 9}}},
		{"bridges everything", 0, 3, []Span{{1, 9}}},
		{"raised threshold", 2, 5, []Span{{7, 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Runs(0, len(p), tt.threshold, tt.gap))
		})
	}

	assert.Equal(t, []Span{{3, 4}}, p.Runs(2, 6, 0, 0))
}

func TestBandAndSpan(t *testing.T) {
	assert.Equal(t, 4, Band{Start: 3, End: 6}.Mid())
	assert.Equal(t, 4, Band{Start: 3, End: 6}.Len())
	assert.Equal(t, 3, Span{Start: 3, End: 6}.Len())
	assert.Equal(t, 9, Profile{1, 9, 2}.Max())
	assert.Zero(t, Profile{}.Max())
}
