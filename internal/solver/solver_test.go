package solver

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := ParseGrid(strings.NewReader(text))
	require.NoError(t, err)
	return g
}

func TestFind(t *testing.T) {
	g := mustGrid(t, "CAT\nDOG\nTIG\n")

	tests := []struct {
		word string
		want string
	}{
		{"CAT", "(0,0)(2,0)"},
		{"cat", "(0,0)(2,0)"},
		{"TAC", "(2,0)(0,0)"},
		{"DOG", "(0,1)(2,1)"},
		{"CDT", "(0,0)(0,2)"},
		{"COG", "(0,0)(2,2)"},
		{"TOT", "(2,0)(0,2)"},
		{"GOC", "(2,2)(0,0)"},
		{"AOI", "(1,0)(1,2)"},
		{"ZZZ", "Not Found"},
		{"CATS", "Not Found"},
		{"", "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Find(tt.word).String())
		})
	}
}

func TestFind_DirectionOrder(t *testing.T) {
	// "AA" reads both right and down from (0,0); right is tried first.
	g := mustGrid(t, "AA\nAA")
	m := g.Find("AA")
	require.True(t, m.Found)
	assert.Equal(t, Point{X: 0, Y: 0}, m.Start)
	assert.Equal(t, Point{X: 1, Y: 0}, m.End)

	single := g.Find("a")
	assert.Equal(t, "(0,0)(0,0)", single.String())
}

func TestFind_UnknownLettersNeverMatch(t *testing.T) {
	g := mustGrid(t, "C?T\nXXX")
	assert.False(t, g.Find("CAT").Found)
	assert.False(t, g.Find("?").Found)
	assert.True(t, g.Find("XXX").Found)
}

func TestMatch_Cells(t *testing.T) {
	g := mustGrid(t, "CAT\nDOG\nTIG")

	assert.Equal(t, []Point{{2, 0}, {1, 1}, {0, 2}}, g.Find("TOT").Cells())
	assert.Equal(t, []Point{{0, 0}}, g.Find("C").Cells())
	assert.Nil(t, g.Find("ZZZ").Cells())
}

func TestParseGrid(t *testing.T) {
	g := mustGrid(t, "  c a t \n\n d o g\n")
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 'O', g.At(1, 1))
	assert.Equal(t, "CAT\nDOG\n", g.String())

	_, err := ParseGrid(strings.NewReader("ABC\nDE\n"))
	assert.Error(t, err)

	_, err = ParseGrid(strings.NewReader("\n  \n"))
	assert.True(t, errors.Is(err, ErrEmptyGrid))
}

func TestParseWordsAndFindAll(t *testing.T) {
	words, err := ParseWords(strings.NewReader("cat\n\n  dog \nzzz\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"CAT", "DOG", "ZZZ"}, words)

	matches := mustGrid(t, "CAT\nDOG\nTIG").FindAll(words)
	require.Len(t, matches, 3)
	assert.True(t, matches[0].Found)
	assert.True(t, matches[1].Found)
	assert.False(t, matches[2].Found)
	assert.Equal(t, "ZZZ", matches[2].Word)
}
