// Package solver finds words in a recognised letter grid.
package solver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Unknown marks a cell whose letter could not be recognised.
const Unknown = '?'

// ErrEmptyGrid is returned when grid text holds no letters.
var ErrEmptyGrid = errors.New("grid has no rows")

// Point is a grid position. X is the column and Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// directions are searched in this order; the first hit wins.
var directions = [8]struct{ dr, dc int }{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Grid is a rectangular block of upper-case letters.
type Grid struct {
	rows [][]rune
}

// NewGrid builds a grid from rows of equal length.
func NewGrid(rows []string) (*Grid, error) {
	g := &Grid{}
	for i, row := range rows {
		r := []rune(strings.ToUpper(row))
		if len(g.rows) > 0 && len(r) != len(g.rows[0]) {
			return nil, fmt.Errorf("row %d has %d letters, want %d", i, len(r), len(g.rows[0]))
		}
		g.rows = append(g.rows, r)
	}
	if len(g.rows) == 0 || len(g.rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	return g, nil
}

// ParseGrid reads one grid row per line. Whitespace inside a line is
// ignored and blank lines are skipped.
func ParseGrid(r io.Reader) (*Grid, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		row := strings.Map(func(c rune) rune {
			if unicode.IsSpace(c) {
				return -1
			}
			return c
		}, sc.Text())
		if row != "" {
			rows = append(rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewGrid(rows)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.rows) }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return len(g.rows[0]) }

// At returns the letter at (row, col).
func (g *Grid) At(row, col int) rune { return g.rows[row][col] }

// String renders the grid one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for _, r := range g.rows {
		b.WriteString(string(r))
		b.WriteByte('\n')
	}
	return b.String()
}

// Match is the outcome of a search for one word.
type Match struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

// String renders the match as "(x0,y0)(x1,y1)" or "Not Found".
func (m Match) String() string {
	if !m.Found {
		return "Not Found"
	}
	return fmt.Sprintf("(%d,%d)(%d,%d)", m.Start.X, m.Start.Y, m.End.X, m.End.Y)
}

// Find looks for word in all eight directions, scanning start cells in
// row-major order. The search is case-insensitive. An unknown letter '?'
// in the grid never matches.
func (g *Grid) Find(word string) Match {
	w := []rune(strings.ToUpper(strings.TrimSpace(word)))
	m := Match{Word: string(w)}
	if len(w) == 0 {
		return m
	}

	for row := range g.rows {
		for col := range g.rows[row] {
			if g.rows[row][col] != w[0] {
				continue
			}
			for _, d := range directions {
				if g.matches(w, row, col, d.dr, d.dc) {
					n := len(w) - 1
					m.Found = true
					m.Start = Point{X: col, Y: row}
					m.End = Point{X: col + n*d.dc, Y: row + n*d.dr}
					return m
				}
			}
		}
	}
	return m
}

func (g *Grid) matches(w []rune, row, col, dr, dc int) bool {
	for i, c := range w {
		r, k := row+i*dr, col+i*dc
		if r < 0 || r >= len(g.rows) || k < 0 || k >= len(g.rows[r]) {
			return false
		}
		if c == Unknown || g.rows[r][k] != c {
			return false
		}
	}
	return true
}

// Cells returns the grid positions covered by a found match, start first.
func (m Match) Cells() []Point {
	if !m.Found {
		return nil
	}
	dx, dy := sign(m.End.X-m.Start.X), sign(m.End.Y-m.Start.Y)
	n := max(abs(m.End.X-m.Start.X), abs(m.End.Y-m.Start.Y))
	cells := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		cells = append(cells, Point{X: m.Start.X + i*dx, Y: m.Start.Y + i*dy})
	}
	return cells
}

// FindAll searches every word in order.
func (g *Grid) FindAll(words []string) []Match {
	out := make([]Match, 0, len(words))
	for _, w := range words {
		out = append(out, g.Find(w))
	}
	return out
}

// ParseWords reads one word per line, skipping blank lines.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, strings.ToUpper(w))
		}
	}
	return words, sc.Err()
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
