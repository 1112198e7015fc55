package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heroviz/internal/scene"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of Braille cells. Each cell also carries the color of
// the strongest ink that touched it during the current frame.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]scene.RGB
	weight        [][]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Ink = make([][]scene.RGB, h)
	c.weight = make([][]float64, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]scene.RGB, w)
		c.weight[i] = make([]float64, w)
	}
	c.Clear()
}

// Dots is the canvas size in sub-cell dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets a dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

// Paint sets a dot and inks its cell with col if weight beats the ink
// already there.
func (c *Canvas) Paint(x, y int, col scene.RGB, weight float64) {
	row, cell, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][cell] |= rune(pixelMap[y%4][x%2])
	if weight > c.weight[row][cell] {
		c.weight[row][cell] = weight
		c.Ink[row][cell] = col
	}
}

// Unset clears a dot.
func (c *Canvas) Unset(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.weight[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col scene.RGB, weight float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Paint(x0, y0, col, weight)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String returns the grid without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the grid with every run of equally inked cells wrapped in
// a foreground style from theme.
func (c *Canvas) Render(theme Theme) string {
	styles := make(map[scene.RGB]lipgloss.Style)
	style := func(col scene.RGB) lipgloss.Style {
		s, ok := styles[col]
		if !ok {
			s = lipgloss.NewStyle().Foreground(theme.Tint(col))
			styles[col] = s
		}
		return s
	}

	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.sameInk(i, start, j) {
				continue
			}
			run := string(row[start:j])
			if c.weight[i][start] > 0 {
				run = style(c.Ink[i][start]).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) sameInk(row, a, b int) bool {
	inkedA, inkedB := c.weight[row][a] > 0, c.weight[row][b] > 0
	if inkedA != inkedB {
		return false
	}
	return !inkedA || c.Ink[row][a] == c.Ink[row][b]
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
