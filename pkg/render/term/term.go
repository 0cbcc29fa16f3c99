// Package term draws frames onto a grid of terminal cells.
//
// Every cell stands for CellWidth x CellHeight virtual pixels, which keeps
// circles round on terminals whose cells are about twice as tall as wide.
// Circles become runs of cells with the category color as background,
// edges become box-drawing strokes, and labels are written over both.
package term

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/render"
)

// Virtual pixel size of one terminal cell.
const (
	CellWidth  = 10
	CellHeight = 20
)

// ViewportFor returns the virtual pixel viewport of a cols x rows grid.
func ViewportFor(cols, rows int) graph.Viewport {
	return graph.Viewport{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)}
}

// CellAt converts a cell position to the virtual pixel at its center.
func CellAt(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

type cell struct {
	r      rune
	fg, bg string
}

// Canvas is a [render.Context] over a cell grid.
type Canvas struct {
	cols, rows int
	cells      []cell
	background string
}

var _ render.Context = (*Canvas)(nil)

// New returns a blank canvas. It is resized by every Clear.
func New() *Canvas { return &Canvas{} }

// Size returns the grid dimensions.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) Clear(vp graph.Viewport, background string) {
	c.cols = max(int(vp.Width/CellWidth), 0)
	c.rows = max(int(vp.Height/CellHeight), 0)
	c.background = background
	n := c.cols * c.rows
	if cap(c.cells) < n {
		c.cells = make([]cell, n)
	}
	c.cells = c.cells[:n]
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, color string, _ float64) {
	r := stroke(x2-x1, y2-y1)
	fg := blend(color, c.background)

	c0, r0 := int(math.Floor(x1/CellWidth)), int(math.Floor(y1/CellHeight))
	c1, r1 := int(math.Floor(x2/CellWidth)), int(math.Floor(y2/CellHeight))
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		if p := c.at(c0, r0); p != nil {
			p.r, p.fg = r, fg
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func (c *Canvas) Circle(cx, cy, radius float64, fill, _ string, _ float64) {
	minC, maxC := int(math.Floor((cx-radius)/CellWidth)), int(math.Floor((cx+radius)/CellWidth))
	minR, maxR := int(math.Floor((cy-radius)/CellHeight)), int(math.Floor((cy+radius)/CellHeight))
	r2 := radius * radius
	hit := false
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			x, y := CellAt(col, row)
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) > r2 {
				continue
			}
			if p := c.at(col, row); p != nil {
				*p = cell{r: ' ', bg: fill}
				hit = true
			}
		}
	}
	// Circles smaller than a cell still mark their center.
	if !hit {
		if p := c.at(int(math.Floor(cx/CellWidth)), int(math.Floor(cy/CellHeight))); p != nil {
			*p = cell{r: '●', fg: fill}
		}
	}
}

func (c *Canvas) Text(x, y float64, s string, _ float64, color string) {
	row := int(math.Floor(y / CellHeight))
	col := int(math.Floor(x/CellWidth)) - utf8.RuneCountInString(s)/2
	for _, r := range s {
		if p := c.at(col, row); p != nil {
			p.r, p.fg = r, color
		}
		col++
	}
}

// Plain returns the grid as text without colors.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.cells[row*c.cols+col].r)
		}
	}
	return b.String()
}

// String returns the grid styled with lipgloss, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end].fg == line[start].fg && line[end].bg == line[start].bg {
				end++
			}
			var run strings.Builder
			for _, p := range line[start:end] {
				run.WriteRune(p.r)
			}
			st := lipgloss.NewStyle()
			if line[start].fg != "" {
				st = st.Foreground(lipgloss.Color(line[start].fg))
			}
			if line[start].bg != "" {
				st = st.Background(lipgloss.Color(line[start].bg))
			}
			b.WriteString(st.Render(run.String()))
			start = end
		}
	}
	return b.String()
}

// Render paints f onto a fresh canvas and returns it.
func Render(f render.Frame) *Canvas {
	c := New()
	render.Paint(c, f)
	return c
}

// stroke picks the box-drawing rune closest to the direction (dx, dy) in
// virtual pixels.
func stroke(dx, dy float64) rune {
	a := math.Atan2(dy, dx) * 180 / math.Pi
	if a < 0 {
		a += 180
	}
	switch {
	case a < 22.5 || a >= 157.5:
		return '─'
	case a < 67.5:
		return '╲'
	case a < 112.5:
		return '│'
	default:
		return '╱'
	}
}

// blend flattens an rgba() color over a #rrggbb background. Other colors
// are returned unchanged.
func blend(color, background string) string {
	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(color, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
		return color
	}
	var br, bg, bb int
	if _, err := fmt.Sscanf(background, "#%2x%2x%2x", &br, &bg, &bb); err != nil {
		br, bg, bb = 0, 0, 0
	}
	mix := func(fg, bg int) int { return int(math.Round(float64(fg)*a + float64(bg)*(1-a))) }
	return fmt.Sprintf("#%02x%02x%02x", mix(r, br), mix(g, bg), mix(b, bb))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
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
