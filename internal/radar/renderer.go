// Package radar rasterizes gauge primitives onto a terminal character grid.
package radar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"librarybox.klederson.com/internal/gauge"
)

const (
	dotRune    = '●'
	buttonRune = '█'
)

type cell struct {
	ch    rune
	fg    colorful.Color
	hasFg bool
	bold  bool
	bg    colorful.Color
	hasBg bool
}

func (c cell) sameStyle(o cell) bool {
	return c.hasFg == o.hasFg && c.fg == o.fg && c.bold == o.bold &&
		c.hasBg == o.hasBg && c.bg == o.bg
}

func (c cell) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.hasFg {
		s = s.Foreground(lipgloss.Color(c.fg.Clamped().Hex()))
	}
	if c.hasBg {
		s = s.Background(lipgloss.Color(c.bg.Clamped().Hex()))
	}
	if c.bold {
		s = s.Bold(true)
	}
	return s
}

// Paint draws primitives in order onto a cols x rows grid covering the
// viewport, so later primitives overwrite earlier ones. Returns rows joined
// by newlines.
func Paint(prims []gauge.Primitive, cols, rows int, vp gauge.Viewport) string {
	if cols <= 0 || rows <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return ""
	}
	g := newGrid(cols, rows, vp)
	cells := make([][]cell, rows)
	for r := range cells {
		cells[r] = make([]cell, cols)
		for c := range cells[r] {
			cells[r][c].ch = ' '
		}
	}

	for _, p := range prims {
		switch p.Kind {
		case gauge.KindGradient:
			paintGradient(cells, g, p)
		case gauge.KindArc:
			paintArc(cells, g, p)
		case gauge.KindLabel:
			paintLabel(cells, g, p)
		case gauge.KindButton:
			paintButton(cells, g, p)
		case gauge.KindDot:
			paintDot(cells, g, p)
		}
	}

	return flush(cells)
}

func paintGradient(cells [][]cell, g grid, p gauge.Primitive) {
	dx := p.End.X - p.Start.X
	dy := p.End.Y - p.Start.Y
	span := dx*dx + dy*dy
	for r := range cells {
		for c := range cells[r] {
			t := 0.0
			if span > 0 {
				pt := g.CellCenter(c, r)
				t = ((pt.X-p.Start.X)*dx + (pt.Y-p.Start.Y)*dy) / span
			}
			t = min(max(t, 0), 1)
			cells[r][c].bg = p.From.BlendRgb(p.To, t)
			cells[r][c].hasBg = true
		}
	}
}

func paintArc(cells [][]cell, g grid, p gauge.Primitive) {
	if p.Radius <= 0 {
		return
	}
	for r := range cells {
		for c := range cells[r] {
			if !g.onRing(c, r, p.Center, p.Radius) {
				continue
			}
			cells[r][c].ch = RingChar(CellAngle(g.CellCenter(c, r), p.Center))
			cells[r][c].fg = p.Color
			cells[r][c].hasFg = true
		}
	}
}

func paintLabel(cells [][]cell, g grid, p gauge.Primitive) {
	col, row, _ := g.CellOf(p.Center)
	if row < 0 || row >= len(cells) {
		return
	}
	for i, ch := range []rune(p.Text) {
		c := col + i
		if c < 0 || c >= len(cells[row]) {
			continue
		}
		cells[row][c].ch = ch
		cells[row][c].fg = p.Color
		cells[row][c].hasFg = true
		cells[row][c].bold = false
	}
}

func paintCell(cells [][]cell, r, c int, ch rune, fg colorful.Color) {
	cells[r][c].ch = ch
	cells[r][c].fg = fg
	cells[r][c].hasFg = true
	cells[r][c].bold = true
}

// paintButton fills every cell inside the circle, plus the center cell in
// case the circle is smaller than a cell.
func paintButton(cells [][]cell, g grid, p gauge.Primitive) {
	for r := range cells {
		for c := range cells[r] {
			if g.inside(c, r, p.Center, p.Radius) {
				paintCell(cells, r, c, buttonRune, p.Fill)
			}
		}
	}
	if c, r, ok := g.CellOf(p.Center); ok {
		paintCell(cells, r, c, buttonRune, p.Fill)
	}
}

// paintDot marks a beacon with a single glyph.
func paintDot(cells [][]cell, g grid, p gauge.Primitive) {
	if c, r, ok := g.CellOf(p.Center); ok {
		paintCell(cells, r, c, dotRune, p.Fill)
	}
}

// flush renders rows, styling runs of equally styled cells together.
func flush(cells [][]cell) string {
	var sb strings.Builder
	for r, row := range cells {
		start := 0
		for c := 1; c <= len(row); c++ {
			if c < len(row) && row[c].sameStyle(row[start]) {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:c] {
				run.WriteRune(cl.ch)
			}
			sb.WriteString(row[start].style().Render(run.String()))
			start = c
		}
		if r < len(cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
