package radar

import (
	"math"

	"librarybox.klederson.com/internal/gauge"
)

// grid maps terminal cells to gauge points.
type grid struct {
	cols, rows int
	cellW      float64
	cellH      float64
}

func newGrid(cols, rows int, vp gauge.Viewport) grid {
	return grid{
		cols:  cols,
		rows:  rows,
		cellW: vp.Width / float64(cols),
		cellH: vp.Height / float64(rows),
	}
}

// CellCenter returns the gauge point at the middle of a cell.
func (g grid) CellCenter(col, row int) gauge.Point {
	return gauge.Point{
		X: (float64(col) + 0.5) * g.cellW,
		Y: (float64(row) + 0.5) * g.cellH,
	}
}

// CellOf returns the cell containing a point and whether it is on the grid.
func (g grid) CellOf(p gauge.Point) (col, row int, ok bool) {
	col = int(math.Floor(p.X / g.cellW))
	row = int(math.Floor(p.Y / g.cellH))
	ok = col >= 0 && col < g.cols && row >= 0 && row < g.rows
	return col, row, ok
}

// onRing reports whether a cell is crossed by a circle's outline. A cell
// belongs to the ring when the circle passes within half a cell of its
// center, measured in cell units so tall cells do not thicken the line.
func (g grid) onRing(col, row int, center gauge.Point, radius float64) bool {
	p := g.CellCenter(col, row)
	dx := p.X - center.X
	dy := p.Y - center.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return radius < math.Min(g.cellW, g.cellH)/2
	}
	// Distance to the ring along the ray, converted to cells.
	ex := dx / d * (d - radius) / g.cellW
	ey := dy / d * (d - radius) / g.cellH
	return math.Abs(ex) <= 0.5 && math.Abs(ey) <= 0.5
}

// inside reports whether a cell center lies within a filled circle.
func (g grid) inside(col, row int, center gauge.Point, radius float64) bool {
	p := g.CellCenter(col, row)
	return math.Hypot(p.X-center.X, p.Y-center.Y) <= radius
}

// CellAngle returns the angle of a point seen from center, in radians in
// [0, 2π) where 0 is up and angles grow clockwise.
func CellAngle(p, center gauge.Point) float64 {
	angle := math.Atan2(p.X-center.X, center.Y-p.Y)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// RingChar returns the line character for a ring at the given angle.
func RingChar(angle float64) rune {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}

	switch int(math.Round(angle/(math.Pi/4))) % 8 {
	case 0, 4: // top, bottom
		return '-'
	case 1, 5:
		return '/'
	case 2, 6: // right, left
		return '|'
	default:
		return '\\'
	}
}
