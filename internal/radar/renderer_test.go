package radar

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarybox.klederson.com/internal/beacon"
	"librarybox.klederson.com/internal/gauge"
)

func paintReadings(t *testing.T, cols, rows int, readings []beacon.Reading) (string, gauge.Viewport) {
	t.Helper()
	vp := gauge.NewViewport(float64(cols)*8, float64(rows)*16, gauge.Portrait)
	prims, err := gauge.Render(readings, vp, gauge.DefaultPalette())
	require.NoError(t, err)
	return Paint(prims, cols, rows, vp), vp
}

func TestPaint_Dimensions(t *testing.T) {
	out, _ := paintReadings(t, 50, 40, nil)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 40)
	for i, l := range lines {
		assert.Equal(t, 50, lipgloss.Width(l), "line %d", i)
	}
}

func TestPaint_LabelsButtonAndDots(t *testing.T) {
	readings := []beacon.Reading{beacon.NewReading("b1", 2.5, time.Time{})}
	out, _ := paintReadings(t, 50, 40, readings)

	for _, label := range []string{"1 m", "2 m", "5 m", "15 m", "35 m", "70 m"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, string(buttonRune))
	assert.Equal(t, 1, strings.Count(out, string(dotRune)))

	lines := strings.Split(out, "\n")
	dotLine := []rune(lines[27])
	assert.Equal(t, dotRune, dotLine[43])
}

func TestPaint_RingsDrawn(t *testing.T) {
	out, _ := paintReadings(t, 50, 40, nil)
	assert.True(t, strings.ContainsAny(out, `-/|\`))
}

func TestPaint_Degenerate(t *testing.T) {
	assert.Empty(t, Paint(nil, 0, 10, gauge.Viewport{Width: 10, Height: 10}))
	assert.Empty(t, Paint(nil, 10, 10, gauge.Viewport{}))
}

func TestPaint_OffGridPrimitivesIgnored(t *testing.T) {
	vp := gauge.Viewport{Width: 80, Height: 80}
	prims := []gauge.Primitive{
		{Kind: gauge.KindLabel, Center: gauge.Point{X: 10, Y: 500}, Text: "lost"},
		{Kind: gauge.KindDot, Center: gauge.Point{X: -50, Y: -50}, Radius: 2},
		{Kind: gauge.KindArc, Center: gauge.Point{X: 40, Y: 40}, Radius: -1},
	}
	out := Paint(prims, 10, 5, vp)
	assert.Equal(t, strings.Repeat(strings.Repeat(" ", 10)+"\n", 4)+strings.Repeat(" ", 10), out)
}

func TestGrid_CellOf(t *testing.T) {
	g := newGrid(10, 5, gauge.Viewport{Width: 80, Height: 80})
	col, row, ok := g.CellOf(gauge.Point{X: 79, Y: 79})
	assert.True(t, ok)
	assert.Equal(t, 9, col)
	assert.Equal(t, 4, row)

	_, _, ok = g.CellOf(gauge.Point{X: 80, Y: 0})
	assert.False(t, ok)

	assert.Equal(t, gauge.Point{X: 4, Y: 8}, g.CellCenter(0, 0))
}

func TestCellAngle(t *testing.T) {
	c := gauge.Point{X: 0, Y: 0}
	assert.InDelta(t, 0, CellAngle(gauge.Point{X: 0, Y: -1}, c), 1e-9)
	assert.InDelta(t, math.Pi/2, CellAngle(gauge.Point{X: 1, Y: 0}, c), 1e-9)
	assert.InDelta(t, math.Pi, CellAngle(gauge.Point{X: 0, Y: 1}, c), 1e-9)
	assert.InDelta(t, 3*math.Pi/2, CellAngle(gauge.Point{X: -1, Y: 0}, c), 1e-9)
}

func TestRingChar(t *testing.T) {
	assert.Equal(t, '-', RingChar(0))
	assert.Equal(t, '/', RingChar(math.Pi/4))
	assert.Equal(t, '|', RingChar(math.Pi/2))
	assert.Equal(t, '\\', RingChar(3*math.Pi/4))
	assert.Equal(t, '-', RingChar(math.Pi))
	assert.Equal(t, '|', RingChar(-math.Pi/2))
	assert.Equal(t, '-', RingChar(2*math.Pi))
}
