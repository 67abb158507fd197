package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"librarybox.klederson.com/internal/beacon"
	"librarybox.klederson.com/internal/gauge"
)

// RenderDetailPanel renders the beacon detail view that replaces the gauge.
func RenderDetailPanel(r beacon.Reading, width, height int, rssiHistory []float64, p gauge.Palette, now time.Time) string {
	innerW := max(width-4, 20)

	title := StylePanelTitle.Render("BEACON DETAIL")
	escHint := StyleHelp.Render("[ESC]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint

	lines := []string{titleLine, StyleSeparator.Render(strings.Repeat("-", innerW)), ""}

	accuracy := "unknown"
	if r.Valid() {
		accuracy = fmt.Sprintf("~%.1f m", r.Accuracy)
	}
	fields := []struct{ label, value string }{
		{"Beacon", r.ID},
		{"Tier", TierStyle(p, r.Proximity).Render(r.Proximity.String())},
		{"Distance", accuracy},
		{"RSSI", fmt.Sprintf("%d dBm", int(math.Round(r.RSSI)))},
		{"Tx power", fmt.Sprintf("%d dBm", r.TxPower)},
		{"Last", formatLastSeen(now.Sub(r.SeenAt))},
	}
	for _, f := range fields {
		lines = append(lines, StyleBeaconMeta.Render(fmt.Sprintf("  %-10s", f.label))+StyleBeaconID.Render(f.value))
	}
	lines = append(lines, "")

	barWidth := max(innerW-22, 10)
	lines = append(lines, StyleBeaconMeta.Render("  Signal ")+renderSignalBar(r.RSSI, barWidth, TierStyle(p, r.Proximity)))
	lines = append(lines, "")

	if len(rssiHistory) > 0 {
		lines = append(lines, StyleBeaconMeta.Render("  RSSI History:"))
		spark := renderSparkline(rssiHistory, max(innerW-4, 10))
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorOrange).Render(spark))
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// renderSignalBar maps RSSI -100..-30 dBm onto a bar of the given width.
func renderSignalBar(rssi float64, width int, fill lipgloss.Style) string {
	ratio := min(max((rssi+100.0)/70.0, 0), 1)
	filled := int(math.Round(ratio * float64(width)))

	return StyleHelp.Render("[") +
		fill.Render(strings.Repeat("|", filled)) +
		StyleHelp.Render(strings.Repeat("-", width-filled)) +
		StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	chars := []byte{'_', '.', '-', '~', '^'}

	if len(values) > width {
		values = values[len(values)-width:]
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	rng := max(maxV-minV, 1)

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		sb.WriteByte(chars[min(max(idx, 0), len(chars)-1)])
	}
	return sb.String()
}

func formatLastSeen(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
}
