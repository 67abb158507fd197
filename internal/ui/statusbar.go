package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/scale"
)

// RenderStatusBar renders the bottom status bar. A non-empty errMsg replaces
// the counters.
func RenderStatusBar(width int, scanning bool, total int, byTier map[scale.Tier]int, errMsg string) string {
	status := StyleStatusPaused.Render("[PAUSED]")
	if scanning {
		status = StyleStatusScanning.Render("[RANGING]")
	}

	var info string
	if errMsg != "" {
		info = " " + StyleStatusError.Render(errMsg)
	} else {
		info = StyleStatusBar.UnsetPadding().Render(fmt.Sprintf(
			" Beacons: %d  Immediate: %d  Near: %d  Far: %d  Scale: %.0f-%.0fm",
			total, byTier[scale.TierImmediate], byTier[scale.TierNear], byTier[scale.TierFar],
			config.ScaleMinMeters, config.ScaleMaxMeters))
	}

	content := status + info
	gap := max(width-StyleStatusBar.GetHorizontalFrameSize()-lipgloss.Width(content), 0)
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
