package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"librarybox.klederson.com/internal/gauge"
	"librarybox.klederson.com/internal/scale"
)

// RenderGaugePanel wraps painted gauge content with a styled border.
func RenderGaugePanel(width, height int, content, legend string) string {
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content + "\n" + legend)
}

// RenderLegend explains the dot colors, centered in width.
func RenderLegend(width int, p gauge.Palette) string {
	legend := TierStyle(p, scale.TierImmediate).Render("● <3m") + "  " +
		TierStyle(p, scale.TierNear).Render("● 3-20m") + "  " +
		TierStyle(p, scale.TierFar).Render("● 20-80m") + "  " +
		TierStyle(p, scale.TierUnknown).Render("● ?")

	pad := max((width-lipgloss.Width(legend))/2, 0)
	return strings.Repeat(" ", pad) + legend
}
