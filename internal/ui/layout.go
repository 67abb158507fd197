package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the gauge panel and beacon list horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, gaugePanel, beaconList, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, gaugePanel, beaconList)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
