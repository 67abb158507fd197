package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/gauge"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, adapter string, scanning bool, o gauge.Orientation) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"S", "can"},
		{"P", "ause"},
		{"O", "rientation"},
		{"↵", " detail"},
		{"Q", "uit"},
	}

	var menu strings.Builder
	for _, k := range keys {
		menu.WriteString("  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label))
	}

	status := StyleStatusPaused.Render("PAUSED")
	if scanning {
		status = StyleStatusScanning.Render("RANGING")
	}

	info := StyleMenuLabel.Render(fmt.Sprintf("%s  Adapter: %s", o, adapter))

	left := StyleMenuKey.Render(title) + menu.String()
	right := status + "  " + info + " "

	gap := max(width-StyleMenuBar.GetHorizontalFrameSize()-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
