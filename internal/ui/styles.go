package ui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"librarybox.klederson.com/internal/gauge"
	"librarybox.klederson.com/internal/scale"
)

// LibraryBox palette, orange on charcoal.
var (
	ColorOrange    = lipgloss.Color("#FFA500")
	ColorAmber     = lipgloss.Color("#FF8000")
	ColorLightGray = lipgloss.Color("#AAAAAA")
	ColorDarkGray  = lipgloss.Color("#555555")
	ColorCharcoal  = lipgloss.Color("#222222")
	ColorWhite     = lipgloss.Color("#FFFFFF")
	ColorBlack     = lipgloss.Color("#000000")
	ColorError     = lipgloss.Color("#FF3300")
	ColorWarning   = lipgloss.Color("#FFCC00")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorCharcoal).
			Foreground(ColorOrange).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorLightGray)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorCharcoal).
			Foreground(ColorLightGray).
			Padding(0, 1)

	StyleStatusScanning = lipgloss.NewStyle().
				Foreground(ColorOrange).
				Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorDarkGray)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorOrange)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true).
			Padding(0, 1)

	StyleBeaconID = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	StyleBeaconMeta = lipgloss.NewStyle().
			Foreground(ColorLightGray)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	StyleCursorRow = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorOrange).
			Bold(true)
)

// TierStyle colors text like the gauge dot of that tier.
func TierStyle(p gauge.Palette, t scale.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(hexColor(p.ForTier(t))).Bold(true)
}

func hexColor(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}
