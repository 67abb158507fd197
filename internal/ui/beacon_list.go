package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"librarybox.klederson.com/internal/beacon"
	"librarybox.klederson.com/internal/gauge"
)

const linesPerBeacon = 3 // 2 content + 1 blank

// RenderBeaconList renders the scrollable beacon list. The cursor entry is
// always visible.
func RenderBeaconList(readings []beacon.Reading, width, height, cursor int, p gauge.Palette) string {
	innerW := max(width-4, 10)
	innerH := max(height-2, 3)

	header := []string{
		StylePanelTitle.Render(fmt.Sprintf("BEACONS [%d]", len(readings))),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}
	space := max(innerH-len(header), 1)

	var body []string
	if len(readings) == 0 {
		body = append(body, "", StyleHelp.Render(" No beacons..."), StyleHelp.Render(" Waiting for ranging"))
	} else {
		maxVisible := max(space/linesPerBeacon, 1)
		start := 0
		if cursor >= maxVisible {
			start = cursor - maxVisible + 1
		}
		for i := start; i < len(readings) && len(body) < space; i++ {
			body = append(body, renderBeaconEntry(readings[i], innerW, i == cursor, p)...)
		}
	}

	if len(body) > space {
		body = body[:space]
	}
	for len(body) < space {
		body = append(body, "")
	}

	all := append(header, body...)
	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))

	// lipgloss Height() only sets a minimum.
	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func renderBeaconEntry(r beacon.Reading, maxW int, isCursor bool, p gauge.Palette) []string {
	dist := "  ?"
	if r.Valid() {
		dist = fmt.Sprintf("~%.1fm", r.Accuracy)
	}
	id := r.ID
	raw1 := fmt.Sprintf("%s ● %s", cursorMark(isCursor), id)
	raw2 := fmt.Sprintf("     %s  %ddBm  %s", dist, int(r.RSSI), r.Proximity)

	if isCursor {
		return []string{
			StyleCursorRow.Render(truncRaw(raw1, maxW)),
			StyleCursorRow.Render(truncRaw(raw2, maxW)),
			"",
		}
	}

	idMax := max(maxW-5, 4)
	if lipgloss.Width(id) > idMax {
		id = string([]rune(id)[:idMax])
	}
	line1 := "   " + TierStyle(p, r.Proximity).Render("●") + " " + StyleBeaconID.Render(id)
	line2 := StyleBeaconMeta.Render(truncRaw(raw2, maxW))
	return []string{line1, line2, ""}
}

func cursorMark(on bool) string {
	if on {
		return ">>"
	}
	return "  "
}

// truncRaw pads or truncates a plain string to exactly w cells.
func truncRaw(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
