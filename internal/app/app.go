package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"librarybox.klederson.com/internal/beacon"
	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/gauge"
	"librarybox.klederson.com/internal/radar"
	"librarybox.klederson.com/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	store   *beacon.Store
	history *histories
	scanner beacon.Scanner
}

// Model is the root Bubble Tea model for the ranging gauge.
type Model struct {
	width  int
	height int

	scanning    bool
	demoMode    bool
	adapter     string
	orientation gauge.Orientation
	cursor      int
	detail      bool
	selected    string // beacon ID shown in the detail panel
	scanErr     string

	palette gauge.Palette
	shared  *shared
	now     func() time.Time

	// Cached buffer contents, nearest first.
	readings []beacon.Reading
}

// New creates a Model.
func New(demoMode bool, adapter string, o gauge.Orientation) Model {
	return Model{
		scanning:    true,
		demoMode:    demoMode,
		adapter:     adapter,
		orientation: o,
		palette:     gauge.DefaultPalette(),
		now:         time.Now,
		shared: &shared{
			store:   beacon.NewStore(),
			history: newHistories(config.HistoryLength),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		evictCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.checkViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.refresh()
		return m, tickCmd()

	case EvictMsg:
		if n := m.shared.store.Evict(config.BeaconTimeout); n > 0 {
			zap.L().Debug("app: evicted beacons", zap.Int("count", n))
		}
		keep := make(map[string]bool)
		for _, r := range m.shared.store.Snapshot() {
			keep[r.ID] = true
		}
		m.shared.history.Retain(keep)
		return m, evictCmd()

	case beacon.SightingMsg:
		if m.scanning {
			m.shared.store.Upsert(msg)
			m.shared.history.Record(msg.Key(), float64(msg.RSSI))
		}
		return m, nil

	case beacon.ScanErrorMsg:
		zap.L().Error("app: scanner failed", zap.Error(msg.Err))
		m.scanErr = msg.Err.Error()
		return m, nil
	}

	return m, nil
}

func (m *Model) refresh() {
	m.readings = m.shared.store.Buffer(config.BeaconCapacity).Active()
	if m.detail {
		// Readings re-sort as RSSI drifts; keep the cursor on the open beacon.
		if i := m.indexOf(m.selected); i >= 0 {
			m.cursor = i
		} else {
			m.closeDetail()
		}
	}
	if m.cursor >= len(m.readings) {
		m.cursor = max(len(m.readings)-1, 0)
	}
}

func (m Model) indexOf(id string) int {
	for i, r := range m.readings {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// openDetail shows the beacon under the cursor.
func (m *Model) openDetail() {
	if m.cursor < len(m.readings) {
		m.detail = true
		m.selected = m.readings[m.cursor].ID
	}
}

func (m *Model) closeDetail() {
	m.detail = false
	m.selected = ""
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.StopScanner()
		return m, tea.Quit

	case "s", "S":
		m.scanning = true

	case "p", "P":
		m.scanning = false

	case "o", "O":
		m.orientation = m.orientation.Toggle()
		zap.L().Debug("app: orientation changed", zap.Stringer("orientation", m.orientation))
		m.checkViewport()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.detail {
				m.openDetail()
			}
		}

	case "down", "j":
		if m.cursor < len(m.readings)-1 {
			m.cursor++
			if m.detail {
				m.openDetail()
			}
		}

	case "enter":
		m.openDetail()

	case "esc":
		m.closeDetail()
	}

	return m, nil
}

// panes splits the window into gauge and list widths and the body height.
func (m Model) panes() (gaugeW, listW, bodyH int) {
	bodyH = max(m.height-2, 5)
	gaugeW = max(m.width*3/4, 30)
	listW = m.width - gaugeW
	if listW < 20 {
		listW = 20
		gaugeW = m.width - listW
	}
	return gaugeW, listW, bodyH
}

// gaugeGrid returns the character grid inside the gauge panel and the
// viewport it covers.
func (m Model) gaugeGrid() (cols, rows int, vp gauge.Viewport) {
	gaugeW, _, bodyH := m.panes()
	cols = max(gaugeW-2, 1)
	rows = max(bodyH-3, 1) // border plus legend line
	vp = gauge.NewViewport(float64(cols)*config.CellWidthPts, float64(rows)*config.CellHeightPts, m.orientation)
	return cols, rows, vp
}

func (m Model) checkViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	_, _, vp := m.gaugeGrid()
	if _, err := gauge.NewLayout(vp); err != nil {
		zap.L().Warn("app: window too small for the gauge", zap.Error(err),
			zap.Int("width", m.width), zap.Int("height", m.height))
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing LibraryBox..."
	}

	gaugeW, listW, bodyH := m.panes()
	statusErr := m.scanErr

	var left string
	if m.detail && m.cursor < len(m.readings) {
		r := m.readings[m.cursor]
		left = ui.RenderDetailPanel(r, gaugeW, bodyH, m.shared.history.Values(r.ID), m.palette, m.now())
	} else {
		cols, rows, vp := m.gaugeGrid()
		content := ""
		prims, err := gauge.Render(m.readings, vp, m.palette)
		if err != nil {
			statusErr = err.Error()
		} else {
			content = radar.Paint(prims, cols, rows, vp)
		}
		left = ui.RenderGaugePanel(gaugeW, bodyH, content, ui.RenderLegend(cols, m.palette))
	}

	list := ui.RenderBeaconList(m.readings, listW, bodyH, m.cursor, m.palette)
	menuBar := ui.RenderMenuBar(m.width, m.adapter, m.scanning, m.orientation)
	statusBar := ui.RenderStatusBar(m.width, m.scanning, m.shared.store.Count(), m.shared.store.CountByTier(), statusErr)

	return ui.ComposeLayout(menuBar, left, list, statusBar)
}

// StartScanner picks the demo or BLE scanner and starts it. Must be called
// before p.Run().
func (m *Model) StartScanner(p beacon.Sender) error {
	if m.demoMode {
		m.shared.scanner = beacon.NewMockScanner(m.now().UnixNano())
	} else {
		m.shared.scanner = beacon.NewBLEScanner()
	}
	zap.L().Info("app: starting scanner", zap.Bool("demo", m.demoMode), zap.String("adapter", m.adapter))
	return m.shared.scanner.Start(p)
}

// StopScanner halts the running scanner, if any.
func (m Model) StopScanner() {
	if m.shared.scanner != nil {
		m.shared.scanner.Stop()
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func evictCmd() tea.Cmd {
	return tea.Tick(config.EvictInterval, func(t time.Time) tea.Msg {
		return EvictMsg(t)
	})
}
