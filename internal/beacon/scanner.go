package beacon

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"
)

// SightingMsg is sent via tea.Program.Send for every iBeacon advertisement.
type SightingMsg struct {
	Advertisement
	Address string
	RSSI    int16
}

// ScanErrorMsg reports that a scanner stopped unexpectedly.
type ScanErrorMsg struct {
	Err error
}

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Scanner feeds sightings to a Sender until stopped.
type Scanner interface {
	Start(s Sender) error
	Stop()
}

// BLEScanner listens for iBeacon advertisements on the default adapter.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	running atomic.Bool
}

var _ Scanner = (*BLEScanner)(nil)

// NewBLEScanner creates a scanner on the system's default adapter.
func NewBLEScanner() *BLEScanner {
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
	}
}

// Start enables the adapter and scans in a goroutine. Advertisements that
// are not iBeacons are ignored.
func (s *BLEScanner) Start(out Sender) error {
	if err := s.adapter.Enable(); err != nil {
		return eris.Wrap(err, "beacon: enable BLE adapter (try running with sudo or setcap cap_net_admin+ep)")
	}

	s.running.Store(true)
	go func() {
		err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running.Load() {
				return
			}
			for _, m := range result.ManufacturerData() {
				adv, ok := ParseIBeacon(m.CompanyID, m.Data)
				if !ok {
					continue
				}
				out.Send(SightingMsg{
					Advertisement: adv,
					Address:       result.Address.String(),
					RSSI:          result.RSSI,
				})
			}
		})
		if err != nil {
			zap.L().Error("beacon: scan stopped", zap.Error(err))
			out.Send(ScanErrorMsg{Err: eris.Wrap(err, "beacon: scan")})
		}
	}()

	zap.L().Info("beacon: BLE scan started")
	return nil
}

// Stop halts the scan.
func (s *BLEScanner) Stop() {
	s.running.Store(false)
	if err := s.adapter.StopScan(); err != nil {
		zap.L().Debug("beacon: stop scan", zap.Error(err))
	}
}
