package beacon

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"librarybox.klederson.com/internal/config"
)

// demoRegion is the proximity UUID the fake beacons advertise.
var demoRegion = uuid.MustParse("B9407F30-F5F8-466E-AFF9-25556B57FE6D")

type mockBeacon struct {
	adv       Advertisement
	address   string
	baseRSSI  float64
	phase     float64
	amplitude float64
	active    bool
}

// MockScanner generates fake beacons for demo mode.
type MockScanner struct {
	mu       sync.Mutex
	beacons  []mockBeacon
	rng      *rand.Rand
	interval time.Duration
	cancel   context.CancelFunc
}

var _ Scanner = (*MockScanner)(nil)

// NewMockScanner creates between config.DemoBeaconMin and DemoBeaconMax
// beacons spread across the gauge.
func NewMockScanner(seed int64) *MockScanner {
	rng := rand.New(rand.NewSource(seed))
	n := config.DemoBeaconMin + rng.Intn(config.DemoBeaconMax-config.DemoBeaconMin+1)

	beacons := make([]mockBeacon, n)
	for i := range beacons {
		tx := int8(-59 - rng.Intn(8))
		beacons[i] = mockBeacon{
			adv: Advertisement{
				UUID:    demoRegion,
				Major:   1,
				Minor:   uint16(i + 1),
				TxPower: tx,
			},
			address:   randomMAC(rng),
			baseRSSI:  -50 - rng.Float64()*45, // about 1.5 m to 90 m
			phase:     rng.Float64() * 2 * math.Pi,
			amplitude: 2 + rng.Float64()*6,
			active:    true,
		}
	}

	return &MockScanner{
		beacons:  beacons,
		rng:      rng,
		interval: 250 * time.Millisecond,
	}
}

// Start emits sightings until Stop is called.
func (s *MockScanner) Start(out Sender) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.loop(ctx, out)
	return nil
}

func (s *MockScanner) loop(ctx context.Context, out Sender) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t += s.interval.Seconds()
			for _, msg := range s.Emit(t) {
				out.Send(msg)
			}
		}
	}
}

// Emit produces one round of sightings at time t (seconds since start).
func (s *MockScanner) Emit(t float64) []SightingMsg {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]SightingMsg, 0, len(s.beacons))
	for i := range s.beacons {
		b := &s.beacons[i]

		// Occasionally a beacon drops out or comes back.
		if s.rng.Float64() < 0.005 {
			b.active = !b.active
		}
		if !b.active {
			continue
		}

		rssi := b.baseRSSI + b.amplitude*math.Sin(t*0.4+b.phase) + (s.rng.Float64()-0.5)*3
		if rssi > -1 {
			rssi = -1
		}
		msgs = append(msgs, SightingMsg{
			Advertisement: b.adv,
			Address:       b.address,
			RSSI:          int16(rssi),
		})
	}
	return msgs
}

// Len returns the number of simulated beacons.
func (s *MockScanner) Len() int {
	return len(s.beacons)
}

// Stop halts the mock scanner.
func (s *MockScanner) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func randomMAC(rng *rand.Rand) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
