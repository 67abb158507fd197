package beacon

import (
	"sort"
	"sync"
	"time"

	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/scale"
)

type tracked struct {
	adv      Advertisement
	address  string
	rssi     float64
	lastSeen time.Time
}

// Store is a thread-safe set of ranged beacons.
type Store struct {
	mu      sync.RWMutex
	beacons map[string]*tracked
	now     func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		beacons: make(map[string]*tracked),
		now:     time.Now,
	}
}

// Upsert records a sighting. RSSI of a known beacon is smoothed with an EMA
// so the dot does not jitter between frames.
func (s *Store) Upsert(msg SightingMsg) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := msg.Advertisement.Key()
	rssi := float64(msg.RSSI)
	if existing, ok := s.beacons[key]; ok {
		existing.rssi = existing.rssi*(1-config.SmoothingAlpha) + rssi*config.SmoothingAlpha
		existing.lastSeen = s.now()
		existing.adv = msg.Advertisement
		if msg.Address != "" {
			existing.address = msg.Address
		}
		return
	}
	s.beacons[key] = &tracked{
		adv:      msg.Advertisement,
		address:  msg.Address,
		rssi:     rssi,
		lastSeen: s.now(),
	}
}

// Evict removes beacons not seen within timeout and returns how many went.
func (s *Store) Evict(timeout time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-timeout)
	count := 0
	for key, b := range s.beacons {
		if b.lastSeen.Before(cutoff) {
			delete(s.beacons, key)
			count++
		}
	}
	return count
}

func (t *tracked) reading() Reading {
	acc := EstimateAccuracy(t.rssi, float64(t.adv.TxPower))
	return Reading{
		ID:        t.adv.Key(),
		Proximity: scale.ClassifyProximity(acc),
		Accuracy:  acc,
		RSSI:      t.rssi,
		TxPower:   t.adv.TxPower,
		SeenAt:    t.lastSeen,
	}
}

// Snapshot returns every tracked beacon, nearest first.
func (s *Store) Snapshot() []Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Reading, 0, len(s.beacons))
	for _, b := range s.beacons {
		out = append(out, b.reading())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy == out[j].Accuracy {
			return out[i].ID < out[j].ID
		}
		return out[i].Accuracy < out[j].Accuracy
	})
	return out
}

// Buffer copies the freshest readings into a Buffer of the given capacity.
func (s *Store) Buffer(capacity int) *Buffer {
	readings := s.Snapshot()
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].SeenAt.Before(readings[j].SeenAt)
	})
	buf := NewBuffer(capacity)
	for _, r := range readings {
		buf.Push(r)
	}
	return buf
}

// Count returns the number of tracked beacons.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.beacons)
}

// CountByTier breaks the tracked beacons down by proximity tier.
func (s *Store) CountByTier() map[scale.Tier]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[scale.Tier]int, 4)
	for _, b := range s.beacons {
		counts[b.reading().Proximity]++
	}
	return counts
}
