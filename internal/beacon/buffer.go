package beacon

import (
	"sort"

	"librarybox.klederson.com/internal/config"
)

// Buffer holds at most cap active readings, one per beacon ID. When full, a
// new beacon displaces the reading seen longest ago.
type Buffer struct {
	readings []Reading
	cap      int
}

// NewBuffer creates a buffer with the given capacity. Non-positive
// capacities fall back to config.BeaconCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = config.BeaconCapacity
	}
	return &Buffer{
		readings: make([]Reading, 0, capacity),
		cap:      capacity,
	}
}

// Push records a reading. An invalid reading removes the beacon instead,
// since it has no distance to show.
func (b *Buffer) Push(r Reading) {
	idx := b.indexOf(r.ID)
	if !r.Valid() {
		if idx >= 0 {
			b.readings = append(b.readings[:idx], b.readings[idx+1:]...)
		}
		return
	}
	if idx >= 0 {
		b.readings[idx] = r
		return
	}
	if len(b.readings) < b.cap {
		b.readings = append(b.readings, r)
		return
	}
	b.readings[b.oldest()] = r
}

func (b *Buffer) indexOf(id string) int {
	for i := range b.readings {
		if b.readings[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Buffer) oldest() int {
	idx := 0
	for i := 1; i < len(b.readings); i++ {
		if b.readings[i].SeenAt.Before(b.readings[idx].SeenAt) {
			idx = i
		}
	}
	return idx
}

// Active returns a copy of the readings, nearest first.
func (b *Buffer) Active() []Reading {
	out := make([]Reading, len(b.readings))
	copy(out, b.readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Accuracy < out[j].Accuracy
	})
	return out
}

// Len returns the number of stored readings.
func (b *Buffer) Len() int {
	return len(b.readings)
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return b.cap
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.readings = b.readings[:0]
}
