// Package beacon turns iBeacon advertisements into distance readings for the
// gauge. Readings carry no sentinel values: a buffer only ever holds beacons
// that currently have a usable distance estimate.
package beacon

import (
	"fmt"
	"time"

	"librarybox.klederson.com/internal/scale"
)

// Reading is one ranged beacon.
type Reading struct {
	ID        string
	Proximity scale.Tier
	Accuracy  float64 // meters, <= 0 means unknown
	RSSI      float64
	TxPower   int8
	SeenAt    time.Time
}

// Valid reports whether the reading has a usable distance.
func (r Reading) Valid() bool {
	return r.Accuracy > 0
}

// NewReading builds a reading and derives its proximity tier.
func NewReading(id string, accuracy float64, seenAt time.Time) Reading {
	return Reading{
		ID:        id,
		Proximity: scale.ClassifyProximity(accuracy),
		Accuracy:  accuracy,
		SeenAt:    seenAt,
	}
}

// FromDistances adapts a fixed-size distance array that uses zero for empty
// slots. Zero and negative entries are dropped.
func FromDistances(distances []float64) []Reading {
	out := make([]Reading, 0, len(distances))
	for i, d := range distances {
		if !(d > 0) {
			continue
		}
		out = append(out, NewReading(fmt.Sprintf("slot-%02d", i), d, time.Time{}))
	}
	return out
}
