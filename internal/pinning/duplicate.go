// Package pinning decides whether a geocoded address may be pinned as a new
// box location and submits it to the pin store.
package pinning

import (
	"fmt"

	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/geo"
)

// DuplicateRadius is the minimum separation between two pinned boxes.
const DuplicateRadius = config.DuplicateRadius

// IsDuplicate reports whether any existing pin lies strictly within
// radiusMeters of the candidate. An empty pin set is never a duplicate.
func IsDuplicate(candidate geo.Location, existing []geo.Location, radiusMeters float64) bool {
	for _, pin := range existing {
		if geo.Distance(candidate, pin) < radiusMeters {
			return true
		}
	}
	return false
}

// Verdict is the outcome of validating a candidate address.
type Verdict int

const (
	// VerdictNoAddress means the input did not resolve to a location.
	VerdictNoAddress Verdict = iota
	// VerdictNoPins means the pin set was empty, so no check was possible.
	VerdictNoPins
	// VerdictDuplicate means a pin already sits within DuplicateRadius.
	VerdictDuplicate
	// VerdictValid means the address may be pinned.
	VerdictValid
)

func (v Verdict) String() string {
	switch v {
	case VerdictNoPins:
		return "no-pins"
	case VerdictDuplicate:
		return "duplicate"
	case VerdictValid:
		return "valid"
	default:
		return "no-address"
	}
}

// Validate classifies a candidate against the current pin set. A nil
// candidate means geocoding found nothing.
func Validate(candidate *geo.Location, existing []geo.Location) Verdict {
	switch {
	case candidate == nil:
		return VerdictNoAddress
	case len(existing) == 0:
		return VerdictNoPins
	case IsDuplicate(*candidate, existing, DuplicateRadius):
		return VerdictDuplicate
	default:
		return VerdictValid
	}
}

// Message renders the feedback line shown under the address field.
func (v Verdict) Message(address string) string {
	switch v {
	case VerdictValid:
		return fmt.Sprintf("✅ '%s' valid", address)
	case VerdictDuplicate:
		return fmt.Sprintf("❌ '%s' already on map", address)
	case VerdictNoPins:
		return "❌ Currently no box locations available. Please try again later"
	default:
		return "❌ No valid address found"
	}
}
