package scale

// Tier classifies a distance for coloring.
type Tier int

const (
	TierUnknown Tier = iota
	TierImmediate
	TierNear
	TierFar
)

// Tier boundaries in meters, each interval is [lower, upper).
const (
	NearFrom = 3.0
	FarFrom  = 20.0
	FarUntil = 80.0
)

func (t Tier) String() string {
	switch t {
	case TierImmediate:
		return "immediate"
	case TierNear:
		return "near"
	case TierFar:
		return "far"
	default:
		return "unknown"
	}
}

// ClassifyProximity is total over the reals. Distances <= 0 are unknown and
// distances from 80 m on fall back to unknown rather than a "very far" tier.
func ClassifyProximity(distance float64) Tier {
	switch {
	case !(distance > 0):
		return TierUnknown
	case distance < NearFrom:
		return TierImmediate
	case distance < FarFrom:
		return TierNear
	case distance < FarUntil:
		return TierFar
	default:
		return TierUnknown
	}
}
