package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyProximity(t *testing.T) {
	tests := []struct {
		d    float64
		want Tier
	}{
		{math.Inf(-1), TierUnknown},
		{-1, TierUnknown},
		{0, TierUnknown},
		{0.05, TierImmediate},
		{2.9, TierImmediate},
		{3.0, TierNear},
		{19.9, TierNear},
		{20.0, TierFar},
		{79.9, TierFar},
		{80.0, TierUnknown},
		{500, TierUnknown},
		{math.NaN(), TierUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyProximity(tt.d), "distance %g", tt.d)
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "unknown", TierUnknown.String())
	assert.Equal(t, "immediate", TierImmediate.String())
	assert.Equal(t, "near", TierNear.String())
	assert.Equal(t, "far", TierFar.String())
	assert.Equal(t, "unknown", Tier(42).String())
}
