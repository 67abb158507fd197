package beacon

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIBeacon(t *testing.T) {
	want := Advertisement{
		UUID:    uuid.MustParse("f7826da6-4fa2-4e98-8024-bc5b71e0893e"),
		Major:   258,
		Minor:   65535,
		TxPower: -59,
	}
	data := EncodeIBeacon(want)
	assert.Len(t, data, 23)
	assert.Equal(t, byte(0x01), data[18])
	assert.Equal(t, byte(0x02), data[19])
	assert.Equal(t, byte(0xC5), data[22])

	got, ok := ParseIBeacon(0x004C, data)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, "f7826da6-4fa2-4e98-8024-bc5b71e0893e:258:65535", got.Key())
}

func TestParseIBeacon_Rejects(t *testing.T) {
	valid := EncodeIBeacon(Advertisement{UUID: uuid.New(), TxPower: -60})

	tests := []struct {
		name      string
		companyID uint16
		data      []byte
	}{
		{"other vendor", 0x0075, valid},
		{"short", 0x004C, valid[:10]},
		{"wrong type", 0x004C, append([]byte{0x10}, valid[1:]...)},
		{"wrong length", 0x004C, append([]byte{0x02, 0x05}, valid[2:]...)},
		{"empty", 0x004C, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseIBeacon(tt.companyID, tt.data)
			assert.False(t, ok)
		})
	}
}

func TestEstimateAccuracy(t *testing.T) {
	assert.InDelta(t, 1.0, EstimateAccuracy(-59, -59), 1e-9)
	assert.InDelta(t, 10.0, EstimateAccuracy(-79, -59), 1e-9)
	assert.InDelta(t, 10.0, EstimateAccuracy(-79, 0), 1e-9, "zero tx power uses the default")
	assert.Equal(t, 0.1, EstimateAccuracy(-20, -59))
	assert.Equal(t, -1.0, EstimateAccuracy(0, -59))
}
