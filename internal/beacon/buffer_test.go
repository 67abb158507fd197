package beacon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarybox.klederson.com/internal/scale"
)

var t0 = time.Date(2016, 5, 23, 12, 0, 0, 0, time.UTC)

func TestBuffer_DefaultCapacity(t *testing.T) {
	assert.Equal(t, 20, NewBuffer(0).Cap())
	assert.Equal(t, 5, NewBuffer(5).Cap())
}

func TestBuffer_SkipsInvalidReadings(t *testing.T) {
	b := NewBuffer(20)
	b.Push(NewReading("a", 2.5, t0))
	b.Push(NewReading("b", 0, t0))
	b.Push(NewReading("c", -1, t0))
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_InvalidReadingRemovesBeacon(t *testing.T) {
	b := NewBuffer(20)
	b.Push(NewReading("a", 2.5, t0))
	b.Push(NewReading("a", -1, t0.Add(time.Second)))
	assert.Zero(t, b.Len())
}

func TestBuffer_ReplacesSameID(t *testing.T) {
	b := NewBuffer(20)
	b.Push(NewReading("a", 2.5, t0))
	b.Push(NewReading("a", 30, t0.Add(time.Second)))

	active := b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, 30.0, active[0].Accuracy)
	assert.Equal(t, scale.TierFar, active[0].Proximity)
}

func TestBuffer_FullEvictsOldest(t *testing.T) {
	b := NewBuffer(3)
	b.Push(NewReading("a", 1, t0.Add(2*time.Second)))
	b.Push(NewReading("b", 2, t0))
	b.Push(NewReading("c", 3, t0.Add(time.Second)))
	b.Push(NewReading("d", 4, t0.Add(3*time.Second)))

	var ids []string
	for _, r := range b.Active() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
}

func TestBuffer_ActiveSortedAndCopied(t *testing.T) {
	b := NewBuffer(20)
	b.Push(NewReading("far", 45, t0))
	b.Push(NewReading("near", 4, t0))
	b.Push(NewReading("imm", 0.5, t0))

	active := b.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "imm", active[0].ID)
	assert.Equal(t, "near", active[1].ID)
	assert.Equal(t, "far", active[2].ID)

	active[0].Accuracy = 99
	assert.Equal(t, 0.5, b.Active()[0].Accuracy)

	b.Reset()
	assert.Zero(t, b.Len())
}

func TestFromDistances_DropsSentinels(t *testing.T) {
	legacy := make([]float64, 20)
	legacy[0] = 2.5
	legacy[1] = 45.0

	readings := FromDistances(legacy)
	require.Len(t, readings, 2)
	assert.Equal(t, scale.TierImmediate, readings[0].Proximity)
	assert.Equal(t, scale.TierFar, readings[1].Proximity)
	assert.NotEqual(t, readings[0].ID, readings[1].ID)
}
