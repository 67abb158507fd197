package beacon

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarybox.klederson.com/internal/config"
)

type collector struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *collector) Send(msg tea.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func TestMockScanner_Population(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m := NewMockScanner(seed)
		assert.GreaterOrEqual(t, m.Len(), config.DemoBeaconMin)
		assert.LessOrEqual(t, m.Len(), config.DemoBeaconMax)
	}
}

func TestMockScanner_EmitProducesIBeacons(t *testing.T) {
	m := NewMockScanner(42)
	msgs := m.Emit(1)
	require.NotEmpty(t, msgs)

	keys := make(map[string]bool)
	for _, msg := range msgs {
		assert.Less(t, msg.RSSI, int16(0))
		keys[msg.Key()] = true

		adv, ok := ParseIBeacon(0x004C, EncodeIBeacon(msg.Advertisement))
		require.True(t, ok)
		assert.Equal(t, msg.Advertisement, adv)
	}
	assert.Len(t, keys, len(msgs))
}

func TestMockScanner_StartStop(t *testing.T) {
	m := NewMockScanner(7)
	m.interval = 5 * time.Millisecond
	c := &collector{}

	require.NoError(t, m.Start(c))
	assert.Eventually(t, func() bool { return c.Len() > 0 }, time.Second, 5*time.Millisecond)
	m.Stop()

	// Allow an in-flight tick to drain before sampling.
	time.Sleep(20 * time.Millisecond)
	n := c.Len()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, c.Len())
}
