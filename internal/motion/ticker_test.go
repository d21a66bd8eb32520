package motion

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDevice struct {
	mu      sync.Mutex
	ticks   int
	elapsed time.Duration
}

func (d *countingDevice) Tick(elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ticks++
	d.elapsed += elapsed
}

func (d *countingDevice) snapshot() (int, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks, d.elapsed
}

func TestTicker(t *testing.T) {
	d := &countingDevice{}
	ticker := NewTicker(10*time.Millisecond, nil)
	ticker.Register(d)

	ticker.Start()
	time.Sleep(120 * time.Millisecond)
	ticker.Stop()

	ticks, elapsed := d.snapshot()
	require.Greater(t, ticks, 0)
	assert.Greater(t, elapsed, time.Duration(0))

	// No ticks after Stop returns.
	time.Sleep(30 * time.Millisecond)
	after, _ := d.snapshot()
	assert.Equal(t, ticks, after)
}

func TestTickerRegisterWhileRunning(t *testing.T) {
	ticker := NewTicker(5*time.Millisecond, nil)
	ticker.Start()
	defer ticker.Stop()

	d := &countingDevice{}
	ticker.Register(d)

	assert.Eventually(t, func() bool {
		ticks, _ := d.snapshot()
		return ticks > 0
	}, time.Second, 5*time.Millisecond)
}

func TestTickerIdempotentLifecycle(t *testing.T) {
	ticker := NewTicker(5*time.Millisecond, nil)

	// Stop before start is a no-op.
	ticker.Stop()

	ticker.Start()
	ticker.Start()
	ticker.Stop()
	ticker.Stop()

	// Restart works.
	d := &countingDevice{}
	ticker.Register(d)
	ticker.Start()
	time.Sleep(30 * time.Millisecond)
	ticker.Stop()

	ticks, _ := d.snapshot()
	assert.Greater(t, ticks, 0)
}
