package motion

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Tickable is implemented by anything the ticker advances, typically a
// device wrapping its axes and doors behind its own lock.
type Tickable interface {
	Tick(elapsed time.Duration)
}

// Ticker drives all registered devices from a single goroutine at a
// fixed interval, passing each the wall time elapsed since the
// previous tick.
type Ticker struct {
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	devices []Tickable
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewTicker creates a ticker with the given interval.
func NewTicker(interval time.Duration, logger *zap.Logger) *Ticker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Ticker{
		interval: interval,
		logger:   logger.With(zap.String("component", "ticker")),
	}
}

// Register adds a device to the tick loop. Safe to call before or
// after Start.
func (t *Ticker) Register(d Tickable) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.devices = append(t.devices, d)
}

// Start launches the tick loop. Starting a running ticker is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.running = true
	go t.loop(t.stopCh, t.doneCh)
	t.logger.Info("Motion ticker started", zap.Duration("interval", t.interval))
}

// Stop halts the tick loop and waits for it to exit.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	stopCh, doneCh := t.stopCh, t.doneCh
	t.running = false
	t.mu.Unlock()

	close(stopCh)
	<-doneCh
	t.logger.Info("Motion ticker stopped")
}

func (t *Ticker) loop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			t.tickAll(elapsed)
		}
	}
}

func (t *Ticker) tickAll(elapsed time.Duration) {
	t.mu.Lock()
	devices := make([]Tickable, len(t.devices))
	copy(devices, t.devices)
	t.mu.Unlock()

	for _, d := range devices {
		d.Tick(elapsed)
	}
}
