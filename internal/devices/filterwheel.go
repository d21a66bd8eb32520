package devices

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/motion"
)

// FilterWheelConfig holds the filter complement. Names and offsets
// shorter than the wheel size are padded with generated entries.
type FilterWheelConfig struct {
	Slots        int           `mapstructure:"slots"`
	Names        []string      `mapstructure:"names"`
	FocusOffsets []int32       `mapstructure:"focus_offsets"`
	SlotTime     time.Duration `mapstructure:"slot_time"`
}

// DefaultFilterWheelConfig returns the simulator defaults: an eight
// position wheel with a common LRGB plus narrowband load-out.
func DefaultFilterWheelConfig() FilterWheelConfig {
	return FilterWheelConfig{
		Slots:        8,
		Names:        []string{"Red", "Green", "Blue", "Luminance", "Ha", "OIII", "SII", "Clear"},
		FocusOffsets: []int32{0, -20, -40, 0, 10, -15, 5, 0},
		SlotTime:     time.Second,
	}
}

// FilterWheel drives an indexed filter carousel. While the wheel is
// turning the reported position is -1.
type FilterWheel struct {
	mu     sync.Mutex
	logger *zap.Logger

	axis    *motion.Axis
	names   []string
	offsets []int32
}

// FilterWheelStatus is a point-in-time snapshot for telemetry.
type FilterWheelStatus struct {
	Position int    `json:"position"`
	Filter   string `json:"filter"`
	Moving   bool   `json:"moving"`
}

// NewFilterWheel creates a wheel at slot zero.
func NewFilterWheel(cfg FilterWheelConfig, logger *zap.Logger) *FilterWheel {
	if logger == nil {
		logger = zap.NewNop()
	}
	slots := cfg.Slots
	if slots <= 0 {
		slots = len(cfg.Names)
	}
	if slots <= 0 {
		slots = 1
	}

	names := make([]string, slots)
	offsets := make([]int32, slots)
	for i := 0; i < slots; i++ {
		if i < len(cfg.Names) && cfg.Names[i] != "" {
			names[i] = cfg.Names[i]
		} else {
			names[i] = fmt.Sprintf("Filter %d", i+1)
		}
		if i < len(cfg.FocusOffsets) {
			offsets[i] = cfg.FocusOffsets[i]
		}
	}

	slotTime := cfg.SlotTime
	if slotTime <= 0 {
		slotTime = time.Second
	}
	speed := 1 / slotTime.Seconds()

	return &FilterWheel{
		logger:  logger.With(zap.String("device", "filterwheel")),
		axis:    motion.NewLinearAxis(0, 0, float64(slots-1), speed),
		names:   names,
		offsets: offsets,
	}
}

// Tick advances the carousel.
func (w *FilterWheel) Tick(elapsed time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.axis.Tick(elapsed)
}

// Names returns the filter names by slot.
func (w *FilterWheel) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// FocusOffsets returns the per-filter focus offsets by slot.
func (w *FilterWheel) FocusOffsets() []int32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]int32, len(w.offsets))
	copy(out, w.offsets)
	return out
}

// Position returns the current slot, or -1 while the wheel is turning.
func (w *FilterWheel) Position() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.axis.Moving() {
		return -1
	}
	return int(math.Round(w.axis.Position()))
}

// SetPosition starts turning the wheel to the given slot. Out of range
// slots are logged and ignored.
func (w *FilterWheel) SetPosition(slot int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.axis.MoveTo(float64(slot)) {
		w.logger.Warn("Ignoring out of range filter slot", zap.Int("slot", slot))
		return
	}
	w.logger.Info("Filter wheel turning", zap.Int("slot", slot))
}

// Status returns a telemetry snapshot.
func (w *FilterWheel) Status() interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	pos := int(math.Round(w.axis.Position()))
	status := FilterWheelStatus{Position: pos, Moving: w.axis.Moving()}
	if w.axis.Moving() {
		status.Position = -1
	} else if pos >= 0 && pos < len(w.names) {
		status.Filter = w.names[pos]
	}
	return status
}
