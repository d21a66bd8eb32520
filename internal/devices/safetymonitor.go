package devices

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// SafetyMonitorConfig holds the weather limits that gate safe
// operation.
type SafetyMonitorConfig struct {
	WindLimit  float64 `mapstructure:"wind_limit"`
	CloudLimit float64 `mapstructure:"cloud_limit"`
}

// DefaultSafetyMonitorConfig returns the simulator defaults.
func DefaultSafetyMonitorConfig() SafetyMonitorConfig {
	return SafetyMonitorConfig{WindLimit: 15, CloudLimit: 80}
}

// SafetyMonitor aggregates the weather station into a single safe or
// unsafe verdict: unsafe on any rain, wind gusts over the limit or
// heavy cloud. Without a weather source it reports safe.
type SafetyMonitor struct {
	mu     sync.Mutex
	logger *zap.Logger

	weather    *ObservingConditions
	windLimit  float64
	cloudLimit float64
	lastSafe   bool

	// onChange is invoked outside the lock on every verdict flip.
	onChange func(safe bool)
}

// SafetyStatus is a point-in-time snapshot for telemetry.
type SafetyStatus struct {
	Safe bool `json:"safe"`
}

// NewSafetyMonitor creates a monitor fed by the given weather station.
// The weather source may be nil.
func NewSafetyMonitor(cfg SafetyMonitorConfig, weather *ObservingConditions, logger *zap.Logger) *SafetyMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafetyMonitor{
		logger:     logger.With(zap.String("device", "safetymonitor")),
		weather:    weather,
		windLimit:  cfg.WindLimit,
		cloudLimit: cfg.CloudLimit,
		lastSafe:   true,
	}
}

// OnChange installs a callback fired whenever the verdict flips.
func (m *SafetyMonitor) OnChange(fn func(safe bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *SafetyMonitor) verdict() bool {
	if m.weather == nil {
		return true
	}
	c := m.weather.Snapshot()
	return c.RainRate == 0 && c.WindGust <= m.windLimit && c.CloudCover <= m.cloudLimit
}

// IsSafe reports whether conditions permit operation.
func (m *SafetyMonitor) IsSafe() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verdict()
}

// Tick re-evaluates the verdict and reports transitions.
func (m *SafetyMonitor) Tick(elapsed time.Duration) {
	m.mu.Lock()
	safe := m.verdict()
	changed := safe != m.lastSafe
	m.lastSafe = safe
	fn := m.onChange
	m.mu.Unlock()

	if changed {
		m.logger.Info("Safety verdict changed", zap.Bool("safe", safe))
		if fn != nil {
			fn(safe)
		}
	}
}

// Status returns a telemetry snapshot.
func (m *SafetyMonitor) Status() interface{} {
	return SafetyStatus{Safe: m.IsSafe()}
}
