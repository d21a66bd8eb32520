package devices

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/motion"
)

// FocuserConfig holds the focuser geometry and the simulated ambient
// temperature model.
type FocuserConfig struct {
	MaxStep      int           `mapstructure:"max_step"`
	MaxIncrement int           `mapstructure:"max_increment"`
	StepSize     float64       `mapstructure:"step_size"`
	Speed        float64       `mapstructure:"speed"`
	TempBase     float64       `mapstructure:"temp_base"`
	TempSwing    float64       `mapstructure:"temp_swing"`
	TempPeriod   time.Duration `mapstructure:"temp_period"`
}

// DefaultFocuserConfig returns the simulator defaults.
func DefaultFocuserConfig() FocuserConfig {
	return FocuserConfig{
		MaxStep:      10000,
		MaxIncrement: 1000,
		StepSize:     2.0,
		Speed:        500,
		TempBase:     10,
		TempSwing:    3,
		TempPeriod:   time.Hour,
	}
}

// Focuser drives an absolute focuser over [0, MaxStep]. Ambient
// temperature follows a slow sine around the configured base; with
// temperature compensation enabled an idle focuser nudges itself five
// steps per degree of drift since the last compensation.
type Focuser struct {
	mu     sync.Mutex
	logger *zap.Logger

	axis         *motion.Axis
	maxStep      int
	maxIncrement int
	stepSize     float64

	tempBase   float64
	tempSwing  float64
	tempPeriod time.Duration
	elapsed    time.Duration
	temp       float64

	tempComp     bool
	lastCompTemp float64
}

// FocuserStatus is a point-in-time snapshot for telemetry.
type FocuserStatus struct {
	Position    int     `json:"position"`
	Moving      bool    `json:"moving"`
	Temperature float64 `json:"temperature"`
	TempComp    bool    `json:"temp_comp"`
}

// stepsPerDegree is the compensation slope applied when temperature
// compensation is enabled.
const stepsPerDegree = 5

// compThreshold is the temperature drift that triggers a compensation
// move, in degrees Celsius.
const compThreshold = 0.5

// NewFocuser creates a focuser at mid travel.
func NewFocuser(cfg FocuserConfig, logger *zap.Logger) *Focuser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Focuser{
		logger:       logger.With(zap.String("device", "focuser")),
		axis:         motion.NewLinearAxis(float64(cfg.MaxStep)/2, 0, float64(cfg.MaxStep), cfg.Speed),
		maxStep:      cfg.MaxStep,
		maxIncrement: cfg.MaxIncrement,
		stepSize:     cfg.StepSize,
		tempBase:     cfg.TempBase,
		tempSwing:    cfg.TempSwing,
		tempPeriod:   cfg.TempPeriod,
		temp:         cfg.TempBase,
		lastCompTemp: cfg.TempBase,
	}
}

// Tick advances the axis and the temperature model, then applies
// temperature compensation if due.
func (f *Focuser) Tick(elapsed time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.elapsed += elapsed
	if f.tempPeriod > 0 {
		phase := 2 * math.Pi * float64(f.elapsed) / float64(f.tempPeriod)
		f.temp = f.tempBase + f.tempSwing*math.Sin(phase)
	}

	f.axis.Tick(elapsed)

	if f.tempComp && !f.axis.Moving() {
		drift := f.temp - f.lastCompTemp
		if math.Abs(drift) > compThreshold {
			target := f.axis.Position() + math.Round(drift*stepsPerDegree)
			target = math.Min(math.Max(target, 0), float64(f.maxStep))
			f.axis.MoveTo(target)
			f.lastCompTemp = f.temp
			f.logger.Debug("Temperature compensation move",
				zap.Float64("drift", drift),
				zap.Float64("target", target))
		}
	}
}

func (f *Focuser) Absolute() bool          { return true }
func (f *Focuser) TempCompAvailable() bool { return true }
func (f *Focuser) MaxStep() int            { return f.maxStep }
func (f *Focuser) MaxIncrement() int       { return f.maxIncrement }
func (f *Focuser) StepSize() float64       { return f.stepSize }

func (f *Focuser) Position() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(math.Round(f.axis.Position()))
}

func (f *Focuser) IsMoving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.axis.Moving()
}

func (f *Focuser) Temperature() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.temp
}

func (f *Focuser) TempComp() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tempComp
}

// SetTempComp enables or disables temperature compensation. Enabling
// rebases the drift reference to the current temperature.
func (f *Focuser) SetTempComp(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v && !f.tempComp {
		f.lastCompTemp = f.temp
	}
	f.tempComp = v
}

// Move starts a move to the given absolute position. Out of range
// positions are logged and ignored. Moves larger than MaxIncrement are
// allowed; the limit is advisory and only logged.
func (f *Focuser) Move(position int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if position < 0 || position > f.maxStep {
		f.logger.Warn("Ignoring out of range position", zap.Int("position", position))
		return
	}
	if delta := math.Abs(float64(position) - f.axis.Position()); delta > float64(f.maxIncrement) {
		f.logger.Warn("Move exceeds max increment", zap.Float64("delta", delta))
	}
	f.axis.MoveTo(float64(position))
	f.logger.Info("Focuser moving", zap.Int("position", position))
}

// Halt stops the focuser where it is.
func (f *Focuser) Halt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.axis.Halt()
	f.logger.Info("Focuser halted")
}

// Status returns a telemetry snapshot.
func (f *Focuser) Status() interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FocuserStatus{
		Position:    int(math.Round(f.axis.Position())),
		Moving:      f.axis.Moving(),
		Temperature: f.temp,
		TempComp:    f.tempComp,
	}
}
