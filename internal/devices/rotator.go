package devices

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/motion"
)

// RotatorConfig holds the rotator drive parameters.
type RotatorConfig struct {
	Speed    float64 `mapstructure:"speed"`
	StepSize float64 `mapstructure:"step_size"`
}

// DefaultRotatorConfig returns the simulator defaults.
func DefaultRotatorConfig() RotatorConfig {
	return RotatorConfig{Speed: 10, StepSize: 1}
}

// Rotator drives a field rotator. The mechanical axis is the source of
// truth; the sky position is the mechanical angle mirrored when the
// reverse flag is set. A move completes once the axis is within half a
// step of its target, then snaps onto it.
type Rotator struct {
	mu     sync.Mutex
	logger *zap.Logger

	mech     *motion.Axis
	reverse  bool
	stepSize float64
}

// RotatorStatus is a point-in-time snapshot for telemetry.
type RotatorStatus struct {
	Position   float64 `json:"position"`
	Mechanical float64 `json:"mechanical"`
	Target     float64 `json:"target"`
	Moving     bool    `json:"moving"`
	Reverse    bool    `json:"reverse"`
}

// NewRotator creates a rotator at mechanical zero.
func NewRotator(cfg RotatorConfig, logger *zap.Logger) *Rotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	axis := motion.NewAngularAxis(0, cfg.Speed)
	axis.SetEpsilon(cfg.StepSize / 2)
	return &Rotator{
		logger:   logger.With(zap.String("device", "rotator")),
		mech:     axis,
		stepSize: cfg.StepSize,
	}
}

// Tick advances the rotator axis.
func (r *Rotator) Tick(elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mech.Tick(elapsed)
}

// toSky converts a mechanical angle to the reported sky angle.
func (r *Rotator) toSky(mech float64) float64 {
	if !r.reverse {
		return mech
	}
	return math.Mod(360-mech, 360)
}

// toMech converts a sky angle to the mechanical angle.
func (r *Rotator) toMech(sky float64) float64 {
	if !r.reverse {
		return sky
	}
	return math.Mod(360-sky, 360)
}

func (r *Rotator) Position() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toSky(r.mech.Position())
}

func (r *Rotator) MechanicalPosition() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mech.Position()
}

func (r *Rotator) TargetPosition() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toSky(r.mech.Target())
}

func (r *Rotator) IsMoving() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mech.Moving()
}

func (r *Rotator) CanReverse() bool { return true }

func (r *Rotator) Reverse() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reverse
}

// SetReverse flips the sky direction. The mechanical position is
// unaffected; only the reported position mirrors.
func (r *Rotator) SetReverse(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reverse = v
}

func (r *Rotator) StepSize() float64 { return r.stepSize }

// Move starts a move relative to the current target position.
func (r *Rotator) Move(delta float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sky := r.toSky(r.mech.Target()) + delta
	sky = math.Mod(sky, 360)
	if sky < 0 {
		sky += 360
	}
	r.moveToSkyLocked(sky)
}

// MoveAbsolute starts a move to the given sky angle. Out of range
// angles are logged and ignored.
func (r *Rotator) MoveAbsolute(position float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if position < 0 || position > 360 {
		r.logger.Warn("Ignoring out of range position", zap.Float64("position", position))
		return
	}
	r.moveToSkyLocked(position)
}

func (r *Rotator) moveToSkyLocked(sky float64) {
	r.mech.MoveTo(r.toMech(sky))
	r.logger.Info("Rotator moving", zap.Float64("position", sky))
}

// MoveMechanical starts a move to the given mechanical angle,
// independent of the reverse flag.
func (r *Rotator) MoveMechanical(position float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.mech.MoveTo(position) {
		r.logger.Warn("Ignoring out of range mechanical position", zap.Float64("position", position))
	}
}

// Sync rewrites the current sky position without motion.
func (r *Rotator) Sync(position float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if position < 0 || position > 360 {
		r.logger.Warn("Ignoring out of range sync position", zap.Float64("position", position))
		return
	}
	r.mech.Sync(r.toMech(position))
}

// Halt stops the rotator where it is.
func (r *Rotator) Halt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mech.Halt()
	r.logger.Info("Rotator halted")
}

// Status returns a telemetry snapshot.
func (r *Rotator) Status() interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RotatorStatus{
		Position:   r.toSky(r.mech.Position()),
		Mechanical: r.mech.Position(),
		Target:     r.toSky(r.mech.Target()),
		Moving:     r.mech.Moving(),
		Reverse:    r.reverse,
	}
}
