package devices

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/motion"
	"github.com/hofis/alpacad/pkg/alpaca"
)

// CoverState is the cover position as reported on the wire.
type CoverState int

const (
	CoverNotPresent CoverState = iota
	CoverClosed
	CoverMoving
	CoverOpen
	CoverUnknown
	CoverError
)

// CalibratorState is the calibrator panel state as reported on the
// wire.
type CalibratorState int

const (
	CalibratorNotPresent CalibratorState = iota
	CalibratorOff
	CalibratorNotReady
	CalibratorReady
	CalibratorUnknown
	CalibratorError
)

// CoverCalibratorConfig holds the panel and cover parameters.
type CoverCalibratorConfig struct {
	MaxBrightness int           `mapstructure:"max_brightness"`
	CoverTravel   time.Duration `mapstructure:"cover_travel"`
	RampDuration  time.Duration `mapstructure:"ramp_duration"`
	HasCover      bool          `mapstructure:"has_cover"`
	HasCalibrator bool          `mapstructure:"has_calibrator"`
}

// DefaultCoverCalibratorConfig returns the simulator defaults.
func DefaultCoverCalibratorConfig() CoverCalibratorConfig {
	return CoverCalibratorConfig{
		MaxBrightness: 255,
		CoverTravel:   5 * time.Second,
		RampDuration:  2 * time.Second,
		HasCover:      true,
		HasCalibrator: true,
	}
}

// CoverCalibrator combines a motorized dust cover with an electro-
// luminescent flat panel. The panel brightness ramps toward its target
// over the configured duration; the panel is Ready once the ramp has
// settled on a non-zero level and Off once it has settled on zero.
type CoverCalibrator struct {
	mu     sync.Mutex
	logger *zap.Logger

	ramp          *motion.Ramp
	cover         *motion.Door
	hasCover      bool
	hasCalibrator bool
}

// CoverCalibratorStatus is a point-in-time snapshot for telemetry.
type CoverCalibratorStatus struct {
	Brightness int    `json:"brightness"`
	Calibrator string `json:"calibrator"`
	Cover      string `json:"cover"`
}

// NewCoverCalibrator creates the device with the cover closed and the
// panel off.
func NewCoverCalibrator(cfg CoverCalibratorConfig, logger *zap.Logger) *CoverCalibrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoverCalibrator{
		logger:        logger.With(zap.String("device", "covercalibrator")),
		ramp:          motion.NewRamp(cfg.MaxBrightness, cfg.RampDuration),
		cover:         motion.NewDoor(cfg.CoverTravel, motion.DoorClosed),
		hasCover:      cfg.HasCover,
		hasCalibrator: cfg.HasCalibrator,
	}
}

// Tick advances the ramp and the cover.
func (cc *CoverCalibrator) Tick(elapsed time.Duration) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.ramp.Tick(elapsed)
	cc.cover.Tick(elapsed)
}

// Brightness returns the current panel brightness.
func (cc *CoverCalibrator) Brightness() (int, *alpaca.DeviceError) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.hasCalibrator {
		return 0, alpaca.NotImplementedError("Brightness")
	}
	return cc.ramp.Level(), nil
}

// MaxBrightness returns the full-scale panel brightness.
func (cc *CoverCalibrator) MaxBrightness() (int, *alpaca.DeviceError) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.hasCalibrator {
		return 0, alpaca.NotImplementedError("MaxBrightness")
	}
	return cc.ramp.Max(), nil
}

// CalibratorStatus classifies the panel state.
func (cc *CoverCalibrator) CalibratorStatus() CalibratorState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.calibratorStateLocked()
}

func (cc *CoverCalibrator) calibratorStateLocked() CalibratorState {
	switch {
	case !cc.hasCalibrator:
		return CalibratorNotPresent
	case cc.ramp.Changing():
		return CalibratorNotReady
	case cc.ramp.Target() == 0:
		return CalibratorOff
	default:
		return CalibratorReady
	}
}

// CalibratorChanging reports whether the panel is ramping.
func (cc *CoverCalibrator) CalibratorChanging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.ramp.Changing()
}

// CalibratorOn ramps the panel toward the given brightness. Out of
// range levels are logged and ignored.
func (cc *CoverCalibrator) CalibratorOn(brightness int) *alpaca.DeviceError {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.hasCalibrator {
		return alpaca.NotImplementedError("CalibratorOn")
	}
	if !cc.ramp.SetTarget(brightness) {
		cc.logger.Warn("Ignoring out of range brightness", zap.Int("brightness", brightness))
		return nil
	}
	cc.logger.Info("Calibrator ramping", zap.Int("brightness", brightness))
	return nil
}

// CalibratorOff ramps the panel down to zero.
func (cc *CoverCalibrator) CalibratorOff() *alpaca.DeviceError {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.hasCalibrator {
		return alpaca.NotImplementedError("CalibratorOff")
	}
	cc.ramp.SetTarget(0)
	cc.logger.Info("Calibrator turning off")
	return nil
}

// CoverStatus classifies the cover position.
func (cc *CoverCalibrator) CoverStatus() CoverState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.coverStateLocked()
}

func (cc *CoverCalibrator) coverStateLocked() CoverState {
	if !cc.hasCover {
		return CoverNotPresent
	}
	switch cc.cover.State() {
	case motion.DoorOpen:
		return CoverOpen
	case motion.DoorClosed:
		return CoverClosed
	case motion.DoorOpening, motion.DoorClosing:
		return CoverMoving
	case motion.DoorUnknown:
		return CoverUnknown
	default:
		return CoverError
	}
}

// CoverMoving reports whether the cover is in travel.
func (cc *CoverCalibrator) CoverMoving() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cover.Moving()
}

// OpenCover starts opening the cover.
func (cc *CoverCalibrator) OpenCover() *alpaca.DeviceError {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.hasCover {
		return alpaca.NotImplementedError("OpenCover")
	}
	cc.cover.Open()
	cc.logger.Info("Opening cover")
	return nil
}

// CloseCover starts closing the cover.
func (cc *CoverCalibrator) CloseCover() *alpaca.DeviceError {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.hasCover {
		return alpaca.NotImplementedError("CloseCover")
	}
	cc.cover.Close()
	cc.logger.Info("Closing cover")
	return nil
}

// HaltCover stops the cover mid-travel, leaving its position unknown.
func (cc *CoverCalibrator) HaltCover() *alpaca.DeviceError {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.hasCover {
		return alpaca.NotImplementedError("HaltCover")
	}
	cc.cover.Halt()
	cc.logger.Info("Cover halted")
	return nil
}

// Status returns a telemetry snapshot.
func (cc *CoverCalibrator) Status() interface{} {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return CoverCalibratorStatus{
		Brightness: cc.ramp.Level(),
		Calibrator: calibratorStateName(cc.calibratorStateLocked()),
		Cover:      cc.cover.State().String(),
	}
}

func calibratorStateName(s CalibratorState) string {
	switch s {
	case CalibratorNotPresent:
		return "not_present"
	case CalibratorOff:
		return "off"
	case CalibratorNotReady:
		return "not_ready"
	case CalibratorReady:
		return "ready"
	case CalibratorUnknown:
		return "unknown"
	default:
		return "error"
	}
}
