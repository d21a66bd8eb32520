// Package devices implements the observatory hardware behind the
// protocol adapters: dome, rotator, focuser, filter wheel, cover
// calibrator, switch bank, observing conditions and safety monitor.
// Every device guards its state with one lock shared by the motion
// ticker and the HTTP handlers.
package devices

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/motion"
	"github.com/hofis/alpacad/pkg/alpaca"
)

// ShutterState is the dome shutter state as reported on the wire.
type ShutterState int

const (
	ShutterOpen ShutterState = iota
	ShutterClosed
	ShutterOpening
	ShutterClosing
	ShutterError
)

// DomeConfig holds the dome geometry and drive parameters.
type DomeConfig struct {
	AzimuthSpeed  float64       `mapstructure:"azimuth_speed"`
	AltitudeSpeed float64       `mapstructure:"altitude_speed"`
	ShutterTravel time.Duration `mapstructure:"shutter_travel"`
	HomeAzimuth   float64       `mapstructure:"home_azimuth"`
	ParkAzimuth   float64       `mapstructure:"park_azimuth"`
	CanSlave      bool          `mapstructure:"can_slave"`
}

// DefaultDomeConfig returns the simulator defaults.
func DefaultDomeConfig() DomeConfig {
	return DomeConfig{
		AzimuthSpeed:  10,
		AltitudeSpeed: 5,
		ShutterTravel: 10 * time.Second,
		HomeAzimuth:   0,
		ParkAzimuth:   180,
	}
}

// Dome drives an azimuth ring, a shutter altitude axis and the shutter
// itself. Home and park are positional: the dome is at home or park
// whenever the azimuth is within one degree of the respective mark and
// the ring is idle.
type Dome struct {
	mu     sync.Mutex
	logger *zap.Logger

	azimuth  *motion.Axis
	altitude *motion.Axis
	shutter  *motion.Door

	homeAzimuth float64
	parkAzimuth float64
	canSlave    bool
	slaved      bool
}

// DomeStatus is a point-in-time snapshot for telemetry.
type DomeStatus struct {
	Azimuth  float64 `json:"azimuth"`
	Altitude float64 `json:"altitude"`
	Shutter  string  `json:"shutter"`
	Slewing  bool    `json:"slewing"`
	AtHome   bool    `json:"at_home"`
	AtPark   bool    `json:"at_park"`
	Slaved   bool    `json:"slaved"`
}

// NewDome creates a dome with the shutter closed and the azimuth at
// the home position.
func NewDome(cfg DomeConfig, logger *zap.Logger) *Dome {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dome{
		logger:      logger.With(zap.String("device", "dome")),
		azimuth:     motion.NewAngularAxis(cfg.HomeAzimuth, cfg.AzimuthSpeed),
		altitude:    motion.NewLinearAxis(0, 0, 90, cfg.AltitudeSpeed),
		shutter:     motion.NewDoor(cfg.ShutterTravel, motion.DoorClosed),
		homeAzimuth: cfg.HomeAzimuth,
		parkAzimuth: cfg.ParkAzimuth,
		canSlave:    cfg.CanSlave,
	}
}

// Tick advances all dome mechanisms.
func (d *Dome) Tick(elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.azimuth.Tick(elapsed)
	d.altitude.Tick(elapsed)
	d.shutter.Tick(elapsed)
}

func (d *Dome) Azimuth() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.azimuth.Position()
}

func (d *Dome) Altitude() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.altitude.Position()
}

func (d *Dome) AtHome() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nearLocked(d.homeAzimuth)
}

func (d *Dome) AtPark() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nearLocked(d.parkAzimuth)
}

// nearLocked reports whether the idle azimuth ring is within one
// degree of the mark.
func (d *Dome) nearLocked(mark float64) bool {
	if d.azimuth.Moving() {
		return false
	}
	diff := math.Abs(d.azimuth.Position() - mark)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= 1
}

func (d *Dome) Slewing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slewingLocked()
}

func (d *Dome) slewingLocked() bool {
	return d.azimuth.Moving() || d.altitude.Moving() || d.shutter.Moving()
}

func (d *Dome) ShutterStatus() ShutterState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return shutterState(d.shutter.State())
}

func shutterState(s motion.DoorState) ShutterState {
	switch s {
	case motion.DoorOpen:
		return ShutterOpen
	case motion.DoorClosed:
		return ShutterClosed
	case motion.DoorOpening:
		return ShutterOpening
	case motion.DoorClosing:
		return ShutterClosing
	default:
		return ShutterError
	}
}

func (d *Dome) Slaved() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slaved
}

// SetSlaved sets the slaving flag. Domes that cannot slave ignore the
// request and keep reporting false.
func (d *Dome) SetSlaved(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v && !d.canSlave {
		d.logger.Warn("Ignoring slave request, dome cannot slave")
		return
	}
	d.slaved = v
}

// Capability flags. Slaving is the only configurable one.
func (d *Dome) CanFindHome() bool    { return true }
func (d *Dome) CanPark() bool        { return true }
func (d *Dome) CanSetAltitude() bool { return true }
func (d *Dome) CanSetAzimuth() bool  { return true }
func (d *Dome) CanSetPark() bool     { return true }
func (d *Dome) CanSetShutter() bool  { return true }
func (d *Dome) CanSyncAzimuth() bool { return true }

func (d *Dome) CanSlave() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canSlave
}

// SlewToAzimuth starts an azimuth slew. A slaved dome refuses manual
// slews; out of range azimuths are logged and ignored. A later command
// supersedes an in-progress slew.
func (d *Dome) SlewToAzimuth(az float64) *alpaca.DeviceError {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slaved {
		return alpaca.NewDeviceError(alpaca.ErrInvalidWhileSlaved, "Cannot slew while slaved")
	}
	if !d.azimuth.MoveTo(az) {
		d.logger.Warn("Ignoring out of range azimuth", zap.Float64("azimuth", az))
		return nil
	}
	d.logger.Info("Slewing to azimuth", zap.Float64("azimuth", az))
	return nil
}

// SlewToAltitude starts a shutter altitude slew.
func (d *Dome) SlewToAltitude(alt float64) *alpaca.DeviceError {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slaved {
		return alpaca.NewDeviceError(alpaca.ErrInvalidWhileSlaved, "Cannot slew while slaved")
	}
	if !d.altitude.MoveTo(alt) {
		d.logger.Warn("Ignoring out of range altitude", zap.Float64("altitude", alt))
		return nil
	}
	d.logger.Info("Slewing to altitude", zap.Float64("altitude", alt))
	return nil
}

// SyncToAzimuth rewrites the current azimuth without motion.
func (d *Dome) SyncToAzimuth(az float64) *alpaca.DeviceError {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.azimuth.Sync(az) {
		d.logger.Warn("Ignoring out of range sync azimuth", zap.Float64("azimuth", az))
	}
	return nil
}

// Park slews the dome to the park azimuth.
func (d *Dome) Park() *alpaca.DeviceError {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slaved {
		return alpaca.NewDeviceError(alpaca.ErrInvalidWhileSlaved, "Cannot park while slaved")
	}
	d.azimuth.MoveTo(d.parkAzimuth)
	d.logger.Info("Parking dome", zap.Float64("azimuth", d.parkAzimuth))
	return nil
}

// FindHome slews the dome to the home azimuth.
func (d *Dome) FindHome() *alpaca.DeviceError {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slaved {
		return alpaca.NewDeviceError(alpaca.ErrInvalidWhileSlaved, "Cannot find home while slaved")
	}
	d.azimuth.MoveTo(d.homeAzimuth)
	d.logger.Info("Finding home", zap.Float64("azimuth", d.homeAzimuth))
	return nil
}

// SetPark records the current azimuth as the park position.
func (d *Dome) SetPark() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parkAzimuth = d.azimuth.Position()
	d.logger.Info("Park position set", zap.Float64("azimuth", d.parkAzimuth))
}

// AbortSlew halts both axes immediately. A shutter caught mid-travel
// is left in the error state.
func (d *Dome) AbortSlew() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.azimuth.Halt()
	d.altitude.Halt()
	d.shutter.Abort()
	d.logger.Info("Slew aborted")
}

// OpenShutter starts opening the shutter.
func (d *Dome) OpenShutter() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shutter.Open()
	d.logger.Info("Opening shutter")
}

// CloseShutter starts closing the shutter.
func (d *Dome) CloseShutter() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shutter.Close()
	d.logger.Info("Closing shutter")
}

// Status returns a telemetry snapshot.
func (d *Dome) Status() interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DomeStatus{
		Azimuth:  d.azimuth.Position(),
		Altitude: d.altitude.Position(),
		Shutter:  d.shutter.State().String(),
		Slewing:  d.slewingLocked(),
		AtHome:   d.nearLocked(d.homeAzimuth),
		AtPark:   d.nearLocked(d.parkAzimuth),
		Slaved:   d.slaved,
	}
}
