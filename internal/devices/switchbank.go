package devices

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/pkg/alpaca"
)

// SwitchSpec describes one switch in the bank: its range, resolution
// and write capabilities. A switch whose range is [0,1] with step 1
// behaves as a relay; anything else is an analog output.
type SwitchSpec struct {
	Name        string  `mapstructure:"name"`
	Description string  `mapstructure:"description"`
	Min         float64 `mapstructure:"min"`
	Max         float64 `mapstructure:"max"`
	Step        float64 `mapstructure:"step"`
	Value       float64 `mapstructure:"value"`
	CanWrite    bool    `mapstructure:"can_write"`
	CanAsync    bool    `mapstructure:"can_async"`
}

// DefaultSwitchSpecs returns the simulator's switch complement.
func DefaultSwitchSpecs() []SwitchSpec {
	return []SwitchSpec{
		{Name: "Mount Power", Description: "Mount 12V relay", Min: 0, Max: 1, Step: 1, CanWrite: true},
		{Name: "Camera Power", Description: "Camera 12V relay", Min: 0, Max: 1, Step: 1, CanWrite: true},
		{Name: "Dew Heater", Description: "Dew heater PWM duty", Min: 0, Max: 100, Step: 1, CanWrite: true, CanAsync: true},
		{Name: "Supply Voltage", Description: "Battery voltage readout", Min: 0, Max: 15, Step: 0.1, Value: 12.6},
	}
}

// SwitchBank exposes a fixed set of controllable and read-only
// switches. Writes to an analog switch clamp into its range; boolean
// writes snap to the minimum or maximum. Async writes complete
// immediately, so state changes are always complete.
type SwitchBank struct {
	mu       sync.Mutex
	logger   *zap.Logger
	switches []SwitchSpec
}

// SwitchBankStatus is a point-in-time snapshot for telemetry.
type SwitchBankStatus struct {
	Values map[string]float64 `json:"values"`
}

// NewSwitchBank creates a bank from the given specs, or the defaults
// when none are configured.
func NewSwitchBank(specs []SwitchSpec, logger *zap.Logger) *SwitchBank {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(specs) == 0 {
		specs = DefaultSwitchSpecs()
	}
	owned := make([]SwitchSpec, len(specs))
	copy(owned, specs)
	for i := range owned {
		if owned[i].Max <= owned[i].Min {
			owned[i].Max = owned[i].Min + 1
		}
		if owned[i].Step <= 0 {
			owned[i].Step = 1
		}
		owned[i].Value = clamp(owned[i].Value, owned[i].Min, owned[i].Max)
	}
	return &SwitchBank{
		logger:   logger.With(zap.String("device", "switch")),
		switches: owned,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// MaxSwitch returns the number of switches in the bank.
func (s *SwitchBank) MaxSwitch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.switches)
}

func (s *SwitchBank) checkLocked(id int) *alpaca.DeviceError {
	if id < 0 || id >= len(s.switches) {
		return alpaca.InvalidValueError("Switch id %d out of range 0 to %d", id, len(s.switches)-1)
	}
	return nil
}

// CanWrite reports whether the switch accepts writes.
func (s *SwitchBank) CanWrite(id int) (bool, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return false, err
	}
	return s.switches[id].CanWrite, nil
}

// CanAsync reports whether the switch accepts asynchronous writes.
func (s *SwitchBank) CanAsync(id int) (bool, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return false, err
	}
	return s.switches[id].CanAsync, nil
}

// Name returns the switch name.
func (s *SwitchBank) Name(id int) (string, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return "", err
	}
	return s.switches[id].Name, nil
}

// SetName renames a switch.
func (s *SwitchBank) SetName(id int, name string) *alpaca.DeviceError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return err
	}
	s.switches[id].Name = name
	return nil
}

// Description returns the switch description.
func (s *SwitchBank) Description(id int) (string, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return "", err
	}
	return s.switches[id].Description, nil
}

// Value returns the switch value.
func (s *SwitchBank) Value(id int) (float64, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return 0, err
	}
	return s.switches[id].Value, nil
}

// State reports the switch as a boolean: on whenever the value is
// above the minimum.
func (s *SwitchBank) State(id int) (bool, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return false, err
	}
	return s.switches[id].Value > s.switches[id].Min, nil
}

// MinValue returns the lower bound of the switch range.
func (s *SwitchBank) MinValue(id int) (float64, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return 0, err
	}
	return s.switches[id].Min, nil
}

// MaxValue returns the upper bound of the switch range.
func (s *SwitchBank) MaxValue(id int) (float64, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return 0, err
	}
	return s.switches[id].Max, nil
}

// Step returns the switch value resolution.
func (s *SwitchBank) Step(id int) (float64, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return 0, err
	}
	return s.switches[id].Step, nil
}

// SetState sets a boolean switch: on maps to the maximum value, off to
// the minimum.
func (s *SwitchBank) SetState(id int, on bool) *alpaca.DeviceError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return err
	}
	sw := &s.switches[id]
	if !sw.CanWrite {
		return alpaca.NotImplementedError("SetSwitch")
	}
	if on {
		sw.Value = sw.Max
	} else {
		sw.Value = sw.Min
	}
	s.logger.Info("Switch set", zap.Int("id", id), zap.Bool("on", on))
	return nil
}

// SetValue sets an analog switch, clamping into its range.
func (s *SwitchBank) SetValue(id int, value float64) *alpaca.DeviceError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return err
	}
	sw := &s.switches[id]
	if !sw.CanWrite {
		return alpaca.NotImplementedError("SetSwitchValue")
	}
	sw.Value = clamp(value, sw.Min, sw.Max)
	s.logger.Info("Switch value set", zap.Int("id", id), zap.Float64("value", sw.Value))
	return nil
}

// SetStateAsync sets a boolean switch through the asynchronous
// interface. The change completes immediately.
func (s *SwitchBank) SetStateAsync(id int, on bool) *alpaca.DeviceError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return err
	}
	sw := &s.switches[id]
	if !sw.CanAsync {
		return alpaca.NotImplementedError("SetAsync")
	}
	if on {
		sw.Value = sw.Max
	} else {
		sw.Value = sw.Min
	}
	return nil
}

// SetValueAsync sets an analog switch through the asynchronous
// interface. The change completes immediately.
func (s *SwitchBank) SetValueAsync(id int, value float64) *alpaca.DeviceError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return err
	}
	sw := &s.switches[id]
	if !sw.CanAsync {
		return alpaca.NotImplementedError("SetAsyncValue")
	}
	sw.Value = clamp(value, sw.Min, sw.Max)
	return nil
}

// StateChangeComplete reports whether the last asynchronous change has
// finished. Changes complete immediately, so this is always true for a
// valid id.
func (s *SwitchBank) StateChangeComplete(id int) (bool, *alpaca.DeviceError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(id); err != nil {
		return false, err
	}
	return true, nil
}

// Status returns a telemetry snapshot.
func (s *SwitchBank) Status() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := make(map[string]float64, len(s.switches))
	for _, sw := range s.switches {
		values[sw.Name] = sw.Value
	}
	return SwitchBankStatus{Values: values}
}
