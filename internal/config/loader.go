// Package config loads the daemon configuration from an optional YAML
// file with environment variable overrides, layered over built-in
// defaults so a bare invocation runs a complete simulated observatory.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hofis/alpacad/internal/devices"
	"github.com/hofis/alpacad/internal/telemetry"
	"github.com/hofis/alpacad/pkg/alpaca"
)

// Config is the full daemon configuration.
type Config struct {
	Alpaca    alpaca.Config    `mapstructure:"alpaca"`
	Devices   DevicesConfig    `mapstructure:"devices"`
	Telemetry telemetry.Config `mapstructure:"telemetry"`
	Motion    MotionConfig     `mapstructure:"motion"`
	Log       LogConfig        `mapstructure:"log"`
}

// DevicesConfig holds the per-device settings.
type DevicesConfig struct {
	Dome                devices.DomeConfig                `mapstructure:"dome"`
	Rotator             devices.RotatorConfig             `mapstructure:"rotator"`
	Focuser             devices.FocuserConfig             `mapstructure:"focuser"`
	FilterWheel         devices.FilterWheelConfig         `mapstructure:"filterwheel"`
	CoverCalibrator     devices.CoverCalibratorConfig     `mapstructure:"covercalibrator"`
	Switches            []devices.SwitchSpec              `mapstructure:"switches"`
	ObservingConditions devices.ObservingConditionsConfig `mapstructure:"observingconditions"`
	SafetyMonitor       devices.SafetyMonitorConfig       `mapstructure:"safetymonitor"`
}

// MotionConfig holds the simulation tick settings.
type MotionConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Default returns the built-in configuration: every device present
// with its simulator defaults, telemetry disabled.
func Default() Config {
	return Config{
		Devices: DevicesConfig{
			Dome:                devices.DefaultDomeConfig(),
			Rotator:             devices.DefaultRotatorConfig(),
			Focuser:             devices.DefaultFocuserConfig(),
			FilterWheel:         devices.DefaultFilterWheelConfig(),
			CoverCalibrator:     devices.DefaultCoverCalibratorConfig(),
			Switches:            devices.DefaultSwitchSpecs(),
			ObservingConditions: devices.DefaultObservingConditionsConfig(),
			SafetyMonitor:       devices.DefaultSafetyMonitorConfig(),
		},
		Motion: MotionConfig{TickInterval: 100 * time.Millisecond},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the configuration file at path, if given, and applies
// environment overrides with the ALPACAD_ prefix. Values absent from
// both keep their defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ALPACAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and fills in remaining defaults.
func (c *Config) Validate() error {
	if err := c.Alpaca.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if c.Motion.TickInterval <= 0 {
		c.Motion.TickInterval = 100 * time.Millisecond
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}
