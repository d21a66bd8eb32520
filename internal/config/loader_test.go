package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":11111", cfg.Alpaca.Server.ListenAddress)
	assert.Equal(t, 100*time.Millisecond, cfg.Motion.TickInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Len(t, cfg.Devices.Switches, 4)
	assert.Equal(t, 8, cfg.Devices.FilterWheel.Slots)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Devices.Dome.AzimuthSpeed)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alpacad.yaml")
	content := `
alpaca:
  server:
    listen_address: ":8080"
devices:
  dome:
    azimuth_speed: 4
  filterwheel:
    slots: 5
motion:
  tick_interval: 250ms
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Alpaca.Server.ListenAddress)
	assert.Equal(t, 4.0, cfg.Devices.Dome.AzimuthSpeed)
	assert.Equal(t, 5, cfg.Devices.FilterWheel.Slots)
	assert.Equal(t, 250*time.Millisecond, cfg.Motion.TickInterval)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, 180.0, cfg.Devices.Dome.ParkAzimuth)
	assert.Equal(t, 10000, cfg.Devices.Focuser.MaxStep)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/alpacad.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsBadLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())
}
