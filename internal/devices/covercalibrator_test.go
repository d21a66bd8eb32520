package devices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoverCal() *CoverCalibrator {
	cfg := DefaultCoverCalibratorConfig()
	cfg.CoverTravel = 4 * time.Second
	cfg.RampDuration = 2 * time.Second
	return NewCoverCalibrator(cfg, nil)
}

func TestCalibratorRamp(t *testing.T) {
	cc := testCoverCal()

	t.Run("starts off", func(t *testing.T) {
		assert.Equal(t, CalibratorOff, cc.CalibratorStatus())
		level, err := cc.Brightness()
		require.Nil(t, err)
		assert.Equal(t, 0, level)
	})

	t.Run("ramps to the requested level then reads ready", func(t *testing.T) {
		require.Nil(t, cc.CalibratorOn(200))
		assert.Equal(t, CalibratorNotReady, cc.CalibratorStatus())
		assert.True(t, cc.CalibratorChanging())

		cc.Tick(time.Second)
		level, _ := cc.Brightness()
		assert.Equal(t, 100, level)

		cc.Tick(time.Second)
		level, _ = cc.Brightness()
		assert.Equal(t, 200, level)
		assert.Equal(t, CalibratorReady, cc.CalibratorStatus())
		assert.False(t, cc.CalibratorChanging())
	})

	t.Run("ramps back down to off", func(t *testing.T) {
		require.Nil(t, cc.CalibratorOff())
		assert.Equal(t, CalibratorNotReady, cc.CalibratorStatus())

		settle(cc, 2, time.Second)
		level, _ := cc.Brightness()
		assert.Equal(t, 0, level)
		assert.Equal(t, CalibratorOff, cc.CalibratorStatus())
	})

	t.Run("out of range brightness is ignored", func(t *testing.T) {
		require.Nil(t, cc.CalibratorOn(256))
		assert.Equal(t, CalibratorOff, cc.CalibratorStatus())
		level, _ := cc.Brightness()
		assert.Equal(t, 0, level)
	})
}

func TestCoverTravel(t *testing.T) {
	cc := testCoverCal()

	assert.Equal(t, CoverClosed, cc.CoverStatus())

	require.Nil(t, cc.OpenCover())
	assert.Equal(t, CoverMoving, cc.CoverStatus())
	assert.True(t, cc.CoverMoving())

	settle(cc, 4, time.Second)
	assert.Equal(t, CoverOpen, cc.CoverStatus())

	require.Nil(t, cc.CloseCover())
	settle(cc, 4, time.Second)
	assert.Equal(t, CoverClosed, cc.CoverStatus())
}

func TestHaltCoverLeavesPositionUnknown(t *testing.T) {
	cc := testCoverCal()

	require.Nil(t, cc.OpenCover())
	cc.Tick(time.Second)
	require.Nil(t, cc.HaltCover())
	assert.Equal(t, CoverUnknown, cc.CoverStatus())

	// Driving again recovers.
	require.Nil(t, cc.CloseCover())
	settle(cc, 4, time.Second)
	assert.Equal(t, CoverClosed, cc.CoverStatus())
}

func TestCoverCalWithoutHardware(t *testing.T) {
	cfg := DefaultCoverCalibratorConfig()
	cfg.HasCover = false
	cfg.HasCalibrator = false
	cc := NewCoverCalibrator(cfg, nil)

	assert.Equal(t, CoverNotPresent, cc.CoverStatus())
	assert.Equal(t, CalibratorNotPresent, cc.CalibratorStatus())

	_, err := cc.Brightness()
	require.NotNil(t, err)
	assert.Equal(t, 0x400, err.Number)

	assert.NotNil(t, cc.OpenCover())
	assert.NotNil(t, cc.CalibratorOn(10))
}
