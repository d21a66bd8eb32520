package devices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDome(cfg DomeConfig) *Dome {
	return NewDome(cfg, nil)
}

func settle(d interface{ Tick(time.Duration) }, ticks int, dt time.Duration) {
	for i := 0; i < ticks; i++ {
		d.Tick(dt)
	}
}

func TestDomeSlewToAzimuth(t *testing.T) {
	cfg := DefaultDomeConfig()
	cfg.AzimuthSpeed = 10
	d := testDome(cfg)

	t.Run("slews and settles on target", func(t *testing.T) {
		require.Nil(t, d.SlewToAzimuth(90))
		assert.True(t, d.Slewing())

		settle(d, 9, time.Second)
		assert.InDelta(t, 90.0, d.Azimuth(), 1e-9)
		assert.False(t, d.Slewing())
	})

	t.Run("later command supersedes an in-progress slew", func(t *testing.T) {
		require.Nil(t, d.SlewToAzimuth(180))
		d.Tick(2 * time.Second)
		assert.InDelta(t, 110.0, d.Azimuth(), 1e-9)

		// Retarget behind the current position; the dome reverses.
		require.Nil(t, d.SlewToAzimuth(100))
		d.Tick(time.Second)
		assert.InDelta(t, 100.0, d.Azimuth(), 1e-9)
		assert.False(t, d.Slewing())
	})

	t.Run("out of range azimuth is ignored", func(t *testing.T) {
		before := d.Azimuth()
		require.Nil(t, d.SlewToAzimuth(400))
		require.Nil(t, d.SlewToAzimuth(-5))
		assert.Equal(t, before, d.Azimuth())
		assert.False(t, d.Slewing())
	})
}

func TestDomeShortestArcAcrossZero(t *testing.T) {
	cfg := DefaultDomeConfig()
	cfg.AzimuthSpeed = 10
	cfg.HomeAzimuth = 350
	d := testDome(cfg)

	require.Nil(t, d.SlewToAzimuth(10))
	d.Tick(time.Second)
	assert.InDelta(t, 0.0, d.Azimuth(), 1e-9)
	d.Tick(time.Second)
	assert.InDelta(t, 10.0, d.Azimuth(), 1e-9)
}

func TestDomeAltitude(t *testing.T) {
	cfg := DefaultDomeConfig()
	cfg.AltitudeSpeed = 5
	d := testDome(cfg)

	require.Nil(t, d.SlewToAltitude(45))
	settle(d, 9, time.Second)
	assert.InDelta(t, 45.0, d.Altitude(), 1e-9)

	before := d.Altitude()
	require.Nil(t, d.SlewToAltitude(91))
	assert.Equal(t, before, d.Altitude())
	assert.False(t, d.Slewing())
}

func TestDomeShutter(t *testing.T) {
	t.Run("opens and closes on the travel time", func(t *testing.T) {
		cfg := DefaultDomeConfig()
		cfg.ShutterTravel = 4 * time.Second
		d := testDome(cfg)

		assert.Equal(t, ShutterClosed, d.ShutterStatus())
		d.OpenShutter()
		assert.Equal(t, ShutterOpening, d.ShutterStatus())
		assert.True(t, d.Slewing())

		settle(d, 4, time.Second)
		assert.Equal(t, ShutterOpen, d.ShutterStatus())

		d.CloseShutter()
		settle(d, 4, time.Second)
		assert.Equal(t, ShutterClosed, d.ShutterStatus())
	})

	t.Run("abort mid travel faults the shutter", func(t *testing.T) {
		cfg := DefaultDomeConfig()
		cfg.ShutterTravel = 4 * time.Second
		d := testDome(cfg)

		d.OpenShutter()
		d.Tick(time.Second)
		d.AbortSlew()
		assert.Equal(t, ShutterError, d.ShutterStatus())
	})
}

func TestDomeAbortSlewHaltsAxes(t *testing.T) {
	cfg := DefaultDomeConfig()
	cfg.AzimuthSpeed = 10
	d := testDome(cfg)

	require.Nil(t, d.SlewToAzimuth(180))
	d.Tick(3 * time.Second)
	pos := d.Azimuth()

	d.AbortSlew()
	assert.False(t, d.Slewing())
	d.Tick(5 * time.Second)
	assert.Equal(t, pos, d.Azimuth())

	// Idempotent.
	d.AbortSlew()
	assert.Equal(t, pos, d.Azimuth())
}

func TestDomeParkAndHome(t *testing.T) {
	cfg := DefaultDomeConfig()
	cfg.AzimuthSpeed = 90
	cfg.HomeAzimuth = 0
	cfg.ParkAzimuth = 180
	d := testDome(cfg)

	require.Nil(t, d.Park())
	settle(d, 3, time.Second)
	assert.True(t, d.AtPark())
	assert.False(t, d.AtHome())

	require.Nil(t, d.FindHome())
	settle(d, 3, time.Second)
	assert.True(t, d.AtHome())
	assert.False(t, d.AtPark())

	// SetPark adopts the current azimuth.
	d.SetPark()
	assert.True(t, d.AtPark())
}

func TestDomeNotAtHomeWhileMoving(t *testing.T) {
	cfg := DefaultDomeConfig()
	cfg.AzimuthSpeed = 1
	cfg.HomeAzimuth = 0
	d := testDome(cfg)

	assert.True(t, d.AtHome())
	require.Nil(t, d.SlewToAzimuth(0.5))
	assert.False(t, d.AtHome())
}

func TestDomeSyncToAzimuth(t *testing.T) {
	d := testDome(DefaultDomeConfig())

	require.Nil(t, d.SyncToAzimuth(123))
	assert.InDelta(t, 123.0, d.Azimuth(), 1e-9)
	assert.False(t, d.Slewing())
}

func TestDomeSlaved(t *testing.T) {
	t.Run("slave request ignored when dome cannot slave", func(t *testing.T) {
		d := testDome(DefaultDomeConfig())
		d.SetSlaved(true)
		assert.False(t, d.Slaved())
	})

	t.Run("slaved dome refuses manual slews", func(t *testing.T) {
		cfg := DefaultDomeConfig()
		cfg.CanSlave = true
		d := testDome(cfg)

		d.SetSlaved(true)
		require.True(t, d.Slaved())

		err := d.SlewToAzimuth(90)
		require.NotNil(t, err)
		assert.Equal(t, 0x409, err.Number)

		d.SetSlaved(false)
		assert.Nil(t, d.SlewToAzimuth(90))
	})
}
