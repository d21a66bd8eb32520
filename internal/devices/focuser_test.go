package devices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFocuser() *Focuser {
	cfg := DefaultFocuserConfig()
	cfg.Speed = 1000
	// Freeze the temperature model so motion tests are exact.
	cfg.TempSwing = 0
	return NewFocuser(cfg, nil)
}

func TestFocuserMove(t *testing.T) {
	f := testFocuser()
	require.Equal(t, 5000, f.Position())

	t.Run("moves toward the target one tick at a time", func(t *testing.T) {
		f.Move(7000)
		assert.True(t, f.IsMoving())

		f.Tick(time.Second)
		assert.Equal(t, 6000, f.Position())
		assert.True(t, f.IsMoving())

		f.Tick(time.Second)
		assert.Equal(t, 7000, f.Position())
		assert.False(t, f.IsMoving())
	})

	t.Run("out of range target is ignored", func(t *testing.T) {
		f.Move(10001)
		assert.False(t, f.IsMoving())
		assert.Equal(t, 7000, f.Position())

		f.Move(-1)
		assert.False(t, f.IsMoving())
		assert.Equal(t, 7000, f.Position())
	})

	t.Run("halt freezes the position", func(t *testing.T) {
		f.Move(0)
		f.Tick(time.Second)
		pos := f.Position()

		f.Halt()
		assert.False(t, f.IsMoving())
		f.Tick(5 * time.Second)
		assert.Equal(t, pos, f.Position())
	})
}

func TestFocuserReportedLimits(t *testing.T) {
	f := testFocuser()
	assert.True(t, f.Absolute())
	assert.True(t, f.TempCompAvailable())
	assert.Equal(t, 10000, f.MaxStep())
	assert.Equal(t, 1000, f.MaxIncrement())
	assert.Equal(t, 2.0, f.StepSize())

	// MaxIncrement is advisory: a larger move still runs.
	f.Move(9000)
	assert.True(t, f.IsMoving())
}

func TestFocuserTempComp(t *testing.T) {
	cfg := DefaultFocuserConfig()
	cfg.Speed = 1000
	cfg.TempBase = 10
	cfg.TempSwing = 4
	cfg.TempPeriod = 4 * time.Second
	f := NewFocuser(cfg, nil)

	f.SetTempComp(true)
	require.True(t, f.TempComp())
	start := f.Position()

	// A quarter period swings the temperature by the full amplitude,
	// well past the compensation threshold.
	f.Tick(time.Second)
	assert.NotEqual(t, start, int(f.axis.Target()))
}

func TestFocuserTempCompIdleOnly(t *testing.T) {
	cfg := DefaultFocuserConfig()
	cfg.Speed = 10
	cfg.TempSwing = 4
	cfg.TempPeriod = 4 * time.Second
	f := NewFocuser(cfg, nil)
	f.SetTempComp(true)

	f.Move(6000)
	f.Tick(time.Second)
	// Still travelling toward the commanded target, not a comp target.
	assert.Equal(t, 6000.0, f.axis.Target())
}
