package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearAxis(t *testing.T) {
	t.Run("moves toward target without overshooting", func(t *testing.T) {
		a := NewLinearAxis(0, 0, 10000, 1000)

		require.True(t, a.MoveTo(2500))
		assert.True(t, a.Moving())

		a.Tick(time.Second)
		assert.Equal(t, 1000.0, a.Position())
		assert.True(t, a.Moving())

		a.Tick(time.Second)
		a.Tick(time.Second)
		assert.Equal(t, 2500.0, a.Position())
		assert.False(t, a.Moving())
	})

	t.Run("final step snaps exactly onto target", func(t *testing.T) {
		a := NewLinearAxis(0, 0, 100, 30)

		require.True(t, a.MoveTo(100))
		for i := 0; i < 10; i++ {
			a.Tick(time.Second)
		}
		assert.Equal(t, 100.0, a.Position())
		assert.False(t, a.Moving())
	})

	t.Run("rejects out of range target without state change", func(t *testing.T) {
		a := NewLinearAxis(500, 0, 1000, 100)

		assert.False(t, a.MoveTo(1001))
		assert.False(t, a.MoveTo(-1))
		assert.Equal(t, 500.0, a.Position())
		assert.Equal(t, 500.0, a.Target())
		assert.False(t, a.Moving())
	})

	t.Run("retargets mid move without restarting", func(t *testing.T) {
		a := NewLinearAxis(0, 0, 1000, 100)

		require.True(t, a.MoveTo(1000))
		a.Tick(time.Second)
		assert.Equal(t, 100.0, a.Position())

		require.True(t, a.MoveTo(150))
		a.Tick(time.Second)
		assert.Equal(t, 150.0, a.Position())
		assert.False(t, a.Moving())
	})

	t.Run("idle when moving is false position equals target", func(t *testing.T) {
		a := NewLinearAxis(0, 0, 100, 10)
		require.True(t, a.MoveTo(42))
		for i := 0; i < 20; i++ {
			a.Tick(500 * time.Millisecond)
			if !a.Moving() {
				assert.Equal(t, a.Target(), a.Position())
			}
		}
		assert.False(t, a.Moving())
	})
}

func TestAngularAxis(t *testing.T) {
	t.Run("takes the short arc across zero", func(t *testing.T) {
		a := NewAngularAxis(350, 10)

		require.True(t, a.MoveTo(10))
		a.Tick(time.Second)
		assert.InDelta(t, 0.0, a.Position(), 1e-9)

		a.Tick(time.Second)
		assert.InDelta(t, 10.0, a.Position(), 1e-9)
		assert.False(t, a.Moving())
	})

	t.Run("takes the short arc backwards across zero", func(t *testing.T) {
		a := NewAngularAxis(10, 10)

		require.True(t, a.MoveTo(350))
		a.Tick(time.Second)
		assert.InDelta(t, 0.0, a.Position(), 1e-9)

		a.Tick(time.Second)
		assert.InDelta(t, 350.0, a.Position(), 1e-9)
		assert.False(t, a.Moving())
	})

	t.Run("never travels more than 180 degrees", func(t *testing.T) {
		a := NewAngularAxis(0, 45)

		require.True(t, a.MoveTo(270))
		total := 0.0
		prev := a.Position()
		for a.Moving() {
			a.Tick(time.Second)
			step := shortestArc(a.Position() - prev)
			total += step
			prev = a.Position()
		}
		assert.InDelta(t, -90.0, total, 1e-9)
		assert.InDelta(t, 270.0, a.Position(), 1e-9)
	})

	t.Run("position stays within [0,360)", func(t *testing.T) {
		a := NewAngularAxis(355, 3)
		require.True(t, a.MoveTo(20))
		for a.Moving() {
			a.Tick(700 * time.Millisecond)
			assert.GreaterOrEqual(t, a.Position(), 0.0)
			assert.Less(t, a.Position(), 360.0)
		}
	})

	t.Run("accepts 360 as an alias for zero", func(t *testing.T) {
		a := NewAngularAxis(10, 10)
		require.True(t, a.MoveTo(360))
		assert.Equal(t, 0.0, a.Target())
	})

	t.Run("rejects out of range azimuth", func(t *testing.T) {
		a := NewAngularAxis(100, 10)
		assert.False(t, a.MoveTo(360.5))
		assert.False(t, a.MoveTo(-10))
		assert.Equal(t, 100.0, a.Position())
		assert.False(t, a.Moving())
	})
}

func TestAxisHalt(t *testing.T) {
	a := NewAngularAxis(0, 10)
	require.True(t, a.MoveTo(180))
	a.Tick(time.Second)
	pos := a.Position()

	a.Halt()
	assert.False(t, a.Moving())
	assert.Equal(t, pos, a.Position())
	assert.Equal(t, pos, a.Target())

	// Idempotent.
	a.Halt()
	assert.False(t, a.Moving())
	assert.Equal(t, pos, a.Position())
}

func TestAxisSync(t *testing.T) {
	a := NewAngularAxis(120, 10)
	require.True(t, a.Sync(200))
	assert.Equal(t, 200.0, a.Position())
	assert.Equal(t, 200.0, a.Target())
	assert.False(t, a.Moving())

	assert.False(t, a.Sync(400))
	assert.Equal(t, 200.0, a.Position())
}
