package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoor(t *testing.T) {
	t.Run("opens after the travel time", func(t *testing.T) {
		d := NewDoor(5*time.Second, DoorClosed)

		d.Open()
		assert.Equal(t, DoorOpening, d.State())
		assert.True(t, d.Moving())

		d.Tick(3 * time.Second)
		assert.Equal(t, DoorOpening, d.State())

		d.Tick(2 * time.Second)
		assert.Equal(t, DoorOpen, d.State())
		assert.False(t, d.Moving())
	})

	t.Run("closes after the travel time", func(t *testing.T) {
		d := NewDoor(5*time.Second, DoorOpen)
		d.Close()
		d.Tick(5 * time.Second)
		assert.Equal(t, DoorClosed, d.State())
	})

	t.Run("limit sensor finishes travel early", func(t *testing.T) {
		atLimit := false
		d := NewDoor(10*time.Second, DoorClosed)
		d.SetSensors(func() bool { return atLimit }, nil)

		d.Open()
		d.Tick(time.Second)
		assert.Equal(t, DoorOpening, d.State())

		atLimit = true
		d.Tick(time.Second)
		assert.Equal(t, DoorOpen, d.State())
	})

	t.Run("abort mid travel faults the mechanism", func(t *testing.T) {
		d := NewDoor(5*time.Second, DoorClosed)
		d.Open()
		d.Tick(time.Second)

		d.Abort()
		assert.Equal(t, DoorError, d.State())

		// Driving again recovers.
		d.Open()
		d.Tick(5 * time.Second)
		assert.Equal(t, DoorOpen, d.State())
	})

	t.Run("abort while idle is a no-op", func(t *testing.T) {
		d := NewDoor(5*time.Second, DoorClosed)
		d.Abort()
		assert.Equal(t, DoorClosed, d.State())
	})

	t.Run("halt mid travel leaves position unknown", func(t *testing.T) {
		d := NewDoor(5*time.Second, DoorOpen)
		d.Close()
		d.Tick(time.Second)

		d.Halt()
		assert.Equal(t, DoorUnknown, d.State())

		d.Halt()
		assert.Equal(t, DoorUnknown, d.State())
	})

	t.Run("reopening while opening does not restart travel", func(t *testing.T) {
		d := NewDoor(5*time.Second, DoorClosed)
		d.Open()
		d.Tick(4 * time.Second)
		d.Open()
		d.Tick(time.Second)
		assert.Equal(t, DoorOpen, d.State())
	})
}
