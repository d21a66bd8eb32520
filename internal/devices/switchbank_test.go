package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchBank(t *testing.T) {
	s := NewSwitchBank(nil, nil)
	require.Equal(t, 4, s.MaxSwitch())

	t.Run("boolean switch maps on and off to range ends", func(t *testing.T) {
		require.Nil(t, s.SetState(0, true))
		v, err := s.Value(0)
		require.Nil(t, err)
		assert.Equal(t, 1.0, v)

		on, err := s.State(0)
		require.Nil(t, err)
		assert.True(t, on)

		require.Nil(t, s.SetState(0, false))
		on, _ = s.State(0)
		assert.False(t, on)
	})

	t.Run("analog writes clamp into range", func(t *testing.T) {
		require.Nil(t, s.SetValue(2, 150))
		v, _ := s.Value(2)
		assert.Equal(t, 100.0, v)

		require.Nil(t, s.SetValue(2, -10))
		v, _ = s.Value(2)
		assert.Equal(t, 0.0, v)
	})

	t.Run("read-only switch refuses writes", func(t *testing.T) {
		err := s.SetState(3, true)
		require.NotNil(t, err)
		assert.Equal(t, 0x400, err.Number)

		err = s.SetValue(3, 5)
		require.NotNil(t, err)
		assert.Equal(t, 0x400, err.Number)
	})

	t.Run("async writes need the async capability", func(t *testing.T) {
		canAsync, err := s.CanAsync(2)
		require.Nil(t, err)
		require.True(t, canAsync)

		require.Nil(t, s.SetValueAsync(2, 40))
		v, _ := s.Value(2)
		assert.Equal(t, 40.0, v)

		done, err := s.StateChangeComplete(2)
		require.Nil(t, err)
		assert.True(t, done)

		err = s.SetStateAsync(0, true)
		require.NotNil(t, err)
		assert.Equal(t, 0x400, err.Number)
	})

	t.Run("out of range id is an invalid value error", func(t *testing.T) {
		_, err := s.Value(4)
		require.NotNil(t, err)
		assert.Equal(t, 0x401, err.Number)

		_, err = s.Value(-1)
		require.NotNil(t, err)
		assert.Equal(t, 0x401, err.Number)
	})

	t.Run("rename sticks", func(t *testing.T) {
		require.Nil(t, s.SetName(1, "Guider Power"))
		name, err := s.Name(1)
		require.Nil(t, err)
		assert.Equal(t, "Guider Power", name)
	})
}
