package alpaca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentity(t *testing.T) {
	t.Run("unique id is stable", func(t *testing.T) {
		a := NewIdentity("Observatory Dome", "dome", 0)
		b := NewIdentity("Observatory Dome", "dome", 0)
		assert.Equal(t, a.UniqueID, b.UniqueID)
		assert.NotEmpty(t, a.UniqueID)
	})

	t.Run("distinct devices get distinct ids", func(t *testing.T) {
		a := NewIdentity("Observatory Dome", "dome", 0)
		b := NewIdentity("Observatory Dome", "dome", 1)
		c := NewIdentity("Field Rotator", "rotator", 0)
		assert.NotEqual(t, a.UniqueID, b.UniqueID)
		assert.NotEqual(t, a.UniqueID, c.UniqueID)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("list is ordered by type then number", func(t *testing.T) {
		r := NewRegistry()
		r.Add(NewIdentity("Switch Bank", "switch", 0))
		r.Add(NewIdentity("Dome B", "dome", 1))
		r.Add(NewIdentity("Dome A", "dome", 0))

		list := r.List()
		require.Len(t, list, 3)
		assert.Equal(t, "dome", list[0].Type)
		assert.Equal(t, 0, list[0].Number)
		assert.Equal(t, "dome", list[1].Type)
		assert.Equal(t, 1, list[1].Number)
		assert.Equal(t, "switch", list[2].Type)
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		r := NewRegistry()
		id := NewIdentity("Observatory Dome", "dome", 0)
		r.Add(id)
		r.Add(id)
		assert.Equal(t, 2, r.Count())
		assert.Len(t, r.List(), 2)
	})

	t.Run("remove", func(t *testing.T) {
		r := NewRegistry()
		r.Add(NewIdentity("Observatory Dome", "dome", 0))
		r.Add(NewIdentity("Field Rotator", "rotator", 0))

		assert.True(t, r.Remove("dome", 0))
		assert.False(t, r.Remove("dome", 0))
		assert.Equal(t, 1, r.Count())
	})

	t.Run("list copies", func(t *testing.T) {
		r := NewRegistry()
		r.Add(NewIdentity("Observatory Dome", "dome", 0))
		list := r.List()
		list[0].Name = "mutated"
		assert.Equal(t, "Observatory Dome", r.List()[0].Name)
	})
}
