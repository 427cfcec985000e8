package kura

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeRegistry(t *testing.T) {
	posT := reflect.TypeFor[Position]()
	velT := reflect.TypeFor[Velocity]()

	t.Run("create and join", func(t *testing.T) {
		r := newCompositeRegistry()
		r.create(1, []EntityID{5, 6}, []reflect.Type{posT, velT})
		require.True(t, r.exists(1))

		assert.True(t, r.join(1, 7, posT))
		assert.False(t, r.join(2, 8, posT))
		assert.False(t, r.exists(2))

		members, ok := r.members(1)
		require.True(t, ok)
		assert.Equal(t, []EntityID{5, 6, 7}, members)
	})

	t.Run("leave dissolves at zero", func(t *testing.T) {
		r := newCompositeRegistry()
		r.create(1, []EntityID{5, 6}, []reflect.Type{posT, velT})

		dissolved, ok := r.leave(1, 5)
		require.True(t, ok)
		assert.False(t, dissolved)
		assert.Equal(t, 1, r.len())

		dissolved, ok = r.leave(1, 6)
		require.True(t, ok)
		assert.True(t, dissolved)
		assert.Equal(t, 0, r.len())
	})

	t.Run("leave reports stale references", func(t *testing.T) {
		r := newCompositeRegistry()
		r.create(1, []EntityID{5, 6}, []reflect.Type{posT, velT})

		_, ok := r.leave(2, 5)
		assert.False(t, ok)
		_, ok = r.leave(1, 9)
		assert.False(t, ok)
		assert.True(t, r.contains(1, 5))
	})

	t.Run("take", func(t *testing.T) {
		r := newCompositeRegistry()
		r.create(1, []EntityID{5, 6}, []reflect.Type{posT, velT})

		set, ok := r.take(1)
		require.True(t, ok)
		assert.Equal(t, map[EntityID]reflect.Type{5: posT, 6: velT}, set)
		_, ok = r.take(1)
		assert.False(t, ok)
	})
}
