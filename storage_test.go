package kura

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("tableOf before first insert", func(t *testing.T) {
		s := newStorage(4)
		assert.Nil(t, tableOf[Position](&s))
	})

	t.Run("tableFor creates once", func(t *testing.T) {
		s := newStorage(4)
		a := tableFor[Position](&s)
		b := tableFor[Position](&s)
		assert.Same(t, a, b)
		assert.Equal(t, reflect.TypeFor[Position](), a.typ())
		assert.Len(t, s.partitions, 1)
	})

	t.Run("types are kept apart", func(t *testing.T) {
		s := newStorage(4)
		tableFor[Position](&s).put(&Entity[Position]{id: 1})
		tableFor[Velocity](&s).put(&Entity[Velocity]{id: 2})

		assert.True(t, tableOf[Position](&s).has(1))
		assert.False(t, tableOf[Position](&s).has(2))
		assert.False(t, tableOf[Velocity](&s).has(1))
	})

	t.Run("release drops empty partitions only", func(t *testing.T) {
		s := newStorage(4)
		tb := tableFor[Position](&s)
		tb.put(&Entity[Position]{id: 1})
		tb.put(&Entity[Position]{id: 2})

		_, ok := tb.take(1)
		require.True(t, ok)
		s.release(tb)
		assert.NotNil(t, tableOf[Position](&s))

		_, ok = tb.take(2)
		require.True(t, ok)
		s.release(tb)
		assert.Nil(t, tableOf[Position](&s))
	})
}

func TestTable(t *testing.T) {
	tb := newTable[Health](reflect.TypeFor[Health](), 0)
	tb.put(&Entity[Health]{id: 3, value: Health{Current: 1}, composite: 9})
	tb.put(&Entity[Health]{id: 1, value: Health{Current: 2}})

	assert.Equal(t, []EntityID{1, 3}, tb.ids())

	c, ok := tb.compositeOf(3)
	require.True(t, ok)
	assert.Equal(t, CompositeID(9), c)
	_, ok = tb.compositeOf(4)
	assert.False(t, ok)

	seen := map[EntityID]CompositeID{}
	tb.visit(func(id EntityID, c CompositeID) { seen[id] = c })
	assert.Equal(t, map[EntityID]CompositeID{1: 0, 3: 9}, seen)

	c, ok = tb.drop(3)
	require.True(t, ok)
	assert.Equal(t, CompositeID(9), c)
	_, ok = tb.drop(3)
	assert.False(t, ok)
	assert.Equal(t, 1, tb.len())
}
