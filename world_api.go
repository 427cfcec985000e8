package kura

import (
	"cmp"
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
)

// Insert stores value in the partition of its static type T and returns the
// new entity's id. It always succeeds.
//
// The partition is chosen by T, not by the dynamic type of value: a value
// inserted as Insert[any](w, x) is only visible through Get[any].
func Insert[T any](w *World, value T) EntityID {
	id, t := store(w, value, 0)
	if hasSubscribers[EntityInserted](w.events) {
		Publish(w.events, EntityInserted{Type: t, ID: id})
	}
	return id
}

// InsertComposite stores a and b as two new entities grouped under a new
// composite and returns the composite's id. a receives the smaller entity id.
func InsertComposite[A, B any](w *World, a A, b B) CompositeID {
	c := w.newCompositeID()
	idA, tA := store(w, a, c)
	idB, tB := store(w, b, c)
	w.composites.create(c, []EntityID{idA, idB}, []reflect.Type{tA, tB})

	w.logger.Debug().
		Uint64("composite_id", uint64(c)).
		Uints64("members", []uint64{uint64(idA), uint64(idB)}).
		Msg("composite created")
	if hasSubscribers[EntityInserted](w.events) {
		Publish(w.events, EntityInserted{Type: tA, ID: idA, Composite: c})
		Publish(w.events, EntityInserted{Type: tB, ID: idB, Composite: c})
	}
	Publish(w.events, CompositeCreated{ID: c, Members: []EntityID{idA, idB}})
	return c
}

// InsertToComposite stores value as a new member of composite c. If c is not
// a live composite it returns false and leaves the World untouched; no id is
// consumed.
func InsertToComposite[T any](w *World, c CompositeID, value T) (EntityID, bool) {
	if !w.composites.exists(c) {
		return 0, false
	}
	id, t := store(w, value, c)
	w.composites.join(c, id, t)
	if hasSubscribers[EntityInserted](w.events) {
		Publish(w.events, EntityInserted{Type: t, ID: id, Composite: c})
	}
	return id, true
}

// Attach is InsertToComposite with an error result wrapping
// ErrInvalidComposite.
func Attach[T any](w *World, c CompositeID, value T) (EntityID, error) {
	id, ok := InsertToComposite(w, c, value)
	if !ok {
		return 0, eris.Wrapf(ErrInvalidComposite, "composite %d", c)
	}
	return id, nil
}

func store[T any](w *World, value T, c CompositeID) (EntityID, reflect.Type) {
	tb := tableFor[T](&w.storage)
	id := w.newEntityID()
	tb.put(&Entity[T]{value: value, id: id, composite: c})
	w.index[id] = tb.t
	return id, tb.t
}

// GetEntity returns the wrapper stored under id in T's partition.
func GetEntity[T any](w *World, id EntityID) (*Entity[T], bool) {
	tb := tableOf[T](&w.storage)
	if tb == nil {
		return nil, false
	}
	return tb.get(id)
}

// Get returns a copy of the payload stored under id in T's partition. It
// reports false if id is unknown or was inserted with a different type.
func Get[T any](w *World, id EntityID) (T, bool) {
	e, ok := GetEntity[T](w, id)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetMut returns a pointer to the payload stored under id in T's partition.
// The pointer must not be used after the next Insert, InsertComposite,
// InsertToComposite, Remove or Clear on the same World.
func GetMut[T any](w *World, id EntityID) (*T, bool) {
	e, ok := GetEntity[T](w, id)
	if !ok {
		return nil, false
	}
	return &e.value, true
}

// Lookup is GetMut with an error result wrapping ErrNotFound.
func Lookup[T any](w *World, id EntityID) (*T, error) {
	v, ok := GetMut[T](w, id)
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "entity %d of type %s", id, reflect.TypeFor[T]())
	}
	return v, nil
}

// Has reports whether id is stored in T's partition.
func Has[T any](w *World, id EntityID) bool {
	tb := tableOf[T](&w.storage)
	return tb != nil && tb.has(id)
}

// Len returns the number of entities in T's partition.
func Len[T any](w *World) int {
	tb := tableOf[T](&w.storage)
	if tb == nil {
		return 0
	}
	return tb.len()
}

// RemoveEntity removes the entity stored under id in T's partition and
// returns its wrapper. If the entity belonged to a composite it is removed
// from the member set, and a composite left without members is deleted
// before RemoveEntity returns.
func RemoveEntity[T any](w *World, id EntityID) (*Entity[T], bool) {
	tb := tableOf[T](&w.storage)
	if tb == nil {
		return nil, false
	}
	e, ok := tb.take(id)
	if !ok {
		return nil, false
	}
	w.storage.release(tb)
	delete(w.index, id)

	dissolved := false
	if e.composite != 0 {
		dissolved = w.detach(e.composite, id)
	}

	if hasSubscribers[EntityRemoved](w.events) {
		Publish(w.events, EntityRemoved{Type: tb.t, ID: id, Composite: e.composite})
	}
	if dissolved {
		Publish(w.events, CompositeDissolved{ID: e.composite})
	}
	return e, true
}

// Remove removes the entity stored under id in T's partition and returns
// its payload. A second Remove of the same id reports false.
func Remove[T any](w *World, id EntityID) (T, bool) {
	e, ok := RemoveEntity[T](w, id)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Each calls fn for every entity in T's partition, in no particular order,
// until fn returns false. The World must not be structurally modified while
// Each runs; collect ids with IDs first to remove entities.
func Each[T any](w *World, fn func(id EntityID, value *T) bool) {
	tb := tableOf[T](&w.storage)
	if tb == nil {
		return
	}
	for id, e := range tb.rows {
		if !fn(id, &e.value) {
			return
		}
	}
}

// IDs returns the ids in T's partition in ascending order.
func IDs[T any](w *World) []EntityID {
	tb := tableOf[T](&w.storage)
	if tb == nil {
		return nil
	}
	return tb.ids()
}

// HasComposite reports whether c is a live composite.
func HasComposite(w *World, c CompositeID) bool {
	return w.composites.exists(c)
}

// Members returns the member ids of composite c in ascending order.
func Members(w *World, c CompositeID) ([]EntityID, bool) {
	return w.composites.members(c)
}

// CompositeOf returns the composite that entity id belongs to, whatever its
// payload type.
func CompositeOf(w *World, id EntityID) (CompositeID, bool) {
	t, ok := w.index[id]
	if !ok {
		return 0, false
	}
	p, ok := w.storage.partitions[t]
	if !ok {
		return 0, false
	}
	c, ok := p.compositeOf(id)
	if !ok || c == 0 {
		return 0, false
	}
	return c, true
}

// RemoveComposite removes composite c together with all of its members and
// returns how many entities were removed. Unknown composites remove nothing.
func RemoveComposite(w *World, c CompositeID) int {
	set, ok := w.composites.take(c)
	if !ok {
		return 0
	}
	removed := make([]EntityRemoved, 0, len(set))
	for id, t := range set {
		p, ok := w.storage.partitions[t]
		if !ok {
			w.invariant(eris.Wrapf(ErrInvariant, "composite %d member %d has no %s partition", c, id, t))
			continue
		}
		back, ok := p.drop(id)
		if !ok {
			w.invariant(eris.Wrapf(ErrInvariant, "composite %d lists missing entity %d", c, id))
			continue
		}
		if back != c {
			w.invariant(eris.Wrapf(ErrInvariant,
				"composite %d listed entity %d which referred to composite %d", c, id, back))
		}
		w.storage.release(p)
		delete(w.index, id)
		removed = append(removed, EntityRemoved{Type: t, ID: id, Composite: c})
	}

	w.logger.Debug().
		Uint64("composite_id", uint64(c)).
		Int("removed", len(removed)).
		Msg("composite removed")
	if hasSubscribers[EntityRemoved](w.events) {
		slices.SortFunc(removed, func(a, b EntityRemoved) int {
			return cmp.Compare(a.ID, b.ID)
		})
		for _, ev := range removed {
			Publish(w.events, ev)
		}
	}
	Publish(w.events, CompositeDissolved{ID: c})
	return len(removed)
}
