package kura

import (
	"reflect"
	"slices"
)

// partition is the type-erased view of one concrete payload type's table.
// The World only needs it where the static type is unknown: cascading
// removals, Clear and validation.
type partition interface {
	typ() reflect.Type
	len() int
	has(id EntityID) bool
	compositeOf(id EntityID) (CompositeID, bool)
	drop(id EntityID) (CompositeID, bool)
	visit(fn func(id EntityID, composite CompositeID))
}

// table holds every entity whose payload type is T.
type table[T any] struct {
	rows map[EntityID]*Entity[T]
	t    reflect.Type
}

var _ partition = (*table[int])(nil)

func newTable[T any](t reflect.Type, capacity int) *table[T] {
	return &table[T]{
		rows: make(map[EntityID]*Entity[T], capacity),
		t:    t,
	}
}

func (tb *table[T]) typ() reflect.Type { return tb.t }

func (tb *table[T]) len() int { return len(tb.rows) }

func (tb *table[T]) has(id EntityID) bool {
	_, ok := tb.rows[id]
	return ok
}

func (tb *table[T]) get(id EntityID) (*Entity[T], bool) {
	e, ok := tb.rows[id]
	return e, ok
}

func (tb *table[T]) put(e *Entity[T]) {
	tb.rows[e.id] = e
}

func (tb *table[T]) take(id EntityID) (*Entity[T], bool) {
	e, ok := tb.rows[id]
	if !ok {
		return nil, false
	}
	delete(tb.rows, id)
	return e, true
}

func (tb *table[T]) compositeOf(id EntityID) (CompositeID, bool) {
	e, ok := tb.rows[id]
	if !ok {
		return 0, false
	}
	return e.composite, true
}

func (tb *table[T]) drop(id EntityID) (CompositeID, bool) {
	e, ok := tb.take(id)
	if !ok {
		return 0, false
	}
	return e.composite, true
}

func (tb *table[T]) visit(fn func(id EntityID, composite CompositeID)) {
	for id, e := range tb.rows {
		fn(id, e.composite)
	}
}

// ids returns the table's ids in ascending order.
func (tb *table[T]) ids() []EntityID {
	out := make([]EntityID, 0, len(tb.rows))
	for id := range tb.rows {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// storage partitions entities by the concrete type used at insertion.
// An id inserted as T can only ever be found through T's table, so a lookup
// with the wrong type parameter is a plain miss rather than a failed
// downcast.
type storage struct {
	partitions map[reflect.Type]partition
	capacity   int // initial row capacity for new tables
}

func newStorage(capacity int) storage {
	return storage{
		partitions: make(map[reflect.Type]partition, 16),
		capacity:   capacity,
	}
}

// tableOf returns T's table, or nil if nothing of type T is stored.
func tableOf[T any](s *storage) *table[T] {
	p, ok := s.partitions[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	// The key is T's own reflect.Type, so the assertion cannot fail.
	return p.(*table[T])
}

// tableFor returns T's table, creating it on first use.
func tableFor[T any](s *storage) *table[T] {
	t := reflect.TypeFor[T]()
	if p, ok := s.partitions[t]; ok {
		return p.(*table[T])
	}
	tb := newTable[T](t, s.capacity)
	s.partitions[t] = tb
	return tb
}

// release forgets a partition once it holds no entities.
func (s *storage) release(p partition) {
	if p.len() == 0 {
		delete(s.partitions, p.typ())
	}
}

func (s *storage) clear() {
	clear(s.partitions)
}
