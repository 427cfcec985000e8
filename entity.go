package kura

// EntityID is the handle of a stored payload. IDs are issued by a World
// starting at 1 and are never reused; 0 is never a valid entity.
type EntityID uint64

// CompositeID is the handle of a composite. Composite IDs live in their own
// namespace, independent of EntityID values; 0 means "no composite".
type CompositeID uint64

// Entity is the unit stored per id: the payload plus an optional
// back-reference to the composite that owns it.
type Entity[T any] struct {
	value     T
	id        EntityID
	composite CompositeID // 0 for standalone entities
}

// ID returns the entity's id.
func (e *Entity[T]) ID() EntityID {
	return e.id
}

// Value returns a pointer to the stored payload. The pointer is only valid
// until the next structural mutation of the owning World.
func (e *Entity[T]) Value() *T {
	return &e.value
}

// Composite returns the owning composite, if any. The back-reference is a
// lookup key only; it says nothing about whether the composite still exists
// by the time the caller follows it.
func (e *Entity[T]) Composite() (CompositeID, bool) {
	return e.composite, e.composite != 0
}
