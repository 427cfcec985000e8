package kura

import "reflect"

// EntityInserted is published after an entity has been stored.
type EntityInserted struct {
	Type      reflect.Type
	ID        EntityID
	Composite CompositeID // 0 for standalone entities
}

// EntityRemoved is published after an entity has left storage and, if it
// belonged to a composite, after the composite's member set was updated.
type EntityRemoved struct {
	Type      reflect.Type
	ID        EntityID
	Composite CompositeID
}

// CompositeCreated is published after both founding members are stored.
type CompositeCreated struct {
	Members []EntityID
	ID      CompositeID
}

// CompositeDissolved is published after a composite lost its last member.
type CompositeDissolved struct {
	ID CompositeID
}

// WorldCleared is published by (*World).Clear with the counts it dropped.
type WorldCleared struct {
	Entities   int
	Composites int
}
