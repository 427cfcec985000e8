package kura

import (
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const defaultPartitionCapacity = 16

// World owns every stored payload, the composite registry and the two id
// counters. It is not safe for concurrent use; wrap it in a Locked to share
// it between goroutines.
type World struct {
	logger        zerolog.Logger
	events        *EventBus
	index         map[EntityID]reflect.Type // id -> partition key, for type-agnostic lookups
	storage       storage
	composites    compositeRegistry
	capacity      int
	nextEntity    EntityID
	nextComposite CompositeID
	strict        bool
}

// Stats is a point-in-time summary of a World.
type Stats struct {
	Entities        int
	Composites      int
	Partitions      int
	NextEntityID    EntityID
	NextCompositeID CompositeID
}

// NewWorld creates an empty World. Both id counters start at 1.
//
// Parameters:
//   - opts: Options applied in order; see WithLogger, WithStrictInvariants,
//     WithEventBus and WithPartitionCapacity.
//
// Returns:
//   - The newly created World.
func NewWorld(opts ...Option) *World {
	w := &World{
		logger:        zerolog.Nop(),
		events:        &EventBus{},
		capacity:      defaultPartitionCapacity,
		nextEntity:    1,
		nextComposite: 1,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.storage = newStorage(w.capacity)
	w.composites = newCompositeRegistry()
	w.index = make(map[EntityID]reflect.Type, w.capacity)
	return w
}

// Events returns the bus the World publishes lifecycle events on.
func (w *World) Events() *EventBus {
	return w.events
}

// Logger returns the World's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Len returns the number of stored entities across all partitions.
func (w *World) Len() int {
	return len(w.index)
}

// CompositeCount returns the number of live composites.
func (w *World) CompositeCount() int {
	return w.composites.len()
}

// Stats returns counts and the next ids the World will issue.
func (w *World) Stats() Stats {
	return Stats{
		Entities:        len(w.index),
		Composites:      w.composites.len(),
		Partitions:      len(w.storage.partitions),
		NextEntityID:    w.nextEntity,
		NextCompositeID: w.nextComposite,
	}
}

// Clear removes every entity and composite. The id counters are left alone,
// so ids issued after Clear never alias ids issued before it.
func (w *World) Clear() {
	ev := WorldCleared{Entities: len(w.index), Composites: w.composites.len()}
	w.storage.clear()
	w.composites.clear()
	clear(w.index)
	w.logger.Debug().
		Int("entities", ev.Entities).
		Int("composites", ev.Composites).
		Msg("world cleared")
	Publish(w.events, ev)
}

func (w *World) newEntityID() EntityID {
	id := w.nextEntity
	w.nextEntity++
	return id
}

func (w *World) newCompositeID() CompositeID {
	id := w.nextComposite
	w.nextComposite++
	return id
}

// detach removes id from composite c after id has left storage and reports
// whether c was dissolved as a result.
func (w *World) detach(c CompositeID, id EntityID) bool {
	dissolved, ok := w.composites.leave(c, id)
	if !ok {
		w.invariant(eris.Wrapf(ErrInvariant,
			"entity %d refers to composite %d which does not list it", id, c))
		return false
	}
	if dissolved {
		w.logger.Debug().
			Uint64("composite_id", uint64(c)).
			Uint64("last_entity_id", uint64(id)).
			Msg("composite dissolved")
	}
	return dissolved
}

// Validate checks every storage and registry invariant and returns an error
// wrapping ErrInvariant for the first violation found.
func (w *World) Validate() error {
	rows := 0
	for t, p := range w.storage.partitions {
		if p.len() == 0 {
			return eris.Wrapf(ErrInvariant, "empty partition %s kept in storage", t)
		}
		var err error
		p.visit(func(id EntityID, c CompositeID) {
			if err != nil {
				return
			}
			rows++
			switch {
			case id == 0 || id >= w.nextEntity:
				err = eris.Wrapf(ErrInvariant, "entity %d was never issued", id)
			case w.index[id] != t:
				err = eris.Wrapf(ErrInvariant, "entity %d stored as %s but indexed as %v", id, t, w.index[id])
			case c != 0 && !w.composites.contains(c, id):
				err = eris.Wrapf(ErrInvariant, "entity %d refers to composite %d which does not list it", id, c)
			}
		})
		if err != nil {
			return err
		}
	}
	if rows != len(w.index) {
		return eris.Wrapf(ErrInvariant, "index holds %d ids but storage holds %d", len(w.index), rows)
	}
	for c, set := range w.composites.groups {
		if c == 0 || c >= w.nextComposite {
			return eris.Wrapf(ErrInvariant, "composite %d was never issued", c)
		}
		if len(set) == 0 {
			return eris.Wrapf(ErrInvariant, "composite %d has no members", c)
		}
		for id, t := range set {
			p, ok := w.storage.partitions[t]
			if !ok {
				return eris.Wrapf(ErrInvariant, "composite %d member %d has no %s partition", c, id, t)
			}
			back, ok := p.compositeOf(id)
			if !ok || back != c {
				return eris.Wrapf(ErrInvariant, "composite %d lists entity %d which does not refer back", c, id)
			}
		}
	}
	return nil
}
