package kura

import "reflect"

// EventBus is a small, type-safe, synchronous event bus. Handlers subscribe
// to a concrete event type and are called in subscription order whenever an
// event of exactly that type is published.
//
// A World publishes its lifecycle events (EntityInserted, EntityRemoved,
// CompositeCreated, CompositeDissolved, WorldCleared) on its bus once an
// operation has fully completed, so handlers never observe a half-applied
// removal. Handlers may call back into the World.
//
// The zero value is ready to use. An EventBus is not safe for concurrent use;
// share it under the same lock as its World.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// Subscribe registers a handler function to be called when an event of type `T`
// is published. Handlers are stored in the order they are subscribed.
//
// Parameters:
//   - bus: The EventBus instance to subscribe to.
//   - handler: A function that takes a single argument of type `T`.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	if bus.handlers == nil {
		bus.handlers = make(map[reflect.Type][]any)
	}
	t := reflect.TypeFor[T]()
	hs := bus.handlers[t]
	if cap(hs) == 0 {
		hs = make([]any, 0, 4)
	}
	bus.handlers[t] = append(hs, handler)
}

// Publish broadcasts an event of type `T` to all registered handlers for that
// type. Publishing on a nil bus or for a type nobody subscribed to is a no-op.
func Publish[T any](bus *EventBus, event T) {
	if bus == nil || len(bus.handlers) == 0 {
		return
	}
	hs := bus.handlers[reflect.TypeFor[T]()]
	for _, h := range hs {
		h.(func(T))(event)
	}
}

// Subscribers reports how many handlers are registered for `T`.
func Subscribers[T any](bus *EventBus) int {
	if bus == nil {
		return 0
	}
	return len(bus.handlers[reflect.TypeFor[T]()])
}

// hasSubscribers lets the World skip building events nobody listens to.
func hasSubscribers[T any](bus *EventBus) bool {
	return Subscribers[T](bus) > 0
}
