package kura

import "github.com/rs/zerolog"

// Option configures a World at construction.
type Option func(*World)

// WithLogger sets the logger the World reports composite lifecycle (debug)
// and invariant breaches (error) to. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithStrictInvariants makes the World panic on a broken internal invariant
// instead of logging it. Meant for tests and debug builds.
func WithStrictInvariants() Option {
	return func(w *World) {
		w.strict = true
	}
}

// WithEventBus makes the World publish its lifecycle events on bus, which
// may be shared with other parts of the application.
func WithEventBus(bus *EventBus) Option {
	return func(w *World) {
		if bus != nil {
			w.events = bus
		}
	}
}

// WithPartitionCapacity sets the number of rows pre-allocated for each new
// type partition and for the World's id index.
func WithPartitionCapacity(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.capacity = n
		}
	}
}
