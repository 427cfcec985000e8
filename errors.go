package kura

import "github.com/rotisserie/eris"

var (
	// ErrNotFound is returned by Lookup when an id is absent from the
	// queried type's partition.
	ErrNotFound = eris.New("entity not found")
	// ErrInvalidComposite is returned by Attach when the target composite is
	// not registered.
	ErrInvalidComposite = eris.New("composite not registered")
	// ErrInvariant marks a broken internal invariant. It is never caused by
	// caller input.
	ErrInvariant = eris.New("world invariant violated")
)

// invariant reports a broken internal invariant: fatal under
// WithStrictInvariants, logged otherwise.
func (w *World) invariant(err error) {
	if w.strict {
		panic(err)
	}
	w.logger.Error().Err(err).Msg("world invariant violated")
}
