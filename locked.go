package kura

import "sync"

// Locked shares one World between goroutines behind a single exclusive
// lock. Every callback runs with the lock held, so pointers obtained from
// GetMut or Each inside a callback stay valid for its duration and must not
// escape it.
type Locked struct {
	w  *World
	mu sync.Mutex
}

// NewLocked wraps w. The caller must stop using w directly.
func NewLocked(w *World) *Locked {
	return &Locked{w: w}
}

// Do runs fn with exclusive access to the World.
func (l *Locked) Do(fn func(w *World)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.w)
}

// DoErr runs fn with exclusive access to the World and returns its error.
func (l *Locked) DoErr(fn func(w *World) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.w)
}

// Stats returns the wrapped World's stats.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Stats()
}
