// Package kura implements an in-process entity store for Go.
//
// Features:
//   - Payloads of any type stored behind numeric EntityID handles.
//   - One partition per concrete type: Get[T] on an id inserted as another
//     type is a plain miss, never a failed downcast.
//   - Composites group two or more entities of mixed types. Removing a
//     member updates the composite; the composite disappears with its last
//     member.
//   - Per-World monotonic counters for entity and composite ids, starting at
//     1 and never reused.
//   - Synchronous lifecycle events on a typed EventBus.
//
// A World is not safe for concurrent use. Wrap it in a Locked to share it.
//
//	w := kura.NewWorld()
//	id := kura.Insert(w, "Hello World")
//	if s, ok := kura.GetMut[string](w, id); ok {
//		*s += " My dear!"
//	}
//	msg, _ := kura.Remove[string](w, id)
package kura
