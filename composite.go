package kura

import (
	"reflect"
	"slices"
)

// compositeRegistry maps each live composite to its members. The member's
// partition type is recorded alongside its id so a whole composite can be
// torn down without knowing the members' static types.
//
// A composite in the registry always has at least one member: leave deletes
// the composite in the same call that removes its last member.
type compositeRegistry struct {
	groups map[CompositeID]map[EntityID]reflect.Type
}

func newCompositeRegistry() compositeRegistry {
	return compositeRegistry{groups: make(map[CompositeID]map[EntityID]reflect.Type)}
}

func (r *compositeRegistry) len() int {
	return len(r.groups)
}

func (r *compositeRegistry) exists(c CompositeID) bool {
	_, ok := r.groups[c]
	return ok
}

// create registers c with its founding members.
func (r *compositeRegistry) create(c CompositeID, ids []EntityID, types []reflect.Type) {
	set := make(map[EntityID]reflect.Type, len(ids))
	for i, id := range ids {
		set[id] = types[i]
	}
	r.groups[c] = set
}

// join adds id to an existing composite. It reports false if c is not
// registered.
func (r *compositeRegistry) join(c CompositeID, id EntityID, t reflect.Type) bool {
	set, ok := r.groups[c]
	if !ok {
		return false
	}
	set[id] = t
	return true
}

// leave removes id from c. ok is false when c is unknown or does not list
// id, which means a back-reference went stale. dissolved reports whether c
// was deleted because id was its last member.
func (r *compositeRegistry) leave(c CompositeID, id EntityID) (dissolved, ok bool) {
	set, found := r.groups[c]
	if !found {
		return false, false
	}
	if _, member := set[id]; !member {
		return false, false
	}
	delete(set, id)
	if len(set) == 0 {
		delete(r.groups, c)
		return true, true
	}
	return false, true
}

func (r *compositeRegistry) contains(c CompositeID, id EntityID) bool {
	set, ok := r.groups[c]
	if !ok {
		return false
	}
	_, ok = set[id]
	return ok
}

// members returns c's member ids in ascending order.
func (r *compositeRegistry) members(c CompositeID) ([]EntityID, bool) {
	set, ok := r.groups[c]
	if !ok {
		return nil, false
	}
	out := make([]EntityID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, true
}

// take unregisters c and hands back its member set.
func (r *compositeRegistry) take(c CompositeID) (map[EntityID]reflect.Type, bool) {
	set, ok := r.groups[c]
	if !ok {
		return nil, false
	}
	delete(r.groups, c)
	return set, true
}

func (r *compositeRegistry) clear() {
	clear(r.groups)
}
