package ecs

import (
	"fmt"
	"reflect"
)

// ComponentRegistry is the table of component types an ECS instance knows
// about. Each type is given a ComponentID in registration order, so ids are
// stable for the life of the table and do not depend on which component
// happens to be used first.
//
// Register every component type before creating a Registry from the table.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentID
	types     []reflect.Type
	factories []func(size int) iPool
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentID),
	}
}

// RegisterComponent registers T with the given registry and returns its id.
// Registering the same type twice returns the existing id. Registering more
// than MaxComponents types panics.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.types) >= MaxComponents {
		panic(fmt.Sprintf("ecs: cannot register %s: component limit of %d reached", t, MaxComponents))
	}

	id := ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func(size int) iPool {
		return NewPool[T](size)
	})
	return id
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Type returns the component type registered under id.
func (r *ComponentRegistry) Type(id ComponentID) reflect.Type {
	return r.types[id]
}

// Lookup returns the id of t and whether t is registered.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// mustID returns the id of t or panics if t was never registered.
func (r *ComponentRegistry) mustID(t reflect.Type) ComponentID {
	id, ok := r.ids[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return id
}

// Names returns the type names of every component bit set in sig.
func (r *ComponentRegistry) Names(sig Signature) []string {
	ids := sig.IDs()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if int(id) < len(r.types) {
			names = append(names, r.types[id].String())
		}
	}
	return names
}

func componentID[T any](r *ComponentRegistry) ComponentID {
	return r.mustID(reflect.TypeFor[T]())
}
