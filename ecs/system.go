package ecs

import (
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/chopper/ecs/event"
)

// System represents a behavior that operates on the entities whose
// components satisfy its signature. Concrete systems embed BaseSystem,
// declare their requirements with RequireComponent while being constructed,
// and implement Update.
type System interface {
	Update(frame *UpdateFrame)
	base() *BaseSystem
}

// EventSubscriber is implemented by systems that listen to events. The
// driver resets the event bus every frame and calls SubscribeToEvents again
// on each subscriber.
type EventSubscriber interface {
	SubscribeToEvents(bus *event.Bus)
}

// BaseSystem holds the signature and the current match set of a system.
// The match set is only changed by the Registry, during Update.
type BaseSystem struct {
	required  []reflect.Type
	signature Signature
	entities  []Entity
	index     *intmap.Map[EntityID, int]
}

// RequireComponent declares that the system only processes entities that
// have a T. Call it while constructing the system; the type is resolved to
// its component id when the system is added to a Registry.
func RequireComponent[T any](s *BaseSystem) {
	s.required = append(s.required, reflect.TypeFor[T]())
}

func (s *BaseSystem) base() *BaseSystem {
	return s
}

// bind resolves the required component types against the registry's
// component table and fixes the system signature.
func (s *BaseSystem) bind(types *ComponentRegistry) {
	s.signature.Reset()
	for _, t := range s.required {
		s.signature.Set(types.mustID(t))
	}
}

// Signature returns the set of components an entity needs to be processed
// by the system.
func (s *BaseSystem) Signature() Signature {
	return s.signature
}

// Entities returns a copy of the entities currently matched to the system.
func (s *BaseSystem) Entities() []Entity {
	return slices.Clone(s.entities)
}

// Len returns the number of matched entities.
func (s *BaseSystem) Len() int {
	return len(s.entities)
}

// Contains reports whether the entity id is in the match set.
func (s *BaseSystem) Contains(id EntityID) bool {
	if s.index == nil {
		return false
	}
	_, ok := s.index.Get(id)
	return ok
}

func (s *BaseSystem) addEntity(e Entity) {
	if s.index == nil {
		s.index = intmap.New[EntityID, int](64)
	}
	if _, ok := s.index.Get(e.id); ok {
		return
	}
	s.index.Put(e.id, len(s.entities))
	s.entities = append(s.entities, e)
}

// removeEntity drops the entity by moving the last match into its slot.
// Membership is a set, so order is not preserved.
func (s *BaseSystem) removeEntity(e Entity) {
	if s.index == nil {
		return
	}
	pos, ok := s.index.Get(e.id)
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if pos != last {
		moved := s.entities[last]
		s.entities[pos] = moved
		s.index.Put(moved.id, pos)
	}
	s.entities = s.entities[:last]
	s.index.Del(e.id)
}

func (s *BaseSystem) clearEntities() {
	s.entities = s.entities[:0]
	if s.index != nil {
		s.index.Clear()
	}
}
