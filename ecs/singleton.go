package ecs

import (
	"reflect"
	"sort"
)

// singletonEntry holds a pointer to the single value of one type.
type singletonEntry struct {
	value any
}

// Singleton provides access to a single value that is not attached to any
// entity. Use it for state shared by several systems, such as the camera or
// the render target.
//
// A Singleton field in a system struct is initialised automatically when
// the system is added to a Registry.
type Singleton[T any] struct {
	registry *Registry
	ptr      *T
}

// NewSingleton returns a Singleton accessor for T. If the registry does not
// hold a T yet, one is created from initializer, or the zero value.
func NewSingleton[T any](registry *Registry, initializer ...T) *Singleton[T] {
	if registry.singletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		AddSingleton(registry, value)
	}

	s := &Singleton[T]{}
	s.Init(registry)
	return s
}

// AddSingleton stores value as the registry's T, replacing any previous
// value, and returns a pointer to the stored copy.
func AddSingleton[T any](registry *Registry, value T) *T {
	ptr := new(T)
	*ptr = value
	registry.singletons[reflect.TypeFor[T]()] = &singletonEntry{value: ptr}
	return ptr
}

// Init binds the Singleton to a registry.
func (s *Singleton[T]) Init(registry *Registry) {
	s.registry = registry
	s.updateCache()
}

// Get returns a pointer to the singleton value, or nil if the registry does
// not hold a T.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

// Exists reports whether the registry holds a T.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.registry == nil {
		return
	}
	if entry := s.registry.singletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.value.(*T)
	} else {
		s.ptr = nil
	}
}

func (r *Registry) singletonEntry(t reflect.Type) *singletonEntry {
	return r.singletons[t]
}

// SingletonTypes returns the type names of every singleton in the registry.
func (r *Registry) SingletonTypes() []string {
	names := make([]string, 0, len(r.singletons))
	for t := range r.singletons {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}
