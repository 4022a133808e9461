package ecs

import (
	"reflect"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// AddSystem registers system with the registry and returns the registered
// instance. At most one system of each type may be registered; if one is
// already present, system is ignored and the existing instance is returned.
//
// The system's required components are resolved to its signature here, and
// its Singleton fields are initialised. Entities that are already live are
// not matched retroactively; they join the system the next time they are
// flushed.
func AddSystem[S System](r *Registry, system S) S {
	t := reflect.TypeOf(system)
	if idx, ok := r.systemIndex[t]; ok {
		return r.systems[idx].(S)
	}

	system.base().bind(r.components)
	r.initializeSingletons(system)

	r.systemIndex[t] = len(r.systems)
	r.systems = append(r.systems, system)

	r.log.Debug("added system",
		zap.String("system", systemName(system)),
		zap.Stringer("signature", system.base().signature))

	return system
}

// RemoveSystem discards the registered system of type S, if any.
func RemoveSystem[S System](r *Registry) {
	t := reflect.TypeFor[S]()
	idx, ok := r.systemIndex[t]
	if !ok {
		return
	}

	r.systems[idx].base().clearEntities()
	r.systems = slices.Delete(r.systems, idx, idx+1)

	delete(r.systemIndex, t)
	for i := idx; i < len(r.systems); i++ {
		r.systemIndex[reflect.TypeOf(r.systems[i])] = i
	}

	r.log.Debug("removed system", zap.String("system", t.String()))
}

// HasSystem reports whether a system of type S is registered.
func HasSystem[S System](r *Registry) bool {
	_, ok := r.systemIndex[reflect.TypeFor[S]()]
	return ok
}

// GetSystem returns the registered system of type S. It panics if there is
// none; use HasSystem first when unsure.
func GetSystem[S System](r *Registry) S {
	t := reflect.TypeFor[S]()
	idx, ok := r.systemIndex[t]
	if !ok {
		panic("ecs: system " + t.String() + " not registered")
	}
	return r.systems[idx].(S)
}

// Systems returns the registered systems in registration order.
func (r *Registry) Systems() []System {
	return slices.Clone(r.systems)
}

// initializeSingletons points every Singleton[T] field of the system at the
// registry.
func (r *Registry) initializeSingletons(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if !strings.HasPrefix(field.Type().Name(), "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("ecs: Init method not found on Singleton field: " + fieldType.Name)
		}

		initMethod.Call([]reflect.Value{
			reflect.ValueOf(r),
		})
	}
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}
