package ecs

import "strconv"

// EntityID identifies an entity among the live entities of a Registry. Ids
// are reused once an entity has been destroyed.
type EntityID uint32

// Entity is a lightweight handle to an entity. It holds the entity id and a
// non-owning reference to the Registry that issued it; copying a handle is
// cheap and never affects the entity's lifetime.
type Entity struct {
	id       EntityID
	registry *Registry
}

// ID returns the entity id.
func (e Entity) ID() EntityID {
	return e.id
}

// Registry returns the registry that owns the entity.
func (e Entity) Registry() *Registry {
	return e.registry
}

// Kill flags the entity for destruction at the next Registry.Update.
func (e Entity) Kill() {
	e.registry.Kill(e)
}

// Equal reports whether two handles refer to the same entity id.
func (e Entity) Equal(other Entity) bool {
	return e.id == other.id
}

func (e Entity) String() string {
	return "entity(" + strconv.FormatUint(uint64(e.id), 10) + ")"
}
