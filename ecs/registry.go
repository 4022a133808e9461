package ecs

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// DefaultMaxEntities is the entity limit of a Registry created without
// WithMaxEntities.
const DefaultMaxEntities = 5000

// Registry owns every entity, component pool and system of an ECS instance.
//
// Structural changes are deferred: new entities are only matched to systems,
// and killed entities only removed from them, when Update runs. Systems can
// therefore iterate their match sets during a frame without entities
// appearing or disappearing underneath them.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	components *ComponentRegistry
	pools      []iPool

	signatures  []Signature
	alive       []bool
	numEntities int
	maxEntities int
	freeIDs     []EntityID

	created *entitySet
	killed  *entitySet
	dirty   *entitySet

	systems     []System
	systemIndex map[reflect.Type]int

	singletons map[reflect.Type]*singletonEntry

	log *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMaxEntities sets the maximum number of entity ids the registry may
// hand out.
func WithMaxEntities(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxEntities = n
		}
	}
}

// NewRegistry creates a registry for the component types registered in
// components.
func NewRegistry(components *ComponentRegistry, opts ...Option) *Registry {
	r := &Registry{
		components:  components,
		pools:       make([]iPool, MaxComponents),
		maxEntities: DefaultMaxEntities,
		created:     newEntitySet(),
		killed:      newEntitySet(),
		dirty:       newEntitySet(),
		systemIndex: make(map[reflect.Type]int),
		singletons:  make(map[reflect.Type]*singletonEntry),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Components returns the component type table of the registry.
func (r *Registry) Components() *ComponentRegistry {
	return r.components
}

// CreateEntity issues a new entity. The oldest freed id is reused first;
// otherwise the next sequential id is allocated. The entity is not added to
// any system until the next Update.
func (r *Registry) CreateEntity() Entity {
	var id EntityID
	if len(r.freeIDs) == 0 {
		if r.numEntities >= r.maxEntities {
			panic(fmt.Sprintf("ecs: entity limit of %d reached", r.maxEntities))
		}
		id = EntityID(r.numEntities)
		r.numEntities++
		if int(id) >= len(r.signatures) {
			r.signatures = append(r.signatures, make([]Signature, int(id)+1-len(r.signatures))...)
			r.alive = append(r.alive, make([]bool, int(id)+1-len(r.alive))...)
		}
	} else {
		id = r.freeIDs[0]
		r.freeIDs = r.freeIDs[1:]
		r.signatures[id].Reset()
	}

	r.alive[id] = true
	r.created.add(id)

	r.log.Debug("created entity",
		zap.Uint32("id", uint32(id)),
		zap.Int("entityCount", r.numEntities))

	return Entity{id: id, registry: r}
}

// Entity returns a handle for id. The handle is only meaningful while id is
// live.
func (r *Registry) Entity(id EntityID) Entity {
	return Entity{id: id, registry: r}
}

// IsAlive reports whether id belongs to an entity that has been created and
// not yet destroyed. Entities flagged with Kill remain alive until Update.
func (r *Registry) IsAlive(id EntityID) bool {
	return int(id) < len(r.alive) && r.alive[id]
}

// Kill flags e for destruction at the next Update. Until then the entity
// keeps its components and its place in every system.
func (r *Registry) Kill(e Entity) {
	if !r.IsAlive(e.id) {
		return
	}
	r.killed.add(e.id)
}

// KillEntity destroys e immediately: its signature is cleared, it is
// removed from every system and its id is appended to the free list.
func (r *Registry) KillEntity(e Entity) {
	id := e.id
	if !r.IsAlive(id) {
		return
	}

	r.freeIDs = append(r.freeIDs, id)
	r.signatures[id].Reset()
	r.alive[id] = false

	for _, system := range r.systems {
		system.base().removeEntity(e)
	}

	r.created.remove(id)
	r.killed.remove(id)
	r.dirty.remove(id)

	r.log.Debug("destroyed entity", zap.Uint32("id", uint32(id)))
}

// Update applies the structural changes made since the previous call. Newly
// created entities are added to every system they satisfy, live entities
// whose components changed are matched again, and entities flagged with
// Kill are destroyed. Each group is processed in ascending id order.
func (r *Registry) Update() {
	created := r.created.drain()
	for _, id := range created {
		r.addEntityToSystems(r.Entity(id))
	}

	dirty := r.dirty.drain()
	for _, id := range dirty {
		if r.alive[id] {
			r.refreshEntityInSystems(r.Entity(id))
		}
	}

	killed := r.killed.drain()
	for _, id := range killed {
		r.KillEntity(r.Entity(id))
	}

	if len(created)+len(dirty)+len(killed) > 0 {
		r.log.Debug("registry flushed",
			zap.Int("created", len(created)),
			zap.Int("changed", len(dirty)),
			zap.Int("killed", len(killed)))
	}
}

// addEntityToSystems appends e to every system whose signature it
// satisfies.
func (r *Registry) addEntityToSystems(e Entity) {
	sig := r.signatures[e.id]
	for _, system := range r.systems {
		b := system.base()
		if sig.Contains(b.signature) {
			b.addEntity(e)
		}
	}
}

// refreshEntityInSystems matches a live entity again after its components
// changed.
func (r *Registry) refreshEntityInSystems(e Entity) {
	sig := r.signatures[e.id]
	for _, system := range r.systems {
		b := system.base()
		if sig.Contains(b.signature) {
			b.addEntity(e)
		} else {
			b.removeEntity(e)
		}
	}
}

// Signature returns the component signature of e.
func (r *Registry) Signature(e Entity) Signature {
	return r.signatures[e.id]
}

// markChanged queues a live entity for re-matching at the next Update.
// Entities that have not been flushed yet are matched on creation anyway.
func (r *Registry) markChanged(id EntityID) {
	if r.created.has(id) {
		return
	}
	r.dirty.add(id)
}

// ensurePool returns the pool for id, creating it on first use.
func (r *Registry) ensurePool(id ComponentID) iPool {
	if r.pools[id] == nil {
		r.pools[id] = r.components.factories[id](defaultPoolSize)
	}
	return r.pools[id]
}

// Component returns a pointer to the component with the given id attached
// to e, or nil when e does not have it.
func (r *Registry) Component(e Entity, id ComponentID) any {
	if !r.signatures[e.id].Test(id) || r.pools[id] == nil {
		return nil
	}
	return r.pools[id].getAny(int(e.id))
}

// EntityCount returns the number of live entities.
func (r *Registry) EntityCount() int {
	return r.numEntities - len(r.freeIDs)
}

// FreeIDs returns a copy of the free list, oldest first.
func (r *Registry) FreeIDs() []EntityID {
	return slices.Clone(r.freeIDs)
}

// LiveEntities returns a handle for every live entity in ascending id order.
func (r *Registry) LiveEntities() []Entity {
	out := make([]Entity, 0, r.EntityCount())
	for id := range r.numEntities {
		if r.alive[id] {
			out = append(out, Entity{id: EntityID(id), registry: r})
		}
	}
	return out
}
