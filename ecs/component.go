package ecs

// AddComponent attaches component to e, replacing any value of the same type
// it already had. Using a type that was not registered with the registry's
// ComponentRegistry panics. Adding to a dead entity does nothing.
func AddComponent[T any](e Entity, component T) {
	r := e.registry
	id := componentID[T](r.components)
	if !r.IsAlive(e.id) {
		return
	}
	pool := r.ensurePool(id).(*Pool[T])

	if int(e.id) >= pool.Size() {
		pool.Resize(r.numEntities)
	}
	pool.Set(int(e.id), component)

	r.signatures[e.id].Set(id)
	r.markChanged(e.id)
}

// RemoveComponent detaches T from e. Only the signature bit is cleared; the
// stored value stays in the pool until it is overwritten.
func RemoveComponent[T any](e Entity) {
	r := e.registry
	id := componentID[T](r.components)
	if !r.IsAlive(e.id) {
		return
	}
	r.signatures[e.id].Unset(id)
	r.markChanged(e.id)
}

// HasComponent reports whether e currently has a T.
func HasComponent[T any](e Entity) bool {
	r := e.registry
	return r.signatures[e.id].Test(componentID[T](r.components))
}

// GetComponent returns a pointer to e's T. The result is only meaningful when
// HasComponent[T](e) is true; otherwise it points at stale or zero data.
func GetComponent[T any](e Entity) *T {
	r := e.registry
	pool := r.pools[componentID[T](r.components)].(*Pool[T])
	return pool.Get(int(e.id))
}

// PoolOf returns the pool that stores T, or nil if no entity has been given
// a T yet.
func PoolOf[T any](r *Registry) *Pool[T] {
	p := r.pools[componentID[T](r.components)]
	if p == nil {
		return nil
	}
	return p.(*Pool[T])
}
