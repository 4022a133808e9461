package ecs

// RegistryStats is a snapshot of a registry's bookkeeping, used by the debug
// overlay and the stress driver.
type RegistryStats struct {
	LiveEntityCount int
	AllocatedIDs    int
	FreeIDCount     int
	PendingCreated  int
	PendingKilled   int
	PendingChanged  int
	SystemCount     int
	SingletonCount  int
	SingletonTypes  []string
	Pools           []PoolStats
	Systems         []SystemMatchStats
}

// PoolStats describes one component pool.
type PoolStats struct {
	ID          ComponentID
	Type        string
	Capacity    int
	EntityCount int
}

// SystemMatchStats describes the match set of one system.
type SystemMatchStats struct {
	Name        string
	Signature   Signature
	Components  []string
	EntityCount int
}

// CollectStats gathers a RegistryStats snapshot.
func (r *Registry) CollectStats() *RegistryStats {
	stats := &RegistryStats{
		LiveEntityCount: r.EntityCount(),
		AllocatedIDs:    r.numEntities,
		FreeIDCount:     len(r.freeIDs),
		PendingCreated:  r.created.len(),
		PendingKilled:   r.killed.len(),
		PendingChanged:  r.dirty.len(),
		SystemCount:     len(r.systems),
		SingletonTypes:  r.SingletonTypes(),
	}
	stats.SingletonCount = len(stats.SingletonTypes)

	counts := make([]int, MaxComponents)
	for id := range r.numEntities {
		if !r.alive[id] {
			continue
		}
		for _, cid := range r.signatures[id].IDs() {
			counts[cid]++
		}
	}

	for id, pool := range r.pools {
		if pool == nil {
			continue
		}
		stats.Pools = append(stats.Pools, PoolStats{
			ID:          ComponentID(id),
			Type:        pool.Type().String(),
			Capacity:    pool.Size(),
			EntityCount: counts[id],
		})
	}

	for _, system := range r.systems {
		b := system.base()
		stats.Systems = append(stats.Systems, SystemMatchStats{
			Name:        systemName(system),
			Signature:   b.signature,
			Components:  r.components.Names(b.signature),
			EntityCount: b.Len(),
		})
	}

	return stats
}
