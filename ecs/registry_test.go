package ecs_test

import (
	"testing"

	"github.com/plus3/chopper/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntity(t *testing.T) {
	t.Run("ids are sequential and unique", func(t *testing.T) {
		r := newTestRegistry()
		seen := map[ecs.EntityID]bool{}
		for i := range 10 {
			e := r.CreateEntity()
			assert.Equal(t, ecs.EntityID(i), e.ID())
			assert.False(t, seen[e.ID()])
			seen[e.ID()] = true
		}
		assert.Equal(t, 10, r.EntityCount())
	})

	t.Run("freed ids are reused oldest first", func(t *testing.T) {
		r := newTestRegistry()
		var es []ecs.Entity
		for range 4 {
			es = append(es, r.CreateEntity())
		}

		r.KillEntity(es[2])
		r.KillEntity(es[0])
		assert.Equal(t, []ecs.EntityID{2, 0}, r.FreeIDs())

		assert.Equal(t, ecs.EntityID(2), r.CreateEntity().ID())
		assert.Equal(t, ecs.EntityID(0), r.CreateEntity().ID())
		assert.Equal(t, ecs.EntityID(4), r.CreateEntity().ID())
		assert.Empty(t, r.FreeIDs())
	})

	t.Run("entity limit panics", func(t *testing.T) {
		r := newTestRegistry(ecs.WithMaxEntities(3))
		for range 3 {
			r.CreateEntity()
		}
		assert.Panics(t, func() { r.CreateEntity() })
	})

	t.Run("limit allows reuse of freed ids", func(t *testing.T) {
		r := newTestRegistry(ecs.WithMaxEntities(2))
		a := r.CreateEntity()
		r.CreateEntity()
		r.KillEntity(a)
		assert.NotPanics(t, func() { r.CreateEntity() })
	})
}

func TestComponents(t *testing.T) {
	r := newTestRegistry()
	e := r.CreateEntity()

	assert.False(t, ecs.HasComponent[Position](e))

	ecs.AddComponent(e, Position{X: 1, Y: 2})
	ecs.AddComponent(e, Score(7))

	assert.True(t, ecs.HasComponent[Position](e))
	assert.True(t, ecs.HasComponent[Score](e))
	assert.False(t, ecs.HasComponent[Velocity](e))
	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.GetComponent[Position](e))
	assert.Equal(t, Score(7), *ecs.GetComponent[Score](e))

	t.Run("get returns a mutable reference", func(t *testing.T) {
		ecs.GetComponent[Position](e).X = 42
		assert.Equal(t, 42.0, ecs.GetComponent[Position](e).X)
	})

	t.Run("add replaces the existing value", func(t *testing.T) {
		ecs.AddComponent(e, Position{X: -1})
		assert.Equal(t, Position{X: -1}, *ecs.GetComponent[Position](e))
	})

	t.Run("remove clears only the signature bit", func(t *testing.T) {
		ecs.RemoveComponent[Position](e)
		assert.False(t, ecs.HasComponent[Position](e))
		assert.True(t, ecs.HasComponent[Score](e))
		assert.Nil(t, r.Component(e, 0))
	})

	t.Run("pools grow past their initial size", func(t *testing.T) {
		var last ecs.Entity
		for range 300 {
			last = r.CreateEntity()
		}
		ecs.AddComponent(last, Name{Value: "far"})
		assert.Equal(t, "far", ecs.GetComponent[Name](last).Value)
		assert.GreaterOrEqual(t, ecs.PoolOf[Name](r).Size(), int(last.ID())+1)
	})

	t.Run("unregistered type panics", func(t *testing.T) {
		assert.Panics(t, func() { ecs.AddComponent(e, Unregistered{}) })
		assert.Panics(t, func() { ecs.HasComponent[Unregistered](e) })
	})
}

func TestComponentRegistry(t *testing.T) {
	components := ecs.NewComponentRegistry()
	a := ecs.RegisterComponent[Position](components)
	b := ecs.RegisterComponent[Velocity](components)

	assert.Equal(t, ecs.ComponentID(0), a)
	assert.Equal(t, ecs.ComponentID(1), b)
	assert.Equal(t, a, ecs.RegisterComponent[Position](components), "registration is idempotent")
	assert.Equal(t, 2, components.Len())

	var sig ecs.Signature
	sig.Set(a)
	sig.Set(b)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, components.Names(sig))
}

type c0 struct{}
type c1 struct{}
type c2 struct{}
type c3 struct{}
type c4 struct{}
type c5 struct{}
type c6 struct{}
type c7 struct{}

func TestComponentLimit(t *testing.T) {
	components := ecs.NewComponentRegistry()
	ecs.RegisterComponent[c0](components)
	ecs.RegisterComponent[c1](components)
	ecs.RegisterComponent[c2](components)
	ecs.RegisterComponent[c3](components)
	ecs.RegisterComponent[c4](components)
	ecs.RegisterComponent[c5](components)
	ecs.RegisterComponent[c6](components)
	ecs.RegisterComponent[c7](components)
	ecs.RegisterComponent[[1]int](components)
	ecs.RegisterComponent[[2]int](components)
	ecs.RegisterComponent[[3]int](components)
	ecs.RegisterComponent[[4]int](components)
	ecs.RegisterComponent[[5]int](components)
	ecs.RegisterComponent[[6]int](components)
	ecs.RegisterComponent[[7]int](components)
	ecs.RegisterComponent[[8]int](components)
	ecs.RegisterComponent[[1]string](components)
	ecs.RegisterComponent[[2]string](components)
	ecs.RegisterComponent[[3]string](components)
	ecs.RegisterComponent[[4]string](components)
	ecs.RegisterComponent[[5]string](components)
	ecs.RegisterComponent[[6]string](components)
	ecs.RegisterComponent[[7]string](components)
	ecs.RegisterComponent[[8]string](components)
	ecs.RegisterComponent[[1]bool](components)
	ecs.RegisterComponent[[2]bool](components)
	ecs.RegisterComponent[[3]bool](components)
	ecs.RegisterComponent[[4]bool](components)
	ecs.RegisterComponent[[5]bool](components)
	ecs.RegisterComponent[[6]bool](components)
	ecs.RegisterComponent[[7]bool](components)
	last := ecs.RegisterComponent[[8]bool](components)

	assert.Equal(t, ecs.ComponentID(ecs.MaxComponents-1), last)
	assert.Panics(t, func() { ecs.RegisterComponent[Unregistered](components) })
}

func TestSystemMatching(t *testing.T) {
	t.Run("entities join systems on update", func(t *testing.T) {
		r := newTestRegistry()
		movement := ecs.AddSystem(r, NewMovementSystem())

		e := r.CreateEntity()
		ecs.AddComponent(e, Position{})
		ecs.AddComponent(e, Velocity{DX: 1})

		assert.Equal(t, 0, movement.Len(), "creation is deferred")

		r.Update()
		assert.Equal(t, 1, movement.Len())
		assert.True(t, movement.Contains(e.ID()))
	})

	t.Run("interest matching", func(t *testing.T) {
		r := newTestRegistry()
		movement := ecs.AddSystem(r, NewMovementSystem())
		position := ecs.AddSystem(r, NewPositionSystem())
		health := ecs.AddSystem(r, NewHealthSystem())

		both := r.CreateEntity()
		ecs.AddComponent(both, Position{})
		ecs.AddComponent(both, Velocity{})

		posOnly := r.CreateEntity()
		ecs.AddComponent(posOnly, Position{})

		extra := r.CreateEntity()
		ecs.AddComponent(extra, Position{})
		ecs.AddComponent(extra, Velocity{})
		ecs.AddComponent(extra, Health{Current: 5})

		r.Update()

		assert.ElementsMatch(t, []ecs.EntityID{both.ID(), extra.ID()}, ids(movement.Entities()))
		assert.ElementsMatch(t, []ecs.EntityID{both.ID(), posOnly.ID(), extra.ID()}, ids(position.Entities()))
		assert.ElementsMatch(t, []ecs.EntityID{extra.ID()}, ids(health.Entities()))
	})

	t.Run("empty signature matches every entity", func(t *testing.T) {
		r := newTestRegistry()
		all := ecs.AddSystem(r, &EverythingSystem{})

		r.CreateEntity()
		e := r.CreateEntity()
		ecs.AddComponent(e, Tag("x"))
		r.Update()

		assert.Equal(t, 2, all.Len())
	})

	t.Run("component changes are matched again", func(t *testing.T) {
		r := newTestRegistry()
		movement := ecs.AddSystem(r, NewMovementSystem())

		e := r.CreateEntity()
		ecs.AddComponent(e, Position{})
		r.Update()
		assert.Equal(t, 0, movement.Len())

		ecs.AddComponent(e, Velocity{})
		assert.Equal(t, 0, movement.Len(), "re-matching waits for update")
		r.Update()
		assert.Equal(t, 1, movement.Len())

		ecs.RemoveComponent[Velocity](e)
		r.Update()
		assert.Equal(t, 0, movement.Len())
	})

	t.Run("systems added later only see entities flushed later", func(t *testing.T) {
		r := newTestRegistry()
		e := r.CreateEntity()
		ecs.AddComponent(e, Position{})
		r.Update()

		position := ecs.AddSystem(r, NewPositionSystem())
		r.Update()
		assert.Equal(t, 0, position.Len())

		ecs.AddComponent(e, Position{X: 1})
		r.Update()
		assert.Equal(t, 1, position.Len())
	})
}

func TestKill(t *testing.T) {
	t.Run("kill is deferred until update", func(t *testing.T) {
		r := newTestRegistry()
		movement := ecs.AddSystem(r, NewMovementSystem())

		e := r.CreateEntity()
		ecs.AddComponent(e, Position{})
		ecs.AddComponent(e, Velocity{})
		r.Update()
		require.Equal(t, 1, movement.Len())

		e.Kill()
		assert.True(t, r.IsAlive(e.ID()))
		assert.Equal(t, 1, movement.Len())
		assert.True(t, ecs.HasComponent[Position](e))

		r.Update()
		assert.False(t, r.IsAlive(e.ID()))
		assert.Equal(t, 0, movement.Len())
		assert.Equal(t, []ecs.EntityID{e.ID()}, r.FreeIDs())
		assert.True(t, r.Signature(e).IsEmpty())
	})

	t.Run("kill entity is immediate", func(t *testing.T) {
		r := newTestRegistry()
		position := ecs.AddSystem(r, NewPositionSystem())

		e := r.CreateEntity()
		ecs.AddComponent(e, Position{})
		r.Update()

		r.KillEntity(e)
		assert.False(t, r.IsAlive(e.ID()))
		assert.Equal(t, 0, position.Len())
		assert.Equal(t, 0, r.EntityCount())
	})

	t.Run("killing twice frees the id once", func(t *testing.T) {
		r := newTestRegistry()
		e := r.CreateEntity()
		e.Kill()
		e.Kill()
		r.Update()
		r.KillEntity(e)

		assert.Equal(t, []ecs.EntityID{e.ID()}, r.FreeIDs())
	})

	t.Run("entity created and killed in the same frame never joins a system", func(t *testing.T) {
		r := newTestRegistry()
		position := ecs.AddSystem(r, NewPositionSystem())

		e := r.CreateEntity()
		ecs.AddComponent(e, Position{})
		e.Kill()
		r.Update()

		assert.Equal(t, 0, position.Len())
		assert.False(t, r.IsAlive(e.ID()))
	})

	t.Run("stale handle cannot give components to a reused id", func(t *testing.T) {
		r := newTestRegistry()
		e := r.CreateEntity()
		r.Update()
		r.KillEntity(e)

		ecs.AddComponent(e, Position{X: 1})
		assert.False(t, ecs.HasComponent[Position](e))

		reused := r.CreateEntity()
		require.Equal(t, e.ID(), reused.ID())
		assert.False(t, ecs.HasComponent[Position](reused))
		assert.True(t, r.Signature(reused).IsEmpty())
	})

	t.Run("remove on a dead entity is ignored", func(t *testing.T) {
		r := newTestRegistry()
		e := r.CreateEntity()
		r.KillEntity(e)

		assert.NotPanics(t, func() { ecs.RemoveComponent[Position](e) })
		assert.True(t, r.Signature(e).IsEmpty())
	})

	t.Run("reused id starts with an empty signature", func(t *testing.T) {
		r := newTestRegistry()
		e := r.CreateEntity()
		ecs.AddComponent(e, Position{})
		r.KillEntity(e)

		reused := r.CreateEntity()
		assert.Equal(t, e.ID(), reused.ID())
		assert.False(t, ecs.HasComponent[Position](reused))
	})
}

func TestLiveEntities(t *testing.T) {
	r := newTestRegistry()
	a := r.CreateEntity()
	b := r.CreateEntity()
	c := r.CreateEntity()
	r.KillEntity(b)

	assert.Equal(t, []ecs.EntityID{a.ID(), c.ID()}, ids(r.LiveEntities()))
}

func TestSystemRegistry(t *testing.T) {
	t.Run("adding the same system type twice keeps the first", func(t *testing.T) {
		r := newTestRegistry()
		first := ecs.AddSystem(r, NewMovementSystem())
		second := ecs.AddSystem(r, NewMovementSystem())

		assert.Same(t, first, second)
		assert.Len(t, r.Systems(), 1)
	})

	t.Run("get and has", func(t *testing.T) {
		r := newTestRegistry()
		assert.False(t, ecs.HasSystem[*MovementSystem](r))
		assert.Panics(t, func() { ecs.GetSystem[*MovementSystem](r) })

		movement := ecs.AddSystem(r, NewMovementSystem())
		assert.True(t, ecs.HasSystem[*MovementSystem](r))
		assert.Same(t, movement, ecs.GetSystem[*MovementSystem](r))
	})

	t.Run("remove system", func(t *testing.T) {
		r := newTestRegistry()
		ecs.AddSystem(r, NewMovementSystem())
		health := ecs.AddSystem(r, NewHealthSystem())

		ecs.RemoveSystem[*MovementSystem](r)
		assert.False(t, ecs.HasSystem[*MovementSystem](r))
		assert.Same(t, health, ecs.GetSystem[*HealthSystem](r))
		assert.Len(t, r.Systems(), 1)

		assert.NotPanics(t, func() { ecs.RemoveSystem[*MovementSystem](r) })
	})

	t.Run("system requiring an unregistered component panics", func(t *testing.T) {
		r := newTestRegistry()
		s := &EverythingSystem{}
		ecs.RequireComponent[Unregistered](&s.BaseSystem)
		assert.Panics(t, func() { ecs.AddSystem(r, s) })
	})
}

type Camera struct {
	X, Y float64
}

type CameraSystem struct {
	ecs.BaseSystem
	Camera ecs.Singleton[Camera]
}

func (s *CameraSystem) Update(frame *ecs.UpdateFrame) {
	s.Camera.Get().X += frame.DeltaTime
}

func TestSingletons(t *testing.T) {
	r := newTestRegistry()
	ecs.AddSingleton(r, Camera{X: 5})

	system := ecs.AddSystem(r, &CameraSystem{})
	require.True(t, system.Camera.Exists())
	assert.Equal(t, 5.0, system.Camera.Get().X)

	system.Update(&ecs.UpdateFrame{DeltaTime: 1})
	assert.Equal(t, 6.0, ecs.NewSingleton[Camera](r).Get().X)

	missing := ecs.NewSingleton[Score](r, Score(3))
	assert.Equal(t, Score(3), *missing.Get())
	assert.Equal(t, []string{"ecs_test.Camera", "ecs_test.Score"}, r.SingletonTypes())
}

// EverythingSystem has no requirements.
type EverythingSystem struct {
	ecs.BaseSystem
}

func (s *EverythingSystem) Update(frame *ecs.UpdateFrame) {}

func ids(entities []ecs.Entity) []ecs.EntityID {
	out := make([]ecs.EntityID, len(entities))
	for i, e := range entities {
		out[i] = e.ID()
	}
	return out
}
