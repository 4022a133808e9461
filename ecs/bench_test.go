package ecs_test

import (
	"testing"

	"github.com/plus3/chopper/ecs"
)

func BenchmarkCreateEntity(b *testing.B) {
	r := newTestRegistry(ecs.WithMaxEntities(b.N + 1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(e, Position{X: 1.0, Y: 2.0})
		ecs.AddComponent(e, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkCreateAndKill(b *testing.B) {
	r := newTestRegistry()
	ecs.AddSystem(r, NewMovementSystem())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(e, Position{X: 1.0, Y: 2.0})
		ecs.AddComponent(e, Velocity{DX: 0.5, DY: 0.5})
		r.Update()
		e.Kill()
		r.Update()
	}
}

func BenchmarkGetComponent(b *testing.B) {
	r := newTestRegistry()
	e := r.CreateEntity()
	ecs.AddComponent(e, Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.GetComponent[Position](e)
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	r := newTestRegistry()
	ecs.AddSystem(r, NewMovementSystem())
	e := r.CreateEntity()
	ecs.AddComponent(e, Position{})
	r.Update()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.AddComponent(e, Velocity{DX: 1})
		r.Update()
		ecs.RemoveComponent[Velocity](e)
		r.Update()
	}
}

func BenchmarkMovementSystem(b *testing.B) {
	sizes := []struct {
		name  string
		count int
	}{
		{"100", 100},
		{"1000", 1000},
		{"4000", 4000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			r := newTestRegistry()
			movement := ecs.AddSystem(r, NewMovementSystem())
			for range size.count {
				e := r.CreateEntity()
				ecs.AddComponent(e, Position{})
				ecs.AddComponent(e, Velocity{DX: 1, DY: 1})
			}
			r.Update()
			frame := &ecs.UpdateFrame{DeltaTime: 0.016, Registry: r}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				movement.Update(frame)
			}
		})
	}
}
