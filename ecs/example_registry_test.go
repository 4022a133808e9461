package ecs_test

import (
	"fmt"

	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/event"
)

type Transform struct {
	X, Y float64
}

type Speed struct {
	DX, DY float64
}

type PhysicsSystem struct {
	ecs.BaseSystem
}

func NewPhysicsSystem() *PhysicsSystem {
	s := &PhysicsSystem{}
	ecs.RequireComponent[Transform](&s.BaseSystem)
	ecs.RequireComponent[Speed](&s.BaseSystem)
	return s
}

func (s *PhysicsSystem) Update(frame *ecs.UpdateFrame) {
	for _, e := range s.Entities() {
		t := ecs.GetComponent[Transform](e)
		v := ecs.GetComponent[Speed](e)
		t.X += v.DX * frame.DeltaTime
		t.Y += v.DY * frame.DeltaTime
	}
}

// ExampleRegistry shows the life of an entity: it is created, given
// components and only picked up by systems once the registry is flushed.
func ExampleRegistry() {
	components := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](components)
	ecs.RegisterComponent[Speed](components)

	registry := ecs.NewRegistry(components)
	physics := ecs.AddSystem(registry, NewPhysicsSystem())

	ship := registry.CreateEntity()
	ecs.AddComponent(ship, Transform{X: 0, Y: 0})
	ecs.AddComponent(ship, Speed{DX: 10, DY: 5})

	fmt.Println("matched before update:", physics.Len())
	registry.Update()
	fmt.Println("matched after update:", physics.Len())

	physics.Update(&ecs.UpdateFrame{DeltaTime: 0.5, Registry: registry})
	fmt.Printf("position: %+v\n", *ecs.GetComponent[Transform](ship))

	ship.Kill()
	registry.Update()
	fmt.Println("alive:", registry.IsAlive(ship.ID()), "free ids:", registry.FreeIDs())

	// Output:
	// matched before update: 0
	// matched after update: 1
	// position: {X:5 Y:2.5}
	// alive: false free ids: [0]
}

type Landed struct {
	Who ecs.Entity
}

// ExampleScheduler wires systems, events and the registry into a frame loop.
func ExampleScheduler() {
	components := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](components)
	ecs.RegisterComponent[Speed](components)

	registry := ecs.NewRegistry(components)
	bus := event.NewBus(nil)
	scheduler := ecs.NewScheduler(registry, bus)
	scheduler.Register(NewPhysicsSystem())

	event.Subscribe(bus, func(ev *Landed) {
		fmt.Println("landed:", ev.Who)
	})

	e := registry.CreateEntity()
	ecs.AddComponent(e, Transform{})
	ecs.AddComponent(e, Speed{DX: 1})

	for range 3 {
		registry.Update()
		scheduler.Once(1.0)
	}
	event.Emit(bus, Landed{Who: e})

	fmt.Printf("x after 3 frames: %.0f\n", ecs.GetComponent[Transform](e).X)

	// Output:
	// landed: entity(0)
	// x after 3 frames: 3
}

type Leaderboard struct {
	Points int
}

// ExampleNewSingleton demonstrates state that belongs to no entity.
func ExampleNewSingleton() {
	registry := ecs.NewRegistry(ecs.NewComponentRegistry())

	score := ecs.NewSingleton(registry, Leaderboard{Points: 10})
	score.Get().Points += 5

	again := ecs.NewSingleton[Leaderboard](registry)
	fmt.Println("points:", again.Get().Points)

	// Output:
	// points: 15
}
