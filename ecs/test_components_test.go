package ecs_test

import "github.com/plus3/chopper/ecs"

// Common test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

// Registered last so tests can fill the table up to the limit.
type Unregistered struct{}

func newTestComponents() *ecs.ComponentRegistry {
	components := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](components)
	ecs.RegisterComponent[Velocity](components)
	ecs.RegisterComponent[Name](components)
	ecs.RegisterComponent[Health](components)
	ecs.RegisterComponent[PlayerController](components)
	ecs.RegisterComponent[Score](components)
	ecs.RegisterComponent[Tag](components)
	return components
}

func newTestRegistry(opts ...ecs.Option) *ecs.Registry {
	return ecs.NewRegistry(newTestComponents(), opts...)
}

// MovementSystem moves every entity with a position and a velocity.
type MovementSystem struct {
	ecs.BaseSystem
	ExecuteCount int
}

func NewMovementSystem() *MovementSystem {
	s := &MovementSystem{}
	ecs.RequireComponent[Position](&s.BaseSystem)
	ecs.RequireComponent[Velocity](&s.BaseSystem)
	return s
}

func (s *MovementSystem) Update(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for _, e := range s.Entities() {
		pos := ecs.GetComponent[Position](e)
		vel := ecs.GetComponent[Velocity](e)
		pos.X += vel.DX * frame.DeltaTime
		pos.Y += vel.DY * frame.DeltaTime
	}
}

// HealthSystem sums the current health of its entities.
type HealthSystem struct {
	ecs.BaseSystem
	TotalHealth int
}

func NewHealthSystem() *HealthSystem {
	s := &HealthSystem{}
	ecs.RequireComponent[Health](&s.BaseSystem)
	return s
}

func (s *HealthSystem) Update(frame *ecs.UpdateFrame) {
	s.TotalHealth = 0
	for _, e := range s.Entities() {
		s.TotalHealth += ecs.GetComponent[Health](e).Current
	}
}

// PositionSystem matches everything with a position.
type PositionSystem struct {
	ecs.BaseSystem
}

func NewPositionSystem() *PositionSystem {
	s := &PositionSystem{}
	ecs.RequireComponent[Position](&s.BaseSystem)
	return s
}

func (s *PositionSystem) Update(frame *ecs.UpdateFrame) {}
