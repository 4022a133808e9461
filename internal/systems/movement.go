// Package systems implements the update systems of the chopper game. None
// of them draw; rendering lives in the render package.
package systems

import (
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/internal/components"
)

// MovementSystem integrates rigid body velocity into the transform.
type MovementSystem struct {
	ecs.BaseSystem
}

func NewMovementSystem() *MovementSystem {
	s := &MovementSystem{}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.RigidBody](&s.BaseSystem)
	return s
}

func (s *MovementSystem) Update(frame *ecs.UpdateFrame) {
	for _, e := range s.Entities() {
		transform := ecs.GetComponent[components.Transform](e)
		body := ecs.GetComponent[components.RigidBody](e)

		transform.Position.X += body.Velocity.X * frame.DeltaTime
		transform.Position.Y += body.Velocity.Y * frame.DeltaTime
	}
}
