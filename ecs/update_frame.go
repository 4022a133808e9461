package ecs

import (
	"time"

	"github.com/plus3/chopper/ecs/event"
)

// UpdateFrame is the context handed to every system's Update. Systems take
// the fields they need and ignore the rest.
type UpdateFrame struct {
	DeltaTime float64
	Elapsed   time.Duration
	Registry  *Registry
	Events    *event.Bus
}

func newUpdateFrame(dt float64, elapsed time.Duration, registry *Registry, bus *event.Bus) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Registry:  registry,
		Events:    bus,
	}
}
