package systems

import (
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/event"
	"github.com/plus3/chopper/internal/components"
	"github.com/plus3/chopper/internal/events"
	"go.uber.org/zap"
)

// DamageSystem destroys both participants of every collision. Health only
// selects the system; its value is not consulted.
type DamageSystem struct {
	ecs.BaseSystem
	log *zap.Logger
}

func NewDamageSystem(log *zap.Logger) *DamageSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &DamageSystem{log: log}
	ecs.RequireComponent[components.Health](&s.BaseSystem)
	return s
}

func (s *DamageSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s.OnCollision)
}

func (s *DamageSystem) OnCollision(ev *events.CollisionEvent) {
	s.log.Debug("damage",
		zap.Stringer("a", ev.A),
		zap.Stringer("b", ev.B))

	ev.A.Kill()
	ev.B.Kill()
}

func (s *DamageSystem) Update(frame *ecs.UpdateFrame) {}
