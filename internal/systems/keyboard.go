package systems

import (
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/event"
	"github.com/plus3/chopper/internal/components"
	"github.com/plus3/chopper/internal/events"
)

// Sprite sheet rows, one per facing direction.
const (
	rowUp = iota
	rowRight
	rowDown
	rowLeft
)

// KeyboardControlSystem steers keyboard controlled entities with the arrow
// keys. Releasing a key keeps the current velocity.
type KeyboardControlSystem struct {
	ecs.BaseSystem
}

func NewKeyboardControlSystem() *KeyboardControlSystem {
	s := &KeyboardControlSystem{}
	ecs.RequireComponent[components.KeyboardControlled](&s.BaseSystem)
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	ecs.RequireComponent[components.RigidBody](&s.BaseSystem)
	return s
}

func (s *KeyboardControlSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s.OnKeyPressed)
}

func (s *KeyboardControlSystem) OnKeyPressed(ev *events.KeyPressedEvent) {
	for _, e := range s.Entities() {
		control := ecs.GetComponent[components.KeyboardControlled](e)
		sprite := ecs.GetComponent[components.Sprite](e)
		body := ecs.GetComponent[components.RigidBody](e)

		switch ev.Key {
		case events.KeyUp:
			body.Velocity = control.Up
			sprite.SrcRect.Y = sprite.Height * rowUp
		case events.KeyRight:
			body.Velocity = control.Right
			sprite.SrcRect.Y = sprite.Height * rowRight
		case events.KeyDown:
			body.Velocity = control.Down
			sprite.SrcRect.Y = sprite.Height * rowDown
		case events.KeyLeft:
			body.Velocity = control.Left
			sprite.SrcRect.Y = sprite.Height * rowLeft
		}
	}
}

func (s *KeyboardControlSystem) Update(frame *ecs.UpdateFrame) {}
