package systems

import (
	"time"

	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/event"
	"github.com/plus3/chopper/internal/components"
	"github.com/plus3/chopper/internal/events"
)

// BulletAssetID is the texture used for every projectile.
const BulletAssetID = "bullet-texture"

// ProjectileEmitSystem fires a projectile from every emitter when the space
// bar is pressed.
type ProjectileEmitSystem struct {
	ecs.BaseSystem
	now time.Duration
}

func NewProjectileEmitSystem() *ProjectileEmitSystem {
	s := &ProjectileEmitSystem{}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.ProjectileEmitter](&s.BaseSystem)
	return s
}

func (s *ProjectileEmitSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s.OnKeyPressed)
}

func (s *ProjectileEmitSystem) OnKeyPressed(ev *events.KeyPressedEvent) {
	if ev.Key != events.KeySpace {
		return
	}
	for _, e := range s.Entities() {
		s.emit(e)
	}
}

func (s *ProjectileEmitSystem) emit(e ecs.Entity) {
	emitter := *ecs.GetComponent[components.ProjectileEmitter](e)
	transform := *ecs.GetComponent[components.Transform](e)

	position := transform.Position
	if ecs.HasComponent[components.Sprite](e) {
		sprite := ecs.GetComponent[components.Sprite](e)
		position.X += float64(int(transform.Scale.X * float64(sprite.Width) / 2))
		position.Y += float64(int(transform.Scale.Y * float64(sprite.Height) / 2))
	}

	velocity := emitter.Velocity
	if ecs.HasComponent[components.KeyboardControlled](e) && ecs.HasComponent[components.RigidBody](e) {
		dir := ecs.GetComponent[components.RigidBody](e).Velocity.Normalize()
		velocity.X = dir.X * emitter.Velocity.X
		velocity.Y = dir.Y * emitter.Velocity.Y
	}

	projectile := e.Registry().CreateEntity()
	ecs.AddComponent(projectile, components.Transform{Position: position, Scale: components.Vec2{X: 1, Y: 1}})
	ecs.AddComponent(projectile, components.RigidBody{Velocity: velocity})
	ecs.AddComponent(projectile, components.NewSprite(BulletAssetID, 4, 4, 5, false, 0, 0))
	ecs.AddComponent(projectile, components.BoxCollider{Width: 4, Height: 4})
	ecs.AddComponent(projectile, components.Projectile{
		IsFriendly: emitter.IsFriendly,
		Duration:   emitter.Duration,
		StartTime:  s.now,
	})
}

// Update records the game clock so projectiles fired from key handlers know
// when they were created.
func (s *ProjectileEmitSystem) Update(frame *ecs.UpdateFrame) {
	s.now = frame.Elapsed
}

// ProjectileLifecycleSystem kills projectiles whose lifetime has run out.
type ProjectileLifecycleSystem struct {
	ecs.BaseSystem
}

func NewProjectileLifecycleSystem() *ProjectileLifecycleSystem {
	s := &ProjectileLifecycleSystem{}
	ecs.RequireComponent[components.Projectile](&s.BaseSystem)
	return s
}

func (s *ProjectileLifecycleSystem) Update(frame *ecs.UpdateFrame) {
	for _, e := range s.Entities() {
		if ecs.GetComponent[components.Projectile](e).Expired(frame.Elapsed) {
			e.Kill()
		}
	}
}
