// Package game wires the ECS, the level and the systems into an
// ebiten.Game.
package game

import (
	"fmt"

	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/debugui"
	"github.com/plus3/chopper/ecs/event"
	"github.com/plus3/chopper/internal/components"
	"github.com/plus3/chopper/internal/config"
	"github.com/plus3/chopper/internal/events"
	"github.com/plus3/chopper/internal/level"
	"github.com/plus3/chopper/internal/systems"
	"go.uber.org/zap"
)

// World is the simulation half of the game: the registry, its systems and
// the loaded level. It does not touch the window or the GPU.
type World struct {
	Registry  *ecs.Registry
	Bus       *event.Bus
	Scheduler *ecs.Scheduler
	Level     *level.Level
	Camera    *components.Camera
	Bounds    *components.MapBounds

	maxDelta float64
	log      *zap.Logger
}

// NewWorld loads the configured level, spawns it and registers the update
// systems. The render systems are added by the caller, before the first
// Step, so they see the level's entities at the first flush.
func NewWorld(cfg *config.Config, log *zap.Logger) (*World, error) {
	types := ecs.NewComponentRegistry()
	components.Register(types)
	debugui.RegisterComponents(types)

	registry := ecs.NewRegistry(types,
		ecs.WithLogger(log.Named("ecs")),
		ecs.WithMaxEntities(cfg.Registry.MaxEntities))
	bus := event.NewBus(log.Named("events"))

	lvl, err := level.Load(cfg.Paths.Level)
	if err != nil {
		return nil, err
	}

	// Singletons are cached by the systems when they are added.
	camera := ecs.AddSingleton(registry, components.Camera{
		Rect: components.Rect{W: cfg.Window.Width, H: cfg.Window.Height},
	})
	bounds, err := lvl.Spawn(registry, 0)
	if err != nil {
		return nil, fmt.Errorf("spawn level %s: %w", lvl.Name, err)
	}
	boundsPtr := ecs.AddSingleton(registry, bounds)

	scheduler := ecs.NewScheduler(registry, bus)
	scheduler.Register(systems.NewKeyboardControlSystem())
	scheduler.Register(systems.NewAnimationSystem())
	scheduler.Register(systems.NewProjectileEmitSystem())
	scheduler.Register(systems.NewProjectileLifecycleSystem())
	scheduler.Register(systems.NewCollisionSystem(log.Named("collision")))
	scheduler.Register(systems.NewDamageSystem(log.Named("damage")))
	scheduler.Register(systems.NewMovementSystem())
	scheduler.Register(systems.NewCameraMovementSystem())

	// Events emitted before the first Step need somewhere to go.
	scheduler.Resubscribe()
	bus.LogListeners()

	log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("entities", registry.EntityCount()),
		zap.Int("map_width", bounds.Width),
		zap.Int("map_height", bounds.Height))

	return &World{
		Registry:  registry,
		Bus:       bus,
		Scheduler: scheduler,
		Level:     lvl,
		Camera:    camera,
		Bounds:    boundsPtr,
		maxDelta:  cfg.Frame.MaxDelta,
		log:       log,
	}, nil
}

// Press delivers a key press to the systems subscribed for this frame.
func (w *World) Press(key events.Key) {
	event.Emit(w.Bus, events.KeyPressedEvent{Key: key})
}

// Release delivers a key release to the systems subscribed for this frame.
func (w *World) Release(key events.Key) {
	event.Emit(w.Bus, events.KeyReleasedEvent{Key: key})
}

// Step advances the simulation by dt seconds, clamped to the configured
// maximum so a stall does not teleport entities.
func (w *World) Step(dt float64) {
	w.Scheduler.Step(ClampDelta(dt, w.maxDelta))
}

// ClampDelta limits dt to [0, maxDelta].
func ClampDelta(dt, maxDelta float64) float64 {
	return max(0, min(dt, maxDelta))
}
