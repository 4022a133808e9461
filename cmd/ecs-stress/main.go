// Command ecs-stress drives a headless registry with the game's components
// and update systems while creating and killing entities every frame, then
// prints a timing and memory report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/event"
	"github.com/plus3/chopper/internal/components"
	"github.com/plus3/chopper/internal/config"
	"github.com/plus3/chopper/internal/logging"
	"github.com/plus3/chopper/internal/systems"
	"go.uber.org/zap"
)

type options struct {
	duration       time.Duration
	entities       int
	churn          int
	collision      bool
	profile        string
	gcPauseMetrics bool
	logLevel       string
	seed           int64
}

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.entities, "entities", 10000, "The initial number of entities to create.")
	flag.IntVar(&opts.churn, "churn", 100, "Entities killed and created every frame.")
	flag.BoolVar(&opts.collision, "collision", false, "Give entities colliders and run the pairwise collision system.")
	flag.StringVar(&opts.profile, "profile", "", "Write a profile to the current directory: cpu or mem.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level.")
	flag.Int64Var(&opts.seed, "seed", 1, "Random seed.")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	log, err := logging.New(config.LoggingConfig{Level: opts.logLevel, Format: "console"})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q, want cpu or mem", opts.profile)
	}

	log.Info("starting ECS stress test",
		zap.Int("entities", opts.entities),
		zap.Int("churn", opts.churn),
		zap.Bool("collision", opts.collision))

	s := newStress(opts, log)
	report := s.run(opts.duration)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	log.Info("stress test complete")
	return nil
}

type stress struct {
	opts      options
	rng       *rand.Rand
	registry  *ecs.Registry
	scheduler *ecs.Scheduler
	log       *zap.Logger

	created int64
	killed  int64
	maxLive int
}

func newStress(opts options, log *zap.Logger) *stress {
	types := ecs.NewComponentRegistry()
	components.Register(types)

	// Killed ids are only freed at the next flush, so one frame of churn
	// needs ids of its own.
	registry := ecs.NewRegistry(types, ecs.WithMaxEntities(opts.entities+2*opts.churn+1))
	bus := event.NewBus(log.Named("events"))

	scheduler := ecs.NewScheduler(registry, bus)
	scheduler.Register(systems.NewAnimationSystem())
	scheduler.Register(systems.NewProjectileLifecycleSystem())
	if opts.collision {
		scheduler.Register(systems.NewCollisionSystem(nil))
		scheduler.Register(systems.NewDamageSystem(nil))
	}
	scheduler.Register(systems.NewMovementSystem())

	return &stress{
		opts:      opts,
		rng:       rand.New(rand.NewSource(opts.seed)),
		registry:  registry,
		scheduler: scheduler,
		log:       log,
	}
}

// spawn creates an entity with a Transform and a random subset of the
// other game components.
func (s *stress) spawn(now time.Duration) {
	e := s.registry.CreateEntity()
	s.created++

	ecs.AddComponent(e, components.Transform{
		Position: components.Vec2{X: s.rng.Float64() * 1600, Y: s.rng.Float64() * 1280},
		Scale:    components.Vec2{X: 1, Y: 1},
	})
	if s.rng.Intn(2) == 0 {
		ecs.AddComponent(e, components.RigidBody{
			Velocity: components.Vec2{X: s.rng.Float64()*100 - 50, Y: s.rng.Float64()*100 - 50},
		})
	}
	if s.rng.Intn(2) == 0 {
		ecs.AddComponent(e, components.NewSprite("stress", 32, 32, s.rng.Intn(4), false, 0, 0))
		if s.rng.Intn(2) == 0 {
			ecs.AddComponent(e, components.Animation{NumFrames: 2, FrameSpeedRate: 10, IsLoop: true, StartTime: now})
		}
	}
	if s.opts.collision && s.rng.Intn(4) == 0 {
		ecs.AddComponent(e, components.BoxCollider{Width: 8, Height: 8})
		ecs.AddComponent(e, components.Health{Percentage: 100})
	}
	if s.rng.Intn(8) == 0 {
		ecs.AddComponent(e, components.Projectile{Duration: time.Duration(s.rng.Intn(2000)) * time.Millisecond, StartTime: now})
	}
}

func (s *stress) churn(now time.Duration) {
	live := s.registry.LiveEntities()
	for i := range min(s.opts.churn, len(live)) {
		j := i + s.rng.Intn(len(live)-i)
		live[i], live[j] = live[j], live[i]
		live[i].Kill()
		s.killed++
	}
	for range s.opts.churn {
		if s.registry.EntityCount() >= s.opts.entities+s.opts.churn {
			break
		}
		s.spawn(now)
	}
}

func (s *stress) run(duration time.Duration) *Report {
	s.log.Info("populating registry", zap.Int("entities", s.opts.entities))
	for range s.opts.entities {
		s.spawn(0)
	}

	report := &Report{
		Duration:       duration,
		Entities:       s.opts.entities,
		Components:     s.registry.Components().Len(),
		Systems:        len(s.registry.Systems()),
		Churn:          s.opts.churn,
		GCPauseMetrics: s.opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	s.log.Info("running simulation", zap.Duration("duration", duration))
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			s.churn(s.scheduler.Elapsed())
			s.scheduler.Step(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			s.maxLive = max(s.maxLive, s.registry.EntityCount())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Created = s.created
	report.Killed = s.killed
	report.MaxLive = s.maxLive
	report.Registry = s.registry.CollectStats()
	report.Scheduler = s.scheduler.GetStats()

	s.log.Info("simulation finished", zap.Int64("updates", totalUpdates))
	return report
}
