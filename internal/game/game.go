package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/debugui"
	debugui_ebiten "github.com/plus3/chopper/ecs/debugui/ebiten"
	"github.com/plus3/chopper/internal/config"
	"github.com/plus3/chopper/internal/events"
	"github.com/plus3/chopper/internal/render"
	"go.uber.org/zap"
)

// Game implements ebiten.Game on top of a World.
type Game struct {
	*World

	cfg       *config.Config
	log       *zap.Logger
	assets    *render.AssetStore
	canvas    *render.Canvas
	renderer  *render.RenderSystem
	colliders *render.RenderColliderSystem

	imgui      *debugui_ebiten.ImguiBackend
	inputState *ecs.Singleton[debugui.ImguiInputState]

	showColliders bool
	keys          []ebiten.Key
	last          time.Time
}

// New builds the world, loads the level's textures and prepares the
// window. With debug.imgui set the inspection panels are drawn over the
// game.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	world, err := NewWorld(cfg, log)
	if err != nil {
		return nil, err
	}

	assets := render.NewAssetStore(cfg.Paths.Assets, log.Named("assets"))
	for _, tex := range world.Level.Textures {
		if err := assets.AddTexture(tex.ID, tex.Path); err != nil {
			return nil, err
		}
	}

	g := &Game{
		World:         world,
		cfg:           cfg,
		log:           log,
		assets:        assets,
		canvas:        ecs.AddSingleton(world.Registry, render.Canvas{}),
		showColliders: cfg.Debug.ShowColliders,
		last:          time.Now(),
	}
	g.renderer = ecs.AddSystem(world.Registry, render.NewRenderSystem(assets))
	g.colliders = ecs.AddSystem(world.Registry, render.NewRenderColliderSystem())

	if cfg.Debug.Imgui {
		g.imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		debugui.Spawn(world.Registry, world.Scheduler, world.Bus)
		g.inputState = ecs.NewSingleton[debugui.ImguiInputState](world.Registry)
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	}
	ebiten.SetWindowDecorated(!cfg.Window.Borderless)
	if cfg.Frame.FPS > 0 {
		ebiten.SetTPS(cfg.Frame.FPS)
	}

	return g, nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now

	// Same sequence as World.Step, with input polled once the systems
	// have subscribed for this frame.
	g.Scheduler.Resubscribe()
	if err := g.handleInput(); err != nil {
		return err
	}
	g.Registry.Update()

	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}
	g.Scheduler.Once(ClampDelta(dt, g.cfg.Frame.MaxDelta))
	return nil
}

// handleInput turns this frame's key transitions into events. Escape ends
// the game and C toggles the collider overlay; neither is forwarded. Keys
// typed into an ImGui widget are not forwarded either.
func (g *Game) handleInput() error {
	captured := g.inputState != nil && g.inputState.Get().WantCaptureKeyboard

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		key := TranslateKey(k)
		switch key {
		case events.KeyUnknown:
			continue
		case events.KeyEscape:
			g.log.Info("escape pressed, quitting")
			return ebiten.Termination
		case events.KeyC:
			g.showColliders = !g.showColliders
			continue
		}
		if !captured {
			g.Press(key)
		}
	}

	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key := TranslateKey(k); key != events.KeyUnknown && !captured {
			g.Release(key)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.BackgroundColor)

	g.canvas.Screen = screen
	frame := &ecs.UpdateFrame{
		Elapsed:  g.Scheduler.Elapsed(),
		Registry: g.Registry,
		Events:   g.Bus,
	}
	g.renderer.Update(frame)
	if g.showColliders {
		g.colliders.Update(frame)
	}
	g.canvas.Screen = nil

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close releases the textures.
func (g *Game) Close() {
	g.assets.Clear()
	g.log.Debug("game closed", zap.Int("live_entities", g.Registry.EntityCount()))
}
