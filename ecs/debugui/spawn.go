package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/event"
)

// DebugUI is the set of inspection panels drawn over the game.
type DebugUI struct {
	Browser   *EntityBrowser
	Inspector *ComponentInspector
	Systems   *SystemViewer
	Stats     *PerformanceStats
	Matcher   *SignatureDebugger

	scheduler *ecs.Scheduler
	bus       *event.Bus
}

// Spawn adds the ImguiInputState singleton, the ImguiSystem and one
// ImguiItem entity that draws every panel. Call it after the game systems
// have been registered with scheduler. ImguiItem must have been registered
// with RegisterComponents.
func Spawn(registry *ecs.Registry, scheduler *ecs.Scheduler, bus *event.Bus) *DebugUI {
	ui := &DebugUI{
		Browser:   NewEntityBrowser(100),
		Inspector: NewComponentInspector(),
		Systems:   NewSystemViewer(),
		Stats:     NewPerformanceStats(120),
		Matcher:   NewSignatureDebugger(),
		scheduler: scheduler,
		bus:       bus,
	}

	ecs.NewSingleton[ImguiInputState](registry)
	scheduler.Register(NewImguiSystem())

	e := registry.CreateEntity()
	ecs.AddComponent(e, ImguiItem{Render: ui.Render})
	return ui
}

// Render draws every panel.
func (ui *DebugUI) Render(frame *ecs.UpdateFrame) {
	r := frame.Registry
	sched := ui.scheduler.GetStats()

	ui.Stats.Render(r, sched, float32(frame.DeltaTime))
	ui.Browser.Render(r)

	id, ok := ui.Browser.Selected()
	ui.Inspector.Render(r, id, ok && r.IsAlive(id))

	if sig := ui.Systems.Render(r, sched); sig != nil {
		ui.Browser.FilterSignature(sig)
	}
	ui.Matcher.Render(r)
	renderListeners(ui.bus)
}

func renderListeners(bus *event.Bus) {
	if bus == nil {
		return
	}
	if !imgui.BeginV("Event Listeners", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ListenerTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Event")
		imgui.TableSetupColumn("Handlers")
		imgui.TableHeadersRow()

		for _, l := range bus.Listeners() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(l.EventType)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", l.Handlers))
		}
		imgui.EndTable()
	}
	imgui.End()
}
