// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chopper/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func(frame *ecs.UpdateFrame)
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem calls the render function of every ImguiItem entity and
// updates the ImguiInputState singleton. Register it after every other
// system so the panels see the final state of the frame, and run the
// scheduler between the backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	ecs.BaseSystem
	InputState ecs.Singleton[ImguiInputState]
}

func NewImguiSystem() *ImguiSystem {
	s := &ImguiSystem{}
	ecs.RequireComponent[ImguiItem](&s.BaseSystem)
	return s
}

func (i *ImguiSystem) Update(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for _, e := range i.Entities() {
		if item := ecs.GetComponent[ImguiItem](e); item.Render != nil {
			item.Render(frame)
		}
	}
}

// RegisterComponents registers the component types used by this package.
func RegisterComponents(types *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](types)
}
