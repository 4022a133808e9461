package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chopper/ecs"
)

func NewSignatureDebugger() *SignatureDebugger {
	return &SignatureDebugger{
		selected: make(map[ecs.ComponentID]bool),
	}
}

// Signature returns the signature built from the selected component types.
func (sd *SignatureDebugger) Signature() ecs.Signature {
	var sig ecs.Signature
	for id, on := range sd.selected {
		if on {
			sig.Set(id)
		}
	}
	return sig
}

func (sd *SignatureDebugger) Toggle(id ecs.ComponentID, on bool) {
	if on {
		sd.selected[id] = true
	} else {
		delete(sd.selected, id)
	}
}

// Match returns the live entities and the systems whose signatures contain
// sig. An empty signature matches everything, the same way a system with no
// requirements would.
func Match(r *ecs.Registry, sig ecs.Signature) ([]ecs.EntityID, []string) {
	var entities []ecs.EntityID
	for _, e := range r.LiveEntities() {
		if r.Signature(e).Contains(sig) {
			entities = append(entities, e.ID())
		}
	}

	var systems []string
	for _, s := range r.CollectStats().Systems {
		if sig.Contains(s.Signature) {
			systems = append(systems, s.Name)
		}
	}
	return entities, systems
}

// Render lets the user build a signature from checkboxes and shows which
// entities carry it and which systems an entity with exactly that signature
// would be matched by.
func (sd *SignatureDebugger) Render(r *ecs.Registry) {
	if !imgui.BeginV("Signature Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		sd.selected = make(map[ecs.ComponentID]bool)
	}

	types := r.Components()
	for i := range types.Len() {
		id := ecs.ComponentID(i)
		selected := sd.selected[id]
		if imgui.Checkbox(types.Type(id).String(), &selected) {
			sd.Toggle(id, selected)
		}
	}

	imgui.Separator()

	sig := sd.Signature()
	if sig.IsEmpty() {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	entities, systems := Match(r, sig)

	imgui.Text(fmt.Sprintf("Signature: %s", sig))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(entities)))

	if imgui.TreeNodeStr("Matching Systems") {
		for _, name := range systems {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Entity IDs") {
		for _, id := range entities {
			imgui.BulletText(fmt.Sprintf("%d", id))
		}
		imgui.TreePop()
	}

	imgui.End()
}
