package debugui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chopper/ecs"
)

var durationType = reflect.TypeFor[time.Duration]()

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{reflection: globalReflectionCache}
}

// Render shows every component of the entity with editors for its exported
// fields. Edits are written straight into the component pool.
func (ci *ComponentInspector) Render(r *ecs.Registry, id ecs.EntityID, ok bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !ok {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	e := r.Entity(id)
	sig := r.Signature(e)

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Text(fmt.Sprintf("Signature: %s", sig))
	if imgui.Button("Kill") {
		ci.Kill(e)
		imgui.End()
		return
	}
	imgui.Separator()

	for _, cid := range sig.IDs() {
		component := r.Component(e, cid)
		if component == nil {
			continue
		}

		compType := r.Components().Type(cid)
		if imgui.TreeNodeStr(compType.String()) {
			ci.renderComponent(component)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// Kill flags e for removal at the next registry flush. The inspector runs
// inside the scheduler pass, so it never kills immediately.
func (ci *ComponentInspector) Kill(e ecs.Entity) {
	e.Kill()
}

func (ci *ComponentInspector) renderComponent(component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return
	}

	for _, field := range ci.reflection.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, field)
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	if val.Type() == durationType {
		imgui.Text(fmt.Sprintf("%s: %s", name, time.Duration(val.Int())))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			SetInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			SetUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			SetFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			imgui.PushIDStr(name)
			for _, nf := range ci.reflection.GetFields(val.Type()) {
				nestedVal := val.Field(nf.Index)
				if nf.IsPointer && !nestedVal.IsNil() {
					nestedVal = nestedVal.Elem()
				}
				ci.renderField(nf.Name, nestedVal, nf)
			}
			imgui.PopID()
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// SetInt stores v in an addressable signed integer field. Values that
// overflow the field's type are dropped.
func SetInt(field reflect.Value, v int64) bool {
	if !field.CanSet() || field.OverflowInt(v) {
		return false
	}
	field.SetInt(v)
	return true
}

// SetUint stores v in an addressable unsigned integer field.
func SetUint(field reflect.Value, v uint64) bool {
	if !field.CanSet() || field.OverflowUint(v) {
		return false
	}
	field.SetUint(v)
	return true
}

// SetFloat stores v in an addressable float field.
func SetFloat(field reflect.Value, v float64) bool {
	if !field.CanSet() || field.OverflowFloat(v) {
		return false
	}
	field.SetFloat(v)
	return true
}
