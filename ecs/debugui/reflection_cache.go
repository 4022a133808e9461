package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct. Type is the
// field type with one level of pointer removed.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// Kind returns the kind of the dereferenced field type.
func (f FieldInfo) Kind() reflect.Kind {
	return f.Type.Kind()
}

// ReflectionCache memoises the exported fields of the component types shown
// by the inspector. It is safe for concurrent use.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// GetFields returns the exported fields of t in declaration order. Non-struct
// types have none.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}

			ft := sf.Type
			isPointer := ft.Kind() == reflect.Ptr
			if isPointer {
				ft = ft.Elem()
			}
			fields = append(fields, FieldInfo{Name: sf.Name, Type: ft, Index: i, IsPointer: isPointer})
		}
	}

	actual, _ := rc.fields.LoadOrStore(t, fields)
	return actual.([]FieldInfo)
}

// Len returns the number of cached types.
func (rc *ReflectionCache) Len() int {
	n := 0
	rc.fields.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

var globalReflectionCache = NewReflectionCache()
