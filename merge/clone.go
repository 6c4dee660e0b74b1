package merge

import (
	"reflect"
	"sync"
)

// Cloner is implemented by types that produce their own independent copies.
type Cloner[T any] interface {
	Clone() T
}

// Clone returns a copy of v that shares no mutable memory with it. Rules use
// it for the values they insert into self, so later merges into self never
// reach back into other.
//
// Values implementing Cloner are asked for their copy. Everything else is
// copied by walking pointers, maps, slices, arrays, interfaces and exported
// struct fields. Unexported fields are copied shallowly. Cyclic pointer
// graphs are not supported.
func Clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	if !hasRefs[T]() {
		return v
	}
	rv := reflect.ValueOf(&v).Elem()
	out := reflect.New(rv.Type()).Elem()
	out.Set(cloneValue(rv))
	res, _ := out.Interface().(T)
	return res
}

var refsCache sync.Map // reflect.Type -> bool

func hasRefs[T any]() bool {
	return typeHasRefs(reflect.TypeFor[T]())
}

func typeHasRefs(t reflect.Type) bool {
	if v, ok := refsCache.Load(t); ok {
		return v.(bool)
	}
	res := computeHasRefs(t)
	refsCache.Store(t, res)
	return res
}

func computeHasRefs(t reflect.Type) bool {
	if isCloner(t) {
		return true
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return true
	case reflect.Array:
		return t.Len() > 0 && typeHasRefs(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasRefs(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func isCloner(t reflect.Type) bool {
	m, ok := t.MethodByName("Clone")
	if !ok {
		return false
	}
	// m.Type includes the receiver.
	return m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0) == t
}

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	if isCloner(v.Type()) && v.CanInterface() {
		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface || !v.IsNil() {
			return v.MethodByName("Clone").Call(nil)[0]
		}
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := cloneValue(v.Elem())
		res := reflect.New(v.Type()).Elem()
		res.Set(elem)
		return res
	case reflect.Struct:
		clone := reflect.New(v.Type()).Elem()
		clone.Set(v)
		for i := 0; i < v.NumField(); i++ {
			field := clone.Field(i)
			if !field.CanSet() || !typeHasRefs(field.Type()) {
				continue
			}
			field.Set(cloneValue(v.Field(i)))
		}
		return clone
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		if !typeHasRefs(v.Type().Elem()) {
			reflect.Copy(clone, v)
			return clone
		}
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	case reflect.Array:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	default:
		res := reflect.New(v.Type()).Elem()
		res.Set(v)
		return res
	}
}
