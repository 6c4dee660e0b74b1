package merge

import "reflect"

// Dynamic merges other into self by inspecting their shape at run time.
//
// It follows the same rules as the typed functions of this package. Types
// whose pointer implements MergeFrom are merged by that method. Structs merge
// their exported fields in declaration order, arrays merge element by
// element, and interfaces behave as tagged unions: the same dynamic type
// merges, a different one replaces self with a copy of other, and a nil
// other leaves self alone. Functions and channels are replaced.
//
// Dynamic is slower than generated code and is meant for types that have no
// generated capability.
func Dynamic[T any](self *T, other T) {
	mergeValue(reflect.ValueOf(self).Elem(), reflect.ValueOf(&other).Elem())
}

func mergeValue(self, other reflect.Value) {
	if m, ok := fromMethod(self); ok {
		m.Call([]reflect.Value{other})
		return
	}

	switch self.Kind() {
	case reflect.String:
		self.SetString(self.String() + other.String())
	case reflect.Slice:
		if other.Len() == 0 {
			return
		}
		self.Set(reflect.AppendSlice(self, cloneValue(other)))
	case reflect.Pointer:
		if other.IsNil() {
			return
		}
		if self.IsNil() {
			self.Set(cloneValue(other))
			return
		}
		mergeValue(self.Elem(), other.Elem())
	case reflect.Map:
		mergeMap(self, other)
	case reflect.Struct:
		for i := 0; i < self.NumField(); i++ {
			field := self.Field(i)
			if !field.CanSet() {
				continue
			}
			mergeValue(field, other.Field(i))
		}
	case reflect.Array:
		for i := 0; i < self.Len(); i++ {
			mergeValue(self.Index(i), other.Index(i))
		}
	case reflect.Interface:
		if other.IsNil() {
			return
		}
		if self.IsNil() || self.Elem().Type() != other.Elem().Type() {
			self.Set(cloneValue(other))
			return
		}
		cur := reflect.New(self.Elem().Type()).Elem()
		cur.Set(self.Elem())
		mergeValue(cur, other.Elem())
		self.Set(cur)
	default:
		self.Set(other)
	}
}

func mergeMap(self, other reflect.Value) {
	if other.Len() == 0 {
		return
	}
	if self.IsNil() {
		self.Set(reflect.MakeMapWithSize(self.Type(), other.Len()))
	}
	iter := other.MapRange()
	for iter.Next() {
		key, value := iter.Key(), iter.Value()
		existing := self.MapIndex(key)
		if !existing.IsValid() {
			self.SetMapIndex(key, cloneValue(value))
			continue
		}
		cur := reflect.New(existing.Type()).Elem()
		cur.Set(existing)
		mergeValue(cur, value)
		self.SetMapIndex(key, cur)
	}
}

// fromMethod returns self's MergeFrom method when its pointer type has one
// accepting a value of self's own type.
func fromMethod(self reflect.Value) (reflect.Value, bool) {
	if !self.CanAddr() {
		return reflect.Value{}, false
	}
	ptr := self.Addr()
	m, ok := ptr.Type().MethodByName("MergeFrom")
	if !ok {
		return reflect.Value{}, false
	}
	if m.Type.NumIn() != 2 || m.Type.NumOut() != 0 || m.Type.In(1) != self.Type() {
		return reflect.Value{}, false
	}
	return ptr.Method(m.Index), true
}
