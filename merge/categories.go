package merge

// Number matches the built-in numeric kinds and types derived from them.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Scalars matches every type merged by replacement.
type Scalars interface {
	Number | ~bool
}

// Scalar replaces self with other.
func Scalar[T Scalars](self *T, other T) {
	*self = other
}

// Replace replaces self with other whatever its type. It is the last write
// wins rule of Scalar for values that have no better rule.
func Replace[T any](self *T, other T) {
	*self = other
}

// Pointer merges optional or indirect values. A nil other leaves self
// unchanged; a nil self receives a copy of other's value; otherwise f merges
// the two referents and self keeps pointing at its own value.
func Pointer[T any](self **T, other *T, f Func[T]) {
	if other == nil {
		return
	}
	if *self == nil {
		v := Clone(*other)
		*self = &v
		return
	}
	f(*self, *other)
}

// PointerValue merges a bare value into an optional: a nil self receives a
// copy of other, otherwise f merges other into the referent.
func PointerValue[T any](self **T, other T, f Func[T]) {
	if *self == nil {
		v := Clone(other)
		*self = &v
		return
	}
	f(*self, other)
}

// PointerFunc lifts the capability of T to *T.
func PointerFunc[T any](f Func[T]) Func[*T] {
	return func(self **T, other *T) {
		Pointer(self, other, f)
	}
}

// Slice appends copies of other's elements, in order, to self.
func Slice[S ~[]E, E any](self *S, other S) {
	Append(self, other...)
}

// Append appends copies of elems to self. Any slice or array view of E can
// be spread into it.
func Append[S ~[]E, E any](self *S, elems ...E) {
	if len(elems) == 0 {
		return
	}
	if !hasRefs[E]() {
		*self = append(*self, elems...)
		return
	}
	s := *self
	for _, e := range elems {
		s = append(s, Clone(e))
	}
	*self = s
}

// String appends other to self.
func String[S ~string](self *S, other S) {
	*self += other
}

// Text appends the text held by other, a string or byte slice, to self.
func Text[S ~string, O ~string | ~[]byte](self *S, other O) {
	*self += S(other)
}

// Map merges other into self key by key. Keys only in other are inserted as
// copies, keys present in both are merged with f and keys only in self are
// left untouched. A nil self is allocated only when other has entries.
func Map[M ~map[K]V, K comparable, V any](self *M, other M, f Func[V]) {
	if len(other) == 0 {
		return
	}
	if *self == nil {
		*self = make(M, len(other))
	}
	m := *self
	for k, ov := range other {
		upsert(m, k, ov, f)
	}
}

// Entry applies the Map rule to a single key and value.
func Entry[M ~map[K]V, K comparable, V any](self *M, key K, value V, f Func[V]) {
	if *self == nil {
		*self = make(M, 1)
	}
	upsert(*self, key, value, f)
}

// MapFunc lifts the capability of V to the map type M.
func MapFunc[M ~map[K]V, K comparable, V any](f Func[V]) Func[M] {
	return func(self *M, other M) {
		Map(self, other, f)
	}
}

func upsert[M ~map[K]V, K comparable, V any](m M, key K, value V, f Func[V]) {
	cur, ok := m[key]
	if !ok {
		m[key] = Clone(value)
		return
	}
	f(&cur, value)
	m[key] = cur
}
