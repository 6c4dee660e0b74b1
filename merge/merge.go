package merge

// Func merges other into self in place.
type Func[T any] func(self *T, other T)

// From is implemented by pointer types that know how to merge a value of
// type T into their referent.
type From[T any] interface {
	MergeFrom(other T)
}

// Mergeable is the complete protocol implemented by generated record types.
type Mergeable[T any] interface {
	From[T]
	MergeWith(other T, f Func[T])
}

// Ptr constrains P to be *T with a MergeFrom method.
type Ptr[T any] interface {
	*T
	From[T]
}

// Merge merges other into self using self's MergeFrom method.
func Merge[T any, P Ptr[T]](self *T, other T) {
	P(self).MergeFrom(other)
}

// With merges other into self using f instead of the type's own capability.
func With[T any](self *T, other T, f Func[T]) {
	f(self, other)
}

// Of returns the capability of a type implementing From on its pointer.
func Of[T any, P Ptr[T]]() Func[T] {
	return func(self *T, other T) {
		P(self).MergeFrom(other)
	}
}
