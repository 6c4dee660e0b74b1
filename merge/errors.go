package merge

import (
	"fmt"
	"reflect"
)

// VariantMismatchError is returned by strict union merges when self and
// other hold different variants.
type VariantMismatchError struct {
	Union string
	Self  string
	Other string
}

func (e *VariantMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("merge: %s: variant mismatch: self is %s, other is %s", e.Union, e.Self, e.Other)
}

// CheckVariant reports a *VariantMismatchError when self and other are both
// present and hold values of different dynamic types.
func CheckVariant(union string, self, other any) error {
	if self == nil || other == nil {
		return nil
	}
	st, ot := reflect.TypeOf(self), reflect.TypeOf(other)
	if st == ot {
		return nil
	}
	return &VariantMismatchError{Union: union, Self: st.String(), Other: ot.String()}
}
