// Package merge combines two values of the same shape into one, in place.
//
// # Overview
//
// A merge mutates its left operand (self) using a read-only right operand
// (other). The rule applied depends on the structural category of the type:
//
//   - Scalars (numbers, booleans): other replaces self.
//   - Optionals (*T, nil is absent): a nil other changes nothing, a nil self
//     takes a copy of other's value, otherwise the pointed-to values merge.
//   - Owned indirections (*T, non-nil): transparent, the pointed-to values
//     merge and the pointer itself is kept.
//   - Sequences (slices): other's elements are appended to self.
//   - Text (strings): other's text is appended to self.
//   - Maps: keys only in other are inserted as copies, keys present on both
//     sides merge their values, keys only in self are left alone.
//
// Every rule is total: a merge never fails and never returns an error.
//
// # Capabilities
//
// The ability of a type to merge is expressed either as a MergeFrom method on
// its pointer type (see From) or as a Func value. Compound rules such as
// Pointer and Map take the Func of their element type, so capabilities
// compose:
//
//	merge.Map(&self.Limits, other.Limits, merge.Scalar[int])
//	merge.Pointer(&self.Inner, other.Inner, merge.Of[Inner]())
//
// Records and tagged unions get their capability from code generated by
// cmd/merge-codegen. Dynamic applies the same rules through reflection for
// types that were never generated.
//
// # Concurrency
//
// Merges are not synchronized. Callers must prevent concurrent merges into
// the same self value and concurrent writes to other during a merge.
package merge
