// Package codegen derives merge implementations for Go types.
//
// Types opt in with a //merge:derive directive in their doc comment. Structs
// are records and get MergeFrom and MergeWith methods merging field by field;
// generic structs get a Merge<Name> function taking one merge.Func per type
// parameter that a field merge needs. Interfaces are unions whose variants
// are the package's types implementing them, and get a Merge<Name> function.
// A union interface must be sealed by at least one unexported method.
// A union directive may add "strict" to also emit Merge<Name>Strict, which
// reports mismatched variants instead of replacing.
//
// Field tags adjust records:
//
//	Cache map[string]int `merge:"-"`       // never merged
//	Mode  Mode           `merge:"replace"` // other always wins
//
// Generated code appears in <package>_merge_gen.go and calls into
// github.com/TheVova/Merger/merge.
//
// # Related Packages
//
//   - github.com/TheVova/Merger/merge - Merge rules and runtime helpers
//   - github.com/TheVova/Merger/merge/omap - Ordered map with a merge rule
package codegen
