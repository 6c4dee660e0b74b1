// Package fixtures holds derived types covering every merge rule. The merge
// code in fixtures_merge_gen.go is produced by merge-codegen.
package fixtures

import "github.com/TheVova/Merger/merge/omap"

//go:generate go run github.com/TheVova/Merger/cmd/merge-codegen

// Mixed combines the optional, sequence, indirection and ordered map rules.
//
//merge:derive
type Mixed struct {
	A int
	B *uint8
	C []float64
	D **uint
	E *omap.Map[uint, string]
}

//merge:derive
type Scalars struct {
	A int32
	B *float64
	C *uint
}

//merge:derive
type Lists struct {
	A []int64
	B string
}

//merge:derive
type Maps struct {
	A omap.Map[string, float64]
	B map[string]float64
}

// Shape is one of A, carrying an int, the unit B, the single-field struct C,
// or the pointer variants *D and *E.
//
//merge:derive strict
type Shape interface {
	isShape()
}

// A is the payload variant of Shape.
type A int

// B is the unit variant of Shape.
type B struct{}

// C merges its only field.
type C struct {
	Tags []string
}

// D implements Shape by pointer; its value is the payload.
type D int

// E implements Shape by pointer and merges its only field in place.
type E struct {
	Items []int
}

func (A) isShape()  {}
func (B) isShape()  {}
func (C) isShape()  {}
func (*D) isShape() {}
func (*E) isShape() {}

// Pair only needs a merge capability for V: keys are appended or compared,
// never merged.
//
//merge:derive
type Pair[K comparable, V any] struct {
	Keys   []K
	Values map[K]V
	Last   *V
}

//merge:derive
type Inventory struct {
	Counts  Pair[string, int]
	Shape   Shape
	Notes   []string `merge:"replace"`
	Scratch []byte   `merge:"-"`
}
