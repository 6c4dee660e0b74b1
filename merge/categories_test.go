package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScalarReplaces(t *testing.T) {
	for _, tc := range []struct{ self, other int }{
		{0, 0},
		{42, 0},
		{-1, 7},
	} {
		s := tc.self
		Scalar(&s, tc.other)
		if s != tc.other {
			t.Errorf("Scalar(%d, %d) = %d", tc.self, tc.other, s)
		}
	}

	b := true
	Scalar(&b, false)
	if b {
		t.Error("expected bool to be replaced")
	}

	type celsius float64
	c := celsius(1.5)
	Scalar(&c, 3)
	if c != 3 {
		t.Errorf("expected named float to be replaced, got %v", c)
	}
}

func TestPointerOptional(t *testing.T) {
	u8 := func(v uint8) *uint8 { return &v }

	tests := []struct {
		name        string
		self, other *uint8
		want        *uint8
	}{
		{name: "absent other", self: u8(3), other: nil, want: u8(3)},
		{name: "both absent", self: nil, other: nil, want: nil},
		{name: "absent self", self: nil, other: u8(8), want: u8(8)},
		{name: "both present", self: u8(1), other: u8(2), want: u8(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := tt.self
			Pointer(&self, tt.other, Scalar[uint8])
			if diff := cmp.Diff(tt.want, self); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if tt.other != nil && self == tt.other {
				t.Error("self must not alias other")
			}
		})
	}
}

func TestPointerKeepsIndirection(t *testing.T) {
	v := 3
	self := &v
	other := 1
	Pointer(&self, &other, Scalar[int])
	if self != &v {
		t.Fatal("pointer was replaced")
	}
	if v != 1 {
		t.Errorf("expected referent 1, got %d", v)
	}
}

func TestPointerNested(t *testing.T) {
	inner := 42
	self := &inner
	selfBox := &self
	var absent *int
	Pointer(&selfBox, &absent, PointerFunc(Scalar[int]))
	if **selfBox != 42 {
		t.Errorf("absent optional must not change self, got %d", **selfBox)
	}
}

func TestPointerValue(t *testing.T) {
	var self *string
	PointerValue(&self, "a", String[string])
	PointerValue(&self, "b", String[string])
	if self == nil || *self != "ab" {
		t.Errorf("expected ab, got %v", self)
	}
}

func TestSliceAppends(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{3, 2, 1}
	Slice(&a, b)
	want := []float64{1, 2, 3, 3, 2, 1}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3, 2, 1}, b); diff != "" {
		t.Errorf("other changed (-want +got):\n%s", diff)
	}
}

func TestAppendFromArray(t *testing.T) {
	v := []int{1, 2, 3}
	arr := [3]int{3, 2, 1}
	Append(&v, arr[:]...)
	if diff := cmp.Diff([]int{1, 2, 3, 3, 2, 1}, v); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSliceCopiesReferences(t *testing.T) {
	var self [][]int
	other := [][]int{{1}}
	Slice(&self, other)
	self[0][0] = 9
	if other[0][0] != 1 {
		t.Error("appended element aliases other")
	}
}

func TestStringAppends(t *testing.T) {
	s := "Hello, "
	String(&s, "World")
	if s != "Hello, World" {
		t.Errorf("got %q", s)
	}

	Text(&s, []byte("!"))
	if s != "Hello, World!" {
		t.Errorf("got %q", s)
	}
}

func TestMapRule(t *testing.T) {
	self := map[string][]int{
		"both": {1},
		"self": {2},
	}
	other := map[string][]int{
		"both":  {3},
		"other": {4},
	}
	Map(&self, other, Slice[[]int])

	want := map[string][]int{
		"both":  {1, 3},
		"self":  {2},
		"other": {4},
	}
	if diff := cmp.Diff(want, self); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	self["other"][0] = 0
	if other["other"][0] != 4 {
		t.Error("inserted value aliases other")
	}
}

func TestMapNilSelf(t *testing.T) {
	var self map[uint]string
	Map(&self, map[uint]string{}, String[string])
	if self != nil {
		t.Error("empty other must not allocate")
	}
	Map(&self, map[uint]string{1: "a"}, String[string])
	if self[1] != "a" {
		t.Errorf("got %v", self)
	}
}

func TestEntry(t *testing.T) {
	m := map[string]int{"a": 1}
	Entry(&m, "a", 5, Scalar[int])
	Entry(&m, "b", 2, Scalar[int])
	if diff := cmp.Diff(map[string]int{"a": 5, "b": 2}, m); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	var nilMap map[string]int
	Entry(&nilMap, "x", 1, Scalar[int])
	if nilMap["x"] != 1 {
		t.Errorf("got %v", nilMap)
	}
}

func TestMapFunc(t *testing.T) {
	self := map[string]map[string]int{"a": {"x": 1}}
	other := map[string]map[string]int{"a": {"y": 2}, "b": {"z": 3}}
	f := MapFunc[map[string]map[string]int](MapFunc[map[string]int](Scalar[int]))
	f(&self, other)
	want := map[string]map[string]int{"a": {"x": 1, "y": 2}, "b": {"z": 3}}
	if diff := cmp.Diff(want, self); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
