package stale

//merge:derive
type Point struct {
	X, Y int
}
