package plain

// Point has no directive and is left alone.
type Point struct {
	X, Y int
}
