package shapes

// Shape is a drawable shape.
//
//merge:derive
type Shape interface {
	area() float64
}

type Circle struct {
	Radius float64
}

type Dot struct{}

func (c Circle) area() float64 { return 3.14159 * c.Radius * c.Radius }
func (Dot) area() float64      { return 0 }

//merge:derive
type Canvas struct {
	Title  string
	Shapes []Shape
	Main   Shape
	Scale  *float64
}
