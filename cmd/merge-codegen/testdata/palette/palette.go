package palette

//merge:derive
type Palette struct {
	Name   string
	Colors map[string]RGB
	Accent *RGB
}

//merge:derive
type RGB struct {
	R, G, B uint8
}
