package settings

//merge:derive
type Conf struct {
	N    int
	Tags []string
}

// Combine layers b over a.
func Combine(a, b Conf) Conf {
	a.MergeFrom(b)
	return a
}
