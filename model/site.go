package model

// Site is a fixed ground location evaluated for coverage. Branch and Region
// are descriptive metadata carried through from the site catalog; the engine
// computes coverage for every site it is given and never filters on them.
type Site struct {
	ID     string
	Name   string
	LatDeg float64
	LonDeg float64

	Branch string
	Region string
}
