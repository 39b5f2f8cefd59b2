package geom

import "math"

// Point is a location in the normalized [0,1]x[0,1] feature plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Dimensions() int {
	return 2
}

func (p Point) Dim(idx int) float64 {
	if idx == 0 {
		return p.X
	}
	return p.Y
}

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
