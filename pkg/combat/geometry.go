package combat

import (
	"fmt"
	"math"
)

// Vec is a position on the combat plane.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp returns the point at fraction t along the line from v to o.
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{X: v.X + t*(o.X-v.X), Y: v.Y + t*(o.Y-v.Y)}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}
