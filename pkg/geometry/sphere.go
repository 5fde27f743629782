package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is the unit sphere centered at the object space origin
type Sphere struct{}

// Kind returns "sphere"
func (Sphere) Kind() string { return "sphere" }

func (Sphere) localIntersect(ray core.Ray) []float64 {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(core.Point(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if math.Abs(a) < core.Epsilon {
		// Degenerate zero length direction
		return nil
	}
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - 1

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return nil
	}
	return []float64{t0, t1}
}

func (Sphere) localNormalAt(point core.Tuple) core.Tuple {
	return point.Subtract(core.Point(0, 0, 0))
}
