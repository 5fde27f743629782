package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Shape is the local geometry of a primitive: a unit object centered at the
// origin of its own coordinate system. The set of shapes is closed; only the
// types in this package implement it.
type Shape interface {
	// Kind names the shape, e.g. "sphere"
	Kind() string

	// localIntersect returns the t values where an object space ray meets the shape, in any order
	localIntersect(ray core.Ray) []float64

	// localNormalAt returns the object space normal at a point on the surface, not necessarily unit length
	localNormalAt(point core.Tuple) core.Tuple
}

// solveQuadratic returns the real roots of at² + bt + c = 0 in ascending order
func solveQuadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 = (-b - sqrtD) / (2 * a)
	t1 = (-b + sqrtD) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
