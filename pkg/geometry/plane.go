package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane through the object space origin
type Plane struct{}

// Kind returns "plane"
func (Plane) Kind() string { return "plane" }

func (Plane) localIntersect(ray core.Ray) []float64 {
	// Parallel or coplanar rays never hit
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

func (Plane) localNormalAt(core.Tuple) core.Tuple {
	return core.Vector(0, 1, 0)
}
