package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned box spanning -1..1 on every object space axis
type Cube struct{}

// Kind returns "cube"
func (Cube) Kind() string { return "cube" }

// localIntersect uses the slab method: the ray is inside the cube where it is
// inside all three axis slabs at once
func (Cube) localIntersect(ray core.Ray) []float64 {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	origins := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	directions := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		t1, t2, ok := checkAxis(origins[axis], directions[axis])
		if !ok {
			return nil
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	if tMin > tMax {
		return nil
	}
	return []float64{tMin, tMax}
}

// checkAxis returns the interval of t where the ray is between the -1 and 1 planes of one axis
func checkAxis(origin, direction float64) (float64, float64, bool) {
	if math.Abs(direction) < core.Epsilon {
		// Ray is parallel to this slab
		if origin < -1 || origin > 1 {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}

	t1 := (-1 - origin) / direction
	t2 := (1 - origin) / direction
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}

func (Cube) localNormalAt(point core.Tuple) core.Tuple {
	absX, absY, absZ := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxComponent := math.Max(absX, math.Max(absY, absZ))

	switch maxComponent {
	case absX:
		return core.Vector(point.X, 0, 0)
	case absY:
		return core.Vector(0, point.Y, 0)
	default:
		return core.Vector(0, 0, point.Z)
	}
}
