package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a radius 1 cylinder around the object space y axis. It is
// truncated to Minimum < y < Maximum (both exclusive) and capped when Closed.
// Use math.Inf for an infinite cylinder.
type Cylinder struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// Kind returns "cylinder"
func (Cylinder) Kind() string { return "cylinder" }

func (c Cylinder) localIntersect(ray core.Ray) []float64 {
	var xs []float64

	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z

	// A ray parallel to the y axis can only hit the caps
	if math.Abs(a) >= core.Epsilon {
		b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		if t0, t1, ok := solveQuadratic(a, b, cc); ok {
			for _, t := range []float64{t0, t1} {
				y := ray.Origin.Y + t*ray.Direction.Y
				if c.Minimum < y && y < c.Maximum {
					xs = append(xs, t)
				}
			}
		}
	}

	return intersectCaps(ray, c.Minimum, c.Maximum, c.Closed, xs, func(float64) float64 { return 1 })
}

func (c Cylinder) localNormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if dist < 1 && point.Y >= c.Maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}
	return core.Vector(point.X, 0, point.Z)
}

// intersectCaps appends the hits on the end caps at y=minimum and y=maximum.
// capRadius gives the cap radius at a given y.
func intersectCaps(ray core.Ray, minimum, maximum float64, closed bool, xs []float64, capRadius func(y float64) float64) []float64 {
	if !closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	for _, y := range []float64{minimum, maximum} {
		t := (y - ray.Origin.Y) / ray.Direction.Y
		if checkCap(ray, t, capRadius(y)) {
			xs = append(xs, t)
		}
	}
	return xs
}

// checkCap reports whether the ray at t is within radius of the y axis
func checkCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}
