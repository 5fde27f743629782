package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is the double-napped cone x² + z² = y² around the object space y axis,
// truncated to Minimum < y < Maximum and capped when Closed. The cap at y has
// radius |y|.
type Cone struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// Kind returns "cone"
func (Cone) Kind() string { return "cone" }

func (c Cone) localIntersect(ray core.Ray) []float64 {
	var xs []float64

	o, d := ray.Origin, ray.Direction
	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	inRange := func(t float64) bool {
		y := o.Y + t*d.Y
		return c.Minimum < y && y < c.Maximum
	}

	switch {
	case math.Abs(a) < core.Epsilon && math.Abs(b) < core.Epsilon:
		// Ray misses both halves
	case math.Abs(a) < core.Epsilon:
		// Ray is parallel to one half of the cone and hits the other once
		if t := -cc / (2 * b); inRange(t) {
			xs = append(xs, t)
		}
	default:
		if t0, t1, ok := solveQuadratic(a, b, cc); ok {
			for _, t := range []float64{t0, t1} {
				if inRange(t) {
					xs = append(xs, t)
				}
			}
		}
	}

	return intersectCaps(ray, c.Minimum, c.Maximum, c.Closed, xs, math.Abs)
}

func (c Cone) localNormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if point.Y >= c.Maximum-core.Epsilon && dist < c.Maximum*c.Maximum {
		return core.Vector(0, 1, 0)
	}
	if point.Y <= c.Minimum+core.Epsilon && dist < c.Minimum*c.Minimum {
		return core.Vector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.Vector(point.X, y, point.Z)
}
