package geometry

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection is a point where a ray meets a primitive, t units along the ray
type Intersection struct {
	T      float64
	Object *Primitive
}

// Intersections is a list of intersections sorted by ascending t
type Intersections []Intersection

// NewIntersections collects and sorts intersections
func NewIntersections(xs ...Intersection) Intersections {
	result := make(Intersections, len(xs))
	copy(result, xs)
	result.sort()
	return result
}

// Merge returns a new sorted list holding xs and more
func (xs Intersections) Merge(more ...Intersection) Intersections {
	result := make(Intersections, 0, len(xs)+len(more))
	result = append(result, xs...)
	result = append(result, more...)
	result.sort()
	return result
}

func (xs Intersections) sort() {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].T < xs[j].T
	})
}

// Hit returns the intersection with the smallest positive t
func (xs Intersections) Hit() (Intersection, bool) {
	for _, x := range xs {
		if x.T > 0 {
			return x, true
		}
	}
	return Intersection{}, false
}

// Computations holds the values needed to shade one intersection
type Computations struct {
	T      float64
	Object *Primitive

	Point      core.Tuple
	OverPoint  core.Tuple // Point nudged along the normal, origin for shadow and reflection rays
	UnderPoint core.Tuple // Point nudged against the normal, origin for refraction rays
	Eye        core.Tuple
	Normal     core.Tuple // Always faces the eye
	Reflect    core.Tuple
	Inside     bool

	N1 float64 // Refractive index of the medium being exited
	N2 float64 // Refractive index of the medium being entered
}

// PrepareComputations computes shading values for hit, one of the sorted
// intersections xs produced by ray. The refractive indices come from walking
// xs while tracking which transparent objects the ray is inside.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
		Point:  ray.Position(hit.T),
		Eye:    ray.Direction.Negate(),
	}

	comps.Normal = hit.Object.NormalAt(comps.Point)
	if comps.Normal.Dot(comps.Eye) < 0 {
		comps.Inside = true
		comps.Normal = comps.Normal.Negate()
	}

	offset := comps.Normal.Multiply(core.Epsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Subtract(offset)
	comps.Reflect = ray.Direction.Reflect(comps.Normal)

	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices walks xs keeping a stack of the objects the ray is inside
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1.0, 1.0
	var containers []*Primitive

	top := func() float64 {
		if len(containers) == 0 {
			return 1.0
		}
		return containers[len(containers)-1].Material().RefractiveIndex
	}

	for _, x := range xs {
		isHit := x.T == hit.T && x.Object.ID() == hit.Object.ID()
		if isHit {
			n1 = top()
		}

		if i := indexOf(containers, x.Object.ID()); i >= 0 {
			containers = append(containers[:i], containers[i+1:]...)
		} else {
			containers = append(containers, x.Object)
		}

		if isHit {
			n2 = top()
			break
		}
	}
	return n1, n2
}

func indexOf(containers []*Primitive, id uuid.UUID) int {
	for i, p := range containers {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

// Schlick approximates the fraction of light reflected at the surface
func (c Computations) Schlick() float64 {
	cos := c.Eye.Dot(c.Normal)

	// Total internal reflection is only possible going into a less dense medium
	if c.N1 > c.N2 {
		n := c.N1 / c.N2
		sin2T := n * n * (1 - cos*cos)
		if sin2T > 1 {
			return 1.0
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (c.N1 - c.N2) / (c.N1 + c.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
