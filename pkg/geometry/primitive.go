package geometry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrSingularTransform is returned when a primitive is given a transform that cannot be inverted
var ErrSingularTransform = errors.New("geometry: primitive transform is not invertible")

// Primitive places a Shape in the world with a transform and a material.
// Each primitive carries a unique ID so two geometrically identical
// primitives are still distinguishable.
type Primitive struct {
	id       uuid.UUID
	shape    Shape
	material material.Material

	// Cached derived values
	transform        core.Matrix // object -> world
	inverse          core.Matrix // world -> object
	inverseTranspose core.Matrix // object normal -> world normal
}

// NewPrimitive creates a primitive with an identity transform and the default material
func NewPrimitive(shape Shape) *Primitive {
	return &Primitive{
		id:               uuid.New(),
		shape:            shape,
		material:         material.DefaultMaterial(),
		transform:        core.Identity(),
		inverse:          core.Identity(),
		inverseTranspose: core.Identity(),
	}
}

// NewSphere creates a unit sphere at the origin
func NewSphere() *Primitive {
	return NewPrimitive(Sphere{})
}

// NewGlassSphere creates a unit sphere with the glass material
func NewGlassSphere() *Primitive {
	p := NewSphere()
	p.SetMaterial(material.Glass())
	return p
}

// NewPlane creates the infinite xz plane
func NewPlane() *Primitive {
	return NewPrimitive(Plane{})
}

// NewCube creates the axis-aligned cube spanning -1..1 on every axis
func NewCube() *Primitive {
	return NewPrimitive(Cube{})
}

// NewCylinder creates a unit radius cylinder around the y axis, truncated to (minimum, maximum)
func NewCylinder(minimum, maximum float64, closed bool) *Primitive {
	return NewPrimitive(Cylinder{Minimum: minimum, Maximum: maximum, Closed: closed})
}

// NewCone creates a double-napped cone around the y axis, truncated to (minimum, maximum)
func NewCone(minimum, maximum float64, closed bool) *Primitive {
	return NewPrimitive(Cone{Minimum: minimum, Maximum: maximum, Closed: closed})
}

// ID returns the primitive's unique identity
func (p *Primitive) ID() uuid.UUID {
	return p.id
}

// Shape returns the primitive's local geometry
func (p *Primitive) Shape() Shape {
	return p.shape
}

// Transform returns the object to world transform
func (p *Primitive) Transform() core.Matrix {
	return p.transform
}

// SetTransform replaces the object to world transform. A singular matrix is
// rejected and the previous transform is kept.
func (p *Primitive) SetTransform(m core.Matrix) error {
	inverse, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSingularTransform, err)
	}
	p.transform = m
	p.inverse = inverse
	p.inverseTranspose = inverse.Transpose()
	return nil
}

// Material returns the primitive's material
func (p *Primitive) Material() material.Material {
	return p.material
}

// SetMaterial replaces the primitive's material
func (p *Primitive) SetMaterial(m material.Material) {
	p.material = m
}

// WorldToObject maps a world space point into object space
func (p *Primitive) WorldToObject(point core.Tuple) core.Tuple {
	return p.inverse.MultiplyTuple(point)
}

// Intersect returns every intersection of a world space ray with the primitive, unsorted
func (p *Primitive) Intersect(ray core.Ray) []Intersection {
	localRay := ray.Transform(p.inverse)
	ts := p.shape.localIntersect(localRay)
	if len(ts) == 0 {
		return nil
	}

	xs := make([]Intersection, len(ts))
	for i, t := range ts {
		xs[i] = p.Intersection(t)
	}
	return xs
}

// NormalAt returns the unit world space normal at a world space point on the surface
func (p *Primitive) NormalAt(worldPoint core.Tuple) core.Tuple {
	localPoint := p.inverse.MultiplyTuple(worldPoint)
	localNormal := p.shape.localNormalAt(localPoint)

	// The inverse transpose is correct for normals under non-uniform scaling,
	// but it smears translation into w
	worldNormal := p.inverseTranspose.MultiplyTuple(localNormal)
	worldNormal.W = 0
	return worldNormal.Normalize()
}

// Intersection returns an intersection with this primitive at t
func (p *Primitive) Intersection(t float64) Intersection {
	return Intersection{T: t, Object: p}
}
