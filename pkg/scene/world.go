package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// World is the flat list of primitives and the single light a render sees.
// A world is read-only while a render is in progress.
type World struct {
	Light   *lights.PointLight // nil renders every surface black
	Objects []*geometry.Primitive
}

// NewWorld creates an empty world with no light
func NewWorld() *World {
	return &World{}
}

// NewDefaultWorld creates the canonical two sphere world lit from the upper left
func NewDefaultWorld() *World {
	light := lights.NewPointLight(core.Point(-10, 10, -10), core.White)

	outer := geometry.NewSphere()
	outer.SetMaterial(material.DefaultMaterial().
		WithColor(core.NewColor(0.8, 1.0, 0.6)).
		WithDiffuse(0.7).
		WithSpecular(0.2))

	inner := geometry.NewSphere()
	// Uniform scaling is always invertible
	_ = inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w := NewWorld()
	w.SetLight(light)
	w.AddObject(outer)
	w.AddObject(inner)
	return w
}

// AddObject appends primitives to the world
func (w *World) AddObject(objects ...*geometry.Primitive) {
	w.Objects = append(w.Objects, objects...)
}

// SetLight replaces the world's light
func (w *World) SetLight(light lights.PointLight) {
	w.Light = &light
}

// Intersect intersects a ray with every object and returns the sorted hits
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs []geometry.Intersection
	for _, obj := range w.Objects {
		xs = append(xs, obj.Intersect(ray)...)
	}
	return geometry.NewIntersections(xs...)
}

// IsShadowed reports whether any object lies between point and the light.
// Without a light every point is treated as shadowed.
func (w *World) IsShadowed(point core.Tuple) bool {
	if w.Light == nil {
		return true
	}

	direction, distance := w.Light.DirectionFrom(point)
	ray := core.NewRay(point, direction)

	hit, ok := w.Intersect(ray).Hit()
	return ok && hit.T < distance
}

// Validate checks every object's material
func (w *World) Validate() error {
	for i, obj := range w.Objects {
		if err := obj.Material().Validate(); err != nil {
			return fmt.Errorf("object %d (%s): %w", i, obj.Shape().Kind(), err)
		}
	}
	return nil
}
