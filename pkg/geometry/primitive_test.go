package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestNewPrimitive_Defaults(t *testing.T) {
	constructors := map[string]func() *Primitive{
		"sphere":   NewSphere,
		"plane":    NewPlane,
		"cube":     NewCube,
		"cylinder": func() *Primitive { return NewCylinder(math.Inf(-1), math.Inf(1), false) },
		"cone":     func() *Primitive { return NewCone(math.Inf(-1), math.Inf(1), false) },
	}

	for kind, newPrimitive := range constructors {
		t.Run(kind, func(t *testing.T) {
			p := newPrimitive()
			if p.Shape().Kind() != kind {
				t.Errorf("Expected shape %q, got %q", kind, p.Shape().Kind())
			}
			if !p.Transform().Equals(core.Identity()) {
				t.Errorf("Expected identity transform, got %v", p.Transform())
			}
			if p.Material() != material.DefaultMaterial() {
				t.Errorf("Expected default material, got %+v", p.Material())
			}
		})
	}
}

func TestPrimitive_IdentityIsUnique(t *testing.T) {
	a := NewSphere()
	b := NewSphere()

	if a.ID() == b.ID() {
		t.Error("Two geometrically identical primitives must have different IDs")
	}

	// Mutations keep the identity
	id := a.ID()
	if err := a.SetTransform(core.Translation(1, 2, 3)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	a.SetMaterial(material.Glass())
	if a.ID() != id {
		t.Error("Setters must not change the primitive ID")
	}
}

func TestPrimitive_SetTransformRejectsSingular(t *testing.T) {
	p := NewSphere()
	if err := p.SetTransform(core.Translation(2, 3, 4)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := p.SetTransform(core.Scaling(0, 1, 1))
	if !errors.Is(err, ErrSingularTransform) {
		t.Errorf("Expected ErrSingularTransform, got %v", err)
	}
	if !p.Transform().Equals(core.Translation(2, 3, 4)) {
		t.Errorf("Failed SetTransform must keep the previous transform, got %v", p.Transform())
	}
}

func TestNewGlassSphere(t *testing.T) {
	p := NewGlassSphere()
	if p.Material().Transparency != 1.0 || p.Material().RefractiveIndex != 1.5 {
		t.Errorf("Unexpected glass sphere material %+v", p.Material())
	}
}

func TestPrimitive_IntersectTransformed(t *testing.T) {
	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))

	scaled := NewSphere()
	if err := scaled.SetTransform(core.Scaling(2, 2, 2)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	xs := scaled.Intersect(ray)
	if len(xs) != 2 {
		t.Fatalf("Expected 2 intersections, got %d", len(xs))
	}
	if xs[0].T != 3 || xs[1].T != 7 {
		t.Errorf("Expected t=3,7, got %f,%f", xs[0].T, xs[1].T)
	}
	if xs[0].Object != scaled || xs[1].Object != scaled {
		t.Error("Intersections must reference the intersected primitive")
	}

	translated := NewSphere()
	if err := translated.SetTransform(core.Translation(5, 0, 0)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if xs := translated.Intersect(ray); len(xs) != 0 {
		t.Errorf("Expected miss, got %d intersections", len(xs))
	}

	// The world ray is not modified by the object transform
	if !ray.Origin.Equals(core.Point(0, 0, -5)) || !ray.Direction.Equals(core.Vector(0, 0, 1)) {
		t.Errorf("Ray was modified: %v", ray)
	}
}

func TestPrimitive_NormalAt(t *testing.T) {
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name      string
		primitive func() *Primitive
		transform core.Matrix
		point     core.Tuple
		expected  core.Tuple
	}{
		{
			name:      "translated sphere",
			primitive: NewSphere,
			transform: core.Translation(0, 1, 0),
			point:     core.Point(0, 1.70711, -0.70711),
			expected:  core.Vector(0, 0.70711, -0.70711),
		},
		{
			name:      "scaled and rotated sphere",
			primitive: NewSphere,
			transform: core.Scaling(1, 0.5, 1).Multiply(core.RotationZ(math.Pi / 5)),
			point:     core.Point(0, s2, -s2),
			expected:  core.Vector(0, 0.97014, -0.24254),
		},
		{
			name:      "rotated plane",
			primitive: NewPlane,
			transform: core.RotationZ(math.Pi / 2),
			point:     core.Point(-1, 0, 0),
			expected:  core.Vector(-1, 0, 0),
		},
		{
			name:      "non-uniformly scaled cube",
			primitive: NewCube,
			transform: core.Scaling(3, 1, 0.5),
			point:     core.Point(3, 0.2, 0.1),
			expected:  core.Vector(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.primitive()
			if err := p.SetTransform(tt.transform); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			got := p.NormalAt(tt.point)
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if !got.IsVector() {
				t.Errorf("Normal must be a vector, got w=%f", got.W)
			}
			if math.Abs(got.Magnitude()-1) > tolerance {
				t.Errorf("Normal must be unit length, got %f", got.Magnitude())
			}
		})
	}
}

func TestPrimitive_NormalIsUnitForEveryShape(t *testing.T) {
	transform := core.Identity().Scale(2, 0.5, 3).RotateY(0.3).Translate(1, -2, 4)
	points := map[string]core.Tuple{
		"sphere":   core.Point(0, 1, 0),
		"plane":    core.Point(3, 0, -7),
		"cube":     core.Point(1, 0.3, -0.2),
		"cylinder": core.Point(0, 0.4, 1),
		"cone":     core.Point(1, 1, 0),
	}
	primitives := []*Primitive{
		NewSphere(),
		NewPlane(),
		NewCube(),
		NewCylinder(-1, 1, true),
		NewCone(-2, 2, true),
	}

	for _, p := range primitives {
		if err := p.SetTransform(transform); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		worldPoint := transform.MultiplyTuple(points[p.Shape().Kind()])
		n := p.NormalAt(worldPoint)
		if math.Abs(n.Magnitude()-1) > tolerance {
			t.Errorf("%s: expected unit normal, got magnitude %f", p.Shape().Kind(), n.Magnitude())
		}
	}
}

func TestPrimitive_WorldToObject(t *testing.T) {
	p := NewSphere()
	if err := p.SetTransform(core.Scaling(2, 2, 2)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := p.WorldToObject(core.Point(2, 4, -6)); !got.Equals(core.Point(1, 2, -3)) {
		t.Errorf("Expected (1,2,-3), got %v", got)
	}
}
