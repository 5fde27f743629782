package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Reflection and refraction goldens depend on the surface offset, so they are
// compared more loosely than direct shading
const looseTolerance = 1e-3

func assertColor(t *testing.T, got, expected core.Color, tolerance float64) {
	t.Helper()
	if math.Abs(got.R-expected.R) > tolerance ||
		math.Abs(got.G-expected.G) > tolerance ||
		math.Abs(got.B-expected.B) > tolerance {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func mustTransform(t *testing.T, p *geometry.Primitive, m core.Matrix) *geometry.Primitive {
	t.Helper()
	if err := p.SetTransform(m); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return p
}

func TestWhitted_ShadeHit(t *testing.T) {
	w := scene.NewDefaultWorld()
	wt := NewWhitted(DefaultMaxDepth)

	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	hit := w.Objects[0].Intersection(4)
	comps := geometry.PrepareComputations(hit, ray, geometry.NewIntersections(hit))

	assertColor(t, wt.ShadeHit(w, comps, DefaultMaxDepth), core.NewColor(0.38066, 0.47583, 0.2855), core.Epsilon)
}

func TestWhitted_ShadeHitFromInside(t *testing.T) {
	w := scene.NewDefaultWorld()
	w.SetLight(lights.NewPointLight(core.Point(0, 0.25, 0), core.White))
	wt := NewWhitted(DefaultMaxDepth)

	ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))
	hit := w.Objects[1].Intersection(0.5)
	comps := geometry.PrepareComputations(hit, ray, geometry.NewIntersections(hit))

	assertColor(t, wt.ShadeHit(w, comps, DefaultMaxDepth), core.NewColor(0.90498, 0.90498, 0.90498), core.Epsilon)
}

func TestWhitted_ShadeHitInShadow(t *testing.T) {
	w := scene.NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(0, 0, -10), core.White))
	s1 := geometry.NewSphere()
	s2 := mustTransform(t, geometry.NewSphere(), core.Translation(0, 0, 10))
	w.AddObject(s1, s2)
	wt := NewWhitted(DefaultMaxDepth)

	ray := core.NewRay(core.Point(0, 0, 5), core.Vector(0, 0, 1))
	hit := s2.Intersection(4)
	comps := geometry.PrepareComputations(hit, ray, geometry.NewIntersections(hit))

	assertColor(t, wt.ShadeHit(w, comps, DefaultMaxDepth), core.NewColor(0.1, 0.1, 0.1), core.Epsilon)
}

func TestWhitted_ShadeHitWithoutLightIsBlack(t *testing.T) {
	w := scene.NewDefaultWorld()
	w.Light = nil
	wt := NewWhitted(DefaultMaxDepth)

	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	if got := wt.RayColor(ray, w); got != core.Black {
		t.Errorf("Expected black without a light, got %v", got)
	}
}

func TestWhitted_ColorAt(t *testing.T) {
	wt := NewWhitted(DefaultMaxDepth)

	t.Run("ray misses", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 1, 0))
		if got := wt.ColorAt(w, ray, DefaultMaxDepth); got != core.Black {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("ray hits", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		assertColor(t, wt.ColorAt(w, ray, DefaultMaxDepth), core.NewColor(0.38066, 0.47583, 0.2855), core.Epsilon)
	})

	t.Run("intersection behind the ray", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		outer, inner := w.Objects[0], w.Objects[1]
		outer.SetMaterial(outer.Material().WithAmbient(1))
		inner.SetMaterial(inner.Material().WithAmbient(1))

		ray := core.NewRay(core.Point(0, 0, 0.75), core.Vector(0, 0, -1))
		assertColor(t, wt.ColorAt(w, ray, DefaultMaxDepth), inner.Material().Color, core.Epsilon)
	})
}

func TestWhitted_ReflectedColor(t *testing.T) {
	s2 := math.Sqrt2 / 2
	wt := NewWhitted(DefaultMaxDepth)

	t.Run("nonreflective material", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		inner := w.Objects[1]
		inner.SetMaterial(inner.Material().WithAmbient(1))

		ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))
		hit := inner.Intersection(1)
		comps := geometry.PrepareComputations(hit, ray, geometry.NewIntersections(hit))
		if got := wt.ReflectedColor(w, comps, DefaultMaxDepth); got != core.Black {
			t.Errorf("Expected black, got %v", got)
		}
	})

	reflectivePlaneWorld := func(t *testing.T) (*scene.World, *geometry.Primitive) {
		w := scene.NewDefaultWorld()
		plane := mustTransform(t, geometry.NewPlane(), core.Translation(0, -1, 0))
		plane.SetMaterial(material.DefaultMaterial().WithReflective(0.5))
		w.AddObject(plane)
		return w, plane
	}
	ray := core.NewRay(core.Point(0, 0, -3), core.Vector(0, -s2, s2))

	t.Run("reflective material", func(t *testing.T) {
		w, plane := reflectivePlaneWorld(t)
		hit := plane.Intersection(math.Sqrt2)
		comps := geometry.PrepareComputations(hit, ray, geometry.NewIntersections(hit))
		assertColor(t, wt.ReflectedColor(w, comps, DefaultMaxDepth), core.NewColor(0.19033, 0.23791, 0.14274), looseTolerance)
	})

	t.Run("shade hit adds reflection", func(t *testing.T) {
		w, plane := reflectivePlaneWorld(t)
		hit := plane.Intersection(math.Sqrt2)
		comps := geometry.PrepareComputations(hit, ray, geometry.NewIntersections(hit))
		assertColor(t, wt.ShadeHit(w, comps, DefaultMaxDepth), core.NewColor(0.87675, 0.92434, 0.82917), looseTolerance)
	})

	t.Run("no depth remaining", func(t *testing.T) {
		w, plane := reflectivePlaneWorld(t)
		hit := plane.Intersection(math.Sqrt2)
		comps := geometry.PrepareComputations(hit, ray, geometry.NewIntersections(hit))
		if got := wt.ReflectedColor(w, comps, 0); got != core.Black {
			t.Errorf("Expected black at depth 0, got %v", got)
		}
	})
}

func TestWhitted_FacingMirrorsTerminate(t *testing.T) {
	w := scene.NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(0, 0, 0), core.White))

	lower := mustTransform(t, geometry.NewPlane(), core.Translation(0, -1, 0))
	lower.SetMaterial(material.DefaultMaterial().WithReflective(1))
	upper := mustTransform(t, geometry.NewPlane(), core.Translation(0, 1, 0))
	upper.SetMaterial(material.DefaultMaterial().WithReflective(1))
	w.AddObject(lower, upper)

	wt := NewWhitted(DefaultMaxDepth)
	got := wt.RayColor(core.NewRay(core.Point(0, 0, 0), core.Vector(0, 1, 0)), w)

	// Each bounce adds at most one surface term, so the result is bounded by the depth
	limit := float64(DefaultMaxDepth+1) * 2
	if got.R <= 0 || got.R > limit {
		t.Errorf("Expected a finite positive color bounded by %f, got %v", limit, got)
	}
}

func TestWhitted_RefractedColor(t *testing.T) {
	s2 := math.Sqrt2 / 2
	wt := NewWhitted(DefaultMaxDepth)

	t.Run("opaque surface", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		shape := w.Objects[0]
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		xs := geometry.NewIntersections(shape.Intersection(4), shape.Intersection(6))
		comps := geometry.PrepareComputations(xs[0], ray, xs)
		if got := wt.RefractedColor(w, comps, DefaultMaxDepth); got != core.Black {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("no depth remaining", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		shape := w.Objects[0]
		shape.SetMaterial(shape.Material().WithTransparency(1).WithRefractiveIndex(1.5))
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		xs := geometry.NewIntersections(shape.Intersection(4), shape.Intersection(6))
		comps := geometry.PrepareComputations(xs[0], ray, xs)
		if got := wt.RefractedColor(w, comps, 0); got != core.Black {
			t.Errorf("Expected black at depth 0, got %v", got)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		shape := w.Objects[0]
		shape.SetMaterial(shape.Material().WithTransparency(1).WithRefractiveIndex(1.5))
		ray := core.NewRay(core.Point(0, 0, s2), core.Vector(0, 1, 0))
		xs := geometry.NewIntersections(shape.Intersection(-s2), shape.Intersection(s2))
		comps := geometry.PrepareComputations(xs[1], ray, xs)
		if got := wt.RefractedColor(w, comps, DefaultMaxDepth); got != core.Black {
			t.Errorf("Expected black under total internal reflection, got %v", got)
		}
	})

	t.Run("refracted ray", func(t *testing.T) {
		w := scene.NewDefaultWorld()
		a, b := w.Objects[0], w.Objects[1]
		a.SetMaterial(a.Material().WithAmbient(1).WithPattern(material.NewTestPattern()))
		b.SetMaterial(b.Material().WithTransparency(1).WithRefractiveIndex(1.5))

		ray := core.NewRay(core.Point(0, 0, 0.1), core.Vector(0, 1, 0))
		xs := geometry.NewIntersections(
			a.Intersection(-0.9899),
			b.Intersection(-0.4899),
			b.Intersection(0.4899),
			a.Intersection(0.9899),
		)
		comps := geometry.PrepareComputations(xs[2], ray, xs)
		assertColor(t, wt.RefractedColor(w, comps, DefaultMaxDepth), core.NewColor(0, 0.99888, 0.04725), looseTolerance)
	})
}

func transparentFloorWorld(t *testing.T, reflective float64) (*scene.World, *geometry.Primitive) {
	w := scene.NewDefaultWorld()

	floor := mustTransform(t, geometry.NewPlane(), core.Translation(0, -1, 0))
	floor.SetMaterial(material.DefaultMaterial().
		WithTransparency(0.5).
		WithRefractiveIndex(1.5).
		WithReflective(reflective))

	ball := mustTransform(t, geometry.NewSphere(), core.Translation(0, -3.5, -0.5))
	ball.SetMaterial(material.DefaultMaterial().WithColor(core.NewColor(1, 0, 0)).WithAmbient(0.5))

	w.AddObject(floor, ball)
	return w, floor
}

func TestWhitted_ShadeHitTransparent(t *testing.T) {
	s2 := math.Sqrt2 / 2
	wt := NewWhitted(DefaultMaxDepth)
	ray := core.NewRay(core.Point(0, 0, -3), core.Vector(0, -s2, s2))

	tests := []struct {
		name       string
		reflective float64
		expected   core.Color
	}{
		{"transparent only", 0, core.NewColor(0.93642, 0.68642, 0.68642)},
		{"reflective and transparent uses schlick", 0.5, core.NewColor(0.93391, 0.69643, 0.69243)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, floor := transparentFloorWorld(t, tt.reflective)
			xs := geometry.NewIntersections(floor.Intersection(math.Sqrt2))
			comps := geometry.PrepareComputations(xs[0], ray, xs)
			assertColor(t, wt.ShadeHit(w, comps, DefaultMaxDepth), tt.expected, looseTolerance)
		})
	}
}

func TestWhitted_DepthZeroIsLocalShadingOnly(t *testing.T) {
	s2 := math.Sqrt2 / 2
	ray := core.NewRay(core.Point(0, 0, -3), core.Vector(0, -s2, s2))
	w, floor := transparentFloorWorld(t, 0.5)
	xs := geometry.NewIntersections(floor.Intersection(math.Sqrt2))
	comps := geometry.PrepareComputations(xs[0], ray, xs)

	wt := NewWhitted(0)
	shadowed := w.IsShadowed(comps.OverPoint)
	local := floor.Material().Lighting(floor, *w.Light, comps.OverPoint, comps.Eye, comps.Normal, shadowed)

	if got := wt.ShadeHit(w, comps, 0); !got.Equals(local) {
		t.Errorf("Expected only the local term %v, got %v", local, got)
	}
}

func TestNewWhitted_NegativeDepth(t *testing.T) {
	if wt := NewWhitted(-3); wt.MaxDepth != 0 {
		t.Errorf("Expected depth clamped to 0, got %d", wt.MaxDepth)
	}
}
