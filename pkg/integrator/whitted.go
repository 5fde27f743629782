package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultMaxDepth is the number of reflection and refraction bounces a camera ray may spawn
const DefaultMaxDepth = 5

// Whitted implements recursive ray tracing: Phong shading with hard shadows
// from a single point light, plus mirror reflection and Snell refraction
type Whitted struct {
	MaxDepth int
}

// NewWhitted creates a Whitted integrator. A negative depth is treated as zero.
func NewWhitted(maxDepth int) *Whitted {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Whitted{MaxDepth: maxDepth}
}

// RayColor traces a camera ray with the full depth budget
func (wt *Whitted) RayColor(ray core.Ray, world *scene.World) core.Color {
	return wt.ColorAt(world, ray, wt.MaxDepth)
}

// ColorAt returns the color seen along ray, black if it hits nothing.
// remaining is the number of further bounces allowed.
func (wt *Whitted) ColorAt(world *scene.World, ray core.Ray, remaining int) core.Color {
	xs := world.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black
	}

	comps := geometry.PrepareComputations(hit, ray, xs)
	return wt.ShadeHit(world, comps, remaining)
}

// ShadeHit combines the local Phong color with the reflected and refracted colors.
// Materials that both reflect and transmit are blended by the Schlick fraction.
func (wt *Whitted) ShadeHit(world *scene.World, comps geometry.Computations, remaining int) core.Color {
	surface := core.Black
	if world.Light != nil {
		shadowed := world.IsShadowed(comps.OverPoint)
		mat := comps.Object.Material()
		surface = mat.Lighting(comps.Object, *world.Light, comps.OverPoint, comps.Eye, comps.Normal, shadowed)
	}

	reflected := wt.ReflectedColor(world, comps, remaining)
	refracted := wt.RefractedColor(world, comps, remaining)

	mat := comps.Object.Material()
	if mat.Reflective > 0 && mat.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}

	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor traces the mirror ray from the hit, scaled by the material's reflectivity
func (wt *Whitted) ReflectedColor(world *scene.World, comps geometry.Computations, remaining int) core.Color {
	reflective := comps.Object.Material().Reflective
	if remaining <= 0 || reflective == 0 {
		return core.Black
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.Reflect)
	return wt.ColorAt(world, reflectRay, remaining-1).Multiply(reflective)
}

// RefractedColor traces the transmitted ray through the hit, scaled by the material's transparency
func (wt *Whitted) RefractedColor(world *scene.World, comps geometry.Computations, remaining int) core.Color {
	transparency := comps.Object.Material().Transparency
	if remaining <= 0 || transparency == 0 {
		return core.Black
	}

	// Snell's law
	nRatio := comps.N1 / comps.N2
	cosI := comps.Eye.Dot(comps.Normal)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		// Total internal reflection
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.Normal.Multiply(nRatio*cosI - cosT).Subtract(comps.Eye.Multiply(nRatio))

	refractRay := core.NewRay(comps.UnderPoint, direction)
	return wt.ColorAt(world, refractRay, remaining-1).Multiply(transparency)
}
