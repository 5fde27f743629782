package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Common refractive indices
const (
	RefractiveIndexVacuum  = 1.0
	RefractiveIndexAir     = 1.00029
	RefractiveIndexWater   = 1.333
	RefractiveIndexGlass   = 1.5
	RefractiveIndexDiamond = 2.417
)

// ErrInvalidMaterial is returned by Validate for out of range coefficients
var ErrInvalidMaterial = errors.New("material: invalid material")

// Material describes how a surface responds to light using the Phong model
// plus reflection and refraction coefficients. Materials are plain values;
// the With* setters return a modified copy.
type Material struct {
	Color           core.Color
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64  // 0 = matte, 1 = perfect mirror
	Transparency    float64  // 0 = opaque, 1 = fully transparent
	RefractiveIndex float64  // >= 1
	Pattern         *Pattern // Replaces Color when set
}

// DefaultMaterial returns a white, slightly shiny, opaque material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200.0,
		Reflective:      0.0,
		Transparency:    0.0,
		RefractiveIndex: RefractiveIndexVacuum,
	}
}

// Glass returns the default material made fully transparent with the index of glass
func Glass() Material {
	return DefaultMaterial().
		WithTransparency(1.0).
		WithRefractiveIndex(RefractiveIndexGlass)
}

// WithColor returns a copy of m with the given color
func (m Material) WithColor(c core.Color) Material {
	m.Color = c
	return m
}

// WithAmbient returns a copy of m with the given ambient coefficient
func (m Material) WithAmbient(v float64) Material {
	m.Ambient = v
	return m
}

// WithDiffuse returns a copy of m with the given diffuse coefficient
func (m Material) WithDiffuse(v float64) Material {
	m.Diffuse = v
	return m
}

// WithSpecular returns a copy of m with the given specular coefficient
func (m Material) WithSpecular(v float64) Material {
	m.Specular = v
	return m
}

// WithShininess returns a copy of m with the given specular exponent
func (m Material) WithShininess(v float64) Material {
	m.Shininess = v
	return m
}

// WithReflective returns a copy of m with the given reflectivity
func (m Material) WithReflective(v float64) Material {
	m.Reflective = v
	return m
}

// WithTransparency returns a copy of m with the given transparency
func (m Material) WithTransparency(v float64) Material {
	m.Transparency = v
	return m
}

// WithRefractiveIndex returns a copy of m with the given refractive index
func (m Material) WithRefractiveIndex(v float64) Material {
	m.RefractiveIndex = v
	return m
}

// WithPattern returns a copy of m sharing pattern p. A nil p removes the pattern.
func (m Material) WithPattern(p *Pattern) Material {
	m.Pattern = p
	return m
}

// Validate checks that reflective and transparency are in [0,1] and the refractive index is >= 1
func (m Material) Validate() error {
	if m.Reflective < 0 || m.Reflective > 1 {
		return fmt.Errorf("%w: reflective %v outside [0,1]", ErrInvalidMaterial, m.Reflective)
	}
	if m.Transparency < 0 || m.Transparency > 1 {
		return fmt.Errorf("%w: transparency %v outside [0,1]", ErrInvalidMaterial, m.Transparency)
	}
	if m.RefractiveIndex < 1 {
		return fmt.Errorf("%w: refractive index %v below 1", ErrInvalidMaterial, m.RefractiveIndex)
	}
	return nil
}

// ColorAt returns the surface color at a world point: the pattern color when set, else Color
func (m Material) ColorAt(obj Object, worldPoint core.Tuple) core.Color {
	if m.Pattern != nil {
		return m.Pattern.PatternAtObject(obj, worldPoint)
	}
	return m.Color
}

// Lighting computes the Phong color at point on obj as seen along eye.
// When inShadow is set only the ambient term contributes.
func (m Material) Lighting(obj Object, light lights.PointLight, point, eye, normal core.Tuple, inShadow bool) core.Color {
	effectiveColor := m.ColorAt(obj, point).Hadamard(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)

	if inShadow {
		return ambient
	}

	lightDir, _ := light.DirectionFrom(point)
	lightDotNormal := lightDir.Dot(normal)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectDir := lightDir.Negate().Reflect(normal)
	if reflectDotEye := reflectDir.Dot(eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
