package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is a light source with no size emitting from a single position
type PointLight struct {
	Position  core.Tuple // World space position (point)
	Intensity core.Color // Color and brightness of the emitted light
}

// NewPointLight creates a new point light
func NewPointLight(position core.Tuple, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit vector from point toward the light and the distance to it
func (l PointLight) DirectionFrom(point core.Tuple) (core.Tuple, float64) {
	v := l.Position.Subtract(point)
	distance := v.Magnitude()
	return v.Normalize(), distance
}
