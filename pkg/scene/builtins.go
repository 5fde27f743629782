package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scenes compiled into the binary, by name
var builtins = map[string]func() (*Scene, error){
	"default":  NewDefaultScene,
	"showcase": NewShowcaseScene,
	"mirrors":  NewMirrorsScene,
}

var builtinDescriptions = map[string]string{
	"default":  "Two nested spheres lit from the upper left",
	"showcase": "Every shape and pattern on a checkered floor with mirror and glass",
	"mirrors":  "A sphere between two facing mirrors",
}

// BuiltinDescription returns the one line description of a built-in scene
func BuiltinDescription(name string) string {
	return builtinDescriptions[name]
}

// BuiltinNames returns the names of all built-in scenes, sorted
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin builds the named built-in scene
func Builtin(name string) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	return build()
}

// NewDefaultScene frames the default world with a square camera
func NewDefaultScene() (*Scene, error) {
	return &Scene{
		Name:        "default",
		Description: builtinDescriptions["default"],
		World:       NewDefaultWorld(),
		Camera: CameraConfig{
			Width:       200,
			Height:      200,
			FieldOfView: math.Pi / 2,
			From:        core.Point(0, 0, -5),
			To:          core.Point(0, 0, 0),
			Up:          core.Vector(0, 1, 0),
		},
	}, nil
}

// placed sets a primitive's transform and material in one step
func placed(p *geometry.Primitive, transform core.Matrix, m material.Material) (*geometry.Primitive, error) {
	if err := p.SetTransform(transform); err != nil {
		return nil, err
	}
	p.SetMaterial(m)
	return p, nil
}

// NewShowcaseScene places one of every shape kind on a checkered floor
func NewShowcaseScene() (*Scene, error) {
	w := NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	checkers := material.NewCheckersPattern(core.NewColor(0.35, 0.35, 0.35), core.NewColor(0.65, 0.65, 0.65))
	floorMat := material.DefaultMaterial().WithPattern(checkers).WithSpecular(0).WithReflective(0.2)

	stripes := material.NewStripePattern(core.NewColor(0.9, 0.3, 0.2), core.NewColor(0.95, 0.85, 0.3))
	if err := stripes.SetTransform(core.Identity().Scale(0.25, 0.25, 0.25).RotateZ(math.Pi / 4)); err != nil {
		return nil, err
	}

	rings := material.NewRingPattern(core.NewColor(0.2, 0.4, 0.8), core.NewColor(0.9, 0.9, 1.0))
	if err := rings.SetTransform(core.Scaling(0.2, 0.2, 0.2)); err != nil {
		return nil, err
	}

	gradient := material.NewGradientPattern(core.NewColor(0.1, 0.7, 0.3), core.NewColor(0.9, 0.9, 0.2))
	if err := gradient.SetTransform(core.Identity().Translate(-1, 0, 0).Scale(2, 1, 1)); err != nil {
		return nil, err
	}

	objects := []struct {
		primitive *geometry.Primitive
		transform core.Matrix
		material  material.Material
	}{
		{geometry.NewPlane(), core.Identity(), floorMat},
		{
			geometry.NewSphere(),
			core.Translation(0, 1, 0.5),
			material.DefaultMaterial().WithColor(core.NewColor(0.1, 0.1, 0.1)).WithDiffuse(0.2).WithSpecular(1).WithShininess(300).WithReflective(0.9),
		},
		{
			geometry.NewGlassSphere(),
			core.Identity().Scale(0.6, 0.6, 0.6).Translate(1.4, 0.6, -1.2),
			material.Glass().WithColor(core.NewColor(0.05, 0.05, 0.05)).WithDiffuse(0.1).WithSpecular(1).WithShininess(300).WithReflective(0.9),
		},
		{
			geometry.NewCube(),
			core.Identity().Scale(0.5, 0.5, 0.5).RotateY(math.Pi / 5).Translate(-2, 0.5, -0.5),
			material.DefaultMaterial().WithPattern(stripes).WithDiffuse(0.8).WithSpecular(0.3),
		},
		{
			geometry.NewCylinder(0, 1.5, true),
			core.Identity().Scale(0.5, 1, 0.5).Translate(2.5, 0, 1.5),
			material.DefaultMaterial().WithPattern(rings).WithSpecular(0.4),
		},
		{
			geometry.NewCone(-1, 0, true),
			core.Identity().Scale(0.6, 1.2, 0.6).Translate(-1, 1.2, -2),
			material.DefaultMaterial().WithPattern(gradient).WithSpecular(0.2),
		},
	}

	for _, o := range objects {
		p, err := placed(o.primitive, o.transform, o.material)
		if err != nil {
			return nil, err
		}
		w.AddObject(p)
	}

	return &Scene{
		Name:        "showcase",
		Description: builtinDescriptions["showcase"],
		World:       w,
		Camera: CameraConfig{
			Width:       480,
			Height:      270,
			FieldOfView: math.Pi / 3,
			From:        core.Point(0, 2.5, -6),
			To:          core.Point(0, 0.8, 0),
			Up:          core.Vector(0, 1, 0),
		},
	}, nil
}

// NewMirrorsScene puts a sphere between two parallel mirrors so rays bounce
// until the depth limit cuts them off
func NewMirrorsScene() (*Scene, error) {
	w := NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(0, 4, -3), core.NewColor(0.9, 0.9, 0.9)))

	mirror := material.DefaultMaterial().
		WithColor(core.NewColor(0.05, 0.05, 0.1)).
		WithDiffuse(0.1).
		WithSpecular(0.6).
		WithReflective(0.95)

	objects := []struct {
		primitive *geometry.Primitive
		transform core.Matrix
		material  material.Material
	}{
		{geometry.NewPlane(), core.Identity(), material.DefaultMaterial().WithPattern(material.NewCheckersPattern(core.White, core.NewColor(0.2, 0.2, 0.2))).WithSpecular(0)},
		{geometry.NewPlane(), core.Identity().RotateX(math.Pi/2).Translate(0, 0, 3), mirror},
		{geometry.NewPlane(), core.Identity().RotateX(math.Pi/2).Translate(0, 0, -6), mirror},
		{geometry.NewSphere(), core.Translation(0, 1, 0), material.DefaultMaterial().WithColor(core.NewColor(0.9, 0.2, 0.2)).WithSpecular(0.6)},
	}

	for _, o := range objects {
		p, err := placed(o.primitive, o.transform, o.material)
		if err != nil {
			return nil, err
		}
		w.AddObject(p)
	}

	return &Scene{
		Name:        "mirrors",
		Description: builtinDescriptions["mirrors"],
		World:       w,
		Camera: CameraConfig{
			Width:       320,
			Height:      240,
			FieldOfView: math.Pi / 3,
			From:        core.Point(1.5, 2, -5),
			To:          core.Point(0, 1, 0),
			Up:          core.Vector(0, 1, 0),
		},
	}, nil
}
