package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var (
	ErrMissingCamera    = errors.New("loaders: scene has no camera")
	ErrMissingLight     = errors.New("loaders: scene has no light")
	ErrUnknownShape     = errors.New("loaders: unknown shape")
	ErrUnknownTransform = errors.New("loaders: unknown transform")
	ErrUnknownPattern   = errors.New("loaders: unknown pattern")
	ErrInvalidValue     = errors.New("loaders: invalid value")
	ErrInvalidPath      = errors.New("loaders: invalid scene file path")
)

var logger = log.New("loader")

// command is one "add:" entry of a scene file
type command struct {
	Add string `yaml:"add"`

	// camera
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	FieldOfView float64   `yaml:"field-of-view"`
	From        []float64 `yaml:"from"`
	To          []float64 `yaml:"to"`
	Up          []float64 `yaml:"up"`

	// light
	At        []float64 `yaml:"at"`
	Intensity []float64 `yaml:"intensity"`

	// shapes
	Transform []transformStep `yaml:"transform"`
	Material  *materialEntry  `yaml:"material"`
	Min       *float64        `yaml:"min"`
	Max       *float64        `yaml:"max"`
	Closed    bool            `yaml:"closed"`
}

// materialEntry lists the material keys, all optional. Unset keys keep the default material's value.
type materialEntry struct {
	Color           []float64     `yaml:"color"`
	Ambient         *float64      `yaml:"ambient"`
	Diffuse         *float64      `yaml:"diffuse"`
	Specular        *float64      `yaml:"specular"`
	Shininess       *float64      `yaml:"shininess"`
	Reflective      *float64      `yaml:"reflective"`
	Transparency    *float64      `yaml:"transparency"`
	RefractiveIndex *float64      `yaml:"refractive-index"`
	Pattern         *patternEntry `yaml:"pattern"`
}

type patternEntry struct {
	Type      string          `yaml:"type"`
	Colors    [][]float64     `yaml:"colors"`
	Transform []transformStep `yaml:"transform"`
}

// transformStep is a flow sequence such as [scale, 0.5, 0.5, 0.5]
type transformStep struct {
	Op   string
	Args []float64
	Line int
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *transformStep) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) == 0 {
		return fmt.Errorf("line %d: transform step must be a non-empty sequence", value.Line)
	}
	s.Line = value.Line
	if err := value.Content[0].Decode(&s.Op); err != nil {
		return fmt.Errorf("line %d: transform name: %w", value.Line, err)
	}
	s.Args = make([]float64, 0, len(value.Content)-1)
	for _, node := range value.Content[1:] {
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %s argument: %w", node.Line, s.Op, err)
		}
		s.Args = append(s.Args, v)
	}
	return nil
}

// transformArity is the number of arguments each transform takes
var transformArity = map[string]int{
	"translate": 3,
	"scale":     3,
	"rotate-x":  1,
	"rotate-y":  1,
	"rotate-z":  1,
	"shearing":  6,
}

// LoadSceneFile loads and parses a YAML scene file. The scene is named after the file.
func LoadSceneFile(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sc, err := LoadScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	sc.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return sc, nil
}

// LoadScene parses a YAML scene description: a sequence of "add:" commands
// creating the camera, the light and the objects. Objects keep file order.
func LoadScene(r io.Reader) (*scene.Scene, error) {
	var commands []command
	if err := yaml.NewDecoder(r).Decode(&commands); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingCamera
		}
		return nil, fmt.Errorf("error reading scene: %w", err)
	}

	var camera *scene.CameraConfig
	world := scene.NewWorld()
	hasLight := false

	for i, cmd := range commands {
		switch cmd.Add {
		case "":
			// Entries without an add key are not commands
			logger.Debugf("skipping entry %d: no add key", i)
		case "camera":
			c, err := parseCamera(cmd)
			if err != nil {
				return nil, fmt.Errorf("entry %d (camera): %w", i, err)
			}
			camera = &c
		case "light":
			light, err := parseLight(cmd)
			if err != nil {
				return nil, fmt.Errorf("entry %d (light): %w", i, err)
			}
			world.SetLight(light)
			hasLight = true
		default:
			obj, err := parseShape(cmd)
			if err != nil {
				return nil, fmt.Errorf("entry %d (%s): %w", i, cmd.Add, err)
			}
			world.AddObject(obj)
		}
	}

	if camera == nil {
		return nil, ErrMissingCamera
	}
	if !hasLight {
		return nil, ErrMissingLight
	}

	sc := &scene.Scene{
		Name:   "scene",
		World:  world,
		Camera: *camera,
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	logger.Debugf("loaded scene: %d objects, camera %dx%d", len(world.Objects), camera.Width, camera.Height)
	return sc, nil
}

func parseCamera(cmd command) (scene.CameraConfig, error) {
	from, err := point("from", cmd.From)
	if err != nil {
		return scene.CameraConfig{}, err
	}
	to, err := point("to", cmd.To)
	if err != nil {
		return scene.CameraConfig{}, err
	}
	up, err := triple("up", cmd.Up)
	if err != nil {
		return scene.CameraConfig{}, err
	}

	return scene.CameraConfig{
		Width:       cmd.Width,
		Height:      cmd.Height,
		FieldOfView: cmd.FieldOfView,
		From:        from,
		To:          to,
		Up:          core.Vector(up[0], up[1], up[2]),
	}, nil
}

func parseLight(cmd command) (lights.PointLight, error) {
	at, err := point("at", cmd.At)
	if err != nil {
		return lights.PointLight{}, err
	}
	intensity, err := color("intensity", cmd.Intensity)
	if err != nil {
		return lights.PointLight{}, err
	}
	return lights.NewPointLight(at, intensity), nil
}

func parseShape(cmd command) (*geometry.Primitive, error) {
	minimum, maximum := math.Inf(-1), math.Inf(1)
	if cmd.Min != nil {
		minimum = *cmd.Min
	}
	if cmd.Max != nil {
		maximum = *cmd.Max
	}

	var obj *geometry.Primitive
	switch cmd.Add {
	case "sphere":
		obj = geometry.NewSphere()
	case "plane":
		obj = geometry.NewPlane()
	case "cube":
		obj = geometry.NewCube()
	case "cylinder":
		obj = geometry.NewCylinder(minimum, maximum, cmd.Closed)
	case "cone":
		obj = geometry.NewCone(minimum, maximum, cmd.Closed)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShape, cmd.Add)
	}

	if cmd.Transform != nil {
		m, err := parseTransform(cmd.Transform)
		if err != nil {
			return nil, err
		}
		if err := obj.SetTransform(m); err != nil {
			return nil, err
		}
	}

	if cmd.Material != nil {
		m, err := parseMaterial(*cmd.Material)
		if err != nil {
			return nil, err
		}
		obj.SetMaterial(m)
	}

	return obj, nil
}

// parseTransform composes the steps in the order they are listed
func parseTransform(steps []transformStep) (core.Matrix, error) {
	m := core.Identity()
	for _, step := range steps {
		arity, ok := transformArity[step.Op]
		if !ok {
			return core.Matrix{}, fmt.Errorf("line %d: %w %q", step.Line, ErrUnknownTransform, step.Op)
		}
		if len(step.Args) != arity {
			return core.Matrix{}, fmt.Errorf("line %d: %w: %s takes %d arguments, got %d",
				step.Line, ErrInvalidValue, step.Op, arity, len(step.Args))
		}

		a := step.Args
		switch step.Op {
		case "translate":
			m = m.Translate(a[0], a[1], a[2])
		case "scale":
			m = m.Scale(a[0], a[1], a[2])
		case "rotate-x":
			m = m.RotateX(a[0])
		case "rotate-y":
			m = m.RotateY(a[0])
		case "rotate-z":
			m = m.RotateZ(a[0])
		case "shearing":
			m = m.Shear(a[0], a[1], a[2], a[3], a[4], a[5])
		}
	}
	return m, nil
}

func parseMaterial(entry materialEntry) (material.Material, error) {
	m := material.DefaultMaterial()

	if entry.Color != nil {
		c, err := color("color", entry.Color)
		if err != nil {
			return m, err
		}
		m = m.WithColor(c)
	}

	if entry.Ambient != nil {
		m = m.WithAmbient(*entry.Ambient)
	}
	if entry.Diffuse != nil {
		m = m.WithDiffuse(*entry.Diffuse)
	}
	if entry.Specular != nil {
		m = m.WithSpecular(*entry.Specular)
	}
	if entry.Shininess != nil {
		m = m.WithShininess(*entry.Shininess)
	}
	if entry.Reflective != nil {
		m = m.WithReflective(*entry.Reflective)
	}
	if entry.Transparency != nil {
		m = m.WithTransparency(*entry.Transparency)
	}
	if entry.RefractiveIndex != nil {
		m = m.WithRefractiveIndex(*entry.RefractiveIndex)
	}

	if entry.Pattern != nil {
		p, err := parsePattern(*entry.Pattern)
		if err != nil {
			return m, err
		}
		m = m.WithPattern(p)
	}

	return m, nil
}

func parsePattern(entry patternEntry) (*material.Pattern, error) {
	kind, err := material.ParsePatternKind(entry.Type)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownPattern, entry.Type)
	}

	var p *material.Pattern
	if kind == material.PatternTest {
		p = material.NewTestPattern()
	} else {
		if len(entry.Colors) != 2 {
			return nil, fmt.Errorf("%w: %s pattern needs 2 colors, got %d", ErrInvalidValue, kind, len(entry.Colors))
		}
		a, err := color("pattern color", entry.Colors[0])
		if err != nil {
			return nil, err
		}
		b, err := color("pattern color", entry.Colors[1])
		if err != nil {
			return nil, err
		}
		p = material.NewPattern(kind, a, b)
	}

	if entry.Transform != nil {
		m, err := parseTransform(entry.Transform)
		if err != nil {
			return nil, err
		}
		if err := p.SetTransform(m); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func triple(name string, values []float64) ([3]float64, error) {
	if len(values) != 3 {
		return [3]float64{}, fmt.Errorf("%w: %s needs 3 numbers, got %d", ErrInvalidValue, name, len(values))
	}
	return [3]float64{values[0], values[1], values[2]}, nil
}

func point(name string, values []float64) (core.Tuple, error) {
	v, err := triple(name, values)
	if err != nil {
		return core.Tuple{}, err
	}
	return core.Point(v[0], v[1], v[2]), nil
}

func color(name string, values []float64) (core.Color, error) {
	v, err := triple(name, values)
	if err != nil {
		return core.Color{}, err
	}
	return core.NewColor(v[0], v[1], v[2]), nil
}

// validateFilePath rejects paths that cannot be scene files
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidPath)
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null bytes not allowed", ErrInvalidPath)
	}

	cleanPath := filepath.Clean(filename)
	if len(cleanPath) > 512 {
		return fmt.Errorf("%w: maximum 512 characters allowed", ErrInvalidPath)
	}

	switch strings.ToLower(filepath.Ext(cleanPath)) {
	case ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("%w: only .yaml and .yml files are allowed", ErrInvalidPath)
	}
}
