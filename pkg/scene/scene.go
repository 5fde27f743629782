package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrInvalidCamera is returned by CameraConfig.Validate
	ErrInvalidCamera = errors.New("scene: invalid camera")
	// ErrUnknownScene is returned by Builtin for names that are not compiled in
	ErrUnknownScene = errors.New("scene: unknown built-in scene")
)

// Scene contains everything needed to render an image
type Scene struct {
	Name        string
	Description string
	World       *World
	Camera      CameraConfig
}

// CameraConfig describes a pinhole camera by its image size and view
type CameraConfig struct {
	Width       int        // Image width in pixels
	Height      int        // Image height in pixels
	FieldOfView float64    // Horizontal or vertical angle in radians, whichever image side is longer
	From        core.Tuple // Eye position (point)
	To          core.Tuple // Look-at position (point)
	Up          core.Tuple // Approximate up direction (vector)
}

// DefaultCameraConfig looks at the origin from 5 units down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
		From:        core.Point(0, 1.5, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
}

// ViewTransform returns the world to camera transform for this view
func (c CameraConfig) ViewTransform() core.Matrix {
	return core.ViewTransform(c.From, c.To, c.Up)
}

// Validate checks image dimensions and field of view
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidCamera, c.Width, c.Height)
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= math.Pi {
		return fmt.Errorf("%w: field of view %v outside (0, pi)", ErrInvalidCamera, c.FieldOfView)
	}
	if c.To.Subtract(c.From).Magnitude() < core.Epsilon {
		return fmt.Errorf("%w: from and to are the same point", ErrInvalidCamera)
	}
	return nil
}

// WithSize returns a copy of the config with the given image size.
// Non-positive values keep the current size.
func (c CameraConfig) WithSize(width, height int) CameraConfig {
	if width > 0 {
		c.Width = width
	}
	if height > 0 {
		c.Height = height
	}
	return c
}

// Validate checks the camera and every material in the world
func (s *Scene) Validate() error {
	if s.World == nil {
		return fmt.Errorf("scene %q has no world", s.Name)
	}
	if err := s.Camera.Validate(); err != nil {
		return err
	}
	return s.World.Validate()
}
