package renderer

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrSingularTransform is returned when a camera is given a view transform that cannot be inverted
var ErrSingularTransform = errors.New("renderer: camera transform is not invertible")

// Camera is a pinhole camera looking down -z in its own space. The image
// plane sits one unit in front of the eye.
type Camera struct {
	HSize       int     // Image width in pixels
	VSize       int     // Image height in pixels
	FieldOfView float64 // Angle covered by the longer image side, in radians

	transform core.Matrix // world -> camera (a view transform)
	inverse   core.Matrix

	// Cached derived values
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera at the origin looking down -z
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c
}

// NewCameraFromConfig validates a scene camera description and builds the camera
func NewCameraFromConfig(config scene.CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := NewCamera(config.Width, config.Height, config.FieldOfView)
	if err := c.SetTransform(config.ViewTransform()); err != nil {
		return nil, fmt.Errorf("camera view: %w", err)
	}
	return c, nil
}

// HalfWidth returns half the width of the image plane in world units
func (c *Camera) HalfWidth() float64 { return c.halfWidth }

// HalfHeight returns half the height of the image plane in world units
func (c *Camera) HalfHeight() float64 { return c.halfHeight }

// PixelSize returns the world size of one (square) pixel on the image plane
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// Transform returns the world to camera transform
func (c *Camera) Transform() core.Matrix { return c.transform }

// SetTransform replaces the world to camera transform, usually a core.ViewTransform
func (c *Camera) SetTransform(m core.Matrix) error {
	inverse, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSingularTransform, err)
	}
	c.transform = m
	c.inverse = inverse
	return nil
}

// RayForPixel returns the world space ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}

// Render traces every pixel sequentially with a Whitted integrator of the default depth
func (c *Camera) Render(world *scene.World) *canvas.Canvas {
	img := canvas.New(c.HSize, c.VSize)
	rr := NewRowRenderer(c, world, integrator.NewWhitted(integrator.DefaultMaxDepth), img)
	rr.RenderBounds(image.Rect(0, 0, c.HSize, c.VSize))
	return img
}
