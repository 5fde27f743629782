package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrSingularTransform is returned when a pattern is given a transform that cannot be inverted
var ErrSingularTransform = errors.New("material: pattern transform is not invertible")

// PatternKind selects the procedural function a Pattern evaluates
type PatternKind string

const (
	PatternStripe   PatternKind = "stripe"
	PatternGradient PatternKind = "gradient"
	PatternRing     PatternKind = "ring"
	PatternCheckers PatternKind = "checkers"
	// PatternTest returns the pattern space point as a color
	PatternTest PatternKind = "test"
)

// Object is anything a pattern can be attached to through a material
type Object interface {
	// WorldToObject maps a world space point into the object's local space
	WorldToObject(point core.Tuple) core.Tuple
}

// Pattern is a procedural color function over 3D space with its own transform
type Pattern struct {
	Kind PatternKind
	A    core.Color // First color (even cells, gradient start)
	B    core.Color // Second color (odd cells, gradient end)

	transform core.Matrix
	inverse   core.Matrix
}

// NewPattern creates a pattern of the given kind with an identity transform
func NewPattern(kind PatternKind, a, b core.Color) *Pattern {
	return &Pattern{
		Kind:      kind,
		A:         a,
		B:         b,
		transform: core.Identity(),
		inverse:   core.Identity(),
	}
}

// NewStripePattern alternates a and b along x
func NewStripePattern(a, b core.Color) *Pattern {
	return NewPattern(PatternStripe, a, b)
}

// NewGradientPattern blends linearly from a to b along each unit of x
func NewGradientPattern(a, b core.Color) *Pattern {
	return NewPattern(PatternGradient, a, b)
}

// NewRingPattern alternates a and b in concentric rings in the xz plane
func NewRingPattern(a, b core.Color) *Pattern {
	return NewPattern(PatternRing, a, b)
}

// NewCheckersPattern alternates a and b in unit cubes
func NewCheckersPattern(a, b core.Color) *Pattern {
	return NewPattern(PatternCheckers, a, b)
}

// NewTestPattern creates a pattern that echoes its input point
func NewTestPattern() *Pattern {
	return NewPattern(PatternTest, core.Black, core.Black)
}

// ParsePatternKind converts a name such as "stripe" into a PatternKind
func ParsePatternKind(name string) (PatternKind, error) {
	switch kind := PatternKind(name); kind {
	case PatternStripe, PatternGradient, PatternRing, PatternCheckers, PatternTest:
		return kind, nil
	default:
		return "", fmt.Errorf("material: unknown pattern %q", name)
	}
}

// Transform returns the pattern's object-to-pattern space transform
func (p *Pattern) Transform() core.Matrix {
	return p.transform
}

// SetTransform replaces the pattern transform. Singular matrices are rejected.
func (p *Pattern) SetTransform(m core.Matrix) error {
	inverse, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSingularTransform, err)
	}
	p.transform = m
	p.inverse = inverse
	return nil
}

// PatternAt evaluates the procedural function at a point already in pattern space
func (p *Pattern) PatternAt(point core.Tuple) core.Color {
	switch p.Kind {
	case PatternStripe:
		if isEven(math.Floor(point.X)) {
			return p.A
		}
		return p.B
	case PatternGradient:
		fraction := point.X - math.Floor(point.X)
		return p.A.Add(p.B.Subtract(p.A).Multiply(fraction))
	case PatternRing:
		if isEven(math.Floor(math.Sqrt(point.X*point.X + point.Z*point.Z))) {
			return p.A
		}
		return p.B
	case PatternCheckers:
		if isEven(math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)) {
			return p.A
		}
		return p.B
	case PatternTest:
		return core.NewColor(point.X, point.Y, point.Z)
	default:
		return p.A
	}
}

// PatternAtObject evaluates the pattern for a world space point on obj.
// The point goes world -> object space (object inverse) -> pattern space (pattern inverse).
func (p *Pattern) PatternAtObject(obj Object, worldPoint core.Tuple) core.Color {
	objectPoint := obj.WorldToObject(worldPoint)
	patternPoint := p.inverse.MultiplyTuple(objectPoint)
	return p.PatternAt(patternPoint)
}

func isEven(v float64) bool {
	return math.Mod(v, 2) == 0
}
