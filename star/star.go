// Package star generates the vertex data for a five-bladed star.
//
// The star is built from one initial blade (a four-point triangle fan:
// center, left, tip, right) which is rotated four times about its center by
// a fixed step. Each rotation starts from the previous blade, so the
// sequence is a fold over the blades rather than five independent
// rotations of the first one. The result is normalized into clip space by
// dividing x by the viewport width and y by the viewport height.
//
// All functions are pure and safe for concurrent use.
package star

import (
	"errors"
	"fmt"
)

const (
	// Blades is the number of blades in a star.
	Blades = 5

	// StepDegrees is the rotation between consecutive blades (360 / Blades).
	StepDegrees = 72.0

	// FanSize is the number of vertices in one blade.
	FanSize = 4

	// Floats is the length of a flattened blade.
	Floats = FanSize * 2
)

// ErrInvalidViewport is returned when the viewport cannot be used to
// normalize blade coordinates.
var ErrInvalidViewport = errors.New("star: invalid viewport")

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height float64
}

// Validate reports whether the viewport can normalize coordinates.
// Only a zero width is rejected; any height, including a negative one,
// is accepted.
func (v Viewport) Validate() error {
	if v.Width == 0 {
		return fmt.Errorf("%w: width is zero", ErrInvalidViewport)
	}
	return nil
}

// Blade is one point of the star, drawn as a triangle fan.
type Blade struct {
	Center Point
	Left   Point
	Tip    Point
	Right  Point
}

// InitialBlade returns the unrotated top blade for the given viewport height.
//
// The center's y coordinate is the product of the half height and two angles
// converted to radians (54° and 18°). The factors are applied in that order so
// the result is reproducible.
func InitialBlade(viewportHeight float64) Blade {
	rotateY := 0.5 * viewportHeight
	rotateX := 0.0
	return Blade{
		Center: Point{X: 0, Y: -rotateY * Radians(54) * Radians(18)},
		Left:   Point{X: -rotateY * Radians(18), Y: 0},
		Tip:    Point{X: rotateX, Y: rotateY},
		Right:  Point{X: rotateY * Radians(18), Y: 0},
	}
}

// Rotate returns the blade with Left, Tip and Right rotated by theta radians
// about pivot. Center is carried over unchanged.
func (b Blade) Rotate(pivot Point, theta float64) Blade {
	return Blade{
		Center: b.Center,
		Left:   b.Left.RotateAround(pivot, theta),
		Tip:    b.Tip.RotateAround(pivot, theta),
		Right:  b.Right.RotateAround(pivot, theta),
	}
}

// Normalize maps the blade into clip space. No clamping is performed.
func (b Blade) Normalize(vp Viewport) Blade {
	return Blade{
		Center: b.Center.Scale(vp.Width, vp.Height),
		Left:   b.Left.Scale(vp.Width, vp.Height),
		Tip:    b.Tip.Scale(vp.Width, vp.Height),
		Right:  b.Right.Scale(vp.Width, vp.Height),
	}
}

// Points returns the blade in fan order.
func (b Blade) Points() [FanSize]Point {
	return [FanSize]Point{b.Center, b.Left, b.Tip, b.Right}
}

// Vertices flattens the blade in fan order:
// center, left, tip, right, each as x then y.
func (b Blade) Vertices() [Floats]float32 {
	return [Floats]float32{
		float32(b.Center.X), float32(b.Center.Y),
		float32(b.Left.X), float32(b.Left.Y),
		float32(b.Tip.X), float32(b.Tip.Y),
		float32(b.Right.X), float32(b.Right.Y),
	}
}

// Star is an ordered set of blades. Index 0 is the unrotated top blade.
type Star [Blades]Blade

// Vertices returns the flattened vertices of every blade, in order.
func (s Star) Vertices() [][Floats]float32 {
	out := make([][Floats]float32, len(s))
	for i, b := range s {
		out[i] = b.Vertices()
	}
	return out
}

// Fold returns the unnormalized blades for a viewport height: the initial
// blade followed by successive rotations of the previous blade by
// stepDegrees about the initial center.
func Fold(viewportHeight, stepDegrees float64) Star {
	var s Star
	s[0] = InitialBlade(viewportHeight)
	pivot := s[0].Center
	theta := Radians(stepDegrees)
	for i := 1; i < Blades; i++ {
		s[i] = s[i-1].Rotate(pivot, theta)
	}
	return s
}

// GenerateStar returns the five normalized blades of the star for the given
// viewport, rotating by StepDegrees between blades.
func GenerateStar(viewportWidth, viewportHeight float64) (Star, error) {
	return GenerateStarStep(viewportWidth, viewportHeight, StepDegrees)
}

// GenerateStarStep is GenerateStar with a configurable rotation step.
func GenerateStarStep(viewportWidth, viewportHeight, stepDegrees float64) (Star, error) {
	vp := Viewport{Width: viewportWidth, Height: viewportHeight}
	if err := vp.Validate(); err != nil {
		return Star{}, err
	}

	s := Fold(viewportHeight, stepDegrees)
	for i := range s {
		s[i] = s[i].Normalize(vp)
	}
	return s, nil
}
