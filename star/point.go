package star

import "math"

// Point is a 2D vertex in unnormalized pixel space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	d := p.Sub(q)
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}

// RotateAround returns p rotated by theta radians counter-clockwise about pivot.
func (p Point) RotateAround(pivot Point, theta float64) Point {
	x, y := Rotate2D(pivot.X, pivot.Y, p.X, p.Y, theta)
	return Point{X: x, Y: y}
}

// Scale divides x by sx and y by sy.
func (p Point) Scale(sx, sy float64) Point {
	return Point{X: p.X / sx, Y: p.Y / sy}
}

// Rotate2D rotates (x, y) by theta radians about (centerX, centerY).
func Rotate2D(centerX, centerY, x, y, theta float64) (float64, float64) {
	cos := math.Cos(theta)
	sin := math.Sin(theta)
	dx := x - centerX
	dy := y - centerY
	return cos*dx - sin*dy + centerX, sin*dx + cos*dy + centerY
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
