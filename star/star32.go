package star

import "math"

// GenerateStar32 is GenerateStarStep computed the way a GLfloat
// implementation computes it: every stored coordinate is rounded to
// float32, while the angle products and trigonometry run in float64.
// Rounding happens after each rotation, so the error accumulates across
// the fold exactly as it does with GLfloat storage.
//
// The result is flattened blades in fan order, ready for the rasterizer.
func GenerateStar32(viewportWidth, viewportHeight, stepDegrees float64) ([Blades][Floats]float32, error) {
	var out [Blades][Floats]float32

	vp := Viewport{Width: viewportWidth, Height: viewportHeight}
	if err := vp.Validate(); err != nil {
		return out, err
	}

	pi := math.Pi
	perDegree := pi / 180

	rotateX := float32(0)
	rotateY := float32(0.5 * viewportHeight)
	centerX := float32(0)
	centerY := float32(-float64(rotateY) * (perDegree * 54) * (perDegree * 18))
	leftX := float32(-float64(rotateY) * (perDegree * 18))
	leftY := float32(0)
	rightX := float32(float64(rotateY) * (perDegree * 18))
	rightY := float32(0)

	w := float32(viewportWidth)
	h := float32(viewportHeight)
	flatten := func() [Floats]float32 {
		return [Floats]float32{
			centerX / w, centerY / h,
			leftX / w, leftY / h,
			rotateX / w, rotateY / h,
			rightX / w, rightY / h,
		}
	}

	out[0] = flatten()
	theta := float32(perDegree * stepDegrees)
	for i := 1; i < Blades; i++ {
		rotateX, rotateY = rotate32(centerX, centerY, rotateX, rotateY, theta)
		leftX, leftY = rotate32(centerX, centerY, leftX, leftY, theta)
		rightX, rightY = rotate32(centerX, centerY, rightX, rightY, theta)
		out[i] = flatten()
	}
	return out, nil
}

// rotate32 is Rotate2D with float32 operands and float32 results.
func rotate32(centerX, centerY, x, y, theta float32) (float32, float32) {
	cos := math.Cos(float64(theta))
	sin := math.Sin(float64(theta))
	dx := float64(x - centerX)
	dy := float64(y - centerY)
	tx := float32(cos*dx - sin*dy)
	ty := float32(sin*dx + cos*dy)
	return tx + centerX, ty + centerY
}
