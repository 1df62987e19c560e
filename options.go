package ggstar

import "github.com/gogpu/ggstar/star"

// Option configures a Core during creation.
//
// Example:
//
//	core := ggstar.NewCore(
//	    ggstar.WithDump("/tmp/frames", ""),
//	    ggstar.WithDrawColor(ggstar.Hex("#ff8800")),
//	)
type Option func(*coreOptions)

// coreOptions holds optional configuration for a Core.
type coreOptions struct {
	clear       RGBA
	background  RGBA
	draw        RGBA
	change      RGBA
	stepDegrees float64
	dumpDir     string
	dumpPrefix  string

	expandFans      bool
	float32Geometry bool
}

// defaultOptions returns the default core options.
func defaultOptions() coreOptions {
	return coreOptions{
		clear:       ColorClear,
		background:  ColorBackground,
		draw:        ColorDraw,
		change:      ColorChange,
		stepDegrees: star.StepDegrees,
		expandFans:  true,
	}
}

// WithClearColor sets the color the frame is cleared to before drawing.
func WithClearColor(c RGBA) Option {
	return func(o *coreOptions) {
		o.clear = c
	}
}

// WithBackgroundColor sets the color of the full-screen background quad.
func WithBackgroundColor(c RGBA) Option {
	return func(o *coreOptions) {
		o.background = c
	}
}

// WithDrawColor sets the star color used by Draw.
func WithDrawColor(c RGBA) Option {
	return func(o *coreOptions) {
		o.draw = c
	}
}

// WithChangeColor sets the star color used by ChangeColor.
func WithChangeColor(c RGBA) Option {
	return func(o *coreOptions) {
		o.change = c
	}
}

// WithRotationStep sets the angle in degrees between consecutive blades.
func WithRotationStep(degrees float64) Option {
	return func(o *coreOptions) {
		o.stepDegrees = degrees
	}
}

// WithDump enables bitmap dumps of every finished frame into dir. An empty
// prefix means "dump", giving dump00.bmp, dump01.bmp, ...
// An empty dir disables dumping.
func WithDump(dir, prefix string) Option {
	return func(o *coreOptions) {
		o.dumpDir = dir
		o.dumpPrefix = prefix
	}
}

// WithFanExpansion controls how blades reach the rasterizer. When enabled
// (the default) each fan is expanded to the program's triangle-list
// topology; when disabled fans are rasterized directly. Coverage is the
// same either way.
func WithFanExpansion(expand bool) Option {
	return func(o *coreOptions) {
		o.expandFans = expand
	}
}

// WithFloat32Geometry generates the star with every intermediate value
// rounded to float32, reproducing a GLfloat implementation bit for bit.
func WithFloat32Geometry() Option {
	return func(o *coreOptions) {
		o.float32Geometry = true
	}
}
