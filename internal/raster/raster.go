// Package raster fills clip-space primitives into a pixel buffer.
//
// It stands in for the fixed-function part of a GL pipeline: vertices are
// mapped through a viewport transform and the resulting triangles are
// scan-converted with pixel-centre sampling. Anything outside the target is
// clipped implicitly.
package raster

import (
	"errors"
	"fmt"
	"math"
)

// RGBA represents a color (internal copy to avoid import cycle).
type RGBA struct {
	R, G, B, A float64
}

// Pixmap is an interface for writing pixels (avoids import cycle).
type Pixmap interface {
	Width() int
	Height() int
	SetPixel(x, y int, c RGBA)
}

// SpanFiller is an optional interface that pixmaps can implement for
// optimized span filling. x2 is exclusive.
type SpanFiller interface {
	FillSpan(x1, x2, y int, c RGBA)
}

// FillRule specifies how to determine which areas are inside a polygon.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Mode is the primitive assembly mode for DrawArrays.
type Mode int

const (
	// Triangles draws independent triangles from each group of three vertices.
	Triangles Mode = iota
	// TriangleFan draws triangles sharing the first vertex.
	TriangleFan
)

// String returns the GL-style name of the mode.
func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle_fan"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Errors.
var (
	// ErrVertexRange is returned when first and count select vertices
	// beyond the supplied array.
	ErrVertexRange = errors.New("raster: vertex range out of bounds")

	// ErrUnknownMode is returned for an unsupported primitive mode.
	ErrUnknownMode = errors.New("raster: unknown primitive mode")
)

// Components is the number of floats per vertex position.
const Components = 2

// Viewport maps normalized device coordinates to window pixels.
// X and Y are the lower-left corner, as with glViewport.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// ToWindow maps a clip-space position to window coordinates with rows
// counted from the top of a target targetHeight pixels tall.
func (v Viewport) ToWindow(x, y float32, targetHeight int) Point {
	wx := float64(v.X) + (float64(x)+1)/2*float64(v.Width)
	wy := float64(v.Y) + (float64(y)+1)/2*float64(v.Height)
	return Point{X: wx, Y: float64(targetHeight) - wy}
}

// Rasterizer performs scanline rasterization.
type Rasterizer struct {
	viewport Viewport
	rule     FillRule
	aet      *ActiveEdgeTable
	edges    []Edge
	tri      [4]Point
}

// NewRasterizer creates a rasterizer whose viewport covers width x height.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		viewport: Viewport{Width: width, Height: height},
		aet:      NewActiveEdgeTable(),
		edges:    make([]Edge, 0, 8),
	}
}

// SetViewport sets the clip-to-window transform.
func (r *Rasterizer) SetViewport(v Viewport) {
	r.viewport = v
}

// Viewport returns the current viewport.
func (r *Rasterizer) Viewport() Viewport {
	return r.viewport
}

// SetFillRule sets the rule used by Fill.
func (r *Rasterizer) SetFillRule(rule FillRule) {
	r.rule = rule
}

// DrawArrays assembles count vertices starting at first into primitives
// according to mode and fills them with c. vertices holds two floats per
// vertex in clip space.
func (r *Rasterizer) DrawArrays(dst Pixmap, mode Mode, vertices []float32, first, count int, c RGBA) error {
	if first < 0 || count < 0 || (first+count)*Components > len(vertices) {
		return fmt.Errorf("%w: first=%d count=%d have=%d", ErrVertexRange, first, count, len(vertices)/Components)
	}

	at := func(i int) Point {
		k := (first + i) * Components
		return r.viewport.ToWindow(vertices[k], vertices[k+1], dst.Height())
	}

	switch mode {
	case Triangles:
		for i := 0; i+2 < count; i += 3 {
			r.triangle(dst, at(i), at(i+1), at(i+2), c)
		}
	case TriangleFan:
		if count < 3 {
			return nil
		}
		hub := at(0)
		prev := at(1)
		for i := 2; i < count; i++ {
			next := at(i)
			r.triangle(dst, hub, prev, next, c)
			prev = next
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
	return nil
}

// triangle fills one triangle regardless of its orientation.
func (r *Rasterizer) triangle(dst Pixmap, a, b, c Point, color RGBA) {
	r.tri = [4]Point{a, b, c, a}
	r.Fill(dst, r.tri[:], color)
}

// Fill rasterizes a closed polygon given in window coordinates. The last
// point should repeat the first.
func (r *Rasterizer) Fill(dst Pixmap, points []Point, color RGBA) {
	if len(points) < 3 {
		return
	}
	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return
		}
	}

	r.edges = r.edges[:0]
	for i := 0; i < len(points)-1; i++ {
		p0, p1 := points[i], points[i+1]
		if p0.Y == p1.Y {
			continue
		}
		r.edges = append(r.edges, NewEdge(p0, p1))
	}
	if len(r.edges) == 0 {
		return
	}

	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	for _, e := range r.edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}

	// Rows whose centre lies in [yMin, yMax).
	y0 := int(math.Ceil(yMin - 0.5))
	y1 := int(math.Ceil(yMax - 0.5))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > dst.Height() {
		y1 = dst.Height()
	}

	for y := y0; y < y1; y++ {
		r.scanline(dst, float64(y)+0.5, y, color)
	}
}

// scanline fills one row sampled at centre y.
func (r *Rasterizer) scanline(dst Pixmap, y float64, row int, color RGBA) {
	r.aet.Clear()
	for i := range r.edges {
		if r.edges[i].Crosses(y) {
			r.aet.AddAtY(r.edges[i], y)
		}
	}
	if len(r.aet.Edges()) < 2 {
		return
	}
	r.aet.Sort()

	edges := r.aet.Edges()
	if r.rule == FillRuleEvenOdd {
		for i := 0; i+1 < len(edges); i += 2 {
			r.fillSpan(dst, edges[i].x, edges[i+1].x, row, color)
		}
		return
	}

	winding := 0
	var start float64
	for _, e := range edges {
		if winding == 0 {
			start = e.x
		}
		winding += e.dir
		if winding == 0 {
			r.fillSpan(dst, start, e.x, row, color)
		}
	}
}

// fillSpan fills the pixels of row y whose centres lie in [xa, xb).
func (r *Rasterizer) fillSpan(dst Pixmap, xa, xb float64, y int, color RGBA) {
	if y < 0 || y >= dst.Height() {
		return
	}

	x1 := int(math.Ceil(xa - 0.5))
	x2 := int(math.Ceil(xb - 0.5))
	if x1 < 0 {
		x1 = 0
	}
	if x2 > dst.Width() {
		x2 = dst.Width()
	}
	if x1 >= x2 {
		return
	}

	if sf, ok := dst.(SpanFiller); ok {
		sf.FillSpan(x1, x2, y, color)
		return
	}
	for x := x1; x < x2; x++ {
		dst.SetPixel(x, y, color)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
