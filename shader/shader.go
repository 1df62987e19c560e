// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader holds the vertex/fragment program used to draw the star.
//
// The program is written in WGSL and compiled to SPIR-V with naga. The
// software path does not execute the SPIR-V; it uses the program's vertex
// layout and attribute locations to validate the vertex arrays it is handed,
// the same way a GPU pipeline would.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Attribute names bound by the default program.
const (
	PositionName = "a_position"
	ColorName    = "a_color"
)

// Attribute locations declared by Source.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

// NoLocation is returned by AttribLocation for an unknown attribute.
const NoLocation = -1

// VertexStride is the size in bytes of one float32x2 position.
const VertexStride = 8

// Source is the default WGSL program: the position attribute is passed
// through as clip-space position and the color attribute as the fragment
// color.
const Source = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) a_position: vec2<f32>, @location(1) a_color: vec4<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(a_position, 0.0, 1.0);
    out.color = a_color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color;
}
`

// Entry points of the default program.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Errors.
var (
	// ErrEmptySource is returned when Compile is given no source.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrCompile wraps naga compilation failures.
	ErrCompile = errors.New("shader: compile failed")

	// ErrNoVertexEntry is returned for a program without a vertex stage.
	ErrNoVertexEntry = errors.New("shader: no vertex entry point")

	// ErrDestroyed is returned when a destroyed program is used.
	ErrDestroyed = errors.New("shader: program destroyed")
)

// Program is a compiled vertex/fragment pair.
type Program struct {
	label      string
	spirv      []uint32
	attributes map[string]int
	destroyed  bool
}

// Compile compiles WGSL source to SPIR-V.
func Compile(label, source string) (*Program, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}

	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, label, err)
	}

	attributes, err := reflectAttributes(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, label, err)
	}

	return &Program{
		label:      label,
		spirv:      toWords(spirvBytes),
		attributes: attributes,
	}, nil
}

// reflectAttributes lowers source to IR and returns the @location of every
// input of the vertex entry point, keyed by name. Inputs declared as
// struct members are included under the member name.
func reflectAttributes(source string) (map[string]int, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, err
	}

	ep := vertexEntryPoint(module)
	if ep == nil {
		return nil, ErrNoVertexEntry
	}

	attributes := make(map[string]int)
	for _, arg := range ep.Function.Arguments {
		if loc, ok := location(arg.Binding); ok {
			attributes[arg.Name] = loc
			continue
		}
		if int(arg.Type) >= len(module.Types) {
			continue
		}
		st, ok := module.Types[arg.Type].Inner.(ir.StructType)
		if !ok {
			continue
		}
		for _, m := range st.Members {
			if loc, ok := location(m.Binding); ok {
				attributes[m.Name] = loc
			}
		}
	}
	return attributes, nil
}

// vertexEntryPoint returns the entry point named VertexEntry, or the first
// vertex stage entry point.
func vertexEntryPoint(module *ir.Module) *ir.EntryPoint {
	var first *ir.EntryPoint
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		if ep.Stage != ir.StageVertex {
			continue
		}
		if ep.Name == VertexEntry {
			return ep
		}
		if first == nil {
			first = ep
		}
	}
	return first
}

func location(b *ir.Binding) (int, bool) {
	if b == nil {
		return 0, false
	}
	lb, ok := (*b).(ir.LocationBinding)
	if !ok {
		return 0, false
	}
	return int(lb.Location), true
}

// NewDefault compiles the built-in program.
func NewDefault() (*Program, error) {
	return Compile("star", Source)
}

// toWords converts little-endian SPIR-V bytes to 32-bit words.
func toWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

// Label returns the debug label given to Compile.
func (p *Program) Label() string {
	return p.label
}

// SPIRV returns the compiled module, or nil once destroyed.
func (p *Program) SPIRV() []uint32 {
	return p.spirv
}

// AttribLocation returns the location of the named vertex attribute,
// or NoLocation if the program has no such attribute or is destroyed.
func (p *Program) AttribLocation(name string) int {
	if p.destroyed {
		return NoLocation
	}
	loc, ok := p.attributes[name]
	if !ok {
		return NoLocation
	}
	return loc
}

// VertexLayout describes the position buffer consumed by the vertex stage.
// Color is a constant attribute and has no buffer.
func (p *Program) VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{
				Format:         gputypes.VertexFormatFloat32x2,
				Offset:         0,
				ShaderLocation: p.positionLocation(),
			},
		},
	}
}

func (p *Program) positionLocation() uint32 {
	if loc, ok := p.attributes[PositionName]; ok && loc >= 0 {
		return uint32(loc)
	}
	return PositionLocation
}

// Primitive returns the primitive state for a GPU pipeline. Fans are not a
// WebGPU topology; use FanToTriangleList to feed one.
func (p *Program) Primitive() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: gputypes.CullModeNone,
	}
}

// Target returns the color target the program writes.
func (p *Program) Target() gputypes.ColorTargetState {
	return gputypes.ColorTargetState{
		Format:    gputypes.TextureFormatRGBA8Unorm,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
}

// VertexCount returns how many vertices a float32 array of n elements holds
// under VertexLayout, or -1 when n does not fill a whole number of vertices.
func (p *Program) VertexCount(n int) int {
	const floatSize = 4
	stride := int(p.VertexLayout().ArrayStride)
	if n < 0 || (n*floatSize)%stride != 0 {
		return -1
	}
	return n * floatSize / stride
}

// Validate reports whether the program can still be used.
func (p *Program) Validate() error {
	if p.destroyed {
		return fmt.Errorf("%w: %s", ErrDestroyed, p.label)
	}
	return nil
}

// Destroy releases the compiled module. It is safe to call more than once.
func (p *Program) Destroy() {
	p.spirv = nil
	p.destroyed = true
}

// FanToTriangleList expands a triangle fan of 2-component vertices into an
// independent triangle list: (v0, v1, v2), (v0, v2, v3), ...
func FanToTriangleList(vertices []float32) []float32 {
	n := len(vertices) / 2
	if n < 3 {
		return nil
	}
	out := make([]float32, 0, (n-2)*6)
	for i := 1; i+1 < n; i++ {
		out = append(out,
			vertices[0], vertices[1],
			vertices[i*2], vertices[i*2+1],
			vertices[(i+1)*2], vertices[(i+1)*2+1],
		)
	}
	return out
}
