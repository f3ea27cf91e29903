// Package material provides reference materials for sparrow pipelines.
//
// Every material transforms object-space positions by an MVP matrix
// (see Perspective, Mul) and reads its vertex streams by sparrow.Usage.
// Materials are immutable after construction and safe for the concurrent
// shader calls made by a Pipeline.
package material

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/sparrow"
)

var (
	position3 = sparrow.Input{Usage: sparrow.UsagePosition, Format: gputypes.VertexFormatFloat32x3}
	clipPos   = gputypes.VertexFormatFloat32x4
)

// project writes m * (p, 1) into out[0:4].
func project(m *f32.Mat4, p []float32, out []float32) {
	v := Transform(m, p[0], p[1], p[2], 1)
	copy(out[:4], v[:])
}

// FlatColor shades every fragment with one color.
type FlatColor struct {
	MVP   f32.Mat4
	Color sparrow.Color
}

// NewFlatColor creates a flat color material.
func NewFlatColor(mvp f32.Mat4, c sparrow.Color) *FlatColor {
	return &FlatColor{MVP: mvp, Color: c}
}

// Layout reads positions and outputs only the clip-space position.
func (m *FlatColor) Layout() sparrow.AttribLayout {
	return sparrow.AttribLayout{
		Inputs:  []sparrow.Input{position3},
		Outputs: []gputypes.VertexFormat{clipPos},
	}
}

// VertexShader transforms the position.
func (m *FlatColor) VertexShader(in [][]float32, out []float32) {
	project(&m.MVP, in[0], out)
}

// FragmentShader returns the flat color.
func (m *FlatColor) FragmentShader(_ []float32, out *sparrow.Color) bool {
	*out = m.Color
	return true
}

// VertexColor interpolates a per-vertex RGBA color.
type VertexColor struct {
	MVP f32.Mat4
}

// NewVertexColor creates a vertex color material.
func NewVertexColor(mvp f32.Mat4) *VertexColor {
	return &VertexColor{MVP: mvp}
}

func (m *VertexColor) Layout() sparrow.AttribLayout {
	return sparrow.AttribLayout{
		Inputs: []sparrow.Input{
			position3,
			{Usage: sparrow.UsageColor, Format: gputypes.VertexFormatFloat32x4},
		},
		Outputs: []gputypes.VertexFormat{clipPos, gputypes.VertexFormatFloat32x4},
	}
}

func (m *VertexColor) VertexShader(in [][]float32, out []float32) {
	project(&m.MVP, in[0], out)
	copy(out[4:8], in[1])
}

func (m *VertexColor) FragmentShader(in []float32, out *sparrow.Color) bool {
	*out = sparrow.Color{R: in[4], G: in[5], B: in[6], A: in[7]}
	return true
}

// Lambert is a diffuse material lit by one directional light.
//
// Normals are transformed by the upper-left 3x3 of Model, so Model must
// not contain non-uniform scaling.
type Lambert struct {
	MVP   f32.Mat4
	Model f32.Mat4

	// Light is the direction towards the light, in world space.
	Light   f32.Vec3
	Color   sparrow.Color
	Ambient float32
}

// NewLambert creates a diffuse material. light need not be normalized.
func NewLambert(mvp, model f32.Mat4, light f32.Vec3, c sparrow.Color) *Lambert {
	return &Lambert{MVP: mvp, Model: model, Light: normalize(light), Color: c, Ambient: 0.15}
}

func (m *Lambert) Layout() sparrow.AttribLayout {
	return sparrow.AttribLayout{
		Inputs: []sparrow.Input{
			position3,
			{Usage: sparrow.UsageNormal, Format: gputypes.VertexFormatFloat32x3},
		},
		Outputs: []gputypes.VertexFormat{clipPos, gputypes.VertexFormatFloat32x3},
	}
}

func (m *Lambert) VertexShader(in [][]float32, out []float32) {
	project(&m.MVP, in[0], out)
	n := TransformDir(&m.Model, f32.Vec3{in[1][0], in[1][1], in[1][2]})
	copy(out[4:7], n[:])
}

func (m *Lambert) FragmentShader(in []float32, out *sparrow.Color) bool {
	n := normalize(f32.Vec3{in[4], in[5], in[6]})
	k := m.Ambient + (1-m.Ambient)*max(dot(n, m.Light), 0)
	*out = sparrow.Color{R: m.Color.R * k, G: m.Color.G * k, B: m.Color.B * k, A: m.Color.A}
	return true
}

var (
	_ sparrow.Material = (*FlatColor)(nil)
	_ sparrow.Material = (*VertexColor)(nil)
	_ sparrow.Material = (*Lambert)(nil)
	_ sparrow.Material = (*Textured)(nil)
)
