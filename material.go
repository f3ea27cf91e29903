package sparrow

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sparrow/internal/clip"
)

// Input is one vertex shader input: the mesh stream it reads and how many
// floats of it.
type Input struct {
	Usage  Usage
	Format gputypes.VertexFormat
}

// AttribLayout describes the data a material moves through the pipeline.
//
// Inputs are fetched from the mesh per vertex, in order. Outputs are the
// varyings the vertex shader writes; output 0 must be the Float32x4
// clip-space position. Every output is interpolated across the triangle
// and handed to the fragment shader as one flat slice.
type AttribLayout struct {
	Inputs  []Input
	Outputs []gputypes.VertexFormat
}

// MaxStride is the largest supported vertex output, in floats.
const MaxStride = 64

// Stride returns the number of floats written by the vertex shader per
// vertex. Invalid layouts return 0.
func (l AttribLayout) Stride() int {
	s := 0
	for _, f := range l.Outputs {
		n, err := floatComponents(f)
		if err != nil {
			return 0
		}
		s += n
	}
	return s
}

// Validate reports whether the layout can be used by the pipeline.
func (l AttribLayout) Validate() error {
	if len(l.Outputs) == 0 || l.Outputs[0] != gputypes.VertexFormatFloat32x4 {
		return fmt.Errorf("%w: output 0 must be a Float32x4 position", ErrInvalidMaterial)
	}
	for i, in := range l.Inputs {
		if in.Usage >= usageCount {
			return fmt.Errorf("%w: input %d has unknown usage %d", ErrInvalidMaterial, i, in.Usage)
		}
		if _, err := floatComponents(in.Format); err != nil {
			return fmt.Errorf("%w: input %d: %w", ErrInvalidMaterial, i, err)
		}
	}
	for i, f := range l.Outputs {
		if _, err := floatComponents(f); err != nil {
			return fmt.Errorf("%w: output %d: %w", ErrInvalidMaterial, i, err)
		}
	}
	if s := l.Stride(); s > MaxStride {
		return fmt.Errorf("%w: stride %d exceeds %d", ErrInvalidMaterial, s, MaxStride)
	}
	return nil
}

// Material is a pair of shader functions plus the layout tying them to a
// mesh.
//
// VertexShader receives one slice per layout input (sized by the input
// format) and writes Layout().Stride() floats into out, starting with the
// clip-space position x, y, z, w.
//
// FragmentShader receives the perspective-correct interpolation of every
// vertex output, including the position, and writes the fragment color.
// Returning false discards the fragment.
//
// Both shaders are called concurrently from several goroutines and must
// not mutate shared state.
type Material interface {
	Layout() AttribLayout
	VertexShader(in [][]float32, out []float32)
	FragmentShader(in []float32, out *Color) bool
}

// vertexCapacity is the number of floats a clip buffer needs for stride.
func vertexCapacity(stride int) int { return clip.MaxVertices * stride }
