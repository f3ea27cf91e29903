package sparrow

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// drawCall is the validated, read-only state of one Draw shared by every
// worker goroutine, plus the counters they merge into.
type drawCall struct {
	mat      Material
	indices  IndexBuffer
	inputs   []VertexView
	comps    []int
	stride   int
	tris     int
	viewport Viewport
	cull     gputypes.CullMode
	winding  float32

	counters frameCounters
}

// prepare validates mesh and material against each other and the current
// target.
func (p *Pipeline) prepare(m Mesh, mat Material) (*drawCall, error) {
	if p.target == nil {
		return nil, ErrNilTarget
	}
	if m == nil {
		return nil, ErrNilMesh
	}
	if mat == nil {
		return nil, fmt.Errorf("%w: nil material", ErrInvalidMaterial)
	}
	layout := mat.Layout()
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	ix := m.Indices()
	if ix.Len()%3 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrIndexCount, ix.Len())
	}
	maxIndex := ix.Max()

	d := &drawCall{
		mat:      mat,
		indices:  ix,
		inputs:   make([]VertexView, len(layout.Inputs)),
		comps:    make([]int, len(layout.Inputs)),
		stride:   layout.Stride(),
		tris:     ix.Len() / 3,
		viewport: p.viewport,
		cull:     p.opts.primitive.CullMode,
		winding:  windingSign(p.opts.primitive.FrontFace),
	}
	for i, in := range layout.Inputs {
		view, ok := m.Attribute(in.Usage)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingAttribute, in.Usage)
		}
		need, _ := floatComponents(in.Format)
		if view.Components() < need {
			return nil, fmt.Errorf("%w: %v has %d components, material reads %d",
				ErrMissingAttribute, in.Usage, view.Components(), need)
		}
		if maxIndex >= view.Len() {
			return nil, fmt.Errorf("%w: index %d but %v has %d vertices",
				ErrIndexRange, maxIndex, in.Usage, view.Len())
		}
		d.inputs[i] = view
		d.comps[i] = need
	}
	return d, nil
}

// windingSign returns the factor that makes the cull cross product
// positive for front faces.
func windingSign(f gputypes.FrontFace) float32 {
	if f == gputypes.FrontFaceCW {
		return 1
	}
	return -1
}
