package sparrow

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sparrow/internal/clip"
	"github.com/gogpu/sparrow/internal/parallel"
)

// cullBias keeps nearly edge-on triangles from being culled.
const cullBias = 0.001

// emitFunc hands a projected polygon of count vertices to the tile
// workers. verts is only valid for the duration of the call.
type emitFunc func(verts []float32, count int) error

// producer runs the vertex stage for a range of triangles: vertex shading,
// face culling, clipping, perspective divide and viewport mapping.
type producer struct {
	d       *drawCall
	cache   []float32
	scratch []float32
	in      [][]float32
	stats   FrameStats
}

func newProducer(d *drawCall) *producer {
	n := vertexCapacity(d.stride)
	return &producer{
		d:       d,
		cache:   make([]float32, n),
		scratch: make([]float32, n),
		in:      make([][]float32, len(d.inputs)),
	}
}

// run processes the triangles in span and emits every surviving polygon.
// It stops at the first emit error.
func (pr *producer) run(span parallel.Span, emit emitFunc) error {
	d := pr.d
	s := d.stride
	for t := span.Begin; t < span.End; t++ {
		for k := range 3 {
			idx := d.indices.At(t*3 + k)
			for j, view := range d.inputs {
				pr.in[j] = view.At(idx)[:d.comps[j]]
			}
			d.mat.VertexShader(pr.in, pr.cache[k*s:(k+1)*s])
		}

		if pr.culled() {
			pr.stats.Culled++
			continue
		}

		verts, n := clip.Polygon(pr.cache, pr.scratch, 3, s)
		if n < 3 {
			pr.stats.Clipped++
			continue
		}
		for i := range n {
			d.viewport.Apply(verts[i*s : i*s+4])
		}

		if err := emit(verts, n); err != nil {
			return err
		}
		pr.stats.Primitives++
	}
	return nil
}

// culled applies the face test to the three shaded vertices in the cache.
// The winding is measured after the perspective divide when every w is
// positive, otherwise on the raw clip-space x and y.
func (pr *producer) culled() bool {
	d := pr.d
	if d.cull == gputypes.CullModeNone {
		return false
	}
	s := d.stride
	p0, p1, p2 := pr.cache[0:4], pr.cache[s:s+4], pr.cache[2*s:2*s+4]

	x0, y0 := p0[0], p0[1]
	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]
	if p0[3] > 0 && p1[3] > 0 && p2[3] > 0 {
		x0, y0 = x0/p0[3], y0/p0[3]
		x1, y1 = x1/p1[3], y1/p1[3]
		x2, y2 = x2/p2[3], y2/p2[3]
	}

	v10x, v10y := x0-x1, y0-y1
	v12x, v12y := x2-x1, y2-y1
	front := (v10x*v12y-v10y*v12x)*d.winding+cullBias > 0

	if d.cull == gputypes.CullModeFront {
		return front
	}
	return !front
}
