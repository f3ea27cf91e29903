package sparrow

import (
	"math"

	"golang.org/x/sys/cpu"
)

// primitive is one ring slot: a clipped, projected polygon waiting for the
// tile workers. verts holds count vertices of stride floats; the polygon
// is drawn as a fan around vertex 0.
//
// A NaN in the first float marks the end of the stream.
type primitive struct {
	verts  []float32
	count  int
	stride int
	_      cpu.CacheLinePad
}

// set copies a polygon into the slot, reusing its buffer.
func (p *primitive) set(verts []float32, count, stride int) {
	n := count * stride
	if cap(p.verts) < n {
		p.verts = make([]float32, n, vertexCapacity(stride))
	}
	p.verts = p.verts[:n]
	copy(p.verts, verts[:n])
	p.count = count
	p.stride = stride
}

// setEOF turns the slot into the end-of-stream sentinel.
func (p *primitive) setEOF() {
	p.verts = append(p.verts[:0], float32(math.NaN()))
	p.count = 0
	p.stride = 0
}

// eof reports whether the slot is the end-of-stream sentinel.
func (p *primitive) eof() bool {
	return len(p.verts) > 0 && p.verts[0] != p.verts[0]
}

// vertex returns vertex i of the polygon.
func (p *primitive) vertex(i int) []float32 {
	return p.verts[i*p.stride : (i+1)*p.stride]
}
