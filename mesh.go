package sparrow

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
)

// Usage names a vertex attribute stream of a mesh.
type Usage uint8

const (
	// UsagePosition is the object-space vertex position.
	UsagePosition Usage = iota

	// UsageNormal is the vertex normal.
	UsageNormal

	// UsageColor is a per-vertex color.
	UsageColor

	// UsageTexcoord is a texture coordinate.
	UsageTexcoord

	// UsageTangent is the tangent vector.
	UsageTangent

	usageCount
)

// String returns the usage name.
func (u Usage) String() string {
	switch u {
	case UsagePosition:
		return "Position"
	case UsageNormal:
		return "Normal"
	case UsageColor:
		return "Color"
	case UsageTexcoord:
		return "Texcoord"
	case UsageTangent:
		return "Tangent"
	default:
		return "Unknown"
	}
}

// VertexView is a read-only strided view of float32 vertex data. It does
// not copy; At returns sub-slices of the backing array.
type VertexView struct {
	data       []float32
	offset     int
	stride     int
	components int
	count      int
}

// NewVertexView returns a view of tightly packed vertices with the given
// number of components each.
func NewVertexView(data []float32, components int) VertexView {
	return NewStridedView(data, 0, components, components)
}

// NewStridedView returns a view whose vertex i starts at
// data[offset+i*stride] and spans components floats. Trailing floats that
// do not form a whole vertex are ignored. It panics when components is not
// in [1, 4] or stride is smaller than components.
func NewStridedView(data []float32, offset, stride, components int) VertexView {
	if components < 1 || components > 4 || stride < components || offset < 0 {
		panic(fmt.Sprintf("sparrow: bad vertex view (offset %d, stride %d, components %d)", offset, stride, components))
	}
	count := 0
	if n := len(data) - offset - components; n >= 0 {
		count = n/stride + 1
	}
	return VertexView{data: data, offset: offset, stride: stride, components: components, count: count}
}

// At returns the components of vertex i. It panics when i is out of range.
func (v VertexView) At(i int) []float32 {
	if uint(i) >= uint(v.count) {
		panic(fmt.Sprintf("sparrow: vertex %d out of range [0, %d)", i, v.count))
	}
	beg := v.offset + i*v.stride
	return v.data[beg : beg+v.components : beg+v.components]
}

// Len returns the number of vertices in the view.
func (v VertexView) Len() int { return v.count }

// Components returns the number of floats per vertex.
func (v VertexView) Components() int { return v.components }

// Stride returns the distance in floats between consecutive vertices.
func (v VertexView) Stride() int { return v.stride }

// IndexBuffer holds triangle-list indices in 16- or 32-bit form.
type IndexBuffer struct {
	format gputypes.IndexFormat
	u16    []uint16
	u32    []uint32
}

// Indices16 wraps 16-bit indices without copying.
func Indices16(ix []uint16) IndexBuffer {
	return IndexBuffer{format: gputypes.IndexFormatUint16, u16: ix}
}

// Indices32 wraps 32-bit indices without copying.
func Indices32(ix []uint32) IndexBuffer {
	return IndexBuffer{format: gputypes.IndexFormatUint32, u32: ix}
}

// Format returns the index width.
func (b IndexBuffer) Format() gputypes.IndexFormat { return b.format }

// Len returns the number of indices.
func (b IndexBuffer) Len() int {
	if b.format == gputypes.IndexFormatUint16 {
		return len(b.u16)
	}
	return len(b.u32)
}

// At returns index i.
func (b IndexBuffer) At(i int) int {
	if b.format == gputypes.IndexFormatUint16 {
		return int(b.u16[i])
	}
	return int(b.u32[i])
}

// Max returns the largest index, or -1 for an empty buffer.
func (b IndexBuffer) Max() int {
	m := -1
	for i := range b.Len() {
		m = max(m, b.At(i))
	}
	return m
}

// Mesh supplies indexed triangle-list geometry to the pipeline.
type Mesh interface {
	// Indices returns the triangle-list index buffer.
	Indices() IndexBuffer

	// Attribute returns the stream for u, if the mesh has one.
	Attribute(u Usage) (VertexView, bool)
}

// StaticMesh is a Mesh built from Go slices.
type StaticMesh struct {
	indices IndexBuffer
	attrs   [usageCount]VertexView
	has     [usageCount]bool
}

// NewMesh creates a mesh with the given indices and no attributes.
func NewMesh(indices IndexBuffer) *StaticMesh {
	return &StaticMesh{indices: indices}
}

// SetAttribute sets the stream for u and returns m for chaining.
func (m *StaticMesh) SetAttribute(u Usage, v VertexView) *StaticMesh {
	if u < usageCount {
		m.attrs[u] = v
		m.has[u] = true
	}
	return m
}

// Indices returns the index buffer.
func (m *StaticMesh) Indices() IndexBuffer { return m.indices }

// Attribute returns the stream for u.
func (m *StaticMesh) Attribute(u Usage) (VertexView, bool) {
	if u >= usageCount || !m.has[u] {
		return VertexView{}, false
	}
	return m.attrs[u], true
}

// NewMeshFromBuffer decodes an interleaved little-endian vertex buffer
// described by a WebGPU-style layout. locations maps each attribute's
// ShaderLocation to a Usage; attributes without a mapping are skipped.
// Only the Float32 formats are supported.
func NewMeshFromBuffer(data []byte, layout gputypes.VertexBufferLayout, locations map[uint32]Usage, indices IndexBuffer) (*StaticMesh, error) {
	if layout.ArrayStride == 0 || layout.ArrayStride%4 != 0 {
		return nil, fmt.Errorf("%w: array stride %d", ErrUnsupportedFormat, layout.ArrayStride)
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}

	m := NewMesh(indices)
	stride := int(layout.ArrayStride / 4)
	for _, a := range layout.Attributes {
		u, ok := locations[a.ShaderLocation]
		if !ok {
			continue
		}
		n, err := floatComponents(a.Format)
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", a.ShaderLocation, err)
		}
		if a.Offset%4 != 0 || int(a.Offset/4)+n > stride {
			return nil, fmt.Errorf("%w: location %d at offset %d", ErrUnsupportedFormat, a.ShaderLocation, a.Offset)
		}
		m.SetAttribute(u, NewStridedView(floats, int(a.Offset/4), stride, n))
	}
	return m, nil
}

// floatComponents returns the component count of a Float32 vertex format.
func floatComponents(f gputypes.VertexFormat) (int, error) {
	switch f {
	case gputypes.VertexFormatFloat32,
		gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x3,
		gputypes.VertexFormatFloat32x4:
		return int(f.Size() / 4), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}
