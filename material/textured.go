package material

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/sparrow"
)

// Textured samples an image with nearest-neighbour filtering and repeat
// wrapping. Texture coordinates have (0, 0) at the top-left of the image.
//
// Fragments whose texel alpha is below AlphaCutoff are discarded.
type Textured struct {
	MVP         f32.Mat4
	AlphaCutoff float32

	tex *image.NRGBA
}

// NewTextured creates a textured material. The image is copied into a
// private NRGBA buffer, so later changes to img are not seen.
func NewTextured(mvp f32.Mat4, img image.Image) *Textured {
	return &Textured{MVP: mvp, tex: imaging.Clone(img)}
}

func (m *Textured) Layout() sparrow.AttribLayout {
	return sparrow.AttribLayout{
		Inputs: []sparrow.Input{
			position3,
			{Usage: sparrow.UsageTexcoord, Format: gputypes.VertexFormatFloat32x2},
		},
		Outputs: []gputypes.VertexFormat{clipPos, gputypes.VertexFormatFloat32x2},
	}
}

func (m *Textured) VertexShader(in [][]float32, out []float32) {
	project(&m.MVP, in[0], out)
	out[4], out[5] = in[1][0], in[1][1]
}

func (m *Textured) FragmentShader(in []float32, out *sparrow.Color) bool {
	c := m.Sample(in[4], in[5])
	if c.A < m.AlphaCutoff {
		return false
	}
	*out = c
	return true
}

// Sample returns the texel nearest to (u, v).
func (m *Textured) Sample(u, v float32) sparrow.Color {
	b := m.tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return sparrow.Transparent
	}
	x := wrap(u, w)
	y := wrap(v, h)
	i := y*m.tex.Stride + x*4
	p := m.tex.Pix[i : i+4 : i+4]
	return sparrow.Color{
		R: float32(p[0]) / 255,
		G: float32(p[1]) / 255,
		B: float32(p[2]) / 255,
		A: float32(p[3]) / 255,
	}
}

// wrap maps a texture coordinate to a texel index with repeat addressing.
func wrap(t float32, n int) int {
	f := float64(t) - math.Floor(float64(t))
	i := int(f * float64(n))
	return min(max(i, 0), n-1)
}
