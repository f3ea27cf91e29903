package sparrow

import (
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
)

// Color is a linear RGBA color with straight (non-premultiplied) alpha.
// Each component is nominally in [0, 1]; Pack clamps.
//
// Fragment shaders write Color; the pipeline premultiplies and packs it
// before storing it in the target.
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromGPU converts a gputypes.Color (float64 components) to Color.
func FromGPU(c gputypes.Color) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)}
}

// GPU converts c to a gputypes.Color.
func (c Color) GPU() gputypes.Color {
	return gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// Premultiply returns c with the color channels scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Pack converts c to 8-bit channels packed as R | G<<8 | B<<16 | A<<24.
// Stored little-endian this is the byte order of image.RGBA.
func (c Color) Pack() uint32 {
	return uint32(unorm8(c.R)) |
		uint32(unorm8(c.G))<<8 |
		uint32(unorm8(c.B))<<16 |
		uint32(unorm8(c.A))<<24
}

// Unpack is the inverse of Pack.
func Unpack(v uint32) Color {
	return Color{
		R: float32(v&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v>>16&0xff) / 255,
		A: float32(v>>24) / 255,
	}
}

// RGBA8 returns the packed value of c as color.RGBA. The channels are not
// premultiplied here; callers pass a premultiplied color when storing into
// an image.RGBA.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: unorm8(c.R), G: unorm8(c.G), B: unorm8(c.B), A: unorm8(c.A)}
}

func unorm8(f float32) uint8 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = Color{}
)

// HSL creates an opaque color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB(float32(r+m), float32(g+m), float32(b+m))
}
