package sparrow

import (
	"image"

	"golang.org/x/image/math/f32"
)

// Viewport maps normalized device coordinates to pixels.
//
// The rectangle is given in Y-up pixel space: Min.Y is the bottom edge. NDC
// (-1, -1) lands on Rect.Min and (1, 1) on Rect.Max.
type Viewport struct {
	Rect      image.Rectangle
	Translate f32.Vec2
	Scale     f32.Vec2
}

// NewViewport returns the viewport covering r.
func NewViewport(r image.Rectangle) Viewport {
	return Viewport{
		Rect: r,
		Translate: f32.Vec2{
			float32(r.Min.X+r.Max.X) / 2,
			float32(r.Min.Y+r.Max.Y) / 2,
		},
		Scale: f32.Vec2{
			float32(r.Dx()) / 2,
			float32(r.Dy()) / 2,
		},
	}
}

// Apply perspective-divides the clip-space position pos (x, y, z, w) in
// place and maps it to pixels. w is kept for perspective-correct
// interpolation.
func (v Viewport) Apply(pos []float32) {
	inv := 1 / pos[3]
	pos[0] = v.Translate[0] + v.Scale[0]*pos[0]*inv
	pos[1] = v.Translate[1] + v.Scale[1]*pos[1]*inv
	pos[2] *= inv
}
