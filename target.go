package sparrow

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/gogpu/gputypes"
)

// Target defines where fragment colors go.
//
// Coordinates are device pixels with (0, 0) at the top-left corner. The
// pipeline only calls Set and DepthTest for pixels inside
// [0, Width) x [0, Height), and never for the same pixel from two
// goroutines at once.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Set stores a packed premultiplied color (see Color.Pack).
	Set(x, y int, v uint32)

	// DepthTest compares z against the stored depth. When z is closer
	// (smaller) it stores z and returns true.
	DepthTest(x, y int, z float32) bool

	// Clear fills the whole target with c and resets the depth buffer.
	Clear(c Color)
}

// RectClearer is implemented by targets that can clear a sub-rectangle.
// The pipeline uses it to clear the target in parallel, one rectangle per
// tile.
type RectClearer interface {
	ClearRect(r image.Rectangle, c Color)
}

// PixmapTarget is a CPU-backed render target: an *image.RGBA plus a float32
// depth buffer of the same size.
//
// Example:
//
//	target := sparrow.NewPixmapTarget(800, 600)
//	p.SetRenderTarget(target)
//	p.Draw(mesh, mat)
//	img := target.Image()
type PixmapTarget struct {
	img   *image.RGBA
	depth []float32
}

// NewPixmapTarget creates a cleared width x height target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return NewPixmapTargetFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA. The image is used
// directly without copying; its pixels are kept and the depth buffer starts
// at +Inf.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	t := &PixmapTarget{
		img:   img,
		depth: make([]float32, img.Rect.Dx()*img.Rect.Dy()),
	}
	t.resetDepth(0, len(t.depth))
	return t
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int { return t.img.Rect.Dx() }

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int { return t.img.Rect.Dy() }

// Format returns gputypes.TextureFormatRGBA8Unorm.
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the underlying image. It shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

// Set stores the packed color v at (x, y). Out of range writes are
// ignored.
func (t *PixmapTarget) Set(x, y int, v uint32) {
	if uint(x) >= uint(t.Width()) || uint(y) >= uint(t.Height()) {
		return
	}
	off := t.offset(x, y)
	binary.LittleEndian.PutUint32(t.img.Pix[off:off+4], v)
}

// Get returns the packed color at (x, y), or 0 when out of range.
func (t *PixmapTarget) Get(x, y int) uint32 {
	if uint(x) >= uint(t.Width()) || uint(y) >= uint(t.Height()) {
		return 0
	}
	off := t.offset(x, y)
	return binary.LittleEndian.Uint32(t.img.Pix[off : off+4])
}

// DepthTest implements a less-than depth test with write.
func (t *PixmapTarget) DepthTest(x, y int, z float32) bool {
	if uint(x) >= uint(t.Width()) || uint(y) >= uint(t.Height()) {
		return false
	}
	i := y*t.Width() + x
	if z >= t.depth[i] {
		return false
	}
	t.depth[i] = z
	return true
}

// Depth returns the stored depth at (x, y). Cleared pixels hold +Inf.
func (t *PixmapTarget) Depth(x, y int) float32 {
	if uint(x) >= uint(t.Width()) || uint(y) >= uint(t.Height()) {
		return float32(math.Inf(1))
	}
	return t.depth[y*t.Width()+x]
}

// Clear fills the entire target with c and resets depth.
func (t *PixmapTarget) Clear(c Color) {
	t.ClearRect(image.Rect(0, 0, t.Width(), t.Height()), c)
}

// ClearRect fills r (clipped to the target) with c and resets depth there.
// The color is premultiplied as for fragments.
func (t *PixmapTarget) ClearRect(r image.Rectangle, c Color) {
	r = r.Intersect(image.Rect(0, 0, t.Width(), t.Height()))
	if r.Empty() {
		return
	}
	v := c.Premultiply().Pack()
	w := t.Width()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := t.offset(r.Min.X, y)
		for range r.Dx() {
			binary.LittleEndian.PutUint32(t.img.Pix[off:off+4], v)
			off += 4
		}
		t.resetDepth(y*w+r.Min.X, y*w+r.Max.X)
	}
}

// offset returns the index of pixel (x, y) in Pix. The image may not start
// at the origin.
func (t *PixmapTarget) offset(x, y int) int {
	return t.img.PixOffset(t.img.Rect.Min.X+x, t.img.Rect.Min.Y+y)
}

func (t *PixmapTarget) resetDepth(from, to int) {
	inf := float32(math.Inf(1))
	for i := from; i < to; i++ {
		t.depth[i] = inf
	}
}

var (
	_ Target      = (*PixmapTarget)(nil)
	_ RectClearer = (*PixmapTarget)(nil)
)
