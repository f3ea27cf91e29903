// Package parallel partitions the render target and the input stream for
// the worker goroutines of the pipeline.
//
// The target is split into small power-of-two tiles. Each tile is owned by
// exactly one fragment worker for the duration of a frame, so no pixel is
// ever written by two goroutines. Tiles do not hold pixels; they describe a
// window of the shared target:
//
//   - Center is the tile center in device pixels (Y up)
//   - Bounds is the tile window relative to Center, half-open
//
// Working in center-relative coordinates keeps the fixed-point values used
// by the triangle setup small regardless of the target size.
//
// Thread safety: TileGrid is not safe for concurrent mutation. Once built
// it may be read from any goroutine; DirtyRegion is safe for concurrent use.
package parallel

import "image"

// Default tile size in pixels. 32x32 keeps one tile of color and depth in
// L1 cache.
const (
	// TileWidth is the default width of a tile in pixels.
	TileWidth = 32

	// TileHeight is the default height of a tile in pixels.
	TileHeight = 32
)

// Tile is a rectangular window of the render target.
//
// Edge tiles have Bounds trimmed on the right (last column) or top (last
// row) when the target is not a multiple of the tile size.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based, counted from the bottom).
	Y int

	// Index is the position of the tile in the grid (row-major).
	Index int

	// Center is the tile center in device pixels.
	Center image.Point

	// Bounds is the tile window relative to Center.
	Bounds image.Rectangle
}

// Rect returns the tile window in device pixels.
func (t *Tile) Rect() image.Rectangle {
	return t.Bounds.Add(t.Center)
}

// Local converts a device rectangle to tile-relative coordinates and clips
// it to the tile window. The result is empty when r misses the tile.
func (t *Tile) Local(r image.Rectangle) image.Rectangle {
	return r.Sub(t.Center).Intersect(t.Bounds)
}

// Width returns the actual width of the tile window in pixels.
func (t *Tile) Width() int { return t.Bounds.Dx() }

// Height returns the actual height of the tile window in pixels.
func (t *Tile) Height() int { return t.Bounds.Dy() }

// Contains reports whether the device pixel (x, y) is inside the tile.
func (t *Tile) Contains(x, y int) bool {
	return image.Pt(x, y).In(t.Rect())
}
