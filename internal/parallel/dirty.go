package parallel

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// DirtyRegion records which tiles received fragments, one bit per tile
// index packed into uint64 words. Fragment workers mark their tiles
// concurrently; all methods are lock-free and safe for concurrent use.
type DirtyRegion struct {
	words []atomic.Uint64
	n     int
}

// NewDirtyRegion creates a tracker for n tiles, all clean.
func NewDirtyRegion(n int) *DirtyRegion {
	n = max(n, 0)
	return &DirtyRegion{
		words: make([]atomic.Uint64, (n+63)/64),
		n:     n,
	}
}

// Mark flags tile idx as dirty. Out of range indices are ignored.
func (d *DirtyRegion) Mark(idx int) {
	if idx < 0 || idx >= d.n {
		return
	}
	d.words[idx>>6].Or(1 << (idx & 63))
}

// MarkAll flags every tile.
func (d *DirtyRegion) MarkAll() {
	full := d.n / 64
	for i := range full {
		d.words[i].Store(^uint64(0))
	}
	if rem := d.n % 64; rem > 0 {
		d.words[full].Store(1<<rem - 1)
	}
}

// Clear resets every flag.
func (d *DirtyRegion) Clear() {
	for i := range d.words {
		d.words[i].Store(0)
	}
}

// IsDirty reports whether tile idx is flagged.
func (d *DirtyRegion) IsDirty(idx int) bool {
	if idx < 0 || idx >= d.n {
		return false
	}
	return d.words[idx>>6].Load()&(1<<(idx&63)) != 0
}

// Count returns the number of flagged tiles.
func (d *DirtyRegion) Count() int {
	count := 0
	for i := range d.words {
		count += bits.OnesCount64(d.words[i].Load())
	}
	return count
}

// ForEach calls fn with the index of every flagged tile, in order.
func (d *DirtyRegion) ForEach(fn func(idx int)) {
	for w := range d.words {
		word := d.words[w].Load()
		for word != 0 {
			b := bits.TrailingZeros64(word)
			fn(w*64 + b)
			word &^= 1 << b
		}
	}
}

// Len returns the number of tiles tracked.
func (d *DirtyRegion) Len() int { return d.n }

// DirtyRect returns the union of the device rectangles of every tile
// flagged in d. Tiles are Y-up; the result is in the same space.
func (g *TileGrid) DirtyRect(d *DirtyRegion) image.Rectangle {
	var r image.Rectangle
	d.ForEach(func(idx int) {
		if idx < len(g.tiles) {
			r = r.Union(g.tiles[idx].Rect())
		}
	})
	return r
}
