package parallel

import (
	"fmt"
	"image"
)

// TileGrid splits a render target into tiles.
//
// Tiles are stored in a flat slice, row-major from the bottom row:
// index = ty * tilesX + tx.
type TileGrid struct {
	tiles []Tile

	tilesX, tilesY int
	tileW, tileH   int
	width, height  int
}

// NewTileGrid creates a grid of TileWidth x TileHeight tiles covering a
// width x height target.
func NewTileGrid(width, height int) *TileGrid {
	return NewTileGridSize(width, height, TileWidth, TileHeight)
}

// NewTileGridSize creates a grid with a custom tile size. The tile size
// must be a power of two and at least 2x2; anything else panics.
func NewTileGridSize(width, height, tileW, tileH int) *TileGrid {
	if !validTileSize(tileW) || !validTileSize(tileH) {
		panic(fmt.Sprintf("parallel: tile size %dx%d must be a power of two >= 2", tileW, tileH))
	}
	g := &TileGrid{tileW: tileW, tileH: tileH}
	g.Resize(width, height)
	return g
}

func validTileSize(n int) bool { return n >= 2 && n&(n-1) == 0 }

// Resize rebuilds the grid for a new target size. A no-op when the size is
// unchanged.
func (g *TileGrid) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		g.tiles = nil
		g.tilesX, g.tilesY = 0, 0
		g.width, g.height = 0, 0
		return
	}
	if g.width == width && g.height == height && g.tiles != nil {
		return
	}

	g.width, g.height = width, height
	g.tilesX = (width + g.tileW - 1) / g.tileW
	g.tilesY = (height + g.tileH - 1) / g.tileH
	g.tiles = make([]Tile, g.tilesX*g.tilesY)
	g.allocateTiles()
}

// allocateTiles lays out every tile and trims the last column and row.
func (g *TileGrid) allocateTiles() {
	halfW, halfH := g.tileW>>1, g.tileH>>1
	marginX := g.width & (g.tileW - 1)
	marginY := g.height & (g.tileH - 1)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			bounds := image.Rect(-halfW, -halfH, halfW, halfH)
			if tx == g.tilesX-1 && marginX > 0 {
				bounds.Max.X -= g.tileW - marginX
			}
			if ty == g.tilesY-1 && marginY > 0 {
				bounds.Max.Y -= g.tileH - marginY
			}
			idx := ty*g.tilesX + tx
			g.tiles[idx] = Tile{
				X:      tx,
				Y:      ty,
				Index:  idx,
				Center: image.Pt(halfW+tx*g.tileW, halfH+ty*g.tileH),
				Bounds: bounds,
			}
		}
	}
}

// TileAt returns the tile at tile coordinates (tx, ty), or nil when out of
// range.
func (g *TileGrid) TileAt(tx, ty int) *Tile {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return nil
	}
	return &g.tiles[ty*g.tilesX+tx]
}

// TileAtPixel returns the tile containing device pixel (x, y), or nil.
func (g *TileGrid) TileAtPixel(x, y int) *Tile {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return g.TileAt(x/g.tileW, y/g.tileH)
}

// Partition splits the tiles into n contiguous groups, one per worker. The
// first group also takes the remainder. Groups may be empty when there are
// fewer tiles than workers.
func (g *TileGrid) Partition(n int) [][]*Tile {
	spans := Split(len(g.tiles), n)
	groups := make([][]*Tile, len(spans))
	for i, s := range spans {
		group := make([]*Tile, 0, s.Len())
		for j := s.Begin; j < s.End; j++ {
			group = append(group, &g.tiles[j])
		}
		groups[i] = group
	}
	return groups
}

// ForEach calls fn for each tile in row-major order.
func (g *TileGrid) ForEach(fn func(tile *Tile)) {
	for i := range g.tiles {
		fn(&g.tiles[i])
	}
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int { return len(g.tiles) }

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int { return g.tilesY }

// TileSize returns the nominal tile size.
func (g *TileGrid) TileSize() (w, h int) { return g.tileW, g.tileH }

// Width returns the target width in pixels.
func (g *TileGrid) Width() int { return g.width }

// Height returns the target height in pixels.
func (g *TileGrid) Height() int { return g.height }
