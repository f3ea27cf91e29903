package parallel

import (
	"image"
	"testing"
)

// =============================================================================
// Tile Tests
// =============================================================================

func TestTile_Constants(t *testing.T) {
	if TileWidth != 32 {
		t.Errorf("TileWidth = %d, want 32", TileWidth)
	}
	if TileHeight != 32 {
		t.Errorf("TileHeight = %d, want 32", TileHeight)
	}
}

func TestTile_RectAndLocal(t *testing.T) {
	tile := Tile{
		Center: image.Pt(48, 16),
		Bounds: image.Rect(-16, -16, 16, 16),
	}
	if got, want := tile.Rect(), image.Rect(32, 0, 64, 32); got != want {
		t.Errorf("Rect() = %v, want %v", got, want)
	}

	tests := []struct {
		name string
		in   image.Rectangle
		want image.Rectangle
	}{
		{"inside", image.Rect(40, 8, 50, 20), image.Rect(-8, -8, 2, 4)},
		{"overlaps left", image.Rect(0, 0, 40, 10), image.Rect(-16, -16, -8, -6)},
		{"misses", image.Rect(70, 0, 80, 10), image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tile.Local(tt.in)
			if got.Empty() && tt.want.Empty() {
				return
			}
			if got != tt.want {
				t.Errorf("Local(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTile_Contains(t *testing.T) {
	tile := Tile{Center: image.Pt(16, 16), Bounds: image.Rect(-16, -16, 16, 16)}
	if !tile.Contains(0, 0) || !tile.Contains(31, 31) {
		t.Error("Contains() should include the window corners")
	}
	if tile.Contains(32, 0) || tile.Contains(0, -1) {
		t.Error("Contains() should exclude pixels outside the window")
	}
}

// =============================================================================
// TileGrid Tests
// =============================================================================

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantX, wantY  int
	}{
		{"exact", 64, 64, 2, 2},
		{"margins", 100, 50, 4, 2},
		{"single pixel", 1, 1, 1, 1},
		{"empty", 0, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTileGrid(tt.width, tt.height)
			if g.TilesX() != tt.wantX || g.TilesY() != tt.wantY {
				t.Errorf("tiles = %dx%d, want %dx%d", g.TilesX(), g.TilesY(), tt.wantX, tt.wantY)
			}
			if g.TileCount() != tt.wantX*tt.wantY {
				t.Errorf("TileCount() = %d, want %d", g.TileCount(), tt.wantX*tt.wantY)
			}
		})
	}
}

func TestTileGrid_CoversTargetOnce(t *testing.T) {
	const w, h = 100, 50
	g := NewTileGrid(w, h)
	hits := make([]int, w*h)
	g.ForEach(func(tile *Tile) {
		r := tile.Rect()
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if x < 0 || x >= w || y < 0 || y >= h {
					t.Fatalf("tile %d covers (%d, %d) outside target", tile.Index, x, y)
				}
				hits[y*w+x]++
			}
		}
	})
	for i, n := range hits {
		if n != 1 {
			t.Fatalf("pixel (%d, %d) covered %d times", i%w, i/w, n)
		}
	}
}

func TestTileGrid_EdgeTrimming(t *testing.T) {
	g := NewTileGrid(100, 50)
	last := g.TileAt(3, 1)
	if last == nil {
		t.Fatal("TileAt(3, 1) = nil")
	}
	if last.Width() != 4 || last.Height() != 18 {
		t.Errorf("edge tile = %dx%d, want 4x18", last.Width(), last.Height())
	}
	if last.Center != image.Pt(112, 48) {
		t.Errorf("edge tile center = %v, want (112, 48)", last.Center)
	}
	if first := g.TileAt(0, 0); first.Bounds != image.Rect(-16, -16, 16, 16) {
		t.Errorf("first tile bounds = %v", first.Bounds)
	}
}

func TestTileGrid_TileAtPixel(t *testing.T) {
	g := NewTileGrid(100, 50)
	tile := g.TileAtPixel(70, 40)
	if tile == nil || tile.X != 2 || tile.Y != 1 {
		t.Errorf("TileAtPixel(70, 40) = %+v, want tile (2, 1)", tile)
	}
	if g.TileAtPixel(100, 0) != nil || g.TileAt(-1, 0) != nil {
		t.Error("out of range lookups should return nil")
	}
}

func TestTileGrid_CustomSize(t *testing.T) {
	g := NewTileGridSize(20, 20, 8, 4)
	if g.TilesX() != 3 || g.TilesY() != 5 {
		t.Errorf("tiles = %dx%d, want 3x5", g.TilesX(), g.TilesY())
	}
	if w, h := g.TileSize(); w != 8 || h != 4 {
		t.Errorf("TileSize() = %dx%d, want 8x4", w, h)
	}

	for _, size := range [][2]int{{3, 4}, {4, 1}, {0, 8}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewTileGridSize(%v) should panic", size)
				}
			}()
			NewTileGridSize(16, 16, size[0], size[1])
		}()
	}
}

func TestTileGrid_Resize(t *testing.T) {
	g := NewTileGrid(32, 32)
	g.Resize(64, 96)
	if g.Width() != 64 || g.Height() != 96 || g.TileCount() != 6 {
		t.Errorf("after Resize: %dx%d with %d tiles", g.Width(), g.Height(), g.TileCount())
	}
	g.Resize(0, 0)
	if g.TileCount() != 0 {
		t.Errorf("Resize(0, 0) left %d tiles", g.TileCount())
	}
}

func TestTileGrid_Partition(t *testing.T) {
	g := NewTileGrid(160, 64) // 5x2 = 10 tiles
	groups := g.Partition(3)
	if len(groups) != 3 {
		t.Fatalf("Partition(3) = %d groups, want 3", len(groups))
	}
	wantSizes := []int{4, 3, 3}
	seen := map[int]bool{}
	for i, grp := range groups {
		if len(grp) != wantSizes[i] {
			t.Errorf("group %d has %d tiles, want %d", i, len(grp), wantSizes[i])
		}
		for _, tile := range grp {
			if seen[tile.Index] {
				t.Errorf("tile %d in two groups", tile.Index)
			}
			seen[tile.Index] = true
		}
	}
	if len(seen) != 10 {
		t.Errorf("partition covers %d tiles, want 10", len(seen))
	}
}

// =============================================================================
// Split Tests
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		count, n int
		want     []Span
	}{
		{"even", 9, 3, []Span{{0, 3}, {3, 6}, {6, 9}}},
		{"remainder to first", 10, 3, []Span{{0, 4}, {4, 7}, {7, 10}}},
		{"fewer items than workers", 2, 4, []Span{{0, 2}, {2, 2}, {2, 2}, {2, 2}}},
		{"zero workers", 5, 0, []Span{{0, 5}}},
		{"nothing", 0, 2, []Span{{0, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.count, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%d, %d) = %v, want %v", tt.count, tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Split(%d, %d)[%d] = %v, want %v", tt.count, tt.n, i, got[i], tt.want[i])
				}
			}
		})
	}
}
