package parallel

import (
	"image"
	"sync"
	"testing"
)

// =============================================================================
// DirtyRegion Tests
// =============================================================================

func TestDirtyRegion_MarkAndCount(t *testing.T) {
	d := NewDirtyRegion(130)
	if d.Count() != 0 {
		t.Fatalf("new region Count() = %d, want 0", d.Count())
	}
	for _, idx := range []int{0, 63, 64, 129, 129, -1, 130} {
		d.Mark(idx)
	}
	if got := d.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if !d.IsDirty(64) || d.IsDirty(65) || d.IsDirty(500) {
		t.Error("IsDirty() reports wrong flags")
	}

	var order []int
	d.ForEach(func(idx int) { order = append(order, idx) })
	want := []int{0, 63, 64, 129}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("ForEach() order = %v, want %v", order, want)
		}
	}
}

func TestDirtyRegion_MarkAllClear(t *testing.T) {
	d := NewDirtyRegion(70)
	d.MarkAll()
	if d.Count() != 70 {
		t.Errorf("MarkAll() Count() = %d, want 70", d.Count())
	}
	d.Clear()
	if d.Count() != 0 {
		t.Errorf("Clear() Count() = %d, want 0", d.Count())
	}
	if d.Len() != 70 {
		t.Errorf("Len() = %d, want 70", d.Len())
	}
}

func TestDirtyRegion_Concurrent(t *testing.T) {
	d := NewDirtyRegion(256)
	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := w; i < 256; i += 8 {
				d.Mark(i)
			}
		}()
	}
	wg.Wait()
	if d.Count() != 256 {
		t.Errorf("Count() = %d, want 256", d.Count())
	}
}

func TestTileGrid_DirtyRect(t *testing.T) {
	g := NewTileGrid(100, 50)
	d := NewDirtyRegion(g.TileCount())
	if r := g.DirtyRect(d); !r.Empty() {
		t.Errorf("DirtyRect() of clean region = %v, want empty", r)
	}
	d.Mark(g.TileAt(1, 0).Index)
	d.Mark(g.TileAt(3, 1).Index)
	if got, want := g.DirtyRect(d), image.Rect(32, 0, 100, 50); got != want {
		t.Errorf("DirtyRect() = %v, want %v", got, want)
	}
}
