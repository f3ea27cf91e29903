// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"image"
	"math"
	"testing"
)

// =============================================================================
// Fixed-Point Tests
// =============================================================================

func TestFDot8FromFloat32(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  FDot8
	}{
		{"zero", 0, 0},
		{"one", 1, 256},
		{"half", 0.5, 128},
		{"negative", -1.25, -320},
		{"rounds", 1.0 / 512, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FDot8FromFloat32(tt.input); got != tt.want {
				t.Errorf("FDot8FromFloat32(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFDot8FromFloat32_OutOfRange(t *testing.T) {
	for _, f := range []float32{MaxCoord, -MaxCoord - 1, float32(math.NaN()), float32(math.Inf(1))} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("FDot8FromFloat32(%v) should panic", f)
				}
			}()
			FDot8FromFloat32(f)
		}()
	}
}

func TestPixelCenter(t *testing.T) {
	if got := PixelCenter(0, 0); got != (SubPoint{128, 128}) {
		t.Errorf("PixelCenter(0, 0) = %v, want {128 128}", got)
	}
	if got := PixelCenter(-1, 2); got != (SubPoint{-128, 640}) {
		t.Errorf("PixelCenter(-1, 2) = %v, want {-128 640}", got)
	}
	if got := FDot8ToFloat32(PixelCenter(3, 0).X); got != 3.5 {
		t.Errorf("FDot8ToFloat32() = %v, want 3.5", got)
	}
}

// =============================================================================
// Edge Function Tests
// =============================================================================

func TestEdgeFunction_Sign(t *testing.T) {
	a, b := SubPoint{0, 0}, SubPoint{256, 0}
	if e := EdgeFunction(a, b, SubPoint{0, 256}); e <= 0 {
		t.Errorf("EdgeFunction(left point) = %d, want > 0", e)
	}
	if e := EdgeFunction(a, b, SubPoint{0, -256}); e >= 0 {
		t.Errorf("EdgeFunction(right point) = %d, want < 0", e)
	}
	if e := EdgeFunction(a, b, SubPoint{512, 0}); e != 0 {
		t.Errorf("EdgeFunction(collinear) = %d, want 0", e)
	}
}

func TestIsTopLeft(t *testing.T) {
	tests := []struct {
		name string
		a, b SubPoint
		want bool
	}{
		{"top edge runs left", SubPoint{256, 256}, SubPoint{0, 256}, true},
		{"bottom edge runs right", SubPoint{0, 0}, SubPoint{256, 0}, false},
		{"left edge runs down", SubPoint{0, 256}, SubPoint{0, 0}, true},
		{"right edge runs up", SubPoint{256, 0}, SubPoint{256, 256}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTopLeft(tt.a, tt.b); got != tt.want {
				t.Errorf("IsTopLeft(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// =============================================================================
// FillTriangle Tests
// =============================================================================

type coverage map[image.Point]int

func (c coverage) Plot(x, y int, _, _, _, _ float32) { c[image.Pt(x, y)]++ }

func TestFillTriangle_CoversExpectedPixels(t *testing.T) {
	// Right triangle with legs of 4 pixels. The four centers lying exactly
	// on the hypotenuse belong to a right edge and are not covered.
	c := coverage{}
	n := FillTriangle(image.Rect(0, 0, 8, 8),
		Vertex{0, 0, 0}, Vertex{4, 0, 0}, Vertex{0, 4, 0}, c)
	if n != 6 {
		t.Errorf("FillTriangle() = %d pixels, want 6", n)
	}
	for p := range c {
		cx, cy := float32(p.X)+0.5, float32(p.Y)+0.5
		if cx+cy >= 4 {
			t.Errorf("pixel %v outside the triangle", p)
		}
	}
}

func TestFillTriangle_ClockwiseAndDegenerate(t *testing.T) {
	block := image.Rect(0, 0, 8, 8)
	if n := FillTriangle(block, Vertex{0, 0, 0}, Vertex{0, 4, 0}, Vertex{4, 0, 0}, coverage{}); n != 0 {
		t.Errorf("clockwise FillTriangle() = %d, want 0", n)
	}
	if n := FillTriangle(block, Vertex{0, 0, 0}, Vertex{2, 2, 0}, Vertex{4, 4, 0}, coverage{}); n != 0 {
		t.Errorf("degenerate FillTriangle() = %d, want 0", n)
	}
	if n := FillTriangle(image.Rectangle{}, Vertex{0, 0, 0}, Vertex{4, 0, 0}, Vertex{0, 4, 0}, coverage{}); n != 0 {
		t.Errorf("empty block FillTriangle() = %d, want 0", n)
	}
}

// Two triangles sharing a diagonal must together cover every pixel of the
// quad exactly once.
func TestFillTriangle_SharedEdgeExactlyOnce(t *testing.T) {
	tests := []struct {
		name           string
		a, b, c, d     Vertex
		wantTotalCover int
	}{
		{
			name: "axis aligned square",
			a:    Vertex{0, 0, 0}, b: Vertex{8, 0, 0}, c: Vertex{8, 8, 0}, d: Vertex{0, 8, 0},
			wantTotalCover: 64,
		},
		{
			name: "pixel centers on the diagonal",
			a:    Vertex{0.5, 0.5, 0}, b: Vertex{6.5, 0.5, 0}, c: Vertex{6.5, 6.5, 0}, d: Vertex{0.5, 6.5, 0},
			wantTotalCover: 36,
		},
		{
			name: "fractional skewed quad",
			a:    Vertex{-3.3, -2.1, 0}, b: Vertex{5.7, -3.9, 0}, c: Vertex{7.1, 6.2, 0}, d: Vertex{-2.4, 5.55, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := coverage{}
			block := image.Rect(-16, -16, 16, 16)
			// Split along a-c: (a, b, c) and (a, c, d), both CCW.
			FillTriangle(block, tt.a, tt.b, tt.c, c)
			FillTriangle(block, tt.a, tt.c, tt.d, c)
			for p, n := range c {
				if n != 1 {
					t.Errorf("pixel %v covered %d times", p, n)
				}
			}
			if tt.wantTotalCover > 0 && len(c) != tt.wantTotalCover {
				t.Errorf("covered %d pixels, want %d", len(c), tt.wantTotalCover)
			}
		})
	}
}

func TestFillTriangle_BarycentricWeights(t *testing.T) {
	var bad int
	FillTriangle(image.Rect(0, 0, 16, 16),
		Vertex{0, 0, 0}, Vertex{16, 0, 1}, Vertex{0, 16, 1},
		PlotterFunc(func(x, y int, z, t0, t1, t2 float32) {
			sum := t0 + t1 + t2
			if math.Abs(float64(sum-1)) > 1e-5 || t0 < -1e-6 || t1 < -1e-6 || t2 < -1e-6 {
				bad++
			}
			// z is 0 at v0 and 1 at v1 and v2, so it equals 1 - t0.
			if math.Abs(float64(z-(1-t0))) > 1e-5 {
				bad++
			}
		}))
	if bad != 0 {
		t.Errorf("%d samples with inconsistent weights", bad)
	}
}

func TestFillTriangle_NegativeCoordinates(t *testing.T) {
	c := coverage{}
	n := FillTriangle(image.Rect(-16, -16, 16, 16),
		Vertex{-4, -4, 0}, Vertex{0, -4, 0}, Vertex{-4, 0, 0}, c)
	if n != 6 {
		t.Errorf("FillTriangle() = %d pixels, want 6", n)
	}
	for p := range c {
		if p.X >= 0 || p.Y >= 0 {
			t.Errorf("pixel %v outside the negative quadrant", p)
		}
	}
}

func TestBounds(t *testing.T) {
	got := Bounds(Vertex{1.5, -2.2, 0}, Vertex{7.9, 3, 0}, Vertex{-0.5, 1, 0})
	want := image.Rect(-1, -3, 8, 4)
	if got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkFillTriangle(b *testing.B) {
	plot := PlotterFunc(func(int, int, float32, float32, float32, float32) {})
	block := image.Rect(-16, -16, 16, 16)
	v0, v1, v2 := Vertex{-15.3, -14.8, 0}, Vertex{15.1, -12.2, 0}, Vertex{-2.4, 15.6, 0}
	b.ReportAllocs()
	for b.Loop() {
		FillTriangle(block, v0, v1, v2, plot)
	}
}
