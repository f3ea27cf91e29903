// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster converts screen-space triangles and lines into pixel
// coverage for the tile workers of the pipeline.
//
// Coordinates are Y-up and relative to a tile center. Triangles must be
// counter-clockwise; the pipeline reorders clockwise front faces before
// calling FillTriangle.
package raster

import "image"

// Vertex is a screen-space position with interpolated depth.
type Vertex struct {
	X, Y, Z float32
}

// Plotter receives every covered pixel with its depth and barycentric
// weights (t0+t1+t2 == 1).
type Plotter interface {
	Plot(x, y int, z, t0, t1, t2 float32)
}

// PlotterFunc adapts a function to the Plotter interface.
type PlotterFunc func(x, y int, z, t0, t1, t2 float32)

// Plot calls f.
func (f PlotterFunc) Plot(x, y int, z, t0, t1, t2 float32) { f(x, y, z, t0, t1, t2) }

// EdgeFunction returns twice the signed area of (a, b, c) in sub-pixel
// units squared. It is positive when c lies left of a->b.
func EdgeFunction(a, b, c SubPoint) int64 {
	return int64(b.X-a.X)*int64(c.Y-a.Y) - int64(b.Y-a.Y)*int64(c.X-a.X)
}

// IsTopLeft reports whether a->b is a top or left edge of a
// counter-clockwise triangle: a horizontal edge running left, or an edge
// running down.
func IsTopLeft(a, b SubPoint) bool {
	return (a.Y == b.Y && a.X > b.X) || a.Y > b.Y
}

// topLeftBias is added to an edge value before the coverage test. Samples
// exactly on a top or left edge are owned by the triangle; samples on any
// other edge belong to the neighbour.
func topLeftBias(a, b SubPoint) int64 {
	if IsTopLeft(a, b) {
		return 0
	}
	return -1
}

// FillTriangle rasterizes the counter-clockwise triangle (v0, v1, v2)
// inside block and returns the number of covered pixels.
//
// Pixels are sampled at their centers. The edge functions are evaluated
// once at the block origin and then stepped incrementally; all coverage
// decisions are exact integer comparisons. Degenerate and clockwise
// triangles cover nothing.
func FillTriangle(block image.Rectangle, v0, v1, v2 Vertex, plot Plotter) int {
	if block.Empty() {
		return 0
	}

	s0 := Snap(v0.X, v0.Y)
	s1 := Snap(v1.X, v1.Y)
	s2 := Snap(v2.X, v2.Y)

	p := PixelCenter(block.Min.X, block.Min.Y)
	row0 := EdgeFunction(s1, s2, p)
	row1 := EdgeFunction(s2, s0, p)
	row2 := EdgeFunction(s0, s1, p)

	// The sum of the three edge values is twice the triangle area and does
	// not depend on the sample point.
	area := row0 + row1 + row2
	if area <= 0 {
		return 0
	}
	inv := 1 / float32(area)

	bias0 := topLeftBias(s1, s2)
	bias1 := topLeftBias(s2, s0)
	bias2 := topLeftBias(s0, s1)

	// Per-pixel increments. One pixel is FDot8One sub-pixel units.
	a12 := int64(s1.Y-s2.Y) << FDot8Shift
	b12 := int64(s2.X-s1.X) << FDot8Shift
	a20 := int64(s2.Y-s0.Y) << FDot8Shift
	b20 := int64(s0.X-s2.X) << FDot8Shift
	a01 := int64(s0.Y-s1.Y) << FDot8Shift
	b01 := int64(s1.X-s0.X) << FDot8Shift

	covered := 0
	for y := block.Min.Y; y < block.Max.Y; y++ {
		w0, w1, w2 := row0, row1, row2
		for x := block.Min.X; x < block.Max.X; x++ {
			if (w0+bias0)|(w1+bias1)|(w2+bias2) >= 0 {
				t0 := float32(w0) * inv
				t1 := float32(w1) * inv
				t2 := 1 - t0 - t1
				plot.Plot(x, y, v0.Z*t0+v1.Z*t1+v2.Z*t2, t0, t1, t2)
				covered++
			}
			w0 += a12
			w1 += a20
			w2 += a01
		}
		row0 += b12
		row1 += b20
		row2 += b01
	}
	return covered
}

// Bounds returns the pixel block touched by the triangle: the integer
// rectangle containing every pixel whose center may be covered.
func Bounds(v0, v1, v2 Vertex) image.Rectangle {
	minX := min(v0.X, v1.X, v2.X)
	minY := min(v0.Y, v1.Y, v2.Y)
	maxX := max(v0.X, v1.X, v2.X)
	maxY := max(v0.Y, v1.Y, v2.Y)
	return image.Rect(floorInt(minX), floorInt(minY), floorInt(maxX)+1, floorInt(maxY)+1)
}

func floorInt(f float32) int {
	i := int(f)
	if float32(i) > f {
		i--
	}
	return i
}
