// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "math"

// Fixed-point vertex snapping for triangle setup.
//
// Vertex positions are snapped to an 8-bit sub-pixel grid before the edge
// functions are evaluated. The edge functions are then exact integer
// arithmetic, so two triangles sharing an edge agree on every sample.
//
// Type Reference:
// - FDot8: 24.8 fixed-point (8 fractional bits), 1/256 pixel precision

// FDot8 is a 24.8 fixed-point number.
type FDot8 = int32

// Fixed-point constants for FDot8.
const (
	// FDot8One is 1.0 in FDot8 representation (2^8 = 256).
	FDot8One FDot8 = 1 << FDot8Shift

	// FDot8Half is 0.5 in FDot8 representation. Adding it to a shifted
	// pixel index gives the pixel center.
	FDot8Half FDot8 = 1 << (FDot8Shift - 1)

	// FDot8Shift is the number of fractional bits in FDot8.
	FDot8Shift = 8

	// FDot8Mask is the mask for the fractional part of FDot8.
	FDot8Mask = FDot8One - 1
)

// MaxCoord bounds the magnitude of a snapped coordinate in pixels. Inside
// this range the int64 edge products cannot overflow.
const MaxCoord = 1 << 20

// FDot8FromFloat32 rounds f to the nearest FDot8. It panics when f is
// outside [-MaxCoord, MaxCoord) or not a number.
func FDot8FromFloat32(f float32) FDot8 {
	if !(f >= -MaxCoord && f < MaxCoord) {
		panic("raster: sub-pixel coordinate out of range")
	}
	return int32(math.Round(float64(f) * float64(FDot8One)))
}

// FDot8FromInt converts a pixel index to FDot8.
func FDot8FromInt(n int) FDot8 {
	return int32(n) << FDot8Shift
}

// FDot8ToFloat32 converts an FDot8 to float32.
func FDot8ToFloat32(v FDot8) float32 {
	return float32(v) / float32(FDot8One)
}

// SubPoint is a vertex snapped to the sub-pixel grid.
type SubPoint struct {
	X, Y FDot8
}

// Snap converts a floating-point position to the sub-pixel grid.
func Snap(x, y float32) SubPoint {
	return SubPoint{X: FDot8FromFloat32(x), Y: FDot8FromFloat32(y)}
}

// PixelCenter returns the sample point of pixel (x, y).
func PixelCenter(x, y int) SubPoint {
	return SubPoint{X: FDot8FromInt(x) | FDot8Half, Y: FDot8FromInt(y) | FDot8Half}
}
