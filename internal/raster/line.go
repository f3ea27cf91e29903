// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Line plots the Bresenham line from (x0, y0) to (x1, y1), both endpoints
// included, and returns the number of plotted pixels.
func Line(x0, y0, x1, y1 int, plot func(x, y int)) int {
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	step := 1
	if dy < 0 {
		dy = -dy
		step = -1
	}

	plot(x0, y0)
	n := 1
	if dx >= dy {
		m := dy << 1
		d := -dx
		for range dx {
			x0++
			d += m
			if d >= 0 {
				y0 += step
				d -= dx << 1
			}
			plot(x0, y0)
			n++
		}
		return n
	}

	m := dx << 1
	d := -dy
	for range dy {
		y0 += step
		d += m
		if d >= 0 {
			x0++
			d -= dy << 1
		}
		plot(x0, y0)
		n++
	}
	return n
}

// LineF plots the line between two floating-point positions by flooring
// them to pixel indices.
func LineF(x0, y0, x1, y1 float32, plot func(x, y int)) int {
	return Line(floorInt(x0), floorInt(y0), floorInt(x1), floorInt(y1), plot)
}
