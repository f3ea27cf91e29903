// Package clip provides the geometric clipping stages of the pipeline:
// homogeneous polygon clipping against the view volume and line clipping
// against a tile window.
package clip

// Point represents a 2D point with float32 coordinates.
type Point struct {
	X, Y float32
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Lerp performs linear interpolation between p and q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Box is an axis-aligned window given by its inclusive corners.
type Box struct {
	Min, Max Point
}

// NewBox creates a Box from its corners.
func NewBox(minX, minY, maxX, maxY float32) Box {
	return Box{Min: Pt(minX, minY), Max: Pt(maxX, maxY)}
}

// Contains returns true if the point is inside the box (edges included).
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// IsEmpty returns true if the box has no area.
func (b Box) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}
