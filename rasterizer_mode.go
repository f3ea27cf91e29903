package sparrow

// RasterizerMode selects how the tile workers turn primitives into
// fragments.
//
// The mode is per-Pipeline. Changing it never changes which triangles are
// culled or clipped, only which pixels they shade.
type RasterizerMode int

const (
	// RasterizerFill shades every pixel whose center lies inside the
	// triangle (top-left rule on shared edges). This is the default.
	RasterizerFill RasterizerMode = iota

	// RasterizerWireframe draws the edges of every fan triangle with
	// Bresenham lines, shading them with the attributes of the first
	// vertex. No depth test is applied.
	// Best for: debugging clipping and triangle setup.
	RasterizerWireframe
)

// String returns the rasterizer mode name.
func (m RasterizerMode) String() string {
	switch m {
	case RasterizerFill:
		return "Fill"
	case RasterizerWireframe:
		return "Wireframe"
	default:
		return "Unknown"
	}
}
