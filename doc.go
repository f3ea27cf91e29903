// Package sparrow is a parallel software rasterizer for indexed triangle
// meshes.
//
// # Overview
//
// A Pipeline runs a classic vertex/fragment pipeline on the CPU. Vertex
// work and pixel work run at the same time on different goroutines and
// meet in a lock-free ring buffer:
//
//	mesh -> vertex shader -> cull -> clip -> viewport   (producers)
//	     -> ring buffer of clipped polygons
//	     -> tile rasterizer -> fragment shader -> target (consumers)
//
// # Quick Start
//
//	target := sparrow.NewPixmapTarget(640, 480)
//	p := sparrow.NewPipeline()
//	p.SetRenderTarget(target)
//	p.Clear(sparrow.Black)
//	if err := p.Draw(mesh, mat); err != nil {
//	    log.Fatal(err)
//	}
//	img := target.Image()
//
// The material package provides ready-made materials; any type
// implementing Material works.
//
// # Coordinate System
//
// Vertex shaders output clip-space positions. After the perspective divide
// NDC (-1, -1) is the bottom-left corner of the viewport. Targets are
// addressed in device pixels with (0, 0) at the top-left; the rasterizer
// flips Y when writing. Front faces are counter-clockwise by default and
// back faces are culled.
//
// # Concurrency
//
// Draw uses runtime.GOMAXPROCS(0) goroutines unless configured otherwise.
// Each screen tile is owned by one consumer for the duration of a draw, so
// targets need no locking. Shaders are called concurrently.
package sparrow

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
