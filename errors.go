package sparrow

import "errors"

// Errors returned by Pipeline. Draw wraps them with the offending detail;
// use errors.Is to test for them.
var (
	// ErrNilTarget is returned when drawing without a render target.
	ErrNilTarget = errors.New("sparrow: no render target")

	// ErrNilMesh is returned when Draw receives a nil mesh.
	ErrNilMesh = errors.New("sparrow: nil mesh")

	// ErrInvalidMaterial is returned when a material layout cannot be
	// used: no position output, a non-float attribute format, or a nil
	// material.
	ErrInvalidMaterial = errors.New("sparrow: invalid material")

	// ErrMissingAttribute is returned when the mesh lacks an attribute the
	// material reads, or provides fewer components than it needs.
	ErrMissingAttribute = errors.New("sparrow: missing vertex attribute")

	// ErrIndexCount is returned when the index count is not a multiple of
	// three.
	ErrIndexCount = errors.New("sparrow: index count is not a multiple of 3")

	// ErrIndexRange is returned when an index refers past the end of an
	// attribute stream.
	ErrIndexRange = errors.New("sparrow: index out of range")

	// ErrUnsupportedFormat is returned for vertex formats other than
	// 32-bit floats.
	ErrUnsupportedFormat = errors.New("sparrow: unsupported vertex format")
)
