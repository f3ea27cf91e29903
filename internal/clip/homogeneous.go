package clip

import "math"

// MaxVertices bounds the size of a clipped triangle. Each of the seven
// planes can add at most one vertex to the three it started with.
const MaxVertices = 10

// WEpsilon is the near limit on w. Vertices closer to the w=0 plane are
// cut away so the perspective divide stays finite.
const WEpsilon = 1e-4

// planeCount is the number of clip planes: w>eps, then w-x, w-y, w-z,
// then w+x, w+y, w+z.
const planeCount = 7

// planeDistance returns the signed distance of pos to plane p. A vertex is
// kept when the distance is >= 0.
func planeDistance(p int, pos []float32) float32 {
	w := pos[3]
	switch {
	case p == 0:
		return w - WEpsilon
	case p <= 3:
		return w - pos[p-1]
	default:
		return w + pos[p-4]
	}
}

// Polygon clips a convex polygon in homogeneous clip space against the view
// volume -w <= x,y,z <= w with w > WEpsilon.
//
// Every vertex occupies stride floats; the first four are x, y, z, w and the
// rest are varyings interpolated along with the position. in holds count
// vertices, scratch is a second buffer of the same capacity. The passes
// alternate between the two buffers, so the returned slice aliases one of
// them. A polygon that is fully outside returns (nil, 0).
//
// Both buffers must hold MaxVertices*stride floats; emitting more vertices
// than that panics.
func Polygon(in, scratch []float32, count, stride int) ([]float32, int) {
	capacity := MaxVertices * stride
	if stride < 4 || len(in) < capacity || len(scratch) < capacity {
		panic("clip: polygon buffers smaller than MaxVertices*stride")
	}
	if count <= 0 {
		return nil, 0
	}

	src, dst := in, scratch
	for p := range planeCount {
		n := clipPlane(p, src, dst, count, stride)
		if n == 0 {
			return nil, 0
		}
		src, dst = dst, src
		count = n
	}
	return src[:count*stride], count
}

// clipPlane runs one Sutherland-Hodgman pass of src against plane p into
// dst and returns the number of emitted vertices.
func clipPlane(p int, src, dst []float32, count, stride int) int {
	out := 0
	emit := func() []float32 {
		if out >= MaxVertices {
			panic("clip: vertex cache overflow")
		}
		v := dst[out*stride : (out+1)*stride]
		out++
		return v
	}

	prev := src[(count-1)*stride : count*stride]
	pdot := planeDistance(p, prev)
	for i := range count {
		cur := src[i*stride : (i+1)*stride]
		dot := planeDistance(p, cur)
		if pdot*dot < 0 {
			intersect(emit(), prev, pdot, cur, dot)
		}
		if dot >= 0 {
			copy(emit(), cur)
		}
		prev, pdot = cur, dot
	}
	return out
}

// intersect writes the point where the segment v1-v2 crosses the plane.
// The parameter is snapped to a 1/1000 grid, rounded towards the kept
// side, so the new vertex never lands outside the plane through float
// error.
func intersect(dst, v1 []float32, d1 float32, v2 []float32, d2 float32) {
	t := d1 / (d1 - d2)
	if d1 < 0 {
		t = float32(math.Ceil(float64(t)*1000)) * 0.001
	} else {
		t = float32(math.Floor(float64(t)*1000)) * 0.001
	}
	for i := range dst {
		dst[i] = v1[i]*(1-t) + v2[i]*t
	}
}
