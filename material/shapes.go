package material

import "github.com/gogpu/sparrow"

type cubeFace struct {
	n, u, v [3]float32
	color   sparrow.Color
}

var cubeFaces = [6]cubeFace{
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}, color: sparrow.Red},
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}, color: sparrow.RGB(0, 1, 1)},
	{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}, color: sparrow.Green},
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}, color: sparrow.RGB(1, 0, 1)},
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}, color: sparrow.Blue},
	{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}, color: sparrow.RGB(1, 1, 0)},
}

// Cube returns a unit cube centered on the origin with corners at ±1.
// Each face has its own four vertices with position, normal, color and
// texcoord streams. Faces are counter-clockwise seen from outside.
func Cube() *sparrow.StaticMesh {
	const verts = 4 * len(cubeFaces)
	pos := make([]float32, 0, verts*3)
	nrm := make([]float32, 0, verts*3)
	col := make([]float32, 0, verts*4)
	uv := make([]float32, 0, verts*2)
	idx := make([]uint16, 0, 6*len(cubeFaces))

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i, f := range cubeFaces {
		for _, c := range corners {
			for k := range 3 {
				pos = append(pos, f.n[k]+c[0]*f.u[k]+c[1]*f.v[k])
			}
			nrm = append(nrm, f.n[:]...)
			col = append(col, f.color.R, f.color.G, f.color.B, f.color.A)
			uv = append(uv, (c[0]+1)/2, (1-c[1])/2)
		}
		b := uint16(i * 4)
		idx = append(idx, b, b+1, b+2, b, b+2, b+3)
	}

	return sparrow.NewMesh(sparrow.Indices16(idx)).
		SetAttribute(sparrow.UsagePosition, sparrow.NewVertexView(pos, 3)).
		SetAttribute(sparrow.UsageNormal, sparrow.NewVertexView(nrm, 3)).
		SetAttribute(sparrow.UsageColor, sparrow.NewVertexView(col, 4)).
		SetAttribute(sparrow.UsageTexcoord, sparrow.NewVertexView(uv, 2))
}
