package sparrow

import (
	"image"

	"github.com/gogpu/sparrow/internal/clip"
	"github.com/gogpu/sparrow/internal/disruptor"
	"github.com/gogpu/sparrow/internal/parallel"
	"github.com/gogpu/sparrow/internal/raster"
)

// consumer is a tile worker. It owns a fixed set of tiles for the whole
// draw and rasterizes every primitive of the stream into them.
type consumer struct {
	d         *drawCall
	target    Target
	dirty     *parallel.DirtyRegion
	tiles     []*parallel.Tile
	height    int
	depthTest bool
	stats     FrameStats

	// Current triangle, read by Plot.
	tile       *parallel.Tile
	a0, a1, a2 []float32
	iw0        float32
	iw1        float32
	iw2        float32
	wrote      bool
	attrs      []float32
	color      Color
	plotLine   func(x, y int)

	// rasterize draws the current triangle into the owned tiles: fill or
	// wireframe, chosen once per draw.
	rasterize func()
}

func (p *Pipeline) newConsumer(d *drawCall, tiles []*parallel.Tile) *consumer {
	c := &consumer{
		d:         d,
		target:    p.target,
		dirty:     p.dirty,
		tiles:     tiles,
		height:    p.target.Height(),
		depthTest: p.opts.depthTest,
		attrs:     make([]float32, d.stride),
	}
	c.plotLine = c.plotWire
	if p.opts.mode == RasterizerWireframe {
		c.rasterize = c.wireframe
	} else {
		c.rasterize = c.fill
	}
	return c
}

// run drains the primitive queue through r until the end-of-stream
// sentinel. Slots are released in batches: everything before the current
// window is published when the worker has to wait for more.
func (c *consumer) run(r *disruptor.ReadCursor, queue *disruptor.RingBuffer[primitive]) error {
	var beg, end int64
	for {
		if beg == end {
			if end > 0 {
				r.Publish(end - 1)
			}
			var err error
			if end, err = r.WaitFor(end); err != nil {
				return err
			}
		}
		prim := queue.At(beg)
		if prim.eof() {
			r.Publish(beg)
			return nil
		}
		c.consume(prim)
		beg++
	}
}

// consume rasterizes every fan triangle of prim into the owned tiles.
func (c *consumer) consume(prim *primitive) {
	area := signedArea(prim)
	if area == 0 {
		return
	}
	v0 := prim.vertex(0)
	for i := 1; i+1 < prim.count; i++ {
		v1, v2 := prim.vertex(i), prim.vertex(i+1)
		// The fill routine wants counter-clockwise input.
		if area < 0 {
			v1, v2 = v2, v1
		}
		c.triangle(v0, v1, v2)
	}
}

func (c *consumer) triangle(a0, a1, a2 []float32) {
	c.a0, c.a1, c.a2 = a0, a1, a2
	c.iw0, c.iw1, c.iw2 = 1/a0[3], 1/a1[3], 1/a2[3]
	c.rasterize()
}

// fill rasterizes the interior of the current triangle with the top-left
// rule.
func (c *consumer) fill() {
	a0, a1, a2 := c.a0, c.a1, c.a2
	bbox := raster.Bounds(screenVertex(a0), screenVertex(a1), screenVertex(a2))
	for _, tile := range c.tiles {
		block := tile.Local(bbox)
		if block.Empty() {
			continue
		}
		cx, cy := float32(tile.Center.X), float32(tile.Center.Y)
		c.tile = tile
		c.wrote = false
		raster.FillTriangle(block,
			raster.Vertex{X: a0[0] - cx, Y: a0[1] - cy, Z: a0[2]},
			raster.Vertex{X: a1[0] - cx, Y: a1[1] - cy, Z: a1[2]},
			raster.Vertex{X: a2[0] - cx, Y: a2[1] - cy, Z: a2[2]},
			c)
		if c.wrote {
			c.dirty.Mark(tile.Index)
		}
	}
}

// Plot shades one covered pixel of the current triangle. x and y are
// relative to the current tile center, Y up. The depth test runs after the
// fragment shader so discarded fragments never write depth.
func (c *consumer) Plot(x, y int, z, t0, t1, t2 float32) {
	// Perspective-correct weights: interpolate attr/w and 1/w linearly in
	// screen space, then divide.
	w0, w1, w2 := c.iw0*t0, c.iw1*t1, c.iw2*t2
	inv := 1 / (w0 + w1 + w2)
	w0, w1, w2 = w0*inv, w1*inv, w2*inv
	for k := range c.attrs {
		c.attrs[k] = c.a0[k]*w0 + c.a1[k]*w1 + c.a2[k]*w2
	}

	dx, dy := c.device(x, y)
	if !c.fragment() {
		return
	}
	if c.depthTest && !c.target.DepthTest(dx, dy, z) {
		c.stats.DepthRejected++
		return
	}
	c.write(dx, dy)
}

// fragment runs the fragment shader on c.attrs into c.color.
func (c *consumer) fragment() bool {
	c.color = Color{}
	if !c.d.mat.FragmentShader(c.attrs, &c.color) {
		c.stats.Discarded++
		return false
	}
	return true
}

func (c *consumer) write(dx, dy int) {
	c.target.Set(dx, dy, c.color.Premultiply().Pack())
	c.stats.Fragments++
	c.wrote = true
}

// device converts tile-relative Y-up coordinates to target pixels.
func (c *consumer) device(x, y int) (int, int) {
	return x + c.tile.Center.X, c.height - 1 - (y + c.tile.Center.Y)
}

// wireframe draws the three edges of the current triangle into every owned
// tile, shaded with the attributes of its first vertex.
func (c *consumer) wireframe() {
	copy(c.attrs, c.a0)
	edges := [3][2][]float32{{c.a0, c.a1}, {c.a1, c.a2}, {c.a2, c.a0}}
	for _, tile := range c.tiles {
		cx, cy := float32(tile.Center.X), float32(tile.Center.Y)
		window := clip.NewBox(
			float32(tile.Bounds.Min.X), float32(tile.Bounds.Min.Y),
			float32(tile.Bounds.Max.X), float32(tile.Bounds.Max.Y))
		c.tile = tile
		c.wrote = false
		for _, e := range edges {
			p0 := clip.Pt(e[0][0]-cx, e[0][1]-cy)
			p1 := clip.Pt(e[1][0]-cx, e[1][1]-cy)
			if q0, q1, ok := clip.Line(p0, p1, window); ok {
				raster.LineF(q0.X, q0.Y, q1.X, q1.Y, c.plotLine)
			}
		}
		if c.wrote {
			c.dirty.Mark(tile.Index)
		}
	}
}

func (c *consumer) plotWire(x, y int) {
	// The clipped end point may sit exactly on the exclusive window edge.
	if !image.Pt(x, y).In(c.tile.Bounds) {
		return
	}
	if c.fragment() {
		c.write(c.device(x, y))
	}
}

func screenVertex(v []float32) raster.Vertex {
	return raster.Vertex{X: v[0], Y: v[1], Z: v[2]}
}

// signedArea returns twice the signed screen-space area of the polygon,
// positive for counter-clockwise (Y up) winding.
func signedArea(p *primitive) float32 {
	var a float32
	for i := range p.count {
		u, v := p.vertex(i), p.vertex((i+1)%p.count)
		a += u[0]*v[1] - v[0]*u[1]
	}
	return a
}
