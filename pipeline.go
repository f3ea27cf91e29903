package sparrow

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/sparrow/internal/disruptor"
	"github.com/gogpu/sparrow/internal/parallel"
)

// Pipeline renders indexed triangle meshes into a Target using all
// available cores.
//
// Each Draw spawns producer goroutines that run the vertex stage over
// disjoint ranges of triangles and publish clipped polygons into a shared
// ring buffer, and consumer goroutines that each own a set of screen tiles
// and rasterize every published polygon into them. Pixel writes never
// race: a pixel belongs to exactly one tile and a tile to exactly one
// consumer.
//
// A Pipeline is not safe for concurrent use; calls must be serialized.
type Pipeline struct {
	opts     pipelineOptions
	target   Target
	grid     *parallel.TileGrid
	dirty    *parallel.DirtyRegion
	viewport Viewport
	queue    *disruptor.RingBuffer[primitive]
	stats    FrameStats
}

// NewPipeline creates a pipeline without a render target.
func NewPipeline(opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		opts:  o,
		grid:  parallel.NewTileGridSize(0, 0, o.tileW, o.tileH),
		dirty: parallel.NewDirtyRegion(0),
		queue: disruptor.NewRingBuffer[primitive](o.queueSize),
	}
}

// SetRenderTarget binds t, re-tiles it and resets the viewport to the
// whole target. A nil target unbinds.
func (p *Pipeline) SetRenderTarget(t Target) {
	p.target = t
	if t == nil {
		p.grid.Resize(0, 0)
		p.dirty = parallel.NewDirtyRegion(0)
		return
	}
	p.grid.Resize(t.Width(), t.Height())
	p.dirty = parallel.NewDirtyRegion(p.grid.TileCount())
	p.viewport = NewViewport(image.Rect(0, 0, t.Width(), t.Height()))

	producers, consumers := p.opts.workers()
	Logger().Info("sparrow: render target set",
		"width", t.Width(), "height", t.Height(),
		"format", t.Format().String(),
		"tiles", p.grid.TileCount(),
		"producers", producers, "consumers", consumers)
}

// Target returns the bound render target.
func (p *Pipeline) Target() Target { return p.target }

// SetViewport maps NDC onto r, given in target pixels with Y down. The
// viewport is reset to the whole target by SetRenderTarget.
func (p *Pipeline) SetViewport(r image.Rectangle) {
	h := 0
	if p.target != nil {
		h = p.target.Height()
	}
	p.viewport = NewViewport(image.Rect(r.Min.X, h-r.Max.Y, r.Max.X, h-r.Min.Y))
}

// Viewport returns the current viewport in Y-up pixel space.
func (p *Pipeline) Viewport() Viewport { return p.viewport }

// Workers returns the producer and consumer counts used per draw.
func (p *Pipeline) Workers() (producers, consumers int) { return p.opts.workers() }

// Stats returns the statistics of the last Draw or DrawSerial.
func (p *Pipeline) Stats() FrameStats { return p.stats }

// DirtyRect returns the bounding rectangle, in target pixels with Y down,
// of every tile written since the last ResetDirty. Tile granularity.
func (p *Pipeline) DirtyRect() image.Rectangle {
	return p.deviceRect(p.grid.DirtyRect(p.dirty))
}

// ResetDirty forgets every written tile.
func (p *Pipeline) ResetDirty() { p.dirty.Clear() }

// deviceRect flips a Y-up tile rectangle into target pixels.
func (p *Pipeline) deviceRect(r image.Rectangle) image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	h := p.grid.Height()
	return image.Rect(r.Min.X, h-r.Max.Y, r.Max.X, h-r.Min.Y)
}

// Clear fills the target with c and resets its depth buffer. Targets that
// implement RectClearer are cleared in parallel, one tile slice per
// consumer.
func (p *Pipeline) Clear(c Color) error {
	if p.target == nil {
		return ErrNilTarget
	}
	defer p.dirty.MarkAll()

	rc, ok := p.target.(RectClearer)
	if !ok {
		p.target.Clear(c)
		return nil
	}
	_, consumers := p.opts.workers()
	var g errgroup.Group
	for _, tiles := range p.grid.Partition(consumers) {
		g.Go(func() error {
			for _, tile := range tiles {
				rc.ClearRect(p.deviceRect(tile.Rect()), c)
			}
			return nil
		})
	}
	return g.Wait()
}

// Draw renders mesh with mat into the bound target and blocks until every
// fragment has been written.
//
// Validation errors are returned before any goroutine starts. A panic in a
// shader or worker is recovered, stops every other worker of the draw and
// is returned as an error; the target may then be partially drawn.
func (p *Pipeline) Draw(mesh Mesh, mat Material) error {
	d, err := p.prepare(mesh, mat)
	if err != nil {
		Logger().Warn("sparrow: draw rejected", "err", err)
		return err
	}
	p.stats = FrameStats{}
	if d.tris == 0 {
		return nil
	}

	producers, consumers := p.opts.workers()
	writer := disruptor.NewSharedWriteCursor("primitives", int64(p.queue.Len()))
	readers := make([]*disruptor.ReadCursor, consumers)
	for i := range readers {
		r := disruptor.NewReadCursor(fmt.Sprintf("tiles-%d", i))
		r.Follow(writer)
		writer.Follow(r)
		readers[i] = r
	}

	emit := func(verts []float32, n int) error {
		pos, err := writer.Claim(1)
		if err != nil {
			return err
		}
		p.queue.At(pos).set(verts, n, d.stride)
		return writer.PublishAfter(pos, pos-1)
	}

	var g, pg errgroup.Group
	for _, span := range parallel.Split(d.tris, producers) {
		pg.Go(func() (err error) {
			defer recoverWorker(writer, "producer", &err)
			pr := newProducer(d)
			err = pr.run(span, emit)
			d.counters.merge(&pr.stats)
			if err != nil {
				writer.SetAlert(err)
			}
			return err
		})
	}
	// The sentinel goes last, after every producer has published.
	g.Go(func() error {
		if err := pg.Wait(); err != nil {
			return err
		}
		pos, err := writer.Claim(1)
		if err != nil {
			return err
		}
		p.queue.At(pos).setEOF()
		return writer.PublishAfter(pos, pos-1)
	})
	for i, tiles := range p.grid.Partition(consumers) {
		r := readers[i]
		g.Go(func() (err error) {
			defer recoverWorker(r, "consumer", &err)
			c := p.newConsumer(d, tiles)
			err = c.run(r, p.queue)
			d.counters.merge(&c.stats)
			return err
		})
	}

	err = g.Wait()
	p.stats = d.counters.snapshot(d.tris)
	Logger().Debug("sparrow: draw",
		"producers", producers, "consumers", consumers, "stats", p.stats)
	return err
}

// DrawSerial renders like Draw on the calling goroutine only, without the
// queue. It produces the same image as Draw and serves as a reference.
func (p *Pipeline) DrawSerial(mesh Mesh, mat Material) (err error) {
	d, err := p.prepare(mesh, mat)
	if err != nil {
		Logger().Warn("sparrow: draw rejected", "err", err)
		return err
	}
	p.stats = FrameStats{}
	defer recoverWorker(nil, "serial", &err)

	pr := newProducer(d)
	c := p.newConsumer(d, p.grid.Partition(1)[0])
	err = pr.run(parallel.Span{End: d.tris}, func(verts []float32, n int) error {
		c.consume(&primitive{verts: verts[:n*d.stride], count: n, stride: d.stride})
		return nil
	})
	d.counters.merge(&pr.stats)
	d.counters.merge(&c.stats)
	p.stats = d.counters.snapshot(d.tris)
	Logger().Debug("sparrow: serial draw", "stats", p.stats)
	return err
}

// alerter is a cursor that can be put into the alert state.
type alerter interface {
	SetAlert(err error)
}

// recoverWorker turns a panic into an error, stores it in *err and alerts
// a so the goroutines following it stop too.
func recoverWorker(a alerter, role string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	var e error
	if re, ok := r.(error); ok {
		e = fmt.Errorf("sparrow: %s panic: %w", role, re)
	} else {
		e = fmt.Errorf("sparrow: %s panic: %v", role, r)
	}
	if a != nil {
		a.SetAlert(e)
	}
	*err = e
}
