package sparrow

import (
	"runtime"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sparrow/internal/disruptor"
	"github.com/gogpu/sparrow/internal/parallel"
)

// PrimitiveQueueSize is the default capacity of the primitive ring buffer.
const PrimitiveQueueSize = 64

// Option configures a Pipeline during creation.
//
// Example:
//
//	// Defaults: all cores, CCW front faces, back-face culling
//	p := sparrow.NewPipeline()
//
//	// Four workers, no culling, wireframe
//	p := sparrow.NewPipeline(
//	    sparrow.WithMaxCores(4),
//	    sparrow.WithCullMode(gputypes.CullModeNone),
//	    sparrow.WithRasterizerMode(sparrow.RasterizerWireframe),
//	)
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	maxCores  int
	producers int
	consumers int
	primitive gputypes.PrimitiveState
	queueSize int
	mode      RasterizerMode
	depthTest bool
	tileW     int
	tileH     int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		queueSize: PrimitiveQueueSize,
		mode:      RasterizerFill,
		depthTest: true,
		tileW:     parallel.TileWidth,
		tileH:     parallel.TileHeight,
	}
}

// workers returns the number of producer and consumer goroutines per draw.
// Without WithWorkers, the usable cores are split in half; the producers
// get the smaller half.
func (o *pipelineOptions) workers() (producers, consumers int) {
	if o.producers > 0 && o.consumers > 0 {
		return o.producers, o.consumers
	}
	n := runtime.GOMAXPROCS(0)
	if o.maxCores > 0 {
		n = min(n, o.maxCores)
	}
	producers = max(n>>1, 1)
	consumers = max(n-producers, 1)
	return producers, consumers
}

// WithMaxCores caps the number of worker goroutines at n. n <= 0 means no
// cap.
func WithMaxCores(n int) Option {
	return func(o *pipelineOptions) {
		o.maxCores = n
	}
}

// WithWorkers sets the producer and consumer counts explicitly, overriding
// the core split. Values below one are ignored.
func WithWorkers(producers, consumers int) Option {
	return func(o *pipelineOptions) {
		if producers >= 1 && consumers >= 1 {
			o.producers, o.consumers = producers, consumers
		}
	}
}

// WithFrontFace sets which winding is the front face.
func WithFrontFace(f gputypes.FrontFace) Option {
	return func(o *pipelineOptions) {
		o.primitive.FrontFace = f
	}
}

// WithCullMode sets which faces are culled.
func WithCullMode(c gputypes.CullMode) Option {
	return func(o *pipelineOptions) {
		o.primitive.CullMode = c
	}
}

// WithPrimitiveState sets front face and cull mode from a WebGPU primitive
// state. Only triangle lists are rasterized; the topology and strip index
// format are ignored.
func WithPrimitiveState(s gputypes.PrimitiveState) Option {
	return func(o *pipelineOptions) {
		o.primitive.FrontFace = s.FrontFace
		o.primitive.CullMode = s.CullMode
	}
}

// WithQueueSize sets the primitive ring capacity. It panics unless n is a
// positive power of two.
func WithQueueSize(n int) Option {
	if !disruptor.IsPowerOfTwo(n) {
		panic("sparrow: queue size must be a power of two")
	}
	return func(o *pipelineOptions) {
		o.queueSize = n
	}
}

// WithRasterizerMode selects fill or wireframe rasterization.
func WithRasterizerMode(m RasterizerMode) Option {
	return func(o *pipelineOptions) {
		o.mode = m
	}
}

// WithDepthTest enables or disables the less-than depth test. Enabled by
// default.
func WithDepthTest(enabled bool) Option {
	return func(o *pipelineOptions) {
		o.depthTest = enabled
	}
}

// WithTileSize sets the tile size in pixels. Both sides must be powers of
// two and at least 2; NewPipeline panics otherwise.
func WithTileSize(w, h int) Option {
	return func(o *pipelineOptions) {
		o.tileW, o.tileH = w, h
	}
}
