package sparrow

import (
	"log/slog"
	"sync/atomic"
)

// FrameStats counts what happened to the geometry of one Draw.
type FrameStats struct {
	// Triangles is the number of input triangles.
	Triangles uint64

	// Culled counts triangles removed by face culling.
	Culled uint64

	// Clipped counts triangles entirely outside the view volume.
	Clipped uint64

	// Primitives counts clipped polygons published to the tile workers.
	Primitives uint64

	// Fragments counts pixels written to the target.
	Fragments uint64

	// DepthRejected counts fragments that failed the depth test.
	DepthRejected uint64

	// Discarded counts fragments rejected by the fragment shader.
	Discarded uint64
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("triangles", s.Triangles),
		slog.Uint64("culled", s.Culled),
		slog.Uint64("clipped", s.Clipped),
		slog.Uint64("primitives", s.Primitives),
		slog.Uint64("fragments", s.Fragments),
		slog.Uint64("depth_rejected", s.DepthRejected),
		slog.Uint64("discarded", s.Discarded),
	)
}

// frameCounters accumulates FrameStats from many goroutines. Workers count
// locally and merge once when they finish.
type frameCounters struct {
	culled, clipped, primitives         atomic.Uint64
	fragments, depthRejected, discarded atomic.Uint64
}

func (c *frameCounters) merge(s *FrameStats) {
	c.culled.Add(s.Culled)
	c.clipped.Add(s.Clipped)
	c.primitives.Add(s.Primitives)
	c.fragments.Add(s.Fragments)
	c.depthRejected.Add(s.DepthRejected)
	c.discarded.Add(s.Discarded)
}

func (c *frameCounters) snapshot(triangles int) FrameStats {
	return FrameStats{
		Triangles:     uint64(triangles),
		Culled:        c.culled.Load(),
		Clipped:       c.clipped.Load(),
		Primitives:    c.primitives.Load(),
		Fragments:     c.fragments.Load(),
		DepthRejected: c.depthRejected.Load(),
		Discarded:     c.discarded.Load(),
	}
}

// Add accumulates o into s.
func (s *FrameStats) Add(o FrameStats) {
	s.Triangles += o.Triangles
	s.Culled += o.Culled
	s.Clipped += o.Clipped
	s.Primitives += o.Primitives
	s.Fragments += o.Fragments
	s.DepthRejected += o.DepthRejected
	s.Discarded += o.Discarded
}
