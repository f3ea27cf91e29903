// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/sparrow"
)

// ErrUnknownCommand is returned by Flush for a Command implementation the
// renderer does not know how to execute.
var ErrUnknownCommand = errors.New("render: unknown command")

// Frame describes a presented frame.
type Frame struct {
	// Index counts presented frames, starting at 0.
	Index uint64

	// Target is the render target the frame was drawn into.
	Target sparrow.Target

	// Image is the target's pixels when it is a *sparrow.PixmapTarget,
	// nil otherwise.
	Image *image.RGBA

	// Stats sums the statistics of every Draw since the previous Present.
	Stats sparrow.FrameStats

	// Dirty bounds the pixels written since the previous Present, with
	// tile granularity.
	Dirty image.Rectangle
}

// PresentFunc receives finished frames. A returned error aborts the
// Flush that presented the frame.
type PresentFunc func(Frame) error

// Option configures a Renderer.
type Option func(*Renderer)

// WithPresent sets the callback invoked by every Present command.
func WithPresent(fn PresentFunc) Option {
	return func(r *Renderer) { r.present = fn }
}

// Renderer executes commands against a Pipeline.
type Renderer struct {
	pipeline *sparrow.Pipeline
	present  PresentFunc

	qmu     sync.Mutex
	pending []Command

	// mu serializes execution; fields below are guarded by it.
	mu     sync.Mutex
	frames uint64
	stats  sparrow.FrameStats
}

// NewRenderer creates a renderer that draws through p.
func NewRenderer(p *sparrow.Pipeline, opts ...Option) *Renderer {
	r := &Renderer{pipeline: p}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Pipeline returns the pipeline commands are executed on.
func (r *Renderer) Pipeline() *sparrow.Pipeline { return r.pipeline }

// Submit queues commands for the next Flush. Nil commands are ignored.
func (r *Renderer) Submit(cmds ...Command) {
	r.qmu.Lock()
	defer r.qmu.Unlock()
	for _, c := range cmds {
		if c != nil {
			r.pending = append(r.pending, c)
		}
	}
}

// Pending returns the number of queued commands.
func (r *Renderer) Pending() int {
	r.qmu.Lock()
	defer r.qmu.Unlock()
	return len(r.pending)
}

// Flush executes every queued command in submission order. Execution stops
// at the first failing command or when ctx is done; the remaining queued
// commands are discarded.
func (r *Renderer) Flush(ctx context.Context) error {
	r.qmu.Lock()
	cmds := r.pending
	r.pending = nil
	r.qmu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.execute(c); err != nil {
			return fmt.Errorf("render: %v: %w", c, err)
		}
	}
	return nil
}

// Render binds target (when it differs from the pipeline's current one),
// queues the scene's commands and flushes.
func (r *Renderer) Render(ctx context.Context, target sparrow.Target, scene *Scene) error {
	if target == nil {
		return sparrow.ErrNilTarget
	}
	r.mu.Lock()
	if r.pipeline.Target() != target {
		r.pipeline.SetRenderTarget(target)
	}
	r.mu.Unlock()

	if scene != nil {
		r.Submit(scene.commands...)
	}
	return r.Flush(ctx)
}

// Frames returns the number of presented frames.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Renderer) execute(c Command) error {
	p := r.pipeline
	switch c := c.(type) {
	case Clear:
		return p.Clear(c.Color)

	case SetViewport:
		t := p.Target()
		if t == nil {
			return sparrow.ErrNilTarget
		}
		rect := c.Rect
		if rect.Empty() {
			rect = image.Rect(0, 0, t.Width(), t.Height())
		}
		p.SetViewport(rect)
		return nil

	case Draw:
		if err := p.Draw(c.Mesh, c.Material); err != nil {
			sparrow.Logger().Warn("render: draw rejected", "material", fmt.Sprintf("%T", c.Material), "err", err)
			return err
		}
		r.stats.Add(p.Stats())
		return nil

	case Present:
		return r.presentFrame()

	default:
		return ErrUnknownCommand
	}
}

func (r *Renderer) presentFrame() error {
	p := r.pipeline
	f := Frame{
		Index:  r.frames,
		Target: p.Target(),
		Stats:  r.stats,
		Dirty:  p.DirtyRect(),
	}
	if pt, ok := f.Target.(*sparrow.PixmapTarget); ok {
		f.Image = pt.Image()
	}

	r.frames++
	r.stats = sparrow.FrameStats{}
	p.ResetDirty()

	sparrow.Logger().Debug("render: present", "frame", f.Index, "dirty", f.Dirty.String(), "stats", f.Stats)
	if r.present == nil {
		return nil
	}
	return r.present(f)
}
