// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render drives a sparrow.Pipeline from a queue of commands.
//
// Commands are small values (Clear, SetViewport, Draw, Present) that can be
// recorded into a Scene ahead of time and replayed any number of times, or
// submitted one by one to a Renderer. The Renderer executes them in order
// on Flush and reports each finished frame through a Present callback.
//
// # Usage
//
//	p := sparrow.NewPipeline()
//	r := render.NewRenderer(p, render.WithPresent(func(f render.Frame) error {
//	    return imaging.Save(f.Image, "frame.png")
//	}))
//
//	scene := render.NewScene()
//	scene.Clear(sparrow.Black)
//	scene.Draw(mesh, mat)
//	scene.Present()
//
//	if err := r.Render(ctx, target, scene); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Submit may be called from any goroutine. Flush and Render serialize on
// the renderer; commands of one Flush never interleave with another.
package render
