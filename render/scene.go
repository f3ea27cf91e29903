// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"slices"

	"github.com/gogpu/sparrow"
)

// Scene is a recorded command list. Recording does not touch any
// pipeline, so a Scene can be built once and rendered many times.
//
// Example:
//
//	scene := render.NewScene()
//	scene.Clear(sparrow.Black)
//	scene.SetViewport(image.Rect(0, 0, 320, 240))
//	scene.Draw(mesh, mat)
//	scene.Present()
type Scene struct {
	commands []Command
}

// NewScene creates an empty Scene.
func NewScene() *Scene {
	return &Scene{commands: make([]Command, 0, 16)}
}

// Clear records a Clear command.
func (s *Scene) Clear(c sparrow.Color) { s.Add(Clear{Color: c}) }

// SetViewport records a SetViewport command.
func (s *Scene) SetViewport(r image.Rectangle) { s.Add(SetViewport{Rect: r}) }

// Draw records a Draw command.
func (s *Scene) Draw(m sparrow.Mesh, mat sparrow.Material) {
	s.Add(Draw{Mesh: m, Material: mat})
}

// Present records a Present command.
func (s *Scene) Present() { s.Add(Present{}) }

// Add appends commands to the scene. Nil commands are ignored.
func (s *Scene) Add(cmds ...Command) {
	for _, c := range cmds {
		if c != nil {
			s.commands = append(s.commands, c)
		}
	}
}

// Len returns the number of recorded commands.
func (s *Scene) Len() int { return len(s.commands) }

// Commands returns a copy of the recorded commands.
func (s *Scene) Commands() []Command { return slices.Clone(s.commands) }

// Reset removes every command, keeping the allocated capacity.
func (s *Scene) Reset() {
	clear(s.commands)
	s.commands = s.commands[:0]
}
