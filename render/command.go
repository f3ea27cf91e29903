// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/sparrow"
)

// Command is one step executed by a Renderer. The set of commands is
// closed: Clear, SetViewport, Draw and Present.
type Command interface {
	fmt.Stringer
	command()
}

// Clear fills the whole target with Color and resets its depth buffer.
type Clear struct {
	Color sparrow.Color
}

// SetViewport maps NDC onto Rect, in target pixels with Y down. An empty
// Rect restores the full-target viewport.
type SetViewport struct {
	Rect image.Rectangle
}

// Draw renders Mesh with Material.
type Draw struct {
	Mesh     sparrow.Mesh
	Material sparrow.Material
}

// Present ends the current frame and hands it to the present callback.
type Present struct{}

func (Clear) command()       {}
func (SetViewport) command() {}
func (Draw) command()        {}
func (Present) command()     {}

func (c Clear) String() string {
	return fmt.Sprintf("Clear(%.3g, %.3g, %.3g, %.3g)", c.Color.R, c.Color.G, c.Color.B, c.Color.A)
}

func (c SetViewport) String() string { return "SetViewport(" + c.Rect.String() + ")" }

func (c Draw) String() string { return fmt.Sprintf("Draw(%T)", c.Material) }

func (Present) String() string { return "Present" }
