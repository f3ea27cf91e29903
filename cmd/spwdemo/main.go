// Command spwdemo renders a small 3D scene with the sparrow software
// rasterizer and saves it as an image.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/sparrow"
	"github.com/gogpu/sparrow/material"
	"github.com/gogpu/sparrow/render"
)

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		output    = flag.String("output", "demo.png", "output file (format from extension)")
		ss        = flag.Int("ss", 2, "supersampling factor")
		cores     = flag.Int("cores", 0, "maximum worker goroutines (0 = GOMAXPROCS)")
		wireframe = flag.Bool("wireframe", false, "draw triangle edges only")
		verbose   = flag.Bool("v", false, "log pipeline statistics")
	)
	flag.Parse()

	if *verbose {
		sparrow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	scale := max(*ss, 1)
	w, h := *width*scale, *height*scale
	opts := []sparrow.Option{sparrow.WithMaxCores(*cores)}
	if *wireframe {
		opts = append(opts, sparrow.WithRasterizerMode(sparrow.RasterizerWireframe))
	}
	p := sparrow.NewPipeline(opts...)

	r := render.NewRenderer(p, render.WithPresent(func(f render.Frame) error {
		out := imaging.Resize(f.Image, *width, *height, imaging.Lanczos)
		if err := imaging.Save(out, *output); err != nil {
			return err
		}
		log.Printf("Demo saved to %s (%dx%d, %d fragments)\n", *output, *width, *height, f.Stats.Fragments)
		return nil
	}))

	target := sparrow.NewPixmapTarget(w, h)
	if err := r.Render(context.Background(), target, buildScene(w, h)); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
}

// buildScene draws a backdrop of colored triangles over the whole target,
// then a lit cube in the left half and a textured cube in the right half.
func buildScene(w, h int) *render.Scene {
	s := render.NewScene()
	s.Clear(sparrow.RGB(0.1, 0.12, 0.18))
	s.Draw(backdrop(12), material.NewVertexColor(material.Identity()))

	half := w / 2
	aspect := float32(half) / float32(h)
	proj := material.Perspective(math.Pi/4, aspect, 0.5, 20)
	view := material.Translate(0, 0, -5)
	model := material.Mul(material.RotateY(0.7), material.RotateX(0.5))
	mvp := material.MulAll(proj, view, model)
	cube := material.Cube()

	s.SetViewport(image.Rect(0, 0, half, h))
	s.Draw(cube, material.NewLambert(mvp, model, f32.Vec3{0.4, 0.8, 1}, sparrow.RGB(1, 0.55, 0.2)))

	s.SetViewport(image.Rect(half, 0, w, h))
	s.Draw(cube, material.NewTextured(mvp, checker(8, 32)))

	s.SetViewport(image.Rectangle{})
	s.Present()
	return s
}

// backdrop returns n triangles fanned around the screen center, pushed to
// the far end of the depth range.
func backdrop(n int) *sparrow.StaticMesh {
	const z = 0.99
	pos := []float32{0, 0, z}
	col := []float32{1, 1, 1, 1}
	idx := make([]uint16, 0, n*3)
	for i := range n + 1 {
		a := 2 * math.Pi * float64(i) / float64(n)
		pos = append(pos, float32(2*math.Cos(a)), float32(2*math.Sin(a)), z)
		c := sparrow.HSL(float64(i)*360/float64(n), 0.6, 0.35)
		col = append(col, c.R, c.G, c.B, c.A)
	}
	for i := range n {
		idx = append(idx, 0, uint16(i+1), uint16(i+2))
	}
	return sparrow.NewMesh(sparrow.Indices16(idx)).
		SetAttribute(sparrow.UsagePosition, sparrow.NewVertexView(pos, 3)).
		SetAttribute(sparrow.UsageColor, sparrow.NewVertexView(col, 4))
}

// checker returns a two-tone checkerboard with cells x cells squares.
func checker(cells, size int) image.Image {
	img := imaging.New(cells*size, cells*size, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
	dark := color.NRGBA{R: 40, G: 90, B: 160, A: 255}
	for y := range img.Bounds().Dy() {
		for x := range img.Bounds().Dx() {
			if (x/size+y/size)%2 == 1 {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}
