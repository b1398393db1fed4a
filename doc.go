// Package orrery renders a small orbital scene on the CPU.
//
// # Overview
//
// Each frame runs a fixed pipeline: the [Framebuffer] is cleared, every
// body is transformed, rasterized and shaded into it with a depth test,
// and a [Bloom] pass spreads the glow of the emissive body. The finished
// RGBA buffer is handed to whatever presents it (a window, an image file).
//
// # Quick Start
//
//	import "github.com/gogpu/orrery"
//
//	sc := scene.Default()
//	sphere := mesh.Sphere(32, 48)
//	cam := camera.New(sc.Camera.Eye, sc.Camera.Center)
//
//	r, err := orrery.NewRenderer(sc.Width, sc.Height, orrery.SceneOptions(sc)...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r.RenderScene(sc, sphere, cam, 0)
//	r.Framebuffer().SavePNG("frame.png")
//
// # Packages
//
// The pipeline stages live in their own packages: [transform] builds the
// matrices, [raster] walks triangles, [shader] colors fragments. This
// package owns the framebuffer and drives the frame.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to receive per-frame
// statistics at debug level.
//
// [transform]: https://pkg.go.dev/github.com/gogpu/orrery/transform
// [raster]: https://pkg.go.dev/github.com/gogpu/orrery/raster
// [shader]: https://pkg.go.dev/github.com/gogpu/orrery/shader
package orrery
