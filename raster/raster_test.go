package raster

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/orrery/internal/color"
	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/shader"
	"github.com/gogpu/orrery/transform"
)

func scenario(model mgl32.Mat4) *shader.Uniforms {
	return &shader.Uniforms{Set: transform.Set{
		Model:      model,
		View:       transform.View(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		Projection: transform.PerspectiveFOV(45, 1, 0.1, 100),
		Viewport:   transform.Viewport(600, 600),
	}}
}

func TestRejectBehindCamera(t *testing.T) {
	sphere := mesh.Sphere(12, 12)
	g := newGrid(600, 600)
	r := New(g, WithShader(flat))

	// The eye sits at z=5 looking toward -Z; z=10 is behind it.
	u := scenario(mgl32.Translate3D(0, 0, 10))
	if n := r.DrawMesh(sphere, u); n != 0 {
		t.Errorf("DrawMesh wrote %d fragments, want 0", n)
	}
	s := r.Stats()
	if s.Fragments != 0 {
		t.Errorf("Fragments = %d, want 0", s.Fragments)
	}
	if s.Rejected != s.Triangles || s.Triangles != sphere.Triangles() {
		t.Errorf("Rejected = %d, Triangles = %d, want both %d", s.Rejected, s.Triangles, sphere.Triangles())
	}
}

func TestRejectNonPositiveW(t *testing.T) {
	g := newGrid(16, 16)
	r := New(g, WithShader(flat))
	a, b, c := sv(1, 1, 0.5), sv(14, 1, 0.5), sv(1, 14, 0.5)
	for _, w := range []float32{0, -1, float32(math.NaN())} {
		c.InvW = w
		if n := r.Triangle(&a, &b, &c, nil); n != 0 {
			t.Errorf("InvW %v: wrote %d fragments", w, n)
		}
	}
	if s := r.Stats(); s.Rejected != 3 || s.Fragments != 0 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestSceneCenterCovered(t *testing.T) {
	g := newGrid(600, 600)
	r := New(g)
	r.DrawMesh(mesh.Sphere(24, 32), scenario(mgl32.Ident4()))

	i := 300*600 + 300
	d := g.depth[i]
	if g.hits[i] == 0 {
		t.Fatal("pixel (300,300) not covered")
	}
	if math.IsInf(float64(d), 0) || !(d > 0 && d < 1) {
		t.Errorf("depth at center = %v, want finite in (0,1)", d)
	}
	// Nearest point (0,0,1) is 4 units from the eye.
	const want = 0.976
	if math32.Abs(d-want) > 0.002 {
		t.Errorf("depth at center = %v, want ≈ %v", d, want)
	}
}

func TestCullingKeepsFrontFaces(t *testing.T) {
	sphere := mesh.Sphere(16, 24)

	all := newGrid(600, 600)
	New(all, WithShader(flat)).DrawMesh(sphere, scenario(mgl32.Ident4()))

	front := newGrid(600, 600)
	r := New(front, WithShader(flat), WithCulling(true))
	r.DrawMesh(sphere, scenario(mgl32.Ident4()))

	if !all.equal(front) {
		t.Error("culling back faces changed the visible image")
	}
	if s := r.Stats(); s.Culled == 0 {
		t.Error("no triangles culled")
	}
}

func TestCullingWinding(t *testing.T) {
	g := newGrid(16, 16)
	r := New(g, WithShader(flat), WithCulling(true))
	// Positive area on the Y-down screen is clockwise in NDC.
	a, b, c := sv(1, 1, 0.5), sv(14, 1, 0.5), sv(1, 14, 0.5)
	if n := r.Triangle(&a, &b, &c, nil); n != 0 {
		t.Errorf("back face wrote %d fragments", n)
	}
	if n := r.Triangle(&a, &c, &b, nil); n == 0 {
		t.Error("front face wrote nothing")
	}
	if s := r.Stats(); s.Culled != 1 {
		t.Errorf("Culled = %d, want 1", s.Culled)
	}
}

func TestDepthTestIdempotent(t *testing.T) {
	once := newGrid(32, 32)
	twice := newGrid(32, 32)
	a, b, c := sv(2, 3, 0.2), sv(29, 7, 0.6), sv(9, 30, 0.4)

	New(once, WithShader(flat)).Triangle(&a, &b, &c, nil)

	r := New(twice, WithShader(flat))
	first := r.Triangle(&a, &b, &c, nil)
	second := r.Triangle(&a, &b, &c, nil)

	if first == 0 {
		t.Fatal("triangle wrote nothing")
	}
	if second != 0 {
		t.Errorf("second pass wrote %d fragments, want 0", second)
	}
	if !once.equal(twice) {
		t.Error("drawing twice differs from drawing once")
	}
}

func TestOrderIndependent(t *testing.T) {
	// Two overlapping triangles at distinct constant depths.
	near := [3]Vertex{sv(2, 2, 0.3), sv(28, 4, 0.3), sv(6, 26, 0.3)}
	far := [3]Vertex{sv(30, 30, 0.7), sv(4, 12, 0.7), sv(20, 1, 0.7)}

	ab := newGrid(32, 32)
	r := New(ab, WithShader(flat))
	r.Triangle(&near[0], &near[1], &near[2], nil)
	r.Triangle(&far[0], &far[1], &far[2], nil)

	ba := newGrid(32, 32)
	r = New(ba, WithShader(flat))
	r.Triangle(&far[0], &far[1], &far[2], nil)
	r.Triangle(&near[0], &near[1], &near[2], nil)

	if !ab.equal(ba) {
		t.Error("framebuffer depends on submission order")
	}
}

// coverOnce checks that every pixel center inside [x0,x1)×[y0,y1) was hit
// exactly once and nothing outside was hit.
func coverOnce(t *testing.T, g *grid, x0, y0, x1, y1 int) {
	t.Helper()
	for y := range g.h {
		for x := range g.w {
			want := 0
			if x >= x0 && x < x1 && y >= y0 && y < y1 {
				want = 1
			}
			if got := g.hits[y*g.w+x]; got != want {
				t.Fatalf("pixel (%d,%d) hit %d times, want %d", x, y, got, want)
			}
		}
	}
}

func TestTopLeftSharedDiagonal(t *testing.T) {
	g := newGrid(12, 12)
	r := New(g, WithShader(flat))
	// The diagonal passes through pixel centers, so every tie is exercised.
	a, b, c, d := sv(2, 2, 0.5), sv(10, 2, 0.5), sv(10, 10, 0.5), sv(2, 10, 0.5)
	r.Triangle(&a, &b, &c, nil)
	r.Triangle(&a, &c, &d, nil)
	coverOnce(t, g, 2, 2, 10, 10)
}

func TestTopLeftFan(t *testing.T) {
	g := newGrid(32, 32)
	r := New(g, WithShader(flat))
	center := sv(16, 16, 0.5)
	ring := []Vertex{
		sv(8, 8, 0.5), sv(16, 8, 0.5), sv(24, 8, 0.5), sv(24, 16, 0.5),
		sv(24, 24, 0.5), sv(16, 24, 0.5), sv(8, 24, 0.5), sv(8, 16, 0.5),
	}
	for i := range ring {
		j := (i + 1) % len(ring)
		// Alternate windings; both must follow the same rule.
		if i%2 == 0 {
			r.Triangle(&center, &ring[i], &ring[j], nil)
		} else {
			r.Triangle(&center, &ring[j], &ring[i], nil)
		}
	}
	coverOnce(t, g, 8, 8, 24, 24)
}

func TestDegenerateTriangle(t *testing.T) {
	g := newGrid(16, 16)
	r := New(g, WithShader(flat))
	a, b, c := sv(1, 1, 0.5), sv(8, 8, 0.5), sv(15, 15, 0.5)
	if n := r.Triangle(&a, &b, &c, nil); n != 0 {
		t.Errorf("collinear triangle wrote %d fragments", n)
	}
	if s := r.Stats(); s.Culled != 1 {
		t.Errorf("Culled = %d, want 1", s.Culled)
	}
}

func TestDepthRangeDiscard(t *testing.T) {
	g := newGrid(16, 16)
	r := New(g, WithShader(flat))
	for _, z := range []float32{-0.1, 1.5} {
		a, b, c := sv(1, 1, z), sv(14, 1, z), sv(1, 14, z)
		if n := r.Triangle(&a, &b, &c, nil); n != 0 {
			t.Errorf("depth %v: wrote %d fragments", z, n)
		}
	}
}

func TestClippedToBounds(t *testing.T) {
	g := newGrid(10, 10)
	r := New(g, WithShader(flat))
	// Far larger than the target; Commit would panic on an out-of-range pixel.
	a, b, c := sv(-500, -500, 0.5), sv(900, -200, 0.5), sv(-100, 1e6, 0.5)
	if n := r.Triangle(&a, &b, &c, nil); n != 100 {
		t.Errorf("wrote %d fragments, want 100", n)
	}
	d, e, f := sv(-50, -50, 0.5), sv(-20, -50, 0.5), sv(-50, -20, 0.5)
	if n := r.Triangle(&d, &e, &f, nil); n != 0 {
		t.Errorf("off-screen triangle wrote %d fragments", n)
	}
}

func TestEarlyDepthSkipsShading(t *testing.T) {
	g := zgrid{newGrid(32, 32)}
	shaded := 0
	count := func(f *shader.Fragment, u *shader.Uniforms) color.ColorF32 {
		shaded++
		return flat(f, u)
	}
	r := New(g, WithShader(count))

	a, b, c := sv(0, 0, 0.2), sv(40, 0, 0.2), sv(0, 40, 0.2)
	r.Triangle(&a, &b, &c, nil)
	before := shaded

	d, e, f := sv(2, 2, 0.8), sv(12, 2, 0.8), sv(2, 12, 0.8)
	if n := r.Triangle(&d, &e, &f, nil); n != 0 {
		t.Errorf("hidden triangle wrote %d fragments", n)
	}
	if shaded != before {
		t.Errorf("hidden triangle shaded %d fragments", shaded-before)
	}
}

func TestPerspectiveCorrect(t *testing.T) {
	const size = 128
	set := transform.Set{
		Model:      mgl32.Ident4(),
		View:       transform.View(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}),
		Projection: transform.PerspectiveFOV(60, 1, 0.1, 100),
		Viewport:   transform.Viewport(size, size),
	}
	// A floor triangle receding from z=-2 to z=-40.
	m := &mesh.Mesh{Vertices: []mesh.Vertex{
		{Position: mgl32.Vec3{-3, -1, -2}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{3, -1, -2}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{0, -1, -40}, Normal: mgl32.Vec3{0, 1, 0}},
	}}
	mvp := set.MVP()

	var worst float32
	check := func(f *shader.Fragment, _ *shader.Uniforms) color.ColorF32 {
		p, ok := transform.Project(mvp, set.Viewport, f.Position)
		if !ok {
			t.Fatalf("interpolated position %v is behind the camera", f.Position)
		}
		dx := p.X - (float32(f.X) + 0.5)
		dy := p.Y - (float32(f.Y) + 0.5)
		worst = max(worst, math32.Abs(dx), math32.Abs(dy), math32.Abs(p.Depth-f.Depth)*size)
		return color.White
	}

	r := New(newGrid(size, size), WithShader(check))
	if n := r.DrawMesh(m, &shader.Uniforms{Set: set}); n == 0 {
		t.Fatal("floor triangle not visible")
	}
	// Affine interpolation is off by many pixels on this triangle.
	if worst > 0.05 {
		t.Errorf("interpolated position reprojects %v px from the pixel center", worst)
	}
}

func BenchmarkDrawSphere(b *testing.B) {
	sphere := mesh.Sphere(32, 48)
	g := zgrid{newGrid(600, 600)}
	r := New(g, WithShader(flat))
	u := scenario(mgl32.Ident4())
	b.ResetTimer()
	for b.Loop() {
		r.DrawMesh(sphere, u)
	}
}
