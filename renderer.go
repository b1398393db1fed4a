package orrery

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/orrery/camera"
	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/raster"
	"github.com/gogpu/orrery/scene"
	"github.com/gogpu/orrery/shader"
	"github.com/gogpu/orrery/transform"
)

// FrameStats describes the work done for one frame.
type FrameStats struct {
	raster.Stats

	// Stars is the number of stars drawn.
	Stars int
	// RingPixels is the number of orbit-ring pixels written.
	RingPixels int
	// Bright is the number of pixels that fed the bloom pass.
	Bright int
	// Duration is the wall time from BeginFrame to EndFrame.
	Duration time.Duration
}

// Renderer drives the per-frame pipeline over one Framebuffer.
//
// A frame is BeginFrame, any number of Draw, DrawStarfield and DrawOrbit
// calls, then EndFrame. RenderScene runs the whole sequence for a scene.
// The projection and viewport matrices are computed once and only change
// on Resize.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts  options
	fb    *Framebuffer
	rast  *raster.Rasterizer
	bloom *Bloom
	stars []star

	projection mgl32.Mat4
	viewport   mgl32.Mat4
	view       mgl32.Mat4
	eye        mgl32.Vec3

	stats    FrameStats
	start    time.Time
	uniforms shader.Uniforms
}

// NewRenderer creates a renderer with a width×height framebuffer.
func NewRenderer(width, height int, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	fb.SetBackground(o.background)
	fb.Clear()

	r := &Renderer{
		opts:  o,
		fb:    fb,
		rast:  raster.New(fb, raster.WithCulling(o.cull)),
		stars: makeStars(o.stars, o.starSeed),
		view:  mgl32.Ident4(),
	}
	r.bloom = o.newBloom()
	r.computeProjection()
	return r, nil
}

// Reconfigure applies opts on top of the current options and rebuilds the
// background, bloom pass, starfield, rasterizer and projection from the
// result. The framebuffer keeps its size and contents until the next
// BeginFrame.
func (r *Renderer) Reconfigure(opts ...Option) {
	for _, opt := range opts {
		opt(&r.opts)
	}
	o := &r.opts
	r.fb.SetBackground(o.background)
	r.bloom = o.newBloom()
	r.stars = makeStars(o.stars, o.starSeed)
	r.rast = raster.New(r.fb, raster.WithCulling(o.cull))
	r.computeProjection()
}

// ApplyScene resets the settings a scene file controls and reapplies them
// from s: background, starfield, ambient and bloom. The lens, clip planes,
// culling and ring options are kept.
func (r *Renderer) ApplyScene(s *scene.Scene) {
	d := defaultOptions()
	o := &r.opts
	o.background = d.background
	o.bloom, o.threshold, o.radius, o.strength = d.bloom, d.threshold, d.radius, d.strength
	o.stars, o.starSeed, o.ambient = d.stars, d.starSeed, d.ambient
	r.Reconfigure(SceneOptions(s)...)
	Logger().Debug("orrery: scene applied", "stars", len(r.stars), "bloom", r.bloom != nil)
}

func (r *Renderer) computeProjection() {
	w, h := float32(r.fb.width), float32(r.fb.height)
	r.projection = transform.PerspectiveFOV(r.opts.fov, transform.Aspect(w, h), r.opts.near, r.opts.far)
	r.viewport = transform.Viewport(w, h)
}

// Framebuffer returns the framebuffer frames are drawn into.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Bloom returns the bloom pass, or nil when bloom is disabled.
func (r *Renderer) Bloom() *Bloom {
	return r.bloom
}

// Projection returns the projection matrix.
func (r *Renderer) Projection() mgl32.Mat4 {
	return r.projection
}

// Viewport returns the viewport matrix.
func (r *Renderer) Viewport() mgl32.Mat4 {
	return r.viewport
}

// Stats returns the statistics of the last finished frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Resize replaces the framebuffer and recomputes the projection and
// viewport matrices.
func (r *Renderer) Resize(width, height int) error {
	if width == r.fb.width && height == r.fb.height {
		return nil
	}
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return err
	}
	fb.SetBackground(r.fb.Background())
	fb.Clear()
	r.fb = fb
	r.rast.SetTarget(fb)
	r.computeProjection()
	Logger().Debug("orrery: resized", "width", width, "height", height)
	return nil
}

// SetCamera rebuilds the view matrix.
func (r *Renderer) SetCamera(eye, center, up mgl32.Vec3) {
	r.eye = eye
	r.view = transform.View(eye, center, up)
}

// Transforms returns the matrix set for a draw with the given model matrix.
func (r *Renderer) Transforms(model mgl32.Mat4) transform.Set {
	return transform.Set{
		Model:      model,
		View:       r.view,
		Projection: r.projection,
		Viewport:   r.viewport,
	}
}

// BeginFrame clears the framebuffer and resets the statistics.
func (r *Renderer) BeginFrame() {
	r.start = time.Now()
	r.stats = FrameStats{}
	r.rast.ResetStats()
	r.fb.Clear()
}

// Draw rasterizes m with u. It returns the number of fragments written.
func (r *Renderer) Draw(m *mesh.Mesh, u *shader.Uniforms) int {
	return r.rast.DrawMesh(m, u)
}

// EndFrame runs the bloom pass and returns the frame statistics.
func (r *Renderer) EndFrame() FrameStats {
	if r.bloom != nil {
		r.stats.Bright = r.bloom.Apply(r.fb)
	}
	r.stats.Stats = r.rast.Stats()
	r.stats.Duration = time.Since(r.start)

	Logger().Debug("orrery: frame",
		"triangles", r.stats.Triangles,
		"rejected", r.stats.Rejected,
		"fragments", r.stats.Fragments,
		"written", r.stats.Written,
		"bright", r.stats.Bright,
		"duration", r.stats.Duration,
	)
	return r.stats
}

// RenderScene draws one complete frame of s at the given frame number: the
// starfield, the orbit rings, every body with m as its mesh, then bloom.
// Lit bodies are lit from the direction of the sun.
func (r *Renderer) RenderScene(s *scene.Scene, m *mesh.Mesh, cam *camera.Camera, frame uint64) FrameStats {
	r.SetCamera(cam.Eye, cam.Center, cam.Up)
	r.BeginFrame()
	r.DrawStarfield()

	if r.opts.rings {
		for i := range s.Planets {
			if p := &s.Planets[i]; p.Ring {
				r.DrawOrbit(p.Distance)
			}
		}
	}

	var sun mgl32.Vec3
	if s.Sun != nil {
		sun = s.Sun.Translation(frame)
	}

	u := &r.uniforms
	for _, b := range s.Bodies() {
		pos := b.Translation(frame)
		*u = shader.Uniforms{
			Set:     r.Transforms(b.Model(frame)),
			Time:    frame,
			Spin:    b.Spin,
			Noise:   b.Noise(),
			Ambient: r.opts.ambient,
		}
		if d := sun.Sub(pos); !b.Kind().Emissive() && d.Len() > 0 {
			u.Light = d.Normalize()
		}
		u.Use(b.Kind())
		r.Draw(m, u)
	}

	return r.EndFrame()
}
