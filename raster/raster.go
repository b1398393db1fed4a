// Package raster converts screen-space triangles into shaded fragments.
//
// Coverage uses edge functions evaluated at pixel centers with the top-left
// fill rule, so triangles sharing an edge neither overlap nor leave gaps.
// Depth is interpolated linearly in screen space. Normals and object
// positions are interpolated perspective-correctly through 1/w.
//
// The rasterizer never divides by a non-positive w: a triangle with any
// vertex on or behind the camera plane is rejected whole.
package raster

import (
	"math"

	"github.com/gogpu/orrery/internal/color"
	"github.com/gogpu/orrery/shader"
)

// Target receives depth-tested fragment colors.
type Target interface {
	Width() int
	Height() int
	// Commit stores c at (x, y) if depth is strictly less than the stored
	// depth, and reports whether it did.
	Commit(x, y int, depth float32, c color.ColorF32) bool
}

// depthReader is implemented by targets that expose their depth buffer.
// The rasterizer uses it to skip shading fragments that would fail the
// depth test anyway.
type depthReader interface {
	DepthAt(x, y int) float32
}

// ShadeFunc computes a fragment color.
type ShadeFunc func(f *shader.Fragment, u *shader.Uniforms) color.ColorF32

// Stats counts the work done by a Rasterizer.
type Stats struct {
	// Triangles is the number of triangles submitted.
	Triangles int
	// Rejected counts triangles with a vertex at clip w <= 0.
	Rejected int
	// Culled counts degenerate and, with culling on, back-facing triangles.
	Culled int
	// Fragments counts covered pixels inside the [0,1] depth range.
	Fragments int
	// Shaded counts fragments passed to the shader.
	Shaded int
	// Written counts fragments that won the depth test.
	Written int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Rejected += o.Rejected
	s.Culled += o.Culled
	s.Fragments += o.Fragments
	s.Shaded += o.Shaded
	s.Written += o.Written
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithCulling enables back-face culling. Front faces are counter-clockwise
// in normalized device coordinates. Culling is off by default.
func WithCulling(on bool) Option {
	return func(r *Rasterizer) { r.cull = on }
}

// WithShader replaces shader.Shade as the fragment function.
func WithShader(fn ShadeFunc) Option {
	return func(r *Rasterizer) {
		if fn != nil {
			r.shade = fn
		}
	}
}

// WithEarlyDepth toggles skipping the shader for fragments already hidden
// behind the target's stored depth. It is on by default and only takes
// effect when the target exposes DepthAt.
func WithEarlyDepth(on bool) Option {
	return func(r *Rasterizer) { r.earlyZ = on }
}

// Rasterizer walks triangles for one Target.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	target Target
	depth  depthReader
	shade  ShadeFunc
	cull   bool
	earlyZ bool
	stats  Stats

	screen []Vertex
	valid  []bool
}

// New creates a Rasterizer drawing into target.
func New(target Target, opts ...Option) *Rasterizer {
	r := &Rasterizer{shade: shader.Shade, earlyZ: true}
	for _, opt := range opts {
		opt(r)
	}
	r.SetTarget(target)
	return r
}

// SetTarget switches the output target.
func (r *Rasterizer) SetTarget(t Target) {
	r.target = t
	r.depth = nil
	if d, ok := t.(depthReader); ok && r.earlyZ {
		r.depth = d
	}
}

// Stats returns the counters accumulated since the last ResetStats.
func (r *Rasterizer) Stats() Stats {
	return r.stats
}

// ResetStats zeroes the counters.
func (r *Rasterizer) ResetStats() {
	r.stats = Stats{}
}

// edge is the edge function of a→b at p: twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// topLeft reports whether edge a→b of a triangle with positive area is a
// top or left edge in Y-down screen space.
func topLeft(ax, ay, bx, by float64) bool {
	return (ay == by && bx > ax) || by < ay
}

// covers applies the fill rule to one edge weight.
func covers(w float64, tl bool) bool {
	return w > 0 || (w == 0 && tl)
}

// Triangle rasterizes one triangle, shading each covered fragment with u
// and committing it to the target. It returns the number of fragments
// written.
func (r *Rasterizer) Triangle(v0, v1, v2 *Vertex, u *shader.Uniforms) int {
	r.stats.Triangles++
	if !(v0.InvW > 0 && v1.InvW > 0 && v2.InvW > 0) {
		r.stats.Rejected++
		return 0
	}

	x0, y0 := float64(v0.X), float64(v0.Y)
	x1, y1 := float64(v1.X), float64(v1.Y)
	x2, y2 := float64(v2.X), float64(v2.Y)

	area := edge(x0, y0, x1, y1, x2, y2)
	// In Y-down screen space a counter-clockwise NDC triangle has
	// negative area.
	if !(area > 0 || area < 0) || math.IsInf(area, 0) || (r.cull && area > 0) {
		r.stats.Culled++
		return 0
	}
	if area < 0 {
		v1, v2 = v2, v1
		x1, y1, x2, y2 = x2, y2, x1, y1
		area = -area
	}

	w, h := r.target.Width(), r.target.Height()
	minX := math.Max(math.Floor(min(x0, x1, x2)), 0)
	minY := math.Max(math.Floor(min(y0, y1, y2)), 0)
	maxX := math.Min(math.Ceil(max(x0, x1, x2)), float64(w-1))
	maxY := math.Min(math.Ceil(max(y0, y1, y2)), float64(h-1))
	if !(minX <= maxX && minY <= maxY) {
		return 0
	}

	tl0 := topLeft(x1, y1, x2, y2)
	tl1 := topLeft(x2, y2, x0, y0)
	tl2 := topLeft(x0, y0, x1, y1)
	inv := 1 / area

	written := 0
	var frag shader.Fragment
	for py := int(minY); py <= int(maxY); py++ {
		cy := float64(py) + 0.5
		for px := int(minX); px <= int(maxX); px++ {
			cx := float64(px) + 0.5

			e0 := edge(x1, y1, x2, y2, cx, cy)
			e1 := edge(x2, y2, x0, y0, cx, cy)
			e2 := edge(x0, y0, x1, y1, cx, cy)
			if !covers(e0, tl0) || !covers(e1, tl1) || !covers(e2, tl2) {
				continue
			}

			b0 := float32(e0 * inv)
			b1 := float32(e1 * inv)
			b2 := float32(e2 * inv)

			z := b0*v0.Depth + b1*v1.Depth + b2*v2.Depth
			if !(z >= 0 && z <= 1) {
				continue
			}
			r.stats.Fragments++

			if r.depth != nil && !(z < r.depth.DepthAt(px, py)) {
				continue
			}

			q0, q1, q2 := b0*v0.InvW, b1*v1.InvW, b2*v2.InvW
			qs := 1 / (q0 + q1 + q2)
			q0, q1, q2 = q0*qs, q1*qs, q2*qs

			frag = shader.Fragment{
				X:        px,
				Y:        py,
				Depth:    z,
				Normal:   v0.Normal.Mul(q0).Add(v1.Normal.Mul(q1)).Add(v2.Normal.Mul(q2)),
				Position: v0.Position.Mul(q0).Add(v1.Position.Mul(q1)).Add(v2.Position.Mul(q2)),
			}
			r.stats.Shaded++
			if r.target.Commit(px, py, z, r.shade(&frag, u)) {
				written++
			}
		}
	}
	r.stats.Written += written
	return written
}
