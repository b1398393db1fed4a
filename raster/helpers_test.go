package raster

import (
	"math"

	"github.com/gogpu/orrery/internal/color"
	"github.com/gogpu/orrery/shader"
	"github.com/gogpu/orrery/transform"
)

// grid is a minimal Target that also counts Commit calls per pixel.
type grid struct {
	w, h  int
	depth []float32
	color []color.ColorF32
	hits  []int
}

func newGrid(w, h int) *grid {
	g := &grid{
		w:     w,
		h:     h,
		depth: make([]float32, w*h),
		color: make([]color.ColorF32, w*h),
		hits:  make([]int, w*h),
	}
	for i := range g.depth {
		g.depth[i] = float32(math.Inf(1))
	}
	return g
}

func (g *grid) Width() int  { return g.w }
func (g *grid) Height() int { return g.h }

func (g *grid) Commit(x, y int, depth float32, c color.ColorF32) bool {
	i := y*g.w + x
	g.hits[i]++
	if depth < g.depth[i] {
		g.depth[i] = depth
		g.color[i] = c
		return true
	}
	return false
}

func (g *grid) equal(o *grid) bool {
	for i := range g.depth {
		if g.depth[i] != o.depth[i] || g.color[i] != o.color[i] {
			return false
		}
	}
	return true
}

// zgrid exposes its depth buffer for early depth rejection.
type zgrid struct{ *grid }

func (z zgrid) DepthAt(x, y int) float32 { return z.depth[y*z.w+x] }

// sv builds a screen vertex at w = 1.
func sv(x, y, depth float32) Vertex {
	return Vertex{ScreenVertex: transform.ScreenVertex{X: x, Y: y, Depth: depth, InvW: 1}}
}

// flat shades every fragment with its depth so tests can tell layers apart.
func flat(f *shader.Fragment, _ *shader.Uniforms) color.ColorF32 {
	return color.RGB(f.Depth, 1-f.Depth, 0.5)
}
