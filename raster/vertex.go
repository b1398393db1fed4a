package raster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/orrery/mesh"
	"github.com/gogpu/orrery/shader"
	"github.com/gogpu/orrery/transform"
)

// Vertex is a triangle corner ready for rasterization.
type Vertex struct {
	transform.ScreenVertex

	// Normal is the world-space normal.
	Normal mgl32.Vec3
	// Position is the object-space position.
	Position mgl32.Vec3
}

// Transform runs an object-space vertex through s. ok is false when the
// vertex is on or behind the camera plane.
func Transform(s *transform.Set, mvp mgl32.Mat4, normal mgl32.Mat3, v *mesh.Vertex) (Vertex, bool) {
	sv, ok := transform.Project(mvp, s.Viewport, v.Position)
	if !ok {
		return Vertex{}, false
	}
	return Vertex{
		ScreenVertex: sv,
		Normal:       normal.Mul3x1(v.Normal),
		Position:     v.Position,
	}, true
}

// DrawMesh transforms every vertex of m with the matrices in u and
// rasterizes its triangles. Triangles with a vertex that fails the clip
// test are dropped whole. It returns the number of fragments written.
func (r *Rasterizer) DrawMesh(m *mesh.Mesh, u *shader.Uniforms) int {
	n := len(m.Vertices) / 3 * 3
	if n == 0 {
		return 0
	}

	if cap(r.screen) < n {
		r.screen = make([]Vertex, n)
		r.valid = make([]bool, n)
	}
	screen, valid := r.screen[:n], r.valid[:n]

	mvp := u.MVP()
	nm := transform.NormalMatrix(u.Model)
	for i := range n {
		screen[i], valid[i] = Transform(&u.Set, mvp, nm, &m.Vertices[i])
	}

	written := 0
	for i := 0; i < n; i += 3 {
		if !valid[i] || !valid[i+1] || !valid[i+2] {
			r.stats.Triangles++
			r.stats.Rejected++
			continue
		}
		written += r.Triangle(&screen[i], &screen[i+1], &screen[i+2], u)
	}
	return written
}
