// Package mesh loads and generates the triangle meshes drawn by the
// renderer.
//
// A [Mesh] is a flat vertex array: every three consecutive vertices form one
// triangle, and there is no index buffer. A single mesh is loaded once and
// shared read-only by every object that draws it.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one triangle corner in object space.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh is an ordered list of vertices grouped in triples.
type Mesh struct {
	Vertices []Vertex
}

// Triangles returns the number of complete triangles.
func (m *Mesh) Triangles() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices) / 3
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	v := m.Vertices[i*3 : i*3+3]
	return v[0], v[1], v[2]
}

// Bounds returns the axis-aligned bounding box of all positions.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m == nil || len(m.Vertices) == 0 {
		return lo, hi
	}
	lo = m.Vertices[0].Position
	hi = lo
	for _, v := range m.Vertices[1:] {
		for k := range 3 {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	return lo, hi
}

// faceNormal returns the unit normal of a counter-clockwise triangle, or the
// zero vector for a degenerate one.
func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return mgl32.Vec3{}
}
