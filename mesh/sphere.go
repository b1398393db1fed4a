package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere generates a unit UV sphere centered on the origin with poles on the
// Y axis. Triangles wind counter-clockwise seen from outside. stacks and
// slices are raised to at least 2 and 3.
func Sphere(stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	point := func(i, j int) Vertex {
		phi := math32.Pi * float32(i) / float32(stacks)
		theta := 2 * math32.Pi * float32(j) / float32(slices)
		sp, cp := math32.Sincos(phi)
		st, ct := math32.Sincos(theta)
		p := mgl32.Vec3{sp * ct, cp, sp * st}
		return Vertex{
			Position: p,
			Normal:   p,
			UV:       mgl32.Vec2{float32(j) / float32(slices), float32(i) / float32(stacks)},
		}
	}

	m := &Mesh{Vertices: make([]Vertex, 0, stacks*slices*6)}
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := point(i, j)
			b := point(i+1, j)
			c := point(i+1, j+1)
			d := point(i, j+1)
			if i != stacks-1 {
				m.Vertices = append(m.Vertices, a, c, b)
			}
			if i != 0 {
				m.Vertices = append(m.Vertices, a, d, c)
			}
		}
	}
	return m
}
