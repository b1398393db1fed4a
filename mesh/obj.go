package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// Load reads a mesh file in Wavefront OBJ text format.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("mesh: open: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes OBJ text with the g3n loader and flattens every face of
// every object into triangles. Face corners may be written as v, v/vt,
// v//vn or v/vt/vn with 1-based or negative (relative) indices. Polygons
// with more than three corners are split into a triangle fan. Faces
// without normals get the flat face normal. Materials are ignored.
func Parse(r io.Reader) (*Mesh, error) {
	// Faces before any "o" or "g" statement land in this object.
	src := io.MultiReader(strings.NewReader("o mesh\n"), r)
	dec, err := obj.DecodeReader(src, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	var out Mesh
	for _, o := range dec.Objects {
		for i := range o.Faces {
			if err := appendFace(&out, dec, &o.Faces[i]); err != nil {
				return nil, &ParseError{Object: o.Name, Face: i + 1, Err: err}
			}
		}
	}
	if len(out.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}
	return &out, nil
}

// appendFace resolves the corners of f against the decoder arrays and
// appends its triangle fan to m.
func appendFace(m *Mesh, dec *obj.Decoder, f *obj.Face) error {
	n := len(f.Vertices)
	if n < 3 {
		return ErrBadFace
	}
	corners := make([]Vertex, n)
	hasNormals := true
	for k := range n {
		p, ok := vec3(dec.Vertices, f.Vertices[k])
		if !ok {
			return fmt.Errorf("%w: vertex index %d out of range", ErrBadFace, f.Vertices[k])
		}
		corners[k].Position = p

		if k < len(f.Uvs) && !absent(f.Uvs[k]) {
			i := f.Uvs[k]
			if (i+1)*2 > len(dec.Uvs) {
				return fmt.Errorf("%w: texture index %d out of range", ErrBadFace, i)
			}
			corners[k].UV = mgl32.Vec2{dec.Uvs[i*2], dec.Uvs[i*2+1]}
		}

		if k >= len(f.Normals) || absent(f.Normals[k]) {
			hasNormals = false
			continue
		}
		nv, ok := vec3(dec.Normals, f.Normals[k])
		if !ok {
			return fmt.Errorf("%w: normal index %d out of range", ErrBadFace, f.Normals[k])
		}
		if l := nv.Len(); l > 0 {
			nv = nv.Mul(1 / l)
		}
		corners[k].Normal = nv
	}

	for i := 1; i+1 < n; i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		if !hasNormals {
			fn := faceNormal(a.Position, b.Position, c.Position)
			a.Normal, b.Normal, c.Normal = fn, fn, fn
		}
		m.Vertices = append(m.Vertices, a, b, c)
	}
	return nil
}

// absent reports an optional corner index the decoder left unset.
func absent(i int) bool {
	return i < 0 || uint64(i) >= math.MaxUint32
}

func vec3(arr []float32, i int) (mgl32.Vec3, bool) {
	if i < 0 || (i+1)*3 > len(arr) {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{arr[i*3], arr[i*3+1], arr[i*3+2]}, true
}

// WriteOBJ writes the mesh as indexed OBJ text, sharing identical corners.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	index := make(map[Vertex]int, len(m.Vertices))
	order := make([]Vertex, 0, len(m.Vertices))
	faces := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		idx, ok := index[v]
		if !ok {
			idx = len(order) + 1
			index[v] = idx
			order = append(order, v)
		}
		faces[i] = idx
	}

	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", len(order), m.Triangles())
	fmt.Fprintln(bw, "o mesh")
	for _, v := range order {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range order {
		fmt.Fprintf(bw, "vt %g %g\n", v.UV[0], v.UV[1])
	}
	for _, v := range order {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}
	for i := 0; i+2 < len(faces); i += 3 {
		a, b, c := faces[i], faces[i+1], faces[i+2]
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}
