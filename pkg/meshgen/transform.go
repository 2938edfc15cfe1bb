package meshgen

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/navmesh/pkg/mesh"
)

// Transform returns a copy of m with every vertex position transformed
// by mat, so generated floors can be positioned and tilted before the
// navigation mesh is built. Indices are shared topology and copied as-is.
func Transform(m *mesh.Mesh, mat mgl64.Mat4) *mesh.Mesh {
	out := &mesh.Mesh{
		Vertices: make([]float32, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
		Name:     m.Name,
	}
	copy(out.Indices, m.Indices)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		t := mat.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
		out.Vertices[i*3+0] = float32(t.X())
		out.Vertices[i*3+1] = float32(t.Y())
		out.Vertices[i*3+2] = float32(t.Z())
	}
	return out
}

// Translated is shorthand for Transform with a pure translation.
func Translated(m *mesh.Mesh, x, y, z float64) *mesh.Mesh {
	return Transform(m, mgl64.Translate3D(x, y, z))
}
