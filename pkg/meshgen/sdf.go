package meshgen

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/navmesh/pkg/mesh"
)

// DefaultMeshCells controls marching cubes tessellation resolution for
// FromSDF when cells is not positive.
const DefaultMeshCells = 100

// weldEps quantizes vertex positions for deduplication. Marching cubes
// emits shared vertices bitwise-equal in theory; the quantization also
// catches last-ulp drift.
const weldEps = 1e-6

// welder deduplicates vertices by quantized spatial key while appending
// them to a mesh, so triangle soup becomes a connected indexed mesh.
type welder struct {
	m     *mesh.Mesh
	index map[[3]int64]uint32
}

func newWelder(m *mesh.Mesh) *welder {
	return &welder{m: m, index: make(map[[3]int64]uint32)}
}

func (w *welder) add(v v3.Vec) uint32 {
	key := [3]int64{
		int64(math.Round(v.X / weldEps)),
		int64(math.Round(v.Y / weldEps)),
		int64(math.Round(v.Z / weldEps)),
	}
	if i, ok := w.index[key]; ok {
		return i
	}
	i := uint32(len(w.m.Vertices) / 3)
	w.m.Vertices = append(w.m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	w.index[key] = i
	return i
}

// FromSDF tessellates a solid's surface into a welded indexed triangle
// mesh using uniform marching cubes. Triangles that collapse under
// welding (two indices equal) are dropped, so the result is safe to feed
// to the navmesh builder.
func FromSDF(s sdf.SDF3, cells int) (*mesh.Mesh, error) {
	if s == nil {
		return nil, fmt.Errorf("meshgen: nil SDF")
	}
	if cells <= 0 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("meshgen: tessellation produced no triangles")
	}

	m := &mesh.Mesh{Name: "sdf"}
	w := newWelder(m)
	for _, tri := range triangles {
		a := w.add(tri[0])
		b := w.add(tri[1])
		c := w.add(tri[2])
		if a == b || b == c || c == a {
			continue
		}
		m.Indices = append(m.Indices, a, b, c)
	}

	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("meshgen: all %d triangles degenerate after welding", len(triangles))
	}
	return m, nil
}
