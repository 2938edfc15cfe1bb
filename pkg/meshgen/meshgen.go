// Package meshgen produces indexed triangle meshes for the navigation
// mesh builder: small analytic walkable surfaces for tests and tools,
// and tessellated surfaces extracted from sdfx solids.
package meshgen

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/navmesh/pkg/mesh"
)

// Quad returns a two-triangle quad over the corners (a, b, c, d) in
// winding order, split into triangles {0,1,2} and {0,2,3}.
func Quad(a, b, c, d v3.Vec) *mesh.Mesh {
	m := &mesh.Mesh{Name: "quad"}
	w := newWelder(m)
	w.add(a)
	w.add(b)
	w.add(c)
	w.add(d)
	m.Indices = []uint32{0, 1, 2, 0, 2, 3}
	return m
}

// UnitQuad returns the unit quad in the z=0 plane: corners at
// (0,0,0), (1,0,0), (1,1,0), (0,1,0).
func UnitQuad() *mesh.Mesh {
	return Quad(
		v3.Vec{X: 0, Y: 0, Z: 0},
		v3.Vec{X: 1, Y: 0, Z: 0},
		v3.Vec{X: 1, Y: 1, Z: 0},
		v3.Vec{X: 0, Y: 1, Z: 0},
	)
}

// LShape returns an L-shaped floor in the z=0 plane: three square cells
// of the given side length covering [0,2s]x[0,s] and [0,s]x[s,2s], with
// the top-right cell missing. The concave corner at (s, s) makes it
// useful for exercising boundary clamping along a notch.
func LShape(cell float64) *mesh.Mesh {
	m := &mesh.Mesh{Name: "lshape"}
	w := newWelder(m)

	cells := [3][2]float64{{0, 0}, {cell, 0}, {0, cell}}
	for _, c := range cells {
		x, y := c[0], c[1]
		v00 := w.add(v3.Vec{X: x, Y: y})
		v10 := w.add(v3.Vec{X: x + cell, Y: y})
		v11 := w.add(v3.Vec{X: x + cell, Y: y + cell})
		v01 := w.add(v3.Vec{X: x, Y: y + cell})
		m.Indices = append(m.Indices,
			v00, v10, v11,
			v00, v11, v01,
		)
	}
	return m
}

// Grid returns a regular triangulated floor in the z=0 plane spanning
// [0,width] x [0,depth], subdivided into cols x rows cells of two
// triangles each. Winding is counter-clockwise seen from +z.
func Grid(width, depth float64, cols, rows int) *mesh.Mesh {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	m := &mesh.Mesh{Name: "grid"}
	dx := width / float64(cols)
	dy := depth / float64(rows)

	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			m.Vertices = append(m.Vertices,
				float32(float64(i)*dx),
				float32(float64(j)*dy),
				0,
			)
		}
	}

	stride := uint32(cols + 1)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			v00 := uint32(j)*stride + uint32(i)
			v10 := v00 + 1
			v01 := v00 + stride
			v11 := v01 + 1
			m.Indices = append(m.Indices,
				v00, v10, v11,
				v00, v11, v01,
			)
		}
	}
	return m
}
