package navmesh

import (
	"errors"
	"testing"

	"github.com/chazu/navmesh/pkg/mesh"
)

// quadMesh is the canonical two-triangle unit quad: vertices at
// (0,0,0), (1,0,0), (1,1,0), (0,1,0), split into triangles
// {0,1,2} and {0,2,3} sharing the diagonal.
func quadMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// singleTriMesh is one triangle in the z=0 plane.
func singleTriMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
		},
		Indices: []uint32{0, 1, 2},
	}
}

func buildQuad(t *testing.T, opts ...Option) *Navmesh {
	t.Helper()
	nm := New(opts...)
	if err := nm.Build(quadMesh()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return nm
}

func TestBuildQuadTopology(t *testing.T) {
	nm := buildQuad(t)

	if got := nm.VertexCount(); got != 4 {
		t.Errorf("VertexCount() = %d, want 4", got)
	}
	if got := nm.EdgeCount(); got != 5 {
		t.Errorf("EdgeCount() = %d, want 5", got)
	}
	if got := nm.FaceCount(); got != 2 {
		t.Errorf("FaceCount() = %d, want 2", got)
	}
	if got := nm.BoundaryEdgeCount(); got != 4 {
		t.Errorf("BoundaryEdgeCount() = %d, want 4", got)
	}

	// Exactly one edge (the shared diagonal) has two incident faces.
	interior := 0
	for i := 0; i < nm.EdgeCount(); i++ {
		e := nm.EdgeAt(EdgeID(i))
		switch e.FaceCount() {
		case 1:
			// boundary
		case 2:
			interior++
		default:
			t.Errorf("edge %d has %d incident faces", i, e.FaceCount())
		}
	}
	if interior != 1 {
		t.Errorf("interior edge count = %d, want 1", interior)
	}
}

func TestBuildDeterminism(t *testing.T) {
	a := buildQuad(t)
	b := buildQuad(t)

	if a.VertexCount() != b.VertexCount() {
		t.Errorf("vertex counts differ: %d vs %d", a.VertexCount(), b.VertexCount())
	}
	if a.EdgeCount() != b.EdgeCount() {
		t.Errorf("edge counts differ: %d vs %d", a.EdgeCount(), b.EdgeCount())
	}
	if a.FaceCount() != b.FaceCount() {
		t.Errorf("face counts differ: %d vs %d", a.FaceCount(), b.FaceCount())
	}
	if a.BoundaryEdgeCount() != b.BoundaryEdgeCount() {
		t.Errorf("boundary counts differ: %d vs %d", a.BoundaryEdgeCount(), b.BoundaryEdgeCount())
	}
}

func TestBuildFaceNormals(t *testing.T) {
	nm := buildQuad(t)

	for i := 0; i < nm.FaceCount(); i++ {
		n := nm.FaceAt(FaceID(i)).Normal
		if n.X != 0 || n.Y != 0 || n.Z != 1 {
			t.Errorf("face %d normal = %v, want {0 0 1}", i, n)
		}
	}
}

func TestBuildEdgeRestLength(t *testing.T) {
	nm := buildQuad(t)

	for i := 0; i < nm.EdgeCount(); i++ {
		e := nm.EdgeAt(EdgeID(i))
		want := nm.VertexAt(e.A).Pos.Sub(nm.VertexAt(e.B).Pos).Length()
		if e.RestLength != want {
			t.Errorf("edge %d rest length = %g, want %g", i, e.RestLength, want)
		}
	}
}

func TestBuildRejectsNonManifold(t *testing.T) {
	// Three triangles all sharing the edge (0,1).
	m := &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			0.5, 1, 0,
			0.5, -1, 0,
			0.5, 0, 1,
		},
		Indices: []uint32{
			0, 1, 2,
			1, 0, 3,
			0, 1, 4,
		},
	}

	nm := New()
	err := nm.Build(m)

	var topoErr *TopologyError
	if !errors.As(err, &topoErr) {
		t.Fatalf("Build() error = %v, want *TopologyError", err)
	}
	if topoErr.Tri != 2 {
		t.Errorf("TopologyError.Tri = %d, want 2", topoErr.Tri)
	}

	// The graph must not be left partially wired.
	if nm.VertexCount() != 0 || nm.EdgeCount() != 0 || nm.FaceCount() != 0 {
		t.Errorf("graph not empty after failed build: %d verts, %d edges, %d faces",
			nm.VertexCount(), nm.EdgeCount(), nm.FaceCount())
	}
}

func TestBuildRejectsDegenerateTriangle(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 1, 1,
			2, 2, 2,
		},
		Indices: []uint32{0, 1, 2},
	}

	nm := New()
	var topoErr *TopologyError
	if err := nm.Build(m); !errors.As(err, &topoErr) {
		t.Fatalf("Build() error = %v, want *TopologyError", err)
	}
}

func TestBuildRejectsOutOfRangeIndex(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0},
		Indices:  []uint32{0, 1, 9},
	}

	nm := New()
	var topoErr *TopologyError
	if err := nm.Build(m); !errors.As(err, &topoErr) {
		t.Fatalf("Build() error = %v, want *TopologyError", err)
	}
}

func TestBuildNilMesh(t *testing.T) {
	nm := New()
	err := nm.Build(nil)
	if err == nil {
		t.Fatal("Build(nil) error = nil, want error")
	}
	if nm.VertexCount() != 0 || nm.EdgeCount() != 0 || nm.FaceCount() != 0 {
		t.Errorf("graph not empty after Build(nil): %d verts, %d edges, %d faces",
			nm.VertexCount(), nm.EdgeCount(), nm.FaceCount())
	}
	// The failed call must not consume the one-shot build.
	if err := nm.Build(quadMesh()); err != nil {
		t.Errorf("Build() after Build(nil) error = %v", err)
	}
}

func TestBuildTwiceFails(t *testing.T) {
	nm := buildQuad(t)
	if err := nm.Build(quadMesh()); !errors.Is(err, ErrAlreadyBuilt) {
		t.Errorf("second Build() error = %v, want ErrAlreadyBuilt", err)
	}
}

func TestBuildDeduplicatesRepeatedFace(t *testing.T) {
	m := quadMesh()
	// Repeat the first triangle verbatim; the builder keeps the first.
	m.Indices = append(m.Indices, 0, 1, 2)

	nm := New()
	if err := nm.Build(m); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := nm.FaceCount(); got != 2 {
		t.Errorf("FaceCount() = %d, want 2", got)
	}
}

func TestDisposeClearsState(t *testing.T) {
	nm := buildQuad(t)
	inside := centroid(nm, 0)
	if _, ok := nm.Register(inside); !ok {
		t.Fatal("Register() missed before dispose")
	}

	nm.Dispose()

	if nm.VertexCount() != 0 || nm.EdgeCount() != 0 || nm.FaceCount() != 0 || nm.PointCount() != 0 {
		t.Errorf("tables not empty after Dispose(): %d verts, %d edges, %d faces, %d points",
			nm.VertexCount(), nm.EdgeCount(), nm.FaceCount(), nm.PointCount())
	}

	if _, ok := nm.Register(inside); ok {
		t.Error("Register() succeeded after Dispose()")
	}
	if _, err := nm.Move("p1", inside); !errors.Is(err, ErrDisposed) {
		t.Errorf("Move() after Dispose() error = %v, want ErrDisposed", err)
	}
	if err := nm.Build(quadMesh()); !errors.Is(err, ErrDisposed) {
		t.Errorf("Build() after Dispose() error = %v, want ErrDisposed", err)
	}
}
