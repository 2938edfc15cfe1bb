package navmesh

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// centroid returns the centroid of face fid.
func centroid(nm *Navmesh, fid FaceID) v3.Vec {
	f := nm.FaceAt(fid)
	a := nm.VertexAt(f.Verts[0]).Pos
	b := nm.VertexAt(f.Verts[1]).Pos
	c := nm.VertexAt(f.Verts[2]).Pos
	return a.Add(b).Add(c).DivScalar(3)
}

func TestRegisterAtCentroid(t *testing.T) {
	nm := buildQuad(t)

	id, ok := nm.Register(centroid(nm, 0))
	if !ok {
		t.Fatal("Register() missed a face centroid")
	}
	if id != "p1" {
		t.Errorf("first point id = %q, want \"p1\"", id)
	}

	fid, ok := nm.FaceOf(id)
	if !ok {
		t.Fatal("FaceOf() did not find the registered point")
	}
	if fid != 0 {
		t.Errorf("point bound to face %d, want 0", fid)
	}

	pt, _ := nm.PointAt(id)
	u, v, w := pt.Barycentric()
	if u <= 0 || v <= 0 || w <= 0 {
		t.Errorf("centroid barycentric = (%g, %g, %g), want all > 0", u, v, w)
	}
	if math.Abs(u+v+w-1.0) > 1e-9 {
		t.Errorf("barycentric sum = %g, want 1", u+v+w)
	}
}

func TestRegisterSequentialIDs(t *testing.T) {
	nm := buildQuad(t)

	first, ok := nm.Register(centroid(nm, 0))
	if !ok {
		t.Fatal("first Register() missed")
	}
	second, ok := nm.Register(centroid(nm, 1))
	if !ok {
		t.Fatal("second Register() missed")
	}

	if first != "p1" || second != "p2" {
		t.Errorf("ids = %q, %q, want \"p1\", \"p2\"", first, second)
	}
	if got := nm.PointCount(); got != 2 {
		t.Errorf("PointCount() = %d, want 2", got)
	}
}

func TestRegisterProjectsOntoFacePlane(t *testing.T) {
	nm := buildQuad(t)

	// Above the quad: the stored position is the plane projection.
	id, ok := nm.Register(v3.Vec{X: 0.6, Y: 0.3, Z: 5})
	if !ok {
		t.Fatal("Register() missed a point above the mesh")
	}
	pos, _ := nm.Position(id)
	want := v3.Vec{X: 0.6, Y: 0.3, Z: 0}
	if pos.Sub(want).Length() > 1e-9 {
		t.Errorf("Position() = %v, want %v", pos, want)
	}
}

func TestRegisterOffMeshMisses(t *testing.T) {
	nm := buildQuad(t)

	tests := []struct {
		name string
		pos  v3.Vec
	}{
		{"outside the footprint", v3.Vec{X: 5, Y: 5, Z: 0}},
		{"negative quadrant", v3.Vec{X: -2, Y: -2, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id, ok := nm.Register(tt.pos); ok {
				t.Errorf("Register(%v) = %q, want miss", tt.pos, id)
			}
		})
	}
}

func TestRegisterBeforeBuildMisses(t *testing.T) {
	nm := New()
	if id, ok := nm.Register(v3.Vec{}); ok {
		t.Errorf("Register() on unbuilt mesh = %q, want miss", id)
	}
}

func TestRegisterFirstFaceWins(t *testing.T) {
	nm := buildQuad(t)

	// A point on the shared diagonal satisfies both faces; insertion
	// order ties break to the face built first.
	id, ok := nm.Register(v3.Vec{X: 0.5, Y: 0.5, Z: 0})
	if !ok {
		t.Fatal("Register() missed a point on the diagonal")
	}
	fid, _ := nm.FaceOf(id)
	if fid != 0 {
		t.Errorf("diagonal point bound to face %d, want 0", fid)
	}
}
