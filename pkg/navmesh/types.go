// Package navmesh implements a connected triangle navigation mesh: it
// builds a shared-edge graph from an indexed triangle list, locates which
// triangle contains an arbitrary point, and tracks points as they are
// displaced across the mesh, migrating them between adjacent triangles or
// clamping them to the mesh boundary.
//
// Entities live in arenas owned by the Navmesh and reference each other
// through stable integer handles (VertID, EdgeID, FaceID), so adjacency
// queries are index lookups into owned tables rather than pointer chases.
package navmesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// VertID is a handle into the vertex arena.
type VertID int32

// EdgeID is a handle into the edge arena.
type EdgeID int32

// FaceID is a handle into the face arena.
type FaceID int32

// PointID identifies a tracked point. IDs are assigned at registration
// as "p" + a monotonically increasing sequence number.
type PointID string

// noFace marks an unset face slot on an edge.
const noFace FaceID = -1

// Vertex is a 3D position owned by the mesh and shared by reference
// among all edges and faces incident to it.
type Vertex struct {
	Pos v3.Vec
}

// Edge is an unordered pair of vertices shared by at most two faces.
// The face slots fill in discovery order during the build; the order
// carries no geometric meaning. An edge with a single incident face is
// a boundary edge (mesh perimeter).
type Edge struct {
	A, B       VertID
	RestLength float64 // distance between the endpoints at build time

	faces [2]FaceID
	nface int8
}

// FaceCount returns the number of faces incident to the edge (1 or 2).
func (e *Edge) FaceCount() int {
	return int(e.nface)
}

// Boundary reports whether the edge lies on the mesh perimeter.
func (e *Edge) Boundary() bool {
	return e.nface < 2
}

// Other returns the incident face that is not f, or ok=false when the
// edge is a boundary edge (or f is not incident at all).
func (e *Edge) Other(f FaceID) (FaceID, bool) {
	if e.nface == 2 {
		if e.faces[0] == f {
			return e.faces[1], true
		}
		if e.faces[1] == f {
			return e.faces[0], true
		}
	}
	return noFace, false
}

// addFace records an incident face. ok is false when the edge already
// has two incident faces (non-manifold input).
func (e *Edge) addFace(f FaceID) bool {
	if e.nface >= 2 {
		return false
	}
	e.faces[e.nface] = f
	e.nface++
	return true
}

// Face is a triangle. Verts holds the three vertices in input winding
// order; Edges[i] is the edge opposite Verts[i] (Edges[0] connects
// Verts[1] and Verts[2], and so on). Normal is the unit face normal
// computed once at build time from the winding; it is not recomputed.
type Face struct {
	Verts  [3]VertID
	Edges  [3]EdgeID
	Normal v3.Vec
}

// Point is a tracked point bound to exactly one face, with its world
// position and barycentric coordinates relative to that face. It is
// created by Register and mutated in place by Move.
type Point struct {
	id   PointID
	face FaceID
	pos  v3.Vec
	bary [3]float64
}

// ID returns the point's identifier.
func (p *Point) ID() PointID { return p.id }

// Face returns the face the point is currently bound to.
func (p *Point) Face() FaceID { return p.face }

// Position returns the point's current world position.
func (p *Point) Position() v3.Vec { return p.pos }

// Barycentric returns the point's coordinates relative to its bound face.
func (p *Point) Barycentric() (u, v, w float64) {
	return p.bary[0], p.bary[1], p.bary[2]
}
