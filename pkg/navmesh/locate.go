package navmesh

import (
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/navmesh/pkg/geom"
)

// containEpsilon absorbs float noise when testing barycentric containment:
// a component down to -containEpsilon still counts as inside. Points
// clamped onto an edge land exactly on the triangle boundary and would
// otherwise flicker out by one ulp.
const containEpsilon = 1e-9

// contains projects p onto the face plane and reports whether the
// projection falls within the triangle. When inside is false the
// barycentric coordinates still carry sign information: the negative
// components name the edges the projection fell outside of.
func (nm *Navmesh) contains(fid FaceID, p v3.Vec) (proj v3.Vec, bary [3]float64, inside bool) {
	f := &nm.faces[fid]
	a := nm.verts[f.Verts[0]].Pos
	b := nm.verts[f.Verts[1]].Pos
	c := nm.verts[f.Verts[2]].Pos

	proj = geom.ProjectOntoPlane(p, a, f.Normal)
	u, v, w, ok := geom.Barycentric(proj, a, b, c)
	if !ok {
		return proj, bary, false
	}
	if u < -containEpsilon || v < -containEpsilon || w < -containEpsilon {
		return proj, [3]float64{u, v, w}, false
	}
	return proj, [3]float64{u, v, w}, true
}

// Register locates the face whose plane projection contains pos and binds
// a new tracked point to it, returning the point's id. Faces are scanned
// linearly in build order; the first face with all barycentric components
// non-negative wins. ok is false when no face contains the projection
// (the position is off-mesh) or the mesh is disposed or not built; a
// miss is an expected, recoverable outcome, not an error.
func (nm *Navmesh) Register(pos v3.Vec) (PointID, bool) {
	if nm.disposed || !nm.built {
		return "", false
	}

	for fid := range nm.faces {
		proj, bary, inside := nm.contains(FaceID(fid), pos)
		if !inside {
			continue
		}
		nm.seq++
		id := PointID("p" + strconv.FormatUint(nm.seq, 10))
		nm.points[id] = &Point{
			id:   id,
			face: FaceID(fid),
			pos:  proj,
			bary: bary,
		}
		return id, true
	}
	return "", false
}

// PointAt returns the tracked point with the given id.
func (nm *Navmesh) PointAt(id PointID) (*Point, bool) {
	p, ok := nm.points[id]
	return p, ok
}

// Position returns the current world position of a tracked point.
func (nm *Navmesh) Position(id PointID) (v3.Vec, bool) {
	p, ok := nm.points[id]
	if !ok {
		return v3.Vec{}, false
	}
	return p.pos, true
}

// FaceOf returns the face a tracked point is currently bound to.
func (nm *Navmesh) FaceOf(id PointID) (FaceID, bool) {
	p, ok := nm.points[id]
	if !ok {
		return noFace, false
	}
	return p.face, true
}
