package navmesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/navmesh/pkg/geom"
)

// Move displaces a tracked point toward target, walking it across
// adjacent faces as the displacement crosses triangle edges and clamping
// it to the mesh boundary when it would leave the mesh. It returns the
// resolved world position, which is the projection onto the final face
// rather than the raw target, and may sit on a boundary edge when clamped.
//
// Each step projects the working target onto the current face. If the
// projection lies inside, the walk commits. Otherwise a negative
// barycentric component selects the edge opposite the corresponding
// vertex: an interior edge hops to the neighboring face and retries with
// the original target; a boundary edge clamps the working target onto the
// edge segment and retries against the same face. A per-call visited-edge
// set keeps the walk from flip-flopping between two faces, and a hard
// step bound (DefaultMaxWalkSteps, see WithMaxWalkSteps) turns any
// non-converging walk into a *DeadlockError.
//
// The point's committed state changes only on success; after a failed
// Move its face, barycentric coordinates, and position are exactly as
// before the call.
func (nm *Navmesh) Move(id PointID, target v3.Vec) (v3.Vec, error) {
	if nm.disposed {
		return v3.Vec{}, ErrDisposed
	}
	if !nm.built {
		return v3.Vec{}, ErrNotBuilt
	}
	pt, ok := nm.points[id]
	if !ok {
		return v3.Vec{}, &UnknownPointError{ID: id}
	}

	cur := pt.face
	work := target
	visited := make(map[EdgeID]struct{})

	for step := 0; step < nm.maxWalkSteps; step++ {
		_, bary, inside := nm.contains(cur, work)
		if inside {
			return nm.commit(pt, cur, bary), nil
		}

		crossed := false
		for i := 0; i < 3; i++ {
			if bary[i] >= -containEpsilon {
				continue
			}
			eid := nm.faces[cur].Edges[i]
			if _, seen := visited[eid]; seen {
				// Already tested during this walk; trying it again
				// would bounce between the same pair of faces.
				continue
			}
			visited[eid] = struct{}{}

			e := &nm.edges[eid]
			if next, interior := e.Other(cur); interior {
				cur = next
				work = target
			} else {
				work = geom.ClosestOnSegment(work, nm.verts[e.A].Pos, nm.verts[e.B].Pos)
			}
			crossed = true
			break
		}

		if !crossed {
			// Every candidate edge has been tested already; the walk
			// cannot make progress.
			return v3.Vec{}, &DeadlockError{ID: id, Steps: step + 1}
		}
	}

	return v3.Vec{}, &DeadlockError{ID: id, Steps: nm.maxWalkSteps}
}

// commit stores the resolved face and barycentric coordinates on the
// point and reconstructs its world position from them. Components within
// epsilon of zero are clamped so the stored coordinates satisfy the
// all-non-negative invariant exactly.
func (nm *Navmesh) commit(pt *Point, fid FaceID, bary [3]float64) v3.Vec {
	sum := 0.0
	for i := range bary {
		if bary[i] < 0 {
			bary[i] = 0
		}
		sum += bary[i]
	}
	if sum > 0 {
		for i := range bary {
			bary[i] /= sum
		}
	}

	f := &nm.faces[fid]
	pos := geom.FromBarycentric(
		bary[0], bary[1], bary[2],
		nm.verts[f.Verts[0]].Pos,
		nm.verts[f.Verts[1]].Pos,
		nm.verts[f.Verts[2]].Pos,
	)

	pt.face = fid
	pt.bary = bary
	pt.pos = pos
	return pos
}
