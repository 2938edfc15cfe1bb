package navmesh

import (
	"fmt"

	"github.com/chazu/navmesh/pkg/geom"
	"github.com/chazu/navmesh/pkg/mesh"
)

// DefaultMaxWalkSteps bounds the edge-crossing walk in Move. Each step
// either hops to an adjacent face or clamps against a boundary edge, so
// meshes small enough for the linear locator converge well under this.
const DefaultMaxWalkSteps = 64

// edgeKey is the canonical dedup key for an undirected edge: the two
// input vertex indices in sorted order.
type edgeKey struct {
	lo, hi uint32
}

func makeEdgeKey(a, b uint32) edgeKey {
	if a < b {
		return edgeKey{lo: a, hi: b}
	}
	return edgeKey{lo: b, hi: a}
}

// faceKey identifies a face by its ordered vertex-index triple.
type faceKey struct {
	a, b, c uint32
}

// Navmesh owns the vertex/edge/face arenas and the tracked point table.
// The mesh graph is immutable after Build; concurrent Move calls on
// distinct points are safe, but calls on the same point must be
// serialized by the caller.
type Navmesh struct {
	verts []Vertex
	edges []Edge
	faces []Face

	edgeIndex map[edgeKey]EdgeID
	faceIndex map[faceKey]FaceID

	points map[PointID]*Point
	seq    uint64

	maxWalkSteps int
	built        bool
	disposed     bool
}

// Option configures a Navmesh at construction time.
type Option func(*Navmesh)

// WithMaxWalkSteps overrides the walk step bound used by Move.
// Values below 1 are ignored.
func WithMaxWalkSteps(n int) Option {
	return func(nm *Navmesh) {
		if n >= 1 {
			nm.maxWalkSteps = n
		}
	}
}

// New creates an empty Navmesh. Build must be called before Register
// or Move.
func New(opts ...Option) *Navmesh {
	nm := &Navmesh{
		edgeIndex:    make(map[edgeKey]EdgeID),
		faceIndex:    make(map[faceKey]FaceID),
		points:       make(map[PointID]*Point),
		maxWalkSteps: DefaultMaxWalkSteps,
	}
	for _, opt := range opts {
		opt(nm)
	}
	return nm
}

// Build constructs the mesh graph from an indexed triangle list. For each
// triangle it resolves the three vertices (creating each input index on
// first use), deduplicates the three edges by their undirected vertex-index
// pair, and wires the resulting face to its edges.
//
// Build runs exactly once: a second call returns ErrAlreadyBuilt. On any
// failure the graph is reset to empty, never left partially wired. An edge
// referenced by a third triangle, an out-of-range index, or a degenerate
// (zero-area) triangle fails the build with a *TopologyError.
func (nm *Navmesh) Build(m *mesh.Mesh) error {
	if nm.disposed {
		return ErrDisposed
	}
	if nm.built {
		return ErrAlreadyBuilt
	}
	if m == nil {
		return fmt.Errorf("navmesh: nil mesh")
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("navmesh: index count %d is not a multiple of 3", len(m.Indices))
	}

	if err := nm.build(m); err != nil {
		nm.reset()
		return err
	}
	nm.built = true
	return nil
}

func (nm *Navmesh) build(m *mesh.Mesh) error {
	vertCount := uint32(m.VertexCount())
	vertIndex := make(map[uint32]VertID)

	// resolve returns the arena vertex for an input index, creating it
	// on first use.
	resolve := func(i uint32) VertID {
		if id, ok := vertIndex[i]; ok {
			return id
		}
		id := VertID(len(nm.verts))
		nm.verts = append(nm.verts, Vertex{Pos: m.Vertex(int(i))})
		vertIndex[i] = id
		return id
	}

	for t := 0; t < m.TriangleCount(); t++ {
		ia, ib, ic := m.Triangle(t)
		if ia >= vertCount || ib >= vertCount || ic >= vertCount {
			return &TopologyError{Tri: t, Detail: fmt.Sprintf("vertex index out of range (have %d vertices)", vertCount)}
		}

		fk := faceKey{a: ia, b: ib, c: ic}
		if _, dup := nm.faceIndex[fk]; dup {
			// Same ordered triple built twice; keep the first.
			continue
		}

		va, vb, vc := resolve(ia), resolve(ib), resolve(ic)
		normal, ok := geom.TriangleNormal(nm.verts[va].Pos, nm.verts[vb].Pos, nm.verts[vc].Pos)
		if !ok {
			return &TopologyError{Tri: t, Detail: "degenerate triangle"}
		}

		// Edge i is opposite vertex i.
		keys := [3]edgeKey{
			makeEdgeKey(ib, ic),
			makeEdgeKey(ic, ia),
			makeEdgeKey(ia, ib),
		}
		ends := [3][2]VertID{{vb, vc}, {vc, va}, {va, vb}}

		fid := FaceID(len(nm.faces))
		face := Face{Verts: [3]VertID{va, vb, vc}, Normal: normal}

		for i := 0; i < 3; i++ {
			eid, ok := nm.edgeIndex[keys[i]]
			if !ok {
				eid = EdgeID(len(nm.edges))
				a, b := ends[i][0], ends[i][1]
				nm.edges = append(nm.edges, Edge{
					A:          a,
					B:          b,
					RestLength: nm.verts[a].Pos.Sub(nm.verts[b].Pos).Length(),
					faces:      [2]FaceID{noFace, noFace},
				})
				nm.edgeIndex[keys[i]] = eid
			}
			if !nm.edges[eid].addFace(fid) {
				return &TopologyError{
					Tri:    t,
					Detail: fmt.Sprintf("edge (%d,%d) incident to a third face", keys[i].lo, keys[i].hi),
				}
			}
			face.Edges[i] = eid
		}

		nm.faces = append(nm.faces, face)
		nm.faceIndex[fk] = fid
	}

	return nil
}

// reset clears all arenas and indexes.
func (nm *Navmesh) reset() {
	nm.verts = nil
	nm.edges = nil
	nm.faces = nil
	nm.edgeIndex = make(map[edgeKey]EdgeID)
	nm.faceIndex = make(map[faceKey]FaceID)
}

// Dispose releases the mesh graph and the point table. Any subsequent
// call fails fast: Register reports a miss, Move returns ErrDisposed.
func (nm *Navmesh) Dispose() {
	nm.verts = nil
	nm.edges = nil
	nm.faces = nil
	nm.edgeIndex = nil
	nm.faceIndex = nil
	nm.points = nil
	nm.built = false
	nm.disposed = true
}

// VertexCount returns the number of distinct vertices referenced by the
// built mesh.
func (nm *Navmesh) VertexCount() int { return len(nm.verts) }

// EdgeCount returns the number of deduplicated edges.
func (nm *Navmesh) EdgeCount() int { return len(nm.edges) }

// FaceCount returns the number of faces.
func (nm *Navmesh) FaceCount() int { return len(nm.faces) }

// PointCount returns the number of registered points.
func (nm *Navmesh) PointCount() int { return len(nm.points) }

// BoundaryEdgeCount returns the number of edges with a single incident
// face (the mesh perimeter).
func (nm *Navmesh) BoundaryEdgeCount() int {
	n := 0
	for i := range nm.edges {
		if nm.edges[i].Boundary() {
			n++
		}
	}
	return n
}

// EdgeAt returns the edge with the given handle.
func (nm *Navmesh) EdgeAt(id EdgeID) *Edge { return &nm.edges[id] }

// FaceAt returns the face with the given handle.
func (nm *Navmesh) FaceAt(id FaceID) *Face { return &nm.faces[id] }

// VertexAt returns the vertex with the given handle.
func (nm *Navmesh) VertexAt(id VertID) *Vertex { return &nm.verts[id] }
