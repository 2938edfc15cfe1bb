package navmesh

import (
	"errors"
	"fmt"
)

// ErrNotBuilt is returned when Move is called before Build has populated
// the mesh graph.
var ErrNotBuilt = errors.New("navmesh: not built")

// ErrAlreadyBuilt is returned when Build is called a second time. The
// graph is wired exactly once; rebuild requires a fresh Navmesh.
var ErrAlreadyBuilt = errors.New("navmesh: already built")

// ErrDisposed is returned by operations invoked after Dispose.
var ErrDisposed = errors.New("navmesh: disposed")

// TopologyError reports an input mesh that cannot form a manifold
// navigation graph. Build fails with it and leaves the graph empty.
type TopologyError struct {
	Tri    int // triangle index in the input mesh
	Detail string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("navmesh: triangle %d: %s", e.Tri, e.Detail)
}

// UnknownPointError reports a Move call with an id that was never
// registered (or belongs to a disposed mesh).
type UnknownPointError struct {
	ID PointID
}

func (e *UnknownPointError) Error() string {
	return fmt.Sprintf("navmesh: unknown point %q", e.ID)
}

// DeadlockError reports an edge-crossing walk that did not converge
// within the step bound. It indicates either a malformed mesh (a thin
// sliver of faces) or a pathological target position; the point's
// committed state is left untouched.
type DeadlockError struct {
	ID    PointID
	Steps int // steps taken before giving up
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("navmesh: point %q: walk did not converge after %d steps", e.ID, e.Steps)
}
