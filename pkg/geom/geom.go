// Package geom provides the point/plane/triangle projection math used by
// the navigation mesh. All functions are pure and operate on sdfx v3.Vec
// values; none of them hold state.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// degenerateEps is the area threshold below which a triangle is treated
// as degenerate (collinear or coincident vertices).
const degenerateEps = 1e-12

// TriangleNormal returns the unit normal of the triangle (a, b, c).
// The direction follows the winding order: counter-clockwise winding seen
// from the normal side. ok is false when the triangle is degenerate.
func TriangleNormal(a, b, c v3.Vec) (n v3.Vec, ok bool) {
	cross := b.Sub(a).Cross(c.Sub(a))
	length := cross.Length()
	if length < degenerateEps {
		return v3.Vec{}, false
	}
	return cross.DivScalar(length), true
}

// ProjectOntoPlane projects p onto the plane passing through origin with
// the given unit normal, along the normal direction.
func ProjectOntoPlane(p, origin, normal v3.Vec) v3.Vec {
	dist := p.Sub(origin).Dot(normal)
	return p.Sub(normal.MulScalar(dist))
}

// ClosestOnSegment returns the point on the segment [a, b] nearest to p.
// The result is clamped to the segment endpoints, not the infinite line.
// A zero-length segment yields a.
func ClosestOnSegment(p, a, b v3.Vec) v3.Vec {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom < degenerateEps {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.MulScalar(t))
}

// Barycentric converts p, assumed to lie in the plane of triangle (a, b, c),
// to barycentric coordinates (u, v, w) with u+v+w = 1 and
//
//	p = u*a + v*b + w*c
//
// A negative component means p lies outside the triangle on the side of
// the edge opposite the corresponding vertex. ok is false when the
// triangle is degenerate.
func Barycentric(p, a, b, c v3.Vec) (u, v, w float64, ok bool) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < degenerateEps {
		return 0, 0, 0, false
	}

	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1.0 - v - w
	return u, v, w, true
}

// FromBarycentric reconstructs the Cartesian point u*a + v*b + w*c.
func FromBarycentric(u, v, w float64, a, b, c v3.Vec) v3.Vec {
	return a.MulScalar(u).Add(b.MulScalar(v)).Add(c.MulScalar(w))
}
