package sat

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// fallbackAxis orients circle-circle manifolds whose centres coincide.
var fallbackAxis = r2.Vec{X: 0, Y: 1}

// TestPolyPoly reports whether p1 and p2 overlap.
func TestPolyPoly(p1, p2 *Polygon) bool {
	_, ok := CollidePolyPoly(p1, p2)
	return ok
}

// CollidePolyPoly tests p1 against p2 and returns the minimum translation
// that moves p1 out of p2. Touching polygons do not overlap.
//
// When several axes are equally shallow the choice does not depend on
// operand order, so swapping p1 and p2 only negates the normal. Two
// identical polygons are the exception: either direction is returned.
func CollidePolyPoly(p1, p2 *Polygon) (Manifold, bool) {
	m := NewManifold()
	if p1.n == 0 || p2.n == 0 {
		return m, false
	}
	t := tieBreak{m: &m, side: sideHint(p1, p2)}
	if t.separatingAxis(p1, p2, false) || t.separatingAxis(p2, p1, true) {
		return m, false
	}
	return m, true
}

// tieTolerance is the relative difference under which two depths, or two
// axis components, count as equal.
const tieTolerance = 1e-9

// tieBreak feeds poly-poly candidates into a manifold. side points from
// the second polygon toward the first and decides between the two
// directions of one axis.
type tieBreak struct {
	m    *Manifold
	side r2.Vec
}

// separatingAxis walks the edge normals of a looking for one that separates
// b. The deepest point of b behind each face only depends on b's support
// vertex against that normal, so no full interval is built. Non-separating
// axes are offered to the manifold; swapped marks a pass where a is the
// second shape.
func (t *tieBreak) separatingAxis(a, b *Polygon, swapped bool) bool {
	for i := 0; i < a.n; i++ {
		n := a.normals[i]
		c := r2.Dot(a.vertices[i], n)
		s := support(b, neg(n))
		d := r2.Dot(b.vertices[s], n) - c

		if d >= 0 {
			return true
		}

		if swapped {
			t.consider(n, -d)
		} else {
			t.consider(n, d)
		}
	}
	return false
}

// consider is Manifold.Consider except on equal depths, where the axis
// sorting first by axisBefore wins and, between the two directions of the
// same axis, the one agreeing with side.
func (t *tieBreak) consider(n r2.Vec, overlap float64) {
	m := t.m
	a := math.Abs(overlap)
	if m.Empty() || math.Abs(a-m.Overlap) > tieTolerance*math.Max(1, a) {
		m.Consider(n, overlap)
		return
	}

	o := n
	if overlap < 0 {
		o = neg(n)
	}
	switch {
	case axisBefore(o, m.Normal):
	case axisBefore(m.Normal, o):
		return
	case r2.Dot(o, m.Normal) > 0 || !t.prefer(o):
		return
	}
	m.Overlap = a
	m.Normal = o
}

// prefer reports whether o, rather than its negation, is the direction to
// keep for its axis.
func (t *tieBreak) prefer(o r2.Vec) bool {
	s := r2.Dot(o, t.side)
	if math.Abs(s) <= tieTolerance {
		s = r2.Dot(o, perp(t.side))
	}
	return s > 0
}

// sideHint returns a vector that changes sign when p1 and p2 swap: the
// offset between centroids, or between the first differing vertices when
// the centroids coincide.
func sideHint(p1, p2 *Polygon) r2.Vec {
	d := r2.Sub(p1.Centroid(), p2.Centroid())
	if r2.Norm2(d) > tieTolerance*tieTolerance {
		return d
	}
	for i := 0; i < p1.n && i < p2.n; i++ {
		if d := r2.Sub(p1.vertices[i], p2.vertices[i]); d != (r2.Vec{}) {
			return d
		}
	}
	return r2.Vec{}
}

// axisBefore orders axes by direction, ignoring sign. Each axis is flipped
// into the half plane X > 0 (or X == 0, Y > 0) and compared by X, then Y.
func axisBefore(u, v r2.Vec) bool {
	u, v = canonicalAxis(u), canonicalAxis(v)
	if math.Abs(u.X-v.X) > tieTolerance {
		return u.X < v.X
	}
	return u.Y < v.Y-tieTolerance
}

func canonicalAxis(v r2.Vec) r2.Vec {
	if v.X < -tieTolerance || (math.Abs(v.X) <= tieTolerance && v.Y < 0) {
		return neg(v)
	}
	return v
}

// support returns the index of the vertex of p furthest along dir.
func support(p *Polygon, dir r2.Vec) int {
	best := 0
	bestDot := r2.Dot(p.vertices[0], dir)
	for i := 1; i < p.n; i++ {
		if d := r2.Dot(p.vertices[i], dir); d > bestDot {
			best = i
			bestDot = d
		}
	}
	return best
}

// TestCirclePoly reports whether c and p overlap.
func TestCirclePoly(c *Circle, p *Polygon) bool {
	_, ok := circlePoly(c, p)
	return ok
}

// CollideCirclePoly tests c against p. The manifold normal points from the
// polygon toward the circle.
func CollideCirclePoly(c *Circle, p *Polygon) (Manifold, bool) {
	return circlePoly(c, p)
}

// TestPolyCircle reports whether p and c overlap.
func TestPolyCircle(p *Polygon, c *Circle) bool {
	_, ok := circlePoly(c, p)
	return ok
}

// CollidePolyCircle tests p against c. The manifold normal points from the
// circle toward the polygon.
func CollidePolyCircle(p *Polygon, c *Circle) (Manifold, bool) {
	m, ok := circlePoly(c, p)
	return m.Flip(), ok
}

// circlePoly finds the feature of p nearest to the circle centre for every
// edge. A vertex or face farther than the radius separates the pair, and by
// convexity that is enough to stop. The normal points from p toward c.
func circlePoly(c *Circle, p *Polygon) (Manifold, bool) {
	m := NewManifold()
	if p.n == 0 {
		return m, false
	}

	radius2 := c.Radius * c.Radius

	for i := 0; i < p.n; i++ {
		point := r2.Sub(c.Pos, p.vertices[i])

		var (
			normal  r2.Vec
			overlap float64
			found   bool
		)

		switch VoronoiRegion(point, p.edges[i]) {
		case RegionLeft:
			prev := p.prev(i)
			if VoronoiRegion(r2.Sub(c.Pos, p.vertices[prev]), p.edges[prev]) != RegionRight {
				break
			}
			// Vertex i is the nearest feature.
			dist2 := r2.Norm2(point)
			if dist2 > radius2 {
				return m, false
			}
			dist := math.Sqrt(dist2)
			normal, overlap, found = r2.Scale(1/dist, point), c.Radius-dist, true

		case RegionRight:
			next := p.next(i)
			point2 := r2.Sub(c.Pos, p.vertices[next])
			if VoronoiRegion(point2, p.edges[next]) != RegionLeft {
				break
			}
			// Vertex i+1 is the nearest feature.
			dist2 := r2.Norm2(point2)
			if dist2 > radius2 {
				return m, false
			}
			dist := math.Sqrt(dist2)
			normal, overlap, found = r2.Scale(1/dist, point2), c.Radius-dist, true

		case RegionMiddle:
			normal = p.normals[i]
			diff := r2.Dot(normal, point)
			if diff > c.Radius {
				return m, false
			}
			overlap, found = c.Radius-diff, true
		}

		if found {
			m.Consider(normal, overlap)
		}
	}

	return m, true
}

// TestCircleCircle reports whether c1 and c2 overlap. Touching circles
// count as overlapping.
func TestCircleCircle(c1, c2 *Circle) bool {
	_, ok := CollideCircleCircle(c1, c2)
	return ok
}

// CollideCircleCircle tests c1 against c2. The normal points from c2's
// centre toward c1's; coincident centres use the +y axis.
func CollideCircleCircle(c1, c2 *Circle) (Manifold, bool) {
	m := NewManifold()

	delta := r2.Sub(c1.Pos, c2.Pos)
	reach := c1.Radius + c2.Radius
	dist2 := r2.Norm2(delta)
	if dist2 > reach*reach {
		return m, false
	}

	dist := math.Sqrt(dist2)
	m.Overlap = reach - dist
	if dist == 0 {
		m.Normal = fallbackAxis
	} else {
		m.Normal = r2.Scale(1/dist, delta)
	}
	return m, true
}

// Collide dispatches to the pairwise test matching the dynamic types of a
// and b. The manifold normal points from b toward a. A nil shape never
// collides.
func Collide(a, b Shape) (Manifold, bool) {
	switch sa := a.(type) {
	case *Circle:
		switch sb := b.(type) {
		case *Circle:
			return CollideCircleCircle(sa, sb)
		case *Polygon:
			return CollideCirclePoly(sa, sb)
		}
	case *Polygon:
		switch sb := b.(type) {
		case *Circle:
			return CollidePolyCircle(sa, sb)
		case *Polygon:
			return CollidePolyPoly(sa, sb)
		}
	}
	return NewManifold(), false
}

// Overlaps reports whether a and b overlap.
func Overlaps(a, b Shape) bool {
	_, ok := Collide(a, b)
	return ok
}
