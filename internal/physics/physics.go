// Package physics provides the broad phase and the collision response used
// by the playground. Narrow-phase detection lives in package sat; this
// package only consumes its manifolds.
package physics

import (
	"github.com/tomz197/satplay/sat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Body is the part of a moving object that collision response needs.
// An inverse mass of zero makes the body immovable.
type Body interface {
	InverseMass() float64
	Velocity() r2.Vec
	SetVelocity(v r2.Vec)
	Translate(d r2.Vec)
}

// Resolve pushes a and b apart along the manifold and exchanges momentum
// along its normal. m must come from testing a against b, so its normal
// points from b toward a.
//
// The positional correction is split by inverse mass so the lighter body
// moves further. An impulse is applied only while the bodies approach each
// other; Resolve reports whether it did.
func Resolve(a, b Body, m sat.Manifold, restitution float64) bool {
	if m.Empty() {
		return false
	}

	invA := a.InverseMass()
	invB := b.InverseMass()
	total := invA + invB
	if total == 0 {
		return false
	}

	// Separate the bodies in proportion to their inverse masses.
	corr := r2.Scale(m.Overlap/total, m.Normal)
	if invA > 0 {
		a.Translate(r2.Scale(invA, corr))
	}
	if invB > 0 {
		b.Translate(r2.Scale(-invB, corr))
	}

	// Relative velocity along the collision normal.
	rel := r2.Sub(a.Velocity(), b.Velocity())
	vn := r2.Dot(rel, m.Normal)

	// Already separating.
	if vn >= 0 {
		return false
	}

	j := -(1 + restitution) * vn / total
	if invA > 0 {
		a.SetVelocity(r2.Add(a.Velocity(), r2.Scale(j*invA, m.Normal)))
	}
	if invB > 0 {
		b.SetVelocity(r2.Sub(b.Velocity(), r2.Scale(j*invB, m.Normal)))
	}
	return true
}

// ApproachSpeed returns how fast a and b close along n, which points from b
// toward a. Positive means approaching.
func ApproachSpeed(a, b Body, n r2.Vec) float64 {
	return -r2.Dot(r2.Sub(a.Velocity(), b.Velocity()), n)
}
