package sat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Manifold is the minimum-translation data for an overlapping pair.
//
// Normal is a unit vector pointing from the second shape toward the first
// and Overlap is the penetration depth along it. A manifold that has seen
// no candidate axis has a zero Normal and an infinite Overlap.
type Manifold struct {
	Normal  r2.Vec
	Overlap float64
}

// NewManifold returns an empty manifold ready for Consider.
func NewManifold() Manifold {
	return Manifold{Overlap: math.Inf(1)}
}

// Consider offers a candidate axis to the manifold, keeping the shallowest
// penetration seen so far.
//
// The sign of overlap orients the axis: a negative overlap stores the
// negated normal, a positive one stores it unchanged. An overlap of exactly
// zero tightens Overlap but leaves Normal at its previous value.
func (m *Manifold) Consider(normal r2.Vec, overlap float64) {
	a := math.Abs(overlap)
	if !(a < m.Overlap) {
		return
	}

	m.Overlap = a
	switch {
	case overlap < 0:
		m.Normal = neg(normal)
	case overlap > 0:
		m.Normal = normal
	}
}

// Empty reports whether no candidate has been considered.
func (m Manifold) Empty() bool {
	return math.IsInf(m.Overlap, 1)
}

// MTV returns the translation that separates the first shape from the
// second: Normal scaled by Overlap. An empty manifold yields the zero vector.
func (m Manifold) MTV() r2.Vec {
	if m.Empty() {
		return r2.Vec{}
	}
	return r2.Scale(m.Overlap, m.Normal)
}

// Flip returns the manifold for the reversed operand order.
func (m Manifold) Flip() Manifold {
	m.Normal = neg(m.Normal)
	return m
}

func (m Manifold) String() string {
	return fmt.Sprintf("normal (%.4g, %.4g) overlap %.4g", m.Normal.X, m.Normal.Y, m.Overlap)
}
