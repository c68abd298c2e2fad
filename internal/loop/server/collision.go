package server

import (
	"math"

	"github.com/tomz197/satplay/internal/loop/config"
	"github.com/tomz197/satplay/internal/object"
	"github.com/tomz197/satplay/internal/physics"
	"github.com/tomz197/satplay/sat"
	"gonum.org/v1/gonum/spatial/r2"
)

// collectBodies extracts the collidable bodies from the object list.
// Uses a pre-allocated slice to avoid allocations.
func collectBodies(objects []object.Object, bodies *[]*object.Body) {
	*bodies = (*bodies)[:0]

	for _, obj := range objects {
		if b := object.BodyOf(obj); b != nil && !b.Removed {
			*bodies = append(*bodies, b)
		}
	}
}

// populateGrid clears and re-inserts all bodies into the spatial grid.
func populateGrid(bodies []*object.Body, grid *physics.SpatialGrid) {
	grid.Clear()
	for i, b := range bodies {
		grid.Insert(b.Bounds(), i)
	}
}

// checkCollisions finds every overlapping pair through the grid, resolves
// it and records the contact for the next snapshot.
func (w *WorldState) checkCollisions() {
	collectBodies(w.Objects, &w.bodyCache)
	bodies := w.bodyCache
	w.contacts = w.contacts[:0]

	populateGrid(bodies, w.grid)

	for i, a := range bodies {
		w.grid.Query(a.Bounds(), func(j int) bool {
			if j <= i {
				return false // Skip self and already-checked pairs
			}
			b := bodies[j]
			if a.Static && b.Static {
				return false
			}
			m, ok := sat.Collide(a.Shape(), b.Shape())
			if !ok {
				return false
			}
			w.handleContact(a, b, m)
			return false
		})
	}
}

// handleContact records, resolves and decorates one contact. m comes from
// testing a against b.
func (w *WorldState) handleContact(a, b *object.Body, m sat.Manifold) {
	point := contactPoint(a.Bounds(), b.Bounds())

	switch {
	case a.OwnerID != 0:
		w.contacts = append(w.contacts, Contact{Owner: a.OwnerID, Point: point, Manifold: m})
	case b.OwnerID != 0:
		w.contacts = append(w.contacts, Contact{Owner: b.OwnerID, Point: point, Manifold: m.Flip()})
	default:
		w.contacts = append(w.contacts, Contact{Point: point, Manifold: m})
	}
	// Both probes own the contact when two players collide.
	if a.OwnerID != 0 && b.OwnerID != 0 {
		w.contacts = append(w.contacts, Contact{Owner: b.OwnerID, Point: point, Manifold: m.Flip()})
	}

	speed := physics.ApproachSpeed(a, b, m.Normal)
	physics.Resolve(a, b, m, config.Restitution)
	a.Touch()
	b.Touch()

	if speed > config.SparkMinSpeed {
		object.SpawnSparks(point, m.Normal, config.SparkCount, config.SparkSpeed, w)
	}
}

// contactPoint returns the centre of the intersection of two boxes, or the
// midpoint of their facing edges when they only touch.
func contactPoint(a, b r2.Box) r2.Vec {
	minX := math.Max(a.Min.X, b.Min.X)
	maxX := math.Min(a.Max.X, b.Max.X)
	minY := math.Max(a.Min.Y, b.Min.Y)
	maxY := math.Min(a.Max.Y, b.Max.Y)
	return r2.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}
