// Package sat implements narrow-phase 2D collision detection for convex
// shapes using the Separating Axis Theorem.
//
// Two shape kinds are supported: circles and convex polygons with at most
// MaxVerts vertices. Shapes are validated once at construction; every test
// function afterwards is total, stateless and allocation-free, so pairs may
// be tested concurrently without coordination.
//
// Each pair has two entry points. TestXxx answers only whether the shapes
// overlap. CollideXxx also returns a Manifold describing the minimum
// translation: moving the first shape by Manifold.MTV separates the pair.
//
// Polygon vertices must be wound so that the perpendicular (-y, x) of every
// edge points outward. In a y-up frame that is clockwise order; on a y-down
// screen it is counter-clockwise. PolygonFromBox and RegularPolygon emit
// this order.
package sat
