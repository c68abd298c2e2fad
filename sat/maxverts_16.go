//go:build sat_maxverts16

package sat

// MaxVerts is the vertex capacity of a Polygon.
const MaxVerts = 16
