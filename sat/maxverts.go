//go:build !sat_maxverts16

package sat

// MaxVerts is the vertex capacity of a Polygon. Build with
// -tags sat_maxverts16 to raise it to 16.
const MaxVerts = 8
