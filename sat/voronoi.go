package sat

import "gonum.org/v1/gonum/spatial/r2"

// Region classifies a point against a line segment by its nearest feature.
type Region int

const (
	// RegionLeft: the point lies before the segment start; the nearest
	// feature is the start vertex.
	RegionLeft Region = iota
	// RegionRight: the point lies past the segment end; the nearest
	// feature is the end vertex.
	RegionRight
	// RegionMiddle: the point projects onto the segment itself.
	RegionMiddle
)

func (r Region) String() string {
	switch r {
	case RegionLeft:
		return "left"
	case RegionRight:
		return "right"
	case RegionMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// VoronoiRegion classifies point, given relative to the segment start,
// against the segment direction line.
func VoronoiRegion(point, line r2.Vec) Region {
	dot := r2.Dot(point, line)
	switch {
	case dot < 0:
		return RegionLeft
	case dot > r2.Norm2(line):
		return RegionRight
	default:
		return RegionMiddle
	}
}
