package sat

import "gonum.org/v1/gonum/spatial/r2"

// Interval is the projection of a shape onto an axis.
type Interval struct {
	Min, Max float64
}

// Overlaps reports whether i and o share at least one point.
func (i Interval) Overlaps(o Interval) bool {
	return !(i.Max < o.Min || o.Max < i.Min)
}

// AxisRange projects every vertex of p onto axis and returns the extremes.
// The axis need not be unit length; the interval scales with it.
func AxisRange(p *Polygon, axis r2.Vec) Interval {
	if p.n == 0 {
		return Interval{}
	}

	d := r2.Dot(p.vertices[0], axis)
	r := Interval{Min: d, Max: d}
	for i := 1; i < p.n; i++ {
		d = r2.Dot(p.vertices[i], axis)
		if d < r.Min {
			r.Min = d
		}
		if d > r.Max {
			r.Max = d
		}
	}
	return r
}

// AxisOverlap returns the signed penetration of p1 and p2 along axis.
//
// The result is 0 when the projections are disjoint. Otherwise its
// magnitude is the smaller of the two push-out distances, negative when p1
// has to move against axis to leave p2. Feeding the result to
// Manifold.Consider therefore yields a normal that points the way p1 moves.
func AxisOverlap(p1, p2 *Polygon, axis r2.Vec) float64 {
	a := AxisRange(p1, axis)
	b := AxisRange(p2, axis)

	if !a.Overlaps(b) {
		return 0
	}

	down := a.Max - b.Min
	up := b.Max - a.Min
	if up > down {
		return -down
	}
	return up
}

// PolygonBounds returns the axis-aligned box enclosing p.
func PolygonBounds(p *Polygon) r2.Box {
	x := AxisRange(p, r2.Vec{X: 1})
	y := AxisRange(p, r2.Vec{Y: 1})
	return r2.Box{
		Min: r2.Vec{X: x.Min, Y: y.Min},
		Max: r2.Vec{X: x.Max, Y: y.Max},
	}
}
