package sat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// convexTolerance bounds the positive turn accepted at a corner, relative to
// the lengths of the two edges meeting there. It absorbs rounding on
// near-collinear vertices.
const convexTolerance = 1e-9

// Polygon is a convex polygon with precomputed edges and outward unit
// normals. Storage is inline, so copying a Polygon never allocates.
//
// The zero Polygon has no vertices and overlaps nothing; build polygons
// with NewPolygon, PolygonFromBox or RegularPolygon.
type Polygon struct {
	n        int
	vertices [MaxVerts]r2.Vec
	edges    [MaxVerts]r2.Vec
	normals  [MaxVerts]r2.Vec
}

// NewPolygon copies vertices into a Polygon and derives its edges and
// outward normals.
//
// Vertices must describe a convex polygon wound as documented on the
// package. NewPolygon returns an error wrapping ErrConstraintViolation when
// the vertex count is outside [1, MaxVerts], the winding is reversed or a
// corner is reflex, and one wrapping ErrDegenerateInput when a coordinate
// is not finite, two consecutive vertices coincide or the area is zero.
func NewPolygon(vertices []r2.Vec) (Polygon, error) {
	var p Polygon

	n := len(vertices)
	if n == 0 || n > MaxVerts {
		return p, fmt.Errorf("polygon has %d vertices, want 1..%d: %w", n, MaxVerts, ErrConstraintViolation)
	}
	for i, v := range vertices {
		if !finiteVec(v) {
			return p, fmt.Errorf("polygon vertex %d is %v: %w", i, v, ErrDegenerateInput)
		}
	}

	p.n = n
	copy(p.vertices[:], vertices)

	for i := 0; i < n; i++ {
		next := i + 1
		if next == n {
			next = 0
		}
		e := r2.Sub(p.vertices[next], p.vertices[i])
		if r2.Norm2(e) == 0 {
			return Polygon{}, fmt.Errorf("polygon edge %d has zero length: %w", i, ErrDegenerateInput)
		}
		p.edges[i] = e
		p.normals[i] = unit(perp(e))
	}

	if err := p.checkShape(); err != nil {
		return Polygon{}, err
	}
	return p, nil
}

// MustPolygon is like NewPolygon but panics on invalid input.
// It is intended for fixed shapes known to be valid.
func MustPolygon(vertices ...r2.Vec) Polygon {
	p, err := NewPolygon(vertices)
	if err != nil {
		panic(err)
	}
	return p
}

// checkShape verifies winding and convexity of freshly built edges.
func (p *Polygon) checkShape() error {
	area := p.signedArea()
	if area == 0 {
		return fmt.Errorf("polygon has zero area: %w", ErrDegenerateInput)
	}
	if area > 0 {
		return fmt.Errorf("polygon winding gives inward normals: %w", ErrConstraintViolation)
	}

	for i := 0; i < p.n; i++ {
		prev := p.prev(i)
		turn := r2.Cross(p.edges[prev], p.edges[i])
		limit := convexTolerance * r2.Norm(p.edges[prev]) * r2.Norm(p.edges[i])
		if turn > limit {
			return fmt.Errorf("polygon corner %d is reflex: %w", i, ErrConstraintViolation)
		}
	}
	return nil
}

// signedArea is the shoelace area; negative for the accepted winding.
func (p *Polygon) signedArea() float64 {
	var sum float64
	for i := 0; i < p.n; i++ {
		sum += r2.Cross(p.vertices[i], p.vertices[p.next(i)])
	}
	return sum / 2
}

// PolygonFromBox returns the four-vertex polygon covering b, starting at the
// minimum corner: (min.x, min.y), (min.x, max.y), (max.x, max.y),
// (max.x, min.y). Min and Max are swapped per axis if reversed. A box with
// zero width or height yields ErrDegenerateInput.
func PolygonFromBox(b r2.Box) (Polygon, error) {
	minX, maxX := math.Min(b.Min.X, b.Max.X), math.Max(b.Min.X, b.Max.X)
	minY, maxY := math.Min(b.Min.Y, b.Max.Y), math.Max(b.Min.Y, b.Max.Y)

	vertices := [4]r2.Vec{
		{X: minX, Y: minY},
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
		{X: maxX, Y: minY},
	}
	return NewPolygon(vertices[:])
}

// RegularPolygon returns a polygon with the given number of sides inscribed
// in a circle of radius around center. The first vertex sits at angle
// radians from the positive x axis.
func RegularPolygon(center r2.Vec, radius float64, sides int, angle float64) (Polygon, error) {
	if sides < 3 || sides > MaxVerts {
		return Polygon{}, fmt.Errorf("regular polygon with %d sides, want 3..%d: %w", sides, MaxVerts, ErrConstraintViolation)
	}
	if !(radius > 0) {
		return Polygon{}, fmt.Errorf("regular polygon radius %v: %w", radius, ErrDegenerateInput)
	}

	var vertices [MaxVerts]r2.Vec
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		a := angle - float64(i)*step
		vertices[i] = r2.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return NewPolygon(vertices[:sides])
}

// Len returns the number of vertices.
func (p *Polygon) Len() int { return p.n }

// Vertex returns vertex i.
func (p *Polygon) Vertex(i int) r2.Vec { return p.vertices[i] }

// Edge returns the vector from vertex i to vertex i+1.
func (p *Polygon) Edge(i int) r2.Vec { return p.edges[i] }

// Normal returns the outward unit normal of edge i.
func (p *Polygon) Normal(i int) r2.Vec { return p.normals[i] }

// AppendVertices appends the vertices of p to dst and returns the result.
func (p *Polygon) AppendVertices(dst []r2.Vec) []r2.Vec {
	return append(dst, p.vertices[:p.n]...)
}

// Centroid returns the mean of the vertices.
func (p *Polygon) Centroid() r2.Vec {
	var sum r2.Vec
	for i := 0; i < p.n; i++ {
		sum = r2.Add(sum, p.vertices[i])
	}
	if p.n == 0 {
		return sum
	}
	return r2.Scale(1/float64(p.n), sum)
}

// Bounds returns the box enclosing p.
func (p *Polygon) Bounds() r2.Box {
	return PolygonBounds(p)
}

func (*Polygon) shape() {}

// Translate returns a copy of p moved by d.
func (p Polygon) Translate(d r2.Vec) Polygon {
	for i := 0; i < p.n; i++ {
		p.vertices[i] = r2.Add(p.vertices[i], d)
	}
	return p
}

// Transform returns a copy of p rotated by angle radians about the origin
// and then moved by offset. Rotation preserves winding and edge lengths, so
// the result needs no revalidation.
func (p Polygon) Transform(angle float64, offset r2.Vec) Polygon {
	sin, cos := math.Sincos(angle)
	for i := 0; i < p.n; i++ {
		p.vertices[i] = r2.Add(rotate(p.vertices[i], cos, sin), offset)
		p.edges[i] = rotate(p.edges[i], cos, sin)
		p.normals[i] = rotate(p.normals[i], cos, sin)
	}
	return p
}

func (p *Polygon) next(i int) int {
	if i+1 == p.n {
		return 0
	}
	return i + 1
}

func (p *Polygon) prev(i int) int {
	if i == 0 {
		return p.n - 1
	}
	return i - 1
}
