package sat

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Shape is a convex collision shape. It is implemented by *Circle and
// *Polygon only.
type Shape interface {
	// Bounds returns the smallest axis-aligned box containing the shape.
	Bounds() r2.Box

	shape()
}

// Circle is a disc with a centre and a non-negative radius.
type Circle struct {
	Pos    r2.Vec
	Radius float64
}

// NewCircle returns a circle centred on pos.
// A negative radius is an ErrConstraintViolation; non-finite input is an
// ErrDegenerateInput. A zero radius is accepted and behaves as a point.
func NewCircle(pos r2.Vec, radius float64) (Circle, error) {
	if !finiteVec(pos) || !finite(radius) {
		return Circle{}, fmt.Errorf("circle at %v radius %v: %w", pos, radius, ErrDegenerateInput)
	}
	if radius < 0 {
		return Circle{}, fmt.Errorf("circle radius %v is negative: %w", radius, ErrConstraintViolation)
	}
	return Circle{Pos: pos, Radius: radius}, nil
}

// MustCircle is like NewCircle but panics on invalid input.
func MustCircle(pos r2.Vec, radius float64) Circle {
	c, err := NewCircle(pos, radius)
	if err != nil {
		panic(err)
	}
	return c
}

// Bounds returns the box enclosing c.
func (c *Circle) Bounds() r2.Box {
	return CircleBounds(c)
}

// Translate returns c moved by d.
func (c Circle) Translate(d r2.Vec) Circle {
	c.Pos = r2.Add(c.Pos, d)
	return c
}

func (*Circle) shape() {}

// CircleBounds returns the axis-aligned box enclosing c.
func CircleBounds(c *Circle) r2.Box {
	r := r2.Vec{X: c.Radius, Y: c.Radius}
	return r2.Box{Min: r2.Sub(c.Pos, r), Max: r2.Add(c.Pos, r)}
}
