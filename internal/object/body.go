package object

import (
	"fmt"
	"math"

	"github.com/tomz197/satplay/sat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Kind selects a body's collision shape.
type Kind int

const (
	KindCircle Kind = iota
	KindBox
	KindTriangle
	KindHexagon

	// bodyKinds counts the kinds a body can take; Next cycles through them.
	bodyKinds

	// KindSpark marks views of contact sparks. It is never a body kind.
	KindSpark Kind = 100
)

var kindNames = [...]string{
	KindCircle:   "circle",
	KindBox:      "box",
	KindTriangle: "triangle",
	KindHexagon:  "hexagon",
}

func (k Kind) String() string {
	if k == KindSpark {
		return "spark"
	}
	if k < 0 || k >= bodyKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Next returns the body kind after k, wrapping around.
func (k Kind) Next() Kind {
	return (k + 1) % bodyKinds
}

// contactHighlight is how long a body stays highlighted after a contact.
const contactHighlight = 0.15

// maxSpeed caps body speed so a deep contact cannot fling a body through a
// wall in a single frame.
const maxSpeed = 80.0

// Body is a rigid shape moving through the playfield.
//
// Pos and Angle place the body-space shape in the world; after changing
// them directly call Sync so the collision shape follows.
type Body struct {
	Kind    Kind
	Pos     r2.Vec
	Vel     r2.Vec
	Angle   float64 // radians
	Spin    float64 // radians per second
	Size    float64 // circle radius or polygon circumradius
	Static  bool    // immovable, e.g. walls
	OwnerID int     // client owning the body, 0 for world bodies
	Contact float64 // seconds of contact highlight remaining
	Removed bool    // removed on the next update

	local   sat.Polygon // body-space polygon; unused for circles
	circle  sat.Circle
	world   sat.Polygon
	invMass float64
}

// NewBody creates a dynamic body of the given kind and circumradius.
func NewBody(kind Kind, pos r2.Vec, size float64) (*Body, error) {
	b := &Body{Pos: pos, Size: size}
	if err := b.SetKind(kind); err != nil {
		return nil, err
	}
	return b, nil
}

// NewStaticBody creates an immovable body.
func NewStaticBody(kind Kind, pos r2.Vec, size float64) (*Body, error) {
	b, err := NewBody(kind, pos, size)
	if err != nil {
		return nil, err
	}
	b.Static = true
	b.invMass = 0
	return b, nil
}

// NewWall creates a static axis-aligned box covering box.
func NewWall(box r2.Box) (*Body, error) {
	center := r2.Scale(0.5, r2.Add(box.Min, box.Max))
	local, err := sat.PolygonFromBox(r2.Box{Min: r2.Sub(box.Min, center), Max: r2.Sub(box.Max, center)})
	if err != nil {
		return nil, fmt.Errorf("wall %v: %w", box, err)
	}

	b := &Body{
		Kind:   KindBox,
		Pos:    center,
		Size:   r2.Norm(r2.Sub(box.Max, center)),
		Static: true,
		local:  local,
	}
	b.Sync()
	return b, nil
}

// SetKind rebuilds the body's shape and mass for kind, keeping its
// position, velocity and size.
func (b *Body) SetKind(kind Kind) error {
	var area float64
	switch kind {
	case KindCircle:
		if _, err := sat.NewCircle(b.Pos, b.Size); err != nil {
			return err
		}
		b.local = sat.Polygon{}
		area = math.Pi * b.Size * b.Size
	case KindBox, KindTriangle, KindHexagon:
		p, err := localPolygon(kind, b.Size)
		if err != nil {
			return err
		}
		b.local = p
		area = polygonArea(&p)
	default:
		return fmt.Errorf("unknown body kind %v", kind)
	}

	b.Kind = kind
	if !b.Static && area > 0 {
		b.invMass = 1 / area
	}
	b.Sync()
	return nil
}

// localPolygon returns the body-space polygon for kind with circumradius r.
func localPolygon(kind Kind, r float64) (sat.Polygon, error) {
	switch kind {
	case KindBox:
		h := r / math.Sqrt2
		return sat.PolygonFromBox(r2.Box{Min: r2.Vec{X: -h, Y: -h}, Max: r2.Vec{X: h, Y: h}})
	case KindTriangle:
		return sat.RegularPolygon(r2.Vec{}, r, 3, math.Pi/2)
	case KindHexagon:
		return sat.RegularPolygon(r2.Vec{}, r, 6, 0)
	}
	return sat.Polygon{}, fmt.Errorf("kind %v has no polygon", kind)
}

// polygonArea returns the unsigned shoelace area of p.
func polygonArea(p *sat.Polygon) float64 {
	var sum float64
	n := p.Len()
	for i := 0; i < n; i++ {
		a := p.Vertex(i)
		c := p.Vertex((i + 1) % n)
		sum += a.X*c.Y - c.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Sync recomputes the world-space collision shape from Pos and Angle.
func (b *Body) Sync() {
	if b.Kind == KindCircle {
		b.circle = sat.Circle{Pos: b.Pos, Radius: b.Size}
		return
	}
	b.world = b.local.Transform(b.Angle, b.Pos)
}

// Shape returns the world-space collision shape. It stays valid until the
// body next moves.
func (b *Body) Shape() sat.Shape {
	if b.Kind == KindCircle {
		return &b.circle
	}
	return &b.world
}

// Bounds returns the world-space bounding box.
func (b *Body) Bounds() r2.Box {
	return b.Shape().Bounds()
}

// InverseMass returns zero for static bodies.
func (b *Body) InverseMass() float64 {
	if b.Static {
		return 0
	}
	return b.invMass
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() r2.Vec {
	return b.Vel
}

// SetVelocity sets the linear velocity, capped at maxSpeed.
func (b *Body) SetVelocity(v r2.Vec) {
	if s := r2.Norm(v); s > maxSpeed {
		v = r2.Scale(maxSpeed/s, v)
	}
	b.Vel = v
}

// Translate moves the body by d.
func (b *Body) Translate(d r2.Vec) {
	b.Pos = r2.Add(b.Pos, d)
	b.Sync()
}

// Touch starts the contact highlight.
func (b *Body) Touch() {
	b.Contact = contactHighlight
}

// Update integrates motion and keeps the body inside ctx.Bounds.
func (b *Body) Update(ctx UpdateContext) (bool, error) {
	if b.Removed {
		return true, nil
	}

	dt := ctx.Delta.Seconds()

	if b.Contact > 0 {
		b.Contact -= dt
		if b.Contact < 0 {
			b.Contact = 0
		}
	}

	if b.Static {
		return false, nil
	}

	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	b.Angle = math.Mod(b.Angle+b.Spin*dt, 2*math.Pi)
	b.Sync()
	b.bounce(ctx.Bounds)

	return false, nil
}

// bounce reflects the body off the edges of bounds it has crossed.
// An empty bounds box disables the check.
func (b *Body) bounce(bounds r2.Box) {
	if bounds.Max.X <= bounds.Min.X || bounds.Max.Y <= bounds.Min.Y {
		return
	}

	box := b.Bounds()
	var d r2.Vec

	switch {
	case box.Min.X < bounds.Min.X:
		d.X = bounds.Min.X - box.Min.X
		b.Vel.X = math.Abs(b.Vel.X)
	case box.Max.X > bounds.Max.X:
		d.X = bounds.Max.X - box.Max.X
		b.Vel.X = -math.Abs(b.Vel.X)
	}
	switch {
	case box.Min.Y < bounds.Min.Y:
		d.Y = bounds.Min.Y - box.Min.Y
		b.Vel.Y = math.Abs(b.Vel.Y)
	case box.Max.Y > bounds.Max.Y:
		d.Y = bounds.Max.Y - box.Max.Y
		b.Vel.Y = -math.Abs(b.Vel.Y)
	}

	if d != (r2.Vec{}) {
		b.Translate(d)
	}
}

// AppendView appends a value snapshot of the body.
func (b *Body) AppendView(dst []View) []View {
	v := View{
		Kind:    b.Kind,
		Angle:   b.Angle,
		Contact: b.Contact > 0,
		Static:  b.Static,
		OwnerID: b.OwnerID,
	}
	if b.Kind == KindCircle {
		v.Circle = b.circle
	} else {
		v.Polygon = b.world
	}
	return append(dst, v)
}
