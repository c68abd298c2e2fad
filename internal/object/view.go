package object

import (
	"math"

	"github.com/tomz197/satplay/internal/draw"
	"github.com/tomz197/satplay/sat"
	"gonum.org/v1/gonum/spatial/r2"
)

// View is an immutable value snapshot of an object, taken by the server
// and rendered by clients.
type View struct {
	Kind    Kind
	Circle  sat.Circle  // KindCircle
	Polygon sat.Polygon // polygon kinds
	Point   r2.Vec      // KindSpark
	Angle   float64
	Contact bool
	Static  bool
	OwnerID int
}

// Color picks the pen for the view as seen by client self.
func (v *View) Color(self int) draw.Color {
	switch {
	case v.Kind == KindSpark:
		return draw.ColorYellow
	case v.Contact:
		return draw.ColorRed
	case v.OwnerID != 0 && v.OwnerID == self:
		return draw.ColorCyan
	case v.OwnerID != 0:
		return draw.ColorMagenta
	case v.Static:
		return draw.ColorGray
	default:
		return draw.ColorWhite
	}
}

// Draw renders the view for client self. Shapes in contact are filled.
func (v *View) Draw(ctx DrawContext, self int) {
	c := ctx.Canvas
	c.SetColor(v.Color(self))

	switch v.Kind {
	case KindSpark:
		c.SetFloat(v.Point.X, v.Point.Y)

	case KindCircle:
		center := draw.PointFromVec(v.Circle.Pos)
		c.DrawCircle(center, v.Circle.Radius, v.Contact)
		// A spoke shows the circle's rotation.
		sin, cos := math.Sincos(v.Angle)
		c.DrawLine(center, center.Add(cos*v.Circle.Radius, sin*v.Circle.Radius))

	default:
		n := v.Polygon.Len()
		if n == 0 {
			return
		}
		points := c.BorrowPoints(n)
		for i := range points {
			points[i] = draw.PointFromVec(v.Polygon.Vertex(i))
		}
		c.DrawPolygon(points, v.Contact)
	}
}
