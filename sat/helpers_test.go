package sat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func box(t testing.TB, x0, y0, x1, y1 float64) *Polygon {
	t.Helper()
	p, err := PolygonFromBox(r2.Box{Min: r2.Vec{X: x0, Y: y0}, Max: r2.Vec{X: x1, Y: y1}})
	require.NoError(t, err)
	return &p
}

func circle(t testing.TB, x, y, r float64) *Circle {
	t.Helper()
	c, err := NewCircle(r2.Vec{X: x, Y: y}, r)
	require.NoError(t, err)
	return &c
}

func requireVec(t testing.TB, want, got r2.Vec, msgAndArgs ...any) {
	t.Helper()
	require.InDelta(t, want.X, got.X, 1e-6, msgAndArgs...)
	require.InDelta(t, want.Y, got.Y, 1e-6, msgAndArgs...)
}

// randomPolygon returns a regular polygon with random size, rotation and
// placement inside a 10x10 square.
func randomPolygon(t testing.TB, rng *rand.Rand) *Polygon {
	t.Helper()
	center := r2.Vec{X: rng.Float64() * 10, Y: rng.Float64() * 10}
	sides := 3 + rng.Intn(MaxVerts-2)
	p, err := RegularPolygon(center, 0.5+rng.Float64()*3, sides, rng.Float64()*2*math.Pi)
	require.NoError(t, err)
	return &p
}

// randomBox returns an axis-aligned box with corners on a half-unit grid.
func randomBox(t testing.TB, rng *rand.Rand) *Polygon {
	t.Helper()
	x := float64(rng.Intn(10)) / 2
	y := float64(rng.Intn(10)) / 2
	w := float64(1+rng.Intn(6)) / 2
	h := float64(1+rng.Intn(6)) / 2
	return box(t, x, y, x+w, y+h)
}

// bruteForceSeparated projects both polygons onto every edge normal and
// reports whether any projection pair is disjoint or just touching.
func bruteForceSeparated(a, b *Polygon) bool {
	for _, p := range []*Polygon{a, b} {
		for i := 0; i < p.Len(); i++ {
			ra := AxisRange(a, p.Normal(i))
			rb := AxisRange(b, p.Normal(i))
			if ra.Max <= rb.Min || rb.Max <= ra.Min {
				return true
			}
		}
	}
	return false
}
