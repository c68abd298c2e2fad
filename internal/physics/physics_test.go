package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomz197/satplay/sat"
	"gonum.org/v1/gonum/spatial/r2"
)

type testBody struct {
	pos, vel r2.Vec
	invMass  float64
}

func (b *testBody) InverseMass() float64 { return b.invMass }
func (b *testBody) Velocity() r2.Vec { return b.vel }
func (b *testBody) SetVelocity(v r2.Vec) { b.vel = v }
func (b *testBody) Translate(d r2.Vec) { b.pos = r2.Add(b.pos, d) }

func TestResolveHeadOn(t *testing.T) {
	// a sits left of b and moves right; the normal points from b to a.
	a := &testBody{pos: r2.Vec{X: 0}, vel: r2.Vec{X: 2}, invMass: 1}
	b := &testBody{pos: r2.Vec{X: 1}, vel: r2.Vec{X: -2}, invMass: 1}
	m := sat.Manifold{Normal: r2.Vec{X: -1}, Overlap: 0.4}

	require.True(t, Resolve(a, b, m, 1))

	require.InDelta(t, -0.2, a.pos.X, 1e-9)
	require.InDelta(t, 1.2, b.pos.X, 1e-9)
	// Equal masses with full restitution swap velocities.
	require.InDelta(t, -2, a.vel.X, 1e-9)
	require.InDelta(t, 2, b.vel.X, 1e-9)
}

func TestResolveStaticBody(t *testing.T) {
	a := &testBody{vel: r2.Vec{Y: -3}, invMass: 0.5}
	wall := &testBody{invMass: 0}
	m := sat.Manifold{Normal: r2.Vec{Y: 1}, Overlap: 0.25}

	require.True(t, Resolve(a, wall, m, 0))

	require.InDelta(t, 0.25, a.pos.Y, 1e-9)
	require.InDelta(t, 0, a.vel.Y, 1e-9)
	require.Equal(t, r2.Vec{}, wall.pos)
	require.Equal(t, r2.Vec{}, wall.vel)
}

func TestResolveMassRatio(t *testing.T) {
	light := &testBody{invMass: 3}
	heavy := &testBody{invMass: 1}
	m := sat.Manifold{Normal: r2.Vec{X: 1}, Overlap: 1}

	Resolve(light, heavy, m, 0)
	require.InDelta(t, 0.75, light.pos.X, 1e-9)
	require.InDelta(t, -0.25, heavy.pos.X, 1e-9)
}

func TestResolveSeparatingKeepsVelocity(t *testing.T) {
	a := &testBody{vel: r2.Vec{X: -1}, invMass: 1}
	b := &testBody{vel: r2.Vec{X: 1}, invMass: 1}
	m := sat.Manifold{Normal: r2.Vec{X: -1}, Overlap: 0.1}

	require.False(t, Resolve(a, b, m, 1))
	require.Equal(t, r2.Vec{X: -1}, a.vel)
	require.Equal(t, r2.Vec{X: 1}, b.vel)
	require.InDelta(t, -0.05, a.pos.X, 1e-9)
}

func TestResolveNoop(t *testing.T) {
	a := &testBody{invMass: 0}
	b := &testBody{invMass: 0}
	require.False(t, Resolve(a, b, sat.Manifold{Normal: r2.Vec{X: 1}, Overlap: 1}, 1))

	c := &testBody{invMass: 1}
	require.False(t, Resolve(c, c, sat.NewManifold(), 1))
	require.Equal(t, r2.Vec{}, c.pos)
}

func TestApproachSpeed(t *testing.T) {
	a := &testBody{vel: r2.Vec{X: 2}}
	b := &testBody{vel: r2.Vec{X: -1}}
	require.InDelta(t, 3, ApproachSpeed(a, b, r2.Vec{X: -1}), 1e-9)
	require.InDelta(t, -3, ApproachSpeed(a, b, r2.Vec{X: 1}), 1e-9)
}

func TestResolveWithSatManifold(t *testing.T) {
	pa := sat.MustPolygon(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 0, Y: 1}, r2.Vec{X: 1, Y: 1}, r2.Vec{X: 1, Y: 0})
	pb := sat.MustPolygon(r2.Vec{X: 0.5, Y: 0}, r2.Vec{X: 0.5, Y: 1}, r2.Vec{X: 1.5, Y: 1}, r2.Vec{X: 1.5, Y: 0})

	m, ok := sat.CollidePolyPoly(&pa, &pb)
	require.True(t, ok)

	a := &testBody{invMass: 1}
	b := &testBody{invMass: 1}
	Resolve(a, b, m, 0)

	movedA := pa.Translate(r2.Scale(1+1e-9, a.pos))
	movedB := pb.Translate(r2.Scale(1+1e-9, b.pos))
	require.False(t, sat.TestPolyPoly(&movedA, &movedB))
}
