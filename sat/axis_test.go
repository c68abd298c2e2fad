package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestAxisRange(t *testing.T) {
	p := box(t, 1, 2, 4, 3)

	require.Equal(t, Interval{Min: 1, Max: 4}, AxisRange(p, r2.Vec{X: 1}))
	require.Equal(t, Interval{Min: 2, Max: 3}, AxisRange(p, r2.Vec{Y: 1}))
	require.Equal(t, Interval{Min: -4, Max: -1}, AxisRange(p, r2.Vec{X: -1}))

	// Non-unit axes scale the interval.
	require.Equal(t, Interval{Min: 2, Max: 8}, AxisRange(p, r2.Vec{X: 2}))

	d := AxisRange(p, r2.Vec{X: 1, Y: 1})
	require.InDelta(t, 3, d.Min, eps)
	require.InDelta(t, 7, d.Max, eps)

	require.Equal(t, Interval{}, AxisRange(&Polygon{}, r2.Vec{X: 1}))
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		a, b Interval
		want bool
	}{
		{Interval{0, 1}, Interval{0.5, 2}, true},
		{Interval{0, 1}, Interval{1, 2}, true},
		{Interval{0, 1}, Interval{1.01, 2}, false},
		{Interval{-3, -2}, Interval{0, 1}, false},
		{Interval{0, 10}, Interval{2, 3}, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.a.Overlaps(tt.b), "%v %v", tt.a, tt.b)
		require.Equal(t, tt.want, tt.b.Overlaps(tt.a), "%v %v", tt.b, tt.a)
	}
}

func TestAxisOverlap(t *testing.T) {
	a := box(t, 0, 0, 1, 1)
	x := r2.Vec{X: 1}

	tests := []struct {
		name string
		b    *Polygon
		want float64
	}{
		{"b to the right", box(t, 0.5, 0, 1.5, 1), -0.5},
		{"b to the left", box(t, -0.75, 0, 0.25, 1), 0.25},
		{"b inside", box(t, 0.1, 0, 0.3, 1), 0.3},
		{"disjoint", box(t, 2, 0, 3, 1), 0},
		{"touching", box(t, 1, 0, 2, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, AxisOverlap(a, tt.b, x), eps)
		})
	}
}

func TestAxisOverlapOrientsReducer(t *testing.T) {
	a := box(t, 0, 0, 1, 1)
	b := box(t, 0.5, 0, 1.5, 1)

	m := NewManifold()
	m.Consider(r2.Vec{X: 1}, AxisOverlap(a, b, r2.Vec{X: 1}))
	m.Consider(r2.Vec{Y: 1}, AxisOverlap(a, b, r2.Vec{Y: 1}))

	requireVec(t, r2.Vec{X: -1}, m.Normal)
	require.InDelta(t, 0.5, m.Overlap, eps)
}

func TestPolygonBoundsMatchesAxisRange(t *testing.T) {
	p, err := RegularPolygon(r2.Vec{X: -2, Y: 3}, 1.5, 5, 0.4)
	require.NoError(t, err)

	b := PolygonBounds(&p)
	x := AxisRange(&p, r2.Vec{X: 1})
	y := AxisRange(&p, r2.Vec{Y: 1})
	require.Equal(t, r2.Box{Min: r2.Vec{X: x.Min, Y: y.Min}, Max: r2.Vec{X: x.Max, Y: y.Max}}, b)

	for i := 0; i < p.Len(); i++ {
		v := p.Vertex(i)
		require.True(t, v.X >= b.Min.X && v.X <= b.Max.X)
		require.True(t, v.Y >= b.Min.Y && v.Y <= b.Max.Y)
	}
}
