package sat

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// perp returns v rotated a quarter turn: (-y, x).
func perp(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// unit returns v scaled to length one, or the zero vector for a zero input.
func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

func neg(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.X, Y: -v.Y}
}

// rotate turns v by the angle whose cosine and sine are given.
func rotate(v r2.Vec, cos, sin float64) r2.Vec {
	return r2.Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v r2.Vec) bool {
	return finite(v.X) && finite(v.Y)
}
