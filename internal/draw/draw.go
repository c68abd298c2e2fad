// Package draw renders to ANSI terminals: a half-block pixel canvas,
// a chunked writer for network-friendly output, and cursor helpers.
package draw

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point represents a 2D coordinate in logical canvas space.
type Point struct {
	X, Y float64
}

// PointFromVec converts a world vector to a canvas point.
func PointFromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Add returns p moved by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a foreground color for canvas pixels. The zero Color marks an
// unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGray
	ColorCyan
	ColorYellow
	ColorRed
	ColorGreen
	ColorMagenta
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

// ColorBrightCyan is used for text that refers to the local player.
const ColorBrightCyan = "\033[96m"

var colorCodes = [...]string{
	ColorNone:    ColorReset,
	ColorWhite:   "\033[97m",
	ColorGray:    "\033[90m",
	ColorCyan:    "\033[36m",
	ColorYellow:  "\033[93m",
	ColorRed:     "\033[91m",
	ColorGreen:   "\033[92m",
	ColorMagenta: "\033[95m",
}

// ANSI returns the escape sequence selecting c.
func (c Color) ANSI() string {
	if int(c) >= len(colorCodes) {
		return ColorReset
	}
	return colorCodes[c]
}

// circleSegments picks how many chords approximate a circle of radius r
// pixels. Small circles still get enough segments to look round.
func circleSegments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 2))
	if n < 8 {
		n = 8
	}
	if n > 64 {
		n = 64
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
