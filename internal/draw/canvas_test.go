package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func countPixels(c *Canvas) int {
	n := 0
	for y := 0; y < c.subPixelHeight; y++ {
		for x := 0; x < c.termWidth; x++ {
			if c.At(x, y) != ColorNone {
				n++
			}
		}
	}
	return n
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 0})

	for x := 0; x < 10; x++ {
		require.Equal(t, ColorWhite, c.At(x, 0))
	}
	require.Equal(t, ColorNone, c.At(0, 1))
	require.Equal(t, 10, countPixels(c))
}

func TestCanvasScaling(t *testing.T) {
	// 20 columns and 10 rows render a 40x40 logical space.
	c := NewScaledCanvas(20, 10, 40, 40)
	c.SetFloat(20, 20)
	require.Equal(t, ColorWhite, c.At(10, 10))

	col, row := c.LogicalToTerminal(20, 20)
	require.Equal(t, 11, col)
	require.Equal(t, 6, row)
}

func TestCanvasSetColor(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetColor(ColorRed)
	c.SetFloat(1, 1)
	require.Equal(t, ColorRed, c.At(1, 1))

	c.SetColor(ColorNone)
	c.SetFloat(2, 2)
	require.Equal(t, ColorWhite, c.At(2, 2))
}

func TestCanvasFilledPolygon(t *testing.T) {
	c := NewCanvas(20, 10)
	square := []Point{{X: 2, Y: 2}, {X: 2, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 2}}

	c.DrawPolygon(square, false)
	outline := countPixels(c)
	require.Equal(t, ColorNone, c.At(6, 6))

	c.Clear()
	require.Zero(t, countPixels(c))

	c.DrawPolygon(square, true)
	require.Equal(t, ColorWhite, c.At(6, 6))
	require.Greater(t, countPixels(c), outline)
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(40, 20)
	c.DrawCircle(Point{X: 20, Y: 20}, 8, false)

	require.Equal(t, ColorNone, c.At(20, 20))
	require.Equal(t, ColorWhite, c.At(28, 20))
	require.Equal(t, ColorWhite, c.At(12, 20))

	c.Clear()
	c.DrawCircle(Point{X: 20, Y: 20}, 8, true)
	require.Equal(t, ColorWhite, c.At(20, 20))

	c.Clear()
	c.DrawCircle(Point{X: 5, Y: 5}, 0, false)
	require.Equal(t, 1, countPixels(c))
}

func TestCanvasDrawArrow(t *testing.T) {
	c := NewCanvas(40, 20)
	c.DrawArrow(Point{X: 5, Y: 20}, Point{X: 25, Y: 20})

	for x := 5; x <= 25; x++ {
		require.Equal(t, ColorWhite, c.At(x, 20))
	}
	// The head strokes end two pixels back, one to each side of the shaft.
	require.Equal(t, ColorWhite, c.At(23, 19))
	require.Equal(t, ColorWhite, c.At(23, 21))
	require.Equal(t, ColorNone, c.At(24, 19))
	require.Equal(t, ColorNone, c.At(26, 19))
}

func TestCanvasOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(5, 5)
	c.DrawLine(Point{X: -10, Y: -10}, Point{X: -1, Y: -1})
	c.SetFloat(100, 100)
	require.Zero(t, countPixels(c))
	require.Equal(t, ColorNone, c.At(-1, 0))
}

func TestCanvasRenderOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetFloat(0, 0)
	c.SetFloat(0, 1)
	c.SetFloat(1, 2)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	require.Contains(t, out, "\033[1;1H")
	require.Contains(t, out, string(BlockFull))
	require.Contains(t, out, string(BlockUpperHalf))
	require.True(t, strings.HasSuffix(out, ColorReset))

	// Nothing changed, nothing written.
	buf.Reset()
	c.Render(&buf)
	require.Empty(t, buf.String())

	// Erasing a pixel blanks its cell.
	c.Clear()
	c.SetFloat(0, 0)
	c.SetFloat(0, 1)
	buf.Reset()
	c.Render(&buf)
	require.Equal(t, "\033[2;2H ", buf.String())
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := NewCanvas(6, 3)
	var buf bytes.Buffer
	c.Render(&buf)
	require.Empty(t, buf.String())

	c.MarkTextDirty(2, 3, 3)
	c.MarkTextDirty(0, 99, 3) // outside, ignored
	c.Render(&buf)
	require.Equal(t, "\033[3;2H   ", buf.String())

	buf.Reset()
	c.Render(&buf)
	require.Empty(t, buf.String())
}

func TestCanvasForceRedrawAndOffset(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetOffset(4, 2)
	c.SetFloat(1, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	require.Contains(t, buf.String(), "\033[3;6H")

	// After the terminal is wiped the lit cell must be sent again.
	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	require.Contains(t, buf.String(), string(BlockLowerHalf))
}

func TestCanvasResize(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Resize(20, 10)
	require.Equal(t, 20, c.TerminalWidth())
	require.Equal(t, 10, c.TerminalHeight())
	require.Equal(t, 100.0, c.LogicalWidth())
	require.Equal(t, 100.0, c.LogicalHeight())

	c.SetFloat(50, 50)
	require.Equal(t, ColorWhite, c.At(10, 10))
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(3, 1)

	var buf bytes.Buffer
	c.RenderBorder(&buf)
	require.Empty(t, buf.String())

	c.SetOffset(2, 2)
	c.RenderBorder(&buf)
	out := buf.String()
	require.Contains(t, out, "┌───┐")
	require.Contains(t, out, "└───┘")
	require.Equal(t, 2, strings.Count(out, "│"))
}
