package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 1)

	cw.WriteAt(2, 5, "hi")
	require.Empty(t, out.String(), "nothing is written before Flush")
	require.NoError(t, cw.Flush())
	require.Equal(t, "\033[6;5Hhi", out.String())

	out.Reset()
	cw.SetOffset(0, 0)
	cw.WriteColorAt(1, 1, ColorBrightCyan, "x")
	cw.WriteRune('y')
	require.NoError(t, cw.Flush())
	require.Equal(t, "\033[1;1H"+ColorBrightCyan+"x"+ColorReset+"y", out.String())
	require.Zero(t, cw.Len())
}

func TestChunkWriterLargeFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	payload := strings.Repeat("abcdefgh", 1000)
	_, err := cw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, cw.Flush())
	require.Equal(t, payload, out.String())
}

func TestTerminalSizeRawWith(t *testing.T) {
	w, h, err := TerminalSizeRawWith(func() (int, int, error) { return 80, 24, nil })
	require.NoError(t, err)
	require.Equal(t, 80, w)
	require.Equal(t, 24, h)

	boom := errors.New("no tty")
	_, _, err = TerminalSizeRawWith(func() (int, int, error) { return 0, 0, boom })
	require.ErrorIs(t, err, boom)
}

func TestCursorHelpers(t *testing.T) {
	var out bytes.Buffer
	ClearScreen(&out)
	HideCursor(&out)
	ShowCursor(&out)
	require.Equal(t, "\033[H\033[2J\033[?25l\033[?25h", out.String())
}

func TestColorANSI(t *testing.T) {
	require.Equal(t, ColorReset, ColorNone.ANSI())
	require.Equal(t, "\033[91m", ColorRed.ANSI())
	require.Equal(t, ColorReset, Color(200).ANSI())
}

func TestPointHelpers(t *testing.T) {
	p := PointFromVec(r2.Vec{X: 1, Y: 2})
	require.Equal(t, Point{X: 1, Y: 2}, p)
	require.Equal(t, Point{X: 4, Y: 1}, p.Add(3, -1))
}
