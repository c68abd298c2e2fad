package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals send repeats rather than key-up events, so holding relies on
// the auto-repeat rate keeping the key fresh.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
//
// Movement and rotation are held keys: they stay set while the terminal
// keeps repeating them. The remaining actions are taps and are set only in
// the frame their byte arrived.
type Input struct {
	Quit      bool
	Left      bool
	Right     bool
	Up        bool
	Down      bool
	RotateCCW bool
	RotateCW  bool

	Cycle   bool // next probe shape
	More    bool // raise the body population
	Fewer   bool // lower the body population
	Pause   bool
	Normals bool // toggle manifold normal arrows
	Enter   bool

	Pressed []byte
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	rotateCCW time.Time
	rotateCW  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	buf   []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// A closed stream reports Quit so the caller's loop ends.
func ReadInput(s *Stream) Input {
	buf := s.buf[:0]
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	s.buf = buf

	in := parse(&s.state, buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets held keys, e.g. after a screen change so a key
// pressed on a menu does not leak into the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse applies buf to state and builds the input seen at now.
func parse(state *keyState, buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
			case 'B':
				state.down = now
			case 'C':
				state.right = now
			case 'D':
				state.left = now
			}
			i += 2
			continue
		}

		applyByte(state, &in, b, now)
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	in.RotateCCW = now.Sub(state.rotateCCW) < keyHoldDuration
	in.RotateCW = now.Sub(state.rotateCW) < keyHoldDuration
	in.Pressed = buf
	return in
}

// applyByte updates held-key timestamps and sets tap actions for b.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // 0x03 is Ctrl-C in raw mode
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case 'z', 'Z':
		state.rotateCCW = now
	case 'x', 'X':
		state.rotateCW = now
	case 'c', 'C':
		in.Cycle = true
	case '+', '=':
		in.More = true
	case '-', '_':
		in.Fewer = true
	case ' ':
		in.Pause = true
	case 'n', 'N':
		in.Normals = true
	case '\n', '\r':
		in.Enter = true
	}
}
