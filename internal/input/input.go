package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals send no key-up events, so holding relies on key repeat.
const keyHoldDuration = 80 * time.Millisecond

// MouseButton identifies the button in an SGR mouse report.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseNone
)

// MouseEvent is one decoded SGR mouse report in 0-based cell coordinates.
type MouseEvent struct {
	Col, Row int
	Button   MouseButton
	Motion   bool // Pointer moved (with or without a button down)
	Press    bool
	Release  bool
}

// Input represents the current frame's terminal input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Space  bool
	Enter  bool
	Escape bool
	Number int
	// Pressed holds every plain byte seen this frame, in order.
	Pressed []byte
	Mouse   []MouseEvent
}

// Keys returns the held movement keys as a Key set.
func (in Input) Keys() Key {
	var k Key
	if in.Up {
		k |= KeyUp
	}
	if in.Down {
		k |= KeyDown
	}
	if in.Left {
		k |= KeyLeft
	}
	if in.Right {
		k |= KeyRight
	}
	return k
}

// PressedKey reports whether any of keys was pressed this frame.
func (in Input) PressedKey(keys ...byte) bool {
	for _, p := range in.Pressed {
		for _, k := range keys {
			if p == k {
				return true
			}
		}
	}
	return false
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 256),
		state: keyState{numberVal: -1},
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

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles CSI sequences for arrow keys and SGR mouse reports, and uses key
// state persistence so simultaneous keys are seen as held together.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Number: -1}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			n, complete := parseCSI(&s.state, &in, buf[i:], now)
			if !complete {
				s.pending = append([]byte(nil), buf[i:]...)
				break
			}
			i += n - 1
			continue
		}

		applyByteToState(&s.state, b, now)
		in.Pressed = append(in.Pressed, b)
	}

	in.Quit = now.Sub(s.state.quit) < keyHoldDuration
	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	in.Space = now.Sub(s.state.space) < keyHoldDuration
	in.Enter = now.Sub(s.state.enter) < keyHoldDuration
	in.Escape = now.Sub(s.state.escape) < keyHoldDuration

	// Number is only set if recently pressed
	if now.Sub(s.state.number) < keyHoldDuration {
		in.Number = s.state.numberVal
	}

	return in
}

// parseCSI decodes a CSI sequence at the start of seq (which begins with
// ESC '['). It returns the sequence length and whether it was complete.
func parseCSI(state *keyState, in *Input, seq []byte, now time.Time) (int, bool) {
	if len(seq) < 3 {
		return 0, false
	}
	switch seq[2] {
	case 'A':
		state.up = now
		return 3, true
	case 'B':
		state.down = now
		return 3, true
	case 'C':
		state.right = now
		return 3, true
	case 'D':
		state.left = now
		return 3, true
	case '<':
		return parseSGRMouse(in, seq)
	}

	// Unknown sequence: skip to its final byte
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse decodes ESC [ < b ; x ; y (M|m).
func parseSGRMouse(in *Input, seq []byte) (int, bool) {
	end := -1
	for j := 3; j < len(seq); j++ {
		if seq[j] == 'M' || seq[j] == 'm' {
			end = j
			break
		}
		if seq[j] != ';' && (seq[j] < '0' || seq[j] > '9') {
			// Malformed; drop what we have
			return j, true
		}
	}
	if end < 0 {
		return 0, false
	}

	var fields [3]int
	field := 0
	start := 3
	for j := 3; j <= end && field < 3; j++ {
		if j == end || seq[j] == ';' {
			v, err := strconv.Atoi(string(seq[start:j]))
			if err != nil {
				return end + 1, true
			}
			fields[field] = v
			field++
			start = j + 1
		}
	}
	if field != 3 {
		return end + 1, true
	}

	code := fields[0]
	ev := MouseEvent{
		Col:    fields[1] - 1,
		Row:    fields[2] - 1,
		Button: MouseButton(code & 3),
		Motion: code&32 != 0,
	}
	// Wheel events carry no useful pointer action
	if code&64 != 0 {
		return end + 1, true
	}
	if !ev.Motion {
		ev.Press = seq[end] == 'M'
		ev.Release = seq[end] == 'm'
	}
	in.Mouse = append(in.Mouse, ev)
	return end + 1, true
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}
