package shell

// Control characters understood by the line editor.
const (
	keyNUL       = 0x00
	keyBackspace = 0x08 // Ctrl-H
	keyLineFeed  = 0x0a // Ctrl-J
	keyReturn    = 0x0d // Ctrl-M
	keyRetype    = 0x12 // Ctrl-R
	keyKill      = 0x15 // Ctrl-U
	keyDelete    = 0x7f
)

// DefaultAltTerminator ends a line for transports that can't send a carriage
// return, such as most BLE serial monitor apps.
const DefaultAltTerminator = ';'

const (
	crlf          = "\r\n"
	eraseSequence = "\b \b"
	killAck       = "XXX" + crlf
)

// Mode is the position of the line editor in its input cycle.
type Mode int

const (
	// Collecting is the default mode, bytes are accumulated into the line.
	Collecting Mode = iota
	// LineReady means a complete line is waiting to be executed.
	LineReady
)

func (m Mode) String() string {
	switch m {
	case Collecting:
		return "collecting"
	case LineReady:
		return "line-ready"
	default:
		return "unknown"
	}
}

// State is everything a transition depends on.
type State struct {
	Mode   Mode
	Cursor int
}

// Effect describes what applying a transition does to the buffer and the
// terminal.
type Effect int

const (
	// EffectNone leaves the buffer alone and echoes nothing.
	EffectNone Effect = iota
	// EffectAppend appends the byte to the buffer and echoes it.
	EffectAppend
	// EffectErase removes the last byte and echoes a destructive backspace.
	EffectErase
	// EffectRetype echoes the buffer on a fresh line.
	EffectRetype
	// EffectKill empties the buffer and echoes an acknowledgement.
	EffectKill
	// EffectTerminate echoes a newline, the line is complete.
	EffectTerminate
)

// EditorConfig holds the parameters that shape transitions.
type EditorConfig struct {
	// Capacity of the line buffer, lines hold at most Capacity-1 bytes.
	Capacity int
	// AltTerminator ends a line like a carriage return, 0 disables it.
	AltTerminator byte
}

// Transition computes the state that follows st when c is read. It has no
// side effects, the returned Effect tells the caller how to update the
// buffer and what to echo.
func (cfg EditorConfig) Transition(st State, c byte) (State, Effect) {
	if st.Mode == LineReady {
		// The previous line was consumed, start a new one.
		st = State{Mode: Collecting}
	}

	switch {
	case c == keyNUL:
		return st, EffectNone

	case c == keyDelete, c == keyBackspace:
		if st.Cursor == 0 {
			return st, EffectNone
		}
		st.Cursor--
		return st, EffectErase

	case c == keyRetype:
		return st, EffectRetype

	case c == keyKill:
		return State{Mode: Collecting}, EffectKill

	case c == keyReturn, cfg.AltTerminator != 0 && c == cfg.AltTerminator:
		st.Mode = LineReady
		return st, EffectTerminate

	case c == keyLineFeed:
		// Half of a CR/LF pair, the CR already ended the line.
		return st, EffectNone
	}

	st.Cursor++
	if st.Cursor >= cfg.Capacity-1 {
		// Flush to avoid overflow.
		st.Mode = LineReady
	}
	return st, EffectAppend
}

// LineEditor accumulates keystrokes into a fixed capacity line buffer.
type LineEditor struct {
	cfg   EditorConfig
	state State
	buf   []byte
}

// NewLineEditor creates an editor with an empty buffer.
func NewLineEditor(cfg EditorConfig) *LineEditor {
	return &LineEditor{
		cfg: cfg,
		buf: make([]byte, 0, cfg.Capacity),
	}
}

// Feed processes one input byte. It returns the bytes to echo back to the
// terminal and whether a complete line is ready.
func (e *LineEditor) Feed(c byte) (echo []byte, ready bool) {
	if e.state.Mode == LineReady {
		e.buf = e.buf[:0]
	}

	next, effect := e.cfg.Transition(e.state, c)
	e.state = next

	switch effect {
	case EffectAppend:
		e.buf = append(e.buf, c)
		echo = []byte{c}
	case EffectErase:
		e.buf = e.buf[:len(e.buf)-1]
		echo = []byte(eraseSequence)
	case EffectRetype:
		echo = append([]byte(crlf), e.buf...)
	case EffectKill:
		e.buf = e.buf[:0]
		echo = []byte(killAck)
	case EffectTerminate:
		echo = []byte(crlf)
	}

	return echo, next.Mode == LineReady
}

// Load replaces the buffer with line, truncated to fit, and marks it ready.
func (e *LineEditor) Load(line string) {
	if limit := e.cfg.Capacity - 1; len(line) > limit {
		line = line[:limit]
	}
	e.buf = append(e.buf[:0], line...)
	e.state = State{Mode: LineReady, Cursor: len(e.buf)}
}

// Reset empties the buffer and returns to collecting input.
func (e *LineEditor) Reset() {
	for i := range e.buf {
		e.buf[i] = 0
	}
	e.buf = e.buf[:0]
	e.state = State{Mode: Collecting}
}

// Line returns the contents of the buffer.
func (e *LineEditor) Line() string {
	return string(e.buf)
}

// State returns the editor's current state.
func (e *LineEditor) State() State {
	return e.state
}

// Capacity returns the size of the line buffer.
func (e *LineEditor) Capacity() int {
	return e.cfg.Capacity
}
