// Package streamtest provides a simulated terminal for testing code that
// talks to a stream.Stream.
package streamtest

import (
	"bytes"
	"io"

	"github.com/josephlewis42/serialshell/core/stream"
)

// Stream simulates a serial terminal: keys pressed on it become input and
// everything written to it is captured as display output.
type Stream struct {
	keyboard bytes.Buffer
	display  bytes.Buffer
	closed   bool

	// Flushes counts the number of calls to Flush.
	Flushes int
}

var _ stream.Stream = (*Stream)(nil)

// New creates an empty simulated terminal.
func New() *Stream {
	return &Stream{}
}

// PressKey simulates a single keypress.
func (s *Stream) PressKey(c byte) {
	s.keyboard.WriteByte(c)
}

// PressKeys simulates typing each byte of keys in order.
func (s *Stream) PressKeys(keys string) {
	s.keyboard.WriteString(keys)
}

// CloseInput simulates the other end hanging up, once the pending keys are
// consumed reads return io.EOF.
func (s *Stream) CloseInput() {
	s.closed = true
}

// Pending returns the number of keypresses not yet read.
func (s *Stream) Pending() int {
	return s.keyboard.Len()
}

// Output returns everything written to the display since the last call and
// clears it.
func (s *Stream) Output() string {
	out := s.display.String()
	s.display.Reset()
	return out
}

func (s *Stream) ReadByte() (byte, error) {
	if s.keyboard.Len() == 0 {
		if s.closed {
			return 0, io.EOF
		}
		return 0, stream.ErrNoData
	}
	return s.keyboard.ReadByte()
}

func (s *Stream) WriteByte(c byte) error {
	return s.display.WriteByte(c)
}

func (s *Stream) Write(b []byte) (int, error) {
	return s.display.Write(b)
}

func (s *Stream) Flush() error {
	s.Flushes++
	return nil
}
