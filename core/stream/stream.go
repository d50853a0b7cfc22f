// Package stream contains the byte stream abstraction the shell reads
// keystrokes from and writes its output to.
package stream

import (
	"errors"
	"io"
)

// ErrNoData is returned by ReadByte when no input is ready yet. It is not a
// failure, callers should try again on their next polling cycle.
var ErrNoData = errors.New("stream: no data available")

// Stream is a non-blocking, byte oriented, bidirectional channel such as a
// serial port.
type Stream interface {
	// ReadByte returns the next input byte. It must not block, if nothing is
	// ready it returns ErrNoData.
	io.ByteReader
	io.ByteWriter
	io.Writer

	// Flush pushes any buffered output to the other end.
	Flush() error
}

// Null is a Stream that never has input and discards all output.
var Null Stream = nullStream{}

type nullStream struct{}

func (nullStream) ReadByte() (byte, error) {
	return 0, ErrNoData
}

func (nullStream) WriteByte(byte) error {
	return nil
}

func (nullStream) Write(b []byte) (int, error) {
	return len(b), nil
}

func (nullStream) Flush() error {
	return nil
}

// IsNoData returns true if err only means that no input was available.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
