package stream

import (
	"bufio"
	"io"
	"sync"
)

const pollBufferSize = 512

// PollStream turns a blocking reader and a writer into a Stream.
//
// A single goroutine pumps bytes from the reader into a buffered channel,
// ReadByte only ever drains that channel.
type PollStream struct {
	input   chan byte
	readErr error
	done    chan struct{}
	once    sync.Once
	// stopped is closed when the pump goroutine exits.
	stopped chan struct{}

	out    *bufio.Writer
	closer io.Closer
}

var _ Stream = (*PollStream)(nil)

// NewPollStream starts reading from r in the background. Output written to
// the stream is buffered until Flush is called.
func NewPollStream(r io.Reader, w io.Writer) *PollStream {
	ps := &PollStream{
		input:   make(chan byte, pollBufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		out:     bufio.NewWriter(w),
	}
	if c, ok := r.(io.Closer); ok {
		ps.closer = c
	}

	go ps.pump(r)
	return ps
}

func (ps *PollStream) pump(r io.Reader) {
	defer close(ps.stopped)

	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, c := range buf[:n] {
			select {
			case ps.input <- c:
			case <-ps.done:
				return
			}
		}
		if err != nil {
			// readErr is published by closing the channel.
			ps.readErr = err
			close(ps.input)
			return
		}
	}
}

// ReadByte returns the next byte read from the underlying reader,
// ErrNoData if none has arrived yet or the reader's error once it is
// exhausted.
func (ps *PollStream) ReadByte() (byte, error) {
	select {
	case c, ok := <-ps.input:
		if !ok {
			return 0, ps.readErr
		}
		return c, nil
	default:
		return 0, ErrNoData
	}
}

func (ps *PollStream) WriteByte(c byte) error {
	return ps.out.WriteByte(c)
}

func (ps *PollStream) Write(b []byte) (int, error) {
	return ps.out.Write(b)
}

func (ps *PollStream) Flush() error {
	return ps.out.Flush()
}

// Close flushes pending output, stops the background reader and closes the
// reader if it can be closed. Input that was never read is dropped.
func (ps *PollStream) Close() error {
	ps.once.Do(func() { close(ps.done) })

	flushErr := ps.out.Flush()
	if ps.closer != nil {
		if err := ps.closer.Close(); err != nil {
			return err
		}
	}
	return flushErr
}
