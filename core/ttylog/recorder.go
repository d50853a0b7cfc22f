package ttylog

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/josephlewis42/serialshell/core/stream"
)

// Recorder is a stream.Stream that forwards everything to another stream
// and logs the bytes that passed through it.
type Recorder struct {
	conn   stream.Stream
	output LogSink
	now    func() time.Time
	errLog *log.Logger

	mutex  sync.Mutex
	closed bool
}

var _ stream.Stream = (*Recorder)(nil)

// NewRecorder creates a recorder that forwards all events to output.
// Errors from output are written to errLog, or dropped if it is nil.
func NewRecorder(conn stream.Stream, output LogSink, errLog *log.Logger) *Recorder {
	if errLog == nil {
		errLog = log.New(io.Discard, "", 0)
	}
	return &Recorder{
		conn:   conn,
		output: output,
		now:    time.Now,
		errLog: errLog,
	}
}

func (r *Recorder) record(fd FD, data []byte, closed bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return
	}
	r.closed = closed

	entry := &Entry{
		TimestampMicros: r.now().UnixMicro(),
		FD:              fd,
		Data:            append([]byte(nil), data...),
		Close:           closed,
	}
	if err := r.output(entry); err != nil {
		r.errLog.Printf("recording %s: %v\n", fd, err)
	}
}

// ReadByte reads from the wrapped stream, recording the byte as input.
func (r *Recorder) ReadByte() (byte, error) {
	c, err := r.conn.ReadByte()
	if err == nil {
		r.record(FDStdin, []byte{c}, false)
	}
	return c, err
}

// WriteByte writes to the wrapped stream, recording the byte as output.
func (r *Recorder) WriteByte(c byte) error {
	err := r.conn.WriteByte(c)
	if err == nil {
		r.record(FDStdout, []byte{c}, false)
	}
	return err
}

// Write writes to the wrapped stream, recording what was written as output.
func (r *Recorder) Write(p []byte) (int, error) {
	n, err := r.conn.Write(p)
	if n > 0 {
		r.record(FDStdout, p[:n], false)
	}
	return n, err
}

func (r *Recorder) Flush() error {
	return r.conn.Flush()
}

// Close records the end of the session. Nothing is recorded after Close.
// The wrapped stream is left open.
func (r *Recorder) Close() error {
	r.record(FDStdout, nil, true)
	return nil
}
