package ttylog

import (
	"bytes"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/josephlewis42/serialshell/core/stream/streamtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func newTestRecorder() (*Recorder, *streamtest.Stream, *[]*Entry) {
	var entries []*Entry
	term := streamtest.New()
	recorder := NewRecorder(term, func(e *Entry) error {
		entries = append(entries, e)
		return nil
	}, nil)
	recorder.now = fakeClock(time.Unix(1000, 0), time.Millisecond)
	return recorder, term, &entries
}

func TestRecorder(t *testing.T) {
	recorder, term, entries := newTestRecorder()
	term.PressKeys("a")

	c, err := recorder.ReadByte()
	require.Nil(t, err)
	assert.Equal(t, byte('a'), c)

	_, err = recorder.ReadByte()
	assert.Error(t, err, "no data is passed through")

	recorder.WriteByte('a')
	recorder.Write([]byte("\r\nOK\r\n"))
	recorder.Flush()
	recorder.Close()
	recorder.Write([]byte("ignored"))

	assert.Equal(t, "a\r\nOK\r\nignored", term.Output())
	assert.Equal(t, 1, term.Flushes)
	assert.Equal(t, []*Entry{
		{TimestampMicros: 1000001000, FD: FDStdin, Data: []byte("a")},
		{TimestampMicros: 1000002000, FD: FDStdout, Data: []byte("a")},
		{TimestampMicros: 1000003000, FD: FDStdout, Data: []byte("\r\nOK\r\n")},
		{TimestampMicros: 1000004000, FD: FDStdout, Close: true},
	}, *entries)
}

func TestRecorderCopiesData(t *testing.T) {
	recorder, _, entries := newTestRecorder()

	buf := []byte("abc")
	recorder.Write(buf)
	buf[0] = 'X'

	assert.Equal(t, []byte("abc"), (*entries)[0].Data)
}

func TestRecorderSinkErrorsAreLogged(t *testing.T) {
	var errLog bytes.Buffer
	term := streamtest.New()
	recorder := NewRecorder(term, func(*Entry) error {
		return errors.New("disk full")
	}, log.New(&errLog, "", 0))

	n, err := recorder.Write([]byte("hi"))
	assert.Nil(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "hi", term.Output())
	assert.Equal(t, "recording stdout: disk full\n", errLog.String())
}

func TestClientOutputAndInput(t *testing.T) {
	entries := []*Entry{
		{FD: FDStdin, Data: []byte("ls\r")},
		{FD: FDStdout, Data: []byte("ls\r\n")},
		{FD: FDStderr, Data: []byte("oops\r\n")},
		{FD: FDStdout, Close: true},
	}

	var out, in bytes.Buffer
	outSink := NewClientOutput(&out)
	inSink := NewClientInput(&in)
	for _, e := range entries {
		require.Nil(t, outSink(e))
		require.Nil(t, inSink(e))
	}

	assert.Equal(t, "ls\r\noops\r\n", out.String())
	assert.Equal(t, "ls\r", in.String())
}

type sliceSource []*Entry

func (s *sliceSource) Next() (*Entry, error) {
	if len(*s) == 0 {
		return nil, io.EOF
	}
	e := (*s)[0]
	*s = (*s)[1:]
	return e, nil
}

func TestReplay(t *testing.T) {
	t.Run("all-entries", func(t *testing.T) {
		src := sliceSource{{Data: []byte("a")}, {Data: []byte("b")}}

		var out bytes.Buffer
		assert.Nil(t, Replay(&src, NewClientOutput(&out)))
		assert.Equal(t, "ab", out.String())
	})

	t.Run("sink-error", func(t *testing.T) {
		src := sliceSource{{Data: []byte("a")}, {Data: []byte("b")}}
		sinkErr := errors.New("stop")

		calls := 0
		err := Replay(&src, func(*Entry) error {
			calls++
			return sinkErr
		})
		assert.Equal(t, sinkErr, err)
		assert.Equal(t, 1, calls)
	})
}

func TestRealTimePlayback(t *testing.T) {
	src := sliceSource{
		{TimestampMicros: 0, Data: []byte("a")},
		{TimestampMicros: 60e6, Data: []byte("b")},
	}

	var out bytes.Buffer
	start := time.Now()
	assert.Nil(t, Replay(&src, NewRealTimePlayback(time.Millisecond, NewClientOutput(&out))))

	assert.Equal(t, "ab", out.String())
	assert.Less(t, int64(time.Since(start)), int64(time.Second), "sleep must be capped")
}

func TestFDString(t *testing.T) {
	assert.Equal(t, "stdin", FDStdin.String())
	assert.Equal(t, "stdout", FDStdout.String())
	assert.Equal(t, "stderr", FDStderr.String())
	assert.Equal(t, "unknown", FD(42).String())
}
