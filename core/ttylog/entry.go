// Package ttylog records the bytes exchanged with a shell session and plays
// them back.
package ttylog

import (
	"io"
	"time"
)

// FD identifies which side of the terminal a piece of data came from.
type FD int32

const (
	FDStdin  FD = 0
	FDStdout FD = 1
	FDStderr FD = 2
)

func (fd FD) String() string {
	switch fd {
	case FDStdin:
		return "stdin"
	case FDStdout:
		return "stdout"
	case FDStderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// Entry is a single recorded event: either data on FD, or the close of FD.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
	Close           bool
}

// Time returns the entry's timestamp.
func (e *Entry) Time() time.Time {
	return time.UnixMicro(e.TimestampMicros)
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the
	// source has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback replays entries with the delays they were recorded
// with. If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	started := false
	var prevTimeMicros int64

	return func(entry *Entry) error {
		if !started {
			started = true
			prevTimeMicros = entry.TimestampMicros
		}

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 && delta > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewClientOutput writes what the remote terminal would have displayed,
// stdout and stderr, to w.
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Close || entry.FD == FDStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// NewClientInput writes the keys typed by the remote terminal to w.
func NewClientInput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Close || entry.FD != FDStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}
