package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// EventRecorder accepts events as they happen.
type EventRecorder interface {
	Record(event LogType) error
}

// Logger captures interaction event logs.
type Logger struct {
	Record LogRecorder

	now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. It is safe to share between sessions.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex

	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) timestamp() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = l.timestamp().UnixMicro()
	le.SessionID = sessionID
	le.setLogType(event)

	return l.Record(le)
}

// NewSession creates a logger with attached session ID, a random ID is
// generated if sessionID is empty.
func (l *Logger) NewSession(sessionID string) *SessionLogger {
	if sessionID == "" {
		sessionID = fmt.Sprintf("%d", rand.Uint64())
	}
	return &SessionLogger{Logger: l, sessionID: sessionID}
}

// Sessionless creates a logger that records events without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

var _ EventRecorder = (*SessionLogger)(nil)

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record logs the event with the session's ID.
func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}

// NopRecorder discards all events.
type NopRecorder struct{}

var _ EventRecorder = NopRecorder{}

func (NopRecorder) Record(LogType) error {
	return nil
}
