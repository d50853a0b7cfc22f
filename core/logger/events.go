package logger

// LogType is implemented by every event that can be held in a LogEntry.
type LogType interface {
	isLogType()
}

// LogEntry is a single line in the event log. Exactly one of the event
// fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
}

// SessionStart is logged when a shell is attached to a new connection.
type SessionStart struct {
	User       string `json:"user,omitempty"`
	RemoteAddr string `json:"remote_addr,omitempty"`
	Terminal   string `json:"terminal,omitempty"`
}

// RunCommand is logged after a registered command's handler returns.
type RunCommand struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

// UnknownCommand is logged when no command matches the first word of a line.
type UnknownCommand struct {
	Command []string `json:"command"`
}

// InvalidInvocation is logged when a line can't be split into a command.
type InvalidInvocation struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

func (*SessionStart) isLogType()      {}
func (*RunCommand) isLogType()        {}
func (*UnknownCommand) isLogType()    {}
func (*InvalidInvocation) isLogType() {}

// GetLogType returns the event held by the entry or nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	default:
		return nil
	}
}

func (le *LogEntry) setLogType(event LogType) {
	switch e := event.(type) {
	case *SessionStart:
		le.SessionStart = e
	case *RunCommand:
		le.RunCommand = e
	case *UnknownCommand:
		le.UnknownCommand = e
	case *InvalidInvocation:
		le.InvalidInvocation = e
	}
}
