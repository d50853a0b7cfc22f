package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// NewFailureReport creates an empty FailureReport.
func NewFailureReport() *FailureReport {
	return &FailureReport{
		FailedCommands:     NewPathCounter("command", "status"),
		UnknownCommands:    NewPathCounter("command"),
		InvalidInvocations: NewPathCounter("error"),
	}
}

// FailureReport pulls events where a line didn't complete successfully.
type FailureReport struct {
	LogEntries int `json:"log_entries"`

	FailedCommands     *PathCounter `json:"failed_commands"`
	UnknownCommands    *PathCounter `json:"unknown_commands"`
	InvalidInvocations *PathCounter `json:"invalid_invocations"`
}

func (r *FailureReport) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		if event.Status != 0 && len(event.Command) > 0 {
			r.FailedCommands.Increment(event.Command[0], fmt.Sprintf("%d", event.Status))
		}
	case *UnknownCommand:
		if len(event.Command) > 0 {
			r.UnknownCommands.Increment(event.Command[0])
		}
	case *InvalidInvocation:
		r.InvalidInvocations.Increment(event.Error)
	}
}

// InteractionReport groups the lines run in each session.
type InteractionReport struct {
	// Map of sessionID -> interactions
	interactions map[string]*InteractiveSession
}

type InteractiveSession struct {
	User       string   `json:"user,omitempty"`
	RemoteAddr string   `json:"remote_addr,omitempty"`
	Terminal   string   `json:"terminal,omitempty"`
	LogEntries int      `json:"log_entries"`
	Commands   []string `json:"commands"`
}

func (i *InteractiveSession) Update(le *LogEntry) {
	i.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		i.User = event.User
		i.RemoteAddr = event.RemoteAddr
		i.Terminal = event.Terminal
	case *RunCommand:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *UnknownCommand:
		i.Commands = append(i.Commands, strings.Join(event.Command, " "))
	case *InvalidInvocation:
		i.Commands = append(i.Commands, event.Line)
	}
}

func (i *InteractionReport) init() {
	if i.interactions == nil {
		i.interactions = make(map[string]*InteractiveSession)
	}
}

// MarshalJSON implements a custom JSON marshaler.
func (i *InteractionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.interactions)
}

func (i *InteractionReport) Update(le *LogEntry) {
	i.init()

	sessionID := le.SessionID
	if sessionID == "" {
		return
	}
	report, ok := i.interactions[sessionID]
	if !ok {
		report = &InteractiveSession{}
		i.interactions[sessionID] = report
	}

	report.Update(le)
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Sessions          SessionReport           `json:"session_report"`
	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Sessions.update(event)
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type SessionReport struct {
	Count     int        `json:"count"`
	Users     StrCounter `json:"users"`
	Terminals StrCounter `json:"terminals"`
}

func (r *SessionReport) update(ss *SessionStart) {
	r.Count++
	r.Users.Increment(ss.User)
	r.Terminals.Increment(ss.Terminal)
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Statuses returned by commands
	Statuses StrCounter `json:"statuses"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.Statuses.Increment(fmt.Sprintf("%d", rc.Status))
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	Errors StrCounter `json:"errors"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	r.Errors.Increment(logEntry.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times each tuple of strings is seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given key.
func (ctr *PathCounter) Get(key ...string) int {
	return ctr.internal[toKey(key...)]
}

// MarshalJSON implements a custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
