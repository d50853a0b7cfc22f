// Package shell implements a line oriented command interpreter that is fed
// one byte at a time from a character stream such as a serial port.
//
// Keystrokes are collected into a line buffer with minimal editing support.
// Once a line is complete it's split into words, the first word is looked
// up among the registered commands and the command's handler is called with
// all the words. Non-zero statuses returned by handlers are reported back on
// the stream.
//
// A Shell is also a stream.Stream, handlers print their output by writing
// to the shell which forwards everything to the attached stream.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/josephlewis42/serialshell/core/stream"
)

// Statuses returned by the shell itself.
const (
	ExitSuccess = 0
	ExitFailure = -1
)

const (
	msgOK             = "OK"
	msgTooManyArgs    = "Too many arguments to parse"
	msgNotFound       = "command not found"
	defaultPollPeriod = 10 * time.Millisecond
)

// Shell reads command lines from an attached stream and dispatches them to
// registered commands. A Shell must only be used from one goroutine at a
// time.
type Shell struct {
	conn      stream.Stream
	registry  *Registry
	editor    *LineEditor
	tokenizer Tokenizer
	maxArgs   int
	lastErrNo int

	opts     *options
	errColor *color.Color
}

var _ stream.Stream = (*Shell)(nil)

// New creates a shell with the built-in help command registered and no
// stream attached.
func New(opts ...Option) *Shell {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Shell{
		conn:     stream.Null,
		registry: NewRegistry(o.docDelimiter, o.bufferSize),
		editor: NewLineEditor(EditorConfig{
			Capacity:      o.bufferSize,
			AltTerminator: o.altTerminator,
		}),
		tokenizer: o.tokenizer,
		maxArgs:   o.maxArgs,
		lastErrNo: ExitSuccess,
		opts:      o,
	}

	if o.color {
		s.errColor = color.New(color.FgRed, color.Bold)
		s.errColor.EnableColor()
	}

	s.AddCommand("help"+string(o.docDelimiter)+"[NAME]... list commands", PrintHelp)
	return s
}

// Attach makes st the source of input and the destination of output. A nil
// stream detaches the shell.
func (s *Shell) Attach(st stream.Stream) {
	if st == nil {
		st = stream.Null
	}
	s.conn = st
}

// AddCommand registers a command. nameAndDocs holds the name optionally
// followed by the documentation delimiter and help text.
func (s *Shell) AddCommand(nameAndDocs string, fn CommandFunc) {
	s.registry.Add(nameAndDocs, fn)
}

// AddCommandTable registers every command in table.
func (s *Shell) AddCommandTable(table []CommandEntry) {
	for _, entry := range table {
		s.AddCommand(entry.NameAndDocs, entry.Func)
	}
}

// Registry returns the shell's commands.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// DocDelimiter returns the byte separating command names from their
// documentation.
func (s *Shell) DocDelimiter() byte {
	return s.opts.docDelimiter
}

// LastErrNo returns the status of the most recently processed line.
func (s *Shell) LastErrNo() int {
	return s.lastErrNo
}

// ResetBuffer discards any partially typed line.
func (s *Shell) ResetBuffer() {
	s.editor.Reset()
}

// Editor exposes the line editor, mostly for inspection.
func (s *Shell) Editor() *LineEditor {
	return s.editor
}

// Poll consumes the input that is available right now without blocking.
// It returns true once a complete line was read and executed, the rest of
// the input is left for the next call. Errors from the stream other than
// stream.ErrNoData are returned.
func (s *Shell) Poll() (bool, error) {
	defer s.Flush()

	for {
		c, err := s.ReadByte()
		switch {
		case stream.IsNoData(err):
			return false, nil
		case err != nil:
			return false, err
		}

		echo, ready := s.editor.Feed(c)
		if len(echo) > 0 {
			s.Write(echo)
		}
		if ready {
			s.execute()
			return true, nil
		}
	}
}

// ExecuteIfInput checks for a complete command and runs it if available.
// It never blocks and returns true when a command was attempted.
func (s *Shell) ExecuteIfInput() bool {
	ran, _ := s.Poll()
	return ran
}

// Run polls the attached stream until ctx is done or the stream reports
// io.EOF. When no input is waiting it sleeps for interval between polls.
func (s *Shell) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultPollPeriod
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ran, err := s.Poll()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		case ran:
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Execute runs a complete command line, bypassing the line editor. Anything
// typed but not yet executed is discarded and lines longer than the buffer
// are truncated.
func (s *Shell) Execute(line string) int {
	s.editor.Load(line)
	defer s.Flush()
	return s.execute()
}

// execute tokenizes the buffered line and dispatches it.
func (s *Shell) execute() int {
	line := s.editor.Line()

	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(s.tokenizer)

	argv := make([]string, 0, s.maxArgs)
	for scanner.Scan() {
		if len(argv) == s.maxArgs {
			s.record(&logger.InvalidInvocation{Line: line, Error: msgTooManyArgs})
			return s.report(msgTooManyArgs, ExitFailure)
		}
		argv = append(argv, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		s.record(&logger.InvalidInvocation{Line: line, Error: err.Error()})
		return s.report(err.Error(), ExitFailure)
	}

	if len(argv) == 0 {
		// Empty line, no arguments found.
		s.Println(msgOK)
		return s.report("", ExitSuccess)
	}

	return s.dispatch(argv)
}

func (s *Shell) dispatch(argv []string) int {
	cmd, ok := s.registry.Lookup(argv[0])
	if !ok {
		s.Print(`"`, argv[0], `": `)
		s.record(&logger.UnknownCommand{Command: argv})
		return s.report(msgNotFound, ExitFailure)
	}

	status := cmd.Execute(s, argv)
	s.record(&logger.RunCommand{Command: argv, Status: status})
	return s.report("", status)
}

// report is the funnel every processed line passes through. Failures are
// written to the stream, then the buffer is reset and the status recorded.
func (s *Shell) report(message string, code int) int {
	if code != ExitSuccess {
		text := strconv.Itoa(code)
		if message != "" {
			text += ": " + message
		}
		if s.errColor != nil {
			text = s.errColor.Sprint(text)
		}
		s.Println(text)
	}

	s.ResetBuffer()
	s.lastErrNo = code
	return code
}

func (s *Shell) record(event logger.LogType) {
	if err := s.opts.events.Record(event); err != nil {
		s.opts.logger.Print(err)
	}
}

// PrintHelp is the built-in help command. With no arguments it lists every
// command, otherwise only the named ones.
func PrintHelp(s *Shell, argv []string) int {
	if len(argv) <= 1 {
		if err := s.registry.RenderHelp(s); err != nil {
			return ExitFailure
		}
		return ExitSuccess
	}

	status := ExitSuccess
	for _, name := range argv[1:] {
		cmd, ok := s.registry.Lookup(name)
		if !ok {
			s.Println(`"`, name, `": `, msgNotFound)
			status = ExitFailure
			continue
		}
		renderCommand(s, cmd)
	}
	return status
}

// ReadByte reads from the attached stream.
func (s *Shell) ReadByte() (byte, error) {
	return s.conn.ReadByte()
}

// WriteByte writes to the attached stream.
func (s *Shell) WriteByte(c byte) error {
	return s.conn.WriteByte(c)
}

// Write writes to the attached stream.
func (s *Shell) Write(b []byte) (int, error) {
	return s.conn.Write(b)
}

// Flush flushes the attached stream.
func (s *Shell) Flush() error {
	return s.conn.Flush()
}

// Print writes the operands to the attached stream.
func (s *Shell) Print(a ...interface{}) {
	fmt.Fprint(s, a...)
}

// Println formats the operands like Print and ends the line with a carriage
// return and line feed.
func (s *Shell) Println(a ...interface{}) {
	fmt.Fprint(s, a...)
	s.Write([]byte(crlf))
}

// Printf formats to the attached stream.
func (s *Shell) Printf(format string, a ...interface{}) {
	fmt.Fprintf(s, format, a...)
}
