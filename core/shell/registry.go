package shell

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DefaultDocDelimiter separates a command's name from its documentation in
// the string it is registered with, e.g. "echo:print the arguments".
const DefaultDocDelimiter = ':'

// CommandFunc implements a command. argv[0] holds the name the command was
// invoked as, the returned status is reported to the user when non-zero.
type CommandFunc func(s *Shell, argv []string) int

// CommandEntry is a row in a static command table.
type CommandEntry struct {
	// NameAndDocs holds the command name optionally followed by the
	// documentation delimiter and a line of help text.
	NameAndDocs string
	Func        CommandFunc
}

// Command associates a named command with the function to call.
type Command struct {
	nameAndDocs string
	name        string
	delimiter   byte
	fn          CommandFunc
}

// Name returns the portion of the registered string that is matched against
// user input.
func (c *Command) Name() string {
	return c.name
}

// Docs returns the documentation registered with the command, if any.
func (c *Command) Docs() string {
	if len(c.nameAndDocs) == len(c.name) {
		return ""
	}
	return c.nameAndDocs[len(c.name)+1:]
}

// Execute runs the command's handler.
func (c *Command) Execute(s *Shell, argv []string) int {
	return c.fn(s, argv)
}

// helpLine renders the command for help output, the documentation delimiter
// becomes a single space.
func (c *Command) helpLine() string {
	return strings.Replace(c.nameAndDocs, string(c.delimiter), " ", 1)
}

// Registry holds commands sorted case-insensitively by name.
type Registry struct {
	delimiter  byte
	maxNameLen int
	commands   []*Command
}

// NewRegistry creates an empty registry. Names are split from their
// documentation at delimiter and at most maxNameLen bytes of a name take
// part in comparisons.
func NewRegistry(delimiter byte, maxNameLen int) *Registry {
	return &Registry{
		delimiter:  delimiter,
		maxNameLen: maxNameLen,
	}
}

func (r *Registry) namePortion(nameAndDocs string) string {
	if i := strings.IndexByte(nameAndDocs, r.delimiter); i >= 0 {
		return nameAndDocs[:i]
	}
	return nameAndDocs
}

// bound truncates a name to the comparable length so garbage input never
// causes an unbounded comparison.
func (r *Registry) bound(name string) string {
	if r.maxNameLen > 0 && len(name) > r.maxNameLen {
		return name[:r.maxNameLen]
	}
	return name
}

func (r *Registry) compare(a, b string) int {
	return strings.Compare(strings.ToLower(r.bound(a)), strings.ToLower(r.bound(b)))
}

// Add registers a command. The command is placed before the first existing
// command whose name sorts greater than or equal to it. Duplicate names are
// allowed, the most recently added one is found first.
func (r *Registry) Add(nameAndDocs string, fn CommandFunc) *Command {
	cmd := &Command{
		nameAndDocs: nameAndDocs,
		name:        r.namePortion(nameAndDocs),
		delimiter:   r.delimiter,
		fn:          fn,
	}

	i := sort.Search(len(r.commands), func(i int) bool {
		return r.compare(r.commands[i].name, cmd.name) >= 0
	})

	r.commands = append(r.commands, nil)
	copy(r.commands[i+1:], r.commands[i:])
	r.commands[i] = cmd

	return cmd
}

// Lookup finds the first command whose name matches name, ignoring case.
func (r *Registry) Lookup(name string) (*Command, bool) {
	name = r.bound(name)
	for _, cmd := range r.commands {
		if strings.EqualFold(r.bound(cmd.name), name) {
			return cmd, true
		}
	}
	return nil, false
}

// Commands returns the registered commands in sorted order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// RenderHelp writes every command and its documentation to w, one per line.
func (r *Registry) RenderHelp(w io.Writer) error {
	if _, err := fmt.Fprint(w, "Commands available are:", crlf); err != nil {
		return err
	}

	for _, cmd := range r.commands {
		if err := renderCommand(w, cmd); err != nil {
			return err
		}
	}
	return nil
}

func renderCommand(w io.Writer, cmd *Command) error {
	_, err := fmt.Fprint(w, "  ", cmd.helpLine(), crlf)
	return err
}
